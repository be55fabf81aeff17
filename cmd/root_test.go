package cmd

import (
	"reflect"
	"testing"
)

func TestSplitTerms(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"rust,golang", []string{"rust", "golang"}},
		{" rust , golang ", []string{"rust", "golang"}},
		{"mars", []string{"mars"}},
		{"a,,b", []string{"a", "b"}},
		{" , ", nil},
		{"", nil},
		{"climate change,ai", []string{"climate change", "ai"}},
	}

	for _, tt := range tests {
		got := splitTerms(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitTerms(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
