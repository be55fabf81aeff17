package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/the-grim-beeper/newstracker/internal/config"
	"github.com/the-grim-beeper/newstracker/internal/feed"
	"github.com/the-grim-beeper/newstracker/internal/store"
	"github.com/the-grim-beeper/newstracker/internal/track"
	"github.com/the-grim-beeper/newstracker/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagTerms    string
	flagConfig   string
	flagInterval string
)

var rootCmd = &cobra.Command{
	Use:   "newstracker",
	Short: "Real-time news mention tracker",
	Long:  "newstracker polls Google News for up to three search terms and charts how often they are mentioned over time.",
	RunE:  runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagTerms, "terms", "", "comma-separated terms to track (up to 3)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagInterval, "interval", "", "polling interval override (e.g., 30s, 2m)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newstracker %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	session, articles, err := buildSession(cfg)
	if err != nil {
		return err
	}
	defer articles.Close()

	return tui.Run(session)
}

// buildSession wires the feed source, the article store and the session
// from config plus flag overrides. The caller owns closing the store.
func buildSession(cfg *config.Config) (*track.Session, *store.Store, error) {
	interval := cfg.PollDuration()
	if flagInterval != "" {
		d, err := time.ParseDuration(flagInterval)
		if err != nil || d <= 0 {
			return nil, nil, fmt.Errorf("invalid --interval value %q", flagInterval)
		}
		interval = d
	}

	articles, err := store.Open(store.InMemory)
	if err != nil {
		return nil, nil, fmt.Errorf("opening article store: %w", err)
	}

	source := feed.NewGoogleNews(cfg.Feed, cfg.FetchTimeoutDuration())
	session := track.New(source, articles, track.WithInterval(interval))

	terms := splitTerms(flagTerms)
	if len(terms) == 0 {
		terms = cfg.Terms
	}
	if len(terms) > 0 {
		if err := session.ConfigureTerms(terms); err != nil {
			articles.Close()
			return nil, nil, fmt.Errorf("configuring terms: %w", err)
		}
	}

	return session, articles, nil
}

// splitTerms turns a comma-separated flag value into a clean term list.
func splitTerms(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
