package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/the-grim-beeper/newstracker/internal/config"
	"github.com/the-grim-beeper/newstracker/internal/track"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Track terms headlessly, printing new mentions per poll",
	Long: `Poll Google News on a schedule without the dashboard and print a line per
poll. Useful for piping into logs or running under a process supervisor.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	session, articles, err := buildSession(cfg)
	if err != nil {
		return err
	}
	defer articles.Close()

	if len(session.Terms()) == 0 {
		return fmt.Errorf("no terms to track: pass --terms or set them in the config")
	}

	report, err := session.Start(context.Background())
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	fmt.Printf("Tracking %d term(s), polling every %s. Ctrl-C to stop.\n",
		len(session.Terms()), session.Interval())
	printReport(session, report)

	c := cron.New()
	_, err = c.AddFunc(fmt.Sprintf("@every %s", session.Interval()), func() {
		printReport(session, session.Tick(context.Background()))
	})
	if err != nil {
		return fmt.Errorf("scheduling polls: %w", err)
	}
	c.Start()
	defer c.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	session.Stop()
	fmt.Println("\nStopped.")
	for _, term := range session.Terms() {
		n, err := session.TotalMentions(term)
		if err != nil {
			continue
		}
		fmt.Printf("  %s: %d mention(s)\n", term, n)
	}
	return nil
}

func printReport(session *track.Session, r track.Report) {
	for _, term := range session.Terms() {
		if err := r.Errors[term]; err != nil {
			fmt.Printf("%s  [warn] %s: %v\n", r.At.Format("15:04:05"), term, err)
			continue
		}
		total, _ := session.TotalMentions(term)
		fmt.Printf("%s  %s: %d new, %d total\n", r.At.Format("15:04:05"), term, r.New[term], total)
	}
}
