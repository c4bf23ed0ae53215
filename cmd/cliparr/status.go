package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	})

	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Show recent events",
		Args:  cobra.NoArgs,
		RunE:  runEvents,
	}
	eventsCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	rootCmd.AddCommand(eventsCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	resp, err := NewClient(serverURL).Status()
	if err != nil {
		return fmt.Errorf("cannot reach %s: %w", serverURL, err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, resp)
	}

	poller := "stopped"
	if resp.PollerRunning {
		poller = "running"
	}
	fmt.Fprintf(out, "Server:      %s (%s)\n", serverURL, resp.Status)
	fmt.Fprintf(out, "Version:     %s\n", resp.Version)
	fmt.Fprintf(out, "Import mode: %s (poller %s)\n", resp.ImportMode, poller)
	return nil
}

func runEvents(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	resp, err := NewClient(serverURL).Events(limit)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, resp)
	}
	if len(resp.Events) == 0 {
		fmt.Fprintln(out, "No events")
		return nil
	}

	rows := make([][]string, 0, len(resp.Events))
	for _, e := range resp.Events {
		t, _ := time.Parse(time.RFC3339, e.OccurredAt)
		rows = append(rows, []string{
			formatTimeAgo(t),
			e.EventType,
			fmt.Sprintf("%s/%d", e.EntityType, e.EntityID),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"When", "Type", "Entity"}, rows, nil))
	return nil
}

func formatTimeAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	ago := time.Since(t)
	switch {
	case ago < time.Minute:
		return "just now"
	case ago < time.Hour:
		return fmt.Sprintf("%dm ago", int(ago.Minutes()))
	case ago < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(ago.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(ago.Hours()/24))
	}
}
