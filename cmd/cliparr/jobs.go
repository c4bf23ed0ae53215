package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "List audio analysis jobs",
		Args:  cobra.NoArgs,
		RunE:  runJobs,
	}
	jobsCmd.Flags().StringP("status", "s", "", "Filter by status (pending, running, completed, failed)")
	jobsCmd.Flags().IntP("limit", "n", 50, "Maximum jobs to show")
	jobsCmd.Flags().Int("offset", 0, "Jobs to skip")

	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	resp, err := NewClient(serverURL).Jobs(status, limit, offset)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, resp)
	}
	if len(resp.Jobs) == 0 {
		fmt.Fprintln(out, "No jobs")
		return nil
	}

	rows := make([][]string, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		errMsg := ""
		if j.ErrorMessage != nil {
			errMsg = *j.ErrorMessage
		}
		rows = append(rows, []string{
			shortID(j.ID),
			j.ShowTitle,
			fmt.Sprintf("S%02dE%02d", j.SeasonNumber, j.EpisodeNumber),
			j.Status,
			strconv.Itoa(j.Progress) + "%",
			errMsg,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Job", "Show", "Episode", "Status", "Progress", "Error"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}))
	fmt.Fprintf(out, "%d of %d jobs\n", len(resp.Jobs), resp.Total)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
