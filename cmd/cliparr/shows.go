package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	showsCmd := &cobra.Command{
		Use:   "shows",
		Short: "List imported shows",
		Args:  cobra.NoArgs,
		RunE:  runShows,
	}
	showsCmd.Flags().Int("page", 1, "Page number")
	showsCmd.Flags().Int("page-size", 50, "Shows per page")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show seasons, episodes and files for a show",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search imported show titles",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
	searchCmd.Flags().IntP("limit", "n", 10, "Maximum results")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete imported shows and everything under them",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDelete,
	}

	rootCmd.AddCommand(showsCmd, showCmd, searchCmd, deleteCmd)
}

func runShows(cmd *cobra.Command, _ []string) error {
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")

	resp, err := NewClient(serverURL).Shows(page, pageSize)
	if err != nil {
		return fmt.Errorf("failed to list shows: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, resp)
	}
	if len(resp.Shows) == 0 {
		fmt.Fprintln(out, "No shows imported")
		return nil
	}

	rows := make([][]string, 0, len(resp.Shows))
	for _, s := range resp.Shows {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Title,
			strconv.FormatInt(s.SonarrID, 10),
			strconv.Itoa(s.SeasonsCount),
			strconv.Itoa(s.EpisodesCount),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Title", "Sonarr", "Seasons", "Episodes"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight}))
	fmt.Fprintf(out, "Page %d of %d (%d shows)\n", resp.Page, resp.TotalPages, resp.Total)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid show id %q", args[0])
	}

	show, err := NewClient(serverURL).Show(id)
	if err != nil {
		return fmt.Errorf("failed to get show: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, show)
	}

	fmt.Fprintf(out, "%s (id %d, sonarr %d)\n", show.Title, show.ID, show.SonarrID)
	if show.Path != "" {
		fmt.Fprintf(out, "Path: %s\n", show.Path)
	}
	if show.Overview != "" {
		fmt.Fprintf(out, "\n%s\n", show.Overview)
	}

	var rows [][]string
	for _, season := range show.Seasons {
		for _, ep := range season.Episodes {
			file, quality := "", ""
			if n := len(ep.Files); n > 0 {
				latest := ep.Files[n-1]
				file, quality = latest.FilePath, latest.Quality
			}
			rows = append(rows, []string{
				fmt.Sprintf("S%02dE%02d", season.SeasonNumber, ep.EpisodeNumber),
				ep.Title,
				quality,
				file,
			})
		}
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "\nNo episodes")
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]string{"Episode", "Title", "Quality", "File"}, rows, nil))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	resp, err := NewClient(serverURL).Search(args[0], limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, resp)
	}
	if len(resp.Results) == 0 {
		fmt.Fprintf(out, "No shows match %q\n", args[0])
		return nil
	}

	rows := make([][]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Title,
			fmt.Sprintf("%.2f", r.Score),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"ID", "Title", "Score"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight}))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	resp, err := NewClient(serverURL).Delete(ids)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, resp)
	}
	fmt.Fprintf(out, "Deleted %d of %d shows\n", resp.Deleted, len(ids))
	return nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
