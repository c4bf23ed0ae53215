package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:       "mode [none|import|auto]",
		Short:     "Show or change the background import mode",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"none", "import", "auto"},
		RunE:      runMode,
	})
}

func runMode(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		resp, err := client.Mode()
		if err != nil {
			return fmt.Errorf("failed to get mode: %w", err)
		}
		if jsonOutput {
			return printJSON(out, resp)
		}
		fmt.Fprintf(out, "Import mode: %s\n", resp.Mode)
		return nil
	}

	resp, err := client.SetMode(args[0])
	if err != nil {
		if IsCode(err, "INVALID_MODE") {
			return fmt.Errorf("invalid mode %q: use none, import or auto", args[0])
		}
		return fmt.Errorf("failed to set mode: %w", err)
	}
	if jsonOutput {
		return printJSON(out, resp)
	}
	fmt.Fprintf(out, "Import mode set to %s\n", resp.Mode)
	return nil
}
