package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "cliparr",
	Short: "CLI client for the cliparr daemon",
	Long: `cliparr - CLI client for the cliparr daemon

Browse the local show catalog, import from Sonarr, switch the
background import mode and inspect audio analysis jobs.

Run 'cliparrd' to start the server daemon.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaultServer := "http://localhost:5000"
	if env := os.Getenv("CLIPARR_SERVER"); env != "" {
		defaultServer = env
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "Server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("cliparr {{.Version}}\n")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
