package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "inkwell",
		Short: "Inkwell - a server-rendered blog with reading aids",
		Long: `Inkwell serves Markdown articles as server-rendered pages and hydrates
them with a WebAssembly client that adds a reading progress bar, a
scroll-synced table of contents, zoomable images and floating controls.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "inkwell.yaml", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&flags.contentDir, "content", "", "Content directory (defaults to the embedded articles)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(newInitCommand(flags))
	rootCmd.AddCommand(newServeCommand(flags))
	rootCmd.AddCommand(newDevCommand(flags))
	rootCmd.AddCommand(newBuildCommand(flags))
	rootCmd.AddCommand(newNewCommand(flags))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "inkwell %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
