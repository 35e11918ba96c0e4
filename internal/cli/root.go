package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "Browse a CV in the terminal",
		Long: `Folio renders a one-page CV with a section nav bar that follows
the scroll position. Sections are addressed by location strings such
as "#experience" or "#articles/page-2", and every move is recorded in
a back/forward history.

Content lives in a local sqlite database and is edited by importing
TOML files.`,
		Args: cobra.NoArgs,
		RunE: RunView,
	}
	rootCmd.PersistentFlags().String("config", "", "Config file (default: $FOLIO_CONFIG or ~/.config/folio/config.toml)")
	rootCmd.Flags().String("url", "", `Initial location, e.g. "#experience" or "#articles/page-2"`)

	importCmd := &cobra.Command{
		Use:   "import <file.toml>",
		Short: "Import sections and entries from a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE:  RunImport,
	}

	sectionsCmd := &cobra.Command{
		Use:   "sections",
		Short: "List the section catalog with entry counts",
		Args:  cobra.NoArgs,
		RunE:  RunSections,
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all content and restore the sample CV",
		Args:  cobra.NoArgs,
		RunE:  RunReset,
	}
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
		},
	}

	rootCmd.AddCommand(importCmd, sectionsCmd, resetCmd, versionCmd)
	return rootCmd
}
