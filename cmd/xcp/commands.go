package main

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	dbPath  string

	rootCmd = &cobra.Command{
		Use:   "xcp",
		Short: "Inspect, compare and index Xcode project files",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				enableDebugLogging()
			}
		},
	}

	showCmd = &cobra.Command{
		Use:   "show [project]",
		Short: "Print a summary of a project and its group tree",
		Args:  cobra.ExactArgs(1),
		Run:   runShow, // Defined in cmd_show.go
	}

	targetsCmd = &cobra.Command{
		Use:   "targets [project]",
		Short: "List the targets of a project",
		Args:  cobra.ExactArgs(1),
		Run:   runTargets, // Defined in cmd_show.go
	}

	sortCmd = &cobra.Command{
		Use:   "sort [project]",
		Short: "Sort groups and targets, then save the project in place",
		Args:  cobra.ExactArgs(1),
		Run:   runSort, // Defined in cmd_show.go
	}

	compareCmd = &cobra.Command{
		Use:   "compare [project-a] [project-b]",
		Short: "Diff two projects ignoring object identifiers; exits 1 if they differ",
		Args:  cobra.ExactArgs(2),
		Run:   runCompare, // Defined in cmd_compare.go
	}

	// --- Catalog ---
	indexCmd = &cobra.Command{
		Use:   "index [dir]",
		Short: "Scan a directory tree and record every project in the catalog",
		Args:  cobra.ExactArgs(1),
		Run:   runIndex, // Defined in cmd_index.go
	}

	statusCmd = &cobra.Command{
		Use:   "status [dir]",
		Short: "Report projects added or changed since they were indexed",
		Args:  cobra.ExactArgs(1),
		Run:   runStatus, // Defined in cmd_index.go
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the catalog entries",
		Args:  cobra.NoArgs,
		Run:   runList, // Defined in cmd_index.go
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(compareCmd)

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	indexCmd.Flags().StringVar(&dbPath, "db", "", "Path to the catalog database (default: user cache dir)")
	statusCmd.Flags().StringVar(&dbPath, "db", "", "Path to the catalog database (default: user cache dir)")
	listCmd.Flags().StringVar(&dbPath, "db", "", "Path to the catalog database (default: user cache dir)")
}
