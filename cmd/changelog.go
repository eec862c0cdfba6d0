package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// changelogCmd represents the changelog command
var changelogCmd = &cobra.Command{
	Use:   "changelog <mod>",
	Short: "Show what changed since the installed release",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.logger.Sync()

		view, err := svc.updates.Changelog(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		installed := view.Current
		if installed == "" {
			installed = "not installed"
		}
		fmt.Printf("%s (installed: %s)\n", view.Name, installed)

		if len(view.Entries) == 0 {
			fmt.Println("No newer changelog entries.")
			return nil
		}
		for _, e := range view.Entries {
			fmt.Printf("\nVersion %s", e.Version)
			if e.Date != "" {
				fmt.Printf(" (%s)", e.Date)
			}
			fmt.Println()
			for _, s := range e.Sections {
				fmt.Printf("  %s:\n", s.Name)
				for _, line := range s.Lines {
					fmt.Printf("    - %s\n", line)
				}
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(changelogCmd)
}
