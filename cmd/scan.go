package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List installed mods and their archive hashes",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.logger.Sync()

		result, err := svc.scanner.Scan(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("\n=== Installed Mods ===")
		for _, m := range result.Mods {
			if len(m.Releases) == 0 {
				fmt.Printf("%-40s (no archive)\n", m.Name)
				continue
			}
			for _, r := range m.Releases {
				fmt.Printf("%-40s %-12s %s\n", m.Name, r.Version, r.SHA1)
			}
		}

		failed := make([]string, 0, len(result.Failures))
		for name := range result.Failures {
			failed = append(failed, name)
		}
		sort.Strings(failed)
		for _, name := range failed {
			svc.logger.Error("Failed to scan mod", zap.String("mod", name), zap.Error(result.Failures[name]))
		}

		fmt.Printf("\nMods: %d, Failures: %d\n", len(result.Mods), len(result.Failures))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(scanCmd)
}
