package cmd

import (
	"fmt"
	"time"

	"mod-sync/feature/updates"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report installed mods with newer releases",
	Long:  `Scans the mods directory and reconciles every installed mod against the mod portal without downloading anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, true)
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Download and verify available updates",
	Long:  `Checks for updates, then downloads every newer release, verifies its SHA-1 against the portal and optionally mirrors and records it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		return runSync(cmd, dryRun)
	},
}

func init() {
	RootCmd.AddCommand(checkCmd, updateCmd)

	checkCmd.Flags().Bool("json", false, "Save the detailed report as JSON")
	updateCmd.Flags().Bool("json", false, "Save the detailed report as JSON")
	updateCmd.Flags().Bool("dry-run", false, "Only report updates")
}

func runSync(cmd *cobra.Command, dryRun bool) error {
	startTime := time.Now()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	svc, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.logger.Sync()

	svc.logger.Info("Checking installed mods (this might take a while)...", zap.Bool("dry_run", dryRun))

	report, err := svc.updates.Run(cmd.Context(), dryRun)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	printReport(report)

	if jsonOutput {
		filename, err := saveReport("sync", report)
		if err != nil {
			return err
		}
		fmt.Printf("\nDetailed JSON saved to: %s\n", filename)
	}

	fmt.Printf("Execution Time: %s\n", time.Since(startTime).String())

	if report.Summary.Failed > 0 || report.Summary.Mismatched > 0 {
		return fmt.Errorf("%d mods failed, %d archives failed verification", report.Summary.Failed, report.Summary.Mismatched)
	}
	return nil
}

func printReport(report *updates.Report) {
	if updatesFound := report.Updates(); len(updatesFound) > 0 {
		fmt.Println("\n=== Available Updates ===")
		for _, c := range updatesFound {
			current := c.Current
			if current == "" {
				current = "-"
			}
			fmt.Printf("%-40s %s -> %s\n", c.Name, current, c.Target.Version)
		}
	}

	if len(report.Downloads) > 0 {
		fmt.Println("\n=== Downloads ===")
		for _, d := range report.Downloads {
			line := fmt.Sprintf("%-40s %-12s %s", d.Name, d.Version, d.Status)
			if d.Error != "" {
				line += ": " + d.Error
			}
			fmt.Println(line)
		}
	}

	s := report.Summary
	fmt.Println("\n=== Sync Summary ===")
	fmt.Printf("Total Mods: %d\n", s.Total)
	fmt.Printf("Up To Date: %d\n", s.UpToDate)
	fmt.Printf("Updates: %d\n", s.Updates)
	fmt.Printf("Not In Catalog: %d\n", s.NotFound)
	fmt.Printf("Failed: %d\n", s.Failed)
	if !report.DryRun {
		fmt.Printf("Downloaded: %d\n", s.Downloaded)
		fmt.Printf("Unverified: %d\n", s.Unverified)
		fmt.Printf("Mismatched: %d\n", s.Mismatched)
	}
}
