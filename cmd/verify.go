package cmd

import (
	"fmt"

	"mod-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify installed archives against the mod portal",
	Long:  `Hashes every installed archive and compares it with the SHA-1 the portal publishes for the same version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		svc, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.logger.Sync()

		svc.logger.Info("Verifying installed archives (this might take a while)...")
		report, err := svc.integrity.VerifyArchives(cmd.Context())
		if err != nil {
			return fmt.Errorf("archive verification failed: %w", err)
		}

		for _, a := range report.Archives {
			switch a.Status {
			case integrity.StatusMismatch:
				svc.logger.Warn("Archive differs from portal",
					zap.String("file", a.FileName),
					zap.String("local_sha1", a.LocalSHA1),
					zap.String("catalog_sha1", a.CatalogSHA1))
			case integrity.StatusFailed:
				svc.logger.Error("Archive could not be verified", zap.String("file", a.FileName), zap.String("error", a.Error))
			}
		}

		s := report.Summary
		fmt.Println("\n=== Archive Integrity ===")
		fmt.Printf("Total Archives: %d\n", s.Total)
		fmt.Printf("OK: %d\n", s.OK)
		fmt.Printf("Mismatched: %d\n", s.Mismatched)
		fmt.Printf("Unknown Version: %d\n", s.Unknown)
		fmt.Printf("Not In Catalog: %d\n", s.NotFound)
		fmt.Printf("Failed: %d\n", s.Failed)

		if jsonOutput {
			filename, err := saveReport("integrity", report)
			if err != nil {
				return err
			}
			fmt.Printf("\nDetailed JSON saved to: %s\n", filename)
		}

		if !report.Healthy() {
			return fmt.Errorf("%d archives failed verification", s.Mismatched+s.Failed)
		}
		return nil
	},
}

// mirrorCmd represents the verify mirror command
var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Check that every installed archive is mirrored",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.logger.Sync()

		missing, err := svc.integrity.CheckMirror(cmd.Context())
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			svc.logger.Info("Mirror is complete.")
			return nil
		}

		for _, g := range missing {
			svc.logger.Warn("Archive missing from mirror", zap.String("mod", g.Name), zap.String("file", g.FileName))
		}
		if !fixFlag {
			svc.logger.Info("Run with --fix to upload missing archives.")
			return nil
		}

		svc.logger.Info("Uploading missing archives...")
		if err := svc.integrity.FixMirror(cmd.Context(), missing); err != nil {
			return fmt.Errorf("failed to fix mirror: %w", err)
		}
		svc.logger.Info("Mirror fixed successfully.")
		return nil
	},
}

// schemaCmd represents the verify schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the download history table schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.logger.Sync()

		report, err := svc.integrity.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		switch report.Status {
		case "disabled":
			svc.logger.Info("Download history is disabled.")
		case "ok":
			svc.logger.Info("History schema matches expected definition.")
		default:
			svc.logger.Warn("Missing Columns", zap.Strings("columns", report.Missing))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(verifyCmd)
	verifyCmd.AddCommand(mirrorCmd, schemaCmd)

	verifyCmd.Flags().Bool("json", false, "Save the detailed report as JSON")
	mirrorCmd.Flags().BoolVar(&fixFlag, "fix", false, "Upload missing archives")
}
