package cmd

import (
	"fmt"

	"content-sync/core/config"
	"content-sync/core/logger"
	"content-sync/feature/content"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// validateCmd canonicalizes the authored content without touching storage or
// the content store.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the authored content without syncing",
	Long: `Load the authored content and run the full canonicalization pipeline.
Reports every entity that fails validation. Nothing is written anywhere.`,
	RunE: runValidate,
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	courses, err := content.LoadCoursesDir(cfg.Content.CoursesDir)
	if err != nil {
		return err
	}
	bundles, err := content.LoadBundlesFile(cfg.Content.BundlesFile)
	if err != nil {
		return err
	}
	icons, err := content.LoadIconsFile(cfg.Content.IconsFile)
	if err != nil {
		return err
	}

	invalid := 0
	for _, course := range courses {
		if err := course.Canonicalize(); err != nil {
			invalid++
			l.Error("Invalid course", zap.String("key", course.Key), zap.Error(err))
		}
	}
	for _, bundle := range bundles {
		if err := bundle.Canonicalize(); err != nil {
			invalid++
			l.Error("Invalid bundle", zap.String("key", bundle.Key), zap.Error(err))
		}
	}
	for _, icon := range icons {
		if err := icon.Canonicalize(); err != nil {
			invalid++
			l.Error("Invalid icon", zap.String("key", icon.Key), zap.Error(err))
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d invalid entities found", invalid)
	}

	l.Info("All content valid",
		zap.Int("courses", len(courses)),
		zap.Int("bundles", len(bundles)),
		zap.Int("icons", len(icons)),
	)
	return nil
}
