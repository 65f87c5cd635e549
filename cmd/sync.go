package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"content-sync/core/config"
	"content-sync/core/database"
	"content-sync/core/logger"
	"content-sync/core/storage"
	"content-sync/feature/content"
	contentsync "content-sync/feature/content/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	applySync      bool
	bestEffortSync bool
	yesConfirm     bool
)

// syncCmd diffs the authored content against the store and optionally applies.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync authored content to the content store (plan + optionally apply)",
	Long: `Load and canonicalize the authored content, rename stored images to their
canonical names, diff the result against the last synced state and report what
would change.

Examples:
  # Report only (plan)
  content-sync sync

  # Apply the plan (with interactive confirmation)
  content-sync sync --apply

  # Apply with auto-confirm (non-interactive)
  content-sync sync --apply --yes

  # Skip invalid entities instead of aborting the batch
  content-sync sync --apply --best-effort`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&applySync, "apply", false, "Apply the plan to the content store")
	syncCmd.Flags().BoolVar(&bestEffortSync, "best-effort", false, "Skip entities failing validation instead of aborting")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm applying the plan (non-interactive)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to content store: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	svc := content.NewService(cfg.Content, client, cfg.Storage.Bucket, db, l)

	set, err := svc.LoadSet()
	if err != nil {
		return err
	}

	failures, err := svc.Prepare(ctx, set, bestEffortSync)
	if err != nil {
		return err
	}
	for _, failure := range failures {
		l.Warn("Skipped invalid entity",
			zap.String("collection", failure.Collection),
			zap.String("key", failure.Key),
			zap.String("reason", failure.Reason),
		)
	}

	plan, err := svc.Plan(ctx, set)
	if err != nil {
		return err
	}

	printPlanReport(l, plan)

	if plan.IsEmpty() {
		l.Info("Content already in sync, nothing to do.")
		return nil
	}

	if !applySync {
		l.Info("Plan only. Use --apply to write the changes to the content store.")
		return nil
	}

	if !confirmApply() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	if _, err := svc.Apply(ctx, set); err != nil {
		return err
	}

	l.Info("Sync applied successfully")
	return nil
}

// printPlanReport prints the per-collection plan summary using the logger.
func printPlanReport(l *zap.Logger, plan *contentsync.Plan) {
	counts := plan.Counts()

	collections := make([]string, 0, len(counts))
	for collection := range counts {
		collections = append(collections, collection)
	}
	sort.Strings(collections)

	for _, collection := range collections {
		c := counts[collection]
		if c.ForSync == 0 && c.ForDeletion == 0 {
			continue
		}
		l.Info("Planned changes",
			zap.String("collection", collection),
			zap.Int("for_sync", c.ForSync),
			zap.Int("for_deletion", c.ForDeletion),
		)
	}
}

// confirmApply prompts the user for confirmation or uses the --yes flag.
func confirmApply() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to apply the plan to the content store: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
