package cmd

import (
	"context"
	"fmt"
	"os"

	"asset-sync/core/config"
	"asset-sync/core/logger"
	"asset-sync/core/storage"
	"asset-sync/feature/syncer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	// TargetRemote uploads assets to the configured remote store.
	TargetRemote = "remote"
	// TargetContentFolder mirrors assets into a local content folder.
	TargetContentFolder = "content-folder"
)

var syncTarget string

// syncCmd runs a full incremental sync of a project.
var syncCmd = &cobra.Command{
	Use:   "sync [path]",
	Short: "Synchronize project assets against the remote store",
	Long: `Synchronize the assets of a project against the asset store.

The path argument names either an assetsync.toml file or a folder
containing one; it defaults to the current directory. Every config
reachable through includes takes part in the run.

Examples:
  # Sync the project in the current directory to the remote store
  assetsync sync

  # Sync a specific project
  assetsync sync path/to/project

  # Mirror into a local content folder instead of uploading
  assetsync sync --target content-folder`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncTarget, "target", TargetRemote, "Upload target (remote or content-folder)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	configPath := "."
	if len(args) > 0 {
		configPath = args[0]
	} else if wd, err := os.Getwd(); err == nil {
		configPath = wd
	}

	// Pick the upload strategy before any sync work so auth problems
	// surface immediately.
	var strategy syncer.UploadStrategy
	switch syncTarget {
	case TargetRemote:
		if !cfg.Storage.HasCredentials() {
			return syncer.ErrNoAuth
		}
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		strategy = syncer.NewRemoteStoreStrategy(client, cfg.Storage.Bucket, cfg.Sync.KeyPrefix, l)
	case TargetContentFolder:
		strategy = syncer.ContentFolderStrategy{}
	default:
		return fmt.Errorf("unknown sync target %q", syncTarget)
	}

	session, err := syncer.NewSession(configPath, l)
	if err != nil {
		return err
	}

	l.Info("Starting sync",
		zap.String("session_id", session.ID()),
		zap.String("config", session.RootConfig().Name),
		zap.String("target", syncTarget))

	if err := session.DiscoverConfigs(); err != nil {
		return err
	}
	if err := session.DiscoverInputs(); err != nil {
		return err
	}
	if err := session.Sync(ctx, strategy); err != nil {
		return err
	}
	if err := session.WriteManifest(); err != nil {
		return err
	}
	if err := session.Codegen(); err != nil {
		return err
	}

	l.Info("Sync complete", zap.String("session_id", session.ID()))

	return nil
}
