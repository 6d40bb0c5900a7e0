package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"asset-sync/core/config"
	"asset-sync/core/logger"
	"asset-sync/core/storage"
	"asset-sync/feature/asset"
	"asset-sync/feature/syncer"

	"github.com/spf13/cobra"
)

// uploadCmd uploads one file to the remote store outside of any project.
var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a single file to the remote store",
	Long: `Upload one file to the remote asset store and print its identifier.

This bypasses project configs and the manifest entirely; it is useful for
one-off assets and for verifying store credentials.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	RootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !cfg.Storage.HasCredentials() {
		return syncer.ErrNoAuth
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	path := args[0]
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}

	strategy := syncer.NewRemoteStoreStrategy(client, cfg.Storage.Bucket, cfg.Sync.KeyPrefix, l)

	response, err := strategy.Upload(ctx, syncer.UploadData{
		Name:     asset.Name(filepath.Base(path)),
		Contents: contents,
		Hash:     syncer.HashContents(contents),
	})
	if err != nil {
		return err
	}

	fmt.Println(response.ID)

	return nil
}
