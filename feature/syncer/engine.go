package syncer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"asset-sync/feature/asset"

	"go.uber.org/zap"
)

// compatibility partitions inputs into groups that can be synced together.
// Packable inputs would share an atlas; everything else syncs one by one.
type compatibility struct {
	packable bool
}

// Sync resolves a final (hash, id) pair for every discovered input, calling
// the strategy at most once per input per run. It must only run after
// discovery has fully completed: decisions assume a finalized, de-duplicated
// input index.
//
// Upload failures abort the remainder of the run.
func (s *Session) Sync(ctx context.Context, strategy UploadStrategy) error {
	groups := map[compatibility][]asset.Name{}
	for name, input := range s.inputs {
		key := compatibility{packable: input.InputConfig.Packable}
		groups[key] = append(groups[key], name)
	}

	// Fixed iteration order keeps runs reproducible regardless of how the
	// filesystem enumerated files during discovery.
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool { return group[i] < group[j] })
	}

	if packable := groups[compatibility{packable: true}]; len(packable) > 0 {
		// TODO: pack these into atlases and upload through the same
		// strategy once packing lands.
		s.log.Warn("Packing images is not supported yet; skipping packable inputs",
			zap.Int("count", len(packable)))
	}

	for _, name := range groups[compatibility{packable: false}] {
		input := s.inputs[name]

		s.log.Debug("Syncing input", zap.String("name", name.String()))

		if !isImageAsset(input.Path) {
			s.log.Warn("Didn't know what to do with asset", zap.String("path", input.Path))
			continue
		}

		if err := s.syncUnpackableImage(ctx, strategy, name); err != nil {
			return err
		}
	}

	// TODO: Clean up outputs of inputs that were present in the previous
	// sync but are no longer present.

	return nil
}

// syncUnpackableImage applies the manifest-diff decision procedure to one
// image input: reuse the previous identifier when nothing changed, upload
// otherwise.
func (s *Session) syncUnpackableImage(ctx context.Context, strategy UploadStrategy, name asset.Name) error {
	input := s.inputs[name]

	contents, err := os.ReadFile(input.Path)
	if err != nil {
		return fmt.Errorf("read input %q: %w", input.Path, err)
	}
	hash := HashContents(contents)

	input.Hash = hash

	previous, hasPrevious := s.originalManifest.Inputs[name]

	var reason string
	switch {
	case !hasPrevious:
		reason = "input was added since the last sync"
	case previous.Hash != hash:
		reason = "contents changed"
	case previous.ID == "":
		reason = "input has never been uploaded"
	case previous.Config != *input.InputConfig:
		// Only the input's config changed. The stored asset cannot be
		// proven to still match the new settings, so reupload.
		reason = "config changed"
	default:
		// Nothing changed; keep the previous identifier without any
		// network call.
		s.log.Debug("Input is unchanged", zap.String("name", name.String()))
		input.ID = previous.ID
		return nil
	}

	s.log.Info("Uploading asset",
		zap.String("name", name.String()),
		zap.String("reason", reason),
		zap.String("previous_id", previous.ID))

	response, err := strategy.Upload(ctx, UploadData{
		Name:     name,
		Contents: contents,
		Hash:     hash,
	})
	if err != nil {
		return fmt.Errorf("upload %q: %w", name, err)
	}

	s.log.Info("Uploaded asset",
		zap.String("name", name.String()),
		zap.String("previous_id", previous.ID),
		zap.String("id", response.ID))

	input.ID = response.ID

	return nil
}

func isImageAsset(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

// HashContents returns the hex sha256 digest of raw file bytes.
// Bit-identical content always yields the same hash.
func HashContents(contents []byte) string {
	digest := sha256.Sum256(contents)
	return hex.EncodeToString(digest[:])
}
