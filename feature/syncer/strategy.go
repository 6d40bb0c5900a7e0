package syncer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"asset-sync/core/storage"
	"asset-sync/feature/asset"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrNoAuth reports that the selected upload strategy needs storage
// credentials and none are configured. It surfaces before any sync work
// begins.
var ErrNoAuth = errors.New("sync to the remote store requires storage credentials")

// UploadData carries everything a strategy needs to transmit one asset.
type UploadData struct {
	Name     asset.Name
	Contents []byte
	Hash     string
}

// UploadResponse is the outcome of a successful upload.
type UploadResponse struct {
	// ID is the identifier of the asset in the store.
	ID string
}

// UploadStrategy is the injected collaborator responsible for actually
// transmitting asset bytes and returning an identifier. The engine depends
// only on this interface, never on a concrete variant.
type UploadStrategy interface {
	Upload(ctx context.Context, data UploadData) (UploadResponse, error)
}

// RemoteStoreStrategy uploads assets to an S3-compatible object store.
//
// Objects are content-addressed: the key is derived from the content hash,
// so re-uploading identical bytes lands on the same key and an object that
// already exists is not transferred again.
type RemoteStoreStrategy struct {
	client    storage.Client
	bucket    string
	keyPrefix string
	log       *zap.Logger

	bucketReady bool
}

// NewRemoteStoreStrategy returns a strategy uploading into bucket under
// keyPrefix.
func NewRemoteStoreStrategy(client storage.Client, bucket, keyPrefix string, log *zap.Logger) *RemoteStoreStrategy {
	return &RemoteStoreStrategy{
		client:    client,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		log:       log,
	}
}

// Upload implements UploadStrategy.
func (r *RemoteStoreStrategy) Upload(ctx context.Context, data UploadData) (UploadResponse, error) {
	if err := r.ensureBucket(ctx); err != nil {
		return UploadResponse{}, err
	}

	key := path.Join(r.keyPrefix, data.Hash+strings.ToLower(filepath.Ext(string(data.Name))))

	// Content-addressed keys make the existence probe safe: a hit can
	// only ever be the same bytes.
	if _, err := r.client.StatObject(ctx, r.bucket, key, minio.StatObjectOptions{}); err == nil {
		r.log.Debug("Object already present in store",
			zap.String("name", data.Name.String()),
			zap.String("key", key))
		return UploadResponse{ID: key}, nil
	}

	_, err := r.client.PutObject(ctx, r.bucket, key, bytes.NewReader(data.Contents), int64(len(data.Contents)), minio.PutObjectOptions{
		ContentType: contentTypeFor(string(data.Name)),
	})
	if err != nil {
		return UploadResponse{}, fmt.Errorf("put object %q: %w", key, err)
	}

	return UploadResponse{ID: key}, nil
}

// ensureBucket verifies the target bucket once per strategy lifetime,
// creating it on first use.
func (r *RemoteStoreStrategy) ensureBucket(ctx context.Context) error {
	if r.bucketReady {
		return nil
	}

	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", r.bucket, err)
	}
	if !exists {
		r.log.Info("Creating bucket", zap.String("bucket", r.bucket))
		if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %q: %w", r.bucket, err)
		}
	}

	r.bucketReady = true
	return nil
}

// ContentFolderStrategy would mirror assets into a local content folder
// instead of a remote store. It is a placeholder: selecting it fails on the
// first upload.
type ContentFolderStrategy struct{}

// Upload implements UploadStrategy.
func (ContentFolderStrategy) Upload(context.Context, UploadData) (UploadResponse, error) {
	return UploadResponse{}, errors.New("content folder uploads are not implemented yet")
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
