package storage

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	miniogo "github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/minio"
)

// setupCaptureStore starts a MinIO container, creates the capture bucket and
// returns a store pointed at it.
func setupCaptureStore(t *testing.T) CaptureStore {
	t.Helper()

	ctx := context.Background()

	container, err := minio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		minio.WithUsername("minioadmin"),
		minio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	minioClient, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  miniocreds.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err)
	require.NoError(t, minioClient.MakeBucket(ctx, "vibesense-test", miniogo.MakeBucketOptions{}))

	store, err := NewCaptureStore(S3Config{
		Bucket:    "vibesense-test",
		Endpoint:  endpoint,
		Region:    "us-east-1",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)

	return store
}

func TestCaptureStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	store := setupCaptureStore(t)
	ctx := context.Background()

	key := "captures/test/run1.csv"
	payload := []byte("timestamp,ch1\n0.000,12.5\n0.001,13.0\n")

	t.Run("upload via presigned URL", func(t *testing.T) {
		uploadURL, err := store.GenerateUploadURL(ctx, key, "text/csv")
		require.NoError(t, err)
		require.NotEmpty(t, uploadURL)

		req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "text/csv")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("download", func(t *testing.T) {
		data, err := store.DownloadFile(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("download via presigned URL", func(t *testing.T) {
		downloadURL, err := store.GenerateDownloadURL(ctx, key)
		require.NoError(t, err)

		resp, err := http.Get(downloadURL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteFile(ctx, key))

		_, err := store.DownloadFile(ctx, key)
		assert.Error(t, err)
	})

	t.Run("rejects unknown content type", func(t *testing.T) {
		_, err := store.GenerateUploadURL(ctx, key, "image/png")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid content type")
	})
}
