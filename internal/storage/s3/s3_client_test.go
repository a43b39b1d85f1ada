package s3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billkit/internal/config"
	s3store "billkit/internal/storage/s3"
)

func TestNewS3Client_StaticCredentials(t *testing.T) {
	store, err := s3store.NewS3Client(&config.S3Config{
		Region:    "ap-south-1",
		Bucket:    "snapshots",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio-secret",
	})
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestNewS3Client_DefaultChain(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	store, err := s3store.NewS3Client(&config.S3Config{Region: "ap-south-1", Bucket: "snapshots"})
	require.NoError(t, err)
	assert.NotNil(t, store)
}
