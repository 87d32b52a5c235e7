package minio

import (
	"context"
	"strings"
	"testing"

	"Yatube/internal/api/config"

	"github.com/stretchr/testify/assert"
)

func TestGetPublicURL(t *testing.T) {
	config.Cfg = &config.Config{MinIO: config.MinIOConfig{
		ExternalEndpoint: "cdn.example.com",
		ExternalUseSSL:   true,
		Bucket:           "yatube",
	}}
	t.Cleanup(func() { config.Cfg = nil })

	assert.Equal(t, "https://cdn.example.com/yatube/posts/a.jpg", GetPublicURL("posts/a.jpg"))
}

func TestStore_NotInitialized(t *testing.T) {
	Client = nil
	s := NewStore()
	assert.ErrorIs(t, s.Upload(context.Background(), "k", strings.NewReader("x"), 1, "image/jpeg"), errNotInitialized)
	assert.ErrorIs(t, s.Delete(context.Background(), "k"), errNotInitialized)
}
