package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcribe/internal/config"
)

func TestNewStatic(t *testing.T) {
	s, err := NewStatic("https://cdn.example.org/pages/")
	require.NoError(t, err)

	u, err := s.FileURL(context.Background(), "files/abc/scan 001.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.org/pages/files/abc/scan%20001.jpg", u)

	_, err = s.FileURL(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestNewStatic_RejectsRelative(t *testing.T) {
	_, err := NewStatic("pages/")
	assert.Error(t, err)
}

func TestNew_PrefersPublicBaseURL(t *testing.T) {
	s, err := New(config.MinIOConfig{PublicBaseURL: "http://localhost:9000/bucket"})
	require.NoError(t, err)
	_, ok := s.(*staticStorage)
	assert.True(t, ok)
}

func TestNewMinIO_Validation(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.MinIOConfig
	}{
		{"missing endpoint", config.MinIOConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"}},
		{"missing credentials", config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "b"}},
		{"missing bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMinIO(tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestMinIOStorage_FileURLPresigns(t *testing.T) {
	cfg := config.MinIOConfig{
		Endpoint:         "localhost:9000",
		AccessKey:        "minio",
		SecretKey:        "minio123",
		Bucket:           "pages",
		Region:           "us-east-1",
		PresignExpirySec: 600,
	}
	cli, err := newMinIOClient(cfg)
	require.NoError(t, err)
	s := newMinIOStorage(cli, cfg)
	assert.Equal(t, 10*time.Minute, s.expiry)

	raw, err := s.FileURL(context.Background(), "files/abc/scan001.jpg")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/pages/files/abc/scan001.jpg", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))

	_, err = s.FileURL(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}
