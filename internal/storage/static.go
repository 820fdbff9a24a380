package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"transcribe/internal/config"
)

// staticStorage builds URLs by joining a public base URL and the object key.
// It serves public buckets and local file servers.
type staticStorage struct {
	base *url.URL
}

// NewStatic returns a Storage resolving keys under baseURL.
func NewStatic(baseURL string) (Storage, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse storage base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("storage base url must be absolute: %q", baseURL)
	}
	return &staticStorage{base: u}, nil
}

func (s *staticStorage) FileURL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	return s.base.JoinPath(strings.TrimLeft(key, "/")).String(), nil
}

// New picks the static resolver when a public base URL is configured and MinIO otherwise.
func New(cfg config.MinIOConfig) (Storage, error) {
	if cfg.PublicBaseURL != "" {
		return NewStatic(cfg.PublicBaseURL)
	}
	return NewMinIO(cfg)
}
