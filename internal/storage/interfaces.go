package storage

import (
	"context"
	"errors"
)

// Well-known document keys.
const (
	LearningDataKey = "learning-data"
	ProjectsKey     = "assistant-projects"
)

var ErrNotFound = errors.New("document not found")

// Store persists whole JSON documents under a fixed key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Pinger is implemented by stores backed by a network service.
type Pinger interface {
	Ping(ctx context.Context) error
}
