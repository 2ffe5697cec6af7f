package storage

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// New picks the Store for the configured backend. db and rdb may be nil when
// the backend does not need them.
func New(backend, dir string, db *gorm.DB, rdb *redis.Client) (Store, error) {
	switch backend {
	case "memory":
		return NewMemoryStore(), nil
	case "file", "":
		return NewFileStore(dir)
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis backend selected but no redis connection")
		}
		return NewRedisStore(rdb), nil
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("postgres backend selected but no database connection")
		}
		return NewPostgresStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
