// Package storage holds off-site snapshot storage. Snapshots are the JSON
// backups of a year plan, pushed to an S3-compatible bucket on demand.
package storage

import (
	"context"
	"time"
)

// BackupRepository stores backup snapshots off-site
type BackupRepository interface {
	// Upload stores a snapshot under key and returns the stored object path
	Upload(ctx context.Context, key string, data []byte) (string, error)

	// GeneratePresignedURL generates a presigned GET URL for temporary access
	GeneratePresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
