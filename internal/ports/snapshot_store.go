package ports

import "context"

// SnapshotStore persists exported session snapshots (HTML, markdown)
// under caller-supplied keys.
type SnapshotStore interface {
	Put(ctx context.Context, key string, content string) (string, error)
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
