package analysis

import "context"

// HistoryRepository port (interface for persistence)
type HistoryRepository interface {
	Save(ctx context.Context, rec *Record) error
	Latest(ctx context.Context, userID int64, limit int) ([]*Record, error)
}

// ArtifactStore port (interface for archiving uploaded documents)
type ArtifactStore interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
