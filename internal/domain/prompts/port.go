package prompts

import "context"

// Repository port for the prompt history table. Create assigns ID and
// CreatedAt when they are empty. Delete of an unknown id is not an error.
type Repository interface {
	Create(ctx context.Context, r *Record) error
	List(ctx context.Context) ([]*Record, error)
	Delete(ctx context.Context, id RecordID) error
}

// PreviewStore keeps image previews out of the table and hands back a URL.
type PreviewStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
