package storage

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultUploadTimeout bounds a whole ingestion batch.
const DefaultUploadTimeout = 30 * time.Second

// Ingestor validates and uploads image batches. All files of a batch are
// uploaded concurrently and all must succeed; on any failure the caller gets
// an error and must not persist anything referencing the batch. Orphans left
// behind in the blob store by a partial failure are not reconciled here.
type Ingestor struct {
	Store   BlobStore
	Timeout time.Duration
}

func NewIngestor(store BlobStore) *Ingestor {
	return &Ingestor{Store: store, Timeout: DefaultUploadTimeout}
}

// Ingest uploads every file and returns their public URLs in input order.
// Extensions are validated up front so no bytes move for a rejected batch.
func (ing *Ingestor) Ingest(ctx context.Context, files []Upload) ([]string, error) {
	for _, f := range files {
		if err := ValidateExt(f.OriginalName); err != nil {
			return nil, err
		}
	}

	timeout := ing.Timeout
	if timeout <= 0 {
		timeout = DefaultUploadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	urls := make([]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			name := ObjectName(f.OriginalName)
			url, err := ing.Store.Put(ctx, name, f.Data, contentTypeFor(f.OriginalName))
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
