package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// JetStreamStore is the production BlobStore, backed by a NATS JetStream
// object store bucket fronted by a public file gateway.
type JetStreamStore struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	store   jetstream.ObjectStore
	bucket  string
	baseURL string
}

// NewJetStreamStore connects to NATS and binds (or creates) the bucket.
// baseURL is the public prefix objects are served from.
func NewJetStreamStore(ctx context.Context, natsURL, bucket, baseURL string) (*JetStreamStore, error) {
	conn, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	s := &JetStreamStore{
		conn:    conn,
		js:      js,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}

	store, err := js.ObjectStore(ctx, bucket)
	if err != nil {
		store, err = js.CreateObjectStore(ctx, jetstream.ObjectStoreConfig{
			Bucket:      bucket,
			Description: "product and profile images",
		})
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create object store bucket: %w", err)
		}
	}
	s.store = store
	return s, nil
}

// Put stores the blob and returns its public URL.
func (s *JetStreamStore) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	meta := jetstream.ObjectMeta{
		Name: name,
		Headers: nats.Header{
			"Content-Type": []string{contentType},
		},
	}
	if _, err := s.store.Put(ctx, meta, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to store object: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// Close releases the NATS connection.
func (s *JetStreamStore) Close() {
	s.conn.Close()
}
