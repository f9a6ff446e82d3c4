// Package archive persists prompt/response exchanges to Cloud Storage so
// rejected model output can be inspected after the run. Archiving is best
// effort: failures are logged by the caller and never fail a user.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Writer archives exchanges into a fixed GCS bucket.
type Writer struct {
	client *storage.Client
	bucket string
}

// exchange is the archived object payload.
type exchange struct {
	UID        string    `json:"uid"`
	Prompt     string    `json:"prompt"`
	Response   string    `json:"response"`
	ArchivedAt time.Time `json:"archived_at"`
}

// NewWriter creates an archive writer. It assumes Application Default
// Credentials are configured, same as the BigQuery client.
func NewWriter(ctx context.Context, bucket string) (*Writer, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewWriter: create storage client: %w", err)
	}
	return &Writer{
		client: client,
		bucket: bucket,
	}, nil
}

// Close releases the underlying storage client.
func (w *Writer) Close() error {
	if w.client != nil {
		return w.client.Close()
	}
	return nil
}

// ArchiveExchange writes one prompt/response pair as a JSON object under
// advisor-runs/<date>/<uid>/.
func (w *Writer) ArchiveExchange(ctx context.Context, uid, prompt, response string) error {
	now := time.Now()
	data, err := json.MarshalIndent(exchange{
		UID:        uid,
		Prompt:     prompt,
		Response:   response,
		ArchivedAt: now,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("ArchiveExchange: marshal payload: %w", err)
	}

	obj := w.client.Bucket(w.bucket).Object(objectName(uid, now))

	wr := obj.NewWriter(ctx)
	wr.ContentType = "application/json"
	if _, err := wr.Write(data); err != nil {
		_ = wr.Close()
		return fmt.Errorf("ArchiveExchange: write object: %w", err)
	}
	if err := wr.Close(); err != nil {
		return fmt.Errorf("ArchiveExchange: finalize object: %w", err)
	}

	return nil
}

// objectName builds the archive path for one exchange, e.g.
// "advisor-runs/2026-08-30/user-1/6f1e....json".
func objectName(uid string, ts time.Time) string {
	return fmt.Sprintf("advisor-runs/%s/%s/%s.json", civil.DateOf(ts), uid, uuid.NewString())
}
