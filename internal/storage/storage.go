package storage

import (
	"context"
	"io"
	"time"
)

// Uploader persists uploaded résumé files. The returned storedPath is the
// object key recorded on the resume row, never a public URL.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

// Signer mints short-lived read URLs for stored objects. Uploads are private
// so this is the only way a client gets the raw file back.
type Signer interface {
	SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}
