package extract

import (
	"context"
	"io"
)

// Provider turns an uploaded document into plain text. The backend never
// parses PDF binary format itself; extraction runs in a sidecar service
// (Tika-compatible: PUT body in, text out).
type Provider interface {
	Extract(ctx context.Context, r io.Reader, mimeType string) (string, error)
}
