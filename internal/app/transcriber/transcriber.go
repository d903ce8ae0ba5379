package transcriber

import (
	"context"
	"io"
)

// Transcriber converts an audio stream to text. The filename carries
// the extension the engine uses for format sniffing. Implementations
// treat the engine as opaque: bytes in, text out, or an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}
