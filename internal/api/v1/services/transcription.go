package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"complaintbox/internal/api/errors"
	"complaintbox/internal/app/transcriber"
)

// DefaultExtension is appended when the client supplied a filename
// without one. The engine sniffs formats by extension, so an
// extension-less temp file is a coin flip upstream.
const DefaultExtension = ".m4a"

// TranscriptionServiceImpl implements TranscriptionService.
type TranscriptionServiceImpl struct {
	engine  transcriber.Transcriber
	tempDir string
	logger  *slog.Logger
}

// NewTranscriptionService creates a transcription service writing
// temporary uploads under tempDir (os.TempDir when empty).
func NewTranscriptionService(engine transcriber.Transcriber, tempDir string, logger *slog.Logger) TranscriptionService {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &TranscriptionServiceImpl{
		engine:  engine,
		tempDir: tempDir,
		logger:  logger,
	}
}

// TranscribeUpload persists the upload to a temporary file, streams it
// to the engine, and returns the transcript. The temporary file is
// removed exactly once on every path; removal tolerates a file that is
// already gone.
func (s *TranscriptionServiceImpl) TranscribeUpload(ctx context.Context, audio io.Reader, originalName string) (string, error) {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = DefaultExtension
	}

	tempPath := filepath.Join(s.tempDir, uuid.New().String()+ext)

	out, err := os.Create(tempPath)
	if err != nil {
		return "", errors.Wrap(err, errors.KindInternal, "failed to create temporary file")
	}
	defer s.removeTemp(tempPath)

	if _, err := io.Copy(out, audio); err != nil {
		out.Close()
		return "", errors.Wrap(err, errors.KindInternal, "failed to write upload")
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrap(err, errors.KindInternal, "failed to write upload")
	}

	in, err := os.Open(tempPath)
	if err != nil {
		return "", errors.Wrap(err, errors.KindInternal, "failed to reopen upload")
	}
	defer in.Close()

	text, err := s.engine.Transcribe(ctx, in, tempPath)
	if err != nil {
		return "", errors.NewUpstreamError(err)
	}

	return text, nil
}

func (s *TranscriptionServiceImpl) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove temporary upload", "path", path, "error", err)
	}
}
