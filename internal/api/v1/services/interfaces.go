package services

import (
	"context"
	"io"

	"complaintbox/internal/api/v1/dto"
)

// TranscriptionService relays one uploaded audio stream to the
// transcription engine and manages the temporary file behind it.
type TranscriptionService interface {
	TranscribeUpload(ctx context.Context, audio io.Reader, originalName string) (string, error)
}

// AuthService implements registration and login against the user
// store.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}
