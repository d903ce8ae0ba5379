package capture

import (
	"context"
	"errors"
	"log/slog"
)

// State is the capture session's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateStopped
	StateUploading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateStopped:
		return "stopped"
	case StateUploading:
		return "uploading"
	default:
		return "unknown"
	}
}

// Outcome records how the last capture/upload cycle ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeTranscribed
	OutcomeUploadFailed
)

// ErrPermissionDenied is returned when the microphone capability is
// not granted; the session stays idle.
var ErrPermissionDenied = errors.New("microphone permission denied")

// ErrWrongState is returned for a transition the current state does
// not allow.
var ErrWrongState = errors.New("capture session is not in the right state")

// Microphone models the platform permission capability.
type Microphone interface {
	RequestPermission(ctx context.Context) (bool, error)
}

// Recorder captures audio to a local file reference.
type Recorder interface {
	Start(ctx context.Context) error
	// Stop finalizes the capture and returns the local file URI.
	Stop(ctx context.Context) (string, error)
}

// Uploader sends a finished recording to the relay and returns the
// transcript. Satisfied by relay.Client.
type Uploader interface {
	Upload(ctx context.Context, audioPath string) (string, error)
}

// Session drives one capture at a time: Idle -> Recording -> Stopped
// -> Uploading -> back to Idle with either a transcript-filled caption
// or a failure notice. The client issues a single cycle at a time, so
// no two uploads interleave.
type Session struct {
	mic      Microphone
	recorder Recorder
	uploader Uploader
	logger   *slog.Logger

	state    State
	outcome  Outcome
	audioURI string
	caption  string
	notice   string
}

// NewSession creates an idle capture session.
func NewSession(mic Microphone, recorder Recorder, uploader Uploader, logger *slog.Logger) *Session {
	return &Session{
		mic:      mic,
		recorder: recorder,
		uploader: uploader,
		logger:   logger,
	}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Outcome returns how the last cycle ended.
func (s *Session) Outcome() Outcome { return s.outcome }

// AudioURI returns the captured local file reference. It is preserved
// even when the upload fails, so the recording can still be attached
// to an entry without a caption.
func (s *Session) AudioURI() string { return s.audioURI }

// Caption returns the pre-filled caption from the transcript, empty
// until a cycle succeeds.
func (s *Session) Caption() string { return s.caption }

// Notice returns the user-visible message from the last failure.
func (s *Session) Notice() string { return s.notice }

// StartRecording moves Idle -> Recording after the microphone
// permission is granted. A denied permission keeps the session idle
// and surfaces a notice.
func (s *Session) StartRecording(ctx context.Context) error {
	if s.state != StateIdle {
		return ErrWrongState
	}

	granted, err := s.mic.RequestPermission(ctx)
	if err != nil {
		return err
	}
	if !granted {
		s.notice = "Audio recording access is needed."
		return ErrPermissionDenied
	}

	if err := s.recorder.Start(ctx); err != nil {
		return err
	}
	s.state = StateRecording
	s.outcome = OutcomeNone
	s.notice = ""
	return nil
}

// StopRecording finalizes the capture and immediately uploads it. On
// success the transcript becomes the caption; on failure the session
// surfaces a notice. Either way it returns to Idle and keeps the
// recorded audio reference. No automatic retry is attempted.
func (s *Session) StopRecording(ctx context.Context) error {
	if s.state != StateRecording {
		return ErrWrongState
	}

	uri, err := s.recorder.Stop(ctx)
	if err != nil {
		s.state = StateIdle
		return err
	}
	s.state = StateStopped
	s.audioURI = uri

	s.state = StateUploading
	text, err := s.uploader.Upload(ctx, uri)
	s.state = StateIdle

	if err != nil {
		s.logger.Warn("transcription failed", "error", err)
		s.outcome = OutcomeUploadFailed
		s.notice = "Audio transcription failed. Make sure your internet is working."
		return nil
	}

	s.outcome = OutcomeTranscribed
	s.caption = text
	return nil
}

// SetCaption lets the user edit the pre-filled caption before the
// entry is created.
func (s *Session) SetCaption(caption string) {
	s.caption = caption
}

// GrantedMicrophone always grants permission. The CLI runs where
// there is no OS permission broker.
type GrantedMicrophone struct{}

func (GrantedMicrophone) RequestPermission(context.Context) (bool, error) { return true, nil }

// DeniedMicrophone always denies permission. Used by tests.
type DeniedMicrophone struct{}

func (DeniedMicrophone) RequestPermission(context.Context) (bool, error) { return false, nil }

// FileRecorder treats an existing audio file as the finished capture:
// Start is a no-op and Stop hands back the path.
type FileRecorder struct {
	Path string
}

func (FileRecorder) Start(context.Context) error { return nil }

func (r FileRecorder) Stop(context.Context) (string, error) { return r.Path, nil }
