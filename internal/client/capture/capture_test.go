package capture

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaintbox/internal/client/ledger"
	"complaintbox/internal/client/relay"
	"complaintbox/internal/client/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeClip(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.m4a")
	require.NoError(t, os.WriteFile(path, []byte("fake audio"), 0o644))
	return path
}

// relayStub runs a minimal /upload endpoint for the client to hit.
func relayStub(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/upload", func(c *gin.Context) {
		_, _, err := c.Request.FormFile("audio")
		require.NoError(t, err)
		c.Data(status, "application/json", []byte(body))
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestCaptureToTranscript(t *testing.T) {
	srv := relayStub(t, http.StatusOK, `{"transcription":"fix the light"}`)
	clip := writeClip(t)

	sess := NewSession(GrantedMicrophone{}, FileRecorder{Path: clip}, relay.NewClient(srv.URL), discardLogger())
	ctx := context.Background()

	require.NoError(t, sess.StartRecording(ctx))
	assert.Equal(t, StateRecording, sess.State())

	require.NoError(t, sess.StopRecording(ctx))
	assert.Equal(t, StateIdle, sess.State())
	assert.Equal(t, OutcomeTranscribed, sess.Outcome())
	assert.Equal(t, "fix the light", sess.Caption())
	assert.Equal(t, clip, sess.AudioURI())

	// The transcript flows into the ledger entry as its caption.
	kv, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer kv.Close()
	l := ledger.NewStore(kv, discardLogger())

	require.NoError(t, l.Append(ledger.Entry{AudioURI: sess.AudioURI(), Caption: sess.Caption()}))
	first := l.Entries()[0]
	assert.Equal(t, "fix the light", first.Caption)
	assert.NotEmpty(t, first.AudioURI)
}

func TestUploadFailurePreservesRecording(t *testing.T) {
	// A dead relay: the capture survives, only the caption is lost.
	srv := relayStub(t, http.StatusOK, `{}`)
	srv.Close()
	clip := writeClip(t)

	kv, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer kv.Close()
	l := ledger.NewStore(kv, discardLogger())

	sess := NewSession(GrantedMicrophone{}, FileRecorder{Path: clip}, relay.NewClient(srv.URL), discardLogger())
	ctx := context.Background()

	require.NoError(t, sess.StartRecording(ctx))
	require.NoError(t, sess.StopRecording(ctx))

	assert.Equal(t, StateIdle, sess.State())
	assert.Equal(t, OutcomeUploadFailed, sess.Outcome())
	assert.NotEmpty(t, sess.Notice())
	assert.Empty(t, sess.Caption())
	assert.Equal(t, clip, sess.AudioURI(), "captured audio is preserved")
	assert.Empty(t, l.Entries(), "ledger is unchanged by the failure")

	// The recording is still usable for an entry with an empty caption.
	require.NoError(t, l.Append(ledger.Entry{AudioURI: sess.AudioURI(), Caption: sess.Caption()}))
	assert.Len(t, l.Entries(), 1)
	assert.Empty(t, l.Entries()[0].Caption)
}

func TestEngineErrorSurfacesNotice(t *testing.T) {
	srv := relayStub(t, http.StatusInternalServerError, `{"error":"quota exceeded"}`)
	clip := writeClip(t)

	sess := NewSession(GrantedMicrophone{}, FileRecorder{Path: clip}, relay.NewClient(srv.URL), discardLogger())
	ctx := context.Background()

	require.NoError(t, sess.StartRecording(ctx))
	require.NoError(t, sess.StopRecording(ctx))

	assert.Equal(t, OutcomeUploadFailed, sess.Outcome())
	assert.NotEmpty(t, sess.Notice())
}

func TestPermissionDeniedStaysIdle(t *testing.T) {
	sess := NewSession(DeniedMicrophone{}, FileRecorder{Path: "unused"}, nil, discardLogger())

	err := sess.StartRecording(context.Background())
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, StateIdle, sess.State())
	assert.NotEmpty(t, sess.Notice())
}

func TestWrongStateTransitions(t *testing.T) {
	srv := relayStub(t, http.StatusOK, `{"transcription":"ok"}`)
	clip := writeClip(t)

	sess := NewSession(GrantedMicrophone{}, FileRecorder{Path: clip}, relay.NewClient(srv.URL), discardLogger())
	ctx := context.Background()

	assert.ErrorIs(t, sess.StopRecording(ctx), ErrWrongState)

	require.NoError(t, sess.StartRecording(ctx))
	assert.ErrorIs(t, sess.StartRecording(ctx), ErrWrongState)
}
