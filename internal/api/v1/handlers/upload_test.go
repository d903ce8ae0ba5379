package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaintbox/internal/api/v1/handlers"
	"complaintbox/internal/api/v1/services"
)

// fakeEngine implements transcriber.Transcriber with a programmable
// response and a call counter.
type fakeEngine struct {
	text  string
	err   error
	calls int

	// onCall lets a test delete the temp file mid-request to exercise
	// the removal race.
	onCall func(filename string)
}

func (f *fakeEngine) Transcribe(_ context.Context, audio io.Reader, filename string) (string, error) {
	f.calls++
	if f.onCall != nil {
		f.onCall(filename)
	}
	if _, err := io.ReadAll(audio); err != nil {
		return "", err
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func setupUploadRouter(t *testing.T, engine *fakeEngine) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tempDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := services.NewTranscriptionService(engine, tempDir, logger)

	router := gin.New()
	handler := handlers.NewUploadHandler(service)
	router.POST("/upload", handler.Upload)

	return router, tempDir
}

func multipartAudio(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func tempFileCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestUploadHandler(t *testing.T) {
	tests := []struct {
		name           string
		engine         *fakeEngine
		fieldName      string
		fileName       string
		expectedStatus int
		expectedCalls  int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:           "successful transcription",
			engine:         &fakeEngine{text: "fix the light"},
			fieldName:      "audio",
			fileName:       "audio.m4a",
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "fix the light", body["transcription"])
			},
		},
		{
			name:           "engine failure passes message through",
			engine:         &fakeEngine{err: errors.New("quota exceeded")},
			fieldName:      "audio",
			fileName:       "audio.m4a",
			expectedStatus: http.StatusInternalServerError,
			expectedCalls:  1,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "quota exceeded", body["error"])
			},
		},
		{
			name:           "missing file field skips the engine",
			engine:         &fakeEngine{text: "never seen"},
			fieldName:      "wrong_field",
			fileName:       "audio.m4a",
			expectedStatus: http.StatusBadRequest,
			expectedCalls:  0,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "bad_request", body["kind"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, tempDir := setupUploadRouter(t, tt.engine)

			body, contentType := multipartAudio(t, tt.fieldName, tt.fileName, []byte("fake audio bytes"))
			req := httptest.NewRequest("POST", "/upload", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedCalls, tt.engine.calls)

			var responseBody map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &responseBody))
			tt.validateBody(t, responseBody)

			// The temporary file is gone on every path.
			assert.Equal(t, 0, tempFileCount(t, tempDir))
		})
	}
}

func TestUploadHandler_TempFileAlreadyGone(t *testing.T) {
	// An engine (or anything else) racing the cleanup must not break
	// the request: removal tolerates a file that is already deleted.
	engine := &fakeEngine{text: "still fine"}
	engine.onCall = func(filename string) {
		require.NoError(t, os.Remove(filename))
	}

	router, tempDir := setupUploadRouter(t, engine)

	body, contentType := multipartAudio(t, "audio", "clip.wav", []byte("bytes"))
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, tempFileCount(t, tempDir))
}

func TestUploadHandler_ExtensionFallback(t *testing.T) {
	var seenExt string
	engine := &fakeEngine{text: "ok"}
	engine.onCall = func(filename string) {
		seenExt = filepath.Ext(filename)
	}

	router, _ := setupUploadRouter(t, engine)

	// No extension on the uploaded name: the temp file gets .m4a.
	body, contentType := multipartAudio(t, "audio", "audio", []byte("bytes"))
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".m4a", seenExt)
}
