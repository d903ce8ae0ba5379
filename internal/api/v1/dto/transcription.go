package dto

// TranscriptionResponse is returned on a successful upload.
type TranscriptionResponse struct {
	Transcription string `json:"transcription"`
}

// UploadErrorResponse mirrors the wire shape of a failed upload: the
// engine's message is passed through verbatim.
type UploadErrorResponse struct {
	Error string `json:"error"`
}
