package handlers

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pawconnect/assistant/internal/session"
)

// maxUploadBytes bounds a single knowledge-base upload.
const maxUploadBytes = 10 << 20

// DocumentHandler exposes the knowledge-base document session over HTTP.
type DocumentHandler struct {
	registry *session.Registry
}

func NewDocumentHandler(registry *session.Registry) *DocumentHandler {
	return &DocumentHandler{registry: registry}
}

// GetDocuments lists the caller's documents, newest first.
func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(w, r)
	if !ok {
		return
	}

	s := h.registry.Session(r.Context(), id.UserID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"documents":     s.Documents.Documents(),
		"pendingUpload": s.Documents.Pending(),
	})
}

// Upload accepts a multipart file, extracts its text, and sends it for
// ingestion. The outcome lands in the chat transcript either way, so the
// response carries the transcript alongside the document listing.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, "Failed to read upload", http.StatusBadRequest)
		return
	}

	s := h.registry.Session(r.Context(), id.UserID)
	s.Documents.Upload(r.Context(), header.Filename, data)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"documents":  s.Documents.Documents(),
		"transcript": toTranscriptPayload(s.Conversations.Transcript()),
	})
}

// DeleteDocument removes a document. Remote failures are best effort, so
// this always reports the resulting listing.
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(w, r)
	if !ok {
		return
	}

	documentID := mux.Vars(r)["id"]
	if documentID == "" {
		writeError(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	s := h.registry.Session(r.Context(), id.UserID)
	s.Documents.Delete(r.Context(), documentID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"documents": s.Documents.Documents(),
	})
}
