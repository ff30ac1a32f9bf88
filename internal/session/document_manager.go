package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/pawconnect/assistant/internal/domain"
	"github.com/pawconnect/assistant/internal/services"
)

// Extractor converts an uploaded file into plain text for ingestion.
type Extractor interface {
	ExtractText(filename string, data []byte) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(filename string, data []byte) (string, error)

func (f ExtractorFunc) ExtractText(filename string, data []byte) (string, error) {
	return f(filename, data)
}

// Notifier receives synthetic transcript entries for upload progress and
// results. The ConversationManager satisfies it.
type Notifier interface {
	AppendNotice(text string)
}

// DocumentManager owns one user's knowledge-base document list and the
// upload/delete lifecycle. Upload outcomes surface in the chat transcript;
// delete is best effort and stays silent on failure.
type DocumentManager struct {
	mu        sync.Mutex
	gw        Gateway
	extractor Extractor
	notifier  Notifier
	logger    services.Logger
	documents []domain.Document
	pending   bool
}

func NewDocumentManager(gw Gateway, extractor Extractor, notifier Notifier, logger services.Logger) *DocumentManager {
	if logger == nil {
		logger = &services.NoOpLogger{}
	}
	return &DocumentManager{
		gw:        gw,
		extractor: extractor,
		notifier:  notifier,
		logger:    logger,
	}
}

// Load fetches the user's documents. Failures are treated as an empty list.
func (m *DocumentManager) Load(ctx context.Context) {
	m.refresh(ctx)
}

// Upload extracts the file's text, sends it for ingestion, and reports the
// outcome in the transcript. A second upload while one is in flight is a
// no-op. The pending flag clears on every exit path.
func (m *DocumentManager) Upload(ctx context.Context, filename string, data []byte) {
	m.mu.Lock()
	if m.pending {
		m.mu.Unlock()
		return
	}
	m.pending = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.pending = false
		m.mu.Unlock()
	}()

	m.notifier.AppendNotice(fmt.Sprintf("Uploading %q...", filename))

	text, err := m.extractor.ExtractText(filename, data)
	if err != nil {
		m.notifier.AppendNotice("Failed to upload: " + err.Error())
		return
	}

	if err := m.gw.IngestDocument(ctx, filename, text); err != nil {
		m.notifier.AppendNotice("Failed to upload: " + err.Error())
		return
	}

	m.notifier.AppendNotice(fmt.Sprintf("%q added to knowledge base! Ask me about it.", filename))
	m.refresh(ctx)
}

// Delete removes the document remotely and from the local listing. Remote
// failures are logged and otherwise swallowed.
func (m *DocumentManager) Delete(ctx context.Context, documentID string) {
	if err := m.gw.DeleteDocument(ctx, documentID); err != nil {
		m.logger.Warn("document delete failed", "document_id", documentID, "error", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.documents {
		if m.documents[i].ID == documentID {
			m.documents = append(m.documents[:i], m.documents[i+1:]...)
			return
		}
	}
}

func (m *DocumentManager) refresh(ctx context.Context) {
	docs, err := m.gw.ListDocuments(ctx)
	if err != nil {
		m.logger.Debug("document listing unavailable", "error", err)
		return
	}
	m.mu.Lock()
	m.documents = docs
	m.mu.Unlock()
}

// Pending reports whether an upload is in flight.
func (m *DocumentManager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// Documents returns a copy of the listing, newest first.
func (m *DocumentManager) Documents() []domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Document, len(m.documents))
	copy(out, m.documents)
	return out
}
