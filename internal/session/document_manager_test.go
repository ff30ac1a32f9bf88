package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawconnect/assistant/internal/domain"
	"github.com/pawconnect/assistant/internal/extract"
	"github.com/pawconnect/assistant/internal/services"
	"github.com/pawconnect/assistant/internal/services/assistant"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []string
}

func (n *recordingNotifier) AppendNotice(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, text)
}

func pdfStubExtractor(text string) Extractor {
	return ExtractorFunc(func(filename string, data []byte) (string, error) {
		return text, nil
	})
}

func TestUploadIngestsExtractedText(t *testing.T) {
	gw := newStubGateway()
	notifier := &recordingNotifier{}
	m := NewDocumentManager(gw, pdfStubExtractor("page one\n\npage two"), notifier, &services.NoOpLogger{})

	m.Upload(context.Background(), "notes.pdf", []byte("raw bytes"))

	require.Len(t, gw.ingestCalls, 1)
	assert.Equal(t, ingestCall{title: "notes.pdf", content: "page one\n\npage two"}, gw.ingestCalls[0])

	require.Len(t, notifier.notices, 2)
	assert.Equal(t, `Uploading "notes.pdf"...`, notifier.notices[0])
	assert.Equal(t, `"notes.pdf" added to knowledge base! Ask me about it.`, notifier.notices[1])
	assert.False(t, m.Pending())
}

func TestUploadUnsupportedTypeSkipsIngestion(t *testing.T) {
	gw := newStubGateway()
	notifier := &recordingNotifier{}
	m := NewDocumentManager(gw, ExtractorFunc(extract.ExtractText), notifier, &services.NoOpLogger{})

	m.Upload(context.Background(), "data.xyz", []byte("whatever"))

	assert.Empty(t, gw.ingestCalls)
	require.Len(t, notifier.notices, 2)
	assert.Equal(t, "Failed to upload: Unsupported file type: .xyz", notifier.notices[1])
	assert.False(t, m.Pending())
}

func TestUploadSurfacesIngestionFailure(t *testing.T) {
	gw := newStubGateway()
	gw.ingestErr = assistant.NewIngestionError(500, "")
	notifier := &recordingNotifier{}
	m := NewDocumentManager(gw, pdfStubExtractor("some text"), notifier, &services.NoOpLogger{})

	m.Upload(context.Background(), "guide.txt", []byte("some text"))

	require.Len(t, notifier.notices, 2)
	assert.Equal(t, "Failed to upload: Upload failed (500)", notifier.notices[1])
	assert.False(t, m.Pending())
}

func TestUploadNoticesLandInTranscript(t *testing.T) {
	gw := newStubGateway()
	cm := newTestManager(gw)
	m := NewDocumentManager(gw, pdfStubExtractor("text"), cm, &services.NoOpLogger{})

	m.Upload(context.Background(), "faq.md", []byte("text"))

	transcript := cm.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, `Uploading "faq.md"...`, transcript[1].Text)
	assert.Equal(t, `"faq.md" added to knowledge base! Ask me about it.`, transcript[2].Text)
	assert.False(t, transcript[1].IsUser)
	assert.False(t, transcript[2].IsUser)
}

func TestUploadRefreshesDocumentList(t *testing.T) {
	gw := newStubGateway()
	gw.documents = []domain.Document{
		{ID: "d1", Title: "notes.pdf", CreatedAt: time.Now()},
	}
	m := NewDocumentManager(gw, pdfStubExtractor("text"), &recordingNotifier{}, &services.NoOpLogger{})

	m.Upload(context.Background(), "notes.pdf", []byte("raw"))

	docs := m.Documents()
	require.Len(t, docs, 1)
	assert.Equal(t, "d1", docs[0].ID)
}

func TestDeleteIsBestEffort(t *testing.T) {
	gw := newStubGateway()
	gw.documents = []domain.Document{{ID: "d1"}, {ID: "d2"}}
	gw.deleteDocErr = fmt.Errorf("Failed to delete document.")
	notifier := &recordingNotifier{}
	m := NewDocumentManager(gw, pdfStubExtractor(""), notifier, &services.NoOpLogger{})
	m.Load(context.Background())

	m.Delete(context.Background(), "d1")

	assert.Empty(t, notifier.notices)
	docs := m.Documents()
	require.Len(t, docs, 1)
	assert.Equal(t, "d2", docs[0].ID)
}

func TestLoadSwallowsListingErrors(t *testing.T) {
	gw := newStubGateway()
	gw.listDocErr = fmt.Errorf("Failed to load documents.")
	m := NewDocumentManager(gw, pdfStubExtractor(""), &recordingNotifier{}, &services.NoOpLogger{})

	m.Load(context.Background())

	assert.Empty(t, m.Documents())
}
