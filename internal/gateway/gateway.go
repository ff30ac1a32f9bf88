package gateway

import (
	"context"
	"errors"
	"strings"

	"github.com/pawconnect/assistant/internal/auth"
	"github.com/pawconnect/assistant/internal/domain"
	"github.com/pawconnect/assistant/internal/repository/conversation"
	"github.com/pawconnect/assistant/internal/repository/document"
	"github.com/pawconnect/assistant/internal/repository/message"
	"github.com/pawconnect/assistant/internal/services"
)

// CompletionProvider is the remote function that turns a question into an
// answer for a signed-in user.
type CompletionProvider interface {
	Answer(ctx context.Context, token, userID, conversationID, question string) (string, error)
}

// IngestionProvider is the remote function that indexes extracted document
// text for retrieval.
type IngestionProvider interface {
	Ingest(ctx context.Context, token, userID, title, content string) error
}

// Gateway is the typed façade over conversation, message, and document
// storage plus the two remote calls. Every operation resolves the caller's
// identity first and fails with auth.ErrNotSignedIn without one.
type Gateway struct {
	authProvider auth.Provider
	convRepo     conversation.Repository
	msgRepo      message.Repository
	docRepo      document.Repository
	completion   CompletionProvider
	ingestion    IngestionProvider
	logger       services.Logger
}

func New(
	authProvider auth.Provider,
	convRepo conversation.Repository,
	msgRepo message.Repository,
	docRepo document.Repository,
	completion CompletionProvider,
	ingestion IngestionProvider,
	logger services.Logger,
) (*Gateway, error) {
	if authProvider == nil {
		return nil, errors.New("gateway: auth provider is required")
	}
	if convRepo == nil || msgRepo == nil || docRepo == nil {
		return nil, errors.New("gateway: repositories are required")
	}
	if completion == nil || ingestion == nil {
		return nil, errors.New("gateway: remote providers are required")
	}
	if logger == nil {
		logger = &services.NoOpLogger{}
	}

	return &Gateway{
		authProvider: authProvider,
		convRepo:     convRepo,
		msgRepo:      msgRepo,
		docRepo:      docRepo,
		completion:   completion,
		ingestion:    ingestion,
		logger:       logger,
	}, nil
}

// CreateConversation inserts a conversation for the caller. An empty title
// gets the default one.
func (g *Gateway) CreateConversation(ctx context.Context, title string) (*domain.Conversation, error) {
	id, err := g.authProvider.Identity(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(title) == "" {
		title = domain.DefaultConversationTitle
	}

	conv, err := g.convRepo.Create(ctx, &domain.Conversation{UserID: id.UserID, Title: title})
	if err != nil {
		g.logger.Error("conversation create failed", "user_id", id.UserID, "error", err)
		return nil, ErrCreateConversation
	}
	return conv, nil
}

// ListConversations returns the caller's conversations, most recently
// updated first.
func (g *Gateway) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	id, err := g.authProvider.Identity(ctx)
	if err != nil {
		return nil, err
	}

	convs, err := g.convRepo.FindByUserID(ctx, id.UserID)
	if err != nil {
		g.logger.Error("conversation list failed", "user_id", id.UserID, "error", err)
		return nil, ErrListConversations
	}
	return convs, nil
}

// LoadMessages returns the transcript in creation order. No ownership check
// happens here; the backing store's access policy enforces it.
func (g *Gateway) LoadMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	if _, err := g.authProvider.Identity(ctx); err != nil {
		return nil, err
	}

	msgs, err := g.msgRepo.FindByConversationID(ctx, conversationID)
	if err != nil {
		g.logger.Error("message load failed", "conversation_id", conversationID, "error", err)
		return nil, ErrLoadMessages
	}
	return msgs, nil
}

// DeleteConversation removes the conversation and its messages.
func (g *Gateway) DeleteConversation(ctx context.Context, conversationID string) error {
	id, err := g.authProvider.Identity(ctx)
	if err != nil {
		return err
	}

	if err := g.convRepo.Delete(ctx, conversationID, id.UserID); err != nil {
		g.logger.Error("conversation delete failed", "conversation_id", conversationID, "error", err)
		return ErrDeleteConversation
	}
	return nil
}

// SendMessage is the single round trip for a chat turn: it persists the
// user's question, asks the completion function for an answer, persists the
// answer, and bumps the conversation's recency.
func (g *Gateway) SendMessage(ctx context.Context, question, conversationID string) (string, error) {
	id, err := g.authProvider.Identity(ctx)
	if err != nil {
		return "", err
	}

	conv, err := g.convRepo.FindByID(ctx, conversationID)
	if err != nil || conv.UserID != id.UserID {
		return "", ErrUnauthorized
	}

	if _, err := g.msgRepo.Create(ctx, &domain.Message{
		ConversationID: conversationID,
		UserID:         id.UserID,
		Role:           domain.RoleUser,
		Content:        question,
	}); err != nil {
		g.logger.Error("user message save failed", "conversation_id", conversationID, "error", err)
		return "", ErrSaveMessage
	}

	answer, err := g.completion.Answer(ctx, id.Token, id.UserID, conversationID, question)
	if err != nil {
		// The question stays persisted; the caller turns this into an
		// error bubble instead of retrying.
		return "", err
	}

	if _, err := g.msgRepo.Create(ctx, &domain.Message{
		ConversationID: conversationID,
		UserID:         id.UserID,
		Role:           domain.RoleAssistant,
		Content:        answer,
	}); err != nil {
		g.logger.Error("assistant message save failed", "conversation_id", conversationID, "error", err)
	}
	if err := g.convRepo.TouchUpdatedAt(ctx, conversationID); err != nil {
		g.logger.Warn("recency bump failed", "conversation_id", conversationID, "error", err)
	}

	return answer, nil
}

// ListDocuments returns the caller's knowledge-base documents, newest first.
func (g *Gateway) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	id, err := g.authProvider.Identity(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := g.docRepo.FindByUploader(ctx, id.UserID)
	if err != nil {
		g.logger.Error("document list failed", "user_id", id.UserID, "error", err)
		return nil, ErrListDocuments
	}
	return docs, nil
}

// DeleteDocument removes a document owned by the caller.
func (g *Gateway) DeleteDocument(ctx context.Context, documentID string) error {
	id, err := g.authProvider.Identity(ctx)
	if err != nil {
		return err
	}

	if err := g.docRepo.Delete(ctx, documentID, id.UserID); err != nil {
		g.logger.Error("document delete failed", "document_id", documentID, "error", err)
		return ErrDeleteDocument
	}
	return nil
}

// IngestDocument sends extracted text to the embedding function and, on
// success, records the document metadata for the caller.
func (g *Gateway) IngestDocument(ctx context.Context, title, content string) error {
	id, err := g.authProvider.Identity(ctx)
	if err != nil {
		return err
	}

	if err := g.ingestion.Ingest(ctx, id.Token, id.UserID, title, content); err != nil {
		return err
	}

	if _, err := g.docRepo.Create(ctx, &domain.Document{Title: title, UploadedBy: id.UserID}); err != nil {
		g.logger.Error("document record failed", "title", title, "error", err)
	}
	return nil
}
