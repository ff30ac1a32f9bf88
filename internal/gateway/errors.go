package gateway

import "errors"

// Persistence failures surface with fixed human-readable messages; the
// low-level cause is logged and discarded.
var (
	ErrCreateConversation = errors.New("Failed to create conversation.")
	ErrListConversations  = errors.New("Failed to load conversations.")
	ErrLoadMessages       = errors.New("Failed to load messages.")
	ErrDeleteConversation = errors.New("Failed to delete conversation.")
	ErrListDocuments      = errors.New("Failed to load documents.")
	ErrDeleteDocument     = errors.New("Failed to delete document.")
	ErrSaveMessage        = errors.New("Failed to save message.")
	ErrUnauthorized       = errors.New("conversation not found or unauthorized")
)
