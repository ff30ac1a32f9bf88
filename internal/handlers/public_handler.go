package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// PublicCompletions answers landing-page questions without a signed-in
// identity. The assistant client satisfies it.
type PublicCompletions interface {
	AnswerPublic(ctx context.Context, question string) (string, error)
}

// PublicChatHandler serves the unauthenticated landing-page chat.
type PublicChatHandler struct {
	completions PublicCompletions
}

func NewPublicChatHandler(completions PublicCompletions) *PublicChatHandler {
	return &PublicChatHandler{completions: completions}
}

// Ask forwards a single question to the completion endpoint. No history is
// kept for anonymous visitors.
func (h *PublicChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}

	answer, err := h.completions.AnswerPublic(r.Context(), strings.TrimSpace(req.Question))
	if err != nil {
		writeError(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
