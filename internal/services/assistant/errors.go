package assistant

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeTransport  ErrorType = "TRANSPORT"
	ErrTypeCompletion ErrorType = "COMPLETION"
	ErrTypeIngestion  ErrorType = "INGESTION"
)

// AssistantError wraps failures from the hosted completion and ingestion
// functions. Message carries the user-facing text: the server-reported
// error when one exists, a generic status fallback otherwise.
type AssistantError struct {
	Type      ErrorType
	Operation string
	Message   string
	Status    int
	Cause     error
}

func (e *AssistantError) Error() string {
	return e.Message
}

func (e *AssistantError) Unwrap() error {
	return e.Cause
}

func NewConfigError(msg string) *AssistantError {
	return &AssistantError{Type: ErrTypeConfig, Operation: "config", Message: msg}
}

func NewTransportError(operation string, cause error) *AssistantError {
	return &AssistantError{
		Type:      ErrTypeTransport,
		Operation: operation,
		Message:   "request failed",
		Cause:     cause,
	}
}

func NewCompletionError(status int, serverMsg string) *AssistantError {
	msg := serverMsg
	if msg == "" {
		msg = fmt.Sprintf("Request failed (%d)", status)
	}
	return &AssistantError{Type: ErrTypeCompletion, Operation: "completion", Message: msg, Status: status}
}

func NewIngestionError(status int, serverMsg string) *AssistantError {
	msg := serverMsg
	if msg == "" {
		msg = fmt.Sprintf("Upload failed (%d)", status)
	}
	return &AssistantError{Type: ErrTypeIngestion, Operation: "ingestion", Message: msg, Status: status}
}
