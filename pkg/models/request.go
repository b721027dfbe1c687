package models

// SessionRequest carries the CLI-level inputs for one wizard run
type SessionRequest struct {
	ConfigPath   string
	OutputPath   string
	ExistingPath string
	ToStdout     bool
	ToClipboard  bool
}

// NewSessionRequest creates an empty request
func NewSessionRequest() *SessionRequest {
	return &SessionRequest{}
}
