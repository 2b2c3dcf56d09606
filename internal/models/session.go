package models

// SessionStatus represents the status of a parse session.
type SessionStatus string

const (
	SessionStatusPending  SessionStatus = "pending"
	SessionStatusParsing  SessionStatus = "parsing"
	SessionStatusComplete SessionStatus = "complete"
	SessionStatusError    SessionStatus = "error"
)

// ParseSession represents one file parsing session.
type ParseSession struct {
	ID               string        `json:"id"`
	FileID           string        `json:"fileId"`
	SequenceFileID   string        `json:"sequenceFileId,omitempty"`
	Status           SessionStatus `json:"status"`
	Family           string        `json:"family,omitempty"`
	RunCount         int           `json:"runCount,omitempty"`
	StepCount        int           `json:"stepCount,omitempty"`
	ProcessingTimeMs int64         `json:"processingTimeMs,omitempty"`
	Errors           []ParseError  `json:"errors,omitempty"`
}

// ParseError represents a problem encountered during parsing. Warnings use
// the same shape with a zero line number where no line applies.
type ParseError struct {
	Line    int    `json:"line"`
	Content string `json:"content,omitempty"`
	Reason  string `json:"reason"`
}

// NewParseSession creates a new ParseSession in pending status.
func NewParseSession(id, fileID string) *ParseSession {
	return &ParseSession{
		ID:     id,
		FileID: fileID,
		Status: SessionStatusPending,
		Errors: make([]ParseError, 0),
	}
}
