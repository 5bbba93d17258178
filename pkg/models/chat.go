package models

// ChatMessage is a single turn in a chat conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat message roles
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatRequest is the body of a chat completion request
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// UsageRecord is a per-identifier daily message counter
type UsageRecord struct {
	Identifier     string `json:"identifier" db:"identifier"`
	IdentifierType string `json:"identifier_type" db:"identifier_type"`
	MessageDate    string `json:"message_date" db:"message_date"`
	MessageCount   int    `json:"message_count" db:"message_count"`
}

// Identifier types for usage accounting
const (
	IdentifierTypeUser = "user"
	IdentifierTypeIP   = "ip"
)

// UsageStatus is the advisory usage state returned to the client
type UsageStatus struct {
	Remaining int  `json:"remaining"`
	Limit     int  `json:"limit"`
	Used      int  `json:"used"`
	IsAdmin   bool `json:"isAdmin"`
}
