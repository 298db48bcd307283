package model

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation's ordered history. Turns are
// append-only; insertion order is the total order.
type Turn struct {
	Role      Role   `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// ChunkRef points at a document chunk that grounded an answer.
type ChunkRef struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Page  int     `json:"page,omitempty"`
	Score float64 `json:"score"`
}

type Answer struct {
	Text    string     `json:"text"`
	Sources []ChunkRef `json:"sources,omitempty"`
}
