package domain

import "context"

// Source loads the hotels table from some backing store (CSV file, MySQL).
// Load is called at most once per process; the result is cached by the caller.
type Source interface {
	Load(ctx context.Context) ([]HotelRecord, error)
}

// Message is one entry of a chat transcript, in chat-completions shape.
type Message struct {
	Role       string     `json:"role"` // system|user|assistant|tool
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // raw JSON object
}

// ChatResult is one model turn: assistant text plus any requested tool calls.
type ChatResult struct {
	Content   string
	ToolCalls []ToolCall
}

// ChatModel is the language-model collaborator. Tools are passed in the
// provider's function-calling wire format.
type ChatModel interface {
	Chat(ctx context.Context, messages []Message, tools []map[string]any) (ChatResult, error)
}

// HistoryStore keeps per-session chat transcripts.
type HistoryStore interface {
	Load(ctx context.Context, sessionID string) ([]Message, error)
	Save(ctx context.Context, sessionID string, messages []Message) error
}
