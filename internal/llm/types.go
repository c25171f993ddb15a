package llm

// Role identifies the sender of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged turn in a chat request.
type Message struct {
	Role    Role
	Content string
}

// ChatRequest holds the parameters for one chat completion call. System is
// carried separately because the Anthropic Messages API takes it outside the
// message list.
type ChatRequest struct {
	Model       string
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// ChatResponse is the result of a chat completion call.
type ChatResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	StopReason   string
}
