package conversation

// Message roles accepted by the completion collaborator.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in a document's conversation context.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
