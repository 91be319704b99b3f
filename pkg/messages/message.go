package messages

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Kind is the polymorphic message variant tag. It is serialized alongside the
// message so that non-text variants survive a round trip through storage.
type Kind string

const (
	KindText       Kind = "text"
	KindToolCall   Kind = "tool_call"
	KindToolResult Kind = "tool_result"
)

// Message is one unit of chat content. Messages are treated as immutable once
// created; Payload carries variant-specific fields for non-text kinds.
type Message struct {
	Kind     Kind           `json:"kind"`
	Role     Role           `json:"role"`
	Content  string         `json:"content,omitempty"`
	Payload  map[string]any `json:"payload,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func NewSystemMessage(content string) Message {
	return Message{Kind: KindText, Role: RoleSystem, Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Kind: KindText, Role: RoleUser, Content: content}
}

func NewAssistantMessage(content string) Message {
	return Message{Kind: KindText, Role: RoleAssistant, Content: content}
}

// Bag is an ordered collection of messages, one logical unit of history.
// Insertion order is significant. The zero value is an empty bag.
type Bag struct {
	msgs []Message
}

func NewBag(msgs ...Message) Bag {
	b := Bag{}
	b.Append(msgs...)
	return b
}

func (b *Bag) Append(msgs ...Message) {
	b.msgs = append(b.msgs, msgs...)
}

// Messages returns a copy of the bag's contents in insertion order.
func (b Bag) Messages() []Message {
	out := make([]Message, len(b.msgs))
	copy(out, b.msgs)
	return out
}

func (b Bag) Len() int { return len(b.msgs) }
