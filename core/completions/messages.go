package completions

import "github.com/jinzhu/copier"

// Message is one conversational entry in the request body, ordered oldest
// first.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageRole string

const (
	messageRoleSystem    messageRole = "system"
	messageRoleUser      messageRole = "user"
	messageRoleAssistant messageRole = "assistant"
)

type message struct {
	Role    messageRole `json:"role"`
	Content string      `json:"content"`
}

func toMessages(instructions string, conversation []Message) []message {
	messages := []message{}
	if instructions != "" {
		messages = append(messages, message{
			Role:    messageRoleSystem,
			Content: instructions,
		})
	}

	var wireMessages []message
	copier.Copy(&wireMessages, conversation)
	return append(messages, wireMessages...)
}
