// Package chat defines the conversation and message records shown by chatpane.
// Records are plain values: they are produced by the API loaders, never mutated,
// and replaced wholesale on the next load.
package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AnonymousName is shown when a creator has no name.
const AnonymousName = "Anonymous"

// ID is a server-assigned identifier. The API emits numbers but strings are
// accepted as well; the value is kept in its textual form.
type ID string

// UnmarshalJSON accepts a JSON number, string, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("chat: id must be a number or string: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier text.
func (id ID) String() string {
	return string(id)
}

// Creator is the visitor who opened a conversation.
type Creator struct {
	ID    ID     `json:"id" yaml:"id"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// DisplayName returns the creator's name, or AnonymousName when it is blank.
func (c Creator) DisplayName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return AnonymousName
}

// Conversation is a chat thread summary as listed on a page.
type Conversation struct {
	ID      ID      `json:"id" yaml:"id"`
	Creator Creator `json:"creator" yaml:"creator"`
}

// Sender identifies who wrote a message.
type Sender struct {
	ID   ID     `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Message is a single entry in a conversation thread.
type Message struct {
	ID        ID     `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Sender    Sender `json:"sender" yaml:"sender"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

// FromCreator reports whether the message was written by the conversation's creator.
func (m Message) FromCreator(conv Conversation) bool {
	return m.Sender.ID != "" && m.Sender.ID == conv.Creator.ID
}

// Transcript renders a conversation and its messages as plain text, one
// message per line, in the given order.
func Transcript(conv Conversation, messages []Message) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Conversation %s with %s", conv.ID, conv.Creator.DisplayName())
	if conv.Creator.Email != "" {
		fmt.Fprintf(&sb, " <%s>", conv.Creator.Email)
	}
	sb.WriteString("\n")
	for _, m := range messages {
		fmt.Fprintf(&sb, "[%s] %s: %s\n", FormatTimestamp(m.CreatedAt), m.Sender.Name, m.Text)
	}
	return sb.String()
}
