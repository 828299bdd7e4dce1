package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/chatpane/internal/chat"
)

var testConv = chat.Conversation{
	ID:      "42",
	Creator: chat.Creator{ID: "7", Name: "Ada", Email: "ada@example.com"},
}

var testThread = []chat.Message{
	{ID: "1", Text: "hello there", Sender: chat.Sender{ID: "7", Name: "Ada"}, CreatedAt: "2024-01-05T15:04:05Z"},
	{ID: "2", Text: "hi Ada, how can I help?", Sender: chat.Sender{ID: "1", Name: "Support"}, CreatedAt: "2024-01-05T15:05:00Z"},
}

func newTestChat() *Chat {
	c := NewChat()
	c.SetSize(80, 30)
	return c
}

func TestChat_IdlePlaceholder(t *testing.T) {
	c := newTestChat()

	view := stripANSI(c.View())
	if !strings.Contains(view, ChatIdleText) {
		t.Errorf("idle chat should show %q\n%s", ChatIdleText, view)
	}
	if strings.Contains(view, ComposerPlaceholder) {
		t.Error("composer should be hidden until a conversation is open")
	}
}

func TestChat_RendersThread(t *testing.T) {
	c := newTestChat()
	c.SetConversation(testConv)
	c.SetMessages(testThread)

	view := stripANSI(c.View())
	for _, want := range []string{"Ada", "ada@example.com", "Ada:", "hello there", "Support:", "hi Ada, how can I help?", ComposerPlaceholder} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q\n%s", want, view)
		}
	}
}

func TestChat_States(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Chat)
		want  string
	}{
		{"loading", func(c *Chat) { c.SetLoading(true) }, ChatLoadingText},
		{"empty", func(c *Chat) { c.SetMessages([]chat.Message{}) }, ChatEmptyText},
		{"failed", func(c *Chat) { c.SetMessages([]chat.Message{}); c.SetFailed(true) }, "Failed to load messages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChat()
			c.SetConversation(testConv)
			tt.setup(c)
			view := stripANSI(c.View())
			if !strings.Contains(view, tt.want) {
				t.Errorf("view should contain %q\n%s", tt.want, view)
			}
		})
	}
}

func TestChat_SetConversationClearsThread(t *testing.T) {
	c := newTestChat()
	c.SetConversation(testConv)
	c.SetMessages(testThread)

	c.SetConversation(chat.Conversation{ID: "43", Creator: chat.Creator{ID: "9", Name: "Grace"}})
	if len(c.Messages()) != 0 {
		t.Error("opening another conversation should clear the old thread")
	}
	if strings.Contains(stripANSI(c.View()), "hello there") {
		t.Error("old messages should not be rendered")
	}
}

func TestChat_ComposerIsLocal(t *testing.T) {
	c := newTestChat()
	c.SetConversation(testConv)
	c.SetFocused(true)

	for _, r := range "hé👍🏽" {
		c.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}

	if got := c.Input(); got != "hé👍🏽" {
		t.Errorf("Input() = %q, want typed text", got)
	}
	if got := c.InputLength(); got != 3 {
		t.Errorf("InputLength() = %d, want 3 graphemes", got)
	}
}

func TestChat_CharCounter(t *testing.T) {
	c := newTestChat()
	c.SetConversation(testConv)
	c.SetMessages(testThread)
	c.SetFocused(true)

	if c.CharCounter() != "" {
		t.Error("empty draft should have no counter")
	}
	if strings.Contains(stripANSI(c.View()), "/4000") {
		t.Error("counter should be hidden for an empty draft")
	}

	for _, r := range "ok👍🏽" {
		c.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}

	if got, want := c.CharCounter(), "3/4000"; got != want {
		t.Errorf("CharCounter() = %q, want %q", got, want)
	}
	if !strings.Contains(stripANSI(c.View()), "3/4000") {
		t.Errorf("title row should show the counter\n%s", stripANSI(c.View()))
	}
}

func TestChat_FocusStartsCursorBlink(t *testing.T) {
	c := newTestChat()
	c.SetConversation(testConv)

	if cmd := c.SetFocused(true); cmd == nil {
		t.Error("focusing the composer should start the cursor blink")
	}
	if cmd := c.SetFocused(false); cmd != nil {
		t.Error("blurring should not return a command")
	}
}

func TestChat_FocusedComposerTakesNonKeyMessages(t *testing.T) {
	c := newTestChat()
	c.SetConversation(testConv)

	c.Update(tea.PasteMsg{Content: "ignored"})
	if c.Input() != "" {
		t.Error("unfocused composer should not take a paste")
	}

	c.SetFocused(true)
	c.Update(tea.PasteMsg{Content: "pasted"})
	if got := c.Input(); got != "pasted" {
		t.Errorf("Input() = %q, want pasted text", got)
	}
}

func TestChat_UnfocusedIgnoresTyping(t *testing.T) {
	c := newTestChat()
	c.SetConversation(testConv)

	c.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if c.Input() != "" {
		t.Error("unfocused composer should not take input")
	}
}

func TestChat_SetMessagesScrollsToBottom(t *testing.T) {
	c := newTestChat()
	c.SetConversation(testConv)

	long := make([]chat.Message, 40)
	for i := range long {
		long[i] = chat.Message{ID: chat.ID(string(rune('a' + i%26))), Text: "line", Sender: chat.Sender{ID: "1", Name: "Support"}}
	}
	c.SetMessages(long)

	if !c.AtBottom() {
		t.Error("a freshly loaded thread should show the newest message")
	}

	c.SetFocused(true)
	c.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
	if c.AtBottom() {
		t.Error("pgup should scroll the thread up")
	}
}

func TestChat_SetMessagesWhileLoading(t *testing.T) {
	c := newTestChat()
	c.SetConversation(testConv)
	c.SetLoading(true)

	long := make([]chat.Message, 40)
	for i := range long {
		long[i] = chat.Message{ID: chat.ID(string(rune('a' + i%26))), Text: "line", Sender: chat.Sender{ID: "1", Name: "Support"}}
	}
	c.SetMessages(long)

	if c.IsLoading() {
		t.Error("delivering the thread should end loading")
	}
	if strings.Contains(stripANSI(c.View()), ChatLoadingText) {
		t.Error("loading text should be replaced by the thread")
	}
	if !c.AtBottom() {
		t.Error("thread loaded after a spinner should open at the newest message")
	}
}

func TestChat_StaysAtBottomWhenLoadingClears(t *testing.T) {
	c := newTestChat()
	c.SetConversation(testConv)
	c.SetLoading(true)

	long := make([]chat.Message, 40)
	for i := range long {
		long[i] = chat.Message{ID: chat.ID(string(rune('a' + i%26))), Text: "line", Sender: chat.Sender{ID: "1", Name: "Support"}}
	}
	c.SetMessages(long)
	c.SetLoading(false)
	c.SetFailed(false)
	if !c.AtBottom() {
		t.Fatal("clearing the loading flag after delivery should keep the newest message in view")
	}

	c.SetFocused(true)
	c.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
	if c.AtBottom() {
		t.Error("pgup should scroll the thread up")
	}
}

func TestRenderMessage_CreatorHighlight(t *testing.T) {
	if _, ok := ChatVisitorBlockStyle.GetBackground().(lipgloss.NoColor); ok {
		t.Fatal("creator messages should have a highlight background")
	}

	visitor := renderMessage(testThread[0], testConv, 60)
	operator := renderMessage(testThread[1], testConv, 60)

	if want := ChatVisitorBlockStyle.Width(60).Render(
		renderMessageHeader(testThread[0], true, 60) + "\n" + renderText(testThread[0].Text, 60),
	); visitor != want {
		t.Error("creator message should be wrapped in the highlight block")
	}
	if !strings.HasPrefix(operator, renderMessageHeader(testThread[1], false, 60)) {
		t.Error("operator message should render without the highlight block")
	}
}

func TestRenderMessageHeader_Timestamp(t *testing.T) {
	msg := chat.Message{Sender: chat.Sender{Name: "Ada"}, CreatedAt: "not a time"}
	header := stripANSI(renderMessageHeader(msg, false, 40))

	if !strings.HasPrefix(header, "Ada:") {
		t.Errorf("header should start with sender, got %q", header)
	}
	if !strings.HasSuffix(header, "not a time") {
		t.Errorf("unparseable timestamp should be shown raw on the right, got %q", header)
	}
	if ansi.StringWidth(header) != 40 {
		t.Errorf("header should span the width, got %d", ansi.StringWidth(header))
	}
}

func TestRenderMessageHeader_AnonymousSender(t *testing.T) {
	header := stripANSI(renderMessageHeader(chat.Message{}, false, 40))
	if !strings.HasPrefix(header, chat.AnonymousName+":") {
		t.Errorf("blank sender should render as %s, got %q", chat.AnonymousName, header)
	}
}

func TestRenderText_CodeFence(t *testing.T) {
	text := "look at this:\n```go\nfunc main() {}\n```\ndone"
	out := stripANSI(renderText(text, 60))

	for _, want := range []string{"look at this:", "func main() {}", "done"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered text should contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "```") {
		t.Error("fence markers should not be rendered")
	}
}

func TestRenderText_UnterminatedFence(t *testing.T) {
	out := stripANSI(renderText("```\nx := 1", 40))
	if !strings.Contains(out, "x := 1") {
		t.Errorf("unterminated code block should still render, got %q", out)
	}
}

func TestWrapText(t *testing.T) {
	text := "this is a longer text that needs wrapping"
	out := wrapText(text, 20)

	for _, line := range strings.Split(out, "\n") {
		if ansi.StringWidth(line) > 20 {
			t.Errorf("line %q exceeds width 20", line)
		}
	}
	if strings.Join(strings.Fields(out), " ") != text {
		t.Errorf("wrapping should keep every word, got %q", out)
	}

	if wrapText("hello world", 0) != "hello world" {
		t.Error("zero width should return the text unchanged")
	}
}

func TestHighlightCode(t *testing.T) {
	for _, lang := range []string{"go", "", "no-such-language"} {
		out := highlightCode("package main", lang)
		if !strings.Contains(stripANSI(out), "package main") {
			t.Errorf("highlightCode(%q) lost the code: %q", lang, out)
		}
	}
}
