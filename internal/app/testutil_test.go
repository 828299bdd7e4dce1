package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/chatpane/internal/api"
	"github.com/zhubert/chatpane/internal/chat"
	"github.com/zhubert/chatpane/internal/config"
	"github.com/zhubert/chatpane/internal/keys"
)

// fakeSource serves canned results and records what was requested.
type fakeSource struct {
	pages    []int
	chatIDs  []chat.ID
	chats    map[int]api.Result[chat.Conversation]
	messages map[chat.ID]api.Result[chat.Message]
	block    bool // wait for the context instead of answering
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		chats:    make(map[int]api.Result[chat.Conversation]),
		messages: make(map[chat.ID]api.Result[chat.Message]),
	}
}

func (f *fakeSource) LoadChats(ctx context.Context, page int) api.Result[chat.Conversation] {
	f.pages = append(f.pages, page)
	if f.block {
		<-ctx.Done()
		return api.Result[chat.Conversation]{Items: []chat.Conversation{}, Err: ctx.Err()}
	}
	if r, ok := f.chats[page]; ok {
		return r
	}
	return api.Result[chat.Conversation]{Items: []chat.Conversation{}}
}

func (f *fakeSource) LoadMessages(ctx context.Context, chatID chat.ID) api.Result[chat.Message] {
	f.chatIDs = append(f.chatIDs, chatID)
	if f.block {
		<-ctx.Done()
		return api.Result[chat.Message]{Items: []chat.Message{}, Err: ctx.Err()}
	}
	if r, ok := f.messages[chatID]; ok {
		return r
	}
	return api.Result[chat.Message]{Items: []chat.Message{}}
}

// testConversations returns n conversations with IDs 100, 101, ...
func testConversations(n int) []chat.Conversation {
	convs := make([]chat.Conversation, n)
	for i := range n {
		convs[i] = chat.Conversation{
			ID: chat.ID(fmt.Sprint(100 + i)),
			Creator: chat.Creator{
				ID:    chat.ID(fmt.Sprint(i + 1)),
				Name:  fmt.Sprintf("Visitor %d", i),
				Email: fmt.Sprintf("visitor%d@example.com", i),
			},
		}
	}
	return convs
}

func testThread(conv chat.Conversation) []chat.Message {
	return []chat.Message{
		{ID: "1", Text: "hi there", Sender: chat.Sender{ID: conv.Creator.ID, Name: conv.Creator.Name}, CreatedAt: "2024-01-02T10:00:00Z"},
		{ID: "2", Text: "hello, how can I help?", Sender: chat.Sender{ID: "900", Name: "Support"}, CreatedAt: "2024-01-02T10:01:00Z"},
	}
}

// testModel creates a sized model over a fresh fake source.
func testModel(opts ...Option) (*Model, *fakeSource) {
	return testModelWithConfig(config.Default(), opts...)
}

func testModelWithConfig(cfg *config.Config, opts ...Option) (*Model, *fakeSource) {
	src := newFakeSource()
	m := New(cfg, src, "0.0.0-test", opts...)
	setSize(m, 120, 40)
	return m, src
}

// keyPress creates a tea.KeyPressMsg for the given key string.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Left:
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	default:
		return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
}

// sendKey sends a key press to the model and returns the command it produced.
func sendKey(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

// typeText simulates typing a string one key at a time.
func typeText(m *Model, text string) {
	for _, ch := range text {
		sendKey(m, string(ch))
	}
}

func setSize(m *Model, width, height int) {
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
}

// loadPage starts the first page load and delivers convs as its result.
func loadPage(m *Model, convs []chat.Conversation) {
	m.Init()
	deliverChats(m, convs, nil)
}

func deliverChats(m *Model, convs []chat.Conversation, err error) tea.Cmd {
	_, cmd := m.Update(ChatsLoadedMsg{
		Gen:    m.State().ListGeneration(),
		Page:   m.State().Page(),
		Result: api.Result[chat.Conversation]{Items: convs, Err: err},
	})
	return cmd
}

func deliverMessages(m *Model, messages []chat.Message, err error) tea.Cmd {
	sel := m.State().Selected()
	_, cmd := m.Update(MessagesLoadedMsg{
		Gen:    m.State().MessagesGeneration(),
		ChatID: sel.ID,
		Result: api.Result[chat.Message]{Items: messages, Err: err, Elapsed: time.Millisecond},
	})
	return cmd
}

// openThread loads a page, selects the first conversation and delivers its thread.
func openThread(m *Model) chat.Conversation {
	convs := testConversations(3)
	loadPage(m, convs)
	sendKey(m, keys.Enter)
	deliverMessages(m, testThread(convs[0]), nil)
	return convs[0]
}
