package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/chatpane/internal/api"
	"github.com/zhubert/chatpane/internal/chat"
	"github.com/zhubert/chatpane/internal/ui"
	"github.com/zhubert/chatpane/internal/viewstate"
)

// ChatsLoadedMsg carries a finished conversation page load
type ChatsLoadedMsg struct {
	Gen    viewstate.Generation
	Page   int
	Result api.Result[chat.Conversation]
}

// MessagesLoadedMsg carries a finished thread load
type MessagesLoadedMsg struct {
	Gen    viewstate.Generation
	ChatID chat.ID
	Result api.Result[chat.Message]
}

// startListLoad commits a state that has a list fetch pending and issues it
func (m *Model) startListLoad(next viewstate.State, gen viewstate.Generation) tea.Cmd {
	m.state = next
	m.syncComponents()
	m.log.Debug("loading chat list", "page", next.Page(), "gen", gen)
	return tea.Batch(m.fetchChats(gen, next.Page()), m.startSpinner())
}

// startMessagesLoad commits a state that has a thread fetch pending and issues it
func (m *Model) startMessagesLoad(next viewstate.State, gen viewstate.Generation) tea.Cmd {
	m.state = next
	sel := next.Selected()
	m.chat.SetConversation(*sel)
	m.syncComponents()
	m.log.Debug("loading messages", "chat_id", sel.ID, "gen", gen)
	return tea.Batch(m.fetchMessages(gen, sel.ID), m.startSpinner())
}

// fetchChats cancels any outstanding list fetch and returns a command for a new one
func (m *Model) fetchChats(gen viewstate.Generation, page int) tea.Cmd {
	if m.listCancel != nil {
		m.listCancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.config.GetRequestTimeout())
	m.listCancel = cancel

	source := m.source
	return func() tea.Msg {
		defer cancel()
		return ChatsLoadedMsg{Gen: gen, Page: page, Result: source.LoadChats(ctx, page)}
	}
}

// fetchMessages cancels any outstanding thread fetch and returns a command for a new one
func (m *Model) fetchMessages(gen viewstate.Generation, chatID chat.ID) tea.Cmd {
	if m.msgCancel != nil {
		m.msgCancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.config.GetRequestTimeout())
	m.msgCancel = cancel

	source := m.source
	return func() tea.Msg {
		defer cancel()
		return MessagesLoadedMsg{Gen: gen, ChatID: chatID, Result: source.LoadMessages(ctx, chatID)}
	}
}

func (m *Model) handleChatsLoaded(msg ChatsLoadedMsg) tea.Cmd {
	if msg.Gen != m.state.ListGeneration() || !m.state.ListPending() {
		m.log.Debug("dropping stale chat list", "page", msg.Page, "gen", msg.Gen, "current", m.state.ListGeneration())
		return nil
	}
	m.state = m.state.ListLoaded(msg.Gen, msg.Result)
	m.listCancel = nil
	m.sidebar.SetConversations(m.state.Conversations())
	m.syncComponents()

	var cmds []tea.Cmd
	if msg.Result.Status() == api.StatusFailed {
		cmds = append(cmds, m.flashLoadFailure(fmt.Sprintf("page %d", msg.Page), msg.Result.Err))
	}
	cmds = append(cmds, m.notifyIfSlow(fmt.Sprintf("Page %d", msg.Page), msg.Result.Elapsed))
	return tea.Batch(cmds...)
}

func (m *Model) handleMessagesLoaded(msg MessagesLoadedMsg) tea.Cmd {
	if msg.Gen != m.state.MessagesGeneration() || !m.state.MessagesPending() {
		m.log.Debug("dropping stale messages", "chat_id", msg.ChatID, "gen", msg.Gen, "current", m.state.MessagesGeneration())
		return nil
	}
	m.state = m.state.MessagesLoaded(msg.Gen, msg.Result)
	m.msgCancel = nil
	m.chat.SetMessages(m.state.Messages())
	m.syncComponents()

	var cmds []tea.Cmd
	if msg.Result.Status() == api.StatusFailed {
		cmds = append(cmds, m.flashLoadFailure("messages", msg.Result.Err))
	}
	cmds = append(cmds, m.notifyIfSlow("Conversation "+msg.ChatID.String(), msg.Result.Elapsed))
	return tea.Batch(cmds...)
}

// notifyIfSlow sends a desktop notification when a load took longer than the
// configured threshold. A zero threshold disables it.
func (m *Model) notifyIfSlow(what string, elapsed time.Duration) tea.Cmd {
	threshold := m.config.GetSlowLoadThreshold()
	if !m.config.GetNotificationsEnabled() || threshold <= 0 || elapsed < threshold {
		return nil
	}
	notify := m.notify
	return func() tea.Msg {
		_ = notify(what, elapsed)
		return nil
	}
}

// startSpinner arms the spinner tick unless one is already running
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return ui.SpinnerTick()
}
