// Package app wires the chat loaders, the view state and the UI components
// into a single Bubble Tea model.
package app

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/chatpane/internal/api"
	"github.com/zhubert/chatpane/internal/chat"
	"github.com/zhubert/chatpane/internal/clipboard"
	"github.com/zhubert/chatpane/internal/config"
	"github.com/zhubert/chatpane/internal/logger"
	"github.com/zhubert/chatpane/internal/notification"
	"github.com/zhubert/chatpane/internal/ui"
	"github.com/zhubert/chatpane/internal/viewstate"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// ChatSource loads conversation pages and threads. *api.Client implements it.
type ChatSource interface {
	LoadChats(ctx context.Context, page int) api.Result[chat.Conversation]
	LoadMessages(ctx context.Context, chatID chat.ID) api.Result[chat.Message]
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	source  ChatSource
	state   viewstate.State
	log     *slog.Logger

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	// Cancel funcs of the outstanding fetch per kind
	listCancel context.CancelFunc
	msgCancel  context.CancelFunc

	spinning bool

	copyText func(string) error
	notify   func(what string, elapsed time.Duration) error
}

// Option customizes a Model
type Option func(*Model)

// WithClipboard replaces the clipboard writer used by the copy shortcut
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.copyText = fn }
}

// WithNotifier replaces the slow-load desktop notifier
func WithNotifier(fn func(what string, elapsed time.Duration) error) Option {
	return func(m *Model) { m.notify = fn }
}

// New creates a new app model
func New(cfg *config.Config, source ChatSource, version string, opts ...Option) *Model {
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	m := &Model{
		config:   cfg,
		version:  version,
		source:   source,
		log:      logger.WithComponent("app"),
		state:    viewstate.New(cfg.GetMaxPage()),
		header:   ui.NewHeader(),
		footer:   ui.NewFooter(),
		sidebar:  ui.NewSidebar(),
		chat:     ui.NewChat(),
		modal:    ui.NewModal(),
		focus:    FocusSidebar,
		copyText: clipboard.WriteText,
		notify:   notification.SlowLoad,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.sidebar.SetFocused(true)
	m.syncComponents()
	return m
}

// State returns the current view state
func (m *Model) State() viewstate.State {
	return m.state
}

// Focus returns the focused panel
func (m *Model) Focus() Focus {
	return m.focus
}

// Init loads the first page
func (m *Model) Init() tea.Cmd {
	next, gen := m.state.RequestPage(1)
	return m.startListLoad(next, gen)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseWheelMsg:
		if msg.X >= m.sidebar.Width() && m.chat.HasConversation() {
			_, cmd := m.chat.Update(msg)
			return m, cmd
		}
		return m, nil

	case ChatsLoadedMsg:
		return m, m.handleChatsLoaded(msg)

	case MessagesLoadedMsg:
		return m, m.handleMessagesLoaded(msg)

	case ui.SpinnerTickMsg:
		m.sidebar.Update(msg)
		m.chat.Update(msg)
		if m.state.Loading() {
			return m, ui.SpinnerTick()
		}
		m.spinning = false
		return m, nil

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return m, nil
		}
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil
	}

	// Anything else (cursor blink and friends) goes to the focused input
	if m.modal.IsVisible() {
		_, cmd := m.modal.Update(msg)
		return m, cmd
	}
	if m.focus == FocusChat {
		_, cmd := m.chat.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setFocus moves focus between the sidebar and the composer
func (m *Model) setFocus(focus Focus) tea.Cmd {
	if focus == FocusChat && !m.chat.HasConversation() {
		return nil
	}
	m.focus = focus
	m.sidebar.SetFocused(focus == FocusSidebar)
	return m.chat.SetFocused(focus == FocusChat)
}

// toggleFocus switches between sidebar and chat
func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == FocusSidebar {
		return m.setFocus(FocusChat)
	}
	return m.setFocus(FocusSidebar)
}

// shutdown cancels outstanding fetches before quitting
func (m *Model) shutdown() tea.Cmd {
	if m.listCancel != nil {
		m.listCancel()
	}
	if m.msgCancel != nil {
		m.msgCancel()
	}
	return tea.Quit
}
