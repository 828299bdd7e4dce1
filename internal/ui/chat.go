package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rivo/uniseg"
	"github.com/zhubert/chatpane/internal/chat"
	"github.com/zhubert/chatpane/internal/keys"
)

// Chat panel text
const (
	ChatIdleText        = "Select a chat to start messaging"
	ChatEmptyText       = "No messages."
	ChatFailedText      = "Failed to load messages (r to retry)"
	ChatLoadingText     = "Loading messages…"
	ComposerPlaceholder = "Type a message"
)

// Chat is the right panel: the open conversation's thread and a composer.
// The composer only holds local text; nothing is sent.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	conv     *chat.Conversation
	messages []chat.Message
	loading  bool
	failed   bool
	spinner  spinner
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = ComposerPlaceholder
	ti.CharLimit = ComposerCharLimit
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()
	threadHeight := height - InputTotalHeight

	c.viewport.SetWidth(ctx.InnerWidth(width))
	c.viewport.SetHeight(max(ctx.InnerHeight(threadHeight)-TitleHeight, 1))
	c.input.SetWidth(max(ctx.InnerWidth(width)-InputPaddingWidth, 1))

	c.updateContent()
}

// SetFocused focuses or blurs the composer. The returned command starts the
// cursor blink when focusing.
func (c *Chat) SetFocused(focused bool) tea.Cmd {
	c.focused = focused
	if focused {
		return c.input.Focus()
	}
	c.input.Blur()
	return nil
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetConversation opens conv and clears the previous thread
func (c *Chat) SetConversation(conv chat.Conversation) {
	c.conv = &conv
	c.messages = nil
	c.failed = false
	c.updateContent()
}

// HasConversation reports whether a conversation is open
func (c *Chat) HasConversation() bool {
	return c.conv != nil
}

// SetMessages replaces the thread, ends loading and scrolls to the newest message
func (c *Chat) SetMessages(messages []chat.Message) {
	c.messages = messages
	c.loading = false
	c.updateContent()
	c.viewport.GotoBottom()
}

// Messages returns the rendered thread's messages
func (c *Chat) Messages() []chat.Message {
	return c.messages
}

// SetLoading toggles the loading spinner
func (c *Chat) SetLoading(loading bool) {
	if loading && !c.loading {
		c.spinner.reset()
	}
	c.loading = loading
	c.updateContent()
}

// IsLoading reports whether the spinner is showing
func (c *Chat) IsLoading() bool {
	return c.loading
}

// SetFailed toggles the failure message
func (c *Chat) SetFailed(failed bool) {
	c.failed = failed
	c.updateContent()
}

// Input returns the composer text
func (c *Chat) Input() string {
	return c.input.Value()
}

// InputLength returns the number of user-perceived characters in the composer
func (c *Chat) InputLength() int {
	return uniseg.GraphemeClusterCount(strings.TrimSpace(c.input.Value()))
}

// AtBottom reports whether the thread is scrolled to the newest message
func (c *Chat) AtBottom() bool {
	return c.viewport.AtBottom()
}

func (c *Chat) updateContent() {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	var content string
	switch {
	case c.conv == nil:
		content = ""
	case c.loading:
		content = StatusLoadingStyle.Render(c.spinner.View() + " " + ChatLoadingText)
	case c.failed:
		content = StatusErrorStyle.Render(ChatFailedText)
	case len(c.messages) == 0:
		content = StatusEmptyStyle.Render(ChatEmptyText)
	default:
		content = renderThread(*c.conv, c.messages, wrapWidth)
	}

	c.viewport.SetContent(content)
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	switch msg := msg.(type) {
	case SpinnerTickMsg:
		if c.loading {
			c.spinner.advance()
			c.updateContent()
		}
		return c, nil

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(msg)
		return c, cmd

	case tea.KeyPressMsg:
		if !c.focused {
			return c, nil
		}
		switch msg.String() {
		case keys.PgUp, keys.PgDown, keys.CtrlU, keys.CtrlD:
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)
	// Cursor blink and other textarea messages
	if c.focused {
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return c, tea.Batch(cmds...)
}

// CharCounter returns the composer's "n/limit" count, or "" when the draft is empty
func (c *Chat) CharCounter() string {
	n := c.InputLength()
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", n, ComposerCharLimit)
}

func (c *Chat) renderTitle(width int) string {
	title := PanelTitleStyle.Render(c.conv.Creator.DisplayName())
	if email := c.conv.Creator.Email; email != "" {
		title += SidebarEmailStyle.Render(email)
	}
	counter := c.CharCounter()
	if counter == "" {
		return lipgloss.NewStyle().MaxWidth(width).Render(title)
	}
	counter = ChatTimestampStyle.Render(counter)
	room := width - lipgloss.Width(counter) - 1
	if room < 1 {
		return lipgloss.NewStyle().MaxWidth(width).Render(title)
	}
	title = lipgloss.NewStyle().MaxWidth(room).Render(title)
	gap := max(width-lipgloss.Width(title)-lipgloss.Width(counter), 1)
	return title + strings.Repeat(" ", gap) + counter
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	if c.conv == nil {
		ctx := GetViewContext()
		placeholder := lipgloss.Place(
			ctx.InnerWidth(c.width), ctx.InnerHeight(c.height),
			lipgloss.Center, lipgloss.Center,
			ChatPlaceholderStyle.Render(ChatIdleText),
		)
		return panelStyle.Width(c.width).Height(c.height).Render(placeholder)
	}

	threadHeight := c.height - InputTotalHeight
	body := c.renderTitle(c.viewport.Width()) + "\n" + c.viewport.View()
	thread := panelStyle.Width(c.width).Height(threadHeight).Render(body)

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	composer := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, thread, composer)
}
