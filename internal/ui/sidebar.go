package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/chatpane/internal/chat"
	"github.com/zhubert/chatpane/internal/keys"
)

// Sidebar text
const (
	SidebarTitle        = "Conversations"
	SidebarEmptyText    = "No conversations."
	SidebarFailedText   = "Failed to load conversations (r to retry)"
	SidebarLoadingText  = "Loading conversations…"
	PagerBackText       = "‹ Back"
	PagerNextText       = "Next ›"
	sidebarActiveMarker = "● "
	sidebarMarkerBlank  = "  "
)

// Sidebar is the left panel: one page of conversations plus page controls
type Sidebar struct {
	conversations []chat.Conversation
	selectedIdx   int
	scrollOffset  int
	activeID      chat.ID
	width         int
	height        int
	focused       bool

	page    int
	maxPage int

	loading bool
	failed  bool
	spinner spinner
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{page: 1, maxPage: 1}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetConversations replaces the list. The cursor returns to the top.
func (s *Sidebar) SetConversations(convs []chat.Conversation) {
	s.conversations = convs
	s.selectedIdx = 0
	s.scrollOffset = 0
}

// Conversations returns the listed conversations
func (s *Sidebar) Conversations() []chat.Conversation {
	return s.conversations
}

// SelectedConversation returns the conversation under the cursor, or nil
func (s *Sidebar) SelectedConversation() *chat.Conversation {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.conversations) {
		return nil
	}
	c := s.conversations[s.selectedIdx]
	return &c
}

// SelectedIndex returns the cursor position
func (s *Sidebar) SelectedIndex() int {
	return s.selectedIdx
}

// SetActive marks the conversation whose thread is open. Empty clears it.
func (s *Sidebar) SetActive(id chat.ID) {
	s.activeID = id
}

// SetPage sets the page shown in the pager
func (s *Sidebar) SetPage(page, maxPage int) {
	s.page = page
	s.maxPage = maxPage
}

// SetLoading toggles the loading spinner
func (s *Sidebar) SetLoading(loading bool) {
	if loading && !s.loading {
		s.spinner.reset()
	}
	s.loading = loading
}

// IsLoading reports whether the spinner is showing
func (s *Sidebar) IsLoading() bool {
	return s.loading
}

// SetFailed toggles the failure message
func (s *Sidebar) SetFailed(failed bool) {
	s.failed = failed
}

// Update handles messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	switch msg := msg.(type) {
	case SpinnerTickMsg:
		if s.loading {
			s.spinner.advance()
		}
		return s, nil

	case tea.KeyPressMsg:
		if !s.focused || s.loading {
			return s, nil
		}
		switch msg.String() {
		case keys.Up, "k":
			if s.selectedIdx > 0 {
				s.selectedIdx--
			}
		case keys.Down, "j":
			if s.selectedIdx < len(s.conversations)-1 {
				s.selectedIdx++
			}
		case keys.Home:
			s.selectedIdx = 0
		case keys.End:
			s.selectedIdx = max(len(s.conversations)-1, 0)
		}
	}

	return s, nil
}

// listHeight is the number of lines available for conversation rows
func (s *Sidebar) listHeight() int {
	return max(GetViewContext().InnerHeight(s.height)-TitleHeight-PagerHeight, 0)
}

// ensureVisible scrolls so the cursor row is within the list area
func (s *Sidebar) ensureVisible(visibleRows int) {
	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	} else if s.selectedIdx >= s.scrollOffset+visibleRows {
		s.scrollOffset = s.selectedIdx - visibleRows + 1
	}
	maxScroll := max(len(s.conversations)-visibleRows, 0)
	s.scrollOffset = min(max(s.scrollOffset, 0), maxScroll)
}

func (s *Sidebar) renderRow(conv chat.Conversation, selected bool, innerWidth int) string {
	textWidth := max(innerWidth-SidebarItemStyle.GetHorizontalPadding()-len(sidebarMarkerBlank), 1)

	marker := sidebarMarkerBlank
	if s.activeID != "" && conv.ID == s.activeID {
		marker = SidebarActiveMark.Render(sidebarActiveMarker)
	}

	name := ansi.Truncate(conv.Creator.DisplayName(), textWidth, "…")
	email := ansi.Truncate(conv.Creator.Email, textWidth, "…")

	itemStyle := SidebarItemStyle
	if selected {
		itemStyle = SidebarSelectedStyle
	}
	itemStyle = itemStyle.Width(innerWidth)

	return itemStyle.Render(marker+name) + "\n" +
		itemStyle.Render(sidebarMarkerBlank+SidebarEmailStyle.Render(email))
}

func (s *Sidebar) renderBody(innerWidth, height int) []string {
	var lines []string
	switch {
	case s.loading:
		lines = []string{StatusLoadingStyle.Render(s.spinner.View() + " " + SidebarLoadingText)}
	case s.failed:
		lines = strings.Split(StatusErrorStyle.Width(innerWidth).Render(SidebarFailedText), "\n")
	case len(s.conversations) == 0:
		lines = []string{StatusEmptyStyle.Render(SidebarEmptyText)}
	default:
		visibleRows := max(height/SidebarRowHeight, 1)
		s.ensureVisible(visibleRows)
		end := min(s.scrollOffset+visibleRows, len(s.conversations))
		for i := s.scrollOffset; i < end; i++ {
			row := s.renderRow(s.conversations[i], i == s.selectedIdx, innerWidth)
			lines = append(lines, strings.Split(row, "\n")...)
		}
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// renderPager renders "‹ Back   Page n/max   Next ›" spread across width
func (s *Sidebar) renderPager(width int) string {
	backStyle, nextStyle := PagerEnabledStyle, PagerEnabledStyle
	if s.page <= 1 {
		backStyle = PagerDisabledStyle
	}
	if s.page >= s.maxPage {
		nextStyle = PagerDisabledStyle
	}

	back := backStyle.Render(PagerBackText)
	next := nextStyle.Render(PagerNextText)
	page := PagerPageStyle.Render(fmt.Sprintf("Page %d/%d", s.page, s.maxPage))

	free := width - ansi.StringWidth(back) - ansi.StringWidth(page) - ansi.StringWidth(next)
	if free < 2 {
		return ansi.Truncate(back+" "+page+" "+next, width, "")
	}
	left := free / 2
	return back + strings.Repeat(" ", left) + page + strings.Repeat(" ", free-left) + next
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(s.width)
	lines := []string{PanelTitleStyle.Render(SidebarTitle)}
	lines = append(lines, s.renderBody(innerWidth, s.listHeight())...)
	lines = append(lines, s.renderPager(innerWidth))

	return style.Width(s.width).Height(s.height).Render(strings.Join(lines, "\n"))
}
