package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// AppTitle is shown at the left of the header
const AppTitle = "chatpane"

// Header represents the top header bar
type Header struct {
	width       int
	creatorName string
	page        int
	maxPage     int
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{page: 1, maxPage: 1}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetCreatorName sets the name of the open conversation's creator. Empty hides it.
func (h *Header) SetCreatorName(name string) {
	h.creatorName = name
}

// SetPage sets the page indicator
func (h *Header) SetPage(page, maxPage int) {
	h.page = page
	h.maxPage = maxPage
}

// rightText is the right-aligned part of the header
func (h *Header) rightText() string {
	page := fmt.Sprintf("Page %d/%d", h.page, h.maxPage)
	if h.creatorName == "" {
		return page + " "
	}
	return h.creatorName + "  -  " + page + " "
}

// View renders the header
func (h *Header) View() string {
	titleText := " " + AppTitle
	rightText := h.rightText()

	// Widths are in terminal cells so wide names still line up
	paddingLen := h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText)
	if paddingLen < 1 {
		rightText = runewidth.Truncate(rightText, max(h.width-runewidth.StringWidth(titleText)-1, 0), "…")
		paddingLen = max(h.width-runewidth.StringWidth(titleText)-runewidth.StringWidth(rightText), 0)
	}

	return h.renderGradient(titleText, strings.Repeat(" ", paddingLen)+rightText)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders title and rest on a background fading from the
// theme's primary color to its background color. The title is bold.
func (h *Header) renderGradient(title, rest string) string {
	content := title + rest
	if content == "" {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)

	titleRunes := len([]rune(title))
	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Foreground(textColor).
			Bold(i < titleRunes)

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
