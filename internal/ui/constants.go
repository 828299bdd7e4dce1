package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/3 of total width)
	SidebarWidthRatio = 3

	// TextareaHeight is the number of lines for the composer textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the composer (Padding(0, 1))
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the composer (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// PagerHeight is the height of the sidebar's page controls
	PagerHeight = 1

	// SidebarRowHeight is the number of lines per conversation row (name + email)
	SidebarRowHeight = 2

	// DefaultWrapWidth is the wrap width used before the viewport has a size
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight keep layout math positive on tiny terminals
	MinTerminalWidth  = 40
	MinTerminalHeight = 12
)

// Composer limits
const (
	// ComposerCharLimit caps the local draft
	ComposerCharLimit = 4000
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 56

	// ModalInputCharLimit is the character limit for the go-to-page input
	ModalInputCharLimit = 6

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 12
)

// Timing
const (
	// SpinnerInterval is how often the loading spinner advances
	SpinnerInterval = 100 * time.Millisecond

	// DefaultFlashDuration is how long a flash message stays in the footer
	DefaultFlashDuration = 3 * time.Second

	// FlashTickInterval is how often expired flash messages are checked
	FlashTickInterval = 500 * time.Millisecond
)
