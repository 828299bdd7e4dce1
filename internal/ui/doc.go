// Package ui provides the visual components of the chatpane TUI.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│ Conversations   │ Thread                            │
//	│ (1/3 width)     │                                   │
//	│                 ├───────────────────────────────────┤
//	│ ‹ Back  Page n  │ Composer                          │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// Components hold only what they need to render. The page, the selection and
// the loaded records are owned by the app model, which pushes them into the
// components after every state transition.
//
// ViewContext is a singleton that computes panel sizes from the terminal size.
// All size calculations go through it.
//
// Styles are package variables rebuilt by SetTheme, so callers always read
// them at render time rather than caching them.
package ui
