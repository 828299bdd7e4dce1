// Package viewstate holds the viewer's page, conversation list, selection and
// message thread as an immutable value. Every transition returns a new State;
// the Bubble Tea model is its only owner.
//
// Each fetch kind has a generation counter. Starting a fetch bumps it, and a
// result is applied only when it carries the latest generation, so a slow
// response for a superseded page or selection is dropped.
package viewstate

import (
	"github.com/zhubert/chatpane/internal/api"
	"github.com/zhubert/chatpane/internal/chat"
)

// Generation tags a fetch so its result can be matched to the request that is still current.
type Generation uint64

// Phase is the coarse view mode.
type Phase int

const (
	PhaseIdle    Phase = iota // nothing selected
	PhaseLoading              // a current fetch is outstanding
	PhaseViewing              // a conversation's thread is rendered
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseViewing:
		return "viewing"
	default:
		return "unknown"
	}
}

// State is the view state. The zero value is not useful; use New.
type State struct {
	page    int
	maxPage int

	conversations []chat.Conversation
	listStatus    api.Status
	listErr       error

	selected       *chat.Conversation
	messages       []chat.Message
	messagesStatus api.Status
	messagesErr    error

	listGen     Generation
	msgGen      Generation
	listPending bool
	msgPending  bool
}

// New returns the initial state: page 1, nothing loaded, nothing selected.
func New(maxPage int) State {
	if maxPage < 1 {
		maxPage = 1
	}
	return State{
		page:           1,
		maxPage:        maxPage,
		listStatus:     api.StatusEmpty,
		messagesStatus: api.StatusEmpty,
	}
}

func (s State) Page() int    { return s.page }
func (s State) MaxPage() int { return s.maxPage }

// CanPrev reports whether a previous page exists.
func (s State) CanPrev() bool { return s.page > 1 }

// CanNext reports whether the pager may advance.
func (s State) CanNext() bool { return s.page < s.maxPage }

// Conversations returns the current page's conversations.
func (s State) Conversations() []chat.Conversation { return s.conversations }

// ListStatus returns the outcome of the last applied list load.
func (s State) ListStatus() api.Status { return s.listStatus }

// ListErr returns the error of the last applied list load, if it failed.
func (s State) ListErr() error { return s.listErr }

// ListPending reports whether the current list fetch is outstanding.
func (s State) ListPending() bool { return s.listPending }

// Selected returns the selected conversation, or nil.
func (s State) Selected() *chat.Conversation {
	if s.selected == nil {
		return nil
	}
	c := *s.selected
	return &c
}

// IsSelected reports whether conv is the selected conversation.
func (s State) IsSelected(id chat.ID) bool {
	return s.selected != nil && s.selected.ID == id
}

// Messages returns the thread of the selected conversation. It is empty
// when nothing is selected.
func (s State) Messages() []chat.Message {
	if s.selected == nil {
		return nil
	}
	return s.messages
}

// MessagesStatus returns the outcome of the last applied message load.
func (s State) MessagesStatus() api.Status { return s.messagesStatus }

// MessagesErr returns the error of the last applied message load, if it failed.
func (s State) MessagesErr() error { return s.messagesErr }

// MessagesPending reports whether the current message fetch is outstanding.
func (s State) MessagesPending() bool { return s.msgPending }

// Loading reports whether a current list or message fetch is outstanding.
func (s State) Loading() bool { return s.listPending || s.msgPending }

// ListGeneration returns the generation of the latest list request.
func (s State) ListGeneration() Generation { return s.listGen }

// MessagesGeneration returns the generation of the latest message request.
func (s State) MessagesGeneration() Generation { return s.msgGen }

// Phase derives the view mode.
func (s State) Phase() Phase {
	switch {
	case s.Loading():
		return PhaseLoading
	case s.selected != nil:
		return PhaseViewing
	default:
		return PhaseIdle
	}
}

// RequestPage starts a list load for page, clamped to [1, MaxPage].
// The selection is kept; only the list is replaced when the load lands.
func (s State) RequestPage(page int) (State, Generation) {
	if page < 1 {
		page = 1
	}
	if page > s.maxPage {
		page = s.maxPage
	}
	s.page = page
	s.listGen++
	s.listPending = true
	return s, s.listGen
}

// Reload starts a list load for the current page.
func (s State) Reload() (State, Generation) {
	return s.RequestPage(s.page)
}

// NextPage advances one page. ok is false, and nothing changes, at the upper bound.
func (s State) NextPage() (next State, gen Generation, ok bool) {
	if !s.CanNext() {
		return s, s.listGen, false
	}
	next, gen = s.RequestPage(s.page + 1)
	return next, gen, true
}

// PrevPage goes back one page. ok is false, and nothing changes, on page 1.
func (s State) PrevPage() (prev State, gen Generation, ok bool) {
	if !s.CanPrev() {
		return s, s.listGen, false
	}
	prev, gen = s.RequestPage(s.page - 1)
	return prev, gen, true
}

// ListLoaded applies a list result. Results from a superseded request are ignored.
func (s State) ListLoaded(gen Generation, result api.Result[chat.Conversation]) State {
	if gen != s.listGen || !s.listPending {
		return s
	}
	s.listPending = false
	s.conversations = result.Items
	s.listStatus = result.Status()
	s.listErr = result.Err
	return s
}

// Select makes conv the selected conversation and starts its message load.
// The previous thread is cleared immediately.
func (s State) Select(conv chat.Conversation) (State, Generation) {
	s.selected = &conv
	s.messages = nil
	s.messagesStatus = api.StatusEmpty
	s.messagesErr = nil
	s.msgGen++
	s.msgPending = true
	return s, s.msgGen
}

// MessagesLoaded applies a message result. Results from a superseded selection are ignored.
func (s State) MessagesLoaded(gen Generation, result api.Result[chat.Message]) State {
	if gen != s.msgGen || !s.msgPending {
		return s
	}
	s.msgPending = false
	s.messages = result.Items
	s.messagesStatus = result.Status()
	s.messagesErr = result.Err
	return s
}
