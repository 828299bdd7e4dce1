package api

import (
	"context"
	"errors"
	"time"

	"github.com/zhubert/chatpane/internal/chat"
)

// Status classifies the outcome of a load.
type Status int

const (
	StatusOK     Status = iota // at least one item
	StatusEmpty                // request succeeded with no items
	StatusFailed               // request or decode failed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of a load. Items is never nil on success and always
// empty on failure.
type Result[T any] struct {
	Items   []T
	Err     error
	Elapsed time.Duration
}

// Status reports whether the load succeeded, was empty, or failed.
func (r Result[T]) Status() Status {
	switch {
	case r.Err != nil:
		return StatusFailed
	case len(r.Items) == 0:
		return StatusEmpty
	default:
		return StatusOK
	}
}

func newResult[T any](items []T, err error, start time.Time) Result[T] {
	if err != nil {
		return Result[T]{Items: []T{}, Err: err, Elapsed: time.Since(start)}
	}
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items, Elapsed: time.Since(start)}
}

// LoadChats fetches a page of conversations. Failures are logged and
// reported through the result rather than returned.
func (c *Client) LoadChats(ctx context.Context, page int) Result[chat.Conversation] {
	start := time.Now()
	items, err := c.ListChats(ctx, page)
	switch {
	case errors.Is(err, context.Canceled):
		c.log.Debug("chat list request cancelled", "page", page)
	case err != nil:
		c.log.Error("error fetching chat list", "page", page, "error", err)
	default:
		c.log.Info("chat list loaded", "page", page, "count", len(items))
	}
	return newResult(items, err, start)
}

// LoadMessages fetches a conversation's messages. Failures are logged and
// reported through the result rather than returned.
func (c *Client) LoadMessages(ctx context.Context, chatID chat.ID) Result[chat.Message] {
	start := time.Now()
	items, err := c.ListMessages(ctx, chatID)
	switch {
	case errors.Is(err, context.Canceled):
		c.log.Debug("chat messages request cancelled", "chatID", chatID)
	case err != nil:
		c.log.Error("error fetching chat messages", "chatID", chatID, "error", err)
	default:
		c.log.Info("chat messages loaded", "chatID", chatID, "count", len(items))
	}
	return newResult(items, err, start)
}
