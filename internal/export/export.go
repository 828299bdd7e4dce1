// Package export downloads a range of conversation pages, with every thread,
// and encodes them as a single JSON or YAML archive.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/zhubert/chatpane/internal/chat"
	"github.com/zhubert/chatpane/internal/errors"
	"github.com/zhubert/chatpane/internal/logger"
)

// DefaultConcurrency is how many requests run at once when unset
const DefaultConcurrency = 4

// Source is the part of the API client an export needs. *api.Client implements it.
type Source interface {
	ListChats(ctx context.Context, page int) ([]chat.Conversation, error)
	ListMessages(ctx context.Context, chatID chat.ID) ([]chat.Message, error)
}

// Options selects the pages to export
type Options struct {
	From        int
	To          int
	Concurrency int
}

func (o Options) validate() error {
	const op errors.Op = "export.Options"
	switch {
	case o.From < 1:
		return errors.E(op, errors.KindInvalid, fmt.Sprintf("from must be at least 1, got %d", o.From))
	case o.To < o.From:
		return errors.E(op, errors.KindInvalid, fmt.Sprintf("to (%d) must not be before from (%d)", o.To, o.From))
	case o.Concurrency < 0:
		return errors.E(op, errors.KindInvalid, fmt.Sprintf("concurrency must not be negative, got %d", o.Concurrency))
	}
	return nil
}

// Thread is a conversation and its messages in server order
type Thread struct {
	Conversation chat.Conversation `json:"conversation" yaml:"conversation"`
	Messages     []chat.Message    `json:"messages" yaml:"messages"`
}

// Page is one exported page of conversations
type Page struct {
	Page    int      `json:"page" yaml:"page"`
	Threads []Thread `json:"threads" yaml:"threads"`
}

// Archive is the complete export
type Archive struct {
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
	Source     string    `json:"source,omitempty" yaml:"source,omitempty"`
	Pages      []Page    `json:"pages" yaml:"pages"`
}

// ThreadCount returns the number of exported conversations
func (a Archive) ThreadCount() int {
	return lo.SumBy(a.Pages, func(p Page) int { return len(p.Threads) })
}

// MessageCount returns the number of exported messages
func (a Archive) MessageCount() int {
	return lo.SumBy(a.Pages, func(p Page) int {
		return lo.SumBy(p.Threads, func(t Thread) int { return len(t.Messages) })
	})
}

// Run exports pages From..To. Pages are listed concurrently, then every
// thread is loaded concurrently, each stage bounded by Concurrency.
// Listing stops at the first empty page since the API reports no page count.
// The first error cancels the remaining requests and is returned.
func Run(ctx context.Context, src Source, opts Options) (Archive, error) {
	if err := opts.validate(); err != nil {
		return Archive{}, err
	}
	limit := opts.Concurrency
	if limit == 0 {
		limit = DefaultConcurrency
	}
	log := logger.WithComponent("export")
	start := time.Now()

	pageNums := lo.RangeFrom(opts.From, opts.To-opts.From+1)
	pages := make([]Page, len(pageNums))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, n := range pageNums {
		g.Go(func() error {
			convs, err := src.ListChats(gctx, n)
			if err != nil {
				return err
			}
			threads := lo.Map(convs, func(c chat.Conversation, _ int) Thread {
				return Thread{Conversation: c}
			})
			pages[i] = Page{Page: n, Threads: threads}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Archive{}, err
	}

	if empty, idx, ok := lo.FindIndexOf(pages, func(p Page) bool { return len(p.Threads) == 0 }); ok {
		log.Debug("stopping at empty page", "page", empty.Page)
		pages = pages[:idx]
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for pi := range pages {
		for ti := range pages[pi].Threads {
			thread := &pages[pi].Threads[ti]
			g.Go(func() error {
				messages, err := src.ListMessages(gctx, thread.Conversation.ID)
				if err != nil {
					return err
				}
				thread.Messages = messages
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Archive{}, err
	}

	archive := Archive{ExportedAt: time.Now().UTC(), Pages: pages}
	log.Info("export finished",
		"pages", len(pages),
		"threads", archive.ThreadCount(),
		"messages", archive.MessageCount(),
		"elapsed", time.Since(start))
	return archive, nil
}

// Format is an archive encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml in any case
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.E(errors.Op("export.ParseFormat"), errors.KindInvalid, fmt.Sprintf("unknown format %q (want json or yaml)", s))
	}
}

// Encode writes v to w in the given format
func Encode(w io.Writer, v any, format Format) error {
	const op errors.Op = "export.Encode"
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errors.E(op, errors.KindIO, err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.E(op, errors.KindIO, err)
		}
		if err := enc.Close(); err != nil {
			return errors.E(op, errors.KindIO, err)
		}
	default:
		return errors.E(op, errors.KindInvalid, fmt.Sprintf("unknown format %q", format))
	}
	return nil
}
