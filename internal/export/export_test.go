package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zhubert/chatpane/internal/chat"
	"github.com/zhubert/chatpane/internal/errors"
)

// fakeSource serves perPage conversations on pages 1..lastPage, each with
// two messages. Requests for later pages return an empty list.
type fakeSource struct {
	lastPage int
	perPage  int
	failPage int
	failChat chat.ID
	delay    func(n int) time.Duration

	mu       sync.Mutex
	pages    []int
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeSource) enter() func() {
	n := f.inFlight.Add(1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	return func() { f.inFlight.Add(-1) }
}

func (f *fakeSource) ListChats(ctx context.Context, page int) ([]chat.Conversation, error) {
	defer f.enter()()
	f.mu.Lock()
	f.pages = append(f.pages, page)
	f.mu.Unlock()

	if f.delay != nil {
		time.Sleep(f.delay(page))
	}
	if page == f.failPage {
		return nil, errors.UnexpectedStatus("fake.ListChats", "/api/get_all_chats", 500)
	}
	if page > f.lastPage {
		return []chat.Conversation{}, nil
	}
	convs := make([]chat.Conversation, f.perPage)
	for i := range convs {
		convs[i] = chat.Conversation{
			ID:      chat.ID(fmt.Sprintf("%d-%d", page, i)),
			Creator: chat.Creator{ID: chat.ID(fmt.Sprint(i)), Name: fmt.Sprintf("Visitor %d", i)},
		}
	}
	return convs, nil
}

func (f *fakeSource) ListMessages(ctx context.Context, chatID chat.ID) ([]chat.Message, error) {
	defer f.enter()()
	if chatID == f.failChat {
		return nil, errors.DecodeFailed("fake.ListMessages", "/api/get_chat_messages", fmt.Errorf("bad json"))
	}
	if f.delay != nil {
		time.Sleep(f.delay(len(chatID)))
	}
	return []chat.Message{
		{ID: chat.ID(string(chatID) + "/a"), Text: "first"},
		{ID: chat.ID(string(chatID) + "/b"), Text: "second"},
	}, nil
}

func TestRun_PreservesOrder(t *testing.T) {
	src := &fakeSource{
		lastPage: 5,
		perPage:  3,
		// later pages answer first
		delay: func(n int) time.Duration { return time.Duration(6-n%6) * time.Millisecond },
	}

	archive, err := Run(context.Background(), src, Options{From: 1, To: 5, Concurrency: 4})
	require.NoError(t, err)
	require.Len(t, archive.Pages, 5)

	for i, p := range archive.Pages {
		assert.Equal(t, i+1, p.Page)
		require.Len(t, p.Threads, 3)
		for j, th := range p.Threads {
			assert.Equal(t, chat.ID(fmt.Sprintf("%d-%d", p.Page, j)), th.Conversation.ID)
			require.Len(t, th.Messages, 2)
			assert.Equal(t, "first", th.Messages[0].Text)
			assert.Equal(t, "second", th.Messages[1].Text)
		}
	}
	assert.Equal(t, 15, archive.ThreadCount())
	assert.Equal(t, 30, archive.MessageCount())
	assert.False(t, archive.ExportedAt.IsZero())
}

func TestRun_StopsAtFirstEmptyPage(t *testing.T) {
	src := &fakeSource{lastPage: 2, perPage: 1}

	archive, err := Run(context.Background(), src, Options{From: 1, To: 6})
	require.NoError(t, err)
	assert.Len(t, archive.Pages, 2)
	assert.Equal(t, 2, archive.ThreadCount())
}

func TestRun_RespectsConcurrency(t *testing.T) {
	src := &fakeSource{
		lastPage: 8,
		perPage:  4,
		delay:    func(int) time.Duration { return 2 * time.Millisecond },
	}

	_, err := Run(context.Background(), src, Options{From: 1, To: 8, Concurrency: 2})
	require.NoError(t, err)
	assert.LessOrEqual(t, src.maxSeen.Load(), int32(2))
	assert.Len(t, src.pages, 8)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeSource
		opts Options
		kind errors.Kind
	}{
		{"from below 1", &fakeSource{}, Options{From: 0, To: 2}, errors.KindInvalid},
		{"to before from", &fakeSource{}, Options{From: 3, To: 2}, errors.KindInvalid},
		{"negative concurrency", &fakeSource{}, Options{From: 1, To: 1, Concurrency: -1}, errors.KindInvalid},
		{"page fails", &fakeSource{lastPage: 3, perPage: 1, failPage: 2}, Options{From: 1, To: 3}, errors.KindStatus},
		{"thread fails", &fakeSource{lastPage: 1, perPage: 2, failChat: "1-1"}, Options{From: 1, To: 1}, errors.KindDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.src, tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.GetKind(err))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "JSON": FormatJSON, "yaml": FormatYAML, " yml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("csv")
	assert.True(t, errors.Is(err, errors.KindInvalid))
}

func testArchive() Archive {
	return Archive{
		ExportedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Pages: []Page{{
			Page: 1,
			Threads: []Thread{{
				Conversation: chat.Conversation{ID: "7", Creator: chat.Creator{ID: "3", Name: "Ada"}},
				Messages:     []chat.Message{{ID: "1", Text: "hi", Sender: chat.Sender{ID: "3", Name: "Ada"}}},
			}},
		}},
	}
}

func TestEncode_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testArchive(), FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "2024-01-02T03:04:05Z", decoded["exported_at"])
	assert.Contains(t, buf.String(), `"text": "hi"`)
}

func TestEncode_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testArchive(), FormatYAML))

	var decoded struct {
		Pages []struct {
			Page    int `yaml:"page"`
			Threads []struct {
				Messages []struct {
					Text string `yaml:"text"`
				} `yaml:"messages"`
			} `yaml:"threads"`
		} `yaml:"pages"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Pages, 1)
	assert.Equal(t, 1, decoded.Pages[0].Page)
	assert.Equal(t, "hi", decoded.Pages[0].Threads[0].Messages[0].Text)
}

func TestEncode_UnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, testArchive(), Format("xml"))
	assert.True(t, errors.Is(err, errors.KindInvalid))
}
