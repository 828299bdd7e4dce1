package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zhubert/chatpane/internal/api"
	"github.com/zhubert/chatpane/internal/chat"
	"github.com/zhubert/chatpane/internal/export"
)

// newFakeAPI serves two conversations on page 1, none after, and a two
// message thread for every conversation.
func newFakeAPI(t *testing.T) *api.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/get_all_chats", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			w.Write([]byte(`{"data":{"data":[]}}`))
			return
		}
		w.Write([]byte(`{"data":{"data":[
			{"id": 42, "creator": {"id": 7, "name": "Ada Lovelace", "email": "ada@example.com"}},
			{"id": 43, "creator": {"id": 8}}
		]}}`))
	})
	mux.HandleFunc("/api/get_chat_messages", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("chat_id")
		w.Write([]byte(`{"data":[
			{"id": 1, "message": "hello from ` + id + `", "sender": {"id": 7, "name": "Ada"}, "created_at": "2024-01-05T15:04:05Z"},
			{"id": 2, "message": "hi\nthere", "sender": {"id": 1, "name": "Support"}, "created_at": "2024-01-05T15:05:00Z"}
		]}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return api.NewWithClient(server.Client(), server.URL)
}

func TestRunChats_Table(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runChats(context.Background(), newFakeAPI(t), 1, "table", &out))

	s := out.String()
	assert.Contains(t, s, "EMAIL")
	assert.Contains(t, s, "Ada Lovelace")
	assert.Contains(t, s, "ada@example.com")
	assert.Contains(t, s, chat.AnonymousName)
}

func TestRunChats_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runChats(context.Background(), newFakeAPI(t), 1, "json", &out))

	var convs []chat.Conversation
	require.NoError(t, json.Unmarshal(out.Bytes(), &convs))
	require.Len(t, convs, 2)
	assert.Equal(t, chat.ID("42"), convs[0].ID)
	assert.Equal(t, "Ada Lovelace", convs[0].Creator.Name)
}

func TestRunChats_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runChats(context.Background(), newFakeAPI(t), 0, "table", &out), "page 0 is invalid")
	assert.Error(t, runChats(context.Background(), newFakeAPI(t), 1, "csv", &out), "csv is not a format")
}

func TestRunMessages_YAML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runMessages(context.Background(), newFakeAPI(t), "42", "yaml", &out))

	var messages []chat.Message
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &messages))
	require.Len(t, messages, 2)
	assert.Equal(t, "hello from 42", messages[0].Text)
	assert.Equal(t, "Support", messages[1].Sender.Name)
}

func TestRunMessages_TableFlattensText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runMessages(context.Background(), newFakeAPI(t), "42", "table", &out))
	assert.Contains(t, out.String(), "hi there")
}

func TestRunExport_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.json")
	var stdout, stderr bytes.Buffer

	opts := export.Options{From: 1, To: 3, Concurrency: 2}
	require.NoError(t, runExport(context.Background(), newFakeAPI(t), opts, "json", path, &stdout, &stderr))

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Exported 1 page(s), 2 conversation(s), 4 message(s)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var archive export.Archive
	require.NoError(t, json.Unmarshal(data, &archive))
	require.Len(t, archive.Pages, 1)
	assert.NotEmpty(t, archive.Source)
	assert.Equal(t, "hello from 43", archive.Pages[0].Threads[1].Messages[0].Text)
}

func TestRunExport_BadFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runExport(context.Background(), newFakeAPI(t), export.Options{From: 1, To: 1}, "xml", "", &stdout, &stderr)
	assert.Error(t, err)
}
