// Package api talks to the external chat REST API. It has two loaders:
// one for a page of conversation summaries and one for a conversation's
// message history. Both normalize server records to the chat package's types.
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/zhubert/chatpane/internal/chat"
	"github.com/zhubert/chatpane/internal/config"
	"github.com/zhubert/chatpane/internal/errors"
	"github.com/zhubert/chatpane/internal/logger"
)

const (
	chatListPath     = "/api/get_all_chats"
	chatMessagesPath = "/api/get_chat_messages"

	// RequestIDHeader carries a per-request id that is also written to the log
	RequestIDHeader = "X-Request-ID"

	userAgent = "chatpane"

	// maxErrorBody bounds how much of a failed response body is logged
	maxErrorBody = 512
)

// Client fetches conversations and messages from the chat API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *slog.Logger
}

// New creates a client using the base URL and request timeout from cfg.
func New(cfg *config.Config) *Client {
	return NewWithClient(&http.Client{Timeout: cfg.GetRequestTimeout()}, cfg.GetBaseURL())
}

// NewWithClient creates a client with a custom HTTP client and base URL (for testing).
func NewWithClient(client *http.Client, baseURL string) *Client {
	if client == nil {
		client = &http.Client{Timeout: config.DefaultRequestTimeout}
	}
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	return &Client{
		httpClient: client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        logger.WithComponent("api"),
	}
}

// BaseURL returns the API base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type creatorDTO struct {
	ID    chat.ID `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
}

type chatDTO struct {
	ID      chat.ID     `json:"id"`
	Creator *creatorDTO `json:"creator"`
}

// chatListEnvelope is the paginated list response: {data: {data: [...]}}
type chatListEnvelope struct {
	Data *struct {
		Data []chatDTO `json:"data"`
	} `json:"data"`
}

type senderDTO struct {
	ID   chat.ID `json:"id"`
	Name string  `json:"name"`
}

type messageDTO struct {
	ID        chat.ID    `json:"id"`
	Message   string     `json:"message"`
	Sender    *senderDTO `json:"sender"`
	CreatedAt string     `json:"created_at"`
}

// messageListEnvelope is the message history response: {data: [...]}
type messageListEnvelope struct {
	Data []messageDTO `json:"data"`
}

func (d chatDTO) toConversation() chat.Conversation {
	conv := chat.Conversation{ID: d.ID}
	if d.Creator != nil {
		conv.Creator = chat.Creator{ID: d.Creator.ID, Name: d.Creator.Name, Email: d.Creator.Email}
	}
	return conv
}

func (d messageDTO) toMessage() chat.Message {
	msg := chat.Message{ID: d.ID, Text: d.Message, CreatedAt: d.CreatedAt}
	if d.Sender != nil {
		msg.Sender = chat.Sender{ID: d.Sender.ID, Name: d.Sender.Name}
	}
	return msg
}

// ListChats fetches one page of conversation summaries.
func (c *Client) ListChats(ctx context.Context, page int) ([]chat.Conversation, error) {
	if page < 1 {
		return nil, errors.InvalidPage(page)
	}

	var env chatListEnvelope
	query := url.Values{"page": []string{strconv.Itoa(page)}}
	if err := c.getJSON(ctx, errors.Op("api.ListChats"), chatListPath, query, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []chat.Conversation{}, nil
	}

	return lo.Map(env.Data.Data, func(item chatDTO, _ int) chat.Conversation {
		return item.toConversation()
	}), nil
}

// ListMessages fetches the full message history of a conversation in server order.
func (c *Client) ListMessages(ctx context.Context, chatID chat.ID) ([]chat.Message, error) {
	if chatID == "" {
		return nil, errors.InvalidChatID()
	}

	var env messageListEnvelope
	query := url.Values{"chat_id": []string{chatID.String()}}
	if err := c.getJSON(ctx, errors.Op("api.ListMessages"), chatMessagesPath, query, &env); err != nil {
		return nil, err
	}

	return lo.Map(env.Data, func(item messageDTO, _ int) chat.Message {
		return item.toMessage()
	}), nil
}

// getJSON issues a GET for path?query and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, op errors.Op, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.E(op, errors.KindInvalid, "failed to create request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(RequestIDHeader, requestID)

	log := c.log.With("op", string(op), "requestID", requestID)
	log.Debug("request started", "url", target)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return errors.RequestTimeout(op, target, err)
		}
		return errors.RequestFailed(op, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Warn("unexpected status", "status", resp.StatusCode, "body", string(body))
		return errors.UnexpectedStatus(op, target, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if isTimeout(err) {
			return errors.RequestTimeout(op, target, err)
		}
		return errors.DecodeFailed(op, target, err)
	}

	log.Debug("request finished", "status", resp.StatusCode, "elapsed", time.Since(start))
	return nil
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
