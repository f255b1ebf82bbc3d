package chatsync

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"vitrina/internal/domain/entity"
)

const defaultHTTPTimeout = 10 * time.Second

// APIError is a non-2xx answer decoded from the server's error body.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%d %s: %s (%s)", e.Status, e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// HTTPClient implements API against a running server.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a client for baseURL, e.g. "http://localhost:3001".
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Session is the result of a login.
type Session struct {
	Viewer Viewer
	Token  string
}

// Login signs in as a merchant or a public user and keeps the token for later calls.
func (c *HTTPClient) Login(ctx context.Context, role entity.Role, email, password string) (*Session, error) {
	path := "/api/login"
	if role == entity.RolePublic {
		path = "/api/public-login"
	}

	var out struct {
		User struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, errors.Wrap(err, "login")
	}

	c.token = out.Token

	return &Session{Viewer: Viewer{UserID: out.User.ID, Role: role}, Token: out.Token}, nil
}

// SetToken sets the bearer token sent with every request.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// StartConversation opens the caller's conversation with a business.
func (c *HTTPClient) StartConversation(ctx context.Context, businessID uuid.UUID) (*entity.Conversation, error) {
	var out entity.Conversation
	body := map[string]string{"businessId": businessID.String()}
	if err := c.do(ctx, http.MethodPost, "/api/conversations/start", body, &out); err != nil {
		return nil, errors.Wrap(err, "start conversation")
	}

	return &out, nil
}

// ListConversations returns the user's conversations, most recent first.
func (c *HTTPClient) ListConversations(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	if err := c.do(ctx, http.MethodGet, "/api/conversations/"+userID.String(), nil, &out); err != nil {
		return nil, errors.Wrap(err, "list conversations")
	}

	return out, nil
}

// ListMessages returns the messages of a conversation, oldest first.
func (c *HTTPClient) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	if err := c.do(ctx, http.MethodGet, "/api/messages/"+conversationID.String(), nil, &out); err != nil {
		return nil, errors.Wrap(err, "list messages")
	}

	return out, nil
}

// SendMessage posts content to a conversation as the logged-in user.
func (c *HTTPClient) SendMessage(ctx context.Context, conversationID uuid.UUID, content string) (*entity.ChatMessage, error) {
	var out entity.ChatMessage
	body := map[string]string{"conversationId": conversationID.String(), "content": content}
	if err := c.do(ctx, http.MethodPost, "/api/messages", body, &out); err != nil {
		return nil, errors.Wrap(err, "send message")
	}

	return &out, nil
}

// MarkRead marks the other side's messages of a conversation as read.
func (c *HTTPClient) MarkRead(ctx context.Context, conversationID uuid.UUID) (*entity.Conversation, error) {
	var out entity.Conversation
	if err := c.do(ctx, http.MethodPost, "/api/conversations/"+conversationID.String()+"/read", nil, &out); err != nil {
		return nil, errors.Wrap(err, "mark read")
	}

	return &out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.WithStack(err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.WithStack(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}

		return apiErr
	}

	if out == nil {
		return nil
	}

	return errors.WithStack(json.NewDecoder(resp.Body).Decode(out))
}
