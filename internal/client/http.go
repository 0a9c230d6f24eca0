package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/alfredjeanlab/threads/internal/model"
)

// HTTPClient implements ThreadsClient using the threads HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	userID     string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request; when userID is non-empty, it is sent as
// the X-User-ID identity header.
func NewHTTPClient(baseURL, token, userID string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		userID:     userID,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Comment CRUD ---

func (c *HTTPClient) CreateComment(ctx context.Context, req *CreateCommentRequest) (*model.Comment, error) {
	var comment model.Comment
	if err := c.doJSON(ctx, http.MethodPost, "/v1/comments", req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *HTTPClient) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	if err := c.doJSON(ctx, http.MethodGet, "/v1/comments/"+url.PathEscape(id), nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *HTTPClient) EditComment(ctx context.Context, id, body string) (*model.Comment, error) {
	var comment model.Comment
	in := map[string]string{"body": body}
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/comments/"+url.PathEscape(id), in, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment deletes a comment and returns the id the server confirmed
// deleting. Children and likes go with it.
func (c *HTTPClient) DeleteComment(ctx context.Context, id string) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodDelete, "/v1/comments/"+url.PathEscape(id), nil, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *HTTPClient) ToggleLike(ctx context.Context, id string) (*ToggleLikeResponse, error) {
	var resp ToggleLikeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/comments/"+url.PathEscape(id)+"/like", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Threads ---

func (c *HTTPClient) GetThread(ctx context.Context, postID string) (*model.Thread, error) {
	var thread model.Thread
	if err := c.doJSON(ctx, http.MethodGet, "/v1/posts/"+url.PathEscape(postID)+"/comments", nil, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// --- Notifications ---

func (c *HTTPClient) ListNotifications(ctx context.Context, filter *model.NotificationFilter) (*NotificationsResponse, error) {
	q := url.Values{}
	if filter != nil {
		if filter.UnreadOnly {
			q.Set("unread", "true")
		}
		if filter.Limit > 0 {
			q.Set("limit", strconv.Itoa(filter.Limit))
		}
		if filter.Offset > 0 {
			q.Set("offset", strconv.Itoa(filter.Offset))
		}
	}

	path := "/v1/notifications"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp NotificationsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error) {
	var n model.Notification
	if err := c.doJSON(ctx, http.MethodPost, "/v1/notifications/"+url.PathEscape(id)+"/read", nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *HTTPClient) DismissNotification(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/notifications/"+url.PathEscape(id), nil, nil)
}

// --- Events ---

func (c *HTTPClient) ListEvents(ctx context.Context, postID string, limit int) ([]*model.Event, error) {
	q := url.Values{}
	if postID != "" {
		q.Set("postId", postID)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/v1/events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Events []*model.Event `json:"events"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/healthz", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
