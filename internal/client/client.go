// Package client talks to the campus schedule and attendance service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/gradeboard/internal/constants"
	"github.com/julianstephens/gradeboard/internal/logger"
	"github.com/julianstephens/gradeboard/internal/models"
)

var (
	// ErrNotFound is returned when the service has no resource for the request.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized is returned when the session is missing or rejected.
	ErrUnauthorized = errors.New("not authorized")
	// ErrUnavailable covers transport failures, unexpected statuses and bad payloads.
	ErrUnavailable = errors.New("service unavailable")
)

// Client is a thin JSON client. It applies no retry or timeout policy of
// its own; callers bound requests through the context.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	session string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithSession attaches the service session cookie to every request.
func WithSession(cookie string) Option {
	return func(c *Client) { c.session = strings.TrimSpace(cookie) }
}

// New creates a client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must include scheme and host", baseURL)
	}
	c := &Client{baseURL: u, http: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// HasSession reports whether a session cookie is configured.
func (c *Client) HasSession() bool {
	return c.session != ""
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.JoinPath(path).String()
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set(constants.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: c.session})
	}

	logger.Debug("Sending request", "method", method, "path", path, "request_id", requestID)
	res, err := c.http.Do(req)
	if err != nil {
		logger.Warn("Request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, err
	}
	logger.Debug("Received response", "status", res.StatusCode, "request_id", requestID)
	return res, nil
}

func statusError(res *http.Response) error {
	switch res.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return fmt.Errorf("%w: status %d: %s", ErrUnavailable, res.StatusCode, strings.TrimSpace(string(body)))
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	res, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return statusError(res)
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return nil
}

// FetchSchedule downloads the schedule document for studentID.
func (c *Client) FetchSchedule(ctx context.Context, studentID string) (models.Document, error) {
	var doc models.Document
	path := "/schedule/" + url.PathEscape(strings.TrimSpace(studentID)) + ".json"
	if err := c.getJSON(ctx, path, &doc); err != nil {
		return models.Document{}, fmt.Errorf("fetching schedule for %s: %w", studentID, err)
	}
	return doc, nil
}

// AttendanceStatus polls the state of an attendance session.
func (c *Client) AttendanceStatus(ctx context.Context, sessionID string) (models.AttendanceStatus, error) {
	var st models.AttendanceStatus
	path := "/api/teacher/attendance/" + url.PathEscape(strings.TrimSpace(sessionID)) + "/status"
	if err := c.getJSON(ctx, path, &st); err != nil {
		return models.AttendanceStatus{}, fmt.Errorf("polling session %s: %w", sessionID, err)
	}
	return st, nil
}

type checkinRequest struct {
	SessionToken string `json:"session_token"`
}

type checkinResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// CheckIn submits an attendance code. Rejections by the service come back
// as a failed result rather than an error; only transport failures return
// an error, alongside a result carrying the network message.
func (c *Client) CheckIn(ctx context.Context, token string) (models.CheckinResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.CheckinResult{Message: constants.MsgEnterSession}, nil
	}

	res, err := c.do(ctx, http.MethodPost, "/api/student/attendance/checkin", checkinRequest{SessionToken: token})
	if err != nil {
		return models.CheckinResult{Message: constants.MsgNetworkError}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	var body checkinResponse
	decodeErr := json.NewDecoder(res.Body).Decode(&body)
	ok := res.StatusCode >= 200 && res.StatusCode <= 299 && decodeErr == nil && body.OK
	if ok {
		msg := body.Message
		if msg == "" {
			msg = constants.MsgCheckinOK
		}
		return models.CheckinResult{OK: true, Message: msg}, nil
	}

	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = constants.MsgCheckinFailed
	}
	logger.Info("Check-in rejected", "status", res.StatusCode, "message", msg)
	return models.CheckinResult{Message: msg}, nil
}
