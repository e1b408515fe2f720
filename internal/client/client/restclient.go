package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/tutorit/internal/client/models"
	"github.com/dmitrijs2005/tutorit/internal/logging"
)

const maxResponseBody = 1 << 20

// RESTClient talks to the TutorIT backend over HTTP/JSON. The session cookie
// issued by POST /api/auth/login lives in the client's jar and is sent with
// every request, mirroring the browser's credentials-include behavior.
type RESTClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

func NewRESTClient(baseURL string, timeout time.Duration, log logging.Logger) (*RESTClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
		log:     log,
	}, nil
}

func (c *RESTClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do performs one JSON request/response cycle. Mutating calls are stamped
// with an X-Request-Id so the idempotent retries (cancel, complete) can be
// correlated server-side.
func (c *RESTClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		reqID := uuid.NewString()
		req.Header.Set("X-Request-Id", reqID)
		c.log.Debug(ctx, "api call", "method", method, "path", path, "request_id", reqID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, serverMessage(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// serverMessage extracts a human-readable message from an error body.
func serverMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// Ping probes server reachability. An unauthorized answer still means the
// server is up; only transport failures count as unavailable.
func (c *RESTClient) Ping(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, "/api/auth/status", nil, nil)
	if err == nil || errors.Is(err, ErrUnauthorized) {
		return nil
	}
	return err
}

// ---- identity ----

func (c *RESTClient) Login(ctx context.Context, email, password string) (models.Role, error) {
	in := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out struct {
		Success  bool        `json:"success"`
		UserType models.Role `json:"userType"`
		Message  string      `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return "", err
	}
	if !out.Success {
		return "", &ValidationError{Message: out.Message}
	}
	return out.UserType, nil
}

func (c *RESTClient) RegisterStudent(ctx context.Context, reg models.StudentRegistration) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register/student", reg, nil)
}

func (c *RESTClient) RegisterTutor(ctx context.Context, reg models.TutorRegistration) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register/tutor", reg, nil)
}

// Logout ends the server session and drops the session cookie from the jar,
// so later requests go out unauthenticated even if the server-side
// invalidation failed.
func (c *RESTClient) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	if jar, jarErr := cookiejar.New(nil); jarErr == nil {
		c.http.Jar = jar
	}
	return err
}

func (c *RESTClient) AuthStatus(ctx context.Context) (*models.AuthStatus, error) {
	var out models.AuthStatus
	if err := c.do(ctx, http.MethodGet, "/api/auth/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var out struct {
		Authenticated bool        `json:"authenticated"`
		UserType      models.Role `json:"userType"`
		User          models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/current-user", nil, &out); err != nil {
		return nil, err
	}
	if !out.Authenticated {
		return nil, ErrUnauthorized
	}
	u := out.User
	if u.Role == "" {
		u.Role = out.UserType
	}
	return &u, nil
}

// ---- tutor directory ----

func (c *RESTClient) ListTutors(ctx context.Context) ([]models.TutorProfile, error) {
	var out []models.TutorProfile
	if err := c.do(ctx, http.MethodGet, "/api/tutors", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) GetTutor(ctx context.Context, id int64) (*models.TutorProfile, error) {
	var out models.TutorProfile
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tutors/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) ReplaceTutor(ctx context.Context, t models.TutorProfile) (*models.TutorProfile, error) {
	var out models.TutorProfile
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tutors/%d", t.TutorID), t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) FeaturedTutors(ctx context.Context) ([]models.TutorProfile, error) {
	var out []models.TutorProfile
	if err := c.do(ctx, http.MethodGet, "/api/tutors/featured", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) TutorStats(ctx context.Context) (*models.TutorStats, error) {
	var out models.TutorStats
	if err := c.do(ctx, http.MethodGet, "/api/tutors/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- tutoring sessions ----

func (c *RESTClient) ListSessions(ctx context.Context) ([]models.Session, error) {
	var out []models.Session
	if err := c.do(ctx, http.MethodGet, "/api/tutoring-sessions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var out models.Session
	if err := c.do(ctx, http.MethodGet, "/api/tutoring-sessions/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) CreateSession(ctx context.Context, s models.Session) (*models.Session, error) {
	var out models.Session
	if err := c.do(ctx, http.MethodPost, "/api/tutoring-sessions", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) ReplaceSession(ctx context.Context, s models.Session) (*models.Session, error) {
	var out models.Session
	if err := c.do(ctx, http.MethodPut, "/api/tutoring-sessions/"+s.ID, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tutoring-sessions/"+id, nil, nil)
}

// ---- dashboard aggregates ----

func (c *RESTClient) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) ActiveSession(ctx context.Context) (*models.Session, error) {
	var out models.Session
	if err := c.do(ctx, http.MethodGet, "/api/sessions/active", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- conversations ----

// envelope is the {success, data, message} wrapper the message endpoints use.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Created *bool           `json:"created,omitempty"`
}

func (e envelope) intoData(out any) error {
	if !e.Success {
		return &ValidationError{Message: e.Message}
	}
	if out == nil || len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("decode envelope data: %w", err)
	}
	return nil
}

func (c *RESTClient) CreateConversation(ctx context.Context, req models.ConversationRequest) (*models.Conversation, bool, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/api/messages/conversations", req, &env); err != nil {
		return nil, false, err
	}
	var conv models.Conversation
	if err := env.intoData(&conv); err != nil {
		return nil, false, err
	}

	created := true
	if env.Created != nil {
		created = *env.Created
	} else if strings.Contains(strings.ToLower(env.Message), "already exists") {
		created = false
	}
	return &conv, created, nil
}

func (c *RESTClient) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/api/messages/conversations", nil, &env); err != nil {
		return nil, err
	}
	var out []models.Conversation
	if err := env.intoData(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	var env envelope
	path := fmt.Sprintf("/api/messages/conversations/%d/messages", conversationID)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	var out []models.Message
	if err := env.intoData(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) SendMessage(ctx context.Context, conversationID int64, text string) (*models.Message, error) {
	in := struct {
		MessageText string `json:"messageText"`
	}{MessageText: text}

	var env envelope
	path := fmt.Sprintf("/api/messages/conversations/%d/messages", conversationID)
	if err := c.do(ctx, http.MethodPost, path, in, &env); err != nil {
		return nil, err
	}
	var out models.Message
	if err := env.intoData(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) DeleteMessage(ctx context.Context, messageID int64) error {
	var env envelope
	path := fmt.Sprintf("/api/messages/%d", messageID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &env); err != nil {
		return err
	}
	return env.intoData(nil)
}

func (c *RESTClient) ReactToMessage(ctx context.Context, messageID int64, emoji string) (*models.Message, error) {
	in := struct {
		Emoji string `json:"emoji"`
	}{Emoji: emoji}

	var env envelope
	path := fmt.Sprintf("/api/messages/%d/reaction", messageID)
	if err := c.do(ctx, http.MethodPost, path, in, &env); err != nil {
		return nil, err
	}
	var out models.Message
	if err := env.intoData(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
