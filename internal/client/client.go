// Package client talks to the quiz service REST API on behalf of a learner.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"lessonquiz/internal/logger"
	"lessonquiz/internal/model"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("quiz api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("quiz api: status %d: %s", e.StatusCode, e.Message)
}

// Client is a quiz service client. The base URL includes the API prefix,
// e.g. http://localhost:8080/v1.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the logger used for skipped questions and retries.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Enroll registers a learner and keeps the returned token for later calls.
func (c *Client) Enroll(ctx context.Context, name, email string) (*model.EnrollResponse, error) {
	var resp model.EnrollResponse
	if err := c.do(ctx, http.MethodPost, "/auth/learners", model.EnrollRequest{Name: name, Email: email}, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Login authenticates an admin and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", model.LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// LessonQuestions fetches and normalizes a lesson's questions. Entries that
// cannot be normalized are logged and skipped.
func (c *Client) LessonQuestions(ctx context.Context, lessonID string) ([]model.Question, error) {
	var raw []json.RawMessage
	path := "/quizzes/lesson/" + url.PathEscape(lessonID)
	if err := c.doWithRetry(ctx, http.MethodGet, path, &raw); err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(raw))
	for i, item := range raw {
		var rq model.RawQuestion
		if err := json.Unmarshal(item, &rq); err != nil {
			c.log.Warn("[Client] skipping undecodable question", lessonID, i, err)
			continue
		}
		q, err := rq.Normalize()
		if err != nil {
			c.log.Warn("[Client] skipping malformed question", lessonID, i, err)
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// SubmitQuiz sends a complete answer map and returns the server's grading.
// It is never retried: a lost response could otherwise record two attempts.
func (c *Client) SubmitQuiz(ctx context.Context, lessonID string, answers map[string]string) (*model.ScoreResult, error) {
	var result model.ScoreResult
	req := model.SubmitRequest{LessonID: lessonID, Answers: answers}
	if err := c.do(ctx, http.MethodPost, "/quizzes/submit", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CompleteLesson records the lesson as completed for the current learner.
func (c *Client) CompleteLesson(ctx context.Context, lessonID string) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	path := "/lessons/" + url.PathEscape(lessonID) + "/complete"
	if err := c.do(ctx, http.MethodPost, path, nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request")
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func apiError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Fields = body.Fields
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}
