package qaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// The backend is exposed through an ngrok tunnel, which serves an HTML
	// interstitial to requests that lack this header.
	headerSkipBrowserWarning = "ngrok-skip-browser-warning"

	maxErrorBodyBytes    = 1024
	maxResponseBodyBytes = 8 << 20
)

// Config holds the remote backend address and one bounded wait per call kind.
type Config struct {
	BaseURL       string
	PingTimeout   time.Duration
	AskTimeout    time.Duration
	UploadTimeout time.Duration
	DebugTimeout  time.Duration
	// HTTPClient is optional; tests inject stubbed transports through it.
	HTTPClient *http.Client
}

// Source is one passage the backend cites for an answer.
type Source struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

// AskRequest is the question forwarded to the backend with optional hierarchy filters.
type AskRequest struct {
	Question   string `json:"question"`
	CourseID   *int64 `json:"courseId,omitempty"`
	YearID     *int64 `json:"yearId,omitempty"`
	SemesterID *int64 `json:"semesterId,omitempty"`
	UnitID     *int64 `json:"unitId,omitempty"`
}

// AskResult is the backend's answer.
type AskResult struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// UploadFile is one document re-submitted to the backend.
type UploadFile struct {
	Name    string
	Content []byte
}

// UploadRequest is a batch of documents for one unit. Hierarchy, when set, is
// JSON-encoded into the courseHierarchy form field.
type UploadRequest struct {
	UnitID    int64
	Files     []UploadFile
	Hierarchy any
}

// Client talks to the remote question-answering backend.
type Client struct {
	log     zerolog.Logger
	cfg     Config
	baseURL string
	http    *http.Client
}

// New validates cfg and builds a Client.
func New(log zerolog.Logger, cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", cfg.BaseURL)
	}
	for name, d := range map[string]time.Duration{
		"ping":   cfg.PingTimeout,
		"ask":    cfg.AskTimeout,
		"upload": cfg.UploadTimeout,
		"debug":  cfg.DebugTimeout,
	} {
		if d <= 0 {
			return nil, fmt.Errorf("backend %s timeout must be positive", name)
		}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		log:     log.With().Str("component", "qaclient").Logger(),
		cfg:     cfg,
		baseURL: baseURL,
		http:    httpClient,
	}, nil
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping probes GET /ping. Any failure, including a timeout, is reported as unavailable.
func (c *Client) Ping(ctx context.Context) error {
	const op = "ping"
	ctx, cancel := context.WithTimeout(ctx, c.cfg.PingTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/ping", nil)
	if err != nil {
		return opErr(op, OperationErrorUnavailable, "build ping request failed", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return opErr(op, OperationErrorUnavailable, "backend not reachable", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &OperationError{
			Code:       OperationErrorUnavailable,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Backend not reachable: %d", resp.StatusCode),
		}
	}
	return nil
}

// Ask forwards a question to POST /ask.
func (c *Client) Ask(ctx context.Context, in AskRequest) (*AskResult, error) {
	const op = "ask"
	ctx, cancel := context.WithTimeout(ctx, c.cfg.AskTimeout)
	defer cancel()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(in); err != nil {
		return nil, opErr(op, OperationErrorEncodeFailed, "encode ask request failed", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/ask", &buf)
	if err != nil {
		return nil, opErr(op, OperationErrorTransportFailed, "build ask request failed", err)
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	var out AskResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, opErr(op, OperationErrorDecodeFailed, "decode ask response failed", err)
	}
	if out.Sources == nil {
		out.Sources = []Source{}
	}
	return &out, nil
}

// Upload submits documents to POST /upload as multipart form data and returns
// the backend's JSON object verbatim.
func (c *Client) Upload(ctx context.Context, in UploadRequest) (map[string]any, error) {
	const op = "upload"
	ctx, cancel := context.WithTimeout(ctx, c.cfg.UploadTimeout)
	defer cancel()

	body, contentType, err := encodeUpload(in)
	if err != nil {
		return nil, opErr(op, OperationErrorEncodeFailed, "encode upload request failed", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", body)
	if err != nil {
		return nil, opErr(op, OperationErrorTransportFailed, "build upload request failed", err)
	}
	req.Header.Set("Content-Type", contentType)

	raw, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		if err == nil {
			err = errors.New("response is not a JSON object")
		}
		return nil, opErr(op, OperationErrorDecodeFailed, "decode upload response failed", err)
	}
	return out, nil
}

// Debug proxies GET /debug with the given filters and returns the raw JSON document.
func (c *Client) Debug(ctx context.Context, filters url.Values) (json.RawMessage, error) {
	const op = "debug"
	ctx, cancel := context.WithTimeout(ctx, c.cfg.DebugTimeout)
	defer cancel()

	path := "/debug"
	if encoded := filters.Encode(); encoded != "" {
		path += "?" + encoded
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, opErr(op, OperationErrorTransportFailed, "build debug request failed", err)
	}

	raw, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, opErr(op, OperationErrorDecodeFailed, "decode debug response failed", errors.New("invalid JSON"))
	}
	return json.RawMessage(raw), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerSkipBrowserWarning, "true")
	return req, nil
}

// do executes req and returns the body of a 2xx response.
func (c *Client) do(op string, req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("op", op).Dur("elapsed", time.Since(start)).Msg("Backend request failed")
		return nil, classifyHTTPCallError(op, "backend request failed", err)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if readErr != nil {
		return nil, classifyHTTPCallError(op, "read backend response failed", readErr)
	}

	c.log.Debug().Str("op", op).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("Backend responded")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &OperationError{
			Code:       OperationErrorStatus,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Backend %s failed: %d%s", op, resp.StatusCode, remoteErrorSuffix(raw)),
		}
	}
	return raw, nil
}

func encodeUpload(in UploadRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range in.Files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.WriteField("unitId", strconv.FormatInt(in.UnitID, 10)); err != nil {
		return nil, "", err
	}
	if in.Hierarchy != nil {
		hierarchy, err := json.Marshal(in.Hierarchy)
		if err != nil {
			return nil, "", err
		}
		if err := w.WriteField("courseHierarchy", string(hierarchy)); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func classifyHTTPCallError(op, message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return opErr(op, OperationErrorTimeout, fmt.Sprintf("backend %s timed out", op), err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return opErr(op, OperationErrorTimeout, fmt.Sprintf("backend %s timed out", op), err)
	}
	return opErr(op, OperationErrorTransportFailed, message, err)
}

// remoteErrorSuffix extracts {"error": "..."} from a failed response, if present.
func remoteErrorSuffix(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && strings.TrimSpace(body.Error) != "" {
		return " (" + truncate(body.Error) + ")"
	}
	return ""
}

func truncate(s string) string {
	if len(s) <= maxErrorBodyBytes {
		return s
	}
	return s[:maxErrorBodyBytes] + "..."
}
