package qaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/coursehub/coursehub/internal/pkg/apperrors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func testConfig() Config {
	return Config{
		BaseURL:       "http://backend.test/",
		PingTimeout:   time.Second,
		AskTimeout:    time.Second,
		UploadTimeout: time.Second,
		DebugTimeout:  time.Second,
	}
}

func newStubClient(t *testing.T, roundTrip func(*http.Request) (*http.Response, error)) *Client {
	t.Helper()
	cfg := testConfig()
	cfg.HTTPClient = &http.Client{Transport: roundTripFunc(roundTrip)}
	c, err := New(zerolog.Nop(), cfg)
	require.NoError(t, err)
	return c
}

// newServerClient points a client at an httptest server with its own transport
// so idle connections can be closed before the leak check.
func newServerClient(t *testing.T, handler http.HandlerFunc, mutate func(*Config)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	transport := &http.Transport{}
	t.Cleanup(func() {
		transport.CloseIdleConnections()
		srv.Close()
	})

	cfg := testConfig()
	cfg.BaseURL = srv.URL
	cfg.HTTPClient = &http.Client{Transport: transport}
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := New(zerolog.Nop(), cfg)
	require.NoError(t, err)
	return c
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.BaseURL = "not a url"
	_, err := New(zerolog.Nop(), cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.AskTimeout = 0
	_, err = New(zerolog.Nop(), cfg)
	assert.Error(t, err)
}

func TestBaseURLIsNormalized(t *testing.T) {
	c := newStubClient(t, nil)
	assert.Equal(t, "http://backend.test", c.BaseURL())
}

func TestPingSendsTunnelHeaders(t *testing.T) {
	c := newStubClient(t, func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/ping", r.URL.Path)
		assert.Equal(t, "true", r.Header.Get("ngrok-skip-browser-warning"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		return jsonResponse(http.StatusOK, `{"status":"ok"}`), nil
	})

	assert.NoError(t, c.Ping(context.Background()))
}

func TestPingFailuresAreUnavailable(t *testing.T) {
	down := newStubClient(t, func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	err := down.Ping(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrBackendUnavailable)

	erroring := newStubClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, `<html>tunnel offline</html>`), nil
	})
	err = erroring.Ping(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrBackendUnavailable)
	assert.Contains(t, err.Error(), "502")
}

func TestAskRequestShape(t *testing.T) {
	var captured map[string]any
	c := newStubClient(t, func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ask", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "true", r.Header.Get("ngrok-skip-browser-warning"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		return jsonResponse(http.StatusOK, `{"answer":"42","sources":[{"title":"notes.pdf","excerpt":"the answer"}]}`), nil
	})

	res, err := c.Ask(context.Background(), AskRequest{Question: "why?", UnitID: int64Ptr(4)})
	require.NoError(t, err)

	assert.Equal(t, "why?", captured["question"])
	assert.Equal(t, float64(4), captured["unitId"])
	assert.NotContains(t, captured, "courseId")

	assert.Equal(t, "42", res.Answer)
	require.Len(t, res.Sources, 1)
	assert.Equal(t, Source{Title: "notes.pdf", Excerpt: "the answer"}, res.Sources[0])
}

func TestAskErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		resp   *http.Response
		err    error
		target error
	}{
		{"transport", nil, errors.New("connection reset"), apperrors.ErrBackendFailed},
		{"status", jsonResponse(http.StatusInternalServerError, `{"error":"index empty"}`), nil, apperrors.ErrBackendFailed},
		{"malformed", jsonResponse(http.StatusOK, `<html>`), nil, apperrors.ErrBackendMalformed},
		{"deadline", nil, context.DeadlineExceeded, apperrors.ErrBackendTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newStubClient(t, func(*http.Request) (*http.Response, error) {
				return tt.resp, tt.err
			})
			_, err := c.Ask(context.Background(), AskRequest{Question: "q"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestAskStatusErrorCarriesRemoteMessage(t *testing.T) {
	c := newStubClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, `{"error":"index empty"}`), nil
	})

	_, err := c.Ask(context.Background(), AskRequest{Question: "q"})
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, http.StatusInternalServerError, opErr.StatusCode)
	assert.Contains(t, err.Error(), "index empty")
}

func TestAskTimesOut(t *testing.T) {
	release := make(chan struct{})
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}, func(cfg *Config) { cfg.AskTimeout = 50 * time.Millisecond })
	defer close(release)

	start := time.Now()
	_, err := c.Ask(context.Background(), AskRequest{Question: "slow"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBackendTimeout)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestUploadMultipartShape(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		assert.Equal(t, "true", r.Header.Get("ngrok-skip-browser-warning"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "3", r.FormValue("unitId"))
		var hierarchy map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("courseHierarchy")), &hierarchy))
		assert.Equal(t, "CS", hierarchy["course_name"])

		files := r.MultipartForm.File["files"]
		require.Len(t, files, 2)
		assert.Equal(t, "a.pdf", files[0].Filename)
		f, err := files[1].Open()
		require.NoError(t, err)
		defer f.Close()
		content, _ := io.ReadAll(f)
		assert.Equal(t, "%PDF-b", string(content))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Processed 2 files","chunks":12}`))
	}, nil)

	res, err := c.Upload(context.Background(), UploadRequest{
		UnitID: 3,
		Files: []UploadFile{
			{Name: "a.pdf", Content: []byte("%PDF-a")},
			{Name: "b.pdf", Content: []byte("%PDF-b")},
		},
		Hierarchy: map[string]any{"course_name": "CS"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Processed 2 files", res["message"])
	assert.Equal(t, float64(12), res["chunks"])
}

func TestUploadOmitsHierarchyWhenUnresolved(t *testing.T) {
	c := newStubClient(t, func(r *http.Request) (*http.Response, error) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, present := r.MultipartForm.Value["courseHierarchy"]
		assert.False(t, present)
		return jsonResponse(http.StatusOK, `{"message":"ok"}`), nil
	})

	_, err := c.Upload(context.Background(), UploadRequest{UnitID: 1, Files: []UploadFile{{Name: "a.pdf"}}})
	assert.NoError(t, err)
}

func TestUploadRejectsNonObjectPayload(t *testing.T) {
	c := newStubClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `["not","an","object"]`), nil
	})

	_, err := c.Upload(context.Background(), UploadRequest{UnitID: 1})
	assert.ErrorIs(t, err, apperrors.ErrBackendMalformed)
}

func TestDebugForwardsFilters(t *testing.T) {
	c := newStubClient(t, func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, "/debug", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("courseId"))
		assert.Equal(t, "5", r.URL.Query().Get("unitId"))
		return jsonResponse(http.StatusOK, `{"documents":3,"chunks":40}`), nil
	})

	raw, err := c.Debug(context.Background(), url.Values{"courseId": {"2"}, "unitId": {"5"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"documents":3,"chunks":40}`, string(raw))
}

func TestDebugPropagatesStatus(t *testing.T) {
	c := newStubClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{}`), nil
	})

	_, err := c.Debug(context.Background(), nil)
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, http.StatusNotFound, opErr.StatusCode)
	assert.ErrorIs(t, err, apperrors.ErrBackendFailed)
}

func TestEncodeUploadWithoutFiles(t *testing.T) {
	body, contentType, err := encodeUpload(UploadRequest{UnitID: 8})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data"))

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(raw, []byte(`name="unitId"`)))
}
