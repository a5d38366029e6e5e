package httpclient_test

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	// Packages
	latex "github.com/mutablelogic/go-latex"
	httpclient "github.com/mutablelogic/go-latex/pkg/httpclient"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// HELPERS

const testKey = "test123"

// request is what a test server saw
type request struct {
	method, path, auth, contentType, userAgent, requestId string
	body                                                  []byte
}

// received holds the last request seen by a test server
type received struct {
	mu  sync.Mutex
	req request
}

func (r *received) capture(req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.req = request{
		method:      req.Method,
		path:        req.URL.Path,
		auth:        req.Header.Get("Authorization"),
		contentType: req.Header.Get("Content-Type"),
		userAgent:   req.Header.Get("User-Agent"),
		requestId:   req.Header.Get("X-Request-Id"),
		body:        body,
	}
}

func (r *received) last() request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.req
}

// newTestServer returns a server which records each request and replies
// with the given status, content type and body
func newTestServer(t *testing.T, status int, contentType string, body []byte) (*httptest.Server, *received) {
	t.Helper()
	rec := new(received)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.capture(r)
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = io.Copy(w, bytes.NewReader(body))
	}))
	t.Cleanup(server.Close)
	return server, rec
}

func newClient(t *testing.T, url string) *httpclient.Client {
	t.Helper()
	c, err := httpclient.New(latex.Config{APIKey: testKey, BaseURL: url})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_client_001(t *testing.T) {
	// Missing API key fails before any request is made
	assert := assert.New(t)

	server, rec := newTestServer(t, http.StatusOK, "", nil)

	c, err := httpclient.New(latex.Config{BaseURL: server.URL})
	assert.Nil(c)
	assert.ErrorIs(err, latex.ErrClient)
	assert.EqualError(err, "apiKey is required")

	var e *latex.Error
	if assert.True(errors.As(err, &e)) {
		assert.Equal(latex.ErrClient, e.Err)
		assert.Zero(e.StatusCode)
	}
	assert.Empty(rec.last().method)
}

func Test_client_002(t *testing.T) {
	// Defaults
	assert := assert.New(t)

	c, err := httpclient.New(latex.Config{APIKey: testKey})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("http://localhost:8080", c.BaseURL())
	assert.Equal(30*time.Second, c.Timeout())
}

func Test_client_003(t *testing.T) {
	// A single trailing slash is removed and the result used as the prefix
	assert := assert.New(t)

	server, rec := newTestServer(t, http.StatusOK, "text/html", []byte("<p>ok</p>"))
	c := newClient(t, server.URL+"/")
	assert.Equal(server.URL, c.BaseURL())

	_, err := c.RenderHTML(t.Context(), "x")
	assert.NoError(err)
	assert.Equal("/render", rec.last().path)

	c, err = httpclient.New(latex.Config{APIKey: testKey, BaseURL: "http://h/"})
	if assert.NoError(err) {
		assert.Equal("http://h", c.BaseURL())
	}
}

func Test_client_004(t *testing.T) {
	// Explicit timeout is kept
	assert := assert.New(t)

	c, err := httpclient.New(latex.Config{APIKey: testKey, Timeout: time.Second})
	if assert.NoError(err) {
		assert.Equal(time.Second, c.Timeout())
	}
}

func Test_client_005(t *testing.T) {
	// Trace option requires a writer
	assert := assert.New(t)

	_, err := httpclient.New(latex.Config{APIKey: testKey}, httpclient.WithTrace(nil, false))
	assert.ErrorIs(err, latex.ErrClient)

	var buf bytes.Buffer
	c, err := httpclient.New(latex.Config{APIKey: testKey}, httpclient.WithTrace(&buf, true))
	assert.NoError(err)
	assert.NotNil(c)
}
