package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	// Packages
	uuid "github.com/google/uuid"
	latex "github.com/mutablelogic/go-latex"
	version "github.com/mutablelogic/go-latex/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	contentTypeText = "text/plain"
	headerRequestId = "X-Request-Id"
)

const (
	msgCancelled      = "Request timed out or was cancelled"
	msgUnknownNetwork = "Unknown network error"
	msgUnknownError   = "Unknown error"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// request posts the document to the endpoint and returns the response body
// of a successful response. Every error returned is a *latex.Error.
func (c *Client) request(ctx context.Context, endpoint, src string, o *latex.RenderOpts) ([]byte, error) {
	// A context which can never be cancelled gets the configured timeout
	if ctx.Done() == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, endpoint, src, o)
	if err != nil {
		return nil, err
	}

	// Perform the request
	resp, err := c.Client.Client.Do(req)
	if err != nil {
		return nil, connectionError(ctx, err)
	}
	defer resp.Body.Close()

	// Map unsuccessful responses
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, handleError(resp)
	}

	// Read the body before the context is released
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, connectionError(ctx, err)
	}

	// Return success
	return data, nil
}

// newRequest returns a text/plain request, or a multipart form when
// images are attached
func (c *Client) newRequest(ctx context.Context, endpoint, src string, o *latex.RenderOpts) (*http.Request, error) {
	var body io.Reader
	var contentType string
	if images := o.Images(); len(images) == 0 {
		body, contentType = strings.NewReader(src), contentTypeText
	} else if form, ct, err := multipartBody(src, images); err != nil {
		return nil, err
	} else {
		body, contentType = form, ct
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return nil, latex.ErrClient.Withf("invalid request: %v", err)
	}
	req.Header.Set("Authorization", c.token.String())
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(headerRequestId, uuid.NewString())

	return req, nil
}

// multipartBody encodes the document as the "content" field and the
// images as a JSON "images" field
func multipartBody(src string, images map[string]latex.Image) (*bytes.Buffer, string, error) {
	data, err := json.Marshal(images)
	if err != nil {
		return nil, "", latex.ErrClient.Withf("images: %v", err)
	}

	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	if err := w.WriteField("content", src); err != nil {
		return nil, "", latex.ErrClient.With(err)
	}
	if err := w.WriteField("images", string(data)); err != nil {
		return nil, "", latex.ErrClient.With(err)
	}
	if err := w.Close(); err != nil {
		return nil, "", latex.ErrClient.With(err)
	}

	return buf, w.FormDataContentType(), nil
}

// connectionError maps a transport failure. Errors which are already
// typed are returned unchanged.
func connectionError(ctx context.Context, err error) error {
	var typed *latex.Error
	if errors.As(err, &typed) {
		return typed
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return latex.NewConnectionError(msgCancelled, err)
	}
	if message := err.Error(); message != "" {
		return latex.NewConnectionError(message, err)
	}
	return latex.NewConnectionError(msgUnknownNetwork, err)
}

// handleError decodes the error envelope of an unsuccessful response and
// returns the matching typed error. It never returns nil.
func handleError(resp *http.Response) error {
	var envelope any
	if data, err := io.ReadAll(resp.Body); err != nil {
		return latex.NewAPIError(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, statusText(resp)), resp.StatusCode)
	} else if err := json.Unmarshal(data, &envelope); err != nil {
		return latex.NewAPIError(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, statusText(resp)), resp.StatusCode)
	}

	// The envelope may be any JSON value; only string fields of an object count
	message, detail := msgUnknownError, ""
	if fields, ok := envelope.(map[string]any); ok {
		if v, ok := fields["error"].(string); ok {
			message = v
		}
		if v, ok := fields["detail"].(string); ok {
			detail = v
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return latex.NewAuthenticationError(message)
	case resp.StatusCode == http.StatusBadRequest && (message == latex.RenderFailedHTML || message == latex.RenderFailedPDF):
		return latex.NewRenderError(message, detail)
	default:
		return latex.NewAPIError(message, resp.StatusCode)
	}
}

// statusText returns the reason phrase of the status line
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	if text = strings.TrimSpace(text); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
