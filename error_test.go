package latex_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	// Packages
	latex "github.com/mutablelogic/go-latex"
	assert "github.com/stretchr/testify/assert"
)

func Test_error_001(t *testing.T) {
	// Kinds match through wrapping, and only their own kind
	assert := assert.New(t)

	kinds := []latex.Err{latex.ErrClient, latex.ErrAuthentication, latex.ErrRender, latex.ErrAPI, latex.ErrConnection}
	for _, kind := range kinds {
		err := fmt.Errorf("wrapped: %w", kind.With("message"))
		for _, other := range kinds {
			assert.Equal(kind == other, errors.Is(err, other), "%v is %v", kind, other)
		}
	}
}

func Test_error_002(t *testing.T) {
	// Constructors fix the status codes
	assert := assert.New(t)

	auth := latex.NewAuthenticationError("invalid key")
	assert.Equal(latex.ErrAuthentication, auth.Err)
	assert.Equal(401, auth.StatusCode)
	assert.Equal("invalid key", auth.Error())

	render := latex.NewRenderError("latex render failed", "undefined control sequence")
	assert.Equal(latex.ErrRender, render.Err)
	assert.Equal(400, render.StatusCode)
	assert.Equal("undefined control sequence", render.Detail)

	api := latex.NewAPIError("HTTP 503: Service Unavailable", 503)
	assert.Equal(latex.ErrAPI, api.Err)
	assert.Equal(503, api.StatusCode)

	conn := latex.NewConnectionError("Request timed out or was cancelled", context.DeadlineExceeded)
	assert.Equal(latex.ErrConnection, conn.Err)
	assert.Zero(conn.StatusCode)
	assert.ErrorIs(conn, context.DeadlineExceeded)
	assert.ErrorIs(conn, latex.ErrConnection)
}

func Test_error_003(t *testing.T) {
	// Message falls back to the kind
	assert := assert.New(t)

	assert.Equal("render error", (&latex.Error{Err: latex.ErrRender}).Error())
	assert.Equal("apiKey is required", latex.ErrClient.With("apiKey is required").Error())
	assert.Equal("image \"a\": bad", latex.ErrClient.Withf("image %q: %s", "a", "bad").Error())
	assert.Equal("error code 99", latex.Err(99).Error())
}

func Test_error_004(t *testing.T) {
	// Detail lines prefer TeX error lines
	assert := assert.New(t)

	err := latex.NewRenderError("pdf render failed", "This is pdfTeX\r\n! Undefined control sequence.\nl.5 \\foo\n\n! Emergency stop.\n")
	assert.Equal([]string{"! Undefined control sequence.", "! Emergency stop."}, err.DetailLines())

	err = latex.NewRenderError("latex render failed", "Error: something\n\n  at line 3\n")
	assert.Equal([]string{"Error: something", "  at line 3"}, err.DetailLines())

	err = latex.NewRenderError("latex render failed", "")
	assert.Empty(err.DetailLines())
}
