/*
httpclient implements a client for the LaTeX rendering service, which
compiles LaTeX documents to HTML fragments (POST /render) or PDF documents
(POST /render/pdf).
*/
package httpclient

import (
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	latex "github.com/mutablelogic/go-latex"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a renderer which sends documents to a remote rendering service.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	*client.Client
	token   client.Token
	baseURL string
	timeout time.Duration
	tracer  trace.Tracer
}

var _ latex.Renderer = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	renderHTMLPath = "/render"
	renderPDFPath  = "/render/pdf"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new client from the configuration. The API key is required.
func New(config latex.Config, opts ...Opt) (*Client, error) {
	// Check the key and apply defaults
	config, err := config.Normalise()
	if err != nil {
		return nil, err
	}

	// Apply options
	o, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}

	// Create the underlying client
	c := &Client{
		token:   client.Token{Scheme: client.Bearer, Value: config.APIKey},
		baseURL: config.BaseURL,
		timeout: config.Timeout,
		tracer:  o.tracer,
	}
	if httpClient, err := client.New(append(o.clientOpts, client.OptEndpoint(config.BaseURL))...); err != nil {
		return nil, latex.ErrClient.Withf("invalid configuration: %v", err)
	} else {
		c.Client = httpClient
	}

	// Timeouts are applied per request
	c.Client.Client.Timeout = 0

	// Return success
	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// BaseURL returns the normalised service endpoint
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the timeout applied to requests made without a
// cancellable context
func (c *Client) Timeout() time.Duration {
	return c.timeout
}
