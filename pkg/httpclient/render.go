package httpclient

import (
	"context"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	latex "github.com/mutablelogic/go-latex"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RenderHTML sends the document to the server and returns the rendered
// HTML exactly as received.
//
// When ctx cannot be cancelled (for example context.Background()) the
// configured timeout applies. Otherwise ctx alone decides when the
// request is abandoned, and the configured timeout is not applied.
func (c *Client) RenderHTML(ctx context.Context, src string, opts ...latex.RenderOpt) (_ string, err error) {
	ctx, endSpan := c.startSpan(ctx, "RenderHTML", renderHTMLPath, src)
	defer func() { endSpan(err) }()

	data, err := c.render(ctx, renderHTMLPath, src, opts...)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RenderPDF sends the document to the server and returns the PDF bytes
// exactly as received. Cancellation and timeout follow RenderHTML.
func (c *Client) RenderPDF(ctx context.Context, src string, opts ...latex.RenderOpt) (_ []byte, err error) {
	ctx, endSpan := c.startSpan(ctx, "RenderPDF", renderPDFPath, src)
	defer func() { endSpan(err) }()

	return c.render(ctx, renderPDFPath, src, opts...)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) render(ctx context.Context, endpoint, src string, opts ...latex.RenderOpt) ([]byte, error) {
	o, err := latex.ApplyRenderOpts(opts...)
	if err != nil {
		return nil, err
	}
	return c.request(ctx, endpoint, src, o)
}

// startSpan is a no-op unless a tracer was set
func (c *Client) startSpan(ctx context.Context, name, endpoint, src string) (context.Context, func(error)) {
	if c.tracer == nil {
		return ctx, func(error) {}
	}
	return otel.StartSpan(c.tracer, ctx, name,
		attribute.String("endpoint", c.baseURL+endpoint),
		attribute.Int("latex.size", len(src)),
	)
}
