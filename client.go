package latex

import (
	"context"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Renderer converts LaTeX source into HTML or PDF
type Renderer interface {
	// RenderHTML returns the document rendered as an HTML fragment
	RenderHTML(ctx context.Context, latex string, opts ...RenderOpt) (string, error)

	// RenderPDF returns the document compiled to PDF
	RenderPDF(ctx context.Context, latex string, opts ...RenderOpt) ([]byte, error)
}
