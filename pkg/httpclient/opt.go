package httpclient

import (
	"io"

	// Packages
	client "github.com/mutablelogic/go-client"
	latex "github.com/mutablelogic/go-latex"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring a client
type Opt func(*opts) error

type opts struct {
	clientOpts []client.ClientOpt
	tracer     trace.Tracer
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func applyOpts(o ...Opt) (*opts, error) {
	result := new(opts)
	for _, fn := range o {
		if err := fn(result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithClientOpt passes options to the underlying HTTP client. Timeouts set
// here are ignored; use the Timeout field of the configuration instead.
func WithClientOpt(v ...client.ClientOpt) Opt {
	return func(o *opts) error {
		o.clientOpts = append(o.clientOpts, v...)
		return nil
	}
}

// WithTrace writes requests and responses to w, including bodies when
// verbose is true
func WithTrace(w io.Writer, verbose bool) Opt {
	return func(o *opts) error {
		if w == nil {
			return latex.ErrClient.With("trace writer is required")
		}
		o.clientOpts = append(o.clientOpts, client.OptTrace(w, verbose))
		return nil
	}
}

// WithTracer records a span for each render call
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *opts) error {
		o.tracer = tracer
		return nil
	}
}
