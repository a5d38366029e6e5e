package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	latex "github.com/mutablelogic/go-latex"
	httpclient "github.com/mutablelogic/go-latex/pkg/httpclient"
	version "github.com/mutablelogic/go-latex/pkg/version"
	zerolog "github.com/rs/zerolog"
	otelapi "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output, including request and response bodies"`

	// Service
	Config   string        `name:"config" type:"path" env:"LATEX_CONFIG" help:"YAML configuration file"`
	Endpoint string        `name:"endpoint" env:"LATEX_ENDPOINT" help:"Rendering service URL (default http://localhost:8080)"`
	APIKey   string        `name:"api-key" env:"LATEX_API_KEY" help:"Rendering service API key"`
	Timeout  time.Duration `name:"timeout" env:"LATEX_TIMEOUT" help:"Request timeout (default 30s)"`

	// Context
	ctx      context.Context
	log      zerolog.Logger
	tracer   trace.Tracer
	execName string
}

type CLI struct {
	Globals

	// Commands
	HTML    RenderHTMLCommand `cmd:"" name:"html" help:"Render a LaTeX document to HTML." group:"RENDER"`
	PDF     RenderPDFCommand  `cmd:"" name:"pdf" help:"Render a LaTeX document to PDF." group:"RENDER"`
	Version VersionCommand    `cmd:"" name:"version" help:"Print version information."`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("LaTeX rendering service client"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()
	cli.Globals.log = newLogger(os.Stderr, cli.Debug || cli.Verbose)
	cli.Globals.tracer = otelapi.Tracer(version.Product)

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Client returns a client configured from flags, environment and the
// configuration file, in that order of precedence
func (g *Globals) Client() (*httpclient.Client, error) {
	config, err := g.clientConfig()
	if err != nil {
		return nil, err
	}

	// Client options
	opts := []httpclient.Opt{}
	if g.Debug || g.Verbose {
		opts = append(opts, httpclient.WithTrace(os.Stderr, g.Verbose))
	}
	if g.tracer != nil {
		opts = append(opts, httpclient.WithTracer(g.tracer))
	}

	return httpclient.New(config, opts...)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (g *Globals) clientConfig() (latex.Config, error) {
	config := latex.Config{
		APIKey:  g.APIKey,
		BaseURL: g.Endpoint,
		Timeout: g.Timeout,
	}
	if g.Config == "" {
		return config, nil
	}

	// Fill unset values from the file
	file, err := os.Open(g.Config)
	if err != nil {
		return latex.Config{}, err
	}
	defer file.Close()
	if fromFile, err := latex.LoadConfig(file); err != nil {
		return latex.Config{}, err
	} else {
		config = config.Merge(fromFile)
	}

	g.log.Debug().Str("config", g.Config).Msg("loaded configuration")
	return config, nil
}

func newLogger(w *os.File, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().
		Logger()
}

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
