package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	latex "github.com/mutablelogic/go-latex"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type RenderCommand struct {
	Input  string   `arg:"" help:"LaTeX source file, or - to read standard input"`
	Output string   `name:"out" short:"o" help:"Output file, or - for standard output"`
	Images []string `name:"image" help:"Attach a remote image as filename=url (repeatable)"`
}

type RenderHTMLCommand struct {
	RenderCommand
}

type RenderPDFCommand struct {
	RenderCommand
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RenderHTMLCommand) Run(ctx *Globals) (err error) {
	src, opts, err := cmd.prepare()
	if err != nil {
		return err
	}

	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "RenderHTMLCommand",
		attribute.String("input", cmd.Input),
	)
	defer func() { endSpan(err) }()

	// The signal context can be cancelled, so apply the timeout here
	parent, cancel := context.WithTimeout(parent, client.Timeout())
	defer cancel()

	html, err := client.RenderHTML(parent, src, opts...)
	if err != nil {
		return ctx.renderError(err)
	}
	return ctx.write(cmd.outputPath(""), []byte(html))
}

func (cmd *RenderPDFCommand) Run(ctx *Globals) (err error) {
	src, opts, err := cmd.prepare()
	if err != nil {
		return err
	}

	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "RenderPDFCommand",
		attribute.String("input", cmd.Input),
	)
	defer func() { endSpan(err) }()

	parent, cancel := context.WithTimeout(parent, client.Timeout())
	defer cancel()

	pdf, err := client.RenderPDF(parent, src, opts...)
	if err != nil {
		return ctx.renderError(err)
	}
	return ctx.write(cmd.outputPath(".pdf"), pdf)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// prepare reads the document and parses the image flags
func (cmd *RenderCommand) prepare() (string, []latex.RenderOpt, error) {
	opts := make([]latex.RenderOpt, 0, len(cmd.Images))
	for _, image := range cmd.Images {
		name, url, ok := strings.Cut(image, "=")
		if !ok {
			return "", nil, fmt.Errorf("invalid image %q, expected filename=url", image)
		}
		opts = append(opts, latex.WithImage(strings.TrimSpace(name), strings.TrimSpace(url)))
	}

	// Read the document
	var r io.Reader = os.Stdin
	if cmd.Input != "-" {
		file, err := os.Open(cmd.Input)
		if err != nil {
			return "", nil, err
		}
		defer file.Close()
		r = file
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("reading %q: %w", cmd.Input, err)
	}

	return string(data), opts, nil
}

// outputPath returns the path to write to, or "-" for standard output.
// When ext is set and no output is given, the input path with that
// extension is used.
func (cmd *RenderCommand) outputPath(ext string) string {
	switch {
	case cmd.Output != "":
		return cmd.Output
	case ext == "" || cmd.Input == "-":
		return "-"
	default:
		return strings.TrimSuffix(cmd.Input, filepath.Ext(cmd.Input)) + ext
	}
}

func (g *Globals) write(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	g.log.Info().Str("path", path).Int("bytes", len(data)).Msg("written")
	return nil
}

// renderError logs compiler diagnostics before returning the error
func (g *Globals) renderError(err error) error {
	var e *latex.Error
	if !errors.As(err, &e) {
		return err
	}
	switch e.Err {
	case latex.ErrRender:
		for _, line := range e.DetailLines() {
			g.log.Error().Msg(line)
		}
	case latex.ErrAuthentication:
		g.log.Error().Int("status", e.StatusCode).Msg("check --api-key or LATEX_API_KEY")
	case latex.ErrConnection:
		g.log.Debug().AnErr("cause", e.Cause).Msg(e.Message)
	}
	return err
}
