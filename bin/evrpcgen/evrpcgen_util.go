// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"go.evrpc.dev/evrpc/codegen"
	"go.evrpc.dev/evrpc/schema"
	"go.evrpc.dev/evrpc/syntax"
)

type globalFlags struct {
	verbose bool
	color   string
}

func (g *globalFlags) flags(flags *pflag.FlagSet) {
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "Log progress to stderr")
	flags.StringVar(&g.color, "color", "auto", "Color diagnostics: auto, always, or never")
}

// cmdEnv is the per-invocation state shared by all commands.
type cmdEnv struct {
	stdout io.Writer
	log    zerolog.Logger
	diag   *diagnostics
}

func (g *globalFlags) env(stdout, stderr io.Writer) (*cmdEnv, error) {
	colored, err := useColor(g.color, stderr)
	if err != nil {
		return nil, err
	}
	level := zerolog.WarnLevel
	if g.verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:          stderr,
		NoColor:      !colored,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}).Level(level)
	return &cmdEnv{
		stdout: stdout,
		log:    log,
		diag:   newDiagnostics(stderr, colored),
	}, nil
}

func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return false, fmt.Errorf("Invalid --color=%q (expected auto, always, or never)", mode)
}

// diagnostics prints errors and warnings in "<file>:<line>: " form.
type diagnostics struct {
	out       io.Writer
	errColor  *color.Color
	warnColor *color.Color
}

func newDiagnostics(out io.Writer, colored bool) *diagnostics {
	d := &diagnostics{
		out:       out,
		errColor:  color.New(color.FgRed, color.Bold),
		warnColor: color.New(color.FgYellow),
	}
	if colored {
		d.errColor.EnableColor()
		d.warnColor.EnableColor()
	} else {
		d.errColor.DisableColor()
		d.warnColor.DisableColor()
	}
	return d
}

type hasLine interface {
	Line() int
}

func (d *diagnostics) Error(path string, err error) {
	var lined hasLine
	line := 0
	if errors.As(err, &lined) {
		line = lined.Line()
	}
	fmt.Fprintln(d.out, d.errColor.Sprint(location(path, line)+err.Error()))
}

func (d *diagnostics) Warning(path string, warning *codegen.Warning) {
	fmt.Fprintln(d.out, d.warnColor.Sprint(location(path, warning.Line())+warning.String()))
}

func location(path string, line int) string {
	if path == "" {
		return ""
	}
	if line > 0 {
		return fmt.Sprintf("%s:%d: ", path, line)
	}
	return path + ": "
}

func usageError(env *cmdEnv, help *commandHelp) int {
	fmt.Fprintf(env.diag.out, "usage: evrpcgen %s\n", help.usage)
	return 1
}

// loadSchema reads and parses one schema, printing any failure.
func loadSchema(env *cmdEnv, schemaPath string) (*schema.File, bool) {
	if ext := filepath.Ext(schemaPath); ext != ".rpc" {
		env.diag.Error("", fmt.Errorf("Unrecognized file extension %q (expected .rpc): %s", ext, schemaPath))
		return nil, false
	}
	src, err := os.ReadFile(schemaPath)
	if err != nil {
		env.diag.Error("", err)
		return nil, false
	}
	env.log.Debug().Str("path", schemaPath).Int("bytes", len(src)).Msg("reading schema")
	file, err := syntax.Parse(src,
		syntax.WithSourceName(schemaPath),
		syntax.WithLogger(env.log),
	)
	if err != nil {
		env.diag.Error(schemaPath, err)
		return nil, false
	}
	return file, true
}
