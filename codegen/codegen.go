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

// Package codegen defines the contract shared by evrpcgen's output backends.
//
// Every backend turns one validated [schema.File] into exactly two artifacts:
// declarations (types, tag constants, signatures) and an implementation.
// Backends never write files; that is left to the caller, so a failed
// generation leaves nothing behind.
package codegen

import (
	"context"
	"path"
	"strings"

	"go.evrpc.dev/evrpc/schema"
)

// DefaultRuntimeImport is the import path of the TLV runtime that generated Go
// code depends on.
const DefaultRuntimeImport = "go.evrpc.dev/evrpc/evtag"

type Generator interface {
	// Language names the backend, for example "go" or "c".
	Language() string

	Generate(ctx context.Context, file *schema.File, opts ...Option) (*Output, error)
}

type Artifact struct {
	// Name is a file name relative to the output directory.
	Name    string
	Content []byte
}

type Output struct {
	Declarations   Artifact
	Implementation Artifact
	Warnings       []*Warning
}

type Option interface {
	apply(*Options)
}

type option func(*Options)

func (f option) apply(opts *Options) { f(opts) }

// WithPackageName sets the package clause of generated Go code.
func WithPackageName(name string) Option {
	return option(func(opts *Options) {
		opts.packageName = name
	})
}

// WithRuntimeImport overrides [DefaultRuntimeImport].
func WithRuntimeImport(importPath string) Option {
	return option(func(opts *Options) {
		opts.runtimeImport = importPath
	})
}

// WithBaseName sets the stem of the artifact names. By default it is the
// schema file name without directory or extension.
func WithBaseName(base string) Option {
	return option(func(opts *Options) {
		opts.baseName = base
	})
}

type Options struct {
	packageName   string
	runtimeImport string
	baseName      string
}

func NewOptions(file *schema.File, opts ...Option) *Options {
	options := &Options{
		runtimeImport: DefaultRuntimeImport,
		baseName:      BaseName(file.Name()),
	}
	for _, opt := range opts {
		opt.apply(options)
	}
	if options.packageName == "" {
		options.packageName = defaultPackageName(options.baseName)
	}
	return options
}

func (opts *Options) PackageName() string {
	return opts.packageName
}

func (opts *Options) RuntimeImport() string {
	return opts.runtimeImport
}

func (opts *Options) BaseName() string {
	return opts.baseName
}

// BaseName strips the directory and the final extension from a schema path:
// "proto/regress.rpc" becomes "regress".
func BaseName(sourceName string) string {
	base := path.Base(strings.ReplaceAll(sourceName, "\\", "/"))
	if ext := path.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "." || base == "/" || base == "" {
		return "schema"
	}
	return base
}

func defaultPackageName(base string) string {
	var buf strings.Builder
	for _, c := range strings.ToLower(base) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			buf.WriteRune(c)
		}
	}
	return buf.String()
}

// ArrayWarnings reports every field declared with the array modifier. The
// modifier is accepted by the parser, but backends generate such fields as
// single values.
func ArrayWarnings(file *schema.File) []*Warning {
	var warnings []*Warning
	for msg := range file.Messages() {
		for field := range msg.Fields() {
			if field.Array() {
				warnings = append(warnings, warnArrayUnsupported(field))
			}
		}
	}
	return warnings
}
