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

// Package syntax parses .rpc schema files.
//
//	#include "extra.h"
//
//	message point {
//		int x = 0;
//		int y = 1;
//		optional string label = 2;
//	}
//
// Fields are registered on their message as soon as they are parsed, so the
// first invalid field in source order is the one reported.
package syntax

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"go.evrpc.dev/evrpc/schema"
)

var (
	messageNameRE = regexp.MustCompile(`^[a-z][a-z_0-9]*$`)
	fieldNameRE   = regexp.MustCompile(`^[a-z_][A-Za-z0-9_]*$`)
	includeRE     = regexp.MustCompile(`^#include ["<].*[>"]$`)
	conditionalRE = regexp.MustCompile(`^#(if( |def)|endif)`)
)

type ParseOption interface {
	apply(*ParseOptions)
}

type parseOption func(*ParseOptions)

func (f parseOption) apply(opts *ParseOptions) { f(opts) }

// WithSourceName sets the name recorded on the parsed [schema.File].
func WithSourceName(name string) ParseOption {
	return parseOption(func(opts *ParseOptions) {
		opts.sourceName = name
	})
}

// WithLogger receives a debug event for every message and field parsed.
func WithLogger(logger zerolog.Logger) ParseOption {
	return parseOption(func(opts *ParseOptions) {
		opts.logger = logger
	})
}

func Parse(src []byte, opts ...ParseOption) (*schema.File, error) {
	return NewParseOptions(opts...).Parse(src)
}

type ParseOptions struct {
	sourceName string
	logger     zerolog.Logger
}

func NewParseOptions(opts ...ParseOption) *ParseOptions {
	parseOptions := &ParseOptions{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt.apply(parseOptions)
	}
	return parseOptions
}

func (opts *ParseOptions) Parse(src []byte) (*schema.File, error) {
	ctx, err := newParseCtx(opts, src)
	if err != nil {
		return nil, err
	}
	return parseFile(ctx)
}

type parseCtx struct {
	src       []byte
	opts      *ParseOptions
	tokens    *Tokens
	haveToken bool
	token     Token
	err       error
	file      *schema.File
}

func newParseCtx(opts *ParseOptions, src []byte) (*parseCtx, error) {
	tokens, err := NewTokens(src)
	if err != nil {
		return nil, err
	}
	return &parseCtx{
		src:    src,
		opts:   opts,
		tokens: tokens,
		file:   schema.NewFile(opts.sourceName),
	}, nil
}

func (ctx *parseCtx) ensureToken() error {
	if ctx.err != nil {
		return ctx.err
	}
	if ctx.haveToken {
		return nil
	}
	if err := ctx.tokens.Next(&ctx.token); err != nil {
		ctx.err = err
		return ctx.err
	}
	ctx.haveToken = true
	return nil
}

func (ctx *parseCtx) readToken() string {
	return string(ctx.src[:ctx.token.Len])
}

func (ctx *parseCtx) consumeToken() {
	ctx.src = ctx.src[ctx.token.Len:]
	ctx.haveToken = false
}

// trivia skips spaces, newlines, and comments.
func (ctx *parseCtx) trivia() {
	for {
		if err := ctx.ensureToken(); err != nil {
			return
		}
		switch ctx.token.Kind {
		case T_SPACE, T_NEWLINE, T_COMMENT:
			ctx.consumeToken()
		default:
			return
		}
	}
}

// sameLineTrivia skips spaces and comments but stops at a newline.
func (ctx *parseCtx) sameLineTrivia() {
	for {
		if err := ctx.ensureToken(); err != nil {
			return
		}
		switch ctx.token.Kind {
		case T_SPACE, T_COMMENT:
			ctx.consumeToken()
		default:
			return
		}
	}
}

func (ctx *parseCtx) trySigil(kind TokenKind) bool {
	ctx.trivia()
	if ctx.err != nil || ctx.token.Kind != kind {
		return false
	}
	ctx.consumeToken()
	return true
}

// declText renders the field declaration starting at the current token,
// up to the next ';' or '}', with comments removed and whitespace collapsed.
// It is used only to build error messages.
func (ctx *parseCtx) declText() string {
	src := ctx.src
	if !ctx.haveToken {
		return ""
	}
	tokens := &Tokens{src: src, line: ctx.token.Line}
	var out strings.Builder
	space := false
	for {
		var token Token
		if err := tokens.Next(&token); err != nil {
			break
		}
		switch token.Kind {
		case T_EOF, T_SEMICOLON, T_CLOSE_CURL:
			return out.String()
		case T_SPACE, T_NEWLINE, T_COMMENT:
			space = out.Len() > 0
		default:
			if space {
				out.WriteByte(' ')
				space = false
			}
			out.Write(src[:token.Len])
		}
		src = src[token.Len:]
	}
	return out.String()
}

func parseFile(ctx *parseCtx) (*schema.File, error) {
	for {
		ctx.trivia()
		if ctx.err != nil {
			return nil, ctx.err
		}
		switch ctx.token.Kind {
		case T_EOF:
			if err := ctx.file.Resolve(); err != nil {
				return nil, err
			}
			return ctx.file, nil
		case T_DIRECTIVE:
			parseDirective(ctx)
		case T_IDENT:
			keyword := ctx.readToken()
			if !isMessageKeyword(keyword) {
				return nil, errExpectedMessage(ctx.token.Kind, keyword, ctx.token.Line)
			}
			parseMessage(ctx)
		default:
			return nil, errExpectedMessage(ctx.token.Kind, ctx.readToken(), ctx.token.Line)
		}
		if ctx.err != nil {
			return nil, ctx.err
		}
	}
}

// "struct" is the keyword used by older schema files.
func isMessageKeyword(token string) bool {
	return strings.EqualFold(token, "message") || strings.EqualFold(token, "struct")
}

func parseDirective(ctx *parseCtx) {
	text := strings.TrimRight(ctx.readToken(), " \t")
	if !includeRE.MatchString(text) && !conditionalRE.MatchString(text) {
		ctx.err = errUnknownDirective(text, ctx.token.Line)
		return
	}
	ctx.file.AddDirective(text, ctx.token.Line)
	ctx.consumeToken()

	ctx.sameLineTrivia()
	if ctx.err != nil {
		return
	}
	switch ctx.token.Kind {
	case T_NEWLINE, T_EOF:
	default:
		ctx.err = errDirectiveTrailing(text, ctx.token.Kind, ctx.readToken(), ctx.token.Line)
	}
}

func parseMessage(ctx *parseCtx) {
	line := ctx.token.Line
	ctx.consumeToken()

	ctx.trivia()
	if ctx.err != nil {
		return
	}
	name := ctx.readToken()
	if ctx.token.Kind != T_IDENT {
		ctx.err = errExpectedIdent(ctx.token.Kind, name, "", ctx.token.Line)
		return
	}
	if !messageNameRE.MatchString(name) {
		ctx.err = errMessageNameInvalid(name, ctx.token.Line)
		return
	}
	ctx.consumeToken()

	if !ctx.trySigil(T_OPEN_CURL) {
		if ctx.err == nil {
			ctx.err = errExpectedSigil(
				T_OPEN_CURL, ctx.token.Kind, ctx.readToken(), "", ctx.token.Line,
			)
		}
		return
	}

	msg := schema.NewMessage(name, line)
	if err := ctx.file.AddMessage(msg); err != nil {
		ctx.err = err
		return
	}
	ctx.opts.logger.Debug().
		Str("msg", name).
		Int("line", line).
		Msg("created message")

	for {
		ctx.trivia()
		if ctx.err != nil {
			return
		}
		switch ctx.token.Kind {
		case T_CLOSE_CURL:
			ctx.consumeToken()
			parseMessageEnd(ctx)
			return
		case T_SEMICOLON:
			ctx.consumeToken()
		case T_EOF:
			ctx.err = errMessageUnterminated(name, ctx.token.Line)
			return
		case T_DIRECTIVE:
			ctx.err = errDirectiveInMessage(ctx.readToken(), ctx.token.Line)
			return
		default:
			parseField(ctx, msg)
			if ctx.err != nil {
				return
			}
		}
	}
}

// parseMessageEnd rejects anything but comments after the closing brace on
// the same line.
func parseMessageEnd(ctx *parseCtx) {
	ctx.sameLineTrivia()
	if ctx.err != nil {
		return
	}
	switch ctx.token.Kind {
	case T_NEWLINE, T_EOF:
		return
	}
	ctx.err = errTrailingGarbage(ctx.token.Kind, ctx.readToken(), ctx.token.Line)
}

type fieldDecl struct {
	mods     schema.Modifiers
	typeName string
	ref      string
	name     string
	fixedLen string
	hasLen   bool
	tag      uint32
}

func parseField(ctx *parseCtx, msg *schema.Message) {
	decl := ctx.declText()
	line := ctx.token.Line
	var field fieldDecl

	// Modifiers come first, in any order.
	for {
		ctx.trivia()
		if ctx.err != nil {
			return
		}
		if ctx.token.Kind != T_IDENT {
			ctx.err = errExpectedIdent(ctx.token.Kind, ctx.readToken(), decl, ctx.token.Line)
			return
		}
		var mod schema.Modifiers
		switch token := ctx.readToken(); token {
		case "optional":
			mod = schema.Optional
		case "array":
			mod = schema.Array
		default:
			field.typeName = token
		}
		if mod == 0 {
			ctx.consumeToken()
			break
		}
		if field.mods&mod != 0 {
			ctx.err = errDuplicateModifier(mod.String(), decl, ctx.token.Line)
			return
		}
		field.mods |= mod
		ctx.consumeToken()
	}

	if strings.EqualFold(field.typeName, "struct") {
		if !ctx.trySigil(T_OPEN_SQUARE) {
			if ctx.err == nil {
				ctx.err = errUnknownType(field.typeName, decl, line)
			}
			return
		}
		ctx.trivia()
		if ctx.err != nil {
			return
		}
		field.ref = ctx.readToken()
		if ctx.token.Kind != T_IDENT || !messageNameRE.MatchString(field.ref) {
			ctx.err = errUnknownType(field.typeName+"["+field.ref, decl, line)
			return
		}
		ctx.consumeToken()
		if !ctx.trySigil(T_CLOSE_SQUARE) {
			if ctx.err == nil {
				ctx.err = errExpectedSigil(
					T_CLOSE_SQUARE, ctx.token.Kind, ctx.readToken(), decl, ctx.token.Line,
				)
			}
			return
		}
	}

	ctx.trivia()
	if ctx.err != nil {
		return
	}
	field.name = ctx.readToken()
	if ctx.token.Kind != T_IDENT {
		ctx.err = errExpectedIdent(ctx.token.Kind, field.name, decl, ctx.token.Line)
		return
	}
	if !fieldNameRE.MatchString(field.name) {
		ctx.err = errFieldNameInvalid(field.name, decl, ctx.token.Line)
		return
	}
	ctx.consumeToken()

	// The fixed-length suffix must follow the name directly.
	if err := ctx.ensureToken(); err != nil {
		return
	}
	if ctx.token.Kind == T_OPEN_SQUARE {
		ctx.consumeToken()
		field.hasLen = true
		if ctx.trySigil(T_CLOSE_SQUARE) {
			// "bytes name[]" has no length.
		} else if ctx.err == nil {
			field.fixedLen = ctx.readToken()
			if ctx.token.Kind != T_INT_LIT {
				ctx.err = errFixedLenInvalid(field.fixedLen, decl, ctx.token.Line)
				return
			}
			ctx.consumeToken()
			if !ctx.trySigil(T_CLOSE_SQUARE) {
				if ctx.err == nil {
					ctx.err = errExpectedSigil(
						T_CLOSE_SQUARE, ctx.token.Kind, ctx.readToken(), decl, ctx.token.Line,
					)
				}
				return
			}
		}
	}
	if ctx.err != nil {
		return
	}

	if !ctx.trySigil(T_EQ) {
		if ctx.err == nil {
			ctx.err = errExpectedSigil(T_EQ, ctx.token.Kind, ctx.readToken(), decl, ctx.token.Line)
		}
		return
	}

	ctx.trivia()
	if ctx.err != nil {
		return
	}
	tagToken := ctx.readToken()
	if ctx.token.Kind != T_INT_LIT {
		ctx.err = errExpectedTag(ctx.token.Kind, tagToken, decl, ctx.token.Line)
		return
	}
	tag, err := strconv.ParseUint(tagToken, 10, 32)
	if err != nil {
		ctx.err = errTagOutOfRange(tagToken, decl, ctx.token.Line)
		return
	}
	field.tag = uint32(tag)
	ctx.consumeToken()

	ctx.trivia()
	if ctx.err != nil {
		return
	}
	switch ctx.token.Kind {
	case T_SEMICOLON, T_CLOSE_CURL:
	case T_EOF:
		ctx.err = errMessageUnterminated(msg.Name(), ctx.token.Line)
		return
	default:
		ctx.err = errUnexpectedToken(ctx.token.Kind, ctx.readToken(), decl, ctx.token.Line)
		return
	}

	kind, err := field.kind(decl, line)
	if err != nil {
		ctx.err = err
		return
	}
	if err := msg.AddField(schema.NewField(field.name, kind, field.tag, field.mods, line)); err != nil {
		ctx.err = err
		return
	}
	ctx.opts.logger.Debug().
		Str("msg", msg.Name()).
		Str("field", field.name).
		Str("type", kind.TypeName()).
		Uint32("tag", field.tag).
		Int("line", line).
		Msg("added field")
}

func (field *fieldDecl) kind(decl string, line int) (schema.Kind, error) {
	if field.ref != "" {
		if field.hasLen {
			return nil, errUnknownType(field.typeName+"["+field.ref+"]", decl, line)
		}
		return schema.NestedMessage{Ref: field.ref}, nil
	}
	switch field.typeName {
	case "bytes":
		if !field.hasLen {
			return schema.VariableBytes{}, nil
		}
		if field.fixedLen == "" {
			return schema.FixedBytes{}, nil
		}
		n, err := strconv.ParseUint(field.fixedLen, 10, 32)
		if err != nil {
			return nil, errFixedLenInvalid(field.fixedLen, decl, line)
		}
		return schema.FixedBytes{Len: uint32(n)}, nil
	case "int":
		if !field.hasLen {
			return schema.Integer{}, nil
		}
	case "string":
		if !field.hasLen {
			return schema.String{}, nil
		}
	}
	return nil, errUnknownType(field.typeName, decl, line)
}
