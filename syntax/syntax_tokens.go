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

package syntax

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	maxSrcLen   = 0x7FFFFFFF // (2**31)-1
	maxTokenLen = int(math.MaxUint16)
)

type Token struct {
	Len  uint16
	Kind TokenKind

	// Line is the 1-based line on which the token starts.
	Line int
}

type TokenKind uint8

const (
	T_EOF TokenKind = iota

	T_SPACE
	T_NEWLINE
	T_COMMENT
	T_DIRECTIVE

	T_EQ
	T_SEMICOLON

	T_OPEN_CURL
	T_CLOSE_CURL
	T_OPEN_SQUARE
	T_CLOSE_SQUARE

	T_INT_LIT
	T_IDENT
)

func (k TokenKind) String() string {
	switch k {
	case T_EOF:
		return "EOF"
	case T_SPACE:
		return "SPACE"
	case T_NEWLINE:
		return "NEWLINE"
	case T_COMMENT:
		return "COMMENT"
	case T_DIRECTIVE:
		return "DIRECTIVE"
	case T_EQ:
		return "EQ"
	case T_SEMICOLON:
		return "SEMICOLON"
	case T_OPEN_CURL:
		return "OPEN_CURL"
	case T_CLOSE_CURL:
		return "CLOSE_CURL"
	case T_OPEN_SQUARE:
		return "OPEN_SQUARE"
	case T_CLOSE_SQUARE:
		return "CLOSE_SQUARE"
	case T_INT_LIT:
		return "INT_LIT"
	case T_IDENT:
		return "IDENT"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

type Tokens struct {
	src  []byte
	line int
}

func NewTokens(src []byte) (*Tokens, error) {
	if len(src) > maxSrcLen {
		return nil, errSourceTooLong(len(src))
	}
	if !utf8.Valid(src) {
		return nil, errInvalidUtf8(src)
	}
	return &Tokens{
		src:  src,
		line: 1,
	}, nil
}

func (t *Tokens) Next(token *Token) error {
	if len(t.src) == 0 {
		*token = Token{
			Kind: T_EOF,
			Line: t.line,
		}
		return nil
	}

	c := t.src[0]
	var kind TokenKind
	switch c {
	case '\t', ' ':
		return t.nextSpace(token)
	case '\n':
		*token = Token{
			Kind: T_NEWLINE,
			Len:  1,
			Line: t.line,
		}
		t.line += 1
		t.src = t.src[1:]
		return nil
	case '=':
		kind = T_EQ
		goto len1
	case ';':
		kind = T_SEMICOLON
		goto len1
	case '{':
		kind = T_OPEN_CURL
		goto len1
	case '}':
		kind = T_CLOSE_CURL
		goto len1
	case '[':
		kind = T_OPEN_SQUARE
		goto len1
	case ']':
		kind = T_CLOSE_SQUARE
		goto len1
	case '#':
		return t.nextDirective(token)
	case '/':
		return t.nextComment(token)
	case '\r':
		if len(t.src) < 2 || t.src[1] != '\n' {
			return errForbiddenControlCharacter(t.line, c)
		}
		*token = Token{
			Kind: T_NEWLINE,
			Len:  2,
			Line: t.line,
		}
		t.line += 1
		t.src = t.src[2:]
		return nil
	default:
		goto big
	}

len1:
	*token = Token{
		Kind: kind,
		Len:  1,
		Line: t.line,
	}
	t.src = t.src[1:]
	return nil

big:
	if c >= '0' && c <= '9' {
		return t.nextIntLit(token)
	}

	if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_' {
		return t.nextIdent(token)
	}

	r, _ := utf8.DecodeRune(t.src)
	if r < 0x20 || r == 0x7F {
		return errForbiddenControlCharacter(t.line, c)
	}
	return errUnexpectedCharacter(t.line, r)
}

func (t *Tokens) nextSpace(token *Token) error {
	src := t.src
	for len(src) > 0 && (src[0] == ' ' || src[0] == '\t') {
		src = src[1:]
	}
	tokenLen, err := t.checkTokenLen(len(t.src) - len(src))
	if err != nil {
		return err
	}
	*token = Token{
		Kind: T_SPACE,
		Len:  tokenLen,
		Line: t.line,
	}
	t.src = src
	return nil
}

// nextDirective reads a preprocessor line up to (not including) the newline
// or the first comment, which is left for the next token.
func (t *Tokens) nextDirective(token *Token) error {
	tokenLen := len(t.src)
	if idx := bytes.IndexAny(t.src, "\r\n"); idx >= 0 {
		tokenLen = idx
	}
	for _, opener := range []string{"//", "/*"} {
		if idx := bytes.Index(t.src[:tokenLen], []byte(opener)); idx >= 0 {
			tokenLen = idx
		}
	}
	checkedLen, err := t.checkTokenLen(tokenLen)
	if err != nil {
		return err
	}
	*token = Token{
		Kind: T_DIRECTIVE,
		Len:  checkedLen,
		Line: t.line,
	}
	t.src = t.src[tokenLen:]
	return nil
}

// nextComment reads a "//" line comment or a "/* */" block comment. Block
// comments may span lines; the line counter advances past them.
func (t *Tokens) nextComment(token *Token) error {
	if len(t.src) < 2 {
		return errUnexpectedCharacter(t.line, '/')
	}
	var tokenLen int
	switch t.src[1] {
	case '/':
		tokenLen = len(t.src)
		if idx := bytes.IndexAny(t.src, "\r\n"); idx >= 0 {
			tokenLen = idx
		}
	case '*':
		end := bytes.Index(t.src[2:], []byte("*/"))
		if end < 0 {
			return errCommentUnterminated(t.line)
		}
		tokenLen = end + 4
	default:
		return errUnexpectedCharacter(t.line, '/')
	}

	checkedLen, err := t.checkTokenLen(tokenLen)
	if err != nil {
		return err
	}
	*token = Token{
		Kind: T_COMMENT,
		Len:  checkedLen,
		Line: t.line,
	}
	t.line += bytes.Count(t.src[:tokenLen], []byte{'\n'})
	t.src = t.src[tokenLen:]
	return nil
}

func (t *Tokens) nextIntLit(token *Token) error {
	src := t.src
	invalid := false
	for ii, c := range src {
		if c >= '0' && c <= '9' {
			continue
		}
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_' {
			invalid = true
			continue
		}
		src = src[:ii]
		break
	}
	if invalid {
		return errIntLitInvalid(t.line, src)
	}

	tokenLen, err := t.checkTokenLen(len(src))
	if err != nil {
		return err
	}
	*token = Token{
		Kind: T_INT_LIT,
		Len:  tokenLen,
		Line: t.line,
	}
	t.src = t.src[tokenLen:]
	return nil
}

func (t *Tokens) nextIdent(token *Token) error {
	src := t.src
	for ii, c := range src {
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		src = src[:ii]
		break
	}

	tokenLen, err := t.checkTokenLen(len(src))
	if err != nil {
		return err
	}
	*token = Token{
		Kind: T_IDENT,
		Len:  tokenLen,
		Line: t.line,
	}
	t.src = t.src[tokenLen:]
	return nil
}

func (t *Tokens) checkTokenLen(len int) (uint16, error) {
	if len > maxTokenLen {
		return 0, errTokenTooLong(t.line, len)
	}
	return uint16(len), nil
}
