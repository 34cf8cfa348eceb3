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
	"fmt"
	"unicode/utf8"
)

type Error struct {
	code    uint32
	message string
	line    int
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

// Line is the 1-based line of the offending input.
func (err *Error) Line() int {
	return err.line
}

func errSourceTooLong(srcLen int) error {
	return &Error{
		code: 1000,
		message: fmt.Sprintf(
			"Source file size (%d bytes) exceeds maximum (%d bytes)",
			srcLen, maxSrcLen,
		),
		line: 1,
	}
}

func errInvalidUtf8(src []byte) error {
	line := 1
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if r == utf8.RuneError {
			break
		}
		if r == '\n' {
			line += 1
		}
		src = src[size:]
	}
	return &Error{
		code:    1001,
		message: "Source file contains invalid UTF-8",
		line:    line,
	}
}

func errUnexpectedCharacter(line int, r rune) error {
	return &Error{
		code:    1002,
		message: fmt.Sprintf("Unexpected character '%s' (U+%04X)", string(r), r),
		line:    line,
	}
}

func errForbiddenControlCharacter(line int, c byte) error {
	return &Error{
		code:    1003,
		message: fmt.Sprintf("Forbidden control character U+%04X", c),
		line:    line,
	}
}

func errTokenTooLong(line int, tokenLen int) error {
	return &Error{
		code: 1004,
		message: fmt.Sprintf(
			"Token size (%d bytes) exceeds maximum (%d bytes)",
			tokenLen, maxTokenLen,
		),
		line: line,
	}
}

func errIntLitInvalid(line int, token []byte) error {
	return &Error{
		code:    1005,
		message: fmt.Sprintf("Invalid integer literal %q", token),
		line:    line,
	}
}

func errCommentUnterminated(line int) error {
	return &Error{
		code:    1006,
		message: "Unterminated block comment",
		line:    line,
	}
}

func errExpectedSigil(
	wantKind TokenKind,
	gotKind TokenKind,
	gotToken string,
	decl string,
	line int,
) error {
	var code uint32
	var want string
	switch wantKind {
	case T_EQ:
		code = 2000
		want = "="
	case T_SEMICOLON:
		code = 2001
		want = ";"
	case T_OPEN_CURL:
		code = 2002
		want = "{"
	case T_CLOSE_CURL:
		code = 2003
		want = "}"
	case T_OPEN_SQUARE:
		code = 2004
		want = "["
	case T_CLOSE_SQUARE:
		code = 2005
		want = "]"
	default:
		panic("unreachable")
	}
	return &Error{
		code: code,
		message: fmt.Sprintf(
			"Expected '%s', got (%s %q)%s",
			want, gotKind, gotToken, inDecl(decl),
		),
		line: line,
	}
}

func errExpectedIdent(gotKind TokenKind, gotToken string, decl string, line int) error {
	return &Error{
		code:    2010,
		message: fmt.Sprintf("Expected identifier, got (%s %q)%s", gotKind, gotToken, inDecl(decl)),
		line:    line,
	}
}

func errExpectedTag(gotKind TokenKind, gotToken string, decl string, line int) error {
	return &Error{
		code:    2011,
		message: fmt.Sprintf("Expected tag number, got (%s %q)%s", gotKind, gotToken, inDecl(decl)),
		line:    line,
	}
}

func errDuplicateModifier(modifier string, decl string, line int) error {
	return &Error{
		code:    2012,
		message: fmt.Sprintf("Modifier '%s' given more than once%s", modifier, inDecl(decl)),
		line:    line,
	}
}

func errExpectedMessage(gotKind TokenKind, gotToken string, line int) error {
	return &Error{
		code:    2013,
		message: fmt.Sprintf("Expected message declaration, got (%s %q)", gotKind, gotToken),
		line:    line,
	}
}

func errMessageNameInvalid(name string, line int) error {
	return &Error{
		code: 2014,
		message: fmt.Sprintf(
			"Invalid message name %q (must match [a-z][a-z_0-9]*)",
			name,
		),
		line: line,
	}
}

func errFieldNameInvalid(name string, decl string, line int) error {
	return &Error{
		code: 2015,
		message: fmt.Sprintf(
			"Invalid field name %q (must match [a-z_][A-Za-z0-9_]*)%s",
			name, inDecl(decl),
		),
		line: line,
	}
}

func errUnknownType(typeName string, decl string, line int) error {
	return &Error{
		code:    2016,
		message: fmt.Sprintf("Unknown type %q%s", typeName, inDecl(decl)),
		line:    line,
	}
}

func errTrailingGarbage(gotKind TokenKind, gotToken string, line int) error {
	return &Error{
		code:    2017,
		message: fmt.Sprintf("Trailing garbage after message, got (%s %q)", gotKind, gotToken),
		line:    line,
	}
}

func errTagOutOfRange(token string, decl string, line int) error {
	return &Error{
		code:    2018,
		message: fmt.Sprintf("Tag number %s out of range%s", token, inDecl(decl)),
		line:    line,
	}
}

func errUnknownDirective(directive string, line int) error {
	return &Error{
		code:    2019,
		message: fmt.Sprintf("Unsupported preprocessor line %q", directive),
		line:    line,
	}
}

func errDirectiveTrailing(directive string, gotKind TokenKind, gotToken string, line int) error {
	return &Error{
		code: 2024,
		message: fmt.Sprintf(
			"Unexpected (%s %q) after preprocessor line %q",
			gotKind, gotToken, directive,
		),
		line: line,
	}
}

func errDirectiveInMessage(directive string, line int) error {
	return &Error{
		code:    2020,
		message: fmt.Sprintf("Preprocessor line %q inside message", directive),
		line:    line,
	}
}

func errUnexpectedToken(gotKind TokenKind, gotToken string, decl string, line int) error {
	return &Error{
		code:    2021,
		message: fmt.Sprintf("Unexpected (%s %q) after tag number%s", gotKind, gotToken, inDecl(decl)),
		line:    line,
	}
}

func errFixedLenInvalid(token string, decl string, line int) error {
	return &Error{
		code:    2022,
		message: fmt.Sprintf("Invalid fixed length %q%s", token, inDecl(decl)),
		line:    line,
	}
}

func errMessageUnterminated(name string, line int) error {
	return &Error{
		code:    2023,
		message: fmt.Sprintf("Unexpected end of file in message '%s'", name),
		line:    line,
	}
}

func inDecl(decl string) string {
	if decl == "" {
		return ""
	}
	return fmt.Sprintf(" in %q", decl)
}
