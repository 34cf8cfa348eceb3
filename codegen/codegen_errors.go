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

package codegen

import (
	"fmt"

	"go.evrpc.dev/evrpc/schema"
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

func (err *Error) Line() int {
	return err.line
}

// ErrCollision reports two schema names that map to the same generated
// identifier.
func ErrCollision(ident, owner, prev string, line int) error {
	return &Error{
		code: 6000,
		message: fmt.Sprintf(
			"Generated identifier '%s' for %s collides with %s",
			ident, owner, prev,
		),
		line: line,
	}
}

func ErrPackageName(name string) error {
	return &Error{
		code:    6001,
		message: fmt.Sprintf("Invalid Go package name %q (set one explicitly)", name),
	}
}

// ErrFormat wraps a failure to format generated source. It indicates a
// backend bug rather than a schema problem.
func ErrFormat(artifact string, cause error) error {
	return &Error{
		code:    6002,
		message: fmt.Sprintf("Failed to format %s: %v", artifact, cause),
	}
}

type Warning struct {
	code    uint32
	message string
	line    int
}

func (w *Warning) String() string {
	return fmt.Sprintf("W%d: %s", w.code, w.message)
}

func (w *Warning) Code() uint32 {
	return w.code
}

func (w *Warning) Message() string {
	return w.message
}

func (w *Warning) Line() int {
	return w.line
}

func warnArrayUnsupported(field *schema.Field) *Warning {
	return &Warning{
		code: 4000,
		message: fmt.Sprintf(
			"Field '%s' of message '%s' is declared as an array; it is generated as a single value",
			field.Name(), field.Message().Name(),
		),
		line: field.Line(),
	}
}
