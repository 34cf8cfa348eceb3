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

package schema

import (
	"fmt"
	"math"
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

// Line is the 1-based source line of the offending declaration, or 0 if the
// declaration was not parsed from a file.
func (err *Error) Line() int {
	return err.line
}

func errDuplicateTag(msg *Message, field *Field, prev string) error {
	return &Error{
		code: 3000,
		message: fmt.Sprintf(
			"Duplicate tag %d in message '%s': fields '%s' and '%s'",
			field.tag, msg.name, prev, field.name,
		),
		line: field.line,
	}
}

func errOptionalArray(field *Field) error {
	return &Error{
		code: 3001,
		message: fmt.Sprintf(
			"Field '%s' cannot be both optional and array",
			field.name,
		),
		line: field.line,
	}
}

func errFixedBytesLen(field *Field) error {
	return &Error{
		code: 3002,
		message: fmt.Sprintf(
			"Fixed-length bytes field '%s' requires a positive length",
			field.name,
		),
		line: field.line,
	}
}

func errDuplicateField(msg *Message, field *Field) error {
	return &Error{
		code: 3003,
		message: fmt.Sprintf(
			"Duplicate field name '%s' in message '%s'",
			field.name, msg.name,
		),
		line: field.line,
	}
}

func errDuplicateMessage(msg, prev *Message) error {
	return &Error{
		code: 3004,
		message: fmt.Sprintf(
			"Duplicate message '%s' (first declared on line %d)",
			msg.name, prev.line,
		),
		line: msg.line,
	}
}

func errUnknownMessage(field *Field, ref string) error {
	return &Error{
		code: 3005,
		message: fmt.Sprintf(
			"Field '%s' of message '%s' references unknown message '%s'",
			field.name, field.message.name, ref,
		),
		line: field.line,
	}
}

func errTagTooLarge(field *Field) error {
	return &Error{
		code: 3006,
		message: fmt.Sprintf(
			"Tag of field '%s' must be less than %d",
			field.name, uint32(math.MaxUint32),
		),
		line: field.line,
	}
}
