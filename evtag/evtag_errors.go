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

package evtag

import (
	"fmt"
)

// Error is returned by every decoding failure in this package and in
// generated code. Errors with the same code match under [errors.Is], so
// callers can test against the exported sentinels:
//
//	if errors.Is(err, evtag.ErrDuplicateTag) { ... }
type Error struct {
	code    uint32
	message string
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

func (err *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.code == err.code
}

var (
	ErrTruncated      = &Error{code: 5000, message: "truncated record"}
	ErrMalformed      = &Error{code: 5001, message: "malformed varint"}
	ErrTagMismatch    = &Error{code: 5002, message: "unexpected tag"}
	ErrLengthMismatch = &Error{code: 5003, message: "unexpected payload length"}
	ErrUnknownTag     = &Error{code: 5004, message: "unknown tag"}
	ErrDuplicateTag   = &Error{code: 5005, message: "duplicate tag"}
	ErrIncomplete     = &Error{code: 5006, message: "required field is not set"}
	ErrUnsetField     = &Error{code: 5007, message: "field is not set"}
)

func errTruncated(what string, need, have int) error {
	return &Error{
		code:    5000,
		message: fmt.Sprintf("Truncated %s: need %d bytes, have %d", what, need, have),
	}
}

func errMalformed(what string, cause error) error {
	return &Error{
		code:    5001,
		message: fmt.Sprintf("Malformed %s: %v", what, cause),
	}
}

func errTagMismatch(want, got Tag) error {
	return &Error{
		code:    5002,
		message: fmt.Sprintf("Expected tag %d, got %d", want, got),
	}
}

func errLengthMismatch(tag Tag, want, got int) error {
	return &Error{
		code: 5003,
		message: fmt.Sprintf(
			"Record with tag %d has length %d, expected %d",
			tag, got, want,
		),
	}
}

// UnknownTagError reports a record whose tag is not declared by msg.
func UnknownTagError(msg string, tag Tag) error {
	return &Error{
		code:    5004,
		message: fmt.Sprintf("Unknown tag %d in message '%s'", tag, msg),
	}
}

// DuplicateTagError reports a second record for a field that is already set.
func DuplicateTagError(msg string, tag Tag) error {
	return &Error{
		code:    5005,
		message: fmt.Sprintf("Duplicate tag %d in message '%s'", tag, msg),
	}
}

// IncompleteError reports a required field that is unset, or a nested
// message that is itself incomplete.
func IncompleteError(msg, field string) error {
	return &Error{
		code:    5006,
		message: fmt.Sprintf("Required field '%s' of message '%s' is not set", field, msg),
	}
}

// UnsetFieldError is returned by getters of fields that are not set.
func UnsetFieldError(msg, field string) error {
	return &Error{
		code:    5007,
		message: fmt.Sprintf("Field '%s' of message '%s' is not set", field, msg),
	}
}
