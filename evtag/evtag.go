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

// Package evtag implements the tag-length-value records used by code that
// evrpcgen generates.
//
// A record is an unsigned varint tag, an unsigned varint payload length, and
// the payload. Varints must be minimally encoded. Integer payloads are
// exactly four bytes, big-endian.
package evtag

// Tag identifies a field's record within one message.
type Tag uint32

// Message is implemented by every generated message type.
//
// Generated messages are not safe for concurrent use. Callers that share an
// instance between goroutines must synchronize access themselves.
type Message interface {
	// MarshalTo appends one record per present field, in declaration order.
	MarshalTo(b *Buffer)

	// UnmarshalFrom consumes every remaining record in b. It fails on an
	// unknown tag, a repeated tag, a malformed record, or a missing required
	// field.
	UnmarshalFrom(b *Buffer) error

	// Complete reports whether every required field is set, recursively.
	Complete() error

	// Clear unsets every field and releases owned storage.
	Clear()
}
