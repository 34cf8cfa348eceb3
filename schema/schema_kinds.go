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
)

// Kind is the closed set of field kinds. Backends dispatch on the concrete
// type with a type switch.
type Kind interface {
	TypeName() string
	isKind()
}

// Integer is an unsigned 32-bit scalar.
type Integer struct{}

// String is owned, dynamically sized text.
type String struct{}

// FixedBytes is an inline byte array of exactly Len bytes.
type FixedBytes struct {
	Len uint32
}

// VariableBytes is an owned byte buffer with an explicit length.
type VariableBytes struct{}

// NestedMessage is an owning reference to another message of the same file.
type NestedMessage struct {
	Ref string
}

func (Integer) TypeName() string       { return "int" }
func (String) TypeName() string        { return "string" }
func (FixedBytes) TypeName() string    { return "bytes" }
func (VariableBytes) TypeName() string { return "bytes" }

func (k NestedMessage) TypeName() string {
	return fmt.Sprintf("struct[%s]", k.Ref)
}

func (Integer) isKind()       {}
func (String) isKind()        {}
func (FixedBytes) isKind()    {}
func (VariableBytes) isKind() {}
func (NestedMessage) isKind() {}

// Owning reports whether values of kind k hold storage that must be released
// by clear and free.
func Owning(k Kind) bool {
	switch k.(type) {
	case String, VariableBytes, NestedMessage:
		return true
	}
	return false
}
