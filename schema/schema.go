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

// Package schema is the in-memory model of an evrpc schema file.
//
// A [File] holds messages in declaration order. Messages are populated one
// field at a time with [Message.AddField], which validates each field as it
// is registered; the first invalid field stops the build.
package schema

import (
	"iter"
	"math"
	"slices"
)

// A Directive is a preprocessor line (#include, #if, #ifdef, #endif) that is
// carried through to generated output unchanged.
type Directive struct {
	Text string
	Line int
}

type File struct {
	name       string
	directives []Directive
	messages   []*Message
	byName     map[string]*Message
}

func NewFile(name string) *File {
	return &File{
		name:   name,
		byName: make(map[string]*Message),
	}
}

// Name is the source name the file was parsed from, for example "regress.rpc".
func (f *File) Name() string {
	return f.name
}

func (f *File) AddDirective(text string, line int) {
	f.directives = append(f.directives, Directive{
		Text: text,
		Line: line,
	})
}

func (f *File) Directives() []Directive {
	return slices.Clone(f.directives)
}

func (f *File) AddMessage(msg *Message) error {
	if prev, ok := f.byName[msg.name]; ok {
		return errDuplicateMessage(msg, prev)
	}
	f.byName[msg.name] = msg
	f.messages = append(f.messages, msg)
	return nil
}

func (f *File) Messages() iter.Seq[*Message] {
	return slices.Values(f.messages)
}

func (f *File) Len() int {
	return len(f.messages)
}

func (f *File) Message(name string) *Message {
	return f.byName[name]
}

// Resolve checks that every nested message reference names a message
// declared in the same file. Forward references are allowed.
func (f *File) Resolve() error {
	for _, msg := range f.messages {
		for _, field := range msg.fields {
			nested, ok := field.kind.(NestedMessage)
			if !ok {
				continue
			}
			if _, found := f.byName[nested.Ref]; !found {
				return errUnknownMessage(field, nested.Ref)
			}
		}
	}
	return nil
}

type Message struct {
	name   string
	line   int
	fields []*Field
	tags   map[uint32]string
	names  map[string]*Field
}

func NewMessage(name string, line int) *Message {
	return &Message{
		name:  name,
		line:  line,
		tags:  make(map[uint32]string),
		names: make(map[string]*Field),
	}
}

func (msg *Message) Name() string {
	return msg.name
}

func (msg *Message) Line() int {
	return msg.line
}

// AddField verifies field and registers it on msg. A field may belong to
// only one message.
func (msg *Message) AddField(field *Field) error {
	if field.message != nil {
		panic("schema: field already belongs to message " + field.message.name)
	}
	if err := field.Verify(); err != nil {
		return err
	}
	if prev, ok := msg.tags[field.tag]; ok {
		return errDuplicateTag(msg, field, prev)
	}
	if _, ok := msg.names[field.name]; ok {
		return errDuplicateField(msg, field)
	}
	field.message = msg
	msg.tags[field.tag] = field.name
	msg.names[field.name] = field
	msg.fields = append(msg.fields, field)
	return nil
}

func (msg *Message) Fields() iter.Seq[*Field] {
	return slices.Values(msg.fields)
}

func (msg *Message) Len() int {
	return len(msg.fields)
}

func (msg *Message) Field(name string) *Field {
	return msg.names[name]
}

func (msg *Message) FieldByTag(tag uint32) *Field {
	if name, ok := msg.tags[tag]; ok {
		return msg.names[name]
	}
	return nil
}

// MaxTag is the sentinel emitted after a message's tag constants: one
// greater than the largest declared tag, or zero for an empty message.
func (msg *Message) MaxTag() uint32 {
	var sentinel uint32
	for _, field := range msg.fields {
		if field.tag >= sentinel {
			sentinel = field.tag + 1
		}
	}
	return sentinel
}

type Modifiers uint8

const (
	Optional Modifiers = 1 << iota
	Array
)

func (m Modifiers) String() string {
	switch m {
	case 0:
		return ""
	case Optional:
		return "optional"
	case Array:
		return "array"
	default:
		return "optional array"
	}
}

type Field struct {
	message *Message
	name    string
	kind    Kind
	tag     uint32
	mods    Modifiers
	line    int
}

func NewField(name string, kind Kind, tag uint32, mods Modifiers, line int) *Field {
	return &Field{
		name: name,
		kind: kind,
		tag:  tag,
		mods: mods,
		line: line,
	}
}

// Message is the message the field was added to, or nil before
// [Message.AddField] has accepted it.
func (f *Field) Message() *Message {
	return f.message
}

func (f *Field) Name() string {
	return f.name
}

func (f *Field) Kind() Kind {
	return f.kind
}

func (f *Field) Tag() uint32 {
	return f.tag
}

func (f *Field) Modifiers() Modifiers {
	return f.mods
}

func (f *Field) Optional() bool {
	return f.mods&Optional != 0
}

func (f *Field) Array() bool {
	return f.mods&Array != 0
}

func (f *Field) Line() int {
	return f.line
}

// TypeName is the type keyword the field was declared with.
func (f *Field) TypeName() string {
	return f.kind.TypeName()
}

// Verify checks the invariants of a single field. It does not depend on the
// owning message.
func (f *Field) Verify() error {
	if f.Optional() && f.Array() {
		return errOptionalArray(f)
	}
	if fixed, ok := f.kind.(FixedBytes); ok && fixed.Len == 0 {
		return errFixedBytesLen(f)
	}
	if f.tag == math.MaxUint32 {
		return errTagTooLarge(f)
	}
	return nil
}
