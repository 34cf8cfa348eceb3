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
	"bytes"
	"fmt"
	"strings"
)

// Writer accumulates generated source one line at a time.
type Writer struct {
	buf        bytes.Buffer
	indent     int
	indentUnit string
}

// NewWriter returns a Writer that indents with unit, for example "\t".
func NewWriter(unit string) *Writer {
	return &Writer{indentUnit: unit}
}

func (w *Writer) Line(s string) {
	if s != "" {
		w.buf.WriteString(strings.Repeat(w.indentUnit, w.indent))
		w.buf.WriteString(s)
	}
	w.buf.WriteByte('\n')
}

func (w *Writer) Linef(format string, a ...any) {
	w.Line(fmt.Sprintf(format, a...))
}

func (w *Writer) Blank() {
	w.buf.WriteByte('\n')
}

// Raw appends s without indentation. Each line of s should end in a newline.
func (w *Writer) Raw(s string) {
	w.buf.WriteString(s)
}

func (w *Writer) Indent() {
	w.indent += 1
}

func (w *Writer) Dedent() {
	if w.indent == 0 {
		panic("codegen: unbalanced Dedent")
	}
	w.indent -= 1
}

// Block writes open, runs body one level deeper, then writes close.
func (w *Writer) Block(open, close string, body func()) {
	w.Line(open)
	w.Indent()
	body()
	w.Dedent()
	w.Line(close)
}

func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}
