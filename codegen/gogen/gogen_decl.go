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

package gogen

import (
	"go.evrpc.dev/evrpc/codegen"
	"go.evrpc.dev/evrpc/schema"
)

func (g *fileGen) declarations() []byte {
	w := codegen.NewWriter("\t")
	g.header(w)
	if g.file.Len() == 0 {
		return w.Bytes()
	}
	w.Blank()
	w.Linef("import %s", g.runtimeImport())
	for msg := range g.file.Messages() {
		w.Blank()
		g.tagConstants(w, msg)
		w.Blank()
		g.structType(w, msg)
	}
	return w.Bytes()
}

func (g *fileGen) tagConstants(w *codegen.Writer, msg *schema.Message) {
	w.Block("const (", ")", func() {
		for field := range msg.Fields() {
			w.Linef("%s evtag.Tag = %d", g.names.fields[field].tag, field.Tag())
		}
		w.Linef("%s evtag.Tag = %d", codegen.MaxTagsName(msg), msg.MaxTag())
	})
}

func (g *fileGen) structType(w *codegen.Writer, msg *schema.Message) {
	typeName := g.names.messages[msg].typeName
	w.Linef("// %s is generated from message %s.", typeName, msg.Name())
	w.Line("// Its methods are not safe for concurrent use.")
	if msg.Len() == 0 {
		w.Linef("type %s struct{}", typeName)
	} else {
		w.Block("type "+typeName+" struct {", "}", func() {
			first := true
			for field := range msg.Fields() {
				if !first {
					w.Blank()
				}
				first = false
				names := g.names.fields[field]
				w.Linef("%s %s", names.data, g.goType(field))
				w.Linef("%s bool", names.set)
			}
		})
	}
	w.Blank()
	w.Linef("var _ evtag.Message = (*%s)(nil)", typeName)
}
