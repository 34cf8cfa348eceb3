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
	"fmt"
	"path"

	"go.evrpc.dev/evrpc/codegen"
	"go.evrpc.dev/evrpc/schema"
)

func (g *fileGen) implementation() []byte {
	w := codegen.NewWriter("\t")
	g.header(w)
	if directives := g.file.Directives(); len(directives) > 0 {
		w.Blank()
		w.Linef("// Preprocessor lines from %s:", path.Base(g.file.Name()))
		w.Line("//")
		for _, d := range directives {
			w.Linef("//\t%s", d.Text)
		}
	}
	if g.file.Len() == 0 {
		return w.Bytes()
	}
	w.Blank()
	w.Block("import (", ")", func() {
		w.Line(`"sync"`)
		w.Blank()
		w.Line(g.runtimeImport())
	})
	for msg := range g.file.Messages() {
		mg := &messageGen{
			fileGen: g,
			w:       w,
			msg:     msg,
			names:   g.names.messages[msg],
		}
		mg.lifecycle()
		for field := range msg.Fields() {
			mg.accessors(field)
		}
		mg.marshal()
		mg.unmarshal()
		mg.complete()
		mg.envelope()
	}
	return w.Bytes()
}

type messageGen struct {
	*fileGen
	w     *codegen.Writer
	msg   *schema.Message
	names *messageNames
}

// method opens a method on *T with receiver m.
func (mg *messageGen) method(signature string, body func()) {
	mg.w.Blank()
	mg.w.Block(fmt.Sprintf("func (m *%s) %s {", mg.names.typeName, signature), "}", body)
}

func (mg *messageGen) lifecycle() {
	w := mg.w
	typeName := mg.names.typeName
	w.Blank()
	w.Linef("var %s = sync.Pool{New: func() any { return new(%s) }}", mg.names.poolVar, typeName)
	w.Blank()
	w.Linef("// %s returns an empty %s. Release it with Free when done.", mg.names.newFunc, typeName)
	w.Block(fmt.Sprintf("func %s() *%s {", mg.names.newFunc, typeName), "}", func() {
		w.Linef("return %s.Get().(*%s)", mg.names.poolVar, typeName)
	})

	w.Blank()
	w.Line("// Free clears m and returns it to the pool. m must not be used afterwards.")
	w.Block(fmt.Sprintf("func (m *%s) Free() {", typeName), "}", func() {
		w.Block("if m == nil {", "}", func() {
			w.Line("return")
		})
		w.Line("m.Clear()")
		w.Linef("%s.Put(m)", mg.names.poolVar)
	})

	w.Blank()
	w.Line("// Clear unsets every field and frees nested messages.")
	mg.w.Block(fmt.Sprintf("func (m *%s) Clear() {", typeName), "}", func() {
		for field := range mg.msg.Fields() {
			names := mg.fileGen.names.fields[field]
			if _, nested := field.Kind().(schema.NestedMessage); nested {
				w.Block(fmt.Sprintf("if m.%s != nil {", names.data), "}", func() {
					w.Linef("m.%s.Free()", names.data)
					w.Linef("m.%s = nil", names.data)
				})
			} else {
				w.Linef("m.%s = %s", names.data, zeroValue(field))
			}
			w.Linef("m.%s = false", names.set)
		}
	})
}

func (mg *messageGen) accessors(field *schema.Field) {
	w := mg.w
	names := mg.fileGen.names.fields[field]
	goType := mg.goType(field)

	if kind, nested := field.Kind().(schema.NestedMessage); nested {
		ref := mg.fileGen.names.messages[mg.file.Message(kind.Ref)]
		w.Blank()
		w.Linef(
			"// Get%s returns %s, first setting it to an empty %s if it is unset.",
			names.accessor, field.Name(), ref.typeName,
		)
		w.Block(fmt.Sprintf("func (m *%s) Get%s() %s {", mg.names.typeName, names.accessor, goType), "}", func() {
			w.Block(fmt.Sprintf("if !m.%s {", names.set), "}", func() {
				w.Linef("m.%s = %s()", names.data, ref.newFunc)
				w.Linef("m.%s = true", names.set)
			})
			w.Linef("return m.%s", names.data)
		})

		w.Blank()
		w.Linef("// Set%s stores a deep copy of v. On error %s is left unset.", names.accessor, field.Name())
		w.Block(fmt.Sprintf("func (m *%s) Set%s(v %s) error {", mg.names.typeName, names.accessor, goType), "}", func() {
			w.Line("var tmp evtag.Buffer")
			w.Line("v.MarshalTo(&tmp)")
			w.Block(fmt.Sprintf("if m.%s == nil {", names.data), "} else {", func() {
				w.Linef("m.%s = %s()", names.data, ref.newFunc)
			})
			w.Indent()
			w.Linef("m.%s.Clear()", names.data)
			w.Dedent()
			w.Line("}")
			w.Block(fmt.Sprintf("if err := m.%s.UnmarshalFrom(&tmp); err != nil {", names.data), "}", func() {
				w.Linef("m.%s.Free()", names.data)
				w.Linef("m.%s = nil", names.data)
				w.Linef("m.%s = false", names.set)
				w.Line("return err")
			})
			w.Linef("m.%s = true", names.set)
			w.Line("return nil")
		})
	} else {
		mg.method(fmt.Sprintf("Get%s() (%s, error)", names.accessor, goType), func() {
			w.Block(fmt.Sprintf("if !m.%s {", names.set), "}", func() {
				w.Linef(
					"return %s, evtag.UnsetFieldError(%q, %q)",
					zeroValue(field), mg.msg.Name(), field.Name(),
				)
			})
			w.Linef("return m.%s, nil", names.data)
		})

		mg.method(fmt.Sprintf("Set%s(v %s)", names.accessor, goType), func() {
			if _, ok := field.Kind().(schema.VariableBytes); ok {
				w.Linef("m.%s = append(make([]byte, 0, len(v)), v...)", names.data)
			} else {
				w.Linef("m.%s = v", names.data)
			}
			w.Linef("m.%s = true", names.set)
		})
	}

	mg.method(fmt.Sprintf("Has%s() bool", names.accessor), func() {
		w.Linef("return m.%s", names.set)
	})
}

func (mg *messageGen) marshal() {
	w := mg.w
	w.Blank()
	w.Line("// MarshalTo appends one record per present field to b. A nil m appends")
	w.Line("// nothing.")
	w.Block(fmt.Sprintf("func (m *%s) MarshalTo(b *evtag.Buffer) {", mg.names.typeName), "}", func() {
		w.Block("if m == nil {", "}", func() {
			w.Line("return")
		})
		for field := range mg.msg.Fields() {
			names := mg.fileGen.names.fields[field]
			var call string
			switch field.Kind().(type) {
			case schema.Integer:
				call = fmt.Sprintf("b.WriteInt(%s, m.%s)", names.tag, names.data)
			case schema.String:
				call = fmt.Sprintf("b.WriteString(%s, m.%s)", names.tag, names.data)
			case schema.FixedBytes:
				call = fmt.Sprintf("b.WriteBytes(%s, m.%s[:])", names.tag, names.data)
			case schema.VariableBytes:
				call = fmt.Sprintf("b.WriteBytes(%s, m.%s)", names.tag, names.data)
			case schema.NestedMessage:
				call = fmt.Sprintf("b.WriteMessage(%s, m.%s)", names.tag, names.data)
			}
			if field.Optional() {
				w.Block(fmt.Sprintf("if m.%s {", names.set), "}", func() {
					w.Line(call)
				})
			} else {
				w.Line(call)
			}
		}
	})
}

func (mg *messageGen) unmarshal() {
	w := mg.w
	w.Blank()
	w.Line("// UnmarshalFrom consumes every record remaining in b, then checks that")
	w.Line("// all required fields are set.")
	w.Block(fmt.Sprintf("func (m *%s) UnmarshalFrom(b *evtag.Buffer) error {", mg.names.typeName), "}", func() {
		w.Block("for b.Len() > 0 {", "}", func() {
			w.Line("tag, err := b.PeekTag()")
			w.Block("if err != nil {", "}", func() {
				w.Line("return err")
			})
			w.Line("switch tag {")
			for field := range mg.msg.Fields() {
				mg.unmarshalField(field)
			}
			w.Line("default:")
			w.Indent()
			w.Linef("return evtag.UnknownTagError(%q, tag)", mg.msg.Name())
			w.Dedent()
			w.Line("}")
		})
		w.Line("return m.Complete()")
	})
}

func (mg *messageGen) unmarshalField(field *schema.Field) {
	w := mg.w
	names := mg.fileGen.names.fields[field]
	w.Linef("case %s:", names.tag)
	w.Indent()
	w.Block(fmt.Sprintf("if m.%s {", names.set), "}", func() {
		w.Linef("return evtag.DuplicateTagError(%q, tag)", mg.msg.Name())
	})
	var read string
	switch kind := field.Kind().(type) {
	case schema.Integer:
		read = fmt.Sprintf("m.%s, err = b.ReadInt(%s)", names.data, names.tag)
	case schema.String:
		read = fmt.Sprintf("m.%s, err = b.ReadString(%s)", names.data, names.tag)
	case schema.FixedBytes:
		read = fmt.Sprintf("err = b.ReadFixed(%s, m.%s[:])", names.tag, names.data)
	case schema.VariableBytes:
		read = fmt.Sprintf("m.%s, err = b.ReadBytes(%s)", names.data, names.tag)
	case schema.NestedMessage:
		ref := mg.fileGen.names.messages[mg.file.Message(kind.Ref)]
		w.Linef("m.%s = %s()", names.data, ref.newFunc)
		read = fmt.Sprintf("err = b.ReadMessage(%s, m.%s)", names.tag, names.data)
	}
	w.Block(fmt.Sprintf("if %s; err != nil {", read), "}", func() {
		w.Line("return err")
	})
	w.Linef("m.%s = true", names.set)
	w.Dedent()
}

func (mg *messageGen) complete() {
	w := mg.w
	w.Blank()
	w.Line("// Complete reports the first required field that is not set, searching")
	w.Line("// nested messages recursively. A nil m has no fields set.")
	w.Block(fmt.Sprintf("func (m *%s) Complete() error {", mg.names.typeName), "}", func() {
		if mg.msg.Len() > 0 {
			w.Block("if m == nil {", "}", func() {
				for field := range mg.msg.Fields() {
					if !field.Optional() {
						w.Linef("return evtag.IncompleteError(%q, %q)", mg.msg.Name(), field.Name())
						return
					}
				}
				w.Line("return nil")
			})
		}
		for field := range mg.msg.Fields() {
			names := mg.fileGen.names.fields[field]
			_, nested := field.Kind().(schema.NestedMessage)
			checkNested := func() {
				w.Block(fmt.Sprintf("if err := m.%s.Complete(); err != nil {", names.data), "}", func() {
					w.Line("return err")
				})
			}
			if field.Optional() {
				if nested {
					w.Block(fmt.Sprintf("if m.%s {", names.set), "}", checkNested)
				}
				continue
			}
			w.Block(fmt.Sprintf("if !m.%s {", names.set), "}", func() {
				w.Linef("return evtag.IncompleteError(%q, %q)", mg.msg.Name(), field.Name())
			})
			if nested {
				checkNested()
			}
		}
		w.Line("return nil")
	})
}

func (mg *messageGen) envelope() {
	w := mg.w
	typeName := mg.names.typeName

	w.Blank()
	w.Line("// MarshalEnvelope appends m to b as the payload of one record.")
	w.Block(fmt.Sprintf("func (m *%s) MarshalEnvelope(b *evtag.Buffer, tag evtag.Tag) {", typeName), "}", func() {
		w.Line("b.WriteMessage(tag, m)")
	})

	w.Blank()
	w.Line("// UnmarshalEnvelope consumes one record from b and decodes its payload")
	w.Line("// into m.")
	w.Block(fmt.Sprintf("func (m *%s) UnmarshalEnvelope(b *evtag.Buffer, tag evtag.Tag) error {", typeName), "}", func() {
		w.Line("return b.ReadMessage(tag, m)")
	})

	mg.method("MarshalBinary() ([]byte, error)", func() {
		w.Block("if err := m.Complete(); err != nil {", "}", func() {
			w.Line("return nil, err")
		})
		w.Line("var b evtag.Buffer")
		w.Line("m.MarshalTo(&b)")
		w.Line("return b.Bytes(), nil")
	})

	mg.method("UnmarshalBinary(data []byte) error", func() {
		w.Line("m.Clear()")
		w.Line("return m.UnmarshalFrom(evtag.NewBuffer(data))")
	})
}
