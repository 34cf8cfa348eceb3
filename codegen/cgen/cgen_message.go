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

package cgen

import (
	"fmt"
	"strings"

	"go.evrpc.dev/evrpc/codegen"
	"go.evrpc.dev/evrpc/schema"
)

type messageGen struct {
	w      *codegen.Writer
	msg    *schema.Message
	name   string
	fields []*schema.Field
	rules  map[*schema.Field]fieldRules
}

func newMessageGen(w *codegen.Writer, msg *schema.Message) *messageGen {
	mg := &messageGen{
		w:     w,
		msg:   msg,
		name:  msg.Name(),
		rules: make(map[*schema.Field]fieldRules),
	}
	for field := range msg.Fields() {
		mg.fields = append(mg.fields, field)
		mg.rules[field] = rulesFor(field)
	}
	return mg
}

func (mg *messageGen) tagEnum() {
	w := mg.w
	w.Linef("/* Tag definition for %s */", mg.name)
	w.Block(fmt.Sprintf("enum %s_tags {", strings.ToLower(mg.name)), "};", func() {
		for _, field := range mg.fields {
			w.Linef("%s=%d,", codegen.TagName(field), field.Tag())
		}
		w.Linef("%s=%d", codegen.MaxTagsName(mg.msg), mg.msg.MaxTag())
	})
	w.Blank()
}

func (mg *messageGen) assignProto(field *schema.Field, fn string) string {
	return fmt.Sprintf("int %s(struct %s *msg, %s)", fn, mg.name, mg.rules[field].assignParams())
}

func (mg *messageGen) getProto(field *schema.Field, fn string) string {
	return fmt.Sprintf("int %s(struct %s *msg, %s)", fn, mg.name, mg.rules[field].getParams())
}

func (mg *messageGen) declaration() {
	w := mg.w
	w.Linef("/* Structure declaration for %s */", mg.name)
	w.Block(fmt.Sprintf("struct %s {", mg.name), "};", func() {
		for _, field := range mg.fields {
			mg.rules[field].storage(w)
			w.Line(mg.assignProto(field, "(*"+field.Name()+"_assign)") + ";")
			w.Line(mg.getProto(field, "(*"+field.Name()+"_get)") + ";")
		}
		w.Blank()
		for _, field := range mg.fields {
			w.Linef("uint8_t %s_set;", field.Name())
		}
	})
	w.Blank()

	n := mg.name
	w.Linef("struct %s *%s_new(void);", n, n)
	w.Linef("void %s_free(struct %s *);", n, n)
	w.Linef("void %s_clear(struct %s *);", n, n)
	w.Linef("void %s_marshal(struct evbuffer *, struct %s *);", n, n)
	w.Linef("int %s_unmarshal(struct %s *, struct evbuffer *);", n, n)
	w.Linef("int %s_complete(struct %s *);", n, n)
	w.Linef("void evtag_marshal_%s(struct evbuffer *, ev_uint32_t, struct %s *);", n, n)
	w.Linef("int evtag_unmarshal_%s(struct evbuffer *, ev_uint32_t, struct %s *);", n, n)
	for _, field := range mg.fields {
		if kind, fixed := field.Kind().(schema.FixedBytes); fixed {
			w.Linef("/* value of %s_%s_assign must point to %d bytes. */", n, field.Name(), kind.Len)
		}
		w.Line(mg.assignProto(field, n+"_"+field.Name()+"_assign") + ";")
		w.Line(mg.getProto(field, n+"_"+field.Name()+"_get") + ";")
	}
	w.Linef("/* --- %s done --- */", n)
	w.Blank()
}

// function writes a C function definition with the return type on its own
// line.
func (mg *messageGen) function(ret, signature string, body func()) {
	mg.w.Line(ret)
	mg.w.Line(signature)
	mg.w.Block("{", "}", body)
	mg.w.Blank()
}

func (mg *messageGen) code() {
	w := mg.w
	n := mg.name
	w.Line("/*")
	w.Linef(" * Implementation of %s", n)
	w.Line(" */")
	w.Blank()

	mg.function(fmt.Sprintf("struct %s *", n), n+"_new(void)", func() {
		w.Linef("struct %s *tmp;", n)
		w.Block(fmt.Sprintf("if ((tmp = malloc(sizeof(struct %s))) == NULL) {", n), "}", func() {
			w.Line(`event_warn("%s: malloc", __func__);`)
			w.Line("return (NULL);")
		})
		for _, field := range mg.fields {
			mg.rules[field].construct(w, "tmp")
			w.Linef("tmp->%s_set = 0;", field.Name())
			w.Blank()
		}
		w.Line("return (tmp);")
	})

	for _, field := range mg.fields {
		assign := mg.assignProto(field, n+"_"+field.Name()+"_assign")
		mg.function("int", strings.TrimPrefix(assign, "int "), func() {
			mg.rules[field].assignBody(w)
		})
	}
	for _, field := range mg.fields {
		get := mg.getProto(field, n+"_"+field.Name()+"_get")
		mg.function("int", strings.TrimPrefix(get, "int "), func() {
			mg.rules[field].getBody(w)
		})
	}

	mg.function("void", fmt.Sprintf("%s_clear(struct %s *tmp)", n, n), func() {
		for _, field := range mg.fields {
			mg.rules[field].clear(w, "tmp")
		}
	})

	mg.function("void", fmt.Sprintf("%s_free(struct %s *tmp)", n, n), func() {
		w.Line("if (tmp == NULL)")
		w.Line("  return;")
		w.Linef("%s_clear(tmp);", n)
		w.Line("free(tmp);")
	})

	mg.function("void", fmt.Sprintf("%s_marshal(struct evbuffer *evbuf, struct %s *tmp)", n, n), func() {
		w.Line("if (tmp == NULL)")
		w.Line("  return;")
		for _, field := range mg.fields {
			rules := mg.rules[field]
			if field.Optional() {
				w.Block(fmt.Sprintf("if (tmp->%s_set) {", field.Name()), "}", func() {
					rules.marshal(w, "evbuf", "tmp")
				})
			} else {
				rules.marshal(w, "evbuf", "tmp")
			}
		}
	})

	mg.function("int", fmt.Sprintf("%s_unmarshal(struct %s *tmp, struct evbuffer *evbuf)", n, n), func() {
		w.Line("ev_uint32_t tag;")
		w.Block("while (EVBUFFER_LENGTH(evbuf) > 0) {", "}", func() {
			w.Line("if (evtag_peek(evbuf, &tag) == -1)")
			w.Line("  return (-1);")
			w.Block("switch (tag) {", "}", func() {
				for _, field := range mg.fields {
					w.Linef("case %s:", codegen.TagName(field))
					w.Indent()
					w.Linef("if (tmp->%s_set)", field.Name())
					w.Line("  return (-1);")
					mg.rules[field].unmarshal(w, "evbuf", "tmp")
					w.Linef("tmp->%s_set = 1;", field.Name())
					w.Line("break;")
					w.Dedent()
					w.Blank()
				}
				w.Line("default:")
				w.Line("  return (-1);")
			})
		})
		w.Blank()
		w.Linef("if (%s_complete(tmp) == -1)", n)
		w.Line("  return (-1);")
		w.Line("return (0);")
	})

	mg.function("int", fmt.Sprintf("%s_complete(struct %s *msg)", n, n), func() {
		for _, field := range mg.fields {
			mg.rules[field].complete(w, "msg")
		}
		w.Line("return (0);")
	})

	mg.function("int", fmt.Sprintf("evtag_unmarshal_%s(struct evbuffer *evbuf, ev_uint32_t need_tag, struct %s *msg)", n, n), func() {
		w.Line("ev_uint32_t tag;")
		w.Line("int res = -1;")
		w.Blank()
		w.Line("struct evbuffer *tmp = evbuffer_new();")
		w.Line("if (tmp == NULL)")
		w.Line("  return (-1);")
		w.Blank()
		w.Line("if (evtag_unmarshal(evbuf, &tag, tmp) == -1 || tag != need_tag)")
		w.Line("  goto error;")
		w.Blank()
		w.Linef("if (%s_unmarshal(msg, tmp) == -1)", n)
		w.Line("  goto error;")
		w.Blank()
		w.Line("res = 0;")
		w.Blank()
		w.Raw(" error:\n")
		w.Line("evbuffer_free(tmp);")
		w.Line("return (res);")
	})

	mg.function("void", fmt.Sprintf("evtag_marshal_%s(struct evbuffer *evbuf, ev_uint32_t tag, struct %s *msg)", n, n), func() {
		w.Line("struct evbuffer *tmp = evbuffer_new();")
		w.Block("if (tmp == NULL) {", "}", func() {
			w.Line(`event_warn("%s: evbuffer_new()", __func__);`)
			w.Line("return;")
		})
		w.Linef("%s_marshal(tmp, msg);", n)
		w.Line("evtag_marshal(evbuf, tag, EVBUFFER_DATA(tmp), EVBUFFER_LENGTH(tmp));")
		w.Line("evbuffer_free(tmp);")
	})
}
