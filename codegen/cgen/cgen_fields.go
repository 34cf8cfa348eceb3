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

	"go.evrpc.dev/evrpc/codegen"
	"go.evrpc.dev/evrpc/schema"
)

// fieldRules is the per-kind emission contract. Every method writes C
// statements for one field; v names the struct pointer in scope.
type fieldRules interface {
	storage(w *codegen.Writer)
	// assignParams and getParams are the named parameters that follow the
	// message pointer.
	assignParams() string
	getParams() string
	construct(w *codegen.Writer, v string)
	assignBody(w *codegen.Writer)
	getBody(w *codegen.Writer)
	clear(w *codegen.Writer, v string)
	marshal(w *codegen.Writer, buf, v string)
	unmarshal(w *codegen.Writer, buf, v string)
	complete(w *codegen.Writer, v string)
}

func rulesFor(field *schema.Field) fieldRules {
	base := baseRules{
		field: field,
		msg:   field.Message().Name(),
		name:  field.Name(),
		tag:   codegen.TagName(field),
	}
	switch kind := field.Kind().(type) {
	case schema.Integer:
		return &intRules{base}
	case schema.String:
		return &stringRules{base}
	case schema.FixedBytes:
		return &fixedRules{base, kind.Len}
	case schema.VariableBytes:
		return &varBytesRules{base}
	case schema.NestedMessage:
		return &nestedRules{base, kind.Ref}
	}
	panic(fmt.Sprintf("cgen: unknown kind %T", field.Kind()))
}

type baseRules struct {
	field *schema.Field
	msg   string
	name  string
	tag   string
}

func (r *baseRules) construct(w *codegen.Writer, v string) {
	w.Linef("%s->%s_assign = %s_%s_assign;", v, r.name, r.msg, r.name)
	w.Linef("%s->%s_get = %s_%s_get;", v, r.name, r.msg, r.name)
}

func (r *baseRules) complete(w *codegen.Writer, v string) {
	if r.field.Optional() {
		return
	}
	w.Linef("if (!%s->%s_set)", v, r.name)
	w.Line("  return (-1);")
}

// readInto emits one decode call followed by the shared error check.
func readInto(w *codegen.Writer, call string) {
	w.Linef("if (%s == -1)", call)
	w.Line("  return (-1);")
}

func (r *baseRules) scalarGet(w *codegen.Writer, store string) {
	w.Linef("if (msg->%s_set != 1)", r.name)
	w.Line("  return (-1);")
	w.Line(store)
	w.Line("return (0);")
}

type intRules struct {
	baseRules
}

func (r *intRules) storage(w *codegen.Writer) {
	w.Linef("uint32_t %s_data;", r.name)
}

func (r *intRules) assignParams() string { return "const uint32_t value" }
func (r *intRules) getParams() string    { return "uint32_t *value" }

func (r *intRules) construct(w *codegen.Writer, v string) {
	w.Linef("%s->%s_data = 0;", v, r.name)
	r.baseRules.construct(w, v)
}

func (r *intRules) assignBody(w *codegen.Writer) {
	w.Linef("msg->%s_set = 1;", r.name)
	w.Linef("msg->%s_data = value;", r.name)
	w.Line("return (0);")
}

func (r *intRules) getBody(w *codegen.Writer) {
	r.scalarGet(w, fmt.Sprintf("*value = msg->%s_data;", r.name))
}

func (r *intRules) clear(w *codegen.Writer, v string) {
	w.Linef("%s->%s_data = 0;", v, r.name)
	w.Linef("%s->%s_set = 0;", v, r.name)
}

func (r *intRules) marshal(w *codegen.Writer, buf, v string) {
	w.Linef("evtag_marshal_int(%s, %s, %s->%s_data);", buf, r.tag, v, r.name)
}

func (r *intRules) unmarshal(w *codegen.Writer, buf, v string) {
	readInto(w, fmt.Sprintf("evtag_unmarshal_int(%s, %s, &%s->%s_data)", buf, r.tag, v, r.name))
}

type stringRules struct {
	baseRules
}

func (r *stringRules) storage(w *codegen.Writer) {
	w.Linef("char *%s_data;", r.name)
}

func (r *stringRules) assignParams() string { return "const char *value" }
func (r *stringRules) getParams() string    { return "char **value" }

func (r *stringRules) construct(w *codegen.Writer, v string) {
	w.Linef("%s->%s_data = NULL;", v, r.name)
	r.baseRules.construct(w, v)
}

func (r *stringRules) assignBody(w *codegen.Writer) {
	w.Line("char *copy;")
	w.Line("if ((copy = strdup(value)) == NULL)")
	w.Line("  return (-1);")
	w.Linef("if (msg->%s_data != NULL)", r.name)
	w.Linef("  free(msg->%s_data);", r.name)
	w.Linef("msg->%s_data = copy;", r.name)
	w.Linef("msg->%s_set = 1;", r.name)
	w.Line("return (0);")
}

func (r *stringRules) getBody(w *codegen.Writer) {
	r.scalarGet(w, fmt.Sprintf("*value = msg->%s_data;", r.name))
}

func (r *stringRules) clear(w *codegen.Writer, v string) {
	w.Block(fmt.Sprintf("if (%s->%s_data != NULL) {", v, r.name), "}", func() {
		w.Linef("free(%s->%s_data);", v, r.name)
		w.Linef("%s->%s_data = NULL;", v, r.name)
	})
	w.Linef("%s->%s_set = 0;", v, r.name)
}

func (r *stringRules) marshal(w *codegen.Writer, buf, v string) {
	w.Linef("evtag_marshal_string(%s, %s, %s->%s_data);", buf, r.tag, v, r.name)
}

func (r *stringRules) unmarshal(w *codegen.Writer, buf, v string) {
	readInto(w, fmt.Sprintf("evtag_unmarshal_string(%s, %s, &%s->%s_data)", buf, r.tag, v, r.name))
}

type fixedRules struct {
	baseRules
	length uint32
}

func (r *fixedRules) storage(w *codegen.Writer) {
	w.Linef("uint8_t %s_data[%d];", r.name, r.length)
}

func (r *fixedRules) assignParams() string { return "const uint8_t *value" }
func (r *fixedRules) getParams() string    { return "uint8_t *value" }

func (r *fixedRules) zero(w *codegen.Writer, v string) {
	w.Linef("memset(%s->%s_data, 0, sizeof(%s->%s_data));", v, r.name, v, r.name)
}

func (r *fixedRules) construct(w *codegen.Writer, v string) {
	r.zero(w, v)
	r.baseRules.construct(w, v)
}

func (r *fixedRules) assignBody(w *codegen.Writer) {
	w.Linef("msg->%s_set = 1;", r.name)
	w.Linef("memcpy(msg->%s_data, value, %d);", r.name, r.length)
	w.Line("return (0);")
}

func (r *fixedRules) getBody(w *codegen.Writer) {
	r.scalarGet(w, fmt.Sprintf("memcpy(value, msg->%s_data, %d);", r.name, r.length))
}

func (r *fixedRules) clear(w *codegen.Writer, v string) {
	r.zero(w, v)
	w.Linef("%s->%s_set = 0;", v, r.name)
}

func (r *fixedRules) marshal(w *codegen.Writer, buf, v string) {
	w.Linef("evtag_marshal(%s, %s, %s->%s_data, sizeof(%s->%s_data));", buf, r.tag, v, r.name, v, r.name)
}

func (r *fixedRules) unmarshal(w *codegen.Writer, buf, v string) {
	readInto(w, fmt.Sprintf(
		"evtag_unmarshal_fixed(%s, %s, %s->%s_data, sizeof(%s->%s_data))",
		buf, r.tag, v, r.name, v, r.name,
	))
}

type varBytesRules struct {
	baseRules
}

func (r *varBytesRules) storage(w *codegen.Writer) {
	w.Linef("uint8_t *%s_data;", r.name)
	w.Linef("uint32_t %s_length;", r.name)
}

func (r *varBytesRules) assignParams() string { return "const uint8_t *value, uint32_t len" }
func (r *varBytesRules) getParams() string    { return "uint8_t **value, uint32_t *plen" }

func (r *varBytesRules) construct(w *codegen.Writer, v string) {
	w.Linef("%s->%s_data = NULL;", v, r.name)
	w.Linef("%s->%s_length = 0;", v, r.name)
	r.baseRules.construct(w, v)
}

func (r *varBytesRules) assignBody(w *codegen.Writer) {
	w.Line("uint8_t *copy;")
	w.Line("if ((copy = malloc(len > 0 ? len : 1)) == NULL)")
	w.Line("  return (-1);")
	w.Line("memcpy(copy, value, len);")
	w.Linef("if (msg->%s_data != NULL)", r.name)
	w.Linef("  free(msg->%s_data);", r.name)
	w.Linef("msg->%s_data = copy;", r.name)
	w.Linef("msg->%s_length = len;", r.name)
	w.Linef("msg->%s_set = 1;", r.name)
	w.Line("return (0);")
}

func (r *varBytesRules) getBody(w *codegen.Writer) {
	w.Linef("if (msg->%s_set != 1)", r.name)
	w.Line("  return (-1);")
	w.Linef("*value = msg->%s_data;", r.name)
	w.Linef("*plen = msg->%s_length;", r.name)
	w.Line("return (0);")
}

func (r *varBytesRules) clear(w *codegen.Writer, v string) {
	w.Block(fmt.Sprintf("if (%s->%s_data != NULL) {", v, r.name), "}", func() {
		w.Linef("free(%s->%s_data);", v, r.name)
		w.Linef("%s->%s_data = NULL;", v, r.name)
	})
	w.Linef("%s->%s_length = 0;", v, r.name)
	w.Linef("%s->%s_set = 0;", v, r.name)
}

func (r *varBytesRules) marshal(w *codegen.Writer, buf, v string) {
	w.Linef("evtag_marshal(%s, %s, %s->%s_data, %s->%s_length);", buf, r.tag, v, r.name, v, r.name)
}

func (r *varBytesRules) unmarshal(w *codegen.Writer, buf, v string) {
	readInto(w, fmt.Sprintf("evtag_peek_length(%s, &%s->%s_length)", buf, v, r.name))
	w.Linef(
		"if ((%s->%s_data = malloc(%s->%s_length > 0 ? %s->%s_length : 1)) == NULL)",
		v, r.name, v, r.name, v, r.name,
	)
	w.Line("  return (-1);")
	readInto(w, fmt.Sprintf(
		"evtag_unmarshal_fixed(%s, %s, %s->%s_data, %s->%s_length)",
		buf, r.tag, v, r.name, v, r.name,
	))
}

type nestedRules struct {
	baseRules
	ref string
}

func (r *nestedRules) storage(w *codegen.Writer) {
	w.Linef("struct %s *%s_data;", r.ref, r.name)
}

func (r *nestedRules) assignParams() string { return fmt.Sprintf("struct %s *value", r.ref) }
func (r *nestedRules) getParams() string    { return fmt.Sprintf("struct %s **value", r.ref) }

func (r *nestedRules) construct(w *codegen.Writer, v string) {
	w.Linef("%s->%s_data = NULL;", v, r.name)
	r.baseRules.construct(w, v)
}

// assignBody deep-copies value through a local evbuffer. Marshalling
// happens before the stored instance is cleared, so assigning a field its
// own value is safe.
func (r *nestedRules) assignBody(w *codegen.Writer) {
	w.Line("struct evbuffer *tmp = NULL;")
	w.Block("if ((tmp = evbuffer_new()) == NULL) {", "}", func() {
		w.Line(`event_warn("%s: evbuffer_new()", __func__);`)
		w.Line("goto error;")
	})
	w.Linef("%s_marshal(tmp, value);", r.ref)
	w.Block(fmt.Sprintf("if (msg->%s_data != NULL) {", r.name), fmt.Sprintf("} else if ((msg->%s_data = %s_new()) == NULL) {", r.name, r.ref), func() {
		w.Linef("%s_clear(msg->%s_data);", r.ref, r.name)
		w.Linef("msg->%s_set = 0;", r.name)
	})
	w.Indent()
	w.Linef(`event_warn("%%s: %s_new()", __func__);`, r.ref)
	w.Line("goto error;")
	w.Dedent()
	w.Line("}")
	w.Block(fmt.Sprintf("if (%s_unmarshal(msg->%s_data, tmp) == -1) {", r.ref, r.name), "}", func() {
		w.Linef(`event_warnx("%%s: %s_unmarshal", __func__);`, r.ref)
		w.Line("goto error;")
	})
	w.Linef("msg->%s_set = 1;", r.name)
	w.Line("evbuffer_free(tmp);")
	w.Line("return (0);")
	w.Raw(" error:\n")
	w.Line("if (tmp != NULL)")
	w.Line("  evbuffer_free(tmp);")
	w.Block(fmt.Sprintf("if (msg->%s_data != NULL) {", r.name), "}", func() {
		w.Linef("%s_free(msg->%s_data);", r.ref, r.name)
		w.Linef("msg->%s_data = NULL;", r.name)
	})
	w.Linef("msg->%s_set = 0;", r.name)
	w.Line("return (-1);")
}

func (r *nestedRules) getBody(w *codegen.Writer) {
	w.Block(fmt.Sprintf("if (msg->%s_set != 1) {", r.name), "}", func() {
		w.Linef("if (msg->%s_data == NULL && (msg->%s_data = %s_new()) == NULL)", r.name, r.name, r.ref)
		w.Line("  return (-1);")
		w.Linef("msg->%s_set = 1;", r.name)
	})
	w.Linef("*value = msg->%s_data;", r.name)
	w.Line("return (0);")
}

func (r *nestedRules) clear(w *codegen.Writer, v string) {
	w.Block(fmt.Sprintf("if (%s->%s_data != NULL) {", v, r.name), "}", func() {
		w.Linef("%s_free(%s->%s_data);", r.ref, v, r.name)
		w.Linef("%s->%s_data = NULL;", v, r.name)
	})
	w.Linef("%s->%s_set = 0;", v, r.name)
}

func (r *nestedRules) marshal(w *codegen.Writer, buf, v string) {
	w.Linef("evtag_marshal_%s(%s, %s, %s->%s_data);", r.ref, buf, r.tag, v, r.name)
}

func (r *nestedRules) unmarshal(w *codegen.Writer, buf, v string) {
	w.Linef("if ((%s->%s_data = %s_new()) == NULL)", v, r.name, r.ref)
	w.Line("  return (-1);")
	readInto(w, fmt.Sprintf("evtag_unmarshal_%s(%s, %s, %s->%s_data)", r.ref, buf, r.tag, v, r.name))
}

func (r *nestedRules) complete(w *codegen.Writer, v string) {
	if r.field.Optional() {
		w.Linef("if (%s->%s_set && %s_complete(%s->%s_data) == -1)", v, r.name, r.ref, v, r.name)
	} else {
		w.Linef("if (!%s->%s_set || %s_complete(%s->%s_data) == -1)", v, r.name, r.ref, v, r.name)
	}
	w.Line("  return (-1);")
}
