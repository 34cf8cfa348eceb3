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

// Package cgen generates C marshalling code for libevent's evtag API.
//
// For a schema "regress.rpc" it emits "regress.gen.h" with the tag enums,
// structure declarations and prototypes, and "regress.gen.c" with their
// bodies. Generated code allocates with malloc and reports failure by
// returning -1.
package cgen

import (
	"context"
	"path"
	"strings"

	"go.evrpc.dev/evrpc/codegen"
	"go.evrpc.dev/evrpc/schema"
)

const generatorName = "evrpcgen"

type Generator struct{}

var _ codegen.Generator = (*Generator)(nil)

func New() *Generator {
	return &Generator{}
}

func (*Generator) Language() string {
	return "c"
}

func (*Generator) Generate(
	ctx context.Context,
	file *schema.File,
	opts ...codegen.Option,
) (*codegen.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	options := codegen.NewOptions(file, opts...)
	if err := checkNames(file); err != nil {
		return nil, err
	}
	base := options.BaseName()
	gen := &fileGen{
		file:       file,
		sourceName: path.Base(file.Name()),
		headerName: base + ".gen.h",
	}
	return &codegen.Output{
		Declarations: codegen.Artifact{
			Name:    gen.headerName,
			Content: gen.header(),
		},
		Implementation: codegen.Artifact{
			Name:    base + ".gen.c",
			Content: gen.implementation(),
		},
		Warnings: codegen.ArrayWarnings(file),
	}, nil
}

// checkNames rejects schemas whose C symbols would clash, for example tag
// "A_B_C" from both message "a_b" field "c" and message "a" field "b_c".
func checkNames(file *schema.File) error {
	ids := codegen.NewIdentifiers()
	for msg := range file.Messages() {
		owner := "message '" + msg.Name() + "'"
		if err := ids.Claim(codegen.MaxTagsName(msg), owner, msg.Line()); err != nil {
			return err
		}
		for field := range msg.Fields() {
			owner := "field '" + field.Name() + "' of message '" + msg.Name() + "'"
			if err := ids.Claim(codegen.TagName(field), owner, field.Line()); err != nil {
				return err
			}
			for _, suffix := range []string{"_assign", "_get"} {
				fn := msg.Name() + "_" + field.Name() + suffix
				if err := ids.Claim(fn, owner, field.Line()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// guardName derives the include guard from the schema name:
// "proto/regress.rpc" becomes "_PROTO_REGRESS_RPC_".
func guardName(name string) string {
	var buf strings.Builder
	buf.WriteByte('_')
	for _, c := range strings.ToUpper(name) {
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			buf.WriteRune(c)
		} else {
			buf.WriteByte('_')
		}
	}
	buf.WriteByte('_')
	return buf.String()
}

type fileGen struct {
	file       *schema.File
	sourceName string
	headerName string
}

func (g *fileGen) header() []byte {
	w := codegen.NewWriter("  ")
	guard := guardName(g.file.Name())

	w.Line("/*")
	w.Linef(" * Automatically generated from %s", g.sourceName)
	w.Line(" */")
	w.Blank()
	w.Linef("#ifndef %s", guard)
	w.Linef("#define %s", guard)
	w.Blank()
	w.Line("#define EVTAG_HAS(msg, member) ((msg)->member##_set == 1)")
	w.Line("#define EVTAG_ASSIGN(msg, member, args...) (*(msg)->member##_assign)(msg, ## args)")
	w.Line("#define EVTAG_GET(msg, member, args...) (*(msg)->member##_get)(msg, ## args)")
	w.Blank()

	// Forward declarations let messages refer to each other in any order.
	for msg := range g.file.Messages() {
		w.Linef("struct %s;", msg.Name())
	}
	w.Blank()

	for msg := range g.file.Messages() {
		mg := newMessageGen(w, msg)
		mg.tagEnum()
		mg.declaration()
	}
	w.Linef("#endif  /* %s */", guard)
	return w.Bytes()
}

func (g *fileGen) implementation() []byte {
	w := codegen.NewWriter("  ")
	w.Line("/*")
	w.Linef(" * Automatically generated from %s", g.sourceName)
	w.Linef(" * by %s.  DO NOT EDIT THIS FILE.", generatorName)
	w.Line(" */")
	w.Blank()
	for _, include := range []string{"sys/types.h", "sys/time.h", "stdlib.h", "string.h", "event.h"} {
		w.Linef("#include <%s>", include)
	}
	w.Blank()
	for _, d := range g.file.Directives() {
		w.Line(d.Text)
	}
	w.Blank()
	w.Linef("#include \"%s\"", g.headerName)
	w.Blank()
	w.Line("void event_err(int eval, const char *fmt, ...);")
	w.Line("void event_warn(const char *fmt, ...);")
	w.Line("void event_errx(int eval, const char *fmt, ...);")
	w.Line("void event_warnx(const char *fmt, ...);")
	w.Blank()

	for msg := range g.file.Messages() {
		newMessageGen(w, msg).code()
	}
	return w.Bytes()
}
