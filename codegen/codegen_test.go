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

package codegen_test

import (
	"testing"

	"go.evrpc.dev/evrpc/codegen"
	"go.evrpc.dev/evrpc/internal/testutil"
	"go.evrpc.dev/evrpc/syntax"
)

func TestBaseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		want   string
	}{
		{"regress.rpc", "regress"},
		{"proto/regress.rpc", "regress"},
		{"dir\\win.rpc", "win"},
		{"noext", "noext"},
		{"two.dots.rpc", "two.dots"},
		{".rpc", ".rpc"},
		{"", "schema"},
	}
	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			testutil.ExpectEq(t, test.want, codegen.BaseName(test.source))
		})
	}
}

func TestNewOptions(t *testing.T) {
	t.Parallel()

	file, err := syntax.Parse([]byte(""), syntax.WithSourceName("api/My-Types.rpc"))
	testutil.AssertNoError(t, err)

	opts := codegen.NewOptions(file)
	testutil.ExpectEq(t, "mytypes", opts.PackageName())
	testutil.ExpectEq(t, "My-Types", opts.BaseName())
	testutil.ExpectEq(t, codegen.DefaultRuntimeImport, opts.RuntimeImport())

	opts = codegen.NewOptions(
		file,
		codegen.WithPackageName("wire"),
		codegen.WithBaseName("types"),
		codegen.WithRuntimeImport("example.com/rt/evtag"),
	)
	testutil.ExpectEq(t, "wire", opts.PackageName())
	testutil.ExpectEq(t, "types", opts.BaseName())
	testutil.ExpectEq(t, "example.com/rt/evtag", opts.RuntimeImport())
}

func TestNames(t *testing.T) {
	t.Parallel()

	file, err := syntax.Parse([]byte("message point_list { int max_len = 7; }"))
	testutil.AssertNoError(t, err)
	msg := file.Message("point_list")
	field := msg.Field("max_len")

	testutil.ExpectEq(t, "POINT_LIST_MAX_LEN", codegen.TagName(field))
	testutil.ExpectEq(t, "POINT_LIST_MAX_TAGS", codegen.MaxTagsName(msg))
	testutil.ExpectEq(t, "PointList", codegen.CamelCase(msg.Name()))
	testutil.ExpectEq(t, "X", codegen.CamelCase("_x"))
	testutil.ExpectEq(t, "ABc", codegen.CamelCase("a_bc"))
}

func TestIdentifiers(t *testing.T) {
	t.Parallel()

	ids := codegen.NewIdentifiers()
	testutil.AssertNoError(t, ids.Claim("AB", "field 'a_b'", 1))
	testutil.AssertNoError(t, ids.Claim("Other", "field 'other'", 2))

	err := ids.Claim("AB", "field 'aB'", 3)
	testutil.AssertError(t, err)
	testutil.ExpectEq(t, "E6000: Generated identifier 'AB' for field 'aB' collides with field 'a_b'", err.Error())
	testutil.ExpectEq(t, 3, err.(*codegen.Error).Line())
}

func TestArrayWarnings(t *testing.T) {
	t.Parallel()

	file, err := syntax.Parse([]byte("message m {\n\tarray int v = 0;\n\tint w = 1;\n}"))
	testutil.AssertNoError(t, err)

	warnings := codegen.ArrayWarnings(file)
	testutil.ExpectEq(t, 1, len(warnings))
	testutil.ExpectEq(t, uint32(4000), warnings[0].Code())
	testutil.ExpectEq(t, 2, warnings[0].Line())
	testutil.ExpectEq(
		t,
		"W4000: Field 'v' of message 'm' is declared as an array; it is generated as a single value",
		warnings[0].String(),
	)
}

func TestWriter(t *testing.T) {
	t.Parallel()

	w := codegen.NewWriter("  ")
	w.Line("int f(void)")
	w.Block("{", "}", func() {
		w.Linef("return %d;", 1)
		w.Blank()
		w.Line("")
	})
	w.Raw("/* raw */\n")

	testutil.ExpectNoDiff(t, "int f(void)\n{\n  return 1;\n\n\n}\n/* raw */\n", string(w.Bytes()))
}
