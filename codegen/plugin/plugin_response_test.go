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

package plugin

import (
	"testing"

	"go.evrpc.dev/evrpc/internal/testutil"
	"go.evrpc.dev/evrpc/syntax"
)

func TestDecodeResponse(t *testing.T) {
	t.Parallel()

	file, err := syntax.Parse([]byte("message m { array int v = 0; }"))
	testutil.AssertNoError(t, err)

	out, err := decodeResponse([]byte(`{
		"declarations": {"name": "m.gen.rs", "content": "// decl\n"},
		"implementation": {"name": "m_impl.gen.rs", "content": "// impl\n"}
	}`), 0, file)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "m.gen.rs", out.Declarations.Name)
	testutil.ExpectEq(t, "// impl\n", string(out.Implementation.Content))
	testutil.ExpectEq(t, 1, len(out.Warnings))

	tests := []struct {
		name string
		buf  string
		rc   uint32
		want string
	}{
		{"error", `{"error": "unsupported kind\n"}`, 1, "unsupported kind"},
		{"rc_only", `{}`, 3, "plugin failed with code 3"},
		{"not_json", `{`, 0, "Failed to decode plugin response: unexpected end of JSON input"},
		{"missing_artifact", `{"declarations": {"name": "a", "content": ""}}`, 0, "Plugin did not generate both output files"},
		{
			"directory",
			`{"declarations": {"name": "../a", "content": ""}, "implementation": {"name": "b", "content": ""}}`,
			0,
			`Invalid output file name "../a": must not contain a directory`,
		},
		{
			"dot",
			`{"declarations": {"name": "a", "content": ""}, "implementation": {"name": "..", "content": ""}}`,
			0,
			`Invalid output file name ".."`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := decodeResponse([]byte(test.buf), test.rc, file)
			testutil.AssertError(t, err)
			testutil.ExpectEq(t, test.want, err.Error())
		})
	}
}
