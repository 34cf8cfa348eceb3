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

package syntax_test

import (
	"bytes"
	"fmt"
	"io/fs"
	"testing"

	"github.com/rs/zerolog"

	"go.evrpc.dev/evrpc/internal/testutil"
	"go.evrpc.dev/evrpc/schema"
	"go.evrpc.dev/evrpc/syntax"
)

var (
	testdata    fs.FS
	diagnostics map[string]*testutil.Diagnostic
)

func init() {
	var err error
	testdata, err = testutil.TestdataFS()
	if err != nil {
		panic(err)
	}
	diagnostics, err = testutil.LoadDiagnostics(testdata)
	if err != nil {
		panic(err)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(testdata, "syntax")
	testutil.AssertNoError(t, err)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		testName := entry.Name()
		t.Run(testName, func(t *testing.T) {
			t.Parallel()
			parseTest(t, testName)
		})
	}
}

func parseTest(t *testing.T, testName string) {
	inputPath := fmt.Sprintf("syntax/%s/input.rpc", testName)
	t.Logf("reading test input from %q", "testdata/"+inputPath)
	src, err := fs.ReadFile(testdata, inputPath)
	testutil.AssertNoError(t, err)

	file, parseErr := syntax.Parse(src, syntax.WithSourceName(testName+".rpc"))

	expectErr := fmt.Sprintf("syntax/%s/expect_err.json", testName)
	if _, err := fs.Stat(testdata, expectErr); err == nil {
		want := testutil.LoadExpectedError(t, diagnostics, testdata, expectErr)
		testutil.CheckError(t, want, parseErr)
		return
	}

	testutil.AssertNoError(t, parseErr)
	testutil.ExpectEq(t, testName+".rpc", file.Name())
	expectOK, err := fs.ReadFile(testdata, fmt.Sprintf("syntax/%s/expect_ok.txt", testName))
	testutil.AssertNoError(t, err)
	testutil.ExpectNoDiff(t, string(expectOK), testutil.DumpSchema(file))
}

func TestParse_SchemaError(t *testing.T) {
	t.Parallel()

	src := []byte("message point {\n\tint x = 0;\n\tint y = 0;\n}\n")
	_, err := syntax.Parse(src)
	testutil.AssertError(t, err)
	schemaErr, ok := err.(*schema.Error)
	if !ok {
		t.Fatalf("Expected *schema.Error, got: %T", err)
	}
	testutil.ExpectEq(t, "E3000: Duplicate tag 0 in message 'point': fields 'x' and 'y'", schemaErr.Error())
}

func TestParse_DeclarationInMessage(t *testing.T) {
	t.Parallel()

	src := []byte("message a {\n\tint   x /* c */ = ;\n}\n")
	_, err := syntax.Parse(src)
	testutil.AssertError(t, err)
	testutil.ExpectEq(t,
		`E2011: Expected tag number, got (SEMICOLON ";") in "int x ="`,
		err.Error(),
	)
}

func TestParse_Logger(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	src := []byte("message point { int x = 0; }\n")
	_, err := syntax.Parse(src, syntax.WithLogger(logger))
	testutil.AssertNoError(t, err)

	testutil.ExpectNoDiff(t, ""+
		`{"level":"debug","msg":"point","line":1,"message":"created message"}`+"\n"+
		`{"level":"debug","msg":"point","field":"x","type":"int","tag":0,"line":1,"message":"added field"}`+"\n",
		logs.String(),
	)
}
