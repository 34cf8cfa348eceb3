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

package main

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.evrpc.dev/evrpc/internal/testutil"
)

type result struct {
	exitCode int
	stdout   string
	stderr   string
}

func runCmd(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	exitCode := run(context.Background(), args, &stdout, &stderr)
	return result{exitCode, stdout.String(), stderr.String()}
}

func writeSchema(t *testing.T, dir, name, src string) string {
	t.Helper()
	schemaPath := filepath.Join(dir, name)
	testutil.AssertNoError(t, os.WriteFile(schemaPath, []byte(src), 0o644))
	return schemaPath
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	testutil.AssertNoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

const pointSchema = `message point {
	int x = 1;
	int y = 2;
}
`

func TestGenerate_Regress(t *testing.T) {
	t.Parallel()
	repo, err := testutil.RepoFS()
	testutil.AssertNoError(t, err)
	src, err := fs.ReadFile(repo, "internal/regress/regress.rpc")
	testutil.AssertNoError(t, err)

	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "regress.rpc", string(src))
	res := runCmd(t, "--color=never", schemaPath)
	testutil.ExpectEq(t, 0, res.exitCode)
	testutil.ExpectEq(t, "", res.stderr)

	for _, name := range []string{"regress.gen.go", "regress_impl.gen.go"} {
		want, err := fs.ReadFile(repo, "internal/regress/"+name)
		testutil.AssertNoError(t, err)
		got, err := os.ReadFile(filepath.Join(dir, name))
		testutil.AssertNoError(t, err)
		testutil.ExpectNoDiff(t, string(want), string(got))
	}
}

func TestGenerate_Subcommand(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "point.rpc", pointSchema)
	outDir := filepath.Join(dir, "out", "geo")

	res := runCmd(t, "generate", "--color=never", "-p", "geo", "-o", outDir, schemaPath)
	testutil.ExpectEq(t, 0, res.exitCode)
	testutil.ExpectSliceEq(t, []string{"point.gen.go", "point_impl.gen.go"}, listDir(t, outDir))

	decl, err := os.ReadFile(filepath.Join(outDir, "point.gen.go"))
	testutil.AssertNoError(t, err)
	testutil.ExpectTrue(t, strings.HasPrefix(string(decl),
		"// Code generated by evrpcgen from point.rpc. DO NOT EDIT.\n\npackage geo\n"))
}

func TestGenerate_C(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "point.rpc", pointSchema)

	res := runCmd(t, "--color=never", "--lang=c", schemaPath)
	testutil.ExpectEq(t, 0, res.exitCode)
	testutil.ExpectSliceEq(t, []string{"point.gen.c", "point.gen.h", "point.rpc"}, listDir(t, dir))

	impl, err := os.ReadFile(filepath.Join(dir, "point.gen.c"))
	testutil.AssertNoError(t, err)
	testutil.ExpectTrue(t, strings.Contains(string(impl), "#include \"point.gen.h\""))
}

func TestGenerate_Warnings(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "list.rpc", "message list {\n\tarray int item = 1;\n}\n")

	res := runCmd(t, "--color=never", schemaPath)
	testutil.ExpectEq(t, 0, res.exitCode)
	testutil.ExpectEq(t,
		schemaPath+":2: W4000: Field 'item' of message 'list' is declared as an array; it is generated as a single value\n",
		res.stderr)
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		file   string
		src    string
		args   []string
		stderr string
	}{
		{
			name:   "duplicate_tag",
			file:   "point.rpc",
			src:    "message point {\n\tint x = 1;\n\tint y = 1;\n}\n",
			stderr: "point.rpc:3: E3000: Duplicate tag 1 in message 'point': fields 'x' and 'y'\n",
		},
		{
			name:   "extension",
			file:   "point.idl",
			src:    pointSchema,
			stderr: "Unrecognized file extension \".idl\" (expected .rpc): ",
		},
		{
			name:   "package_name",
			file:   "point.rpc",
			src:    pointSchema,
			args:   []string{"--package=type"},
			stderr: "point.rpc: E6001: Invalid Go package name \"type\" (set one explicitly)\n",
		},
		{
			name:   "plugin_path",
			file:   "point.rpc",
			src:    pointSchema,
			args:   []string{"--lang=rust", "--plugin-path=" + os.DevNull},
			stderr: "Code generator plugin evrpcgen-rust.wasm not found in plugin path\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			schemaPath := writeSchema(t, dir, tt.file, tt.src)
			args := append([]string{"--color=never"}, tt.args...)
			res := runCmd(t, append(args, schemaPath)...)

			testutil.ExpectEq(t, 1, res.exitCode)
			testutil.ExpectTrue(t, strings.Contains(res.stderr, tt.stderr))
			testutil.ExpectSliceEq(t, []string{tt.file}, listDir(t, dir))
		})
	}
}

func TestGenerate_Usage(t *testing.T) {
	t.Parallel()
	res := runCmd(t, "generate", "--color=never")
	testutil.ExpectEq(t, 1, res.exitCode)
	testutil.ExpectEq(t, "usage: evrpcgen generate [options] FILE.rpc\n", res.stderr)
}

func TestCheck(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "point.rpc", pointSchema)

	res := runCmd(t, "check", "--color=never", schemaPath)
	testutil.ExpectEq(t, 0, res.exitCode)
	testutil.ExpectEq(t, schemaPath+": 1 messages OK\n", res.stdout)
	testutil.ExpectSliceEq(t, []string{"point.rpc"}, listDir(t, dir))
}

func TestCheck_Error(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "point.rpc", "message point {\n\tfloat x = 1;\n}\n")

	res := runCmd(t, "check", "--color=never", schemaPath)
	testutil.ExpectEq(t, 1, res.exitCode)
	testutil.ExpectTrue(t, strings.HasPrefix(res.stderr, schemaPath+":2: E"))
}

func TestColor(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "point.rpc", "message point {\n\tint x = 1;\n\tint x = 2;\n}\n")

	res := runCmd(t, "check", "--color=always", schemaPath)
	testutil.ExpectEq(t, 1, res.exitCode)
	testutil.ExpectTrue(t, strings.HasPrefix(res.stderr, "\x1b["))

	res = runCmd(t, "check", "--color=never", schemaPath)
	testutil.ExpectFalse(t, strings.Contains(res.stderr, "\x1b["))

	res = runCmd(t, "check", "--color=sometimes", schemaPath)
	testutil.ExpectEq(t, 1, res.exitCode)
	testutil.ExpectTrue(t, strings.Contains(res.stderr, "Invalid --color"))
}

func TestVerbose(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "point.rpc", pointSchema)

	res := runCmd(t, "-v", "--color=never", schemaPath)
	testutil.ExpectEq(t, 0, res.exitCode)
	testutil.ExpectTrue(t, strings.Contains(res.stderr, "reading schema"))
	testutil.ExpectTrue(t, strings.Contains(res.stderr, "wrote"))
}

func TestGenerate_WriteFailureLeavesNothing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "point.rpc", pointSchema)
	outDir := filepath.Join(dir, "out")
	blocker := filepath.Join(outDir, "point_impl.gen.go", "keep")
	testutil.AssertNoError(t, os.MkdirAll(blocker, 0o755))

	res := runCmd(t, "--color=never", "-o", outDir, schemaPath)
	testutil.ExpectEq(t, 1, res.exitCode)
	testutil.ExpectSliceEq(t, []string{"point_impl.gen.go"}, listDir(t, outDir))
}
