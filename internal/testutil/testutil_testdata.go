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

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"go.evrpc.dev/evrpc/schema"
)

// RepoFS opens the repository root, for tests that compare against checked
// in sources.
func RepoFS() (fs.FS, error) {
	return openRepoDir(".")
}

// TestdataFS opens the repository's top-level testdata directory.
func TestdataFS() (fs.FS, error) {
	return openRepoDir("testdata")
}

func openRepoDir(name string) (fs.FS, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("testutil: cannot locate source file")
	}
	dir := filepath.Join(filepath.Dir(file), "..", "..", name)
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	return os.DirFS(dir), nil
}

type Diagnostic struct {
	Key     string
	Code    uint32
	Message string
	Pattern *regexp.Regexp
}

// LoadDiagnostics reads the table of known error and warning codes. Keys
// starting with '_' reserve a code without naming a diagnostic.
func LoadDiagnostics(testdata fs.FS) (map[string]*Diagnostic, error) {
	type raw struct {
		Code    uint32 `json:"code"`
		Message string `json:"message"`
		Pattern string `json:"message_pattern"`
	}

	jsonData, err := fs.ReadFile(testdata, "diagnostics/diagnostics.json")
	if err != nil {
		return nil, err
	}

	var rawDiagnostics map[string]raw
	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.UseNumber()
	if err := decoder.Decode(&rawDiagnostics); err != nil {
		return nil, err
	}

	out := make(map[string]*Diagnostic, len(rawDiagnostics))
	codes := make(map[uint32]struct{}, len(rawDiagnostics))
	for key, raw := range rawDiagnostics {
		if key[0] == '_' {
			if raw.Code != 0 {
				if _, conflict := codes[raw.Code]; conflict {
					return nil, fmt.Errorf("duplicate diagnostic code %d", raw.Code)
				}
				codes[raw.Code] = struct{}{}
			}
			continue
		}

		if raw.Code == 0 {
			return nil, fmt.Errorf("diagnostic %q has no code", key)
		}
		if _, conflict := codes[raw.Code]; conflict {
			return nil, fmt.Errorf("duplicate diagnostic code %d", raw.Code)
		}
		codes[raw.Code] = struct{}{}

		var pattern *regexp.Regexp
		if raw.Pattern != "" {
			pattern, err = regexp.Compile("(?i)" + raw.Pattern)
			if err != nil {
				return nil, err
			}
		}
		out[key] = &Diagnostic{
			Key:     key,
			Code:    raw.Code,
			Message: raw.Message,
			Pattern: pattern,
		}
	}

	return out, nil
}

type ExpectedError struct {
	Diagnostic
	Line int
}

func LoadExpectedError(
	t *testing.T,
	diagnostics map[string]*Diagnostic,
	testdata fs.FS,
	jsonPath string,
) *ExpectedError {
	t.Helper()

	jsonData, err := fs.ReadFile(testdata, jsonPath)
	if err != nil {
		t.Fatal(err)
	}

	var raw struct {
		Error string `json:"error"`
		Line  int    `json:"line"`
	}
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		t.Fatal(err)
	}

	diag, ok := diagnostics[raw.Error]
	if !ok {
		t.Fatalf("unknown diagnostic name %q", raw.Error)
	}
	return &ExpectedError{
		Diagnostic: *diag,
		Line:       raw.Line,
	}
}

// CheckError compares err against an expected diagnostic. err must carry
// Code, Message, and Line accessors.
func CheckError(t *testing.T, want *ExpectedError, err error) {
	t.Helper()
	AssertError(t, err)
	got, ok := err.(interface {
		Code() uint32
		Message() string
		Line() int
	})
	if !ok {
		t.Fatalf("Expected (diagnostic error), got: %T %v", err, err)
	}
	if got.Code() != want.Code {
		t.Errorf("Expected error %q (code %d), got: %v", want.Key, want.Code, err)
	}
	if want.Message != "" {
		ExpectEq(t, want.Message, got.Message())
	}
	if want.Pattern != nil {
		ExpectMatch(t, want.Pattern, got.Message())
	}
	if want.Line != 0 {
		ExpectEq(t, want.Line, got.Line())
	}
}

// DumpSchema renders a parsed file in a stable text form for golden tests.
func DumpSchema(file *schema.File) string {
	var buf strings.Builder
	for _, directive := range file.Directives() {
		fmt.Fprintf(&buf, "%d: %s\n", directive.Line, directive.Text)
	}
	for msg := range file.Messages() {
		fmt.Fprintf(&buf, "%d: message %s (max_tags %d)\n", msg.Line(), msg.Name(), msg.MaxTag())
		for field := range msg.Fields() {
			fmt.Fprintf(&buf, "%d:\t", field.Line())
			if mods := field.Modifiers().String(); mods != "" {
				fmt.Fprintf(&buf, "%s ", mods)
			}
			fmt.Fprintf(&buf, "%s %s", field.TypeName(), field.Name())
			if fixed, ok := field.Kind().(schema.FixedBytes); ok {
				fmt.Fprintf(&buf, "[%d]", fixed.Len)
			}
			fmt.Fprintf(&buf, " = %d (%T)\n", field.Tag(), field.Kind())
		}
	}
	return buf.String()
}
