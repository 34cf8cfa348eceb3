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

// Package plugin runs code generators compiled to WebAssembly.
//
// A plugin for language L is a module named "evrpcgen-L.wasm" that exports
// its linear memory and two functions:
//
//	evrpcgen_allocate(size u32) -> ptr u32
//	evrpcgen_generate(req_ptr u32, req_len u32, resp_ptr_ptr u32) -> rc u32
//
// The host allocates req_len bytes, writes a JSON [Request] there, and calls
// evrpcgen_generate. The plugin stores a pointer to its response at
// resp_ptr_ptr. The response is a little-endian u32 length followed by a
// JSON [Response]. A non-zero rc means the response carries an error.
//
// Plugins may import WASI. Modules built as reactors have their
// "_initialize" export run before the first call.
package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	wasm "github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"go.evrpc.dev/evrpc/codegen"
	"go.evrpc.dev/evrpc/schema"
)

// PathEnv names the environment variable searched when no explicit plugin
// path is given.
const PathEnv = "EVRPCGEN_PLUGIN_PATH"

const (
	exportAllocate = "evrpcgen_allocate"
	exportGenerate = "evrpcgen_generate"

	// 1 GiB of linear memory.
	memoryLimitPages = 16384
)

type Generator struct {
	language   string
	modulePath string
}

var _ codegen.Generator = (*Generator)(nil)

// New returns a generator backed by the WebAssembly module at modulePath.
func New(language, modulePath string) *Generator {
	return &Generator{
		language:   language,
		modulePath: modulePath,
	}
}

func (g *Generator) Language() string {
	return g.language
}

// Locate searches a colon-separated list of directories for the plugin of
// the given language. An empty searchPath falls back to $EVRPCGEN_PLUGIN_PATH.
func Locate(language, searchPath string) (string, error) {
	if searchPath == "" {
		searchPath = os.Getenv(PathEnv)
	}
	if searchPath == "" {
		return "", fmt.Errorf("No plugin path set, use --plugin-path= or $%s", PathEnv)
	}
	basename := fmt.Sprintf("evrpcgen-%s.wasm", language)
	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			continue
		}
		modulePath := filepath.Join(dir, basename)
		if _, err := os.Stat(modulePath); err == nil {
			return modulePath, nil
		}
	}
	return "", fmt.Errorf("Code generator plugin %s not found in plugin path", basename)
}

func (g *Generator) Generate(
	ctx context.Context,
	file *schema.File,
	opts ...codegen.Option,
) (*codegen.Output, error) {
	options := codegen.NewOptions(file, opts...)
	requestBuf, err := json.Marshal(NewRequest(file, options))
	if err != nil {
		return nil, err
	}
	moduleBin, err := os.ReadFile(g.modulePath)
	if err != nil {
		return nil, err
	}
	responseBuf, rc, err := call(ctx, moduleBin, requestBuf)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", filepath.Base(g.modulePath), err)
	}
	return decodeResponse(responseBuf, rc, file)
}

// call runs one generation request in a fresh module instance.
func call(ctx context.Context, moduleBin, requestBuf []byte) ([]byte, uint32, error) {
	runtimeConfig := wasm.NewRuntimeConfigInterpreter()
	runtimeConfig = runtimeConfig.WithMemoryLimitPages(memoryLimitPages)
	runtime := wasm.NewRuntimeWithConfig(ctx, runtimeConfig)
	defer runtime.Close(ctx)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
		return nil, 0, err
	}
	compiled, err := runtime.CompileModule(ctx, moduleBin)
	if err != nil {
		return nil, 0, err
	}
	moduleConfig := wasm.NewModuleConfig().WithStartFunctions("_initialize")
	module, err := runtime.InstantiateModule(ctx, compiled, moduleConfig)
	if err != nil {
		return nil, 0, err
	}
	mem := module.Memory()
	if mem == nil {
		return nil, 0, fmt.Errorf("module does not export its memory")
	}
	allocate := module.ExportedFunction(exportAllocate)
	generate := module.ExportedFunction(exportGenerate)
	if allocate == nil || generate == nil {
		return nil, 0, fmt.Errorf("module must export %s and %s", exportAllocate, exportGenerate)
	}

	results, err := allocate.Call(ctx, uint64(len(requestBuf)))
	if err != nil {
		return nil, 0, err
	}
	requestPtr := uint32(results[0])
	if !mem.Write(requestPtr, requestBuf) {
		return nil, 0, fmt.Errorf("request of %d bytes does not fit at 0x%X", len(requestBuf), requestPtr)
	}

	results, err = allocate.Call(ctx, 4)
	if err != nil {
		return nil, 0, err
	}
	responsePtrPtr := uint32(results[0])

	results, err = generate.Call(ctx, uint64(requestPtr), uint64(len(requestBuf)), uint64(responsePtrPtr))
	if err != nil {
		return nil, 0, err
	}
	rc := uint32(results[0])

	responsePtr, ok := mem.ReadUint32Le(responsePtrPtr)
	if !ok {
		return nil, 0, fmt.Errorf("Failed to read response pointer")
	}
	responseLen, ok := mem.ReadUint32Le(responsePtr)
	if !ok {
		return nil, 0, fmt.Errorf("Failed to read response message length")
	}
	view, ok := mem.Read(responsePtr+4, responseLen)
	if !ok {
		return nil, 0, fmt.Errorf("Failed to read response message")
	}
	// Read returns a view of guest memory, which is gone once the runtime
	// closes.
	return append([]byte(nil), view...), rc, nil
}

func decodeResponse(buf []byte, rc uint32, file *schema.File) (*codegen.Output, error) {
	var response Response
	if err := json.Unmarshal(buf, &response); err != nil {
		return nil, fmt.Errorf("Failed to decode plugin response: %w", err)
	}
	if rc != 0 || response.Error != "" {
		msg := strings.TrimSpace(response.Error)
		if msg == "" {
			msg = fmt.Sprintf("plugin failed with code %d", rc)
		}
		return nil, &pluginError{msg}
	}
	for _, artifact := range []*ResponseArtifact{response.Declarations, response.Implementation} {
		if artifact == nil {
			return nil, fmt.Errorf("Plugin did not generate both output files")
		}
		if err := checkArtifactName(artifact.Name); err != nil {
			return nil, err
		}
	}
	return &codegen.Output{
		Declarations: codegen.Artifact{
			Name:    response.Declarations.Name,
			Content: []byte(response.Declarations.Content),
		},
		Implementation: codegen.Artifact{
			Name:    response.Implementation.Name,
			Content: []byte(response.Implementation.Content),
		},
		Warnings: codegen.ArrayWarnings(file),
	}, nil
}

// Plugins may only name files directly inside the output directory.
func checkArtifactName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("Invalid output file name %q", name)
	}
	if strings.ContainsAny(name, `/\`) || filepath.IsAbs(name) {
		return fmt.Errorf("Invalid output file name %q: must not contain a directory", name)
	}
	return nil
}

type pluginError struct {
	message string
}

func (err *pluginError) Error() string {
	return err.message
}
