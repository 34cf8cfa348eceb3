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

// Command evrpcgen-go is the Go backend packaged as a WebAssembly plugin,
// for hosts that run generators in a sandbox. Build it as a WASI reactor:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o evrpcgen-go.wasm
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.evrpc.dev/evrpc/codegen/gogen"
	"go.evrpc.dev/evrpc/codegen/plugin"
)

var errUnknownBuffer = errors.New("Request was not allocated by evrpcgen_allocate")

func main() {}

// generate handles one JSON request, returning the JSON response and the
// status code reported to the host.
func generate(ctx context.Context, requestBuf []byte) ([]byte, uint32) {
	var request plugin.Request
	if err := json.Unmarshal(requestBuf, &request); err != nil {
		return errorResponse(fmt.Errorf("Failed to decode request: %w", err))
	}
	file, err := request.Schema()
	if err != nil {
		return errorResponse(err)
	}
	output, err := gogen.New().Generate(ctx, file, request.Options()...)
	if err != nil {
		return errorResponse(err)
	}
	responseBuf, err := json.Marshal(&plugin.Response{
		Declarations: &plugin.ResponseArtifact{
			Name:    output.Declarations.Name,
			Content: string(output.Declarations.Content),
		},
		Implementation: &plugin.ResponseArtifact{
			Name:    output.Implementation.Name,
			Content: string(output.Implementation.Content),
		},
	})
	if err != nil {
		return errorResponse(err)
	}
	return responseBuf, 0
}

func errorResponse(err error) ([]byte, uint32) {
	responseBuf, _ := json.Marshal(&plugin.Response{Error: err.Error()})
	return responseBuf, 1
}
