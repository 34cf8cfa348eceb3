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

//go:build wasip1

package main

import (
	"context"
	"encoding/binary"
	"unsafe"
)

// Buffers handed to the host stay reachable until the instance is discarded.
var buffers = make(map[uint32][]byte)

func keep(buf []byte) uint32 {
	ptr := uint32(uintptr(unsafe.Pointer(unsafe.SliceData(buf))))
	buffers[ptr] = buf
	return ptr
}

//go:wasmexport evrpcgen_allocate
func evrpcgenAllocate(size uint32) uint32 {
	return keep(make([]byte, max(size, 1)))
}

//go:wasmexport evrpcgen_generate
func evrpcgenGenerate(requestPtr, requestLen, responsePtrPtr uint32) uint32 {
	responsePtrBuf := buffers[responsePtrPtr]
	if len(responsePtrBuf) < 4 {
		return 2
	}
	var response []byte
	var rc uint32
	if requestBuf := buffers[requestPtr]; uint32(len(requestBuf)) >= requestLen {
		response, rc = generate(context.Background(), requestBuf[:requestLen])
	} else {
		response, rc = errorResponse(errUnknownBuffer)
	}

	framed := make([]byte, 4+len(response))
	binary.LittleEndian.PutUint32(framed, uint32(len(response)))
	copy(framed[4:], response)
	binary.LittleEndian.PutUint32(responsePtrBuf, keep(framed))
	return rc
}
