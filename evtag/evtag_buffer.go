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

package evtag

import (
	"encoding/binary"
	"errors"
	"math"
	"slices"

	"github.com/multiformats/go-varint"
)

const intLen = 4

// Buffer is a byte queue: records are appended at the end and consumed from
// the front. The zero value is an empty buffer ready to use.
type Buffer struct {
	buf []byte
	off int
}

// NewBuffer returns a buffer whose unread content is data. The buffer takes
// ownership of data.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{buf: data}
}

// Len is the number of unread bytes.
func (b *Buffer) Len() int {
	return len(b.buf) - b.off
}

// Bytes returns the unread bytes. The slice aliases the buffer and is valid
// until the next write.
func (b *Buffer) Bytes() []byte {
	return b.buf[b.off:]
}

func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
}

func (b *Buffer) appendUvarint(v uint64) {
	n := varint.UvarintSize(v)
	b.buf = slices.Grow(b.buf, n)
	varint.PutUvarint(b.buf[len(b.buf):len(b.buf)+n], v)
	b.buf = b.buf[:len(b.buf)+n]
}

func (b *Buffer) writeHeader(tag Tag, payloadLen int) {
	b.appendUvarint(uint64(tag))
	b.appendUvarint(uint64(payloadLen))
}

// WriteBytes appends a record with data as its payload.
func (b *Buffer) WriteBytes(tag Tag, data []byte) {
	b.writeHeader(tag, len(data))
	b.buf = append(b.buf, data...)
}

func (b *Buffer) WriteString(tag Tag, s string) {
	b.writeHeader(tag, len(s))
	b.buf = append(b.buf, s...)
}

func (b *Buffer) WriteInt(tag Tag, v uint32) {
	b.writeHeader(tag, intLen)
	b.buf = binary.BigEndian.AppendUint32(b.buf, v)
}

// header decodes the tag and length of the next record without consuming
// it. hdrLen is the encoded size of both varints.
func (b *Buffer) header() (tag Tag, payloadLen int, hdrLen int, err error) {
	data := b.buf[b.off:]
	rawTag, tagLen, err := varint.FromUvarint(data)
	if err != nil {
		return 0, 0, 0, errVarint("tag", err)
	}
	if rawTag > math.MaxUint32 {
		return 0, 0, 0, errMalformed("tag", varint.ErrOverflow)
	}
	rawLen, lenLen, err := varint.FromUvarint(data[tagLen:])
	if err != nil {
		return 0, 0, 0, errVarint("length", err)
	}
	hdrLen = tagLen + lenLen
	if rawLen > uint64(len(data)-hdrLen) {
		return 0, 0, 0, errTruncated("payload", int(min(rawLen, math.MaxInt32)), len(data)-hdrLen)
	}
	return Tag(rawTag), int(rawLen), hdrLen, nil
}

func errVarint(what string, err error) error {
	if errors.Is(err, varint.ErrUnderflow) {
		return errTruncated(what, 1, 0)
	}
	return errMalformed(what, err)
}

// PeekTag decodes the tag of the next record without consuming anything.
// The record must be complete: a header whose payload extends past the end
// of the buffer is reported as truncated.
func (b *Buffer) PeekTag() (Tag, error) {
	tag, _, _, err := b.header()
	return tag, err
}

// PeekLength decodes the payload length of the next record without
// consuming anything.
func (b *Buffer) PeekLength() (int, error) {
	_, payloadLen, _, err := b.header()
	return payloadLen, err
}

// ReadRecord consumes the next record, which must have tag need, and returns
// its payload. The payload aliases the buffer.
func (b *Buffer) ReadRecord(need Tag) ([]byte, error) {
	tag, payloadLen, hdrLen, err := b.header()
	if err != nil {
		return nil, err
	}
	if tag != need {
		return nil, errTagMismatch(need, tag)
	}
	start := b.off + hdrLen
	payload := b.buf[start : start+payloadLen : start+payloadLen]
	b.off = start + payloadLen
	return payload, nil
}

// ReadFixed consumes a record whose payload must be exactly len(dst) bytes
// and copies the payload into dst.
func (b *Buffer) ReadFixed(need Tag, dst []byte) error {
	payloadLen, err := b.peekFor(need)
	if err != nil {
		return err
	}
	if payloadLen != len(dst) {
		return errLengthMismatch(need, len(dst), payloadLen)
	}
	payload, err := b.ReadRecord(need)
	if err != nil {
		return err
	}
	copy(dst, payload)
	return nil
}

// ReadBytes consumes a record and returns a copy of its payload.
func (b *Buffer) ReadBytes(need Tag) ([]byte, error) {
	payload, err := b.ReadRecord(need)
	if err != nil {
		return nil, err
	}
	return append(make([]byte, 0, len(payload)), payload...), nil
}

func (b *Buffer) ReadString(need Tag) (string, error) {
	payload, err := b.ReadRecord(need)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func (b *Buffer) ReadInt(need Tag) (uint32, error) {
	payloadLen, err := b.peekFor(need)
	if err != nil {
		return 0, err
	}
	if payloadLen != intLen {
		return 0, errLengthMismatch(need, intLen, payloadLen)
	}
	payload, err := b.ReadRecord(need)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(payload), nil
}

func (b *Buffer) peekFor(need Tag) (int, error) {
	tag, payloadLen, _, err := b.header()
	if err != nil {
		return 0, err
	}
	if tag != need {
		return 0, errTagMismatch(need, tag)
	}
	return payloadLen, nil
}

// WriteMessage marshals msg into a scratch buffer and appends the result as
// the payload of a single record. A nil message pointer yields an empty
// payload.
func (b *Buffer) WriteMessage(tag Tag, msg Message) {
	var scratch Buffer
	msg.MarshalTo(&scratch)
	b.WriteBytes(tag, scratch.Bytes())
}

// ReadMessage consumes one record and decodes its whole payload into msg.
func (b *Buffer) ReadMessage(need Tag, msg Message) error {
	payload, err := b.ReadRecord(need)
	if err != nil {
		return err
	}
	return msg.UnmarshalFrom(NewBuffer(payload))
}
