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

package evtag_test

import (
	"errors"
	"testing"

	"go.evrpc.dev/evrpc/evtag"
	"go.evrpc.dev/evrpc/internal/testutil"
)

func expectErrorIs(t *testing.T, target, err error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("Expected (errors.Is(err, %v)), got: %v", target, err)
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	var b evtag.Buffer
	b.WriteInt(1, 0x01020304)
	b.WriteString(2, "hi")
	b.WriteBytes(300, []byte{0xFF})

	testutil.ExpectBytesEq(t, []byte{
		1, 4, 0x01, 0x02, 0x03, 0x04,
		2, 2, 'h', 'i',
		0xAC, 0x02, 1, 0xFF,
	}, b.Bytes())
	testutil.ExpectEq(t, 14, b.Len())
}

func TestRead(t *testing.T) {
	t.Parallel()

	var b evtag.Buffer
	b.WriteInt(1, 0xCAFE)
	b.WriteString(2, "hello")
	b.WriteBytes(3, []byte{1, 2, 3})
	b.WriteBytes(4, []byte{9, 8})

	tag, err := b.PeekTag()
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, evtag.Tag(1), tag)

	n, err := b.ReadInt(1)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, uint32(0xCAFE), n)

	length, err := b.PeekLength()
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 5, length)

	s, err := b.ReadString(2)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "hello", s)

	var fixed [3]byte
	testutil.AssertNoError(t, b.ReadFixed(3, fixed[:]))
	testutil.ExpectBytesEq(t, []byte{1, 2, 3}, fixed[:])

	data, err := b.ReadBytes(4)
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{9, 8}, data)

	testutil.ExpectEq(t, 0, b.Len())
	_, err = b.PeekTag()
	expectErrorIs(t, evtag.ErrTruncated, err)
}

func TestReadBytes_Copies(t *testing.T) {
	t.Parallel()

	b := evtag.NewBuffer([]byte{7, 2, 'a', 'b'})
	data, err := b.ReadBytes(7)
	testutil.AssertNoError(t, err)
	b.Reset()
	b.WriteBytes(7, []byte("zz"))
	testutil.ExpectBytesEq(t, []byte("ab"), data)
}

func TestMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  []byte
		read   func(b *evtag.Buffer) error
		target error
	}{
		{
			name:  "truncated_tag",
			input: []byte{0x80},
			read: func(b *evtag.Buffer) error {
				_, err := b.PeekTag()
				return err
			},
			target: evtag.ErrTruncated,
		},
		{
			name:  "truncated_length",
			input: []byte{1},
			read: func(b *evtag.Buffer) error {
				_, err := b.ReadInt(1)
				return err
			},
			target: evtag.ErrTruncated,
		},
		{
			name:  "truncated_payload",
			input: []byte{1, 4, 0, 0},
			read: func(b *evtag.Buffer) error {
				_, err := b.ReadInt(1)
				return err
			},
			target: evtag.ErrTruncated,
		},
		{
			name:  "non_minimal_tag",
			input: []byte{0x81, 0x00, 0},
			read: func(b *evtag.Buffer) error {
				_, err := b.PeekTag()
				return err
			},
			target: evtag.ErrMalformed,
		},
		{
			name:  "tag_overflow",
			input: []byte{0x80, 0x80, 0x80, 0x80, 0x10, 0},
			read: func(b *evtag.Buffer) error {
				_, err := b.PeekTag()
				return err
			},
			target: evtag.ErrMalformed,
		},
		{
			name:  "tag_mismatch",
			input: []byte{2, 0},
			read: func(b *evtag.Buffer) error {
				_, err := b.ReadString(1)
				return err
			},
			target: evtag.ErrTagMismatch,
		},
		{
			name:  "short_int",
			input: []byte{1, 3, 0, 0, 1},
			read: func(b *evtag.Buffer) error {
				_, err := b.ReadInt(1)
				return err
			},
			target: evtag.ErrLengthMismatch,
		},
		{
			name:  "fixed_len",
			input: []byte{1, 2, 0, 0},
			read: func(b *evtag.Buffer) error {
				var dst [4]byte
				return b.ReadFixed(1, dst[:])
			},
			target: evtag.ErrLengthMismatch,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := evtag.NewBuffer(test.input)
			err := test.read(b)
			testutil.AssertError(t, err)
			expectErrorIs(t, test.target, err)
			testutil.ExpectEq(t, len(test.input), b.Len())
		})
	}
}

func TestErrorIs(t *testing.T) {
	t.Parallel()

	err := evtag.DuplicateTagError("point", 1)
	expectErrorIs(t, evtag.ErrDuplicateTag, err)
	testutil.ExpectFalse(t, errors.Is(err, evtag.ErrUnknownTag))
	testutil.ExpectEq(t, "E5005: Duplicate tag 1 in message 'point'", err.Error())

	expectErrorIs(t, evtag.ErrUnknownTag, evtag.UnknownTagError("point", 9))
	expectErrorIs(t, evtag.ErrIncomplete, evtag.IncompleteError("point", "x"))
	expectErrorIs(t, evtag.ErrUnsetField, evtag.UnsetFieldError("point", "x"))
}
