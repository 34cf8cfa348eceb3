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

package regress_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.evrpc.dev/evrpc/evtag"
	"go.evrpc.dev/evrpc/internal/regress"
	"go.evrpc.dev/evrpc/internal/testutil"
)

var allowUnexported = cmp.AllowUnexported(regress.Point{}, regress.Shape{}, regress.Attr{})

func expectErrorIs(t *testing.T, target, err error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("Expected (errors.Is(err, %v)), got: %v", target, err)
	}
}

func newPoint(t *testing.T, x, y uint32) *regress.Point {
	t.Helper()
	p := regress.NewPoint()
	p.SetX(x)
	p.SetY(y)
	return p
}

func newShape(t *testing.T) *regress.Shape {
	t.Helper()
	s := regress.NewShape()
	testutil.AssertNoError(t, s.SetLoc(newPoint(t, 1, 2)))
	s.SetId([16]byte{0: 0xAA, 15: 0xBB})
	attr := s.GetAttr()
	attr.SetKey("color")
	attr.SetValue([]byte("blue"))
	attr.SetDigest([4]byte{1, 2, 3, 4})
	return s
}

func TestPoint_Wire(t *testing.T) {
	t.Parallel()

	p := newPoint(t, 1, 0x0102)
	var b evtag.Buffer
	p.MarshalTo(&b)
	testutil.ExpectBytesEq(t, []byte{
		0, 4, 0, 0, 0, 1,
		1, 4, 0, 0, 1, 2,
	}, b.Bytes())

	p.SetLabel("a")
	b.Reset()
	p.MarshalTo(&b)
	testutil.ExpectBytesEq(t, []byte{
		0, 4, 0, 0, 0, 1,
		1, 4, 0, 0, 1, 2,
		2, 1, 'a',
	}, b.Bytes())
}

func TestPoint_Accessors(t *testing.T) {
	t.Parallel()

	p := regress.NewPoint()
	defer p.Free()

	testutil.ExpectFalse(t, p.HasLabel())
	_, err := p.GetLabel()
	expectErrorIs(t, evtag.ErrUnsetField, err)
	testutil.ExpectEq(t, "E5007: Field 'label' of message 'point' is not set", err.Error())

	p.SetLabel("origin")
	label, err := p.GetLabel()
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "origin", label)
	testutil.ExpectTrue(t, p.HasLabel())

	expectErrorIs(t, evtag.ErrIncomplete, p.Complete())
	p.SetX(3)
	p.SetY(4)
	testutil.ExpectNoError(t, p.Complete())
}

func TestShape_RoundTrip(t *testing.T) {
	t.Parallel()

	s := newShape(t)
	testutil.AssertNoError(t, s.SetOrigin(newPoint(t, 0, 0)))
	s.SetPayload([]byte{0xDE, 0xAD})
	s.GetAttr().SetWeight(9)

	data, err := s.MarshalBinary()
	testutil.AssertNoError(t, err)

	got := regress.NewShape()
	testutil.AssertNoError(t, got.UnmarshalBinary(data))
	testutil.ExpectCmpEq(t, s, got, allowUnexported)

	payload, err := got.GetPayload()
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{0xDE, 0xAD}, payload)
	weight, err := got.GetAttr().GetWeight()
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, uint32(9), weight)
}

func TestShape_OptionalOmitted(t *testing.T) {
	t.Parallel()

	s := newShape(t)
	data, err := s.MarshalBinary()
	testutil.AssertNoError(t, err)

	got := regress.NewShape()
	testutil.AssertNoError(t, got.UnmarshalBinary(data))
	testutil.ExpectFalse(t, got.HasOrigin())
	testutil.ExpectFalse(t, got.HasPayload())
	testutil.ExpectTrue(t, got.GetAttr().HasDigest())
	testutil.ExpectFalse(t, got.GetAttr().HasWeight())
	testutil.ExpectCmpEq(t, s, got, allowUnexported)
}

func TestShape_Incomplete(t *testing.T) {
	t.Parallel()

	s := regress.NewShape()
	_, err := s.MarshalBinary()
	testutil.ExpectEq(t, "E5006: Required field 'loc' of message 'shape' is not set", err.Error())

	// A nested message created by its getter is set but still empty.
	s = newShape(t)
	s.GetAttr().Clear()
	_, err = s.MarshalBinary()
	testutil.ExpectEq(t, "E5006: Required field 'key' of message 'attr' is not set", err.Error())

	// Optional nested messages are checked only when present.
	s = newShape(t)
	s.GetOrigin()
	_, err = s.MarshalBinary()
	testutil.ExpectEq(t, "E5006: Required field 'x' of message 'point' is not set", err.Error())
}

func TestShape_SetNestedCopies(t *testing.T) {
	t.Parallel()

	src := newPoint(t, 5, 6)
	s := regress.NewShape()
	testutil.AssertNoError(t, s.SetLoc(src))

	src.SetX(100)
	x, err := s.GetLoc().GetX()
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, uint32(5), x)

	// Assigning the stored value to itself keeps it intact.
	testutil.AssertNoError(t, s.SetLoc(s.GetLoc()))
	x, err = s.GetLoc().GetX()
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, uint32(5), x)
}

func TestShape_SetNestedRollback(t *testing.T) {
	t.Parallel()

	s := regress.NewShape()
	testutil.AssertNoError(t, s.SetLoc(newPoint(t, 1, 1)))

	incomplete := regress.NewPoint()
	incomplete.SetX(1)
	err := s.SetLoc(incomplete)
	expectErrorIs(t, evtag.ErrIncomplete, err)
	testutil.ExpectFalse(t, s.HasLoc())
}

func TestUnmarshal_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   []byte
		target error
		msg    string
	}{
		{
			name: "duplicate_tag",
			data: []byte{
				0, 4, 0, 0, 0, 1,
				1, 4, 0, 0, 0, 2,
				0, 4, 0, 0, 0, 3,
			},
			target: evtag.ErrDuplicateTag,
			msg:    "E5005: Duplicate tag 0 in message 'point'",
		},
		{
			name:   "unknown_tag",
			data:   []byte{7, 0},
			target: evtag.ErrUnknownTag,
			msg:    "E5004: Unknown tag 7 in message 'point'",
		},
		{
			name:   "missing_required",
			data:   []byte{0, 4, 0, 0, 0, 1},
			target: evtag.ErrIncomplete,
			msg:    "E5006: Required field 'y' of message 'point' is not set",
		},
		{
			name:   "short_int",
			data:   []byte{0, 2, 0, 1},
			target: evtag.ErrLengthMismatch,
		},
		{
			name:   "truncated",
			data:   []byte{0, 4, 0, 0},
			target: evtag.ErrTruncated,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := regress.NewPoint()
			defer p.Free()
			err := p.UnmarshalBinary(test.data)
			expectErrorIs(t, test.target, err)
			if test.msg != "" {
				testutil.ExpectEq(t, test.msg, err.Error())
			}
		})
	}
}

func TestUnmarshal_FixedLength(t *testing.T) {
	t.Parallel()

	var b evtag.Buffer
	b.WriteString(regress.ATTR_KEY, "k")
	b.WriteBytes(regress.ATTR_VALUE, nil)
	b.WriteBytes(regress.ATTR_DIGEST, []byte{1, 2, 3})

	attr := regress.NewAttr()
	defer attr.Free()
	expectErrorIs(t, evtag.ErrLengthMismatch, attr.UnmarshalFrom(&b))
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := newShape(t)
	s.SetPayload([]byte{1})
	s.Clear()
	testutil.ExpectCmpEq(t, &regress.Shape{}, s, allowUnexported)

	s.Clear()
	testutil.ExpectCmpEq(t, &regress.Shape{}, s, allowUnexported)
	expectErrorIs(t, evtag.ErrIncomplete, s.Complete())
	s.Free()
}

func TestNilReceiver(t *testing.T) {
	t.Parallel()

	var p *regress.Point
	var b evtag.Buffer
	p.MarshalTo(&b)
	testutil.ExpectEq(t, 0, b.Len())

	expectErrorIs(t, evtag.ErrIncomplete, p.Complete())
	_, err := p.MarshalBinary()
	expectErrorIs(t, evtag.ErrIncomplete, err)
}

func TestEnvelope(t *testing.T) {
	t.Parallel()

	const envelopeTag = evtag.Tag(42)

	p := newPoint(t, 7, 8)
	var b evtag.Buffer
	p.MarshalEnvelope(&b, envelopeTag)

	length, err := b.PeekLength()
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 12, length)

	got := regress.NewPoint()
	err = got.UnmarshalEnvelope(&b, evtag.Tag(41))
	expectErrorIs(t, evtag.ErrTagMismatch, err)

	testutil.AssertNoError(t, got.UnmarshalEnvelope(&b, envelopeTag))
	testutil.ExpectEq(t, 0, b.Len())
	testutil.ExpectCmpEq(t, p, got, allowUnexported)
}

func TestMaxTags(t *testing.T) {
	t.Parallel()

	testutil.ExpectEq(t, evtag.Tag(3), regress.POINT_MAX_TAGS)
	testutil.ExpectEq(t, evtag.Tag(5), regress.SHAPE_MAX_TAGS)
	testutil.ExpectEq(t, evtag.Tag(5), regress.ATTR_MAX_TAGS)
}
