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

package schema_test

import (
	"errors"
	"math"
	"testing"

	"go.evrpc.dev/evrpc/internal/testutil"
	"go.evrpc.dev/evrpc/schema"
)

func expectSchemaError(t *testing.T, err error, code uint32, line int) {
	t.Helper()
	testutil.AssertError(t, err)
	var schemaErr *schema.Error
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *schema.Error, got: %T", err)
	}
	testutil.ExpectEq(t, code, schemaErr.Code())
	testutil.ExpectEq(t, line, schemaErr.Line())
}

func TestAddField(t *testing.T) {
	t.Parallel()

	msg := schema.NewMessage("point", 1)
	testutil.AssertNoError(t, msg.AddField(
		schema.NewField("x", schema.Integer{}, 0, 0, 2),
	))
	testutil.AssertNoError(t, msg.AddField(
		schema.NewField("label", schema.String{}, 7, schema.Optional, 3),
	))

	var names []string
	for field := range msg.Fields() {
		names = append(names, field.Name())
	}
	testutil.ExpectSliceEq(t, []string{"x", "label"}, names)

	label := msg.Field("label")
	testutil.ExpectTrue(t, label.Message() == msg)
	testutil.ExpectTrue(t, label.Optional())
	testutil.ExpectFalse(t, label.Array())
	testutil.ExpectEq(t, "string", label.TypeName())
	testutil.ExpectTrue(t, msg.FieldByTag(7) == label)
	testutil.ExpectTrue(t, msg.FieldByTag(1) == nil)
	testutil.ExpectEq(t, uint32(8), msg.MaxTag())
}

func TestAddField_DuplicateTag(t *testing.T) {
	t.Parallel()

	msg := schema.NewMessage("point", 1)
	testutil.AssertNoError(t, msg.AddField(
		schema.NewField("x", schema.Integer{}, 0, 0, 2),
	))
	err := msg.AddField(schema.NewField("y", schema.Integer{}, 0, 0, 3))
	expectSchemaError(t, err, 3000, 3)
	testutil.ExpectMatch(t, `fields 'x' and 'y'`, err.Error())
	testutil.ExpectEq(t, 1, msg.Len())
}

func TestAddField_DuplicateName(t *testing.T) {
	t.Parallel()

	msg := schema.NewMessage("point", 1)
	testutil.AssertNoError(t, msg.AddField(
		schema.NewField("x", schema.Integer{}, 0, 0, 2),
	))
	err := msg.AddField(schema.NewField("x", schema.String{}, 1, 0, 3))
	expectSchemaError(t, err, 3003, 3)
}

func TestVerify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field *schema.Field
		code  uint32
	}{
		{
			name:  "optional_array",
			field: schema.NewField("f", schema.Integer{}, 0, schema.Optional|schema.Array, 4),
			code:  3001,
		},
		{
			name:  "fixed_bytes_no_len",
			field: schema.NewField("f", schema.FixedBytes{}, 0, 0, 4),
			code:  3002,
		},
		{
			name:  "tag_too_large",
			field: schema.NewField("f", schema.Integer{}, math.MaxUint32, 0, 4),
			code:  3006,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			msg := schema.NewMessage("m", 1)
			expectSchemaError(t, msg.AddField(test.field), test.code, 4)
			testutil.ExpectTrue(t, test.field.Message() == nil)
		})
	}

	array := schema.NewField("f", schema.FixedBytes{Len: 4}, 0, schema.Array, 4)
	testutil.ExpectNoError(t, array.Verify())
}

func TestFile(t *testing.T) {
	t.Parallel()

	file := schema.NewFile("test.rpc")
	shape := schema.NewMessage("shape", 1)
	testutil.AssertNoError(t, shape.AddField(
		schema.NewField("loc", schema.NestedMessage{Ref: "point"}, 0, 0, 2),
	))
	testutil.AssertNoError(t, file.AddMessage(shape))
	testutil.AssertNoError(t, file.AddMessage(schema.NewMessage("point", 4)))

	testutil.ExpectNoError(t, file.Resolve())
	testutil.ExpectEq(t, "struct[point]", shape.Field("loc").TypeName())
	testutil.ExpectEq(t, 2, file.Len())

	err := file.AddMessage(schema.NewMessage("point", 9))
	expectSchemaError(t, err, 3004, 9)
}

func TestFile_UnknownReference(t *testing.T) {
	t.Parallel()

	file := schema.NewFile("test.rpc")
	shape := schema.NewMessage("shape", 1)
	testutil.AssertNoError(t, shape.AddField(
		schema.NewField("loc", schema.NestedMessage{Ref: "pointt"}, 0, 0, 2),
	))
	testutil.AssertNoError(t, file.AddMessage(shape))

	err := file.Resolve()
	expectSchemaError(t, err, 3005, 2)
	testutil.ExpectMatch(t, `unknown message 'pointt'`, err.Error())
}

func TestMaxTag_Empty(t *testing.T) {
	t.Parallel()
	testutil.ExpectEq(t, uint32(0), schema.NewMessage("empty", 1).MaxTag())
}
