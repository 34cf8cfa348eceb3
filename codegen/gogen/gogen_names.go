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

package gogen

import (
	"fmt"
	"strings"

	"go.evrpc.dev/evrpc/codegen"
	"go.evrpc.dev/evrpc/schema"
)

type messageNames struct {
	typeName string
	newFunc  string
	poolVar  string
}

type fieldNames struct {
	accessor string
	tag      string
	data     string
	set      string
}

type names struct {
	messages map[*schema.Message]*messageNames
	fields   map[*schema.Field]*fieldNames
}

// Methods present on every generated type. Field accessors must not shadow
// them.
var fixedMethods = []string{
	"Free",
	"Clear",
	"MarshalTo",
	"UnmarshalFrom",
	"Complete",
	"MarshalEnvelope",
	"UnmarshalEnvelope",
	"MarshalBinary",
	"UnmarshalBinary",
}

func assignNames(file *schema.File) (*names, error) {
	out := &names{
		messages: make(map[*schema.Message]*messageNames),
		fields:   make(map[*schema.Field]*fieldNames),
	}
	pkgScope := codegen.NewIdentifiers()
	for msg := range file.Messages() {
		typeName := codegen.CamelCase(msg.Name())
		msgNames := &messageNames{
			typeName: typeName,
			newFunc:  "New" + typeName,
			poolVar:  strings.ToLower(typeName[:1]) + typeName[1:] + "Pool",
		}
		owner := fmt.Sprintf("message '%s'", msg.Name())
		for _, ident := range []string{
			msgNames.typeName,
			msgNames.newFunc,
			msgNames.poolVar,
			codegen.MaxTagsName(msg),
		} {
			if err := pkgScope.Claim(ident, owner, msg.Line()); err != nil {
				return nil, err
			}
		}
		out.messages[msg] = msgNames

		methods := codegen.NewIdentifiers()
		for _, method := range fixedMethods {
			if err := methods.Claim(method, "a generated method", 0); err != nil {
				return nil, err
			}
		}
		for field := range msg.Fields() {
			accessor := codegen.CamelCase(field.Name())
			fNames := &fieldNames{
				accessor: accessor,
				tag:      codegen.TagName(field),
				data:     field.Name() + "_data",
				set:      field.Name() + "_set",
			}
			owner := fmt.Sprintf("field '%s' of message '%s'", field.Name(), msg.Name())
			if err := pkgScope.Claim(fNames.tag, owner, field.Line()); err != nil {
				return nil, err
			}
			for _, prefix := range []string{"Get", "Set", "Has"} {
				if err := methods.Claim(prefix+accessor, owner, field.Line()); err != nil {
					return nil, err
				}
			}
			out.fields[field] = fNames
		}
	}
	return out, nil
}
