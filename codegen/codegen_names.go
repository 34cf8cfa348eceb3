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

package codegen

import (
	"strings"

	"go.evrpc.dev/evrpc/schema"
)

// TagName is the tag constant of a field: "<MESSAGE>_<FIELD>" uppercased.
func TagName(field *schema.Field) string {
	return strings.ToUpper(field.Message().Name() + "_" + field.Name())
}

// MaxTagsName is the sentinel constant that follows a message's tags.
func MaxTagsName(msg *schema.Message) string {
	return strings.ToUpper(msg.Name()) + "_MAX_TAGS"
}

// CamelCase joins the underscore-separated words of name, capitalizing the
// first letter of each: "point_list" becomes "PointList".
func CamelCase(name string) string {
	var buf strings.Builder
	upper := true
	for _, c := range name {
		if c == '_' {
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		buf.WriteRune(c)
	}
	return buf.String()
}

// Identifiers detects generated names that collide. Each name is claimed by
// a description of the schema element that produced it.
type Identifiers struct {
	owners map[string]string
}

func NewIdentifiers() *Identifiers {
	return &Identifiers{
		owners: make(map[string]string),
	}
}

func (ids *Identifiers) Claim(ident, owner string, line int) error {
	if prev, ok := ids.owners[ident]; ok {
		return ErrCollision(ident, owner, prev, line)
	}
	ids.owners[ident] = owner
	return nil
}
