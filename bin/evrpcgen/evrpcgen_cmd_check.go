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

package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"go.evrpc.dev/evrpc/codegen"
)

type cmdCheck struct{}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check FILE.rpc",
		summary: "Parse and validate a schema without generating code",
	}
}

func (*cmdCheck) flags(flags *pflag.FlagSet) {}

func (cmd *cmdCheck) run(ctx context.Context, env *cmdEnv, argv []string) int {
	if len(argv) != 1 {
		return usageError(env, cmd.help())
	}
	schemaPath := argv[0]
	file, ok := loadSchema(env, schemaPath)
	if !ok {
		return 1
	}
	for _, warning := range codegen.ArrayWarnings(file) {
		env.diag.Warning(schemaPath, warning)
	}
	fmt.Fprintf(env.stdout, "%s: %d messages OK\n", schemaPath, file.Len())
	return 0
}
