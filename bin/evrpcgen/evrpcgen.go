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

// Command evrpcgen compiles .rpc message schemas into Go or C source.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, env *cmdEnv, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

func main() {
	ctx := context.Background()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	exitCode := 0
	global := &globalFlags{}

	bind := func(cobraCmd *cobra.Command, cmd command) {
		cmd.flags(cobraCmd.Flags())
		cobraCmd.RunE = func(_ *cobra.Command, argv []string) error {
			env, err := global.env(stdout, stderr)
			if err != nil {
				return err
			}
			exitCode = cmd.run(ctx, env, argv)
			return nil
		}
	}

	rootHelp := (&cmdGenerate{}).help()
	evrpcgenCmd := &cobra.Command{
		Use:           "evrpcgen [options] FILE.rpc",
		Short:         rootHelp.summary,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	evrpcgenCmd.SetArgs(args)
	evrpcgenCmd.SetOut(stdout)
	evrpcgenCmd.SetErr(stderr)
	global.flags(evrpcgenCmd.PersistentFlags())
	bind(evrpcgenCmd, &cmdGenerate{})

	commands := []command{
		&cmdGenerate{},
		&cmdCheck{},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
		}
		bind(cobraCmd, cmd)
		evrpcgenCmd.AddCommand(cobraCmd)
	}

	if err := evrpcgenCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return exitCode
}
