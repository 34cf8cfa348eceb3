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
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"go.evrpc.dev/evrpc/codegen"
	"go.evrpc.dev/evrpc/codegen/cgen"
	"go.evrpc.dev/evrpc/codegen/gogen"
	"go.evrpc.dev/evrpc/codegen/plugin"
)

type cmdGenerate struct {
	lang          string
	packageName   string
	runtimeImport string
	outDir        string
	pluginPath    string
}

func (*cmdGenerate) help() *commandHelp {
	return &commandHelp{
		usage:   "generate [options] FILE.rpc",
		summary: "Generate message code from a schema",
	}
}

func (cmd *cmdGenerate) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.lang, "lang", "l", "go", "Output language (go, c, or a plugin language)")
	flags.StringVarP(&cmd.packageName, "package", "p", "", "Package name of generated Go code")
	flags.StringVar(&cmd.runtimeImport, "runtime-import", "", "Import path of the TLV runtime used by generated Go code")
	flags.StringVarP(&cmd.outDir, "output-dir", "o", "", "Output directory (default: the schema's directory)")
	flags.StringVar(&cmd.pluginPath, "plugin-path", "", "Directories searched for evrpcgen-<lang>.wasm plugins")
}

func (cmd *cmdGenerate) run(ctx context.Context, env *cmdEnv, argv []string) int {
	if len(argv) != 1 {
		return usageError(env, cmd.help())
	}
	schemaPath := argv[0]
	file, ok := loadSchema(env, schemaPath)
	if !ok {
		return 1
	}

	generator, err := cmd.generator()
	if err != nil {
		env.diag.Error("", err)
		return 1
	}

	var opts []codegen.Option
	if cmd.packageName != "" {
		opts = append(opts, codegen.WithPackageName(cmd.packageName))
	}
	if cmd.runtimeImport != "" {
		opts = append(opts, codegen.WithRuntimeImport(cmd.runtimeImport))
	}

	env.log.Debug().
		Str("lang", generator.Language()).
		Int("messages", file.Len()).
		Msg("generating")
	output, err := generator.Generate(ctx, file, opts...)
	if err != nil {
		env.diag.Error(schemaPath, err)
		return 1
	}
	for _, warning := range output.Warnings {
		env.diag.Warning(schemaPath, warning)
	}

	outDir := cmd.outDir
	if outDir == "" {
		outDir = filepath.Dir(schemaPath)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		env.diag.Error("", err)
		return 1
	}
	outPaths, err := writeArtifacts(outDir, output.Declarations, output.Implementation)
	if err != nil {
		env.diag.Error("", err)
		return 1
	}
	for _, outPath := range outPaths {
		env.log.Info().Str("path", outPath).Msg("wrote")
	}
	return 0
}

// writeArtifacts stages every artifact in a temporary file, then renames
// them into place. On failure no artifact is left behind.
func writeArtifacts(outDir string, artifacts ...codegen.Artifact) ([]string, error) {
	var staged, outPaths []string
	cleanup := func() {
		for _, tmpPath := range staged {
			os.Remove(tmpPath)
		}
	}
	for _, artifact := range artifacts {
		tmp, err := os.CreateTemp(outDir, "."+artifact.Name+".*")
		if err != nil {
			cleanup()
			return nil, err
		}
		staged = append(staged, tmp.Name())
		_, err = tmp.Write(artifact.Content)
		if closeErr := tmp.Close(); err == nil {
			err = closeErr
		}
		if err == nil {
			err = os.Chmod(tmp.Name(), 0o644)
		}
		if err != nil {
			cleanup()
			return nil, err
		}
	}
	for ii, artifact := range artifacts {
		outPath := filepath.Join(outDir, artifact.Name)
		if err := os.Rename(staged[ii], outPath); err != nil {
			cleanup()
			for _, written := range outPaths {
				os.Remove(written)
			}
			return nil, err
		}
		outPaths = append(outPaths, outPath)
	}
	return outPaths, nil
}

func (cmd *cmdGenerate) generator() (codegen.Generator, error) {
	switch cmd.lang {
	case "go":
		return gogen.New(), nil
	case "c":
		return cgen.New(), nil
	}
	modulePath, err := plugin.Locate(cmd.lang, cmd.pluginPath)
	if err != nil {
		return nil, err
	}
	return plugin.New(cmd.lang, modulePath), nil
}
