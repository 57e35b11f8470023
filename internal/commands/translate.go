// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dacolabs/avrokit/internal/jschema"
	"github.com/dacolabs/avrokit/internal/prompts"
	"github.com/dacolabs/avrokit/internal/session"
	"github.com/dacolabs/avrokit/internal/translate"
)

type translateOptions struct {
	format     string
	output     string
	root       string
	definition string
	namespace  string
	watch      bool
}

func newTranslateCmd(translators Translators) *cobra.Command {
	opts := &translateOptions{}
	available := translators("", nil).Available()

	cmd := &cobra.Command{
		Use:   "translate <schema-file>...",
		Short: "Translate JSON Schema documents to Avro schemas",
		Long: fmt.Sprintf(`Translate JSON Schema documents (JSON or YAML) to Avro schemas.

Each input produces one file named after it in the output directory. External
file references are resolved relative to the document.

Available formats: %s`, strings.Join(available, ", ")),
		Example: `  # Translate a schema to .avsc
  avrokit translate order.yaml

  # Pick a definition from a definitions-only document
  avrokit translate defs.yaml --definition Customer

  # Emit Parsing Canonical Form into a custom directory
  avrokit translate order.yaml --format canonical --output build/avro

  # Re-translate whenever the inputs change
  avrokit translate schemas/*.yaml --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			opts.applyDefaults(cmd, sess)

			if opts.watch {
				return runWatch(cmd, translators, opts, sess.Logger, args)
			}
			return runTranslate(cmd, translators, opts, sess.Logger, args)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", fmt.Sprintf("Output format (%s)", strings.Join(available, ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory")
	cmd.Flags().StringVar(&opts.root, "root", "", "Name for an anonymous root type (default: derived from the file name)")
	cmd.Flags().StringVarP(&opts.definition, "definition", "d", "", "Definition to use as the root type")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "Avro namespace for the root type")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Watch the inputs and re-translate on change")

	return cmd
}

// applyDefaults fills options the user did not set from the configuration.
func (o *translateOptions) applyDefaults(cmd *cobra.Command, sess *session.Context) {
	cfg := sess.Config
	if !cmd.Flags().Changed("format") {
		o.format = cfg.Format
	}
	if !cmd.Flags().Changed("output") {
		o.output = cfg.Output
	}
	if !cmd.Flags().Changed("root") {
		o.root = cfg.RootName
	}
	if !cmd.Flags().Changed("namespace") {
		o.namespace = cfg.Namespace
	}
}

func runTranslate(cmd *cobra.Command, translators Translators, opts *translateOptions, logger *zap.Logger, files []string) error {
	register := translators(opts.namespace, logger)
	translator, err := register.Get(opts.format)
	if err != nil {
		return fmt.Errorf("unsupported format %q. Available formats: %s",
			opts.format, strings.Join(register.Available(), ", "))
	}

	if err := os.MkdirAll(opts.output, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var (
		results  []prompts.ResultField
		failures []string
	)
	for _, file := range files {
		outFile, err := translateFile(translator, opts, file)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", file, err))
			continue
		}
		logger.Debug("translated schema", zap.String("input", file), zap.String("output", outFile))
		results = append(results, prompts.ResultField{Label: file, Value: outFile})
	}

	out := cmd.OutOrStdout()
	if len(results) > 0 {
		prompts.PrintResult(out, results, fmt.Sprintf("Successfully translated %d schema(s) to %s", len(results), translator.Name()))
	}

	if len(failures) > 0 {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "\nErrors:")
		for _, f := range failures {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", f)
		}
		return fmt.Errorf("failed to translate %d schema(s)", len(failures))
	}
	return nil
}

// translateFile translates one input and returns the path written.
func translateFile(translator translate.Translator, opts *translateOptions, file string) (string, error) {
	fsys, name, err := schemaFS(file)
	if err != nil {
		return "", err
	}

	doc, err := jschema.NewLoader(fsys).Load(name)
	if err != nil {
		return "", err
	}
	def, err := jschema.Convert(doc)
	if err != nil {
		return "", err
	}

	root := opts.definition
	if root == "" && def.Root == nil {
		if len(def.Definitions) == 0 {
			return "", errors.New("document declares no type")
		}
		root, err = prompts.SelectRoot(file, def.Names())
		if errors.Is(err, prompts.ErrNotInteractive) {
			return "", errors.New("document has no root type; pass --definition to pick one")
		}
		if err != nil {
			return "", err
		}
	}
	if root != "" {
		if def, err = jschema.WithRoot(def, root); err != nil {
			return "", err
		}
	}

	rootName := opts.root
	if rootName == "" {
		rootName = translate.NameFromPath(file)
	}
	data, err := translator.Translate(rootName, def)
	if err != nil {
		return "", err
	}

	base := filepath.Base(file)
	outFile := filepath.Join(opts.output, strings.TrimSuffix(base, filepath.Ext(base))+translator.FileExtension())
	if err := os.WriteFile(outFile, data, 0o600); err != nil {
		return "", err
	}
	return outFile, nil
}

// schemaFS returns a filesystem that can see file and the documents it may
// reference. Files under the working directory are served from it so
// references may climb to sibling directories.
func schemaFS(file string) (fs.FS, string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, "", err
	}
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, abs); err == nil && filepath.IsLocal(rel) {
			return os.DirFS(cwd), filepath.ToSlash(rel), nil
		}
	}
	return os.DirFS(filepath.Dir(abs)), filepath.Base(abs), nil
}
