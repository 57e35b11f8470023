// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dacolabs/avrokit/internal/decode"
	"github.com/dacolabs/avrokit/internal/session"
)

type decodeOptions struct {
	schema  string
	input   string
	compact bool
}

func newDecodeCmd() *cobra.Command {
	opts := &decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode one Avro binary value and print it as JSON",
		Long: `Decode one Avro binary value against a schema and print it as JSON.
Record fields keep their schema order.`,
		Example: `  # Decode a file
  avrokit decode --schema schemas/order.avsc --input order.bin

  # Decode from stdin
  cat order.bin | avrokit decode --schema schemas/order.avsc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runDecode(cmd, opts, sess.Logger)
		},
	}

	cmd.Flags().StringVarP(&opts.schema, "schema", "s", "", "Avro schema file (.avsc)")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "Binary input file, or - for stdin")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "Print JSON on a single line")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runDecode(cmd *cobra.Command, opts *decodeOptions, logger *zap.Logger) error {
	s, err := loadSchema(opts.schema)
	if err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if opts.input != "-" {
		f, err := os.Open(opts.input) //nolint:gosec // path is provided by the user
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close() //nolint:errcheck
		r = f
	}

	v, err := decode.DecodeValueReader(s, r)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", opts.input, err)
	}
	logger.Debug("decoded value", zap.String("schema", opts.schema), zap.String("input", opts.input))

	var out []byte
	if opts.compact {
		out, err = json.Marshal(v)
	} else {
		out, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func loadSchema(path string) (*decode.Schema, error) {
	text, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	s, err := decode.Compile(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
