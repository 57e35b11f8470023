// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dacolabs/avrokit/internal/prompts"
)

func newFingerprintCmd() *cobra.Command {
	var schema string

	cmd := &cobra.Command{
		Use:     "fingerprint",
		Short:   "Print the canonical form and fingerprints of an Avro schema",
		Example: `  avrokit fingerprint --schema schemas/order.avsc`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFingerprint(cmd, schema)
		},
	}

	cmd.Flags().StringVarP(&schema, "schema", "s", "", "Avro schema file (.avsc)")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runFingerprint(cmd *cobra.Command, path string) error {
	s, err := loadSchema(path)
	if err != nil {
		return err
	}

	sha := s.Fingerprint()
	crc, err := s.FingerprintCRC64()
	if err != nil {
		return err
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Canonical", Value: s.CanonicalForm()},
		{Label: "SHA-256", Value: hex.EncodeToString(sha[:])},
		{Label: "CRC-64-AVRO", Value: fmt.Sprintf("%016x", crc)},
	}, "")
	return nil
}
