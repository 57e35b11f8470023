// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dacolabs/avrokit/internal/session"
	"github.com/dacolabs/avrokit/internal/translate"
)

// Translators builds the available output formats for a namespace. The
// logger receives translation debug output.
type Translators func(namespace string, logger *zap.Logger) translate.Register

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(translators Translators) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "avrokit",
		Short: "Translate schemas to Apache Avro and decode Avro data",
		Long: `avrokit translates JSON Schema documents into Apache Avro schemas and
decodes Avro binary data against them.

Settings are read from avrokit.yaml in the current directory when present,
then from AVROKIT_* environment variables, then from flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: session.PreRunLoad,
	}
	rootCmd.PersistentFlags().String(session.LogLevelFlag, "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newInitCmd(translators))
	rootCmd.AddCommand(newTranslateCmd(translators))
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newFingerprintCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
