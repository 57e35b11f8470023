// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dacolabs/avrokit/internal/commands"
	"github.com/dacolabs/avrokit/internal/translate"
	"github.com/dacolabs/avrokit/internal/translate/avro"
)

// Translators returns the output formats offered by the CLI.
func Translators(namespace string, logger *zap.Logger) translate.Register {
	translators := make(translate.Register)
	translators.Add(&avro.Translator{Namespace: namespace, Logger: logger, Standalone: true})
	translators.Add(&avro.CanonicalTranslator{Namespace: namespace, Logger: logger})
	return translators
}

// NewRootCmd returns the fully wired root command.
func NewRootCmd() *cobra.Command {
	return commands.NewRootCmd(Translators)
}

// Run is the main application logic, extracted for testability.
func Run(ctx context.Context, args []string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
