// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"errors"

	"github.com/spf13/cobra"
)

// LogLevelFlag is the persistent flag that overrides the configured level.
const LogLevelFlag = "log-level"

// FromCommand extracts the Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand extracts the Context from a cobra.Command's context,
// returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	ctx := FromCommand(cmd)
	if ctx == nil {
		return nil, errors.New("project context not loaded")
	}
	return ctx, nil
}

// PreRunLoad is a PersistentPreRunE that loads the project context and
// stores it in the command's context.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	var level string
	if f := cmd.Flags().Lookup(LogLevelFlag); f != nil && f.Changed {
		level = f.Value.String()
	}
	ctx, err := Load(cmd.Context(), level)
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}
