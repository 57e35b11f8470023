// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dacolabs/avrokit/internal/config"
	"github.com/dacolabs/avrokit/internal/logging"
)

// ErrInvalidConfig indicates the config file exists but is invalid.
var ErrInvalidConfig = errors.New("invalid configuration")

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved project configuration and the logger built
// from it.
type Context struct {
	// Config is the resolved configuration: defaults, then avrokit.yaml,
	// then AVROKIT_* environment variables.
	Config *config.Config

	// Dir is the directory the configuration was loaded from.
	Dir string

	Logger *zap.Logger
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the Context stored in it. A missing
// avrokit.yaml is not an error. logLevel overrides the configured level
// when non-empty.
func Load(ctx context.Context, logLevel string) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := config.LoadOptional(filepath.Join(cwd, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	sess := &Context{
		Config: cfg,
		Dir:    cwd,
		Logger: logger,
	}

	ctx = logging.WithLogger(ctx, logger)
	return context.WithValue(ctx, contextKey{}, sess), nil
}

// From extracts the Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sess, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sess
	}
	return nil
}
