// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runWatch translates files once, then again whenever a schema file in one
// of their directories changes. It returns when the command context ends.
func runWatch(cmd *cobra.Command, translators Translators, opts *translateOptions, logger *zap.Logger, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	dirs := make(map[string]struct{})
	for _, f := range files {
		dir := filepath.Dir(f)
		if _, ok := dirs[dir]; ok {
			continue
		}
		dirs[dir] = struct{}{}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	rerun := func() {
		if err := runTranslate(cmd, translators, opts, logger, files); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	}
	rerun()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSchemaChange(event) {
				continue
			}
			logger.Info("schema changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			rerun()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}

func isSchemaChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
