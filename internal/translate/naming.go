// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"path/filepath"
	"strings"
)

// ToPascalCase converts a snake_case or kebab-case string to PascalCase for
// type name generation.
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})

	var sb strings.Builder
	for _, part := range parts {
		if part != "" {
			sb.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}

	return sb.String()
}

// NameFromPath derives a type name from a schema file path,
// e.g. "schemas/user-events.schema.yaml" -> "UserEventsSchema".
func NameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return ToPascalCase(base)
}
