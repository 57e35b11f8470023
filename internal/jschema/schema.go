// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema loads JSON Schema documents and converts them into type
// models.
package jschema

import (
	"strings"
)

// Format is the textual encoding of a schema document.
type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// FormatFromPath infers the format from the file extension. Anything that is
// not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return YAML
	}
	return JSON
}

// IsFileRef returns true if ref is an external file reference.
// File refs do not start with "#".
func IsFileRef(ref string) bool {
	return ref != "" && !strings.HasPrefix(ref, "#")
}

// IsInternalRef returns true if ref points into the current document.
func IsInternalRef(ref string) bool {
	return strings.HasPrefix(ref, "#/")
}

// DefName returns the definition name of a "#/$defs/X" or "#/definitions/X"
// reference.
func DefName(ref string) (string, bool) {
	for _, prefix := range []string{"#/$defs/", "#/definitions/"} {
		if name, ok := strings.CutPrefix(ref, prefix); ok && name != "" && !strings.Contains(name, "/") {
			return name, true
		}
	}
	return "", false
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}
