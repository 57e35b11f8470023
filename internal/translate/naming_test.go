// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"user", "User"},
		{"user_events", "UserEvents"},
		{"user-events", "UserEvents"},
		{"already Pascal", "AlreadyPascal"},
		{"line_items.v2", "LineItemsV2"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPascalCase(tt.in))
		})
	}
}

func TestNameFromPath(t *testing.T) {
	assert.Equal(t, "UserEventsSchema", NameFromPath("schemas/user-events.schema.yaml"))
	assert.Equal(t, "Order", NameFromPath("order.json"))
}
