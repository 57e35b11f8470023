// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package avro

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tm "github.com/dacolabs/avrokit/internal/typemodel"
)

func userDefinition() *tm.Definition {
	return &tm.Definition{
		Root: tm.Obj(
			tm.F("id", tm.I64()),
			tm.F("name", tm.Str()),
			tm.F("manager", tm.Opt(tm.Ref("User"))),
			tm.F("role", tm.Ref("Role")),
		),
		Definitions: map[string]tm.Type{
			"User": tm.Obj(tm.F("id", tm.I64()), tm.F("reports", tm.ArrayOf(tm.Ref("User")))),
			"Role": tm.Lit("ADMIN", "VIEWER"),
		},
	}
}

func TestTranslator_Avsc(t *testing.T) {
	tr := &Translator{Namespace: "schemas"}
	assert.Equal(t, "avsc", tr.Name())
	assert.Equal(t, ".avsc", tr.FileExtension())

	output, err := tr.Translate("Users", userDefinition())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(output), "}\n"))

	var result map[string]any
	require.NoError(t, json.Unmarshal(output, &result))

	assert.Equal(t, "record", result["type"])
	assert.Equal(t, "Users", result["name"])
	assert.Equal(t, "schemas", result["namespace"])

	fields := result["fields"].([]any)
	require.Len(t, fields, 4)

	manager := fields[2].(map[string]any)["type"].([]any)
	require.Len(t, manager, 2)
	assert.Equal(t, "null", manager[1])
	user := manager[0].(map[string]any)
	assert.Equal(t, "User", user["name"])
	reports := user["fields"].([]any)[1].(map[string]any)["type"].(map[string]any)
	assert.Equal(t, "User", reports["items"])

	role := fields[3].(map[string]any)["type"].(map[string]any)
	assert.Equal(t, "enum", role["type"])
	assert.Equal(t, []any{"ADMIN", "VIEWER"}, role["symbols"])
}

func TestCanonicalTranslator(t *testing.T) {
	tr := &CanonicalTranslator{Namespace: "schemas"}
	assert.Equal(t, "canonical", tr.Name())

	output, err := tr.Translate("Users", userDefinition())
	require.NoError(t, err)

	out := strings.TrimSuffix(string(output), "\n")
	assert.True(t, strings.HasPrefix(out, `{"name":"schemas.Users","type":"record","fields":[`), out)
	assert.NotContains(t, out, " ")
	assert.Contains(t, out, `{"name":"schemas.User","type":"record"`)
}

func chainDefinition() *tm.Definition {
	return &tm.Definition{
		Root: tm.Ref("Invoice"),
		Definitions: map[string]tm.Type{
			"Invoice": tm.Obj(tm.F("payer", tm.Ref("Party"))),
			"Party":   tm.Obj(tm.F("name", tm.Str())),
		},
	}
}

func TestTranslator_Standalone(t *testing.T) {
	tests := []struct {
		name       string
		standalone bool
		wantPayer  any
	}{
		{"flat", false, "Party"},
		{"standalone", true, map[string]any{
			"type":   "record",
			"name":   "Party",
			"fields": []any{map[string]any{"name": "name", "type": "string"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := (&Translator{Standalone: tt.standalone}).Translate("Invoice", chainDefinition())
			require.NoError(t, err)

			var result map[string]any
			require.NoError(t, json.Unmarshal(output, &result))
			payer := result["fields"].([]any)[0].(map[string]any)
			assert.Equal(t, tt.wantPayer, payer["type"])
		})
	}
}

func TestCanonicalTranslator_DeclaresNestedDefinitions(t *testing.T) {
	output, err := (&CanonicalTranslator{}).Translate("Invoice", chainDefinition())
	require.NoError(t, err)
	assert.Equal(t,
		`{"name":"Invoice","type":"record","fields":[{"name":"payer","type":{"name":"Party","type":"record","fields":[{"name":"name","type":"string"}]}}]}`+"\n",
		string(output))
}

func TestCanonicalTranslator_RejectsNestedUnion(t *testing.T) {
	def := &tm.Definition{Root: tm.Obj(tm.F("v", tm.Opt(tm.OneOf(tm.Str(), tm.I64()))))}

	_, err := (&CanonicalTranslator{}).Translate("Root", def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "avro rejected translated schema")

	_, err = (&Translator{}).Translate("Root", def)
	assert.NoError(t, err)
}
