// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dacolabs/avrokit/internal/decode"
	"github.com/dacolabs/avrokit/internal/translate"
	avrotr "github.com/dacolabs/avrokit/internal/translate/avro"
)

func testTranslators(namespace string, logger *zap.Logger) translate.Register {
	r := make(translate.Register)
	r.Add(&avrotr.Translator{Namespace: namespace, Logger: logger, Standalone: true})
	r.Add(&avrotr.CanonicalTranslator{Namespace: namespace, Logger: logger})
	return r
}

// run executes the CLI with args in a fresh working directory holding files.
func run(t *testing.T, files map[string]string, stdin []byte, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{"AVROKIT_NAMESPACE", "AVROKIT_ROOT_NAME", "AVROKIT_OUTPUT", "AVROKIT_FORMAT", "AVROKIT_LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	t.Chdir(dir)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd(testTranslators)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

const orderSchema = `{
  "type": "object",
  "properties": {
    "id": {"type": "integer", "format": "int64"},
    "status": {"enum": ["OPEN", "CLOSED"]},
    "customer": {"$ref": "#/$defs/Customer"},
    "note": {"type": "string"}
  },
  "required": ["id", "status", "customer"],
  "$defs": {
    "Customer": {
      "type": "object",
      "properties": {"name": {"type": "string"}},
      "required": ["name"]
    }
  }
}`

const defsOnly = `$defs:
  Customer:
    type: object
    properties:
      name: {type: string}
    required: [name]
  Order:
    type: object
    properties:
      id: {type: integer, format: int32}
    required: [id]
`

func TestTranslate(t *testing.T) {
	stdout, _, err := run(t, map[string]string{"order.json": orderSchema}, nil,
		"translate", "order.json", "--namespace", "com.example", "--root", "Order")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join("schemas", "order.avsc"))

	text, err := os.ReadFile(filepath.Join("schemas", "order.avsc"))
	require.NoError(t, err)

	s, err := decode.Compile(text)
	require.NoError(t, err)
	assert.Equal(t,
		`{"name":"com.example.Order","type":"record","fields":[`+
			`{"name":"id","type":"long"},`+
			`{"name":"status","type":{"name":"com.example.OrderStatus","type":"enum","symbols":["OPEN","CLOSED"]}},`+
			`{"name":"customer","type":{"name":"com.example.Customer","type":"record","fields":[{"name":"name","type":"string"}]}},`+
			`{"name":"note","type":["string","null"]}]}`,
		s.CanonicalForm())
}

func TestTranslate_ConfigDefaults(t *testing.T) {
	files := map[string]string{
		"avrokit.yaml": "version: 1\nroot_name: Event\noutput: gen\nformat: canonical\n",
		"event.yaml":   "type: object\nproperties:\n  at: {type: integer, format: int64}\nrequired: [at]\n",
	}
	_, _, err := run(t, files, nil, "translate", "event.yaml")
	require.NoError(t, err)

	text, err := os.ReadFile(filepath.Join("gen", "event.avsc"))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Event","type":"record","fields":[{"name":"at","type":"long"}]}`+"\n", string(text))
}

func TestTranslate_RootNamedAfterFile(t *testing.T) {
	files := map[string]string{
		"user-events.yaml": "type: object\nproperties:\n  id: {type: string}\nrequired: [id]\n",
	}
	_, _, err := run(t, files, nil, "translate", "user-events.yaml", "--format", "canonical")
	require.NoError(t, err)

	text, err := os.ReadFile(filepath.Join("schemas", "user-events.avsc"))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"UserEvents","type":"record","fields":[{"name":"id","type":"string"}]}`+"\n", string(text))
}

func TestTranslate_Definition(t *testing.T) {
	_, _, err := run(t, map[string]string{"defs.yaml": defsOnly}, nil,
		"translate", "defs.yaml", "--definition", "Order", "--format", "canonical")
	require.NoError(t, err)

	text, err := os.ReadFile(filepath.Join("schemas", "defs.avsc"))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Order","type":"record","fields":[{"name":"id","type":"int"}]}`+"\n", string(text))
}

func TestTranslate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		args       []string
		wantErr    string
		wantStderr string
	}{
		{
			name:       "no root without definition",
			files:      map[string]string{"defs.yaml": defsOnly},
			args:       []string{"translate", "defs.yaml"},
			wantErr:    "failed to translate 1 schema(s)",
			wantStderr: "pass --definition",
		},
		{
			name:       "unknown definition",
			files:      map[string]string{"defs.yaml": defsOnly},
			args:       []string{"translate", "defs.yaml", "--definition", "Missing"},
			wantErr:    "failed to translate 1 schema(s)",
			wantStderr: "Missing",
		},
		{
			name:       "dangling reference",
			files:      map[string]string{"bad.json": `{"type":"object","properties":{"x":{"$ref":"#/$defs/Nope"}}}`},
			args:       []string{"translate", "bad.json"},
			wantErr:    "failed to translate 1 schema(s)",
			wantStderr: "Nope",
		},
		{
			name:    "unknown format",
			files:   map[string]string{"order.json": orderSchema},
			args:    []string{"translate", "order.json", "--format", "proto"},
			wantErr: `unsupported format "proto"`,
		},
		{
			name:    "no arguments",
			args:    []string{"translate"},
			wantErr: "requires at least 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := run(t, tt.files, nil, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, stderr, tt.wantStderr)
		})
	}
}

const pointSchema = `{"type":"record","name":"Point","fields":[{"name":"x","type":"int"},{"name":"label","type":["string","null"]}]}`

func pointBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := avro.NewWriter(&buf, 64)
	w.WriteInt(-3)
	w.WriteLong(0)
	w.WriteString("origin")
	require.NoError(t, w.Flush())
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	data := pointBytes(t)

	stdout, _, err := run(t, map[string]string{"point.avsc": pointSchema, "point.bin": string(data)}, nil,
		"decode", "--schema", "point.avsc", "--input", "point.bin", "--compact")
	require.NoError(t, err)
	assert.Equal(t, `{"x":-3,"label":"origin"}`+"\n", stdout)
}

func TestDecode_Stdin(t *testing.T) {
	stdout, _, err := run(t, map[string]string{"point.avsc": pointSchema}, pointBytes(t),
		"decode", "--schema", "point.avsc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":-3,"label":"origin"}`, stdout)
}

func TestDecode_Errors(t *testing.T) {
	_, _, err := run(t, map[string]string{"point.avsc": pointSchema}, []byte{0x05},
		"decode", "--schema", "point.avsc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated_input")

	_, _, err = run(t, map[string]string{"bad.avsc": `{"type":"record"}`}, nil,
		"decode", "--schema", "bad.avsc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.avsc")

	_, _, err = run(t, nil, nil, "decode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"schema" not set`)
}

func TestFingerprint(t *testing.T) {
	stdout, _, err := run(t, map[string]string{"point.avsc": pointSchema}, nil,
		"fingerprint", "--schema", "point.avsc")
	require.NoError(t, err)

	canonical := `{"name":"Point","type":"record","fields":[{"name":"x","type":"int"},{"name":"label","type":["string","null"]}]}`
	sum := sha256.Sum256([]byte(canonical))
	assert.Contains(t, stdout, canonical)
	assert.Contains(t, stdout, hex.EncodeToString(sum[:]))
	assert.Contains(t, stdout, "CRC-64-AVRO")
}

func TestInit(t *testing.T) {
	_, _, err := run(t, nil, nil, "init", "--non-interactive", "--namespace", "com.example", "--format", "canonical")
	require.NoError(t, err)

	content, err := os.ReadFile("avrokit.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(content), "namespace: com.example")
	assert.Contains(t, string(content), "format: canonical")

	cmd := NewRootCmd(testTranslators)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", "--non-interactive"})
	err = cmd.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "already exists")
}

func TestInit_InvalidFormat(t *testing.T) {
	_, _, err := run(t, nil, nil, "init", "--non-interactive", "--format", "xml")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, nil, nil, "version", "--short")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(stdout))
}

func TestIsSchemaChange(t *testing.T) {
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "a.yaml", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "a.JSON", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "a.yml", Op: fsnotify.Rename}, true},
		{fsnotify.Event{Name: "a.yaml", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "a.avsc", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.event.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, isSchemaChange(tt.event))
		})
	}
}
