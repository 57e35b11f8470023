// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package decode_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/avrokit/internal/decode"
	"github.com/dacolabs/avrokit/internal/errs"
)

const userSchema = `{"type":"record","name":"User","fields":[
	{"name":"name","type":"string"},
	{"name":"age","type":"int"},
	{"name":"email","type":["string","null"]},
	{"name":"role","type":{"type":"enum","name":"Role","symbols":["ADMIN","MEMBER"]}},
	{"name":"tags","type":{"type":"array","items":"string"}},
	{"name":"scores","type":{"type":"map","values":"double"}},
	{"name":"avatar","type":{"type":"fixed","name":"Hash","size":2}}
]}`

func TestDecodeValue_Record(t *testing.T) {
	s := decode.MustCompile(userSchema)
	data := encode(t, func(w *avro.Writer) {
		w.WriteString("ada")
		w.WriteInt(36)
		w.WriteLong(1)
		w.WriteInt(1)
		w.WriteLong(2)
		w.WriteString("x")
		w.WriteString("y")
		w.WriteLong(0)
		w.WriteLong(1)
		w.WriteString("go")
		w.WriteDouble(0.5)
		w.WriteLong(0)
		_, _ = w.Write([]byte{0xca, 0xfe})
	})

	v, err := decode.DecodeValue(s, data)
	require.NoError(t, err)

	rec, ok := v.(*decode.Record)
	require.True(t, ok, "got %T", v)

	var keys []string
	for p := rec.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"name", "age", "email", "role", "tags", "scores", "avatar"}, keys)

	age, _ := rec.Get("age")
	assert.Equal(t, int32(36), age)
	email, _ := rec.Get("email")
	assert.Nil(t, email)
	role, _ := rec.Get("role")
	assert.Equal(t, "MEMBER", role)
	tags, _ := rec.Get("tags")
	assert.Equal(t, []any{"x", "y"}, tags)
	scores, _ := rec.Get("scores")
	assert.Equal(t, map[string]any{"go": 0.5}, scores)
	avatar, _ := rec.Get("avatar")
	assert.Equal(t, []byte{0xca, 0xfe}, avatar)
}

func TestDecodeValue_JSONKeepsFieldOrder(t *testing.T) {
	s := decode.MustCompile(`{"type":"record","name":"P","fields":[{"name":"z","type":"long"},{"name":"a","type":"boolean"}]}`)
	v, err := decode.DecodeValue(s, encode(t, func(w *avro.Writer) {
		w.WriteLong(7)
		w.WriteBool(true)
	}))
	require.NoError(t, err)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"z":7,"a":true}`, string(out))
}

func TestDecodeValue_Truncated(t *testing.T) {
	s := decode.MustCompile(userSchema)
	data := encode(t, func(w *avro.Writer) { w.WriteString("ada") })

	_, err := decode.DecodeValue(s, data)
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
}
