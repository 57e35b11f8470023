// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"
)

// Document is a parsed schema together with the source order of its
// properties.
type Document struct {
	Schema *jsonschema.Schema
	Order  KeyOrder
}

// Parse decodes a JSON or YAML schema document.
func Parse(data []byte, format Format) (*Document, error) {
	raw := data
	if format == YAML {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
		}
		raw = b
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, err
	}

	order, err := ExtractKeyOrder(data)
	if err != nil {
		// JSON that YAML cannot read still parses; it just loses its order.
		order = KeyOrder{}
	}
	return &Document{Schema: &schema, Order: order}, nil
}

// Loader loads schemas from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load reads filePath and resolves its external references.
func (l *Loader) Load(filePath string) (*Document, error) {
	doc, err := l.LoadFile(filePath)
	if err != nil {
		return nil, err
	}
	if err := l.ResolveRefs(doc, path.Dir(filePath)); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadFile loads and parses a schema file.
// The format is determined from the file extension.
func (l *Loader) LoadFile(filePath string) (*Document, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data, FormatFromPath(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	return doc, nil
}

// ResolveRefs resolves all external file $refs in the document in-place.
// It recursively loads referenced schemas and replaces the ref with the
// loaded content. Definitions of loaded documents are lifted into the root
// document so their internal refs keep resolving. Internal refs (starting
// with #) are left unchanged.
func (l *Loader) ResolveRefs(doc *Document, basePath string) error {
	return l.resolveRefs(doc, basePath, nil)
}

func (l *Loader) resolveRefs(doc *Document, basePath string, stack []string) error {
	type fileRef struct {
		path   string
		schema *jsonschema.Schema
	}
	var refs []fileRef
	for p, s := range Traverse(doc.Schema) {
		if IsFileRef(s.Ref) {
			refs = append(refs, fileRef{path: p, schema: s})
		}
	}

	for _, ref := range refs {
		if strings.Contains(ref.schema.Ref, "#") {
			return fmt.Errorf("unsupported $ref %q: fragments in file references are not supported", ref.schema.Ref)
		}
		refPath := path.Join(basePath, ref.schema.Ref)
		for _, p := range stack {
			if p == refPath {
				return fmt.Errorf("circular file reference: %s", strings.Join(append(stack, refPath), " -> "))
			}
		}

		loaded, err := l.LoadFile(refPath)
		if err != nil {
			return err
		}
		if err := l.resolveRefs(loaded, path.Dir(refPath), append(stack, refPath)); err != nil {
			return err
		}

		if err := hoistDefs(doc.Schema, loaded.Schema, refPath); err != nil {
			return err
		}
		doc.Order.Merge(loaded.Order, ref.path)
		*ref.schema = *loaded.Schema
	}
	return nil
}

// hoistDefs moves the definitions of from into the root schema.
func hoistDefs(root, from *jsonschema.Schema, source string) error {
	move := func(dst *map[string]*jsonschema.Schema, src map[string]*jsonschema.Schema) error {
		for name, s := range src {
			if *dst == nil {
				*dst = make(map[string]*jsonschema.Schema)
			}
			if existing, ok := (*dst)[name]; ok && !sameSchema(existing, s) {
				return fmt.Errorf("definition %q from %s conflicts with an existing definition", name, source)
			}
			(*dst)[name] = s
		}
		return nil
	}
	if err := move(&root.Defs, from.Defs); err != nil {
		return err
	}
	if err := move(&root.Definitions, from.Definitions); err != nil {
		return err
	}
	from.Defs = nil
	from.Definitions = nil
	return nil
}

func sameSchema(a, b *jsonschema.Schema) bool {
	if a == b {
		return true
	}
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	return errA == nil && errB == nil && string(ab) == string(bb)
}
