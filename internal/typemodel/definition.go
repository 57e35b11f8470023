// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package typemodel

import (
	"sort"

	"github.com/dacolabs/avrokit/internal/errs"
)

// Definition is a complete source schema: a root type plus the named types it
// may reference.
type Definition struct {
	Root        Type
	Definitions map[string]Type
}

// Names returns the definition names in sorted order.
func (d *Definition) Names() []string {
	names := make([]string, 0, len(d.Definitions))
	for name := range d.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every Reference reachable from the root or from any
// definition body names an existing definition.
func (d *Definition) Validate() error {
	if d.Root == nil {
		return errs.New(errs.PhaseTranslate, errs.KindInvalidData).
			Detail("definition has no root type").
			Build()
	}
	if err := d.checkRefs(d.Root, []string{"root"}); err != nil {
		return err
	}
	for _, name := range d.Names() {
		if err := d.checkRefs(d.Definitions[name], []string{"$defs", name}); err != nil {
			return err
		}
	}
	return nil
}

func (d *Definition) checkRefs(t Type, path []string) error {
	refs, err := References(t)
	if err != nil {
		return err
	}
	for _, name := range refs {
		if _, ok := d.Definitions[name]; !ok {
			return errs.UnknownReference(errs.PhaseTranslate, path, name)
		}
	}
	return nil
}

// References returns the names referenced anywhere in t, in first-occurrence
// order, without following them.
func References(t Type) ([]string, error) {
	c := &refCollector{seen: make(map[string]struct{})}
	if err := t.Accept(c); err != nil {
		return nil, err
	}
	return c.names, nil
}

type refCollector struct {
	names []string
	seen  map[string]struct{}
}

var _ Visitor = (*refCollector)(nil)

func (c *refCollector) all(types ...Type) error {
	for _, t := range types {
		if err := t.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *refCollector) VisitBoolean(Boolean) error { return nil }
func (c *refCollector) VisitInteger(Integer) error { return nil }
func (c *refCollector) VisitFloat(Float) error     { return nil }
func (c *refCollector) VisitString(String) error   { return nil }
func (c *refCollector) VisitLiteral(Literal) error { return nil }

func (c *refCollector) VisitOptional(t Optional) error       { return c.all(t.Type) }
func (c *refCollector) VisitAnyOf(t AnyOf) error             { return c.all(t.Types...) }
func (c *refCollector) VisitFixedArray(t FixedArray) error   { return c.all(t.Item) }
func (c *refCollector) VisitArray(t Array) error             { return c.all(t.Item) }
func (c *refCollector) VisitStringMap(t StringMap) error     { return c.all(t.Value) }
func (c *refCollector) VisitTuple(t Tuple) error             { return c.all(t.Types...) }
func (c *refCollector) VisitValidated(t Validated) error     { return c.all(t.Type) }
func (c *refCollector) VisitDescription(t Description) error { return c.all(t.Type) }

func (c *refCollector) VisitObject(t Object) error {
	for _, f := range t.Fields {
		if err := f.Type.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *refCollector) VisitReference(t Reference) error {
	if _, ok := c.seen[t.Name]; !ok {
		c.seen[t.Name] = struct{}{}
		c.names = append(c.names, t.Name)
	}
	return nil
}
