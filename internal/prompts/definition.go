// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import "github.com/charmbracelet/huh"

// definitionSelect returns a select field over the definition names.
func definitionSelect(value *string, names []string) *huh.Select[string] {
	options := make([]huh.Option[string], len(names))
	for i, n := range names {
		options[i] = huh.NewOption(n, n)
	}
	return huh.NewSelect[string]().
		Title("Root definition").
		Description("The document has no root type. Pick the definition to translate.").
		Options(options...).
		Filtering(true).
		Height(8).
		Value(value)
}

// SelectRoot asks which definition of file to use as the root type.
func SelectRoot(file string, names []string) (string, error) {
	if !IsInteractive() {
		return "", ErrNotInteractive
	}
	var name string
	err := huh.NewForm(
		huh.NewGroup(definitionSelect(&name, names)).
			Title(file),
	).WithTheme(Theme()).Run()
	if err != nil {
		return "", err
	}
	if err := requiredValidator("definition")(name); err != nil {
		return "", err
	}
	return name, nil
}
