// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(namespace, rootName, output, format *string, formats []string) error {
	if !IsInteractive() {
		return ErrNotInteractive
	}

	formatOptions := make([]huh.Option[string], len(formats))
	for i, f := range formats {
		formatOptions[i] = huh.NewOption(f, f)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Namespace").
				Description("Applied to the root record or enum. Leave empty for none.").
				Placeholder("com.example.events").
				Value(namespace),
			huh.NewInput().
				Title("Root name").
				Description("Name given to anonymous root types. Leave empty to derive it from the file name.").
				Value(rootName),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Validate(requiredValidator("output directory")).
				Value(output),
			huh.NewSelect[string]().
				Title("Output format").
				Options(formatOptions...).
				Value(format),
		),
	).WithTheme(Theme()).Run()
}
