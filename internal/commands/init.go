// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dacolabs/avrokit/internal/config"
	"github.com/dacolabs/avrokit/internal/prompts"
)

type initOptions struct {
	namespace      string
	rootName       string
	output         string
	format         string
	nonInteractive bool
}

func newInitCmd(translators Translators) *cobra.Command {
	opts := &initOptions{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an avrokit.yaml in the current directory",
		Long: `Create an avrokit.yaml configuration file holding the defaults used by
translate: namespace, root name, output directory and format.`,
		Example: `  # Interactive mode
  avrokit init

  # Non-interactive
  avrokit init --namespace com.example.events --non-interactive`,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts, translators(opts.namespace, nil).Available())
		},
	}

	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "Avro namespace for root types")
	cmd.Flags().StringVar(&opts.rootName, "root-name", "", "Name for anonymous root types (default: derived from the file name)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaults.Output, "Output directory")
	cmd.Flags().StringVar(&opts.format, "format", defaults.Format, "Output format")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions, formats []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfgPath := filepath.Join(cwd, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New("avrokit.yaml already exists; project already initialized")
	}

	if !opts.nonInteractive {
		if err := prompts.RunInitForm(&opts.namespace, &opts.rootName, &opts.output, &opts.format, formats); err != nil {
			return err
		}
	}

	cfg := config.Config{
		Version:   config.CurrentConfigVersion,
		Namespace: opts.namespace,
		RootName:  opts.rootName,
		Output:    opts.output,
		Format:    opts.format,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Config", Value: config.FileName},
		{Label: "Format", Value: cfg.Format},
		{Label: "Output", Value: cfg.Output},
	}, "Initialization completed")
	return nil
}
