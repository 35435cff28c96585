// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/z5labs/utilityhub"
	"github.com/z5labs/utilityhub/schema"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Settings is a sample schema covering defaults, required fields,
// secrets and nested sections.
type Settings struct {
	Service     string `config:"service" default:"utilityhub"`
	LogLevel    string `config:"log_level" default:"INFO"`
	DatabaseURL string `config:"database_url" default:"sqlite:///memory"`
	APIToken    string `config:"api_token,secret,optional"`
	Server      struct {
		Port int `config:"port" default:"8080"`
	} `config:"server"`
}

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var dir string
	var configFile string
	var sets []string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Resolve settings and report the winning source per field",
		Long: `inspect resolves a sample settings schema against the current
environment, an optional .env file and an optional project config file,
then reports which source won every field.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []utilityhub.Option{
				utilityhub.WithDir(dir),
			}
			if configFile != "" {
				opts = append(opts, utilityhub.WithConfigFile(configFile))
			}
			if len(sets) > 0 {
				overrides := make(map[string]any, len(sets))
				for _, kv := range sets {
					k, v, ok := strings.Cut(kv, "=")
					if !ok {
						return fmt.Errorf("invalid override %q, expected key=value", kv)
					}
					overrides[k] = v
				}
				opts = append(opts, utilityhub.WithOverrides(overrides))
			}
			if verbose {
				logger, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				defer logger.Sync()
				opts = append(opts, utilityhub.WithLogger(logger))
			}

			cfg, md, err := utilityhub.Load[Settings](opts...)
			if err != nil {
				return err
			}

			s, err := schema.Of[Settings]()
			if err != nil {
				return err
			}
			for _, f := range s.Fields() {
				v, ok := s.Value(cfg, f.Name)
				if !ok {
					continue
				}

				source := "(unset)"
				if origin, ok := md.Source(f.Name); ok {
					source = origin.String()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-14s = %-26s from %s\n", f.Name, f.Type, f.Mask(v), source)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory to search for .env and project config files")
	cmd.Flags().StringVar(&configFile, "config", "", "explicit config file path")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "runtime override as key=value, repeatable")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log source resolution at debug level")
	return cmd
}
