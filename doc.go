// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package utilityhub resolves application settings by merging layered
// configuration sources into a single validated value, while recording
// which source supplied each field.
//
// # Sources
//
// Every [Load] call folds the following sources over each other, with
// later sources overwriting the keys they define:
//
//   - default struct tag values
//   - an optional project config file (YAML, TOML or JSON)
//   - an optional .env file
//   - process environment variables
//   - runtime overrides passed via [WithOverrides]
//
// Environment variable names are derived from field names by
// upper-casing and replacing non alphanumerics with underscores, so a
// field tagged "database_url" is settable via DATABASE_URL. The .env
// file is parsed standalone and never mutates the real process
// environment.
//
// # Settings types
//
// Settings are plain structs. The "config" tag names a field, the
// "default" tag supplies its lowest precedence value and fields
// without a default must be provided by some source unless marked
// optional:
//
//	type Settings struct {
//	    DatabaseURL string        `config:"database_url"`
//	    LogLevel    string        `config:"log_level" default:"INFO"`
//	    Timeout     time.Duration `config:"timeout,optional"`
//	}
//
//	cfg, md, err := utilityhub.Load[Settings]()
//
// Nested structs are addressed with dotted keys, for example
// "server.port", which maps to the SERVER_PORT environment variable.
//
// # Provenance
//
// The returned [Metadata] reports the winning source per field:
//
//	origin, ok := md.Source("database_url")
//	if ok {
//	    fmt.Println(origin) // e.g. "env" or "project (utilityhub.toml)"
//	}
//
// # Validation
//
// Field failures are never reported one at a time. Missing required
// fields and unparseable values are collected into a single
// [ValidationError] whose message also lists which project config
// files were checked and the full source precedence order.
package utilityhub
