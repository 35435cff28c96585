// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config provides composable configuration sources with per value
// origin tracking.
//
// # Sources and Stores
//
// A [Source] knows how to serialize itself into a key value structure,
// the [Store]. Sources exist for common formats and locations, such as
// [FromYaml], [FromToml], [FromJson], [FromEnv] and [FromDotenv]. The
// [Map] type allows any map[string]any to act as a Source directly.
//
// Sources are merged by [Read], where later sources override earlier
// ones on a per key basis:
//
//	m, err := config.Read(
//	    config.Map{"port": 8080},
//	    config.FromYaml(f),
//	)
//
// # Origins
//
// Wrapping a Source with [Tag] records an [Origin] for every value the
// source applies. The origins survive merging, so after [Read] the
// [Manager] can report which source won each key:
//
//	m, err := config.Read(
//	    config.Tag(config.Origin{Source: config.SourceDefaults}, defaults),
//	    config.Tag(config.Origin{Source: config.SourceEnv}, config.FromEnv(keys...)),
//	)
//	origin, ok := m.Origin("port")
//
// # Unmarshalling
//
// [Manager.Unmarshal] decodes the merged values into a struct. Field
// names are matched case insensitively, ignoring underscores, and can
// be overridden with the "config" struct tag:
//
//	type Config struct {
//	    Addr string `config:"http_addr"`
//	}
//
// String values are coerced into numeric, boolean, [time.Duration] and
// [encoding.TextUnmarshaler] fields, which allows environment variables
// to populate strongly typed fields.
package config
