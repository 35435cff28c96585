// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package utilityhub

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/z5labs/utilityhub/config"
	"github.com/z5labs/utilityhub/internal/try"
	"github.com/z5labs/utilityhub/schema"

	"go.uber.org/zap"
)

// implicitConfigNames are the project config files probed, in order,
// when no explicit config file is given.
var implicitConfigNames = []string{
	"utilityhub.toml",
	"utilityhub.yaml",
	"utilityhub.yml",
}

type options struct {
	dir        string
	configFile string
	overrides  map[string]any
	logger     *zap.Logger
	tmplOpts   []config.RenderTextTemplateOption
}

// Option configures a [Load] call.
type Option func(*options)

// WithDir sets the directory used to locate the implicit .env and
// project config files. Defaults to the current working directory.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithConfigFile sets an explicit project config file. The file format
// is inferred from the path extension and the implicit project config
// files are not probed.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

// WithOverrides sets caller supplied values which unconditionally win
// over every other source. Keys may be dotted to address nested
// fields, for example "server.port".
func WithOverrides(overrides map[string]any) Option {
	return func(o *options) {
		o.overrides = overrides
	}
}

// WithLogger sets the logger used to report source resolution at
// debug level. Defaults to a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTemplateFunc registers the given function, f, under the given
// name for use in project config file templates. The project config
// file is only rendered as a text template when at least one template
// option is given.
func WithTemplateFunc(name string, f any) Option {
	return func(o *options) {
		o.tmplOpts = append(o.tmplOpts, config.TemplateFunc(name, f))
	}
}

// WithTemplateDelims sets the action delimiters used when rendering
// the project config file template.
func WithTemplateDelims(left, right string) Option {
	return func(o *options) {
		o.tmplOpts = append(o.tmplOpts, config.TemplateDelims(left, right))
	}
}

// Load resolves the settings type T by merging configuration sources,
// from lowest to highest precedence:
//
//   - default struct tag values (source "defaults")
//   - a project config file (source "project"): the explicit
//     [WithConfigFile] path or the first of utilityhub.toml,
//     utilityhub.yaml and utilityhub.yml found in the [WithDir]
//     directory
//   - a .env file in the [WithDir] directory (source "dotenv")
//   - process environment variables (source "env")
//   - [WithOverrides] values (source "runtime")
//
// The merged values are decoded into a T. All field failures, from
// missing required fields to unparseable values, are reported together
// as a single [ValidationError]. The returned [Metadata] records the
// winning source per field.
//
// Load never mutates the process environment and never writes files.
// A panic raised while resolving, by a custom text unmarshaler for
// example, is recovered and returned as a [PanicError].
func Load[T any](opts ...Option) (_ *T, _ *Metadata, err error) {
	defer try.Recover(&err)

	o := &options{
		dir:    ".",
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	s, err := schema.Of[T]()
	if err != nil {
		return nil, nil, SchemaError{Cause: err}
	}

	srcs, filesChecked, err := assembleSources(o, s)
	if err != nil {
		return nil, nil, err
	}

	m, err := config.Read(srcs...)
	if err != nil {
		return nil, nil, err
	}

	var fieldErrs []error
	for _, f := range s.Required() {
		if m.Has(f.Name) {
			continue
		}
		fieldErrs = append(fieldErrs, MissingFieldError{Name: f.Name})
	}

	cfg := new(T)
	err = m.Unmarshal(cfg)
	if err != nil {
		fieldErrs = append(fieldErrs, fieldErrors(err)...)
	}
	if len(fieldErrs) > 0 {
		return nil, nil, ValidationError{
			Fields:       fieldErrs,
			FilesChecked: filesChecked,
			Precedence:   precedence(),
		}
	}

	md := &Metadata{
		origins: make(map[string]config.Origin, len(s.Fields())),
	}
	for _, f := range s.Fields() {
		origin, ok := m.Origin(f.Name)
		if !ok {
			continue
		}
		md.origins[f.Name] = origin
	}
	return cfg, md, nil
}

func precedence() []string {
	return []string{
		config.SourceRuntime,
		config.SourceEnv,
		config.SourceDotenv,
		config.SourceProject,
		config.SourceDefaults,
	}
}

// fieldErrors splits an aggregate unmarshal failure back into its
// per field errors.
func fieldErrors(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}

func assembleSources(o *options, s *schema.Schema) ([]config.Source, []string, error) {
	srcs := make([]config.Source, 0, 5)

	if defaults := s.Defaults(); len(defaults) > 0 {
		o.logger.Debug("applying default values", zap.Int("fields", len(defaults)))
		srcs = append(srcs, config.Tag(
			config.Origin{Source: config.SourceDefaults},
			config.Map(defaults),
		))
	}

	project, filesChecked, err := projectSource(o)
	if err != nil {
		return nil, filesChecked, err
	}
	if project != nil {
		srcs = append(srcs, project)
	}

	if dotenv := dotenvSource(o, s); dotenv != nil {
		srcs = append(srcs, dotenv)
	}

	srcs = append(srcs, config.Tag(
		config.Origin{Source: config.SourceEnv},
		config.FromEnv(s.Keys()...),
	))

	if len(o.overrides) > 0 {
		o.logger.Debug("applying runtime overrides", zap.Int("keys", len(o.overrides)))
		srcs = append(srcs, config.Tag(
			config.Origin{Source: config.SourceRuntime},
			config.NestedMap(o.overrides),
		))
	}
	return srcs, filesChecked, nil
}

// projectSource resolves the project config file source, along with
// the list of file paths checked while resolving it.
func projectSource(o *options) (config.Source, []string, error) {
	if o.configFile != "" {
		src, err := fileSource(o.configFile, o)
		if err != nil {
			return nil, []string{o.configFile}, err
		}
		o.logger.Debug("using explicit project config file", zap.String("path", o.configFile))
		return src, []string{o.configFile}, nil
	}

	checked := make([]string, 0, len(implicitConfigNames))
	for _, name := range implicitConfigNames {
		path := filepath.Join(o.dir, name)
		checked = append(checked, path)

		_, err := os.Stat(path)
		if err != nil {
			continue
		}

		src, err := fileSource(path, o)
		if err != nil {
			return nil, checked, err
		}
		o.logger.Debug("found implicit project config file", zap.String("path", path))
		return src, checked, nil
	}
	return nil, checked, nil
}

func fileSource(path string, o *options) (config.Source, error) {
	var r io.Reader = config.NewFileReader(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if len(o.tmplOpts) > 0 {
		r = config.RenderTextTemplate(r, o.tmplOpts...)
	}

	var src config.Source
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		src = config.FromToml(r)
	case ".yaml", ".yml":
		src = config.FromYaml(r)
	case ".json":
		src = config.FromJson(r)
	default:
		return nil, UnsupportedConfigFormatError{Path: path}
	}
	return config.Tag(config.Origin{Source: config.SourceProject, Path: path}, src), nil
}

func dotenvSource(o *options, s *schema.Schema) config.Source {
	path := filepath.Join(o.dir, ".env")
	_, err := os.Stat(path)
	if err != nil {
		return nil
	}

	o.logger.Debug("found dotenv file", zap.String("path", path))
	r := config.NewFileReader(os.DirFS(o.dir), ".env")
	return config.Tag(
		config.Origin{Source: config.SourceDotenv, Path: path},
		config.FromDotenv(r, s.Keys()...),
	)
}
