/*
Package config defines the options recognized by the codegraph core
(spec §6.5) and a thin loader built on viper. Config loading is an
external collaborator of the core proper (the core never reads its own
config file); this package exists so hosting applications and tests
share one definition of the recognized options instead of redefining
them ad hoc.
*/
package config

import (
	"github.com/spf13/viper"
)

/*
BackendKind selects which storage.Backend implementation a graph opens.
*/
type BackendKind string

const (
	BackendMemory BackendKind = "memory"
	BackendBolt   BackendKind = "bolt"
)

/*
Options holds every configuration item the core and its front-end
collaborators recognize.
*/
type Options struct {
	// Backend selection
	BackendKind BackendKind
	Path        string

	// Front-end facing options (core stores what it is given; enforcement
	// of these lives in the front-end, per spec §6.5)
	MaxFileSize    int64
	IncludePrivate bool
	IncludeTests   bool

	// Algorithm bound (§4.3). The algo package does not read this field;
	// algo.AllPaths takes its ceiling as a parameter.
	MaxTraversalDepth int

	// Export guardrails (§4.5). The export package does not read these
	// fields; each exporter takes an export.Guardrails value.
	ExportSizeWarn int
	ExportSizeFail int

	// On-disk layout version (§6.3). graph.Open checks a store against its
	// own graph.CurrentSchemaVersion constant, not against this field.
	SchemaVersion int
}

/*
Default returns the option set new graphs are expected to use absent any
override.
*/
func Default() *Options {
	return &Options{
		BackendKind:       BackendMemory,
		MaxFileSize:       5 << 20, // 5 MiB
		IncludePrivate:    true,
		IncludeTests:      true,
		MaxTraversalDepth: 64,
		ExportSizeWarn:    10_000,
		ExportSizeFail:    100_000,
		SchemaVersion:     1,
	}
}

/*
Load reads options from a config file (any format viper supports: yaml,
json, toml, ...) at path, filling unset fields with Default()'s values.
*/
func Load(path string) (*Options, error) {
	opts := Default()

	v := viper.New()
	v.SetConfigFile(path)

	bindDefaults(v, opts)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	out := &Options{
		BackendKind:       BackendKind(v.GetString("backend_kind")),
		Path:              v.GetString("path"),
		MaxFileSize:       v.GetInt64("max_file_size"),
		IncludePrivate:    v.GetBool("include_private"),
		IncludeTests:      v.GetBool("include_tests"),
		MaxTraversalDepth: v.GetInt("max_traversal_depth"),
		ExportSizeWarn:    v.GetInt("export_size_warn"),
		ExportSizeFail:    v.GetInt("export_size_fail"),
		SchemaVersion:     v.GetInt("schema_version"),
	}

	return out, nil
}

func bindDefaults(v *viper.Viper, opts *Options) {
	v.SetDefault("backend_kind", string(opts.BackendKind))
	v.SetDefault("path", opts.Path)
	v.SetDefault("max_file_size", opts.MaxFileSize)
	v.SetDefault("include_private", opts.IncludePrivate)
	v.SetDefault("include_tests", opts.IncludeTests)
	v.SetDefault("max_traversal_depth", opts.MaxTraversalDepth)
	v.SetDefault("export_size_warn", opts.ExportSizeWarn)
	v.SetDefault("export_size_fail", opts.ExportSizeFail)
	v.SetDefault("schema_version", opts.SchemaVersion)
}
