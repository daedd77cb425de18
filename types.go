package schematic

import (
	"go.uber.org/zap"

	"github.com/reoring/schematic/jsonschema"
)

// GenerateOpt bundles generation options.
type GenerateOpt struct {
	Logger  *zap.Logger        // Debug logging of promotions and references; nil disables.
	Workers int                // Concurrent roots in GenerateAll; <= 0 means one per root.
	Dialect jsonschema.Dialect // Keyword dialect used by the JSON/YAML helpers.
	Indent  int                // Spaces per level for the helpers; 0 is compact JSON.
}

// Option mutates GenerateOpt.
type Option func(*GenerateOpt)

// WithLogger routes engine debug logs to l.
func WithLogger(l *zap.Logger) Option { return func(o *GenerateOpt) { o.Logger = l } }

// WithWorkers bounds the number of roots GenerateAll derives at once.
func WithWorkers(n int) Option { return func(o *GenerateOpt) { o.Workers = n } }

// WithDialect selects the keyword dialect for MarshalJSON/MarshalYAML.
func WithDialect(d jsonschema.Dialect) Option { return func(o *GenerateOpt) { o.Dialect = d } }

// WithIndent sets the indentation of MarshalJSON/MarshalYAML output.
func WithIndent(n int) Option { return func(o *GenerateOpt) { o.Indent = n } }

func buildOpts(opts []Option) GenerateOpt {
	o := GenerateOpt{Indent: 2}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
