package lang

import "github.com/ardnew/litcfg/log"

// Limits applied when no option overrides them.
const (
	// DefaultMaxDepth bounds the nesting of class blocks.
	DefaultMaxDepth = 16
	// DefaultMaxNesting bounds syntactic nesting of brackets, operators
	// and blocks while parsing.
	DefaultMaxNesting = 200
)

// Option configures parsing, loading and rewriting.
type Option func(*config)

type config struct {
	logger     log.Logger
	indent     string // indentation unit for new blocks; detected if empty
	newline    string // line break for new lines; detected if empty
	maxDepth   int
	maxNesting int
}

func makeConfig(opts ...Option) config {
	cfg := config{
		maxDepth:   DefaultMaxDepth,
		maxNesting: DefaultMaxNesting,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithMaxDepth sets the maximum class block nesting.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithMaxNesting sets the maximum syntactic nesting accepted by the parser.
func WithMaxNesting(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxNesting = depth
		}
	}
}

// WithLogger sets the logger for trace output.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithIndent sets the indentation unit used for inserted blocks instead of
// the one detected from the document.
func WithIndent(unit string) Option {
	return func(c *config) { c.indent = unit }
}

// WithNewline sets the line break used for inserted lines instead of the
// one detected from the document.
func WithNewline(nl string) Option {
	return func(c *config) { c.newline = nl }
}
