package arama

import "go.uber.org/zap"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	embedder   Embedder
	hashedDims int

	collection string
	seedFile   string

	lexical      bool
	threshold    int
	fallbackTopN int
	topK         int

	hnswM           int
	hnswEFConstruct int

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithEmbedder sets the text embedding provider. Mutually exclusive with
// WithHashedEmbedder; the last call wins.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
		c.hashedDims = 0
	})
}

// WithHashedEmbedder switches to the in-process hashed bag-of-words embedder
// at the given dimension. No external provider is needed.
func WithHashedEmbedder(dimensions int) Option {
	return optionFunc(func(c *clientConfig) {
		c.hashedDims = dimensions
		c.embedder = nil
	})
}

// WithCollection sets the collection name. Default: "documents".
func WithCollection(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.collection = name
	})
}

// WithSeedFile sets a newline-delimited corpus loaded when the collection is
// created or rebuilt.
func WithSeedFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.seedFile = path
	})
}

// WithLexical enables blending Turkish lexical overlap into result scores.
func WithLexical() Option {
	return optionFunc(func(c *clientConfig) {
		c.lexical = true
	})
}

// WithRerank overrides the score threshold and fallback size. Zero values
// keep the mode-dependent defaults.
func WithRerank(threshold, fallbackTopN int) Option {
	return optionFunc(func(c *clientConfig) {
		c.threshold = threshold
		c.fallbackTopN = fallbackTopN
	})
}

// WithTopK sets how many ANN candidates to retrieve per search. Default: 10.
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = k
	})
}

// WithHNSW configures HNSW index parameters (M and EF construction).
// Defaults: M=32, EFConstruct=400.
func WithHNSW(m, efConstruct int) Option {
	return optionFunc(func(c *clientConfig) {
		c.hnswM = m
		c.hnswEFConstruct = efConstruct
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
