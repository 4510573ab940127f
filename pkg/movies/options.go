package movies

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	catalogPath string
	corpusPath  string
	movies      []Movie
	corpus      []Description

	minVotes        int
	topK            int
	delimiter       string
	ngramMin        int
	ngramMax        int
	stopWords       string
	caseInsensitive bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithParquet loads the catalog and corpus tables from parquet files.
// An empty corpus path uses the catalog's overview column.
func WithParquet(catalogPath, corpusPath string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogPath = catalogPath
		c.corpusPath = corpusPath
	})
}

// WithMovies uses in-memory catalog rows instead of a parquet file.
func WithMovies(rows []Movie) Option {
	return optionFunc(func(c *clientConfig) {
		c.movies = rows
	})
}

// WithCorpus uses in-memory recommendation texts. Without it the corpus is
// built from the catalog overviews.
func WithCorpus(docs []Description) Option {
	return optionFunc(func(c *clientConfig) {
		c.corpus = docs
	})
}

// WithMinVotes sets the vote count VotesByTitle requires. Default: 2000.
func WithMinVotes(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.minVotes = n
	})
}

// WithTopK sets the number of recommended titles. Default: 5.
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = k
	})
}

// WithCreditDelimiter sets the separator of actor and director names.
// Default: ",".
func WithCreditDelimiter(d string) Option {
	return optionFunc(func(c *clientConfig) {
		c.delimiter = d
	})
}

// WithNgramRange sets the word n-gram sizes used for similarity. Default: 1..2.
func WithNgramRange(minN, maxN int) Option {
	return optionFunc(func(c *clientConfig) {
		c.ngramMin = minN
		c.ngramMax = maxN
	})
}

// WithStopWords selects the stop-word list: "english" (default) or "none".
func WithStopWords(list string) Option {
	return optionFunc(func(c *clientConfig) {
		c.stopWords = list
	})
}

// WithCaseInsensitiveTitles makes Recommend ignore title case.
func WithCaseInsensitiveTitles() Option {
	return optionFunc(func(c *clientConfig) {
		c.caseInsensitive = true
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
