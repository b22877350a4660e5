package odbc

import (
	"io"
	"log"
)

// DefaultChunkSize is the number of elements requested by the first
// retrieval call for a variable-length column.
const DefaultChunkSize = 256

// minChunkSize keeps every chunk larger than a wide-character terminator.
const minChunkSize = 2

type options struct {
	logger    *log.Logger
	chunkSize int
	prompt    bool
}

func defaultOptions() options {
	return options{
		logger:    log.New(io.Discard, "", 0),
		chunkSize: DefaultChunkSize,
	}
}

// Option configures a Connection and the Queries it creates.
type Option func(*options)

// WithLogger sets the logger that traces connects, statements and buffer
// growth. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithInitialChunk sets the number of elements requested by the first
// retrieval call for a variable-length column. Values below 2 are raised to 2.
func WithInitialChunk(n int) Option {
	return func(o *options) {
		if n < minChunkSize {
			n = minChunkSize
		}
		o.chunkSize = n
	}
}

// WithPrompt lets the driver prompt for missing connection details when the
// connection is opened with Open.
func WithPrompt(prompt bool) Option {
	return func(o *options) {
		o.prompt = prompt
	}
}
