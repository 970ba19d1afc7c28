package app

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Logger receives diagnostics; it never sees passphrases or plaintext
	Logger zerolog.Logger

	// Out receives formatted command output
	Out io.Writer

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool

	// Keychain and recovery settings
	KDFBackend string
	IgnoreHMAC bool
	Workers    int
	SkipFailed bool

	// Progress reporting
	ProgressCallback func(message string, percent int)
}

// NewContext creates a new application context
func NewContext() *Context {
	return &Context{
		Context:      context.Background(),
		Logger:       zerolog.Nop(),
		Out:          os.Stdout,
		OutputFormat: "table",
		KDFBackend:   "auto",
		Workers:      4,
	}
}

// SetProgress sets the progress callback function
func (c *Context) SetProgress(callback func(string, int)) {
	c.ProgressCallback = callback
}

// Progress reports progress if callback is set
func (c *Context) Progress(message string, percent int) {
	if c.ProgressCallback != nil {
		c.ProgressCallback(message, percent)
	}
}

// Log writes a debug message; it shows with --verbose
func (c *Context) Log(message string) {
	c.Logger.Debug().Msg(message)
}

// Error writes an error message unless quiet
func (c *Context) Error(message string) {
	if !c.Quiet {
		c.Logger.Error().Msg(message)
	}
}
