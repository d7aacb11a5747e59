// Package app provides the small container and logging setup the CLI
// entrypoint needs: stdio handles and a configured zap.Logger, in the
// style of buf's app/applog containers but trimmed to just what this
// single-command server uses.
package app

import (
	"io"
	"os"

	"go.uber.org/zap"
)

// Container bundles the process's stdio handles with a configured logger,
// so command code never reaches for os.Stdin/os.Stdout/os.Stderr directly
// and stays testable against fakes.
type Container interface {
	Stdin() io.Reader
	Stdout() io.Writer
	Stderr() io.Writer
	Logger() *zap.Logger
}

type osContainer struct {
	logger *zap.Logger
}

// NewOSContainer builds a Container backed by the process's real stdio and
// the given logger.
func NewOSContainer(logger *zap.Logger) Container {
	return &osContainer{logger: logger}
}

func (c *osContainer) Stdin() io.Reader  { return os.Stdin }
func (c *osContainer) Stdout() io.Writer { return os.Stdout }
func (c *osContainer) Stderr() io.Writer { return os.Stderr }
func (c *osContainer) Logger() *zap.Logger { return c.logger }
