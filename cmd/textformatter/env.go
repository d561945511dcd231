package main

import (
	"io"
	"os"
	"time"

	textformatter "github.com/alnah/go-textformatter"
	"github.com/alnah/go-textformatter/internal/config"
)

// PoolFactory builds the converter pool once options are resolved.
type PoolFactory func(size int, opts ...textformatter.Option) Pool

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and pool construction.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config // Used when no --config is given
	NewPool PoolFactory
	Getwd   func() (string, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  config.DefaultConfig(),
		NewPool: newConverterPool,
		Getwd:   os.Getwd,
	}
}
