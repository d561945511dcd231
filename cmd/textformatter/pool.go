package main

import (
	"context"
	"fmt"

	textformatter "github.com/alnah/go-textformatter"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input textformatter.Input) (*textformatter.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*textformatter.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// converterPool adapts textformatter.ConverterPool to Pool.
type converterPool struct {
	pool *textformatter.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

// newConverterPool creates a pool of size converters sharing opts.
func newConverterPool(size int, opts ...textformatter.Option) Pool {
	return &converterPool{pool: textformatter.NewConverterPool(size, opts...)}
}

func (p *converterPool) Acquire() (CLIConverter, error) {
	conv, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics if c was not acquired from this pool (programmer error).
func (p *converterPool) Release(c CLIConverter) {
	conv, ok := c.(*textformatter.Converter)
	if !ok {
		panic(fmt.Sprintf("converterPool.Release: unexpected type %T", c))
	}
	p.pool.Release(conv)
}

func (p *converterPool) Size() int {
	return p.pool.Size()
}

func (p *converterPool) Close() error {
	return p.pool.Close()
}
