package main

import (
	"context"
	"fmt"

	md2site "github.com/alnah/go-md2site"
)

// PageConverter is the interface for converting one page.
type PageConverter interface {
	Convert(ctx context.Context, input md2site.Input) (*md2site.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ PageConverter = (*md2site.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (PageConverter, error)
	Release(PageConverter)
	Size() int
}

// poolAdapter exposes a md2site.ConverterPool as a Pool.
type poolAdapter struct {
	pool *md2site.ConverterPool
}

func (a *poolAdapter) Acquire() (PageConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics when handed a converter the pool did not create.
func (a *poolAdapter) Release(c PageConverter) {
	conv, ok := c.(*md2site.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}
