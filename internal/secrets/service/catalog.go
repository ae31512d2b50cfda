// Package service assembles the catalog of declared secrets from registered providers.
package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
)

// DeclarationProvider contributes secret declarations. Implementations may block on I/O;
// ctx bounds the call.
type DeclarationProvider interface {
	Declarations(ctx context.Context) ([]secretsDomain.Declaration, error)
}

// ProviderFunc adapts a function to DeclarationProvider.
type ProviderFunc func(ctx context.Context) ([]secretsDomain.Declaration, error)

// Declarations calls f.
func (f ProviderFunc) Declarations(ctx context.Context) ([]secretsDomain.Declaration, error) {
	return f(ctx)
}

// StaticProvider returns a fixed declaration list.
type StaticProvider []secretsDomain.Declaration

// Declarations returns a copy of the list.
func (p StaticProvider) Declarations(context.Context) ([]secretsDomain.Declaration, error) {
	out := make([]secretsDomain.Declaration, len(p))
	copy(out, p)
	return out, nil
}

// Catalog merges declarations from its providers in registration order.
type Catalog struct {
	providers []DeclarationProvider
}

// NewCatalog creates a catalog over providers. Nil providers are skipped.
func NewCatalog(providers ...DeclarationProvider) *Catalog {
	c := &Catalog{}
	for _, p := range providers {
		if p != nil {
			c.providers = append(c.providers, p)
		}
	}
	return c
}

// List invokes every provider concurrently and merges the results in registration order.
// The first declaration of a name wins and later duplicates are dropped. The built-in
// EXAMPLE_SECRET is appended last even when a provider already declared it.
func (c *Catalog) List(ctx context.Context) ([]secretsDomain.Declaration, error) {
	results := make([][]secretsDomain.Declaration, len(c.providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range c.providers {
		g.Go(func() error {
			decls, err := p.Declarations(gctx)
			if err != nil {
				return fmt.Errorf("secret provider %d: %w", i, err)
			}
			results[i] = decls
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	merged := make([]secretsDomain.Declaration, 0)
	for _, decls := range results {
		for _, d := range decls {
			if _, dup := seen[d.Name]; dup {
				continue
			}
			seen[d.Name] = struct{}{}
			merged = append(merged, d)
		}
	}

	return append(merged, secretsDomain.ExampleDeclaration), nil
}

// Lookup returns the first declaration named name. Declarations are advisory:
// a false result does not stop resolution.
func (c *Catalog) Lookup(ctx context.Context, name string) (*secretsDomain.Declaration, bool, error) {
	decls, err := c.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range decls {
		if decls[i].Name == name {
			return &decls[i], true, nil
		}
	}
	return nil, false, nil
}
