// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package builtins

import (
	"sync"

	"github.com/gogpu/translator/ir"
	"github.com/gogpu/translator/symbols"
)

type cacheKey struct {
	stage ir.ShaderStage
	spec  ShaderSpec
	res   Resources
}

// Cache builds each built-in symbol table once and hands out forks of
// it. It is safe for concurrent use; the cached tables are never
// modified after construction.
type Cache struct {
	mu     sync.Mutex
	tables map[cacheKey]*symbols.Table
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{tables: make(map[cacheKey]*symbols.Table)}
}

// Table returns a fresh table sharing the cached built-in levels for
// the given stage, spec and resources.
func (c *Cache) Table(stage ir.ShaderStage, spec ShaderSpec, res Resources) *symbols.Table {
	key := cacheKey{stage: stage, spec: spec, res: res}

	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.tables[key]
	if !ok {
		t = InitBuiltInSymbolTable(stage, spec, res)
		c.tables[key] = t
	}

	return t.Fork()
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.tables)
}
