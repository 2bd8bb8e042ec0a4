// Copyright (c) 2026 The cassandra-driver-mapping Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mapping

import (
	"sync"

	qb "github.com/nblair/cassandra-driver-mapping/pkg/querybuilder"
)

// stmtTemplate is a compiled statement with positional bind markers. A
// template is immutable once published into the cache; bind produces a
// fresh executable statement for each use.
type stmtTemplate struct {
	query string
	typ   qb.StmtType
}

func (t *stmtTemplate) bind(args ...interface{}) *boundStatement {
	return &boundStatement{query: t.query, args: args, typ: t.typ}
}

// boundStatement pairs a template with one set of args. It is never
// conditional; CAS statements are built fresh every time.
type boundStatement struct {
	query string
	args  []interface{}
	typ   qb.StmtType
}

func (s *boundStatement) ToSQL() (string, []interface{}, error) {
	return s.query, s.args, nil
}

func (s *boundStatement) StmtType() qb.StmtType {
	return s.typ
}

func (s *boundStatement) IsCAS() bool {
	return false
}

// stmtCache holds one compiled template per table. Each session owns its
// caches, one for selects and one for deletes; nothing is shared across
// sessions.
type stmtCache struct {
	mu        sync.RWMutex
	templates map[string]*stmtTemplate
}

func newStmtCache() *stmtCache {
	return &stmtCache{templates: map[string]*stmtTemplate{}}
}

// getOrCompile returns the cached template for the table, compiling it on
// first use. Concurrent first uses may compile more than once but publish
// exactly one template.
func (c *stmtCache) getOrCompile(
	table string, compile func() (*stmtTemplate, error),
) (*stmtTemplate, error) {
	c.mu.RLock()
	t, ok := c.templates[table]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	compiled, err := compile()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.templates[table]; ok {
		return t, nil
	}
	c.templates[table] = compiled
	return compiled, nil
}
