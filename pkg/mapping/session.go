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

// Package mapping is the session facade of the entity mapping layer. A
// Session turns registered entity types into store statements, executes
// them through a backend.DataStore and materializes result rows back into
// entity instances.
package mapping

import (
	"context"

	"github.com/nblair/cassandra-driver-mapping/pkg/backend"
	"github.com/nblair/cassandra-driver-mapping/pkg/entity"
	"github.com/nblair/cassandra-driver-mapping/pkg/schema"

	log "github.com/sirupsen/logrus"
	"go.uber.org/yarpc/yarpcerrors"
)

// Session maps entity operations onto one keyspace of one DataStore.
// A Session is safe for concurrent use by multiple goroutines.
type Session struct {
	keyspace string
	store    backend.DataStore
	registry *entity.Registry

	// per-session compiled statement templates, keyed by table
	selectStmts *stmtCache
	deleteStmts *stmtCache

	// syncer reconciles table schemas once per type before first use,
	// nil disables schema reconciliation
	syncer schema.Syncer

	// strict turns per-field decode diagnostics into operation errors
	strict bool
}

// Option configures a Session at construction.
type Option func(*Session)

// WithSyncer enables schema reconciliation before the first operation on
// each entity type.
func WithSyncer(syncer schema.Syncer) Option {
	return func(s *Session) { s.syncer = syncer }
}

// WithStrictDecode makes reads fail when any row field cannot be decoded.
// The default logs the failure and keeps the partially populated entity.
func WithStrictDecode() Option {
	return func(s *Session) { s.strict = true }
}

// WithKeyspace overrides the keyspace used to qualify table names. The
// default is the store name.
func WithKeyspace(keyspace string) Option {
	return func(s *Session) { s.keyspace = keyspace }
}

// NewSession creates a mapping session over the store for all entity types
// in the registry.
func NewSession(
	store backend.DataStore, registry *entity.Registry, opts ...Option,
) *Session {
	s := &Session{
		keyspace:    store.Name(),
		store:       store,
		registry:    registry,
		selectStmts: newStmtCache(),
		deleteStmts: newStmtCache(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lookup resolves metadata for the prototype and runs the one-time schema
// reconciliation for the type.
func (s *Session) lookup(
	ctx context.Context, prototype interface{},
) (*entity.Metadata, error) {
	md, err := s.registry.Lookup(prototype)
	if err != nil {
		return nil, err
	}
	if err := s.maybeSync(ctx, md); err != nil {
		return nil, err
	}
	return md, nil
}

// maybeSync reconciles the table schema once per type. The flag only flips
// after a successful sync, so a failed sync is retried by the next
// operation.
func (s *Session) maybeSync(ctx context.Context, md *entity.Metadata) error {
	if s.syncer == nil || md.Synced() {
		return nil
	}
	if err := s.syncer.Sync(ctx, s.keyspace, md); err != nil {
		return err
	}
	md.MarkSynced()
	return nil
}

// entities applies the session decode mode to materialized rows.
func (s *Session) entities(
	md *entity.Metadata, results []RowResult,
) ([]interface{}, error) {
	out := make([]interface{}, 0, len(results))
	for _, r := range results {
		if r.Partial() {
			if s.strict {
				fe := r.FieldErrors[0]
				return nil, yarpcerrors.InternalErrorf(
					"decode row of table %q: column %q: %v (%d field errors)",
					md.Table, fe.Column, fe.Err, len(r.FieldErrors))
			}
			for _, fe := range r.FieldErrors {
				log.WithFields(log.Fields{
					"table":  md.Table,
					"column": fe.Column,
				}).WithError(fe.Err).Warn("skipping undecodable column")
			}
		}
		out = append(out, r.Entity)
	}
	return out, nil
}

// Get fetches one entity by primary key. The id is the key value for a
// scalar key or the key sub-object for a compound key. Returns nil without
// error when the row does not exist.
func (s *Session) Get(
	ctx context.Context,
	prototype interface{},
	id interface{},
	opts *ReadOptions,
) (interface{}, error) {
	md, err := s.lookup(ctx, prototype)
	if err != nil {
		return nil, err
	}
	idValues, err := md.IDValues(id)
	if err != nil {
		return nil, err
	}
	template, err := s.selectStmts.getOrCompile(
		md.Table, func() (*stmtTemplate, error) {
			return compileSelectByID(s.keyspace, md)
		})
	if err != nil {
		return nil, err
	}

	rs, err := s.store.Execute(ctx, template.bind(idValues...), opts.execOptions())
	if err != nil {
		return nil, err
	}
	rows, err := rs.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	results, err := Materialize(md, rows[:1])
	if err != nil {
		return nil, err
	}
	out, err := s.entities(md, results)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// GetByQuery fetches all entities matched by a built statement.
func (s *Session) GetByQuery(
	ctx context.Context,
	prototype interface{},
	stmt backend.Statement,
	opts *ReadOptions,
) ([]interface{}, error) {
	md, err := s.lookup(ctx, prototype)
	if err != nil {
		return nil, err
	}
	rs, err := s.store.Execute(ctx, stmt, opts.execOptions())
	if err != nil {
		return nil, err
	}
	rows, err := rs.All(ctx)
	if err != nil {
		return nil, err
	}
	results, err := Materialize(md, rows)
	if err != nil {
		return nil, err
	}
	return s.entities(md, results)
}

// GetByQueryString fetches all entities matched by a raw query string with
// positional args.
func (s *Session) GetByQueryString(
	ctx context.Context,
	prototype interface{},
	query string,
	args ...interface{},
) ([]interface{}, error) {
	return s.GetByQuery(ctx, prototype, backend.Raw(query, args...), nil)
}

// Save writes the full entity row. For a versioned type a zero or missing
// version inserts the row conditioned on non-existence, a positive version
// updates it conditioned on the prior version; either way the bound version
// is the old value plus one and is written back to the entity. The returned
// flag is false when a concurrent writer won the race; that is not an
// error and the write is not retried.
func (s *Session) Save(
	ctx context.Context, e interface{}, opts *WriteOptions,
) (bool, error) {
	md, err := s.lookup(ctx, e)
	if err != nil {
		return false, err
	}
	vs := readVersion(md, e)

	var stmt backend.Statement
	if vs != nil && vs.numeric && vs.old > 0 {
		stmt, err = buildUpdate(s.keyspace, md, e, vs, opts)
	} else {
		stmt, err = buildInsert(s.keyspace, md, e, vs, opts)
	}
	if err != nil {
		return false, err
	}

	if vs != nil && vs.numeric {
		if err := vs.fd.Set(e, vs.next); err != nil {
			return false, err
		}
	}

	rs, err := s.store.Execute(ctx, stmt, opts.execOptions())
	if err != nil {
		return false, err
	}
	return rs.Applied(), nil
}

// Delete removes the full row by primary key.
func (s *Session) Delete(
	ctx context.Context,
	prototype interface{},
	id interface{},
	opts *WriteOptions,
) error {
	md, err := s.lookup(ctx, prototype)
	if err != nil {
		return err
	}
	idValues, err := md.IDValues(id)
	if err != nil {
		return err
	}
	template, err := s.deleteStmts.getOrCompile(
		md.Table, func() (*stmtTemplate, error) {
			return compileDeleteByID(s.keyspace, md)
		})
	if err != nil {
		return err
	}
	_, err = s.store.Execute(ctx, template.bind(idValues...), opts.execOptions())
	return err
}

// mutate builds and executes one collection mutation. Empty input
// collections skip the store round trip entirely.
func (s *Session) mutate(
	ctx context.Context,
	prototype interface{},
	id interface{},
	field string,
	kind mutationKind,
	value interface{},
	idx int,
	opts *WriteOptions,
) error {
	if kind != mutationReplaceAt && emptyCollection(value) {
		return nil
	}
	md, err := s.lookup(ctx, prototype)
	if err != nil {
		return err
	}
	fd, err := md.FieldByName(field)
	if err != nil {
		return err
	}
	idValues, err := md.IDValues(id)
	if err != nil {
		return err
	}
	stmt, err := buildMutation(
		s.keyspace, md, fd, kind, value, idx, idValues, opts)
	if err != nil {
		return err
	}
	_, err = s.store.Execute(ctx, stmt, opts.execOptions())
	return err
}

// Append adds elements to a collection column: appends to a list, adds to
// a set, puts into a map. Appending nothing is a no-op.
func (s *Session) Append(
	ctx context.Context,
	prototype interface{},
	id interface{},
	field string,
	value interface{},
	opts *WriteOptions,
) error {
	return s.mutate(ctx, prototype, id, field, mutationAppend, value, 0, opts)
}

// Prepend inserts elements at the front of a list column. Prepending
// nothing is a no-op.
func (s *Session) Prepend(
	ctx context.Context,
	prototype interface{},
	id interface{},
	field string,
	value interface{},
	opts *WriteOptions,
) error {
	return s.mutate(ctx, prototype, id, field, mutationPrepend, value, 0, opts)
}

// ReplaceAt overwrites the element of a list column at the given index.
func (s *Session) ReplaceAt(
	ctx context.Context,
	prototype interface{},
	id interface{},
	field string,
	idx int,
	value interface{},
	opts *WriteOptions,
) error {
	return s.mutate(ctx, prototype, id, field, mutationReplaceAt, value, idx, opts)
}

// Remove discards elements from a collection column: values from a list or
// set, keys from a map. Removing nothing is a no-op.
func (s *Session) Remove(
	ctx context.Context,
	prototype interface{},
	id interface{},
	field string,
	value interface{},
	opts *WriteOptions,
) error {
	return s.mutate(ctx, prototype, id, field, mutationRemove, value, 0, opts)
}

// DeleteValue clears the content of one column by primary key.
func (s *Session) DeleteValue(
	ctx context.Context,
	prototype interface{},
	id interface{},
	field string,
	opts *WriteOptions,
) error {
	md, err := s.lookup(ctx, prototype)
	if err != nil {
		return err
	}
	fd, err := md.FieldByName(field)
	if err != nil {
		return err
	}
	if md.IsPKColumn(fd.Column) {
		return yarpcerrors.InvalidArgumentErrorf(
			"cannot delete primary key column %q of table %q",
			fd.Column, md.Table)
	}
	idValues, err := md.IDValues(id)
	if err != nil {
		return err
	}
	stmt, err := buildDeleteValue(s.keyspace, md, fd, idValues, opts)
	if err != nil {
		return err
	}
	_, err = s.store.Execute(ctx, stmt, opts.execOptions())
	return err
}
