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
	"reflect"

	"github.com/nblair/cassandra-driver-mapping/pkg/backend"
	"github.com/nblair/cassandra-driver-mapping/pkg/entity"
	qb "github.com/nblair/cassandra-driver-mapping/pkg/querybuilder"

	"go.uber.org/yarpc/yarpcerrors"
)

// mutationKind selects the collection operation of a partial mutation.
type mutationKind int

const (
	mutationAppend mutationKind = iota
	mutationPrepend
	mutationReplaceAt
	mutationRemove
)

func (k mutationKind) String() string {
	switch k {
	case mutationAppend:
		return "append"
	case mutationPrepend:
		return "prepend"
	case mutationReplaceAt:
		return "replaceAt"
	case mutationRemove:
		return "remove"
	}
	return "unknown"
}

// toInt64 reports the value as an int64 when it holds any integer type.
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	}
	return 0, false
}

// versionState captures the optimistic lock field of one entity before a
// write. A non-integer version value disables conditioning; the value is
// written back unchanged.
type versionState struct {
	fd      *entity.FieldDescriptor
	old     int64
	next    int64
	numeric bool
	raw     interface{}
}

func readVersion(md *entity.Metadata, e interface{}) *versionState {
	if md.Version == nil {
		return nil
	}
	raw := md.Version.Get(e)
	vs := &versionState{fd: md.Version, raw: raw}
	if raw == nil {
		vs.numeric = true
		vs.old = 0
		vs.next = 1
		return vs
	}
	if n, ok := toInt64(raw); ok {
		vs.numeric = true
		vs.old = n
		vs.next = n + 1
	}
	return vs
}

// buildInsert builds the full row insert for an entity. When the type is
// versioned and the version value is an integer, the incremented version is
// bound in place of the old one and the insert is conditioned on the row
// not existing. The incremented value is also written back to the entity.
func buildInsert(
	keyspace string,
	md *entity.Metadata,
	e interface{},
	vs *versionState,
	opts *WriteOptions,
) (backend.Statement, error) {
	columns := make([]string, 0, len(md.Fields))
	values := make([]interface{}, 0, len(md.Fields))
	for _, fd := range md.Fields {
		columns = append(columns, fd.Column)
		if vs != nil && fd == vs.fd && vs.numeric {
			values = append(values, vs.next)
			continue
		}
		values = append(values, md.FieldValue(e, fd))
	}

	stmt := qb.Insert(md.QualifiedTable(keyspace)).
		Columns(columns...).
		Values(values...)
	if vs != nil && vs.numeric {
		stmt = stmt.IfNotExist()
	}
	usings, usingArgs := opts.usingClauses()
	for i, u := range usings {
		stmt = stmt.Using(u, usingArgs[i])
	}
	return stmt, nil
}

// buildUpdate builds the full row update for an entity. Non-key columns are
// SET, primary key columns become WHERE equality predicates in declaration
// order, and a numeric version turns the update into a compare-and-set on
// the prior value.
func buildUpdate(
	keyspace string,
	md *entity.Metadata,
	e interface{},
	vs *versionState,
	opts *WriteOptions,
) (backend.Statement, error) {
	stmt := qb.Update(md.QualifiedTable(keyspace))

	usings, usingArgs := opts.usingClauses()
	for i, u := range usings {
		stmt = stmt.Using(u, usingArgs[i])
	}

	for _, fd := range md.Fields {
		if md.IsPKColumn(fd.Column) {
			continue
		}
		if vs != nil && fd == vs.fd {
			if vs.numeric {
				stmt = stmt.Set(fd.Column, vs.next)
			} else {
				stmt = stmt.Set(fd.Column, vs.raw)
			}
			continue
		}
		stmt = stmt.Set(fd.Column, md.FieldValue(e, fd))
	}

	pkValues, err := md.PKValues(e)
	if err != nil {
		return nil, err
	}
	for i, column := range md.PKColumns {
		stmt = stmt.Where(qb.Eq{column: pkValues[i]})
	}

	if vs != nil && vs.numeric {
		stmt = stmt.IfOnly(qb.Eq{vs.fd.Column: vs.old})
	}
	return stmt, nil
}

// emptyCollection reports whether the mutation input holds no elements.
// Mutating with an empty collection is a no-op upstream.
func emptyCollection(value interface{}) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	}
	return false
}

// mutationMismatch builds the error for an operation the declared column
// type cannot support.
func mutationMismatch(
	md *entity.Metadata, fd *entity.FieldDescriptor, kind mutationKind,
) error {
	return yarpcerrors.InvalidArgumentErrorf(
		"cannot %s on column %q of table %q: declared type %s does not support it",
		kind, fd.Column, md.Table, fd.Type)
}

// buildMutation builds a single collection mutation update. The operation
// is chosen by the declared column type; a kind the type cannot support is
// an InvalidArgument error, never a silent no-op.
func buildMutation(
	keyspace string,
	md *entity.Metadata,
	fd *entity.FieldDescriptor,
	kind mutationKind,
	value interface{},
	idx int,
	idValues []interface{},
	opts *WriteOptions,
) (backend.Statement, error) {
	stmt := qb.Update(md.QualifiedTable(keyspace))

	usings, usingArgs := opts.usingClauses()
	for i, u := range usings {
		stmt = stmt.Using(u, usingArgs[i])
	}

	switch kind {
	case mutationAppend:
		if !fd.Type.IsCollection() {
			return nil, mutationMismatch(md, fd, kind)
		}
		stmt = stmt.Add(fd.Column, value)
	case mutationRemove:
		if !fd.Type.IsCollection() {
			return nil, mutationMismatch(md, fd, kind)
		}
		stmt = stmt.Remove(fd.Column, value)
	case mutationPrepend:
		if fd.Type != entity.List {
			return nil, mutationMismatch(md, fd, kind)
		}
		stmt = stmt.Prepend(fd.Column, value)
	case mutationReplaceAt:
		if fd.Type != entity.List {
			return nil, mutationMismatch(md, fd, kind)
		}
		stmt = stmt.SetAt(fd.Column, idx, value)
	default:
		return nil, yarpcerrors.InvalidArgumentErrorf(
			"unknown mutation kind %d", kind)
	}

	for i, column := range md.PKColumns {
		stmt = stmt.Where(qb.Eq{column: idValues[i]})
	}
	return stmt, nil
}

// buildDeleteValue builds a single column content delete.
func buildDeleteValue(
	keyspace string,
	md *entity.Metadata,
	fd *entity.FieldDescriptor,
	idValues []interface{},
	opts *WriteOptions,
) (backend.Statement, error) {
	stmt := qb.Delete(fd.Column).From(md.QualifiedTable(keyspace))

	usings, usingArgs := opts.usingClauses()
	for i, u := range usings {
		stmt = stmt.Using(u, usingArgs[i])
	}

	for i, column := range md.PKColumns {
		stmt = stmt.Where(qb.Eq{column: idValues[i]})
	}
	return stmt, nil
}

// compileSelectByID compiles the per-table select-by-id template: all
// mapped columns, one equality marker per primary key column in
// declaration order.
func compileSelectByID(keyspace string, md *entity.Metadata) (*stmtTemplate, error) {
	stmt := qb.Select(md.ColumnNames()...).From(md.QualifiedTable(keyspace))
	for _, column := range md.PKColumns {
		stmt = stmt.Where(column + " = ?")
	}
	query, _, err := stmt.ToSQL()
	if err != nil {
		return nil, err
	}
	return &stmtTemplate{query: query, typ: qb.SelectStmtType}, nil
}

// compileDeleteByID compiles the per-table full row delete template.
func compileDeleteByID(keyspace string, md *entity.Metadata) (*stmtTemplate, error) {
	stmt := qb.Delete().From(md.QualifiedTable(keyspace))
	for _, column := range md.PKColumns {
		stmt = stmt.Where(column + " = ?")
	}
	query, _, err := stmt.ToSQL()
	if err != nil {
		return nil, err
	}
	return &stmtTemplate{query: query, typ: qb.DeleteStmtType}, nil
}
