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

// Package entity describes how a storage object maps onto a table of a
// wide-row column store. Instead of inspecting struct tags at query time,
// every entity type registers an explicit descriptor table once: column
// names, declared store types, key ownership and accessor funcs. The
// mapping layer consumes the descriptors and never mutates them.
package entity

import (
	"reflect"

	"go.uber.org/atomic"
	"go.uber.org/yarpc/yarpcerrors"
)

// isNilValue reports whether v is nil or a nil pointer boxed in a non-nil
// interface, which is what an accessor returns for an unset sub-object.
func isNilValue(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Role describes which object a field value lives on and how the mapping
// layer treats it.
type Role int

// Field ownership roles
const (
	// RolePlain is a regular value column on the entity itself
	RolePlain Role = iota
	// RolePrimaryKey is a column held by the compound primary key sub-object
	RolePrimaryKey
	// RolePartitionKey is a column held by the partition key sub-object
	// nested inside the compound primary key
	RolePartitionKey
	// RoleVersion is the optimistic concurrency counter column
	RoleVersion
)

// FieldDescriptor maps one property of an entity to one column.
//
// Get reads the value from the object owning the field (the entity, the
// compound key or the partition key, depending on Role). Set writes a
// decoded value back to the owning object and reports a type mismatch as
// an error.
type FieldDescriptor struct {
	// Name of the property, used to address the field in partial mutations
	Name string
	// Column name in the table
	Column string
	// Type is the declared store type of the column
	Type DataType
	// KeyType and ElemType refine collection columns for DDL generation.
	// KeyType is only meaningful for map columns.
	KeyType  DataType
	ElemType DataType
	// Role of the field
	Role Role

	Get func(owner interface{}) interface{}
	Set func(owner interface{}, value interface{}) error
}

// KeyDescriptor describes a compound primary key sub-object. A primary key
// may itself be an object with its own fields, one of which may be a nested
// partition key object.
type KeyDescriptor struct {
	// New instantiates an empty key sub-object
	New func() interface{}
	// Field is the descriptor of the parent field holding the sub-object
	Field *FieldDescriptor
	// Partition is the nested partition key sub-object, if any
	Partition *KeyDescriptor
}

// Metadata is the immutable mapping description of one entity type. It is
// built once at registration and shared by every caller afterwards; only
// the synced flag ever changes.
type Metadata struct {
	// Table name, unqualified
	Table string
	// New instantiates an empty entity
	New func() interface{}
	// Fields in declaration order
	Fields []*FieldDescriptor
	// PKColumns are the primary key column names in declaration order.
	// Positional parameter binding relies on this order everywhere.
	PKColumns []string
	// Version is the optimistic lock field, nil when the type is unversioned
	Version *FieldDescriptor
	// Key is the compound primary key descriptor, nil for scalar keys
	Key *KeyDescriptor

	synced atomic.Bool

	fieldsByName   map[string]*FieldDescriptor
	fieldsByColumn map[string]*FieldDescriptor
}

// QualifiedTable returns the keyspace qualified table identity.
func (m *Metadata) QualifiedTable(keyspace string) string {
	if len(keyspace) == 0 {
		return m.Table
	}
	return keyspace + "." + m.Table
}

// FieldByName looks a field up by property name.
func (m *Metadata) FieldByName(name string) (*FieldDescriptor, error) {
	if fd, ok := m.fieldsByName[name]; ok {
		return fd, nil
	}
	return nil, yarpcerrors.NotFoundErrorf(
		"no mapped field %q on table %q", name, m.Table)
}

// FieldByColumn looks a field up by column name.
func (m *Metadata) FieldByColumn(column string) (*FieldDescriptor, error) {
	if fd, ok := m.fieldsByColumn[column]; ok {
		return fd, nil
	}
	return nil, yarpcerrors.NotFoundErrorf(
		"no mapped column %q on table %q", column, m.Table)
}

// IsPKColumn returns true if the column is part of the primary key.
func (m *Metadata) IsPKColumn(column string) bool {
	for _, c := range m.PKColumns {
		if c == column {
			return true
		}
	}
	return false
}

// ColumnNames returns all mapped column names in declaration order.
func (m *Metadata) ColumnNames() []string {
	names := make([]string, 0, len(m.Fields))
	for _, fd := range m.Fields {
		names = append(names, fd.Column)
	}
	return names
}

// keyValue reads one primary key column value out of the id. For a scalar
// key the id itself is the value. For a compound key the id is the key
// sub-object and the value is read through the field's accessor, descending
// into the nested partition key object when the field belongs to it.
func (m *Metadata) keyValue(id interface{}, fd *FieldDescriptor) interface{} {
	if m.Key == nil {
		return id
	}
	owner := id
	if fd.Role == RolePartitionKey && m.Key.Partition != nil {
		owner = m.Key.Partition.Field.Get(id)
	}
	if isNilValue(owner) {
		return nil
	}
	return fd.Get(owner)
}

// FieldValue reads one field value off an entity instance, descending into
// the compound key and partition key sub-objects when the field lives there.
func (m *Metadata) FieldValue(e interface{}, fd *FieldDescriptor) interface{} {
	if m.Key != nil &&
		(fd.Role == RolePrimaryKey || fd.Role == RolePartitionKey) {
		id := m.Key.Field.Get(e)
		if isNilValue(id) {
			return nil
		}
		return m.keyValue(id, fd)
	}
	return fd.Get(e)
}

// IDValues extracts the primary key values from an id in PKColumns order.
// The id is either the scalar key value or the compound key sub-object.
func (m *Metadata) IDValues(id interface{}) ([]interface{}, error) {
	if m.Key == nil && len(m.PKColumns) > 1 {
		return nil, yarpcerrors.InvalidArgumentErrorf(
			"table %q has a composite key, pass the key object as id", m.Table)
	}
	values := make([]interface{}, 0, len(m.PKColumns))
	for _, column := range m.PKColumns {
		fd, err := m.FieldByColumn(column)
		if err != nil {
			return nil, err
		}
		values = append(values, m.keyValue(id, fd))
	}
	return values, nil
}

// PKValues extracts the primary key values from an entity instance in
// PKColumns order.
func (m *Metadata) PKValues(e interface{}) ([]interface{}, error) {
	if m.Key == nil {
		// key columns live directly on the entity
		values := make([]interface{}, 0, len(m.PKColumns))
		for _, column := range m.PKColumns {
			fd, err := m.FieldByColumn(column)
			if err != nil {
				return nil, err
			}
			values = append(values, fd.Get(e))
		}
		return values, nil
	}
	id := m.Key.Field.Get(e)
	if isNilValue(id) {
		return nil, yarpcerrors.InvalidArgumentErrorf(
			"entity for table %q has no primary key object", m.Table)
	}
	return m.IDValues(id)
}

// Synced reports whether schema reconciliation ran for this type.
func (m *Metadata) Synced() bool {
	return m.synced.Load()
}

// MarkSynced flips the synced flag, it is never unset.
func (m *Metadata) MarkSynced() {
	m.synced.Store(true)
}

// Validate checks the descriptor table and builds the lookup indexes. The
// registry runs it at registration; metadata built outside a registry must
// be validated before use.
func (m *Metadata) Validate() error {
	if len(m.Table) == 0 {
		return yarpcerrors.InvalidArgumentErrorf("metadata has no table name")
	}
	if m.New == nil {
		return yarpcerrors.InvalidArgumentErrorf(
			"metadata for table %q has no entity factory", m.Table)
	}
	if len(m.Fields) == 0 {
		return yarpcerrors.InvalidArgumentErrorf(
			"metadata for table %q has no fields", m.Table)
	}
	if len(m.PKColumns) == 0 {
		return yarpcerrors.InvalidArgumentErrorf(
			"metadata for table %q has no primary key columns", m.Table)
	}

	m.fieldsByName = make(map[string]*FieldDescriptor, len(m.Fields))
	m.fieldsByColumn = make(map[string]*FieldDescriptor, len(m.Fields))
	var version *FieldDescriptor
	for _, fd := range m.Fields {
		if fd.Get == nil || fd.Set == nil {
			return yarpcerrors.InvalidArgumentErrorf(
				"field %q of table %q has no accessors", fd.Name, m.Table)
		}
		if _, ok := m.fieldsByName[fd.Name]; ok {
			return yarpcerrors.InvalidArgumentErrorf(
				"duplicate field %q on table %q", fd.Name, m.Table)
		}
		if _, ok := m.fieldsByColumn[fd.Column]; ok {
			return yarpcerrors.InvalidArgumentErrorf(
				"duplicate column %q on table %q", fd.Column, m.Table)
		}
		m.fieldsByName[fd.Name] = fd
		m.fieldsByColumn[fd.Column] = fd

		if fd.Role == RoleVersion {
			if version != nil {
				return yarpcerrors.InvalidArgumentErrorf(
					"table %q declares more than one version field", m.Table)
			}
			version = fd
		}
	}
	m.Version = version

	for _, column := range m.PKColumns {
		if _, ok := m.fieldsByColumn[column]; !ok {
			return yarpcerrors.InvalidArgumentErrorf(
				"primary key column %q of table %q is not mapped",
				column, m.Table)
		}
	}

	if m.Key != nil {
		if m.Key.New == nil || m.Key.Field == nil {
			return yarpcerrors.InvalidArgumentErrorf(
				"compound key of table %q needs a factory and an owning field",
				m.Table)
		}
		if p := m.Key.Partition; p != nil && (p.New == nil || p.Field == nil) {
			return yarpcerrors.InvalidArgumentErrorf(
				"partition key of table %q needs a factory and an owning field",
				m.Table)
		}
	}
	return nil
}
