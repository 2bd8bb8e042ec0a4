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
	"github.com/nblair/cassandra-driver-mapping/pkg/entity"

	"go.uber.org/yarpc/yarpcerrors"
)

// account is a versioned entity with a scalar primary key.
type account struct {
	ID      string
	Name    string
	Version int64
}

func accountMetadata() *entity.Metadata {
	return &entity.Metadata{
		Table:     "accounts",
		New:       func() interface{} { return &account{} },
		PKColumns: []string{"id"},
		Fields: []*entity.FieldDescriptor{
			{
				Name:   "ID",
				Column: "id",
				Type:   entity.Text,
				Role:   entity.RolePrimaryKey,
				Get: func(o interface{}) interface{} {
					return o.(*account).ID
				},
				Set: func(o interface{}, v interface{}) error {
					s, ok := v.(string)
					if !ok {
						return yarpcerrors.InvalidArgumentErrorf(
							"id wants string, got %T", v)
					}
					o.(*account).ID = s
					return nil
				},
			},
			{
				Name:   "Name",
				Column: "name",
				Type:   entity.Text,
				Get: func(o interface{}) interface{} {
					return o.(*account).Name
				},
				Set: func(o interface{}, v interface{}) error {
					s, ok := v.(string)
					if !ok {
						return yarpcerrors.InvalidArgumentErrorf(
							"name wants string, got %T", v)
					}
					o.(*account).Name = s
					return nil
				},
			},
			{
				Name:   "Version",
				Column: "version",
				Type:   entity.BigInt,
				Role:   entity.RoleVersion,
				Get: func(o interface{}) interface{} {
					return o.(*account).Version
				},
				Set: func(o interface{}, v interface{}) error {
					n, ok := v.(int64)
					if !ok {
						return yarpcerrors.InvalidArgumentErrorf(
							"version wants int64, got %T", v)
					}
					o.(*account).Version = n
					return nil
				},
			},
		},
	}
}

// notebook carries the three collection column kinds on a scalar key.
type notebook struct {
	ID    string
	Tags  []interface{}
	Attrs map[interface{}]interface{}
	Links []interface{}
	Title string
}

func notebookMetadata() *entity.Metadata {
	return &entity.Metadata{
		Table:     "notebooks",
		New:       func() interface{} { return &notebook{} },
		PKColumns: []string{"id"},
		Fields: []*entity.FieldDescriptor{
			{
				Name:   "ID",
				Column: "id",
				Type:   entity.Text,
				Role:   entity.RolePrimaryKey,
				Get: func(o interface{}) interface{} {
					return o.(*notebook).ID
				},
				Set: func(o interface{}, v interface{}) error {
					o.(*notebook).ID = v.(string)
					return nil
				},
			},
			{
				Name:     "Tags",
				Column:   "tags",
				Type:     entity.List,
				ElemType: entity.Text,
				Get: func(o interface{}) interface{} {
					return o.(*notebook).Tags
				},
				Set: func(o interface{}, v interface{}) error {
					o.(*notebook).Tags = v.([]interface{})
					return nil
				},
			},
			{
				Name:     "Attrs",
				Column:   "attrs",
				Type:     entity.Map,
				KeyType:  entity.Text,
				ElemType: entity.Text,
				Get: func(o interface{}) interface{} {
					return o.(*notebook).Attrs
				},
				Set: func(o interface{}, v interface{}) error {
					o.(*notebook).Attrs = v.(map[interface{}]interface{})
					return nil
				},
			},
			{
				Name:     "Links",
				Column:   "links",
				Type:     entity.Set,
				ElemType: entity.Text,
				Get: func(o interface{}) interface{} {
					return o.(*notebook).Links
				},
				Set: func(o interface{}, v interface{}) error {
					o.(*notebook).Links = v.([]interface{})
					return nil
				},
			},
			{
				Name:   "Title",
				Column: "title",
				Type:   entity.Text,
				Get: func(o interface{}) interface{} {
					return o.(*notebook).Title
				},
				Set: func(o interface{}, v interface{}) error {
					o.(*notebook).Title = v.(string)
					return nil
				},
			},
		},
	}
}

// ledgerEntry carries a non-numeric version value.
type ledgerEntry struct {
	ID   string
	Note string
	Rev  string
}

func ledgerMetadata() *entity.Metadata {
	return &entity.Metadata{
		Table:     "ledger",
		New:       func() interface{} { return &ledgerEntry{} },
		PKColumns: []string{"id"},
		Fields: []*entity.FieldDescriptor{
			{
				Name:   "ID",
				Column: "id",
				Type:   entity.Text,
				Role:   entity.RolePrimaryKey,
				Get: func(o interface{}) interface{} {
					return o.(*ledgerEntry).ID
				},
				Set: func(o interface{}, v interface{}) error {
					o.(*ledgerEntry).ID = v.(string)
					return nil
				},
			},
			{
				Name:   "Note",
				Column: "note",
				Type:   entity.Text,
				Get: func(o interface{}) interface{} {
					return o.(*ledgerEntry).Note
				},
				Set: func(o interface{}, v interface{}) error {
					o.(*ledgerEntry).Note = v.(string)
					return nil
				},
			},
			{
				Name:   "Rev",
				Column: "rev",
				Type:   entity.Text,
				Role:   entity.RoleVersion,
				Get: func(o interface{}) interface{} {
					return o.(*ledgerEntry).Rev
				},
				Set: func(o interface{}, v interface{}) error {
					o.(*ledgerEntry).Rev = v.(string)
					return nil
				},
			},
		},
	}
}

// event uses a compound primary key sub-object with a nested partition key.
type eventBucket struct {
	Tenant string
	Day    int32
}

type eventKey struct {
	Bucket *eventBucket
	Seq    int64
}

type event struct {
	Key     *eventKey
	Payload []byte
}

func eventMetadata() *entity.Metadata {
	keyField := &entity.FieldDescriptor{
		Name: "Key",
		Get: func(o interface{}) interface{} {
			return o.(*event).Key
		},
		Set: func(o interface{}, v interface{}) error {
			o.(*event).Key = v.(*eventKey)
			return nil
		},
	}
	partitionField := &entity.FieldDescriptor{
		Name: "Bucket",
		Get: func(o interface{}) interface{} {
			return o.(*eventKey).Bucket
		},
		Set: func(o interface{}, v interface{}) error {
			o.(*eventKey).Bucket = v.(*eventBucket)
			return nil
		},
	}
	return &entity.Metadata{
		Table:     "events",
		New:       func() interface{} { return &event{} },
		PKColumns: []string{"tenant", "day", "seq"},
		Key: &entity.KeyDescriptor{
			New:   func() interface{} { return &eventKey{} },
			Field: keyField,
			Partition: &entity.KeyDescriptor{
				New:   func() interface{} { return &eventBucket{} },
				Field: partitionField,
			},
		},
		Fields: []*entity.FieldDescriptor{
			{
				Name:   "Tenant",
				Column: "tenant",
				Type:   entity.Text,
				Role:   entity.RolePartitionKey,
				Get: func(o interface{}) interface{} {
					return o.(*eventBucket).Tenant
				},
				Set: func(o interface{}, v interface{}) error {
					o.(*eventBucket).Tenant = v.(string)
					return nil
				},
			},
			{
				Name:   "Day",
				Column: "day",
				Type:   entity.Int,
				Role:   entity.RolePartitionKey,
				Get: func(o interface{}) interface{} {
					return o.(*eventBucket).Day
				},
				Set: func(o interface{}, v interface{}) error {
					o.(*eventBucket).Day = v.(int32)
					return nil
				},
			},
			{
				Name:   "Seq",
				Column: "seq",
				Type:   entity.BigInt,
				Role:   entity.RolePrimaryKey,
				Get: func(o interface{}) interface{} {
					return o.(*eventKey).Seq
				},
				Set: func(o interface{}, v interface{}) error {
					o.(*eventKey).Seq = v.(int64)
					return nil
				},
			},
			{
				Name:   "Payload",
				Column: "payload",
				Type:   entity.Blob,
				Get: func(o interface{}) interface{} {
					return o.(*event).Payload
				},
				Set: func(o interface{}, v interface{}) error {
					o.(*event).Payload = v.([]byte)
					return nil
				},
			},
		},
	}
}

// newTestRegistry registers every fixture type.
func newTestRegistry() (*entity.Registry, error) {
	r := entity.NewRegistry()
	if err := r.Register(&account{}, accountMetadata()); err != nil {
		return nil, err
	}
	if err := r.Register(&notebook{}, notebookMetadata()); err != nil {
		return nil, err
	}
	if err := r.Register(&ledgerEntry{}, ledgerMetadata()); err != nil {
		return nil, err
	}
	if err := r.Register(&event{}, eventMetadata()); err != nil {
		return nil, err
	}
	return r, nil
}
