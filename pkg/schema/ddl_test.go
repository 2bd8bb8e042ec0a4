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

package schema

import (
	"context"
	"testing"

	"github.com/nblair/cassandra-driver-mapping/pkg/backend/mocks"
	"github.com/nblair/cassandra-driver-mapping/pkg/entity"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func noopAccessors(fd *entity.FieldDescriptor) *entity.FieldDescriptor {
	fd.Get = func(interface{}) interface{} { return nil }
	fd.Set = func(interface{}, interface{}) error { return nil }
	return fd
}

func widgetMetadata() *entity.Metadata {
	md := &entity.Metadata{
		Table:     "widgets",
		New:       func() interface{} { return &struct{}{} },
		PKColumns: []string{"id"},
		Fields: []*entity.FieldDescriptor{
			noopAccessors(&entity.FieldDescriptor{
				Name: "ID", Column: "id", Type: entity.UUID,
				Role: entity.RolePrimaryKey}),
			noopAccessors(&entity.FieldDescriptor{
				Name: "Name", Column: "name", Type: entity.Text}),
			noopAccessors(&entity.FieldDescriptor{
				Name: "Tags", Column: "tags", Type: entity.List,
				ElemType: entity.Text}),
			noopAccessors(&entity.FieldDescriptor{
				Name: "Attrs", Column: "attrs", Type: entity.Map,
				KeyType: entity.Text, ElemType: entity.BigInt}),
			noopAccessors(&entity.FieldDescriptor{
				Name: "Links", Column: "links", Type: entity.Set,
				ElemType: entity.UUID}),
		},
	}
	return md
}

func shardedMetadata() *entity.Metadata {
	return &entity.Metadata{
		Table:     "rides",
		New:       func() interface{} { return &struct{}{} },
		PKColumns: []string{"region", "day", "seq"},
		Fields: []*entity.FieldDescriptor{
			noopAccessors(&entity.FieldDescriptor{
				Name: "Region", Column: "region", Type: entity.Text,
				Role: entity.RolePartitionKey}),
			noopAccessors(&entity.FieldDescriptor{
				Name: "Day", Column: "day", Type: entity.Int,
				Role: entity.RolePartitionKey}),
			noopAccessors(&entity.FieldDescriptor{
				Name: "Seq", Column: "seq", Type: entity.BigInt,
				Role: entity.RolePrimaryKey}),
			noopAccessors(&entity.FieldDescriptor{
				Name: "Fare", Column: "fare", Type: entity.Decimal}),
		},
	}
}

func TestCreateTableCQL(t *testing.T) {
	md := widgetMetadata()
	assert.NoError(t, md.Validate())

	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS ks.widgets ("+
			"id uuid, name text, tags list<text>, "+
			"attrs map<text, bigint>, links set<uuid>, "+
			"PRIMARY KEY (id))",
		CreateTableCQL("ks", md))

	// unqualified when the keyspace is empty
	assert.Contains(t, CreateTableCQL("", md),
		"CREATE TABLE IF NOT EXISTS widgets (")
}

func TestCreateTableCQLPartitionAndClustering(t *testing.T) {
	md := shardedMetadata()
	assert.NoError(t, md.Validate())

	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS ks.rides ("+
			"region text, day int, seq bigint, fare decimal, "+
			"PRIMARY KEY ((region, day), seq))",
		CreateTableCQL("ks", md))
}

func TestSyncerExecutesDDL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	md := widgetMetadata()
	assert.NoError(t, md.Validate())

	store := mocks.NewMockDataStore(ctrl)
	store.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil, nil)

	assert.NoError(t,
		NewSyncer(store).Sync(context.Background(), "ks", md))
}

func TestSyncerWrapsStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	md := widgetMetadata()
	assert.NoError(t, md.Validate())

	store := mocks.NewMockDataStore(ctrl)
	store.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil, errors.New("unavailable"))

	err := NewSyncer(store).Sync(context.Background(), "ks", md)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "widgets")
}
