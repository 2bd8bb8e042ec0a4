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

	"github.com/nblair/cassandra-driver-mapping/pkg/backend"
	"github.com/nblair/cassandra-driver-mapping/pkg/entity"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Syncer reconciles the schema of one entity type with the store.
type Syncer interface {
	Sync(ctx context.Context, keyspace string, md *entity.Metadata) error
}

// storeSyncer creates missing tables through a DataStore.
type storeSyncer struct {
	store backend.DataStore
}

// NewSyncer returns a Syncer that executes generated DDL on the store.
func NewSyncer(store backend.DataStore) Syncer {
	return &storeSyncer{store: store}
}

func (s *storeSyncer) Sync(
	ctx context.Context, keyspace string, md *entity.Metadata,
) error {
	ddl := CreateTableCQL(keyspace, md)
	log.WithFields(log.Fields{
		"table":    md.Table,
		"keyspace": keyspace,
	}).Debug("syncing table schema")
	if _, err := s.store.Execute(ctx, backend.Raw(ddl), nil); err != nil {
		return errors.Wrapf(err, "sync schema of table %q", md.Table)
	}
	return nil
}
