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

// Package cassandra implements backend.DataStore on top of gocql.
package cassandra

import (
	"context"
	"time"

	"github.com/nblair/cassandra-driver-mapping/pkg/backend"
	qb "github.com/nblair/cassandra-driver-mapping/pkg/querybuilder"

	"github.com/gocql/gocql"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

const (
	// operation tags for metrics
	opSelect = "select"
	opInsert = "insert"
	opUpdate = "update"
	opDelete = "delete"
	opCAS    = "cas"
	opOther  = "other"
)

type dataStore struct {
	// Session is the gocql session created for this store
	session *gocql.Session
	// name of the keyspace this store connects to
	name string
	// scope is the storage scope for metrics
	scope tally.Scope
	// scope for success metrics
	executeSuccessScope tally.Scope
	// scope for failure metrics
	executeFailScope tally.Scope
}

// ensure that implementation (dataStore) satisfies the interface
var _ backend.DataStore = (*dataStore)(nil)

// NewDataStore initializes a gocql backed DataStore for the keyspace named
// by config.StoreName.
func NewDataStore(config *Config, scope tally.Scope) (backend.DataStore, error) {
	session, err := CreateStoreSession(config.CassandraConn, config.StoreName)
	if err != nil {
		return nil, err
	}
	return newDataStoreWithSession(session, config.StoreName, scope), nil
}

func newDataStoreWithSession(
	session *gocql.Session, name string, scope tally.Scope,
) *dataStore {
	storeScope := scope.SubScope("cql").Tagged(
		map[string]string{"store": name})
	return &dataStore{
		session: session,
		name:    name,
		scope:   storeScope,
		executeSuccessScope: storeScope.Tagged(
			map[string]string{"result": "success"}),
		executeFailScope: storeScope.Tagged(
			map[string]string{"result": "fail"}),
	}
}

// Name returns the name of this DataStore
func (s *dataStore) Name() string {
	return s.name
}

// Execute runs one statement. Conditional writes go through the CAS path so
// the caller can inspect the applied flag, selects iterate the full result
// and plain writes only report errors.
func (s *dataStore) Execute(
	ctx context.Context,
	stmt backend.Statement,
	opts *backend.ExecOptions,
) (backend.ResultSet, error) {
	sql, args, err := stmt.ToSQL()
	if err != nil {
		return nil, err
	}

	q := s.session.Query(sql, args...).WithContext(ctx)
	if opts != nil {
		if len(opts.Consistency) > 0 {
			if consistency, err := gocql.ParseConsistencyWrapper(
				opts.Consistency); err == nil {
				q.Consistency(consistency)
			} else {
				log.WithField("consistency", opts.Consistency).
					Warn("unknown consistency level, using session default")
			}
		}
		if opts.Retry != nil {
			q.RetryPolicy(&gocql.SimpleRetryPolicy{
				NumRetries: opts.Retry.NumRetries,
			})
		}
	}

	operation := operationTag(stmt)

	switch {
	case stmt.IsCAS():
		prev := map[string]interface{}{}
		applied, err := q.MapScanCAS(prev)
		if err != nil {
			s.sendCounters(s.executeFailScope, operation, err)
			return nil, err
		}
		s.sendLatency(operation, time.Duration(q.Latency()))
		s.sendCounters(s.executeSuccessScope, operation, nil)
		return &casResultSet{
			applied: applied,
			row:     normalizeRow(prev),
		}, nil

	case stmt.StmtType() == qb.SelectStmtType:
		iter := q.Iter()
		rows, err := iter.SliceMap()
		if err != nil {
			s.sendCounters(s.executeFailScope, operation, err)
			return nil, errors.Wrap(err, "SliceMap failed")
		}
		for i := range rows {
			rows[i] = normalizeRow(rows[i])
		}
		s.sendLatency(operation, time.Duration(q.Latency()))
		s.sendCounters(s.executeSuccessScope, operation, nil)
		return &rowsResultSet{rows: rows, closeErr: iter.Close()}, nil

	default:
		if err := q.Exec(); err != nil {
			s.sendCounters(s.executeFailScope, operation, err)
			return nil, err
		}
		s.sendLatency(operation, time.Duration(q.Latency()))
		s.sendCounters(s.executeSuccessScope, operation, nil)
		return &writeResultSet{}, nil
	}
}

func operationTag(stmt backend.Statement) string {
	if stmt.IsCAS() {
		return opCAS
	}
	switch stmt.StmtType() {
	case qb.SelectStmtType:
		return opSelect
	case qb.InsertStmtType:
		return opInsert
	case qb.UpdateStmtType:
		return opUpdate
	case qb.DeleteStmtType:
		return opDelete
	default:
		return opOther
	}
}

// normalizeRow converts driver internal values into the types the mapping
// layer decodes: gocql UUIDs become strings.
func normalizeRow(row map[string]interface{}) map[string]interface{} {
	for k, v := range row {
		if u, ok := v.(gocql.UUID); ok {
			row[k] = u.String()
		}
	}
	return row
}

// getErrorTag gets an error tag for metrics based on a gocql error. The
// error text itself contains characters like = and : that metric backends
// reject, so only a coarse classification is emitted.
func getErrorTag(err error) string {
	switch err.(type) {
	case *gocql.RequestErrReadFailure:
		return "read_failure"
	case *gocql.RequestErrWriteFailure:
		return "write_failure"
	case *gocql.RequestErrAlreadyExists:
		return "already_exists"
	case *gocql.RequestErrReadTimeout:
		return "read_timeout"
	case *gocql.RequestErrWriteTimeout:
		return "write_timeout"
	case *gocql.RequestErrUnavailable:
		return "unavailable"
	case *gocql.RequestErrFunctionFailure:
		return "function_failure"
	case *gocql.RequestErrUnprepared:
		return "unprepared"
	default:
		return "unknown"
	}
}

// helper function to record call latency metric
func (s *dataStore) sendLatency(operation string, d time.Duration) {
	s.scope.Tagged(map[string]string{
		"operation": operation,
	}).Timer("execute_latency").Record(d)
}

// helper function to record cql query success/failure metrics
func (s *dataStore) sendCounters(
	scope tally.Scope, operation string, err error,
) {
	errMsg := "none"
	if err != nil {
		errMsg = getErrorTag(err)
	}
	scope.Tagged(map[string]string{
		"operation": operation,
		"error":     errMsg,
	}).Counter("execute").Inc(1)
}
