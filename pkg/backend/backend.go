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

// Package backend defines the interface between the mapping layer and the
// data store driver. The mapping layer builds statements and interprets
// rows; everything network related (pooling, retries, protocol) lives
// behind DataStore.
package backend

import (
	"context"
	"errors"
	"strings"

	qb "github.com/nblair/cassandra-driver-mapping/pkg/querybuilder"
)

// Statement represents a query against the backend data store. The four
// querybuilder builders satisfy it, as do bound statement templates.
type Statement interface {
	ToSQL() (string, []interface{}, error)
	StmtType() qb.StmtType
	IsCAS() bool
}

// RetryPolicy asks the driver to retry a failed query.
type RetryPolicy struct {
	// NumRetries is the number of times the driver retries after a failure
	NumRetries int
}

// ExecOptions are per-execution driver options. Zero values mean "use the
// driver default".
type ExecOptions struct {
	// Consistency level by CQL name, e.g. "QUORUM"
	Consistency string
	// Retry policy for this execution
	Retry *RetryPolicy
}

// ResultSet contains the result of an executed query
type ResultSet interface {
	// All returns all result rows as column name to value maps and cleans
	// up itself. A ResultSet cannot be used after this call.
	All(ctx context.Context) ([]map[string]interface{}, error)

	// Applied shows whether a conditional write was applied
	Applied() bool

	// Close closes the underlying iterator and returns any errors that
	// happened during the query or the iteration.
	Close() error
}

// DataStore represents a connection with the backend data store.
// DataStore is safe for concurrent use by multiple goroutines.
type DataStore interface {
	// Execute a statement and return a ResultSet
	Execute(ctx context.Context, stmt Statement, opts *ExecOptions) (ResultSet, error)

	// Name returns the name of this DataStore
	Name() string
}

// Public error values
var (
	// ErrUnsupported indicates errors for unsupported features
	ErrUnsupported = errors.New("feature not supported")

	// ErrConnection indicates errors for connection problems
	ErrConnection = errors.New("fail to connect to backend nodes")

	// ErrClosed means the backend data store is closed
	ErrClosed = errors.New("data store closed")
)

type rawStatement struct {
	query string
	args  []interface{}
	typ   qb.StmtType
}

func (s rawStatement) ToSQL() (string, []interface{}, error) {
	return s.query, s.args, nil
}

func (s rawStatement) StmtType() qb.StmtType {
	return s.typ
}

func (s rawStatement) IsCAS() bool {
	return false
}

// Raw wraps a pre-built query string into a Statement. The statement type
// is inferred from the leading keyword so the driver knows whether to
// iterate results.
func Raw(query string, args ...interface{}) Statement {
	typ := qb.UnknownStmtType
	switch strings.ToUpper(firstWord(query)) {
	case "SELECT":
		typ = qb.SelectStmtType
	case "INSERT":
		typ = qb.InsertStmtType
	case "UPDATE":
		typ = qb.UpdateStmtType
	case "DELETE":
		typ = qb.DeleteStmtType
	}
	return rawStatement{query: query, args: args, typ: typ}
}

func firstWord(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
