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

package cassandra

import (
	"context"

	"github.com/nblair/cassandra-driver-mapping/pkg/backend"
)

// rowsResultSet holds fully materialized rows of a select.
type rowsResultSet struct {
	rows     []map[string]interface{}
	closeErr error
}

var _ backend.ResultSet = (*rowsResultSet)(nil)

func (rs *rowsResultSet) All(ctx context.Context) ([]map[string]interface{}, error) {
	return rs.rows, rs.closeErr
}

func (rs *rowsResultSet) Applied() bool {
	return false
}

func (rs *rowsResultSet) Close() error {
	return rs.closeErr
}

// casResultSet is returned from a compare-and-set write. When the write was
// not applied the row holds the current values of the losing row.
type casResultSet struct {
	applied bool
	row     map[string]interface{}
}

var _ backend.ResultSet = (*casResultSet)(nil)

func (rs *casResultSet) All(ctx context.Context) ([]map[string]interface{}, error) {
	if len(rs.row) == 0 {
		return nil, nil
	}
	return []map[string]interface{}{rs.row}, nil
}

func (rs *casResultSet) Applied() bool {
	return rs.applied
}

func (rs *casResultSet) Close() error {
	return nil
}

// writeResultSet is returned from an unconditional write, which the store
// always reports as applied.
type writeResultSet struct{}

var _ backend.ResultSet = (*writeResultSet)(nil)

func (rs *writeResultSet) All(ctx context.Context) ([]map[string]interface{}, error) {
	return nil, nil
}

func (rs *writeResultSet) Applied() bool {
	return true
}

func (rs *writeResultSet) Close() error {
	return nil
}
