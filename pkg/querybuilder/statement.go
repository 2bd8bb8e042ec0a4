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

package querybuilder

import (
	"fmt"
	"io"
)

// StmtType is the type of a CQL statement
type StmtType int

// Supported statement types
const (
	UnknownStmtType StmtType = iota
	SelectStmtType
	InsertStmtType
	UpdateStmtType
	DeleteStmtType
)

// Sqlizer is the interface that wraps the ToSQL method.
//
// ToSQL returns a SQL representation of the Sqlizer, along with a slice of
// args as passed to e.g. database/sql.Exec. It can also return an error.
type Sqlizer interface {
	ToSQL() (string, []interface{}, error)
}

// StatementAccessor provides access to the parts of a built statement
type StatementAccessor interface {
	// GetResource returns the table the statement operates on
	GetResource() string
	// GetWhereParts returns the where clauses of the statement
	GetWhereParts() []Sqlizer
	// GetColumns returns the columns the statement reads, nil for writes
	GetColumns() []Sqlizer
}

type wherePart struct {
	pred interface{}
	args []interface{}
}

func newWherePart(pred interface{}, args ...interface{}) Sqlizer {
	return &wherePart{pred: pred, args: args}
}

func (p wherePart) ToSQL() (sql string, args []interface{}, err error) {
	switch pred := p.pred.(type) {
	case nil:
		// no-op
	case Sqlizer:
		return pred.ToSQL()
	case map[string]interface{}:
		return Eq(pred).ToSQL()
	case string:
		sql = pred
		args = p.args
	default:
		err = fmt.Errorf("expected string-keyed map or string, not %T", pred)
	}
	return
}

func appendToSQL(
	parts []Sqlizer, w io.Writer, sep string, args []interface{},
) ([]interface{}, error) {
	for i, p := range parts {
		partSQL, partArgs, err := p.ToSQL()
		if err != nil {
			return nil, err
		} else if len(partSQL) == 0 {
			continue
		}

		if i > 0 {
			if _, err := io.WriteString(w, sep); err != nil {
				return nil, err
			}
		}
		if _, err := io.WriteString(w, partSQL); err != nil {
			return nil, err
		}
		args = append(args, partArgs...)
	}
	return args, nil
}
