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
	"reflect"
	"sort"
	"strings"
)

type expr struct {
	sql  string
	args []interface{}
}

// expression builds a Sqlizer from a SQL fragment and args.
//
// Ex:
//     expression("FROM_UNIXTIME(?)", t)
func expression(sql string, args ...interface{}) expr {
	return expr{sql: sql, args: args}
}

func (e expr) ToSQL() (sql string, args []interface{}, err error) {
	return e.sql, e.args, nil
}

type exprs []expr

func (es exprs) AppendToSQL(
	w io.Writer, sep string, args []interface{},
) ([]interface{}, error) {
	for i, e := range es {
		if i > 0 {
			if _, err := io.WriteString(w, sep); err != nil {
				return nil, err
			}
		}
		if _, err := io.WriteString(w, e.sql); err != nil {
			return nil, err
		}
		args = append(args, e.args...)
	}
	return args, nil
}

// Eq is syntactic sugar for use with Where/IfOnly.
//
// Ex:
//     .Where(Eq{"id": 1})
type Eq map[string]interface{}

func (eq Eq) toSQL(useNotOpr bool) (sql string, args []interface{}, err error) {
	var (
		exprs    []string
		equalOpr = "="
		inOpr    = "IN"
		nullOpr  = "IS NULL"
	)

	if useNotOpr {
		equalOpr = "<>"
		inOpr = "NOT IN"
		nullOpr = "IS NOT NULL"
	}

	// sort the keys to get a deterministic clause ordering
	sortedKeys := make([]string, 0, len(eq))
	for key := range eq {
		sortedKeys = append(sortedKeys, key)
	}
	sort.Strings(sortedKeys)

	for _, key := range sortedKeys {
		var e string
		val := eq[key]

		if val == nil {
			e = fmt.Sprintf("%s %s", key, nullOpr)
		} else {
			valVal := reflect.ValueOf(val)
			if valVal.Kind() == reflect.Array || valVal.Kind() == reflect.Slice {
				if valVal.Len() == 0 {
					e = fmt.Sprintf("%s %s (NULL)", key, inOpr)
					if args == nil {
						args = []interface{}{}
					}
				} else {
					for i := 0; i < valVal.Len(); i++ {
						args = append(args, valVal.Index(i).Interface())
					}
					e = fmt.Sprintf("%s %s (%s)", key, inOpr,
						Placeholders(valVal.Len()))
				}
			} else {
				e = fmt.Sprintf("%s %s ?", key, equalOpr)
				args = append(args, val)
			}
		}
		exprs = append(exprs, e)
	}
	sql = strings.Join(exprs, " AND ")
	return
}

// ToSQL returns the SQL representation of the equality clause
func (eq Eq) ToSQL() (sql string, args []interface{}, err error) {
	return eq.toSQL(false)
}

// NotEq is syntactic sugar for use with Where/IfOnly.
//
// Ex:
//     .Where(NotEq{"id": 1}) == "id <> 1"
type NotEq Eq

// ToSQL returns the SQL representation of the inequality clause
func (neq NotEq) ToSQL() (sql string, args []interface{}, err error) {
	return Eq(neq).toSQL(true)
}

// Lt is syntactic sugar for use with Where/IfOnly.
//
// Ex:
//     .Where(Lt{"id": 1})
type Lt map[string]interface{}

func (lt Lt) toSQL(opposite, orEq bool) (sql string, args []interface{}, err error) {
	var (
		exprs []string
		opr   = "<"
	)

	if opposite {
		opr = ">"
	}
	if orEq {
		opr = fmt.Sprintf("%s%s", opr, "=")
	}

	sortedKeys := make([]string, 0, len(lt))
	for key := range lt {
		sortedKeys = append(sortedKeys, key)
	}
	sort.Strings(sortedKeys)

	for _, key := range sortedKeys {
		val := lt[key]
		if val == nil {
			err = fmt.Errorf("cannot use null with less than or greater than operators")
			return
		}
		valVal := reflect.ValueOf(val)
		if valVal.Kind() == reflect.Array || valVal.Kind() == reflect.Slice {
			err = fmt.Errorf("cannot use array or slice with less than or greater than operators")
			return
		}
		exprs = append(exprs, fmt.Sprintf("%s %s ?", key, opr))
		args = append(args, val)
	}
	sql = strings.Join(exprs, " AND ")
	return
}

// ToSQL returns the SQL representation of the less-than clause
func (lt Lt) ToSQL() (sql string, args []interface{}, err error) {
	return lt.toSQL(false, false)
}

// LtOrEq is syntactic sugar for use with Where/IfOnly.
//
// Ex:
//     .Where(LtOrEq{"id": 1})
type LtOrEq Lt

// ToSQL returns the SQL representation of the less-than-or-equal clause
func (ltOrEq LtOrEq) ToSQL() (sql string, args []interface{}, err error) {
	return Lt(ltOrEq).toSQL(false, true)
}

// Gt is syntactic sugar for use with Where/IfOnly.
//
// Ex:
//     .Where(Gt{"id": 1})
type Gt Lt

// ToSQL returns the SQL representation of the greater-than clause
func (gt Gt) ToSQL() (sql string, args []interface{}, err error) {
	return Lt(gt).toSQL(true, false)
}

// GtOrEq is syntactic sugar for use with Where/IfOnly.
//
// Ex:
//     .Where(GtOrEq{"id": 1})
type GtOrEq Lt

// ToSQL returns the SQL representation of the greater-than-or-equal clause
func (gtOrEq GtOrEq) ToSQL() (sql string, args []interface{}, err error) {
	return Lt(gtOrEq).toSQL(true, true)
}
