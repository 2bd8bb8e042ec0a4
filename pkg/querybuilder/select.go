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
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/lann/builder"
)

type selectData struct {
	PlaceholderFormat PlaceholderFormat
	Columns           []Sqlizer
	From              string
	WhereParts        []Sqlizer
	OrderBys          []string
	Limit             string
	AllowFiltering    bool
}

func (d *selectData) ToSQL() (sqlStr string, args []interface{}, err error) {
	if len(d.Columns) == 0 {
		err = fmt.Errorf("select statements must have at least one result column")
		return
	}

	sql := &bytes.Buffer{}

	sql.WriteString("SELECT ")
	args, err = appendToSQL(d.Columns, sql, ", ", args)
	if err != nil {
		return
	}

	if len(d.From) > 0 {
		sql.WriteString(" FROM ")
		sql.WriteString(d.From)
	}

	if len(d.WhereParts) > 0 {
		sql.WriteString(" WHERE ")
		args, err = appendToSQL(d.WhereParts, sql, " AND ", args)
		if err != nil {
			return
		}
	}

	if len(d.OrderBys) > 0 {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(d.OrderBys, ", "))
	}

	if len(d.Limit) > 0 {
		sql.WriteString(" LIMIT ")
		sql.WriteString(d.Limit)
	}

	if d.AllowFiltering {
		sql.WriteString(" ALLOW FILTERING")
	}

	sqlStr, err = d.PlaceholderFormat.ReplacePlaceholders(sql.String())
	return
}

func (d selectData) GetResource() string {
	return d.From
}

func (d selectData) GetWhereParts() []Sqlizer {
	return d.WhereParts
}

func (d selectData) GetColumns() []Sqlizer {
	return d.Columns
}

// Builder

// SelectBuilder builds CQL SELECT statements.
type SelectBuilder builder.Builder

func init() {
	builder.Register(SelectBuilder{}, selectData{})
}

// Format methods

// PlaceholderFormat sets PlaceholderFormat (e.g. Question) for the query.
func (b SelectBuilder) PlaceholderFormat(f PlaceholderFormat) SelectBuilder {
	return builder.Set(b, "PlaceholderFormat", f).(SelectBuilder)
}

// SQL methods

// ToSQL builds the query into a CQL string and bound args.
func (b SelectBuilder) ToSQL() (string, []interface{}, error) {
	data := builder.GetStruct(b).(selectData)
	return data.ToSQL()
}

// StmtType returns type of the statement
func (b SelectBuilder) StmtType() StmtType {
	return SelectStmtType
}

// GetData returns the underlying struct as an interface
func (b SelectBuilder) GetData() StatementAccessor {
	return builder.GetStruct(b).(selectData)
}

// Columns adds result columns to the query.
func (b SelectBuilder) Columns(columns ...string) SelectBuilder {
	parts := make([]interface{}, 0, len(columns))
	for _, str := range columns {
		parts = append(parts, expression(str))
	}
	return builder.Extend(b, "Columns", parts).(SelectBuilder)
}

// Column adds a result column to the query. Unlike Columns, Column accepts
// args which will be bound to placeholders in the column string.
func (b SelectBuilder) Column(column interface{}, args ...interface{}) SelectBuilder {
	switch c := column.(type) {
	case string:
		return builder.Append(b, "Columns", expression(c, args...)).(SelectBuilder)
	case Sqlizer:
		return builder.Append(b, "Columns", c).(SelectBuilder)
	default:
		return b
	}
}

// From sets the FROM clause of the query.
func (b SelectBuilder) From(from string) SelectBuilder {
	return builder.Set(b, "From", from).(SelectBuilder)
}

// Where adds an expression to the WHERE clause of the query.
//
// Expressions are ANDed together in the generated CQL.
//
// Where accepts several types for its pred argument:
//
// nil OR "" - ignored.
//
// string - SQL expression. If the expression has placeholders the args will
// be bound to them.
//
// Eq/NotEq/Lt/LtOrEq/Gt/GtOrEq - keys are column names, values become bound
// args.
func (b SelectBuilder) Where(pred interface{}, args ...interface{}) SelectBuilder {
	return builder.Append(b, "WhereParts", newWherePart(pred, args...)).(SelectBuilder)
}

// OrderBy adds ORDER BY expressions to the query.
func (b SelectBuilder) OrderBy(orderBys ...string) SelectBuilder {
	return builder.Extend(b, "OrderBys", orderBys).(SelectBuilder)
}

// Limit sets a LIMIT clause on the query.
func (b SelectBuilder) Limit(limit uint64) SelectBuilder {
	return builder.Set(b, "Limit", strconv.FormatUint(limit, 10)).(SelectBuilder)
}

// AllowFiltering appends ALLOW FILTERING to the query.
func (b SelectBuilder) AllowFiltering() SelectBuilder {
	return builder.Set(b, "AllowFiltering", true).(SelectBuilder)
}

// IsCAS returns false, selects carry no compare-and-set part
func (b SelectBuilder) IsCAS() bool {
	return false
}
