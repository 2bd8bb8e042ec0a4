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
	"errors"
	"fmt"
	"strings"

	"github.com/lann/builder"
)

type updateData struct {
	PlaceholderFormat PlaceholderFormat
	Table             string
	SetClauses        []setClause
	SetClausesAdd     []setClause // collections, col = col + ?
	SetClausesRemove  []setClause // collections, col = col - ?
	SetClausesPrepend []setClause // lists, col = ? + col
	SetAtClauses      []setAtClause
	WhereParts        []Sqlizer
	IfOnlyParts       []Sqlizer
	Usings            exprs
}

type setClause struct {
	column string
	value  interface{}
}

// setAtClause replaces the value at a fixed list index
type setAtClause struct {
	column string
	idx    int
	value  interface{}
}

var (
	// ErrMalformedSetClause indicates that the update is missing a set clause
	ErrMalformedSetClause = errors.New("update statements must have at least one Set clause")

	// ErrMissingTable indicates that the update is missing a target table
	ErrMissingTable = errors.New("update statements must specify a table")
)

func (d *updateData) ToSQL() (sqlStr string, args []interface{}, err error) {
	if len(d.Table) == 0 {
		err = ErrMissingTable
		return
	}
	sql := &bytes.Buffer{}

	sql.WriteString("UPDATE ")
	sql.WriteString(d.Table)

	if len(d.Usings) > 0 {
		sql.WriteString(" USING ")
		args, _ = d.Usings.AppendToSQL(sql, " AND ", args)
	}

	cnt := len(d.SetClauses) + len(d.SetClausesAdd) + len(d.SetClausesRemove) +
		len(d.SetClausesPrepend) + len(d.SetAtClauses)
	if cnt == 0 {
		err = ErrMalformedSetClause
		return
	}
	sql.WriteString(" SET ")
	setSqls := make([]string, cnt)

	setIdx := 0
	for _, setClause := range d.SetClauses {
		var valSQL string
		e, isExpr := setClause.value.(expr)
		if isExpr {
			valSQL = e.sql
			args = append(args, e.args...)
		} else {
			valSQL = "?"
			args = append(args, setClause.value)
		}
		setSqls[setIdx] = fmt.Sprintf("%s = %s", setClause.column, valSQL)
		setIdx++
	}
	for _, setClause := range d.SetClausesAdd { // SET emails = emails + ?
		args = append(args, setClause.value)
		setSqls[setIdx] = fmt.Sprintf("%s = %s + ?", setClause.column, setClause.column)
		setIdx++
	}
	for _, setClause := range d.SetClausesRemove { // SET emails = emails - ?
		args = append(args, setClause.value)
		setSqls[setIdx] = fmt.Sprintf("%s = %s - ?", setClause.column, setClause.column)
		setIdx++
	}
	for _, setClause := range d.SetClausesPrepend { // SET emails = ? + emails
		args = append(args, setClause.value)
		setSqls[setIdx] = fmt.Sprintf("%s = ? + %s", setClause.column, setClause.column)
		setIdx++
	}
	for _, setAt := range d.SetAtClauses { // SET emails[2] = ?
		args = append(args, setAt.value)
		setSqls[setIdx] = fmt.Sprintf("%s[%d] = ?", setAt.column, setAt.idx)
		setIdx++
	}
	sql.WriteString(strings.Join(setSqls, ", "))

	if len(d.WhereParts) > 0 {
		sql.WriteString(" WHERE ")
		args, err = appendToSQL(d.WhereParts, sql, " AND ", args)
		if err != nil {
			return
		}
	}

	if len(d.IfOnlyParts) > 0 {
		sql.WriteString(" IF ")
		args, err = appendToSQL(d.IfOnlyParts, sql, " AND ", args)
		if err != nil {
			return
		}
	}

	sqlStr, err = d.PlaceholderFormat.ReplacePlaceholders(sql.String())
	return
}

func (d updateData) GetResource() string {
	return d.Table
}

func (d updateData) GetWhereParts() []Sqlizer {
	return d.WhereParts
}

func (d updateData) GetColumns() []Sqlizer {
	return nil
}

// Builder

// UpdateBuilder builds CQL UPDATE statements.
type UpdateBuilder builder.Builder

func init() {
	builder.Register(UpdateBuilder{}, updateData{})
}

// Format methods

// PlaceholderFormat sets PlaceholderFormat (e.g. Question) for the update.
func (b UpdateBuilder) PlaceholderFormat(f PlaceholderFormat) UpdateBuilder {
	return builder.Set(b, "PlaceholderFormat", f).(UpdateBuilder)
}

// SQL methods

// ToSQL builds the update into a CQL string and bound args.
func (b UpdateBuilder) ToSQL() (string, []interface{}, error) {
	data := builder.GetStruct(b).(updateData)
	return data.ToSQL()
}

// StmtType returns type of the statement
func (b UpdateBuilder) StmtType() StmtType {
	return UpdateStmtType
}

// GetData returns the underlying struct as an interface
func (b UpdateBuilder) GetData() StatementAccessor {
	return builder.GetStruct(b).(updateData)
}

// Table sets the table to be updated.
func (b UpdateBuilder) Table(table string) UpdateBuilder {
	return builder.Set(b, "Table", table).(UpdateBuilder)
}

// Set adds SET clauses to the update.
func (b UpdateBuilder) Set(column string, value interface{}) UpdateBuilder {
	return builder.Append(b, "SetClauses", setClause{column: column, value: value}).(UpdateBuilder)
}

// Add appends values to a list column, adds them to a set column, or puts
// them into a map column.
func (b UpdateBuilder) Add(column string, value interface{}) UpdateBuilder {
	return builder.Append(b, "SetClausesAdd", setClause{column: column, value: value}).(UpdateBuilder)
}

// Remove discards values from a list or set column.
func (b UpdateBuilder) Remove(column string, value interface{}) UpdateBuilder {
	return builder.Append(b, "SetClausesRemove", setClause{column: column, value: value}).(UpdateBuilder)
}

// Prepend inserts values at the beginning of a list column.
func (b UpdateBuilder) Prepend(column string, value interface{}) UpdateBuilder {
	return builder.Append(b, "SetClausesPrepend", setClause{column: column, value: value}).(UpdateBuilder)
}

// SetAt replaces the value of a list column at the given index.
func (b UpdateBuilder) SetAt(column string, idx int, value interface{}) UpdateBuilder {
	return builder.Append(b, "SetAtClauses", setAtClause{column: column, idx: idx, value: value}).(UpdateBuilder)
}

// Using adds an expression to the USING clause of the update.
func (b UpdateBuilder) Using(sql string, args ...interface{}) UpdateBuilder {
	return builder.Append(b, "Usings", expression(sql, args...)).(UpdateBuilder)
}

// Where adds WHERE expressions to the update.
func (b UpdateBuilder) Where(pred interface{}, args ...interface{}) UpdateBuilder {
	return builder.Append(b, "WhereParts", newWherePart(pred, args...)).(UpdateBuilder)
}

// IfOnly represents a LWT
func (b UpdateBuilder) IfOnly(pred interface{}, rest ...interface{}) UpdateBuilder {
	return builder.Append(b, "IfOnlyParts", newWherePart(pred, rest...)).(UpdateBuilder)
}

// IsCAS returns true if the update statement has a compare-and-set part
func (b UpdateBuilder) IsCAS() bool {
	data := builder.GetStruct(b).(updateData)
	return len(data.IfOnlyParts) > 0
}
