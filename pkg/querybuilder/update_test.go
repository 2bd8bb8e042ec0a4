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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateBuilderToSql(t *testing.T) {
	b := Update("a").
		Set("b", 1).
		Set("c", 2).
		Where("d = ?", 3).
		Where(Eq{"e": 4})

	sql, args, err := b.ToSQL()
	assert.NoError(t, err)

	expectedSQL := "UPDATE a SET b = ?, c = ? WHERE d = ? AND e = ?"
	assert.Equal(t, expectedSQL, sql)

	expectedArgs := []interface{}{1, 2, 3, 4}
	assert.Equal(t, expectedArgs, args)
}

func TestUpdateBuilderCollectionOps(t *testing.T) {
	b := Update("a").
		Add("tags", []interface{}{"x"}).
		Remove("emails", []interface{}{"y"}).
		Prepend("queue", []interface{}{"z"}).
		SetAt("queue", 2, "w").
		Where("id = ?", 1)

	sql, args, err := b.ToSQL()
	assert.NoError(t, err)

	expectedSQL := "UPDATE a SET tags = tags + ?, emails = emails - ?, " +
		"queue = ? + queue, queue[2] = ? WHERE id = ?"
	assert.Equal(t, expectedSQL, sql)

	expectedArgs := []interface{}{
		[]interface{}{"x"}, []interface{}{"y"}, []interface{}{"z"}, "w", 1}
	assert.Equal(t, expectedArgs, args)
}

func TestUpdateBuilderIfOnly(t *testing.T) {
	b := Update("a").
		Set("b", 1).
		Set("version", int64(5)).
		Where(Eq{"id": "key"}).
		IfOnly(Eq{"version": int64(4)})

	sql, args, err := b.ToSQL()
	assert.NoError(t, err)

	expectedSQL := "UPDATE a SET b = ?, version = ? WHERE id = ? IF version = ?"
	assert.Equal(t, expectedSQL, sql)

	expectedArgs := []interface{}{1, int64(5), "key", int64(4)}
	assert.Equal(t, expectedArgs, args)

	assert.True(t, b.IsCAS())
}

func TestUpdateBuilderUsing(t *testing.T) {
	b := Update("a").
		Using("TTL ?", 500).
		Set("b", 1).
		Where("id = ?", 2)

	sql, args, err := b.ToSQL()
	assert.NoError(t, err)
	assert.Equal(t, "UPDATE a USING TTL ? SET b = ? WHERE id = ?", sql)
	assert.Equal(t, []interface{}{500, 1, 2}, args)
}

func TestUpdateBuilderToSqlErr(t *testing.T) {
	_, _, err := Update("").Set("b", 1).ToSQL()
	assert.Equal(t, ErrMissingTable, err)

	_, _, err = Update("a").Where("id = ?", 1).ToSQL()
	assert.Equal(t, ErrMalformedSetClause, err)
}

func TestUpdateFlags(t *testing.T) {
	assert.Equal(t, false, Update("a").Set("b", 1).IsCAS())
	assert.Equal(t, UpdateStmtType, Update("a").StmtType())
}

func TestUpdateAccessor(t *testing.T) {
	query := Update("a").Set("b", 1).Where("c = ?", 2)
	updateAccessor := query.GetData()

	wp := updateAccessor.GetWhereParts()
	assert.Equal(t, 1, len(wp))
	wpStr, wpArgs, err := wp[0].ToSQL()
	assert.NoError(t, err)
	assert.Equal(t, "c = ?", wpStr)
	assert.Equal(t, []interface{}{2}, wpArgs)

	assert.Equal(t, "a", updateAccessor.GetResource())
	assert.Equal(t, 0, len(updateAccessor.GetColumns()))
}
