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

package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/yarpc/yarpcerrors"
)

func TestReadVersion(t *testing.T) {
	md := accountMetadata()
	assert.NoError(t, md.Validate())

	vs := readVersion(md, &account{ID: "a1"})
	assert.True(t, vs.numeric)
	assert.Equal(t, int64(0), vs.old)
	assert.Equal(t, int64(1), vs.next)

	vs = readVersion(md, &account{ID: "a1", Version: 7})
	assert.True(t, vs.numeric)
	assert.Equal(t, int64(7), vs.old)
	assert.Equal(t, int64(8), vs.next)

	lmd := ledgerMetadata()
	assert.NoError(t, lmd.Validate())
	vs = readVersion(lmd, &ledgerEntry{ID: "l1", Rev: "abc"})
	assert.False(t, vs.numeric)
	assert.Equal(t, "abc", vs.raw)

	nmd := notebookMetadata()
	assert.NoError(t, nmd.Validate())
	assert.Nil(t, readVersion(nmd, &notebook{ID: "n1"}))
}

func TestToInt64(t *testing.T) {
	for _, v := range []interface{}{
		int(5), int8(5), int16(5), int32(5), int64(5),
		uint(5), uint8(5), uint16(5), uint32(5), uint64(5),
	} {
		n, ok := toInt64(v)
		assert.True(t, ok)
		assert.Equal(t, int64(5), n)
	}
	_, ok := toInt64("5")
	assert.False(t, ok)
	_, ok = toInt64(5.0)
	assert.False(t, ok)
}

func TestBuildInsertVersioned(t *testing.T) {
	md := accountMetadata()
	assert.NoError(t, md.Validate())

	e := &account{ID: "a1", Name: "first"}
	vs := readVersion(md, e)
	stmt, err := buildInsert("ks", md, e, vs, nil)
	assert.NoError(t, err)

	sql, args, err := stmt.ToSQL()
	assert.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO ks.accounts (id,name,version) VALUES (?,?,?) IF NOT EXISTS",
		sql)
	assert.Equal(t, []interface{}{"a1", "first", int64(1)}, args)
	assert.True(t, stmt.IsCAS())
}

func TestBuildInsertNonNumericVersion(t *testing.T) {
	md := ledgerMetadata()
	assert.NoError(t, md.Validate())

	e := &ledgerEntry{ID: "l1", Note: "n", Rev: "abc"}
	vs := readVersion(md, e)
	stmt, err := buildInsert("ks", md, e, vs, nil)
	assert.NoError(t, err)

	sql, args, err := stmt.ToSQL()
	assert.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO ks.ledger (id,note,rev) VALUES (?,?,?)", sql)
	assert.Equal(t, []interface{}{"l1", "n", "abc"}, args)
	assert.False(t, stmt.IsCAS())
}

func TestBuildInsertWithWriteOptions(t *testing.T) {
	md := notebookMetadata()
	assert.NoError(t, md.Validate())

	e := &notebook{ID: "n1", Title: "t"}
	stmt, err := buildInsert("ks", md, e, nil, &WriteOptions{
		TTL:       90 * time.Second,
		Timestamp: 1234,
	})
	assert.NoError(t, err)

	sql, args, err := stmt.ToSQL()
	assert.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO ks.notebooks (id,tags,attrs,links,title) "+
			"VALUES (?,?,?,?,?) USING TTL ? AND TIMESTAMP ?",
		sql)
	assert.Equal(t, 90, args[len(args)-2])
	assert.Equal(t, int64(1234), args[len(args)-1])
}

func TestBuildUpdateVersioned(t *testing.T) {
	md := accountMetadata()
	assert.NoError(t, md.Validate())

	e := &account{ID: "a1", Name: "second", Version: 3}
	vs := readVersion(md, e)
	stmt, err := buildUpdate("ks", md, e, vs, nil)
	assert.NoError(t, err)

	sql, args, err := stmt.ToSQL()
	assert.NoError(t, err)
	assert.Equal(t,
		"UPDATE ks.accounts SET name = ?, version = ? WHERE id = ? IF version = ?",
		sql)
	assert.Equal(t, []interface{}{"second", int64(4), "a1", int64(3)}, args)
	assert.True(t, stmt.IsCAS())
}

func TestBuildUpdateCompoundKey(t *testing.T) {
	md := eventMetadata()
	assert.NoError(t, md.Validate())

	e := &event{
		Key: &eventKey{
			Bucket: &eventBucket{Tenant: "acme", Day: 12},
			Seq:    99,
		},
		Payload: []byte("x"),
	}
	stmt, err := buildUpdate("ks", md, e, nil, nil)
	assert.NoError(t, err)

	sql, args, err := stmt.ToSQL()
	assert.NoError(t, err)
	assert.Equal(t,
		"UPDATE ks.events SET payload = ? "+
			"WHERE tenant = ? AND day = ? AND seq = ?",
		sql)
	assert.Equal(t,
		[]interface{}{[]byte("x"), "acme", int32(12), int64(99)}, args)
}

func TestBuildMutationKinds(t *testing.T) {
	md := notebookMetadata()
	assert.NoError(t, md.Validate())
	id := []interface{}{"n1"}

	tags, err := md.FieldByName("Tags")
	assert.NoError(t, err)
	attrs, err := md.FieldByName("Attrs")
	assert.NoError(t, err)

	stmt, err := buildMutation(
		"ks", md, tags, mutationAppend, []interface{}{"a"}, 0, id, nil)
	assert.NoError(t, err)
	sql, args, err := stmt.ToSQL()
	assert.NoError(t, err)
	assert.Equal(t, "UPDATE ks.notebooks SET tags = tags + ? WHERE id = ?", sql)
	assert.Equal(t, []interface{}{[]interface{}{"a"}, "n1"}, args)

	stmt, err = buildMutation(
		"ks", md, tags, mutationPrepend, []interface{}{"a"}, 0, id, nil)
	assert.NoError(t, err)
	sql, _, err = stmt.ToSQL()
	assert.NoError(t, err)
	assert.Equal(t, "UPDATE ks.notebooks SET tags = ? + tags WHERE id = ?", sql)

	stmt, err = buildMutation(
		"ks", md, tags, mutationReplaceAt, "a", 2, id, nil)
	assert.NoError(t, err)
	sql, args, err = stmt.ToSQL()
	assert.NoError(t, err)
	assert.Equal(t, "UPDATE ks.notebooks SET tags[2] = ? WHERE id = ?", sql)
	assert.Equal(t, []interface{}{"a", "n1"}, args)

	stmt, err = buildMutation(
		"ks", md, attrs, mutationRemove, []interface{}{"k"}, 0, id, nil)
	assert.NoError(t, err)
	sql, _, err = stmt.ToSQL()
	assert.NoError(t, err)
	assert.Equal(t, "UPDATE ks.notebooks SET attrs = attrs - ? WHERE id = ?", sql)
}

func TestBuildMutationTypeMismatch(t *testing.T) {
	md := notebookMetadata()
	assert.NoError(t, md.Validate())
	id := []interface{}{"n1"}

	title, err := md.FieldByName("Title")
	assert.NoError(t, err)
	attrs, err := md.FieldByName("Attrs")
	assert.NoError(t, err)

	// scalar column supports no collection mutation
	_, err = buildMutation(
		"ks", md, title, mutationAppend, []interface{}{"a"}, 0, id, nil)
	assert.True(t, yarpcerrors.IsInvalidArgument(err))

	// prepend and indexed replace are list only
	_, err = buildMutation(
		"ks", md, attrs, mutationPrepend, []interface{}{"a"}, 0, id, nil)
	assert.True(t, yarpcerrors.IsInvalidArgument(err))
	_, err = buildMutation(
		"ks", md, attrs, mutationReplaceAt, "a", 0, id, nil)
	assert.True(t, yarpcerrors.IsInvalidArgument(err))
}

func TestEmptyCollection(t *testing.T) {
	assert.True(t, emptyCollection(nil))
	assert.True(t, emptyCollection([]interface{}{}))
	assert.True(t, emptyCollection(map[interface{}]interface{}{}))
	assert.False(t, emptyCollection([]interface{}{"a"}))
	assert.False(t, emptyCollection(map[interface{}]interface{}{"k": "v"}))
	assert.False(t, emptyCollection("scalar"))
}

func TestBuildDeleteValue(t *testing.T) {
	md := notebookMetadata()
	assert.NoError(t, md.Validate())

	tags, err := md.FieldByName("Tags")
	assert.NoError(t, err)
	stmt, err := buildDeleteValue("ks", md, tags, []interface{}{"n1"}, nil)
	assert.NoError(t, err)

	sql, args, err := stmt.ToSQL()
	assert.NoError(t, err)
	assert.Equal(t, "DELETE tags FROM ks.notebooks WHERE id = ?", sql)
	assert.Equal(t, []interface{}{"n1"}, args)
}

func TestCompileTemplates(t *testing.T) {
	md := accountMetadata()
	assert.NoError(t, md.Validate())

	sel, err := compileSelectByID("ks", md)
	assert.NoError(t, err)
	assert.Equal(t,
		"SELECT id, name, version FROM ks.accounts WHERE id = ?", sel.query)

	del, err := compileDeleteByID("ks", md)
	assert.NoError(t, err)
	assert.Equal(t, "DELETE FROM ks.accounts WHERE id = ?", del.query)

	emd := eventMetadata()
	assert.NoError(t, emd.Validate())
	sel, err = compileSelectByID("", emd)
	assert.NoError(t, err)
	assert.Equal(t,
		"SELECT tenant, day, seq, payload FROM events "+
			"WHERE tenant = ? AND day = ? AND seq = ?",
		sel.query)
}
