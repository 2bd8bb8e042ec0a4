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

// Package querybuilder constructs CQL statements with positional bind args.
// It is a CQL cut of the squirrel statement-builder idiom: builders are
// immutable values backed by github.com/lann/builder, so a partially built
// statement can be shared and extended without copying.
package querybuilder

// Select returns a SelectBuilder for the given result columns.
func Select(columns ...string) SelectBuilder {
	return SelectBuilder{}.PlaceholderFormat(Question).Columns(columns...)
}

// Insert returns an InsertBuilder targeting the given table.
func Insert(into string) InsertBuilder {
	return InsertBuilder{}.PlaceholderFormat(Question).Into(into)
}

// Update returns an UpdateBuilder targeting the given table.
func Update(table string) UpdateBuilder {
	return UpdateBuilder{}.PlaceholderFormat(Question).Table(table)
}

// Delete returns a DeleteBuilder restricted to the given columns, if any.
func Delete(columns ...string) DeleteBuilder {
	b := DeleteBuilder{}.PlaceholderFormat(Question)
	for _, c := range columns {
		if len(c) > 0 {
			b = b.Columns(c)
		}
	}
	return b
}
