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

// Package schema reconciles entity metadata with the store schema. The
// generated DDL is additive only: tables are created if missing, existing
// tables are never altered or dropped.
package schema

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nblair/cassandra-driver-mapping/pkg/entity"
)

// columnType renders the CQL type of one column, with element type
// parameters for collections.
func columnType(fd *entity.FieldDescriptor) string {
	switch fd.Type {
	case entity.Map:
		return fmt.Sprintf("map<%s, %s>", fd.KeyType, fd.ElemType)
	case entity.List:
		return fmt.Sprintf("list<%s>", fd.ElemType)
	case entity.Set:
		return fmt.Sprintf("set<%s>", fd.ElemType)
	default:
		return fd.Type.String()
	}
}

// primaryKeyClause renders the PRIMARY KEY clause. Partition key columns
// are grouped in an inner parenthesis, remaining key columns become
// clustering columns, both in declaration order.
func primaryKeyClause(md *entity.Metadata) string {
	var partition, clustering []string
	for _, column := range md.PKColumns {
		fd, err := md.FieldByColumn(column)
		if err != nil {
			continue
		}
		if fd.Role == entity.RolePartitionKey {
			partition = append(partition, column)
		} else {
			clustering = append(clustering, column)
		}
	}
	// without an explicit partition key the first key column partitions
	if len(partition) == 0 && len(clustering) > 0 {
		partition, clustering = clustering[:1], clustering[1:]
	}

	if len(clustering) == 0 {
		if len(partition) == 1 {
			return fmt.Sprintf("PRIMARY KEY (%s)", partition[0])
		}
		return fmt.Sprintf("PRIMARY KEY ((%s))", strings.Join(partition, ", "))
	}
	return fmt.Sprintf("PRIMARY KEY ((%s), %s)",
		strings.Join(partition, ", "), strings.Join(clustering, ", "))
}

// CreateTableCQL renders the CREATE TABLE IF NOT EXISTS statement for one
// entity type.
func CreateTableCQL(keyspace string, md *entity.Metadata) string {
	buf := &bytes.Buffer{}
	buf.WriteString("CREATE TABLE IF NOT EXISTS ")
	buf.WriteString(md.QualifiedTable(keyspace))
	buf.WriteString(" (")
	for _, fd := range md.Fields {
		buf.WriteString(fd.Column)
		buf.WriteString(" ")
		buf.WriteString(columnType(fd))
		buf.WriteString(", ")
	}
	buf.WriteString(primaryKeyClause(md))
	buf.WriteString(")")
	return buf.String()
}
