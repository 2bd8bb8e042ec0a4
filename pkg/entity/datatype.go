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

package entity

// DataType is the declared store type of a mapped column. Row decoding and
// DDL generation dispatch on it, so every supported store type needs an
// entry here.
type DataType int

// Supported column data types
const (
	UnknownType DataType = iota
	Blob
	Boolean
	Text
	Timestamp
	UUID
	Int
	Double
	BigInt
	Decimal
	Varint
	Float
	Map
	List
	Set
)

var cqlTypeNames = map[DataType]string{
	Blob:      "blob",
	Boolean:   "boolean",
	Text:      "text",
	Timestamp: "timestamp",
	UUID:      "uuid",
	Int:       "int",
	Double:    "double",
	BigInt:    "bigint",
	Decimal:   "decimal",
	Varint:    "varint",
	Float:     "float",
	Map:       "map",
	List:      "list",
	Set:       "set",
}

// String returns the CQL name of the data type
func (t DataType) String() string {
	if name, ok := cqlTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsCollection returns true for map, list and set columns
func (t DataType) IsCollection() bool {
	return t == Map || t == List || t == Set
}
