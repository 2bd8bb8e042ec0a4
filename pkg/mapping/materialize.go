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
	"math/big"
	"time"

	"github.com/nblair/cassandra-driver-mapping/pkg/entity"

	"go.uber.org/yarpc/yarpcerrors"
	"gopkg.in/inf.v0"
)

// decodeFunc converts one driver value into the Go value the declared
// column type maps to.
type decodeFunc func(v interface{}) (interface{}, error)

func decodeTypeError(want string, v interface{}) error {
	return yarpcerrors.InternalErrorf(
		"cannot decode %T as %s", v, want)
}

// decoders is the exhaustive dispatch table from declared column type to
// decoder. An unmapped type is a metadata bug and reported per field.
var decoders = map[entity.DataType]decodeFunc{
	entity.Text: func(v interface{}) (interface{}, error) {
		if s, ok := v.(string); ok {
			return s, nil
		}
		return nil, decodeTypeError("text", v)
	},
	entity.UUID: func(v interface{}) (interface{}, error) {
		// the store normalizes driver UUIDs to their string form
		if s, ok := v.(string); ok {
			return s, nil
		}
		return nil, decodeTypeError("uuid", v)
	},
	entity.Int: func(v interface{}) (interface{}, error) {
		switch n := v.(type) {
		case int32:
			return n, nil
		case int:
			return int32(n), nil
		case int64:
			return int32(n), nil
		}
		return nil, decodeTypeError("int", v)
	},
	entity.BigInt: func(v interface{}) (interface{}, error) {
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		}
		return nil, decodeTypeError("bigint", v)
	},
	entity.Double: func(v interface{}) (interface{}, error) {
		if f, ok := v.(float64); ok {
			return f, nil
		}
		return nil, decodeTypeError("double", v)
	},
	entity.Float: func(v interface{}) (interface{}, error) {
		switch f := v.(type) {
		case float32:
			return f, nil
		case float64:
			return float32(f), nil
		}
		return nil, decodeTypeError("float", v)
	},
	entity.Boolean: func(v interface{}) (interface{}, error) {
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return nil, decodeTypeError("boolean", v)
	},
	entity.Blob: func(v interface{}) (interface{}, error) {
		if b, ok := v.([]byte); ok {
			return b, nil
		}
		return nil, decodeTypeError("blob", v)
	},
	entity.Timestamp: func(v interface{}) (interface{}, error) {
		if t, ok := v.(time.Time); ok {
			return t, nil
		}
		return nil, decodeTypeError("timestamp", v)
	},
	entity.Decimal: func(v interface{}) (interface{}, error) {
		if d, ok := v.(*inf.Dec); ok {
			return d, nil
		}
		return nil, decodeTypeError("decimal", v)
	},
	entity.Varint: func(v interface{}) (interface{}, error) {
		if n, ok := v.(*big.Int); ok {
			return n, nil
		}
		return nil, decodeTypeError("varint", v)
	},
	entity.Map: func(v interface{}) (interface{}, error) {
		if m, ok := v.(map[interface{}]interface{}); ok {
			return m, nil
		}
		return nil, decodeTypeError("map", v)
	},
	entity.List: func(v interface{}) (interface{}, error) {
		if l, ok := v.([]interface{}); ok {
			return l, nil
		}
		return nil, decodeTypeError("list", v)
	},
	entity.Set: func(v interface{}) (interface{}, error) {
		if l, ok := v.([]interface{}); ok {
			return l, nil
		}
		return nil, decodeTypeError("set", v)
	},
}

// FieldError is one failed column decode of one row.
type FieldError struct {
	Column string
	Err    error
}

// RowResult is one materialized row. Entity is always populated; FieldErrors
// lists columns whose values could not be decoded or assigned, leaving the
// corresponding fields at their zero value.
type RowResult struct {
	Entity      interface{}
	FieldErrors []FieldError
}

// Partial reports whether any field of the row failed to decode.
func (r *RowResult) Partial() bool {
	return len(r.FieldErrors) > 0
}

// materializeRow turns one column map into an entity instance. Key
// sub-objects are instantiated and attached before any field is routed to
// them. A failing entity or key factory aborts the materialization; a
// failing field decode is recorded and skipped.
func materializeRow(
	md *entity.Metadata, row map[string]interface{},
) (RowResult, error) {
	e := md.New()
	if e == nil {
		return RowResult{}, yarpcerrors.InternalErrorf(
			"entity factory for table %q returned nil", md.Table)
	}

	// owner per role
	var keyObj, partitionObj interface{}
	if md.Key != nil {
		keyObj = md.Key.New()
		if keyObj == nil {
			return RowResult{}, yarpcerrors.InternalErrorf(
				"key factory for table %q returned nil", md.Table)
		}
		if err := md.Key.Field.Set(e, keyObj); err != nil {
			return RowResult{}, err
		}
		if md.Key.Partition != nil {
			partitionObj = md.Key.Partition.New()
			if partitionObj == nil {
				return RowResult{}, yarpcerrors.InternalErrorf(
					"partition key factory for table %q returned nil", md.Table)
			}
			if err := md.Key.Partition.Field.Set(keyObj, partitionObj); err != nil {
				return RowResult{}, err
			}
		}
	}

	result := RowResult{Entity: e}
	for _, fd := range md.Fields {
		raw, ok := row[fd.Column]
		if !ok || raw == nil {
			continue
		}

		decode, ok := decoders[fd.Type]
		if !ok {
			result.FieldErrors = append(result.FieldErrors, FieldError{
				Column: fd.Column,
				Err: yarpcerrors.InternalErrorf(
					"no decoder for declared type %s", fd.Type),
			})
			continue
		}
		value, err := decode(raw)
		if err != nil {
			result.FieldErrors = append(result.FieldErrors, FieldError{
				Column: fd.Column, Err: err})
			continue
		}

		owner := e
		switch fd.Role {
		case entity.RolePartitionKey:
			if partitionObj != nil {
				owner = partitionObj
			} else if keyObj != nil {
				owner = keyObj
			}
		case entity.RolePrimaryKey:
			if keyObj != nil {
				owner = keyObj
			}
		}
		if err := fd.Set(owner, value); err != nil {
			result.FieldErrors = append(result.FieldErrors, FieldError{
				Column: fd.Column, Err: err})
		}
	}
	return result, nil
}

// Materialize turns driver rows into entity instances, one RowResult per
// row in input order.
func Materialize(
	md *entity.Metadata, rows []map[string]interface{},
) ([]RowResult, error) {
	results := make([]RowResult, 0, len(rows))
	for _, row := range rows {
		result, err := materializeRow(md, row)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}
