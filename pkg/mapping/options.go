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
	"time"

	"github.com/nblair/cassandra-driver-mapping/pkg/backend"
)

// WriteOptions tune a single write. Every field is independent and the zero
// value means "not set".
type WriteOptions struct {
	// TTL expires the written columns after the duration. Applied as a
	// USING TTL clause, rounded down to whole seconds.
	TTL time.Duration
	// Timestamp sets the write timestamp in microseconds. Applied as a
	// USING TIMESTAMP clause.
	Timestamp int64
	// Consistency level by CQL name for this write only
	Consistency string
	// Retry policy for this write only
	Retry *backend.RetryPolicy
}

// ReadOptions tune a single read.
type ReadOptions struct {
	// Consistency level by CQL name for this read only
	Consistency string
	// Retry policy for this read only
	Retry *backend.RetryPolicy
}

// execOptions converts the write options into driver execution options.
// Returns nil when nothing driver-level is set.
func (o *WriteOptions) execOptions() *backend.ExecOptions {
	if o == nil {
		return nil
	}
	if len(o.Consistency) == 0 && o.Retry == nil {
		return nil
	}
	return &backend.ExecOptions{
		Consistency: o.Consistency,
		Retry:       o.Retry,
	}
}

func (o *ReadOptions) execOptions() *backend.ExecOptions {
	if o == nil {
		return nil
	}
	if len(o.Consistency) == 0 && o.Retry == nil {
		return nil
	}
	return &backend.ExecOptions{
		Consistency: o.Consistency,
		Retry:       o.Retry,
	}
}

// usingClauses returns the USING clause fragments with their bound args in
// a fixed TTL-then-TIMESTAMP order.
func (o *WriteOptions) usingClauses() (sqls []string, args []interface{}) {
	if o == nil {
		return nil, nil
	}
	if o.TTL > 0 {
		sqls = append(sqls, "TTL ?")
		args = append(args, int(o.TTL/time.Second))
	}
	if o.Timestamp > 0 {
		sqls = append(sqls, "TIMESTAMP ?")
		args = append(args, o.Timestamp)
	}
	return sqls, args
}
