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

package cassandra

import (
	"time"
)

// CassandraConn describes the properties to manage a Cassandra connection.
type CassandraConn struct {
	ContactPoints      []string      `yaml:"contact_points"`
	Port               int           `yaml:"port"`
	Username           string        `yaml:"username"`
	Password           string        `yaml:"password"`
	Consistency        string        `yaml:"consistency"`
	ConnectionsPerHost int           `yaml:"connections_per_host"`
	Timeout            time.Duration `yaml:"timeout"`
	SocketKeepalive    time.Duration `yaml:"socket_keepalive"`
	ProtoVersion       int           `yaml:"proto_version"`
	DataCenter         string        `yaml:"data_center"` // data center filter
	PageSize           int           `yaml:"page_size"`
	RetryCount         int           `yaml:"retry_count"`
	HostPolicy         string        `yaml:"host_policy"`
	CQLVersion         string        `yaml:"cql_version"` // set only on C* 3.x
}

// Config is the connection config for one keyspace
type Config struct {
	CassandraConn *CassandraConn `yaml:"connection"`
	// StoreName is the keyspace this store connects to
	StoreName string `yaml:"store_name"`
}

const (
	defaultPort         = 9042
	defaultConsistency  = "LOCAL_QUORUM"
	defaultTimeout      = 10 * time.Second
	defaultProtoVersion = 4

	// host policy names accepted in CassandraConn.HostPolicy
	hostPolicyRoundRobin   = "RoundRobinHostPolicy"
	hostPolicyTokenAware   = "TokenAwareHostPolicy"
	hostPolicyDCTokenAware = "DCAwareTokenAwareHostPolicy"
)

// fillDefaults returns a copy of the connection config with unset fields
// replaced by defaults.
func (c CassandraConn) fillDefaults() CassandraConn {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if len(c.Consistency) == 0 {
		c.Consistency = defaultConsistency
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.ProtoVersion == 0 {
		c.ProtoVersion = defaultProtoVersion
	}
	return c
}
