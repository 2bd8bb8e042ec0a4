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
	"github.com/gocql/gocql"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// newCluster translates the connection config into a gocql cluster config.
func newCluster(conn CassandraConn, storeName string) *gocql.ClusterConfig {
	conn = conn.fillDefaults()

	cluster := gocql.NewCluster(conn.ContactPoints...)
	cluster.Keyspace = storeName
	cluster.Port = conn.Port
	cluster.Timeout = conn.Timeout
	cluster.ProtoVersion = conn.ProtoVersion

	if consistency, err := gocql.ParseConsistencyWrapper(
		conn.Consistency); err == nil {
		cluster.Consistency = consistency
	} else {
		log.WithField("consistency", conn.Consistency).
			Warn("unknown consistency level, using driver default")
	}

	if len(conn.Username) > 0 {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: conn.Username,
			Password: conn.Password,
		}
	}
	if conn.ConnectionsPerHost > 0 {
		cluster.NumConns = conn.ConnectionsPerHost
	}
	if conn.SocketKeepalive > 0 {
		cluster.SocketKeepalive = conn.SocketKeepalive
	}
	if conn.PageSize > 0 {
		cluster.PageSize = conn.PageSize
	}
	if conn.RetryCount > 0 {
		cluster.RetryPolicy = &gocql.SimpleRetryPolicy{
			NumRetries: conn.RetryCount,
		}
	}
	if len(conn.CQLVersion) > 0 {
		cluster.CQLVersion = conn.CQLVersion
	}

	switch conn.HostPolicy {
	case hostPolicyTokenAware:
		cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(
			gocql.RoundRobinHostPolicy())
	case hostPolicyDCTokenAware:
		cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(
			gocql.DCAwareRoundRobinPolicy(conn.DataCenter))
	case hostPolicyRoundRobin, "":
		cluster.PoolConfig.HostSelectionPolicy = gocql.RoundRobinHostPolicy()
	default:
		log.WithField("host_policy", conn.HostPolicy).
			Warn("unknown host policy, using round robin")
		cluster.PoolConfig.HostSelectionPolicy = gocql.RoundRobinHostPolicy()
	}

	return cluster
}

// CreateStoreSession opens a gocql session against the keyspace storeName.
func CreateStoreSession(
	conn *CassandraConn, storeName string,
) (*gocql.Session, error) {
	if conn == nil {
		return nil, errors.New("cassandra connection config is required")
	}
	cluster := newCluster(*conn, storeName)
	session, err := cluster.CreateSession()
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"store":          storeName,
			"contact_points": conn.ContactPoints,
		}).Error("Fail to create cassandra session")
		return nil, errors.Wrap(err, "create cassandra session")
	}
	return session, nil
}
