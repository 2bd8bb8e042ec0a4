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

import (
	"reflect"
	"sync"

	"go.uber.org/yarpc/yarpcerrors"
)

// Registry maps entity types to their metadata. Reflection is used for type
// identity only; field access always goes through the registered accessor
// funcs. Metadata is validated and frozen at registration.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*Metadata
}

// NewRegistry returns an empty metadata registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*Metadata),
	}
}

func typeOf(prototype interface{}) (reflect.Type, error) {
	t := reflect.TypeOf(prototype)
	if t == nil {
		return nil, yarpcerrors.InvalidArgumentErrorf("nil entity prototype")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t, nil
}

// Register validates md and binds it to the type of the prototype. A type
// can only be registered once.
func (r *Registry) Register(prototype interface{}, md *Metadata) error {
	t, err := typeOf(prototype)
	if err != nil {
		return err
	}
	if err := md.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byType[t]; ok {
		return yarpcerrors.AlreadyExistsErrorf(
			"entity type %q already registered", t.Name())
	}
	r.byType[t] = md
	return nil
}

// Lookup returns the metadata registered for the prototype's type.
func (r *Registry) Lookup(prototype interface{}) (*Metadata, error) {
	t, err := typeOf(prototype)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	md, ok := r.byType[t]
	if !ok {
		return nil, yarpcerrors.NotFoundErrorf(
			"no metadata registered for entity type %q", t.Name())
	}
	return md, nil
}
