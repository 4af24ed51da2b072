// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package rca

import (
	"fmt"

	"github.com/qcompiler/qrca/pkg/hir"
	"github.com/qcompiler/qrca/pkg/util"
)

// LocalKind distinguishes the different kinds of local binding.
type LocalKind interface {
	isLocalKind()
}

// PlainLocal is an ordinary local variable.
type PlainLocal struct{}

// InputParamLocal is an input parameter of the enclosing callable.
type InputParamLocal struct {
	Index uint
}

// SpecInputLocal binds the control qubits of a controlled specialization.
type SpecInputLocal struct{}

func (PlainLocal) isLocalKind()      {}
func (InputParamLocal) isLocalKind() {}
func (SpecInputLocal) isLocalKind()  {}

// Local describes a named binding within a callable.
type Local struct {
	Var  hir.LocalVarId
	Ty   hir.Ty
	Kind LocalKind
}

// NewControlLocal constructs the local binding the control qubits of a
// controlled specialization (if it has one).
func NewControlLocal(pkg *hir.Package, spec hir.SpecDecl) util.Option[Local] {
	return util.MapOption(spec.CtlLocal, func(id hir.LocalVarId) Local {
		return Local{id, pkg.Local(id).Ty, SpecInputLocal{}}
	})
}

type localEntry struct {
	local Local
	kind  ComputeKind
}

// LocalsComputeKindMap records the current compute kind of every local
// binding within a single application instance.
type LocalsComputeKindMap struct {
	entries map[hir.LocalVarId]localEntry
}

// NewLocalsComputeKindMap constructs an empty map.
func NewLocalsComputeKindMap() LocalsComputeKindMap {
	return LocalsComputeKindMap{make(map[hir.LocalVarId]localEntry)}
}

// Insert binds a new local.  Every local is bound exactly once.
func (p *LocalsComputeKindMap) Insert(local Local, kind ComputeKind) {
	if _, ok := p.entries[local.Var]; ok {
		panic(&InvariantError{
			Expected: fmt.Sprintf("local %d to be unbound", local.Var),
			Found:    "existing binding",
		})
	}
	//
	p.entries[local.Var] = localEntry{local, kind}
}

// Find returns the local and its current compute kind (if bound).
func (p *LocalsComputeKindMap) Find(id hir.LocalVarId) (Local, ComputeKind, bool) {
	entry, ok := p.entries[id]
	return entry.local, entry.kind, ok
}

// Get returns the current compute kind of a given local, which must be bound.
func (p *LocalsComputeKindMap) Get(id hir.LocalVarId) ComputeKind {
	entry, ok := p.entries[id]
	//
	if !ok {
		panic(&InvariantError{
			Expected: fmt.Sprintf("local %d to be bound", id),
			Found:    "no binding",
		})
	}
	//
	return entry.kind
}

// Aggregate combines a compute kind into that of an existing local, as
// happens when it is reassigned.
func (p *LocalsComputeKindMap) Aggregate(id hir.LocalVarId, kind ComputeKind) {
	var current = p.Get(id)
	//
	p.entries[id] = localEntry{p.entries[id].local, Aggregate(current, kind)}
}

// Clone returns a copy of this map, such that subsequent updates to either do
// not affect the other.
func (p *LocalsComputeKindMap) Clone() LocalsComputeKindMap {
	var entries = make(map[hir.LocalVarId]localEntry, len(p.entries))
	//
	for id, entry := range p.entries {
		entries[id] = entry
	}
	//
	return LocalsComputeKindMap{entries}
}

// Widen aggregates into this map the compute kind of every local which both
// maps bind, returning true if any local changed as a result.  Locals bound
// only in the other map are ignored.
func (p *LocalsComputeKindMap) Widen(other *LocalsComputeKindMap) bool {
	var changed = false
	//
	for id, entry := range p.entries {
		if o, ok := other.entries[id]; ok {
			kind := Aggregate(entry.kind, o.kind)
			//
			if kind != entry.kind {
				p.entries[id] = localEntry{entry.local, kind}
				changed = true
			}
		}
	}
	//
	return changed
}

// Len returns the number of bound locals.
func (p *LocalsComputeKindMap) Len() uint {
	return uint(len(p.entries))
}
