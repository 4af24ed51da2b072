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
)

// ComputeKind classifies what evaluating a program element requires.  A
// classical element never touches quantum state, and is always reproducible
// without runtime support.  A quantum element carries the set of runtime
// features it requires, along with the dynamism of the value it produces.
type ComputeKind interface {
	fmt.Stringer
	isComputeKind()
}

// Classical is the compute kind of elements which never touch quantum state.
type Classical struct{}

// Quantum is the compute kind of elements which require quantum resources.
type Quantum struct {
	Features RuntimeFeatureFlags
	Value    ValueKind
}

func (Classical) isComputeKind() {}
func (Quantum) isComputeKind()   {}

func (Classical) String() string {
	return "Classical"
}

func (p Quantum) String() string {
	return fmt.Sprintf("Quantum(%s, %s)", p.Features.String(), p.Value.String())
}

// CLASSICAL is the (unique) classical compute kind.
var CLASSICAL ComputeKind = Classical{}

// Aggregate combines two compute kinds.  Classical is the identity, whilst
// for two quantum kinds the features are united and the value kinds joined.
func Aggregate(lhs ComputeKind, rhs ComputeKind) ComputeKind {
	switch l := lhs.(type) {
	case Classical:
		return rhs
	case Quantum:
		switch r := rhs.(type) {
		case Classical:
			return lhs
		case Quantum:
			return Quantum{l.Features.Union(r.Features), JoinValueKinds(l.Value, r.Value)}
		}
	}
	//
	panic(fmt.Sprintf("unknown compute kinds %T, %T", lhs, rhs))
}

// AggregateFeatures combines the runtime features of a given compute kind
// into another, without affecting its value kind.  A classical kind becomes
// quantum (with a static value of the given type) when there is at least one
// feature to add, or when the other kind is itself quantum.
func AggregateFeatures(kind ComputeKind, other ComputeKind, ty hir.Ty) ComputeKind {
	if o, ok := other.(Quantum); ok {
		return WithFeatures(kind, o.Features, ty, true)
	}
	//
	return kind
}

// WithFeatures adds a given set of runtime features to a compute kind.  When
// force holds, a classical kind is made quantum even if there are no features
// to add.
func WithFeatures(kind ComputeKind, features RuntimeFeatureFlags, ty hir.Ty, force bool) ComputeKind {
	switch k := kind.(type) {
	case Classical:
		if features.IsEmpty() && !force {
			return kind
		}
		//
		return Quantum{features, StaticValueKind(ty)}
	case Quantum:
		return Quantum{k.Features.Union(features), k.Value}
	default:
		panic(fmt.Sprintf("unknown compute kind %T", kind))
	}
}

// WithValueKind joins a value kind into a compute kind.  A classical kind is
// promoted to a quantum kind with no runtime features, since a dynamic value
// can only originate from quantum state.
func WithValueKind(kind ComputeKind, value ValueKind) ComputeKind {
	switch k := kind.(type) {
	case Classical:
		return Quantum{NO_FEATURES, value}
	case Quantum:
		return Quantum{k.Features, JoinValueKinds(k.Value, value)}
	default:
		panic(fmt.Sprintf("unknown compute kind %T", kind))
	}
}

// FeaturesOf returns the runtime features required by a compute kind.
func FeaturesOf(kind ComputeKind) RuntimeFeatureFlags {
	if k, ok := kind.(Quantum); ok {
		return k.Features
	}
	//
	return NO_FEATURES
}

// IsDynamic determines whether a compute kind produces a dynamic value.
func IsDynamic(kind ComputeKind) bool {
	k, ok := kind.(Quantum)
	return ok && k.Value.IsDynamic()
}

// IsQuantum determines whether a compute kind is quantum.
func IsQuantum(kind ComputeKind) bool {
	_, ok := kind.(Quantum)
	return ok
}
