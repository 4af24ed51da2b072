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
	"math/bits"
	"strings"

	"github.com/qcompiler/qrca/pkg/hir"
)

// RuntimeFeatureFlags is a set of runtime features which a program element
// requires in order to be executed.  Flags accumulate by set union, hence
// combining is associative, commutative and idempotent.
type RuntimeFeatureFlags uint64

const (
	// USE_OF_DYNAMIC_BOOL indicates a Bool value is computed at runtime.
	USE_OF_DYNAMIC_BOOL RuntimeFeatureFlags = 1 << iota
	// USE_OF_DYNAMIC_INT indicates an Int value is computed at runtime.
	USE_OF_DYNAMIC_INT
	// USE_OF_DYNAMIC_PAULI indicates a Pauli value is computed at runtime.
	USE_OF_DYNAMIC_PAULI
	// USE_OF_DYNAMIC_RANGE indicates a Range value is computed at runtime.
	USE_OF_DYNAMIC_RANGE
	// USE_OF_DYNAMIC_DOUBLE indicates a Double value is computed at runtime.
	USE_OF_DYNAMIC_DOUBLE
	// USE_OF_DYNAMIC_QUBIT indicates a qubit is chosen at runtime.
	USE_OF_DYNAMIC_QUBIT
	// USE_OF_DYNAMIC_BIG_INT indicates a BigInt value is computed at runtime.
	USE_OF_DYNAMIC_BIG_INT
	// USE_OF_DYNAMIC_STRING indicates a String value is computed at runtime.
	USE_OF_DYNAMIC_STRING
	// USE_OF_DYNAMICALLY_SIZED_ARRAY indicates an array whose size is only
	// known at runtime.
	USE_OF_DYNAMICALLY_SIZED_ARRAY
	// USE_OF_DYNAMIC_TUPLE indicates a tuple containing runtime values.
	USE_OF_DYNAMIC_TUPLE
	// USE_OF_DYNAMIC_INDEX indicates an array is accessed at a runtime index.
	USE_OF_DYNAMIC_INDEX
	// FORWARD_BRANCHING_ON_DYNAMIC_VALUE indicates a branch on a runtime
	// value.
	FORWARD_BRANCHING_ON_DYNAMIC_VALUE
	// LOOP_WITH_DYNAMIC_CONDITION indicates a loop whose condition is only
	// known at runtime.
	LOOP_WITH_DYNAMIC_CONDITION
	// RETURN_WITHIN_DYNAMIC_SCOPE indicates an early return whose execution
	// depends on a runtime value.
	RETURN_WITHIN_DYNAMIC_SCOPE
	// MEASUREMENT_WITHIN_DYNAMIC_SCOPE indicates a measurement whose execution
	// depends on a runtime value.
	MEASUREMENT_WITHIN_DYNAMIC_SCOPE
	// CALL_TO_CYCLIC_FUNCTION_WITH_DYNAMIC_ARG indicates a recursive function
	// is called with a runtime argument.
	CALL_TO_CYCLIC_FUNCTION_WITH_DYNAMIC_ARG
	// CALL_TO_CYCLIC_OPERATION indicates a recursive operation is called.
	CALL_TO_CYCLIC_OPERATION
)

// NO_FEATURES is the empty set of runtime features.
const NO_FEATURES RuntimeFeatureFlags = 0

var featureNames = [...]string{
	"UseOfDynamicBool",
	"UseOfDynamicInt",
	"UseOfDynamicPauli",
	"UseOfDynamicRange",
	"UseOfDynamicDouble",
	"UseOfDynamicQubit",
	"UseOfDynamicBigInt",
	"UseOfDynamicString",
	"UseOfDynamicallySizedArray",
	"UseOfDynamicTuple",
	"UseOfDynamicIndex",
	"ForwardBranchingOnDynamicValue",
	"LoopWithDynamicCondition",
	"ReturnWithinDynamicScope",
	"MeasurementWithinDynamicScope",
	"CallToCyclicFunctionWithDynamicArg",
	"CallToCyclicOperation",
}

// Union returns the set of features in either this set or the other.
func (f RuntimeFeatureFlags) Union(other RuntimeFeatureFlags) RuntimeFeatureFlags {
	return f | other
}

// Contains determines whether every feature in the other set is in this set.
func (f RuntimeFeatureFlags) Contains(other RuntimeFeatureFlags) bool {
	return f&other == other
}

// Difference returns those features in this set which are not in the other.
func (f RuntimeFeatureFlags) Difference(other RuntimeFeatureFlags) RuntimeFeatureFlags {
	return f &^ other
}

// IsEmpty determines whether this set contains no features.
func (f RuntimeFeatureFlags) IsEmpty() bool {
	return f == NO_FEATURES
}

// Count returns the number of features in this set.
func (f RuntimeFeatureFlags) Count() uint {
	return uint(bits.OnesCount64(uint64(f)))
}

// Names returns the names of all features in this set, in declaration order.
func (f RuntimeFeatureFlags) Names() []string {
	var names []string
	//
	for i, name := range featureNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	//
	return names
}

func (f RuntimeFeatureFlags) String() string {
	return "{" + strings.Join(f.Names(), ", ") + "}"
}

// ParseFeature returns the feature with a given name (if it exists).
func ParseFeature(name string) (RuntimeFeatureFlags, bool) {
	for i, n := range featureNames {
		if n == name {
			return 1 << i, true
		}
	}
	//
	return NO_FEATURES, false
}

// FeatureForType returns the feature required when a value of the given type
// is computed at runtime.  Composite types are reported via their shape
// rather than their element types.
func FeatureForType(ty hir.Ty) RuntimeFeatureFlags {
	switch ty := ty.(type) {
	case hir.Prim:
		switch ty {
		case hir.Bool:
			return USE_OF_DYNAMIC_BOOL
		case hir.Int:
			return USE_OF_DYNAMIC_INT
		case hir.BigInt:
			return USE_OF_DYNAMIC_BIG_INT
		case hir.Double:
			return USE_OF_DYNAMIC_DOUBLE
		case hir.Pauli:
			return USE_OF_DYNAMIC_PAULI
		case hir.Qubit:
			return USE_OF_DYNAMIC_QUBIT
		case hir.Range:
			return USE_OF_DYNAMIC_RANGE
		case hir.String:
			return USE_OF_DYNAMIC_STRING
		default:
			// Results are inherently runtime values.
			return NO_FEATURES
		}
	case hir.ArrayTy:
		return USE_OF_DYNAMICALLY_SIZED_ARRAY
	case hir.TupleTy:
		if len(ty.Items) == 0 {
			return NO_FEATURES
		}
		//
		return USE_OF_DYNAMIC_TUPLE
	default:
		return NO_FEATURES
	}
}
