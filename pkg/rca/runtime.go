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

// RuntimeKind determines whether a value is known at compile time (static) or
// only at runtime (dynamic).  Dynamic dominates static.
type RuntimeKind uint8

const (
	// STATIC indicates a value is known at compile time.
	STATIC RuntimeKind = iota
	// DYNAMIC indicates a value is only known at runtime.
	DYNAMIC
)

// Join returns the least upper bound of two runtime kinds.
func (k RuntimeKind) Join(other RuntimeKind) RuntimeKind {
	return max(k, other)
}

func (k RuntimeKind) String() string {
	if k == STATIC {
		return "Static"
	}
	//
	return "Dynamic"
}

// runtimeOf converts a boolean indicator of dynamism into a runtime kind.
func runtimeOf(dynamic bool) RuntimeKind {
	if dynamic {
		return DYNAMIC
	}
	//
	return STATIC
}

// ValueKind describes the dynamism of a value.  Scalar values have a single
// runtime kind, whilst arrays track the dynamism of their content and of their
// size independently.
type ValueKind interface {
	fmt.Stringer
	// IsDynamic determines whether any aspect of this value is dynamic.
	IsDynamic() bool
	isValueKind()
}

// Element is the value kind of scalar values.
type Element struct {
	Runtime RuntimeKind
}

// Array is the value kind of array values.
type Array struct {
	Content RuntimeKind
	Size    RuntimeKind
}

func (Element) isValueKind() {}
func (Array) isValueKind()   {}

// IsDynamic implementation for ValueKind interface.
func (v Element) IsDynamic() bool {
	return v.Runtime == DYNAMIC
}

// IsDynamic implementation for ValueKind interface.
func (v Array) IsDynamic() bool {
	return v.Content == DYNAMIC || v.Size == DYNAMIC
}

func (v Element) String() string {
	return fmt.Sprintf("Element(%s)", v.Runtime.String())
}

func (v Array) String() string {
	return fmt.Sprintf("Array(Content: %s, Size: %s)", v.Content.String(), v.Size.String())
}

// JoinValueKinds computes the pointwise join of two value kinds.  Both must
// have the same shape, since a single program element cannot be both a
// scalar and an array.  A shape mismatch is an internal invariant violation.
func JoinValueKinds(lhs ValueKind, rhs ValueKind) ValueKind {
	switch l := lhs.(type) {
	case Element:
		if r, ok := rhs.(Element); ok {
			return Element{l.Runtime.Join(r.Runtime)}
		}
	case Array:
		if r, ok := rhs.(Array); ok {
			return Array{l.Content.Join(r.Content), l.Size.Join(r.Size)}
		}
	default:
		panic(fmt.Sprintf("unknown value kind %T", lhs))
	}
	//
	panic(shapeViolation(lhs, rhs))
}

// StaticValueKind returns the fully static value kind matching the shape of a
// given type.
func StaticValueKind(ty hir.Ty) ValueKind {
	return ValueKindOf(ty, false)
}

// ValueKindOf returns the value kind matching the shape of a given type, where
// every aspect is either dynamic or static.
func ValueKindOf(ty hir.Ty, dynamic bool) ValueKind {
	var runtime = runtimeOf(dynamic)
	//
	if hir.IsArray(ty) {
		return Array{runtime, runtime}
	}
	//
	return Element{runtime}
}

func shapeOf(v ValueKind) string {
	switch v.(type) {
	case Element:
		return "Element"
	case Array:
		return "Array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
