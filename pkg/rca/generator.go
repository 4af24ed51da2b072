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
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/qcompiler/qrca/pkg/hir"
)

// ParamApplication is the compute kind of a node when one input parameter is
// dynamic.  This mirrors the shape of the parameter: a single compute kind for
// a scalar parameter, or one per axis for an array parameter.
type ParamApplication interface {
	fmt.Stringer
	isParamApplication()
}

// ElementParamApplication is the application of a scalar parameter.
type ElementParamApplication struct {
	Kind ComputeKind
}

// ArrayParamApplication is the application of an array parameter.
type ArrayParamApplication struct {
	StaticContentDynamicSize  ComputeKind
	DynamicContentStaticSize  ComputeKind
	DynamicContentDynamicSize ComputeKind
}

func (ElementParamApplication) isParamApplication() {}
func (ArrayParamApplication) isParamApplication()   {}

func (p ElementParamApplication) String() string {
	return p.Kind.String()
}

func (p ArrayParamApplication) String() string {
	return fmt.Sprintf("[StaticContentDynamicSize: %s, DynamicContentStaticSize: %s, DynamicContentDynamicSize: %s]",
		p.StaticContentDynamicSize.String(), p.DynamicContentStaticSize.String(), p.DynamicContentDynamicSize.String())
}

// Axis returns the compute kind of a given axis.
func (p ArrayParamApplication) Axis(axis ParamAxis) ComputeKind {
	switch axis {
	case STATIC_CONTENT_DYNAMIC_SIZE:
		return p.StaticContentDynamicSize
	case DYNAMIC_CONTENT_STATIC_SIZE:
		return p.DynamicContentStaticSize
	case DYNAMIC_CONTENT_DYNAMIC_SIZE:
		return p.DynamicContentDynamicSize
	default:
		panic(fmt.Sprintf("invalid array axis %s", axis.String()))
	}
}

// ApplicationGeneratorSet describes the compute kind of a node as a function
// of which input parameters of its enclosing callable are dynamic.  The
// parameter applications are index-aligned with the input parameters.
type ApplicationGeneratorSet struct {
	Inherent                 ComputeKind
	DynamicParamApplications []ParamApplication
}

// Clone returns a copy of this generator set which shares nothing mutable
// with the original.
func (p ApplicationGeneratorSet) Clone() ApplicationGeneratorSet {
	return ApplicationGeneratorSet{p.Inherent, slices.Clone(p.DynamicParamApplications)}
}

// GenerateApplicationComputeKind determines the compute kind of this node for
// a concrete application, given the compute kind of each argument.  This
// starts from the inherent compute kind, and merges the application of every
// parameter whose argument is dynamic.  For an array argument, the axis is
// chosen according to whether its content, its size, or both, are dynamic.
func (p ApplicationGeneratorSet) GenerateApplicationComputeKind(args []ComputeKind) (ComputeKind, error) {
	var kind = p.Inherent
	//
	if len(args) != len(p.DynamicParamApplications) {
		return nil, errors.WithStack(&InvariantError{
			Expected: fmt.Sprintf("%d arguments", len(p.DynamicParamApplications)),
			Found:    fmt.Sprintf("%d arguments", len(args)),
		})
	}
	//
	for i, arg := range args {
		q, ok := arg.(Quantum)
		// Static arguments contribute nothing
		if !ok || !q.Value.IsDynamic() {
			continue
		}
		//
		delta, err := applicationFor(p.DynamicParamApplications[i], q.Value)
		if err != nil {
			return nil, err
		}
		//
		kind = Aggregate(kind, delta)
	}
	//
	return kind, nil
}

// Select the compute kind of a parameter application matching the dynamism
// of a given (dynamic) argument.
func applicationFor(app ParamApplication, value ValueKind) (ComputeKind, error) {
	switch a := app.(type) {
	case ElementParamApplication:
		if _, ok := value.(Element); ok {
			return a.Kind, nil
		}
	case ArrayParamApplication:
		if v, ok := value.(Array); ok {
			axis, _ := AxisOf(v)
			return a.Axis(axis), nil
		}
	}
	//
	return nil, errors.WithStack(&InvariantError{
		Expected: fmt.Sprintf("argument matching %s", app.String()),
		Found:    value.String(),
	})
}

func (p ApplicationGeneratorSet) String() string {
	var builder strings.Builder
	//
	builder.WriteString("inherent: ")
	builder.WriteString(p.Inherent.String())
	//
	for i, app := range p.DynamicParamApplications {
		builder.WriteString(fmt.Sprintf("\n  [%d]: %s", i, app.String()))
	}
	//
	return builder.String()
}

// CallableComputeProperties holds the generator sets of every specialization
// of a callable, as summarised by its outermost block.
type CallableComputeProperties struct {
	Specs [4]*ApplicationGeneratorSet
}

// Spec returns the generator set for a given specialization (if it exists).
func (p *CallableComputeProperties) Spec(kind hir.SpecKind) (ApplicationGeneratorSet, bool) {
	if gs := p.Specs[kind]; gs != nil {
		return *gs, true
	}
	//
	return ApplicationGeneratorSet{}, false
}

// Body returns the generator set of the body specialization (if it exists).
func (p *CallableComputeProperties) Body() (ApplicationGeneratorSet, bool) {
	return p.Spec(hir.BODY)
}
