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
package hir

import "github.com/qcompiler/qrca/pkg/util"

// CallableKind distinguishes functions (which are purely classical by
// construction) from operations (which may manipulate quantum state).
type CallableKind uint8

const (
	// FUNCTION identifies a callable which cannot touch quantum state.
	FUNCTION CallableKind = iota
	// OPERATION identifies a callable which may touch quantum state.
	OPERATION
)

func (k CallableKind) String() string {
	if k == FUNCTION {
		return "function"
	}
	//
	return "operation"
}

// SpecKind identifies one of the (up to) four specializations of a callable.
type SpecKind uint8

const (
	// BODY is the default specialization.
	BODY SpecKind = iota
	// ADJ is the adjoint specialization.
	ADJ
	// CTL is the controlled specialization.
	CTL
	// CTL_ADJ is the controlled adjoint specialization.
	CTL_ADJ
)

var specNames = [...]string{"body", "adj", "ctl", "ctl-adj"}

func (k SpecKind) String() string {
	return specNames[k]
}

// SpecDecl describes the implementation of one specialization.  Controlled
// specializations additionally bind the array of control qubits to a local.
type SpecDecl struct {
	Block    BlockId
	CtlLocal util.Option[LocalVarId]
}

// CallableDecl declares a function or operation.  Intrinsic callables have no
// specializations, as their implementation is provided by the target.
type CallableDecl struct {
	Name      string
	Kind      CallableKind
	Input     []Pat
	Output    Ty
	Intrinsic bool
	Specs     [4]util.Option[SpecDecl]
}

// Spec returns the given specialization (if it exists).
func (p *CallableDecl) Spec(kind SpecKind) util.Option[SpecDecl] {
	return p.Specs[kind]
}

// Pat represents an input pattern of a callable.  Tuple patterns are
// flattened into individual parameters.
type Pat interface {
	isPat()
}

// BindPat binds a parameter to a local variable.
type BindPat struct {
	Local LocalVarId
	Ty    Ty
}

// DiscardPat represents a parameter which is not bound (i.e. "_").
type DiscardPat struct {
	Ty Ty
}

// TuplePat destructures a tuple parameter.
type TuplePat struct {
	Items []Pat
}

func (BindPat) isPat()    {}
func (DiscardPat) isPat() {}
func (TuplePat) isPat()   {}

// InputParam describes one (flattened) input parameter of a callable.  The
// index of a parameter is its position within the flattened list.
type InputParam struct {
	Index uint
	Ty    Ty
	Local util.Option[LocalVarId]
}

// InputParams flattens the input patterns of a callable into a dense,
// zero-based list of input parameters.
func InputParams(decl *CallableDecl) []InputParam {
	var params []InputParam
	//
	for _, pat := range decl.Input {
		params = flattenPat(pat, params)
	}
	//
	return params
}

func flattenPat(pat Pat, params []InputParam) []InputParam {
	var index = uint(len(params))
	//
	switch p := pat.(type) {
	case BindPat:
		return append(params, InputParam{index, p.Ty, util.Some(p.Local)})
	case DiscardPat:
		return append(params, InputParam{index, p.Ty, util.None[LocalVarId]()})
	case TuplePat:
		for _, item := range p.Items {
			params = flattenPat(item, params)
		}
		//
		return params
	default:
		panic("unreachable")
	}
}
