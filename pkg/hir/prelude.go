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

// IntrinsicDecl describes the signature of an intrinsic callable.
type IntrinsicDecl struct {
	Name   string
	Kind   CallableKind
	Input  []Ty
	Output Ty
}

// PRELUDE identifies the intrinsics which are always available, unless a
// package explicitly declares an intrinsic of the same name.
var PRELUDE = []IntrinsicDecl{
	{"H", OPERATION, []Ty{Qubit}, Unit},
	{"X", OPERATION, []Ty{Qubit}, Unit},
	{"Z", OPERATION, []Ty{Qubit}, Unit},
	{"CNOT", OPERATION, []Ty{Qubit, Qubit}, Unit},
	{"Rx", OPERATION, []Ty{Double, Qubit}, Unit},
	{"M", OPERATION, []Ty{Qubit}, Result},
	{"MResetZ", OPERATION, []Ty{Qubit}, Result},
	{"Length", FUNCTION, []Ty{ArrayTy{Result}}, Int},
}

// Prelude declares every intrinsic of the prelude which has not already been
// declared, returning the identifiers of those declared.
func (b *Builder) Prelude() map[string]ItemId {
	var ids = make(map[string]ItemId)
	//
	for _, decl := range PRELUDE {
		if _, ok := b.pkg.Lookup(decl.Name); !ok {
			ids[decl.Name] = b.Intrinsic(decl.Name, decl.Kind, decl.Output, decl.Input...)
		}
	}
	//
	return ids
}
