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
package core

import (
	"github.com/qcompiler/qrca/pkg/hir"
	"github.com/qcompiler/qrca/pkg/rca"
)

// Length is the name of the intrinsic function returning the size of an
// array.
const Length = "Length"

// IsMeasurement determines whether a given callable is an intrinsic
// measurement, i.e. an operation which produces (one or more) results.
func IsMeasurement(decl *hir.CallableDecl) bool {
	return decl.Intrinsic && decl.Kind == hir.OPERATION && containsResult(decl.Output)
}

func containsResult(ty hir.Ty) bool {
	switch ty := ty.(type) {
	case hir.Prim:
		return ty == hir.Result
	case hir.ArrayTy:
		return containsResult(ty.Elem)
	case hir.TupleTy:
		for _, item := range ty.Items {
			if containsResult(item) {
				return true
			}
		}
	}
	//
	return false
}

// intrinsicGeneratorSet returns the generator set summarising an intrinsic
// callable, whose implementation is provided by the target and hence cannot
// be analysed.
func intrinsicGeneratorSet(decl *hir.CallableDecl) rca.ApplicationGeneratorSet {
	var (
		params  = hir.InputParams(decl)
		output  = decl.Output
		dynamic = !hir.IsUnit(output)
		gs      rca.ApplicationGeneratorSet
	)
	//
	switch {
	case decl.Name == Length && decl.Kind == hir.FUNCTION && len(params) == 1 && hir.IsArray(params[0].Ty):
		// The length of an array is dynamic only when its size is.
		sized := rca.Quantum{Features: rca.USE_OF_DYNAMIC_INT, Value: rca.Element{Runtime: rca.DYNAMIC}}
		//
		return rca.ApplicationGeneratorSet{
			Inherent: rca.CLASSICAL,
			DynamicParamApplications: []rca.ParamApplication{
				rca.ArrayParamApplication{
					StaticContentDynamicSize:  sized,
					DynamicContentStaticSize:  rca.CLASSICAL,
					DynamicContentDynamicSize: sized,
				},
			},
		}
	case IsMeasurement(decl):
		// Measurements always produce dynamic results.
		gs.Inherent = rca.Quantum{Features: rca.NO_FEATURES, Value: rca.ValueKindOf(output, true)}
	case decl.Kind == hir.OPERATION:
		gs.Inherent = rca.Quantum{Features: rca.NO_FEATURES, Value: rca.StaticValueKind(output)}
	default:
		gs.Inherent = rca.CLASSICAL
	}
	//
	for _, param := range params {
		gs.DynamicParamApplications = append(gs.DynamicParamApplications,
			uniformApplication(param.Ty, rca.ValueKindOf(output, dynamic)))
	}
	//
	return gs
}

// cyclicGeneratorSet returns a conservative generator set for a callable
// which is (part of) a cycle, and whose own generator set is therefore not
// yet available.
func cyclicGeneratorSet(decl *hir.CallableDecl) rca.ApplicationGeneratorSet {
	var (
		params = hir.InputParams(decl)
		value  = rca.ValueKindOf(decl.Output, !hir.IsUnit(decl.Output))
		gs     rca.ApplicationGeneratorSet
	)
	//
	if decl.Kind == hir.OPERATION {
		gs.Inherent = rca.Quantum{Features: rca.CALL_TO_CYCLIC_OPERATION, Value: value}
	} else {
		gs.Inherent = rca.CLASSICAL
	}
	//
	for _, param := range params {
		kind := rca.Quantum{Features: rca.CALL_TO_CYCLIC_FUNCTION_WITH_DYNAMIC_ARG, Value: value}
		gs.DynamicParamApplications = append(gs.DynamicParamApplications, sameApplication(param.Ty, kind))
	}
	//
	return gs
}

// Construct a parameter application in which using a dynamic argument of the
// given type requires the feature for that type, and yields a given value.
func uniformApplication(ty hir.Ty, value rca.ValueKind) rca.ParamApplication {
	arr, ok := ty.(hir.ArrayTy)
	//
	if !ok {
		return rca.ElementParamApplication{Kind: rca.Quantum{Features: rca.FeatureForType(ty), Value: value}}
	}
	//
	var (
		size    = rca.USE_OF_DYNAMICALLY_SIZED_ARRAY
		content = rca.FeatureForType(arr.Elem)
	)
	//
	return rca.ArrayParamApplication{
		StaticContentDynamicSize:  rca.Quantum{Features: size, Value: value},
		DynamicContentStaticSize:  rca.Quantum{Features: content, Value: value},
		DynamicContentDynamicSize: rca.Quantum{Features: size.Union(content), Value: value},
	}
}

// Construct a parameter application which has the same compute kind for every
// axis.
func sameApplication(ty hir.Ty, kind rca.ComputeKind) rca.ParamApplication {
	if hir.IsArray(ty) {
		return rca.ArrayParamApplication{
			StaticContentDynamicSize:  kind,
			DynamicContentStaticSize:  kind,
			DynamicContentDynamicSize: kind,
		}
	}
	//
	return rca.ElementParamApplication{Kind: kind}
}
