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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/qcompiler/qrca/pkg/hir"
)

var (
	dynamicInt   = Quantum{NO_FEATURES, Element{DYNAMIC}}
	dynamicSize  = Quantum{NO_FEATURES, Array{STATIC, DYNAMIC}}
	dynamicArray = Quantum{NO_FEATURES, Array{DYNAMIC, DYNAMIC}}
)

// Generator set for a callable of type (Int, Int[]) -> Unit.
func testGeneratorSet() ApplicationGeneratorSet {
	return ApplicationGeneratorSet{
		Inherent: Quantum{NO_FEATURES, Element{STATIC}},
		DynamicParamApplications: []ParamApplication{
			ElementParamApplication{Quantum{USE_OF_DYNAMIC_INT, Element{STATIC}}},
			ArrayParamApplication{
				Quantum{USE_OF_DYNAMIC_INDEX, Element{STATIC}},
				Quantum{USE_OF_DYNAMIC_BOOL, Element{STATIC}},
				Quantum{USE_OF_DYNAMIC_DOUBLE, Element{STATIC}},
			},
		},
	}
}

func Test_Generate_01(t *testing.T) {
	check_Generate(t, []ComputeKind{CLASSICAL, CLASSICAL}, Quantum{NO_FEATURES, Element{STATIC}})
}

func Test_Generate_02(t *testing.T) {
	check_Generate(t, []ComputeKind{dynamicInt, CLASSICAL}, Quantum{USE_OF_DYNAMIC_INT, Element{STATIC}})
}

func Test_Generate_03(t *testing.T) {
	check_Generate(t, []ComputeKind{CLASSICAL, dynamicSize}, Quantum{USE_OF_DYNAMIC_INDEX, Element{STATIC}})
}

func Test_Generate_04(t *testing.T) {
	content := Quantum{NO_FEATURES, Array{DYNAMIC, STATIC}}
	check_Generate(t, []ComputeKind{CLASSICAL, content}, Quantum{USE_OF_DYNAMIC_BOOL, Element{STATIC}})
}

func Test_Generate_05(t *testing.T) {
	check_Generate(t, []ComputeKind{dynamicInt, dynamicArray},
		Quantum{USE_OF_DYNAMIC_INT | USE_OF_DYNAMIC_DOUBLE, Element{STATIC}})
}

// Quantum arguments with static values contribute nothing.
func Test_Generate_06(t *testing.T) {
	var (
		qubit = Quantum{USE_OF_DYNAMIC_QUBIT, Element{STATIC}}
		array = Quantum{NO_FEATURES, Array{STATIC, STATIC}}
	)
	//
	check_Generate(t, []ComputeKind{qubit, array}, Quantum{NO_FEATURES, Element{STATIC}})
}

func Test_Invalid_Generate_01(t *testing.T) {
	check_InvalidGenerate(t, []ComputeKind{CLASSICAL})
}

func Test_Invalid_Generate_02(t *testing.T) {
	check_InvalidGenerate(t, []ComputeKind{CLASSICAL, CLASSICAL, CLASSICAL})
}

// Value kind shape does not match parameter.
func Test_Invalid_Generate_03(t *testing.T) {
	check_InvalidGenerate(t, []ComputeKind{dynamicArray, CLASSICAL})
}

func Test_Invalid_Generate_04(t *testing.T) {
	check_InvalidGenerate(t, []ComputeKind{CLASSICAL, dynamicInt})
}

func Test_Axis_01(t *testing.T) {
	app := testGeneratorSet().DynamicParamApplications[1].(ArrayParamApplication)
	//
	for _, axis := range ARRAY_AXES {
		if got, _ := AxisOf(axis.ValueKind().(Array)); got != axis {
			t.Errorf("expected axis %s, got %s", axis, got)
		} else if app.Axis(axis) == nil {
			t.Errorf("missing application for axis %s", axis)
		}
	}
	//
	if _, ok := AxisOf(Array{STATIC, STATIC}); ok {
		t.Errorf("static array has no axis")
	}
}

func Test_Clone_01(t *testing.T) {
	var (
		gs    = testGeneratorSet()
		clone = gs.Clone()
	)
	//
	clone.DynamicParamApplications[0] = ElementParamApplication{CLASSICAL}
	//
	if diff := cmp.Diff(testGeneratorSet(), gs); diff != "" {
		t.Errorf("clone aliases original (-want +got):\n%s", diff)
	}
}

func Test_CallableProperties_01(t *testing.T) {
	var (
		gs    = testGeneratorSet()
		props CallableComputeProperties
	)
	//
	props.Specs[hir.ADJ] = &gs
	//
	if _, ok := props.Body(); ok {
		t.Errorf("unexpected body specialization")
	} else if adj, ok := props.Spec(hir.ADJ); !ok {
		t.Errorf("missing adjoint specialization")
	} else if diff := cmp.Diff(gs, adj); diff != "" {
		t.Errorf("unexpected adjoint specialization (-want +got):\n%s", diff)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Generate(t *testing.T, args []ComputeKind, expected ComputeKind) {
	actual, err := testGeneratorSet().GenerateApplicationComputeKind(args)
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	} else if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("unexpected compute kind (-want +got):\n%s", diff)
	}
}

func check_InvalidGenerate(t *testing.T, args []ComputeKind) {
	_, err := testGeneratorSet().GenerateApplicationComputeKind(args)
	//
	if err == nil {
		t.Fatalf("expected error")
	} else if _, ok := AsInvariantError(err); !ok {
		t.Errorf("expected invariant violation, got %s", err)
	}
}
