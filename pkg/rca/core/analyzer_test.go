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
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/qcompiler/qrca/pkg/hir"
	"github.com/qcompiler/qrca/pkg/rca"
)

var (
	staticQuantum  = rca.Quantum{Features: rca.NO_FEATURES, Value: rca.Element{Runtime: rca.STATIC}}
	dynamicQuantum = rca.Quantum{Features: rca.NO_FEATURES, Value: rca.Element{Runtime: rca.DYNAMIC}}
	dynamicLength  = rca.Quantum{Features: rca.USE_OF_DYNAMIC_INT, Value: rca.Element{Runtime: rca.DYNAMIC}}
)

// operation Foo(q : Qubit) : Unit { H(q); }
func Test_Analyze_01(t *testing.T) {
	var (
		b      = hir.NewBuilder()
		ids    = b.Prelude()
		foo    = b.Declare("Foo", hir.OPERATION, hir.Unit)
		pq, q  = b.Param("q", hir.Qubit)
		arg    = b.Var(q)
		call   = b.Call(ids["H"], arg)
		block  = b.Block(b.Semi(call))
		result = analyze(t, b, foo, block, pq)
	)
	//
	check_Body(t, result, foo, rca.ApplicationGeneratorSet{
		Inherent:                 staticQuantum,
		DynamicParamApplications: []rca.ParamApplication{elementParamApp(rca.USE_OF_DYNAMIC_QUBIT, rca.STATIC)},
	})
	//
	check_Expr(t, result, arg, rca.ApplicationGeneratorSet{
		Inherent:                 rca.CLASSICAL,
		DynamicParamApplications: []rca.ParamApplication{rca.ElementParamApplication{Kind: dynamicQuantum}},
	})
	//
	check_Expr(t, result, call, rca.ApplicationGeneratorSet{
		Inherent:                 staticQuantum,
		DynamicParamApplications: []rca.ParamApplication{elementParamApp(rca.USE_OF_DYNAMIC_QUBIT, rca.STATIC)},
	})
}

// function Foo(b : Bool) : Int { if b { 1 } else { 2 } }
func Test_Analyze_02(t *testing.T) {
	var (
		b      = hir.NewBuilder()
		foo    = b.Declare("Foo", hir.FUNCTION, hir.Int)
		pc, c  = b.Param("b", hir.Bool)
		then   = b.Block(b.ExprStmt(b.Lit(hir.Int, "1")))
		els    = b.BlockExpr(b.Block(b.ExprStmt(b.Lit(hir.Int, "2"))))
		ite    = b.IfElse(b.Var(c), then, els)
		block  = b.Block(b.ExprStmt(ite))
		result = analyze(t, b, foo, block, pc)
		branch = elementParamApp(rca.FORWARD_BRANCHING_ON_DYNAMIC_VALUE, rca.DYNAMIC)
	)
	//
	check_Body(t, result, foo, rca.ApplicationGeneratorSet{
		Inherent:                 rca.CLASSICAL,
		DynamicParamApplications: []rca.ParamApplication{branch},
	})
	//
	check_Expr(t, result, ite, rca.ApplicationGeneratorSet{
		Inherent:                 rca.CLASSICAL,
		DynamicParamApplications: []rca.ParamApplication{branch},
	})
	// Arms themselves are classical
	check_Block(t, result, then, rca.ApplicationGeneratorSet{
		Inherent:                 rca.CLASSICAL,
		DynamicParamApplications: []rca.ParamApplication{rca.ElementParamApplication{Kind: rca.CLASSICAL}},
	})
}

// function Foo(xs : Result[]) : Int { Length(xs) }
func Test_Analyze_03(t *testing.T) {
	var (
		b       = hir.NewBuilder()
		ids     = b.Prelude()
		foo     = b.Declare("Foo", hir.FUNCTION, hir.Int)
		pxs, xs = b.Param("xs", hir.Array(hir.Result))
		block   = b.Block(b.ExprStmt(b.Call(ids[Length], b.Var(xs))))
		result  = analyze(t, b, foo, block, pxs)
	)
	//
	check_Body(t, result, foo, rca.ApplicationGeneratorSet{
		Inherent: rca.CLASSICAL,
		DynamicParamApplications: []rca.ParamApplication{
			rca.ArrayParamApplication{
				StaticContentDynamicSize:  dynamicLength,
				DynamicContentStaticSize:  rca.CLASSICAL,
				DynamicContentDynamicSize: dynamicLength,
			},
		},
	})
}

// operation Foo(q : Qubit) : Result { M(q) }
func Test_Analyze_04(t *testing.T) {
	var (
		b      = hir.NewBuilder()
		ids    = b.Prelude()
		foo    = b.Declare("Foo", hir.OPERATION, hir.Result)
		pq, q  = b.Param("q", hir.Qubit)
		block  = b.Block(b.ExprStmt(b.Call(ids["M"], b.Var(q))))
		result = analyze(t, b, foo, block, pq)
	)
	//
	check_Body(t, result, foo, rca.ApplicationGeneratorSet{
		Inherent:                 dynamicQuantum,
		DynamicParamApplications: []rca.ParamApplication{elementParamApp(rca.USE_OF_DYNAMIC_QUBIT, rca.DYNAMIC)},
	})
}

// operation Foo(q : Qubit, b : Bool) : Unit { if b { M(q); } }
func Test_Analyze_05(t *testing.T) {
	var (
		b      = hir.NewBuilder()
		ids    = b.Prelude()
		foo    = b.Declare("Foo", hir.OPERATION, hir.Unit)
		pq, q  = b.Param("q", hir.Qubit)
		pc, c  = b.Param("b", hir.Bool)
		then   = b.Block(b.Semi(b.Call(ids["M"], b.Var(q))))
		block  = b.Block(b.Semi(b.If(b.Var(c), then)))
		result = analyze(t, b, foo, block, pq, pc)
	)
	//
	check_Body(t, result, foo, rca.ApplicationGeneratorSet{
		Inherent: staticQuantum,
		DynamicParamApplications: []rca.ParamApplication{
			elementParamApp(rca.USE_OF_DYNAMIC_QUBIT, rca.STATIC),
			elementParamApp(rca.FORWARD_BRANCHING_ON_DYNAMIC_VALUE|rca.MEASUREMENT_WITHIN_DYNAMIC_SCOPE, rca.STATIC),
		},
	})
}

// function Foo(b : Bool) : Unit { mutable x = 0; while b { set x = x + 1; } }
func Test_Analyze_06(t *testing.T) {
	var (
		b      = hir.NewBuilder()
		foo    = b.Declare("Foo", hir.FUNCTION, hir.Unit)
		pc, c  = b.Param("b", hir.Bool)
		x      = b.Local("x", hir.Int)
		init   = b.Mutable(x, b.Lit(hir.Int, "0"))
		incr   = b.BinOp(hir.ADD, b.Var(x), b.Lit(hir.Int, "1"))
		body   = b.Block(b.Semi(b.Assign(x, incr)))
		block  = b.Block(init, b.Semi(b.While(b.Var(c), body)))
		result = analyze(t, b, foo, block, pc)
	)
	//
	check_Body(t, result, foo, rca.ApplicationGeneratorSet{
		Inherent: rca.CLASSICAL,
		DynamicParamApplications: []rca.ParamApplication{
			elementParamApp(rca.LOOP_WITH_DYNAMIC_CONDITION|rca.USE_OF_DYNAMIC_INT, rca.STATIC),
		},
	})
	// Assignment under the dynamic condition is seen by the read on the next
	// iteration.
	check_Expr(t, result, incr, rca.ApplicationGeneratorSet{
		Inherent:                 rca.CLASSICAL,
		DynamicParamApplications: []rca.ParamApplication{elementParamApp(rca.USE_OF_DYNAMIC_INT, rca.DYNAMIC)},
	})
}

// function Foo(b : Bool) : Int { if b { return 1; } 2 }
func Test_Analyze_07(t *testing.T) {
	var (
		b      = hir.NewBuilder()
		foo    = b.Declare("Foo", hir.FUNCTION, hir.Int)
		pc, c  = b.Param("b", hir.Bool)
		ret    = b.Return(b.Lit(hir.Int, "1"))
		then   = b.Block(b.Semi(ret))
		block  = b.Block(b.Semi(b.If(b.Var(c), then)), b.ExprStmt(b.Lit(hir.Int, "2")))
		result = analyze(t, b, foo, block, pc)
	)
	//
	check_Body(t, result, foo, rca.ApplicationGeneratorSet{
		Inherent: rca.CLASSICAL,
		DynamicParamApplications: []rca.ParamApplication{
			elementParamApp(rca.FORWARD_BRANCHING_ON_DYNAMIC_VALUE|rca.RETURN_WITHIN_DYNAMIC_SCOPE, rca.STATIC),
		},
	})
	//
	check_Expr(t, result, ret, rca.ApplicationGeneratorSet{
		Inherent:                 rca.CLASSICAL,
		DynamicParamApplications: []rca.ParamApplication{elementParamApp(rca.RETURN_WITHIN_DYNAMIC_SCOPE, rca.STATIC)},
	})
}

// function Foo(xs : Int[], i : Int) : Int { xs[i] }
func Test_Analyze_08(t *testing.T) {
	var (
		b       = hir.NewBuilder()
		foo     = b.Declare("Foo", hir.FUNCTION, hir.Int)
		pxs, xs = b.Param("xs", hir.Array(hir.Int))
		pi, i   = b.Param("i", hir.Int)
		block   = b.Block(b.ExprStmt(b.Index(b.Var(xs), b.Var(i))))
		result  = analyze(t, b, foo, block, pxs, pi)
	)
	//
	check_Body(t, result, foo, rca.ApplicationGeneratorSet{
		Inherent: rca.CLASSICAL,
		DynamicParamApplications: []rca.ParamApplication{
			rca.ArrayParamApplication{
				StaticContentDynamicSize:  staticQuantum,
				DynamicContentStaticSize:  dynamicQuantum,
				DynamicContentDynamicSize: dynamicQuantum,
			},
			elementParamApp(rca.USE_OF_DYNAMIC_INDEX, rca.DYNAMIC),
		},
	})
}

// function Foo(a : Int) : (Int, Int) { (a, a + 1) }
func Test_Analyze_09(t *testing.T) {
	var (
		b      = hir.NewBuilder()
		pa, a  = b.Param("a", hir.Int)
		add    = b.BinOp(hir.ADD, b.Var(a), b.Lit(hir.Int, "1"))
		tuple  = b.TupleLit(b.Var(a), add)
		foo    = b.Declare("Foo", hir.FUNCTION, b.Package().Expr(tuple).Ty)
		block  = b.Block(b.ExprStmt(tuple))
		result = analyze(t, b, foo, block, pa)
	)
	//
	check_Body(t, result, foo, rca.ApplicationGeneratorSet{
		Inherent: rca.CLASSICAL,
		DynamicParamApplications: []rca.ParamApplication{
			elementParamApp(rca.USE_OF_DYNAMIC_INT|rca.USE_OF_DYNAMIC_TUPLE, rca.DYNAMIC),
		},
	})
	//
	check_Expr(t, result, add, rca.ApplicationGeneratorSet{
		Inherent:                 rca.CLASSICAL,
		DynamicParamApplications: []rca.ParamApplication{elementParamApp(rca.USE_OF_DYNAMIC_INT, rca.DYNAMIC)},
	})
}

// operation Bar(q : Qubit) : Result { Foo(q) }, where Foo measures q.
func Test_Analyze_10(t *testing.T) {
	var (
		b      = hir.NewBuilder()
		ids    = b.Prelude()
		bar    = b.Declare("Bar", hir.OPERATION, hir.Result)
		foo    = b.Declare("Foo", hir.OPERATION, hir.Result)
		pq, q  = b.Param("q", hir.Qubit)
		pr, r  = b.Param("r", hir.Qubit)
		fooBlk = b.Block(b.ExprStmt(b.Call(ids["M"], b.Var(q))))
		barBlk = b.Block(b.ExprStmt(b.Call(foo, b.Var(r))))
	)
	// Callee declared after caller
	b.SetInput(foo, pq)
	b.SetBody(foo, fooBlk)
	//
	result := analyze(t, b, bar, barBlk, pr)
	expected := rca.ApplicationGeneratorSet{
		Inherent:                 dynamicQuantum,
		DynamicParamApplications: []rca.ParamApplication{elementParamApp(rca.USE_OF_DYNAMIC_QUBIT, rca.DYNAMIC)},
	}
	//
	check_Body(t, result, foo, expected)
	check_Body(t, result, bar, expected)
}

// function Foo(n : Int) : Int { Foo(n) }
func Test_Analyze_11(t *testing.T) {
	var (
		b      = hir.NewBuilder()
		foo    = b.Declare("Foo", hir.FUNCTION, hir.Int)
		pn, n  = b.Param("n", hir.Int)
		block  = b.Block(b.ExprStmt(b.Call(foo, b.Var(n))))
		result = analyze(t, b, foo, block, pn)
	)
	//
	check_Body(t, result, foo, rca.ApplicationGeneratorSet{
		Inherent: rca.CLASSICAL,
		DynamicParamApplications: []rca.ParamApplication{
			elementParamApp(rca.CALL_TO_CYCLIC_FUNCTION_WITH_DYNAMIC_ARG, rca.DYNAMIC),
		},
	})
}

// operation Foo(q : Qubit) : Unit { Foo(q); }
func Test_Analyze_12(t *testing.T) {
	var (
		b      = hir.NewBuilder()
		foo    = b.Declare("Foo", hir.OPERATION, hir.Unit)
		pq, q  = b.Param("q", hir.Qubit)
		block  = b.Block(b.Semi(b.Call(foo, b.Var(q))))
		result = analyze(t, b, foo, block, pq)
		cyclic = rca.Quantum{Features: rca.CALL_TO_CYCLIC_OPERATION, Value: rca.Element{Runtime: rca.STATIC}}
	)
	//
	check_Body(t, result, foo, rca.ApplicationGeneratorSet{
		Inherent: cyclic,
		DynamicParamApplications: []rca.ParamApplication{
			elementParamApp(rca.CALL_TO_CYCLIC_OPERATION|rca.CALL_TO_CYCLIC_FUNCTION_WITH_DYNAMIC_ARG, rca.STATIC),
		},
	})
}

// Every node of every callable is classified exactly once.
func Test_Analyze_13(t *testing.T) {
	var (
		b   = testPackage(8)
		pkg = b.Package()
	)
	//
	props, err := Analyze(pkg, DEFAULT_CONFIG)
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	} else if !props.IsFrozen() {
		t.Errorf("analysis result not frozen")
	}
	//
	for i, end := uint(0), pkg.NumItems(); i < end; i++ {
		id := hir.ItemId(i)
		//
		if _, ok := props.Item(id); ok == pkg.Item(id).Intrinsic {
			t.Errorf("unexpected analysis of %s", pkg.Item(id).Name)
		}
	}
}

// Parallel and sequential analyses agree.
func Test_Analyze_14(t *testing.T) {
	var pkg = testPackage(32).Package()
	//
	sequential, err1 := Analyze(pkg, DEFAULT_CONFIG)
	parallel, err2 := Analyze(pkg, Config{Workers: 4})
	//
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	} else if diff := cmp.Diff(sequential.ExprIds(), parallel.ExprIds()); diff != "" {
		t.Fatalf("unexpected expressions (-want +got):\n%s", diff)
	}
	//
	for _, id := range sequential.ExprIds() {
		lhs, _ := sequential.Expr(id)
		rhs, _ := parallel.Expr(id)
		//
		if diff := cmp.Diff(lhs, rhs, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("expression %d differs (-want +got):\n%s", id, diff)
		}
	}
}

// Invariant violations are reported, rather than raised.
func Test_Analyze_15(t *testing.T) {
	var (
		b     = hir.NewBuilder()
		ids   = b.Prelude()
		foo   = b.Declare("Foo", hir.OPERATION, hir.Unit)
		call  = b.Call(ids["H"])
		block = b.Block(b.Semi(call))
	)
	//
	b.SetBody(foo, block)
	//
	_, err := Analyze(b.Package(), DEFAULT_CONFIG)
	//
	if err == nil {
		t.Fatalf("expected arity mismatch")
	}
	//
	ie, ok := rca.AsInvariantError(err)
	//
	if !ok {
		t.Fatalf("expected invariant violation, got %s", err)
	} else if ie.Callable != "Foo" {
		t.Errorf("expected violation in Foo, got %s", ie.Callable)
	} else if node, ok := ie.Node.Get(); !ok || node != hir.ExprNode(call) {
		t.Errorf("expected violation at %s, got %s", hir.ExprNode(call), ie.Node)
	}
}

// Reading an unbound local.
func Test_Analyze_16(t *testing.T) {
	var (
		b     = hir.NewBuilder()
		foo   = b.Declare("Foo", hir.FUNCTION, hir.Int)
		x     = b.Local("x", hir.Int)
		read  = b.Var(x)
		block = b.Block(b.ExprStmt(read))
	)
	//
	b.SetBody(foo, block)
	//
	_, err := Analyze(b.Package(), Config{Workers: 2})
	//
	if ie, ok := rca.AsInvariantError(err); !ok {
		t.Fatalf("expected invariant violation, got %v", err)
	} else if node, _ := ie.Node.Get(); node != hir.ExprNode(read) {
		t.Errorf("expected violation at %s, got %s", hir.ExprNode(read), ie.Node)
	}
}

func Test_Schedule_01(t *testing.T) {
	var (
		b   = hir.NewBuilder()
		ids = b.Prelude()
		foo = b.Declare("Foo", hir.OPERATION, hir.Unit)
		bar = b.Declare("Bar", hir.OPERATION, hir.Unit)
		baz = b.Declare("Baz", hir.OPERATION, hir.Unit)
	)
	// Foo -> Bar -> Foo, Baz -> Foo, Baz -> H
	b.SetBody(foo, b.Block(b.Semi(b.Call(bar))))
	b.SetBody(bar, b.Block(b.Semi(b.Call(foo))))
	b.SetBody(baz, b.Block(b.Semi(b.Call(foo)), b.Semi(b.Call(ids["H"]))))
	//
	expected := map[hir.ItemId][]hir.ItemId{foo: {bar}, bar: nil, baz: {foo}}
	//
	if diff := cmp.Diff(expected, Schedule(b.Package()), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("unexpected schedule (-want +got):\n%s", diff)
	}
}

func Test_Schedule_02(t *testing.T) {
	var (
		b    = testPackage(16)
		pkg  = b.Package()
		jobs = scheduleJobs(pkg, func(hir.ItemId) error { return nil })
		seen = make(map[uint]bool)
	)
	// Dependencies always precede dependents in item order
	for _, job := range jobs {
		for _, dep := range job.Dependencies() {
			if !seen[dep] {
				t.Errorf("job %d depends on unscheduled job %d", job.Id(), dep)
			}
		}
		//
		seen[job.Id()] = true
	}
}

// operation Foo(q : Qubit) : Result[] { return [M(q)] }
func Test_Analyze_17(t *testing.T) {
	var (
		b      = hir.NewBuilder()
		ids    = b.Prelude()
		foo    = b.Declare("Foo", hir.OPERATION, hir.Array(hir.Result))
		pq, q  = b.Param("q", hir.Qubit)
		array  = b.ArrayLit(hir.Result, b.Call(ids["M"], b.Var(q)))
		block  = b.Block(b.ExprStmt(b.Return(array)))
		result = analyze(t, b, foo, block, pq)
	)
	//
	check_Body(t, result, foo, dynamicResults(rca.NO_FEATURES, rca.USE_OF_DYNAMIC_QUBIT))
}

// operation Foo(q : Qubit) : Result[] { return [M(q)]; }
func Test_Analyze_18(t *testing.T) {
	var (
		b      = hir.NewBuilder()
		ids    = b.Prelude()
		foo    = b.Declare("Foo", hir.OPERATION, hir.Array(hir.Result))
		pq, q  = b.Param("q", hir.Qubit)
		array  = b.ArrayLit(hir.Result, b.Call(ids["M"], b.Var(q)))
		block  = b.Block(b.Semi(b.Return(array)))
		result = analyze(t, b, foo, block, pq)
	)
	//
	check_Body(t, result, foo, dynamicResults(rca.NO_FEATURES, rca.USE_OF_DYNAMIC_QUBIT))
	//
	check_Expr(t, result, array, dynamicResults(rca.NO_FEATURES, rca.USE_OF_DYNAMIC_QUBIT))
}

// operation Foo(q : Qubit) : Result {
//     mutable x = Zero; mutable y = Zero;
//     while false { set y = x; set x = M(q); }
//     y
// }
func Test_Analyze_19(t *testing.T) {
	var (
		b      = hir.NewBuilder()
		ids    = b.Prelude()
		foo    = b.Declare("Foo", hir.OPERATION, hir.Result)
		pq, q  = b.Param("q", hir.Qubit)
		x      = b.Local("x", hir.Result)
		y      = b.Local("y", hir.Result)
		read   = b.Var(x)
		body   = b.Block(b.Semi(b.Assign(y, read)), b.Semi(b.Assign(x, b.Call(ids["M"], b.Var(q)))))
		loop   = b.While(b.Lit(hir.Bool, "false"), body)
		block  = b.Block(b.Mutable(x, b.Lit(hir.Result, "Zero")), b.Mutable(y, b.Lit(hir.Result, "Zero")),
			b.Semi(loop), b.ExprStmt(b.Var(y)))
		result = analyze(t, b, foo, block, pq)
	)
	// Value of x measured on one iteration is read on the next
	check_Body(t, result, foo, rca.ApplicationGeneratorSet{
		Inherent:                 dynamicQuantum,
		DynamicParamApplications: []rca.ParamApplication{elementParamApp(rca.USE_OF_DYNAMIC_QUBIT, rca.DYNAMIC)},
	})
	//
	check_Expr(t, result, read, rca.ApplicationGeneratorSet{
		Inherent:                 dynamicQuantum,
		DynamicParamApplications: []rca.ParamApplication{elementParamApp(rca.USE_OF_DYNAMIC_QUBIT, rca.DYNAMIC)},
	})
}

// ===================================================================
// Test Helpers
// ===================================================================

// Complete the declaration of a callable, then analyse the package.
func analyze(t *testing.T, b *hir.Builder, item hir.ItemId, block hir.BlockId,
	params ...hir.Pat) *rca.PackageComputeProperties {
	//
	b.SetInput(item, params...)
	b.SetBody(item, block)
	//
	props, err := Analyze(b.Package(), DEFAULT_CONFIG)
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	return props
}

// Construct a package of n operations, each of which measures a qubit and
// then, under the (dynamic) outcome, calls either an intrinsic or the previous
// operation.  This gives independent chains of three operations.
func testPackage(n uint) *hir.Builder {
	var (
		b    = hir.NewBuilder()
		ids  = b.Prelude()
		prev hir.ItemId
	)
	//
	for i := uint(0); i < n; i++ {
		var (
			item  = b.Declare(fmt.Sprintf("Op%d", i), hir.OPERATION, hir.Unit)
			pq, q = b.Param("q", hir.Qubit)
			pi, x = b.Param("i", hir.Int)
			m     = b.BinOp(hir.EQ, b.Call(ids["M"], b.Var(q)), b.Lit(hir.Result, "One"))
			call  hir.ExprId
		)
		//
		if i%3 == 0 {
			call = b.Call(ids["H"], b.Var(q))
		} else {
			call = b.Call(prev, b.Var(q), b.Var(x))
		}
		//
		var (
			then  = b.Block(b.Semi(call))
			idx   = b.Index(b.ArrayLit(hir.Int, b.Var(x), b.Lit(hir.Int, "2")), b.Var(x))
			block = b.Block(b.Semi(b.If(m, then)), b.Semi(idx))
		)
		//
		b.SetInput(item, pq, pi)
		b.SetBody(item, block)
		//
		prev = item
	}
	//
	return b
}

// Generator set of an array of measurement results, with given features in
// the inherent and (single) parameter application.
func dynamicResults(inherent rca.RuntimeFeatureFlags, param rca.RuntimeFeatureFlags) rca.ApplicationGeneratorSet {
	var value = rca.Array{Content: rca.DYNAMIC, Size: rca.STATIC}
	//
	return rca.ApplicationGeneratorSet{
		Inherent: rca.Quantum{Features: inherent, Value: value},
		DynamicParamApplications: []rca.ParamApplication{
			rca.ElementParamApplication{Kind: rca.Quantum{Features: param, Value: value}},
		},
	}
}

func elementParamApp(features rca.RuntimeFeatureFlags, runtime rca.RuntimeKind) rca.ParamApplication {
	return rca.ElementParamApplication{Kind: rca.Quantum{Features: features, Value: rca.Element{Runtime: runtime}}}
}

func check_Body(t *testing.T, props *rca.PackageComputeProperties, item hir.ItemId,
	expected rca.ApplicationGeneratorSet) {
	//
	callable, ok := props.Item(item)
	//
	if !ok {
		t.Fatalf("callable %d not analysed", item)
	}
	//
	body, ok := callable.Body()
	//
	if !ok {
		t.Fatalf("callable %d has no body", item)
	} else if diff := cmp.Diff(expected, body, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("unexpected body of callable %d (-want +got):\n%s", item, diff)
	}
}

func check_Expr(t *testing.T, props *rca.PackageComputeProperties, id hir.ExprId,
	expected rca.ApplicationGeneratorSet) {
	//
	if actual, ok := props.Expr(id); !ok {
		t.Errorf("expression %d not analysed", id)
	} else if diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("unexpected expression %d (-want +got):\n%s", id, diff)
	}
}

func check_Block(t *testing.T, props *rca.PackageComputeProperties, id hir.BlockId,
	expected rca.ApplicationGeneratorSet) {
	//
	if actual, ok := props.Block(id); !ok {
		t.Errorf("block %d not analysed", id)
	} else if diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("unexpected block %d (-want +got):\n%s", id, diff)
	}
}
