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

	"github.com/qcompiler/qrca/pkg/hir"
	"github.com/qcompiler/qrca/pkg/rca"
)

// visitor walks the body of a specialization, populating a single application
// instance.  Nodes are classified in dependency order, such that every child
// is classified before its parent reads it.  Loops are first explored against
// scratch instances, hence every node is still classified exactly once.
type visitor struct {
	pkg      *hir.Package
	props    *rca.PackageComputeProperties
	instance *rca.ApplicationInstance
}

// Visit the outermost block of a specialization.  The trailing expression of
// this block is (implicitly) returned, unless it is an explicit return whose
// operand has already been recorded.  The block takes the shape of the return
// type, even when it ends by diverging.
func (v *visitor) visitSpec(block hir.BlockId) {
	v.visitBlockAs(block, v.instance.ReturnTy())
	//
	if e, ok := trailingExpr(v.pkg, block); ok && !isReturn(v.pkg, e) {
		v.instance.AddReturnExpr(e)
	}
}

func (v *visitor) visitBlock(id hir.BlockId) rca.ComputeKind {
	return v.visitBlockAs(id, v.pkg.Block(id).Ty)
}

func (v *visitor) visitBlockAs(id hir.BlockId, ty hir.Ty) rca.ComputeKind {
	var (
		block = v.pkg.Block(id)
		kind  = rca.CLASSICAL
	)
	//
	defer rca.AtNode(hir.BlockNode(id))
	// Statements contribute their features, but not their values.
	for _, stmt := range block.Stmts {
		kind = rca.AggregateFeatures(kind, v.visitStmt(stmt), ty)
	}
	// Trailing expression determines the value of the block.  A trailing
	// return diverges, so contributes no value.
	if e, ok := trailingExpr(v.pkg, id); ok && !isReturn(v.pkg, e) {
		if q, ok := v.instance.ExprComputeKind(e).(rca.Quantum); ok {
			kind = rca.WithValueKind(kind, q.Value)
		}
	}
	//
	v.instance.InsertBlockComputeKind(id, kind)
	//
	return kind
}

func (v *visitor) visitStmt(id hir.StmtId) rca.ComputeKind {
	var kind rca.ComputeKind
	//
	defer rca.AtNode(hir.StmtNode(id))
	//
	switch s := v.pkg.Stmt(id).Kind.(type) {
	case hir.ExprStmt:
		kind = v.visitExpr(s.Expr)
	case hir.Semi:
		kind = rca.AggregateFeatures(rca.CLASSICAL, v.visitExpr(s.Expr), hir.Unit)
	case hir.LocalStmt:
		var (
			init  = v.visitExpr(s.Init)
			local = v.pkg.Local(s.Local)
		)
		//
		v.instance.Locals().Insert(rca.Local{Var: s.Local, Ty: local.Ty, Kind: rca.PlainLocal{}}, init)
		kind = rca.AggregateFeatures(rca.CLASSICAL, init, hir.Unit)
	case hir.ItemStmt:
		kind = rca.CLASSICAL
	default:
		panic(fmt.Sprintf("unknown statement %T", s))
	}
	//
	v.instance.InsertStmtComputeKind(id, kind)
	//
	return kind
}

//nolint:gocyclo
func (v *visitor) visitExpr(id hir.ExprId) rca.ComputeKind {
	var (
		expr = v.pkg.Expr(id)
		kind rca.ComputeKind
	)
	//
	defer rca.AtNode(hir.ExprNode(id))
	//
	switch e := expr.Kind.(type) {
	case hir.Lit:
		kind = rca.CLASSICAL
	case hir.Var:
		kind = v.instance.Locals().Get(e.Local)
	case hir.Call:
		kind = v.visitCall(expr.Ty, e)
	case hir.If:
		kind = v.visitIf(id, expr.Ty, e)
	case hir.While:
		kind = v.visitWhile(id, e)
	case hir.BlockExpr:
		kind = v.visitBlock(e.Block)
	case hir.ArrayLit:
		kind = v.visitItems(expr.Ty, e.Items, rca.Array{Content: rca.DYNAMIC, Size: rca.STATIC}, rca.NO_FEATURES)
	case hir.TupleLit:
		kind = v.visitItems(expr.Ty, e.Items, rca.Element{Runtime: rca.DYNAMIC}, rca.USE_OF_DYNAMIC_TUPLE)
	case hir.Index:
		kind = v.visitIndex(expr.Ty, e)
	case hir.BinOp:
		kind = v.visitOperator(expr.Ty, v.visitExpr(e.Lhs), v.visitExpr(e.Rhs))
	case hir.UnOp:
		kind = v.visitOperator(expr.Ty, v.visitExpr(e.Operand))
	case hir.Assign:
		kind = v.visitAssign(e)
	case hir.Return:
		value := v.visitExpr(e.Value)
		//
		v.instance.AddReturnExpr(e.Value)
		kind = rca.AggregateFeatures(rca.CLASSICAL, value, hir.Unit)
		//
		if v.instance.IsInDynamicScope() {
			kind = rca.WithFeatures(kind, rca.RETURN_WITHIN_DYNAMIC_SCOPE, hir.Unit, true)
		}
	default:
		panic(fmt.Sprintf("unknown expression %T", e))
	}
	//
	v.instance.InsertExprComputeKind(id, kind)
	//
	return kind
}

func (v *visitor) visitCall(ty hir.Ty, call hir.Call) rca.ComputeKind {
	var (
		decl = v.pkg.Item(call.Callee)
		args = make([]rca.ComputeKind, len(call.Args))
	)
	//
	for i, arg := range call.Args {
		args[i] = v.visitExpr(arg)
	}
	//
	kind, err := v.calleeGeneratorSet(call.Callee).GenerateApplicationComputeKind(args)
	if err != nil {
		if ie, ok := rca.AsInvariantError(err); ok {
			panic(ie)
		}
		//
		panic(err)
	}
	// Evaluating the arguments themselves may require runtime features.
	for _, arg := range args {
		kind = rca.WithFeatures(kind, rca.FeaturesOf(arg), ty, false)
	}
	// Operations always touch quantum state.
	if decl.Kind == hir.OPERATION {
		kind = rca.WithFeatures(kind, rca.NO_FEATURES, ty, true)
	}
	//
	if IsMeasurement(decl) && v.instance.IsInDynamicScope() {
		kind = rca.WithFeatures(kind, rca.MEASUREMENT_WITHIN_DYNAMIC_SCOPE, ty, true)
	}
	// Unit carries no meaningful value
	if q, ok := kind.(rca.Quantum); ok && hir.IsUnit(ty) {
		kind = rca.Quantum{Features: q.Features, Value: rca.StaticValueKind(ty)}
	}
	//
	return kind
}

func (v *visitor) calleeGeneratorSet(callee hir.ItemId) rca.ApplicationGeneratorSet {
	var decl = v.pkg.Item(callee)
	//
	if decl.Intrinsic {
		return intrinsicGeneratorSet(decl)
	} else if props, ok := v.props.Item(callee); ok {
		if gs, ok := props.Body(); ok {
			return gs
		}
	}
	// Callee not yet analysed, hence part of a cycle.
	return cyclicGeneratorSet(decl)
}

func (v *visitor) visitIf(id hir.ExprId, ty hir.Ty, e hir.If) rca.ComputeKind {
	var (
		cond    = v.visitExpr(e.Cond)
		dynamic = rca.IsDynamic(cond)
		kind    = rca.AggregateFeatures(rca.CLASSICAL, cond, ty)
		arms    []rca.ComputeKind
	)
	// Both arms are conditioned on the (dynamic) condition.
	if dynamic {
		v.instance.PushDynamicScope(id)
	}
	//
	arms = append(arms, v.visitBlock(e.Then))
	//
	if els, ok := e.Else.Get(); ok {
		arms = append(arms, v.visitExpr(els))
	}
	//
	if dynamic {
		v.instance.PopDynamicScope()
	}
	//
	for _, arm := range arms {
		kind = rca.AggregateFeatures(kind, arm, ty)
		//
		if q, ok := arm.(rca.Quantum); ok && !hir.IsUnit(ty) {
			kind = rca.WithValueKind(kind, q.Value)
		}
	}
	//
	if dynamic {
		kind = rca.WithFeatures(kind, rca.FORWARD_BRANCHING_ON_DYNAMIC_VALUE, ty, true)
		// Which arm produces the value is only known at runtime.
		if !hir.IsUnit(ty) {
			kind = rca.WithValueKind(kind, rca.ValueKindOf(ty, true))
		}
	}
	//
	return kind
}

func (v *visitor) visitWhile(id hir.ExprId, e hir.While) rca.ComputeKind {
	v.settleLoop(id, e)
	//
	return v.visitLoop(id, e)
}

// Walk a loop repeatedly against scratch instances until the compute kinds of
// the enclosing locals stop changing.  Thereafter, reads early in the body
// observe assignments made later in it (i.e. on a previous iteration).  This
// terminates since locals only ever grow in the lattice.
func (v *visitor) settleLoop(id hir.ExprId, e hir.While) {
	for {
		scratch := visitor{v.pkg, v.props, v.instance.Fork()}
		scratch.visitLoop(id, e)
		//
		if !v.instance.Locals().Widen(scratch.instance.Locals()) {
			return
		}
	}
}

func (v *visitor) visitLoop(id hir.ExprId, e hir.While) rca.ComputeKind {
	var (
		cond    = v.visitExpr(e.Cond)
		dynamic = rca.IsDynamic(cond)
		kind    = rca.AggregateFeatures(rca.CLASSICAL, cond, hir.Unit)
	)
	//
	if dynamic {
		v.instance.PushDynamicScope(id)
	}
	//
	kind = rca.AggregateFeatures(kind, v.visitBlock(e.Body), hir.Unit)
	//
	if dynamic {
		v.instance.PopDynamicScope()
		kind = rca.WithFeatures(kind, rca.LOOP_WITH_DYNAMIC_CONDITION, hir.Unit, true)
	}
	//
	return kind
}

// Visit the items of an array or tuple literal.  The literal is dynamic when
// any of its items are.
func (v *visitor) visitItems(ty hir.Ty, items []hir.ExprId, value rca.ValueKind,
	features rca.RuntimeFeatureFlags) rca.ComputeKind {
	//
	var (
		kind    = rca.CLASSICAL
		dynamic = false
	)
	//
	for _, item := range items {
		ik := v.visitExpr(item)
		kind = rca.AggregateFeatures(kind, ik, ty)
		dynamic = dynamic || rca.IsDynamic(ik)
	}
	//
	if dynamic {
		kind = rca.WithValueKind(rca.WithFeatures(kind, features, ty, true), value)
	}
	//
	return kind
}

func (v *visitor) visitIndex(ty hir.Ty, e hir.Index) rca.ComputeKind {
	var (
		array   = v.visitExpr(e.Array)
		index   = v.visitExpr(e.Index)
		kind    = rca.AggregateFeatures(rca.AggregateFeatures(rca.CLASSICAL, array, ty), index, ty)
		dynamic = rca.IsDynamic(index)
	)
	//
	if dynamic {
		kind = rca.WithFeatures(kind, rca.USE_OF_DYNAMIC_INDEX, ty, true)
	}
	// Element is dynamic if the content is, or if it is chosen dynamically.
	if q, ok := array.(rca.Quantum); ok {
		if arr, ok := q.Value.(rca.Array); ok && arr.Content == rca.DYNAMIC {
			dynamic = true
		}
	}
	//
	if dynamic {
		kind = rca.WithValueKind(kind, rca.ValueKindOf(ty, true))
	}
	//
	return kind
}

// Visit a unary or binary operator.  Array concatenation preserves the
// content and size dynamism of its operands, whilst any other operator
// produces a dynamic value when any operand is dynamic.
func (v *visitor) visitOperator(ty hir.Ty, operands ...rca.ComputeKind) rca.ComputeKind {
	var (
		kind    = rca.CLASSICAL
		dynamic = false
	)
	//
	for _, operand := range operands {
		kind = rca.AggregateFeatures(kind, operand, ty)
		dynamic = dynamic || rca.IsDynamic(operand)
		//
		if q, ok := operand.(rca.Quantum); ok && hir.IsArray(ty) {
			kind = rca.WithValueKind(kind, q.Value)
		}
	}
	//
	if dynamic && !hir.IsArray(ty) {
		kind = rca.WithFeatures(kind, rca.FeatureForType(ty), ty, true)
		kind = rca.WithValueKind(kind, rca.ValueKindOf(ty, true))
	}
	//
	return kind
}

func (v *visitor) visitAssign(e hir.Assign) rca.ComputeKind {
	var (
		value  = v.visitExpr(e.Value)
		update = value
		ty     = v.pkg.Local(e.Local).Ty
	)
	// A value assigned under a dynamic condition is itself dynamic.
	if v.instance.IsInDynamicScope() {
		update = rca.WithValueKind(update, rca.ValueKindOf(ty, true))
	}
	//
	v.instance.Locals().Aggregate(e.Local, update)
	//
	return rca.AggregateFeatures(rca.CLASSICAL, value, hir.Unit)
}

func trailingExpr(pkg *hir.Package, id hir.BlockId) (hir.ExprId, bool) {
	var stmts = pkg.Block(id).Stmts
	//
	if n := len(stmts); n > 0 {
		if s, ok := pkg.Stmt(stmts[n-1]).Kind.(hir.ExprStmt); ok {
			return s.Expr, true
		}
	}
	//
	return 0, false
}

func isReturn(pkg *hir.Package, id hir.ExprId) bool {
	_, ok := pkg.Expr(id).Kind.(hir.Return)
	return ok
}
