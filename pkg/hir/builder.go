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

import (
	"fmt"

	"github.com/qcompiler/qrca/pkg/util"
)

// Builder provides a convenient mechanism for constructing packages, where
// identifiers are allocated densely in order of construction.  Since children
// must be constructed before their parents, the identifiers of children are
// always smaller than those of their parents.
type Builder struct {
	pkg Package
}

// NewBuilder constructs an empty package builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Package returns the package constructed so far.
func (b *Builder) Package() *Package {
	return &b.pkg
}

// ============================================================================
// Items
// ============================================================================

// Declare a new callable with a given output type.  Its input and
// specializations are set separately, which allows for recursive callables.
func (b *Builder) Declare(name string, kind CallableKind, output Ty) ItemId {
	id := ItemId(len(b.pkg.items))
	b.pkg.items = append(b.pkg.items, CallableDecl{Name: name, Kind: kind, Output: output})
	//
	return id
}

// Intrinsic declares a callable whose implementation is provided by the
// target, and which has an unnamed parameter for each given input type.
func (b *Builder) Intrinsic(name string, kind CallableKind, output Ty, inputs ...Ty) ItemId {
	var (
		id   = b.Declare(name, kind, output)
		decl = b.pkg.Item(id)
	)
	//
	decl.Intrinsic = true
	//
	for _, ty := range inputs {
		decl.Input = append(decl.Input, DiscardPat{ty})
	}
	//
	return id
}

// SetInput sets the input patterns for a given callable.
func (b *Builder) SetInput(item ItemId, pats ...Pat) {
	b.pkg.Item(item).Input = pats
}

// SetSpec sets the implementation of a given specialization.
func (b *Builder) SetSpec(item ItemId, kind SpecKind, block BlockId, ctl util.Option[LocalVarId]) {
	b.pkg.Item(item).Specs[kind] = util.Some(SpecDecl{block, ctl})
}

// SetBody is a convenience for setting the body specialization.
func (b *Builder) SetBody(item ItemId, block BlockId) {
	b.SetSpec(item, BODY, block, util.None[LocalVarId]())
}

// Local declares a new local variable.
func (b *Builder) Local(name string, ty Ty) LocalVarId {
	id := LocalVarId(len(b.pkg.locals))
	b.pkg.locals = append(b.pkg.locals, LocalVar{id, name, ty})
	//
	return id
}

// Param declares a new local variable, and returns a pattern which binds it.
func (b *Builder) Param(name string, ty Ty) (Pat, LocalVarId) {
	local := b.Local(name, ty)
	return BindPat{local, ty}, local
}

// ============================================================================
// Blocks & Statements
// ============================================================================

// Block constructs a new block from a given set of statements.
func (b *Builder) Block(stmts ...StmtId) BlockId {
	var (
		id    = BlockId(len(b.pkg.blocks))
		ty Ty = Unit
	)
	//
	if n := len(stmts); n > 0 {
		if s, ok := b.pkg.Stmt(stmts[n-1]).Kind.(ExprStmt); ok {
			ty = b.pkg.Expr(s.Expr).Ty
		}
	}
	//
	b.pkg.blocks = append(b.pkg.blocks, Block{id, ty, stmts})
	//
	return id
}

// ExprStmt constructs a trailing expression statement.
func (b *Builder) ExprStmt(expr ExprId) StmtId {
	return b.stmt(ExprStmt{expr})
}

// Semi constructs an expression statement whose value is discarded.
func (b *Builder) Semi(expr ExprId) StmtId {
	return b.stmt(Semi{expr})
}

// Let constructs an immutable local declaration.
func (b *Builder) Let(local LocalVarId, init ExprId) StmtId {
	return b.stmt(LocalStmt{false, local, init})
}

// Mutable constructs a mutable local declaration.
func (b *Builder) Mutable(local LocalVarId, init ExprId) StmtId {
	return b.stmt(LocalStmt{true, local, init})
}

// ItemStmt constructs a nested item declaration.
func (b *Builder) ItemStmt(item ItemId) StmtId {
	return b.stmt(ItemStmt{item})
}

func (b *Builder) stmt(kind StmtKind) StmtId {
	id := StmtId(len(b.pkg.stmts))
	b.pkg.stmts = append(b.pkg.stmts, Stmt{id, kind})
	//
	return id
}

// ============================================================================
// Expressions
// ============================================================================

// Lit constructs a literal of the given type.
func (b *Builder) Lit(ty Ty, value string) ExprId {
	return b.expr(ty, Lit{value})
}

// Var constructs a read of a given local variable.
func (b *Builder) Var(local LocalVarId) ExprId {
	return b.expr(b.pkg.Local(local).Ty, Var{local})
}

// Call constructs a call to a given callable.
func (b *Builder) Call(callee ItemId, args ...ExprId) ExprId {
	return b.expr(b.pkg.Item(callee).Output, Call{callee, args})
}

// If constructs a conditional without an else branch.
func (b *Builder) If(cond ExprId, then BlockId) ExprId {
	return b.expr(Unit, If{cond, then, util.None[ExprId]()})
}

// IfElse constructs a conditional whose else branch is either a block
// expression or another conditional.
func (b *Builder) IfElse(cond ExprId, then BlockId, els ExprId) ExprId {
	return b.expr(b.pkg.Block(then).Ty, If{cond, then, util.Some(els)})
}

// While constructs a loop.
func (b *Builder) While(cond ExprId, body BlockId) ExprId {
	return b.expr(Unit, While{cond, body})
}

// BlockExpr constructs a block in expression position.
func (b *Builder) BlockExpr(block BlockId) ExprId {
	return b.expr(b.pkg.Block(block).Ty, BlockExpr{block})
}

// ArrayLit constructs an array literal with a given element type.
func (b *Builder) ArrayLit(elem Ty, items ...ExprId) ExprId {
	return b.expr(ArrayTy{elem}, ArrayLit{items})
}

// TupleLit constructs a tuple literal.
func (b *Builder) TupleLit(items ...ExprId) ExprId {
	var tys = make([]Ty, len(items))
	//
	for i, item := range items {
		tys[i] = b.pkg.Expr(item).Ty
	}
	//
	return b.expr(TupleTy{tys}, TupleLit{items})
}

// Index constructs an array access.
func (b *Builder) Index(array ExprId, index ExprId) ExprId {
	arrTy, ok := b.pkg.Expr(array).Ty.(ArrayTy)
	//
	if !ok {
		panic(fmt.Sprintf("cannot index non-array type %s", b.pkg.Expr(array).Ty.String()))
	}
	//
	return b.expr(arrTy.Elem, Index{array, index})
}

// BinOp constructs a binary operation.
func (b *Builder) BinOp(op BinOpKind, lhs ExprId, rhs ExprId) ExprId {
	var ty = b.pkg.Expr(lhs).Ty
	//
	if op.IsComparison() {
		ty = Bool
	}
	//
	return b.expr(ty, BinOp{op, lhs, rhs})
}

// UnOp constructs a unary operation.
func (b *Builder) UnOp(op UnOpKind, operand ExprId) ExprId {
	var ty = b.pkg.Expr(operand).Ty
	//
	if op == NOT {
		ty = Bool
	}
	//
	return b.expr(ty, UnOp{op, operand})
}

// Assign constructs an assignment to a mutable local.
func (b *Builder) Assign(local LocalVarId, value ExprId) ExprId {
	return b.expr(Unit, Assign{local, value})
}

// Return constructs an explicit return.
func (b *Builder) Return(value ExprId) ExprId {
	return b.expr(Unit, Return{value})
}

func (b *Builder) expr(ty Ty, kind ExprKind) ExprId {
	id := ExprId(len(b.pkg.exprs))
	b.pkg.exprs = append(b.pkg.exprs, Expr{id, ty, kind})
	//
	return id
}
