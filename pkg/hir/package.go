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

import "fmt"

// Package is a fully elaborated compilation unit.  All nodes are stored in
// tables indexed by their identifiers, such that identifiers are dense and
// zero-based within each category.
type Package struct {
	items  []CallableDecl
	blocks []Block
	stmts  []Stmt
	exprs  []Expr
	locals []LocalVar
}

// NumItems returns the number of items in this package.
func (p *Package) NumItems() uint {
	return uint(len(p.items))
}

// Item returns the callable declaration with the given identifier.
func (p *Package) Item(id ItemId) *CallableDecl {
	return &p.items[id]
}

// Block returns the block with the given identifier.
func (p *Package) Block(id BlockId) *Block {
	return &p.blocks[id]
}

// Stmt returns the statement with the given identifier.
func (p *Package) Stmt(id StmtId) *Stmt {
	return &p.stmts[id]
}

// Expr returns the expression with the given identifier.
func (p *Package) Expr(id ExprId) *Expr {
	return &p.exprs[id]
}

// Local returns the local variable with the given identifier.
func (p *Package) Local(id LocalVarId) *LocalVar {
	return &p.locals[id]
}

// Lookup finds the item with the given name (if it exists).
func (p *Package) Lookup(name string) (ItemId, bool) {
	for i := range p.items {
		if p.items[i].Name == name {
			return ItemId(i), true
		}
	}
	//
	return 0, false
}

// Callees returns the set of items called (directly) from anywhere within the
// given block.  Items are returned in order of first occurrence, without
// duplicates.
func (p *Package) Callees(block BlockId) []ItemId {
	var (
		callees []ItemId
		seen    = make(map[ItemId]bool)
	)
	//
	p.WalkBlock(block, func(e *Expr) {
		if call, ok := e.Kind.(Call); ok && !seen[call.Callee] {
			seen[call.Callee] = true
			callees = append(callees, call.Callee)
		}
	})
	//
	return callees
}

// WalkBlock visits every expression reachable from a given block, in
// pre-order.
func (p *Package) WalkBlock(block BlockId, fn func(*Expr)) {
	for _, s := range p.blocks[block].Stmts {
		switch s := p.stmts[s].Kind.(type) {
		case ExprStmt:
			p.WalkExpr(s.Expr, fn)
		case Semi:
			p.WalkExpr(s.Expr, fn)
		case LocalStmt:
			p.WalkExpr(s.Init, fn)
		case ItemStmt:
			// nothing to do
		default:
			panic(fmt.Sprintf("unknown statement %T", s))
		}
	}
}

// WalkExpr visits every expression reachable from a given expression
// (including itself), in pre-order.
func (p *Package) WalkExpr(id ExprId, fn func(*Expr)) {
	var e = &p.exprs[id]
	//
	fn(e)
	//
	switch k := e.Kind.(type) {
	case Lit, Var:
		// leaf
	case Call:
		p.walkExprs(k.Args, fn)
	case If:
		p.WalkExpr(k.Cond, fn)
		p.WalkBlock(k.Then, fn)
		//
		if els, ok := k.Else.Get(); ok {
			p.WalkExpr(els, fn)
		}
	case While:
		p.WalkExpr(k.Cond, fn)
		p.WalkBlock(k.Body, fn)
	case BlockExpr:
		p.WalkBlock(k.Block, fn)
	case ArrayLit:
		p.walkExprs(k.Items, fn)
	case TupleLit:
		p.walkExprs(k.Items, fn)
	case Index:
		p.WalkExpr(k.Array, fn)
		p.WalkExpr(k.Index, fn)
	case BinOp:
		p.WalkExpr(k.Lhs, fn)
		p.WalkExpr(k.Rhs, fn)
	case UnOp:
		p.WalkExpr(k.Operand, fn)
	case Assign:
		p.WalkExpr(k.Value, fn)
	case Return:
		p.WalkExpr(k.Value, fn)
	default:
		panic(fmt.Sprintf("unknown expression %T", k))
	}
}

func (p *Package) walkExprs(ids []ExprId, fn func(*Expr)) {
	for _, id := range ids {
		p.WalkExpr(id, fn)
	}
}

// Children returns the immediate subexpressions of a given expression, where
// the expressions of the statements making up a nested block are considered
// immediate.
func (p *Package) Children(id ExprId) []ExprId {
	var children []ExprId
	//
	switch k := p.exprs[id].Kind.(type) {
	case Call:
		children = k.Args
	case If:
		children = append([]ExprId{k.Cond}, p.BlockExprs(k.Then)...)
		//
		if els, ok := k.Else.Get(); ok {
			children = append(children, els)
		}
	case While:
		children = append([]ExprId{k.Cond}, p.BlockExprs(k.Body)...)
	case BlockExpr:
		children = p.BlockExprs(k.Block)
	case ArrayLit:
		children = k.Items
	case TupleLit:
		children = k.Items
	case Index:
		children = []ExprId{k.Array, k.Index}
	case BinOp:
		children = []ExprId{k.Lhs, k.Rhs}
	case UnOp:
		children = []ExprId{k.Operand}
	case Assign:
		children = []ExprId{k.Value}
	case Return:
		children = []ExprId{k.Value}
	}
	//
	return children
}

// BlockExprs returns the top-level expressions of the statements in a block.
func (p *Package) BlockExprs(block BlockId) []ExprId {
	var exprs []ExprId
	//
	for _, s := range p.blocks[block].Stmts {
		switch s := p.stmts[s].Kind.(type) {
		case ExprStmt:
			exprs = append(exprs, s.Expr)
		case Semi:
			exprs = append(exprs, s.Expr)
		case LocalStmt:
			exprs = append(exprs, s.Init)
		}
	}
	//
	return exprs
}
