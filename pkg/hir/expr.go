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

// Expr represents an expression node.  Every expression carries a unique
// identifier and its (already checked) type.
type Expr struct {
	Id   ExprId
	Ty   Ty
	Kind ExprKind
}

// ExprKind represents the different forms of expression.  This is a closed
// set, and every consumer is expected to switch over it exhaustively.
type ExprKind interface {
	isExprKind()
}

// Lit represents a literal value (e.g. "true", "1", "One" or "PauliX"), whose
// type is given by the enclosing expression.
type Lit struct {
	Value string
}

// Var represents a read of a local variable.
type Var struct {
	Local LocalVarId
}

// Call represents a call to a (statically known) callable item.
type Call struct {
	Callee ItemId
	Args   []ExprId
}

// If represents a conditional expression with an optional else branch.  The
// else branch is either a block expression or a nested if expression.
type If struct {
	Cond ExprId
	Then BlockId
	Else util.Option[ExprId]
}

// While represents a loop which executes its body until its condition is
// false.
type While struct {
	Cond ExprId
	Body BlockId
}

// BlockExpr represents a block used in expression position.
type BlockExpr struct {
	Block BlockId
}

// ArrayLit represents an array constructed from a given set of items.
type ArrayLit struct {
	Items []ExprId
}

// TupleLit represents a tuple constructed from a given set of items.
type TupleLit struct {
	Items []ExprId
}

// Index represents an array access "xs[i]".
type Index struct {
	Array ExprId
	Index ExprId
}

// BinOp represents a binary operation.
type BinOp struct {
	Op  BinOpKind
	Lhs ExprId
	Rhs ExprId
}

// UnOp represents a unary operation.
type UnOp struct {
	Op      UnOpKind
	Operand ExprId
}

// Assign represents the (re)assignment of a mutable local variable.
type Assign struct {
	Local LocalVarId
	Value ExprId
}

// Return represents an explicit return from the enclosing callable.
type Return struct {
	Value ExprId
}

func (Lit) isExprKind()       {}
func (Var) isExprKind()       {}
func (Call) isExprKind()      {}
func (If) isExprKind()        {}
func (While) isExprKind()     {}
func (BlockExpr) isExprKind() {}
func (ArrayLit) isExprKind()  {}
func (TupleLit) isExprKind()  {}
func (Index) isExprKind()     {}
func (BinOp) isExprKind()     {}
func (UnOp) isExprKind()      {}
func (Assign) isExprKind()    {}
func (Return) isExprKind()    {}

// BinOpKind identifies a binary operator.
type BinOpKind uint8

const (
	// ADD is "+", which for arrays is concatenation.
	ADD BinOpKind = iota
	// SUB is "-"
	SUB
	// MUL is "*"
	MUL
	// DIV is "/"
	DIV
	// EQ is "=="
	EQ
	// NEQ is "!="
	NEQ
	// LT is "<"
	LT
	// GT is ">"
	GT
	// AND is "and"
	AND
	// OR is "or"
	OR
)

var binOpNames = [...]string{"+", "-", "*", "/", "==", "!=", "<", ">", "and", "or"}

func (op BinOpKind) String() string {
	return binOpNames[op]
}

// IsComparison determines whether this operator always produces a Bool.
func (op BinOpKind) IsComparison() bool {
	return op >= EQ
}

// UnOpKind identifies a unary operator.
type UnOpKind uint8

const (
	// NEG is arithmetic negation.
	NEG UnOpKind = iota
	// NOT is logical negation.
	NOT
)

func (op UnOpKind) String() string {
	if op == NEG {
		return "-"
	}
	//
	return "not"
}
