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

// Stmt represents a statement node within a block.
type Stmt struct {
	Id   StmtId
	Kind StmtKind
}

// StmtKind represents the different forms of statement.
type StmtKind interface {
	isStmtKind()
}

// ExprStmt is an expression in trailing position, whose value becomes the
// value of the enclosing block.
type ExprStmt struct {
	Expr ExprId
}

// Semi is an expression whose value is discarded.
type Semi struct {
	Expr ExprId
}

// LocalStmt declares (and initialises) a new local variable.
type LocalStmt struct {
	Mutable bool
	Local   LocalVarId
	Init    ExprId
}

// ItemStmt declares a nested item, and has no runtime effect.
type ItemStmt struct {
	Item ItemId
}

func (ExprStmt) isStmtKind()  {}
func (Semi) isStmtKind()      {}
func (LocalStmt) isStmtKind() {}
func (ItemStmt) isStmtKind()  {}

// Block represents a sequence of statements.  The type of a block is that of
// its trailing expression statement, or Unit if there is none.
type Block struct {
	Id    BlockId
	Ty    Ty
	Stmts []StmtId
}

// LocalVar describes a named local binding.
type LocalVar struct {
	Id   LocalVarId
	Name string
	Ty   Ty
}
