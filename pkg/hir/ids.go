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

// BlockId identifies a block within a package.
type BlockId uint32

// StmtId identifies a statement within a package.
type StmtId uint32

// ExprId identifies an expression within a package.
type ExprId uint32

// LocalVarId identifies a local variable binding within a package.
type LocalVarId uint32

// ItemId identifies a top-level item (i.e. a callable declaration) within a
// package.
type ItemId uint32

// NodeCategory distinguishes the three kinds of syntax node which carry an
// identifier.
type NodeCategory uint8

const (
	// BLOCK identifies block nodes.
	BLOCK NodeCategory = iota
	// STMT identifies statement nodes.
	STMT
	// EXPR identifies expression nodes.
	EXPR
)

func (c NodeCategory) String() string {
	switch c {
	case BLOCK:
		return "block"
	case STMT:
		return "stmt"
	case EXPR:
		return "expr"
	default:
		panic("unreachable")
	}
}

// NodeId identifies an arbitrary syntax node (i.e. a block, statement or
// expression).  This is primarily used for reporting diagnostics.
type NodeId struct {
	Category NodeCategory
	Index    uint32
}

// BlockNode constructs the node identifier for a given block.
func BlockNode(id BlockId) NodeId {
	return NodeId{BLOCK, uint32(id)}
}

// StmtNode constructs the node identifier for a given statement.
func StmtNode(id StmtId) NodeId {
	return NodeId{STMT, uint32(id)}
}

// ExprNode constructs the node identifier for a given expression.
func ExprNode(id ExprId) NodeId {
	return NodeId{EXPR, uint32(id)}
}

func (n NodeId) String() string {
	return fmt.Sprintf("%s#%d", n.Category.String(), n.Index)
}
