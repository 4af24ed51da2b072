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
package stack

import (
	"slices"
	"testing"
)

func Test_Stack_01(t *testing.T) {
	var stack = NewStack[uint]()
	//
	stack.Push(1)
	stack.Push(2)
	stack.Push(3)
	//
	if stack.Len() != 3 || stack.Peek(0) != 3 || stack.Peek(2) != 1 {
		t.Errorf("unexpected stack %v", stack.Items())
	} else if !slices.Equal(stack.Items(), []uint{1, 2, 3}) {
		t.Errorf("unexpected items %v", stack.Items())
	} else if stack.Pop() != 3 || stack.Pop() != 2 || stack.Pop() != 1 || !stack.IsEmpty() {
		t.Errorf("items popped out of order")
	}
}

func Test_Stack_02(t *testing.T) {
	var (
		stack = NewStack[uint]()
		clone *Stack[uint]
	)
	//
	stack.Push(1)
	clone = stack.Clone()
	clone.Push(2)
	//
	if stack.Len() != 1 || clone.Len() != 2 {
		t.Errorf("clone aliases original stack")
	}
}

func Test_Stack_03(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected pop of empty stack to panic")
		}
	}()
	//
	NewStack[uint]().Pop()
}
