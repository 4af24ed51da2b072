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

	"github.com/pkg/errors"
	"github.com/qcompiler/qrca/pkg/util"
	"github.com/segmentio/encoding/json"
)

// Decode constructs a package from its JSON source form.  The source form is a
// nested (i.e. tree-shaped) description of the intrinsic and user-defined
// callables making up the package, in which locals and callees are referred to
// by name.  For example:
//
//	{"intrinsics": [{"name": "H", "kind": "operation", "input": ["Qubit"], "output": "Unit"}],
//	 "callables": [{"name": "Foo", "kind": "operation", "output": "Unit",
//	                "input": [{"name": "q", "type": "Qubit"}],
//	                "body": [{"semi": {"call": {"callee": "H", "args": [{"var": "q"}]}}}]}]}
func Decode(bytes []byte) (*Package, error) {
	var (
		raw     map[string]any
		decoder = jsonDecoder{builder: NewBuilder(), items: make(map[string]ItemId)}
	)
	//
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return nil, err
	}
	// Declare everything first, so that calls can be resolved regardless of
	// declaration order.
	intrinsics, _ := raw["intrinsics"].([]any)
	callables, _ := raw["callables"].([]any)
	//
	for _, item := range intrinsics {
		if err := decoder.declareIntrinsic(item); err != nil {
			return nil, err
		}
	}
	//
	declared := make([]ItemId, len(callables))
	//
	for i, item := range callables {
		id, err := decoder.declareCallable(item)
		if err != nil {
			return nil, err
		}
		//
		declared[i] = id
	}
	// Remaining intrinsics are drawn from the prelude
	for name, id := range decoder.builder.Prelude() {
		decoder.items[name] = id
	}
	// Now define them
	for i, item := range callables {
		if err := decoder.defineCallable(declared[i], item.(map[string]any)); err != nil {
			return nil, err
		}
	}
	//
	return decoder.builder.Package(), nil
}

type jsonDecoder struct {
	builder *Builder
	items   map[string]ItemId
	scopes  []map[string]LocalVarId
}

func (p *jsonDecoder) declareIntrinsic(raw any) error {
	var (
		obj, _    = raw.(map[string]any)
		name, _   = obj["name"].(string)
		inputs, _ = obj["input"].([]any)
		tys       []Ty
	)
	//
	kind, err := decodeCallableKind(obj["kind"])
	if err != nil {
		return err
	}
	//
	output, err := decodeType(obj["output"])
	if err != nil {
		return err
	}
	//
	for _, input := range inputs {
		ty, err := decodeType(input)
		if err != nil {
			return err
		}
		//
		tys = append(tys, ty)
	}
	//
	if _, ok := p.items[name]; ok || name == "" {
		return errors.Errorf("invalid or duplicate intrinsic name \"%s\"", name)
	}
	//
	p.items[name] = p.builder.Intrinsic(name, kind, output, tys...)
	//
	return nil
}

func (p *jsonDecoder) declareCallable(raw any) (ItemId, error) {
	var (
		obj, ok = raw.(map[string]any)
		name, _ = obj["name"].(string)
	)
	//
	if !ok {
		return 0, errors.Errorf("malformed callable")
	}
	//
	kind, err := decodeCallableKind(obj["kind"])
	if err != nil {
		return 0, err
	}
	//
	output, err := decodeType(obj["output"])
	if err != nil {
		return 0, err
	}
	//
	if _, ok := p.items[name]; ok || name == "" {
		return 0, errors.Errorf("invalid or duplicate callable name \"%s\"", name)
	}
	//
	id := p.builder.Declare(name, kind, output)
	p.items[name] = id
	//
	return id, nil
}

func (p *jsonDecoder) defineCallable(id ItemId, obj map[string]any) error {
	var (
		inputs, _ = obj["input"].([]any)
		pats      []Pat
	)
	//
	p.enter()
	defer p.exit()
	//
	for _, input := range inputs {
		pat, err := p.decodePat(input)
		if err != nil {
			return err
		}
		//
		pats = append(pats, pat)
	}
	//
	p.builder.SetInput(id, pats...)
	//
	for kind, key := range specNames {
		var (
			ctl  = util.None[LocalVarId]()
			body = obj[key]
		)
		//
		if body == nil {
			continue
		} else if spec, ok := body.(map[string]any); ok {
			// Controlled specializations name their control qubits
			name, _ := spec["controls"].(string)
			ctl = util.Some(p.bind(name, Array(Qubit)))
			body = spec["body"]
		}
		//
		block, err := p.decodeBlock(body)
		if err != nil {
			return errors.Wrapf(err, "%s (%s)", p.builder.Package().Item(id).Name, key)
		}
		//
		p.builder.SetSpec(id, SpecKind(kind), block, ctl)
	}
	//
	return nil
}

func (p *jsonDecoder) decodePat(raw any) (Pat, error) {
	switch raw := raw.(type) {
	case []any:
		var items []Pat
		//
		for _, r := range raw {
			item, err := p.decodePat(r)
			if err != nil {
				return nil, err
			}
			//
			items = append(items, item)
		}
		//
		return TuplePat{items}, nil
	case map[string]any:
		ty, err := decodeType(raw["type"])
		if err != nil {
			return nil, err
		}
		//
		if name, _ := raw["name"].(string); name != "" && name != "_" {
			return BindPat{p.bind(name, ty), ty}, nil
		}
		//
		return DiscardPat{ty}, nil
	default:
		return nil, errors.Errorf("malformed input pattern")
	}
}

func (p *jsonDecoder) decodeBlock(raw any) (BlockId, error) {
	var (
		stmts  []StmtId
		arr, _ = raw.([]any)
	)
	//
	p.enter()
	defer p.exit()
	//
	for _, r := range arr {
		stmt, err := p.decodeStmt(r)
		if err != nil {
			return 0, err
		}
		//
		stmts = append(stmts, stmt)
	}
	//
	return p.builder.Block(stmts...), nil
}

func (p *jsonDecoder) decodeStmt(raw any) (StmtId, error) {
	key, val, err := singleton(raw)
	if err != nil {
		return 0, err
	}
	//
	switch key {
	case "expr", "semi":
		expr, err := p.decodeExpr(val)
		if err != nil {
			return 0, err
		} else if key == "expr" {
			return p.builder.ExprStmt(expr), nil
		}
		//
		return p.builder.Semi(expr), nil
	case "let", "mutable":
		var (
			obj, _  = val.(map[string]any)
			name, _ = obj["name"].(string)
		)
		//
		init, err := p.decodeExpr(obj["init"])
		if err != nil {
			return 0, err
		}
		// Type defaults to that of the initialiser
		ty := p.builder.Package().Expr(init).Ty
		//
		if obj["type"] != nil {
			if ty, err = decodeType(obj["type"]); err != nil {
				return 0, err
			}
		}
		// Bind after the initialiser to respect shadowing
		local := p.bind(name, ty)
		//
		if key == "let" {
			return p.builder.Let(local, init), nil
		}
		//
		return p.builder.Mutable(local, init), nil
	default:
		return 0, errors.Errorf("unknown statement \"%s\"", key)
	}
}

//nolint:gocyclo
func (p *jsonDecoder) decodeExpr(raw any) (ExprId, error) {
	key, val, err := singleton(raw)
	if err != nil {
		return 0, err
	}
	//
	switch key {
	case "bool":
		return p.builder.Lit(Bool, fmt.Sprint(val)), nil
	case "int":
		return p.builder.Lit(Int, fmt.Sprint(val)), nil
	case "double":
		return p.builder.Lit(Double, fmt.Sprint(val)), nil
	case "result":
		return p.builder.Lit(Result, fmt.Sprint(val)), nil
	case "pauli":
		return p.builder.Lit(Pauli, fmt.Sprint(val)), nil
	case "string":
		return p.builder.Lit(String, fmt.Sprint(val)), nil
	case "var":
		name, _ := val.(string)
		//
		if local, ok := p.lookup(name); ok {
			return p.builder.Var(local), nil
		}
		//
		return 0, errors.Errorf("unknown variable \"%s\"", name)
	case "call":
		return p.decodeCall(val)
	case "if":
		return p.decodeIf(val)
	case "while":
		obj, _ := val.(map[string]any)
		//
		cond, err := p.decodeExpr(obj["cond"])
		if err != nil {
			return 0, err
		}
		//
		body, err := p.decodeBlock(obj["body"])
		if err != nil {
			return 0, err
		}
		//
		return p.builder.While(cond, body), nil
	case "block":
		block, err := p.decodeBlock(val)
		if err != nil {
			return 0, err
		}
		//
		return p.builder.BlockExpr(block), nil
	case "array":
		obj, _ := val.(map[string]any)
		//
		elem, err := decodeType(obj["type"])
		if err != nil {
			return 0, err
		}
		//
		items, err := p.decodeExprs(obj["items"])
		if err != nil {
			return 0, err
		}
		//
		return p.builder.ArrayLit(elem, items...), nil
	case "tuple":
		items, err := p.decodeExprs(val)
		if err != nil {
			return 0, err
		}
		//
		return p.builder.TupleLit(items...), nil
	case "index":
		obj, _ := val.(map[string]any)
		//
		arr, err := p.decodeExpr(obj["array"])
		if err != nil {
			return 0, err
		}
		//
		index, err := p.decodeExpr(obj["index"])
		if err != nil {
			return 0, err
		}
		//
		if !IsArray(p.builder.Package().Expr(arr).Ty) {
			return 0, errors.Errorf("cannot index non-array expression")
		}
		//
		return p.builder.Index(arr, index), nil
	case "binop":
		return p.decodeBinOp(val)
	case "unop":
		obj, _ := val.(map[string]any)
		//
		operand, err := p.decodeExpr(obj["operand"])
		if err != nil {
			return 0, err
		}
		//
		switch obj["op"] {
		case "-":
			return p.builder.UnOp(NEG, operand), nil
		case "not":
			return p.builder.UnOp(NOT, operand), nil
		default:
			return 0, errors.Errorf("unknown unary operator \"%v\"", obj["op"])
		}
	case "assign":
		var (
			obj, _  = val.(map[string]any)
			name, _ = obj["name"].(string)
		)
		//
		value, err := p.decodeExpr(obj["value"])
		if err != nil {
			return 0, err
		}
		//
		if local, ok := p.lookup(name); ok {
			return p.builder.Assign(local, value), nil
		}
		//
		return 0, errors.Errorf("unknown variable \"%s\"", name)
	case "return":
		value, err := p.decodeExpr(val)
		if err != nil {
			return 0, err
		}
		//
		return p.builder.Return(value), nil
	default:
		return 0, errors.Errorf("unknown expression \"%s\"", key)
	}
}

func (p *jsonDecoder) decodeCall(val any) (ExprId, error) {
	var (
		obj, _  = val.(map[string]any)
		name, _ = obj["callee"].(string)
	)
	//
	callee, ok := p.items[name]
	if !ok {
		return 0, errors.Errorf("unknown callable \"%s\"", name)
	}
	//
	args, err := p.decodeExprs(obj["args"])
	if err != nil {
		return 0, err
	}
	//
	if n := len(InputParams(p.builder.Package().Item(callee))); n != len(args) {
		return 0, errors.Errorf("callable \"%s\" expects %d arguments, found %d", name, n, len(args))
	}
	//
	return p.builder.Call(callee, args...), nil
}

func (p *jsonDecoder) decodeIf(val any) (ExprId, error) {
	obj, _ := val.(map[string]any)
	//
	cond, err := p.decodeExpr(obj["cond"])
	if err != nil {
		return 0, err
	}
	//
	then, err := p.decodeBlock(obj["then"])
	if err != nil {
		return 0, err
	}
	//
	switch els := obj["else"].(type) {
	case nil:
		return p.builder.If(cond, then), nil
	case []any:
		block, err := p.decodeBlock(els)
		if err != nil {
			return 0, err
		}
		//
		return p.builder.IfElse(cond, then, p.builder.BlockExpr(block)), nil
	default:
		expr, err := p.decodeExpr(els)
		if err != nil {
			return 0, err
		}
		//
		return p.builder.IfElse(cond, then, expr), nil
	}
}

func (p *jsonDecoder) decodeBinOp(val any) (ExprId, error) {
	obj, _ := val.(map[string]any)
	//
	lhs, err := p.decodeExpr(obj["lhs"])
	if err != nil {
		return 0, err
	}
	//
	rhs, err := p.decodeExpr(obj["rhs"])
	if err != nil {
		return 0, err
	}
	//
	for i, name := range binOpNames {
		if name == obj["op"] {
			return p.builder.BinOp(BinOpKind(i), lhs, rhs), nil
		}
	}
	//
	return 0, errors.Errorf("unknown binary operator \"%v\"", obj["op"])
}

func (p *jsonDecoder) decodeExprs(raw any) ([]ExprId, error) {
	var (
		arr, _ = raw.([]any)
		exprs  = make([]ExprId, len(arr))
		err    error
	)
	//
	for i, r := range arr {
		if exprs[i], err = p.decodeExpr(r); err != nil {
			return nil, err
		}
	}
	//
	return exprs, nil
}

func (p *jsonDecoder) enter() {
	p.scopes = append(p.scopes, make(map[string]LocalVarId))
}

func (p *jsonDecoder) exit() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *jsonDecoder) bind(name string, ty Ty) LocalVarId {
	local := p.builder.Local(name, ty)
	p.scopes[len(p.scopes)-1][name] = local
	//
	return local
}

func (p *jsonDecoder) lookup(name string) (LocalVarId, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if local, ok := p.scopes[i][name]; ok {
			return local, true
		}
	}
	//
	return 0, false
}

// Extract the key and value of an object with exactly one field.
func singleton(raw any) (string, any, error) {
	obj, ok := raw.(map[string]any)
	//
	if !ok || len(obj) != 1 {
		return "", nil, errors.Errorf("expected object with exactly one field")
	}
	//
	for k, v := range obj {
		return k, v, nil
	}
	// unreachable
	return "", nil, nil
}

func decodeCallableKind(raw any) (CallableKind, error) {
	switch raw {
	case "function":
		return FUNCTION, nil
	case "operation":
		return OPERATION, nil
	default:
		return 0, errors.Errorf("unknown callable kind \"%v\"", raw)
	}
}

func decodeType(raw any) (Ty, error) {
	if raw == nil {
		return Unit, nil
	} else if text, ok := raw.(string); ok {
		return ParseType(text)
	}
	//
	return nil, errors.Errorf("malformed type \"%v\"", raw)
}
