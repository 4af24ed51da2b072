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
	"fmt"

	"github.com/pkg/errors"
	"github.com/qcompiler/qrca/pkg/hir"
	"github.com/qcompiler/qrca/pkg/util"
)

// GeneratorSetsBuilder orchestrates the application instances for one
// callable specialization: the inherent instance (where all inputs are
// static), and one parameter application for each input parameter (where
// only that parameter is dynamic).  Once an external traversal has populated
// every instance, the builder is closed and the results saved.
type GeneratorSetsBuilder struct {
	callable                 string
	inherent                 *ApplicationInstance
	dynamicParamApplications []ParamInstances
	closed                   bool
}

// NewGeneratorSetsBuilder constructs a builder for a specialization with the
// given input parameters, (optional) control qubits and return type.  The
// name of the callable is used only for diagnostics.
func NewGeneratorSetsBuilder(callable string, params []hir.InputParam, ctl util.Option[Local],
	returnTy hir.Ty) *GeneratorSetsBuilder {
	//
	var (
		inherent = NewApplicationInstance(params, ctl, returnTy, util.None[DynamicParam]())
		apps     = make([]ParamInstances, len(params))
	)
	//
	for i := range params {
		apps[i] = NewParamInstances(params, uint(i), ctl, returnTy)
	}
	//
	return &GeneratorSetsBuilder{callable, inherent, apps, false}
}

// Callable returns the name of the callable being analysed.
func (b *GeneratorSetsBuilder) Callable() string {
	return b.callable
}

// Inherent returns the instance in which every input is static.
func (b *GeneratorSetsBuilder) Inherent() *ApplicationInstance {
	return b.inherent
}

// ParamApplications returns the parameter applications, index-aligned with
// the input parameters.
func (b *GeneratorSetsBuilder) ParamApplications() []ParamInstances {
	return b.dynamicParamApplications
}

// Instances returns every application instance in the order they should be
// visited: the inherent instance first, then each parameter in declared order
// and, for an array parameter, its axes in the order of ARRAY_AXES.
func (b *GeneratorSetsBuilder) Instances() []*ApplicationInstance {
	var instances = []*ApplicationInstance{b.inherent}
	//
	for _, app := range b.dynamicParamApplications {
		instances = append(instances, app.Instances()...)
	}
	//
	return instances
}

// CloseAndSave closes every application instance and merges them into one
// generator set per node, which are saved into the given table.  This
// consumes the builder.  If a main block is given (i.e. the outermost block of
// the specialization), its generator set is returned after being adjusted to
// reflect the dynamism of the values returned by the specialization.  Any
// error returned signals an internal invariant violation.
func (b *GeneratorSetsBuilder) CloseAndSave(main util.Option[hir.BlockId],
	table *PackageComputeProperties) (result util.Option[ApplicationGeneratorSet], err error) {
	//
	defer CatchInvariant(b.callable, &err)
	//
	if b.closed {
		panic(&InvariantError{Expected: "unclosed builder", Found: "builder already closed"})
	}
	//
	b.closed = true
	//
	var (
		sets   generatorSets
		params = make([]closedParam, len(b.dynamicParamApplications))
	)
	// Close everything
	inherent, err := b.inherent.close()
	if err != nil {
		return result, b.annotate(err)
	}
	//
	for i, app := range b.dynamicParamApplications {
		if params[i], err = closeParam(app); err != nil {
			return result, b.annotate(err)
		}
	}
	// Drain each category of node in turn
	if sets.blocks, err = drain(&inherent.blocks, params, blocksOf); err != nil {
		return result, b.annotate(err)
	} else if sets.stmts, err = drain(&inherent.stmts, params, stmtsOf); err != nil {
		return result, b.annotate(err)
	} else if sets.exprs, err = drain(&inherent.exprs, params, exprsOf); err != nil {
		return result, b.annotate(err)
	} else if err = checkDrained(params); err != nil {
		return result, b.annotate(err)
	} else if err = table.insertAll(&sets); err != nil {
		return result, b.annotate(err)
	}
	//
	b.inherent = nil
	b.dynamicParamApplications = nil
	//
	if id, ok := main.Get(); ok {
		gs, ok := table.Block(id)
		//
		if !ok {
			err = errors.WithStack(violation(hir.BlockNode(id), "generator set for main block", "none"))
			return result, b.annotate(err)
		}
		//
		return util.Some(patchMainBlock(id, gs.Clone(), inherent, params)), nil
	}
	//
	return util.None[ApplicationGeneratorSet](), nil
}

// Adjust the generator set of the main block using the value kinds of the
// returned expressions.  This captures the situation where a specialization
// returns a dynamic value even when its inputs are static (e.g. because it
// measures a qubit).
func patchMainBlock(main hir.BlockId, gs ApplicationGeneratorSet, inherent closedInstance,
	params []closedParam) ApplicationGeneratorSet {
	//
	defer AtNode(hir.BlockNode(main))
	//
	if value, ok := inherent.value.Get(); ok {
		gs.Inherent = WithValueKind(gs.Inherent, value)
	}
	//
	for i, param := range params {
		switch p := param.(type) {
		case *closedElementParam:
			app, ok := gs.DynamicParamApplications[i].(ElementParamApplication)
			//
			if !ok {
				panic(&InvariantError{Expected: "element parameter application", Found: "array parameter application"})
			}
			//
			if value, ok := p.instance.value.Get(); ok {
				app.Kind = WithValueKind(app.Kind, value)
			}
			//
			gs.DynamicParamApplications[i] = app
		case *closedArrayParam:
			app, ok := gs.DynamicParamApplications[i].(ArrayParamApplication)
			//
			if !ok {
				panic(&InvariantError{Expected: "array parameter application", Found: "element parameter application"})
			}
			//
			if value, ok := p.staticContentDynamicSize.value.Get(); ok {
				app.StaticContentDynamicSize = WithValueKind(app.StaticContentDynamicSize, value)
			}
			//
			if value, ok := p.dynamicContentStaticSize.value.Get(); ok {
				app.DynamicContentStaticSize = WithValueKind(app.DynamicContentStaticSize, value)
			}
			//
			if value, ok := p.dynamicContentDynamicSize.value.Get(); ok {
				app.DynamicContentDynamicSize = WithValueKind(app.DynamicContentDynamicSize, value)
			}
			//
			gs.DynamicParamApplications[i] = app
		default:
			panic(fmt.Sprintf("unknown closed parameter %T", param))
		}
	}
	//
	return gs
}

// Drain one category of node from the inherent instance, pulling the entry for
// each node out of every parameter instance to form its generator set.
func drain[Id nodeIndex](inherent *nodeTable[Id], params []closedParam,
	table func(*closedInstance) *nodeTable[Id]) (map[Id]ApplicationGeneratorSet, error) {
	//
	var sets = make(map[Id]ApplicationGeneratorSet, inherent.len())
	//
	for _, id := range inherent.ids() {
		kind, err := inherent.take(id)
		if err != nil {
			return nil, err
		}
		//
		apps := make([]ParamApplication, len(params))
		//
		for i, param := range params {
			if apps[i], err = takeParamApplication(param, id, table); err != nil {
				return nil, err
			}
		}
		//
		sets[id] = ApplicationGeneratorSet{kind, apps}
	}
	//
	return sets, nil
}

// Check nothing remains in any parameter instance, since every instance must
// have visited exactly the same set of nodes as the inherent instance.
func checkDrained(params []closedParam) error {
	for _, param := range params {
		var instances []*closedInstance
		//
		switch p := param.(type) {
		case *closedElementParam:
			instances = []*closedInstance{&p.instance}
		case *closedArrayParam:
			instances = []*closedInstance{
				&p.staticContentDynamicSize, &p.dynamicContentStaticSize, &p.dynamicContentDynamicSize,
			}
		}
		//
		for _, instance := range instances {
			if err := checkEmpty(&instance.blocks); err != nil {
				return err
			} else if err := checkEmpty(&instance.stmts); err != nil {
				return err
			} else if err := checkEmpty(&instance.exprs); err != nil {
				return err
			}
		}
	}
	//
	return nil
}

func checkEmpty[Id nodeIndex](table *nodeTable[Id]) error {
	if ids := table.ids(); len(ids) > 0 {
		return errors.WithStack(violation(table.node(ids[0]), "node visited by inherent instance",
			"node only visited by parameter instance"))
	}
	//
	return nil
}

// Attach the name of the callable to an invariant violation.
func (b *GeneratorSetsBuilder) annotate(err error) error {
	if ie, ok := AsInvariantError(err); ok && ie.Callable == "" {
		ie.Callable = b.callable
	}
	//
	return err
}

func blocksOf(c *closedInstance) *nodeTable[hir.BlockId] { return &c.blocks }
func stmtsOf(c *closedInstance) *nodeTable[hir.StmtId]   { return &c.stmts }
func exprsOf(c *closedInstance) *nodeTable[hir.ExprId]   { return &c.exprs }
