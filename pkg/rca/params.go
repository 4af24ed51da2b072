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

	"github.com/qcompiler/qrca/pkg/hir"
	"github.com/qcompiler/qrca/pkg/util"
)

// ParamAxis identifies the way in which an input parameter is assumed to be
// dynamic.  Scalar parameters have a single axis, whilst array parameters
// have three: the content, the size, or both may be dynamic.
type ParamAxis uint8

const (
	// ELEMENT_AXIS assumes a scalar parameter is dynamic.
	ELEMENT_AXIS ParamAxis = iota
	// STATIC_CONTENT_DYNAMIC_SIZE assumes only the size of an array is dynamic.
	STATIC_CONTENT_DYNAMIC_SIZE
	// DYNAMIC_CONTENT_STATIC_SIZE assumes only the content of an array is
	// dynamic.
	DYNAMIC_CONTENT_STATIC_SIZE
	// DYNAMIC_CONTENT_DYNAMIC_SIZE assumes both the content and size of an
	// array are dynamic.
	DYNAMIC_CONTENT_DYNAMIC_SIZE
)

// ARRAY_AXES lists the axes of an array parameter, in the (fixed) order in
// which their instances are constructed and visited.
var ARRAY_AXES = [3]ParamAxis{STATIC_CONTENT_DYNAMIC_SIZE, DYNAMIC_CONTENT_STATIC_SIZE, DYNAMIC_CONTENT_DYNAMIC_SIZE}

// ValueKind returns the value kind a parameter has when assumed dynamic along
// this axis.
func (a ParamAxis) ValueKind() ValueKind {
	switch a {
	case ELEMENT_AXIS:
		return Element{DYNAMIC}
	case STATIC_CONTENT_DYNAMIC_SIZE:
		return Array{STATIC, DYNAMIC}
	case DYNAMIC_CONTENT_STATIC_SIZE:
		return Array{DYNAMIC, STATIC}
	case DYNAMIC_CONTENT_DYNAMIC_SIZE:
		return Array{DYNAMIC, DYNAMIC}
	default:
		panic(fmt.Sprintf("unknown parameter axis %d", a))
	}
}

func (a ParamAxis) String() string {
	switch a {
	case ELEMENT_AXIS:
		return "Element"
	case STATIC_CONTENT_DYNAMIC_SIZE:
		return "StaticContentDynamicSize"
	case DYNAMIC_CONTENT_STATIC_SIZE:
		return "DynamicContentStaticSize"
	case DYNAMIC_CONTENT_DYNAMIC_SIZE:
		return "DynamicContentDynamicSize"
	default:
		return "?"
	}
}

// AxisOf determines which axis of an array parameter a given (dynamic) array
// value kind corresponds to.  This returns false for a static array.
func AxisOf(value Array) (ParamAxis, bool) {
	switch {
	case value.Content == STATIC && value.Size == DYNAMIC:
		return STATIC_CONTENT_DYNAMIC_SIZE, true
	case value.Content == DYNAMIC && value.Size == STATIC:
		return DYNAMIC_CONTENT_STATIC_SIZE, true
	case value.Content == DYNAMIC && value.Size == DYNAMIC:
		return DYNAMIC_CONTENT_DYNAMIC_SIZE, true
	default:
		return ELEMENT_AXIS, false
	}
}

// DynamicParam identifies the (single) parameter of an application instance
// which is assumed to be dynamic, and how.
type DynamicParam struct {
	Index uint
	Axis  ParamAxis
}

// ParamInstances groups the application instances needed for one input
// parameter.  This is either a single instance (for a scalar parameter) or
// exactly three (for an array parameter).
type ParamInstances interface {
	// Instances returns the instances of this parameter in visiting order.
	Instances() []*ApplicationInstance
	isParamInstances()
}

// ElementParamInstances holds the instance for a scalar parameter.
type ElementParamInstances struct {
	Instance *ApplicationInstance
}

// ArrayParamInstances holds the three instances for an array parameter.
type ArrayParamInstances struct {
	StaticContentDynamicSize  *ApplicationInstance
	DynamicContentStaticSize  *ApplicationInstance
	DynamicContentDynamicSize *ApplicationInstance
}

func (ElementParamInstances) isParamInstances() {}
func (ArrayParamInstances) isParamInstances()   {}

// Instances implementation for ParamInstances interface.
func (p ElementParamInstances) Instances() []*ApplicationInstance {
	return []*ApplicationInstance{p.Instance}
}

// Instances implementation for ParamInstances interface.
func (p ArrayParamInstances) Instances() []*ApplicationInstance {
	return []*ApplicationInstance{p.StaticContentDynamicSize, p.DynamicContentStaticSize, p.DynamicContentDynamicSize}
}

// NewParamInstances constructs the instances for the input parameter at a
// given index.  The choice between one instance or three depends only upon
// the parameter's declared type, never on how it is used at any call site.
func NewParamInstances(params []hir.InputParam, index uint, ctl util.Option[Local],
	returnTy hir.Ty) ParamInstances {
	//
	var instance = func(axis ParamAxis) *ApplicationInstance {
		return NewApplicationInstance(params, ctl, returnTy, util.Some(DynamicParam{index, axis}))
	}
	//
	if hir.IsArray(params[index].Ty) {
		return ArrayParamInstances{
			instance(STATIC_CONTENT_DYNAMIC_SIZE),
			instance(DYNAMIC_CONTENT_STATIC_SIZE),
			instance(DYNAMIC_CONTENT_DYNAMIC_SIZE),
		}
	}
	//
	return ElementParamInstances{instance(ELEMENT_AXIS)}
}

// closedParam mirrors the shape of ParamInstances, after closing.
type closedParam interface {
	isClosedParam()
}

type closedElementParam struct {
	instance closedInstance
}

type closedArrayParam struct {
	staticContentDynamicSize  closedInstance
	dynamicContentStaticSize  closedInstance
	dynamicContentDynamicSize closedInstance
}

func (*closedElementParam) isClosedParam() {}
func (*closedArrayParam) isClosedParam()   {}

func closeParam(param ParamInstances) (closedParam, error) {
	switch p := param.(type) {
	case ElementParamInstances:
		instance, err := p.Instance.close()
		if err != nil {
			return nil, err
		}
		//
		return &closedElementParam{instance}, nil
	case ArrayParamInstances:
		var (
			closed = make([]closedInstance, 3)
			err    error
		)
		//
		for i, instance := range p.Instances() {
			if closed[i], err = instance.close(); err != nil {
				return nil, err
			}
		}
		//
		return &closedArrayParam{closed[0], closed[1], closed[2]}, nil
	default:
		panic(fmt.Sprintf("unknown parameter instances %T", param))
	}
}

// Remove the entry for a given node from every instance of a closed parameter,
// producing the corresponding parameter application.
func takeParamApplication[Id nodeIndex](param closedParam, id Id,
	table func(*closedInstance) *nodeTable[Id]) (ParamApplication, error) {
	//
	switch p := param.(type) {
	case *closedElementParam:
		kind, err := table(&p.instance).take(id)
		if err != nil {
			return nil, err
		}
		//
		return ElementParamApplication{kind}, nil
	case *closedArrayParam:
		var (
			kinds     [3]ComputeKind
			err       error
			instances = []*closedInstance{
				&p.staticContentDynamicSize, &p.dynamicContentStaticSize, &p.dynamicContentDynamicSize,
			}
		)
		//
		for i, instance := range instances {
			if kinds[i], err = table(instance).take(id); err != nil {
				return nil, err
			}
		}
		//
		return ArrayParamApplication{kinds[0], kinds[1], kinds[2]}, nil
	default:
		panic(fmt.Sprintf("unknown closed parameter %T", param))
	}
}
