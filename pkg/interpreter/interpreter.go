// Copyright FHE Labs Ltd.
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

// Package interpreter provides a plaintext reference evaluator for compiled
// predicate programs.  The production evaluator operates over encrypted
// values inside a confidential-computation engine; this one exists so that
// compiled programs can be exercised against known rows in tests and audits.
package interpreter

import (
	"fmt"

	"github.com/fhelabs/go-predicate/pkg/bytecode"
	"github.com/fhelabs/go-predicate/pkg/decompiler"
	"github.com/fhelabs/go-predicate/pkg/expr"
)

// Evaluate runs a compiled predicate against a single row of plaintext field
// values, returning whether the row satisfies the filter.  The program is
// validated (via decompilation) before evaluation, hence malformed programs
// fail with the validator's usual diagnostics rather than faulting.
func Evaluate(program *bytecode.Program, row []int64) (bool, error) {
	tree, err := decompiler.Decompile(program)
	//
	if err != nil {
		return false, err
	}
	//
	return EvaluateExpr(tree, row)
}

// EvaluateExpr evaluates an expression tree directly against a row of field
// values, erroring on field indices beyond the supplied row.
func EvaluateExpr(tree expr.Expression, row []int64) (bool, error) {
	switch e := tree.(type) {
	case *expr.Comparison:
		if int(e.Field) >= len(row) {
			return false, fmt.Errorf("field index %d exceeds row of %d values", e.Field, len(row))
		}
		//
		return compare(e.Op, row[e.Field], e.Literal), nil
	case *expr.Logical:
		left, err := EvaluateExpr(e.Left, row)
		if err != nil {
			return false, err
		}
		//
		right, err := EvaluateExpr(e.Right, row)
		if err != nil {
			return false, err
		}
		//
		if e.Op == expr.AND {
			return left && right, nil
		}
		//
		return left || right, nil
	case *expr.Negation:
		operand, err := EvaluateExpr(e.Operand, row)
		//
		return !operand, err
	}
	//
	return false, fmt.Errorf("unknown expression (%v)", tree)
}

func compare(op expr.ComparisonOp, lhs int64, rhs int64) bool {
	switch op {
	case expr.GT:
		return lhs > rhs
	case expr.GE:
		return lhs >= rhs
	case expr.LT:
		return lhs < rhs
	case expr.LE:
		return lhs <= rhs
	case expr.EQ:
		return lhs == rhs
	case expr.NE:
		return lhs != rhs
	}
	//
	panic(fmt.Sprintf("unknown comparison operator (%d)", op))
}
