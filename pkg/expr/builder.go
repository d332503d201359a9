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
package expr

// Condition describes a single flat filter condition as assembled by an
// upstream caller, prior to being folded into an expression tree.
type Condition struct {
	// Field identifies the record field being constrained.
	Field uint16
	// Op determines the comparison applied to that field.
	Op ComparisonOp
	// Literal gives the comparison value.
	Literal int64
	// Negate indicates the condition should be wrapped in a negation.
	Negate bool
}

// Expression converts this condition into its corresponding (leaf or negated
// leaf) expression.
func (p *Condition) Expression() Expression {
	var e Expression = &Comparison{p.Op, p.Field, p.Literal}
	//
	if p.Negate {
		e = &Negation{e}
	}
	//
	return e
}

// FromConditions folds a flat list of conditions into a single expression
// tree by combining them left-associatively under a given connective.  An
// empty condition list yields nil, signalling "no filter"; callers must
// special-case this before attempting compilation.
func FromConditions(conditions []Condition, mode LogicalOp) Expression {
	if len(conditions) == 0 {
		return nil
	}
	// Fold conditions left associatively
	root := conditions[0].Expression()
	//
	for _, c := range conditions[1:] {
		root = &Logical{mode, root, c.Expression()}
	}
	//
	return root
}
