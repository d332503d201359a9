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

import "fmt"

// ComparisonOp identifies one of the six comparison operators available for
// leaf conditions.
type ComparisonOp uint8

// LogicalOp identifies a binary logical connective.
type LogicalOp uint8

const (
	// GT represents strictly greater than.
	GT ComparisonOp = iota
	// GE represents greater than or equal.
	GE
	// LT represents strictly less than.
	LT
	// LE represents less than or equal.
	LE
	// EQ represents equality.
	EQ
	// NE represents disequality.
	NE
)

const (
	// AND represents logical conjunction.
	AND LogicalOp = iota
	// OR represents logical disjunction.
	OR
)

// Symbol returns the conventional rendering of a comparison operator.
func (p ComparisonOp) Symbol() string {
	switch p {
	case GT:
		return ">"
	case GE:
		return ">="
	case LT:
		return "<"
	case LE:
		return "<="
	case EQ:
		return "=="
	case NE:
		return "!="
	}
	//
	panic(fmt.Sprintf("unknown comparison operator (%d)", p))
}

func (p LogicalOp) String() string {
	switch p {
	case AND:
		return "AND"
	case OR:
		return "OR"
	}
	//
	panic(fmt.Sprintf("unknown logical operator (%d)", p))
}

// Expression represents a boolean filter predicate over indexed fields, as a
// tree whose leaves are comparisons and whose internal nodes are logical
// connectives.  Trees are acyclic by construction since every node owns its
// children outright, and are treated as immutable once built.
type Expression interface {
	fmt.Stringer
	// isExpression restricts implementations of this interface to those
	// defined in this package, ensuring exhaustive case analysis remains
	// possible.
	isExpression()
}

// Comparison represents a leaf condition comparing an indexed field against a
// literal value.
type Comparison struct {
	// Op determines the comparison operator being applied.
	Op ComparisonOp
	// Field identifies which field of the underlying record is compared.
	Field uint16
	// Literal gives the value against which the field is compared.
	Literal int64
}

// Logical represents the conjunction or disjunction of exactly two
// sub-expressions.
type Logical struct {
	// Op determines the connective (AND or OR).
	Op LogicalOp
	// Left operand of the connective.
	Left Expression
	// Right operand of the connective.
	Right Expression
}

// Negation represents the logical negation of a sub-expression.
type Negation struct {
	// Operand being negated.
	Operand Expression
}

func (p *Comparison) isExpression() {}
func (p *Logical) isExpression()    {}
func (p *Negation) isExpression()   {}

func (p *Comparison) String() string {
	return fmt.Sprintf("field[%d] %s %d", p.Field, p.Op.Symbol(), p.Literal)
}

func (p *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", p.Left.String(), p.Op.String(), p.Right.String())
}

func (p *Negation) String() string {
	return fmt.Sprintf("NOT %s", p.Operand.String())
}

// Equal determines whether two expressions are structurally equivalent.  That
// is, whether they have the same operator at every node, with the same field
// indices, literal values and nesting throughout.
func Equal(lhs Expression, rhs Expression) bool {
	switch l := lhs.(type) {
	case *Comparison:
		if r, ok := rhs.(*Comparison); ok {
			return l.Op == r.Op && l.Field == r.Field && l.Literal == r.Literal
		}
	case *Logical:
		if r, ok := rhs.(*Logical); ok {
			return l.Op == r.Op && Equal(l.Left, r.Left) && Equal(l.Right, r.Right)
		}
	case *Negation:
		if r, ok := rhs.(*Negation); ok {
			return Equal(l.Operand, r.Operand)
		}
	}
	//
	return false
}
