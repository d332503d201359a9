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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_Comparison(t *testing.T) {
	e := &Comparison{Op: GT, Field: 2, Literal: 10}
	//
	assert.Equal(t, "field[2] > 10", Render(e))
}

func TestRender_Logical(t *testing.T) {
	e := &Logical{Op: AND,
		Left:  &Comparison{Op: EQ, Field: 0, Literal: 5},
		Right: &Comparison{Op: NE, Field: 1, Literal: 3},
	}
	//
	expected := "(\n\tfield[0] == 5\nAND\n\tfield[1] != 3\n)"
	//
	assert.Equal(t, expected, Render(e))
}

func TestRender_Negation(t *testing.T) {
	e := &Negation{Operand: &Comparison{Op: LT, Field: 4, Literal: -7}}
	//
	assert.Equal(t, "NOT (\n\tfield[4] < -7\n)", Render(e))
}

func TestRender_Nested(t *testing.T) {
	e := &Negation{Operand: &Logical{Op: OR,
		Left:  &Comparison{Op: GE, Field: 0, Literal: 1},
		Right: &Comparison{Op: LE, Field: 1, Literal: 2},
	}}
	//
	expected := "NOT (\n\t(\n\t\tfield[0] >= 1\n\tOR\n\t\tfield[1] <= 2\n\t)\n)"
	//
	assert.Equal(t, expected, Render(e))
}

func TestRender_Symbols(t *testing.T) {
	symbols := map[ComparisonOp]string{
		GT: ">", GE: ">=", LT: "<", LE: "<=", EQ: "==", NE: "!=",
	}
	//
	for op, symbol := range symbols {
		assert.Equal(t, symbol, op.Symbol())
	}
}

func TestFold_Empty(t *testing.T) {
	assert.Nil(t, FromConditions(nil, AND))
}

func TestFold_Single(t *testing.T) {
	e := FromConditions([]Condition{{Field: 3, Op: NE, Literal: 2}}, OR)
	//
	assert.True(t, Equal(e, &Comparison{Op: NE, Field: 3, Literal: 2}))
}

func TestFold_Negated(t *testing.T) {
	e := FromConditions([]Condition{{Field: 3, Op: NE, Literal: 2, Negate: true}}, AND)
	//
	assert.True(t, Equal(e, &Negation{Operand: &Comparison{Op: NE, Field: 3, Literal: 2}}))
}

func TestFold_LeftAssociative(t *testing.T) {
	conditions := []Condition{
		{Field: 0, Op: GT, Literal: 1},
		{Field: 1, Op: GT, Literal: 2},
		{Field: 2, Op: GT, Literal: 3},
	}
	// ((c0 AND c1) AND c2)
	expected := &Logical{Op: AND,
		Left: &Logical{Op: AND,
			Left:  &Comparison{Op: GT, Field: 0, Literal: 1},
			Right: &Comparison{Op: GT, Field: 1, Literal: 2},
		},
		Right: &Comparison{Op: GT, Field: 2, Literal: 3},
	}
	//
	assert.True(t, Equal(FromConditions(conditions, AND), expected))
}

func TestEqual_Distinct(t *testing.T) {
	a := &Comparison{Op: GT, Field: 0, Literal: 1}
	//
	assert.False(t, Equal(a, &Comparison{Op: GE, Field: 0, Literal: 1}))
	assert.False(t, Equal(a, &Comparison{Op: GT, Field: 1, Literal: 1}))
	assert.False(t, Equal(a, &Comparison{Op: GT, Field: 0, Literal: 2}))
	assert.False(t, Equal(a, &Negation{Operand: a}))
}

func TestParseOps(t *testing.T) {
	for _, input := range []string{"gt", ">", "GT"} {
		op, err := ParseComparisonOp(input)
		assert.NoError(t, err)
		assert.Equal(t, GT, op)
	}
	//
	_, err := ParseComparisonOp("~=")
	assert.Error(t, err)
	//
	mode, err := ParseLogicalOp("OR")
	assert.NoError(t, err)
	assert.Equal(t, OR, mode)
	//
	_, err = ParseLogicalOp("xor")
	assert.Error(t, err)
}
