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
package decompiler

import (
	"errors"
	"testing"

	"github.com/fhelabs/go-predicate/pkg/bytecode"
	"github.com/fhelabs/go-predicate/pkg/compiler"
	"github.com/fhelabs/go-predicate/pkg/expr"
)

// ===================================================================
// Round-Trip Tests
// ===================================================================

func TestRoundTrip_01(t *testing.T) {
	CheckRoundTrip(t, &expr.Comparison{Op: expr.GT, Field: 2, Literal: 10})
}

func TestRoundTrip_02(t *testing.T) {
	CheckRoundTrip(t, &expr.Comparison{Op: expr.LE, Field: 0, Literal: -42})
}

func TestRoundTrip_03(t *testing.T) {
	CheckRoundTrip(t, conjunction())
}

func TestRoundTrip_04(t *testing.T) {
	CheckRoundTrip(t, &expr.Negation{Operand: conjunction()})
}

func TestRoundTrip_05(t *testing.T) {
	// ((f0 == 5 AND f1 != 3) OR NOT (f2 < 9))
	e := &expr.Logical{Op: expr.OR,
		Left:  conjunction(),
		Right: &expr.Negation{Operand: &expr.Comparison{Op: expr.LT, Field: 2, Literal: 9}},
	}
	//
	CheckRoundTrip(t, e)
}

func TestRoundTrip_06(t *testing.T) {
	// Deeply left-nested conjunction, as produced by folding a condition list.
	conditions := []expr.Condition{
		{Field: 0, Op: expr.GT, Literal: 1},
		{Field: 1, Op: expr.GE, Literal: 2},
		{Field: 2, Op: expr.LT, Literal: 3, Negate: true},
		{Field: 3, Op: expr.NE, Literal: 2},
	}
	//
	CheckRoundTrip(t, expr.FromConditions(conditions, expr.AND))
}

func TestRoundTrip_07(t *testing.T) {
	// Double negation is preserved, not cancelled.
	e := &expr.Negation{Operand: &expr.Negation{Operand: conjunction()}}
	//
	CheckRoundTrip(t, e)
}

func TestRoundTrip_08(t *testing.T) {
	// Every comparison operator.
	ops := []expr.ComparisonOp{expr.GT, expr.GE, expr.LT, expr.LE, expr.EQ, expr.NE}
	//
	for i, op := range ops {
		CheckRoundTrip(t, &expr.Comparison{Op: op, Field: uint16(i), Literal: int64(i) * 100})
	}
}

// ===================================================================
// Malformed Input Tests
// ===================================================================

func TestMalformed_01(t *testing.T) {
	// A bare GT with an empty stack.
	CheckMalformed(t, []byte{0x10}, nil, StackUnderflow)
}

func TestMalformed_02(t *testing.T) {
	// A dangling field reference is not an expression.
	CheckMalformed(t, []byte{0x01, 0x00, 0x00}, nil, InvalidTerminalStack)
}

func TestMalformed_03(t *testing.T) {
	// 0xff is not an instruction.
	CheckMalformed(t, []byte{0xff}, nil, UnknownOpcode)
}

func TestMalformed_04(t *testing.T) {
	// PUSH_FIELD with a truncated operand.
	CheckMalformed(t, []byte{0x01, 0x00}, nil, IncompleteOperand)
}

func TestMalformed_05(t *testing.T) {
	// PUSH_CONST referencing an empty pool.
	CheckMalformed(t, []byte{0x02, 0x00, 0x00}, nil, InvalidConstantIndex)
}

func TestMalformed_06(t *testing.T) {
	// AND over two bare numbers.
	CheckMalformed(t, []byte{0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x20}, nil, TypeMismatch)
}

func TestMalformed_07(t *testing.T) {
	// NOT over a bare number.
	CheckMalformed(t, []byte{0x01, 0x00, 0x00, 0x22}, nil, TypeMismatch)
}

func TestMalformed_08(t *testing.T) {
	// A second comparison with only one expression on the stack.
	program := compiler.Compile(&expr.Comparison{Op: expr.GT, Field: 0, Literal: 1})
	code := append(append([]byte{}, program.Code...), 0x10)
	//
	CheckMalformed(t, code, program.Constants, StackUnderflow)
}

func TestMalformed_09(t *testing.T) {
	// GT where one operand is an expression.
	program := compiler.Compile(&expr.Comparison{Op: expr.GT, Field: 0, Literal: 1})
	code := append(append([]byte{0x01, 0x00, 0x00}, program.Code...), 0x10)
	//
	CheckMalformed(t, code, program.Constants, TypeMismatch)
}

func TestMalformed_10(t *testing.T) {
	// Two complete expressions left on the stack.
	program := compiler.Compile(&expr.Comparison{Op: expr.GT, Field: 0, Literal: 1})
	code := append(append([]byte{}, program.Code...), program.Code...)
	//
	CheckMalformed(t, code, program.Constants, InvalidTerminalStack)
}

func TestMalformed_11(t *testing.T) {
	// PUSH_CONST just beyond the pool boundary.
	CheckMalformed(t, []byte{0x02, 0x00, 0x02}, []int64{1, 2}, InvalidConstantIndex)
}

func TestMalformed_12(t *testing.T) {
	// The empty program never denotes an expression.
	CheckMalformed(t, []byte{}, nil, InvalidTerminalStack)
}

// ===================================================================
// Totality Tests
// ===================================================================

// Any single byte either fails cleanly or is impossible to succeed on; no
// panic and no out-of-bounds read may arise.
func TestTotality_01(t *testing.T) {
	for b := 0; b < 256; b++ {
		program := &bytecode.Program{Code: []byte{byte(b)}, Constants: []int64{1}}
		//
		if _, err := Decompile(program); err == nil {
			t.Errorf("single byte 0x%02x unexpectedly decompiled", b)
		}
	}
}

// Truncating a valid program never silently misbehaves: either the prefix is
// itself a complete postfix program, in which case it decompiles to a strict
// sub-expression of the original, or it fails with one of the three kinds a
// truncation can produce.
func TestTotality_02(t *testing.T) {
	whole := &expr.Negation{Operand: conjunction()}
	program := compiler.Compile(whole)
	//
	for n := 0; n < len(program.Code); n++ {
		truncated := &bytecode.Program{Code: program.Code[:n], Constants: program.Constants}
		//
		tree, err := Decompile(truncated)
		if err == nil {
			if !strictSubExpression(tree, whole) {
				t.Errorf("truncation at %d gave %s, not a sub-expression", n, tree)
			}
			//
			continue
		}
		// Only these three kinds can arise from truncation.
		var derr *Error
		if !errors.As(err, &derr) {
			t.Errorf("truncation at %d gave a foreign error: %v", n, err)
		} else if derr.Kind != IncompleteOperand && derr.Kind != StackUnderflow && derr.Kind != InvalidTerminalStack {
			t.Errorf("truncation at %d gave unexpected kind %s", n, derr.Kind)
		}
	}
}

// Exhaustive sweep of all two-byte programs.
func TestTotality_03(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			program := &bytecode.Program{Code: []byte{byte(a), byte(b)}, Constants: []int64{1}}
			//
			if _, err := Decompile(program); err == nil {
				t.Errorf("bytes %02x %02x unexpectedly decompiled", a, b)
			}
		}
	}
}

// ===================================================================
// Hex Boundary Tests
// ===================================================================

func TestHex_01(t *testing.T) {
	// The bare sentinel short-circuits to "no filter".
	tree, err := DecompileHex("0x", nil)
	//
	if err != nil || tree != nil {
		t.Errorf("sentinel gave (%v, %v)", tree, err)
	}
}

func TestHex_02(t *testing.T) {
	tree, err := DecompileHex("0x010002020000001", nil)
	//
	if err == nil {
		t.Errorf("odd-length hex unexpectedly decoded (%v)", tree)
	}
}

func TestHex_03(t *testing.T) {
	program := compiler.Compile(conjunction())
	//
	tree, err := DecompileHex(bytecode.EncodeHex(program.Code), program.Constants)
	//
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	} else if !expr.Equal(tree, conjunction()) {
		t.Errorf("round trip via hex gave %s", tree)
	}
}

func TestHex_04(t *testing.T) {
	if _, err := DecompileHex("010002", nil); err == nil {
		t.Error("missing 0x prefix unexpectedly accepted")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

// Check that compiling then decompiling a given expression reproduces a
// structurally identical expression.
func CheckRoundTrip(t *testing.T, e expr.Expression) {
	program := compiler.Compile(e)
	//
	tree, err := Decompile(program)
	if err != nil {
		t.Errorf("unexpected error decompiling %s: %v", e, err)
	} else if !expr.Equal(e, tree) {
		t.Errorf("round trip gave %s, expected %s", tree, e)
	}
}

// Check that a given byte sequence is rejected with a specific error kind.
func CheckMalformed(t *testing.T, code []byte, constants []int64, kind ErrorKind) {
	program := &bytecode.Program{Code: code, Constants: constants}
	//
	_, err := Decompile(program)
	if err == nil {
		t.Errorf("bytes %x unexpectedly decompiled", code)
		return
	}
	//
	var derr *Error
	if !errors.As(err, &derr) {
		t.Errorf("bytes %x gave a foreign error: %v", code, err)
	} else if derr.Kind != kind {
		t.Errorf("bytes %x gave %s, expected %s", code, derr.Kind, kind)
	}
}

// Determine whether sub occurs strictly below the root of a given expression.
func strictSubExpression(sub expr.Expression, whole expr.Expression) bool {
	switch e := whole.(type) {
	case *expr.Logical:
		return containsExpression(sub, e.Left) || containsExpression(sub, e.Right)
	case *expr.Negation:
		return containsExpression(sub, e.Operand)
	}
	//
	return false
}

func containsExpression(sub expr.Expression, whole expr.Expression) bool {
	return expr.Equal(sub, whole) || strictSubExpression(sub, whole)
}

func conjunction() expr.Expression {
	return &expr.Logical{Op: expr.AND,
		Left:  &expr.Comparison{Op: expr.EQ, Field: 0, Literal: 5},
		Right: &expr.Comparison{Op: expr.NE, Field: 1, Literal: 3},
	}
}
