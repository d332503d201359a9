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

// Package decompiler reconstructs expression trees from compiled predicate
// programs.  Reconstruction doubles as validation: for any finite byte
// sequence whatsoever, Decompile either returns a well-formed expression or a
// specific diagnostic error.  It never panics, never loops unboundedly and
// never reads past the buffer, since the program is later interpreted by an
// execution environment which cannot itself validate high-level syntax.
package decompiler

import (
	"encoding/binary"

	"github.com/fhelabs/go-predicate/pkg/bytecode"
	"github.com/fhelabs/go-predicate/pkg/expr"
	"github.com/fhelabs/go-predicate/pkg/util/collection/stack"
)

// value is an entry on the abstract operand stack: either a bare number (as
// pushed by PUSH_FIELD / PUSH_CONST) or a reconstructed sub-expression (as
// pushed by comparison, logical and NOT opcodes).  Exactly one of the two
// interpretations applies, as determined by isExpr.
type value struct {
	isExpr bool
	number int64
	tree   expr.Expression
}

func numberValue(number int64) value {
	return value{false, number, nil}
}

func exprValue(tree expr.Expression) value {
	return value{true, 0, tree}
}

// Decompile reconstructs the expression tree encoded by a given program,
// validating it fully in the process.  The empty program denotes "no filter"
// and must be short-circuited by callers; here it simply fails (with an
// invalid terminal stack, since nothing remains on the stack at the end).
func Decompile(program *bytecode.Program) (expr.Expression, error) {
	var (
		code     = program.Code
		operands = stack.NewStack[value]()
		pc       uint
	)
	//
	for pc < uint(len(code)) {
		var (
			opcode = bytecode.Opcode(code[pc])
			at     = pc
		)
		// Advance past the opcode itself
		pc++
		//
		switch {
		case opcode == bytecode.PUSH_FIELD || opcode == bytecode.PUSH_CONST:
			operand, err := readOperand(code, &pc, at, opcode)
			if err != nil {
				return nil, err
			}
			//
			if opcode == bytecode.PUSH_CONST {
				if int(operand) >= len(program.Constants) {
					return nil, errInvalidConstantIndex(at, operand, len(program.Constants))
				}
				//
				operands.Push(numberValue(program.Constants[operand]))
			} else {
				operands.Push(numberValue(int64(operand)))
			}
		case opcode.IsComparison():
			if err := applyComparison(operands, at, opcode); err != nil {
				return nil, err
			}
		case opcode == bytecode.AND || opcode == bytecode.OR:
			if err := applyLogical(operands, at, opcode); err != nil {
				return nil, err
			}
		case opcode == bytecode.NOT:
			operand, ok := operands.TryPop()
			if !ok {
				return nil, errStackUnderflow(at, opcode)
			} else if !operand.isExpr {
				return nil, errTypeMismatch(at, opcode, "boolean sub-expression")
			}
			//
			operands.Push(exprValue(&expr.Negation{Operand: operand.tree}))
		default:
			return nil, errUnknownOpcode(at, code[at])
		}
	}
	// Exactly one expression must remain
	if operands.Len() != 1 {
		return nil, errInvalidTerminalStack(pc, operands.Len(), "expected a single result")
	}
	//
	if terminal := operands.Pop(); terminal.isExpr {
		return terminal.tree, nil
	}
	//
	return nil, errInvalidTerminalStack(pc, 1, "terminal value is a number, not an expression")
}

// DecompileHex is a convenience wrapper which decodes the transport-level hex
// encoding of a program before decompiling it.  The bare "0x" sentinel
// denotes "no filter" and short-circuits to a nil expression.
func DecompileHex(hexCode string, constants []int64) (expr.Expression, error) {
	code, err := bytecode.DecodeHex(hexCode)
	//
	if err != nil {
		return nil, err
	} else if len(code) == 0 {
		// No filter
		return nil, nil
	}
	//
	return Decompile(&bytecode.Program{Code: code, Constants: constants})
}

// readOperand decodes the big-endian u16 operand following a push opcode,
// checking bounds before reading and advancing the program counter past it.
func readOperand(code []byte, pc *uint, at uint, opcode bytecode.Opcode) (uint16, error) {
	if *pc+bytecode.OperandWidth > uint(len(code)) {
		return 0, errIncompleteOperand(at, opcode)
	}
	//
	operand := binary.BigEndian.Uint16(code[*pc:])
	*pc += bytecode.OperandWidth
	//
	return operand, nil
}

// applyComparison pops the value operand then the field reference (matching
// their emission order of field-then-value) and pushes the reconstructed
// comparison.
func applyComparison(operands *stack.Stack[value], at uint, opcode bytecode.Opcode) error {
	if operands.Len() < 2 {
		return errStackUnderflow(at, opcode)
	}
	//
	literal := operands.Pop()
	field := operands.Pop()
	//
	if literal.isExpr || field.isExpr {
		return errTypeMismatch(at, opcode, "numeric operands")
	}
	//
	operands.Push(exprValue(&expr.Comparison{
		Op:      comparisonOp(opcode),
		Field:   uint16(field.number),
		Literal: literal.number,
	}))
	//
	return nil
}

// applyLogical pops the right then left sub-expressions and pushes their
// reconstructed connective.
func applyLogical(operands *stack.Stack[value], at uint, opcode bytecode.Opcode) error {
	if operands.Len() < 2 {
		return errStackUnderflow(at, opcode)
	}
	//
	right := operands.Pop()
	left := operands.Pop()
	//
	if !right.isExpr || !left.isExpr {
		return errTypeMismatch(at, opcode, "boolean sub-expressions")
	}
	//
	var op = expr.AND
	if opcode == bytecode.OR {
		op = expr.OR
	}
	//
	operands.Push(exprValue(&expr.Logical{Op: op, Left: left.tree, Right: right.tree}))
	//
	return nil
}

func comparisonOp(opcode bytecode.Opcode) expr.ComparisonOp {
	switch opcode {
	case bytecode.GT:
		return expr.GT
	case bytecode.GE:
		return expr.GE
	case bytecode.LT:
		return expr.LT
	case bytecode.LE:
		return expr.LE
	case bytecode.EQ:
		return expr.EQ
	case bytecode.NE:
		return expr.NE
	}
	//
	panic("unreachable")
}
