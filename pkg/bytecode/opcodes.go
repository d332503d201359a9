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
package bytecode

// Opcode represents a single-byte instruction code within a predicate
// program.  Push opcodes carry one big-endian u16 operand; all others carry
// none.
type Opcode uint8

const (
	// PUSH_FIELD pushes a reference to an indexed field onto the stack.  Its
	// operand gives the field index.
	PUSH_FIELD Opcode = 0x01
	// PUSH_CONST pushes a literal value onto the stack.  Its operand indexes
	// into the constant pool travelling alongside the bytecode.
	PUSH_CONST Opcode = 0x02
	// GT pops a value and a field reference, pushing their strict greater-than
	// comparison.
	GT Opcode = 0x10
	// GE pops a value and a field reference, pushing their greater-or-equal
	// comparison.
	GE Opcode = 0x11
	// LT pops a value and a field reference, pushing their strict less-than
	// comparison.
	LT Opcode = 0x12
	// LE pops a value and a field reference, pushing their less-or-equal
	// comparison.
	LE Opcode = 0x13
	// EQ pops a value and a field reference, pushing their equality
	// comparison.
	EQ Opcode = 0x14
	// NE pops a value and a field reference, pushing their disequality
	// comparison.
	NE Opcode = 0x15
	// AND pops two boolean sub-expressions, pushing their conjunction.
	AND Opcode = 0x20
	// OR pops two boolean sub-expressions, pushing their disjunction.
	OR Opcode = 0x21
	// NOT pops one boolean sub-expression, pushing its negation.
	NOT Opcode = 0x22
)

// OperandWidth bytes follow every push opcode; remaining opcodes are bare.
const OperandWidth = 2

// IsValid determines whether this byte corresponds with a defined opcode.
func (p Opcode) IsValid() bool {
	switch p {
	case PUSH_FIELD, PUSH_CONST, GT, GE, LT, LE, EQ, NE, AND, OR, NOT:
		return true
	}
	//
	return false
}

// HasOperand determines whether this opcode is followed by a u16 operand in
// the instruction stream.
func (p Opcode) HasOperand() bool {
	return p == PUSH_FIELD || p == PUSH_CONST
}

// IsComparison determines whether this opcode is one of the six comparison
// operators.
func (p Opcode) IsComparison() bool {
	return p >= GT && p <= NE
}

// String returns the mnemonic for this opcode, or a hex rendering for
// undefined bytes.
func (p Opcode) String() string {
	switch p {
	case PUSH_FIELD:
		return "PUSH_FIELD"
	case PUSH_CONST:
		return "PUSH_CONST"
	case GT:
		return "GT"
	case GE:
		return "GE"
	case LT:
		return "LT"
	case LE:
		return "LE"
	case EQ:
		return "EQ"
	case NE:
		return "NE"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case NOT:
		return "NOT"
	}
	//
	return hexByte(uint8(p))
}
