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

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Program represents a compiled predicate: a straight-line postfix
// instruction sequence together with the constant pool its PUSH_CONST
// instructions index into.  Programs are created once by the compiler and
// treated as immutable, opaque artifacts thereafter.
type Program struct {
	// Code holds the raw instruction bytes.
	Code []byte
	// Constants holds the literal pool, referenced by dense u16 index.
	Constants []int64
}

// IsEmpty determines whether this is the empty program, which denotes "no
// filter" and must be short-circuited by callers rather than decompiled or
// executed.
func (p *Program) IsEmpty() bool {
	return len(p.Code) == 0
}

// Disassemble produces a listing of this program with one instruction per
// line, giving the program counter, mnemonic and (where present) operand.
// Constant-pool operands are resolved against the pool; out-of-range or
// truncated operands are marked rather than rejected, since the listing is a
// diagnostic aid rather than a validator.
func (p *Program) Disassemble() string {
	var (
		builder strings.Builder
		pc      int
	)
	//
	for pc < len(p.Code) {
		opcode := Opcode(p.Code[pc])
		fmt.Fprintf(&builder, "%04x:\t%s", pc, opcode.String())
		//
		pc++
		//
		if opcode.HasOperand() {
			if pc+OperandWidth > len(p.Code) {
				builder.WriteString("\t<truncated>")
				pc = len(p.Code)
			} else {
				operand := binary.BigEndian.Uint16(p.Code[pc:])
				pc += OperandWidth
				//
				if opcode == PUSH_CONST && int(operand) < len(p.Constants) {
					fmt.Fprintf(&builder, "\t%d\t; %d", operand, p.Constants[operand])
				} else {
					fmt.Fprintf(&builder, "\t%d", operand)
				}
			}
		}
		//
		builder.WriteString("\n")
	}
	//
	return builder.String()
}

func hexByte(b uint8) string {
	return fmt.Sprintf("0x%02x", b)
}
