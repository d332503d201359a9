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
	"fmt"

	"github.com/fhelabs/go-predicate/pkg/bytecode"
)

// ErrorKind enumerates the closed set of ways in which a byte sequence can
// fail validation.  Every rejection carries exactly one of these kinds; no
// other failure modes exist.
type ErrorKind uint8

const (
	// UnknownOpcode indicates a byte with no defined instruction.
	UnknownOpcode ErrorKind = iota
	// IncompleteOperand indicates the buffer ended before a required two-byte
	// operand was fully present.
	IncompleteOperand
	// InvalidConstantIndex indicates a PUSH_CONST referencing outside the
	// constant pool.
	InvalidConstantIndex
	// StackUnderflow indicates an opcode executed with fewer operands on the
	// stack than it requires.
	StackUnderflow
	// TypeMismatch indicates an operand whose tag (number versus expression)
	// does not match what the opcode requires.
	TypeMismatch
	// InvalidTerminalStack indicates that, after full consumption of the
	// buffer, the stack depth was not exactly one, or the sole remaining
	// entry was a bare number rather than an expression.
	InvalidTerminalStack
)

func (p ErrorKind) String() string {
	switch p {
	case UnknownOpcode:
		return "unknown opcode"
	case IncompleteOperand:
		return "incomplete operand"
	case InvalidConstantIndex:
		return "invalid constant index"
	case StackUnderflow:
		return "stack underflow"
	case TypeMismatch:
		return "type mismatch"
	case InvalidTerminalStack:
		return "invalid terminal stack"
	}
	//
	panic(fmt.Sprintf("unknown error kind (%d)", p))
}

// Error provides structural information about a rejected byte sequence,
// pinpointing both the kind of violation and where it arose.
type Error struct {
	// Kind of violation encountered.
	Kind ErrorKind
	// Pc gives the byte offset of the offending instruction.
	Pc uint
	// Opcode being executed when the violation arose (where applicable).
	Opcode bytecode.Opcode
	// Detail carries kind-specific diagnostic text.
	Detail string
}

func (p *Error) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s at offset %d: %s", p.Kind, p.Pc, p.Detail)
	}
	//
	return fmt.Sprintf("%s at offset %d", p.Kind, p.Pc)
}

// Is allows matching against a bare kind via errors.Is, using an Error with
// matching Kind as target.
func (p *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return p.Kind == t.Kind
	}
	//
	return false
}

func errUnknownOpcode(pc uint, opcode byte) error {
	return &Error{UnknownOpcode, pc, bytecode.Opcode(opcode),
		fmt.Sprintf("byte 0x%02x is not an instruction", opcode)}
}

func errIncompleteOperand(pc uint, opcode bytecode.Opcode) error {
	return &Error{IncompleteOperand, pc, opcode,
		fmt.Sprintf("%s requires a 2 byte operand", opcode)}
}

func errInvalidConstantIndex(pc uint, index uint16, poolSize int) error {
	return &Error{InvalidConstantIndex, pc, bytecode.PUSH_CONST,
		fmt.Sprintf("index %d exceeds pool of %d", index, poolSize)}
}

func errStackUnderflow(pc uint, opcode bytecode.Opcode) error {
	return &Error{StackUnderflow, pc, opcode, ""}
}

func errTypeMismatch(pc uint, opcode bytecode.Opcode, expected string) error {
	return &Error{TypeMismatch, pc, opcode, fmt.Sprintf("expected %s", expected)}
}

func errInvalidTerminalStack(pc uint, depth uint, detail string) error {
	return &Error{InvalidTerminalStack, pc, 0,
		fmt.Sprintf("depth %d: %s", depth, detail)}
}
