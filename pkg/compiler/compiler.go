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
package compiler

import (
	"encoding/binary"
	"fmt"

	"github.com/fhelabs/go-predicate/pkg/bytecode"
	"github.com/fhelabs/go-predicate/pkg/expr"
	log "github.com/sirupsen/logrus"
)

// Compile translates a well-formed expression tree into a straight-line
// bytecode program by a post-order walk, interning literals into the constant
// pool as it goes.  For any well-formed tree the resulting program leaves
// exactly one boolean value on the stack of a conforming evaluator; this
// guarantee underpins the decompiler's validation contract.
//
// Compilation has no error path: a nil or otherwise malformed expression is a
// caller contract violation (the empty filter must be special-cased upstream)
// and results in a panic.
func Compile(expression expr.Expression) *bytecode.Program {
	if expression == nil {
		panic("cannot compile empty filter")
	}
	//
	c := &compiler{}
	c.compile(expression)
	//
	log.Debugf("compiled predicate into %d bytes / %d constants", len(c.code), len(c.constants))
	//
	return &bytecode.Program{Code: c.code, Constants: c.constants}
}

// compiler accumulates instruction bytes and the constant pool during a
// single compilation.
type compiler struct {
	code      []byte
	constants []int64
}

func (p *compiler) compile(expression expr.Expression) {
	switch e := expression.(type) {
	case *expr.Comparison:
		p.compileComparison(e)
	case *expr.Logical:
		p.compile(e.Left)
		p.compile(e.Right)
		p.emit(logicalOpcode(e.Op))
	case *expr.Negation:
		p.compile(e.Operand)
		p.emit(bytecode.NOT)
	default:
		panic(fmt.Sprintf("unknown expression (%v)", expression))
	}
}

func (p *compiler) compileComparison(e *expr.Comparison) {
	index := p.internConstant(e.Literal)
	// Field reference first, then value (hence the value sits on top of the
	// stack when the comparison executes).
	p.emitWithOperand(bytecode.PUSH_FIELD, e.Field)
	p.emitWithOperand(bytecode.PUSH_CONST, index)
	p.emit(comparisonOpcode(e.Op))
}

// internConstant returns the pool index for a given literal, reusing an
// existing entry when one matches exactly and appending otherwise.  Interning
// is order preserving, hence compilation is deterministic.
func (p *compiler) internConstant(literal int64) uint16 {
	for i, c := range p.constants {
		if c == literal {
			return uint16(i)
		}
	}
	//
	p.constants = append(p.constants, literal)
	//
	return uint16(len(p.constants) - 1)
}

func (p *compiler) emit(opcode bytecode.Opcode) {
	p.code = append(p.code, byte(opcode))
	//
	log.Tracef("emit %s", opcode)
}

func (p *compiler) emitWithOperand(opcode bytecode.Opcode, operand uint16) {
	var operandBytes [2]byte
	//
	binary.BigEndian.PutUint16(operandBytes[:], operand)
	p.code = append(p.code, byte(opcode), operandBytes[0], operandBytes[1])
	//
	log.Tracef("emit %s %d", opcode, operand)
}

func comparisonOpcode(op expr.ComparisonOp) bytecode.Opcode {
	switch op {
	case expr.GT:
		return bytecode.GT
	case expr.GE:
		return bytecode.GE
	case expr.LT:
		return bytecode.LT
	case expr.LE:
		return bytecode.LE
	case expr.EQ:
		return bytecode.EQ
	case expr.NE:
		return bytecode.NE
	}
	//
	panic(fmt.Sprintf("unknown comparison operator (%d)", op))
}

func logicalOpcode(op expr.LogicalOp) bytecode.Opcode {
	switch op {
	case expr.AND:
		return bytecode.AND
	case expr.OR:
		return bytecode.OR
	}
	//
	panic(fmt.Sprintf("unknown logical operator (%d)", op))
}
