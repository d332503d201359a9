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
	"fmt"
	"strings"
)

// Render produces a human-readable, indented rendering of a given expression.
// Nesting increases the indentation by one level per step.  The result is
// purely presentational and is never re-parsed.
func Render(expression Expression) string {
	var builder strings.Builder
	//
	renderAt(&builder, expression, 0)
	//
	return builder.String()
}

func renderAt(builder *strings.Builder, expression Expression, indent uint) {
	prefix := strings.Repeat("\t", int(indent))
	//
	switch e := expression.(type) {
	case *Comparison:
		fmt.Fprintf(builder, "%sfield[%d] %s %d", prefix, e.Field, e.Op.Symbol(), e.Literal)
	case *Logical:
		fmt.Fprintf(builder, "%s(\n", prefix)
		renderAt(builder, e.Left, indent+1)
		fmt.Fprintf(builder, "\n%s%s\n", prefix, e.Op.String())
		renderAt(builder, e.Right, indent+1)
		fmt.Fprintf(builder, "\n%s)", prefix)
	case *Negation:
		fmt.Fprintf(builder, "%sNOT (\n", prefix)
		renderAt(builder, e.Operand, indent+1)
		fmt.Fprintf(builder, "\n%s)", prefix)
	default:
		panic(fmt.Sprintf("unknown expression (%v)", expression))
	}
}
