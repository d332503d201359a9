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
package cmd

import (
	"fmt"
	"net/http"

	"github.com/fhelabs/go-predicate/pkg/bytecode"
	"github.com/fhelabs/go-predicate/pkg/compiler"
	"github.com/fhelabs/go-predicate/pkg/decompiler"
	"github.com/fhelabs/go-predicate/pkg/expr"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags]",
	Short: "serve compile/decompile endpoints over HTTP.",
	Long: `Serve the compiler and decompiler as a small HTTP API, for UI
	 collaborators which assemble condition lists and display decompiled
	 filters.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}
		//
		port := GetUint(cmd, "port")
		router := gin.Default()
		//
		router.GET("/health", healthHandler)
		router.POST("/v1/compile", compileHandler)
		router.POST("/v1/decompile", decompileHandler)
		//
		log.Infof("listening on port %d", port)
		//
		if err := router.Run(fmt.Sprintf(":%d", port)); err != nil {
			log.Fatal(err)
		}
	},
}

// CompileRequest is the payload accepted by the compile endpoint: a flat
// condition list plus combination mode, as assembled by the UI.
type CompileRequest struct {
	Mode       string             `json:"mode"`
	Conditions []ConditionPayload `json:"conditions"`
}

// ConditionPayload is a single condition within a CompileRequest.
type ConditionPayload struct {
	Field   uint16 `json:"field"`
	Op      string `json:"op"`
	Literal int64  `json:"literal"`
	Negate  bool   `json:"negate"`
}

// DecompileRequest is the payload accepted by the decompile endpoint:
// hex-encoded bytecode plus its constant pool.
type DecompileRequest struct {
	Bytecode  string  `json:"bytecode"`
	Constants []int64 `json:"constants"`
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func compileHandler(c *gin.Context) {
	var req CompileRequest
	//
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	//
	tree, err := foldRequest(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Empty condition lists yield the empty-filter sentinel.
	if tree == nil {
		c.JSON(http.StatusOK, gin.H{"bytecode": bytecode.EmptySentinel, "constants": []int64{}})
		return
	}
	//
	program := compiler.Compile(tree)
	//
	c.JSON(http.StatusOK, gin.H{
		"bytecode":  bytecode.EncodeHex(program.Code),
		"constants": program.Constants,
	})
}

func decompileHandler(c *gin.Context) {
	var req DecompileRequest
	//
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	//
	tree, err := decompiler.DecompileHex(req.Bytecode, req.Constants)
	//
	switch {
	case err != nil:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case tree == nil:
		c.JSON(http.StatusOK, gin.H{"filter": ""})
	default:
		c.JSON(http.StatusOK, gin.H{"filter": expr.Render(tree)})
	}
}

func foldRequest(req *CompileRequest) (expr.Expression, error) {
	mode := expr.AND
	//
	if req.Mode != "" {
		var err error
		//
		if mode, err = expr.ParseLogicalOp(req.Mode); err != nil {
			return nil, err
		}
	}
	//
	conditions := make([]expr.Condition, len(req.Conditions))
	//
	for i, c := range req.Conditions {
		op, err := expr.ParseComparisonOp(c.Op)
		if err != nil {
			return nil, err
		}
		//
		conditions[i] = expr.Condition{Field: c.Field, Op: op, Literal: c.Literal, Negate: c.Negate}
	}
	//
	return expr.FromConditions(conditions, mode), nil
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().UintP("port", "p", 8080, "port to listen on.")
}
