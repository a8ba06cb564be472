// Copyright Consensys Software Inc.
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
	"encoding/json"
	"fmt"
	"os"

	"github.com/ClementWalter/sp1/pkg/asm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// compileCmd compiles the built-in demo circuit, printing either its assembly
// or the final machine program.
var compileCmd = &cobra.Command{
	Use:   "compile [flags]",
	Short: "compile the built-in demo circuit.",
	Long: `Compile the built-in demo circuit down to register machine
	assembly, printing either the block-structured assembly or the
	flat, address-resolved machine program.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		asmOnly := GetFlag(cmd, "asm")
		output := GetString(cmd, "output")
		// Compile the demo circuit
		compiler := asm.NewCompiler()
		compiler.Build(demoCircuit())
		//
		if asmOnly {
			fmt.Print(compiler.Code().String())
			return
		}
		//
		program := compiler.Compile()
		//
		if output == "" {
			fmt.Print(program.String())
		} else if err := writeProgram(program, output); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// writeProgram serialises the assembled program to a given file.
func writeProgram(program *asm.Program, filename string) error {
	bytes, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serialising program")
	}
	//
	if err := os.WriteFile(filename, bytes, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", filename)
	}
	//
	log.Debugf("wrote %d instructions to %s", len(program.Instructions), filename)
	//
	return nil
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("asm", false, "print block-structured assembly instead of machine code")
	compileCmd.Flags().StringP("output", "o", "", "write the assembled program (as JSON) to a given file")
}
