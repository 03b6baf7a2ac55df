// Copyright 2026 Pathvouch Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pathvouch/pathvouch/pkg/log"
	"github.com/pathvouch/pathvouch/pathvouch-pki/attest"
	"github.com/pathvouch/pathvouch/pathvouch-pki/certs"
	"github.com/pathvouch/pathvouch/pathvouch-pki/demo"
	"github.com/pathvouch/pathvouch/pathvouch-pki/key"
	"github.com/pathvouch/pathvouch/pathvouch-pki/ledger"
	"github.com/pathvouch/pathvouch/private/app/command"
)

func main() {
	defer log.HandlePanic()

	var logCfg log.Config
	executable := filepath.Base(os.Args[0])
	cmd := &cobra.Command{
		Use:   executable,
		Short: "Pathvouch PKI Management Tool",
		Args:  cobra.NoArgs,
		// Silence the errors, since we print them in main. Otherwise, cobra
		// will print any non-nil errors returned by a RunE function.
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.Setup(logCfg); err != nil {
				return err
			}
			cmd.SetContext(log.CtxWith(cmd.Context(), log.Root()))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logCfg.Level, "log.level", "info",
		"Console logging level verbosity (debug|info|error)")
	cmd.PersistentFlags().StringVar(&logCfg.Format, "log.format", "human",
		"Log format (human|json)")

	cmd.AddCommand(
		command.NewCompletion(cmd),
		command.NewGendocs(cmd),
		key.Cmd(cmd),
		certs.Cmd(cmd),
		attest.Cmd(cmd),
		ledger.Cmd(cmd),
		demo.Cmd(cmd),
	)

	err := cmd.Execute()
	log.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
