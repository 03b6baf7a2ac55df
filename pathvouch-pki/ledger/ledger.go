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

// Package ledger defines cobra commands to inspect the issuance ledger.
package ledger

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/private/app/command"
	"github.com/pathvouch/pathvouch/private/storage/ledgerdb"
	"github.com/pathvouch/pathvouch/private/storage/ledgerdb/sqlite"
)

// Cmd creates a new cobra command to inspect the issuance ledger.
func Cmd(pather command.Pather) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect the issuance ledger",
	}
	joined := command.Join(pather, cmd)

	cmd.AddCommand(
		newListCmd(joined),
	)
	return cmd
}

func newListCmd(pather command.Pather) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <ledger-db>",
		Short: "List all recorded issuances",
		Example: fmt.Sprintf(`  %[1]s list ledger.db`,
			pather.CommandPath(),
		),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			db, err := sqlite.New(args[0])
			if err != nil {
				return serrors.Wrap("opening ledger", err, "file", args[0])
			}
			defer db.Close()

			entries, err := db.Entries(cmd.Context())
			if err != nil {
				return err
			}
			writeEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	return cmd
}

// writeEntries renders the ledger entries. On a terminal it draws a table;
// otherwise it emits plain tab separated lines.
func writeEntries(w io.Writer, entries []ledgerdb.Entry) {
	const timeFmt = "2006-01-02 15:04:05"
	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		for _, entry := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				entry.Serial, entry.Subject,
				entry.Validity.NotBefore.Format(timeFmt),
				entry.Validity.NotAfter.Format(timeFmt))
		}
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Serial", "Subject", "Not Before", "Not After"})
	for _, entry := range entries {
		table.Append([]string{
			strconv.FormatUint(entry.Serial, 10),
			entry.Subject.String(),
			entry.Validity.NotBefore.Format(timeFmt),
			entry.Validity.NotAfter.Format(timeFmt),
		})
	}
	table.Render()
}
