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

package attest

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pathvouch/pathvouch/pkg/attest"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/private/app/command"
	"github.com/pathvouch/pathvouch/private/trust"
)

func newVerifyCmd(pather command.Pather) *cobra.Command {
	var flags struct {
		certs   string
		workers int
	}
	cmd := &cobra.Command{
		Use:   "verify [flags] <attestation-file>",
		Short: "Verify a recorded path attestation",
		Example: fmt.Sprintf(`  %[1]s verify --certs certs/ attestation.json`,
			pather.CommandPath(),
		),
		Long: `'verify' replays the verification of a recorded attestation: every hop
certificate is validated against the root, and every segment signature is
checked together with its chaining digests. All segments are checked; the
sweep does not stop at the first failure.

The certificates directory must contain the root certificate and one
certificate per hop on the path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			in, err := os.Open(args[0])
			if err != nil {
				return serrors.Wrap("opening attestation", err, "file", args[0])
			}
			defer in.Close()
			sigs, err := attest.ReadAttestation(in)
			if err != nil {
				return err
			}
			bundle, _, err := trust.LoadCerts(flags.certs)
			if err != nil {
				return err
			}
			if bundle.Root == nil {
				return serrors.New("no root certificate found", "dir", flags.certs)
			}

			var validator trust.Validator
			var chainFailures serrors.List
			for as, cert := range bundle.Hops {
				if res := validator.Validate(cert, bundle.Root); !res.Valid {
					chainFailures = append(chainFailures,
						serrors.New(res.Reason, "hop", as))
				}
			}
			if err := chainFailures.ToError(); err != nil {
				return serrors.Wrap("validating hop certificates", err)
			}

			verifier := attest.Verifier{Workers: flags.workers}
			report, err := verifier.VerifyPath(cmd.Context(), sigs, bundle.Hops)
			if err != nil {
				return err
			}
			writeReport(cmd.OutOrStdout(), report)
			if !report.Valid() {
				return serrors.New("attestation invalid",
					"failed", len(report.Failed()), "segments", len(report.Results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.certs, "certs", "",
		"Directory with root and hop certificates (required)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0,
		"Number of segments to verify concurrently (0: sequential)")
	cobra.CheckErr(cmd.MarkFlagRequired("certs"))
	return cmd
}

// writeReport renders the per-segment results. On a terminal it draws a
// table; otherwise it emits plain tab separated lines.
func writeReport(w io.Writer, report attest.Report) {
	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		for _, res := range report.Results {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				res.Ordinal, res.Signer, status(res.Valid), res.Reason())
		}
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Segment", "Signer", "Status", "Reason"})
	for _, res := range report.Results {
		table.Append([]string{
			strconv.Itoa(res.Ordinal),
			res.Signer.String(),
			status(res.Valid),
			res.Reason(),
		})
	}
	table.Render()
}

func status(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}
