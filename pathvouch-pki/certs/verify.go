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

package certs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/private/app/command"
	"github.com/pathvouch/pathvouch/private/trust"
)

func newVerifyCmd(pather command.Pather) *cobra.Command {
	var flags struct {
		root string
	}
	cmd := &cobra.Command{
		Use:   "verify [flags] <cert-file> [cert-file ...]",
		Short: "Verify hop certificates against the root",
		Example: fmt.Sprintf(`  %[1]s verify --root ca.pem hop.pem
  %[1]s verify --root ca.pem hops/*.pem`,
			pather.CommandPath(),
		),
		Long: `'verify' checks each provided hop certificate against the root
certificate: the signature must check out under the root public key and the
issuer must match the root subject.

All certificates are checked; the command fails if any of them does not
verify.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			root, err := loadSingleCert(flags.root)
			if err != nil {
				return err
			}
			var v trust.Validator
			var failures serrors.List
			for _, f := range args {
				cert, err := loadSingleCert(f)
				if err != nil {
					failures = append(failures, serrors.Wrap("loading", err, "file", f))
					continue
				}
				if res := v.Validate(cert, root); !res.Valid {
					failures = append(failures,
						serrors.New(res.Reason, "file", f))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Verified: %s\n", f)
			}
			if err := failures.ToError(); err != nil {
				return serrors.Wrap("verification failed", err,
					"failed", len(failures), "total", len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.root, "root", "", "Root certificate file (required)")
	cobra.CheckErr(cmd.MarkFlagRequired("root"))
	return cmd
}
