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
	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
	"github.com/pathvouch/pathvouch/private/app/command"
)

func newValidateCmd(pather command.Pather) *cobra.Command {
	var flags struct {
		certType string
	}
	cmd := &cobra.Command{
		Use:   "validate [flags] <cert-file>",
		Short: "Validate a certificate structurally",
		Example: fmt.Sprintf(`  %[1]s validate --type hop hop.pem
  %[1]s validate --type any ca.pem`,
			pather.CommandPath(),
		),
		Long: `'validate' checks that a certificate is structurally correct: the hop
identity is present in the subject, the validity period is well-formed, and
the key algorithm is supported.

This check is local to the certificate. To check the signature against the
issuing root, use the 'verify' command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cert, err := loadSingleCert(args[0])
			if err != nil {
				return err
			}
			ct, err := hoppki.ValidateCert(cert)
			if err != nil {
				return err
			}
			switch flags.certType {
			case "any":
			case "hop":
				if ct != hoppki.Hop {
					return serrors.New("not a hop certificate", "type", ct)
				}
			case "root":
				if ct != hoppki.Root {
					return serrors.New("not a root certificate", "type", ct)
				}
			default:
				return serrors.New("unknown certificate type", "type", flags.certType)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Valid %s certificate: %s\n", ct, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.certType, "type", "any",
		"Expected certificate type (any|hop|root)")
	return cmd
}
