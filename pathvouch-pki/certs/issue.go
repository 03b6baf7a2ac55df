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

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
	"github.com/pathvouch/pathvouch/pathvouch-pki/file"
	"github.com/pathvouch/pathvouch/pathvouch-pki/key"
	"github.com/pathvouch/pathvouch/private/app/command"
	"github.com/pathvouch/pathvouch/private/ca"
)

func newIssueCmd(pather command.Pather) *cobra.Command {
	var flags struct {
		caCert    string
		caKey     string
		subject   string
		algorithm string
		ledger    string
		force     bool
	}
	cmd := &cobra.Command{
		Use:   "issue [flags] <cert-file> <key-file>",
		Short: "Issue a hop certificate",
		Example: fmt.Sprintf(
			`  %[1]s issue --ca ca.pem --ca-key ca.key --subject AS64496 hop.pem hop.key`,
			pather.CommandPath(),
		),
		Long: `'issue' generates a fresh key pair for the subject, requests a hop
certificate from the authority and writes both to disk.

The certificate is written to <cert-file> and the private key to <key-file>,
both in PEM encoding. The serial number continues from the highest serial
recorded in the ledger.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			subject, err := addr.ParseAS(flags.subject)
			if err != nil {
				return serrors.Wrap("parsing subject", err)
			}
			alg, err := signed.ParseAlgorithm(flags.algorithm)
			if err != nil {
				return serrors.Wrap("parsing algorithm", err)
			}
			caKey, err := key.LoadPrivateKey(flags.caKey)
			if err != nil {
				return err
			}
			caCert, err := loadSingleCert(flags.caCert)
			if err != nil {
				return err
			}
			ledger, err := openLedger(flags.ledger)
			if err != nil {
				return serrors.Wrap("opening ledger", err)
			}
			defer ledger.Close()

			authority, err := ca.FromMaterial(cmd.Context(), caKey, caCert, ca.Config{
				Ledger: ledger,
			})
			if err != nil {
				return err
			}
			issuer := ca.Issuer{Algorithm: alg}
			hopKey, hopCert, err := issuer.RequestAndIssue(cmd.Context(), authority, subject)
			if err != nil {
				return err
			}

			rawKey, err := signed.EncodePEMPrivateKey(hopKey)
			if err != nil {
				return serrors.Wrap("encoding private key", err)
			}
			if err := file.WriteFile(args[1], rawKey, 0o600,
				file.WithForce(flags.force)); err != nil {
				return serrors.Wrap("writing private key", err, "file", args[1])
			}
			if err := file.WriteFile(args[0], hoppki.EncodePEMCerts(hopCert), 0o644,
				file.WithForce(flags.force)); err != nil {
				return serrors.Wrap("writing certificate", err, "file", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Certificate issued: %s (serial %d)\n",
				args[0], hopCert.SerialNumber)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.caCert, "ca", "", "Root certificate file (required)")
	cmd.Flags().StringVar(&flags.caKey, "ca-key", "", "Root private key file (required)")
	cmd.Flags().StringVar(&flags.subject, "subject", "", "Subject hop, e.g. AS64496 (required)")
	cmd.Flags().StringVar(&flags.algorithm, "algorithm", "ed25519",
		"The algorithm to use (ed25519|ecdsa-p256)")
	cmd.Flags().StringVar(&flags.ledger, "ledger", "",
		"Issuance ledger database (default: in-memory)")
	cmd.Flags().BoolVar(&flags.force, "force", false,
		"Force overwriting existing files")
	cobra.CheckErr(cmd.MarkFlagRequired("ca"))
	cobra.CheckErr(cmd.MarkFlagRequired("ca-key"))
	cobra.CheckErr(cmd.MarkFlagRequired("subject"))
	return cmd
}
