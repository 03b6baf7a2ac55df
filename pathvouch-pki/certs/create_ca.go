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
	"time"

	"github.com/spf13/cobra"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
	"github.com/pathvouch/pathvouch/pathvouch-pki/conf"
	"github.com/pathvouch/pathvouch/pathvouch-pki/file"
	"github.com/pathvouch/pathvouch/pathvouch-pki/key"
	"github.com/pathvouch/pathvouch/private/app/command"
	"github.com/pathvouch/pathvouch/private/ca"
)

func newCreateCACmd(pather command.Pather) *cobra.Command {
	var flags struct {
		policy string
		caKey  string
		ledger string
		force  bool
	}
	cmd := &cobra.Command{
		Use:   "create-ca [flags] <cert-file>",
		Short: "Create a self-signed root certificate",
		Example: fmt.Sprintf(
			`  %[1]s create-ca --policy policy.toml --key ca.key ca.pem`,
			pather.CommandPath(),
		),
		Long: `'create-ca' establishes a certificate authority: it self-signs the root
certificate under the provided private key and records it in the issuance
ledger.

The policy file defines the authority's subject and the validity period. The
root certificate is written to <cert-file> in PEM encoding.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			policy, err := conf.LoadPolicy(flags.policy)
			if err != nil {
				return err
			}
			caKey, err := key.LoadPrivateKey(flags.caKey)
			if err != nil {
				return err
			}
			wantAlg, err := policy.KeyAlgorithm()
			if err != nil {
				return err
			}
			alg, err := signed.AlgorithmForKey(caKey.Public())
			if err != nil {
				return err
			}
			if alg != wantAlg {
				return serrors.New("private key does not match policy algorithm",
					"policy", wantAlg, "key", alg)
			}
			ledger, err := openLedger(flags.ledger)
			if err != nil {
				return serrors.Wrap("opening ledger", err)
			}
			defer ledger.Close()

			authority, err := ca.New(cmd.Context(), ca.Config{
				Subject:    policy.Subject,
				CommonName: policy.CommonName,
				Key:        caKey,
				Validity:   policy.Validity.Eval(time.Now().UTC()),
				Ledger:     ledger,
			})
			if err != nil {
				return err
			}
			raw := hoppki.EncodePEMCerts(authority.Cert())
			if err := file.WriteFile(args[0], raw, 0o644,
				file.WithForce(flags.force)); err != nil {
				return serrors.Wrap("writing certificate", err, "file", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Root certificate created: %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.policy, "policy", "", "Policy file (required)")
	cmd.Flags().StringVar(&flags.caKey, "key", "", "Root private key file (required)")
	cmd.Flags().StringVar(&flags.ledger, "ledger", "",
		"Issuance ledger database (default: in-memory)")
	cmd.Flags().BoolVar(&flags.force, "force", false,
		"Force overwriting existing certificate")
	cobra.CheckErr(cmd.MarkFlagRequired("policy"))
	cobra.CheckErr(cmd.MarkFlagRequired("key"))
	return cmd
}
