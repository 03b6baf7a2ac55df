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

package key

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
	"github.com/pathvouch/pathvouch/pathvouch-pki/file"
	"github.com/pathvouch/pathvouch/private/app/command"
)

func newPrivateCmd(pather command.Pather) *cobra.Command {
	var flags struct {
		algorithm string
		force     bool
	}
	cmd := &cobra.Command{
		Use:   "private [flags] <private-key-file>",
		Short: "Generate private key at the specified location",
		Example: fmt.Sprintf(`  %[1]s private hop.key
  %[1]s private --algorithm ecdsa-p256 hop.key`,
			pather.CommandPath(),
		),
		Long: `'private' generates a PEM encoded private key at the specified location.

The contents are the private key in PKCS #8 ASN.1 DER format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			alg, err := signed.ParseAlgorithm(flags.algorithm)
			if err != nil {
				return serrors.Wrap("parsing algorithm", err)
			}
			key, err := signed.GenerateKey(alg)
			if err != nil {
				return err
			}
			raw, err := signed.EncodePEMPrivateKey(key)
			if err != nil {
				return serrors.Wrap("encoding private key", err)
			}
			if err := file.WriteFile(args[0], raw, 0o600,
				file.WithForce(flags.force)); err != nil {
				return serrors.Wrap("writing private key", err, "file", args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.algorithm, "algorithm", "ed25519",
		"The algorithm to use (ed25519|ecdsa-p256)")
	cmd.Flags().BoolVar(&flags.force, "force", false,
		"Force overwriting existing private key",
	)
	return cmd
}
