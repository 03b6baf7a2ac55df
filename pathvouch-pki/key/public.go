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

func newPublicCmd(pather command.Pather) *cobra.Command {
	var flags struct {
		out   string
		force bool
	}
	cmd := &cobra.Command{
		Use:   "public [flags] <private-key-file>",
		Short: "Generate public key for the provided private key",
		Example: fmt.Sprintf(`  %[1]s public hop.key
  %[1]s public hop.key --out hop.pub`,
			pather.CommandPath(),
		),
		Long: `'public' generates a PEM encoded public key for the provided private key.

By default, the public key is written to standard out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			key, err := LoadPrivateKey(args[0])
			if err != nil {
				return err
			}
			raw, err := signed.EncodePEMPublicKey(key.Public())
			if err != nil {
				return serrors.Wrap("encoding public key", err)
			}
			if flags.out == "" {
				fmt.Fprint(cmd.OutOrStdout(), string(raw))
				return nil
			}
			if err := file.WriteFile(flags.out, raw, 0o644,
				file.WithForce(flags.force)); err != nil {
				return serrors.Wrap("writing public key", err, "file", flags.out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.out, "out", "",
		"Path to write public key (default: standard out)")
	cmd.Flags().BoolVar(&flags.force, "force", false,
		"Force overwriting existing public key",
	)
	return cmd
}
