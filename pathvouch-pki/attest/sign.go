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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/attest"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pathvouch-pki/key"
	"github.com/pathvouch/pathvouch/private/app/command"
	"github.com/pathvouch/pathvouch/private/trust"
)

func newSignCmd(pather command.Pather) *cobra.Command {
	var flags struct {
		keys    string
		certs   string
		payload string
		out     string
	}
	cmd := &cobra.Command{
		Use:   "sign [flags] <path>",
		Short: "Sign a routing path hop by hop",
		Example: fmt.Sprintf(
			`  %[1]s sign --keys keys/ --certs certs/ "AS64496,AS64497,AS64498"`,
			pather.CommandPath(),
		),
		Long: `'sign' produces one detached signature per adjacent hop pair of the
provided path. Each hop signs with its own private key; segment s binds the
public key of hop s+1 and the signature of segment s-1, so the sequence is
chained.

The keys directory must contain one private key per hop, named <hop>.key
(e.g. AS64496.key). The certificates directory is used to reference the
signer certificates by serial number.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			path, err := parsePath(args[0])
			if err != nil {
				return err
			}
			bundle, _, err := trust.LoadCerts(flags.certs)
			if err != nil {
				return err
			}
			hops := make([]attest.Hop, 0, len(path))
			for _, as := range path {
				hopKey, err := key.LoadPrivateKey(
					filepath.Join(flags.keys, as.String()+".key"))
				if err != nil {
					return err
				}
				hops = append(hops, attest.Hop{
					ID:   as,
					Key:  hopKey,
					Cert: bundle.Hops[as],
				})
			}
			payload := func(from, to addr.AS) []byte {
				if flags.payload == "" {
					return nil
				}
				return fmt.Appendf(nil, "%s %s %s", flags.payload, from, to)
			}
			sigs, err := attest.BuildPath(hops, payload)
			if err != nil {
				return err
			}

			out, err := os.Create(flags.out)
			if err != nil {
				return serrors.Wrap("creating output", err, "file", flags.out)
			}
			defer out.Close()
			if err := attest.WriteAttestation(out, sigs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed %d segments: %s\n",
				len(sigs), flags.out)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.keys, "keys", "", "Directory with hop private keys (required)")
	cmd.Flags().StringVar(&flags.certs, "certs", "",
		"Directory with hop certificates (required)")
	cmd.Flags().StringVar(&flags.payload, "payload", "",
		"Payload prefix included in every segment")
	cmd.Flags().StringVar(&flags.out, "out", "attestation.json",
		"Output attestation file")
	cobra.CheckErr(cmd.MarkFlagRequired("keys"))
	cobra.CheckErr(cmd.MarkFlagRequired("certs"))
	return cmd
}
