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

// Package key defines cobra commands to manage private and public keys.
package key

import (
	"crypto"
	"os"

	"github.com/spf13/cobra"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
	"github.com/pathvouch/pathvouch/private/app/command"
)

// Cmd creates a new cobra command to manage keys.
func Cmd(pather command.Pather) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage private and public keys",
	}
	joined := command.Join(pather, cmd)

	cmd.AddCommand(
		newPrivateCmd(joined),
		newPublicCmd(joined),
	)
	return cmd
}

// LoadPrivateKey reads and decodes a PEM encoded private key from file.
func LoadPrivateKey(filename string) (crypto.Signer, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, serrors.Wrap("reading private key", err, "file", filename)
	}
	key, err := signed.DecodePEMPrivateKey(raw)
	if err != nil {
		return nil, serrors.Wrap("decoding private key", err, "file", filename)
	}
	return key, nil
}
