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

// Package attest defines cobra commands to sign and verify routing path
// attestations.
package attest

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/private/app/command"
)

// Cmd creates a new cobra command to manage path attestations.
func Cmd(pather command.Pather) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attestation",
		Aliases: []string{"attest"},
		Short:   "Sign and verify routing path attestations",
	}
	joined := command.Join(pather, cmd)

	cmd.AddCommand(
		newSignCmd(joined),
		newVerifyCmd(joined),
	)
	return cmd
}

// parsePath parses a comma separated hop sequence, e.g.
// "AS64496,AS64497,AS64498".
func parsePath(s string) ([]addr.AS, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return nil, serrors.New("path needs at least two hops", "path", s)
	}
	hops := make([]addr.AS, 0, len(parts))
	for _, part := range parts {
		as, err := addr.ParseAS(strings.TrimSpace(part))
		if err != nil {
			return nil, serrors.Wrap("parsing hop", err, "hop", part)
		}
		hops = append(hops, as)
	}
	return hops, nil
}
