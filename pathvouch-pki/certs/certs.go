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

// Package certs defines cobra commands to create, issue and validate hop
// certificates.
package certs

import (
	"crypto/x509"

	"github.com/spf13/cobra"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
	"github.com/pathvouch/pathvouch/private/app/command"
	"github.com/pathvouch/pathvouch/private/storage/ledgerdb"
	"github.com/pathvouch/pathvouch/private/storage/ledgerdb/sqlite"
)

// Cmd creates a new cobra command to manage certificates.
func Cmd(pather command.Pather) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "certificate",
		Aliases: []string{"certs", "cert"},
		Short:   "Manage hop certificates",
	}
	joined := command.Join(pather, cmd)

	cmd.AddCommand(
		newCreateCACmd(joined),
		newIssueCmd(joined),
		newValidateCmd(joined),
		newVerifyCmd(joined),
	)
	return cmd
}

// loadSingleCert reads a PEM file that must hold exactly one certificate.
func loadSingleCert(filename string) (*x509.Certificate, error) {
	certs, err := hoppki.ReadPEMCerts(filename)
	if err != nil {
		return nil, err
	}
	if len(certs) != 1 {
		return nil, serrors.New("expected a single certificate",
			"file", filename, "count", len(certs))
	}
	return certs[0], nil
}

// openLedger opens the sqlite ledger at path, or an in-memory ledger if path
// is empty.
func openLedger(path string) (ledgerdb.DB, error) {
	if path == "" {
		return &ledgerdb.Memory{}, nil
	}
	return sqlite.New(path)
}
