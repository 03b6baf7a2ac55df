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

// Package demo generates a complete attestation scenario: a certificate
// authority, a router plus fifteen hops with certificates, a signed path,
// and the full verification sweep over it.
package demo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/attest"
	"github.com/pathvouch/pathvouch/pkg/log"
	"github.com/pathvouch/pathvouch/pkg/metrics"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
	"github.com/pathvouch/pathvouch/pkg/scrypto/signed"
	"github.com/pathvouch/pathvouch/pathvouch-pki/file"
	"github.com/pathvouch/pathvouch/private/app/command"
	"github.com/pathvouch/pathvouch/private/ca"
	"github.com/pathvouch/pathvouch/private/storage/ledgerdb/sqlite"
	"github.com/pathvouch/pathvouch/private/trust"
)

const (
	// caSubject is the authority's own identity.
	caSubject addr.AS = 65534
	// firstHop is the identity of the first hop; the scenario uses the
	// documentation range 64496-64511 for the router and the hops behind it.
	firstHop addr.AS = 64496
	// hopCount is the number of hops on the path, router included.
	hopCount = 16
)

// Cmd creates a new cobra command that generates the demo scenario.
func Cmd(pather command.Pather) *cobra.Command {
	var flags struct {
		out string
	}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate a full attestation scenario",
		Example: fmt.Sprintf(`  %[1]s demo --out demo/`,
			pather.CommandPath(),
		),
		Long: `'demo' materializes a complete scenario in the output directory: a root
certificate authority, sixteen hop certificates recorded in a sqlite ledger,
fifteen chained segment signatures over the path, and the verification sweep
over all of it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return Run(cmd.Context(), flags.out)
		},
	}
	cmd.Flags().StringVar(&flags.out, "out", "demo", "Output directory")
	return cmd
}

// Run generates the scenario in the out directory and verifies it end to
// end.
func Run(ctx context.Context, out string) error {
	logger := log.FromCtx(ctx)
	for _, dir := range []string{out, filepath.Join(out, "keys"), filepath.Join(out, "certs")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return serrors.Wrap("creating output directory", err, "dir", dir)
		}
	}

	certsIssued := metrics.NewPromCounter(prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathvouch_demo_certificates_issued_total",
			Help: "Total number of issued certificates.",
		}, []string{},
	))
	segmentsVerified := metrics.NewPromCounter(prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathvouch_demo_segments_verified_total",
			Help: "Total number of verified segments.",
		}, []string{"result"},
	))

	// Authority.
	ledger, err := sqlite.New(filepath.Join(out, "ledger.db"))
	if err != nil {
		return serrors.Wrap("opening ledger", err)
	}
	defer ledger.Close()

	caKey, err := signed.GenerateKey(signed.Ed25519)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	authority, err := ca.New(ctx, ca.Config{
		Subject:     caSubject,
		Key:         caKey,
		Validity:    hoppki.Validity{NotBefore: now, NotAfter: now.AddDate(0, 0, 3)},
		Ledger:      ledger,
		CertsIssued: certsIssued,
	})
	if err != nil {
		return err
	}
	if err := writePEM(filepath.Join(out, "certs", "root.pem"),
		hoppki.EncodePEMCerts(authority.Cert())); err != nil {
		return err
	}
	logger.Info("Authority established", "subject", caSubject)

	// Hop certificates.
	hops := make([]attest.Hop, 0, hopCount)
	var issuer ca.Issuer
	for i := 0; i < hopCount; i++ {
		id := firstHop + addr.AS(i)
		hopKey, hopCert, err := issuer.RequestAndIssue(ctx, authority, id)
		if err != nil {
			return err
		}
		rawKey, err := signed.EncodePEMPrivateKey(hopKey)
		if err != nil {
			return err
		}
		if err := writePEM(filepath.Join(out, "keys", id.String()+".key"), rawKey); err != nil {
			return err
		}
		if err := writePEM(filepath.Join(out, "certs", id.String()+".pem"),
			hoppki.EncodePEMCerts(hopCert)); err != nil {
			return err
		}
		hops = append(hops, attest.Hop{ID: id, Key: hopKey, Cert: hopCert})
	}
	logger.Info("Hop certificates issued", "count", hopCount)

	// Path signatures.
	sigs, err := attest.BuildPath(hops, func(from, to addr.AS) []byte {
		return fmt.Appendf(nil, "%s vouches for %s", from, to)
	})
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(out, "attestation.json"))
	if err != nil {
		return serrors.Wrap("creating attestation", err)
	}
	defer f.Close()
	if err := attest.WriteAttestation(f, sigs); err != nil {
		return err
	}
	logger.Info("Path signed", "segments", len(sigs))

	// Verification sweep, from the materialized files.
	bundle, loadRes, err := trust.LoadCerts(filepath.Join(out, "certs"))
	if err != nil {
		return err
	}
	if len(loadRes.Ignored) != 0 {
		return serrors.New("unexpected ignored certificates", "ignored", loadRes.Ignored)
	}
	var validator trust.Validator
	for as, cert := range bundle.Hops {
		if res := validator.Validate(cert, bundle.Root); !res.Valid {
			return serrors.New("hop certificate invalid", "hop", as, "reason", res.Reason)
		}
	}
	verifier := attest.Verifier{Workers: 4, SegmentsVerified: segmentsVerified}
	report, err := verifier.VerifyPath(ctx, sigs, bundle.Hops)
	if err != nil {
		return err
	}
	if !report.Valid() {
		return serrors.New("attestation invalid", "failed", len(report.Failed()))
	}
	logger.Info("Attestation verified", "segments", len(report.Results))
	return nil
}

func writePEM(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if filepath.Ext(path) == ".key" {
		perm = 0o600
	}
	if err := file.WriteFile(path, data, perm, file.WithForce(true)); err != nil {
		return serrors.Wrap("writing file", err, "file", path)
	}
	return nil
}
