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

package trust

import (
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pathvouch/pathvouch/pkg/addr"
	"github.com/pathvouch/pathvouch/pkg/private/serrors"
	"github.com/pathvouch/pathvouch/pkg/scrypto/hoppki"
)

var (
	// ErrAlreadyExists indicates a file is ignored because a certificate for
	// the same subject has already been loaded.
	ErrAlreadyExists = serrors.New("already exists")
	// ErrOutsideValidity indicates a file is ignored because the current
	// time is outside of the certificate's validity period.
	ErrOutsideValidity = serrors.New("outside validity")
)

// LoadResult indicates which files were loaded and which were ignored.
type LoadResult struct {
	Loaded  []string
	Ignored map[string]error
}

// Bundle is the certificate material loaded from a directory.
type Bundle struct {
	// Root is the authority's root certificate, if the directory contains
	// one.
	Root *x509.Certificate
	// Hops maps hop identities to their certificates.
	Hops map[addr.AS]*x509.Certificate
}

// LoadCerts loads all *.pem files located in a directory. Each file must
// contain a single certificate; root and hop certificates are told apart by
// their key usage. Files that do not hold a currently valid certificate, or
// that duplicate an already loaded subject, are ignored with a reason.
func LoadCerts(dir string) (Bundle, LoadResult, error) {
	if _, err := os.Stat(dir); err != nil {
		return Bundle{}, LoadResult{}, serrors.Wrap("stating directory", err, "dir", dir)
	}
	files, err := filepath.Glob(fmt.Sprintf("%s/*.pem", dir))
	if err != nil {
		return Bundle{}, LoadResult{}, serrors.Wrap("searching for certificates", err,
			"dir", dir)
	}

	bundle := Bundle{Hops: map[addr.AS]*x509.Certificate{}}
	res := LoadResult{Ignored: map[string]error{}}
	for _, f := range files {
		certs, err := hoppki.ReadPEMCerts(f)
		if err != nil {
			res.Ignored[f] = err
			continue
		}
		if len(certs) != 1 {
			res.Ignored[f] = serrors.New("expected a single certificate",
				"count", len(certs))
			continue
		}
		cert := certs[0]
		ct, err := hoppki.ValidateCert(cert)
		if err != nil {
			res.Ignored[f] = err
			continue
		}
		validity := hoppki.Validity{NotBefore: cert.NotBefore, NotAfter: cert.NotAfter}
		if !validity.Contains(time.Now()) {
			res.Ignored[f] = ErrOutsideValidity
			continue
		}
		switch ct {
		case hoppki.Root:
			if bundle.Root != nil {
				res.Ignored[f] = ErrAlreadyExists
				continue
			}
			bundle.Root = cert
		case hoppki.Hop:
			subject, err := hoppki.ExtractAS(cert.Subject)
			if err != nil {
				res.Ignored[f] = err
				continue
			}
			if _, ok := bundle.Hops[subject]; ok {
				res.Ignored[f] = ErrAlreadyExists
				continue
			}
			bundle.Hops[subject] = cert
		default:
			res.Ignored[f] = serrors.New("unsupported certificate type", "type", ct)
			continue
		}
		res.Loaded = append(res.Loaded, f)
	}
	return bundle, res, nil
}
