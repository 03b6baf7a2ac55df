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

package ledgerdb

import (
	"context"
	"sort"
	"sync"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
)

// Memory is an in-memory ledger. It is safe for concurrent use. The zero
// value is ready to use.
type Memory struct {
	mu      sync.RWMutex
	entries map[uint64]Entry
}

func (m *Memory) Append(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[uint64]Entry)
	}
	if _, ok := m.entries[entry.Serial]; ok {
		return serrors.Join(ErrDuplicateSerial, nil, "serial", entry.Serial)
	}
	m.entries[entry.Serial] = entry
	return nil
}

func (m *Memory) Entry(_ context.Context, serial uint64) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[serial]
	return entry, ok, nil
}

func (m *Memory) Entries(_ context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Serial < entries[j].Serial
	})
	return entries, nil
}

func (m *Memory) MaxSerial(_ context.Context) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var maxSerial uint64
	for serial := range m.entries {
		if serial > maxSerial {
			maxSerial = serial
		}
	}
	return maxSerial, nil
}

func (m *Memory) Close() error {
	return nil
}
