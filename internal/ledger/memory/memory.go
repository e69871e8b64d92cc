// Package memory implements the ledger ports on in-process maps. It backs
// tests and ephemeral runs; semantics (ordering, atomicity, seeding,
// settings fallback) mirror the SQLite store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"compta/internal/core"
	"compta/internal/ledger"
)

type Store struct {
	mu       sync.Mutex
	nextTx   int64
	nextCat  int64
	nextCp   int64
	txs      map[int64]core.Transaction
	cats     map[int64]core.Category
	cps      map[int64]core.Counterparty
	settings map[string]string
}

var _ ledger.Store = (*Store)(nil)

// New returns an initialized store: schema version recorded and the six
// default categories seeded, like a freshly migrated database.
func New() *Store {
	s := &Store{
		txs:      map[int64]core.Transaction{},
		cats:     map[int64]core.Category{},
		cps:      map[int64]core.Counterparty{},
		settings: map[string]string{"schema_version": "1"},
	}
	seeds := []core.Category{
		{Name: "Ventes", Kind: core.KindIncome},
		{Name: "Achats", Kind: core.KindExpense},
		{Name: "Déplacements", Kind: core.KindExpense},
		{Name: "Logiciels", Kind: core.KindExpense},
		{Name: "Banque", Kind: core.KindExpense},
		{Name: "Divers", Kind: core.KindExpense},
	}
	for _, c := range seeds {
		s.nextCat++
		c.ID = s.nextCat
		s.cats[c.ID] = c
	}
	return s
}

func (s *Store) Close() error { return nil }

func (s *Store) InsertTransaction(_ context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cats[t.CategoryID]; !ok {
		return 0, fmt.Errorf("category %d: %w", t.CategoryID, core.ErrValidation)
	}
	s.nextTx++
	t.ID = s.nextTx
	s.txs[t.ID] = t
	return t.ID, nil
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) error {
	if t.ID == 0 {
		return fmt.Errorf("update transaction without id: %w", core.ErrValidation)
	}
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txs[t.ID]; !ok {
		return fmt.Errorf("transaction %d: %w", t.ID, core.ErrNotFound)
	}
	s.txs[t.ID] = t
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txs[id]; !ok {
		return fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	delete(s.txs, id)
	return nil
}

func (s *Store) BulkInsertTransactions(_ context.Context, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Validate the whole batch before touching state: all or nothing.
	for _, t := range txs {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, ok := s.cats[t.CategoryID]; !ok {
			return fmt.Errorf("category %d: %w", t.CategoryID, core.ErrValidation)
		}
	}
	for _, t := range txs {
		s.nextTx++
		t.ID = s.nextTx
		s.txs[t.ID] = t
	}
	return nil
}

func (s *Store) ListTransactions(_ context.Context, limit, offset int) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.sortedTransactions()
	// Date descending then id descending.
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date > all[j].Date
		}
		return all[i].ID > all[j].ID
	})
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *Store) TransactionsByDateRange(_ context.Context, start, end string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.sortedTransactions() {
		if t.Date >= start && t.Date <= end {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) MarkReconciled(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if t, ok := s.txs[id]; ok {
			t.Reconciled = true
			s.txs[id] = t
		}
	}
	return nil
}

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Category, 0, len(s.cats))
	for _, c := range s.cats {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateCategory(_ context.Context, name string, kind core.CategoryKind) (int64, error) {
	c := core.Category{Name: name, Kind: kind}
	if err := c.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.cats {
		if existing.Name == name {
			return 0, fmt.Errorf("category name %q already exists: %w", name, core.ErrValidation)
		}
	}
	s.nextCat++
	c.ID = s.nextCat
	s.cats[c.ID] = c
	return c.ID, nil
}

func (s *Store) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cats, id)
	return nil
}

func (s *Store) ListCounterparties(_ context.Context) ([]core.Counterparty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Counterparty, 0, len(s.cps))
	for _, c := range s.cps {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpsertCounterparty(_ context.Context, name, kind string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, core.ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.cps {
		if c.Name == name {
			c.Kind = kind
			s.cps[id] = c
			return id, nil
		}
	}
	s.nextCp++
	s.cps[s.nextCp] = core.Counterparty{ID: s.nextCp, Name: name, Kind: kind}
	return s.nextCp, nil
}

func (s *Store) Setting(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.settings[key]; ok {
		return v, nil
	}
	if v, ok := ledger.DefaultSettings[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("setting %q: %w", key, core.ErrNotFound)
}

func (s *Store) SetSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

func (s *Store) ExportSettings(_ context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.settings)+len(ledger.DefaultSettings))
	for k, v := range s.settings {
		out[k] = v
	}
	for k, v := range ledger.DefaultSettings {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *Store) ImportSettings(_ context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.settings[k] = v
	}
	return nil
}

func (s *Store) ListTransactionsJoined(_ context.Context) ([]core.JoinedTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joined(func(core.Transaction) bool { return true }), nil
}

func (s *Store) ReceiptsByPeriod(_ context.Context, start, end string) ([]core.JoinedTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joined(func(t core.Transaction) bool {
		return t.Date >= start && t.Date <= end && t.Amount.Sign() > 0
	}), nil
}

func (s *Store) joined(keep func(core.Transaction) bool) []core.JoinedTransaction {
	var out []core.JoinedTransaction
	for _, t := range s.sortedTransactions() {
		if !keep(t) {
			continue
		}
		j := core.JoinedTransaction{Transaction: t}
		if c, ok := s.cats[t.CategoryID]; ok {
			j.CategoryName = c.Name
		}
		if cp, ok := s.cps[t.CounterpartyID]; ok {
			j.CounterpartyName = cp.Name
		}
		out = append(out, j)
	}
	return out
}

// sortedTransactions returns all transactions ordered ascending by date then
// id; callers must hold the lock.
func (s *Store) sortedTransactions() []core.Transaction {
	out := make([]core.Transaction, 0, len(s.txs))
	for _, t := range s.txs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}
