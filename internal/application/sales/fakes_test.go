package sales

import (
	"context"

	"github.com/distribev/backend/internal/domain/ledger"
	"github.com/distribev/backend/internal/domain/partner"
	"github.com/distribev/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// In-memory fakes for the repository interfaces the service depends on.

type fakeQuoteRepository struct {
	quotes      map[string][]ledger.PricingQuote
	latestErr   error
	saveErr     error
	latestCalls int
}

func newFakeQuoteRepository() *fakeQuoteRepository {
	return &fakeQuoteRepository{quotes: make(map[string][]ledger.PricingQuote)}
}

func (f *fakeQuoteRepository) add(q *ledger.PricingQuote) {
	f.quotes[q.SKU] = append(f.quotes[q.SKU], *q)
}

func (f *fakeQuoteRepository) LatestBySKU(_ context.Context, sku string) (*ledger.PricingQuote, error) {
	f.latestCalls++
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	list := f.quotes[sku]
	if len(list) == 0 {
		return nil, shared.ErrNotFound
	}
	latest := list[0]
	for _, q := range list[1:] {
		if q.PricingDate.After(latest.PricingDate) {
			latest = q
		}
	}
	return &latest, nil
}

func (f *fakeQuoteRepository) ListBySKU(_ context.Context, sku string) ([]ledger.PricingQuote, error) {
	return f.quotes[sku], nil
}

func (f *fakeQuoteRepository) Save(_ context.Context, quote *ledger.PricingQuote) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.add(quote)
	return nil
}

type createdWithDerived struct {
	entry      *ledger.Entry
	production *ledger.ProductionEntry
	transport  *ledger.TransportEntry
}

type fakeEntryRepository struct {
	entries          map[uuid.UUID]*ledger.Entry
	created          []createdWithDerived
	createDerivedErr error
	saveErr          error
	deleteErr        error
	saved            []*ledger.Entry
	deleted          []uuid.UUID
}

func newFakeEntryRepository() *fakeEntryRepository {
	return &fakeEntryRepository{entries: make(map[uuid.UUID]*ledger.Entry)}
}

func (f *fakeEntryRepository) CreateWithDerived(_ context.Context, entry *ledger.Entry, production *ledger.ProductionEntry, transport *ledger.TransportEntry) error {
	if f.createDerivedErr != nil {
		return f.createDerivedErr
	}
	f.entries[entry.ID] = entry
	f.created = append(f.created, createdWithDerived{entry: entry, production: production, transport: transport})
	return nil
}

func (f *fakeEntryRepository) Create(_ context.Context, entry *ledger.Entry) error {
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeEntryRepository) FindByID(_ context.Context, id uuid.UUID) (*ledger.Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (f *fakeEntryRepository) FindByCustomer(_ context.Context, customerID uuid.UUID) ([]ledger.Entry, error) {
	var out []ledger.Entry
	for _, e := range f.entries {
		if e.CustomerID == customerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEntryRepository) List(_ context.Context, _ ledger.EntryFilter) ([]ledger.Entry, error) {
	out := make([]ledger.Entry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEntryRepository) Save(_ context.Context, entry *ledger.Entry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.entries[entry.ID] = entry
	f.saved = append(f.saved, entry)
	return nil
}

func (f *fakeEntryRepository) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.entries[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.entries, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeProductionRepository struct {
	bySource  map[uuid.UUID]*ledger.ProductionEntry
	byKey     []ledger.ProductionEntry
	keyErr    error
	saveErr   error
	deleteErr error
	saved     []*ledger.ProductionEntry
	deleted   []uuid.UUID
}

func newFakeProductionRepository() *fakeProductionRepository {
	return &fakeProductionRepository{bySource: make(map[uuid.UUID]*ledger.ProductionEntry)}
}

func (f *fakeProductionRepository) FindBySourceSaleID(_ context.Context, saleID uuid.UUID) (*ledger.ProductionEntry, error) {
	p, ok := f.bySource[saleID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProductionRepository) FindByNaturalKey(_ context.Context, _ ledger.SiblingKey) ([]ledger.ProductionEntry, error) {
	if f.keyErr != nil {
		return nil, f.keyErr
	}
	return f.byKey, nil
}

func (f *fakeProductionRepository) Save(_ context.Context, entry *ledger.ProductionEntry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, entry)
	return nil
}

func (f *fakeProductionRepository) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTransportRepository struct {
	bySource  map[uuid.UUID]*ledger.TransportEntry
	byKey     []ledger.TransportEntry
	keyErr    error
	saveErr   error
	deleteErr error
	saved     []*ledger.TransportEntry
	deleted   []uuid.UUID
}

func newFakeTransportRepository() *fakeTransportRepository {
	return &fakeTransportRepository{bySource: make(map[uuid.UUID]*ledger.TransportEntry)}
}

func (f *fakeTransportRepository) FindBySourceSaleID(_ context.Context, saleID uuid.UUID) (*ledger.TransportEntry, error) {
	t, ok := f.bySource[saleID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (f *fakeTransportRepository) FindByKey(_ context.Context, _ ledger.TransportKey) ([]ledger.TransportEntry, error) {
	if f.keyErr != nil {
		return nil, f.keyErr
	}
	return f.byKey, nil
}

func (f *fakeTransportRepository) Save(_ context.Context, entry *ledger.TransportEntry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, entry)
	return nil
}

func (f *fakeTransportRepository) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCustomerRepository struct {
	customers map[uuid.UUID]*partner.Customer
}

func newFakeCustomerRepository() *fakeCustomerRepository {
	return &fakeCustomerRepository{customers: make(map[uuid.UUID]*partner.Customer)}
}

func (f *fakeCustomerRepository) add(c *partner.Customer) {
	f.customers[c.ID] = c
}

func (f *fakeCustomerRepository) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (f *fakeCustomerRepository) FindByName(_ context.Context, name string) (*partner.Customer, error) {
	for _, c := range f.customers {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCustomerRepository) List(_ context.Context, _ partner.CustomerFilter) ([]partner.Customer, int64, error) {
	out := make([]partner.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCustomerRepository) Save(_ context.Context, customer *partner.Customer) error {
	f.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.customers[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.customers, id)
	return nil
}
