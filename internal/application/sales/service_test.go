package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/distribev/backend/internal/domain/ledger"
	"github.com/distribev/backend/internal/domain/partner"
	"github.com/distribev/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	service    *Service
	entries    *fakeEntryRepository
	production *fakeProductionRepository
	transport  *fakeTransportRepository
	customers  *fakeCustomerRepository
	quotes     *fakeQuoteRepository
	customer   *partner.Customer
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	customer, err := partner.NewCustomer("Horizon Beverages", "Nakuru")
	require.NoError(t, err)

	entries := newFakeEntryRepository()
	production := newFakeProductionRepository()
	transport := newFakeTransportRepository()
	customers := newFakeCustomerRepository()
	quotes := newFakeQuoteRepository()
	customers.add(customer)

	service := NewService(entries, production, transport, customers, NewPricingResolver(quotes), nil)

	return &serviceFixture{
		service:    service,
		entries:    entries,
		production: production,
		transport:  transport,
		customers:  customers,
		quotes:     quotes,
		customer:   customer,
	}
}

func (f *serviceFixture) addQuote(t *testing.T, sku string, cost int64, date time.Time) {
	t.Helper()
	quote, err := ledger.NewPricingQuote(sku, decimal.NewFromInt(cost), date)
	require.NoError(t, err)
	f.quotes.add(quote)
}

func (f *serviceFixture) storedSale(t *testing.T) *ledger.Entry {
	t.Helper()
	require.NotEmpty(t, f.entries.created)
	return f.entries.created[len(f.entries.created)-1].entry
}

func TestService_CreateSale(t *testing.T) {
	ctx := context.Background()
	saleDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("writes sale and derived records together", func(t *testing.T) {
		f := newServiceFixture(t)
		f.addQuote(t, "COLA-24CAN", 110, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

		resp, err := f.service.CreateSale(ctx, CreateSaleInput{
			CustomerID:      f.customer.ID,
			SKU:             "COLA-24CAN",
			Quantity:        40,
			Amount:          decimal.NewFromInt(4800),
			TransactionDate: saleDate,
			Description:     "March delivery",
		})

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "SALE", resp.TransactionType)
		assert.Equal(t, "2026-03-15", resp.TransactionDate)

		require.Len(t, f.entries.created, 1)
		created := f.entries.created[0]

		// Production amount is quantity times the quoted unit cost.
		assert.True(t, created.production.Amount.Equal(decimal.NewFromInt(4400)))
		assert.Equal(t, created.entry.ID, created.production.SourceSaleID)
		assert.Equal(t, "Horizon Beverages", created.production.CustomerName)

		assert.True(t, created.transport.Amount.IsZero())
		assert.Equal(t, ledger.TransportExpenseGroup, created.transport.ExpenseGroup)
		assert.Equal(t, "Horizon Beverages-Nakuru Transport", created.transport.Description)
		assert.Equal(t, created.entry.ID, created.transport.SourceSaleID)
	})

	t.Run("derives production from half unit price without a quote", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.CreateSale(ctx, CreateSaleInput{
			CustomerID:      f.customer.ID,
			SKU:             "FANTA-12BTL",
			Quantity:        20,
			Amount:          decimal.NewFromInt(1000),
			TransactionDate: saleDate,
		})

		require.NoError(t, err)
		require.Len(t, f.entries.created, 1)
		// (1000 / 20) * 0.5 = 25 per case, 20 cases = 500.
		assert.True(t, f.entries.created[0].production.Amount.Equal(decimal.NewFromInt(500)))
	})

	t.Run("unknown customer fails validation before any write", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.CreateSale(ctx, CreateSaleInput{
			CustomerID:      uuid.New(),
			SKU:             "COLA-24CAN",
			Quantity:        1,
			Amount:          decimal.NewFromInt(100),
			TransactionDate: saleDate,
		})

		require.Error(t, err)
		assert.True(t, shared.IsValidationError(err))
		assert.Empty(t, f.entries.created)
	})

	t.Run("invalid sale fields fail before any write", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.CreateSale(ctx, CreateSaleInput{
			CustomerID:      f.customer.ID,
			SKU:             "COLA-24CAN",
			Quantity:        0,
			Amount:          decimal.NewFromInt(100),
			TransactionDate: saleDate,
		})

		require.Error(t, err)
		assert.True(t, shared.IsValidationError(err))
		assert.Empty(t, f.entries.created)
	})

	t.Run("store failure surfaces as persistence error", func(t *testing.T) {
		f := newServiceFixture(t)
		f.entries.createDerivedErr = errors.New("deadlock detected")

		_, err := f.service.CreateSale(ctx, CreateSaleInput{
			CustomerID:      f.customer.ID,
			SKU:             "COLA-24CAN",
			Quantity:        10,
			Amount:          decimal.NewFromInt(1000),
			TransactionDate: saleDate,
		})

		require.Error(t, err)
		assert.True(t, shared.IsPersistenceError(err))
		assert.Empty(t, f.entries.created)
	})
}

func TestService_CreatePayment(t *testing.T) {
	ctx := context.Background()
	payDate := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	t.Run("records payment without derived records", func(t *testing.T) {
		f := newServiceFixture(t)

		resp, err := f.service.CreatePayment(ctx, CreatePaymentInput{
			CustomerID:      f.customer.ID,
			Amount:          decimal.NewFromInt(600),
			TransactionDate: payDate,
			Description:     "Bank transfer",
		})

		require.NoError(t, err)
		assert.Equal(t, "PAYMENT", resp.TransactionType)
		assert.Empty(t, f.entries.created)
		assert.Len(t, f.entries.entries, 1)
	})

	t.Run("unknown customer is rejected", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.CreatePayment(ctx, CreatePaymentInput{
			CustomerID:      uuid.New(),
			Amount:          decimal.NewFromInt(600),
			TransactionDate: payDate,
		})

		assert.True(t, shared.IsValidationError(err))
	})
}

func TestService_UpdateSale(t *testing.T) {
	ctx := context.Background()
	saleDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	createSale := func(t *testing.T, f *serviceFixture) *ledger.Entry {
		t.Helper()
		f.addQuote(t, "COLA-24CAN", 110, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
		_, err := f.service.CreateSale(ctx, CreateSaleInput{
			CustomerID:      f.customer.ID,
			SKU:             "COLA-24CAN",
			Quantity:        40,
			Amount:          decimal.NewFromInt(4800),
			TransactionDate: saleDate,
		})
		require.NoError(t, err)
		sale := f.storedSale(t)

		// Wire the derived records into the fakes the way the store would
		// return them.
		created := f.entries.created[0]
		f.production.bySource[sale.ID] = created.production
		f.transport.bySource[sale.ID] = created.transport
		return sale
	}

	t.Run("amount change resyncs production and transport", func(t *testing.T) {
		f := newServiceFixture(t)
		sale := createSale(t, f)

		newQty := 44
		report, err := f.service.UpdateSale(ctx, sale.ID, UpdateSaleInput{Quantity: &newQty})

		require.NoError(t, err)
		assert.True(t, report.PrimaryOK)
		assert.True(t, report.Clean())

		require.Len(t, f.production.saved, 1)
		// 44 cases at the quoted 110 per case.
		assert.True(t, f.production.saved[0].Amount.Equal(decimal.NewFromInt(4840)))
		assert.Equal(t, 44, f.production.saved[0].Quantity)

		require.Len(t, f.transport.saved, 1)
		assert.Equal(t, sale.ID, f.transport.saved[0].SourceSaleID)
	})

	t.Run("date-only change skips production resync", func(t *testing.T) {
		f := newServiceFixture(t)
		sale := createSale(t, f)
		callsBefore := f.quotes.latestCalls

		newDate := saleDate.AddDate(0, 0, 1)
		report, err := f.service.UpdateSale(ctx, sale.ID, UpdateSaleInput{TransactionDate: &newDate})

		require.NoError(t, err)
		assert.True(t, report.PrimaryOK)
		assert.Empty(t, f.production.saved)
		assert.Equal(t, callsBefore, f.quotes.latestCalls)

		// Transport follows the sale to the new date.
		require.Len(t, f.transport.saved, 1)
		assert.Equal(t, newDate, f.transport.saved[0].ExpenseDate)
	})

	t.Run("sibling save failure degrades to warning", func(t *testing.T) {
		f := newServiceFixture(t)
		sale := createSale(t, f)
		f.production.saveErr = errors.New("disk full")

		newAmount := decimal.NewFromInt(5200)
		report, err := f.service.UpdateSale(ctx, sale.ID, UpdateSaleInput{Amount: &newAmount})

		require.NoError(t, err)
		assert.True(t, report.PrimaryOK)
		assert.False(t, report.Clean())

		var productionWarnings []shared.SyncWarning
		for _, w := range report.Warnings {
			if w.Record == "production" {
				productionWarnings = append(productionWarnings, w)
			}
		}
		require.Len(t, productionWarnings, 1)
		assert.Equal(t, "update", productionWarnings[0].Op)
		assert.Contains(t, productionWarnings[0].Message, "disk full")

		// The primary mutation stuck.
		updated, err := f.entries.FindByID(ctx, sale.ID)
		require.NoError(t, err)
		assert.True(t, updated.Amount.Equal(newAmount))
	})

	t.Run("ambiguous natural key match is reported", func(t *testing.T) {
		f := newServiceFixture(t)
		sale := createSale(t, f)

		// No source link: force the legacy natural-key path with two matches.
		delete(f.production.bySource, sale.ID)
		created := f.entries.created[0]
		other := *created.production
		other.ID = uuid.New()
		f.production.byKey = []ledger.ProductionEntry{*created.production, other}

		newQty := 50
		report, err := f.service.UpdateSale(ctx, sale.ID, UpdateSaleInput{Quantity: &newQty})

		require.NoError(t, err)
		assert.True(t, report.PrimaryOK)

		found := false
		for _, w := range report.Warnings {
			if w.Record == "production" && w.Op == "update" {
				assert.Contains(t, w.Message, "natural key matched 2 production records")
				found = true
			}
		}
		assert.True(t, found, "expected ambiguity warning")
		// Both matches were updated anyway.
		assert.Len(t, f.production.saved, 2)
	})

	t.Run("missing sibling is reported not fatal", func(t *testing.T) {
		f := newServiceFixture(t)
		sale := createSale(t, f)
		delete(f.production.bySource, sale.ID)
		f.production.byKey = nil

		newQty := 50
		report, err := f.service.UpdateSale(ctx, sale.ID, UpdateSaleInput{Quantity: &newQty})

		require.NoError(t, err)
		assert.True(t, report.PrimaryOK)

		found := false
		for _, w := range report.Warnings {
			if w.Record == "production" && w.Message == "no production record matched the sale" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("payments cannot be updated here", func(t *testing.T) {
		f := newServiceFixture(t)
		resp, err := f.service.CreatePayment(ctx, CreatePaymentInput{
			CustomerID:      f.customer.ID,
			Amount:          decimal.NewFromInt(600),
			TransactionDate: saleDate,
		})
		require.NoError(t, err)

		id, err := uuid.Parse(resp.ID)
		require.NoError(t, err)

		newQty := 5
		_, err = f.service.UpdateSale(ctx, id, UpdateSaleInput{Quantity: &newQty})
		assert.True(t, shared.IsValidationError(err))
	})

	t.Run("unknown entry returns not found", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.UpdateSale(ctx, uuid.New(), UpdateSaleInput{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("primary save failure fails the call", func(t *testing.T) {
		f := newServiceFixture(t)
		sale := createSale(t, f)
		f.entries.saveErr = errors.New("connection lost")

		newQty := 50
		report, err := f.service.UpdateSale(ctx, sale.ID, UpdateSaleInput{Quantity: &newQty})

		require.Error(t, err)
		assert.True(t, shared.IsPersistenceError(err))
		assert.False(t, report.PrimaryOK)
		assert.Empty(t, f.production.saved)
	})
}

func TestService_DeleteTransaction(t *testing.T) {
	ctx := context.Background()
	saleDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("sale delete drags derived records along", func(t *testing.T) {
		f := newServiceFixture(t)
		f.addQuote(t, "COLA-24CAN", 110, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
		_, err := f.service.CreateSale(ctx, CreateSaleInput{
			CustomerID:      f.customer.ID,
			SKU:             "COLA-24CAN",
			Quantity:        40,
			Amount:          decimal.NewFromInt(4800),
			TransactionDate: saleDate,
		})
		require.NoError(t, err)
		sale := f.storedSale(t)
		created := f.entries.created[0]
		f.production.bySource[sale.ID] = created.production
		f.transport.bySource[sale.ID] = created.transport

		report, err := f.service.DeleteTransaction(ctx, sale.ID)

		require.NoError(t, err)
		assert.True(t, report.PrimaryOK)
		assert.True(t, report.Clean())
		assert.Equal(t, []uuid.UUID{created.production.ID}, f.production.deleted)
		assert.Equal(t, []uuid.UUID{created.transport.ID}, f.transport.deleted)
		assert.Equal(t, []uuid.UUID{sale.ID}, f.entries.deleted)
	})

	t.Run("sibling delete failure degrades to warning", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.service.CreateSale(ctx, CreateSaleInput{
			CustomerID:      f.customer.ID,
			SKU:             "COLA-24CAN",
			Quantity:        10,
			Amount:          decimal.NewFromInt(1000),
			TransactionDate: saleDate,
		})
		require.NoError(t, err)
		sale := f.storedSale(t)
		created := f.entries.created[0]
		f.production.bySource[sale.ID] = created.production
		f.transport.bySource[sale.ID] = created.transport
		f.production.deleteErr = errors.New("locked")

		report, err := f.service.DeleteTransaction(ctx, sale.ID)

		require.NoError(t, err)
		assert.True(t, report.PrimaryOK)
		assert.False(t, report.Clean())
		assert.Equal(t, []uuid.UUID{sale.ID}, f.entries.deleted)
	})

	t.Run("payment delete touches no siblings", func(t *testing.T) {
		f := newServiceFixture(t)
		resp, err := f.service.CreatePayment(ctx, CreatePaymentInput{
			CustomerID:      f.customer.ID,
			Amount:          decimal.NewFromInt(600),
			TransactionDate: saleDate,
		})
		require.NoError(t, err)
		id, err := uuid.Parse(resp.ID)
		require.NoError(t, err)

		report, err := f.service.DeleteTransaction(ctx, id)

		require.NoError(t, err)
		assert.True(t, report.Clean())
		assert.Empty(t, f.production.deleted)
		assert.Empty(t, f.transport.deleted)
	})

	t.Run("primary delete failure fails the call", func(t *testing.T) {
		f := newServiceFixture(t)
		resp, err := f.service.CreatePayment(ctx, CreatePaymentInput{
			CustomerID:      f.customer.ID,
			Amount:          decimal.NewFromInt(600),
			TransactionDate: saleDate,
		})
		require.NoError(t, err)
		id, err := uuid.Parse(resp.ID)
		require.NoError(t, err)
		f.entries.deleteErr = errors.New("timeout")

		report, err := f.service.DeleteTransaction(ctx, id)

		require.Error(t, err)
		assert.True(t, shared.IsPersistenceError(err))
		assert.False(t, report.PrimaryOK)
	})
}

func TestService_ListWithBalances(t *testing.T) {
	ctx := context.Background()
	saleDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("balances run per customer", func(t *testing.T) {
		f := newServiceFixture(t)
		second, err := partner.NewCustomer("Lakeview Traders", "Kisumu")
		require.NoError(t, err)
		f.customers.add(second)

		mustSale := func(cid uuid.UUID, day int, amount int64) {
			_, err := f.service.CreateSale(ctx, CreateSaleInput{
				CustomerID:      cid,
				SKU:             "COLA-24CAN",
				Quantity:        10,
				Amount:          decimal.NewFromInt(amount),
				TransactionDate: saleDate.AddDate(0, 0, day),
			})
			require.NoError(t, err)
		}
		mustPayment := func(cid uuid.UUID, day int, amount int64) {
			_, err := f.service.CreatePayment(ctx, CreatePaymentInput{
				CustomerID:      cid,
				Amount:          decimal.NewFromInt(amount),
				TransactionDate: saleDate.AddDate(0, 0, day),
			})
			require.NoError(t, err)
		}

		mustSale(f.customer.ID, 0, 1000)
		mustPayment(f.customer.ID, 5, 600)
		mustSale(f.customer.ID, 10, 900)
		mustSale(second.ID, 2, 300)

		rows, err := f.service.ListWithBalances(ctx, nil)
		require.NoError(t, err)
		require.Len(t, rows, 4)

		byCustomer := make(map[uuid.UUID][]AnnotatedRow)
		for _, r := range rows {
			byCustomer[r.CustomerID] = append(byCustomer[r.CustomerID], r)
		}

		horizon := byCustomer[f.customer.ID]
		require.Len(t, horizon, 3)
		assert.Equal(t, "1000", horizon[0].Outstanding.String())
		assert.Equal(t, "400", horizon[1].Outstanding.String())
		assert.Equal(t, "1300", horizon[2].Outstanding.String())
		assert.Equal(t, "Horizon Beverages", horizon[0].CustomerName)
		assert.Equal(t, "Nakuru", horizon[0].Branch)

		lakeview := byCustomer[second.ID]
		require.Len(t, lakeview, 1)
		// The other customer's history never bleeds in.
		assert.Equal(t, "300", lakeview[0].Outstanding.String())
		assert.Equal(t, "Lakeview Traders", lakeview[0].CustomerName)
	})

	t.Run("restricts to one customer", func(t *testing.T) {
		f := newServiceFixture(t)
		second, err := partner.NewCustomer("Lakeview Traders", "Kisumu")
		require.NoError(t, err)
		f.customers.add(second)

		_, err = f.service.CreateSale(ctx, CreateSaleInput{
			CustomerID:      f.customer.ID,
			SKU:             "COLA-24CAN",
			Quantity:        10,
			Amount:          decimal.NewFromInt(1000),
			TransactionDate: saleDate,
		})
		require.NoError(t, err)
		_, err = f.service.CreateSale(ctx, CreateSaleInput{
			CustomerID:      second.ID,
			SKU:             "COLA-24CAN",
			Quantity:        5,
			Amount:          decimal.NewFromInt(500),
			TransactionDate: saleDate,
		})
		require.NoError(t, err)

		rows, err := f.service.ListWithBalances(ctx, &f.customer.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, f.customer.ID, rows[0].CustomerID)
	})

	t.Run("unknown customer rows keep empty display fields", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.service.CreateSale(ctx, CreateSaleInput{
			CustomerID:      f.customer.ID,
			SKU:             "COLA-24CAN",
			Quantity:        10,
			Amount:          decimal.NewFromInt(1000),
			TransactionDate: saleDate,
		})
		require.NoError(t, err)

		// Customer disappears after the entry was written.
		require.NoError(t, f.customers.Delete(ctx, f.customer.ID))

		rows, err := f.service.ListWithBalances(ctx, nil)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Empty(t, rows[0].CustomerName)
		assert.Equal(t, "1000", rows[0].Outstanding.String())
	})
}

func TestProductionAmount(t *testing.T) {
	assert.Equal(t, "4400", productionAmount(40, decimal.NewFromInt(110)).String())
	assert.Equal(t, "33.33", productionAmount(2, decimal.RequireFromString("16.666")).StringFixed(2))
	assert.True(t, productionAmount(3, decimal.NewFromInt(-10)).IsZero())
	assert.True(t, productionAmount(0, decimal.NewFromInt(110)).IsZero())
}
