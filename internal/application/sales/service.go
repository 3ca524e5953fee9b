package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/distribev/backend/internal/domain/ledger"
	"github.com/distribev/backend/internal/domain/partner"
	"github.com/distribev/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service keeps the sales ledger and its derived production and transport
// records consistent across create, update and delete.
//
// Creation is all-or-nothing: the sale and both derived records are written
// in one store transaction. Updates and deletes treat the ledger entry as the
// primary mutation; derived-record failures degrade to warnings in the
// returned SyncReport so the primary outcome is never masked by a sibling
// falling out of sync.
type Service struct {
	entries    ledger.EntryRepository
	production ledger.ProductionEntryRepository
	transport  ledger.TransportEntryRepository
	customers  partner.CustomerRepository
	pricing    *PricingResolver
	log        *zap.Logger
}

// NewService creates a new sales Service
func NewService(
	entries ledger.EntryRepository,
	production ledger.ProductionEntryRepository,
	transport ledger.TransportEntryRepository,
	customers partner.CustomerRepository,
	pricing *PricingResolver,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		entries:    entries,
		production: production,
		transport:  transport,
		customers:  customers,
		pricing:    pricing,
		log:        log,
	}
}

// CreateSale records a sale together with its production-cost and transport
// records. Validation and pricing run before any write; the three inserts
// share one transaction, so a failed insert leaves nothing behind.
func (s *Service) CreateSale(ctx context.Context, input CreateSaleInput) (*EntryResponse, error) {
	customer, err := s.customers.FindByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError("customer not found")
		}
		return nil, shared.NewPersistenceError("customer lookup", err)
	}

	entry, err := ledger.NewSaleEntry(
		input.CustomerID,
		input.TransactionDate,
		input.Amount,
		input.Quantity,
		input.SKU,
		input.Description,
	)
	if err != nil {
		return nil, err
	}

	unitCost, err := s.pricing.UnitCost(ctx, input.SKU, input.Amount, input.Quantity)
	if err != nil {
		return nil, err
	}

	prod, err := ledger.NewProductionEntry(entry, productionAmount(input.Quantity, unitCost), customer.Name)
	if err != nil {
		return nil, err
	}
	transport, err := ledger.NewTransportEntry(entry, customer.Name, customer.Branch)
	if err != nil {
		return nil, err
	}

	if err := s.entries.CreateWithDerived(ctx, entry, prod, transport); err != nil {
		return nil, shared.NewPersistenceError("sale create", err)
	}

	s.log.Info("sale recorded",
		zap.String("entry_id", entry.ID.String()),
		zap.String("customer_id", entry.CustomerID.String()),
		zap.String("sku", entry.SKU),
		zap.String("amount", entry.Amount.String()),
		zap.String("production_amount", prod.Amount.String()),
	)

	resp := ToEntryResponse(entry)
	return &resp, nil
}

// CreatePayment records a payment against a customer. Payments have no
// derived records.
func (s *Service) CreatePayment(ctx context.Context, input CreatePaymentInput) (*EntryResponse, error) {
	if _, err := s.customers.FindByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError("customer not found")
		}
		return nil, shared.NewPersistenceError("customer lookup", err)
	}

	entry, err := ledger.NewPaymentEntry(input.CustomerID, input.TransactionDate, input.Amount, input.Description)
	if err != nil {
		return nil, err
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, shared.NewPersistenceError("payment create", err)
	}

	resp := ToEntryResponse(entry)
	return &resp, nil
}

// UpdateSale applies new field values to a sale and re-synchronizes its
// derived records. The ledger update is the primary mutation: its failure
// surfaces as an error. Sibling updates are matched by source_sale_id, with
// the legacy natural key as fallback; their failures are returned as
// warnings and logged, never as call failures.
func (s *Service) UpdateSale(ctx context.Context, id uuid.UUID, input UpdateSaleInput) (shared.SyncReport, error) {
	var report shared.SyncReport

	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return report, err
	}
	if !entry.IsSale() {
		return report, shared.NewValidationError("only sales carry derived records; payments are edited directly")
	}

	// The original values are the only way to locate legacy siblings, so
	// capture them before mutating anything.
	originalKey := entry.SiblingKey()

	if input.TransactionDate != nil {
		if input.TransactionDate.IsZero() {
			return report, shared.NewValidationError("transaction date is required")
		}
		entry.TransactionDate = *input.TransactionDate
	}
	if input.Amount != nil {
		if input.Amount.IsNegative() {
			return report, shared.NewValidationError("amount cannot be negative")
		}
		entry.Amount = *input.Amount
	}
	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			return report, shared.NewValidationError("quantity must be positive for a sale")
		}
		entry.Quantity = *input.Quantity
	}
	if input.SKU != nil {
		if *input.SKU == "" {
			return report, shared.NewValidationError("sku is required for a sale")
		}
		entry.SKU = *input.SKU
	}
	if input.Description != nil {
		entry.Description = *input.Description
	}

	if err := s.entries.Save(ctx, entry); err != nil {
		return report, shared.NewPersistenceError("sale update", err)
	}
	report.PrimaryOK = true

	if input.SKU != nil || input.Quantity != nil || input.Amount != nil {
		s.syncProduction(ctx, entry, originalKey, &report)
	}
	s.syncTransport(ctx, entry, originalKey, &report)

	s.logWarnings("sale update", entry.ID, report.Warnings)
	return report, nil
}

// DeleteTransaction removes a ledger entry. Sales drag their derived records
// along best-effort: sibling delete failures become warnings, and only the
// entry delete itself can fail the call.
func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) (shared.SyncReport, error) {
	var report shared.SyncReport

	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return report, err
	}

	if entry.IsSale() {
		s.deleteProduction(ctx, entry, &report)
		s.deleteTransport(ctx, entry, &report)
	}

	if err := s.entries.Delete(ctx, id); err != nil {
		return report, shared.NewPersistenceError("entry delete", err)
	}
	report.PrimaryOK = true

	s.logWarnings("entry delete", id, report.Warnings)
	return report, nil
}

// ListWithBalances returns balance-annotated rows, optionally restricted to
// one customer. Balances are computed once per customer over that customer's
// full history, not per row.
func (s *Service) ListWithBalances(ctx context.Context, customerID *uuid.UUID) ([]AnnotatedRow, error) {
	var (
		entries []ledger.Entry
		err     error
	)
	if customerID != nil {
		entries, err = s.entries.FindByCustomer(ctx, *customerID)
	} else {
		entries, err = s.entries.List(ctx, ledger.EntryFilter{})
	}
	if err != nil {
		return nil, shared.NewPersistenceError("entry list", err)
	}

	byCustomer := make(map[uuid.UUID][]ledger.Entry)
	for _, e := range entries {
		byCustomer[e.CustomerID] = append(byCustomer[e.CustomerID], e)
	}

	names := make(map[uuid.UUID]*partner.Customer, len(byCustomer))
	for cid := range byCustomer {
		customer, err := s.customers.FindByID(ctx, cid)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewPersistenceError("customer lookup", err)
			}
			s.log.Warn("ledger entries reference unknown customer", zap.String("customer_id", cid.String()))
			continue
		}
		names[cid] = customer
	}

	rows := make([]AnnotatedRow, 0, len(entries))
	for cid, group := range byCustomer {
		calc := ledger.NewBalanceCalculator(group, s.log)
		customer := names[cid]
		for _, ae := range calc.Annotated() {
			row := AnnotatedRow{
				ID:              ae.ID,
				CustomerID:      ae.CustomerID,
				TransactionType: ae.TransactionType.String(),
				TransactionDate: ae.TransactionDate,
				Amount:          ae.Amount,
				Quantity:        ae.Quantity,
				SKU:             ae.SKU,
				Description:     ae.Description,
				Outstanding:     ae.Outstanding,
				CreatedAt:       ae.CreatedAt,
			}
			if customer != nil {
				row.CustomerName = customer.Name
				row.Branch = customer.Branch
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// syncProduction re-resolves the unit cost and pushes the sale's current
// values onto its production record.
func (s *Service) syncProduction(ctx context.Context, entry *ledger.Entry, originalKey ledger.SiblingKey, report *shared.SyncReport) {
	unitCost, err := s.pricing.UnitCost(ctx, entry.SKU, entry.Amount, entry.Quantity)
	if err != nil {
		report.Warn("production", "update", fmt.Sprintf("unit cost resolution failed: %v", err))
		return
	}
	amount := productionAmount(entry.Quantity, unitCost)

	targets, warn := s.findProductionTargets(ctx, entry, originalKey)
	if warn != "" {
		report.Warn("production", "update", warn)
	}
	for i := range targets {
		p := &targets[i]
		p.SourceSaleID = entry.ID
		p.CustomerID = entry.CustomerID
		p.SKU = entry.SKU
		p.Quantity = entry.Quantity
		p.TransactionDate = entry.TransactionDate
		p.Amount = amount
		if err := s.production.Save(ctx, p); err != nil {
			report.Warn("production", "update", fmt.Sprintf("save failed: %v", err))
		}
	}
}

// syncTransport moves the sale's transport record to the new expense date.
func (s *Service) syncTransport(ctx context.Context, entry *ledger.Entry, originalKey ledger.SiblingKey, report *shared.SyncReport) {
	targets, warn := s.findTransportTargets(ctx, entry, originalKey)
	if warn != "" {
		report.Warn("transport", "update", warn)
	}
	for i := range targets {
		t := &targets[i]
		t.SourceSaleID = entry.ID
		t.ClientID = entry.CustomerID
		t.ExpenseDate = entry.TransactionDate
		if err := s.transport.Save(ctx, t); err != nil {
			report.Warn("transport", "update", fmt.Sprintf("save failed: %v", err))
		}
	}
}

func (s *Service) deleteProduction(ctx context.Context, entry *ledger.Entry, report *shared.SyncReport) {
	targets, warn := s.findProductionTargets(ctx, entry, entry.SiblingKey())
	if warn != "" {
		report.Warn("production", "delete", warn)
	}
	for i := range targets {
		if err := s.production.Delete(ctx, targets[i].ID); err != nil {
			report.Warn("production", "delete", fmt.Sprintf("delete failed: %v", err))
		}
	}
}

func (s *Service) deleteTransport(ctx context.Context, entry *ledger.Entry, report *shared.SyncReport) {
	targets, warn := s.findTransportTargets(ctx, entry, entry.SiblingKey())
	if warn != "" {
		report.Warn("transport", "delete", warn)
	}
	for i := range targets {
		if err := s.transport.Delete(ctx, targets[i].ID); err != nil {
			report.Warn("transport", "delete", fmt.Sprintf("delete failed: %v", err))
		}
	}
}

// findProductionTargets locates the production records belonging to a sale.
// The source_sale_id link is authoritative; rows written before the link
// existed fall back to the natural composite key. The natural key is not
// unique, so a fallback match can return zero or several rows, and that count
// is reported rather than silently accepted.
func (s *Service) findProductionTargets(ctx context.Context, entry *ledger.Entry, key ledger.SiblingKey) ([]ledger.ProductionEntry, string) {
	p, err := s.production.FindBySourceSaleID(ctx, entry.ID)
	if err == nil {
		return []ledger.ProductionEntry{*p}, ""
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Sprintf("lookup by source sale failed: %v", err)
	}

	matches, err := s.production.FindByNaturalKey(ctx, key)
	if err != nil {
		return nil, fmt.Sprintf("natural key lookup failed: %v", err)
	}
	switch len(matches) {
	case 0:
		return nil, "no production record matched the sale"
	case 1:
		return matches, ""
	default:
		return matches, fmt.Sprintf("natural key matched %d production records; all will be affected", len(matches))
	}
}

func (s *Service) findTransportTargets(ctx context.Context, entry *ledger.Entry, key ledger.SiblingKey) ([]ledger.TransportEntry, string) {
	t, err := s.transport.FindBySourceSaleID(ctx, entry.ID)
	if err == nil {
		return []ledger.TransportEntry{*t}, ""
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Sprintf("lookup by source sale failed: %v", err)
	}

	matches, err := s.transport.FindByKey(ctx, ledger.TransportKey{
		ClientID:    key.CustomerID,
		ExpenseDate: key.TransactionDate,
	})
	if err != nil {
		return nil, fmt.Sprintf("natural key lookup failed: %v", err)
	}
	switch len(matches) {
	case 0:
		return nil, "no transport record matched the sale"
	case 1:
		return matches, ""
	default:
		return matches, fmt.Sprintf("natural key matched %d transport records; all will be affected", len(matches))
	}
}

func (s *Service) logWarnings(op string, id uuid.UUID, warnings []shared.SyncWarning) {
	for _, w := range warnings {
		s.log.Warn("derived record out of sync",
			zap.String("op", op),
			zap.String("entry_id", id.String()),
			zap.String("record", w.Record),
			zap.String("sibling_op", w.Op),
			zap.String("reason", w.Message),
		)
	}
}

// productionAmount computes quantity times unit cost, floored at zero and
// rounded to cents.
func productionAmount(quantity int, unitCost decimal.Decimal) decimal.Decimal {
	amount := unitCost.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
