package models

import (
	"time"

	"github.com/distribev/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerEntryModel is the persistence model for ledger entries.
// Seq is a store-assigned monotonic sequence that fixes the ordering of
// entries sharing a transaction date and creation timestamp.
type LedgerEntryModel struct {
	BaseModel
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionType string          `gorm:"type:varchar(20);not null;index"`
	TransactionDate time.Time       `gorm:"type:date;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity        int             `gorm:"not null;default:0"`
	SKU             string          `gorm:"type:varchar(50);index"`
	Description     string          `gorm:"type:text"`
	Seq             int64           `gorm:"autoIncrement;uniqueIndex"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain Entry
func (m *LedgerEntryModel) ToDomain() *ledger.Entry {
	return &ledger.Entry{
		BaseEntity:      m.BaseModel.ToDomain(),
		CustomerID:      m.CustomerID,
		TransactionType: ledger.TransactionType(m.TransactionType),
		TransactionDate: m.TransactionDate,
		Amount:          m.Amount,
		Quantity:        m.Quantity,
		SKU:             m.SKU,
		Description:     m.Description,
		Seq:             m.Seq,
	}
}

// FromDomain populates the persistence model from a domain Entry
func (m *LedgerEntryModel) FromDomain(e *ledger.Entry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.CustomerID = e.CustomerID
	m.TransactionType = e.TransactionType.String()
	m.TransactionDate = e.TransactionDate
	m.Amount = e.Amount
	m.Quantity = e.Quantity
	m.SKU = e.SKU
	m.Description = e.Description
	m.Seq = e.Seq
}

// LedgerEntryModelFromDomain creates a persistence model from a domain Entry
func LedgerEntryModelFromDomain(e *ledger.Entry) *LedgerEntryModel {
	m := &LedgerEntryModel{}
	m.FromDomain(e)
	return m
}

// ProductionEntryModel is the persistence model for production-cost records
type ProductionEntryModel struct {
	BaseModel
	SourceSaleID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_production_natural_key,priority:1"`
	TransactionType string          `gorm:"type:varchar(20);not null;default:'PRODUCTION'"`
	SKU             string          `gorm:"type:varchar(50);not null;index:idx_production_natural_key,priority:3"`
	Quantity        int             `gorm:"not null"`
	TransactionDate time.Time       `gorm:"type:date;not null;index:idx_production_natural_key,priority:2"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CustomerName    string          `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (ProductionEntryModel) TableName() string {
	return "production_entries"
}

// ToDomain converts the persistence model to a domain ProductionEntry
func (m *ProductionEntryModel) ToDomain() *ledger.ProductionEntry {
	return &ledger.ProductionEntry{
		BaseEntity:      m.BaseModel.ToDomain(),
		SourceSaleID:    m.SourceSaleID,
		CustomerID:      m.CustomerID,
		SKU:             m.SKU,
		Quantity:        m.Quantity,
		TransactionDate: m.TransactionDate,
		Amount:          m.Amount,
		CustomerName:    m.CustomerName,
	}
}

// FromDomain populates the persistence model from a domain ProductionEntry
func (m *ProductionEntryModel) FromDomain(p *ledger.ProductionEntry) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SourceSaleID = p.SourceSaleID
	m.CustomerID = p.CustomerID
	m.TransactionType = ledger.ProductionEntryType
	m.SKU = p.SKU
	m.Quantity = p.Quantity
	m.TransactionDate = p.TransactionDate
	m.Amount = p.Amount
	m.CustomerName = p.CustomerName
}

// ProductionEntryModelFromDomain creates a persistence model from a domain ProductionEntry
func ProductionEntryModelFromDomain(p *ledger.ProductionEntry) *ProductionEntryModel {
	m := &ProductionEntryModel{}
	m.FromDomain(p)
	return m
}

// TransportEntryModel is the persistence model for transport-cost records
type TransportEntryModel struct {
	BaseModel
	SourceSaleID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ClientID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_transport_natural_key,priority:1"`
	ExpenseGroup string          `gorm:"type:varchar(50);not null;index:idx_transport_natural_key,priority:3"`
	ExpenseDate  time.Time       `gorm:"type:date;not null;index:idx_transport_natural_key,priority:2"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description  string          `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (TransportEntryModel) TableName() string {
	return "transport_entries"
}

// ToDomain converts the persistence model to a domain TransportEntry
func (m *TransportEntryModel) ToDomain() *ledger.TransportEntry {
	return &ledger.TransportEntry{
		BaseEntity:   m.BaseModel.ToDomain(),
		SourceSaleID: m.SourceSaleID,
		ClientID:     m.ClientID,
		ExpenseGroup: m.ExpenseGroup,
		ExpenseDate:  m.ExpenseDate,
		Amount:       m.Amount,
		Description:  m.Description,
	}
}

// FromDomain populates the persistence model from a domain TransportEntry
func (m *TransportEntryModel) FromDomain(t *ledger.TransportEntry) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.SourceSaleID = t.SourceSaleID
	m.ClientID = t.ClientID
	m.ExpenseGroup = t.ExpenseGroup
	m.ExpenseDate = t.ExpenseDate
	m.Amount = t.Amount
	m.Description = t.Description
}

// TransportEntryModelFromDomain creates a persistence model from a domain TransportEntry
func TransportEntryModelFromDomain(t *ledger.TransportEntry) *TransportEntryModel {
	m := &TransportEntryModel{}
	m.FromDomain(t)
	return m
}

// PricingQuoteModel is the persistence model for pricing quotes
type PricingQuoteModel struct {
	BaseModel
	SKU         string          `gorm:"type:varchar(50);not null;index:idx_quote_sku_date,priority:1"`
	CostPerCase decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PricingDate time.Time       `gorm:"type:date;not null;index:idx_quote_sku_date,priority:2,sort:desc"`
}

// TableName returns the table name for GORM
func (PricingQuoteModel) TableName() string {
	return "pricing_quotes"
}

// ToDomain converts the persistence model to a domain PricingQuote
func (m *PricingQuoteModel) ToDomain() *ledger.PricingQuote {
	return &ledger.PricingQuote{
		BaseEntity:  m.BaseModel.ToDomain(),
		SKU:         m.SKU,
		CostPerCase: m.CostPerCase,
		PricingDate: m.PricingDate,
	}
}

// FromDomain populates the persistence model from a domain PricingQuote
func (m *PricingQuoteModel) FromDomain(q *ledger.PricingQuote) {
	m.FromDomainBaseEntity(q.BaseEntity)
	m.SKU = q.SKU
	m.CostPerCase = q.CostPerCase
	m.PricingDate = q.PricingDate
}

// PricingQuoteModelFromDomain creates a persistence model from a domain PricingQuote
func PricingQuoteModelFromDomain(q *ledger.PricingQuote) *PricingQuoteModel {
	m := &PricingQuoteModel{}
	m.FromDomain(q)
	return m
}

// AutoMigrateLedger migrates the ledger tables
func AutoMigrateLedger(db *gorm.DB) error {
	return db.AutoMigrate(
		&LedgerEntryModel{},
		&ProductionEntryModel{},
		&TransportEntryModel{},
		&PricingQuoteModel{},
	)
}
