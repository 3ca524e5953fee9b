package models

import (
	"github.com/distribev/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// CustomerModel is the persistence model for customers
type CustomerModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Branch       string `gorm:"type:varchar(100);not null;index"`
	ContactName  string `gorm:"type:varchar(100)"`
	ContactPhone string `gorm:"type:varchar(50)"`
	Address      string `gorm:"type:varchar(500)"`
	Status       string `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		Branch:       m.Branch,
		ContactName:  m.ContactName,
		ContactPhone: m.ContactPhone,
		Address:      m.Address,
		Status:       partner.CustomerStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Branch = c.Branch
	m.ContactName = c.ContactName
	m.ContactPhone = c.ContactPhone
	m.Address = c.Address
	m.Status = c.Status.String()
}

// CustomerModelFromDomain creates a persistence model from a domain Customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// AutoMigratePartner migrates the partner tables
func AutoMigratePartner(db *gorm.DB) error {
	return db.AutoMigrate(&CustomerModel{})
}
