package models

import "time"

const (
	MaterialTable            = "fld_materials"
	MaterialTransactionTable = "fld_material_transactions"
)

// Material transaction types, append-only audit trail.
const (
	TxTypeAllocate = "allocate"
	TxTypeConsume  = "consume"
	TxTypeReturn   = "return"
)

type Material struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"size:200;not null" json:"name"`
	Unit string `gorm:"size:40;not null" json:"unit"`

	// reserved_stock is the portion of current_stock committed to open
	// allocations. Free stock = current_stock - reserved_stock.
	CurrentStock  float64 `gorm:"not null;default:0" json:"current_stock"`
	ReservedStock float64 `gorm:"not null;default:0" json:"reserved_stock"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Material) TableName() string { return MaterialTable }

func (m *Material) FreeStock() float64 { return m.CurrentStock - m.ReservedStock }

type MaterialTransaction struct {
	ID           string  `gorm:"type:uuid;primaryKey" json:"id"`
	MaterialID   string  `gorm:"type:uuid;index;not null" json:"material_id"`
	AllocationID *string `gorm:"type:uuid;index" json:"allocation_id,omitempty"`
	Type         string  `gorm:"size:20;not null" json:"type"`
	Quantity     float64 `gorm:"not null" json:"quantity"`
	Notes        string  `gorm:"size:255" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (MaterialTransaction) TableName() string { return MaterialTransactionTable }
