package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel is embedded by every soft-deletable content row. A non-null
// DeletedAt is the tombstone; default gorm queries exclude tombstoned rows.
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// IsDeleted reports whether the row carries a soft-delete timestamp.
func (b BaseModel) IsDeleted() bool {
	return b.DeletedAt.Valid
}

// RecordBase is embedded by rows that are never deleted, only annotated.
type RecordBase struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
