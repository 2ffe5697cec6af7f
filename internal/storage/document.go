package storage

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Document is one persisted JSON document in the postgres backend.
type Document struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value" gorm:"type:jsonb;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Document) TableName() string { return "documents" }

func (d *Document) Validate() error {
	if d.Key == "" {
		return fmt.Errorf("document key is required")
	}
	if d.Value == "" {
		return fmt.Errorf("document value is required")
	}
	return nil
}

// GORM hooks
func (d *Document) BeforeSave(tx *gorm.DB) error {
	return d.Validate()
}
