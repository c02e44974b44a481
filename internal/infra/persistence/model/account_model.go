// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via gen_random_uuid().
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Phone        string    `gorm:"type:varchar(30)"`
	FarmArea     string    `gorm:"type:varchar(100)"`
	Pincode      string    `gorm:"type:varchar(20)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	CropRecords []*CropRecordModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// CropRecordModel mirrors the 'crop_records' table. Rows are append-only.
type CropRecordModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`
	CropName  string    `gorm:"type:varchar(100);not null"`
	Season    string    `gorm:"type:varchar(50)"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CropRecordModel) TableName() string {
	return "crop_records"
}
