package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PropertyStatusAvailable = "available"
	PropertyStatusPending   = "pending"
	PropertyStatusSold      = "sold"
	PropertyStatusOffMarket = "off_market"
	PropertyTypeHouse       = "house"
	PropertyTypeApartment   = "apartment"
	PropertyTypeCondo       = "condo"
	PropertyTypeLand        = "land"
	PropertyTypeCommercial  = "commercial"
)

type Property struct {
	ID           int64           `db:"id" json:"id"`
	WorkspaceID  int64           `db:"workspace_id" json:"workspace_id"`
	OwnerID      int64           `db:"owner_id" json:"owner_id"`
	Title        string          `db:"title" json:"title"`
	Address      string          `db:"address" json:"address"`
	City         string          `db:"city" json:"city"`
	State        string          `db:"state" json:"state"`
	Zip          string          `db:"zip" json:"zip"`
	PropertyType string          `db:"property_type" json:"property_type"`
	Status       string          `db:"status" json:"status"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Bedrooms     int             `db:"bedrooms" json:"bedrooms"`
	Bathrooms    int             `db:"bathrooms" json:"bathrooms"`
	AreaSqft     int             `db:"area_sqft" json:"area_sqft"`
	Description  string          `db:"description" json:"description"`
	Photos       []PropertyPhoto `db:"-" json:"photos,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

type PropertyPhoto struct {
	ID           int64     `db:"id" json:"id"`
	PropertyID   int64     `db:"property_id" json:"property_id"`
	FileName     string    `db:"file_name" json:"file_name"`
	FileType     string    `db:"file_type" json:"file_type"`
	FileURL      string    `db:"file_url" json:"file_url"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
