// Package model holds the persisted records of the application.
//
// Structs carry `db` tags for pgx.RowToStructByName and camelCase
// `json` tags for the API envelope.
package model

import "time"

// Base holds the columns every table shares.
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
