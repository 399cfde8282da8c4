// Package garden holds each user's seed inventory, planting records and
// wishlist. The handlers over it are thin CRUD glue; the interesting parts
// of the server are the middleware and audit paths that guard them.
package garden

import "time"

type Seed struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	PlantID    string    `json:"plantId,omitempty"` // Optional link to the encyclopedia
	Name       string    `json:"name"`
	Variety    string    `json:"variety,omitempty"`
	Quantity   int       `json:"quantity"`
	AcquiredAt time.Time `json:"acquiredAt,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// PlantingStatus tracks a planting from sowing to removal.
type PlantingStatus string

const (
	PlantingActive    PlantingStatus = "active"
	PlantingHarvested PlantingStatus = "harvested"
	PlantingFailed    PlantingStatus = "failed"
)

type Planting struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	SeedID    string         `json:"seedId"`
	PlantedAt time.Time      `json:"plantedAt"`
	Location  string         `json:"location,omitempty"`
	Status    PlantingStatus `json:"status"`
}

type WishlistItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PlantID   string    `json:"plantId,omitempty"`
	Name      string    `json:"name"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
