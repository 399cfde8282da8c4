package server

import (
	"net/http"
	"time"

	"github.com/seedvault/seedvault/garden"
	"github.com/seedvault/seedvault/internal/errors"
)

// Garden data belongs to the signed-in identity. During impersonation the
// session resolves to the target user, so these handlers serve the target's
// data without any special casing.

// SeedsHandler lists the caller's seed inventory.
func (s *Server) SeedsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.currentUser(r)
		seeds, err := s.repos.Seeds.ListForUser(r.Context(), user.ID)
		if err != nil {
			writeErrorFromErr(w, err)
			return
		}
		if seeds == nil {
			seeds = []*garden.Seed{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"seeds": seeds})
	}
}

type seedRequest struct {
	PlantID    string    `json:"plantId"`
	Name       string    `json:"name"`
	Variety    string    `json:"variety"`
	Quantity   int       `json:"quantity"`
	AcquiredAt time.Time `json:"acquiredAt"`
	Notes      string    `json:"notes"`
}

// AddSeedHandler records a new packet in the caller's inventory.
func (s *Server) AddSeedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req seedRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeErrorFromErr(w, err)
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		user := s.currentUser(r)
		seed := &garden.Seed{
			UserID:     user.ID,
			PlantID:    req.PlantID,
			Name:       req.Name,
			Variety:    req.Variety,
			Quantity:   req.Quantity,
			AcquiredAt: req.AcquiredAt,
			Notes:      req.Notes,
		}
		if err := s.repos.Seeds.Upsert(r.Context(), seed); err != nil {
			writeErrorFromErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "seed": seed})
	}
}

// PlantingsHandler lists the caller's planting records.
func (s *Server) PlantingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.currentUser(r)
		plantings, err := s.repos.Plantings.ListForUser(r.Context(), user.ID)
		if err != nil {
			writeErrorFromErr(w, err)
			return
		}
		if plantings == nil {
			plantings = []*garden.Planting{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"plantings": plantings})
	}
}

type plantingRequest struct {
	SeedID    string    `json:"seedId"`
	PlantedAt time.Time `json:"plantedAt"`
	Location  string    `json:"location"`
}

// AddPlantingHandler records that a seed from the inventory was sown.
func (s *Server) AddPlantingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req plantingRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeErrorFromErr(w, err)
			return
		}
		if req.SeedID == "" {
			writeError(w, http.StatusBadRequest, "seedId is required")
			return
		}

		user := s.currentUser(r)
		seed, err := s.repos.Seeds.Get(r.Context(), req.SeedID)
		if err != nil {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrNotFound, "seed %s", req.SeedID))
			return
		}
		if seed.UserID != user.ID {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrAuthorizationDenied, "seed belongs to another user"))
			return
		}

		plantedAt := req.PlantedAt
		if plantedAt.IsZero() {
			plantedAt = s.nowTime()
		}
		planting := &garden.Planting{
			UserID:    user.ID,
			SeedID:    req.SeedID,
			PlantedAt: plantedAt,
			Location:  req.Location,
			Status:    garden.PlantingActive,
		}
		if err := s.repos.Plantings.Upsert(r.Context(), planting); err != nil {
			writeErrorFromErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "planting": planting})
	}
}

// WishlistHandler lists the caller's wishlist.
func (s *Server) WishlistHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.currentUser(r)
		items, err := s.repos.Wishlist.ListForUser(r.Context(), user.ID)
		if err != nil {
			writeErrorFromErr(w, err)
			return
		}
		if items == nil {
			items = []*garden.WishlistItem{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"wishlist": items})
	}
}

type wishlistRequest struct {
	PlantID string `json:"plantId"`
	Name    string `json:"name"`
	Note    string `json:"note"`
}

// AddWishlistItemHandler appends an item to the caller's wishlist.
func (s *Server) AddWishlistItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req wishlistRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeErrorFromErr(w, err)
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		user := s.currentUser(r)
		item := &garden.WishlistItem{
			UserID:    user.ID,
			PlantID:   req.PlantID,
			Name:      req.Name,
			Note:      req.Note,
			CreatedAt: s.nowTime(),
		}
		if err := s.repos.Wishlist.Upsert(r.Context(), item); err != nil {
			writeErrorFromErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "item": item})
	}
}

// RemoveWishlistItemHandler deletes one of the caller's wishlist items.
func (s *Server) RemoveWishlistItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := r.PathValue("id")
		user := s.currentUser(r)

		item, err := s.repos.Wishlist.Get(r.Context(), itemID)
		if err != nil {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrNotFound, "wishlist item %s", itemID))
			return
		}
		if item.UserID != user.ID {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrAuthorizationDenied, "wishlist item belongs to another user"))
			return
		}

		if err := s.repos.Wishlist.Delete(r.Context(), itemID); err != nil {
			writeErrorFromErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
