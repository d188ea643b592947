package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// FindMatchingTierQueryHandler resolves pricing tiers from the database.
type FindMatchingTierQueryHandler struct {
	db *gorm.DB
}

// NewFindMatchingTierQueryHandler creates a handler for tier lookups.
func NewFindMatchingTierQueryHandler(db *gorm.DB) FindMatchingTierQueryHandler {
	return FindMatchingTierQueryHandler{db: db}
}

// Handle returns the tier covering the location and volume, or an
// ObjectNotFoundError when no tier matches.
func (h FindMatchingTierQueryHandler) Handle(
	ctx context.Context,
	query FindMatchingTierQuery,
) (FindMatchingTierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return FindMatchingTierQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			country,
			city,
			volume_min,
			volume_max,
			base_price
		FROM pricing_tiers
		WHERE LOWER(country) = LOWER(?)
		  AND LOWER(city) = LOWER(?)
		  AND volume_min <= ?
		  AND volume_max >= ?
		LIMIT 1
	`, query.Country(), query.City(), query.Volume(), query.Volume()).Row()

	var (
		id        uuid.UUID
		country   string
		city      string
		volumeMin int
		volumeMax int
		basePrice decimal.Decimal
	)

	err := row.Scan(&id, &country, &city, &volumeMin, &volumeMax, &basePrice)
	if errors.Is(err, sql.ErrNoRows) {
		return FindMatchingTierQueryResponse{}, errs.NewObjectNotFoundError("pricing tier",
			fmt.Sprintf("%s/%s volume %d", query.Country(), query.City(), query.Volume()))
	}
	if err != nil {
		return FindMatchingTierQueryResponse{}, err
	}

	tierID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return FindMatchingTierQueryResponse{}, err
	}

	return FindMatchingTierQueryResponse{
		ID:        tierID,
		Country:   country,
		City:      city,
		VolumeMin: volumeMin,
		VolumeMax: volumeMax,
		BasePrice: basePrice,
	}, nil
}
