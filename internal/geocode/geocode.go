package geocode

import (
	"context"
	"errors"

	"github.com/tcrfreight/backend/internal/models"
)

// ErrNotFound covers the whole failure surface of a lookup: empty
// result list, transport error, or malformed response. Callers treat
// them the same and never retry.
var ErrNotFound = errors.New("geocode not found")

type Geocoder interface {
	Geocode(ctx context.Context, place string) (models.Coordinate, error)
}
