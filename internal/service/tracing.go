package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tcrfreight/backend/internal/airtable"
	"github.com/tcrfreight/backend/internal/geocode"
	"github.com/tcrfreight/backend/internal/models"
	"github.com/tcrfreight/backend/internal/utils"
)

// TracingService looks up a shipment by bill of lading and estimates
// the remaining great-circle distance from its reported location to
// the discharge port. The three outbound calls run sequentially; any
// one failing fails the whole request, so a successful response always
// carries the distance.
type TracingService struct {
	Airtable Selector
	Geocoder geocode.Geocoder
	Table    string
	Logger   zerolog.Logger
}

func (s *TracingService) Trace(ctx context.Context, bl string) (models.TracingResult, error) {
	bl = strings.TrimSpace(bl)
	if bl == "" {
		return models.TracingResult{}, fmt.Errorf("%w: BL is required", ErrValidation)
	}

	rows, err := s.Airtable.SelectFirstPage(ctx, s.Table, airtable.TracingFilter(bl))
	if err != nil {
		return models.TracingResult{}, err
	}
	rec, err := normalizeTracingRecord(rows)
	if err != nil {
		return models.TracingResult{}, err
	}

	current, err := s.Geocoder.Geocode(ctx, rec.Location)
	if err != nil {
		return models.TracingResult{}, fmt.Errorf("geocode current location %q: %w", rec.Location, err)
	}
	dest, err := s.Geocoder.Geocode(ctx, rec.POD)
	if err != nil {
		return models.TracingResult{}, fmt.Errorf("geocode POD %q: %w", rec.POD, err)
	}

	return models.TracingResult{
		Schedule: models.Schedule{
			BL:     rec.BL,
			Client: rec.Client,
			POL:    rec.POL,
			POD:    rec.POD,
			ETD:    rec.ETD,
			ETA:    rec.ETA,
		},
		CurrentInfo: models.CurrentInfo{
			Location:      rec.Location,
			Status:        rec.Status,
			DistanceToPOD: utils.DistanceKm(current, dest),
		},
	}, nil
}

// All returns every raw tracing row across all pages.
func (s *TracingService) All(ctx context.Context) ([]airtable.Record, error) {
	rows, err := s.Airtable.SelectAll(ctx, s.Table, nil)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}

// normalizeTracingRecord takes the first matching row; the upstream
// query is expected to hold at most one row per bill of lading, and
// duplicates are not disambiguated.
func normalizeTracingRecord(rows []airtable.Record) (models.TracingRecord, error) {
	if len(rows) == 0 {
		return models.TracingRecord{}, ErrNotFound
	}
	f := rows[0].Fields
	return models.TracingRecord{
		BL:       fieldString(f, airtable.FieldBL),
		Client:   fieldString(f, airtable.FieldClient),
		POL:      fieldString(f, airtable.FieldPOL),
		POD:      fieldString(f, airtable.FieldPOD),
		ETD:      fieldString(f, airtable.FieldETD),
		ETA:      fieldString(f, airtable.FieldETA),
		Location: fieldString(f, airtable.FieldLocation),
		Status:   fieldString(f, airtable.FieldStatus),
	}, nil
}
