package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tcrfreight/backend/internal/airtable"
	"github.com/tcrfreight/backend/internal/models"
)

// Selector is the slice of the tabular-data client the services need.
type Selector interface {
	SelectFirstPage(ctx context.Context, table string, filter airtable.Expr) ([]airtable.Record, error)
	SelectAll(ctx context.Context, table string, filter airtable.Expr) ([]airtable.Record, error)
}

const maxSuggestions = 5

// autocompleteFields is the allow-list for the field position of an
// autocomplete filter. Anything else is rejected before the formula is
// built, so a field name can never smuggle formula text upstream.
var autocompleteFields = map[string]bool{
	airtable.FieldPOL:   true,
	airtable.FieldPOD:   true,
	airtable.FieldType:  true,
	airtable.FieldRoute: true,
}

// TicketService translates ticket queries into upstream filter
// formulas and normalizes the rows that come back.
type TicketService struct {
	Airtable Selector
	Table    string
	Logger   zerolog.Logger
}

// Search returns every priced route matching the query. Port matching
// is case-insensitive substring; container type is normalized to the
// canonical token ("20" becomes "20dv", "40" becomes "40HQ") and then
// matched exactly.
func (s *TicketService) Search(ctx context.Context, q models.TicketQuery) ([]models.TicketRecord, error) {
	pol := strings.TrimSpace(q.POL)
	pod := strings.TrimSpace(q.POD)
	containerType := NormalizeContainerType(q.Type)
	if pol == "" || pod == "" || containerType == "" {
		return nil, fmt.Errorf("%w: pol, pod and type are required", ErrValidation)
	}

	filter := airtable.TicketFilter(pol, pod, containerType)
	rows, err := s.Airtable.SelectAll(ctx, s.Table, filter)
	if err != nil {
		return nil, err
	}
	return normalizeTicketRecords(rows), nil
}

// Autocomplete returns up to five distinct values of one ticket column
// across rows matching the free text, in order of first appearance.
// One page of rows is a sufficient sample for suggestions.
func (s *TicketService) Autocomplete(ctx context.Context, text, field string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	if !autocompleteFields[field] {
		return nil, fmt.Errorf("%w: unknown field %q", ErrValidation, field)
	}

	rows, err := s.Airtable.SelectFirstPage(ctx, s.Table, airtable.AutocompleteFilter(text, field))
	if err != nil {
		return nil, err
	}
	return normalizeSuggestions(rows, field), nil
}

// NormalizeContainerType maps the short client values onto the
// canonical upstream token set. Unknown values pass through verbatim.
func NormalizeContainerType(t string) string {
	switch strings.TrimSpace(t) {
	case "20":
		return "20dv"
	case "40":
		return "40HQ"
	default:
		return strings.TrimSpace(t)
	}
}

func normalizeTicketRecords(rows []airtable.Record) []models.TicketRecord {
	out := make([]models.TicketRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.TicketRecord{
			POL:         fieldString(r.Fields, airtable.FieldPOL),
			POD:         fieldString(r.Fields, airtable.FieldPOD),
			Type:        fieldString(r.Fields, airtable.FieldType),
			Cost:        fieldFloat(r.Fields, airtable.FieldCost),
			TransitTime: fieldString(r.Fields, airtable.FieldTime),
			Route:       fieldString(r.Fields, airtable.FieldRoute),
		})
	}
	return out
}

func normalizeSuggestions(rows []airtable.Record, field string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range rows {
		v := fieldString(r.Fields, field)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func fieldString(fields map[string]any, name string) string {
	switch v := fields[name].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}

func fieldFloat(fields map[string]any, name string) float64 {
	if v, ok := fields[name].(float64); ok {
		return v
	}
	return 0
}
