package airtable

// Column names of the canonical upstream schema. The tickets table is
// `tcr`, the tracing table keeps one row per bill of lading.
const (
	FieldPOL      = "POL"
	FieldPOD      = "POD"
	FieldType     = "Type"
	FieldCost     = "Cost"
	FieldTime     = "t/Time"
	FieldRoute    = "Route"
	FieldBL       = "BL"
	FieldClient   = "Client"
	FieldETD      = "ETD"
	FieldETA      = "ETA"
	FieldLocation = "Location"
	FieldStatus   = "Status"
)

// TicketFilter selects priced routes: substring match on both ports so
// partial user input still hits ("seoul" matches "Port of Seoul"), and
// an exact match on the canonical container token in either its quoted
// or bare representation.
func TicketFilter(pol, pod, containerType string) Expr {
	return And{
		Contains{Field: FieldPOL, Value: pol},
		Contains{Field: FieldPOD, Value: pod},
		Or{
			Equals{Field: FieldType, Value: containerType},
			EqualsRaw{Field: FieldType, Token: containerType},
		},
	}
}

// AutocompleteFilter is a case-insensitive substring search on a single
// column. Callers must allow-list the field name before building it.
func AutocompleteFilter(text, field string) Expr {
	return Contains{Field: field, Value: text}
}

// TracingFilter selects a shipment row by its bill-of-lading number.
func TracingFilter(bl string) Expr {
	return Equals{Field: FieldBL, Value: bl}
}
