package models

// TicketQuery carries the three search inputs for a price lookup.
// Type holds the raw client value; the service normalizes it to the
// canonical container token before building the upstream filter.
type TicketQuery struct {
	POL  string `form:"pol" validate:"required"`
	POD  string `form:"pod" validate:"required"`
	Type string `form:"type" validate:"required"`
}

// TicketRecord is one priced route, with the upstream column names
// flattened to the wire keys the front end expects.
type TicketRecord struct {
	POL         string  `json:"pol"`
	POD         string  `json:"pod"`
	Type        string  `json:"type"`
	Cost        float64 `json:"cost"`
	TransitTime string  `json:"t_time"`
	Route       string  `json:"route"`
}

type AutocompleteQuery struct {
	Query string `form:"query" validate:"required"`
	Field string `form:"field" validate:"required"`
}

// TracingRecord is a single shipment row from the tracing table.
type TracingRecord struct {
	BL       string `json:"bl"`
	Client   string `json:"client"`
	POL      string `json:"pol"`
	POD      string `json:"pod"`
	ETD      string `json:"etd"`
	ETA      string `json:"eta"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// TracingResult is the /api/tracing response body: the static schedule
// plus the live position and remaining distance to the discharge port.
type TracingResult struct {
	Schedule    Schedule    `json:"schedule"`
	CurrentInfo CurrentInfo `json:"currentInfo"`
}

type Schedule struct {
	BL     string `json:"bl"`
	Client string `json:"client"`
	POL    string `json:"pol"`
	POD    string `json:"pod"`
	ETD    string `json:"etd"`
	ETA    string `json:"eta"`
}

type CurrentInfo struct {
	Location      string `json:"location"`
	Status        string `json:"status"`
	DistanceToPOD int    `json:"distanceToPOD"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
