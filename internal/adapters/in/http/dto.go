package http

// Error is the JSON payload returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DispatchResponse is the dispatch decision. Both fields are null when every
// technician of the company was excluded from consideration.
type DispatchResponse struct {
	TechnicianID *string  `json:"technicianId"`
	EtaMinutes   *float64 `json:"etaMinutes"`
}

// MetricsBatchResponse acknowledges a processed metrics flush callback.
type MetricsBatchResponse struct {
	Processed int `json:"processed"`
}

// Technician is one row of the technician overview.
type Technician struct {
	ID              string `json:"id"`
	Company         string `json:"company"`
	QueuedJobs      int    `json:"queuedJobs"`
	HasBaseLocation bool   `json:"hasBaseLocation"`
}

// NextAvailable is the cached decision of the most recent dispatch
// evaluation for a company.
type NextAvailable struct {
	Company       string   `json:"company"`
	TechnicianID  *string  `json:"technicianId"`
	TravelMinutes int      `json:"travelMinutes"`
	JobAddress    string   `json:"jobAddress"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
}
