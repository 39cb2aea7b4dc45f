package models

// Per-row import outcomes.
const (
	ImportRowValid   = "valid"   // preview: row would import cleanly
	ImportRowSuccess = "success" // commit: product was created
	ImportRowError   = "error"
)

// Import job lifecycle states as reported to the polling client.
const (
	ImportJobNotFound   = "not_found"
	ImportJobProcessing = "processing"
	ImportJobCompleted  = "completed"
	ImportJobFailed     = "failed"
)

// ImportRowResult is the verdict for a single spreadsheet row. Row is the
// 1-based spreadsheet row number (row 1 is the header).
type ImportRowResult struct {
	Row     int               `json:"row"`
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data,omitempty"`
}

// ImportJobResult aggregates every row outcome of one import run.
type ImportJobResult struct {
	Total   int               `json:"total"`
	Success int               `json:"success"`
	Valid   int               `json:"valid"`
	Errors  int               `json:"error"`
	Rows    []ImportRowResult `json:"rows"`
}

// ImportJobStatus is the polling response for an asynchronous import job.
type ImportJobStatus struct {
	Status  string           `json:"status"`
	Results *ImportJobResult `json:"results,omitempty"`
	Error   string           `json:"error,omitempty"`
}
