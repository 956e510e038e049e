package domain

// Scan is a scan job as returned by the API.
type Scan struct {
	ID          int         `json:"id"`
	UserID      int         `json:"user_id"`
	AccountID   int         `json:"account_id"`
	Marketplace Marketplace `json:"marketplace"`
	Status      ScanStatus  `json:"status"`
	SourceType  ScanSource  `json:"source_type"`
	SourceID    int         `json:"source_id"`
	Name        string      `json:"name"`
	Products    int         `json:"products"`
	Errors      int         `json:"errors"`
	Speed       float64     `json:"speed"` // items per minute
	Lines       int         `json:"lines"`
	Options     ScanOptions `json:"options"`
	CreatedAt   *string     `json:"created_at"`
	UpdatedAt   *string     `json:"updated_at"`
	DeletedAt   *string     `json:"deleted_at"`
}

// ScanUploadResponse is the summary returned after uploading a scan file.
type ScanUploadResponse struct {
	ID          int         `json:"id"`
	Marketplace Marketplace `json:"marketplace"`
	Status      ScanStatus  `json:"status"`
	Name        string      `json:"name"`
	CreatedAt   string      `json:"created_at"`
}

// SortDirection is the ordering applied to a sorted field.
type SortDirection string

// Sort direction constants.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sorting selects the field results are ordered by.
type Sorting struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// ResultsRequest filters, paginates, and sorts scan results.
type ResultsRequest struct {
	Filters    map[string]any `json:"filters,omitempty"`
	Pagination *Pagination    `json:"pagination,omitempty"`
	Sorting    *Sorting       `json:"sorting,omitempty"`
	TableType  string         `json:"table_type,omitempty"`
}

// ResultsMetadata describes the scan a results page belongs to.
type ResultsMetadata struct {
	Errors       int            `json:"errors"`
	Lines        int            `json:"lines"`
	Products     int            `json:"products"`
	SourceID     int            `json:"source_id"`
	SourceTypeID int            `json:"source_type_id"`
	UserID       int            `json:"user_id"`
	ScannedAt    string         `json:"scanned_at,omitempty"`
	Columns      map[string]any `json:"columns,omitempty"`
}

// ResultsResponse is a page of scan results.
type ResultsResponse[T any] struct {
	Count   int             `json:"count"`
	Data    []T             `json:"data"`
	Meta    ResultsMetadata `json:"meta"`
	Options ScanOptions     `json:"options"`
}

// SheetExport is the response of a Google Sheets export.
type SheetExport struct {
	URL string `json:"url"`
}
