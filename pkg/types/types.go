// Package domain defines the wire types exchanged with the RocketSource API.
// Values are pass-through: the client never computes derived fields.
package domain

// ScanStatus represents the processing state of a scan.
type ScanStatus string

// Scan status constants.
const (
	ScanInProgress ScanStatus = "InProgress"
	ScanSuccess    ScanStatus = "Success"
	ScanError      ScanStatus = "Error"
	ScanCancelled  ScanStatus = "Cancelled"
)

// ScanSource represents how a scan was created.
type ScanSource string

// Scan source constants.
const (
	ScanSourceUpload ScanSource = "Upload"
	ScanSourceAPI    ScanSource = "API"
)

// IdentifierType names a product identifier scheme.
type IdentifierType string

// Identifier type constants.
const (
	IdentifierUPC    IdentifierType = "UPC"
	IdentifierEAN    IdentifierType = "EAN"
	IdentifierGTIN   IdentifierType = "GTIN"
	IdentifierISBN   IdentifierType = "ISBN"
	IdentifierJAN    IdentifierType = "JAN"
	IdentifierMINSAN IdentifierType = "MINSAN"
	IdentifierASIN   IdentifierType = "ASIN"
)

// ScanOptions is the open option bag attached to a scan. Keys are not
// enumerated; values are any JSON value.
type ScanOptions map[string]any

// Identifiers holds the identifiers associated with a product.
type Identifiers struct {
	UPC    []string `json:"upc,omitempty"`
	EAN    []string `json:"ean,omitempty"`
	GTIN   []string `json:"gtin,omitempty"`
	ISBN   []string `json:"isbn,omitempty"`
	JAN    []string `json:"jan,omitempty"`
	MINSAN []string `json:"minsan,omitempty"`
}

// Pagination describes the page a paginated response covers.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// PaginatedResults is a single page of results. Page boundaries and the total
// come from the server.
type PaginatedResults[T any] struct {
	Data       []T        `json:"data"`
	Total      int        `json:"total"`
	Pagination Pagination `json:"pagination"`
}

// APIErrorResponse is the error body returned by the API on failure.
type APIErrorResponse struct {
	Message    string              `json:"message"`
	Error      string              `json:"error,omitempty"`
	Details    map[string]any      `json:"details,omitempty"`
	StatusCode int                 `json:"statusCode,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

// InboundEligibility is the inbound eligibility of a single ASIN.
type InboundEligibility struct {
	ASIN         string   `json:"asin"`
	Eligible     bool     `json:"eligible"`
	Reason       string   `json:"reason,omitempty"`
	Restrictions []string `json:"restrictions,omitempty"`
}

// UnitPreference is a user's preferred measurement system.
type UnitPreference string

// Unit preference constants.
const (
	UnitsImperial UnitPreference = "inches and pounds"
	UnitsMetric   UnitPreference = "cm and kg"
)

// User is a RocketSource user profile.
type User struct {
	ID                       int            `json:"id"`
	AccountID                int            `json:"account_id"`
	Name                     string         `json:"name"`
	Email                    string         `json:"email"`
	EmailVerifiedAt          *string        `json:"email_verified_at,omitempty"`
	CreatedAt                string         `json:"created_at"`
	UpdatedAt                string         `json:"updated_at"`
	DeletedAt                *string        `json:"deleted_at,omitempty"`
	StripeCustomerID         *string        `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID     *string        `json:"stripe_subscription_id,omitempty"`
	StripeSubscriptionStatus *string        `json:"stripe_subscription_status,omitempty"`
	SubscriptionPlan         *string        `json:"subscription_plan,omitempty"`
	PreferredUnits           UnitPreference `json:"preferred_units"`
}

// Account is the account a user belongs to.
type Account struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
