package domain

// ConvertRequest asks for the ASINs matching a list of identifiers.
type ConvertRequest struct {
	Marketplace Marketplace `json:"marketplace"`
	IDs         []string    `json:"ids"`
}

// ConvertResponse maps each input identifier to its ASINs.
type ConvertResponse map[string][]string

// AsinToIdentifiersRequest asks for the identifiers of a list of ASINs.
type AsinToIdentifiersRequest struct {
	Marketplace Marketplace `json:"marketplace"`
	ASINs       []string    `json:"asins"`
}

// AsinToIdentifiersResponse maps each ASIN to its identifiers.
type AsinToIdentifiersResponse map[string]Identifiers

// IdentifierConversionResult is the outcome of converting one identifier.
type IdentifierConversionResult struct {
	Input string   `json:"input"`
	ASINs []string `json:"asins,omitempty"`
	Error string   `json:"error,omitempty"`
}

// AsinIdentifierResult is the outcome of converting one ASIN.
type AsinIdentifierResult struct {
	ASIN        string       `json:"asin"`
	Identifiers *Identifiers `json:"identifiers,omitempty"`
	Error       string       `json:"error,omitempty"`
}
