package rocketsource

import (
	"context"
	"net/http"

	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

// ConvertService converts between product identifiers and ASINs. Results are
// never cached: every call is one request.
type ConvertService struct {
	t *transport
}

// ToASIN converts identifiers (UPC, EAN, ISBN, ...) to ASINs.
func (s *ConvertService) ToASIN(
	ctx context.Context,
	req domain.ConvertRequest,
) (domain.ConvertResponse, error) {
	var out domain.ConvertResponse
	if err := s.t.do(ctx, &request{
		method: http.MethodPost,
		path:   "/convert",
		route:  "/convert",
		body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FromASIN converts ASINs to their identifiers.
func (s *ConvertService) FromASIN(
	ctx context.Context,
	req domain.AsinToIdentifiersRequest,
) (domain.AsinToIdentifiersResponse, error) {
	var out domain.AsinToIdentifiersResponse
	if err := s.t.do(ctx, &request{
		method: http.MethodPost,
		path:   "/asin-convert",
		route:  "/asin-convert",
		body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConvertIDs converts any identifiers to ASINs.
func (s *ConvertService) ConvertIDs(
	ctx context.Context,
	marketplace domain.Marketplace,
	ids []string,
) (domain.ConvertResponse, error) {
	return s.ToASIN(ctx, domain.ConvertRequest{Marketplace: marketplace, IDs: nonNil(ids)})
}

// ConvertASINs converts ASINs to identifiers.
func (s *ConvertService) ConvertASINs(
	ctx context.Context,
	marketplace domain.Marketplace,
	asins []string,
) (domain.AsinToIdentifiersResponse, error) {
	return s.FromASIN(ctx, domain.AsinToIdentifiersRequest{Marketplace: marketplace, ASINs: nonNil(asins)})
}

// ConvertUPCs converts UPC codes to ASINs. The request is the same as ConvertIDs.
func (s *ConvertService) ConvertUPCs(
	ctx context.Context,
	marketplace domain.Marketplace,
	upcs []string,
) (domain.ConvertResponse, error) {
	return s.ConvertIDs(ctx, marketplace, upcs)
}

// ConvertEANs converts EAN codes to ASINs. The request is the same as ConvertIDs.
func (s *ConvertService) ConvertEANs(
	ctx context.Context,
	marketplace domain.Marketplace,
	eans []string,
) (domain.ConvertResponse, error) {
	return s.ConvertIDs(ctx, marketplace, eans)
}

// ConvertISBNs converts ISBN codes to ASINs. The request is the same as ConvertIDs.
func (s *ConvertService) ConvertISBNs(
	ctx context.Context,
	marketplace domain.Marketplace,
	isbns []string,
) (domain.ConvertResponse, error) {
	return s.ConvertIDs(ctx, marketplace, isbns)
}

// nonNil keeps empty input encoding as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
