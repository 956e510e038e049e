package rocketsource

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

// EligibilityService checks product eligibility.
type EligibilityService struct {
	t *transport
}

// CheckInbound returns the inbound eligibility of each ASIN. ASINs are sent
// as one comma-separated parameter, so an ASIN containing a comma is not
// supported.
func (s *EligibilityService) CheckInbound(
	ctx context.Context,
	asins []string,
	marketplace domain.Marketplace,
) ([]domain.InboundEligibility, error) {
	q := url.Values{}
	q.Set("asins", strings.Join(asins, ","))
	q.Set("marketplace", string(marketplace))

	var out []domain.InboundEligibility
	if err := s.t.do(ctx, &request{
		method: http.MethodGet,
		path:   "/inbound-eligibility",
		route:  "/inbound-eligibility",
		query:  q,
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
