package lookup

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/merchly/order-lookup/internal/domain"
	"github.com/merchly/order-lookup/internal/shop"
)

// searchByEmail pages through the flat order listing until the upstream
// stops returning a continuation token. The email is passed through
// verbatim (transport encoding happens in the client); any page failure
// aborts the whole lookup. MaxPages caps a misbehaving upstream that
// keeps handing out tokens.
func (s *Service) searchByEmail(ctx context.Context, email string) ([]domain.OrderSummary, error) {
	var out []domain.OrderSummary
	token := ""

	for page := 0; ; page++ {
		if s.maxPages > 0 && page >= s.maxPages {
			return nil, &domain.UpstreamError{
				Op:  "orders_page",
				Err: fmt.Errorf("continuation did not terminate within %d pages", s.maxPages),
			}
		}

		q := url.Values{}
		q.Set("limit", strconv.Itoa(s.pageLimit))
		if token == "" {
			q.Set("status", "any")
			q.Set("email", email)
		} else {
			// Continuation requests carry the token and limit only.
			q.Set("page_info", token)
		}

		orders, next, err := s.upstream.FetchOrdersPage(ctx, q)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			out = append(out, shop.NormalizeREST(o))
		}

		if next == "" {
			return out, nil
		}
		token = next
	}
}
