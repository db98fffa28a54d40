package lookup

import (
	"context"
	"sort"
	"strings"

	"github.com/merchly/order-lookup/internal/domain"
	"github.com/merchly/order-lookup/internal/shop"
)

const customerSearchQuery = `
query customersByPhone($query: String!) {
  customers(first: 250, query: $query) {
    edges { node { id displayName email } }
  }
}`

const customerOrdersQuery = `
query customerOrders($id: ID!) {
  customer(id: $id) {
    orders(first: 250) {
      edges {
        node {
          name
          createdAt
          displayFulfillmentStatus
          totalPriceSet { shopMoney { amount currencyCode } }
          shippingAddress { name address1 address2 city province zip country }
          lineItems(first: 250) {
            edges { node { title quantity originalUnitPriceSet { shopMoney { amount } } } }
          }
          fulfillments { trackingInfo { number company url } }
        }
      }
    }
  }
}`

// searchByPhone matches customers by the digit-normalized phone (first
// 250 matches, no deeper pagination) and then walks each customer's
// orders sequentially to stay inside upstream rate limits. The combined
// list is sorted newest-first; the stable sort keeps customer-then-order
// order on equal timestamps.
func (s *Service) searchByPhone(ctx context.Context, phone string) ([]domain.OrderSummary, error) {
	digits := digitsOnly(phone)

	var search shop.CustomerSearchData
	vars := map[string]any{"query": "phone:*" + digits + "*"}
	if err := s.upstream.RunGraphQuery(ctx, customerSearchQuery, vars, &search); err != nil {
		return nil, err
	}

	var out []domain.OrderSummary
	for _, edge := range search.Customers.Edges {
		cust := edge.Node

		var data shop.CustomerOrdersData
		if err := s.upstream.RunGraphQuery(ctx, customerOrdersQuery, map[string]any{"id": cust.ID}, &data); err != nil {
			return nil, err
		}
		for _, oe := range data.Customer.Orders.Edges {
			out = append(out, shop.NormalizeGraph(oe.Node, cust.DisplayName, cust.Email))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
