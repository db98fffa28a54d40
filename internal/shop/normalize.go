package shop

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/merchly/order-lookup/internal/domain"
)

// The two normalizers below are pure: no I/O, no logging. They must emit
// identical field semantics for both upstream shapes. Policy decisions:
// money strings are canonicalized to two decimals, fulfillment status is
// lowercased and defaults to "unfulfilled", and tracking info is nil
// unless a non-empty tracking number exists.

// NormalizeREST maps one flat REST order to the canonical summary.
func NormalizeREST(o RESTOrder) domain.OrderSummary {
	items := make([]domain.LineItem, 0, len(o.LineItems))
	count := 0
	for _, li := range o.LineItems {
		items = append(items, domain.LineItem{
			Title:    li.Title,
			Quantity: li.Quantity,
			Price:    canonicalAmount(li.Price),
		})
		count += li.Quantity
	}

	var tracking *domain.TrackingInfo
	for _, f := range o.Fulfillments {
		if f.TrackingNumber == "" {
			continue
		}
		tracking = &domain.TrackingInfo{
			Number:  f.TrackingNumber,
			Company: f.TrackingCompany,
			URL:     f.TrackingURL,
		}
		break
	}

	var addr *domain.Address
	if o.ShippingAddress != nil {
		addr = &domain.Address{
			Name:     o.ShippingAddress.Name,
			Address1: o.ShippingAddress.Address1,
			Address2: o.ShippingAddress.Address2,
			City:     o.ShippingAddress.City,
			Province: o.ShippingAddress.Province,
			Zip:      o.ShippingAddress.Zip,
			Country:  o.ShippingAddress.Country,
		}
	}

	name := o.Name
	if name == "" && o.OrderNumber != 0 {
		name = strconv.Itoa(o.OrderNumber)
	}

	var customerName string
	if o.Customer != nil {
		customerName = strings.TrimSpace(o.Customer.FirstName + " " + o.Customer.LastName)
	}

	return domain.OrderSummary{
		OrderNumber:       name,
		CreatedAt:         parseTime(o.CreatedAt),
		TotalPrice:        canonicalAmount(o.TotalPrice),
		CurrencyCode:      o.Currency,
		FulfillmentStatus: canonicalStatus(o.FulfillmentStatus),
		ItemsCount:        count,
		ShippingAddress:   addr,
		TrackingInfo:      tracking,
		LineItems:         items,
		CustomerName:      customerName,
	}
}

// NormalizeGraph maps one graph-shaped order to the canonical summary,
// attaching the parent customer's name and email (phone lookups only).
func NormalizeGraph(o GraphOrder, customerName, customerEmail string) domain.OrderSummary {
	items := make([]domain.LineItem, 0, len(o.LineItems.Edges))
	count := 0
	for _, e := range o.LineItems.Edges {
		items = append(items, domain.LineItem{
			Title:    e.Node.Title,
			Quantity: e.Node.Quantity,
			Price:    canonicalAmount(e.Node.OriginalUnitPriceSet.ShopMoney.Amount),
		})
		count += e.Node.Quantity
	}

	var tracking *domain.TrackingInfo
	for _, f := range o.Fulfillments {
		for _, t := range f.TrackingInfo {
			if t.Number == "" {
				continue
			}
			tracking = &domain.TrackingInfo{
				Number:  t.Number,
				Company: t.Company,
				URL:     t.URL,
			}
			break
		}
		if tracking != nil {
			break
		}
	}

	var addr *domain.Address
	if o.ShippingAddress != nil {
		addr = &domain.Address{
			Name:     o.ShippingAddress.Name,
			Address1: o.ShippingAddress.Address1,
			Address2: o.ShippingAddress.Address2,
			City:     o.ShippingAddress.City,
			Province: o.ShippingAddress.Province,
			Zip:      o.ShippingAddress.Zip,
			Country:  o.ShippingAddress.Country,
		}
	}

	return domain.OrderSummary{
		OrderNumber:       o.Name,
		CreatedAt:         parseTime(o.CreatedAt),
		TotalPrice:        canonicalAmount(o.TotalPriceSet.ShopMoney.Amount),
		CurrencyCode:      o.TotalPriceSet.ShopMoney.CurrencyCode,
		FulfillmentStatus: canonicalStatus(o.DisplayFulfillmentStatus),
		ItemsCount:        count,
		ShippingAddress:   addr,
		TrackingInfo:      tracking,
		LineItems:         items,
		CustomerName:      customerName,
		CustomerEmail:     customerEmail,
	}
}

// canonicalAmount renders money as a fixed two-decimal string, so that
// REST "100.0" and graph "100.00" compare equal downstream. Unparseable
// input passes through verbatim.
func canonicalAmount(s string) string {
	if s == "" {
		return s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.StringFixed(2)
}

func canonicalStatus(s string) string {
	if s == "" {
		return "unfulfilled"
	}
	return strings.ToLower(s)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
