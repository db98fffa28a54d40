package domain

import "time"

// ContactType селектор стратегии поиска: email или phone.
type ContactType string

const (
	ContactEmail ContactType = "email"
	ContactPhone ContactType = "phone"
)

func (t ContactType) Valid() bool {
	return t == ContactEmail || t == ContactPhone
}

// CacheKey is the exact, case-sensitive cache key for a contact.
func CacheKey(t ContactType, contact string) string {
	return string(t) + ":" + contact
}

// OrderSummary is the canonical order record both upstream shapes are
// normalized into. ItemsCount always equals the sum of line item quantities.
type OrderSummary struct {
	OrderNumber       string        `json:"order_number"`
	CreatedAt         time.Time     `json:"created_at"`
	TotalPrice        string        `json:"total_price"`
	CurrencyCode      string        `json:"currency_code,omitempty"`
	FulfillmentStatus string        `json:"fulfillment_status"`
	ItemsCount        int           `json:"items_count"`
	ShippingAddress   *Address      `json:"shipping_address,omitempty"`
	TrackingInfo      *TrackingInfo `json:"tracking_info,omitempty"`
	LineItems         []LineItem    `json:"line_items"`
	CustomerName      string        `json:"customer_name,omitempty"`
	CustomerEmail     string        `json:"customer_email,omitempty"`
}

type Address struct {
	Name     string `json:"name,omitempty"`
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	Zip      string `json:"zip,omitempty"`
	Country  string `json:"country,omitempty"`
}

// TrackingInfo is present only when at least one fulfillment carries a
// tracking number; it is never an empty object.
type TrackingInfo struct {
	Number  string `json:"number"`
	Company string `json:"company,omitempty"`
	URL     string `json:"url,omitempty"`
}

type LineItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// LookupRecord is the audit/event payload emitted after each completed
// lookup. The contact itself is carried only as a hash.
type LookupRecord struct {
	ContactType ContactType `json:"contact_type"`
	ContactHash string      `json:"contact_sha256"`
	Source      string      `json:"source"`
	Orders      int         `json:"orders"`
	DurationMs  float64     `json:"duration_ms"`
	At          time.Time   `json:"at"`
}
