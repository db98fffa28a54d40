package shop

// Wire shapes of the two upstream query mechanisms. The REST endpoint
// returns flat orders; the graph endpoint returns customer->orders with
// money amounts nested in shopMoney sets. Both are mapped to
// domain.OrderSummary by the normalizers in normalize.go.

type RESTOrder struct {
	Name              string            `json:"name"`
	OrderNumber       int               `json:"order_number"`
	CreatedAt         string            `json:"created_at"`
	TotalPrice        string            `json:"total_price"`
	Currency          string            `json:"currency"`
	FulfillmentStatus string            `json:"fulfillment_status"`
	LineItems         []RESTLineItem    `json:"line_items"`
	ShippingAddress   *RESTAddress      `json:"shipping_address"`
	Fulfillments      []RESTFulfillment `json:"fulfillments"`
	Customer          *RESTCustomer     `json:"customer"`
}

type RESTLineItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

type RESTAddress struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

type RESTFulfillment struct {
	TrackingNumber  string `json:"tracking_number"`
	TrackingCompany string `json:"tracking_company"`
	TrackingURL     string `json:"tracking_url"`
}

type RESTCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ordersPage struct {
	Orders []RESTOrder `json:"orders"`
}

// CustomerSearchData is the graph response for the phone->customers query.
type CustomerSearchData struct {
	Customers struct {
		Edges []struct {
			Node GraphCustomer `json:"node"`
		} `json:"edges"`
	} `json:"customers"`
}

type GraphCustomer struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// CustomerOrdersData is the graph response for one customer's orders.
type CustomerOrdersData struct {
	Customer struct {
		Orders struct {
			Edges []struct {
				Node GraphOrder `json:"node"`
			} `json:"edges"`
		} `json:"orders"`
	} `json:"customer"`
}

type GraphOrder struct {
	Name                     string        `json:"name"`
	CreatedAt                string        `json:"createdAt"`
	DisplayFulfillmentStatus string        `json:"displayFulfillmentStatus"`
	TotalPriceSet            MoneySet      `json:"totalPriceSet"`
	ShippingAddress          *GraphAddress `json:"shippingAddress"`
	LineItems                struct {
		Edges []struct {
			Node GraphLineItem `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
	Fulfillments []GraphFulfillment `json:"fulfillments"`
}

type MoneySet struct {
	ShopMoney Money `json:"shopMoney"`
}

type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type GraphAddress struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

type GraphLineItem struct {
	Title                string   `json:"title"`
	Quantity             int      `json:"quantity"`
	OriginalUnitPriceSet MoneySet `json:"originalUnitPriceSet"`
}

type GraphFulfillment struct {
	TrackingInfo []GraphTracking `json:"trackingInfo"`
}

type GraphTracking struct {
	Number  string `json:"number"`
	Company string `json:"company"`
	URL     string `json:"url"`
}
