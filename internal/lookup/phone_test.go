package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestDigitsOnly(t *testing.T) {
	require.Equal(t, "79991234567", digitsOnly("+7 (999) 123-45-67"))
	require.Equal(t, "", digitsOnly("abc"))
}

func graphCustomers(nodes ...string) string {
	return fmt.Sprintf(`{"customers":{"edges":[%s]}}`, join(nodes))
}

func graphCustomer(id, name, email string) string {
	return fmt.Sprintf(`{"node":{"id":%q,"displayName":%q,"email":%q}}`, id, name, email)
}

func graphOrders(nodes ...string) string {
	return fmt.Sprintf(`{"customer":{"orders":{"edges":[%s]}}}`, join(nodes))
}

func graphOrder(name, createdAt string) string {
	return fmt.Sprintf(`{"node":{
		"name":%q,
		"createdAt":%q,
		"totalPriceSet":{"shopMoney":{"amount":"42.5","currencyCode":"USD"}},
		"lineItems":{"edges":[{"node":{"title":"tee","quantity":2,"originalUnitPriceSet":{"shopMoney":{"amount":"21.25"}}}}]},
		"fulfillments":[]
	}}`, name, createdAt)
}

func join(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}

func TestSearchByPhone_SortsNewestFirstAcrossCustomers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	up := NewMockUpstream(ctrl)
	svc, closeFn := newTestService(t, up)
	defer closeFn()

	// Customer A has orders at T1 and T3, customer B at T2.
	gomock.InOrder(
		up.EXPECT().RunGraphQuery(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, vars map[string]any, out any) error {
				require.Equal(t, "phone:*79991234567*", vars["query"], "phone must be digit-normalized")
				return json.Unmarshal([]byte(graphCustomers(
					graphCustomer("gid://1", "Alice A", "alice@x.y"),
					graphCustomer("gid://2", "Bob B", "bob@x.y"),
				)), out)
			}),
		up.EXPECT().RunGraphQuery(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, vars map[string]any, out any) error {
				require.Equal(t, "gid://1", vars["id"])
				return json.Unmarshal([]byte(graphOrders(
					graphOrder("#A1", "2024-01-01T00:00:00Z"),
					graphOrder("#A3", "2024-03-01T00:00:00Z"),
				)), out)
			}),
		up.EXPECT().RunGraphQuery(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, vars map[string]any, out any) error {
				require.Equal(t, "gid://2", vars["id"])
				return json.Unmarshal([]byte(graphOrders(
					graphOrder("#B2", "2024-02-01T00:00:00Z"),
				)), out)
			}),
	)

	orders, err := svc.Lookup(context.Background(), "phone", "+7 (999) 123-45-67")
	require.NoError(t, err)
	require.Len(t, orders, 3)

	require.Equal(t, "#A3", orders[0].OrderNumber)
	require.Equal(t, "#B2", orders[1].OrderNumber)
	require.Equal(t, "#A1", orders[2].OrderNumber)

	// Parent customer fields are attached to every order.
	require.Equal(t, "Alice A", orders[0].CustomerName)
	require.Equal(t, "alice@x.y", orders[0].CustomerEmail)
	require.Equal(t, "Bob B", orders[1].CustomerName)
}

func TestSearchByPhone_CustomerQueryFailureAbortsLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	up := NewMockUpstream(ctrl)
	svc, closeFn := newTestService(t, up)
	defer closeFn()

	gomock.InOrder(
		up.EXPECT().RunGraphQuery(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ map[string]any, out any) error {
				return json.Unmarshal([]byte(graphCustomers(
					graphCustomer("gid://1", "Alice A", "alice@x.y"),
					graphCustomer("gid://2", "Bob B", "bob@x.y"),
				)), out)
			}),
		up.EXPECT().RunGraphQuery(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("throttled")),
	)

	orders, err := svc.Lookup(context.Background(), "phone", "79991234567")
	require.Error(t, err)
	require.Nil(t, orders)
}
