package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"OrderID", []string{"order", "id"}},
		{"order_id", []string{"order", "id"}},
		{"customerName", []string{"customer", "name"}},
		{"XMLPayload", []string{"xml", "payload"}},
		{"getHTTPResponse", []string{"get", "http", "response"}},
		{"CUSTOMERID", []string{"customerid"}},
		{"PRICE_CENTS", []string{"price", "cents"}},
		{"line2Total", []string{"line2", "total"}},
		{"o.customer_id", []string{"customer", "id"}},
		{`"Order"."CreatedAt"`, []string{"created", "at"}},
		{"[unit price]", []string{"unit", "price"}},
		{"`ordered-at`", []string{"ordered", "at"}},
		{"", nil},
		{"__", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestNormalizeColumn(t *testing.T) {
	for _, in := range []string{"customer_id", "CustomerID", "CUSTOMER-ID", "c.customer_id", `"customerId"`} {
		assert.Equal(t, "customerid", NormalizeColumn(in), in)
	}
}

func TestNormalizeColumnStem(t *testing.T) {
	tests := map[string]string{
		"customer_id":  "customer",
		"CreatedAt":    "created",
		"updated_on":   "updated",
		"event_ts":     "event",
		"ID":           "id",
		"at":           "at",
		"price_cents":  "pricecents",
		"CUSTOMERID":   "customerid",
		"valid_until":  "validuntil",
		"synced_utc":   "synced",
		"id_card":      "idcard",
		"o.ordered_at": "ordered",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeColumnStem(in), in)
	}
}
