package integration

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOrderPage = `{
	"orders": [{
		"order_id": "A1",
		"commercial_id": "C-A1",
		"order_state": "WAITING_ACCEPTANCE",
		"created_date": "2024-03-01T10:00:00Z",
		"last_updated_date": "2024-03-01T10:05:00Z",
		"can_cancel": true,
		"can_shop_ship": false,
		"currency_iso_code": "EUR",
		"customer": {
			"customer_id": "CU1",
			"firstname": "Ada",
			"lastname": "Lovelace",
			"billing_address": {"lastname": "Lovelace", "street_1": "1 Main St", "city": "Paris", "country_iso_code": "FRA"},
			"shipping_address": {"lastname": "Lovelace", "street_1": "1 Main St", "city": "Paris", "country_iso_code": "FRA"}
		},
		"fulfillment": {"center": {"code": "DEFAULT"}},
		"order_tax_mode": "TAX_INCLUDED",
		"payment_type": "CARD",
		"price": 19.90,
		"shipping_price": 4.5,
		"total_commission": 2.39,
		"total_price": 24.40,
		"shipping_type_code": "STD",
		"shipping_type_label": "Standard",
		"shipping_zone_code": "FR",
		"shipping_zone_label": "France",
		"order_lines": [{
			"order_line_id": "A1-1",
			"order_line_index": 1,
			"order_line_state": "WAITING_ACCEPTANCE",
			"created_date": "2024-03-01T10:00:00Z",
			"last_updated_date": "2024-03-01T10:05:00Z",
			"offer_id": 2001,
			"offer_sku": "SKU-1",
			"offer_state_code": "11",
			"product_sku": "P-1",
			"product_title": "Mug",
			"description": "Blue mug",
			"category_code": "kitchen",
			"category_label": "Kitchen",
			"quantity": 2,
			"can_refund": false,
			"price": 19.90,
			"price_unit": 9.95,
			"shipping_price": 4.5,
			"commission_fee": 2.39,
			"total_commission": 2.39,
			"total_price": 24.40,
			"taxes": [{"code": "VAT", "amount": 3.98, "rate": 20}],
			"cancelations": [],
			"refunds": [],
			"promotions": [],
			"product_medias": [{"media_url": "https://cdn.example.com/p1.png", "mime_type": "image/png", "type": "SMALL"}],
			"order_line_additional_fields": [{"code": "engraving", "type": "STRING", "value": "AL"}]
		}],
		"order_additional_fields": [{"code": "gift", "type": "BOOLEAN", "value": "true"}]
	}],
	"total_count": 1
}`

func TestOrderPage_Decode(t *testing.T) {
	var page OrderPage
	require.NoError(t, json.Unmarshal([]byte(sampleOrderPage), &page))

	require.Len(t, page.Orders, 1)
	assert.Equal(t, 1, page.TotalCount)
	assert.False(t, page.HasMore())

	order := page.Orders[0]
	assert.Equal(t, "A1", order.OrderID)
	assert.True(t, order.RequiresAcceptance())
	assert.True(t, order.Price.Equal(decimal.RequireFromString("19.90")))
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("24.4")))
	assert.Equal(t, "Paris", order.Customer.ShippingAddress.City)

	require.Len(t, order.OrderLines, 1)
	line := order.OrderLines[0]
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, int64(2001), line.OfferID)
	require.Len(t, line.Taxes, 1)
	require.NotNil(t, line.Taxes[0].Rate)
	assert.True(t, line.Taxes[0].Rate.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, TextField{Type: FieldTypeString, Code: "engraving", Value: "AL"}, line.AdditionalFields[0])
	assert.Equal(t, TextField{Type: FieldTypeBoolean, Code: "gift", Value: "true"}, order.AdditionalFields[0])
}

func TestOrderPage_DecodeUnknownFieldType(t *testing.T) {
	data := `{"orders":[{"order_id":"X","order_state":"SHIPPING","order_additional_fields":[{"code":"c","type":"COLOR","value":"red"}]}],"total_count":1}`

	var page OrderPage
	assert.Error(t, json.Unmarshal([]byte(data), &page))
}

func TestOrder_RequiresAcceptance(t *testing.T) {
	tests := []struct {
		state    string
		expected bool
	}{
		{"WAITING_ACCEPTANCE", true},
		{"waiting_acceptance", false},
		{" WAITING_ACCEPTANCE", false},
		{"SHIPPING", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			o := Order{OrderState: tt.state}
			assert.Equal(t, tt.expected, o.RequiresAcceptance())
		})
	}
}

func TestOrder_MarshalXML(t *testing.T) {
	var page OrderPage
	require.NoError(t, json.Unmarshal([]byte(sampleOrderPage), &page))

	data, err := xml.Marshal(&page.Orders[0])
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "<Order><order_id>A1</order_id>"), out)
	assert.True(t, strings.HasSuffix(out, "</Order>"), out)
	assert.Contains(t, out, "<order_state>WAITING_ACCEPTANCE</order_state>")
	assert.Contains(t, out, "<price>19.9</price>")
	assert.Contains(t, out, "<order_lines><order_line><order_line_id>A1-1</order_line_id>")
	assert.Contains(t, out, "<taxes><tax><code>VAT</code><amount>3.98</amount><rate>20</rate></tax></taxes>")
	assert.Contains(t, out, `<order_additional_fields><additional_field type="BOOLEAN"><code>gift</code><value>true</value></additional_field></order_additional_fields>`)
	assert.NotContains(t, out, "<invoice_details>")
}
