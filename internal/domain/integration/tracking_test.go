package integration

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingFile_Submission(t *testing.T) {
	t.Run("registered carrier", func(t *testing.T) {
		data := `<tracking><order_id>B7</order_id><carrier_code>UPS</carrier_code><tracking_number>1Z</tracking_number></tracking>`

		var file TrackingFile
		require.NoError(t, xml.Unmarshal([]byte(data), &file))
		require.NoError(t, file.Validate())
		assert.Equal(t, "B7", file.OrderID)

		body, err := json.Marshal(file.Submission())
		require.NoError(t, err)
		assert.Equal(t, `{"carrier_code":"UPS","carrier_name":null,"carrier_url":null,"tracking_number":"1Z"}`, string(body))
	})

	t.Run("empty element is kept as empty string", func(t *testing.T) {
		data := `<anything><order_id>B7</order_id><carrier_name>Local</carrier_name><carrier_url></carrier_url></anything>`

		var file TrackingFile
		require.NoError(t, xml.Unmarshal([]byte(data), &file))

		body, err := json.Marshal(file.Submission())
		require.NoError(t, err)
		assert.JSONEq(t, `{"carrier_code":null,"carrier_name":"Local","carrier_url":"","tracking_number":null}`, string(body))
	})

	t.Run("order id never transmitted", func(t *testing.T) {
		file := TrackingFile{OrderID: "B7"}
		body, err := json.Marshal(file.Submission())
		require.NoError(t, err)
		assert.NotContains(t, string(body), "B7")
		assert.NotContains(t, string(body), "order_id")
	})
}

func TestTrackingFile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		orderID string
		wantErr bool
	}{
		{"present", "B7", false},
		{"missing", "", true},
		{"blank", "  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := TrackingFile{OrderID: tt.orderID}
			err := f.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidTrackingFile))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTrackingFile_TrimSpace(t *testing.T) {
	data := `<tracking>
  <order_id>
    B7
  </order_id>
  <carrier_code> DHL </carrier_code>
  <carrier_url>
  </carrier_url>
</tracking>`

	var file TrackingFile
	require.NoError(t, xml.Unmarshal([]byte(data), &file))
	file.TrimSpace()

	assert.Equal(t, "B7", file.OrderID)
	require.NotNil(t, file.CarrierCode)
	assert.Equal(t, "DHL", *file.CarrierCode)
	require.NotNil(t, file.CarrierURL)
	assert.Equal(t, "", *file.CarrierURL)
	assert.Nil(t, file.CarrierName)
	assert.Nil(t, file.TrackingNumber)
}
