package integration

import "strings"

// TrackingSubmission is the body of a tracking update.
//
// Each field is independently optional. A nil field is sent as null, while a pointer
// to "" is sent as an empty string: registered carriers need carrier_code (and maybe
// tracking_number), unregistered carriers need carrier_name.
type TrackingSubmission struct {
	CarrierCode    *string `json:"carrier_code"`
	CarrierName    *string `json:"carrier_name"`
	CarrierURL     *string `json:"carrier_url"`
	TrackingNumber *string `json:"tracking_number"`
}

// TrackingFile is the local tracking document. Its root element name is not checked.
//
//	<tracking>
//	  <order_id>A1</order_id>
//	  <carrier_code>UPS</carrier_code>
//	  <tracking_number>1Z999</tracking_number>
//	</tracking>
type TrackingFile struct {
	OrderID        string  `xml:"order_id"`
	CarrierCode    *string `xml:"carrier_code"`
	CarrierName    *string `xml:"carrier_name"`
	CarrierURL     *string `xml:"carrier_url"`
	TrackingNumber *string `xml:"tracking_number"`
}

// TrimSpace strips surrounding whitespace from the order id and every carrier field
// present, so pretty-printed files read the same as compact ones.
func (f *TrackingFile) TrimSpace() {
	f.OrderID = strings.TrimSpace(f.OrderID)
	for _, field := range []*string{f.CarrierCode, f.CarrierName, f.CarrierURL, f.TrackingNumber} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}

// Validate checks the file targets an order
func (f *TrackingFile) Validate() error {
	if strings.TrimSpace(f.OrderID) == "" {
		return ErrInvalidTrackingFile
	}
	return nil
}

// Submission strips the order id and returns what is sent to the marketplace
func (f *TrackingFile) Submission() TrackingSubmission {
	return TrackingSubmission{
		CarrierCode:    f.CarrierCode,
		CarrierName:    f.CarrierName,
		CarrierURL:     f.CarrierURL,
		TrackingNumber: f.TrackingNumber,
	}
}
