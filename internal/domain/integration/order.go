package integration

import (
	"encoding/xml"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Order State
// ---------------------------------------------------------------------------

// OrderStateWaitingAcceptance is the only state that triggers an automatic accept.
// Order states are otherwise free text owned by the marketplace.
const OrderStateWaitingAcceptance = "WAITING_ACCEPTANCE"

// ---------------------------------------------------------------------------
// OrderPage
// ---------------------------------------------------------------------------

// OrderPage is one page of the orders listing.
type OrderPage struct {
	Orders     []Order `json:"orders"`
	TotalCount int     `json:"total_count"`
	// NextTarget is taken from the Link header, not from the body
	NextTarget string `json:"-"`
}

// HasMore returns true if the listing continues on another page
func (p *OrderPage) HasMore() bool {
	return p.NextTarget != ""
}

// ---------------------------------------------------------------------------
// Order
// ---------------------------------------------------------------------------

// Order is an immutable snapshot of a marketplace order as returned by the
// orders listing. It decodes from the listing's JSON and encodes to the XML
// document written for downstream consumers, rooted at <Order>.
type Order struct {
	XMLName xml.Name `json:"-" xml:"Order"`

	OrderID          string `json:"order_id" xml:"order_id"`
	CommercialID     string `json:"commercial_id" xml:"commercial_id"`
	OrderState       string `json:"order_state" xml:"order_state"`
	StateReasonCode  string `json:"order_state_reason_code,omitempty" xml:"order_state_reason_code,omitempty"`
	StateReasonLabel string `json:"order_state_reason_label,omitempty" xml:"order_state_reason_label,omitempty"`

	CreatedDate            string        `json:"created_date" xml:"created_date"`
	LastUpdatedDate        string        `json:"last_updated_date" xml:"last_updated_date"`
	AcceptanceDecisionDate string        `json:"acceptance_decision_date,omitempty" xml:"acceptance_decision_date,omitempty"`
	CustomerDebitedDate    string        `json:"customer_debited_date,omitempty" xml:"customer_debited_date,omitempty"`
	ShippingDeadline       string        `json:"shipping_deadline,omitempty" xml:"shipping_deadline,omitempty"`
	TransactionDate        string        `json:"transaction_date,omitempty" xml:"transaction_date,omitempty"`
	TransactionNumber      string        `json:"transaction_number,omitempty" xml:"transaction_number,omitempty"`
	DeliveryDate           *DeliveryDate `json:"delivery_date,omitempty" xml:"delivery_date,omitempty"`

	CanCancel                  bool  `json:"can_cancel" xml:"can_cancel"`
	CanShopShip                bool  `json:"can_shop_ship" xml:"can_shop_ship"`
	FullyRefunded              bool  `json:"fully_refunded" xml:"fully_refunded"`
	HasCustomerMessage         bool  `json:"has_customer_message" xml:"has_customer_message"`
	HasIncident                bool  `json:"has_incident" xml:"has_incident"`
	HasInvoice                 bool  `json:"has_invoice" xml:"has_invoice"`
	CustomerDirectlyPaysSeller *bool `json:"customer_directly_pays_seller,omitempty" xml:"customer_directly_pays_seller,omitempty"`

	Channel                   *Channel         `json:"channel,omitempty" xml:"channel,omitempty"`
	Customer                  Customer         `json:"customer" xml:"customer"`
	CustomerNotificationEmail string           `json:"customer_notification_email,omitempty" xml:"customer_notification_email,omitempty"`
	Fulfillment               Fulfillment      `json:"fulfillment" xml:"fulfillment"`
	InvoiceDetails            *InvoiceDetails  `json:"invoice_details,omitempty" xml:"invoice_details,omitempty"`
	References                *OrderReferences `json:"references,omitempty" xml:"references,omitempty"`
	QuoteID                   string           `json:"quote_id,omitempty" xml:"quote_id,omitempty"`

	// Pricing
	CurrencyISOCode string           `json:"currency_iso_code" xml:"currency_iso_code"`
	OrderTaxMode    string           `json:"order_tax_mode" xml:"order_tax_mode"`
	PaymentType     string           `json:"payment_type" xml:"payment_type"`
	PaymentWorkflow string           `json:"payment_workflow,omitempty" xml:"payment_workflow,omitempty"`
	PaymentDuration *int             `json:"payment_duration,omitempty" xml:"payment_duration,omitempty"`
	Price           decimal.Decimal  `json:"price" xml:"price"`
	ShippingPrice   decimal.Decimal  `json:"shipping_price" xml:"shipping_price"`
	TotalCommission decimal.Decimal  `json:"total_commission" xml:"total_commission"`
	TotalPrice      decimal.Decimal  `json:"total_price" xml:"total_price"`
	Promotions      *OrderPromotions `json:"promotions,omitempty" xml:"promotions,omitempty"`

	// Shipping
	ShippingCarrierCode string        `json:"shipping_carrier_code,omitempty" xml:"shipping_carrier_code,omitempty"`
	ShippingCompany     string        `json:"shipping_company,omitempty" xml:"shipping_company,omitempty"`
	ShippingFrom        *ShippingFrom `json:"shipping_from,omitempty" xml:"shipping_from,omitempty"`
	ShippingPudoID      string        `json:"shipping_pudo_id,omitempty" xml:"shipping_pudo_id,omitempty"`
	ShippingTracking    string        `json:"shipping_tracking,omitempty" xml:"shipping_tracking,omitempty"`
	ShippingTrackingURL string        `json:"shipping_tracking_url,omitempty" xml:"shipping_tracking_url,omitempty"`
	ShippingTypeCode    string        `json:"shipping_type_code" xml:"shipping_type_code"`
	ShippingTypeLabel   string        `json:"shipping_type_label" xml:"shipping_type_label"`
	ShippingZoneCode    string        `json:"shipping_zone_code" xml:"shipping_zone_code"`
	ShippingZoneLabel   string        `json:"shipping_zone_label" xml:"shipping_zone_label"`

	OrderLines       []OrderLine      `json:"order_lines" xml:"order_lines>order_line"`
	AdditionalFields AdditionalFields `json:"order_additional_fields,omitempty" xml:"order_additional_fields,omitempty"`
}

// RequiresAcceptance returns true if the order is waiting for the shop to accept it.
// The comparison is exact: no trimming, no case folding.
func (o *Order) RequiresAcceptance() bool {
	return o.OrderState == OrderStateWaitingAcceptance
}

// Channel is the sales channel of the order
type Channel struct {
	Code  string `json:"code" xml:"code"`
	Label string `json:"label" xml:"label"`
}

// DeliveryDate is the expected delivery window
type DeliveryDate struct {
	Earliest string `json:"earliest" xml:"earliest"`
	Latest   string `json:"latest" xml:"latest"`
}

// Fulfillment holds the fulfillment center of the order
type Fulfillment struct {
	Center FulfillmentCenter `json:"center" xml:"center"`
}

// FulfillmentCenter identifies a fulfillment center
type FulfillmentCenter struct {
	Code string `json:"code" xml:"code"`
}

// OrderReferences are the shop- and customer-facing order references
type OrderReferences struct {
	ForCustomer string `json:"order_reference_for_customer,omitempty" xml:"order_reference_for_customer,omitempty"`
	ForSeller   string `json:"order_reference_for_seller,omitempty" xml:"order_reference_for_seller,omitempty"`
}

// InvoiceDetails describes the invoice linked to the order
type InvoiceDetails struct {
	DocumentDetails []DocumentDetail `json:"document_details,omitempty" xml:"document_details>document_detail,omitempty"`
	PaymentTerms    *PaymentTerms    `json:"payment_terms,omitempty" xml:"payment_terms,omitempty"`
}

// DocumentDetail is an accounting document format
type DocumentDetail struct {
	Format string `json:"format,omitempty" xml:"format,omitempty"`
}

// PaymentTerms of an invoice
type PaymentTerms struct {
	Days int    `json:"days" xml:"days"`
	Type string `json:"type" xml:"type"`
}

// ---------------------------------------------------------------------------
// Customer
// ---------------------------------------------------------------------------

// Customer is the customer who placed the order
type Customer struct {
	CustomerID        string        `json:"customer_id" xml:"customer_id"`
	Civility          string        `json:"civility,omitempty" xml:"civility,omitempty"`
	Firstname         string        `json:"firstname" xml:"firstname"`
	Lastname          string        `json:"lastname" xml:"lastname"`
	Locale            string        `json:"locale,omitempty" xml:"locale,omitempty"`
	BillingAddress    Address       `json:"billing_address" xml:"billing_address"`
	ShippingAddress   Address       `json:"shipping_address" xml:"shipping_address"`
	AccountingContact *Contact      `json:"accounting_contact,omitempty" xml:"accounting_contact,omitempty"`
	DeliveryContact   *Contact      `json:"delivery_contact,omitempty" xml:"delivery_contact,omitempty"`
	Organization      *Organization `json:"organization,omitempty" xml:"organization,omitempty"`
}

// Contact is a person attached to a B2B organization
type Contact struct {
	CustomerID string `json:"customer_id" xml:"customer_id"`
	Civility   string `json:"civility,omitempty" xml:"civility,omitempty"`
	Firstname  string `json:"firstname" xml:"firstname"`
	Lastname   string `json:"lastname" xml:"lastname"`
	Locale     string `json:"locale,omitempty" xml:"locale,omitempty"`
}

// Address is a postal address
type Address struct {
	Civility       string `json:"civility,omitempty" xml:"civility,omitempty"`
	Company        string `json:"company,omitempty" xml:"company,omitempty"`
	Firstname      string `json:"firstname,omitempty" xml:"firstname,omitempty"`
	Lastname       string `json:"lastname" xml:"lastname"`
	Street1        string `json:"street_1" xml:"street_1"`
	Street2        string `json:"street_2,omitempty" xml:"street_2,omitempty"`
	ZipCode        string `json:"zip_code,omitempty" xml:"zip_code,omitempty"`
	City           string `json:"city" xml:"city"`
	State          string `json:"state,omitempty" xml:"state,omitempty"`
	CountryISOCode string `json:"country_iso_code" xml:"country_iso_code"`
	Phone          string `json:"phone,omitempty" xml:"phone,omitempty"`
	PhoneSecondary string `json:"phone_secondary,omitempty" xml:"phone_secondary,omitempty"`
}

// Organization is the customer organization for B2B orders
type Organization struct {
	OrganizationID          string               `json:"organization_id" xml:"organization_id"`
	Name                    string               `json:"name,omitempty" xml:"name,omitempty"`
	IdentificationNumber    string               `json:"identification_number,omitempty" xml:"identification_number,omitempty"`
	TaxIdentificationNumber string               `json:"tax_identification_number,omitempty" xml:"tax_identification_number,omitempty"`
	Address                 *OrganizationAddress `json:"address,omitempty" xml:"address,omitempty"`
}

// OrganizationAddress is the registered address of an organization
type OrganizationAddress struct {
	Street1        string `json:"street_1" xml:"street_1"`
	Street2        string `json:"street_2,omitempty" xml:"street_2,omitempty"`
	ZipCode        string `json:"zip_code" xml:"zip_code"`
	City           string `json:"city" xml:"city"`
	State          string `json:"state,omitempty" xml:"state,omitempty"`
	CountryISOCode string `json:"country_iso_code" xml:"country_iso_code"`
}

// ShippingFrom describes where an offer ships from
type ShippingFrom struct {
	Address *ShippingFromAddress `json:"address,omitempty" xml:"address,omitempty"`
}

// ShippingFromAddress uses ISO 3166-1 alpha-3 country codes
type ShippingFromAddress struct {
	Street1        string `json:"street_1,omitempty" xml:"street_1,omitempty"`
	Street2        string `json:"street_2,omitempty" xml:"street_2,omitempty"`
	ZipCode        string `json:"zip_code,omitempty" xml:"zip_code,omitempty"`
	City           string `json:"city,omitempty" xml:"city,omitempty"`
	State          string `json:"state,omitempty" xml:"state,omitempty"`
	CountryISOCode string `json:"country_iso_code" xml:"country_iso_code"`
}

// ---------------------------------------------------------------------------
// Order Lines
// ---------------------------------------------------------------------------

// OrderLine is one product line of an order
type OrderLine struct {
	OrderLineID               string `json:"order_line_id" xml:"order_line_id"`
	OrderLineIndex            int    `json:"order_line_index" xml:"order_line_index"`
	OrderLineState            string `json:"order_line_state" xml:"order_line_state"`
	OrderLineStateReasonCode  string `json:"order_line_state_reason_code,omitempty" xml:"order_line_state_reason_code,omitempty"`
	OrderLineStateReasonLabel string `json:"order_line_state_reason_label,omitempty" xml:"order_line_state_reason_label,omitempty"`
	CreatedDate               string `json:"created_date" xml:"created_date"`
	LastUpdatedDate           string `json:"last_updated_date" xml:"last_updated_date"`
	DebitedDate               string `json:"debited_date,omitempty" xml:"debited_date,omitempty"`
	ShippedDate               string `json:"shipped_date,omitempty" xml:"shipped_date,omitempty"`
	ReceivedDate              string `json:"received_date,omitempty" xml:"received_date,omitempty"`

	OfferID        int64  `json:"offer_id" xml:"offer_id"`
	OfferSKU       string `json:"offer_sku" xml:"offer_sku"`
	OfferStateCode string `json:"offer_state_code" xml:"offer_state_code"`
	ProductSKU     string `json:"product_sku" xml:"product_sku"`
	ProductTitle   string `json:"product_title" xml:"product_title"`
	Description    string `json:"description" xml:"description"`
	CategoryCode   string `json:"category_code" xml:"category_code"`
	CategoryLabel  string `json:"category_label" xml:"category_label"`
	Quantity       int    `json:"quantity" xml:"quantity"`
	CanRefund      bool   `json:"can_refund" xml:"can_refund"`

	Price                        decimal.Decimal       `json:"price" xml:"price"`
	PriceUnit                    decimal.Decimal       `json:"price_unit" xml:"price_unit"`
	OriginUnitPrice              *decimal.Decimal      `json:"origin_unit_price,omitempty" xml:"origin_unit_price,omitempty"`
	PriceAdditionalInfo          string                `json:"price_additional_info,omitempty" xml:"price_additional_info,omitempty"`
	PriceAmountBreakdown         *PriceAmountBreakdown `json:"price_amount_breakdown,omitempty" xml:"price_amount_breakdown,omitempty"`
	ShippingPrice                decimal.Decimal       `json:"shipping_price" xml:"shipping_price"`
	ShippingPriceAmountBreakdown *PriceAmountBreakdown `json:"shipping_price_amount_breakdown,omitempty" xml:"shipping_price_amount_breakdown,omitempty"`
	CommissionFee                decimal.Decimal       `json:"commission_fee" xml:"commission_fee"`
	CommissionTaxes              []CommissionTax       `json:"commission_taxes,omitempty" xml:"commission_taxes>commission_tax,omitempty"`
	TotalCommission              decimal.Decimal       `json:"total_commission" xml:"total_commission"`
	TotalPrice                   decimal.Decimal       `json:"total_price" xml:"total_price"`
	Taxes                        []Tax                 `json:"taxes,omitempty" xml:"taxes>tax,omitempty"`
	ShippingTaxes                []Tax                 `json:"shipping_taxes,omitempty" xml:"shipping_taxes>tax,omitempty"`

	Cancelations        []Cancelation        `json:"cancelations" xml:"cancelations>cancelation"`
	Refunds             []Refund             `json:"refunds" xml:"refunds>refund"`
	Promotions          []Promotion          `json:"promotions" xml:"promotions>promotion"`
	ProductMedias       []ProductMedia       `json:"product_medias" xml:"product_medias>product_media"`
	Measurement         *Measurement         `json:"measurement,omitempty" xml:"measurement,omitempty"`
	PurchaseInformation *PurchaseInformation `json:"purchase_information,omitempty" xml:"purchase_information,omitempty"`
	ShippingFrom        *ShippingFrom        `json:"shipping_from,omitempty" xml:"shipping_from,omitempty"`
	AdditionalFields    AdditionalFields     `json:"order_line_additional_fields" xml:"order_line_additional_fields,omitempty"`
}

// Cancelation of (part of) an order line
type Cancelation struct {
	ID                      string                `json:"id" xml:"id"`
	CreatedDate             string                `json:"created_date" xml:"created_date"`
	ReasonCode              string                `json:"reason_code" xml:"reason_code"`
	Quantity                *int                  `json:"quantity,omitempty" xml:"quantity,omitempty"`
	Amount                  *decimal.Decimal      `json:"amount,omitempty" xml:"amount,omitempty"`
	AmountBreakdown         *PriceAmountBreakdown `json:"amount_breakdown,omitempty" xml:"amount_breakdown,omitempty"`
	ShippingAmount          *decimal.Decimal      `json:"shipping_amount,omitempty" xml:"shipping_amount,omitempty"`
	ShippingAmountBreakdown *PriceAmountBreakdown `json:"shipping_amount_breakdown,omitempty" xml:"shipping_amount_breakdown,omitempty"`
	CommissionAmount        decimal.Decimal       `json:"commission_amount" xml:"commission_amount"`
	CommissionTaxes         []CommissionTax       `json:"commission_taxes" xml:"commission_taxes>commission_tax"`
	CommissionTotalAmount   decimal.Decimal       `json:"commission_total_amount" xml:"commission_total_amount"`
	Taxes                   []Tax                 `json:"taxes,omitempty" xml:"taxes>tax,omitempty"`
	ShippingTaxes           []Tax                 `json:"shipping_taxes,omitempty" xml:"shipping_taxes>tax,omitempty"`
	PurchaseInformation     *PurchaseInformation  `json:"purchase_information,omitempty" xml:"purchase_information,omitempty"`
}

// Refund of (part of) an order line
type Refund struct {
	ID                      string                `json:"id" xml:"id"`
	State                   string                `json:"state" xml:"state"`
	CreatedDate             string                `json:"created_date" xml:"created_date"`
	ReasonCode              string                `json:"reason_code" xml:"reason_code"`
	Quantity                *int                  `json:"quantity,omitempty" xml:"quantity,omitempty"`
	Amount                  *decimal.Decimal      `json:"amount,omitempty" xml:"amount,omitempty"`
	AmountBreakdown         *PriceAmountBreakdown `json:"amount_breakdown,omitempty" xml:"amount_breakdown,omitempty"`
	ShippingAmount          *decimal.Decimal      `json:"shipping_amount,omitempty" xml:"shipping_amount,omitempty"`
	ShippingAmountBreakdown *PriceAmountBreakdown `json:"shipping_amount_breakdown,omitempty" xml:"shipping_amount_breakdown,omitempty"`
	CommissionAmount        decimal.Decimal       `json:"commission_amount" xml:"commission_amount"`
	CommissionTaxes         []CommissionTax       `json:"commission_taxes" xml:"commission_taxes>commission_tax"`
	CommissionTotalAmount   decimal.Decimal       `json:"commission_total_amount" xml:"commission_total_amount"`
	Taxes                   []Tax                 `json:"taxes,omitempty" xml:"taxes>tax,omitempty"`
	ShippingTaxes           []Tax                 `json:"shipping_taxes,omitempty" xml:"shipping_taxes>tax,omitempty"`
	PurchaseInformation     *PurchaseInformation  `json:"purchase_information,omitempty" xml:"purchase_information,omitempty"`
	TransactionDate         string                `json:"transaction_date" xml:"transaction_date"`
	TransactionNumber       string                `json:"transaction_number" xml:"transaction_number"`
}

// PriceAmountBreakdown splits an amount into parts
type PriceAmountBreakdown struct {
	Parts []PriceAmountBreakdownPart `json:"parts" xml:"parts>part"`
}

// PriceAmountBreakdownPart is one part of a breakdown; parts sum to the total
type PriceAmountBreakdownPart struct {
	Amount                decimal.Decimal `json:"amount" xml:"amount"`
	Commissionable        *bool           `json:"commissionable,omitempty" xml:"commissionable,omitempty"`
	DebitableFromCustomer *bool           `json:"debitable_from_customer,omitempty" xml:"debitable_from_customer,omitempty"`
	PayableToShop         *bool           `json:"payable_to_shop,omitempty" xml:"payable_to_shop,omitempty"`
}

// CommissionTax is a tax applied on a commission
type CommissionTax struct {
	Code   string          `json:"code" xml:"code"`
	Amount decimal.Decimal `json:"amount" xml:"amount"`
}

// Tax applied on a price
type Tax struct {
	Code            string                `json:"code" xml:"code"`
	Amount          decimal.Decimal       `json:"amount" xml:"amount"`
	Rate            *decimal.Decimal      `json:"rate,omitempty" xml:"rate,omitempty"`
	AmountBreakdown *PriceAmountBreakdown `json:"amount_breakdown,omitempty" xml:"amount_breakdown,omitempty"`
	PurchaseTax     *PurchaseTax          `json:"purchase_tax,omitempty" xml:"purchase_tax,omitempty"`
}

// PurchaseTax is the purchase-side tax information
type PurchaseTax struct {
	PurchaseAmount decimal.Decimal  `json:"purchase_amount" xml:"purchase_amount"`
	PurchaseRate   *decimal.Decimal `json:"purchase_rate,omitempty" xml:"purchase_rate,omitempty"`
}

// PurchaseInformation holds purchase prices and commissions
type PurchaseInformation struct {
	PurchaseCommissionOnPrice    decimal.Decimal `json:"purchase_comission_on_price" xml:"purchase_comission_on_price"`
	PurchaseCommissionOnShipping decimal.Decimal `json:"purchase_comission_on_shipping" xml:"purchase_comission_on_shipping"`
	PurchasePrice                decimal.Decimal `json:"purchase_price" xml:"purchase_price"`
	PurchaseShippingPrice        decimal.Decimal `json:"purchase_shipping_price" xml:"purchase_shipping_price"`
}

// Promotion applied to an order line
type Promotion struct {
	ID              string                  `json:"id" xml:"id"`
	Apportioned     bool                    `json:"apportioned" xml:"apportioned"`
	DeducedAmount   decimal.Decimal         `json:"deduced_amount" xml:"deduced_amount"`
	OfferedQuantity *int                    `json:"offered_quantity,omitempty" xml:"offered_quantity,omitempty"`
	Configuration   *PromotionConfiguration `json:"configuration,omitempty" xml:"configuration,omitempty"`
}

// PromotionConfiguration is the configuration a promotion was computed from
type PromotionConfiguration struct {
	PromotionType       string           `json:"promotion_type" xml:"promotion_type"`
	InternalDescription string           `json:"internal_description" xml:"internal_description"`
	AmountOff           *decimal.Decimal `json:"amount_off,omitempty" xml:"amount_off,omitempty"`
	PercentageOff       *decimal.Decimal `json:"percentage_off,omitempty" xml:"percentage_off,omitempty"`
	FreeItemsQuantity   *int             `json:"free_items_quantity,omitempty" xml:"free_items_quantity,omitempty"`
}

// OrderPromotions summarizes the promotions applied on the order
type OrderPromotions struct {
	AppliedPromotions  []Promotion     `json:"applied_promotions" xml:"applied_promotions>promotion"`
	TotalDeducedAmount decimal.Decimal `json:"total_deduced_amount" xml:"total_deduced_amount"`
}

// ProductMedia is a media attached to the product of a line
type ProductMedia struct {
	MediaURL string `json:"media_url" xml:"media_url"`
	MimeType string `json:"mime_type" xml:"mime_type"`
	Type     string `json:"type" xml:"type"`
}

// Measurement information of an order line
type Measurement struct {
	ActualMeasurement  *decimal.Decimal `json:"actual_measurement,omitempty" xml:"actual_measurement,omitempty"`
	AdjustmentLimit    *decimal.Decimal `json:"adjustment_limit,omitempty" xml:"adjustment_limit,omitempty"`
	MeasurementUnit    string           `json:"measurement_unit,omitempty" xml:"measurement_unit,omitempty"`
	OrderedMeasurement *decimal.Decimal `json:"ordered_measurement,omitempty" xml:"ordered_measurement,omitempty"`
}
