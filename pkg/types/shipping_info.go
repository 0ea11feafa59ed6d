package types

// ShippingInfo is the delivery destination captured at checkout.
type ShippingInfo struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PaymentInfo records how an order was paid. Card number and CVV are stored
// masked only; the raw values never leave the checkout flow.
type PaymentInfo struct {
	Method           string `json:"method"`
	Status           string `json:"status"`
	MaskedCardNumber string `json:"masked_card_number,omitempty"`
	MaskedCardCvv    string `json:"masked_card_cvv,omitempty"`
	CardHolder       string `json:"card_holder,omitempty"`
}
