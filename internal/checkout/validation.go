package checkout

import (
	"regexp"
	"strings"

	"github.com/trendora-io/storefront-backend/pkg/enums"
)

var (
	emailPattern      = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	postalPattern     = regexp.MustCompile(`^\d{5}$`)
	cardNumberPattern = regexp.MustCompile(`^\d{4} \d{4} \d{4} \d{4}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

func validatePersonal(info PersonalInfo) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(info.Name) == "" {
		errs["name"] = "name is required"
	}
	if !emailPattern.MatchString(info.Email) {
		errs["email"] = "email is invalid"
	}
	if digits := digitsOnly(info.Phone); len(digits) < 10 || len(digits) > 11 {
		errs["phone"] = "phone must contain 10 to 11 digits"
	}
	return errs
}

func validateShipping(form ShippingForm) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(form.Address) == "" {
		errs["address"] = "address is required"
	}
	if strings.TrimSpace(form.City) == "" {
		errs["city"] = "city is required"
	}
	if strings.TrimSpace(form.State) == "" {
		errs["state"] = "state is required"
	}
	if !postalPattern.MatchString(form.PostalCode) {
		errs["postal_code"] = "postal code must be exactly 5 digits"
	}
	return errs
}

func validatePayment(form PaymentForm) FieldErrors {
	errs := FieldErrors{}
	if !form.Method.IsValid() {
		errs["method"] = "payment method is invalid"
		return errs
	}
	if form.Method != enums.PaymentMethodCard {
		return errs
	}
	if !cardNumberPattern.MatchString(form.CardNumber) {
		errs["card_number"] = "card number must be 16 digits"
	}
	if !cardExpiryPattern.MatchString(form.CardExpiry) {
		errs["card_expiry"] = "expiry must match MM/YY"
	}
	if !cardCvvPattern.MatchString(form.CardCvv) {
		errs["card_cvv"] = "cvv must be 3 or 4 digits"
	}
	if strings.TrimSpace(form.CardName) == "" {
		errs["card_name"] = "cardholder name is required"
	}
	return errs
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
