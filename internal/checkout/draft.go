package checkout

import (
	"github.com/trendora-io/storefront-backend/pkg/enums"
	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
)

// PersonalInfo is the first wizard step.
type PersonalInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ShippingForm is the second wizard step.
type ShippingForm struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PaymentForm is the final wizard step. Card fields are only required when the
// method is card; they hold raw input and are masked before anything persists.
type PaymentForm struct {
	Method     enums.PaymentMethod `json:"method"`
	CardNumber string              `json:"card_number,omitempty"`
	CardExpiry string              `json:"card_expiry,omitempty"`
	CardCvv    string              `json:"card_cvv,omitempty"`
	CardName   string              `json:"card_name,omitempty"`
}

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// Draft is the session's in-progress checkout. Step always points at the
// furthest step the user may edit; earlier steps stay editable and their data
// survives any amount of back-and-forth.
type Draft struct {
	Step     enums.CheckoutStep `json:"step"`
	Personal PersonalInfo       `json:"personal"`
	Shipping ShippingForm       `json:"shipping"`
	Payment  PaymentForm        `json:"payment"`
	Notes    string             `json:"notes,omitempty"`
}

// NewDraft starts a fresh wizard on the first step.
func NewDraft() *Draft {
	return &Draft{Step: enums.CheckoutStepPersonalInfo}
}

// SubmitPersonal stores the personal step and advances when it validates.
// Invalid data keeps the wizard in place and returns the field errors.
func (d *Draft) SubmitPersonal(info PersonalInfo) (FieldErrors, error) {
	d.Personal = info
	if errs := validatePersonal(info); len(errs) > 0 {
		return errs, nil
	}
	d.advancePast(enums.CheckoutStepPersonalInfo)
	return nil, nil
}

// SubmitShipping stores the shipping step and advances when it validates. The
// step must already be reachable; skipping ahead is rejected.
func (d *Draft) SubmitShipping(form ShippingForm) (FieldErrors, error) {
	if err := d.requireReached(enums.CheckoutStepShippingInfo); err != nil {
		return nil, err
	}
	d.Shipping = form
	if errs := validateShipping(form); len(errs) > 0 {
		return errs, nil
	}
	d.advancePast(enums.CheckoutStepShippingInfo)
	return nil, nil
}

// SubmitPayment stores the payment step. It formats card input before
// validating so "4111111111111111" and its grouped form are equivalent.
func (d *Draft) SubmitPayment(form PaymentForm) (FieldErrors, error) {
	if err := d.requireReached(enums.CheckoutStepPayment); err != nil {
		return nil, err
	}
	if form.Method == enums.PaymentMethodCard {
		form.CardNumber = FormatCardNumber(form.CardNumber)
		form.CardExpiry = FormatCardExpiry(form.CardExpiry)
		form.CardCvv = FormatCardCvv(form.CardCvv)
	}
	d.Payment = form
	if errs := validatePayment(form); len(errs) > 0 {
		return errs, nil
	}
	return nil, nil
}

// Back moves one step toward the start. It never validates and never touches
// entered data; backing up from the first step is a no-op.
func (d *Draft) Back() {
	if prev, ok := d.Step.Prev(); ok {
		d.Step = prev
	}
}

// Validate re-checks every committed step. Submission requires an empty result.
func (d *Draft) Validate() FieldErrors {
	errs := FieldErrors{}
	for field, msg := range validatePersonal(d.Personal) {
		errs[field] = msg
	}
	for field, msg := range validateShipping(d.Shipping) {
		errs[field] = msg
	}
	for field, msg := range validatePayment(d.Payment) {
		errs[field] = msg
	}
	return errs
}

func (d *Draft) advancePast(step enums.CheckoutStep) {
	if d.Step != step {
		return
	}
	if next, ok := step.Next(); ok {
		d.Step = next
	}
}

func (d *Draft) requireReached(step enums.CheckoutStep) error {
	if d.Step.Index() < step.Index() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "earlier checkout steps are incomplete").
			WithDetails(map[string]string{"current_step": d.Step.String(), "requested_step": step.String()})
	}
	return nil
}
