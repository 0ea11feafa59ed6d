package enums

import "fmt"

// CheckoutStep identifies the wizard step a checkout draft is parked on.
// The steps are strictly linear; skipping forward is never allowed.
type CheckoutStep string

const (
	CheckoutStepPersonalInfo CheckoutStep = "personal_info"
	CheckoutStepShippingInfo CheckoutStep = "shipping_info"
	CheckoutStepPayment      CheckoutStep = "payment"
)

var orderedCheckoutSteps = []CheckoutStep{
	CheckoutStepPersonalInfo,
	CheckoutStepShippingInfo,
	CheckoutStepPayment,
}

func (c CheckoutStep) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutStep.
func (c CheckoutStep) IsValid() bool {
	for _, candidate := range orderedCheckoutSteps {
		if candidate == c {
			return true
		}
	}
	return false
}

// Index returns the zero-based position of the step in the wizard.
func (c CheckoutStep) Index() int {
	for i, candidate := range orderedCheckoutSteps {
		if candidate == c {
			return i
		}
	}
	return -1
}

// Next returns the following step and false when already on the last step.
func (c CheckoutStep) Next() (CheckoutStep, bool) {
	idx := c.Index()
	if idx < 0 || idx >= len(orderedCheckoutSteps)-1 {
		return c, false
	}
	return orderedCheckoutSteps[idx+1], true
}

// Prev returns the preceding step and false when already on the first step.
func (c CheckoutStep) Prev() (CheckoutStep, bool) {
	idx := c.Index()
	if idx <= 0 {
		return c, false
	}
	return orderedCheckoutSteps[idx-1], true
}

// ParseCheckoutStep converts raw input into a CheckoutStep.
func ParseCheckoutStep(value string) (CheckoutStep, error) {
	for _, candidate := range orderedCheckoutSteps {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout step %q", value)
}
