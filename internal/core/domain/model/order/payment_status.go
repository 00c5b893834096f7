package order

import (
	"fmt"

	"rental/internal/pkg/errs"
)

// PaymentStatus is the payment dimension of an order, independent of the
// commercial and delivery dimensions.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending means payment has not been captured yet.
	PaymentPending

	// PaymentPaid means payment was captured.
	PaymentPaid

	// PaymentFailed means a capture attempt failed.
	PaymentFailed

	// PaymentCancelled means payment was called off before capture.
	PaymentCancelled

	// PaymentRefunded means a captured payment was returned. Terminal.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "Unknown",
		PaymentPending:       "pending",
		PaymentPaid:          "paid",
		PaymentFailed:        "failed",
		PaymentCancelled:     "cancelled",
		PaymentRefunded:      "refunded",
	}
}

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentPending:   "pending",
		PaymentPaid:      "paid",
		PaymentFailed:    "failed",
		PaymentCancelled: "cancelled",
		PaymentRefunded:  "refunded",
	}
}

// Validate checks if the PaymentStatus is one of the valid values.
func (s PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the storage/display name of the status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// PaymentStatusFromString parses a stored payment status name.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getValidPaymentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}
