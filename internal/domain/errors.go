package domain

import "fmt"

// ErrorCode keys the facade error bag; recording the same code twice keeps one entry.
type ErrorCode string

const (
	ErrorCodeDeliveryDisabled    ErrorCode = "delivery_disabled"
	ErrorCodeGeocoderUnavailable ErrorCode = "geocoder_unavailable"
	ErrorCodeAddressNotFound     ErrorCode = "address_not_found"
	ErrorCodePreconditionFailed  ErrorCode = "precondition_failed"
	ErrorCodeCheckPriceFailed    ErrorCode = "check_price_failed"
	ErrorCodePricingRejected     ErrorCode = "pricing_rejected"
	ErrorCodePricingFailed       ErrorCode = "pricing_failed"
	ErrorCodeOfferCreateFailed   ErrorCode = "offer_create_failed"
)

type Error struct {
	Code    ErrorCode
	Message string
}

func (e Error) Error() string {
	return e.Message
}

func DeliveryDisabledError() error {
	return Error{
		Code:    ErrorCodeDeliveryDisabled,
		Message: "yandex delivery is switched off",
	}
}

func AddressNotFoundError(address string) error {
	return Error{
		Code:    ErrorCodeAddressNotFound,
		Message: fmt.Sprintf("address %q not found by geocoder", address),
	}
}

func PreconditionFailedError(message string) error {
	return Error{
		Code:    ErrorCodePreconditionFailed,
		Message: message,
	}
}

func PricingRejectedError(details string) error {
	return Error{
		Code:    ErrorCodePricingRejected,
		Message: fmt.Sprintf("pricing rejected by provider: %s", details),
	}
}
