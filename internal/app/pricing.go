package app

import (
	"context"
	"errors"

	"github.com/artkolev/yandex-delivery/internal/domain"
	"github.com/artkolev/yandex-delivery/internal/infra/yandex"
)

// CheckPrice asks for an express courier quote between two points.
//
// false means the call was not made: quantity is not positive or a point is
// empty. A call that was made but failed returns an empty quote and true.
func (s *DeliveryService) CheckPrice(ctx context.Context, quantity int, sender, recipient domain.Coordinate) (domain.PriceQuote, bool) {
	if quantity <= 0 || sender.IsEmpty() || recipient.IsEmpty() {
		s.absorb(ctx, "check_price", domain.ErrorCodePreconditionFailed,
			domain.PreconditionFailedError("quantity must be positive and both points set"))
		return domain.PriceQuote{}, false
	}

	query := domain.PriceQuery{
		Quantity:  quantity,
		Sender:    sender,
		Recipient: recipient,
	}
	quote, err := WithTimeoutAndContextCheck(ctx, s.settings.Timeout, func(ctx context.Context) (domain.PriceQuote, error) {
		return s.pricer.CheckPrice(ctx, query)
	})
	if err != nil {
		s.absorb(ctx, "check_price", domain.ErrorCodeCheckPriceFailed, err)
		return domain.PriceQuote{}, true
	}
	return quote, true
}

// CalculatePrice returns the platform price for a parcel, or 0 when the
// provider rejected the request or no price could be read.
func (s *DeliveryService) CalculatePrice(ctx context.Context, totalWeight int64, sourceStationID, destinationAddress string, tariff domain.Tariff) float64 {
	query := domain.PriceQuery{
		TotalWeight:        totalWeight,
		SourceStationID:    sourceStationID,
		DestinationAddress: destinationAddress,
		Tariff:             tariff,
	}

	price, err := WithTimeoutAndContextCheck(ctx, s.settings.Timeout, func(ctx context.Context) (float64, error) {
		return s.pricer.CalculatePrice(ctx, query)
	})
	if err != nil {
		if errors.Is(err, yandex.ErrProviderRejected) {
			s.absorb(ctx, "calculate_price", domain.ErrorCodePricingRejected, domain.PricingRejectedError(err.Error()))
			return 0
		}
		s.absorb(ctx, "calculate_price", domain.ErrorCodePricingFailed, err)
		return 0
	}
	return price
}
