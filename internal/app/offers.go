package app

import (
	"context"

	"github.com/artkolev/yandex-delivery/internal/domain"
)

// CreateOffer submits req and returns the provider answer, or nil on any failure.
// An unset source platform or place is taken from the settings.
func (s *DeliveryService) CreateOffer(ctx context.Context, req domain.OfferRequest) map[string]any {
	if req.SourcePlatformID == "" {
		req.SourcePlatformID = s.settings.SourcePlatformID
	}
	if req.Place == (domain.Place{}) {
		req.Place = s.settings.DefaultPlace
	}

	resp, err := WithTimeoutAndContextCheck(ctx, s.settings.Timeout, func(ctx context.Context) (map[string]any, error) {
		return s.offers.CreateOffer(ctx, req)
	})
	if err != nil {
		s.absorb(ctx, "create_offer", domain.ErrorCodeOfferCreateFailed, err)
		return nil
	}
	return resp
}

// CreateOrderOffer maps a shop order and its buyer, then submits the offer.
func (s *DeliveryService) CreateOrderOffer(ctx context.Context, order domain.Order, user domain.User, address, room string) map[string]any {
	return s.CreateOffer(ctx, domain.NewOfferRequest(order, user, s.settings.SourcePlatformID, address, room))
}
