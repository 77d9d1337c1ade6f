package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/artkolev/yandex-delivery/internal/domain"
	"github.com/artkolev/yandex-delivery/internal/infra/yandex"
)

// ResolveAddress geocodes one address. It reports false when delivery is
// switched off or the geocoder gave no usable point.
func (s *DeliveryService) ResolveAddress(ctx context.Context, address string) (domain.Coordinate, bool) {
	point, err := s.resolve(ctx, address)
	if err != nil {
		return domain.Coordinate{}, false
	}
	return point, true
}

// ResolveAddresses geocodes a batch with bounded concurrency. The result is
// in input order; failed entries stay empty and their errors are combined.
func (s *DeliveryService) ResolveAddresses(ctx context.Context, addresses []string) ([]domain.Coordinate, error) {
	out := make([]domain.Coordinate, len(addresses))
	if !s.settings.Enabled {
		err := domain.DeliveryDisabledError()
		s.absorb(ctx, "resolve_addresses", domain.ErrorCodeDeliveryDisabled, err)
		return out, err
	}

	var (
		mu          sync.Mutex
		combinedErr error
		g           errgroup.Group
	)
	g.SetLimit(s.settings.GeocodeWorkers)

	for i, address := range addresses {
		i, address := i, address
		g.Go(func() error {
			point, err := s.resolve(ctx, address)
			if err != nil {
				mu.Lock()
				combinedErr = multierr.Append(combinedErr, fmt.Errorf("address %q: %w", address, err))
				mu.Unlock()
				return nil
			}
			out[i] = point
			return nil
		})
	}
	_ = g.Wait()

	return out, combinedErr
}

func (s *DeliveryService) resolve(ctx context.Context, address string) (domain.Coordinate, error) {
	if !s.settings.Enabled {
		err := domain.DeliveryDisabledError()
		s.absorb(ctx, "resolve_address", domain.ErrorCodeDeliveryDisabled, err)
		return domain.Coordinate{}, err
	}

	point, err := WithTimeoutAndContextCheck(ctx, s.settings.Timeout, func(ctx context.Context) (domain.Coordinate, error) {
		return s.geocoder.ResolveAddress(ctx, address)
	})
	if err != nil {
		s.absorb(ctx, "resolve_address", geocodeErrorCode(err), err)
		return domain.Coordinate{}, err
	}
	if point.IsEmpty() {
		err := domain.AddressNotFoundError(address)
		s.absorb(ctx, "resolve_address", domain.ErrorCodeAddressNotFound, err)
		return domain.Coordinate{}, err
	}
	return point, nil
}

func geocodeErrorCode(err error) domain.ErrorCode {
	switch {
	case errors.Is(err, yandex.ErrPathNotFound):
		return domain.ErrorCodeAddressNotFound
	case errors.Is(err, yandex.ErrEmptyRequest):
		return domain.ErrorCodePreconditionFailed
	default:
		return domain.ErrorCodeGeocoderUnavailable
	}
}

// ParseCoordinates normalizes a point given as a Coordinate, a pointer to
// one or a "lat,lng" string.
func (s *DeliveryService) ParseCoordinates(v any) (domain.Coordinate, bool) {
	return domain.NormalizeCoordinate(v)
}
