package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/artkolev/yandex-delivery/internal/domain"
)

type DeliveryService interface {
	ResolveAddress(ctx context.Context, address string) (domain.Coordinate, bool)
	ParseCoordinates(v any) (domain.Coordinate, bool)
	CheckPrice(ctx context.Context, quantity int, sender, recipient domain.Coordinate) (domain.PriceQuote, bool)
	CalculatePrice(ctx context.Context, totalWeight int64, sourceStationID, destinationAddress string, tariff domain.Tariff) float64
	CreateOrderOffer(ctx context.Context, order domain.Order, user domain.User, address, room string) map[string]any
	RecordNotification(phone, message string, at time.Time) bool
	Log() []string
	Errors() map[domain.ErrorCode]string
}

type CLIAdapter struct {
	appService DeliveryService
}

func NewCLIAdapter(appService DeliveryService) *CLIAdapter {
	return &CLIAdapter{appService: appService}
}

func (a *CLIAdapter) RegisterCommands(rootCmd *cobra.Command) {
	a.registerCommands(rootCmd)
}
