package domain

import "fmt"

// PriceVariant selects which pricing endpoint and payload shape is used.
type PriceVariant uint8

const (
	// VariantCheckPrice is the cargo "check-price" call: item count and two points.
	VariantCheckPrice PriceVariant = iota
	// VariantPricingCalculator is the platform calculator: weight, station, address, tariff.
	VariantPricingCalculator
)

func (v PriceVariant) String() string {
	switch v {
	case VariantCheckPrice:
		return "check_price"
	case VariantPricingCalculator:
		return "pricing_calculator"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

type Tariff string

const (
	TariffTimeInterval Tariff = "time_interval"
	TariffSelfPickup   Tariff = "self_pickup"
)

// PriceQuery carries the inputs of both variants; each builder reads only its own fields.
type PriceQuery struct {
	Quantity  int
	Sender    Coordinate
	Recipient Coordinate

	TotalWeight        int64
	SourceStationID    string
	DestinationAddress string
	Tariff             Tariff
}

// PriceQuote is the check-price answer. Price is zero when the provider gave none.
type PriceQuote struct {
	Price          float64
	Currency       string
	DistanceMeters float64
	ETA            int64
}

func (q PriceQuote) IsEmpty() bool {
	return q.Price == 0 && q.Currency == ""
}
