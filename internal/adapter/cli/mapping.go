package cli

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/artkolev/yandex-delivery/internal/domain"
)

const NotificationTimeFormat = "02-01-2006 15:04:05"

const defaultTariff = domain.TariffTimeInterval

func MapStringToTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(NotificationTimeFormat, s)
}

func MapTariff(s string) (domain.Tariff, error) {
	switch domain.Tariff(s) {
	case "":
		return defaultTariff, nil
	case domain.TariffTimeInterval, domain.TariffSelfPickup:
		return domain.Tariff(s), nil
	default:
		return "", fmt.Errorf("unknown tariff %q", s)
	}
}

func MapCoordinate(c domain.Coordinate) string {
	if c.IsEmpty() {
		return "none"
	}
	return c.String()
}

func MapFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func sortedCodes(errs map[domain.ErrorCode]string) []string {
	codes := make([]string, 0, len(errs))
	for code := range errs {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)
	return codes
}
