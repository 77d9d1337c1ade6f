package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artkolev/yandex-delivery/internal/domain"
)

// OfferFile is the layout read by create-offer.
type OfferFile struct {
	Order   domain.Order `json:"order"`
	User    domain.User  `json:"user"`
	Address string       `json:"address"`
	Room    string       `json:"room"`
}

func (a *CLIAdapter) GeocodeComm(cmd *cobra.Command, args []string) error {
	address, err := cmd.Flags().GetString("address")
	if err != nil {
		return fmt.Errorf("flag.GetString: %w", err)
	}
	if address == "" {
		return ValidationFailedError("address must not be empty")
	}

	ctx, trace := domain.WithErrorTrace(cmd.Context())
	point, ok := a.appService.ResolveAddress(ctx, address)
	if !ok {
		return mapError("address not resolved", trace.Codes())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "COORDINATES: %s\n", MapCoordinate(point))
	return nil
}

func (a *CLIAdapter) ParseCoordsComm(cmd *cobra.Command, args []string) error {
	value, err := cmd.Flags().GetString("value")
	if err != nil {
		return fmt.Errorf("flag.GetString: %w", err)
	}

	point, ok := a.appService.ParseCoordinates(value)
	if !ok {
		return ValidationFailedError("empty coordinate string")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "LATITUDE: %v\n", point.Latitude)
	fmt.Fprintf(out, "LONGITUDE: %v\n", point.Longitude)
	return nil
}

func (a *CLIAdapter) CheckPriceComm(cmd *cobra.Command, args []string) error {
	quantity, err := cmd.Flags().GetInt("quantity")
	if err != nil {
		return fmt.Errorf("flag.GetInt: %w", err)
	}

	sender, err := a.point(cmd, "from", "from-address")
	if err != nil {
		return err
	}
	recipient, err := a.point(cmd, "to", "to-address")
	if err != nil {
		return err
	}

	ctx, trace := domain.WithErrorTrace(cmd.Context())
	quote, ok := a.appService.CheckPrice(ctx, quantity, sender, recipient)
	if !ok {
		return ValidationFailedError("quantity must be positive and both points set")
	}
	if quote.IsEmpty() {
		return mapError("no price returned", trace.Codes())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "PRICE: %s %s\n", MapFloat(quote.Price), quote.Currency)
	if quote.DistanceMeters > 0 {
		fmt.Fprintf(out, "DISTANCE_METERS: %s\n", MapFloat(quote.DistanceMeters))
	}
	if quote.ETA > 0 {
		fmt.Fprintf(out, "ETA: %d\n", quote.ETA)
	}
	return nil
}

// point reads a coordinate flag, falling back to geocoding the address flag.
func (a *CLIAdapter) point(cmd *cobra.Command, coordFlag, addressFlag string) (domain.Coordinate, error) {
	raw, err := cmd.Flags().GetString(coordFlag)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("flag.GetString: %w", err)
	}
	if raw != "" {
		point, _ := a.appService.ParseCoordinates(raw)
		return point, nil
	}

	address, err := cmd.Flags().GetString(addressFlag)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("flag.GetString: %w", err)
	}
	if address == "" {
		return domain.Coordinate{}, nil
	}

	ctx, trace := domain.WithErrorTrace(cmd.Context())
	point, ok := a.appService.ResolveAddress(ctx, address)
	if !ok {
		return domain.Coordinate{}, mapError(fmt.Sprintf("address %q not resolved", address), trace.Codes())
	}
	return point, nil
}

func (a *CLIAdapter) CalculatePriceComm(cmd *cobra.Command, args []string) error {
	weight, err := cmd.Flags().GetInt64("weight")
	if err != nil {
		return fmt.Errorf("flag.GetInt64: %w", err)
	}
	station, err := cmd.Flags().GetString("station")
	if err != nil {
		return fmt.Errorf("flag.GetString: %w", err)
	}
	address, err := cmd.Flags().GetString("address")
	if err != nil {
		return fmt.Errorf("flag.GetString: %w", err)
	}
	tariffStr, err := cmd.Flags().GetString("tariff")
	if err != nil {
		return fmt.Errorf("flag.GetString: %w", err)
	}

	tariff, err := MapTariff(tariffStr)
	if err != nil {
		return ValidationFailedError(err.Error())
	}

	ctx, trace := domain.WithErrorTrace(cmd.Context())
	price := a.appService.CalculatePrice(ctx, weight, station, address, tariff)
	if price == 0 {
		return mapError("no price returned", trace.Codes())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "PRICE: %s\n", MapFloat(price))
	return nil
}

func (a *CLIAdapter) CreateOfferComm(cmd *cobra.Command, args []string) error {
	filePath, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("flag.GetString: %w", err)
	}
	if filePath == "" {
		return ValidationFailedError("file path must not be empty")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("os.ReadFile: %w", err)
	}

	var in OfferFile
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}
	if in.Order.ID == "" || len(in.Order.Items) == 0 {
		return ValidationFailedError("order id and at least one item are required")
	}

	ctx, trace := domain.WithErrorTrace(cmd.Context())
	resp := a.appService.CreateOrderOffer(ctx, in.Order, in.User, in.Address, in.Room)
	if resp == nil {
		return mapError("offer not created", trace.Codes())
	}

	pretty, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return InternalError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "OFFER_RESPONSE:\n%s\n", pretty)
	return nil
}

func (a *CLIAdapter) NotifyComm(cmd *cobra.Command, args []string) error {
	phone, err := cmd.Flags().GetString("phone")
	if err != nil {
		return fmt.Errorf("flag.GetString: %w", err)
	}
	message, err := cmd.Flags().GetString("message")
	if err != nil {
		return fmt.Errorf("flag.GetString: %w", err)
	}
	atStr, err := cmd.Flags().GetString("at")
	if err != nil {
		return fmt.Errorf("flag.GetString: %w", err)
	}

	at, err := MapStringToTime(atStr)
	if err != nil {
		return ValidationFailedError(fmt.Sprintf("bad --at: %v", err))
	}

	out := cmd.OutOrStdout()
	if !a.appService.RecordNotification(phone, message, at) {
		fmt.Fprintln(out, "NOTIFICATION_SKIPPED: debug mode is off")
		return nil
	}
	for _, line := range a.appService.Log() {
		fmt.Fprintf(out, "LOG: %s\n", line)
	}
	return nil
}

func (a *CLIAdapter) ErrorsComm(cmd *cobra.Command, args []string) error {
	codes := sortedCodes(a.appService.Errors())
	out := cmd.OutOrStdout()
	if len(codes) == 0 {
		fmt.Fprintln(out, "ERRORS: none")
		return nil
	}
	for _, code := range codes {
		fmt.Fprintf(out, "ERROR_CODE: %s\n", code)
	}
	return nil
}
