package cli

import "github.com/spf13/cobra"

func (a *CLIAdapter) registerCommands(rootCmd *cobra.Command) {
	geocodeCmd := &cobra.Command{
		Use:   "geocode",
		Short: "Resolves an address into coordinates.",
		RunE:  a.GeocodeComm,
	}
	geocodeCmd.Flags().StringP("address", "", "", "Free-text address")
	// пустой флаг ловится в самом обработчике
	_ = geocodeCmd.MarkFlagRequired("address")
	rootCmd.AddCommand(geocodeCmd)

	parseCoordsCmd := &cobra.Command{
		Use:   "parse-coords",
		Short: "Parses a \"lat,lng\" string the way price requests do.",
		RunE:  a.ParseCoordsComm,
	}
	parseCoordsCmd.Flags().StringP("value", "", "", "Coordinate string")
	_ = parseCoordsCmd.MarkFlagRequired("value")
	rootCmd.AddCommand(parseCoordsCmd)

	checkPriceCmd := &cobra.Command{
		Use:   "check-price",
		Short: "Asks for an express courier quote between two points.",
		RunE:  a.CheckPriceComm,
	}
	checkPriceCmd.Flags().IntP("quantity", "", 1, "Number of items")
	checkPriceCmd.Flags().StringP("from", "", "", "Sender point as \"lat,lng\"")
	checkPriceCmd.Flags().StringP("to", "", "", "Recipient point as \"lat,lng\"")
	checkPriceCmd.Flags().StringP("from-address", "", "", "Sender address, geocoded when --from is empty")
	checkPriceCmd.Flags().StringP("to-address", "", "", "Recipient address, geocoded when --to is empty")
	rootCmd.AddCommand(checkPriceCmd)

	calculatePriceCmd := &cobra.Command{
		Use:   "calculate-price",
		Short: "Calculates the platform delivery price for a parcel.",
		RunE:  a.CalculatePriceComm,
	}
	calculatePriceCmd.Flags().Int64P("weight", "", 0, "Total weight in grams")
	calculatePriceCmd.Flags().StringP("station", "", "", "Source platform station ID")
	calculatePriceCmd.Flags().StringP("address", "", "", "Destination address")
	calculatePriceCmd.Flags().StringP("tariff", "", string(defaultTariff), "Tariff: 'time_interval' or 'self_pickup'")
	_ = calculatePriceCmd.MarkFlagRequired("weight")
	_ = calculatePriceCmd.MarkFlagRequired("station")
	_ = calculatePriceCmd.MarkFlagRequired("address")
	rootCmd.AddCommand(calculatePriceCmd)

	createOfferCmd := &cobra.Command{
		Use:   "create-offer",
		Short: "Creates delivery offers for an order from a JSON file.",
		RunE:  a.CreateOfferComm,
	}
	createOfferCmd.Flags().StringP("file", "", "", "Path to the JSON file with order, user, address and room")
	_ = createOfferCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(createOfferCmd)

	notifyCmd := &cobra.Command{
		Use:   "notify",
		Short: "Records a pending SMS notification (debug mode only) and prints the log.",
		RunE:  a.NotifyComm,
	}
	notifyCmd.Flags().StringP("phone", "", "", "Recipient phone")
	notifyCmd.Flags().StringP("message", "", "", "Message text")
	notifyCmd.Flags().StringP("at", "", "", "Send time as "+NotificationTimeFormat+", now when empty")
	_ = notifyCmd.MarkFlagRequired("phone")
	_ = notifyCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(notifyCmd)

	errorsCmd := &cobra.Command{
		Use:   "errors",
		Short: "Shows error codes recorded in this session.",
		RunE:  a.ErrorsComm,
	}
	rootCmd.AddCommand(errorsCmd)
}
