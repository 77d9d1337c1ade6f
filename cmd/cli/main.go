package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/artkolev/yandex-delivery/internal/adapter/cli"
	"github.com/artkolev/yandex-delivery/internal/app"
	"github.com/artkolev/yandex-delivery/internal/config"
	"github.com/artkolev/yandex-delivery/internal/infra/yandex"
	"github.com/artkolev/yandex-delivery/internal/metrics"
)

const (
	defaultConfigPath = "config/config.yaml"
	logFile           = "yandex-delivery.log"
)

var (
	debug   bool
	rootCmd = &cobra.Command{
		Use:           "yd",
		Short:         "Yandex Delivery command-line interface",
		Long:          `A command-line interface for geocoding, delivery quotes and offer creation.`,
		Run:           func(cmd *cobra.Command, args []string) { _ = cmd.Help() },
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func initLogging() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})))
}

func main() {
	_ = godotenv.Load()
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	args := os.Args[1:]
	debug = slices.Contains(args, "--debug")
	initLogging()

	cfg, err := config.Load(configPath())
	if err != nil {
		slog.Error("Config load failed", "error", err)
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	provider := metrics.NewNoOpProvider()
	clients := yandex.NewFromConfig(cfg, provider)
	service := app.NewDeliveryService(app.SettingsFromConfig(cfg), clients.Geocoder, clients.Pricing, clients.Offers, provider)
	cli.NewCLIAdapter(service).RegisterCommands(rootCmd)

	ctx := context.Background()

	// any positional word means a one-shot command instead of the REPL
	if slices.ContainsFunc(args, func(a string) bool { return !strings.HasPrefix(a, "-") }) {
		rootCmd.SetArgs(args)
		if err := rootCmd.ExecuteContext(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Welcome to Yandex Delivery CLI.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("yd> ")

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if line == "exit" {
			fmt.Println("Exiting Yandex Delivery CLI.")
			return
		}

		rootCmd.SetArgs(strings.Fields(line))
		if err := rootCmd.ExecuteContext(ctx); err != nil {
			slog.Error("Command execution error", "error", err)
			fmt.Fprintf(os.Stderr, "%s\n", err)
		}
		resetFlags(rootCmd)
	}
	if err := scanner.Err(); err != nil {
		slog.Error("Error reading from stdin", "error", err)
		os.Exit(1)
	}
}

// resetFlags restores defaults between REPL lines; cobra keeps flag values
// on the command tree across Execute calls.
func resetFlags(root *cobra.Command) {
	for _, c := range root.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			}
		})
	}
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}
