package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "git.solsynth.dev/hypernet/quill/pkg/internal"
	"git.solsynth.dev/hypernet/quill/pkg/internal/cache"
	"git.solsynth.dev/hypernet/quill/pkg/internal/database"
	"git.solsynth.dev/hypernet/quill/pkg/internal/events"
	"git.solsynth.dev/hypernet/quill/pkg/internal/gap"
	"git.solsynth.dev/hypernet/quill/pkg/internal/grpc"
	"git.solsynth.dev/hypernet/quill/pkg/internal/http"
	"git.solsynth.dev/hypernet/quill/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("  ___        _ _ _\n / _ \\ _   _(_) | |\n| | | | | | | | | |\n| |_| | |_| | | | |\n \\__\\_\\\\__,_|_|_|_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Hypernet.Quill"), pkg.AppVersion)
	fmt.Printf("The social graph and feed service in Hypernet\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")
	viper.SetDefault("bind", "0.0.0.0:8444")
	viper.SetDefault("grpc_bind", "0.0.0.0:7444")
	viper.SetDefault("feed.default_page_size", 5)
	viper.SetDefault("feed.max_page_size", 100)
	viper.SetDefault("cleanup.interval", "@every 60m")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	if len(viper.GetString("security.jwt_secret")) == 0 {
		log.Error().Msg("No jwt secret was configured. Every request will be treated as anonymous.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Initialize cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Connect to event bus
	if err := gap.InitializeToNats(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connecting to nats...")
	}
	if _, err := events.SubscribeAccountDeletion(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when subscribing account deletion events...")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	if _, err := quartz.AddFunc(viper.GetString("cleanup.interval"), services.DoAutoDatabaseCleanup); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when scheduling database cleanup.")
	}
	quartz.Start()

	// Server
	server := http.NewServer()
	go server.Listen()

	rpc := grpc.NewGrpc()
	rpc.SetServing(true)
	go func() {
		if err := rpc.Listen(); err != nil {
			log.Fatal().Err(err).Msg("An error occurred when starting grpc server...")
		}
	}()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	rpc.SetServing(false)
	if err := server.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("An error occurred when shutting down server...")
	}
	rpc.Stop()
	gap.Close()
	quartz.Stop()
}
