package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KNICEX/arbitrage-agent/internal/repo"
	"github.com/KNICEX/arbitrage-agent/internal/web"
	"github.com/KNICEX/arbitrage-agent/ioc"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func initViper() {
	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.yaml", "specify config file")
	pflag.Parse()

	// optional, keeps the bot token out of the yaml
	_ = godotenv.Load()

	ioc.InitConfigDefaults()

	viper.SetConfigFile(*file)
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s \n", err))
	}
}

func main() {
	initViper()
	ioc.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := ioc.InitDB()
	signalRepo := repo.NewSignalRepo(db)
	priceRouter := ioc.InitPriceRouter(ioc.InitBinanceCli())
	notifier := ioc.InitNotifier()
	scheduler := ioc.InitScheduler(priceRouter, notifier, signalRepo)

	// without autostart the first status request starts the tasks
	if viper.GetBool("monitor.autostart") {
		scheduler.Start(ctx)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    viper.GetString("server.addr"),
		Handler: web.NewRouter(web.NewHandler(ctx, scheduler, signalRepo)),
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("status server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("status server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("status server shutdown")
	}
	scheduler.Wait()
}
