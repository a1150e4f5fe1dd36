package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/gorilla/mux"
	"github.com/picdiskslimmer/picdisk/configs"
	"github.com/picdiskslimmer/picdisk/datastore/gorm"
	"github.com/picdiskslimmer/picdisk/handlers"
	"github.com/picdiskslimmer/picdisk/settings"
	log "github.com/sirupsen/logrus"
)

const version = "0.1.0"

var (
	sha1ver   string // sha1 revision used to build the program
	buildTime string // when the executable was built
)

func main() {
	var printVersion bool

	// If we should just print the version number and exit
	flag.BoolVar(&printVersion, "version", false, "if true, print version and exit")
	flag.Parse()

	if printVersion {
		fmt.Printf("v%s build on %s from sha1 %s\n", version, buildTime, sha1ver)
		os.Exit(0)
	}

	cfg, err := configs.Parse()
	if err != nil {
		panic(err)
	}

	runServer(cfg)

	os.Exit(0)
}

// newStore opens the settings backend selected by cfg. The returned func
// releases its resources.
func newStore(cfg *configs.Config) (settings.Store, func(), error) {
	switch cfg.StoreType {
	case configs.StoreTypeShared:
		db, err := gorm.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		return settings.NewGormStore(db), func() { gorm.Close(db) }, nil

	case configs.StoreTypeRedis:
		pool := &redis.Pool{
			MaxIdle:     8,
			IdleTimeout: 5 * time.Minute,
			Dial: func() (redis.Conn, error) {
				return redis.DialURL(cfg.RedisURL)
			},
		}
		return settings.NewRedisStore(pool, cfg.RedisKeyPrefix), func() {
			if err := pool.Close(); err != nil {
				log.Warn(err)
			}
		}, nil

	default:
		store := settings.NewFileStore(cfg.DataDir)
		log.WithFields(log.Fields{"path": store.Path()}).Info("Using settings file")
		return store, func() {}, nil
	}
}

func runServer(cfg *configs.Config) {
	configs.ConfigureLogger(cfg.LogLevel)

	log.WithFields(log.Fields{"store": cfg.StoreType}).Info("Starting server")

	store, closeStore, err := newStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		closeStore()
		log.Info("Closed settings store")
	}()

	settingsService := settings.NewService(store)

	// Surface a broken document at startup, the service keeps running on defaults
	if _, err := settingsService.TryLoad(); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Stored settings unusable, serving defaults")
	}

	settingsHandler := handlers.NewSettings(settingsService)

	r := mux.NewRouter()

	// Catch the api version
	rv := r.PathPrefix("/{apiVersion}").Subrouter()

	// Debug
	rv.Handle("/debug", handlers.Debug(version, sha1ver, buildTime)).Methods(http.MethodGet)

	// Health
	rv.HandleFunc("/health/ready", handlers.HandleHealthReady).Methods(http.MethodGet)

	// Settings
	rv.Handle("/settings", settingsHandler.Get()).Methods(http.MethodGet)
	rv.Handle("/settings", handlers.UseJson(settingsHandler.Set())).Methods(http.MethodPost)

	h := http.TimeoutHandler(r, cfg.ServerRequestTimeout, "request timed out")
	h = handlers.UseCors(h)
	h = handlers.UseLogging(h)
	h = handlers.UseCompress(h)

	// Server boilerplate
	srv := &http.Server{
		Handler:      h,
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		WriteTimeout: 0, // Disabled, set cfg.ServerRequestTimeout instead
		ReadTimeout:  0, // Disabled, set cfg.ServerRequestTimeout instead
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		log.
			WithFields(log.Fields{
				"host": cfg.Host,
				"port": cfg.Port,
			}).
			Info("Server listening")
		if err := srv.ListenAndServe(); err != nil {
			log.Warn(err)
		}
	}()

	// Trap interupt and gracefully shutdown the server
	c := make(chan os.Signal, 1)
	// We'll accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	signal.Notify(c, os.Interrupt)

	// Block until we receive our signal.
	sig := <-c

	log.Infof("Got signal: %s. Shutting down..", sig)

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("Error in server shutdown: %s", err)
	}
}
