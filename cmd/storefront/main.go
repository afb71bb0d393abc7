package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/roasthouse/storefront/internal/catalog"
	"github.com/roasthouse/storefront/internal/circuitbreaker"
	"github.com/roasthouse/storefront/internal/events"
	"github.com/roasthouse/storefront/internal/orders"
	"github.com/roasthouse/storefront/internal/websocket"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	port := getEnv("STOREFRONT_PORT", "8080")
	backend := getEnv("ORDERS_BACKEND", "memory")
	kafkaBrokers := getEnv("KAFKA_BROKERS", "")

	store, cleanup, err := buildStore(backend, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize order store")
	}
	defer cleanup()

	handler := orders.NewHandler(store, catalog.Default(), logger)

	if kafkaBrokers != "" {
		producer, err := events.NewKafkaProducer(kafkaBrokers, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create Kafka producer")
		}
		defer producer.Close()

		breaker := circuitbreaker.New(circuitbreaker.Config{
			Name:        "kafka-publisher",
			MaxFailures: 5,
			Cooldown:    30 * time.Second,
			MaxProbes:   1,
		}, logger)
		handler.SetPublisher(events.NewGuardedPublisher(producer, breaker, logger))
		logger.WithField("brokers", kafkaBrokers).Info("Order event publishing enabled")
	} else {
		logger.Info("KAFKA_BROKERS not set, order events disabled")
	}

	hub := websocket.NewHub(logger)
	go hub.Run()
	handler.SetHub(hub)

	router := handler.Routes()
	router.HandleFunc("/ws", hub.HandleWebSocket)
	router.Use(loggingMiddleware(logger))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":    port,
			"backend": backend,
		}).Info("Starting storefront service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server gracefully stopped")
}

func buildStore(backend string, logger *logrus.Logger) (orders.Store, func(), error) {
	switch backend {
	case "memory":
		return orders.NewMemoryStore(), func() {}, nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "storefront"),
			getEnv("DB_PASSWORD", "storefront"),
			getEnv("DB_NAME", "storefront"),
		)
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, nil, err
		}

		for i := 0; i < 30; i++ {
			if err := db.Ping(); err == nil {
				logger.Info("Database connection established")
				break
			}
			logger.Info("Waiting for database...")
			time.Sleep(2 * time.Second)
		}

		store, err := orders.NewPostgresStore(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown ORDERS_BACKEND %q", backend)
	}
}

func loggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"remote":   r.RemoteAddr,
				"duration": time.Since(start).Milliseconds(),
			}).Info("Request completed")
		})
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
