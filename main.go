// TodoWebService is a web service that provides CRUD operations for a to-do list of tasks.
//
// Tasks are kept in memory by default; STORE_DRIVER=mysql or STORE_DRIVER=postgres stores them in the task table of a database instead.
// When REDIS_ADDR is set, reads are cached in Redis. When KAFKA_BROKER is set, every change is published to Kafka.
// Rate limiting with a rate limit of 2 events per second and burst limit of 20 events to protect against abuse is applied by default.
// It also provides Prometheus metrics for monitoring and recording metrics.
//
// The following endpoints are available:
//
//  1. GET /tasks - Get all tasks
//  2. GET /tasks/{id} - Get a task by ID
//  3. POST /tasks - Create a new task
//  4. PUT /tasks/{id} - Update a task
//  5. PATCH /tasks/{id} - Update a task
//  6. DELETE /tasks/{id} - Delete a task
//  7. GET /metrics - Display Prometheus metrics
//
// You may use godoc -http=:6060 to view the documentation in your browser.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TodoWebService/cache"
	"TodoWebService/config"
	"TodoWebService/events"
	"TodoWebService/handlers"
	"TodoWebService/service"
	"TodoWebService/store"
	"TodoWebService/validation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	log       = logrus.New()
	openStore = store.Open
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run wires the service and serves until SIGINT or SIGTERM. Every resource
// opened before a failure is closed on return.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.JSONFormatter{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()
	log.WithField("driver", cfg.Store.Driver).Info("Connected to task store")

	opts := []service.Option{service.WithLogger(log)}
	if cfg.RedisAddr != "" {
		c, err := cache.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer c.Close()
		opts = append(opts, service.WithCache(c, cfg.CacheTTL))
		log.WithField("address", cfg.RedisAddr).Info("Caching tasks in redis")
	}
	if cfg.Kafka.Broker != "" {
		p := events.NewKafkaPublisher(cfg.Kafka.Broker, cfg.Kafka.Topic, log)
		defer p.Close()
		opts = append(opts, service.WithPublisher(p))
		log.WithField("topic", cfg.Kafka.Topic).Info("Publishing task events to kafka")
	}
	svc := service.NewTaskService(st, opts...)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := handlers.NewMetrics(reg)
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	h := handlers.NewTaskHandler(svc, validation.New(), log)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handlers.NewRouter(h, metrics, reg, limiter, log),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(err.Error())
		}
	}()

	log.Info("Server listening on port " + cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
