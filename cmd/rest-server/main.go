package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	rv8 "github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riandyrn/otelchi"
	"go.uber.org/zap"

	"github.com/sanLimbu/taskboard-api/cmd/internal"
	internaldomain "github.com/sanLimbu/taskboard-api/internal"
	"github.com/sanLimbu/taskboard-api/internal/envvar"
	"github.com/sanLimbu/taskboard-api/internal/kafka"
	"github.com/sanLimbu/taskboard-api/internal/memcached"
	"github.com/sanLimbu/taskboard-api/internal/password"
	"github.com/sanLimbu/taskboard-api/internal/postgresql"
	"github.com/sanLimbu/taskboard-api/internal/rabbitmq"
	"github.com/sanLimbu/taskboard-api/internal/redis"
	"github.com/sanLimbu/taskboard-api/internal/rest"
	"github.com/sanLimbu/taskboard-api/internal/service"
	"github.com/sanLimbu/taskboard-api/internal/token"
)

func main() {
	var env, address string

	flag.StringVar(&env, "env", "", "Environment Variables filename")
	flag.StringVar(&address, "address", ":9234", "HTTP Server Address")
	flag.Parse()

	errC, err := run(env, address)
	if err != nil {
		log.Fatalf("Couldn't run: %s", err)
	}

	if err := <-errC; err != nil {
		log.Fatalf("Error while running: %s", err)
	}
}

func run(env, address string) (<-chan error, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "zap.NewProduction")
	}

	if err := envvar.Load(env); err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "envvar.Load")
	}

	vault, err := internal.NewVaultProvider()
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewVaultProvider")
	}

	conf := envvar.New(vault)

	pool, err := internal.NewPostgreSQL(conf)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewPostgreSQL")
	}

	mc, err := internal.NewMemcached(conf)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewMemcached")
	}

	rdb, err := internal.NewRedis(conf)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewRedis")
	}

	brokerType, err := conf.Get("MESSAGE_BROKER")
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "conf.Get MESSAGE_BROKER")
	}

	var (
		producer *internal.KafkaProducer
		rmq      *internal.RabbitMQ
	)

	switch brokerType {
	case "rabbitmq":
		rmq, err = internal.NewRabbitMQ(conf)
		if err != nil {
			return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewRabbitMQ")
		}
	default:
		producer, err = internal.NewKafkaProducer(conf)
		if err != nil {
			return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewKafkaProducer")
		}
	}

	promHandler, err := internal.NewOTExporter(conf)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewOTExporter")
	}

	jwtSecret, err := conf.Get("JWT_SECRET")
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "conf.Get JWT_SECRET")
	}

	logging := func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Info(r.Method,
				zap.Time("time", time.Now()),
				zap.String("url", r.URL.String()),
			)
			h.ServeHTTP(w, r)
		})
	}

	srv, err := newServer(serverConfig{
		Address:     address,
		DB:          pool,
		Memcached:   mc,
		Redis:       rdb,
		Kafka:       producer,
		RabbitMQ:    rmq,
		JWTSecret:   jwtSecret,
		Metrics:     promHandler,
		Middlewares: []func(next http.Handler) http.Handler{otelchi.Middleware("taskboard-api-server"), logging},
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("newServer %w", err)
	}

	errC := make(chan error, 1)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	go func() {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		defer func() {
			_ = logger.Sync()
			pool.Close()

			if producer != nil {
				producer.Close()
			}

			if rmq != nil {
				rmq.Close()
			}

			stop()
			cancel()
			close(errC)
		}()

		srv.SetKeepAlivesEnabled(false)

		if err := srv.Shutdown(ctxTimeout); err != nil {
			errC <- err
		}

		logger.Info("Shutdown completed")
	}()

	go func() {
		logger.Info("Listening and serving", zap.String("address", address))

		// "ListenAndServe always returns a non-nil error. After Shutdown or
		// Close, the returned error is ErrServerClosed."
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errC <- err
		}
	}()

	return errC, nil
}

type serverConfig struct {
	Address     string
	DB          *pgxpool.Pool
	Memcached   *memcache.Client
	Redis       *rv8.Client
	Kafka       *internal.KafkaProducer
	RabbitMQ    *internal.RabbitMQ
	JWTSecret   string
	Metrics     http.Handler
	Middlewares []func(next http.Handler) http.Handler
	Logger      *zap.Logger
}

func newServer(conf serverConfig) (*http.Server, error) {
	router := chi.NewRouter()
	router.Use(render.SetContentType(render.ContentTypeJSON))

	for _, mw := range conf.Middlewares {
		router.Use(mw)
	}

	userRepo := redis.NewUser(conf.Redis, postgresql.NewUser(conf.DB))
	taskRepo := memcached.NewTask(conf.Memcached, postgresql.NewTask(conf.DB), conf.Logger)

	var msgBroker service.TaskMessageBrokerRepository

	if conf.RabbitMQ != nil {
		broker, err := rabbitmq.NewTask(conf.RabbitMQ.Channel)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq.NewTask %w", err)
		}

		msgBroker = broker
	} else {
		msgBroker = kafka.NewTask(conf.Kafka.Producer, conf.Kafka.Topic)
	}

	sessions := token.NewSessionManager(conf.JWTSecret)
	hasher := password.NewHasher()

	authSvc := service.NewAuth(conf.Logger, userRepo, sessions, hasher)
	taskSvc := service.NewTask(conf.Logger, taskRepo, msgBroker)

	rest.RegisterOpenAPI(router)

	authHandler := rest.NewAuthHandler(authSvc)
	authHandler.Register(router)

	router.Group(func(r chi.Router) {
		r.Use(rest.Authenticator(sessions, userRepo))

		authHandler.RegisterProtected(r)
		rest.NewTaskHandler(taskSvc).Register(r)
	})

	router.Handle("/metrics", conf.Metrics)

	lmt := tollbooth.NewLimiter(3, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Second})
	lmtmw := tollbooth.LimitHandler(lmt, router)

	return &http.Server{
		Handler:           lmtmw,
		Addr:              conf.Address,
		ReadTimeout:       1 * time.Second,
		ReadHeaderTimeout: 1 * time.Second,
		WriteTimeout:      1 * time.Second,
		IdleTimeout:       1 * time.Second,
	}, nil
}
