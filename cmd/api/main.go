package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/pprof"
	"net/smtp"
	"os"
	"strings"
	"time"

	"github.com/kingdomliving/soulfood/auth"
	"github.com/kingdomliving/soulfood/broker"
	"github.com/kingdomliving/soulfood/catalog"
	"github.com/kingdomliving/soulfood/coupon"
	"github.com/kingdomliving/soulfood/customer"
	"github.com/kingdomliving/soulfood/db"
	"github.com/kingdomliving/soulfood/external"
	"github.com/kingdomliving/soulfood/lesson"
	"github.com/kingdomliving/soulfood/payment"
	"github.com/kingdomliving/soulfood/response"
	"github.com/kingdomliving/soulfood/subscription"
	"github.com/kingdomliving/soulfood/trivia"

	"github.com/TheZeroSlave/zapsentry"
	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v7"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Build-time injected variables
var (
	Version = ""
)

func main() {
	var logger *zap.Logger
	var authEnvironment auth.Environment
	var dotFile string
	var err error

	// Determine running environment and initialize structural logger
	env := os.Getenv("API_ENV")
	if "production" == env {
		dotFile = ".env.production"
		authEnvironment = auth.EnvProduction
		logger, err = zap.NewProduction()
	} else {
		dotFile = ".env.development"
		authEnvironment = auth.EnvDevelopment
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Cannot initialize logger: %v\n", err)
	}
	logger = logger.With(zap.String("Version", Version))

	// Load configurations from dotFile
	if err := godotenv.Load(dotFile); err != nil {
		logger.Fatal("Cannot load configurations from .env",
			zap.Error(err),
		)
	}

	// Initialize sentry for error reporting
	if err := sentry.Init(sentry.ClientOptions{
		Environment: string(authEnvironment),
		Debug:       authEnvironment == auth.EnvDevelopment,
	}); err != nil {
		logger.Fatal("Cannot initialize sentry",
			zap.Error(err),
		)
	}
	defer sentry.Flush(time.Second * 2)

	// Attach sentry to zap so we can do automatic error capturing
	cfg := zapsentry.Configuration{
		Level: zapcore.ErrorLevel,
		Tags: map[string]string{
			"component": "api",
		},
	}
	core, err := zapsentry.NewCore(cfg, zapsentry.NewSentryClientFromClient(sentry.CurrentHub().Client()))
	if err != nil {
		logger.Fatal("Cannot initialize zapsentry",
			zap.Error(err),
		)
	}
	logger = zapsentry.AttachCoreToLogger(core, logger)
	defer logger.Sync()

	stripeClient := external.NewStripeClient(os.Getenv("STRIPE_KEY"))

	// Initialize backend connections
	db, err := db.New(db.Options{
		URI:    os.Getenv("POSTGRES_URI"),
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("Cannot connect to Postgres",
			zap.Error(err),
		)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_URI"),
		Password: os.Getenv("REDIS_PW"),
		DB:       0,
	})
	if _, err := rdb.Ping().Result(); err != nil {
		logger.Fatal("Cannot connect to Redis",
			zap.Error(err),
		)
	}
	defer rdb.Close()

	amqpBroker, err := broker.NewAMQPBroker(os.Getenv("AMQP_URI"))
	if err != nil {
		logger.Fatal("Cannot connect to Broker",
			zap.Error(err),
		)
	}
	defer amqpBroker.Close()

	smtpAuth := smtp.PlainAuth("", os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), os.Getenv("SMTP_HOST"))

	authManager, err := auth.New(auth.Options{
		Redis:  rdb,
		Logger: logger,

		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),

		Environment: authEnvironment,
		SMTPAuth:    smtpAuth,
		From:        os.Getenv("SMTP_FROM"),
		Hostname:    os.Getenv("SMTP_HOST") + ":" + os.Getenv("SMTP_PORT"),
		EmailOption: auth.EmailOption{
			Name: os.Getenv("SITE_NAME"),
			LinkGenerator: func(uid, token string) string {
				return fmt.Sprintf("%s/customers/%s/%s", os.Getenv("SITE_URL"), uid, token)
			},
		},
	})
	if err != nil {
		logger.Fatal("Cannot initialize AuthManager",
			zap.Error(err),
		)
	}

	// Make sure the catalog exists on Stripe before taking orders
	products := catalog.Defined()
	ensureCtx, ensureCancel := context.WithTimeout(context.Background(), time.Minute)
	defer ensureCancel()
	for id, product := range products {
		if err := product.EnsureExistence(ensureCtx, stripeClient); err != nil {
			logger.Fatal("Cannot ensure product existence on Stripe",
				zap.String("ProductID", id),
				zap.Error(err),
			)
		}
		products[id] = product
	}

	customerManager, err := customer.NewManager(customer.ManagerOptions{
		StripeClient: stripeClient,
		DB:           db,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("Cannot initialize CustomerManager",
			zap.Error(err),
		)
	}

	subscriptionManager, err := subscription.NewManager(subscription.ManagerOptions{
		DB:      db,
		Logger:  logger,
		Catalog: products,
	})
	if err != nil {
		logger.Fatal("Cannot initialize SubscriptionManager",
			zap.Error(err),
		)
	}

	couponManager, err := coupon.NewManager(coupon.ManagerOptions{
		DB:      db,
		Logger:  logger,
		Catalog: products,
	})
	if err != nil {
		logger.Fatal("Cannot initialize CouponManager",
			zap.Error(err),
		)
	}

	paymentManager, err := payment.NewManager(payment.ManagerOptions{
		StripeClient:  stripeClient,
		DB:            db,
		Logger:        logger,
		Catalog:       products,
		CouponManager: couponManager,
		Producer:      amqpBroker,
		WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
	})
	if err != nil {
		logger.Fatal("Cannot initialize PaymentManager",
			zap.Error(err),
		)
	}

	lessonManager, err := lesson.NewManager(lesson.ManagerOptions{
		DB:     db,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("Cannot initialize LessonManager",
			zap.Error(err),
		)
	}

	triviaManager, err := trivia.NewManager(trivia.ManagerOptions{
		DB:     db,
		Redis:  rdb,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("Cannot initialize TriviaManager",
			zap.Error(err),
		)
	}

	customerRouter, err := customer.NewService(customer.ServiceOptions{
		Auth:            authManager,
		CustomerManager: customerManager,
		Logger:          logger,
	})
	if err != nil {
		logger.Fatal("Cannot initialize Customer Service Router",
			zap.Error(err),
		)
	}

	catalogRouter, err := catalog.NewService(catalog.ServiceOptions{
		Catalog: products,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("Cannot initialize Catalog Service Router",
			zap.Error(err),
		)
	}

	subscriptionRouter, err := subscription.NewService(subscription.ServiceOptions{
		SubscriptionManager: subscriptionManager,
		Logger:              logger,
	})
	if err != nil {
		logger.Fatal("Cannot initialize Subscription Service Router",
			zap.Error(err),
		)
	}

	couponRouter, err := coupon.NewService(coupon.ServiceOptions{
		CouponManager: couponManager,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("Cannot initialize Coupon Service Router",
			zap.Error(err),
		)
	}

	paymentRouter, err := payment.NewService(payment.ServiceOptions{
		PaymentManager: paymentManager,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal("Cannot initialize Payment Service Router",
			zap.Error(err),
		)
	}

	lessonRouter, err := lesson.NewService(lesson.ServiceOptions{
		LessonManager: lessonManager,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("Cannot initialize Lesson Service Router",
			zap.Error(err),
		)
	}

	triviaRouter, err := trivia.NewService(trivia.ServiceOptions{
		Auth:          authManager,
		TriviaManager: triviaManager,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("Cannot initialize Trivia Service Router",
			zap.Error(err),
		)
	}

	rootRouter := chi.NewRouter()

	rootRouter.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, r, response.ErrNotFound())
	})
	rootRouter.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, r, response.ErrMethodNotAllowed())
	})

	rootRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(os.Getenv("CORS_ORIGINS"), ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	rootRouter.Mount("/customers", customerRouter.Router())
	rootRouter.Mount("/catalog", catalogRouter.Router())
	rootRouter.Mount("/coupons", couponRouter.Router())
	rootRouter.Mount("/payments", paymentRouter.Router())
	rootRouter.Mount("/lessons", lessonRouter.Router())
	rootRouter.Mount("/trivia", triviaRouter.Router())

	rootRouter.Group(func(r chi.Router) {
		r.Use(authManager.Middleware())
		r.Use(authManager.ClaimCheck())
		r.Mount("/subscriptions", subscriptionRouter.Router())
	})

	rootRouter.HandleFunc("/pprof/*", pprof.Index)
	rootRouter.HandleFunc("/pprof/cmdline", pprof.Cmdline)
	rootRouter.HandleFunc("/pprof/profile", pprof.Profile)
	rootRouter.HandleFunc("/pprof/symbol", pprof.Symbol)
	rootRouter.HandleFunc("/pprof/trace", pprof.Trace)

	rootRouter.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Soul Food - Kingdom Living Project API")
	})

	srv := &http.Server{
		Handler: rootRouter,
		Addr:    ":" + os.Getenv("API_PORT"),
	}

	logger.Info("API started",
		zap.String("Addr", srv.Addr),
	)

	log.Fatalln(srv.ListenAndServe())
}
