package main

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kingdomliving/soulfood/auth"
	"github.com/kingdomliving/soulfood/broker"
	"github.com/kingdomliving/soulfood/customer"
	"github.com/kingdomliving/soulfood/db"
	"github.com/kingdomliving/soulfood/external"

	"github.com/TheZeroSlave/zapsentry"
	"github.com/getsentry/sentry-go"
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
	env := os.Getenv("ENV")
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
			"component": "worker",
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

	db, err := db.New(db.Options{
		URI:    os.Getenv("POSTGRES_URI"),
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("Cannot connect to Postgres",
			zap.Error(err),
		)
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

	amqpBroker, err := broker.NewAMQPBroker(os.Getenv("AMQP_URI"))
	if err != nil {
		log.Fatal("Cannot connect to Broker",
			zap.Error(err),
		)
	}
	defer amqpBroker.Close()

	smtpHost := os.Getenv("SMTP_HOST")
	smtpAddr := smtpHost + ":" + os.Getenv("SMTP_PORT")
	smtpFrom := os.Getenv("SMTP_FROM")
	smtpAuth := smtp.PlainAuth("", os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), smtpHost)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	fulfillmentChan, err := amqpBroker.ReceiveFulfillmentEvent(ctx)
	if err != nil {
		logger.Fatal("Cannot subscribe to fulfillment events",
			zap.Error(err),
		)
	}

	billingChan, err := amqpBroker.ReceiveBillingEvent(ctx)
	if err != nil {
		logger.Fatal("Cannot subscribe to billing events",
			zap.Error(err),
		)
	}

	sendEmail := func(to, subject, body string) error {
		msg := strings.Join([]string{
			"From: Soul Food <" + smtpFrom + ">",
			"To: " + to,
			"Subject: " + subject,
			"",
			body,
		}, "\r\n")
		return smtp.SendMail(smtpAddr, smtpAuth, smtpFrom, []string{to}, []byte(msg))
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-fulfillmentChan:
				logger.Info("Fulfilling paid order",
					zap.String("SessionID", e.SessionID),
					zap.String("ProductID", e.ProductID),
				)
				if len(e.CustomerEmail) == 0 {
					continue
				}
				body := fmt.Sprintf(
					"Thank you for your Soul Food order!\r\n\r\n%s x%d - %.2f %s\r\n\r\nYour content is now available in your account.",
					e.ProductName, e.Quantity, e.Amount, strings.ToUpper(e.Currency),
				)
				if err := sendEmail(e.CustomerEmail, "Your Soul Food receipt", body); err != nil {
					logger.Error("Cannot send receipt email",
						zap.String("SessionID", e.SessionID),
						zap.Error(err),
					)
				}
			}
		}
	}()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-billingChan:
				logger.Info("Processing billing outcome",
					zap.String("SubscriptionID", e.SubscriptionID),
					zap.String("Result", string(e.Result)),
				)
				cust, err := customerManager.GetByID(ctx, e.CustomerID)
				if err != nil || cust == nil {
					continue
				}
				var subject, body string
				if e.Result == broker.BillingSucceeded {
					subject = "Your Soul Food subscription renewed"
					body = fmt.Sprintf(
						"We charged %.2f %s for your Soul Food subscription. Enjoy another month of spiritual nourishment!",
						e.Amount, strings.ToUpper(e.Currency),
					)
				} else {
					subject = "Action needed: Soul Food payment failed"
					body = "We could not charge your card for this month's subscription. Please update your payment method within 3 days to keep your access."
				}
				if err := sendEmail(cust.Email, subject, body); err != nil {
					logger.Error("Cannot send billing email",
						zap.String("SubscriptionID", e.SubscriptionID),
						zap.Error(err),
					)
				}
			}
		}
	}()

	logger.Info("Fulfillment worker started")

	<-c
	cancel()
}
