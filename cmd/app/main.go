package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sushihentaime/currytech/internal/blogservice"
	"github.com/sushihentaime/currytech/internal/common"
	"github.com/sushihentaime/currytech/internal/contactservice"
	"github.com/sushihentaime/currytech/internal/mailservice"
	"github.com/sushihentaime/currytech/internal/testimonialservice"
	"github.com/sushihentaime/currytech/internal/userservice"
)

type application struct {
	config             *Config
	logger             *slog.Logger
	userService        *userservice.UserService
	blogService        *blogservice.BlogService
	testimonialService *testimonialservice.TestimonialService
	contactService     *contactservice.ContactService
	mailService        *mailservice.MailService
	broker             *common.MessageBroker
	limiters           *common.Cache
}

func main() {
	configPath := flag.String("config", ".env", "path to the dotenv configuration file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Environment == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	if cfg.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Release:     cfg.Version,
		})
		if err != nil {
			logger.Error("failed to initialise sentry", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.String("error", err.Error()))
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(cfg *Config, logger *slog.Logger) error {
	db, err := common.NewDB(cfg.dbConfig())
	if err != nil {
		return err
	}
	defer common.CloseDB(db)

	if _, err := common.Migrate(db); err != nil {
		return err
	}
	logger.Info("database migrations applied")

	broker, err := common.NewMessageBroker(cfg.amqpURI())
	if err != nil {
		return err
	}
	defer broker.Close()

	err = common.SetupSiteExchange(broker)
	if err != nil {
		return err
	}

	tokens, err := userservice.NewTokenMaker(cfg.JWTSecret, cfg.JWTExpire)
	if err != nil {
		return err
	}

	app := &application{
		config:             cfg,
		logger:             logger,
		userService:        userservice.NewUserService(db, broker, tokens, logger),
		blogService:        blogservice.NewBlogService(db),
		testimonialService: testimonialservice.NewTestimonialService(db),
		contactService:     contactservice.NewContactService(db, broker, logger),
		mailService:        mailservice.NewMailService(broker, cfg.mailConfig(), logger),
		broker:             broker,
		limiters:           common.NewCache(3*time.Minute, time.Minute),
	}

	app.mailService.Start()
	defer app.mailService.Close()

	return app.serve()
}
