package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"toolshare/config"
	cronjobs "toolshare/cron"
	"toolshare/database"
	"toolshare/database/repository"
	"toolshare/handlers"
	"toolshare/middleware"
	"toolshare/resolvers"
	"toolshare/routes"
	"toolshare/services/booking"
	"toolshare/services/messaging"
	"toolshare/services/notification"
	"toolshare/services/realtime"
	"toolshare/services/review"
	"toolshare/services/storage"
	"toolshare/services/tool"
	"toolshare/services/user"
	"toolshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.FirebaseInit()

	// Redis backs revocation, caching, pub/sub and the task queue. Without it the
	// server runs single-node: in-process realtime, inline rating recomputes.
	redisEnabled := config.AppConfig.RedisAddr != ""
	var cacheClient, authCache *redis.Client
	if redisEnabled {
		utils.InitRedis()
		cacheClient = utils.GetCacheClient()
		authCache = utils.GetAuthCacheClient()
	} else {
		logger.Warn("main: REDIS_ADDR is empty, running without Redis")
	}

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	var redisClients []*redis.Client
	if redisEnabled {
		redisClients = []*redis.Client{cacheClient, authCache}
	}
	utils.StartHealthMonitor(rootCtx, 30*time.Second, redisClients, database.MongoClient)

	// Optional integrations.
	var mediaStore storage.StorageService
	if cld, err := utils.Cloudinary(); err != nil {
		logger.Warn("main: media uploads disabled", zap.Error(err))
	} else {
		mediaStore = storage.NewCloudinaryStorage(cld, config.AppConfig.CloudinaryFolder)
	}

	var payments booking.PaymentGateway
	if config.AppConfig.StripeKey != "" {
		stripe.Key = config.AppConfig.StripeKey
		payments = booking.NewStripeGateway(config.AppConfig.PaymentCurrency)
	} else {
		logger.Warn("main: STRIPE_KEY is empty, payments are settled offline")
	}

	var channel realtime.NotificationChannel
	if redisEnabled {
		channel = realtime.NewRedisChannel(cacheClient)
	} else {
		channel = realtime.NewMemoryChannel()
	}

	// repositories.
	repos := repository.NewMongoRepositories()

	// services.
	notificationService := &notification.DefaultNotificationService{Users: repos.Users}
	if utils.FCMClient != nil {
		notificationService.Push = utils.FCMClient
	}
	if config.AppConfig.SendGridAPIKey != "" {
		notificationService.Mail = notification.NewSendGridMailer(config.AppConfig.SendGridAPIKey, config.AppConfig.EmailFrom)
	}

	userService := &user.DefaultUserService{
		Repo:      repos.Users,
		AuthCache: authCache,
		Storage:   mediaStore,
	}
	toolService := &tool.DefaultToolService{
		Repo:    repos.Tools,
		Storage: mediaStore,
	}
	bookingService := &booking.DefaultBookingService{
		Bookings:      repos.Bookings,
		Tools:         repos.Tools,
		Payments:      payments,
		Notifier:      notificationService,
		Channel:       channel,
		Currency:      config.AppConfig.PaymentCurrency,
		ChargeDeposit: config.AppConfig.IncludeDepositInCharge,
	}
	messagingService := &messaging.DefaultMessagingService{
		Messages: repos.Messages,
		Bookings: repos.Bookings,
		Channel:  channel,
		Pusher:   notificationService,
	}
	reviewService := &review.DefaultReviewService{
		Reviews:  repos.Reviews,
		Bookings: repos.Bookings,
		Users:    repos.Users,
		Tools:    repos.Tools,
	}

	resolver := &resolvers.Resolver{
		Users:       repos.Users,
		Tools:       repos.Tools,
		CacheClient: cacheClient,
	}
	reviewService.Summaries = resolver

	// background jobs.
	var (
		queueClient *asynq.Client
		worker      *asynq.Server
	)
	if redisEnabled {
		queueClient = asynq.NewClient(cronjobs.QueueRedisOpt())
		reviewService.Queue = &review.AsynqEnqueuer{Client: queueClient}
		worker = cronjobs.InitWorker(reviewService)
	}

	scheduler, err := cronjobs.NewScheduler(config.AppConfig.PaymentReconcileSpec, bookingService)
	if err != nil {
		logger.Fatal("main: invalid PAYMENT_RECONCILE_SPEC", zap.Error(err))
	}
	scheduler.Start()

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:  repos.Users,
		AuthCache: authCache,
		User:      handlers.NewUserHandler(userService, resolver),
		Tool:      handlers.NewToolHandler(toolService),
		Booking:   handlers.NewBookingHandler(bookingService, resolver),
		Message:   handlers.NewMessageHandler(messagingService, resolver),
		Review:    handlers.NewReviewHandler(reviewService, resolver),
		Realtime:  handlers.NewRealtimeHandler(bookingService, channel, authCache),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	router.MaxMultipartMemory = 16 << 20

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	scheduler.Stop(ctx)
	stopBackground()
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			logger.Warn("main: failed to close queue client", zap.Error(err))
		}
	}
	for _, c := range redisClients {
		c.Close()
	}
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
