package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"storeadmin-backend/config"
	"storeadmin-backend/controllers"
	"storeadmin-backend/logger"
	"storeadmin-backend/mailer"
	"storeadmin-backend/otpstore"
	"storeadmin-backend/realtime"
	"storeadmin-backend/routes"
	"storeadmin-backend/services"
	"storeadmin-backend/storage"
	"storeadmin-backend/token"
)

const storeName = "Store Admin"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Gagal memuat konfigurasi: %v", err)
	}
	logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, JSON: cfg.IsProduction()})
	log := logger.Get("main")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := config.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		cancel()
		log.Fatalf("Gagal terhubung ke MongoDB: %v", err)
	}
	db := client.Database(cfg.MongoDB)
	if err := config.EnsureIndexes(ctx, db); err != nil {
		log.WithError(err).Warn("failed to ensure indexes")
	}
	cancel()

	// Penyimpanan OTP registrasi: Redis jika tersedia, memori jika tidak.
	var otps otpstore.Store
	var memStore *otpstore.MemoryStore
	if rdb := config.NewRedis(cfg); rdb != nil {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		pingCancel()
		if err == nil {
			otps = otpstore.NewRedisStore(rdb, "register")
			defer rdb.Close()
		} else {
			log.WithError(err).Warn("redis unreachable, using in-memory OTP store")
			_ = rdb.Close()
		}
	}
	if otps == nil {
		memStore = otpstore.NewMemoryStore(time.Minute)
		otps = memStore
	}

	cld, err := config.NewCloudinary(cfg)
	if err != nil {
		log.WithError(err).Warn("uploads disabled")
	}
	uploader := storage.NewCloudinaryUploader(cld, cfg.CloudinaryFolder)

	dispatcher := mailer.NewDispatcher(mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	}), 30*time.Second, logger.Get("mailer"))
	go func() {
		for f := range dispatcher.Failures() {
			log.WithFields(logrus.Fields{"kind": f.Kind, "subject": f.Subject}).Warn("email not delivered")
		}
	}()

	maker, err := token.NewMaker(cfg.TokenType, cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Gagal membuat token maker: %v", err)
	}

	wsLog := logger.Get("realtime")
	chats := services.NewChatService(db)
	chatGateway := realtime.NewChatGateway(realtime.NewHub(wsLog), chats, maker, cfg.CORSOrigins, wsLog)
	notifyGateway := realtime.NewNotificationGateway(realtime.NewHub(wsLog), maker, cfg.CORSOrigins, wsLog)

	svcLog := logger.Get("services")
	users := services.NewUserService(db)
	subscribers := services.NewSubscriberService(db)
	coupons := services.NewCouponService(db, subscribers, dispatcher, storeName, svcLog)
	notifications := services.NewNotificationService(db, notifyGateway)

	ctrl := &controllers.Controller{
		DB:            db,
		Products:      services.NewProductService(db),
		Categories:    services.NewCategoryService(db),
		Orders:        services.NewOrderService(db, coupons, notifications, svcLog),
		Users:         users,
		Coupons:       coupons,
		Subscribers:   subscribers,
		Comments:      services.NewCommentService(db),
		Notifications: notifications,
		Settings:      services.NewSettingService(db),
		FAQs:          services.NewFAQService(db),
		Auth:          services.NewAuthService(users, maker, cfg.TokenTTL, cfg.OTPTTL, dispatcher, storeName, svcLog),
		Registration:  services.NewRegistrationService(otps, users, dispatcher, cfg.OTPTTL, storeName, svcLog),
		Uploader:      uploader,
		Log:           logger.Get("http"),
	}

	router := routes.Setup(ctrl, cfg, maker, routes.Gateways{Chat: chatGateway, Notifications: notifyGateway})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Server berjalan di port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server gagal: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	if err := dispatcher.Wait(shutdownCtx); err != nil {
		log.WithError(err).Warn("pending emails abandoned")
	}
	if memStore != nil {
		memStore.Close()
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.WithError(err).Error("mongo disconnect")
	}
}
