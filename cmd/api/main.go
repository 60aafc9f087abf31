package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/config"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/logging"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/media"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/metrics"
	storage "github.com/njprem/Hotel_Checkin_BackEnd/internal/repository/minio"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/repository/postgres"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/service"
	transport "github.com/njprem/Hotel_Checkin_BackEnd/internal/transport/http"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/transport/mail"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/util"
)

func main() {
	cfg := config.Load()

	out, logCloser, err := logging.Mirror(logging.Config{Addr: cfg.LogstashTCPAddr})
	if err != nil {
		log.Fatalf("logstash: %v", err)
	}
	defer logCloser.Close()
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.LUTC)

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	minioClient, err := storage.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connect object storage: %v", err)
	}
	documents := storage.NewStorage(minioClient, cfg.MinIOPublicURL)
	bucketCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := documents.EnsureBucket(bucketCtx, cfg.MinIOBucketDocuments); err != nil {
		log.Printf("warning: %v", err)
	}
	cancel()

	m := metrics.New()
	codec := util.NewTokenCodec()
	cookies := util.NewCookieCodec(cfg.SecureCookies(), cfg.Session().TTL)
	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	logger := log.Default()

	userRepo := postgres.NewUserRepo(db)
	tokenRepo := postgres.NewUserTokenRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	hotelRepo := postgres.NewHotelRepo(db)
	bookingRepo := postgres.NewBookingRepo(db)
	paxRepo := postgres.NewPaxRepo(db)

	sessions := service.NewSessionManager(sessionRepo, util.NewCrypto(), codec, cfg.Session(), m, logger)
	auth := service.NewAuthService(userRepo, tokenRepo, sessions, mailer, cfg.Account(), cfg.GoogleAudience, logger)
	hotels := service.NewHotelService(hotelRepo, bookingRepo)
	bookings := service.NewBookingService(bookingRepo, hotelRepo)
	paxs := service.NewPaxService(paxRepo, bookingRepo)
	resolver := service.NewCheckinAccessResolver(bookingRepo, codec, cfg.Checkin(), m, logger)
	checkin := service.NewCheckinService(
		bookingRepo, hotelRepo, paxRepo,
		documents,
		media.NewDocumentProcessor(cfg.FFmpegPath, media.DefaultMaxDimension),
		mailer,
		service.DocumentConfig{Bucket: cfg.MinIOBucketDocuments, MaxBytes: cfg.DocumentMaxBytes},
		logger,
	)

	e := transport.NewRouter(cfg.AllowOrigins, m)
	requireSession := transport.RequireSession(sessions, cookies, transport.OriginPolicy{
		Enforce:     cfg.IsProduction(),
		FrontendURL: cfg.FrontendURL,
	})
	limiter := transport.NewRateLimiter(cfg.PublicRatePerSecond, cfg.PublicRateBurst)

	transport.RegisterAuth(e, auth, sessions, cookies, limiter)
	transport.RegisterAccount(e, auth, sessions, cookies, requireSession)
	transport.RegisterHotels(e, hotels, requireSession)
	transport.RegisterBookings(e, bookings, paxs, requireSession)
	transport.RegisterPublic(e, hotels, checkin, resolver, limiter)
	transport.RegisterSwagger(e, transport.DefaultSwaggerPath)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down http server...")
	ctx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
