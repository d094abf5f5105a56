package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	authapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/auth/app"
	cartapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/cart/app"
	carthttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/cart/http"
	cartmongo "github.com/Carole-Bou-Shakra/Quick-Shop/internal/cart/infra/mongo"
	catalogapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/catalog/app"
	cataloghttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/catalog/http"
	catalogmongo "github.com/Carole-Bou-Shakra/Quick-Shop/internal/catalog/infra/mongo"
	checkoutapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/checkout/app"
	checkouthttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/checkout/http"
	checkoutadapter "github.com/Carole-Bou-Shakra/Quick-Shop/internal/checkout/infra/adapter"
	likeapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/like/app"
	likehttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/like/http"
	likemongo "github.com/Carole-Bou-Shakra/Quick-Shop/internal/like/infra/mongo"
	mediaapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/media/app"
	orderapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/app"
	orderhttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/http"
	ordermongo "github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/infra/mongo"
	reviewapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/review/app"
	reviewhttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/review/http"
	reviewmongo "github.com/Carole-Bou-Shakra/Quick-Shop/internal/review/infra/mongo"
	userapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/user/app"
	userhttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/user/http"
	usermongo "github.com/Carole-Bou-Shakra/Quick-Shop/internal/user/infra/mongo"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/config"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/logger"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/metrics"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/mongodb"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "api", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.MongoURI, Database: cfg.MongoDB})
	if err != nil {
		log.Error("db connect failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	// Repos
	userRepo := usermongo.NewUserRepo(db)
	productRepo := catalogmongo.NewProductRepo(db)
	cartRepo := cartmongo.NewCartRepo(db)
	orderRepo := ordermongo.NewOrderRepo(db)
	reviewRepo := reviewmongo.NewReviewRepo(db)
	likeRepo := likemongo.NewLikeRepo(db)

	if err := ensureIndexes(ctx, userRepo, cartRepo, likeRepo); err != nil {
		log.Error("index setup failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Services
	tokens := authapp.NewService(cfg.JWTSecret, cfg.TokenTTL)
	userSvc := userapp.NewService(userRepo)
	catalogSvc := catalogapp.NewService(productRepo)
	cartSvc := cartapp.NewService(cartRepo)
	orderSvc := orderapp.NewService(orderRepo)
	reviewSvc := reviewapp.NewService(reviewRepo, catalogSvc, log)
	likeSvc := likeapp.NewService(likeRepo)

	// Checkout (adapters)
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceStore(cartSvc),
		checkoutadapter.NewCatalogServiceReader(catalogSvc),
		checkoutadapter.NewOrderServiceWriter(orderSvc),
		log,
		cfg.OpTimeout,
	)

	pictures, err := mediaapp.NewStore(cfg.UploadDir)
	if err != nil {
		log.Error("upload dir setup failed", slog.Any("err", err))
		os.Exit(1)
	}

	mux := newRouter(handlers{
		tokens:   tokens,
		user:     userhttp.NewHandler(userSvc, tokens, log),
		product:  cataloghttp.NewHandler(catalogSvc, pictures, log),
		cart:     carthttp.NewHandler(cartSvc, catalogSvc, log),
		checkout: checkouthttp.NewHandler(checkoutSvc, log),
		order:    orderhttp.NewHandler(orderSvc, log),
		review:   reviewhttp.NewHandler(reviewSvc, log),
		like:     likehttp.NewHandler(likeSvc, catalogSvc, log),
	}, cfg.UploadDir)

	m := metrics.NewServerMetrics("api")

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           withObservability(log, m, mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

type indexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

func ensureIndexes(ctx context.Context, repos ...indexEnsurer) error {
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
