package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/stockbrief/membership/docs"
	"github.com/stockbrief/membership/internal/app/api/handlers"
	mw "github.com/stockbrief/membership/internal/app/api/middleware"
	"github.com/stockbrief/membership/internal/app/service/entitlement"
	"github.com/stockbrief/membership/internal/app/service/referral"
	"github.com/stockbrief/membership/internal/app/service/statistics"
	"github.com/stockbrief/membership/internal/app/service/trending"
	"github.com/stockbrief/membership/internal/app/service/webhookhandler"
	cfgpkg "github.com/stockbrief/membership/pkg/config"
	metrics "github.com/stockbrief/membership/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

func registerRoutes(
	r *gin.Engine,
	log *zap.SugaredLogger,
	cfg *cfgpkg.Config,
	entSvc *entitlement.Service,
	refSvc *referral.Service,
	trendSvc *trending.Service,
	statSvc *statistics.Service,
	webhook *webhookhandler.Handler,
) {
	// Prometheus metrics
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Mobile-facing referral and subscription APIs
	api := r.Group("/api")
	api.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterReferralRoutes(api, refSvc)
	handlers.RegisterSubscriptionRoutes(api, entSvc)

	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterSubscriptionV1Routes(apiV1, entSvc)
	handlers.RegisterTrendingRoutes(apiV1, trendSvc)
	handlers.RegisterWebhookRoutes(apiV1.Group("/webhooks"), webhook)

	// Admin APIs behind JWT auth
	admin := apiV1.Group("/admin")
	admin.Use(mw.AdminAuthMiddleware(cfg))
	handlers.RegisterAdminRoutes(admin, refSvc, statSvc)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
