package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/stockbrief/membership/internal/app/api/server"
	"github.com/stockbrief/membership/internal/app/service/entitlement"
	"github.com/stockbrief/membership/internal/app/service/referral"
	"github.com/stockbrief/membership/internal/app/service/statistics"
	"github.com/stockbrief/membership/internal/app/service/trending"
	"github.com/stockbrief/membership/internal/app/service/webhookhandler"
	"github.com/stockbrief/membership/internal/app/service/webhooklog"
	"github.com/stockbrief/membership/internal/platform/cache"
	"github.com/stockbrief/membership/internal/platform/db"
	"github.com/stockbrief/membership/pkg/config"
	"github.com/stockbrief/membership/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	cache.Module,
	server.Module,
	entitlement.Module,
	referral.Module,
	trending.Module,
	statistics.Module,
	webhooklog.Module,
	webhookhandler.Module,
)
