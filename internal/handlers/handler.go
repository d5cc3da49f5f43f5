package handlers

import (
	"log/slog"

	"linkbio/internal/config"
	"linkbio/internal/services"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handler struct {
	cfg             config.Config
	logger          *slog.Logger
	db              *gorm.DB
	rdb             *redis.Client
	usernameService *services.UsernameService
	resolverService *services.ResolverService
	linkService     *services.LinkService
	visitService    *services.VisitService
	statsService    *services.StatsService
	settingsService *services.SettingsService
	auditService    *services.AuditService
	qrService       *services.QRService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	rdb *redis.Client,
	usernameService *services.UsernameService,
	resolverService *services.ResolverService,
	linkService *services.LinkService,
	visitService *services.VisitService,
	statsService *services.StatsService,
	settingsService *services.SettingsService,
	auditService *services.AuditService,
	qrService *services.QRService,
) *Handler {
	return &Handler{
		cfg:             cfg,
		logger:          logger,
		db:              db,
		rdb:             rdb,
		usernameService: usernameService,
		resolverService: resolverService,
		linkService:     linkService,
		visitService:    visitService,
		statsService:    statsService,
		settingsService: settingsService,
		auditService:    auditService,
		qrService:       qrService,
	}
}
