// Package documents provides file storage backed by MinIO.
package documents

import (
	"leasewell_backend/internal/documents/handler"
	"leasewell_backend/internal/documents/repository"
	"leasewell_backend/internal/documents/service"
	apphttp "leasewell_backend/internal/http"
	"leasewell_backend/platform/config"
	"leasewell_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Module represents the documents domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new documents module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, cfg config.MinIOConfig, log *logger.Logger) (*Module, error) {
	store, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, err
	}

	repo := repository.New(pool)
	svc := service.New(repo, store, cfg.GetMinioBucketDocuments(), cfg.GetMinIOMaxFileSize(), log)
	h := handler.New(svc)

	return &Module{handler: h, service: svc}, nil
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "documents"
}

// Service returns the service for startup bucket provisioning.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/documents"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
