// Package dashboard provides role-aware summary counters fetched concurrently.
package dashboard

import (
	"context"

	apphttp "leasewell_backend/internal/http"
	"leasewell_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// Summary holds the dashboard counters for one user.
type Summary struct {
	Properties      int `json:"properties"`
	ActiveLeases    int `json:"activeLeases"`
	OpenMaintenance int `json:"openMaintenance"`
	PendingPayments int `json:"pendingPayments"`
}

// Module represents the dashboard module.
type Module struct {
	pool *pgxpool.Pool
}

// NewModule creates a new dashboard module.
func NewModule(pool *pgxpool.Pool) *Module {
	return &Module{pool: pool}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/dashboard", m.summary)
}

func (m *Module) summary(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	summary, err := m.load(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, summary)
}

// load runs the four counter queries concurrently. The queries are scoped to
// the caller's side of each relationship.
func (m *Module) load(ctx context.Context, id httpkit.Identity) (Summary, error) {
	role := "tenant_id"
	propertiesQuery := `
		SELECT count(DISTINCT p.id) FROM properties p
		JOIN leases l ON l.property_id = p.id
		WHERE l.tenant_id = $1`
	if id.IsLandlord() {
		role = "landlord_id"
		propertiesQuery = `SELECT count(*) FROM properties WHERE landlord_id = $1`
	}

	var summary Summary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return m.count(gctx, propertiesQuery, id.UserID(), &summary.Properties)
	})
	g.Go(func() error {
		return m.count(gctx,
			`SELECT count(*) FROM leases WHERE `+role+` = $1 AND status = 'active'`,
			id.UserID(), &summary.ActiveLeases)
	})
	g.Go(func() error {
		return m.count(gctx,
			`SELECT count(*) FROM maintenance_requests WHERE `+role+` = $1 AND status IN ('pending', 'in_progress')`,
			id.UserID(), &summary.OpenMaintenance)
	})
	g.Go(func() error {
		return m.count(gctx,
			`SELECT count(*) FROM payments WHERE `+role+` = $1 AND status = 'pending'`,
			id.UserID(), &summary.PendingPayments)
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

func (m *Module) count(ctx context.Context, query string, userID uuid.UUID, dest *int) error {
	return m.pool.QueryRow(ctx, query, userID).Scan(dest)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
