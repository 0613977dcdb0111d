package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"imobhub/internal/domain"
	"imobhub/internal/model"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

type contextKey string

const tenantContextKey contextKey = "tenant"

// TenantFromContext returns the tenant resolved by the auth middleware.
func TenantFromContext(ctx context.Context) (*model.Tenant, bool) {
	tenant, ok := ctx.Value(tenantContextKey).(*model.Tenant)
	return tenant, ok
}

// authMiddleware resolves Authorization bearer tokens to tenants and puts
// the tenant on the request context. Resolutions are cached briefly to
// keep token lookups off the hot path.
type authMiddleware struct {
	logger  *zap.Logger
	tenants domain.TenantRepo
	cache   *gocache.Cache
}

func newAuthMiddleware(tenants domain.TenantRepo, logger *zap.Logger) *authMiddleware {
	return &authMiddleware{
		logger:  logger,
		tenants: tenants,
		cache:   gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (m *authMiddleware) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			apiError(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		if cached, found := m.cache.Get(token); found {
			tenant := cached.(*model.Tenant)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tenantContextKey, tenant)))
			return
		}

		tenant, err := m.tenants.GetByAPIToken(r.Context(), token)
		if err != nil {
			apiError(w, "invalid bearer token", http.StatusUnauthorized)
			return
		}

		m.cache.SetDefault(token, tenant)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tenantContextKey, tenant)))
	})
}
