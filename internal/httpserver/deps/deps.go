package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lunaria/lunaria/internal/logger"
	"github.com/lunaria/lunaria/internal/session"
	"github.com/lunaria/lunaria/internal/sources/catalog"
)

// Deps is the shared dependency bag handed to every route registrar.
type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	Session        *session.Session
	Resolver       *catalog.Resolver // nil when no catalog file is configured
	RedisClient    *redis.Client
	RefreshTrigger chan struct{} // channel to trigger a manual collection refresh
	AllowedHosts   []string      // Host headers allowed on admin endpoints
	AllowedCIDRS   []string      // IPs allowed on admin endpoints
	TrustProxy     bool          // trust forwarded headers behind a reverse proxy
	CORSOrigins    []string      // allowed CORS origins for the UI
}
