package deps

import (
	"time"

	"github.com/naitik09090/backend-games/internal/auth"
	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/games"
	"github.com/naitik09090/backend-games/internal/logger"
	"github.com/naitik09090/backend-games/internal/metrics"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	AllowedCIDRS  []string // IPs allowed to access /metrics and /infra
	TrustProxy    bool     // true if running behind a trusted reverse proxy
	CORSOrigins   []string // allowed CORS origins, "*" for any
	AuthRateLimit int      // requests per minute per IP on /login and /register
	RequireAuth   bool     // true => mutation routes need a bearer token

	MaxUploadBytes int64  // multipart body limit
	ImagesDir      string // directory served at /images, "" disables
	PublicBaseURL  string // prefix for relative logo paths in responses

	Store    domain.Store     // shared record store handle
	Lister   *domain.Lister   // unified /games listing
	Resolver *domain.Resolver // single-record lookup across stores
	Games    *games.Service   // local game mutations
	Catalog  *games.Catalog   // legacy /gm_games surface
	Auth     *auth.Service    // register / login / token verification
	Metrics  *metrics.Metrics // nil disables /metrics and request metrics
}
