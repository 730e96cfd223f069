package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "health-records-portal/docs"
	"health-records-portal/internal/adapters/blob"
	mem "health-records-portal/internal/adapters/storage/memory"
	"health-records-portal/internal/adapters/storage/sqlstore"
	"health-records-portal/internal/domain/accessgrants"
	"health-records-portal/internal/domain/chatbot"
	"health-records-portal/internal/domain/reports"
	"health-records-portal/internal/domain/users"
	"health-records-portal/internal/middleware"
	"health-records-portal/internal/platform/logger"
	"health-records-portal/internal/platform/metrics"
	"health-records-portal/internal/ports/audit"
	"health-records-portal/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // nil => sólo DevAuth
	TokenIssuer  auth.TokenIssuer  // nil => /auth/login responde 501

	// DevAuth habilita X-Debug-User-ID. Nunca en producción.
	DevAuth bool

	// Opcional: si viene, repos SQL (ya migrados). Si no, in-memory.
	DB *sql.DB

	Files     reports.FileStorage // nil => memoria
	Assistant chatbot.Fallback    // nil => sugerencias fijas
	Audit     audit.Publisher     // nil => no-op

	Logger         logger.Logger
	Metrics        *metrics.Metrics
	MaxUploadBytes int64
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(m.Middleware)
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier, opts.DevAuth))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		userRepo   users.Repository
		reportRepo reports.Repository
		grantsRepo accessgrants.Repository
	)
	if opts.DB != nil {
		userRepo = sqlstore.NewUsersRepo(opts.DB)
		reportRepo = sqlstore.NewReportsRepo(opts.DB)
		grantsRepo = sqlstore.NewAccessGrantsRepo(opts.DB)
	} else {
		userRepo = mem.NewUserRepo()
		reportRepo = mem.NewReportRepo()
		grantsRepo = mem.NewAccessGrantsRepo()
	}

	files := opts.Files
	if files == nil {
		files = blob.NewMemory()
	}
	var pub audit.Publisher = audit.Nop{}
	if opts.Audit != nil {
		pub = opts.Audit
	}
	pub = audit.WithRecorder(pub, m)

	// Services por módulo
	usersSvc := users.NewService(userRepo)
	grantsSvc := accessgrants.NewService(grantsRepo, usersSvc, pub)
	reportsSvc := reports.NewService(reportRepo, files, pub)
	chatSvc := chatbot.NewService(
		chatbot.NewResolver(reportsSvc, grantsSvc, usersSvc),
		chatbot.NewResponder(opts.Assistant),
		m,
	)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, opts.TokenIssuer)
	accessgrants.RegisterRoutes(r, grantsSvc)
	reports.RegisterRoutes(r, reportsSvc, usersSvc, grantsSvc, opts.MaxUploadBytes)
	chatbot.RegisterRoutes(r, chatSvc, usersSvc, log)

	return r
}
