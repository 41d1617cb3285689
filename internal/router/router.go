package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"net"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	fileadp "visitor-desk/internal/adapters/storage/file"
	mem "visitor-desk/internal/adapters/storage/memory"
	pg "visitor-desk/internal/adapters/storage/postgres"
	"visitor-desk/internal/domain/visitlog"
	"visitor-desk/internal/domain/visitors"
	"visitor-desk/internal/middleware"
	"visitor-desk/internal/platform/config"
	"visitor-desk/internal/ports/notify"
)

type Options struct {
	Cfg config.Config

	// Opcional: conexión ya abierta (tests). Si es nil y hay DSN,
	// el router hace la sonda de conectividad él mismo.
	DB *sql.DB

	// Puede ser nil (sin correo).
	Notifier notify.Notifier

	Logger *zap.Logger
}

// NewRouter cablea el árbol completo: elige la variante de store con la
// sonda de arranque, inyecta los services y registra las rutas por módulo.
// La selección ocurre una sola vez; no hay migración entre variantes.
func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AdminContext(opts.Cfg.AdminToken))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/config", configHandler())

	// Sonda de conectividad: Postgres disponible => variante durable.
	db := opts.DB
	if db == nil && opts.Cfg.DBDSN != "" {
		opened, err := pg.Open(opts.Cfg.DBDSN)
		if err != nil {
			log.Warn("durable backend unreachable, running in degraded mode", zap.Error(err))
		} else {
			db = opened
		}
	}

	var (
		visitorRepo visitors.Repository
		logRepo     visitlog.Repository
	)

	if db != nil {
		visitorRepo = pg.NewVisitorsRepo(db)
		logRepo = pg.NewVisitLogRepo(db)
		log.Info("record store: postgres (durable)")
	} else {
		visitorRepo = fileadp.NewVisitorsRepo(opts.Cfg.MirrorFile, log)
		logRepo = mem.NewVisitLogRepo()
		log.Info("record store: file-mirrored (degraded)", zap.String("mirror", opts.Cfg.MirrorFile))
	}

	logSvc := visitlog.NewService(logRepo, log)
	visitorSvc := visitors.NewService(visitorRepo, opts.Notifier, trailAdapter{logSvc}, log)

	visitors.RegisterRoutes(r, visitorSvc)
	visitlog.RegisterRoutes(r, logSvc)

	return r
}

// trailAdapter conecta el TrailRecorder del dominio con el service de bitácora.
type trailAdapter struct {
	svc *visitlog.Service
}

func (a trailAdapter) RecordTransition(ctx context.Context, visitorID string, from, to visitors.Status, note string) {
	a.svc.Record(ctx, visitorID, string(from), string(to), note)
}

// configHandler expone la URL de registro para el QR de recepción,
// armada con la primera IPv4 no-loopback del host.
func configHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := localIP()

		// Puerto del frontend: el del Origin si viene, si no el default de vite
		frontPort := "5173"
		if origin := r.Header.Get("Origin"); origin != "" {
			if u, err := url.Parse(origin); err == nil && u.Port() != "" {
				frontPort = u.Port()
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"registration_url": "http://" + ip + ":" + frontPort,
		})
	}
}

func localIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "localhost"
	}
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok || ipNet.IP.IsLoopback() {
				continue
			}
			if v4 := ipNet.IP.To4(); v4 != nil {
				return v4.String()
			}
		}
	}
	return "localhost"
}
