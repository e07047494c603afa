package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"ShaftGear/internal/auth"
	"ShaftGear/internal/calc/dispatch"
	"ShaftGear/internal/calc/fatigue"
	"ShaftGear/internal/calc/gear"
	"ShaftGear/internal/calc/premium/autodesign"
	"ShaftGear/internal/calc/premium/batch"
	"ShaftGear/internal/calc/premium/importer"
	"ShaftGear/internal/calc/premium/recommend"
	"ShaftGear/internal/calc/report"
	"ShaftGear/internal/calc/shaft"
	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/config"
	"ShaftGear/internal/history"
	"ShaftGear/internal/httpx"
	"ShaftGear/internal/live"
	"ShaftGear/internal/logger"
	"ShaftGear/internal/material"
	"ShaftGear/internal/profile"
	"ShaftGear/internal/repo"
	"ShaftGear/internal/units"
	"ShaftGear/internal/validate"
)

var wg sync.WaitGroup

// deps are the shared services the routes are built from.
type deps struct {
	cfg       *config.Config
	log       *logrus.Logger
	materials *material.DB
	repo      repo.Repository
	storage   string
	limiter   *auth.IPRateLimiter
}

func HandleList(r *mux.Router, d deps) {
	v := validate.New(d.materials)
	calc := &dispatch.Calculator{Materials: d.materials, Validator: v}

	authEnv := &auth.Env{
		JWTKey:       []byte(d.cfg.Auth.JWTSecret),
		Repo:         d.repo,
		Validator:    v,
		SecureCookie: d.cfg.Auth.SecureCookie,
	}
	profileH := &profile.Handler{Repo: d.repo, Validator: v}
	historyH := &history.Handler{Repo: d.repo, Calc: calc}

	shaftH := &shaft.Handler{Materials: d.materials, Validator: v}
	gearH := &gear.Handler{Materials: d.materials, Validator: v}
	fatigueH := &fatigue.Handler{Materials: d.materials, Validator: v}
	reportH := &report.Handler{Materials: d.materials, Validator: v}
	unitsH := &units.Handler{}
	materialH := &material.Handler{DB: d.materials}

	batchH := &batch.Handler{Materials: d.materials, Validator: v}
	importH := &importer.Handler{Materials: d.materials, Validator: v}
	autoH := &autodesign.Handler{Materials: d.materials, Validator: v}
	recommendH := &recommend.Handler{Catalog: d.materials, Validator: v}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"materials": d.materials.Len(),
			"storage":   d.storage,
		})
	}).Methods(http.MethodGet)
	r.HandleFunc("/ws/calc", live.NewServer(calc).ServeWS)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(d.limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.LoginHandler).Methods(http.MethodPost)
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods(http.MethodPost)

	api.HandleFunc("/tools/shaft/calc", shaftH.Calc).Methods(http.MethodPost)
	api.HandleFunc("/tools/shaft/design", shaftH.Design).Methods(http.MethodPost)
	api.HandleFunc("/tools/gear/calc", gearH.Calc).Methods(http.MethodPost)
	api.HandleFunc("/tools/fatigue/calc", fatigueH.Calc).Methods(http.MethodPost)
	api.HandleFunc("/tools/report", reportH.Generate).Methods(http.MethodPost)
	api.HandleFunc("/tools/units/convert", unitsH.Convert).Methods(http.MethodPost)

	api.HandleFunc("/materials", materialH.List).Methods(http.MethodGet)
	api.HandleFunc("/materials/categories", materialH.Categories).Methods(http.MethodGet)
	api.HandleFunc("/materials/rankings", materialH.Rankings).Methods(http.MethodGet)
	api.HandleFunc("/materials/applications", materialH.Applications).Methods(http.MethodGet)
	api.HandleFunc("/materials/export", materialH.Export).Methods(http.MethodGet)
	api.HandleFunc("/materials/{name}", materialH.Get).Methods(http.MethodGet)

	api.HandleFunc("/premium/batch/shaft", batchH.Shaft).Methods(http.MethodPost)
	api.HandleFunc("/premium/batch/gear", batchH.Gear).Methods(http.MethodPost)
	api.HandleFunc("/premium/import/shaft", importH.Shaft).Methods(http.MethodPost)
	api.HandleFunc("/premium/import/shaft/template", importH.Template).Methods(http.MethodGet)
	api.HandleFunc("/premium/autodesign/shaft", autoH.Shaft).Methods(http.MethodPost)
	api.HandleFunc("/premium/recommend/shaft", recommendH.Shaft).Methods(http.MethodPost)

	secureAPI := api.PathPrefix("/user").Subrouter()
	secureAPI.Use(authEnv.AuthMiddleware)

	secureAPI.HandleFunc("/profile", profileH.GetProfile).Methods(http.MethodGet)
	secureAPI.HandleFunc("/profile", profileH.UpdateProfile).Methods(http.MethodPatch, http.MethodPut)
	secureAPI.HandleFunc("/history", historyH.List).Methods(http.MethodGet)
	secureAPI.HandleFunc("/history", historyH.Save).Methods(http.MethodPost)
	secureAPI.HandleFunc("/history/export", historyH.Export).Methods(http.MethodGet)
	secureAPI.HandleFunc("/history/import", historyH.Import).Methods(http.MethodPost)
	secureAPI.HandleFunc("/history/{id}", historyH.Get).Methods(http.MethodGet)
	secureAPI.HandleFunc("/history/{id}", historyH.Delete).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.Error(w, r, calcerr.NotFound("route", r.URL.Path))
	})
}

func newHandler(d deps) http.Handler {
	r := mux.NewRouter()
	HandleList(r, d)
	return httpx.RequestLogger(d.log)(httpx.CORS(r))
}

func openRepository(ctx context.Context, cfg config.DatabaseConfig, log *logrus.Logger) (repo.Repository, string, func(), error) {
	if cfg.URL == "" {
		log.Warn("no database configured, users and history are kept in memory")
		return repo.NewMemory(), "memory", func() {}, nil
	}
	db, err := repo.Open(ctx, cfg.URL)
	if err != nil {
		return nil, "", nil, err
	}
	if cfg.Migrate {
		if err := repo.Migrate(db, log); err != nil {
			db.Close()
			return nil, "", nil, err
		}
	}
	return repo.NewPostgres(db), "postgres", func() { db.Close() }, nil
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.LogLevel)

	materials, err := material.Load(cfg.Materials.OverlayFile)
	if err != nil {
		return err
	}
	store, storage, closeStore, err := openRepository(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeStore()

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.Auth.RateLimit), cfg.Auth.RateBurst)
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				limiter.Prune(10 * time.Minute)
			}
		}
	}()

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: newHandler(deps{
			cfg:       cfg,
			log:       log,
			materials: materials,
			repo:      store,
			storage:   storage,
			limiter:   limiter,
		}),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	serveErr := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.WithFields(logrus.Fields{
			"addr":      server.Addr,
			"tls":       cfg.Server.TLS(),
			"materials": materials.Len(),
			"storage":   storage,
		}).Info("starting server")
		var err error
		if cfg.Server.TLS() {
			err = server.ListenAndServeTLS(cfg.Server.TLSCert, cfg.Server.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, closing active connections")
	case err := <-serveErr:
		return fmt.Errorf("server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	wg.Wait()
	log.Info("server stopped")
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		logrus.WithError(err).Error("server failed")
		os.Exit(1)
	}
}
