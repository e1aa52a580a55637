// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	assignmentsfeature "github.com/arenaops/venuehub/internal/app/features/assignments"
	authgooglefeature "github.com/arenaops/venuehub/internal/app/features/authgoogle"
	departmentsfeature "github.com/arenaops/venuehub/internal/app/features/departments"
	errorsfeature "github.com/arenaops/venuehub/internal/app/features/errors"
	healthfeature "github.com/arenaops/venuehub/internal/app/features/health"
	levelsfeature "github.com/arenaops/venuehub/internal/app/features/levels"
	locationsfeature "github.com/arenaops/venuehub/internal/app/features/locations"
	loginfeature "github.com/arenaops/venuehub/internal/app/features/login"
	logoutfeature "github.com/arenaops/venuehub/internal/app/features/logout"
	peoplefeature "github.com/arenaops/venuehub/internal/app/features/people"
	uploadfeature "github.com/arenaops/venuehub/internal/app/features/upload"
	"github.com/arenaops/venuehub/internal/app/hierarchy"
	assignmentstore "github.com/arenaops/venuehub/internal/app/store/assignments"
	departmentstore "github.com/arenaops/venuehub/internal/app/store/departments"
	levelstore "github.com/arenaops/venuehub/internal/app/store/levels"
	locationstore "github.com/arenaops/venuehub/internal/app/store/locations"
	peoplestore "github.com/arenaops/venuehub/internal/app/store/people"
	"github.com/arenaops/venuehub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. VenueHub initializes the session store,
// applies session middleware, and mounts the API surface: people,
// departments, assignments, map locations, floor levels, and uploads.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Stores
	people := peoplestore.New(deps.MongoDatabase)
	departments := departmentstore.New(deps.MongoDatabase)
	assignments := assignmentstore.New(deps.MongoDatabase)
	locations := locationstore.New(deps.MongoDatabase)
	levels := levelstore.New(deps.MongoDatabase)

	// The engine owns all assignment sequencing rules.
	engine := hierarchy.New(assignments, people, logger)

	// Floor-plan file storage
	files, err := storage.NewLocal(storage.LocalConfig{BasePath: appCfg.StorageLocalPath})
	if err != nil {
		logger.Error("local storage init failed", zap.Error(err))
		return nil, err
	}

	// Error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Uploaded floor plans are plain files on disk, served directly.
	r.Handle(appCfg.StorageLocalURL+"/*",
		http.StripPrefix(appCfg.StorageLocalURL+"/", http.FileServer(http.Dir(appCfg.StorageLocalPath))))

	// Authentication
	loginHandler := loginfeature.NewHandler(people, errLog, logger)
	r.Post("/api/login", loginHandler.HandleLogin)
	r.Get("/api/session", loginHandler.ServeSession)

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Post("/api/logout", logoutHandler.HandleLogout)

	googleHandler := authgooglefeature.NewHandler(people,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret,
		appCfg.BaseURL, appCfg.SessionKey, logger)
	if googleHandler.IsConfigured() {
		r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
	} else {
		logger.Info("google oauth not configured; /auth/google disabled")
	}

	// People directory
	peopleHandler := peoplefeature.NewHandler(people, errLog, logger)
	r.Mount("/api/people", peoplefeature.Routes(peopleHandler))

	// Departments and their assignment hierarchies
	departmentsHandler := departmentsfeature.NewHandler(departments, engine, errLog, logger)
	r.Mount("/api/departments", departmentsfeature.Routes(departmentsHandler))

	// Assignment records and mutations
	assignmentsHandler := assignmentsfeature.NewHandler(assignments, engine, errLog, logger)
	r.Mount("/api/assignments", assignmentsfeature.Routes(assignmentsHandler))

	// Floor-plan map pins
	locationsHandler := locationsfeature.NewHandler(locations, errLog, logger)
	r.Mount("/api/locations", locationsfeature.Routes(locationsHandler))

	// Floor levels and their plan images
	levelsHandler := levelsfeature.NewHandler(levels, errLog, logger)
	r.Mount("/api/levels", levelsfeature.Routes(levelsHandler))

	// Floor-plan uploads
	uploadHandler := uploadfeature.NewHandler(levels, files, appCfg.StorageLocalURL, errLog, logger)
	r.Mount("/api/upload", uploadfeature.Routes(uploadHandler))

	return r, nil
}
