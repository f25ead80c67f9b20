package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/openlinalg/practice-server/internal/api/http"
	auth "github.com/openlinalg/practice-server/internal/auth/middleware"
	"github.com/openlinalg/practice-server/internal/config"
	"github.com/openlinalg/practice-server/internal/content"
	"github.com/openlinalg/practice-server/internal/db"
	"github.com/openlinalg/practice-server/internal/exercise"
	"github.com/openlinalg/practice-server/internal/grading"
	"github.com/openlinalg/practice-server/internal/practice"
	"github.com/openlinalg/practice-server/internal/rbac"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	catalog := content.NewSQLStore(dbh)
	exercises := exercise.NewSQLStore(dbh)
	attempts := practice.NewSQLStore(dbh)
	submit := practice.NewService(exercises, attempts, grading.NewDefaultGrader())

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, auth.LoginConfig{
		AdminUser:     cfg.AdminUser,
		AdminPassHash: cfg.AdminPassHash,
	}))

	// Protected API (JWT → role from profiles → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromDB(dbh))

		// Catalog browsing (any authenticated role)
		pr.With(rbac.Require("content:view")).
			Get("/units", api.ListUnitsHandler(catalog))
		pr.With(rbac.Require("content:view")).
			Get("/units/{unitID}/themes", api.ListThemesHandler(catalog))
		pr.With(rbac.Require("content:view")).
			Get("/themes/{themeID}/subthemes", api.ListSubthemesHandler(catalog))

		// Student practice flow (admins may preview through the same routes)
		pr.With(rbac.RequireAny("exercise:view", "exercise:edit")).
			Get("/subthemes/{subthemeID}/exercises", api.ListSubthemeExercisesHandler(exercises, attempts))
		pr.With(rbac.RequireAny("exercise:view", "exercise:edit")).
			Get("/exercises/{exerciseID}", api.GetStudentExerciseHandler(exercises, attempts))
		pr.With(rbac.Require("attempt:create")).
			Post("/exercises/{exerciseID}/attempts", api.SubmitAttemptHandler(submit))
		pr.With(rbac.Require("attempt:view-own")).
			Get("/me/attempts", api.ListMyAttemptsHandler(attempts))
		pr.With(rbac.Require("progress:view")).
			Get("/me/profile", api.MyProfileHandler(attempts))
		pr.With(rbac.Require("progress:view")).
			Get("/me/progress", api.MyProgressHandler(catalog, exercises, attempts))

		// Admin: structure authoring
		pr.With(rbac.Require("content:edit")).
			Post("/admin/units", api.UpsertUnitHandler(catalog))
		pr.With(rbac.Require("content:edit")).
			Delete("/admin/units/{unitID}", api.DeleteUnitHandler(catalog))
		pr.With(rbac.Require("content:edit")).
			Post("/admin/themes", api.UpsertThemeHandler(catalog))
		pr.With(rbac.Require("content:edit")).
			Delete("/admin/themes/{themeID}", api.DeleteThemeHandler(catalog))
		pr.With(rbac.Require("content:edit")).
			Post("/admin/subthemes", api.UpsertSubthemeHandler(catalog))
		pr.With(rbac.Require("content:edit")).
			Delete("/admin/subthemes/{subthemeID}", api.DeleteSubthemeHandler(catalog))

		// Admin: exercise authoring
		pr.With(rbac.Require("exercise:edit")).
			Get("/admin/exercises", api.AdminListExercisesHandler(exercises))
		pr.With(rbac.Require("exercise:edit")).
			Get("/admin/exercises/{exerciseID}", api.AdminGetExerciseHandler(exercises))
		pr.With(rbac.Require("exercise:edit")).
			Post("/admin/exercises", api.UpsertExerciseHandler(exercises))
		pr.With(rbac.Require("exercise:edit")).
			Post("/admin/exercises/autosave", api.AutosaveExerciseHandler(exercises))
		pr.With(rbac.Require("exercise:edit")).
			Post("/admin/exercises/{exerciseID}/publish", api.PublishExerciseHandler(exercises))
		pr.With(rbac.Require("exercise:edit")).
			Post("/admin/exercises/{exerciseID}/archive", api.ArchiveExerciseHandler(exercises))
		pr.With(rbac.Require("exercise:edit")).
			Delete("/admin/exercises/{exerciseID}", api.DeleteExerciseHandler(exercises))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
