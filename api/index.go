package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/arnavshah/roster-api-go/internal/repository"
	"github.com/arnavshah/roster-api-go/internal/service"
	"github.com/arnavshah/roster-api-go/pkg/auth"
	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/arnavshah/roster-api-go/pkg/handlers"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)

	repo := repository.NewRepository(db)
	audit := service.NewAuditService(repo.AuditLog, logger)
	notifier := service.NewLogNotifier(repo.Shift, logger)

	h := &handlers.Handler{
		DB:      db,
		Auth:    service.NewAuthService(repo, logger),
		Rosters: service.NewRosterService(repo, audit, logger),
		Swaps:   service.NewSwapService(repo, notifier, audit, logger),
		Reports: service.NewReportService(repo, logger),
		Audit:   audit,
	}

	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	h.RegisterRoutes(r)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
