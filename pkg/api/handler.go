package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rhysmorgan-dev/magor-rota/internal/config"
	"github.com/rhysmorgan-dev/magor-rota/pkg/db"
)

// Handler holds the HTTP surface for the rota engine.
type Handler struct {
	validate *validator.Validate
	config   *config.Config
	store    db.Store
	logger   *zap.Logger

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, store db.Store, logger *zap.Logger) *Handler {
	return &Handler{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		config:   cfg,
		store:    store,
		logger:   logger,

		Mux: chi.NewRouter(),
	}
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestLogger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/healthz", h.Health)

	h.Mux.Route("/api/rota", func(r chi.Router) {
		r.Post("/generate", h.GenerateRota)
		r.Get("/allocations", h.GetAllocations)
		r.Get("/gaps", h.GetGaps)
	})
}
