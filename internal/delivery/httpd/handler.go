package httpd

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/middleware"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/service"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/pkg/utils"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	userService  service.UserService
	groupService service.GroupService
	tokens       middleware.TokenValidator
	db           Pinger
	validate     *validator.Validate
	logger       zerolog.Logger
}

func NewHandler(
	userService service.UserService,
	groupService service.GroupService,
	tokens middleware.TokenValidator,
	db Pinger,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		userService:  userService,
		groupService: groupService,
		tokens:       tokens,
		db:           db,
		validate:     newValidator(),
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api", func(api chi.Router) {
		api.Route("/users", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Get("/profile/{id}", h.GetProfile)
		})

		api.Route("/groups", func(r chi.Router) {
			r.Post("/", h.CreateGroup)
			r.Get("/", h.ListGroups)
			r.Get("/my/{userId}", h.ListMyGroups)
			r.Get("/{id}", h.GetGroupDetail)
			r.Post("/{id}", h.CreateGroup)
			r.With(middleware.RequireAuth(h.tokens)).Post("/{id}/join", h.JoinGroup)
		})
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, database := http.StatusOK, "up"
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("Database ping failed")
		status, database = http.StatusServiceUnavailable, "down"
	}

	utils.WriteJSON(w, status, utils.Response{
		Success: status == http.StatusOK,
		Result: map[string]interface{}{
			"status":    http.StatusText(status),
			"database":  database,
			"timestamp": time.Now().UTC(),
		},
	})
}

// pathID parses a positive integer route parameter.
func pathID(r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
