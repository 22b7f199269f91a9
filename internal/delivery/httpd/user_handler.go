package httpd

import (
	"net/http"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/models"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/pkg/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.validateRequest(w, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "Internal server error")
		return
	}

	utils.SuccessResponse(w, http.StatusCreated, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.validateRequest(w, &req) {
		return
	}

	resp, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "Internal server error")
		return
	}

	utils.SuccessResponse(w, http.StatusOK, resp)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		invalidParam(w, "id", "must be a positive integer")
		return
	}

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "Failed to fetch user profile")
		return
	}

	utils.SuccessResponse(w, http.StatusOK, user)
}
