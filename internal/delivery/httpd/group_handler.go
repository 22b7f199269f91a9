package httpd

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/middleware"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/models"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/pkg/utils"
)

const (
	defaultPage  = 0
	defaultLimit = 10
)

// CreateGroup takes the creator from the body, or from the {id} path segment when the body has none.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGroupRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == 0 && chi.URLParam(r, "id") != "" {
		userID, ok := pathID(r, "id")
		if !ok {
			invalidParam(w, "id", "must be a positive integer")
			return
		}
		req.UserID = userID
	}

	if !h.validateRequest(w, &req) {
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "Failed to create group")
		return
	}

	utils.SuccessResponse(w, http.StatusCreated, group)
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := models.ListGroupsRequest{
		Page:   defaultPage,
		Limit:  defaultLimit,
		Search: query.Get("search"),
	}

	var err error
	if v := query.Get("page"); v != "" {
		if req.Page, err = strconv.Atoi(v); err != nil {
			invalidParam(w, "page", "must be an integer")
			return
		}
	}
	if v := query.Get("limit"); v != "" {
		if req.Limit, err = strconv.Atoi(v); err != nil {
			invalidParam(w, "limit", "must be an integer")
			return
		}
	}
	if v := query.Get("user_id"); v != "" {
		userID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			invalidParam(w, "user_id", "must be an integer")
			return
		}
		req.UserID = &userID
	}

	if !h.validateRequest(w, &req) {
		return
	}

	resp, err := h.groupService.ListGroups(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "Failed to fetch groups")
		return
	}

	utils.SuccessResponse(w, http.StatusOK, resp)
}

func (h *Handler) ListMyGroups(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		invalidParam(w, "userId", "must be a positive integer")
		return
	}

	resp, err := h.groupService.ListMyGroups(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "Failed to fetch my groups")
		return
	}

	utils.SuccessResponse(w, http.StatusOK, resp)
}

func (h *Handler) GetGroupDetail(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(r, "id")
	if !ok {
		invalidParam(w, "id", "must be a positive integer")
		return
	}

	var userID *int64
	if v := r.URL.Query().Get("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			invalidParam(w, "user_id", "must be a positive integer")
			return
		}
		userID = &id
	}

	resp, err := h.groupService.GetGroupDetail(r.Context(), groupID, userID)
	if err != nil {
		h.handleServiceError(w, err, "Failed to fetch group details")
		return
	}

	utils.SuccessResponse(w, http.StatusOK, resp)
}

func (h *Handler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	groupID, ok := pathID(r, "id")
	if !ok {
		invalidParam(w, "id", "must be a positive integer")
		return
	}

	if err := h.groupService.JoinGroup(r.Context(), groupID, claims.UserID); err != nil {
		h.handleServiceError(w, err, "Failed to join group")
		return
	}

	utils.MessageResponse(w, http.StatusOK, "Successfully joined the group")
}
