package handler

import (
	"encoding/json"
	"net/http"

	"contest_hub/internal/app/service"
	"contest_hub/internal/common"

	"github.com/go-chi/chi/v5"
)

type RoleHandler struct {
	roleService *service.RoleService
}

func NewRoleHandler(rs *service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: rs}
}

func (h *RoleHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	role, created, err := h.roleService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	if !created {
		common.RespondWithMessage(w, http.StatusOK, "user already exist")
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, role)
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, roles)
}

func (h *RoleHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.roleService.UpdateRole(r.Context(), chi.URLParam(r, "id"), req.Role); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "role updated")
}
