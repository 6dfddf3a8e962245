package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"contest_hub/internal/api/middleware"
	"contest_hub/internal/app/service"
	"contest_hub/internal/common"
	"contest_hub/internal/domain/model"
	"contest_hub/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type ContestHandler struct {
	contestService *service.ContestService
}

func NewContestHandler(cs *service.ContestService) *ContestHandler {
	return &ContestHandler{contestService: cs}
}

func (h *ContestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	contest, created, err := h.contestService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	if !created {
		common.RespondWithMessage(w, http.StatusOK, "contest already exist")
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, contest)
}

func (h *ContestHandler) List(w http.ResponseWriter, r *http.Request) {
	// Non-numeric page/size fall through to the service defaults.
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	result, err := h.contestService.List(r.Context(), service.ListContestsQuery{
		Status: r.URL.Query().Get("status"),
		Email:  r.URL.Query().Get("email"),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *ContestHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(model.StatusApproved)
	}

	contests, err := h.contestService.ListAll(r.Context(), status, r.URL.Query().Get("email"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contests)
}

func (h *ContestHandler) Get(w http.ResponseWriter, r *http.Request) {
	contest, err := h.contestService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contest)
}

func (h *ContestHandler) Edit(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var patch repository.ContestPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.contestService.Edit(r.Context(), chi.URLParam(r, "id"), principal, patch); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "contest updated")
}

func (h *ContestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status model.ContestStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.contestService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "contest status updated")
}

func (h *ContestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.contestService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]int64{"deleted_count": deleted})
}
