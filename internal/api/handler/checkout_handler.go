package handler

import (
	"encoding/json"
	"net/http"

	"contest_hub/internal/app/service"
	"contest_hub/internal/common"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

func NewCheckoutHandler(cs *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: cs}
}

func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	session, err := h.checkoutService.CreateSession(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, session)
}
