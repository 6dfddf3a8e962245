package handler

import (
	"encoding/json"
	"net/http"

	"contest_hub/internal/api/middleware"
	"contest_hub/internal/app/service"
	"contest_hub/internal/common"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(ps *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	payment, created, err := h.paymentService.Record(r.Context(), principal, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	if !created {
		common.RespondWithMessage(w, http.StatusOK, "payment already stored")
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	payments, err := h.paymentService.ListForPrincipal(r.Context(), principal)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, payments)
}
