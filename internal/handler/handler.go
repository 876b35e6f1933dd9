package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/msme-dost/marketplace/internal/middleware"
	"github.com/msme-dost/marketplace/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// MsmeDashboard returns the MSME view
func (h *Handler) MsmeDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.MsmeDashboard(service.CurrentMsmeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// LenderDashboard returns the lender view
func (h *Handler) LenderDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.LenderDashboard()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// BuyerDashboard returns the buyer view
func (h *Handler) BuyerDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.BuyerDashboard()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// MsmeProfile returns the normalized MSME profile
func (h *Handler) MsmeProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.MsmeProfile()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// OfferInsights returns the comparison narrative over the MSME's offers
func (h *Handler) OfferInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.svc.CompareOffers(service.CurrentMsmeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"insights": insights})
}

// SubmitOffer handles a lender's loan offer form
func (h *Handler) SubmitOffer(w http.ResponseWriter, r *http.Request) {
	var in service.OfferInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lender, _ := middleware.UserEmail(r.Context())
	offer, err := h.svc.SubmitOffer(lender, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, offer)
}

// SubmitBid handles an MSME's bid form
func (h *Handler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	var in service.BidInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	bid, err := h.svc.SubmitBid(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bid)
}

// SubmitRfp handles a buyer's RFP form
func (h *Handler) SubmitRfp(w http.ResponseWriter, r *http.Request) {
	var in service.RfpInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	buyer, _ := middleware.UserEmail(r.Context())
	rfp, err := h.svc.SubmitRfp(buyer, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rfp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
