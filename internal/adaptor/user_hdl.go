package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/user/profile (protected)
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

// UpdateProfile handles PUT /api/user/profile (protected)
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

// DeactivateAccount handles POST /api/user/deactivate (protected)
func (h *UserHandler) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeactivateUser(r.Context(), userID); err != nil {
		handleServiceError(h.log, w, err, "deactivate account")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// DeleteAccount handles DELETE /api/user (protected)
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		handleServiceError(h.log, w, err, "delete account")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ==================== PASSENGERS ====================

// AddPassenger handles POST /api/user/passengers (protected)
func (h *UserHandler) AddPassenger(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreatePassengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	passenger, err := h.service.AddPassenger(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add passenger")
		return
	}

	utils.ResponseCreated(w, "success", passenger)
}

// ListPassengers handles GET /api/user/passengers (protected)
func (h *UserHandler) ListPassengers(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	passengers, err := h.service.ListPassengers(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "list passengers")
		return
	}

	utils.ResponseSuccess(w, "success", passengers)
}

// UpdatePassenger handles PUT /api/user/passengers/{id} (protected)
func (h *UserHandler) UpdatePassenger(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	passengerID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid passenger ID", nil)
		return
	}

	var req request.UpdatePassengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	passenger, err := h.service.UpdatePassenger(r.Context(), userID, passengerID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update passenger")
		return
	}

	utils.ResponseSuccess(w, "success", passenger)
}

// SetDefaultPassenger handles PUT /api/user/passengers/{id}/default (protected)
func (h *UserHandler) SetDefaultPassenger(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	passengerID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid passenger ID", nil)
		return
	}

	if err := h.service.SetDefaultPassenger(r.Context(), userID, passengerID); err != nil {
		handleServiceError(h.log, w, err, "set default passenger")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// DeletePassenger handles DELETE /api/user/passengers/{id} (protected)
func (h *UserHandler) DeletePassenger(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	passengerID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid passenger ID", nil)
		return
	}

	if err := h.service.DeletePassenger(r.Context(), userID, passengerID); err != nil {
		handleServiceError(h.log, w, err, "delete passenger")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ==================== FREQUENT FLYER CARDS ====================

// AddFrequentFlyerCard handles POST /api/user/ff-cards (protected)
func (h *UserHandler) AddFrequentFlyerCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateFrequentFlyerCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	card, err := h.service.AddFrequentFlyerCard(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add frequent flyer card")
		return
	}

	utils.ResponseCreated(w, "success", card)
}

// ListFrequentFlyerCards handles GET /api/user/ff-cards (protected)
func (h *UserHandler) ListFrequentFlyerCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	cards, err := h.service.ListFrequentFlyerCards(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "list frequent flyer cards")
		return
	}

	utils.ResponseSuccess(w, "success", cards)
}

// DeleteFrequentFlyerCard handles DELETE /api/user/ff-cards/{id} (protected)
func (h *UserHandler) DeleteFrequentFlyerCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	cardID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid card ID", nil)
		return
	}

	if err := h.service.DeleteFrequentFlyerCard(r.Context(), userID, cardID); err != nil {
		handleServiceError(h.log, w, err, "delete frequent flyer card")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
