package handlers

import (
	"net/http"

	"riverwood/services/booking"
	"riverwood/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler exposes the administrative boundary over reservations:
// the only reservation writes that originate outside the chat flow and the
// sweeper.
type ReservationHandler struct {
	Service booking.ReservationService
	Logger  *zap.Logger
}

func NewReservationHandler(service booking.ReservationService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Service: service, Logger: logger}
}

// ListReservations returns all reservations, newest first.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	reservations, err := h.Service.ListReservations(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list reservations", err.Error())
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetReservationByID returns one reservation.
func (h *ReservationHandler) GetReservationByID(c *gin.Context) {
	res, err := h.Service.GetReservationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "reservation not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetLatestPendingReservation returns the newest pending reservation, used by
// staff to match incoming payment proofs.
func (h *ReservationHandler) GetLatestPendingReservation(c *gin.Context) {
	res, err := h.Service.GetLatestPendingReservation(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch pending reservation", err.Error())
		return
	}
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "no pending reservation"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateReservationStatus transitions a reservation's status.
func (h *ReservationHandler) UpdateReservationStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	id := c.Param("id")
	if err := h.Service.UpdateReservationStatus(c.Request.Context(), id, input.Status); err != nil {
		utils.JSONError(c, http.StatusConflict, "failed to update reservation status", err.Error())
		return
	}
	h.Logger.Info("reservation status updated by admin",
		zap.String("reservation", id), zap.String("status", input.Status))
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
