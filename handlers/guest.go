package handlers

import (
	"net/http"

	guestRepo "riverwood/database/repository/guest"
	"riverwood/utils"

	"github.com/gin-gonic/gin"
)

// GuestHandler exposes guest contacts to the admin API.
type GuestHandler struct {
	Repo guestRepo.GuestRepository
}

func NewGuestHandler(repo guestRepo.GuestRepository) *GuestHandler {
	return &GuestHandler{Repo: repo}
}

func (h *GuestHandler) ListGuests(c *gin.Context) {
	guests, err := h.Repo.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list guests", err.Error())
		return
	}
	c.JSON(http.StatusOK, guests)
}

func (h *GuestHandler) DeleteGuest(c *gin.Context) {
	if err := h.Repo.Delete(c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete guest", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
