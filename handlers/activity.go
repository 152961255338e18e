package handlers

import (
	"net/http"

	activityRepo "riverwood/database/repository/activity"
	"riverwood/models"
	"riverwood/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActivityHandler manages activities for the admin API.
type ActivityHandler struct {
	Repo activityRepo.ActivityRepository
}

func NewActivityHandler(repo activityRepo.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{Repo: repo}
}

func (h *ActivityHandler) ListActivities(c *gin.Context) {
	activities, err := h.Repo.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list activities", err.Error())
		return
	}
	c.JSON(http.StatusOK, activities)
}

func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var a models.Activity
	if err := c.ShouldBindJSON(&a); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid activity", err.Error())
		return
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if err := h.Repo.Create(&a); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create activity", err.Error())
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	var a models.Activity
	if err := c.ShouldBindJSON(&a); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid activity", err.Error())
		return
	}
	a.ID = c.Param("id")
	if err := h.Repo.Update(&a); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to update activity", err.Error())
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	if err := h.Repo.Delete(c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete activity", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
