package handlers

import (
	"net/http"
	"time"

	cabinRepo "riverwood/database/repository/cabin"
	"riverwood/models"
	"riverwood/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CabinHandler manages cabins and cabin types for the admin API.
type CabinHandler struct {
	Repo cabinRepo.CabinRepository
}

func NewCabinHandler(repo cabinRepo.CabinRepository) *CabinHandler {
	return &CabinHandler{Repo: repo}
}

func (h *CabinHandler) ListCabins(c *gin.Context) {
	cabins, err := h.Repo.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list cabins", err.Error())
		return
	}
	c.JSON(http.StatusOK, cabins)
}

func (h *CabinHandler) GetCabinByID(c *gin.Context) {
	cabin, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "cabin not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, cabin)
}

func (h *CabinHandler) CreateCabin(c *gin.Context) {
	var cabin models.Cabin
	if err := c.ShouldBindJSON(&cabin); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid cabin", err.Error())
		return
	}
	if cabin.ID == "" {
		cabin.ID = uuid.New().String()
	}
	if err := h.Repo.Create(&cabin); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create cabin", err.Error())
		return
	}
	c.JSON(http.StatusCreated, cabin)
}

func (h *CabinHandler) UpdateCabin(c *gin.Context) {
	var cabin models.Cabin
	if err := c.ShouldBindJSON(&cabin); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid cabin", err.Error())
		return
	}
	cabin.ID = c.Param("id")
	if err := h.Repo.Update(&cabin); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to update cabin", err.Error())
		return
	}
	c.JSON(http.StatusOK, cabin)
}

func (h *CabinHandler) DeleteCabin(c *gin.Context) {
	if err := h.Repo.Delete(c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete cabin", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *CabinHandler) ListCabinTypes(c *gin.Context) {
	types, err := h.Repo.GetAllTypes()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list cabin types", err.Error())
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *CabinHandler) CreateCabinType(c *gin.Context) {
	var ct models.CabinType
	if err := c.ShouldBindJSON(&ct); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid cabin type", err.Error())
		return
	}
	if ct.ID == "" {
		ct.ID = uuid.New().String()
	}
	normalizeSeasons(&ct)
	if err := h.Repo.CreateType(&ct); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create cabin type", err.Error())
		return
	}
	c.JSON(http.StatusCreated, ct)
}

func (h *CabinHandler) UpdateCabinType(c *gin.Context) {
	var ct models.CabinType
	if err := c.ShouldBindJSON(&ct); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid cabin type", err.Error())
		return
	}
	ct.ID = c.Param("id")
	normalizeSeasons(&ct)
	if err := h.Repo.UpdateType(&ct); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to update cabin type", err.Error())
		return
	}
	c.JSON(http.StatusOK, ct)
}

func (h *CabinHandler) DeleteCabinType(c *gin.Context) {
	if err := h.Repo.DeleteType(c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete cabin type", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// normalizeSeasons truncates season boundaries to midnight UTC so the tariff
// calculator's night lookups behave predictably.
func normalizeSeasons(ct *models.CabinType) {
	for i, s := range ct.Seasons {
		ct.Seasons[i].Start = s.Start.UTC().Truncate(24 * time.Hour)
		ct.Seasons[i].End = s.End.UTC().Truncate(24 * time.Hour)
	}
}
