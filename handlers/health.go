package handlers

import (
	"net/http"

	"riverwood/queue"
	"riverwood/utils"

	"github.com/gin-gonic/gin"
)

// QueueHealthHandler exposes read-only turn queue counters for dashboards.
func QueueHealthHandler(c *gin.Context) {
	health, err := queue.GetHealth()
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "queue backend unreachable", err.Error())
		return
	}
	c.JSON(http.StatusOK, health)
}
