package handlers

import (
	"net/http"

	"nipco-portal/internal/database"
	"nipco-portal/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/notifications?stationId=&unread=true ---
func GetNotifications(c *gin.Context) {
	q := database.DB.Model(&models.Notification{}).Order("timestamp desc").Limit(100)
	if stationID := c.Query("stationId"); stationID != "" {
		q = q.Where("station_id = ?", stationID)
	}
	if c.Query("unread") == "true" {
		q = q.Where("`read` = ?", false)
	}

	var notes []models.Notification
	if err := q.Find(&notes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	if notes == nil {
		notes = []models.Notification{}
	}
	c.JSON(http.StatusOK, notes)
}

// --- PUT: /api/notifications/:id/read ---
func MarkNotificationRead(c *gin.Context) {
	id := c.Param("id")

	result := database.DB.Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// --- DELETE: /api/notifications/:id ---
func DeleteNotification(c *gin.Context) {
	id := c.Param("id")

	result := database.DB.Delete(&models.Notification{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
