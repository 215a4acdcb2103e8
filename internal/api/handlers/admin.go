package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playpool/pocketball/internal/admin"
)

// AdminAuth requires an X-Admin-Token matching the configured bcrypt hash.
// With no hash configured every admin route is refused.
func AdminAuth(tokenHash string, auditor *admin.Auditor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenHash == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin access not configured"})
			return
		}
		if !admin.VerifyToken(tokenHash, c.GetHeader("X-Admin-Token")) {
			auditor.LogAction(c.Request.Context(), c.ClientIP(), c.FullPath(), "auth", nil, false)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin token"})
			return
		}
		c.Next()
	}
}

// GetAdminAuditLogs returns paginated audit log entries
func GetAdminAuditLogs(auditor *admin.Auditor) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if limit <= 0 {
			limit = 25
		}
		if limit > 200 {
			limit = 200
		}
		if offset < 0 {
			offset = 0
		}

		logs, err := auditor.AuditLogs(c.Request.Context(), limit, offset)
		if err != nil {
			log.Printf("[ADMIN] Failed to fetch audit logs: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit logs"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": logs, "limit": limit, "offset": offset})
	}
}
