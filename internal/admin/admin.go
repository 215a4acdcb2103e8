package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/playpool/pocketball/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// HashToken returns the bcrypt hash stored in ADMIN_TOKEN_HASH.
func HashToken(plainToken string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainToken), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(hashed), nil
}

// VerifyToken checks if the provided token matches the stored hash
func VerifyToken(hashedToken, plainToken string) bool {
	if hashedToken == "" || plainToken == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashedToken), []byte(plainToken))
	return err == nil
}

// Auditor records admin actions. Without a database it only logs them.
type Auditor struct {
	db *sqlx.DB
}

func NewAuditor(db *sqlx.DB) *Auditor {
	return &Auditor{db: db}
}

// LogAction records an admin action in the audit log
func (a *Auditor) LogAction(ctx context.Context, ip, route, action string, details map[string]interface{}, success bool) error {
	log.Printf("[ADMIN] %s %s from %s success=%v details=%v", action, route, ip, success, details)
	if a == nil || a.db == nil {
		return nil
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		log.Printf("[ADMIN] Failed to marshal audit details: %v", err)
		detailsJSON = []byte("{}")
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO admin_audit (ip, route, action, details, success, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, ip, route, action, detailsJSON, success)
	if err != nil {
		log.Printf("[ADMIN] Failed to log admin action: %v", err)
	}
	return err
}

// AuditLogs retrieves recent admin audit logs with pagination
func (a *Auditor) AuditLogs(ctx context.Context, limit, offset int) ([]models.AdminAudit, error) {
	if a == nil || a.db == nil {
		return []models.AdminAudit{}, nil
	}
	var logs []models.AdminAudit
	err := a.db.SelectContext(ctx, &logs, `
		SELECT id, ip, route, action, details, success, created_at
		FROM admin_audit
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return logs, err
}
