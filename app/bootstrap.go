package app

import (
	"context"
	"log"

	"fieldops-backend/db"
	"fieldops-backend/models"

	"github.com/google/uuid"
)

// EnsureBootstrapAdmin seeds the first admin user from BOOTSTRAP_ADMIN so a
// fresh deployment has someone who can create equipment and materials.
func EnsureBootstrapAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.BootstrapAdmin == "" {
		return
	}

	u, err := repo.FindOrCreateUser(ctx, cfg.BootstrapAdmin, uuid.NewString())
	if err != nil {
		log.Printf("bootstrap admin failed: %v", err)
		return
	}
	if u.IsAdmin {
		return
	}
	if err := repo.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", u.ID).
		Update("is_admin", true).Error; err != nil {
		log.Printf("bootstrap admin promote failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] promoted %s to admin", cfg.BootstrapAdmin)
}
