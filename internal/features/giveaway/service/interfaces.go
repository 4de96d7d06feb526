package service

import (
	"context"

	"atlas3-backend/internal/features/giveaway/models"
	"atlas3-backend/internal/features/giveaway/models/dto"
	usermodels "atlas3-backend/internal/features/user/models"
)

// GiveawayService composes, edits and reads giveaways of a project.
type GiveawayService interface {
	// Create makes a standalone giveaway, or one collab giveaway per target
	// project. For collabs the last primary giveaway created is returned.
	Create(ctx context.Context, session usermodels.Session, projectSlug string, req *dto.GiveawayUpsertRequest) (*models.Giveaway, error)
	// Update edits the giveaway named by req.ID.
	Update(ctx context.Context, session usermodels.Session, projectSlug string, req *dto.GiveawayUpsertRequest) (*models.Giveaway, error)
	GetBySlug(ctx context.Context, slug string) (*models.Giveaway, error)
}
