package repository

import (
	"context"
	"errors"

	"atlas3-backend/internal/features/project/models"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectRepository loads projects with their allowlist and Discord guild.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
}
