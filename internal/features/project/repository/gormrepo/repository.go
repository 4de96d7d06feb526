package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"atlas3-backend/internal/features/project/models"
	"atlas3-backend/internal/features/project/repository"
)

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

// Create inserts the project together with its allowlist and guild rows.
func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *projectRepository) first(ctx context.Context, query string, arg string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Allowlist").
		Preload("DiscordGuild").
		Where(query, arg).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}
