package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"atlas3-backend/internal/features/giveaway/models"
	"atlas3-backend/internal/features/giveaway/repository"
)

type giveawayRepository struct {
	db *gorm.DB
}

func NewGiveawayRepository(db *gorm.DB) repository.GiveawayRepository {
	return &giveawayRepository{db: db}
}

func (r *giveawayRepository) Transaction(ctx context.Context, fn func(repo repository.GiveawayRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&giveawayRepository{db: tx})
	})
}

// Create inserts the giveaway row only; related projects are never written.
func (r *giveawayRepository) Create(ctx context.Context, giveaway *models.Giveaway) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(giveaway).Error
}

func (r *giveawayRepository) Update(ctx context.Context, giveaway *models.Giveaway) error {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(giveaway)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrGiveawayNotFound
	}
	return nil
}

func (r *giveawayRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Giveaway{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *giveawayRepository) GetByID(ctx context.Context, id string) (*models.Giveaway, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *giveawayRepository) GetBySlug(ctx context.Context, slug string) (*models.Giveaway, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *giveawayRepository) first(ctx context.Context, query string, arg string) (*models.Giveaway, error) {
	var giveaway models.Giveaway
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Project.DiscordGuild").
		Preload("CollabProject").
		Preload("CollabProject.DiscordGuild").
		Where(query, arg).
		First(&giveaway).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrGiveawayNotFound
	}
	if err != nil {
		return nil, err
	}
	return &giveaway, nil
}
