package repository

import (
	"context"
	"errors"

	"atlas3-backend/internal/features/giveaway/models"
)

var ErrGiveawayNotFound = errors.New("giveaway not found")

type GiveawayRepository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction; a returned error rolls everything back.
	Transaction(ctx context.Context, fn func(repo GiveawayRepository) error) error

	Create(ctx context.Context, giveaway *models.Giveaway) error
	Update(ctx context.Context, giveaway *models.Giveaway) error
	SlugExists(ctx context.Context, slug string) (bool, error)

	// GetByID and GetBySlug preload Project and CollabProject.
	GetByID(ctx context.Context, id string) (*models.Giveaway, error)
	GetBySlug(ctx context.Context, slug string) (*models.Giveaway, error)
}
