package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"atlas3-backend/internal/features/giveaway/models"
	"atlas3-backend/internal/features/giveaway/repository"
	"atlas3-backend/internal/utils/slug"
)

// uniqueSlug derives a slug from name. A taken slug gets one random suffix;
// there is no retry loop, the unique index catches the remaining race.
func uniqueSlug(ctx context.Context, repo repository.GiveawayRepository, name string) (string, error) {
	base := slug.Make(name)
	taken, err := repo.SlugExists(ctx, base)
	if err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}
	if !taken {
		return base, nil
	}
	return slug.WithSuffix(base)
}

// persistGiveaway assigns an id and, unless one is preset, a name-derived
// slug, then inserts the row.
func persistGiveaway(ctx context.Context, repo repository.GiveawayRepository, g *models.Giveaway) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Slug == "" {
		s, err := uniqueSlug(ctx, repo, g.Name)
		if err != nil {
			return err
		}
		g.Slug = s
	}
	if err := repo.Create(ctx, g); err != nil {
		return fmt.Errorf("create giveaway %q: %w", g.Slug, err)
	}
	return nil
}
