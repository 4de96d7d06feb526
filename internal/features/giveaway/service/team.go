package service

import (
	"context"

	"atlas3-backend/internal/common/validation"
	"atlas3-backend/internal/domain/rule"
	"atlas3-backend/internal/features/giveaway/models"
	"atlas3-backend/internal/features/giveaway/repository"
	"atlas3-backend/internal/utils/slug"
)

const teamSlugLength = 16

// spawnTeamGiveaway creates the private team giveaway of primary. Entry is
// gated by Discord server membership only and the slug is random, so the
// link is only reachable when shared.
func spawnTeamGiveaway(ctx context.Context, repo repository.GiveawayRepository, primary *models.Giveaway, teamSpots int) (*models.Giveaway, error) {
	s, err := slug.Random(teamSlugLength)
	if err != nil {
		return nil, err
	}

	settings := primary.Settings
	settings.Private = true
	parentID := primary.ID

	team := &models.Giveaway{
		Slug:                  s,
		Name:                  truncate(primary.Name+" Team", validation.MaxNameLength),
		Description:           primary.Description,
		BannerImage:           primary.BannerImage,
		Type:                  primary.Type,
		Status:                primary.Status,
		Rules:                 rule.FilterDiscordGuild(primary.Rules),
		CollabType:            primary.CollabType,
		MaxWinners:            teamSpots,
		CollabDuration:        primary.CollabDuration,
		CollabRequestDeadline: primary.CollabRequestDeadline,
		EndsAt:                primary.EndsAt,
		DiscordRoleID:         primary.DiscordRoleID,
		Network:               primary.Network,
		Settings:              settings,
		ProjectID:             primary.ProjectID,
		CollabProjectID:       primary.CollabProjectID,
		OwnerID:               primary.OwnerID,
		ParentID:              &parentID,
	}
	if err := persistGiveaway(ctx, repo, team); err != nil {
		return nil, err
	}
	return team, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
