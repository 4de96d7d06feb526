package service

import (
	"context"
	"errors"

	apperrors "atlas3-backend/internal/common/errors"
	"atlas3-backend/internal/domain/rule"
	"atlas3-backend/internal/features/giveaway/models"
	"atlas3-backend/internal/features/giveaway/models/dto"
	"atlas3-backend/internal/features/giveaway/repository"
	projectmodels "atlas3-backend/internal/features/project/models"
	usermodels "atlas3-backend/internal/features/user/models"
	"atlas3-backend/internal/service/notifications"
)

func (s *giveawayService) Update(ctx context.Context, session usermodels.Session, projectSlug string, req *dto.GiveawayUpsertRequest) (*models.Giveaway, error) {
	if err := validateCommon(session, req); err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, ErrGiveawayIDRequired
	}

	project, err := s.loadProject(ctx, projectSlug)
	if err != nil {
		return nil, err
	}

	g, err := s.giveaways.GetByID(ctx, req.ID)
	if errors.Is(err, repository.ErrGiveawayNotFound) {
		return nil, ErrGiveawayNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get giveaway", err)
	}
	if !belongsTo(g, project) {
		return nil, ErrGiveawayNotFound
	}

	if err := validatePayment(req); err != nil {
		return nil, err
	}
	if req.CollabDuration != 0 && (req.CollabDuration < 0 || req.CollabDuration > maxCollabDuration) {
		return nil, ErrCollabDuration
	}

	if err := checkProtectedRules(g, project, req.Rules); err != nil {
		return nil, err
	}

	rules, err := normalizeRules(req.Rules)
	if err != nil {
		return nil, err
	}

	applyEdit(g, req, rules)
	if err := s.giveaways.Update(ctx, g); err != nil {
		return nil, apperrors.NewDatabaseError("update giveaway", err)
	}

	s.log.Info().Str("giveaway_id", g.ID).Str("slug", g.Slug).Str("project", project.Slug).Msg("Giveaway updated")

	if g.DiscordMessageID != "" && g.DiscordChannelID != "" {
		s.notifier.Dispatch(notifications.GiveawayUpdated(g.Slug, g.DiscordChannelID, g.DiscordMessageID))
	}
	return g, nil
}

func belongsTo(g *models.Giveaway, project *projectmodels.Project) bool {
	if g.ProjectID == project.ID {
		return true
	}
	return g.CollabProjectID != nil && *g.CollabProjectID == project.ID
}

// protectedRuleIDs lists the rule ids of g that the counter-party of the
// editing project contributed. Only ids still present in the stored
// snapshot count, so rules the partner added to its project later are not
// required.
func protectedRuleIDs(g *models.Giveaway, editor *projectmodels.Project) []string {
	if !g.IsCollab() {
		return nil
	}

	creator := g.ProjectID == editor.ID
	counterParty := g.CollabProject
	if !creator {
		counterParty = g.Project
	}
	if counterParty == nil {
		return nil
	}

	// The creator's partner contributed holder rules when spots were given
	// and default rules when they were received; the partner's view is the
	// mirror image.
	var source []rule.Rule
	if (g.CollabType == models.CollabTypeGiveSpots) == creator {
		source = counterParty.HolderRules
	} else {
		source = counterParty.DefaultRules
	}

	stored := rule.IDSet(g.Rules)
	var ids []string
	for _, id := range rule.IDs(source) {
		if _, ok := stored[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// checkProtectedRules rejects an edit that drops a partner rule or keeps its
// id while rewriting its payload.
func checkProtectedRules(g *models.Giveaway, editor *projectmodels.Project, submitted []rule.Rule) error {
	byID := make(map[string]rule.Rule, len(submitted))
	for _, r := range submitted {
		if _, seen := byID[r.ID]; !seen && r.ID != "" {
			byID[r.ID] = r
		}
	}
	stored := make(map[string]rule.Rule, len(g.Rules))
	for _, r := range g.Rules {
		stored[r.ID] = r
	}

	for _, id := range protectedRuleIDs(g, editor) {
		r, ok := byID[id]
		if !ok {
			return ErrProtectedRuleRemoved
		}
		if !rule.Equal(r, stored[id]) {
			return ErrProtectedRuleChanged
		}
	}
	return nil
}

func applyEdit(g *models.Giveaway, req *dto.GiveawayUpsertRequest, rules []rule.Rule) {
	if req.Name != "" {
		g.Name = req.Name
	}
	if req.Description != "" {
		g.Description = req.Description
	}
	if req.BannerImage != "" {
		g.BannerImage = req.BannerImage
	}
	g.Type = req.Type
	g.MaxWinners = req.MaxWinners
	g.Rules = rules
	if req.EndsAt != nil {
		g.EndsAt = req.EndsAt
	}
	if req.Settings != nil {
		g.Settings = *req.Settings
	}
	if req.DiscordRoleID != "" {
		g.DiscordRoleID = req.DiscordRoleID
	}
	if role, ok := req.Settings.RoleOverride(); ok {
		g.DiscordRoleID = role
	}
	g.PaymentToken = req.PaymentToken
	g.PaymentTokenAmount = req.PaymentTokenAmount
	if g.IsCollab() {
		if req.CollabDuration > 0 {
			g.CollabDuration = req.CollabDuration
		}
		if req.CollabRequestDeadline != nil {
			g.CollabRequestDeadline = req.CollabRequestDeadline
		}
	}
}
