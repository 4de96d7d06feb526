package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "atlas3-backend/internal/common/errors"
	"atlas3-backend/internal/common/logger"
	"atlas3-backend/internal/common/validation"
	"atlas3-backend/internal/domain/network"
	"atlas3-backend/internal/domain/rule"
	"atlas3-backend/internal/features/giveaway/models"
	"atlas3-backend/internal/features/giveaway/models/dto"
	"atlas3-backend/internal/features/giveaway/repository"
	projectmodels "atlas3-backend/internal/features/project/models"
	projectrepo "atlas3-backend/internal/features/project/repository"
	usermodels "atlas3-backend/internal/features/user/models"
	"atlas3-backend/internal/service/notifications"
)

type giveawayService struct {
	giveaways repository.GiveawayRepository
	projects  projectrepo.ProjectRepository
	notifier  notifications.Dispatcher
	now       func() time.Time
	log       zerolog.Logger
}

func NewGiveawayService(
	giveaways repository.GiveawayRepository,
	projects projectrepo.ProjectRepository,
	notifier notifications.Dispatcher,
) GiveawayService {
	return &giveawayService{
		giveaways: giveaways,
		projects:  projects,
		notifier:  notifier,
		now:       time.Now,
		log:       logger.With().Str("component", "giveaway_service").Logger(),
	}
}

func (s *giveawayService) Create(ctx context.Context, session usermodels.Session, projectSlug string, req *dto.GiveawayUpsertRequest) (*models.Giveaway, error) {
	if err := validateCommon(session, req); err != nil {
		return nil, err
	}

	project, err := s.loadProject(ctx, projectSlug)
	if err != nil {
		return nil, err
	}
	if !project.IsPublished() {
		return nil, ErrProjectNotPublished
	}
	if err := validatePayment(req); err != nil {
		return nil, err
	}

	if req.IsCollab() {
		return s.createCollab(ctx, session, project, req)
	}
	return s.createStandalone(ctx, session, project, req)
}

func (s *giveawayService) GetBySlug(ctx context.Context, slug string) (*models.Giveaway, error) {
	g, err := s.giveaways.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrGiveawayNotFound) {
		return nil, ErrGiveawayNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get giveaway", err)
	}
	return g, nil
}

func (s *giveawayService) createStandalone(ctx context.Context, session usermodels.Session, project *projectmodels.Project, req *dto.GiveawayUpsertRequest) (*models.Giveaway, error) {
	if req.EndsAt == nil {
		return nil, ErrEndDateRequired
	}
	if !req.EndsAt.After(s.now()) {
		return nil, ErrEndDatePassed
	}

	rules, err := normalizeRules(req.Rules)
	if err != nil {
		return nil, err
	}

	g := baseGiveaway(session, project, req)
	g.Name = firstNonEmpty(req.Name, project.Name)
	g.Description = firstNonEmpty(req.Description, project.Description)
	g.BannerImage = firstNonEmpty(req.BannerImage, project.BannerImage)
	g.Status = models.GiveawayStatusRunning
	g.Rules = rules
	g.EndsAt = req.EndsAt
	g.Network = project.Network
	g.DiscordRoleID = firstNonEmpty(req.DiscordRoleID, project.DefaultRoleID)
	if role, ok := req.Settings.RoleOverride(); ok {
		g.DiscordRoleID = role
	}

	err = s.giveaways.Transaction(ctx, func(repo repository.GiveawayRepository) error {
		return persistGiveaway(ctx, repo, g)
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("create giveaway", err)
	}

	s.log.Info().Str("giveaway_id", g.ID).Str("slug", g.Slug).Str("project", project.Slug).Msg("Giveaway created")
	return g, nil
}

// collabPlan is one validated target of a collab request.
type collabPlan struct {
	target *projectmodels.Project
	merged *MergeResult
}

func (s *giveawayService) createCollab(ctx context.Context, session usermodels.Session, project *projectmodels.Project, req *dto.GiveawayUpsertRequest) (*models.Giveaway, error) {
	if err := s.validateCollab(project, req); err != nil {
		return nil, err
	}

	// Targets are resolved and merged before any write so a bad target
	// fails the request without touching the store.
	plans := make([]collabPlan, 0, len(req.TargetProjectIDs()))
	for _, id := range req.TargetProjectIDs() {
		target, err := s.projects.GetByID(ctx, id)
		if errors.Is(err, projectrepo.ErrProjectNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeProjectNotFound, ErrCollabProjectMissing.Message).
				WithDetail("collab_project_id", id)
		}
		if err != nil {
			return nil, apperrors.NewDatabaseError("get collab project", err)
		}

		merged, err := MergeCollabRules(MergeInput{
			CollabType:    req.CollabType,
			Project:       project,
			CollabProject: target,
			Settings:      req.Settings,
			Rules:         req.Rules,
			Description:   req.Description,
			BannerImage:   req.BannerImage,
		})
		if err != nil {
			return nil, err
		}
		plans = append(plans, collabPlan{target: target, merged: merged})
	}

	var (
		last *models.Giveaway
		jobs []notifications.Job
	)
	err := s.giveaways.Transaction(ctx, func(repo repository.GiveawayRepository) error {
		last, jobs = nil, nil
		for _, p := range plans {
			g := s.collabGiveaway(session, project, p, req)
			if err := persistGiveaway(ctx, repo, g); err != nil {
				return err
			}
			if req.TeamSpots > 0 {
				if _, err := spawnTeamGiveaway(ctx, repo, g, req.TeamSpots); err != nil {
					return fmt.Errorf("spawn team giveaway: %w", err)
				}
			}
			if channelID, mentionRoleID, ok := p.target.IncomingCollabsChannel(); ok {
				jobs = append(jobs, notifications.CollabRequest(g.Slug, channelID, mentionRoleID))
			}
			last = g
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("create collab giveaways", err)
	}

	s.log.Info().
		Str("project", project.Slug).
		Str("collab_type", string(req.CollabType)).
		Int("targets", len(plans)).
		Int("team_spots", req.TeamSpots).
		Msg("Collab giveaways created")

	for _, job := range jobs {
		s.notifier.Dispatch(job)
	}
	return last, nil
}

func (s *giveawayService) validateCollab(project *projectmodels.Project, req *dto.GiveawayUpsertRequest) error {
	if !req.CollabType.IsValid() {
		return ErrInvalidCollabType
	}

	switch req.CollabType {
	case models.CollabTypeReceiveSpots:
		if project.Phase == projectmodels.PhasePostmint && len(project.HolderRules) == 0 {
			return ErrHolderRulesRequired
		}
	case models.CollabTypeGiveSpots:
		if req.CollabRequestDeadline == nil {
			return ErrDeadlineRequired
		}
		if !req.CollabRequestDeadline.After(s.now()) {
			return ErrDeadlinePassed
		}
		if project.Network != network.TBD && project.Allowlist == nil {
			return ErrAllowlistRequired
		}
		if !hasGuildRule(project) {
			return ErrDiscordGuildRuleMissing
		}
	}

	if req.CollabDuration <= 0 || req.CollabDuration > maxCollabDuration {
		return ErrCollabDuration
	}
	if len(req.TargetProjectIDs()) == 0 {
		return ErrCollabTargetsRequired
	}
	return nil
}

func (s *giveawayService) collabGiveaway(session usermodels.Session, project *projectmodels.Project, p collabPlan, req *dto.GiveawayUpsertRequest) *models.Giveaway {
	targetID := p.target.ID

	g := baseGiveaway(session, project, req)
	g.Name = req.Name
	if g.Name == "" {
		g.Name = truncate(fmt.Sprintf("%s x %s", p.merged.Giver.Name, p.merged.Receiver.Name), validation.MaxNameLength)
	}
	g.Description = p.merged.Description
	g.BannerImage = p.merged.BannerImage
	g.Status = models.GiveawayStatusCollabPending
	g.Rules = p.merged.Rules
	g.CollabType = req.CollabType
	g.CollabDuration = req.CollabDuration
	g.CollabRequestDeadline = req.CollabRequestDeadline
	g.EndsAt = req.EndsAt
	g.DiscordRoleID = p.merged.DiscordRoleID
	g.Network = p.merged.Network
	g.CollabProjectID = &targetID
	g.CollabProject = p.target
	return g
}

// baseGiveaway fills the fields shared by every kind of new giveaway.
func baseGiveaway(session usermodels.Session, project *projectmodels.Project, req *dto.GiveawayUpsertRequest) *models.Giveaway {
	g := &models.Giveaway{
		Type:               req.Type,
		MaxWinners:         req.MaxWinners,
		PaymentToken:       req.PaymentToken,
		PaymentTokenAmount: req.PaymentTokenAmount,
		ProjectID:          project.ID,
		Project:            project,
		OwnerID:            session.UserID,
	}
	if req.Settings != nil {
		g.Settings = *req.Settings
	}
	return g
}

func (s *giveawayService) loadProject(ctx context.Context, slug string) (*projectmodels.Project, error) {
	project, err := s.projects.GetBySlug(ctx, slug)
	if errors.Is(err, projectrepo.ErrProjectNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get project", err)
	}
	return project, nil
}

func hasGuildRule(project *projectmodels.Project) bool {
	return len(rule.FilterDiscordGuild(project.DefaultRules)) > 0
}

// validateCommon runs the checks shared by create and edit, in order.
func validateCommon(session usermodels.Session, req *dto.GiveawayUpsertRequest) error {
	if req.MaxWinners <= 0 {
		return ErrMaxWinners
	}
	if !req.Type.IsValid() {
		return ErrInvalidType
	}
	if !session.Type.CanManageGiveaways() {
		return ErrForbidden
	}
	if validation.ExceedsLength(req.Name, validation.MaxNameLength) {
		return ErrNameTooLong
	}
	if validation.ExceedsLength(req.Description, validation.MaxDescriptionLength) {
		return ErrDescriptionTooLong
	}
	return nil
}

func validatePayment(req *dto.GiveawayUpsertRequest) error {
	if req.PaymentToken == nil {
		if req.PaymentTokenAmount != nil && !req.PaymentTokenAmount.IsPositive() {
			return ErrPaymentTokenAmount
		}
		return nil
	}

	token := req.PaymentToken
	if !token.Network.IsValid() || token.Network == network.TBD {
		return ErrPaymentTokenNetwork
	}
	if err := token.Network.ValidateTokenAddress(strings.TrimSpace(token.TokenAddress)); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "Invalid payment token address")
	}
	if req.PaymentTokenAmount == nil || !req.PaymentTokenAmount.IsPositive() {
		return ErrPaymentTokenAmount
	}
	return nil
}
