package service

import (
	"fmt"

	"github.com/google/uuid"

	apperrors "atlas3-backend/internal/common/errors"
	"atlas3-backend/internal/domain/network"
	"atlas3-backend/internal/domain/rule"
	"atlas3-backend/internal/features/giveaway/models"
	projectmodels "atlas3-backend/internal/features/project/models"
)

// MergeInput describes one collab between the initiating project and a
// target project.
type MergeInput struct {
	CollabType    models.CollabType
	Project       *projectmodels.Project
	CollabProject *projectmodels.Project
	Settings      *models.GiveawaySettings
	// Rules are the caller's rules. Only those without an id are added.
	Rules       []rule.Rule
	Description string
	BannerImage string
}

// MergeResult is what a new collab giveaway inherits from both projects.
type MergeResult struct {
	Rules         []rule.Rule
	DiscordRoleID string
	Network       network.Network
	Description   string
	BannerImage   string
	// Giver is the project whose allowlist spots are handed out.
	Giver    *projectmodels.Project
	Receiver *projectmodels.Project
}

// MergeCollabRules composes the rule snapshot of a collab giveaway: the
// giving project's default rules, then the receiving project's holder
// rules, then any new caller rules. The network is the initiating
// project's, which is the giver for GIVE_SPOTS and the receiver, whose
// holders gate entry, for RECEIVE_SPOTS.
func MergeCollabRules(in MergeInput) (*MergeResult, error) {
	if in.Project == nil || in.CollabProject == nil {
		return nil, fmt.Errorf("merge collab rules: both projects are required")
	}

	res := &MergeResult{}
	switch in.CollabType {
	case models.CollabTypeGiveSpots:
		res.Giver, res.Receiver = in.Project, in.CollabProject
		res.DiscordRoleID = in.Project.DefaultRoleID
		if role, ok := in.Settings.RoleOverride(); ok {
			res.DiscordRoleID = role
		}
	case models.CollabTypeReceiveSpots:
		if in.CollabProject.Phase != projectmodels.PhasePremint {
			return nil, ErrProjectNotEligible
		}
		res.Giver, res.Receiver = in.CollabProject, in.Project
		res.DiscordRoleID = in.CollabProject.DefaultRoleID
	default:
		return nil, ErrInvalidCollabType
	}

	added, err := newRules(in.Rules)
	if err != nil {
		return nil, err
	}

	merged := rule.Clone(res.Giver.DefaultRules)
	merged = append(merged, res.Receiver.HolderRules...)
	merged = append(merged, added...)

	res.Rules = merged
	res.Network = in.Project.Network
	res.Description = firstNonEmpty(in.Description, res.Giver.Description)
	res.BannerImage = firstNonEmpty(in.BannerImage, res.Giver.BannerImage)
	return res, nil
}

// newRules validates the caller rules that have no id yet and gives each a
// fresh one.
func newRules(rules []rule.Rule) ([]rule.Rule, error) {
	var out []rule.Rule
	for _, r := range rules {
		if r.ID != "" {
			continue
		}
		if err := r.Validate(); err != nil {
			return nil, invalidRule(err)
		}
		r.ID = uuid.NewString()
		out = append(out, r)
	}
	return out, nil
}

// normalizeRules validates every rule and assigns ids to new ones, keeping
// order.
func normalizeRules(rules []rule.Rule) ([]rule.Rule, error) {
	out := make([]rule.Rule, 0, len(rules))
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, invalidRule(err)
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		out = append(out, r)
	}
	return out, nil
}

func invalidRule(err error) error {
	return apperrors.Wrapf(err, apperrors.ErrCodeValidation, "Invalid rule: %v", err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
