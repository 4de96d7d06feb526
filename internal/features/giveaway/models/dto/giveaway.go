package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"atlas3-backend/internal/domain/rule"
	"atlas3-backend/internal/features/giveaway/models"
)

// GiveawayUpsertRequest is the body of both the create (PUT) and edit (POST)
// calls. ID is only read on edit.
type GiveawayUpsertRequest struct {
	ID          string              `json:"id,omitempty"`
	Name        string              `json:"name" example:"Alpha x Beta"`
	Description string              `json:"description"`
	BannerImage string              `json:"bannerImage"`
	Type        models.GiveawayType `json:"type" example:"RAFFLE"`
	MaxWinners  int                 `json:"maxWinners" example:"10"`
	EndsAt      *time.Time          `json:"endsAt,omitempty"`

	Rules         []rule.Rule              `json:"rules" swaggertype:"array,object"`
	Settings      *models.GiveawaySettings `json:"settings,omitempty"`
	DiscordRoleID string                   `json:"discordRoleId,omitempty"`

	PaymentToken       *models.PaymentToken `json:"paymentToken,omitempty"`
	PaymentTokenAmount *decimal.Decimal     `json:"paymentTokenAmount,omitempty" swaggertype:"string"`

	CollabType            models.CollabType `json:"collabType,omitempty" example:"GIVE_SPOTS"`
	CollabProjectIDs      []string          `json:"collabProjectIds,omitempty"`
	CollabProjectID       string            `json:"collabProjectId,omitempty"`
	CollabDuration        int               `json:"collabDuration,omitempty" example:"24"`
	CollabRequestDeadline *time.Time        `json:"collabRequestDeadline,omitempty"`
	TeamSpots             int               `json:"teamSpots,omitempty"`
}

// IsCollab reports whether the request asks for a collab giveaway.
func (r *GiveawayUpsertRequest) IsCollab() bool {
	return r.CollabType != "" || r.CollabProjectID != "" || len(r.CollabProjectIDs) > 0
}

// TargetProjectIDs lists collab targets in caller order. The multi-select
// list wins over the single id; duplicates are kept.
func (r *GiveawayUpsertRequest) TargetProjectIDs() []string {
	if len(r.CollabProjectIDs) > 0 {
		return r.CollabProjectIDs
	}
	if r.CollabProjectID != "" {
		return []string{r.CollabProjectID}
	}
	return nil
}
