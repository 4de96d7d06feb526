package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"atlas3-backend/internal/domain/network"
	"atlas3-backend/internal/domain/rule"
	projectmodels "atlas3-backend/internal/features/project/models"
)

// GiveawayType is how winners are picked.
type GiveawayType string

const (
	GiveawayTypeRaffle GiveawayType = "RAFFLE"
	GiveawayTypeFCFS   GiveawayType = "FCFS"
	GiveawayTypeManual GiveawayType = "MANUAL"
)

func (t GiveawayType) IsValid() bool {
	switch t {
	case GiveawayTypeRaffle, GiveawayTypeFCFS, GiveawayTypeManual:
		return true
	}
	return false
}

// GiveawayStatus is the lifecycle state. Transitions past RUNNING are owned
// by the finalization jobs.
type GiveawayStatus string

const (
	GiveawayStatusCollabPending GiveawayStatus = "COLLAB_PENDING"
	GiveawayStatusRunning       GiveawayStatus = "RUNNING"
	GiveawayStatusFinalized     GiveawayStatus = "FINALIZED"
	GiveawayStatusCancelled     GiveawayStatus = "CANCELLED"
)

// CollabType is the direction of spots in a collab.
type CollabType string

const (
	CollabTypeGiveSpots    CollabType = "GIVE_SPOTS"
	CollabTypeReceiveSpots CollabType = "RECEIVE_SPOTS"
)

func (c CollabType) IsValid() bool {
	return c == CollabTypeGiveSpots || c == CollabTypeReceiveSpots
}

// PlaceholderRoleID is what the role picker submits when nothing was chosen.
const PlaceholderRoleID = "Select One"

type GiveawaySettings struct {
	Private                bool   `json:"private"`
	PreventDuplicateIPs    bool   `json:"preventDuplicateIps"`
	OverrideRoleID         string `json:"overrideRoleId,omitempty"`
	MultipleCollabProjects bool   `json:"multipleCollabProjects"`
}

// RoleOverride returns the explicitly chosen override role, if any.
func (s *GiveawaySettings) RoleOverride() (string, bool) {
	if s == nil || s.OverrideRoleID == "" || s.OverrideRoleID == PlaceholderRoleID {
		return "", false
	}
	return s.OverrideRoleID, true
}

// PaymentToken configures paid entry.
type PaymentToken struct {
	Symbol       string          `json:"symbol"`
	TokenAddress string          `json:"tokenAddress"`
	Network      network.Network `json:"network"`
}

type Giveaway struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Slug        string         `gorm:"uniqueIndex;size:191;not null" json:"slug"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	BannerImage string         `gorm:"size:512" json:"bannerImage"`
	Type        GiveawayType   `gorm:"size:16;not null" json:"type"`
	Status      GiveawayStatus `gorm:"size:24;not null;index" json:"status"`

	// Rules is a snapshot taken at creation, not a reference to project rules.
	Rules datatypes.JSONSlice[rule.Rule] `json:"rules"`

	CollabType            CollabType `gorm:"size:16" json:"collabType,omitempty"`
	MaxWinners            int        `gorm:"not null" json:"maxWinners"`
	CollabDuration        int        `json:"collabDuration,omitempty"` // hours
	CollabRequestDeadline *time.Time `json:"collabRequestDeadline,omitempty"`
	EndsAt                *time.Time `json:"endsAt,omitempty"`

	DiscordRoleID      string           `gorm:"size:64" json:"discordRoleId,omitempty"`
	Network            network.Network  `gorm:"size:32" json:"network"`
	PaymentToken       *PaymentToken    `gorm:"serializer:json" json:"paymentToken,omitempty"`
	PaymentTokenAmount *decimal.Decimal `gorm:"type:decimal(36,18)" json:"paymentTokenAmount,omitempty"`
	Settings           GiveawaySettings `gorm:"serializer:json" json:"settings"`

	ProjectID       string                 `gorm:"size:36;not null;index" json:"projectId"`
	Project         *projectmodels.Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CollabProjectID *string                `gorm:"size:36;index" json:"collabProjectId,omitempty"`
	CollabProject   *projectmodels.Project `gorm:"foreignKey:CollabProjectID" json:"collabProject,omitempty"`
	OwnerID         string                 `gorm:"size:64;not null;index" json:"ownerId"`
	// ParentID links a team giveaway to the collab giveaway it was spawned from.
	ParentID *string `gorm:"size:36;index" json:"parentId,omitempty"`

	DiscordChannelID string `gorm:"size:64" json:"discordChannelId,omitempty"`
	DiscordMessageID string `gorm:"size:64" json:"discordMessageId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *Giveaway) IsCollab() bool {
	return g.CollabProjectID != nil && *g.CollabProjectID != ""
}
