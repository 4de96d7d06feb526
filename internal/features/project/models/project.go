package models

import (
	"time"

	"gorm.io/datatypes"

	"atlas3-backend/internal/domain/network"
	"atlas3-backend/internal/domain/rule"
)

// ProjectStatus is the publication state of a project page.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "DRAFT"
	ProjectStatusPublished ProjectStatus = "PUBLISHED"
)

// Phase tells whether the project collection has minted yet.
type Phase string

const (
	PhasePremint  Phase = "PREMINT"
	PhasePostmint Phase = "POSTMINT"
)

// AllowlistType is how winners get minting eligibility.
type AllowlistType string

const (
	AllowlistDiscordRole      AllowlistType = "DISCORD_ROLE"
	AllowlistDirectToContract AllowlistType = "DIRECT_TO_CONTRACT"
)

// Project is one NFT/crypto project (tenant).
type Project struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	Slug          string          `gorm:"uniqueIndex;size:191;not null" json:"slug"`
	Name          string          `gorm:"size:150;not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	BannerImage   string          `gorm:"size:512" json:"bannerImage"`
	Status        ProjectStatus   `gorm:"size:16;not null;default:DRAFT" json:"status"`
	Phase         Phase           `gorm:"size:16;not null;default:PREMINT" json:"phase"`
	Network       network.Network `gorm:"size:32;not null" json:"network"`
	DefaultRoleID string          `gorm:"size:64" json:"defaultRoleId"`

	// DefaultRules apply when this project gives spots.
	DefaultRules datatypes.JSONSlice[rule.Rule] `json:"defaultRules"`
	// HolderRules gate entry to this project's holders when it receives spots.
	HolderRules datatypes.JSONSlice[rule.Rule] `json:"holderRules"`

	Allowlist    *Allowlist    `gorm:"foreignKey:ProjectID" json:"allowlist,omitempty"`
	DiscordGuild *DiscordGuild `gorm:"foreignKey:ProjectID" json:"discordGuild,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Project) IsPublished() bool {
	return p.Status == ProjectStatusPublished
}

// IncomingCollabsChannel returns the Discord channel that receives collab
// requests, if one is configured.
func (p *Project) IncomingCollabsChannel() (channelID, mentionRoleID string, ok bool) {
	if p == nil || p.DiscordGuild == nil || p.DiscordGuild.IncomingCollabsChannelID == "" {
		return "", "", false
	}
	return p.DiscordGuild.IncomingCollabsChannelID, p.DiscordGuild.IncomingCollabsMentionRoleID, true
}

type Allowlist struct {
	ID              string        `gorm:"primaryKey;size:36" json:"id"`
	ProjectID       string        `gorm:"uniqueIndex;size:36;not null" json:"projectId"`
	Type            AllowlistType `gorm:"size:32;not null" json:"type"`
	RoleID          string        `gorm:"size:64" json:"roleId,omitempty"`
	ContractAddress string        `gorm:"size:128" json:"contractAddress,omitempty"`
}

type DiscordGuild struct {
	ID                           string `gorm:"primaryKey;size:36" json:"id"`
	ProjectID                    string `gorm:"uniqueIndex;size:36;not null" json:"projectId"`
	GuildID                      string `gorm:"size:64;not null" json:"guildId"`
	Name                         string `gorm:"size:150" json:"name"`
	IncomingCollabsChannelID     string `gorm:"size:64" json:"incomingCollabsChannelId,omitempty"`
	IncomingCollabsMentionRoleID string `gorm:"size:64" json:"incomingCollabsMentionRoleId,omitempty"`
}
