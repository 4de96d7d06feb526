package rule

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"atlas3-backend/internal/common/validation"
	"atlas3-backend/internal/domain/network"
)

// Type discriminates the entry rule variants.
type Type string

const (
	TypeDiscordGuild      Type = "DISCORD_GUILD"
	TypeDiscordRole       Type = "DISCORD_ROLE"
	TypeTwitterFriendship Type = "TWITTER_FRIENDSHIP"
	TypeTwitterTweet      Type = "TWITTER_TWEET"
	TypeMinimumBalance    Type = "MINIMUM_BALANCE"
	TypeOwnNft            Type = "OWN_NFT"
)

// Payload is implemented by every rule variant.
type Payload interface {
	RuleType() Type
	Validate() error
}

// Rule is an entry requirement of a giveaway. Rules are compared by ID only.
type Rule struct {
	ID      string
	Payload Payload
}

func (r Rule) Type() Type {
	if r.Payload == nil {
		return ""
	}
	return r.Payload.RuleType()
}

func (r Rule) Validate() error {
	if r.Payload == nil {
		return fmt.Errorf("rule payload is required")
	}
	if err := r.Payload.Validate(); err != nil {
		return fmt.Errorf("%s rule: %w", r.Payload.RuleType(), err)
	}
	return nil
}

type DiscordGuildRule struct {
	GuildID   string `json:"guildId"`
	GuildName string `json:"guildName,omitempty"`
}

func (DiscordGuildRule) RuleType() Type { return TypeDiscordGuild }

func (p DiscordGuildRule) Validate() error {
	if strings.TrimSpace(p.GuildID) == "" {
		return fmt.Errorf("guild id is required")
	}
	return nil
}

type DiscordRoleRule struct {
	GuildID   string   `json:"guildId"`
	GuildName string   `json:"guildName,omitempty"`
	RoleIDs   []string `json:"roleIds"`
}

func (DiscordRoleRule) RuleType() Type { return TypeDiscordRole }

func (p DiscordRoleRule) Validate() error {
	if strings.TrimSpace(p.GuildID) == "" {
		return fmt.Errorf("guild id is required")
	}
	if len(p.RoleIDs) == 0 {
		return fmt.Errorf("at least one role is required")
	}
	return nil
}

// TwitterFriendshipRule requires following (or being followed by) an account.
type TwitterFriendshipRule struct {
	Username      string   `json:"username"`
	Relationships []string `json:"relationships,omitempty"`
}

func (TwitterFriendshipRule) RuleType() Type { return TypeTwitterFriendship }

func (p TwitterFriendshipRule) Validate() error {
	return validation.ValidateTwitterUsername(p.Username)
}

type TwitterTweetRule struct {
	TweetID string   `json:"tweetId"`
	Actions []string `json:"actions,omitempty"`
}

func (TwitterTweetRule) RuleType() Type { return TypeTwitterTweet }

func (p TwitterTweetRule) Validate() error {
	if strings.TrimSpace(p.TweetID) == "" {
		return fmt.Errorf("tweet id is required")
	}
	return nil
}

type MinimumBalanceRule struct {
	Network         network.Network `json:"network"`
	ContractAddress string          `json:"contractAddress,omitempty"`
	MinimumBalance  decimal.Decimal `json:"minimumBalance"`
}

func (MinimumBalanceRule) RuleType() Type { return TypeMinimumBalance }

func (p MinimumBalanceRule) Validate() error {
	if !p.Network.IsValid() {
		return fmt.Errorf("unknown network: %q", p.Network)
	}
	if !p.MinimumBalance.IsPositive() {
		return fmt.Errorf("minimum balance must be positive")
	}
	return nil
}

type OwnNftRule struct {
	Network         network.Network `json:"network"`
	ContractAddress string          `json:"contractAddress"`
	CollectionName  string          `json:"collectionName,omitempty"`
}

func (OwnNftRule) RuleType() Type { return TypeOwnNft }

func (p OwnNftRule) Validate() error {
	if !p.Network.IsValid() {
		return fmt.Errorf("unknown network: %q", p.Network)
	}
	if strings.TrimSpace(p.ContractAddress) == "" {
		return fmt.Errorf("contract address is required")
	}
	return nil
}

// payloadKeys maps each variant to its JSON field name on the wire.
var payloadKeys = map[Type]string{
	TypeDiscordGuild:      "discordGuildRule",
	TypeDiscordRole:       "discordRoleRule",
	TypeTwitterFriendship: "twitterFriendshipRule",
	TypeTwitterTweet:      "twitterTweetRule",
	TypeMinimumBalance:    "minimumBalanceRule",
	TypeOwnNft:            "ownNftRule",
}

func newPayload(t Type) (Payload, bool) {
	switch t {
	case TypeDiscordGuild:
		return &DiscordGuildRule{}, true
	case TypeDiscordRole:
		return &DiscordRoleRule{}, true
	case TypeTwitterFriendship:
		return &TwitterFriendshipRule{}, true
	case TypeTwitterTweet:
		return &TwitterTweetRule{}, true
	case TypeMinimumBalance:
		return &MinimumBalanceRule{}, true
	case TypeOwnNft:
		return &OwnNftRule{}, true
	}
	return nil, false
}

// deref turns the pointer produced by newPayload back into a value variant.
func deref(p Payload) Payload {
	switch v := p.(type) {
	case *DiscordGuildRule:
		return *v
	case *DiscordRoleRule:
		return *v
	case *TwitterFriendshipRule:
		return *v
	case *TwitterTweetRule:
		return *v
	case *MinimumBalanceRule:
		return *v
	case *OwnNftRule:
		return *v
	}
	return p
}

// MarshalJSON writes {"id", "type", "<variant>Rule": {...}}.
func (r Rule) MarshalJSON() ([]byte, error) {
	if r.Payload == nil {
		return nil, fmt.Errorf("rule %q has no payload", r.ID)
	}
	t := r.Payload.RuleType()
	key, ok := payloadKeys[t]
	if !ok {
		return nil, fmt.Errorf("unknown rule type: %q", t)
	}
	payload, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, err
	}
	typ, _ := json.Marshal(t)
	out := map[string]json.RawMessage{
		"type": typ,
		key:    payload,
	}
	if r.ID != "" {
		id, _ := json.Marshal(r.ID)
		out["id"] = id
	}
	return json.Marshal(out)
}

func (r *Rule) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var head struct {
		ID   string `json:"id"`
		Type Type   `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	payload, ok := newPayload(head.Type)
	if !ok {
		return fmt.Errorf("unknown rule type: %q", head.Type)
	}
	raw, ok := fields[payloadKeys[head.Type]]
	if !ok || string(raw) == "null" {
		return fmt.Errorf("rule of type %s is missing %s", head.Type, payloadKeys[head.Type])
	}
	for t, key := range payloadKeys {
		if t == head.Type {
			continue
		}
		if other, present := fields[key]; present && string(other) != "null" {
			return fmt.Errorf("rule of type %s must not carry %s", head.Type, key)
		}
	}
	if err := json.Unmarshal(raw, payload); err != nil {
		return fmt.Errorf("decode %s: %w", payloadKeys[head.Type], err)
	}

	r.ID = head.ID
	r.Payload = deref(payload)
	return nil
}
