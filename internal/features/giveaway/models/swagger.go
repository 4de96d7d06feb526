package models

// @Description Error payload returned by every failing endpoint
type ErrorResponse struct {
	Message   string `json:"message" example:"End Date must be in the future"`
	Code      string `json:"code" example:"VALIDATION_ERROR"`
	RequestID string `json:"request_id" example:"5f1c7d1e-2a8e-4b41-9d8f-3b0c7c8f2a11"`
}

// @Description Entry rule; exactly one payload object matching type is present
type SwaggerRule struct {
	ID                    string                 `json:"id,omitempty" example:"7b8e3c1a-1d2f-4a5b-8c9d-0e1f2a3b4c5d"`
	Type                  string                 `json:"type" example:"DISCORD_GUILD" enums:"DISCORD_GUILD,DISCORD_ROLE,TWITTER_FRIENDSHIP,TWITTER_TWEET,MINIMUM_BALANCE,OWN_NFT"`
	DiscordGuildRule      map[string]interface{} `json:"discordGuildRule,omitempty"`
	DiscordRoleRule       map[string]interface{} `json:"discordRoleRule,omitempty"`
	TwitterFriendshipRule map[string]interface{} `json:"twitterFriendshipRule,omitempty"`
	TwitterTweetRule      map[string]interface{} `json:"twitterTweetRule,omitempty"`
	MinimumBalanceRule    map[string]interface{} `json:"minimumBalanceRule,omitempty"`
	OwnNftRule            map[string]interface{} `json:"ownNftRule,omitempty"`
}
