package notifications

import "fmt"

// Kind selects the bot API call a job turns into.
type Kind string

const (
	KindCollabRequest   Kind = "collab_request"
	KindGiveawayUpdated Kind = "giveaway_updated"
)

// Job is one best-effort call to the Discord bot.
type Job struct {
	Kind          Kind
	GiveawaySlug  string
	ChannelID     string
	MentionRoleID string
	MessageID     string
}

// CollabRequest builds the job announcing a new collab giveaway.
func CollabRequest(giveawaySlug, channelID, mentionRoleID string) Job {
	return Job{
		Kind:          KindCollabRequest,
		GiveawaySlug:  giveawaySlug,
		ChannelID:     channelID,
		MentionRoleID: mentionRoleID,
	}
}

// GiveawayUpdated builds the job refreshing an existing Discord message.
func GiveawayUpdated(giveawaySlug, channelID, messageID string) Job {
	return Job{
		Kind:         KindGiveawayUpdated,
		GiveawaySlug: giveawaySlug,
		ChannelID:    channelID,
		MessageID:    messageID,
	}
}

// Values encodes the job as redis stream fields.
func (j Job) Values() map[string]interface{} {
	values := map[string]interface{}{
		"type":          string(j.Kind),
		"giveaway_slug": j.GiveawaySlug,
		"channel_id":    j.ChannelID,
	}
	if j.MentionRoleID != "" {
		values["mention_role_id"] = j.MentionRoleID
	}
	if j.MessageID != "" {
		values["message_id"] = j.MessageID
	}
	return values
}

// JobFromValues decodes stream fields written by Values.
func JobFromValues(values map[string]interface{}) (Job, error) {
	str := func(key string) string {
		s, _ := values[key].(string)
		return s
	}

	j := Job{
		Kind:          Kind(str("type")),
		GiveawaySlug:  str("giveaway_slug"),
		ChannelID:     str("channel_id"),
		MentionRoleID: str("mention_role_id"),
		MessageID:     str("message_id"),
	}
	switch j.Kind {
	case KindCollabRequest, KindGiveawayUpdated:
	default:
		return Job{}, fmt.Errorf("unknown notification type: %q", j.Kind)
	}
	if j.GiveawaySlug == "" || j.ChannelID == "" {
		return Job{}, fmt.Errorf("notification %s is missing giveaway slug or channel id", j.Kind)
	}
	if j.Kind == KindGiveawayUpdated && j.MessageID == "" {
		return Job{}, fmt.Errorf("notification %s is missing message id", j.Kind)
	}
	return j, nil
}
