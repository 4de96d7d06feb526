package rule

import (
	"bytes"
	"encoding/json"
)

// IDs returns the ids of rules in order, skipping rules without one.
func IDs(rules []Rule) []string {
	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.ID != "" {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// IDSet returns the set of non-empty rule ids.
func IDSet(rules []Rule) map[string]struct{} {
	set := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if r.ID != "" {
			set[r.ID] = struct{}{}
		}
	}
	return set
}

func ContainsID(rules []Rule, id string) bool {
	for _, r := range rules {
		if r.ID == id {
			return true
		}
	}
	return false
}

func HasType(rules []Rule, t Type) bool {
	for _, r := range rules {
		if r.Type() == t {
			return true
		}
	}
	return false
}

// FilterDiscordGuild keeps only Discord guild rules that name a guild.
func FilterDiscordGuild(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		p, ok := r.Payload.(DiscordGuildRule)
		if !ok || p.GuildID == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Equal reports whether a and b carry the same id and the same payload.
func Equal(a, b Rule) bool {
	if a.ID != b.ID {
		return false
	}
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}

// Clone copies the slice so snapshots never alias a project's rule list.
func Clone(rules []Rule) []Rule {
	if rules == nil {
		return nil
	}
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
