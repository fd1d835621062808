package approval

import "sort"

// DefaultLevels is the chain used when no policy matches a duration: a
// single direct-manager sign-off.
func DefaultLevels() []PolicyLevel {
	return []PolicyLevel{{Level: 1, Role: RoleManager, Description: "direct manager"}}
}

// SelectPolicy picks the policy governing a request of durationDays within a
// company. Company-specific policies beat company-agnostic ones; remaining
// ties break on smallest MinDays, then on ID so the outcome is deterministic
// for overlapping ranges. Returns the matched levels sorted by level, or
// DefaultLevels when nothing matches.
func SelectPolicy(policies []Policy, durationDays float64, companyID string) []PolicyLevel {
	var matched []Policy
	for _, p := range policies {
		if p.Matches(durationDays, companyID) {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return DefaultLevels()
	}

	sort.Slice(matched, func(i, j int) bool {
		iScoped := matched[i].CompanyID != nil
		jScoped := matched[j].CompanyID != nil
		if iScoped != jScoped {
			return iScoped
		}
		if matched[i].MinDays != matched[j].MinDays {
			return matched[i].MinDays < matched[j].MinDays
		}
		return matched[i].ID < matched[j].ID
	})

	levels := make([]PolicyLevel, len(matched[0].Levels))
	copy(levels, matched[0].Levels)
	sort.Slice(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })
	return levels
}
