package model

import (
	"encoding/json"
	"sort"
	"strings"
)

// StudentProfile accumulates everything learned about a student over the
// course of one counseling session. Values are only ever added, never
// removed; Reset on the owning session replaces the whole profile.
type StudentProfile struct {
	Interests       []string `json:"interests"`
	Hobbies         []string `json:"hobbies"`
	Subjects        []string `json:"favorite_subjects"`
	Strengths       []string `json:"academic_strengths"`
	Challenges      []string `json:"academic_challenges"`
	Dislikes        []string `json:"dislikes"`
	Personality     []string `json:"personality_traits"`
	Goals           []string `json:"career_goals"`
	WorkPreferences []string `json:"work_preferences"`
}

// ProfileDelta is a partial set of newly extracted attribute values to be
// merged into a StudentProfile. Its JSON shape matches what the extraction
// prompt asks the model to return.
type ProfileDelta struct {
	Interests       []string `json:"interests"`
	Hobbies         []string `json:"hobbies"`
	Subjects        []string `json:"favorite_subjects"`
	Strengths       []string `json:"academic_strengths"`
	Challenges      []string `json:"academic_challenges"`
	Dislikes        []string `json:"dislikes"`
	Personality     []string `json:"personality_traits"`
	Goals           []string `json:"career_goals"`
	WorkPreferences []string `json:"work_preferences"`
}

// IsEmpty reports whether the delta carries no values at all.
func (d *ProfileDelta) IsEmpty() bool {
	if d == nil {
		return true
	}
	return len(d.Interests) == 0 && len(d.Hobbies) == 0 && len(d.Subjects) == 0 &&
		len(d.Strengths) == 0 && len(d.Challenges) == 0 && len(d.Dislikes) == 0 &&
		len(d.Personality) == 0 && len(d.Goals) == 0 && len(d.WorkPreferences) == 0
}

// NewStudentProfile returns an empty profile.
func NewStudentProfile() *StudentProfile {
	return &StudentProfile{}
}

// appendUnique appends items not already present, comparing case-insensitively.
func appendUnique(target []string, items []string) []string {
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		dup := false
		for _, existing := range target {
			if strings.EqualFold(existing, item) {
				dup = true
				break
			}
		}
		if !dup {
			target = append(target, item)
		}
	}
	return target
}

// Merge folds a delta into the profile in place. Items already present in a
// category (case-insensitive) are skipped; empty categories are a no-op.
func (p *StudentProfile) Merge(delta *ProfileDelta) {
	if delta == nil {
		return
	}
	p.Interests = appendUnique(p.Interests, delta.Interests)
	p.Hobbies = appendUnique(p.Hobbies, delta.Hobbies)
	p.Subjects = appendUnique(p.Subjects, delta.Subjects)
	p.Strengths = appendUnique(p.Strengths, delta.Strengths)
	p.Challenges = appendUnique(p.Challenges, delta.Challenges)
	p.Dislikes = appendUnique(p.Dislikes, delta.Dislikes)
	p.Personality = appendUnique(p.Personality, delta.Personality)
	p.Goals = appendUnique(p.Goals, delta.Goals)
	p.WorkPreferences = appendUnique(p.WorkPreferences, delta.WorkPreferences)
}

// Completeness returns the fraction of core categories that hold at least one
// value, clamped to [0,1]. Challenges are informative but do not count toward
// completeness.
func (p *StudentProfile) Completeness() float64 {
	core := [][]string{
		p.Interests,
		p.Hobbies,
		p.Subjects,
		p.Strengths,
		p.Dislikes,
		p.Personality,
		p.Goals,
		p.WorkPreferences,
	}
	populated := 0
	for _, c := range core {
		if len(c) > 0 {
			populated++
		}
	}
	score := float64(populated) / float64(len(core))
	if score > 1 {
		return 1
	}
	return score
}

// Snapshot returns a deterministic serialization of the profile, suitable for
// detecting whether a merge changed anything. Struct field order is fixed, so
// encoding/json key order is stable across runs.
func (p *StudentProfile) Snapshot() string {
	b, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(b)
}

// ChangedSince reports whether the profile differs from the given snapshot.
func (p *StudentProfile) ChangedSince(snapshot string) bool {
	return p.Snapshot() != snapshot
}

// MissingAreas lists the profile areas that are still empty, for the
// clarifying-question metadata.
func (p *StudentProfile) MissingAreas() []string {
	var missing []string
	if len(p.Interests) == 0 && len(p.Hobbies) == 0 {
		missing = append(missing, "interests_and_hobbies")
	}
	if len(p.Strengths) == 0 {
		missing = append(missing, "academic_strengths")
	}
	if len(p.Personality) == 0 {
		missing = append(missing, "personality_preferences")
	}
	if len(p.WorkPreferences) == 0 {
		missing = append(missing, "work_environment")
	}
	if len(p.Dislikes) == 0 {
		missing = append(missing, "things_to_avoid")
	}
	return missing
}

// InterestCategory is a broad semantic grouping of student interests.
type InterestCategory string

const (
	CategoryCreative        InterestCategory = "creative"
	CategoryAnalytical      InterestCategory = "analytical"
	CategorySocial          InterestCategory = "social"
	CategoryHandsOn         InterestCategory = "hands_on"
	CategoryEntrepreneurial InterestCategory = "entrepreneurial"
	CategoryNature          InterestCategory = "nature"
	CategoryTechnology      InterestCategory = "technology"
)

// interestCategoryOrder fixes the tie-break order for DominantCategories.
var interestCategoryOrder = []InterestCategory{
	CategoryCreative,
	CategoryAnalytical,
	CategorySocial,
	CategoryHandsOn,
	CategoryEntrepreneurial,
	CategoryNature,
	CategoryTechnology,
}

var interestCategoryKeywords = map[InterestCategory][]string{
	CategoryCreative:        {"art", "music", "draw", "paint", "design", "creative", "write"},
	CategoryAnalytical:      {"math", "logic", "puzzle", "analyze", "research", "data"},
	CategorySocial:          {"people", "help", "team", "communicate", "counsel", "teach"},
	CategoryHandsOn:         {"build", "fix", "craft", "make", "construct", "repair"},
	CategoryEntrepreneurial: {"business", "lead", "manage", "sell", "organize"},
	CategoryNature:          {"nature", "environment", "animal", "outdoor", "plant"},
	CategoryTechnology:      {"computer", "code", "program", "tech", "digital", "software"},
}

// DominantCategories scores interests, hobbies and favorite subjects against
// fixed keyword sets per category by substring match. Categories with at
// least one hit are returned sorted by descending match count; ties keep the
// declaration order of the categories.
func (p *StudentProfile) DominantCategories() []InterestCategory {
	counts := make(map[InterestCategory]int, len(interestCategoryOrder))

	var all []string
	all = append(all, p.Interests...)
	all = append(all, p.Hobbies...)
	all = append(all, p.Subjects...)

	for _, item := range all {
		lower := strings.ToLower(item)
		for _, cat := range interestCategoryOrder {
			for _, kw := range interestCategoryKeywords[cat] {
				if strings.Contains(lower, kw) {
					counts[cat]++
					break
				}
			}
		}
	}

	var result []InterestCategory
	for _, cat := range interestCategoryOrder {
		if counts[cat] > 0 {
			result = append(result, cat)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return counts[result[i]] > counts[result[j]]
	})
	return result
}

// Summary renders the profile into a serializable map for response metadata
// and the status endpoint.
func (p *StudentProfile) Summary() map[string]any {
	cats := p.DominantCategories()
	dominant := make([]string, 0, len(cats))
	for _, c := range cats {
		dominant = append(dominant, string(c))
	}
	return map[string]any{
		"interests":                    p.Interests,
		"hobbies":                      p.Hobbies,
		"favorite_subjects":            p.Subjects,
		"academic_strengths":           p.Strengths,
		"personality_traits":           p.Personality,
		"career_goals":                 p.Goals,
		"completeness":                 p.Completeness(),
		"dominant_interest_categories": dominant,
	}
}
