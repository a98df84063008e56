package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/pathfinder-core/server/internal/counselor/model"
)

// subjectKeywords maps surface forms found in student messages to canonical
// school-subject labels.
var subjectKeywords = map[string]string{
	"math":               "Mathematics",
	"mathematics":        "Mathematics",
	"biology":            "Biology",
	"chemistry":          "Chemistry",
	"physics":            "Physics",
	"history":            "History",
	"geography":          "Geography",
	"english":            "English",
	"literature":         "Literature",
	"computer science":   "Computer Science",
	"programming":        "Programming",
	"economics":          "Economics",
	"psychology":         "Psychology",
	"art class":          "Art",
	"music class":        "Music",
	"physical education": "Physical Education",
}

// hobbyKeywords maps surface forms to canonical hobby labels.
var hobbyKeywords = map[string]string{
	"painting":    "Painting",
	"drawing":     "Drawing",
	"hiking":      "Hiking",
	"reading":     "Reading",
	"writing":     "Writing",
	"gaming":      "Gaming",
	"video games": "Gaming",
	"photography": "Photography",
	"cooking":     "Cooking",
	"baking":      "Baking",
	"dancing":     "Dancing",
	"singing":     "Singing",
	"soccer":      "Soccer",
	"basketball":  "Basketball",
	"swimming":    "Swimming",
	"coding":      "Coding",
	"gardening":   "Gardening",
	"chess":       "Chess",
}

// interestPatterns capture what follows a verb phrase indicating interest,
// up to the first punctuation mark or end of message.
var interestPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\binterested in (.+?)(?:[.,!?]|$)`),
	regexp.MustCompile(`\blove (.+?)(?:[.,!?]|$)`),
	regexp.MustCompile(`\blike (.+?)(?:[.,!?]|$)`),
	regexp.MustCompile(`\benjoy (.+?)(?:[.,!?]|$)`),
	regexp.MustCompile(`\bpassionate about (.+?)(?:[.,!?]|$)`),
	regexp.MustCompile(`\bfascinated by (.+?)(?:[.,!?]|$)`),
}

// goalPatterns capture aspiration phrases.
var goalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`want to be (?:an? )?(.+?)(?:[.,!?]|$)`),
	regexp.MustCompile(`dream of being (?:an? )?(.+?)(?:[.,!?]|$)`),
	regexp.MustCompile(`hope to become (?:an? )?(.+?)(?:[.,!?]|$)`),
	regexp.MustCompile(`aspire to be (?:an? )?(.+?)(?:[.,!?]|$)`),
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"to": true, "of": true, "in": true, "my": true, "really": true,
	"also": true, "some": true, "all": true, "doing": true,
}

// Fallback performs deterministic, network-free extraction from a single
// message. Matching is done on the lower-cased message; outputs are
// deduplicated before being placed in the delta.
func Fallback(message string) *model.ProfileDelta {
	lower := strings.ToLower(message)
	delta := &model.ProfileDelta{}

	seenSubjects := map[string]bool{}
	for surface, label := range subjectKeywords {
		if strings.Contains(lower, surface) && !seenSubjects[label] {
			seenSubjects[label] = true
			delta.Subjects = append(delta.Subjects, label)
		}
	}

	seenHobbies := map[string]bool{}
	for surface, label := range hobbyKeywords {
		if strings.Contains(lower, surface) && !seenHobbies[label] {
			seenHobbies[label] = true
			delta.Hobbies = append(delta.Hobbies, label)
		}
	}

	seenInterests := map[string]bool{}
	for _, re := range interestPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			interest := cleanPhrase(m[1], 3)
			if interest != "" && !seenInterests[interest] {
				seenInterests[interest] = true
				delta.Interests = append(delta.Interests, interest)
			}
		}
	}

	seenGoals := map[string]bool{}
	for _, re := range goalPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			goal := cleanPhrase(m[1], 4)
			if goal != "" && !seenGoals[goal] {
				seenGoals[goal] = true
				delta.Goals = append(delta.Goals, goal)
			}
		}
	}

	// keyword dictionaries are maps; sort their hits so iteration order
	// never leaks into the delta
	sort.Strings(delta.Subjects)
	sort.Strings(delta.Hobbies)
	return delta
}

// cleanPhrase strips stop words, truncates to maxWords words and title-cases
// the result.
func cleanPhrase(phrase string, maxWords int) string {
	var kept []string
	for _, w := range strings.Fields(strings.TrimSpace(phrase)) {
		if stopWords[w] {
			continue
		}
		kept = append(kept, titleWord(w))
		if len(kept) == maxWords {
			break
		}
	}
	return strings.Join(kept, " ")
}

func titleWord(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
