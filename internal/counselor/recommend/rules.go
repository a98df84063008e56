package recommend

import (
	"fmt"
	"strings"

	"github.com/pathfinder-core/server/internal/counselor/model"
)

// Career is one canned recommendation record used by the rule-based
// fallback.
type Career struct {
	Title     string `json:"title"`
	Reason    string `json:"reason"`
	Education string `json:"education"`
	NextStep  string `json:"next_step"`
}

// rule pairs a keyword predicate with a producer. Rules are evaluated in
// declaration order and the first match wins, which makes the clusters
// mutually exclusive by construction.
type rule struct {
	name     string
	keywords []string
	produce  func(text string) []Career
}

var rules = []rule{
	{
		name:     "life_science",
		keywords: []string{"biology", "life science", "animals", "plants", "ecology"},
		produce: func(string) []Career {
			return []Career{
				{
					Title:     "Wildlife Biologist",
					Reason:    "Your interest in biology and living things points toward studying animals and ecosystems in the field.",
					Education: "Bachelor's degree in biology, ecology, or zoology.",
					NextStep:  "Volunteer at a local nature reserve or wildlife rehabilitation center.",
				},
				{
					Title:     "Biotechnology Researcher",
					Reason:    "Biology combined with lab work opens the door to developing new medicines and materials.",
					Education: "Bachelor's in biotechnology or molecular biology; research roles usually expect a graduate degree.",
					NextStep:  "Ask your science teacher about entering a science fair with a biology project.",
				},
			}
		},
	},
	{
		name:     "health",
		keywords: []string{"medicine", "doctor", "health", "nursing", "anatomy", "helping sick"},
		produce: func(string) []Career {
			return []Career{
				{
					Title:     "Registered Nurse",
					Reason:    "Your interest in health and helping people fits direct patient care.",
					Education: "Bachelor of Science in Nursing and a licensing exam.",
					NextStep:  "Look for a hospital volunteer program or a first-aid certification course.",
				},
				{
					Title:     "Physician",
					Reason:    "Strong science interests and a drive to help others are the core of medical practice.",
					Education: "Pre-med undergraduate degree followed by medical school and residency.",
					NextStep:  "Shadow a local doctor for a day to see what the work is really like.",
				},
			}
		},
	},
	{
		name:     "chemistry",
		keywords: []string{"chemistry", "chemical", "reactions", "lab experiments"},
		produce: func(string) []Career {
			return []Career{
				{
					Title:     "Chemical Engineer",
					Reason:    "Enjoying chemistry and problem solving translates into designing industrial processes.",
					Education: "Bachelor's degree in chemical engineering.",
					NextStep:  "Join a chemistry club or enter a regional chemistry olympiad.",
				},
			}
		},
	},
	{
		name:     "engineering",
		keywords: []string{"physics", "engineering", "computer", "software", "technology", "coding", "robots", "math"},
		produce: func(text string) []Career {
			if strings.Contains(text, "software") || strings.Contains(text, "computer") || strings.Contains(text, "coding") {
				return []Career{
					{
						Title:     "Software Engineer",
						Reason:    "Your interest in computers and technology fits building software systems.",
						Education: "Bachelor's degree in computer science, or a coding bootcamp plus a strong portfolio.",
						NextStep:  "Build a small personal project and publish it on GitHub.",
					},
					{
						Title:     "Data Scientist",
						Reason:    "Combining computing with analysis turns raw data into decisions.",
						Education: "Degree in computer science, statistics, or mathematics.",
						NextStep:  "Try a free online course on Python and data analysis.",
					},
				}
			}
			return []Career{
				{
					Title:     "Mechanical Engineer",
					Reason:    "Physics and math strengths are the foundation of designing machines and structures.",
					Education: "Bachelor's degree in mechanical engineering.",
					NextStep:  "Join a robotics team or take a CAD design course.",
				},
			}
		},
	},
	{
		name:     "creative",
		keywords: []string{"art", "music", "design", "writing", "painting", "drawing", "creative", "photography"},
		produce: func(string) []Career {
			return []Career{
				{
					Title:     "Graphic Designer",
					Reason:    "Your creative interests fit visual communication work for brands and products.",
					Education: "Degree or diploma in graphic design, plus a portfolio.",
					NextStep:  "Start a portfolio with three small design projects for people you know.",
				},
				{
					Title:     "Content Creator",
					Reason:    "Creative skills plus consistency can grow into an audience and a career.",
					Education: "No fixed path; courses in media production and storytelling help.",
					NextStep:  "Pick one platform and publish something small every week for a month.",
				},
			}
		},
	},
	{
		name:     "social",
		keywords: []string{"psychology", "people", "helping", "counseling", "social", "listening"},
		produce: func(string) []Career {
			return []Career{
				{
					Title:     "Counseling Psychologist",
					Reason:    "Your interest in people and helping others fits supporting mental wellbeing.",
					Education: "Psychology degree followed by graduate training in counseling.",
					NextStep:  "Look into peer-support or mentoring programs at your school.",
				},
			}
		},
	},
	{
		name:     "business",
		keywords: []string{"business", "entrepreneur", "marketing", "economics", "leadership", "selling"},
		produce: func(string) []Career {
			return []Career{
				{
					Title:     "Marketing Manager",
					Reason:    "Business interests and communication skills fit shaping how products reach people.",
					Education: "Bachelor's degree in marketing or business administration.",
					NextStep:  "Run a small fundraiser or sale and track what works.",
				},
				{
					Title:     "Entrepreneur",
					Reason:    "Leadership and organizing instincts point toward building something of your own.",
					Education: "No fixed path; business studies help, but execution matters most.",
					NextStep:  "Write a one-page plan for a tiny business you could start this year.",
				},
			}
		},
	},
	{
		name:     "teaching",
		keywords: []string{"teaching", "education", "tutoring", "mentoring", "explaining"},
		produce: func(string) []Career {
			return []Career{
				{
					Title:     "Teacher",
					Reason:    "Enjoying explaining things and working with people fits classroom teaching.",
					Education: "Bachelor's degree plus a teaching qualification.",
					NextStep:  "Offer to tutor a younger student in a subject you are strong in.",
				},
			}
		},
	},
}

// genericCareer is emitted when no cluster matches.
var genericCareer = Career{
	Title:     "Career Explorer",
	Reason:    "I don't have enough about your interests yet to suggest specific careers.",
	Education: "Keep exploring subjects and activities to find what excites you.",
	NextStep:  "Tell me more about what you enjoy doing and which subjects come easily to you.",
}

// Fallback matches the profile against the rule table and returns the first
// matching cluster's careers, or the generic record when nothing matches.
func Fallback(p *model.StudentProfile) []Career {
	var parts []string
	parts = append(parts, p.Interests...)
	parts = append(parts, p.Subjects...)
	parts = append(parts, p.Hobbies...)
	text := strings.ToLower(strings.Join(parts, " "))

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.produce(text)
			}
		}
	}
	return []Career{genericCareer}
}

// Format renders careers as a numbered list with title, reason, education
// and next step on separate lines.
func Format(careers []Career) string {
	var b strings.Builder
	b.WriteString("Based on what you've shared, here are some career paths to consider:\n")
	for i, c := range careers {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, c.Title)
		fmt.Fprintf(&b, "   Why it fits: %s\n", c.Reason)
		fmt.Fprintf(&b, "   Education: %s\n", c.Education)
		fmt.Fprintf(&b, "   Next step: %s\n", c.NextStep)
	}
	return b.String()
}
