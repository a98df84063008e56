package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/pathfinder-core/server/internal/counselor/model"
)

//go:embed template/clarify_prompt.txt
var clarifyPrompt string

//go:embed template/recommend_prompt.txt
var recommendPrompt string

//go:embed template/discuss_prompt.txt
var discussPrompt string

// joinOr joins list items for prompt interpolation, substituting a readable
// placeholder when the category is still empty.
func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func render(ctx context.Context, tplText string, vars map[string]any) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(tplText),
	)
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("prompt render: empty result")
	}
	return msgs[0].Content, nil
}

// RenderClarifying renders the clarifying-questions prompt from the current
// profile state.
func RenderClarifying(ctx context.Context, p *model.StudentProfile, asked []string) (string, error) {
	return render(ctx, clarifyPrompt, map[string]any{
		"Interests":      joinOr(p.Interests, "Not specified"),
		"Hobbies":        joinOr(p.Hobbies, "Not specified"),
		"Subjects":       joinOr(p.Subjects, "Not specified"),
		"Strengths":      joinOr(p.Strengths, "Not specified"),
		"Dislikes":       joinOr(p.Dislikes, "Not specified"),
		"Completeness":   int(p.Completeness() * 100),
		"AskedQuestions": joinOr(asked, "None yet"),
	})
}

// RenderRecommendations renders the career-recommendation prompt embedding
// the full current profile.
func RenderRecommendations(ctx context.Context, p *model.StudentProfile) (string, error) {
	return render(ctx, recommendPrompt, map[string]any{
		"Interests":   joinOr(p.Interests, "General curiosity"),
		"Hobbies":     joinOr(p.Hobbies, "Various activities"),
		"Subjects":    joinOr(p.Subjects, "Mixed subjects"),
		"Strengths":   joinOr(p.Strengths, "Learning and growing"),
		"Challenges":  joinOr(p.Challenges, "Normal learning challenges"),
		"Dislikes":    joinOr(p.Dislikes, "None specified"),
		"Personality": joinOr(p.Personality, "Developing personality"),
		"Goals":       joinOr(p.Goals, "Exploring options"),
	})
}

// RenderDiscussion renders the free-discussion prompt with recent history
// context and the triggering message.
func RenderDiscussion(ctx context.Context, p *model.StudentProfile, turns []model.Turn, message string) (string, error) {
	var hist strings.Builder
	for _, t := range turns {
		hist.WriteString(string(t.Role))
		hist.WriteString(": ")
		hist.WriteString(t.Content)
		hist.WriteString("\n")
	}
	return render(ctx, discussPrompt, map[string]any{
		"Interests": joinOr(p.Interests, "Not specified"),
		"Subjects":  joinOr(p.Subjects, "Not specified"),
		"Strengths": joinOr(p.Strengths, "Not specified"),
		"Goals":     joinOr(p.Goals, "Not specified"),
		"History":   hist.String(),
		"Message":   message,
	})
}
