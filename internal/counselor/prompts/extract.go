package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/extract_prompt.txt
var extractPrompt string

// RenderExtraction renders the profile-extraction prompt for one student
// message. Only the message token is substituted so the JSON braces in the
// template survive untouched; the Eino prompt component is used with a
// messages placeholder to keep prompt callbacks firing.
func RenderExtraction(ctx context.Context, message string) (string, error) {
	content := strings.NewReplacer(
		"{message}", message,
	).Replace(extractPrompt)

	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("user_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"user_messages": []*schema.Message{schema.UserMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("extraction prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("extraction prompt render: empty result")
	}
	return msgs[0].Content, nil
}
