package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	pub_models "github.com/baalimago/toolloop/pkg/text/models"
)

// AttemptPrettyPrint writes the message to out, prefixed with the colored role.
// Tool requests are printed as the call they make. When raw is set only the
// content is printed.
func AttemptPrettyPrint(out io.Writer, chatMessage pub_models.Message, raw bool) error {
	if raw {
		_, err := fmt.Fprintln(out, chatMessage.Content)
		return err
	}
	color := ancli.BLUE
	switch chatMessage.Role {
	case pub_models.RoleTool:
		color = ancli.MAGENTA
	case pub_models.RoleUser:
		color = ancli.CYAN
	}
	content := chatMessage.Content
	if chatMessage.HasToolCall() {
		calls := make([]string, 0, len(chatMessage.ToolCalls))
		for _, c := range chatMessage.ToolCalls {
			calls = append(calls, c.PrettyPrint())
		}
		content = strings.Join(calls, "\n")
	}
	if chatMessage.Role == pub_models.RoleTool {
		content = ShortenedOutput(content, TermWidth(), MaxShortenedNewlines)
	}
	_, err := fmt.Fprintf(out, "%v: %v\n", ancli.ColoredMessage(color, chatMessage.Role), content)
	if err != nil {
		return fmt.Errorf("failed to print message: %w", err)
	}
	return nil
}

const MaxShortenedNewlines = 5

// ShortenedOutput keeps at most maxLines lines of out, each cut to width runes.
// The amount of omitted lines is appended.
func ShortenedOutput(out string, width, maxLines int) string {
	lines := strings.Split(out, "\n")
	kept := lines
	if len(lines) > maxLines {
		kept = lines[:maxLines]
	}
	for i, l := range kept {
		r := []rune(l)
		if width > 3 && len(r) > width {
			kept[i] = string(r[:width-3]) + "..."
		}
	}
	ret := strings.Join(kept, "\n")
	if omitted := len(lines) - len(kept); omitted > 0 {
		ret += fmt.Sprintf("\n...and %v more lines", omitted)
	}
	return ret
}
