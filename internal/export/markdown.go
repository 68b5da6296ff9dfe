package export

import (
	"fmt"
	"io"
	"time"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/domain"
)

// MarkdownExporter exports sessions as a human-readable transcript
type MarkdownExporter struct{}

var roleLabels = map[domain.Role]string{
	domain.RoleUser: "You",
	domain.RoleAI:   "Assistant",
}

// Export writes the session as a role-labeled Markdown transcript
func (e *MarkdownExporter) Export(session *domain.ChatSession, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", session.Title)
	_, _ = fmt.Fprintf(w, "**Session:** %s  \n", session.ID)
	_, _ = fmt.Fprintf(w, "**Created:** %s  \n", formatStamp(session.Created))
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(session.Messages))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range session.Messages {
		label, ok := roleLabels[msg.Role]
		if !ok {
			label = string(msg.Role)
		}

		_, _ = fmt.Fprintf(w, "**%s** (%s)\n\n%s\n\n", label, formatStamp(msg.Timestamp), msg.Text)
		if i < len(session.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}

func formatStamp(ms int64) string {
	if ms == 0 {
		return "unknown"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04:05")
}
