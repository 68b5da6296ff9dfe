package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/analytics"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/domain"
)

// JSONExporter exports the full session plus computed analytics
type JSONExporter struct{}

type jsonDocument struct {
	Session    domain.ChatSession     `json:"session"`
	Analytics  analytics.SessionStats `json:"analytics"`
	ExportedAt string                 `json:"exportedAt"`
}

// Export writes the session as indented JSON
func (e *JSONExporter) Export(session *domain.ChatSession, w io.Writer) error {
	doc := jsonDocument{
		Session:    *session,
		Analytics:  analytics.AnalyzeSession(*session),
		ExportedAt: time.Now().Format(time.RFC3339),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
