// Package export serializes a stored session to a downloadable format.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/domain"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/store"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(session *domain.ChatSession, w io.Writer) error
	Extension() string
}

// NewExporter creates an exporter for the named format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "json":
		return &JSONExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, md)", format)
	}
}

// Session loads a session and writes it through the exporter. Returns
// domain.ErrSessionNotFound for an unknown id.
func Session(ctx context.Context, s *store.SessionStore, sessionID, format string, w io.Writer) error {
	exporter, err := NewExporter(format)
	if err != nil {
		return err
	}

	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	return exporter.Export(session, w)
}

// WriteFile exports a session into dir, naming the file from the
// sanitized session title. Returns the written path.
func WriteFile(ctx context.Context, s *store.SessionStore, sessionID, format, dir string) (string, error) {
	exporter, err := NewExporter(format)
	if err != nil {
		return "", err
	}

	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, Filename(session.Title, exporter.Extension()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := exporter.Export(session, f); err != nil {
		return "", err
	}
	return path, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Filename derives a safe download name from a session title
func Filename(title, ext string) string {
	name := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(title), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "chat_export"
	}
	return name + "." + ext
}
