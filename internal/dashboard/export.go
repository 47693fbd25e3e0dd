package dashboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/baharkarakas/contact-manager/internal/models"
)

var ErrNothingToExport = errors.New("no contacts to export")

const csvDateLayout = "1/2/2006, 3:04:05 PM"

var csvHeader = []string{"Name", "Email", "Phone", "Message", "Date"}

// WriteCSV writes contacts as CSV: a bare header line, then one row per
// contact with every field double-quoted and embedded quotes doubled. Rows
// are separated by "\n" with no trailing newline. Dates render in loc
// (time.Local when nil).
func WriteCSV(w io.Writer, contacts []models.Contact, loc *time.Location) error {
	if len(contacts) == 0 {
		return ErrNothingToExport
	}
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	for _, c := range contacts {
		b.WriteByte('\n')
		b.WriteString(strings.Join([]string{
			quote(c.Name),
			quote(c.Email),
			quote(c.Phone),
			quote(c.Message),
			quote(c.CreatedAt.In(loc).Format(csvDateLayout)),
		}, ","))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportFilename names the export after the UTC calendar date of now.
func ExportFilename(now time.Time) string {
	return "Contacts_" + now.UTC().Format("2006-01-02") + ".csv"
}

// SaveCSV writes the export into dir under ExportFilename and returns its path.
func SaveCSV(dir string, contacts []models.Contact, now time.Time) (string, error) {
	if len(contacts) == 0 {
		return "", ErrNothingToExport
	}
	path := filepath.Join(dir, ExportFilename(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export: %w", err)
	}
	if err := WriteCSV(f, contacts, nil); err != nil {
		f.Close()
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}
	return path, nil
}
