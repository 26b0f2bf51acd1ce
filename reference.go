package drivetab

import (
	"fmt"
	"regexp"
	"strings"
)

// driveURLPattern matches the known Google Drive URL shapes,
// e.g. https://docs.google.com/file/d/<id> and
// https://docs.google.com/spreadsheets/d/<id>/edit.
var driveURLPattern = regexp.MustCompile(`(?i)/(spreadsheets|file)/d/([^&#/]*)`)

// Reference identifies a file on Google Drive, either by a file ID extracted
// from a Drive URL or by a logical path. A logical path is a slash-separated
// sequence of names whose first segment is the name of a shared drive and
// whose last segment is the file name (e.g., "drive_name/folder1/file.csv").
// A Reference is immutable once parsed.
type Reference struct {
	fileID  string
	drive   string
	folders []string
	name    string
}

// ParseReference parses a Drive URL or a logical path into a Reference.
func ParseReference(reference string) (Reference, error) {
	if strings.HasPrefix(reference, "http://") || strings.HasPrefix(reference, "https://") {
		m := driveURLPattern.FindStringSubmatch(reference)
		if m == nil || m[2] == "" {
			return Reference{}, fmt.Errorf("unable to parse drive URL '%s': %w", reference, ErrInvalidReference)
		}
		return Reference{fileID: m[2]}, nil
	}

	parts := strings.Split(reference, "/")
	if len(parts) < 2 {
		return Reference{}, fmt.Errorf("path '%s' must name a shared drive and a file: %w", reference, ErrInvalidReference)
	}
	for _, p := range parts {
		if p == "" {
			return Reference{}, fmt.Errorf("path '%s' contains an empty segment: %w", reference, ErrInvalidReference)
		}
	}
	return Reference{
		drive:   parts[0],
		folders: parts[1 : len(parts)-1],
		name:    parts[len(parts)-1],
	}, nil
}

// IsURL reports whether the reference was parsed from a Drive URL.
func (r Reference) IsURL() bool {
	return r.fileID != ""
}

// FileID returns the file ID extracted from a Drive URL, or "" for logical paths.
func (r Reference) FileID() string {
	return r.fileID
}

// Drive returns the shared drive name of a logical path.
func (r Reference) Drive() string {
	return r.drive
}

// Folders returns the intermediate folder names of a logical path.
func (r Reference) Folders() []string {
	return append([]string{}, r.folders...)
}

// Name returns the terminal file name of a logical path.
func (r Reference) Name() string {
	return r.name
}

func (r Reference) String() string {
	if r.IsURL() {
		return "https://docs.google.com/file/d/" + r.fileID
	}
	return strings.Join(append(append([]string{r.drive}, r.folders...), r.name), "/")
}
