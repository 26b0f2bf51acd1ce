package drivetab

import (
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
)

const (
	mimeTypeCSV             = "text/csv"
	mimeTypeXLSX            = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeTypeGoogleSheet     = "application/vnd.google-apps.spreadsheet"
	mimeTypeFolder          = "application/vnd.google-apps.folder"
	mimeTypePrefixGoogleApp = "application/vnd.google-apps."
)

// FileInfo describes a file or folder on Google Drive.
type FileInfo struct {
	Name        string
	ID          string
	Size        int64
	Mime        string
	ModTime     time.Time
	ParentID    string
	WebViewLink string
}

func (i FileInfo) IsFolder() bool {
	return i.Mime == mimeTypeFolder
}

func (i FileInfo) IsAppFile() bool {
	return strings.HasPrefix(i.Mime, mimeTypePrefixGoogleApp)
}

func newFileInfo(f *drive.File) FileInfo {
	modTime, _ := time.Parse(time.RFC3339, f.ModifiedTime)
	var parentID string
	if len(f.Parents) > 0 {
		parentID = f.Parents[0]
	}
	return FileInfo{
		Name:        f.Name,
		ID:          f.Id,
		Size:        f.Size,
		Mime:        f.MimeType,
		ModTime:     modTime,
		ParentID:    parentID,
		WebViewLink: f.WebViewLink,
	}
}
