package drivetab

import (
	"bytes"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
)

// Write serializes the table and uploads it to the given logical path,
// returning the web view URL of the written file. The format is implied by
// the path's extension: ".csv" or ".xlsx"; anything else fails with
// ErrUnsupportedFormat.
//
// Parent folders are resolved, never created; a missing intermediate folder
// fails with ErrNotFound. If the terminal file already exists, Write fails
// with ErrAlreadyExists unless overwrite is true, in which case the file is
// updated in place.
func (t *DriveTab) Write(table *Table, reference string, overwrite bool, options WriteOptions) (string, error) {
	if table == nil {
		return "", fmt.Errorf("nil table: %w", ErrInvalidTable)
	}
	if err := options.Validate(); err != nil {
		return "", err
	}
	ref, err := ParseReference(reference)
	if err != nil {
		return "", err
	}
	if ref.IsURL() {
		return "", fmt.Errorf("destination '%s' must be a logical path, not a URL: %w", reference, ErrInvalidReference)
	}

	var data []byte
	var mimeType string
	switch {
	case strings.HasSuffix(ref.name, ".csv"):
		mimeType = mimeTypeCSV
		data, err = encodeCSV(table, options)
	case strings.HasSuffix(ref.name, ".xlsx"):
		mimeType = mimeTypeXLSX
		data, err = encodeXLSX(table, options)
	default:
		return "", fmt.Errorf("cannot infer table format from file name '%s': %w", ref.name, ErrUnsupportedFormat)
	}
	if err != nil {
		return "", err
	}

	return t.putMedia(ref, mimeType, data, overwrite)
}

// putMedia uploads data to the destination path, updating in place when the
// terminal file exists and overwrite allows it. Returns the webViewLink of
// the written file.
func (t *DriveTab) putMedia(ref Reference, mimeType string, data []byte, overwrite bool) (string, error) {
	driveID, parentID, err := t.resolveParent(ref)
	if err != nil {
		return "", err
	}

	existing, err := t.findDestination(driveID, parentID, ref.name)
	if err != nil {
		return "", err
	}

	var file *drive.File
	if existing != nil {
		if !overwrite {
			return "", fmt.Errorf("file '%s' already exists: %w", ref, ErrAlreadyExists)
		}
		file, err = updateFileMedia(t.service, existing.Id, mimeType, bytes.NewReader(data))
	} else {
		file, err = createFileIn(t.service, driveID, parentID, ref.name, mimeType, bytes.NewReader(data))
	}
	if err != nil {
		return "", fmt.Errorf("failed to write '%s': %w", ref, err)
	}
	if file.WebViewLink == "" {
		return "", fmt.Errorf("no web view link returned for '%s': %w", ref, ErrDriveError)
	}
	return file.WebViewLink, nil
}

// findDestination looks up the terminal segment of a destination path.
// Returns nil when nothing with that name exists yet.
func (t *DriveTab) findDestination(driveID, parentID, name string) (*drive.File, error) {
	files, err := findChildrenByName(t.service, driveID, parentID, name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to find '%s': %w", name, err)
	}
	switch {
	case len(files) > 1:
		return nil, fmt.Errorf("%d items named '%s' in '%s': %w", len(files), name, parentID, ErrAmbiguousPath)
	case len(files) == 1:
		if files[0].MimeType == mimeTypeFolder {
			return nil, fmt.Errorf("'%s' is a folder: %w", name, ErrNotAFile)
		}
		return files[0], nil
	default:
		return nil, nil
	}
}
