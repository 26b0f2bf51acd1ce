package drivetab

import (
	"fmt"
)

// Read downloads the file at the given Drive URL or logical path and decodes
// it into a Table. CSV and XLSX files are downloaded as media; Google Sheets
// are exported to XLSX first. Any other MIME type fails with
// ErrUnsupportedFormat. Transport failures surface as ErrDriveError and are
// never retried.
func (t *DriveTab) Read(reference string, options ReadOptions) (*Table, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	ref, err := ParseReference(reference)
	if err != nil {
		return nil, err
	}
	resolved, err := t.resolve(ref)
	if err != nil {
		return nil, err
	}

	mimeType := resolved.MimeType
	if mimeType == "" {
		file, found, err := findByID(t.service, resolved.ID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("no file with ID '%s': %w", resolved.ID, ErrNotFound)
		}
		mimeType = file.MimeType
	}

	switch mimeType {
	case mimeTypeCSV:
		data, err := downloadMedia(t.service, resolved.ID)
		if err != nil {
			return nil, err
		}
		return decodeCSV(data, options)
	case mimeTypeXLSX:
		data, err := downloadMedia(t.service, resolved.ID)
		if err != nil {
			return nil, err
		}
		return decodeXLSX(data, options)
	case mimeTypeGoogleSheet:
		data, err := exportMedia(t.service, resolved.ID, mimeTypeXLSX)
		if err != nil {
			return nil, err
		}
		return decodeXLSX(data, options)
	default:
		return nil, fmt.Errorf("cannot read MIME type '%s' as a table: %w", mimeType, ErrUnsupportedFormat)
	}
}

// Stat resolves the reference and returns the Drive metadata of the file.
func (t *DriveTab) Stat(reference string) (FileInfo, error) {
	ref, err := ParseReference(reference)
	if err != nil {
		return FileInfo{}, err
	}
	resolved, err := t.resolve(ref)
	if err != nil {
		return FileInfo{}, err
	}
	file, found, err := findByID(t.service, resolved.ID)
	if err != nil {
		return FileInfo{}, err
	}
	if !found {
		return FileInfo{}, fmt.Errorf("no file with ID '%s': %w", resolved.ID, ErrNotFound)
	}
	return newFileInfo(file), nil
}
