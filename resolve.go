package drivetab

import (
	"fmt"
)

// ResolvedFile is a concrete file ID plus its MIME type and parent folder
// ID, obtained by walking a logical path or parsing a URL. It is recomputed
// per call and never persisted. References parsed from a URL resolve to the
// file ID alone; MimeType and ParentID are left empty.
type ResolvedFile struct {
	ID       string
	MimeType string
	ParentID string
}

// Resolve maps a Drive URL or logical path to a ResolvedFile.
//
// URL references are resolved by pattern match alone, without any API call.
// Logical paths are walked segment by segment: the first segment names a
// shared drive, each following segment must match exactly one item at its
// level (zero matches fail with ErrNotFound, several with ErrAmbiguousPath),
// and the terminal segment must be a file, not a folder (ErrNotAFile).
func (t *DriveTab) Resolve(reference string) (ResolvedFile, error) {
	ref, err := ParseReference(reference)
	if err != nil {
		return ResolvedFile{}, err
	}
	return t.resolve(ref)
}

func (t *DriveTab) resolve(ref Reference) (ResolvedFile, error) {
	if ref.IsURL() {
		return ResolvedFile{ID: ref.fileID}, nil
	}

	driveID, parentID, err := t.resolveParent(ref)
	if err != nil {
		return ResolvedFile{}, err
	}

	files, err := findChildrenByName(t.service, driveID, parentID, ref.name, "")
	if err != nil {
		return ResolvedFile{}, fmt.Errorf("failed to find '%s': %w", ref.name, err)
	}
	if len(files) == 0 {
		return ResolvedFile{}, fmt.Errorf("no file '%s' in '%s': %w", ref.name, parentID, ErrNotFound)
	}
	if len(files) > 1 {
		return ResolvedFile{}, fmt.Errorf("%d items named '%s' in '%s': %w", len(files), ref.name, parentID, ErrAmbiguousPath)
	}
	if files[0].MimeType == mimeTypeFolder {
		return ResolvedFile{}, fmt.Errorf("'%s' is a folder: %w", ref.name, ErrNotAFile)
	}
	return ResolvedFile{
		ID:       files[0].Id,
		MimeType: files[0].MimeType,
		ParentID: parentID,
	}, nil
}

// resolveParent walks the folder segments of a logical path. It returns the
// shared drive ID and the ID of the folder that should contain the terminal
// segment. The root folder of a shared drive has the same ID as the drive.
func (t *DriveTab) resolveParent(ref Reference) (driveID, parentID string, err error) {
	driveID, err = findDriveIDByName(t.service, ref.drive)
	if err != nil {
		return "", "", err
	}
	parentID = driveID
	for _, folder := range ref.folders {
		files, err := findChildrenByName(t.service, driveID, parentID, folder, mimeTypeFolder)
		if err != nil {
			return "", "", fmt.Errorf("failed to find folder '%s': %w", folder, err)
		}
		if len(files) == 0 {
			return "", "", fmt.Errorf("no folder '%s' in '%s': %w", folder, parentID, ErrNotFound)
		}
		if len(files) > 1 {
			return "", "", fmt.Errorf("%d folders named '%s' in '%s': %w", len(files), folder, parentID, ErrAmbiguousPath)
		}
		parentID = files[0].Id
	}
	return driveID, parentID, nil
}
