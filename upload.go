package drivetab

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// Upload reads raw bytes from a local file and uploads them to the given
// logical path, returning the web view URL of the uploaded file. No tabular
// codec is involved; the content type is inferred from the destination
// file name. Existence and overwrite semantics are the same as Write.
func (t *DriveTab) Upload(localPath, reference string, overwrite bool) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", newIOError(fmt.Sprintf("failed to read local file '%s'", localPath), err)
	}
	ref, err := ParseReference(reference)
	if err != nil {
		return "", err
	}
	if ref.IsURL() {
		return "", fmt.Errorf("destination '%s' must be a logical path, not a URL: %w", reference, ErrInvalidReference)
	}
	return t.putMedia(ref, contentTypeForName(ref.name), data, overwrite)
}

func contentTypeForName(name string) string {
	switch ext := filepath.Ext(name); ext {
	case ".csv":
		return mimeTypeCSV
	case ".xlsx":
		return mimeTypeXLSX
	default:
		if mimeType := mime.TypeByExtension(ext); mimeType != "" {
			return mimeType
		}
		return "application/octet-stream"
	}
}
