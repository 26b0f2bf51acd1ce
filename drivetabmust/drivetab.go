// Package drivetabmust wraps the drivetab package with panic-based error handling.
//
// It provides the same tabular read and write operations as the root-level
// drivetab package, but instead of returning errors, all exported methods
// panic on failure.
package drivetabmust

import (
	"github.com/Jumpaku/go-drivetab"
	"google.golang.org/api/drive/v3"
)

// DriveTab provides tabular read and write operations on Google Drive.
//
// All methods of DriveTab panic on error instead of returning an error value.
type DriveTab struct {
	driveTab *drivetab.DriveTab
}

// New creates a new DriveTab instance with the given drive.Service.
// The service should be properly authenticated before being passed to this function.
func New(service *drive.Service) *DriveTab {
	return &DriveTab{driveTab: drivetab.New(service)}
}

// Resolve maps a Drive URL or logical path to a ResolvedFile.
//
// It panics if resolution fails, including when a path segment has no match
// (the underlying error would be ErrNotFound) or more than one match
// (ErrAmbiguousPath).
func (t *DriveTab) Resolve(reference string) drivetab.ResolvedFile {
	return must1(t.driveTab.Resolve(reference))
}

// Read downloads the file at the given Drive URL or logical path and decodes
// it into a Table.
//
// It panics if the read fails, including for files whose MIME type is
// neither CSV nor a spreadsheet (the underlying error would be
// ErrUnsupportedFormat).
func (t *DriveTab) Read(reference string, options drivetab.ReadOptions) *drivetab.Table {
	return must1(t.driveTab.Read(reference, options))
}

// Write serializes the table and uploads it to the given logical path,
// returning the web view URL of the written file.
//
// It panics if the write fails, including when the destination exists and
// overwrite is false (the underlying error would be ErrAlreadyExists).
func (t *DriveTab) Write(table *drivetab.Table, reference string, overwrite bool, options drivetab.WriteOptions) string {
	return must1(t.driveTab.Write(table, reference, overwrite, options))
}

// Upload reads raw bytes from a local file and uploads them to the given
// logical path, returning the web view URL of the uploaded file.
//
// It panics if the upload fails for any reason.
func (t *DriveTab) Upload(localPath, reference string, overwrite bool) string {
	return must1(t.driveTab.Upload(localPath, reference, overwrite))
}

// Stat resolves the reference and returns the Drive metadata of the file.
//
// It panics if resolution or the metadata lookup fails.
func (t *DriveTab) Stat(reference string) drivetab.FileInfo {
	return must1(t.driveTab.Stat(reference))
}
