// Package drivetab reads and writes tabular data from and to Google Drive.
//
// Files are addressed by Drive URL or by logical path, a slash-separated
// sequence of names rooted at a shared drive
// (e.g., "drive_name/folder1/folder2/file_name.csv").
package drivetab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const (
	driveFileFields  = "parents,id,name,mimeType,size,modifiedTime,webViewLink"
	driveFilesFields = "nextPageToken,files(parents,id,name,mimeType,size,modifiedTime,webViewLink)"
	driveDriveFields = "nextPageToken,drives(id,name)"
)

// DriveTab provides tabular read and write operations on Google Drive.
// It wraps a drive.Service; each call is independent and stateless, and
// performs its own sequence of blocking network round trips.
type DriveTab struct {
	service *drive.Service
}

// New creates a new DriveTab instance with the given drive.Service.
func New(service *drive.Service) *DriveTab {
	return &DriveTab{service: service}
}

func queryFiles(s *drive.Service, driveID, query string) (files []*drive.File, err error) {
	err = s.Files.List().
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Corpora("drive").
		DriveId(driveID).
		Q(query).
		Fields(driveFilesFields).
		Pages(context.Background(), func(list *drive.FileList) error {
			files = append(files, list.Files...)
			return nil
		})
	if err != nil {
		return nil, newDriveError("failed to list files", err)
	}
	return files, nil
}

func findChildrenByName(s *drive.Service, driveID, parentID, name, mimeType string) (files []*drive.File, err error) {
	q := fmt.Sprintf("name = '%s' and trashed = false", escapeQuery(name))
	if parentID != "" {
		q += fmt.Sprintf(" and '%s' in parents", parentID)
	}
	if mimeType != "" {
		q += fmt.Sprintf(" and mimeType = '%s'", mimeType)
	}
	return queryFiles(s, driveID, q)
}

func findDriveIDByName(s *drive.Service, name string) (driveID string, err error) {
	var drives []*drive.Drive
	err = s.Drives.List().
		Fields(driveDriveFields).
		Pages(context.Background(), func(list *drive.DriveList) error {
			drives = append(drives, list.Drives...)
			return nil
		})
	if err != nil {
		return "", newDriveError("failed to list drives", err)
	}
	for _, d := range drives {
		if d.Name == name {
			return d.Id, nil
		}
	}
	return "", fmt.Errorf("no shared drive named '%s' accessible to the account: %w", name, ErrNotFound)
}

func findByID(s *drive.Service, fileID string) (file *drive.File, found bool, err error) {
	file, err = s.Files.Get(fileID).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Do()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			if gErr.Code == 404 {
				return nil, false, nil
			}
		}
		return nil, false, newDriveError("failed to get file", err)
	}
	return file, true, nil
}

func downloadMedia(s *drive.Service, fileID string) (data []byte, err error) {
	resp, err := s.Files.Get(fileID).
		SupportsAllDrives(true).
		Download()
	if err != nil {
		return nil, newDriveError("failed to download file", err)
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			closeErr = newIOError("failed to close file body", closeErr)
		}
		err = errors.Join(err, closeErr)
	}()

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, newIOError("failed to read file body", err)
	}
	return data, nil
}

func exportMedia(s *drive.Service, fileID, mimeType string) (data []byte, err error) {
	resp, err := s.Files.Export(fileID, mimeType).Download()
	if err != nil {
		return nil, newDriveError("failed to export file", err)
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			closeErr = newIOError("failed to close export body", closeErr)
		}
		err = errors.Join(err, closeErr)
	}()

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, newIOError("failed to read export body", err)
	}
	return data, nil
}

func createFileIn(s *drive.Service, driveID, parentID, name, mimeType string, media io.Reader) (file *drive.File, err error) {
	file, err = s.Files.Create(&drive.File{
		Name:    name,
		DriveId: driveID,
		Parents: []string{parentID},
	}).
		SupportsAllDrives(true).
		Media(media, googleapi.ContentType(mimeType)).
		Fields("id,webViewLink").
		Do()
	if err != nil {
		return nil, newDriveError("failed to create file", err)
	}
	return file, nil
}

func updateFileMedia(s *drive.Service, fileID, mimeType string, media io.Reader) (file *drive.File, err error) {
	file, err = s.Files.Update(fileID, &drive.File{}).
		SupportsAllDrives(true).
		Media(media, googleapi.ContentType(mimeType)).
		Fields("id,webViewLink").
		Do()
	if err != nil {
		return nil, newDriveError("failed to update file", err)
	}
	return file, nil
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return s
}
