package drivetab_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// fakeDrive serves the subset of the Drive v3 REST API this library touches:
// drives.list, files.list, files.get (metadata and alt=media), files.export,
// and multipart files.create/files.update. It backs the resolution and
// round-trip tests without real network access.
type fakeDrive struct {
	t *testing.T

	mu        sync.Mutex
	driveID   string
	driveName string
	files     map[string]*fakeFile
	nextID    int
	requests  int

	server *httptest.Server
}

type fakeFile struct {
	id       string
	name     string
	mimeType string
	parent   string
	data     []byte
	modTime  string
}

func newFakeDrive(t *testing.T, driveName string) *fakeDrive {
	f := &fakeDrive{
		t:         t,
		driveID:   "drv-root",
		driveName: driveName,
		files:     map[string]*fakeFile{},
	}
	f.server = httptest.NewServer(f.handler())
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeDrive) newService() *drive.Service {
	service, err := drive.NewService(context.Background(),
		option.WithEndpoint(f.server.URL),
		option.WithHTTPClient(f.server.Client()),
	)
	if err != nil {
		f.t.Fatalf("failed to create drive service: %v", err)
	}
	return service
}

func (f *fakeDrive) addFolder(parentID, name string) string {
	return f.addFile(parentID, name, "application/vnd.google-apps.folder", nil)
}

func (f *fakeDrive) addFile(parentID, name, mimeType string, data []byte) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("id-%03d", f.nextID)
	f.files[id] = &fakeFile{
		id:       id,
		name:     name,
		mimeType: mimeType,
		parent:   parentID,
		data:     data,
		modTime:  "2024-05-01T12:00:00Z",
	}
	return id
}

func (f *fakeDrive) fileData(id string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.files[id].data
}

func (f *fakeDrive) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *fakeDrive) handler() http.Handler {
	mux := http.NewServeMux()
	handleFiles := f.counted(f.handleFiles)
	handleFile := f.counted(f.handleFile)
	mux.HandleFunc("/drives", f.counted(f.handleDrivesList))
	mux.HandleFunc("/files", handleFiles)
	mux.HandleFunc("/files/", handleFile)
	mux.HandleFunc("/upload/drive/v3/files", handleFiles)
	mux.HandleFunc("/upload/drive/v3/files/", handleFile)
	return mux
}

func (f *fakeDrive) counted(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		f.mu.Unlock()
		h(w, r)
	}
}

func (f *fakeDrive) handleDrivesList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"drives": []map[string]any{{"id": f.driveID, "name": f.driveName}},
	})
}

func (f *fakeDrive) handleFiles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		f.handleFilesList(w, r)
	case http.MethodPost:
		f.handleFileCreate(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

var (
	queryNamePattern   = regexp.MustCompile(`name = '((?:[^'\\]|\\.)*)'`)
	queryParentPattern = regexp.MustCompile(`'([^']*)' in parents`)
	queryMimePattern   = regexp.MustCompile(`mimeType = '([^']*)'`)
)

func unescapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\'`, "'")
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

func (f *fakeDrive) handleFilesList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	var name, parent, mimeType string
	if m := queryNamePattern.FindStringSubmatch(q); m != nil {
		name = unescapeQuery(m[1])
	}
	if m := queryParentPattern.FindStringSubmatch(q); m != nil {
		parent = m[1]
	}
	if m := queryMimePattern.FindStringSubmatch(q); m != nil {
		mimeType = m[1]
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	matches := []map[string]any{}
	for _, file := range f.files {
		if name != "" && file.name != name {
			continue
		}
		if parent != "" && file.parent != parent {
			continue
		}
		if mimeType != "" && file.mimeType != mimeType {
			continue
		}
		matches = append(matches, fileJSON(file))
	}
	writeJSON(w, map[string]any{"files": matches})
}

func (f *fakeDrive) handleFileCreate(w http.ResponseWriter, r *http.Request) {
	meta, mediaType, data, err := parseMultipartUpload(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name, _ := meta["name"].(string)
	parent := ""
	if parents, ok := meta["parents"].([]any); ok && len(parents) > 0 {
		parent, _ = parents[0].(string)
	}

	f.mu.Lock()
	f.nextID++
	id := fmt.Sprintf("id-%03d", f.nextID)
	f.files[id] = &fakeFile{
		id:       id,
		name:     name,
		mimeType: mediaType,
		parent:   parent,
		data:     data,
		modTime:  "2024-05-01T12:00:00Z",
	}
	file := f.files[id]
	f.mu.Unlock()

	writeJSON(w, fileJSON(file))
}

func (f *fakeDrive) handleFile(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/upload/drive/v3")
	path = strings.TrimPrefix(path, "/files/")
	id, isExport := strings.CutSuffix(path, "/export")

	f.mu.Lock()
	file, ok := f.files[id]
	f.mu.Unlock()
	if !ok {
		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
		return
	}

	switch {
	case r.Method == http.MethodGet && isExport:
		// The export fixture stores pre-exported bytes as the file content.
		w.Header().Set("Content-Type", r.URL.Query().Get("mimeType"))
		_, _ = w.Write(file.data)
	case r.Method == http.MethodGet && r.URL.Query().Get("alt") == "media":
		w.Header().Set("Content-Type", file.mimeType)
		_, _ = w.Write(file.data)
	case r.Method == http.MethodGet:
		writeJSON(w, fileJSON(file))
	case r.Method == http.MethodPatch:
		_, mediaType, data, err := parseMultipartUpload(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		file.data = data
		file.mimeType = mediaType
		f.mu.Unlock()
		writeJSON(w, fileJSON(file))
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// parseMultipartUpload splits an uploadType=multipart body into its JSON
// metadata part and media part.
func parseMultipartUpload(r *http.Request) (meta map[string]any, mediaType string, data []byte, err error) {
	contentType := r.Header.Get("Content-Type")
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, "", nil, fmt.Errorf("bad content type %q: %w", contentType, err)
	}
	mr := multipart.NewReader(r.Body, params["boundary"])

	metaPart, err := mr.NextPart()
	if err != nil {
		return nil, "", nil, fmt.Errorf("missing metadata part: %w", err)
	}
	if err := json.NewDecoder(metaPart).Decode(&meta); err != nil {
		return nil, "", nil, fmt.Errorf("bad metadata part: %w", err)
	}

	mediaPart, err := mr.NextPart()
	if err != nil {
		return nil, "", nil, fmt.Errorf("missing media part: %w", err)
	}
	mediaType = mediaPart.Header.Get("Content-Type")
	data, err = io.ReadAll(mediaPart)
	if err != nil {
		return nil, "", nil, fmt.Errorf("bad media part: %w", err)
	}
	return meta, mediaType, data, nil
}

func fileJSON(f *fakeFile) map[string]any {
	j := map[string]any{
		"id":           f.id,
		"name":         f.name,
		"mimeType":     f.mimeType,
		"size":         strconv.Itoa(len(f.data)),
		"modifiedTime": f.modTime,
		"webViewLink":  "https://drive.google.com/file/d/" + f.id + "/view",
	}
	if f.parent != "" {
		j["parents"] = []string{f.parent}
	}
	return j
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
