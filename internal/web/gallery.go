package web

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ExportInfo describes one exported image.
type ExportInfo struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// NewGalleryMux serves the export directory read-only:
//   - GET /api/v1/exports          JSON list, oldest first
//   - GET /api/v1/exports.zip      all exports as one archive
//   - GET /api/v1/exports/{name}   a single PNG
//   - GET /healthz
func NewGalleryMux(exportDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/exports", func(w http.ResponseWriter, r *http.Request) { handleList(w, r, exportDir) })
	mux.HandleFunc("/api/v1/exports.zip", func(w http.ResponseWriter, r *http.Request) { handleZip(w, r, exportDir) })
	mux.HandleFunc("/api/v1/exports/", func(w http.ResponseWriter, r *http.Request) { handleDownload(w, r, exportDir) })
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	return mux
}

func handleList(w http.ResponseWriter, r *http.Request, exportDir string) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	exports, err := ListExports(exportDir)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, exports)
}

func handleDownload(w http.ResponseWriter, r *http.Request, exportDir string) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/v1/exports/")
	if !validExportName(name) {
		writeAPIError(w, http.StatusBadRequest, "invalid_name", "invalid export name")
		return
	}

	path := filepath.Join(exportDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		writeAPIError(w, http.StatusNotFound, "not_found", "export not found")
		return
	}
	f, err := os.Open(path)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "open_failed", err.Error())
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": name}))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

func handleZip(w http.ResponseWriter, r *http.Request, exportDir string) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	exports, err := ListExports(exportDir)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": "exports.zip"}))
	zipWriter := zip.NewWriter(w)
	defer func() { _ = zipWriter.Close() }()

	for _, export := range exports {
		if err := addZipFile(zipWriter, filepath.Join(exportDir, export.Name), export); err != nil {
			// headers are already sent; a truncated archive is all we can signal
			return
		}
	}
}

func addZipFile(zipWriter *zip.Writer, path string, export ExportInfo) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	header := &zip.FileHeader{Name: export.Name, Method: zip.Store, Modified: export.ModTime}
	entry, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, f)
	return err
}

// ListExports returns the PNG files in exportDir, oldest first.
// A missing directory means nothing was exported yet.
func ListExports(exportDir string) ([]ExportInfo, error) {
	entries, err := os.ReadDir(exportDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []ExportInfo{}, nil
		}
		return nil, err
	}

	exports := make([]ExportInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		exports = append(exports, ExportInfo{Name: entry.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	sort.SliceStable(exports, func(i, j int) bool {
		if exports[i].ModTime.Equal(exports[j].ModTime) {
			return exports[i].Name < exports[j].Name
		}
		return exports[i].ModTime.Before(exports[j].ModTime)
	})
	return exports, nil
}

func validExportName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".png")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
