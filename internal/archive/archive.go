// SPDX-License-Identifier: MPL-2.0

// Package archive gives the inspection pipeline a uniform view of a
// packaged mod, whether it arrives as a zip archive or as an unpacked
// folder. Entry names are always normalized to forward slashes and are
// relative to the artifact root.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

var (
	// ErrNotFound is returned when a named entry does not exist.
	ErrNotFound = errors.New("entry not found")
	// ErrParse is returned by ReadXML when an entry exists but is not
	// well-formed XML.
	ErrParse = errors.New("xml parse error")
)

// Entry describes one file inside an artifact.
type Entry struct {
	// Name is the slash-separated path relative to the artifact root.
	Name string
	// IsDir reports whether the entry is a directory.
	IsDir bool
	// Size is the uncompressed size in bytes (0 for directories).
	Size int64
}

// Extension returns the lower-cased extension tag of the entry name,
// without the leading dot ("" when there is none).
func (e Entry) Extension() string {
	ext := filepath.Ext(e.Name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// Handle is the file-access contract consumed by the pipeline. A Handle
// is scoped to a single inspection run and must be closed on every exit
// path. Implementations are not safe for concurrent use.
type Handle interface {
	// IsFolder reports whether the artifact is an unpacked folder.
	IsFolder() bool
	// Exists reports whether a named entry is present.
	Exists(name string) bool
	// List returns every entry in the artifact.
	List() []Entry
	// ReadText reads a contained file as UTF-8 text.
	ReadText(name string) (string, error)
	// ReadBin reads a contained file as raw bytes.
	ReadBin(name string) ([]byte, error)
	// ReadXML reads and parses a contained XML file. A missing entry is
	// reported as ErrNotFound, a malformed one as ErrParse.
	ReadXML(name string) (*etree.Document, error)
	// Close releases the underlying resources.
	Close() error
}

// Open opens a mod artifact at path, choosing the folder or zip
// implementation based on isFolder.
func Open(path string, isFolder bool) (Handle, error) {
	if isFolder {
		return openFolder(path)
	}
	return openZip(path)
}

// readXML implements the shared ReadXML semantics on top of ReadBin.
func readXML(h Handle, name string) (*etree.Document, error) {
	raw, err := h.ReadBin(name)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, name, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: %s: no root element", ErrParse, name)
	}
	return doc, nil
}

// zipHandle reads entries out of a zip archive.
type zipHandle struct {
	rc *zip.ReadCloser
}

func openZip(path string) (Handle, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip %s: %w", path, err)
	}
	return &zipHandle{rc: rc}, nil
}

func (z *zipHandle) IsFolder() bool { return false }

func (z *zipHandle) Exists(name string) bool {
	_, err := z.rc.Open(name)
	return err == nil
}

func (z *zipHandle) List() []Entry {
	entries := make([]Entry, 0, len(z.rc.File))
	for _, f := range z.rc.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		isDir := f.FileInfo().IsDir()
		size := int64(f.UncompressedSize64)
		if isDir {
			size = 0
			name = strings.TrimSuffix(name, "/")
		}
		entries = append(entries, Entry{Name: name, IsDir: isDir, Size: size})
	}
	return entries
}

func (z *zipHandle) ReadText(name string) (string, error) {
	raw, err := z.ReadBin(name)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (z *zipHandle) ReadBin(name string) ([]byte, error) {
	f, err := z.rc.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return raw, nil
}

func (z *zipHandle) ReadXML(name string) (*etree.Document, error) {
	return readXML(z, name)
}

func (z *zipHandle) Close() error { return z.rc.Close() }

// folderHandle reads entries out of an unpacked mod folder.
type folderHandle struct {
	root string
}

func openFolder(path string) (Handle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open folder %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open folder %s: not a directory", path)
	}
	return &folderHandle{root: path}, nil
}

func (d *folderHandle) IsFolder() bool { return true }

func (d *folderHandle) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(d.root, filepath.FromSlash(name)))
	return err == nil
}

func (d *folderHandle) List() []Entry {
	var entries []Entry

	_ = filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || path == d.root {
			return nil //nolint:nilerr // unreadable subtrees are simply skipped
		}
		rel, relErr := filepath.Rel(d.root, path)
		if relErr != nil {
			return nil
		}

		var size int64
		if !entry.IsDir() {
			if info, infoErr := entry.Info(); infoErr == nil {
				size = info.Size()
			}
		}
		entries = append(entries, Entry{
			Name:  filepath.ToSlash(rel),
			IsDir: entry.IsDir(),
			Size:  size,
		})
		return nil
	})

	// Folder and zip listings of the same content must classify in the
	// same order.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

func (d *folderHandle) ReadText(name string) (string, error) {
	raw, err := d.ReadBin(name)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (d *folderHandle) ReadBin(name string) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return raw, nil
}

func (d *folderHandle) ReadXML(name string) (*etree.Document, error) {
	return readXML(d, name)
}

func (d *folderHandle) Close() error { return nil }
