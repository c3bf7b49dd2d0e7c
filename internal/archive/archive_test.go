// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeZip builds a zip fixture from name → content pairs. Names ending
// in "/" become directory entries.
func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range files {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeFolder builds a folder fixture from relative name → content pairs.
func writeFolder(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestOpenZipUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.zip")
	if err := os.WriteFile(path, []byte("this is not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path, false); err == nil {
		t.Fatal("expected error opening a corrupt zip")
	}
}

func TestHandleContract(t *testing.T) {
	files := map[string]string{
		"modDesc.xml":       `<modDesc descVersion="79"><author>x</author></modDesc>`,
		"scripts/main.lua":  "print('hi')",
		"textures/icon.dds": "DDS binary-ish",
	}

	cases := []struct {
		name     string
		open     func(t *testing.T) Handle
		isFolder bool
	}{
		{
			name: "zip",
			open: func(t *testing.T) Handle {
				h, err := Open(writeZip(t, files), false)
				if err != nil {
					t.Fatal(err)
				}
				return h
			},
		},
		{
			name: "folder",
			open: func(t *testing.T) Handle {
				h, err := Open(writeFolder(t, files), true)
				if err != nil {
					t.Fatal(err)
				}
				return h
			},
			isFolder: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := tc.open(t)
			defer h.Close()

			if h.IsFolder() != tc.isFolder {
				t.Errorf("IsFolder() = %v, want %v", h.IsFolder(), tc.isFolder)
			}

			if !h.Exists("modDesc.xml") {
				t.Error("modDesc.xml should exist")
			}
			if h.Exists("careerSavegame.xml") {
				t.Error("careerSavegame.xml should not exist")
			}

			got := map[string]Entry{}
			for _, e := range h.List() {
				got[e.Name] = e
			}
			for name := range files {
				e, ok := got[name]
				if !ok {
					t.Errorf("List() missing %q", name)
					continue
				}
				if e.IsDir {
					t.Errorf("%q listed as directory", name)
				}
				if e.Size != int64(len(files[name])) {
					t.Errorf("%q size = %d, want %d", name, e.Size, len(files[name]))
				}
			}

			text, err := h.ReadText("scripts/main.lua")
			if err != nil {
				t.Fatalf("ReadText: %v", err)
			}
			if text != "print('hi')" {
				t.Errorf("ReadText = %q", text)
			}

			if _, err := h.ReadBin("no/such/file.bin"); !errors.Is(err, ErrNotFound) {
				t.Errorf("missing file error = %v, want ErrNotFound", err)
			}

			doc, err := h.ReadXML("modDesc.xml")
			if err != nil {
				t.Fatalf("ReadXML: %v", err)
			}
			if doc.Root().Tag != "modDesc" {
				t.Errorf("root tag = %q, want modDesc", doc.Root().Tag)
			}

			if _, err := h.ReadXML("scripts/main.lua"); !errors.Is(err, ErrParse) {
				t.Errorf("non-xml parse error = %v, want ErrParse", err)
			}
			if _, err := h.ReadXML("missing.xml"); !errors.Is(err, ErrNotFound) {
				t.Errorf("missing xml error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestEntryExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "textures/icon.DDS", want: "dds"},
		{name: "a/b/map.i3d", want: "i3d"},
		{name: "README", want: ""},
		{name: "weird.", want: ""},
	}

	for _, tt := range tests {
		if got := (Entry{Name: tt.name}).Extension(); got != tt.want {
			t.Errorf("Extension(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
