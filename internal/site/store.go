package site

import (
	stdErrors "errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"git.home.luguber.info/inful/fragsync/internal/foundation/errors"
)

// Document is a decoded HTML page.
type Document struct {
	Path     string
	Text     string
	Encoding Encoding
	mode     os.FileMode
}

// Store reads and writes documents under a site root.
type Store struct {
	fs billy.Filesystem
}

// NewStore wraps a filesystem whose root is the site root.
func NewStore(fsys billy.Filesystem) *Store {
	return &Store{fs: fsys}
}

// OpenDir returns a Store over the directory root on the local disk.
func OpenDir(root string) *Store {
	return NewStore(osfs.New(root))
}

// Filesystem exposes the underlying filesystem.
func (s *Store) Filesystem() billy.Filesystem {
	return s.fs
}

// Exists reports whether rel names an existing regular file.
func (s *Store) Exists(rel string) (bool, error) {
	fi, err := s.fs.Stat(rel)
	if err != nil {
		if stdErrors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, errors.WrapError(err, errors.CategoryFileSystem, "failed to stat file").
			WithContext("path", rel).
			Build()
	}
	return !fi.IsDir(), nil
}

// Read loads and decodes rel.
func (s *Store) Read(rel string) (*Document, error) {
	fi, err := s.fs.Stat(rel)
	if err != nil {
		if stdErrors.Is(err, os.ErrNotExist) {
			return nil, errors.WrapError(err, errors.CategoryNotFound, "file does not exist").
				WithContext("path", rel).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to stat file").
			WithContext("path", rel).
			Build()
	}
	data, err := util.ReadFile(s.fs, rel)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read file").
			WithContext("path", rel).
			Build()
	}
	text, enc, err := Decode(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryEncoding, "failed to decode file").
			WithContext("path", rel).
			Build()
	}
	return &Document{Path: rel, Text: text, Encoding: enc, mode: fi.Mode().Perm()}, nil
}

// Write replaces the content of doc's file with text in doc's original encoding.
func (s *Store) Write(doc *Document, text string) error {
	data, err := Encode(text, doc.Encoding)
	if err != nil {
		return errors.WrapError(err, errors.CategoryEncoding, "failed to encode file").
			WithContext("path", doc.Path).
			Build()
	}
	mode := doc.mode
	if mode == 0 {
		mode = 0o644
	}
	if err := util.WriteFile(s.fs, doc.Path, data, mode); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write file").
			WithContext("path", doc.Path).
			Build()
	}
	return nil
}

// DiscoverPages lists .html files up to maxDepth directory levels below the
// root, skipping hidden directories and the paths in exclude. The result is
// sorted with root-level pages first.
func (s *Store) DiscoverPages(maxDepth int, exclude ...string) ([]string, error) {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[path.Clean(filepath.ToSlash(e))] = true
	}

	var pages []string
	err := util.Walk(s.fs, "/", func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(filepath.ToSlash(p), "/")
		if rel == "" {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") || Depth(rel) >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(path.Ext(rel), ".html") || skip[rel] {
			return nil
		}
		pages = append(pages, rel)
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to scan site").Build()
	}

	sort.SliceStable(pages, func(i, j int) bool {
		di, dj := Depth(pages[i]), Depth(pages[j])
		if di != dj {
			return di < dj
		}
		return pages[i] < pages[j]
	})
	return pages, nil
}
