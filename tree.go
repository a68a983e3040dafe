// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// treeBuilder folds the flat entry stream of an archiveWalker into a tree of
// [Entry] nodes rooted at a synthetic root directory. Parent directories
// that have no explicit archive entry are materialized implicitly.
type treeBuilder struct {
	root    *Entry
	cfg     *Config
	count   int64
	spool   bool
	spooled int64
}

// buildTree drains w and returns the root of the resulting entry tree.
// If spool is true, file content is read into memory while folding; this is
// required for stream formats that offer no random access after the walk.
func buildTree(w archiveWalker, cfg *Config, spool bool) (*Entry, error) {
	b := &treeBuilder{
		root:  &Entry{name: "/", path: ".", dir: true},
		cfg:   cfg,
		spool: spool,
	}

	for {
		ae, err := w.Next()
		if err == io.EOF {
			return b.root, nil
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read next archive entry: %w", err)
		}
		if ae == nil {
			continue
		}
		if err := b.add(ae); err != nil {
			return nil, err
		}
	}
}

// add inserts one archive entry into the tree.
func (b *treeBuilder) add(ae archiveEntry) error {
	name, err := cleanEntryName(ae.Name())
	if err != nil {
		return &ReadError{Path: ae.Name(), Err: err}
	}

	// reject entry kinds outside the file/directory data model
	if !ae.IsDir() && !ae.IsRegular() {
		return &ReadError{Path: name, Err: errors.New("unsupported entry kind")}
	}

	b.count++
	if err := b.cfg.CheckMaxEntries(b.count); err != nil {
		return &ReadError{Path: name, Err: err}
	}

	// descend to the parent, materializing implicit directories
	segments := strings.Split(name, "/")
	node := b.root
	for i := 0; i < len(segments)-1; i++ {
		child := node.child(segments[i])
		if child == nil {
			child = &Entry{
				name: segments[i],
				path: path.Join(node.path, segments[i]),
				dir:  true,
			}
			node.children = append(node.children, child)
		}
		if !child.dir {
			return &DirectoryCreateError{Path: child.path, Err: errors.New("directory entry conflicts with file entry")}
		}
		node = child
	}

	leaf := segments[len(segments)-1]
	existing := node.child(leaf)

	if ae.IsDir() {
		if existing != nil {
			if !existing.dir {
				return &DirectoryCreateError{Path: existing.path, Err: errors.New("directory entry conflicts with file entry")}
			}
			// explicit entry for an implicit directory, refine metadata
			existing.mode = ae.Mode()
			existing.modTime = ae.ModTime()
			return nil
		}
		node.children = append(node.children, &Entry{
			name:    leaf,
			path:    path.Join(node.path, leaf),
			dir:     true,
			mode:    ae.Mode(),
			modTime: ae.ModTime(),
		})
		return nil
	}

	// file entry
	open := ae.Open
	size := ae.Size()
	if b.spool {
		data, err := b.spoolContent(ae, name)
		if err != nil {
			return err
		}
		size = int64(len(data))
		open = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
	}

	if existing != nil {
		if existing.dir {
			return &DirectoryCreateError{Path: existing.path, Err: errors.New("file entry conflicts with directory entry")}
		}
		// duplicate file entry, the later one wins
		existing.size = size
		existing.mode = ae.Mode()
		existing.modTime = ae.ModTime()
		existing.open = open
		return nil
	}

	node.children = append(node.children, &Entry{
		name:    leaf,
		path:    path.Join(node.path, leaf),
		size:    size,
		mode:    ae.Mode(),
		modTime: ae.ModTime(),
		open:    open,
	})
	return nil
}

// spoolContent reads the content of ae into memory, bounded by the remaining
// extraction size quota.
func (b *treeBuilder) spoolContent(ae archiveEntry, name string) ([]byte, error) {
	rc, err := ae.Open()
	if err != nil {
		return nil, &ReadError{Path: name, Err: err}
	}
	defer rc.Close()

	limit := b.cfg.MaxExtractionSize()
	if limit != -1 {
		limit -= b.spooled
	}
	data, err := io.ReadAll(newLimitErrorReader(rc, limit))
	if err != nil {
		if errors.Is(err, ErrMaxInputSizeExceeded) {
			err = ErrMaxExtractionSizeExceeded
		}
		return nil, &ReadError{Path: name, Err: err}
	}
	b.spooled += int64(len(data))
	return data, nil
}

// cleanEntryName normalizes an archive entry name to a slash separated path
// relative to the archive root. Names that escape the root are rejected.
func cleanEntryName(name string) (string, error) {
	trimmed := strings.TrimSuffix(name, "/")
	if trimmed == "" {
		return "", errors.New("empty entry name")
	}
	if strings.HasPrefix(trimmed, "/") || strings.Contains(trimmed, "\\") {
		return "", errors.New("entry name escapes archive root")
	}

	cleaned := path.Clean(trimmed)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("entry name escapes archive root")
	}
	return cleaned, nil
}
