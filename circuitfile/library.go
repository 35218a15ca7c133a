// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circuitfile

import (
	"os"
	"path/filepath"

	"github.com/db47h/logicsim"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// DefaultCacheSize is the default number of documents kept by a Library.
//
const DefaultCacheSize = 64

var extensions = [...]string{".yaml", ".yml", ".json"}

// A Library loads circuit documents by name from a directory. Decoded
// documents are kept in an ARC cache.
//
type Library struct {
	dir   string
	cache *lru.ARCCache
}

// NewLibrary returns a library reading files from dir. A size <= 0 selects
// DefaultCacheSize.
//
func NewLibrary(dir string, size int) (*Library, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.NewARC(size)
	if err != nil {
		return nil, errors.Wrap(err, "library cache")
	}
	return &Library{dir: dir, cache: cache}, nil
}

// Dir returns the library directory.
//
func (l *Library) Dir() string { return l.dir }

// Document returns the named document. The file is searched in the library
// directory as name.yaml, name.yml, then name.json.
//
func (l *Library) Document(name string) (*Document, error) {
	if v, ok := l.cache.Get(name); ok {
		return v.(*Document), nil
	}
	for _, ext := range extensions {
		fn := filepath.Join(l.dir, name+ext)
		doc, err := ReadFile(fn)
		if os.IsNotExist(errors.Cause(err)) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if doc.Name == "" {
			doc.Name = name
		}
		l.cache.Add(name, doc)
		return doc, nil
	}
	return nil, errors.Errorf("circuit %s not found in %s", name, l.dir)
}

// Resolve implements Resolver.
//
func (l *Library) Resolve(name string) (*Document, error) { return l.Document(name) }

// Open loads the named circuit.
//
func (l *Library) Open(name string, opts ...logicsim.Option) (*logicsim.Circuit, error) {
	doc, err := l.Document(name)
	if err != nil {
		return nil, err
	}
	return Load(doc, l, opts...)
}

// Invalidate drops a document from the cache, or all documents if name is
// empty.
//
func (l *Library) Invalidate(name string) {
	if name == "" {
		l.cache.Purge()
		return
	}
	l.cache.Remove(name)
}

// Cached returns the number of cached documents.
//
func (l *Library) Cached() int { return l.cache.Len() }
