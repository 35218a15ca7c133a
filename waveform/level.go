// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package waveform

import (
	"encoding/binary"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var samplePrefix = []byte("sample/")

// sampleKey returns the key of a sample. Pass numbers are stored big endian
// so that iteration order is pass order.
//
func sampleKey(pass uint64) []byte {
	k := make([]byte, len(samplePrefix)+8)
	copy(k, samplePrefix)
	binary.BigEndian.PutUint64(k[len(samplePrefix):], pass)
	return k
}

// LevelStore is a Store backed by a LevelDB database. Samples are keyed by
// pass number, so recording into an existing database overwrites samples of
// the same pass.
//
type LevelStore struct {
	db *leveldb.DB
}

// OpenLevelStore opens or creates a LevelDB database in dir.
//
func OpenLevelStore(dir string) (*LevelStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open waveform database %s", dir)
	}
	return &LevelStore{db: db}, nil
}

// NewLevelStore wraps an open database. The store takes ownership of db.
//
func NewLevelStore(db *leveldb.DB) *LevelStore { return &LevelStore{db: db} }

// Append implements Store.
//
func (l *LevelStore) Append(s *Sample) error {
	b, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encode sample")
	}
	if err = l.db.Put(sampleKey(s.Pass), b, nil); err != nil {
		return translate(err)
	}
	return nil
}

// Samples implements Store.
//
func (l *LevelStore) Samples() ([]*Sample, error) {
	it := l.db.NewIterator(util.BytesPrefix(samplePrefix), nil)
	defer it.Release()
	var ss []*Sample
	for it.Next() {
		s := new(Sample)
		if err := json.Unmarshal(it.Value(), s); err != nil {
			return nil, errors.Wrapf(err, "decode sample %x", it.Key())
		}
		ss = append(ss, s)
	}
	if err := it.Error(); err != nil {
		return nil, translate(err)
	}
	return ss, nil
}

// Truncate deletes all samples.
//
func (l *LevelStore) Truncate() error {
	it := l.db.NewIterator(util.BytesPrefix(samplePrefix), nil)
	defer it.Release()
	b := new(leveldb.Batch)
	for it.Next() {
		b.Delete(append([]byte(nil), it.Key()...))
	}
	if err := it.Error(); err != nil {
		return translate(err)
	}
	return translate(l.db.Write(b, nil))
}

// Close implements Store.
//
func (l *LevelStore) Close() error {
	return translate(l.db.Close())
}

func translate(err error) error {
	if err == leveldb.ErrClosed {
		return ErrClosed
	}
	return err
}
