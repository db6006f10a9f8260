package main

import (
	"encoding/gob"
	"errors"
	"hash/crc32"
	"io/fs"
	"os"
	"sync"
)

const _filePerm = 0644

// _AnswerCache remembers minimum locations of previously solved inputs.
// Writes go to name+"New" first and are renamed over name once synced, so
// a crash never leaves a truncated cache behind.
type _AnswerCache struct {
	mu        sync.Mutex
	name      string
	answers   map[_CacheKey]uint64
	dirty     bool
	discarded error
}

type _CacheKey struct {
	Mode     string
	Size     int64
	HashCode uint32
}

func _newCacheKey(data []byte, mode string) _CacheKey {
	return _CacheKey{
		Mode:     mode,
		Size:     int64(len(data)),
		HashCode: crc32.ChecksumIEEE(data),
	}
}

// _openAnswerCache loads name, preferring a complete name+"New" left by an
// interrupted sync. A file that does not decode is discarded; the returned
// cache is then marked dirty so Close replaces it.
func _openAnswerCache(name string) (*_AnswerCache, error) {
	c := &_AnswerCache{name: name, answers: make(map[_CacheKey]uint64)}

	answers, err := _loadAnswers(name + "New")
	if err == nil {
		os.Rename(name+"New", name)
	} else {
		if errors.Is(err, _errUndecodable) {
			os.Remove(name + "New")
		}
		answers, err = _loadAnswers(name)
	}

	switch {
	case err == nil:
		if answers != nil {
			c.answers = answers
		}
	case errors.Is(err, fs.ErrNotExist):
	case errors.Is(err, _errUndecodable):
		c.discarded = err
		c.dirty = true
	default:
		return nil, err
	}
	return c, nil
}

var _errUndecodable = errors.New("undecodable answer cache")

func _loadAnswers(name string) (answers map[_CacheKey]uint64, err error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(&answers); err != nil {
		return nil, errorf("%w %v: %v", _errUndecodable, name, err)
	}
	return answers, nil
}

// Discarded reports why an existing cache file was thrown away, if it was.
func (c *_AnswerCache) Discarded() error {
	return c.discarded
}

func (c *_AnswerCache) Get(key _CacheKey) (low uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	low, ok = c.answers[key]
	return
}

func (c *_AnswerCache) Put(key _CacheKey, low uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.answers[key]; ok && old == low {
		return
	}
	c.answers[key] = low
	c.dirty = true
}

func (c *_AnswerCache) syncLocked() error {
	file, err := os.OpenFile(c.name+"New", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, _filePerm)
	if err != nil {
		return err
	}

	nerr := gob.NewEncoder(file).Encode(c.answers)
	serr := file.Sync()
	cerr := file.Close()

	switch {
	case nerr != nil:
		return nerr
	case serr != nil:
		return serr
	case cerr != nil:
		return cerr
	}

	c.dirty = false
	return os.Rename(c.name+"New", c.name)
}

// Close writes pending answers to disk.
func (c *_AnswerCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}
	return c.syncLocked()
}
