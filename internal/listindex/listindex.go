// Package listindex maintains the JSON list files the legacy entries append
// to: an array of {id, url, title, data, abstract} records, newest first.
package listindex

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
)

// Entry is one record of a list file. All fields are written as strings.
type Entry struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Data     string `json:"data"`
	Abstract string `json:"abstract"`
}

// UnmarshalJSON accepts the id either as a string or as a JSON number.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var raw struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Entry(raw.plain)
	id := bytes.TrimSpace(raw.ID)
	switch {
	case len(id) == 0 || bytes.Equal(id, []byte("null")):
		e.ID = ""
	case id[0] == '"':
		return json.Unmarshal(id, &e.ID)
	default:
		var n json.Number
		if err := json.Unmarshal(id, &n); err != nil {
			return fmt.Errorf("id must be a string or a number: %w", err)
		}
		e.ID = n.String()
	}
	return nil
}

// FileMode is the permission of a rewritten list file.
const FileMode os.FileMode = 0o644

// List is an opened list file.
type List struct {
	path    string
	entries []Entry
}

// Open reads the list at path. A missing file yields an empty list.
func Open(path string) (*List, error) {
	l := &List{path: path}
	if err := l.load(); err != nil {
		return nil, err
	}
	return l, nil
}

// Path returns the file backing the list.
func (l *List) Path() string { return l.path }

// Entries returns the records, newest first.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of records.
func (l *List) Len() int { return len(l.entries) }

func (l *List) load() error {
	// #nosec G304 -- list paths come from the operator's configuration.
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		l.entries = nil
		return nil
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read list file").
			WithContext("path", l.path).Build()
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "list file is not a JSON array of entries").
			WithContext("path", l.path).Build()
	}
	l.entries = entries
	return nil
}

// Add inserts a record at the front of the list and rewrites the file. The
// new id is one more than the largest numeric id present, or "1".
//
// Add holds "{path}.lock" while it rereads and rewrites the file; a lock held
// by another writer makes Add fail without touching the list.
func (l *List) Add(url, title, data, abstract string) (Entry, error) {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Entry{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to create list directory").
			WithContext("path", dir).Build()
	}
	unlock, err := acquireLock(l.path)
	if err != nil {
		return Entry{}, err
	}
	defer unlock()

	if err := l.load(); err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:       NextID(l.entries),
		URL:      url,
		Title:    title,
		Data:     data,
		Abstract: abstract,
	}
	entries := make([]Entry, 0, len(l.entries)+1)
	entries = append(entries, entry)
	entries = append(entries, l.entries...)

	if err := writeAtomic(l.path, entries); err != nil {
		return Entry{}, err
	}
	l.entries = entries
	return entry, nil
}

// NextID returns the id for a new record. Ids that are not integers are
// ignored.
func NextID(entries []Entry) string {
	maxID, found := 0, false
	for _, e := range entries {
		n, err := strconv.Atoi(e.ID)
		if err != nil {
			continue
		}
		if !found || n > maxID {
			maxID, found = n, true
		}
	}
	if !found {
		return "1"
	}
	return strconv.Itoa(maxID + 1)
}

func acquireLock(path string) (func(), error) {
	lockPath := path + ".lock"
	// #nosec G304 -- lock file sits next to the configured list file.
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if stderrors.Is(err, os.ErrExist) {
			return nil, errors.FileSystemError("list file is locked by another writer").
				WithContext("path", path).
				WithContext("lock", lockPath).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create list lock").
			WithContext("lock", lockPath).Build()
	}
	_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
	_ = f.Close()
	return func() { _ = os.Remove(lockPath) }, nil
}

func writeAtomic(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode list").Build()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create temporary list file").
			WithContext("path", dir).Build()
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := tmp.Chmod(FileMode); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to set list file mode").
			WithContext("path", tmpName).Build()
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write list file").
			WithContext("path", tmpName).Build()
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write list file").
			WithContext("path", tmpName).Build()
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to replace list file").
			WithContext("path", path).Build()
	}
	return nil
}
