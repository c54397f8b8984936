// Package champions maps champion ids to display names.
//
// The default table is a Data Dragon champion.json snapshot compiled into the
// binary; a newer file can be loaded with LoadFile.
package champions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pable/go-lol-stats/internal/model"
)

//go:embed champion.json
var defaultJSON []byte

// ddragon is the subset of Data Dragon's champion.json that the table reads.
type ddragon struct {
	Version string `json:"version"`
	Data    map[string]struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}

// Table is a read-only bidirectional id <-> name mapping.
type Table struct {
	Version string
	byID    map[int]string
	byName  map[string]int
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the embedded table, parsed once.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Parse(defaultJSON)
	})
	return defaultTable, defaultErr
}

// LoadFile parses a Data Dragon champion.json from disk.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read champions: %w", err)
	}
	return Parse(data)
}

// Parse builds a table from Data Dragon champion.json bytes.
func Parse(data []byte) (*Table, error) {
	var dd ddragon
	if err := json.Unmarshal(data, &dd); err != nil {
		return nil, fmt.Errorf("parse champions: %w", err)
	}
	t := &Table{
		Version: dd.Version,
		byID:    make(map[int]string, len(dd.Data)),
		byName:  make(map[string]int, len(dd.Data)),
	}
	for slug, c := range dd.Data {
		id, err := strconv.Atoi(c.Key)
		if err != nil {
			return nil, fmt.Errorf("champion %s: bad key %q", slug, c.Key)
		}
		if prev, dup := t.byID[id]; dup {
			return nil, fmt.Errorf("champion id %d used by %s and %s", id, prev, c.Name)
		}
		t.byID[id] = c.Name
		t.byName[normalize(c.Name)] = id
		t.byName[normalize(slug)] = id
	}
	if len(t.byID) == 0 {
		return nil, fmt.Errorf("parse champions: no champions")
	}
	return t, nil
}

// Name returns the display name for id, or a LookupError.
func (t *Table) Name(id int) (string, error) {
	name, ok := t.byID[id]
	if !ok {
		return "", &model.LookupError{Kind: "champion", Key: strconv.Itoa(id)}
	}
	return name, nil
}

// ID resolves a display name or Data Dragon slug, ignoring case, spaces and punctuation.
func (t *Table) ID(name string) (int, error) {
	id, ok := t.byName[normalize(name)]
	if !ok {
		return 0, &model.LookupError{Kind: "champion", Key: name}
	}
	return id, nil
}

// Names returns every display name, sorted.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.byID))
	for _, n := range t.byID {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of champions.
func (t *Table) Len() int { return len(t.byID) }

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
