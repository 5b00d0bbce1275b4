package league

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Entry maps one application league to the ids each provider uses for it.
type Entry struct {
	ID                 string
	Name               string
	Country            string
	Logo               string
	DefaultSeason      string
	APIFootballID      string
	SportMonksLeagueID int64
	SportMonksSeasons  map[string]int64
}

func (e Entry) League() League {
	return League{
		ID:      e.ID,
		Name:    e.Name,
		Country: e.Country,
		Logo:    e.Logo,
		Season:  e.DefaultSeason,
	}
}

// SportMonksSeason resolves a season label such as "2024" or "2024/2025" to a
// provider season id. An empty label selects the default season.
func (e Entry) SportMonksSeason(season string) (int64, bool) {
	season = strings.TrimSpace(season)
	if season == "" {
		season = e.DefaultSeason
	}
	if id, ok := e.SportMonksSeasons[season]; ok {
		return id, true
	}
	if first, _, found := strings.Cut(season, "/"); found {
		id, ok := e.SportMonksSeasons[first]
		return id, ok
	}
	return 0, false
}

// Catalog is an immutable lookup table built once at startup and injected
// into every adapter that needs provider-specific league ids.
type Catalog struct {
	entries []Entry
	byID    map[string]Entry
	byName  map[string]Entry
}

func NewCatalog(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byID:    make(map[string]Entry, len(entries)),
		byName:  make(map[string]Entry, len(entries)),
	}
	for _, entry := range entries {
		entry.ID = strings.TrimSpace(entry.ID)
		entry.Name = strings.TrimSpace(entry.Name)
		if entry.ID == "" || entry.Name == "" {
			return nil, fmt.Errorf("league entry requires id and name: %+v", entry)
		}
		if _, exists := c.byID[entry.ID]; exists {
			return nil, fmt.Errorf("duplicate league id %q", entry.ID)
		}
		seasons := make(map[string]int64, len(entry.SportMonksSeasons))
		for k, v := range entry.SportMonksSeasons {
			seasons[strings.TrimSpace(k)] = v
		}
		entry.SportMonksSeasons = seasons

		c.entries = append(c.entries, entry)
		c.byID[entry.ID] = entry
		c.byName[normalizeName(entry.Name)] = entry
	}
	sort.SliceStable(c.entries, func(i, j int) bool { return c.entries[i].Name < c.entries[j].Name })
	return c, nil
}

func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) ByID(leagueID string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	entry, ok := c.byID[strings.TrimSpace(leagueID)]
	return entry, ok
}

func (c *Catalog) ByName(name string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	entry, ok := c.byName[normalizeName(name)]
	return entry, ok
}

// ByAPIFootballID maps a provider league id back to the application entry.
func (c *Catalog) ByAPIFootballID(providerID string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	providerID = strings.TrimSpace(providerID)
	for _, entry := range c.entries {
		if providerID != "" && entry.APIFootballID == providerID {
			return entry, true
		}
	}
	return Entry{}, false
}

// BySportMonksLeagueID maps a provider league id back to the application entry.
func (c *Catalog) BySportMonksLeagueID(providerID int64) (Entry, bool) {
	if c == nil || providerID <= 0 {
		return Entry{}, false
	}
	for _, entry := range c.entries {
		if entry.SportMonksLeagueID == providerID {
			return entry, true
		}
	}
	return Entry{}, false
}

func (c *Catalog) List(_ context.Context) ([]Entry, error) {
	return c.Entries(), nil
}

func (c *Catalog) GetByID(_ context.Context, leagueID string) (Entry, bool, error) {
	entry, ok := c.ByID(leagueID)
	return entry, ok, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
