package resolve

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gamedata-sync/feature/gamedata/models"
)

// stringTablesByID maps the small integer table identifiers used by export
// documents to the named localization tables. Unmapped identifiers fall
// through to the "unknown" table, which resolves every lookup to "".
var stringTablesByID = map[int]string{
	1:   "game/gui",
	2:   "game/items",
	9:   "game/characters",
	33:  "game/statuseffects",
	195: "game/perks",
}

// assetRoots are the recognized content-root markers inside internal asset
// paths. Everything after the marker is the public-relative path.
var assetRoots = []string{
	"/Game/",
	"/Augusta/Content/",
}

// localization mirrors the export shape of the localization document.
type localization []struct {
	Properties struct {
		StringTables []struct {
			Key   string `json:"Key"`
			Value struct {
				Entries []struct {
					Key   string `json:"Key"`
					Value struct {
						DefaultText string `json:"DefaultText"`
					} `json:"Value"`
				} `json:"Entries"`
			} `json:"Value"`
		} `json:"StringTables"`
	} `json:"Properties"`
}

// Resolver resolves localization references to display strings and internal
// asset paths to public media paths. It is constructed once per sync run and
// passed into every loader; all lookups are pure.
type Resolver struct {
	tables    map[string]map[string]string
	mediaRoot string
}

// NewResolver loads the localization document and builds the lookup index.
// Failure here is a fatal precondition for a sync run: structural data
// without display text is not acceptable output, so the orchestrator halts
// before pass 1.
func NewResolver(localizationPath, mediaRoot string) (*Resolver, error) {
	data, err := os.ReadFile(localizationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read localization document %s: %w", localizationPath, err)
	}

	var loc localization
	if err := json.Unmarshal(data, &loc); err != nil {
		return nil, fmt.Errorf("failed to parse localization document %s: %w", localizationPath, err)
	}
	if len(loc) == 0 {
		return nil, fmt.Errorf("localization document %s contains no entries", localizationPath)
	}

	tables := make(map[string]map[string]string)
	for _, table := range loc[0].Properties.StringTables {
		entries := make(map[string]string, len(table.Value.Entries))
		for _, entry := range table.Value.Entries {
			entries[entry.Key] = entry.Value.DefaultText
		}
		tables[table.Key] = entries
	}

	return &Resolver{tables: tables, mediaRoot: mediaRoot}, nil
}

// DisplayText looks up the display string for a localization reference.
// Any miss (unmapped table identifier, unknown table, missing entry)
// resolves to the empty string: localization gaps must not block ingest of
// structural data.
func (r *Resolver) DisplayText(ref models.StringRef) string {
	tableID, ok := stringTablesByID[ref.StringTableID]
	if !ok {
		tableID = "unknown"
	}

	entries, ok := r.tables[tableID]
	if !ok {
		return ""
	}
	return entries[strconv.Itoa(ref.StringID)]
}

// AssetPath rewrites an internal content path into a public media path.
// The tail after the last marker occurrence is kept, so a mount prefix that
// itself contains a marker does not leak into the public path. Non-image
// assets and paths without a recognized content-root marker resolve to the
// empty string.
func (r *Resolver) AssetPath(internal string, image bool) string {
	if internal == "" || !image {
		return ""
	}

	for _, root := range assetRoots {
		if idx := strings.LastIndex(internal, root); idx >= 0 {
			rel := internal[idx+len(root):]
			return strings.ReplaceAll(r.mediaRoot+rel, "\\", "/")
		}
	}
	return ""
}
