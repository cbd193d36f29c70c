package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// The export tool writes each data table as a JSON array with a single
// object carrying the table name and its keyed rows. Rows are kept as raw
// messages so that one malformed row can be skipped without losing its
// siblings.

// DataTable is the outer shape of a staged export document.
type DataTable struct {
	Name string                     `json:"Name"`
	Rows map[string]json.RawMessage `json:"Rows"`
}

// ReadDataTable reads a staged document and returns its first table.
func ReadDataTable(path string) (*DataTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var tables []DataTable
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("document contains no tables")
	}
	return &tables[0], nil
}

// StringRef points into the localization index: a coarse table identifier
// plus a string identifier within that table.
type StringRef struct {
	StringTableID int `json:"StringTableID"`
	StringID      int `json:"StringID"`
}

// RowRef references a row in another data table by key.
type RowRef struct {
	RowName string `json:"RowName"`
}

// StatusEffectRow is one row of Table_StatusEffects.
type StatusEffectRow struct {
	DisplayData struct {
		Name StringRef `json:"Name"`
		Icon struct {
			ObjectPath string `json:"ObjectPath"`
		} `json:"Icon"`
	} `json:"DisplayData"`
}

// EquippableData carries the equipment fields of an item row. Absent on
// non-equippable items.
type EquippableData struct {
	Durability                float64  `json:"Durability"`
	FlatDamageReduction       float64  `json:"FlatDamageReduction"`
	PercentageDamageReduction float64  `json:"PercentageDamageReduction"`
	StatusEffects             []RowRef `json:"StatusEffects"`
	HiddenStatusEffects       []RowRef `json:"HiddenStatusEffects"`
}

// ItemRow is one row of Table_AllItems. Tier is a pointer so that an absent
// field can default to the unknown sentinel rather than zero.
type ItemRow struct {
	LocalizedDisplayName StringRef `json:"LocalizedDisplayName"`
	Icon                 struct {
		AssetPathName string `json:"AssetPathName"`
	} `json:"Icon"`
	Tier           *int            `json:"Tier"`
	Slot           string          `json:"Slot"`
	EquippableData *EquippableData `json:"EquippableData"`
}

// ItemSetRow is one row of Table_ItemSets: membership lists only, every
// displayed attribute is derived.
type ItemSetRow struct {
	Items         []RowRef `json:"Items"`
	StatusEffects []RowRef `json:"StatusEffects"`
}
