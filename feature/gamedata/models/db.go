package models

// Item is a normalized item row. A key maps to at most one row; re-ingesting
// a key replaces the full row.
type Item struct {
	Key                       string  `gorm:"column:key;primaryKey"`
	Name                      string  `gorm:"column:name"`
	IconPath                  string  `gorm:"column:icon_path"`
	Tier                      int     `gorm:"column:tier"`
	Slot                      string  `gorm:"column:slot"`
	Durability                float64 `gorm:"column:durability"`
	FlatDamageReduction       float64 `gorm:"column:flat_damage_reduction"`
	PercentageDamageReduction float64 `gorm:"column:percentage_damage_reduction"`
}

// TableName overrides the table name to match the provisioned schema.
func (Item) TableName() string {
	return "Items"
}

// StatusEffect is a normalized status effect row.
type StatusEffect struct {
	Key      string `gorm:"column:key;primaryKey"`
	Name     string `gorm:"column:name"`
	IconPath string `gorm:"column:icon_path"`
}

func (StatusEffect) TableName() string {
	return "StatusEffects"
}

// ArmorSet is a derived entity: every attribute except the key is computed
// from the member items and effects that were loaded in pass 1.
type ArmorSet struct {
	Key   string `gorm:"column:key;primaryKey"`
	Name  string `gorm:"column:name"`
	Tier  int    `gorm:"column:tier"`
	Class string `gorm:"column:class"`
}

func (ArmorSet) TableName() string {
	return "ArmorSets"
}

// ItemStatusEffect associates an item with an effect it grants. Hidden
// effects are excluded from player-facing display but still participate in
// set class inference.
type ItemStatusEffect struct {
	ItemKey   string `gorm:"column:item_key;primaryKey"`
	EffectKey string `gorm:"column:effect_key;primaryKey"`
	IsHidden  bool   `gorm:"column:is_hidden"`
}

func (ItemStatusEffect) TableName() string {
	return "Item_StatusEffects"
}

// ArmorSetItem is a membership edge between a set and an item.
type ArmorSetItem struct {
	SetKey  string `gorm:"column:set_key;primaryKey"`
	ItemKey string `gorm:"column:item_key;primaryKey"`
}

func (ArmorSetItem) TableName() string {
	return "ArmorSet_Items"
}

// ArmorSetEffect is a membership edge between a set and a set bonus effect.
type ArmorSetEffect struct {
	SetKey    string `gorm:"column:set_key;primaryKey"`
	EffectKey string `gorm:"column:effect_key;primaryKey"`
}

func (ArmorSetEffect) TableName() string {
	return "ArmorSet_Effects"
}

// TierUnknown is the sentinel stored when a tier cannot be determined.
const TierUnknown = -1
