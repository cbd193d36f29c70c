package gamedata

// Config holds configuration for the sync pipeline paths.
// All paths except StagingRoot-relative ones are resolved from the working
// directory of the process.
type Config struct {
	// StagingRoot is the directory tree of staged JSON export documents.
	StagingRoot string `mapstructure:"staging_root" default:"json_staging"`
	// ManifestPath is the persisted fingerprint manifest.
	ManifestPath string `mapstructure:"manifest_path" default:"manifest.json"`
	// AddListPath is the work list of documents new since the last run.
	AddListPath string `mapstructure:"add_list_path" default:"files_add.json"`
	// UpdateListPath is the work list of documents changed since the last run.
	UpdateListPath string `mapstructure:"update_list_path" default:"files_update.json"`
	// RemoveListPath records documents that disappeared from staging.
	// Nothing consumes it yet; it is written for operator visibility.
	RemoveListPath string `mapstructure:"remove_list_path" default:"files_remove.json"`
	// LocalizationPath is the localization document, relative to StagingRoot.
	LocalizationPath string `mapstructure:"localization_path" default:"Exported/Release_0_1/Localized/enus/Text/Text_enus.json"`
	// MediaRoot is the public URL prefix for rewritten asset paths.
	MediaRoot string `mapstructure:"media_root" default:"/media/"`
}
