// Package gamedata implements the incremental synchronization pipeline that
// turns staged JSON exports of game-configuration data into normalized rows
// in the relational store behind the content website.
//
// A sync run has two stages. The manifest differ (subpackage manifest)
// fingerprints every staged document and compares against the manifest from
// the previous run, producing added/updated/removed work lists. The ingest
// pipeline (subpackage ingest) then routes each changed document to the
// loader for its table type, in two dependency-ordered phases: independent
// entities first (status effects, items), then entities derived from them
// (armor sets).
//
// The Service ties the stages together and is shared by the CLI commands and
// the HTTP handler, which exposes sync triggering and the last run's report.
package gamedata
