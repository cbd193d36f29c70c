// Package server holds configuration for the HTTP server surface.
//
// The server itself is assembled in the start command: a Fiber application
// with the gamedata and integrity features registered through the loader
// manager. This package only carries the configuration section so that the
// config loader can bind it without importing Fiber.
package server
