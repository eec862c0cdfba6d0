// Package scanner discovers installed mods and builds their local records.
//
// The installed set comes from the game's mod-list.json, or from archive file
// names when that file is absent. Built-in game mods and names from the ignore
// file are excluded. Each mod's archives ({name}_{major}.{minor}.{patch}.zip)
// are hashed on the shared worker pool.
package scanner
