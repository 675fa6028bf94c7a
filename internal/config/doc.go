// Package config loads the loupe configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/loupe/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	patterns = ["**/*.log", "**/*.txt"]   # doublestar globs, relative to each root
//	debounce_ms = 250                      # minimum gap between two rescans
//	max_bytes = 8388608                    # initial load keeps only the tail
//	core_tags = ["DUIN", "CORE"]           # tab-delimited subsystem literals
//	app_tags = ["APP"]
//	create_missing = true                  # create a project dir on selection
//	log_level = "info"
//	log_file = "~/.local/state/loupe/loupe.log"
//
//	[[project]]
//	name = "DuinEditor"
//	dir = "./DuinEditor/logs"
//
// Every key is optional. When no [[project]] table is present the editor
// and sample game log directories relative to the working directory are
// used. A project without a name takes the base name of its dir.
//
// # Path Expansion
//
// Project dirs and log_file accept absolute paths, tilde paths and paths
// relative to the working directory; all are returned absolute.
//
// # Error Handling
//
// Load returns errors for an unreadable file, invalid TOML and a project
// table without dir. A missing file is not an error.
package config
