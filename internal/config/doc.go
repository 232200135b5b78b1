// Package config loads the pokedex TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pokedex/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Apply POKEDEX_* environment overrides
//
// LoadEnv reads .env and .env.local from the working directory first, so the
// overrides can live in either file.
//
// # TOML Format
//
//	api_base        = "https://pokeapi.co/api/v2/"
//	listing_limit   = 1025
//	image_template  = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/{id}.png"
//	request_timeout = "15s"
//	detail_rps      = 10
//	startup_delay   = "1s"
//	reveal_latency  = "500ms"
//	log_file        = "~/.local/state/pokedex/pokedex.log"
//
//	[sound]
//	enabled = true
//	player  = "paplay"
//	dir     = "~/.local/share/pokedex/sounds"
//
// Every field is optional. startup_delay and reveal_latency accept "0s" to
// disable the pause; other zero values mean "use the default". Tilde
// expansion is performed on log_file and sound.dir.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and unparsable or negative durations.
// A missing file is not an error.
package config
