// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.todos/todos.toml or OS-specific config directory)
// 3. Project config file (todos.toml or .todos.toml in the working directory),
// or the file named by --config
// 4. A .env file in the working directory
// 5. Environment variables (TODOS_*)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// Variables already set in the process environment win over the .env file.
package config
