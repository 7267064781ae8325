// Package config handles configuration management for prepenv.
//
// Configuration is layered, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the project file: .prepenv.toml, .prepenv.yaml or .prepenv.yml at the
//     project root, or an explicit --config path
//  3. PREPENV_* environment variables, with "__" separating nested keys
//     (PREPENV_LAYOUT__BOOST_VERSION=1.89.0)
package config
