// Package confloader loads layered configuration with koanf.
//
// Sources are merged in this order, later ones winning:
//
//  1. Defaults (LoadMap)
//  2. YAML configuration file
//  3. Environment variables
//  4. Command-line flags (LoadMap again, from the CLI layer)
//
// Environment keys drop the prefix, are lowercased, and use a double
// underscore to separate nesting levels, so PERMANENT_LOG__LEVEL maps to
// log.level while PERMANENT_ATOMIC_LIMIT maps to atomic_limit.
package confloader
