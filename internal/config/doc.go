// Package config loads lvenv defaults from a file named on the command line.
//
// The file format is chosen by extension:
//   - .toml         TOML (github.com/pelletier/go-toml/v2)
//   - .yaml, .yml   YAML (gopkg.in/yaml.v3)
//   - .json, .jsonc JSON with comments (github.com/tidwall/jsonc)
//
// Every key is optional. Values only fill in flags that were not given on
// the command line; the merged options are validated by the caller.
package config
