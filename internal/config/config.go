package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/lvenv/internal/model"
)

// File is the on-disk defaults file. Pointer fields distinguish "absent"
// from an explicit false or empty value.
type File struct {
	Python             *string `toml:"python" yaml:"python" json:"python"`
	SystemSitePackages *bool   `toml:"system_site_packages" yaml:"system_site_packages" json:"system_site_packages"`
	Symlinks           *bool   `toml:"symlinks" yaml:"symlinks" json:"symlinks"`
	Copies             *bool   `toml:"copies" yaml:"copies" json:"copies"`
	Clear              *bool   `toml:"clear" yaml:"clear" json:"clear"`
	Upgrade            *bool   `toml:"upgrade" yaml:"upgrade" json:"upgrade"`
	WithoutPip         *bool   `toml:"without_pip" yaml:"without_pip" json:"without_pip"`
	Prompt             *string `toml:"prompt" yaml:"prompt" json:"prompt"`
	UpgradeDeps        *bool   `toml:"upgrade_deps" yaml:"upgrade_deps" json:"upgrade_deps"`
}

// Load reads and decodes the defaults file at path. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
//
// All failures are returned as CLIError with ExitConfigError.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, fmt.Sprintf("failed to read config file %s", path), err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, &f)
	case ".yaml", ".yml":
		err = decodeYAML(data, &f)
	case ".json", ".jsonc":
		err = decodeJSONC(data, &f)
	default:
		return nil, model.NewCLIError(
			model.ExitConfigError,
			fmt.Sprintf("unsupported config file extension %q (valid: .toml, .yaml, .yml, .json, .jsonc)", ext),
		)
	}
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, fmt.Sprintf("failed to parse config file %s", path), err)
	}
	return &f, nil
}

func decodeTOML(data []byte, f *File) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(f)
}

func decodeYAML(data []byte, f *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// decodeJSONC strips comments and trailing commas before decoding.
func decodeJSONC(data []byte, f *File) error {
	clean := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(clean)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(clean))
	dec.DisallowUnknownFields()
	return dec.Decode(f)
}

// Apply copies file values into opts for every flag that was not set on the
// command line. changed reports whether a flag (by long name) was given.
//
// The link preference is treated as one setting: if either --symlinks or
// --copies was given, both file values are ignored.
func (f *File) Apply(opts *model.Options, changed func(flag string) bool) {
	setString := func(flag string, dst *string, src *string) {
		if src != nil && !changed(flag) {
			*dst = *src
		}
	}
	setBool := func(flag string, dst *bool, src *bool) {
		if src != nil && !changed(flag) {
			*dst = *src
		}
	}

	setString("python", &opts.Python, f.Python)
	setBool("system-site-packages", &opts.SystemSitePackages, f.SystemSitePackages)
	setBool("clear", &opts.Clear, f.Clear)
	setBool("upgrade", &opts.Upgrade, f.Upgrade)
	setBool("without-pip", &opts.WithoutPip, f.WithoutPip)
	setBool("upgrade-deps", &opts.UpgradeDeps, f.UpgradeDeps)

	if !changed("symlinks") && !changed("copies") {
		if f.Symlinks != nil {
			opts.Symlinks = *f.Symlinks
		}
		if f.Copies != nil {
			opts.Copies = *f.Copies
		}
	}

	if f.Prompt != nil && !changed("prompt") {
		prompt := *f.Prompt
		opts.Prompt = &prompt
	}
}
