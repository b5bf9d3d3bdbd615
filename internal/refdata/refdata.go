// Package refdata loads branch and loan officer reference data.
//
// The file is YAML:
//
//	replace_defaults: false
//	branches:
//	  "49": Valdosta North
//	officers:
//	  "Smith, John": "7"
//
// Branches extend (or, with replace_defaults, replace) the built-in directory.
// Officers map a lender name to a branch number. Environment variables with
// the HMDA_REF_ prefix override the file:
//
//	HMDA_REF_BRANCHES_49=Valdosta North
//	HMDA_REF_OFFICERS_JOHN_SMITH=7
package refdata

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/core"
)

// EnvPrefix is the prefix of reference data environment overrides.
const EnvPrefix = "HMDA_REF_"

// keyDelim separates koanf key paths. Officer names contain periods
// ("John Q. Smith Jr."), so "." cannot be used.
const keyDelim = "::"

// Data is loaded reference data.
type Data struct {
	Branches core.BranchDirectory
	Officers core.StaticOfficerLookup
}

type fileFormat struct {
	ReplaceDefaults bool              `koanf:"replace_defaults"`
	Branches        map[string]string `koanf:"branches"`
	Officers        map[string]string `koanf:"officers"`
}

// Load reads path (optional, "" skips the file) and the environment.
func Load(path string) (*Data, error) {
	k := koanf.New(keyDelim)

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reference data %s: %w", path, err)
		}
	}

	// HMDA_REF_BRANCHES_49 -> branches::49, HMDA_REF_OFFICERS_JOHN_SMITH -> officers::john smith
	envProvider := env.Provider(EnvPrefix, keyDelim, envKey)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("reference data env: %w", err)
	}

	var raw fileFormat
	if err := k.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("reference data: %w", err)
	}
	return build(raw)
}

func build(raw fileFormat) (*Data, error) {
	branches := core.BranchDirectory{}
	if !raw.ReplaceDefaults {
		branches = core.DefaultBranches()
	}
	for key, name := range raw.Branches {
		number := strings.TrimLeft(strings.TrimSpace(key), "0")
		name = strings.TrimSpace(name)
		if number == "" || name == "" {
			return nil, fmt.Errorf("reference data: branch %q has no name", key)
		}
		branches[number] = name
	}

	for officer, branch := range raw.Officers {
		if _, ok := branches.Name(branch); !ok {
			return nil, fmt.Errorf("reference data: officer %q assigned to unknown branch %q", officer, branch)
		}
	}

	return &Data{
		Branches: branches,
		Officers: core.NewStaticOfficerLookup(raw.Officers),
	}, nil
}

// envKey maps an environment variable to a koanf key.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	section, rest, _ := strings.Cut(s, "_")
	switch strings.ToLower(section) {
	case "branches":
		return "branches" + keyDelim + rest
	case "officers":
		return "officers" + keyDelim + strings.ToLower(strings.ReplaceAll(rest, "_", " "))
	}
	return strings.ToLower(s)
}
