package genetic_tsp

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	cp "github.com/jinzhu/copier"
	"github.com/xrash/smetrics"
	yaml "gopkg.in/yaml.v2"
)

// ToolConfig is the optional file shared by the solve and runs tools.
type ToolConfig struct {
	Run         RunConfig          `toml:"run" yaml:"run"`
	Persistence *PersistenceConfig `toml:"persistence" yaml:"persistence"`
	Log         LogConfig          `toml:"log" yaml:"log"`
}

// RunConfig holds the parameters of one optimisation run. Population and
// Generations have no defaults; a nil value means the user never set them.
type RunConfig struct {
	Population     *int     `toml:"population" yaml:"population"`
	Generations    *int     `toml:"generations" yaml:"generations"`
	Seed           int64    `toml:"seed" yaml:"seed"`
	MutationChance *float64 `toml:"mutation_chance" yaml:"mutation_chance"`
	Output         string   `toml:"output" yaml:"output"`
	LogInterval    int      `toml:"log_interval" yaml:"log_interval"`
}

var knownKeys = []string{
	"run.population",
	"run.generations",
	"run.seed",
	"run.mutation_chance",
	"run.output",
	"run.log_interval",
	"persistence.name",
	"persistence.path",
	"persistence.sqlite_pragmas",
	"persistence.sqlite_options",
	"log.level",
	"log.format",
}

// LoadToolConfig decodes a TOML or YAML file, picked by extension. Unknown
// keys are errors so that a typo never silently falls back to a default.
func LoadToolConfig(path string) (*ToolConfig, error) {
	var tc ToolConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.DecodeFile(path, &tc)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrConfiguration, path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, unknownKeyError(path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		if err := yaml.UnmarshalStrict(data, &tc); err != nil {
			if m := yamlUnknownField.FindStringSubmatch(err.Error()); m != nil {
				return nil, unknownKeyError(path, m[1])
			}
			return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrConfiguration, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrConfiguration, filepath.Ext(path))
	}
	return &tc, nil
}

var yamlUnknownField = regexp.MustCompile(`field (\S+) not found`)

func unknownKeyError(path, key string) error {
	if hint := suggestKey(key); hint != "" {
		return fmt.Errorf("%w: unknown key %q in %s (did you mean %q?)", ErrConfiguration, key, path, hint)
	}
	return fmt.Errorf("%w: unknown key %q in %s", ErrConfiguration, key, path)
}

// suggestKey returns the known key closest to key, or "" if nothing is close.
// Dotless keys (YAML reports only the field) are compared to the last
// segment of each known key.
func suggestKey(key string) string {
	best, bestScore := "", 0.0
	for _, known := range knownKeys {
		candidate := known
		if !strings.Contains(key, ".") {
			candidate = known[strings.LastIndex(known, ".")+1:]
		}
		if score := smetrics.JaroWinkler(key, candidate, 0.7, 4); score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore < 0.85 {
		return ""
	}
	return best
}

// Merge overlays every field that is set in over onto rc.
func (rc *RunConfig) Merge(over *RunConfig) error {
	if over == nil {
		return nil
	}
	return cp.CopyWithOption(rc, over, cp.Option{IgnoreEmpty: true})
}

// EngineConfig validates rc and converts it for the engine. The mutation
// chance defaults to DefaultMutationChance.
func (rc *RunConfig) EngineConfig() (EngineConfig, error) {
	var errs []string
	if rc.Population == nil {
		errs = append(errs, "population size is required")
	} else if *rc.Population < 1 {
		errs = append(errs, fmt.Sprintf("population size must be at least 1, got %d", *rc.Population))
	}
	if rc.Generations == nil {
		errs = append(errs, "generation count is required")
	} else if *rc.Generations < 0 {
		errs = append(errs, fmt.Sprintf("generation count must not be negative, got %d", *rc.Generations))
	}
	chance := DefaultMutationChance
	if rc.MutationChance != nil {
		chance = *rc.MutationChance
	}
	if chance < 0 || chance > 1 {
		errs = append(errs, fmt.Sprintf("mutation chance must be within [0, 1], got %v", chance))
	}
	if rc.LogInterval < 0 {
		errs = append(errs, fmt.Sprintf("log interval must not be negative, got %d", rc.LogInterval))
	}
	if len(errs) > 0 {
		return EngineConfig{}, fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(errs, "; "))
	}

	return EngineConfig{
		PopulationSize: *rc.Population,
		Generations:    *rc.Generations,
		MutationChance: chance,
		LogInterval:    rc.LogInterval,
	}, nil
}
