package game

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// MaxSlots is the largest grid the keypad can address.
const MaxSlots = 16

const (
	defaultVisibleTime  = 1000 * time.Millisecond
	defaultCooldownTime = 500 * time.Millisecond
	defaultMultiplier   = 1
	defaultMaxPoints    = 100
	defaultMinPoints    = 1
	defaultColumns      = 3
	defaultRows         = 1
	defaultWidth        = 640
	defaultHeight       = 480
)

type Surface struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type MoleConfig struct {
	VisibleTime  time.Duration `yaml:"visibleTime"`
	CooldownTime time.Duration `yaml:"cooldownTime"`
	Multiplier   float64       `yaml:"multiplier"`
	MaxPoints    int           `yaml:"maxPoints"`
	MinPoints    int           `yaml:"minPoints"`
}

type LevelConfig struct {
	MoleCount int        `yaml:"moleCount"`
	Rows      int        `yaml:"rows"`
	Columns   int        `yaml:"columns"`
	Mole      MoleConfig `yaml:"mole"`
}

type Config struct {
	Surface Surface       `yaml:"surface"`
	Levels  []LevelConfig `yaml:"levels"`
}

// DefaultConfig is the stock four level game.
func DefaultConfig() Config {
	return Config{
		Levels: []LevelConfig{
			{MoleCount: 10, Rows: 1, Columns: 3, Mole: MoleConfig{VisibleTime: 5000 * time.Millisecond}},
			{MoleCount: 15, Rows: 2, Columns: 2, Mole: MoleConfig{VisibleTime: 4000 * time.Millisecond, Multiplier: 2}},
			{MoleCount: 20, Rows: 3, Columns: 3, Mole: MoleConfig{VisibleTime: 4000 * time.Millisecond, Multiplier: 2}},
			{MoleCount: 20, Rows: 4, Columns: 4, Mole: MoleConfig{
				VisibleTime:  4500 * time.Millisecond,
				CooldownTime: 150 * time.Millisecond,
				Multiplier:   2,
			}},
		},
	}.WithDefaults()
}

// LoadConfig reads a YAML level file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg.WithDefaults(), nil
}

func (c Config) WithDefaults() Config {
	if c.Surface.Width <= 0 {
		c.Surface.Width = defaultWidth
	}
	if c.Surface.Height <= 0 {
		c.Surface.Height = defaultHeight
	}

	levels := make([]LevelConfig, len(c.Levels))
	for i, lc := range c.Levels {
		levels[i] = lc.WithDefaults()
	}
	c.Levels = levels
	return c
}

func (c LevelConfig) WithDefaults() LevelConfig {
	if c.MoleCount < 0 {
		c.MoleCount = 0
	}
	if c.Rows <= 0 {
		c.Rows = defaultRows
	}
	if c.Columns <= 0 {
		c.Columns = defaultColumns
	}
	c.Mole = c.Mole.WithDefaults()
	return c
}

func (c MoleConfig) WithDefaults() MoleConfig {
	if c.VisibleTime <= 0 {
		c.VisibleTime = defaultVisibleTime
	}
	if c.CooldownTime <= 0 {
		c.CooldownTime = defaultCooldownTime
	}
	if c.Multiplier <= 0 {
		c.Multiplier = defaultMultiplier
	}
	if c.MaxPoints <= 0 {
		c.MaxPoints = defaultMaxPoints
	}
	if c.MinPoints <= 0 {
		c.MinPoints = defaultMinPoints
	}
	return c
}

// Validate checks a config as written. Zero values count as unset and are
// checked with their defaults; negative values are rejected.
func (c Config) Validate() error {
	var allErrs field.ErrorList

	surface := field.NewPath("surface")
	if c.Surface.Width < 0 {
		allErrs = append(allErrs, field.Invalid(surface.Child("width"), c.Surface.Width, "must not be negative"))
	}
	if c.Surface.Height < 0 {
		allErrs = append(allErrs, field.Invalid(surface.Child("height"), c.Surface.Height, "must not be negative"))
	}

	levels := field.NewPath("levels")
	if len(c.Levels) == 0 {
		allErrs = append(allErrs, field.Required(levels, "at least one level is needed"))
	}
	for i, lc := range c.Levels {
		allErrs = append(allErrs, lc.validate(levels.Index(i))...)
	}

	return allErrs.ToAggregate()
}

func (c LevelConfig) validate(fldPath *field.Path) field.ErrorList {
	var allErrs field.ErrorList

	if c.MoleCount < 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("moleCount"), c.MoleCount, "must not be negative"))
	}
	if c.Rows < 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("rows"), c.Rows, "must not be negative"))
	}
	if c.Columns < 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("columns"), c.Columns, "must not be negative"))
	}

	d := c.WithDefaults()
	if d.Rows*d.Columns > MaxSlots {
		allErrs = append(allErrs, field.TooMany(fldPath, d.Rows*d.Columns, MaxSlots))
	}

	mole := fldPath.Child("mole")
	if c.Mole.VisibleTime < 0 {
		allErrs = append(allErrs, field.Invalid(mole.Child("visibleTime"), c.Mole.VisibleTime.String(), "must not be negative"))
	}
	if c.Mole.CooldownTime < 0 {
		allErrs = append(allErrs, field.Invalid(mole.Child("cooldownTime"), c.Mole.CooldownTime.String(), "must not be negative"))
	}
	if c.Mole.Multiplier < 0 {
		allErrs = append(allErrs, field.Invalid(mole.Child("multiplier"), c.Mole.Multiplier, "must not be negative"))
	}
	if c.Mole.MaxPoints < 0 || c.Mole.MinPoints < 0 {
		allErrs = append(allErrs, field.Invalid(mole, c.Mole.MinPoints, "points must not be negative"))
	}
	if d.Mole.MinPoints > d.Mole.MaxPoints {
		allErrs = append(allErrs, field.Invalid(mole.Child("minPoints"), d.Mole.MinPoints, "must not exceed maxPoints"))
	}

	return allErrs
}
