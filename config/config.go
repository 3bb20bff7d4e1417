package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/intonado/intonado/constants"
)

type Config struct {
	Output                 string        `yaml:"output"`
	MaxDuration            float64       `yaml:"max_duration"`
	RepetitionsPerExercise int           `yaml:"repetitions_per_exercise"`
	ExercisesCount         int           `yaml:"exercises_count"`
	RandomSeed             *int64        `yaml:"random_seed"`
	VocalRange             VocalRange    `yaml:"vocal_range"`
	Scale                  ScaleConfig   `yaml:"scale"`
	Content                ContentConfig `yaml:"content"`
	Sequences              *Sequences    `yaml:"sequences"`
	Timing                 Timing        `yaml:"timing"`
	Sound                  Sound         `yaml:"sound"`
}

type VocalRange struct {
	Lowest  string `yaml:"lowest"`
	Highest string `yaml:"highest"`
}

type ScaleConfig struct {
	Root string `yaml:"root"`
	Kind string `yaml:"kind"`
}

type ContentConfig struct {
	Intervals   *Intervals   `yaml:"intervals"`
	Triads      *Triads      `yaml:"triads"`
	NoteChains  *NoteChains  `yaml:"note_chains"`
	StepTriads  *StepTriads  `yaml:"scale_step_triads"`
	RhythmVocal *RhythmVocal `yaml:"rhythm_vocal"`
}

type Intervals struct {
	Ascending   bool `yaml:"ascending"`
	Descending  bool `yaml:"descending"`
	MaxInterval int  `yaml:"max_interval"`
}

type Triads struct {
	Qualities         []string `yaml:"qualities"`
	IncludeInversions bool     `yaml:"include_inversions"`
}

type NoteChains struct {
	Num         int `yaml:"num"`
	MaxLength   int `yaml:"max_length"`
	MaxInterval int `yaml:"max_interval"`
}

type StepTriads struct {
	Style              string `yaml:"style"` // "1-2-1" or "1-3-5-3-1"
	RepetitionsPerStep int    `yaml:"repetitions_per_step"`
}

type RhythmVocal struct {
	Num              int    `yaml:"num"`
	MaxPatternLength int    `yaml:"max_pattern_length"`
	BaseNote         string `yaml:"base_note"`
}

type Sequences struct {
	Signature             string   `yaml:"signature"`
	UnitLength            float64  `yaml:"unit_length"`
	L                     string   `yaml:"L"`
	Scale                 string   `yaml:"scale"`
	Transpose             int      `yaml:"transpose"`
	ValidateTimeSignature *bool    `yaml:"validate_time_signature"`
	CombineToOne          bool     `yaml:"combine_sequences_to_one"`
	Notes                 []string `yaml:"notes"`
}

type Timing struct {
	NoteDuration       float64 `yaml:"note_duration"`
	PauseBetweenReps   float64 `yaml:"pause_between_reps"`
	PauseBetweenBlocks float64 `yaml:"pause_between_blocks"`
	BPM                float64 `yaml:"bpm"`
}

type Sound struct {
	Velocity uint8 `yaml:"velocity"`
}

// Load reads a YAML config file and fills in defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config '%s'", path)
	}
	return Parse(raw)
}

// Parse decodes YAML config bytes and fills in defaults.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "cannot parse config")
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = "session.mid"
	}
	if c.MaxDuration <= 0 {
		c.MaxDuration = constants.DefaultMaxDuration
	}
	if c.VocalRange.Lowest == "" {
		c.VocalRange.Lowest = "A2"
	}
	if c.VocalRange.Highest == "" {
		c.VocalRange.Highest = "A4"
	}
	if c.Scale.Root == "" {
		c.Scale.Root = "C3"
	}
	if c.Scale.Kind == "" {
		c.Scale.Kind = "major"
	}
	if c.Timing.NoteDuration <= 0 {
		c.Timing.NoteDuration = 1.8
	}
	if c.Timing.PauseBetweenReps <= 0 {
		c.Timing.PauseBetweenReps = 1.0
	}
	if c.Timing.PauseBetweenBlocks <= 0 {
		c.Timing.PauseBetweenBlocks = 4.0
	}
	if c.Timing.BPM <= 0 {
		c.Timing.BPM = constants.DefaultTempoBPM
	}
	if c.Sound.Velocity == 0 {
		c.Sound.Velocity = constants.DefaultVelocity
	}
}

// Unit resolves the sequence unit in beats: an explicit unit_length
// wins, then an ABC-style L ratio like "1/4", then one beat.
func (s *Sequences) Unit() (float64, error) {
	if s == nil {
		return constants.DefaultUnitLength, nil
	}
	if s.UnitLength > 0 {
		return s.UnitLength, nil
	}
	if s.L != "" {
		v, err := parseRatio(s.L)
		if err != nil {
			return 0, err
		}
		if v <= 0 {
			return 0, errors.Errorf("unit length '%s' must be positive", s.L)
		}
		return v, nil
	}
	return constants.DefaultUnitLength, nil
}

// BeatsPerMeasure parses the numerator out of a signature like "3/4".
func (s *Sequences) BeatsPerMeasure() (int, error) {
	if s == nil || s.Signature == "" {
		return constants.DefaultBeatsPerMeasure, nil
	}
	parts := strings.SplitN(s.Signature, "/", 2)
	n, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || n <= 0 {
		return 0, errors.Errorf("invalid time signature '%s'", s.Signature)
	}
	return n, nil
}

func parseRatio(s string) (float64, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, errors.Errorf("invalid ratio '%s'", s)
	}
	if len(parts) == 1 {
		return num, nil
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0, errors.Errorf("invalid ratio '%s'", s)
	}
	return num / den, nil
}
