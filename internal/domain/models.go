package domain

import (
	"errors"
	"fmt"
	"time"
)

// Config представляет конфигурацию прогона
type Config struct {
	InstancesRoot  string        `yaml:"instances_root"`
	SolutionsRoot  string        `yaml:"solutions_root"`
	TunedBinary    string        `yaml:"tuned_binary"`
	PlainBinary    string        `yaml:"plain_binary"`
	TunedDir       string        `yaml:"tuned_dir"`
	PlainDir       string        `yaml:"plain_dir"`
	RuntimeFactor  string        `yaml:"runtime_factor"`
	Repetitions    int           `yaml:"repetitions"`
	Workers        int           `yaml:"workers"`
	Variants       []Variant     `yaml:"variants"`
	Axes           Axes          `yaml:"axes"`
	RegistryFile   string        `yaml:"registry_file"`
	LaunchInterval time.Duration `yaml:"launch_interval"`
	Prebuild       [][]string    `yaml:"prebuild"`
	PlanFile       string        `yaml:"plan_file"`
	DryRun         bool          `yaml:"dry_run"`
	Manifest       *bool         `yaml:"manifest"`
	LogLevel       string        `yaml:"log_level"`
	LogFile        string        `yaml:"log_file"`
}

// WriteManifest reports whether the run manifest should be written. Unset means yes.
func (c *Config) WriteManifest() bool {
	return c.Manifest == nil || *c.Manifest
}

// DefaultWorkers leaves two cores to the controlling process and the OS.
func DefaultWorkers(cores int) int {
	return max(1, cores-2)
}

// Axes are the five enumerated dimensions of the experiment grid, outer to inner.
type Axes struct {
	Families      []string `yaml:"families"`
	ItemsPerCity  []int    `yaml:"items_per_city"`
	KnapsackTypes []string `yaml:"knapsack_types"`
	KnapsackSizes []int    `yaml:"knapsack_sizes"`
	MaxTravelTime []int    `yaml:"max_travel_time"`
}

// DefaultAxes returns the published sweep axes.
func DefaultAxes() Axes {
	return Axes{
		Families:      []string{"eil51", "pr107", "a280", "dsj1000"},
		ItemsPerCity:  []int{1, 3, 5, 10},
		KnapsackTypes: []string{"bsc", "unc", "usw"},
		KnapsackSizes: []int{1, 5, 10},
		MaxTravelTime: []int{1, 2, 3},
	}
}

// Lens returns the cardinality of every axis in enumeration order.
func (a Axes) Lens() []int {
	return []int{
		len(a.Families),
		len(a.ItemsPerCity),
		len(a.KnapsackTypes),
		len(a.KnapsackSizes),
		len(a.MaxTravelTime),
	}
}

// Size is the number of grid coordinates.
func (a Axes) Size() int {
	n := 1
	for _, l := range a.Lens() {
		n *= l
	}
	return n
}

// Coordinate maps per-axis indices (as produced by a Cartesian enumeration) to a coordinate.
func (a Axes) Coordinate(idx []int) GridCoordinate {
	return GridCoordinate{
		Family:        a.Families[idx[0]],
		ItemsPerCity:  a.ItemsPerCity[idx[1]],
		KnapsackType:  a.KnapsackTypes[idx[2]],
		KnapsackSize:  a.KnapsackSizes[idx[3]],
		MaxTravelTime: a.MaxTravelTime[idx[4]],
	}
}

// Validate checks that every axis is non-empty and free of duplicates.
func (a Axes) Validate() error {
	if a.Size() == 0 {
		return fmt.Errorf("%w: every grid axis needs at least one value", ErrInvalidConfig)
	}
	if err := uniqueStrings("families", a.Families); err != nil {
		return err
	}
	if err := uniqueInts("items_per_city", a.ItemsPerCity); err != nil {
		return err
	}
	if err := uniqueStrings("knapsack_types", a.KnapsackTypes); err != nil {
		return err
	}
	if err := uniqueInts("knapsack_sizes", a.KnapsackSizes); err != nil {
		return err
	}
	return uniqueInts("max_travel_time", a.MaxTravelTime)
}

func uniqueStrings(axis string, vals []string) error {
	seen := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			return fmt.Errorf("%w: duplicate value %q on axis %s", ErrInvalidConfig, v, axis)
		}
		seen[v] = struct{}{}
	}
	return nil
}

func uniqueInts(axis string, vals []int) error {
	seen := make(map[int]struct{}, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			return fmt.Errorf("%w: duplicate value %d on axis %s", ErrInvalidConfig, v, axis)
		}
		if v < 0 || v > 99 {
			// поля имён файлов двузначные
			return fmt.Errorf("%w: value %d on axis %s does not fit two digits", ErrInvalidConfig, v, axis)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// GridCoordinate is one point of the instance grid.
type GridCoordinate struct {
	Family        string
	ItemsPerCity  int
	KnapsackType  string
	KnapsackSize  int
	MaxTravelTime int
}

// Variant selects between the tuned per-instance configuration and the shared fallback.
type Variant int

const (
	VariantTuned Variant = iota
	VariantGeneral
)

func (v Variant) String() string {
	switch v {
	case VariantTuned:
		return "tuned"
	case VariantGeneral:
		return "general"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Tuned reports whether the variant uses the per-instance registry entry.
func (v Variant) Tuned() bool { return v == VariantTuned }

// ParseVariant parses "tuned" or "general".
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "tuned":
		return VariantTuned, nil
	case "general":
		return VariantGeneral, nil
	}
	return 0, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, s)
}

func (v Variant) MarshalYAML() (any, error) {
	return v.String(), nil
}

func (v *Variant) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseVariant(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// DefaultVariants is the canonical two-pass order: every tuned job first, then every general job.
func DefaultVariants() []Variant {
	return []Variant{VariantTuned, VariantGeneral}
}

// Param is a single solver flag and its value.
type Param struct {
	Flag  string `yaml:"flag"`
	Value string `yaml:"value"`
}

// ParameterConfiguration is an ordered flag/value list handed to the solver verbatim.
type ParameterConfiguration []Param

// Args flattens the configuration into "flag value" pairs.
func (p ParameterConfiguration) Args() []string {
	args := make([]string, 0, 2*len(p))
	for _, kv := range p {
		args = append(args, kv.Flag, kv.Value)
	}
	return args
}

// RegistryKey identifies a tuned parameter configuration.
type RegistryKey struct {
	Family       string
	ItemsPerCity int
	KnapsackType string
}

func (k RegistryKey) String() string {
	return fmt.Sprintf("%s_%02d_%s", k.Family, k.ItemsPerCity, k.KnapsackType)
}

// Job is the unit of dispatch. Coordinate, Repetition and Variant identify it;
// the remaining fields are derived from them and never change.
type Job struct {
	Coordinate GridCoordinate
	Repetition int
	Variant    Variant

	InputPath  string
	OutputPath string
	Seed       int
	TimeBudget float64
	Params     ParameterConfiguration
}

var (
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrMissingConfiguration = errors.New("missing parameter configuration")
	ErrNoSizeToken          = errors.New("instance family has no size digits")
	ErrRepetitionOutOfRange = errors.New("repetition out of seed table range")
	ErrDuplicateSeed        = errors.New("duplicate seed")
	ErrSpawn                = errors.New("unable to spawn solver")
)
