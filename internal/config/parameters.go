package config

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/wildstyl3r/finasym/internal/sweep"
	"github.com/wildstyl3r/finasym/internal/utils"
)

type Config struct {
	OutputDir string
	Renderer  string // gonum | gochart
	Format    string // image extension
	MakeDir   bool
	Plots     map[string]PlotParameters
	PlotParameters

	InputUnits  []string
	OutputUnits []string
}

type PlotParameters struct {
	NBins    int
	SemiSpan float64   // [input angle unit]
	Mode     string    // theta | energy
	Alphas   []float64 // [input angle unit]
	Measured string    // two-column file drawn over the curves
	Title    string
	Width    int // [px]
	Height   int // [px]

	_outputUnits []string
	_verbose     bool
}

func (p *PlotParameters) OutputUnits() []string {
	return p._outputUnits
}

func (p *PlotParameters) SetOutputUnits(u []string) {
	p._outputUnits = u
}

func (p *PlotParameters) Verbose() bool {
	return p._verbose
}

func (p *PlotParameters) SetVerbosity(verbose bool) {
	p._verbose = verbose
}

var defaultValues = map[string]any{ // in base units
	"NBins":    45,
	"SemiSpan": 2.,
	"Mode":     string(sweep.ModeTheta),
	"Alphas":   slices.Clone(sweep.DefaultAlphas),
}

var defaultGlobals = map[string]string{
	"OutputDir": "Plots",
	"Renderer":  "gonum",
	"Format":    "pdf",
}

var valueUnits = map[string][]UnitElement{
	"SemiSpan": {
		{Class: Angle, Power: 1},
	},
	"Alphas": {
		{Class: Angle, Power: 1},
	},
}

func LoadConfig(configFileName string) (Config, toml.MetaData, error) {
	var config Config
	meta, err := toml.DecodeFile(configFileName, &config)
	if err != nil {
		return config, meta, fmt.Errorf("unable to load config: %w", err)
	}
	return config, meta, config.normalize(&meta)
}

func DecodeConfig(data string) (Config, toml.MetaData, error) {
	var config Config
	meta, err := toml.Decode(data, &config)
	if err != nil {
		return config, meta, fmt.Errorf("unable to load config: %w", err)
	}
	return config, meta, config.normalize(&meta)
}

func (c *Config) normalize(meta *toml.MetaData) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config keys: %v", undecoded)
	}
	if len(c.Plots) == 0 {
		return fmt.Errorf("no plots provided")
	}

	var unitsConflict []string
	c.InputUnits, unitsConflict = checkUnits(c.InputUnits)
	if len(unitsConflict) > 0 {
		return fmt.Errorf("found input unit conflict: %v", unitsConflict)
	}
	if len(c.OutputUnits) == 0 {
		c.OutputUnits = c.InputUnits
	}
	c.OutputUnits, unitsConflict = checkUnits(c.OutputUnits)
	if len(unitsConflict) > 0 {
		return fmt.Errorf("found output unit conflict: %v", unitsConflict)
	}

	configReflect := reflect.ValueOf(c).Elem()
	for field, value := range defaultGlobals {
		if !meta.IsDefined(field) {
			configReflect.FieldByName(field).SetString(value)
		}
	}
	return nil
}

// Single is the configuration of one plot given directly in base units.
func Single(plotName string, p PlotParameters) Config {
	c := Config{
		Plots:       map[string]PlotParameters{plotName: p},
		InputUnits:  slices.Clone(defaultUnits),
		OutputUnits: slices.Clone(defaultUnits),
	}
	configReflect := reflect.ValueOf(&c).Elem()
	for field, value := range defaultGlobals {
		configReflect.FieldByName(field).SetString(value)
	}
	return c
}

// PlotNames lists the configured plots in natural order.
func (c *Config) PlotNames() []string {
	names := make([]string, 0, len(c.Plots))
	for name := range c.Plots {
		names = append(names, name)
	}
	utils.SortNatural(names)
	return names
}

/*
field value priority:
1. plot table
2. global
3. default
angles are converted to degrees once the value is chosen
*/

func (c *Config) Unify(plotName string, meta *toml.MetaData) (PlotParameters, error) {
	plot, some := c.Plots[plotName]
	if !some {
		return plot, fmt.Errorf("plot %q not found", plotName)
	}
	plotReflect := reflect.ValueOf(&plot).Elem()
	globalReflect := reflect.ValueOf(&c.PlotParameters).Elem()
	plotType := plotReflect.Type()

	var converted []string
	for i := range plotType.NumField() {
		field := plotType.Field(i)
		if !field.IsExported() {
			continue
		}
		switch {
		case meta.IsDefined("Plots", plotName, field.Name):
		case meta.IsDefined(field.Name):
			plotReflect.Field(i).Set(globalReflect.Field(i))
		default:
			if value, some := defaultValues[field.Name]; some {
				if list, isList := value.([]float64); isList {
					value = slices.Clone(list)
				}
				plotReflect.Field(i).Set(reflect.ValueOf(value))
			}
			continue
		}
		converted = append(converted, field.Name)
	}
	plot.toBase(converted, c.InputUnits)
	plot.SetOutputUnits(c.OutputUnits)
	return plot, nil
}

func (p *PlotParameters) toBase(parameterNames, units []string) {
	plotReflect := reflect.ValueOf(p).Elem()
	for _, name := range parameterNames {
		classes, some := valueUnits[name]
		if !some {
			continue
		}
		field := plotReflect.FieldByName(name)
		switch {
		case field.CanFloat():
			field.SetFloat(ToBase(field.Float(), classes, units, true))
		case field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.Float64:
			values := make([]float64, field.Len())
			for i := range values {
				values[i] = ToBase(field.Index(i).Float(), classes, units, true)
			}
			field.Set(reflect.ValueOf(values))
		}
	}
}

// Sweep validates the unified parameters and turns them into a sweep request.
func (p *PlotParameters) Sweep() (sweep.Parameters, error) {
	mode, err := sweep.ParseMode(p.Mode)
	if err != nil {
		return sweep.Parameters{}, err
	}
	params := sweep.Parameters{
		NBins:    p.NBins,
		SemiSpan: p.SemiSpan,
		Mode:     mode,
		Alphas:   p.Alphas,
	}
	return params, params.Validate()
}
