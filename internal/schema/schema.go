// Package schema declares the namelist.wps fields as data: each field
// carries its key, prompt text, value kind, default, and whether it takes
// one value per domain. Section flow reads these tables instead of baking
// field knowledge into control flow.
package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind is the value type of a field.
type Kind int

const (
	Text Kind = iota
	Int
	PositiveInt
	Float
	Date
	Option
	List
)

// DateFormat is the WPS timestamp layout (YYYY-MM-DD_HH:MM:SS).
const DateFormat = "2006-01-02_15:04:05"

// Field is one namelist entry definition. Definitions are immutable; the
// collected value lives in the namelist section, never here.
type Field struct {
	Key       string
	Prompt    string
	Help      string
	Kind      Kind
	Options   []string // canonical casing, Option kind only
	PerDomain bool
	Default   string
}

// Validate checks raw input against the field kind and returns the value to
// store. Option input matches case-insensitively and comes back in the
// canonical casing from the definition.
func (f Field) Validate(input string) (string, error) {
	switch f.Kind {
	case Int:
		if _, err := strconv.Atoi(input); err != nil {
			return "", fmt.Errorf("value must be an integer")
		}
		return input, nil

	case PositiveInt:
		n, err := strconv.Atoi(input)
		if err != nil {
			return "", fmt.Errorf("value must be an integer")
		}
		if n <= 0 {
			return "", fmt.Errorf("value must be a positive integer")
		}
		return input, nil

	case Float:
		if _, err := strconv.ParseFloat(input, 64); err != nil {
			return "", fmt.Errorf("value must be a number")
		}
		return input, nil

	case Date:
		if _, err := time.Parse(DateFormat, input); err != nil {
			return "", fmt.Errorf("date must be in format YYYY-MM-DD_HH:MM:SS")
		}
		return input, nil

	case Option:
		for _, opt := range f.Options {
			if strings.EqualFold(opt, input) {
				return opt, nil
			}
		}
		return "", fmt.Errorf("value must be one of: %s", strings.Join(f.Options, ", "))

	case List:
		if len(SplitList(input)) == 0 {
			return "", fmt.Errorf("enter at least one item, separated by commas")
		}
		return input, nil

	default:
		return input, nil
	}
}

// SplitList breaks a List value into trimmed items.
func SplitList(input string) []string {
	var items []string
	for _, item := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// IntOptions builds the canonical option set "lo".."hi" for numeric choices.
func IntOptions(lo, hi int) []string {
	var opts []string
	for i := lo; i <= hi; i++ {
		opts = append(opts, strconv.Itoa(i))
	}
	return opts
}

// ShareFields returns the &share section definitions. Date defaults are
// derived from now: runs start immediately and end a day later.
func ShareFields(now time.Time) []Field {
	return []Field{
		{
			Key:     "wrf_core",
			Prompt:  "WRF core (ARW/NMM) - Advanced Research WRF or Non-hydrostatic Mesoscale Model",
			Kind:    Option,
			Options: []string{"ARW", "NMM"},
			Default: "ARW",
		},
		{
			Key:     "max_dom",
			Prompt:  "Maximum number of domains (1 for single domain, >1 for nested domains)",
			Kind:    PositiveInt,
			Default: "1",
		},
		{
			Key:       "start_date",
			Prompt:    "start date",
			Kind:      Date,
			PerDomain: true,
			Default:   now.Format(DateFormat),
		},
		{
			Key:       "end_date",
			Prompt:    "end date",
			Kind:      Date,
			PerDomain: true,
			Default:   now.Add(24 * time.Hour).Format(DateFormat),
		},
		{
			Key:     "interval_seconds",
			Prompt:  "Interval between input meteorological files (seconds)",
			Kind:    PositiveInt,
			Default: "21600",
		},
		{
			Key:     "io_form_geogrid",
			Prompt:  "I/O format for geogrid (1=binary, 2=netCDF, 3=GRIB1)",
			Kind:    Option,
			Options: []string{"1", "2", "3"},
			Default: "2",
		},
		{
			Key:     "debug_level",
			Prompt:  "Debug level (0-1000, higher = more debug output)",
			Kind:    Int,
			Default: "0",
		},
	}
}

// GeogridFields returns the &geogrid section definitions in output order.
// geogDataPath seeds the geog_data_path default from tool settings.
func GeogridFields(geogDataPath string) []Field {
	return []Field{
		{
			Key:       "parent_id",
			Prompt:    "parent ID",
			Kind:      PositiveInt,
			PerDomain: true,
			Default:   "1",
		},
		{
			Key:       "parent_grid_ratio",
			Prompt:    "parent grid ratio (typically 3 or 5)",
			Kind:      PositiveInt,
			PerDomain: true,
			Default:   "1",
		},
		{
			Key:       "i_parent_start",
			Prompt:    "i_parent_start (west-east position in parent)",
			Kind:      PositiveInt,
			PerDomain: true,
			Default:   "1",
		},
		{
			Key:       "j_parent_start",
			Prompt:    "j_parent_start (south-north position in parent)",
			Kind:      PositiveInt,
			PerDomain: true,
			Default:   "1",
		},
		{
			Key:       "e_we",
			Prompt:    "West-east dimension (grid points)",
			Kind:      PositiveInt,
			PerDomain: true,
			Default:   "100",
		},
		{
			Key:       "e_sn",
			Prompt:    "South-north dimension (grid points)",
			Kind:      PositiveInt,
			PerDomain: true,
			Default:   "100",
		},
		{
			Key:       "geog_data_res",
			Prompt:    "geographical data resolution",
			Kind:      Text,
			PerDomain: true,
			Default:   "default",
		},
		{
			Key:     "dx",
			Prompt:  "Grid spacing in x-direction for coarse domain (meters)",
			Kind:    Float,
			Default: "30000",
		},
		{
			Key:     "dy",
			Prompt:  "Grid spacing in y-direction for coarse domain (meters)",
			Kind:    Float,
			Default: "30000",
		},
		{
			Key:     "map_proj",
			Prompt:  "Map projection (lambert/mercator/polar/lat-lon)",
			Kind:    Option,
			Options: []string{"lambert", "mercator", "polar", "lat-lon"},
			Default: "lambert",
		},
		{
			Key:     "ref_lat",
			Prompt:  "Reference latitude (degrees) - center of coarse domain",
			Kind:    Float,
			Default: "34.0",
		},
		{
			Key:     "ref_lon",
			Prompt:  "Reference longitude (degrees) - center of coarse domain",
			Kind:    Float,
			Default: "-81.0",
		},
		{
			Key:     "truelat1",
			Prompt:  "True latitude 1 (degrees)",
			Kind:    Float,
			Default: "30.0",
		},
		{
			Key:     "truelat2",
			Prompt:  "True latitude 2 (degrees)",
			Kind:    Float,
			Default: "60.0",
		},
		{
			Key:     "stand_lon",
			Prompt:  "Standard longitude (degrees) - usually same as ref_lon",
			Kind:    Float,
			Default: "-81.0",
		},
		{
			Key:     "geog_data_path",
			Prompt:  "Path to geographic data directory",
			Kind:    Text,
			Default: geogDataPath,
		},
	}
}

// UngribFields returns the &ungrib section definitions.
func UngribFields() []Field {
	return []Field{
		{
			Key:     "out_format",
			Prompt:  "Output format (WPS/SI/MM5/WRF)",
			Kind:    Option,
			Options: []string{"WPS", "SI", "MM5", "WRF"},
			Default: "WPS",
		},
		{
			Key:     "prefix",
			Prompt:  "Prefix for intermediate files (used as input to metgrid)",
			Kind:    Text,
			Default: "FILE",
		},
	}
}

// MetgridFields returns the &metgrid section definitions.
func MetgridFields() []Field {
	return []Field{
		{
			Key:     "fg_name",
			Prompt:  "File name prefix for ungribbed data (separate multiple with commas)",
			Kind:    List,
			Default: "FILE",
		},
		{
			Key:     "io_form_metgrid",
			Prompt:  "I/O format for metgrid (1=binary, 2=netCDF, 3=GRIB1)",
			Kind:    Option,
			Options: []string{"1", "2", "3"},
			Default: "2",
		},
	}
}

// FieldByKey finds a definition in a section table.
func FieldByKey(fields []Field, key string) (Field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
