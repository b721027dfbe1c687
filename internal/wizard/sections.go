package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"wpswizard-cli/internal/namelist"
	"wpswizard-cli/internal/nesting"
	"wpswizard-cli/internal/schema"
)

// collectShare runs the &share prompts and returns the finalized section
// and the domain count that shapes the rest of the session.
func (s *Session) collectShare(seed *namelist.Document) (*namelist.Section, int, error) {
	fields := schema.ShareFields(s.now)
	get := func(key string) schema.Field {
		f, _ := schema.FieldByKey(fields, key)
		return f
	}
	askScalar := func(key string) (string, error) {
		f := get(key)
		return s.prompter.Ask(f, seedOr(seed, "share", f, f.Default))
	}

	s.prompter.Say("")
	s.prompter.Say("=== Share Section Configuration ===")
	s.prompter.Say("This section contains general settings for the WRF domain.")
	s.prompter.Say("")

	core, err := askScalar("wrf_core")
	if err != nil {
		return nil, 0, err
	}

	maxDom, err := s.prompter.AskInt(get("max_dom"), seedAtInt(seed, "share", get("max_dom"), 0, 1))
	if err != nil {
		return nil, 0, err
	}

	startDates, err := s.collectDates(seed, get("start_date"), maxDom,
		"Enter start date for each domain (YYYY-MM-DD_HH:MM:SS):")
	if err != nil {
		return nil, 0, err
	}

	endDates, err := s.collectDates(seed, get("end_date"), maxDom,
		"Enter end date for each domain (YYYY-MM-DD_HH:MM:SS):")
	if err != nil {
		return nil, 0, err
	}

	interval, err := askScalar("interval_seconds")
	if err != nil {
		return nil, 0, err
	}

	ioForm, err := askScalar("io_form_geogrid")
	if err != nil {
		return nil, 0, err
	}

	debug, err := askScalar("debug_level")
	if err != nil {
		return nil, 0, err
	}

	sec := namelist.NewSection("share")
	sec.Set("wrf_core", core)
	sec.Set("max_dom", strconv.Itoa(maxDom))
	sec.Set("start_date", startDates...)
	sec.Set("end_date", endDates...)
	sec.Set("interval_seconds", interval)
	sec.Set("io_form_geogrid", ioForm)
	sec.Set("debug_level", debug)

	return sec, maxDom, nil
}

// collectDates prompts for one date per domain. Seeded lists shorter than
// the domain count repeat their first entry, matching how an existing
// single-domain namelist seeds a nested run.
func (s *Session) collectDates(seed *namelist.Document, field schema.Field, maxDom int, header string) ([]string, error) {
	s.prompter.Say("")
	s.prompter.Say(header)

	dates := make([]string, maxDom)
	for i := 0; i < maxDom; i++ {
		def := seedOrAt(seed, "share", field, i, "")
		if def == "" {
			def = seedOr(seed, "share", field, field.Default)
		}

		label := fmt.Sprintf("  Domain %d %s", i+1, field.Prompt)
		value, err := s.prompter.AskLabeled(label, field, def)
		if err != nil {
			return nil, err
		}
		dates[i] = value
	}

	return dates, nil
}

// collectGeogrid runs the &geogrid prompts: projection and coarse-grid
// geometry first, then nesting layout with advisor-suggested defaults.
func (s *Session) collectGeogrid(seed *namelist.Document, maxDom int) (*namelist.Section, error) {
	fields := schema.GeogridFields(s.cfg.GeogDataPath)
	get := func(key string) schema.Field {
		f, _ := schema.FieldByKey(fields, key)
		return f
	}
	askScalar := func(key string) (string, error) {
		f := get(key)
		return s.prompter.Ask(f, seedOr(seed, "geogrid", f, f.Default))
	}

	s.prompter.Say("")
	s.prompter.Say("=== Geogrid Section Configuration ===")
	s.prompter.Say("This section defines the model domains and geographical data.")
	s.prompter.Say("")

	mapProj, err := askScalar("map_proj")
	if err != nil {
		return nil, err
	}

	dx, err := askScalar("dx")
	if err != nil {
		return nil, err
	}
	dy, err := askScalar("dy")
	if err != nil {
		return nil, err
	}
	refLat, err := askScalar("ref_lat")
	if err != nil {
		return nil, err
	}
	refLon, err := askScalar("ref_lon")
	if err != nil {
		return nil, err
	}

	truelat1, truelat2, err := s.collectTrueLatitudes(seed, mapProj, get("truelat1"), get("truelat2"))
	if err != nil {
		return nil, err
	}

	standLon, err := askScalar("stand_lon")
	if err != nil {
		return nil, err
	}

	parentIDs, ratios, err := s.collectNestingTopology(seed, maxDom, get("parent_id"), get("parent_grid_ratio"))
	if err != nil {
		return nil, err
	}

	eWE, eSN, err := s.collectDimensions(seed, maxDom, parentIDs, get("e_we"), get("e_sn"))
	if err != nil {
		return nil, err
	}

	iStart, jStart, err := s.collectStartPositions(maxDom, parentIDs, ratios, eWE, eSN,
		get("i_parent_start"), get("j_parent_start"))
	if err != nil {
		return nil, err
	}

	res, err := s.collectDataResolutions(seed, maxDom, get("geog_data_res"))
	if err != nil {
		return nil, err
	}

	geogPath, err := askScalar("geog_data_path")
	if err != nil {
		return nil, err
	}

	sec := namelist.NewSection("geogrid")
	sec.Set("parent_id", itoas(parentIDs)...)
	sec.Set("parent_grid_ratio", itoas(ratios)...)
	sec.Set("i_parent_start", itoas(iStart)...)
	sec.Set("j_parent_start", itoas(jStart)...)
	sec.Set("e_we", itoas(eWE)...)
	sec.Set("e_sn", itoas(eSN)...)
	sec.Set("geog_data_res", res...)
	sec.Set("dx", dx)
	sec.Set("dy", dy)
	sec.Set("map_proj", mapProj)
	sec.Set("ref_lat", refLat)
	sec.Set("ref_lon", refLon)
	sec.Set("truelat1", truelat1)
	sec.Set("truelat2", truelat2)
	sec.Set("stand_lon", standLon)
	sec.Set("geog_data_path", geogPath)

	return sec, nil
}

// collectTrueLatitudes prompts for the true latitudes the chosen projection
// needs; the rest keep their defaults so every key is still written.
func (s *Session) collectTrueLatitudes(seed *namelist.Document, mapProj string, f1, f2 schema.Field) (string, string, error) {
	truelat1 := seedOr(seed, "geogrid", f1, f1.Default)
	truelat2 := seedOr(seed, "geogrid", f2, f2.Default)
	var err error

	switch mapProj {
	case "lambert":
		s.prompter.Say("")
		s.prompter.Say("Lambert projection requires true latitudes:")
		truelat1, err = s.prompter.AskLabeled("  True latitude 1 (degrees)", f1, truelat1)
		if err != nil {
			return "", "", err
		}
		truelat2, err = s.prompter.AskLabeled("  True latitude 2 (degrees)", f2, truelat2)
		if err != nil {
			return "", "", err
		}

	case "mercator":
		truelat1, err = s.prompter.AskLabeled("True latitude (degrees)", f1,
			seedOr(seed, "geogrid", f1, "0.0"))
		if err != nil {
			return "", "", err
		}

	case "polar":
		truelat1, err = s.prompter.AskLabeled("True latitude (degrees)", f1,
			seedOr(seed, "geogrid", f1, "90.0"))
		if err != nil {
			return "", "", err
		}
	}

	return truelat1, truelat2, nil
}

// collectNestingTopology fixes domain 1 to parent_id=1, ratio=1 and prompts
// for the rest. Parent IDs are restricted to already-configured domains.
func (s *Session) collectNestingTopology(seed *namelist.Document, maxDom int, parentField, ratioField schema.Field) ([]int, []int, error) {
	parentIDs := make([]int, maxDom)
	ratios := make([]int, maxDom)
	parentIDs[0], ratios[0] = 1, 1

	if maxDom == 1 {
		return parentIDs, ratios, nil
	}

	s.prompter.Say("")
	s.prompter.Say("Setting up domain nesting:")

	for i := 1; i < maxDom; i++ {
		choice := parentField
		choice.Kind = schema.Option
		choice.Options = schema.IntOptions(1, i)

		// Validating through the option set rejects seeded parent IDs
		// that point at a not-yet-configured domain.
		def := strconv.Itoa(seedAtInt(seed, "geogrid", choice, i, i))
		label := fmt.Sprintf("  Domain %d parent ID (usually %d)", i+1, i)
		value, err := s.prompter.AskLabeled(label, choice, def)
		if err != nil {
			return nil, nil, err
		}
		parentIDs[i], _ = strconv.Atoi(value)
	}

	for i := 1; i < maxDom; i++ {
		def := seedAtInt(seed, "geogrid", ratioField, i, 3)
		label := fmt.Sprintf("  Domain %d parent grid ratio (typically 3 or 5)", i+1)
		ratio, err := s.prompter.AskLabeledInt(label, ratioField, def)
		if err != nil {
			return nil, nil, err
		}
		ratios[i] = ratio
	}

	return parentIDs, ratios, nil
}

// collectDimensions prompts for grid dimensions per domain, suggesting
// roughly a third of the parent (bumped to odd) for nested domains.
func (s *Session) collectDimensions(seed *namelist.Document, maxDom int, parentIDs []int, weField, snField schema.Field) ([]int, []int, error) {
	eWE := make([]int, maxDom)
	eSN := make([]int, maxDom)

	s.prompter.Say("")
	s.prompter.Say("Configuring domain dimensions:")

	for i := 0; i < maxDom; i++ {
		defWE := seedAtInt(seed, "geogrid", weField, i, 100)
		defSN := seedAtInt(seed, "geogrid", snField, i, 100)

		s.prompter.Say("")
		if i == 0 {
			s.prompter.Say("  Domain 1 (coarse domain) dimensions:")
		} else {
			parent := parentIDs[i] - 1
			suggestedWE := nesting.SuggestDimension(eWE[parent])
			suggestedSN := nesting.SuggestDimension(eSN[parent])

			s.prompter.Say("  Domain %d (nested domain) dimensions:", i+1)
			s.prompter.Say("    Parent domain dimensions: %d x %d", eWE[parent], eSN[parent])
			s.prompter.Say("    Suggested dimensions: %d x %d", suggestedWE, suggestedSN)

			if seedOrAt(seed, "geogrid", weField, i, "") == "" {
				defWE = suggestedWE
			}
			if seedOrAt(seed, "geogrid", snField, i, "") == "" {
				defSN = suggestedSN
			}
		}

		we, err := s.prompter.AskLabeledInt("    West-east dimension (grid points)", weField, defWE)
		if err != nil {
			return nil, nil, err
		}
		eWE[i] = we

		sn, err := s.prompter.AskLabeledInt("    South-north dimension (grid points)", snField, defSN)
		if err != nil {
			return nil, nil, err
		}
		eSN[i] = sn
	}

	return eWE, eSN, nil
}

// collectStartPositions prompts for each nested domain's position in its
// parent, defaulting to the advisor's centered placement and offering a
// clamp when the chosen position overflows the parent.
func (s *Session) collectStartPositions(maxDom int, parentIDs, ratios, eWE, eSN []int, iField, jField schema.Field) ([]int, []int, error) {
	iStart := make([]int, maxDom)
	jStart := make([]int, maxDom)
	iStart[0], jStart[0] = 1, 1

	if maxDom == 1 {
		return iStart, jStart, nil
	}

	s.prompter.Say("")
	s.prompter.Say("Setting starting positions of nested domains within parent domains:")

	for i := 1; i < maxDom; i++ {
		parent := parentIDs[i] - 1
		suggestedI := nesting.SuggestStart(eWE[parent], eWE[i], ratios[i])
		suggestedJ := nesting.SuggestStart(eSN[parent], eSN[i], ratios[i])

		s.prompter.Say("")
		s.prompter.Say("  Domain %d parent is Domain %d", i+1, parent+1)
		s.prompter.Say("  Parent dimensions: %d x %d", eWE[parent], eSN[parent])
		s.prompter.Say("  Nest dimensions: %d x %d", eWE[i], eSN[i])
		s.prompter.Say("  Suggested starting position: (%d, %d)", suggestedI, suggestedJ)

		si, err := s.prompter.AskLabeledInt("    i_parent_start (west-east position in parent)", iField, suggestedI)
		if err != nil {
			return nil, nil, err
		}
		iStart[i] = si

		sj, err := s.prompter.AskLabeledInt("    j_parent_start (south-north position in parent)", jField, suggestedJ)
		if err != nil {
			return nil, nil, err
		}
		jStart[i] = sj

		iEnd := nesting.End(iStart[i], eWE[i], ratios[i])
		jEnd := nesting.End(jStart[i], eSN[i], ratios[i])
		if iEnd > eWE[parent] || jEnd > eSN[parent] {
			s.prompter.Say("  WARNING: The nested domain extends beyond the parent domain boundaries.")
			s.prompter.Say("  Nested domain ends at (%d, %d) in parent coordinates.", iEnd, jEnd)
			s.prompter.Say("  Parent domain has dimensions %d x %d", eWE[parent], eSN[parent])

			adjust, err := s.prompter.Confirm("  Adjust the nested domain to fit?", true)
			if err != nil {
				return nil, nil, err
			}
			if adjust {
				if iEnd > eWE[parent] {
					iStart[i] = nesting.ClampToParent(eWE[parent], eWE[i], ratios[i])
				}
				if jEnd > eSN[parent] {
					jStart[i] = nesting.ClampToParent(eSN[parent], eSN[i], ratios[i])
				}
				s.prompter.Say("  Adjusted starting position to (%d, %d)", iStart[i], jStart[i])
			}
		}
	}

	return iStart, jStart, nil
}

// collectDataResolutions prompts for geog_data_res per domain with a
// resolution ladder as the unseeded suggestion.
func (s *Session) collectDataResolutions(seed *namelist.Document, maxDom int, field schema.Field) ([]string, error) {
	s.prompter.Say("")
	s.prompter.Say("Configuring geographical data resolution:")
	s.prompter.Say("(Options: 'default', 'modis_30s', 'modis_15s', 'usgs_30s', 'usgs_15s', 'usgs_5m', 'usgs_2m', etc.)")

	res := make([]string, maxDom)
	for i := 0; i < maxDom; i++ {
		def, ok := seedAt(seed, "geogrid", "geog_data_res", i)
		if !ok {
			if i == 0 {
				def = "modis_30s"
			} else {
				def = "modis_15s"
			}
		}

		label := fmt.Sprintf("  Domain %d geographical data resolution", i+1)
		value, err := s.prompter.AskLabeled(label, field, def)
		if err != nil {
			return nil, err
		}
		res[i] = value
	}

	return res, nil
}

// collectUngrib runs the &ungrib prompts.
func (s *Session) collectUngrib(seed *namelist.Document) (*namelist.Section, error) {
	fields := schema.UngribFields()
	get := func(key string) schema.Field {
		f, _ := schema.FieldByKey(fields, key)
		return f
	}

	s.prompter.Say("")
	s.prompter.Say("=== Ungrib Section Configuration ===")
	s.prompter.Say("This section configures how to extract meteorological data from GRIB files.")
	s.prompter.Say("")

	outField := get("out_format")
	outFormat, err := s.prompter.Ask(outField, seedOr(seed, "ungrib", outField, outField.Default))
	if err != nil {
		return nil, err
	}

	prefixField := get("prefix")
	prefix, err := s.prompter.Ask(prefixField, seedOr(seed, "ungrib", prefixField, prefixField.Default))
	if err != nil {
		return nil, err
	}

	sec := namelist.NewSection("ungrib")
	sec.Set("out_format", outFormat)
	sec.Set("prefix", prefix)

	return sec, nil
}

// collectMetgrid runs the &metgrid prompts.
func (s *Session) collectMetgrid(seed *namelist.Document) (*namelist.Section, error) {
	fields := schema.MetgridFields()
	get := func(key string) schema.Field {
		f, _ := schema.FieldByKey(fields, key)
		return f
	}

	s.prompter.Say("")
	s.prompter.Say("=== Metgrid Section Configuration ===")
	s.prompter.Say("This section configures how to interpolate meteorological data to the model grid.")
	s.prompter.Say("")

	fgDefault := get("fg_name").Default
	if sec, ok := seed.Lookup("metgrid"); ok {
		if vals, okVals := sec.Get("fg_name"); okVals {
			// Drop empty seed tokens; a default must still split into
			// at least one prefix.
			if items := schema.SplitList(strings.Join(vals, ", ")); len(items) > 0 {
				fgDefault = strings.Join(items, ", ")
			}
		}
	}

	fgRaw, err := s.prompter.Ask(get("fg_name"), fgDefault)
	if err != nil {
		return nil, err
	}
	fgNames := schema.SplitList(fgRaw)

	ioField := get("io_form_metgrid")
	ioForm, err := s.prompter.Ask(ioField, seedOr(seed, "metgrid", ioField, ioField.Default))
	if err != nil {
		return nil, err
	}

	sec := namelist.NewSection("metgrid")
	sec.Set("fg_name", fgNames...)
	sec.Set("io_form_metgrid", ioForm)

	return sec, nil
}
