package wizard

import (
	"strconv"
	"strings"

	"wpswizard-cli/internal/namelist"
)

// review renders the collected configuration for a final check and asks for
// confirmation. Purely presentational; declining aborts the session.
func (s *Session) review(doc *namelist.Document, maxDom int) (bool, error) {
	share, _ := doc.Lookup("share")
	geogrid, _ := doc.Lookup("geogrid")
	ungrib, _ := doc.Lookup("ungrib")
	metgrid, _ := doc.Lookup("metgrid")

	s.prompter.Say("")
	s.prompter.Say("=== Review Configuration ===")

	s.prompter.Say("")
	s.prompter.Say("Share section:")
	s.prompter.Say("  WRF Core: %s", first(share, "wrf_core"))
	s.prompter.Say("  Number of domains: %d", maxDom)
	s.prompter.Say("  Start date: %s (domain 1)", first(share, "start_date"))
	s.prompter.Say("  End date: %s (domain 1)", first(share, "end_date"))
	s.prompter.Say("  Interval between met. data: %s seconds", first(share, "interval_seconds"))

	s.prompter.Say("")
	s.prompter.Say("Geogrid section:")
	s.prompter.Say("  Map projection: %s", first(geogrid, "map_proj"))
	s.prompter.Say("  Reference point: (%s, %s)", first(geogrid, "ref_lat"), first(geogrid, "ref_lon"))
	s.prompter.Say("  Grid spacing: %s x %s meters (domain 1)", first(geogrid, "dx"), first(geogrid, "dy"))

	spacingX := domainSpacings(geogrid, "dx", maxDom)
	spacingY := domainSpacings(geogrid, "dy", maxDom)

	for i := 0; i < maxDom; i++ {
		s.prompter.Say("")
		s.prompter.Say("  Domain %d configuration:", i+1)
		s.prompter.Say("    Grid dimensions: %s x %s points", at(geogrid, "e_we", i), at(geogrid, "e_sn", i))

		if i > 0 {
			s.prompter.Say("    Parent: Domain %s", at(geogrid, "parent_id", i))
			s.prompter.Say("    Refinement ratio: %s:1", at(geogrid, "parent_grid_ratio", i))
			s.prompter.Say("    Starting position in parent: (%s, %s)",
				at(geogrid, "i_parent_start", i), at(geogrid, "j_parent_start", i))
			s.prompter.Say("    Grid spacing: %.1f x %.1f meters", spacingX[i], spacingY[i])
		}

		s.prompter.Say("    Geographic data resolution: %s", at(geogrid, "geog_data_res", i))
	}

	s.prompter.Say("")
	s.prompter.Say("Ungrib section:")
	s.prompter.Say("  Output format: %s", first(ungrib, "out_format"))
	s.prompter.Say("  File prefix: %s", first(ungrib, "prefix"))

	s.prompter.Say("")
	s.prompter.Say("Metgrid section:")
	fgNames, _ := metgrid.Get("fg_name")
	s.prompter.Say("  Input file prefixes: %s", strings.Join(fgNames, ", "))
	s.prompter.Say("  I/O format: %s", first(metgrid, "io_form_metgrid"))

	s.prompter.Say("")
	return s.prompter.Confirm("Is this configuration correct?", true)
}

// domainSpacings derives each domain's effective grid spacing by dividing
// the parent's spacing by the domain's refinement ratio.
func domainSpacings(geogrid *namelist.Section, key string, maxDom int) []float64 {
	spacings := make([]float64, maxDom)
	coarse, _ := strconv.ParseFloat(first(geogrid, key), 64)
	spacings[0] = coarse

	for i := 1; i < maxDom; i++ {
		parent, err := strconv.Atoi(at(geogrid, "parent_id", i))
		if err != nil || parent < 1 || parent > i {
			parent = i
		}
		ratio, err := strconv.Atoi(at(geogrid, "parent_grid_ratio", i))
		if err != nil || ratio < 1 {
			ratio = 1
		}
		spacings[i] = spacings[parent-1] / float64(ratio)
	}

	return spacings
}

func first(sec *namelist.Section, key string) string {
	v, _ := sec.First(key)
	return v
}

func at(sec *namelist.Section, key string, i int) string {
	vals, ok := sec.Get(key)
	if !ok || i >= len(vals) {
		return ""
	}
	return vals[i]
}
