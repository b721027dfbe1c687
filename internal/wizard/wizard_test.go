package wizard

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wpswizard-cli/internal/interactive"
	"wpswizard-cli/internal/interfaces"
	"wpswizard-cli/internal/namelist"
	"wpswizard-cli/pkg/models"
)

func testConfig(dir string) *interfaces.Config {
	return &interfaces.Config{
		OutputFile:   filepath.Join(dir, "namelist.wps"),
		ExistingFile: filepath.Join(dir, "no-such-namelist.wps"),
		GeogDataPath: "/path/to/geog",
		QuitWord:     "q",
		Target:       "file",
		DateFormat:   "YYYY-MM-DD_HH:MM:SS",
	}
}

func scriptedSession(cfg *interfaces.Config, lines ...string) (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	input := strings.Join(lines, "\n") + "\n"
	prompter := interactive.New(strings.NewReader(input), &out)
	prompter.SetQuitWord(cfg.QuitWord)

	session := NewSession(prompter, cfg)
	session.SetClock(time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC))
	return session, &out
}

// fakeOutput records emitted documents without touching the filesystem.
type fakeOutput struct {
	fileDoc      *namelist.Document
	filePath     string
	stdoutDoc    *namelist.Document
	clipboardDoc *namelist.Document
}

func (f *fakeOutput) WriteToFile(doc *namelist.Document, path string) error {
	f.fileDoc = doc
	f.filePath = path
	return nil
}

func (f *fakeOutput) WriteToStdout(doc *namelist.Document) error {
	f.stdoutDoc = doc
	return nil
}

func (f *fakeOutput) WriteToClipboard(doc *namelist.Document) error {
	f.clipboardDoc = doc
	return nil
}

// repeat builds n copies of a scripted line.
func repeat(line string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = line
	}
	return lines
}

func TestSession_TwoDomainDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	// All defaults except the domain count and the nest dimensions.
	lines := []string{
		"",   // wrf_core -> ARW
		"2",  // max_dom
		"",   // domain 1 start date
		"",   // domain 2 start date
		"",   // domain 1 end date
		"",   // domain 2 end date
		"",   // interval_seconds
		"",   // io_form_geogrid
		"",   // debug_level
		"",   // map_proj -> lambert
		"",   // dx
		"",   // dy
		"",   // ref_lat
		"",   // ref_lon
		"",   // truelat1
		"",   // truelat2
		"",   // stand_lon
		"",   // domain 2 parent ID -> 1
		"",   // domain 2 grid ratio -> 3
		"",   // domain 1 e_we -> 100
		"",   // domain 1 e_sn -> 100
		"31", // domain 2 e_we
		"31", // domain 2 e_sn
		"",   // i_parent_start -> suggested
		"",   // j_parent_start -> suggested
		"",   // domain 1 geog_data_res
		"",   // domain 2 geog_data_res
		"",   // geog_data_path
		"",   // out_format
		"",   // prefix
		"",   // fg_name
		"",   // io_form_metgrid
		"",   // review confirm -> yes
		"",   // output filename -> default
	}

	session, _ := scriptedSession(cfg, lines...)
	if err := session.Run(models.NewSessionRequest()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	doc, err := namelist.ParseFile(cfg.OutputFile)
	if err != nil {
		t.Fatalf("failed to parse written file: %v", err)
	}
	if doc.Len() != 4 {
		t.Fatalf("written file has %d sections, expected 4", doc.Len())
	}

	share, _ := doc.Lookup("share")
	if v, _ := share.First("max_dom"); v != "2" {
		t.Errorf("max_dom = %q", v)
	}
	if v, _ := share.First("start_date"); v != "2026-08-26_00:00:00" {
		t.Errorf("start_date[0] = %q", v)
	}
	if v, _ := share.Get("end_date"); len(v) != 2 || v[1] != "2026-08-27_00:00:00" {
		t.Errorf("end_date = %v", v)
	}

	geogrid, _ := doc.Lookup("geogrid")

	// floor((100 - 31/3) / 2) = 44 for both directions.
	wantValues := map[string][]string{
		"parent_id":         {"1", "1"},
		"parent_grid_ratio": {"1", "3"},
		"i_parent_start":    {"1", "44"},
		"j_parent_start":    {"1", "44"},
		"e_we":              {"100", "31"},
		"e_sn":              {"100", "31"},
		"geog_data_res":     {"modis_30s", "modis_15s"},
	}
	for key, want := range wantValues {
		got, ok := geogrid.Get(key)
		if !ok {
			t.Errorf("geogrid missing %s", key)
			continue
		}
		if len(got) != 2 {
			t.Errorf("%s has %d values, expected one per domain", key, len(got))
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s = %v, expected %v", key, got, want)
				break
			}
		}
	}

	if v, _ := geogrid.First("map_proj"); v != "lambert" {
		t.Errorf("map_proj = %q", v)
	}
	if v, _ := geogrid.First("geog_data_path"); v != "/path/to/geog" {
		t.Errorf("geog_data_path = %q", v)
	}
}

func TestSession_QuitWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	session, _ := scriptedSession(cfg, "q")
	err := session.Run(models.NewSessionRequest())
	if !errors.Is(err, interactive.ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}

	if _, statErr := os.Stat(cfg.OutputFile); !os.IsNotExist(statErr) {
		t.Error("quit must not produce an output file")
	}
}

func TestSession_QuitMidSessionWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	// Quit at the map projection prompt, after the share section is done.
	lines := append(repeat("", 9), "q")
	session, _ := scriptedSession(cfg, lines...)

	err := session.Run(models.NewSessionRequest())
	if !errors.Is(err, interactive.ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}

	if _, statErr := os.Stat(cfg.OutputFile); !os.IsNotExist(statErr) {
		t.Error("quit must not produce an output file")
	}
}

func TestSession_DeclineReviewAborts(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	// Single domain, all defaults (23 prompts), then decline the review.
	lines := append(repeat("", 23), "n")
	session, out := scriptedSession(cfg, lines...)

	if err := session.Run(models.NewSessionRequest()); err != nil {
		t.Fatalf("declining review should not be an error, got %v", err)
	}

	if _, statErr := os.Stat(cfg.OutputFile); !os.IsNotExist(statErr) {
		t.Error("declined review must not produce an output file")
	}
	if !strings.Contains(out.String(), "Exiting without writing file") {
		t.Errorf("missing cancellation notice:\n%s", out.String())
	}
}

func TestSession_SeededDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.ExistingFile = filepath.Join(dir, "previous.wps")

	previous := `&share
 wrf_core = 'NMM',
 max_dom = 1,
 start_date = '2030-01-01_00:00:00',
 end_date = '2030-01-02_00:00:00',
 interval_seconds = 10800,
 io_form_geogrid = 2,
 debug_level = 100,
/

&geogrid
 parent_id = 1,
 parent_grid_ratio = 1,
 i_parent_start = 1,
 j_parent_start = 1,
 e_we = 120,
 e_sn = 90,
 geog_data_res = 'usgs_30s',
 dx = 25000,
 dy = 25000,
 map_proj = 'lambert',
 ref_lat = 40.0,
 ref_lon = -100.0,
 truelat1 = 35.0,
 truelat2 = 45.0,
 stand_lon = -100.0,
 geog_data_path = '/data/WPS_GEOG',
/

&ungrib
 out_format = 'WPS',
 prefix = 'GFS',
/

&metgrid
 fg_name = 'GFS', 'SST',
 io_form_metgrid = 2,
/
`
	if err := os.WriteFile(cfg.ExistingFile, []byte(previous), 0644); err != nil {
		t.Fatal(err)
	}

	// "y" accepts the existing file, then defaults all the way through.
	lines := append([]string{"y"}, repeat("", 25)...)
	session, _ := scriptedSession(cfg, lines...)

	if err := session.Run(models.NewSessionRequest()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	doc, err := namelist.ParseFile(cfg.OutputFile)
	if err != nil {
		t.Fatal(err)
	}

	share, _ := doc.Lookup("share")
	if v, _ := share.First("wrf_core"); v != "NMM" {
		t.Errorf("wrf_core = %q, expected the seeded value", v)
	}
	if v, _ := share.First("start_date"); v != "2030-01-01_00:00:00" {
		t.Errorf("start_date = %q, expected the seeded value", v)
	}
	if v, _ := share.First("debug_level"); v != "100" {
		t.Errorf("debug_level = %q, expected the seeded value", v)
	}

	geogrid, _ := doc.Lookup("geogrid")
	if v, _ := geogrid.First("e_we"); v != "120" {
		t.Errorf("e_we = %q, expected the seeded value", v)
	}
	if v, _ := geogrid.First("dx"); v != "25000" {
		t.Errorf("dx = %q, expected the seeded value", v)
	}
	if v, _ := geogrid.First("geog_data_path"); v != "/data/WPS_GEOG" {
		t.Errorf("geog_data_path = %q, expected the seeded value", v)
	}

	metgrid, _ := doc.Lookup("metgrid")
	if fg, _ := metgrid.Get("fg_name"); len(fg) != 2 || fg[0] != "GFS" || fg[1] != "SST" {
		t.Errorf("fg_name = %v, expected the seeded list", fg)
	}
}

func TestSession_SeedWithInvalidDomainCount(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.ExistingFile = filepath.Join(dir, "previous.wps")

	// max_dom = 0 fails the positive-integer constraint and must not be
	// offered as a default; the session falls back to a single domain.
	previous := "&share\n wrf_core = 'ARW',\n max_dom = 0,\n/\n"
	if err := os.WriteFile(cfg.ExistingFile, []byte(previous), 0644); err != nil {
		t.Fatal(err)
	}

	lines := append([]string{"y"}, repeat("", 25)...)
	session, _ := scriptedSession(cfg, lines...)

	if err := session.Run(models.NewSessionRequest()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	doc, err := namelist.ParseFile(cfg.OutputFile)
	if err != nil {
		t.Fatal(err)
	}

	share, _ := doc.Lookup("share")
	if v, _ := share.First("max_dom"); v != "1" {
		t.Errorf("max_dom = %q, expected fallback to 1 for an invalid seed", v)
	}
}

func TestSession_SeedWithOutOfRangeParentID(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.ExistingFile = filepath.Join(dir, "previous.wps")

	// Domain 2 can only nest in domain 1; a seeded parent_id of 3 points
	// at a domain that does not exist and must not survive as a default.
	previous := `&share
 max_dom = 2,
/

&geogrid
 parent_id = 1, 3,
/
`
	if err := os.WriteFile(cfg.ExistingFile, []byte(previous), 0644); err != nil {
		t.Fatal(err)
	}

	// "y" accepts the seed; a two-domain run with suggested dimensions
	// takes 34 prompts end to end.
	lines := append([]string{"y"}, repeat("", 34)...)
	session, _ := scriptedSession(cfg, lines...)

	if err := session.Run(models.NewSessionRequest()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	doc, err := namelist.ParseFile(cfg.OutputFile)
	if err != nil {
		t.Fatal(err)
	}

	geogrid, _ := doc.Lookup("geogrid")
	if got, _ := geogrid.Get("parent_id"); len(got) != 2 || got[1] != "1" {
		t.Errorf("parent_id = %v, expected fallback to [1 1]", got)
	}
	if got, _ := geogrid.Get("e_we"); len(got) != 2 || got[1] != "33" {
		t.Errorf("e_we = %v, expected the suggested nest dimension", got)
	}
	if got, _ := geogrid.Get("i_parent_start"); len(got) != 2 || got[1] != "44" {
		t.Errorf("i_parent_start = %v, expected centered placement in domain 1", got)
	}
}

func TestSession_EmptyPrefixListReprompts(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	// ", ," at the fg_name prompt splits into no items and is rejected;
	// the retry's empty line then accepts the built-in default.
	lines := append(repeat("", 21), ", ,", "", "", "", "")
	session, out := scriptedSession(cfg, lines...)

	if err := session.Run(models.NewSessionRequest()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(out.String(), "at least one item") {
		t.Errorf("missing rejection of an item-less list:\n%s", out.String())
	}

	doc, err := namelist.ParseFile(cfg.OutputFile)
	if err != nil {
		t.Fatal(err)
	}

	metgrid, _ := doc.Lookup("metgrid")
	if got, _ := metgrid.Get("fg_name"); len(got) != 1 || got[0] != "FILE" {
		t.Errorf("fg_name = %v, expected the single default prefix", got)
	}
}

func TestSession_DeclinedSeedFallsBackToBuiltins(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.ExistingFile = filepath.Join(dir, "previous.wps")

	previous := "&share\n wrf_core = 'NMM',\n/\n"
	if err := os.WriteFile(cfg.ExistingFile, []byte(previous), 0644); err != nil {
		t.Fatal(err)
	}

	// "n" declines the seed; everything else accepts built-in defaults.
	lines := append([]string{"n"}, repeat("", 25)...)
	session, _ := scriptedSession(cfg, lines...)

	if err := session.Run(models.NewSessionRequest()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	doc, err := namelist.ParseFile(cfg.OutputFile)
	if err != nil {
		t.Fatal(err)
	}

	share, _ := doc.Lookup("share")
	if v, _ := share.First("wrf_core"); v != "ARW" {
		t.Errorf("wrf_core = %q, expected the built-in default after declining the seed", v)
	}
}

func TestSession_UnparsableSeedIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.ExistingFile = filepath.Join(dir, "previous.wps")

	// No recognizable sections at all.
	if err := os.WriteFile(cfg.ExistingFile, []byte("not a namelist\nat all\n"), 0644); err != nil {
		t.Fatal(err)
	}

	lines := repeat("", 25)
	session, out := scriptedSession(cfg, lines...)

	if err := session.Run(models.NewSessionRequest()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "built-in defaults") {
		t.Errorf("missing fallback notice:\n%s", out.String())
	}
}

func TestSession_OverflowingNestIsClamped(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	lines := []string{
		"",   // wrf_core
		"2",  // max_dom
		"", "", "", "", // dates
		"", "", "", // interval, io_form, debug
		"", "", "", "", "", "", "", "", // map_proj .. stand_lon
		"",   // parent ID
		"",   // ratio -> 3
		"", "", // domain 1 dims
		"31", "31", // domain 2 dims
		"95", // i_parent_start, overflows: end = 95+11-1 = 105
		"95", // j_parent_start, overflows
		"",   // adjust to fit? -> yes
		"", "", "", // geog_data_res x2, geog_data_path
		"", "", // ungrib
		"", "", // metgrid
		"", // review
		"", // filename
	}

	session, out := scriptedSession(cfg, lines...)
	if err := session.Run(models.NewSessionRequest()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(out.String(), "WARNING") {
		t.Errorf("missing overflow warning:\n%s", out.String())
	}

	doc, err := namelist.ParseFile(cfg.OutputFile)
	if err != nil {
		t.Fatal(err)
	}

	geogrid, _ := doc.Lookup("geogrid")
	// Largest start keeping ceil(31/3) = 11 cells inside 100 is 90.
	if got, _ := geogrid.Get("i_parent_start"); len(got) != 2 || got[1] != "90" {
		t.Errorf("i_parent_start = %v, expected clamp to 90", got)
	}
	if got, _ := geogrid.Get("j_parent_start"); len(got) != 2 || got[1] != "90" {
		t.Errorf("j_parent_start = %v, expected clamp to 90", got)
	}
}

func TestSession_StdoutTarget(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	// 23 prompts plus the review confirm; the stdout target never asks
	// for a filename.
	lines := repeat("", 24)
	session, _ := scriptedSession(cfg, lines...)

	fake := &fakeOutput{}
	session.SetOutputHandler(fake)

	req := models.NewSessionRequest()
	req.ToStdout = true

	if err := session.Run(req); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if fake.stdoutDoc == nil {
		t.Fatal("expected the document on stdout")
	}
	if fake.fileDoc != nil {
		t.Error("stdout target must not write a file")
	}
}

func TestSession_ClipboardCopyAfterWrite(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	lines := repeat("", 25)
	session, _ := scriptedSession(cfg, lines...)

	fake := &fakeOutput{}
	session.SetOutputHandler(fake)

	req := models.NewSessionRequest()
	req.ToClipboard = true

	if err := session.Run(req); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if fake.fileDoc == nil {
		t.Fatal("expected a file write")
	}
	if fake.clipboardDoc == nil {
		t.Error("expected a clipboard copy after the write")
	}
	if fake.filePath != cfg.OutputFile {
		t.Errorf("file path = %q, expected the configured default %q", fake.filePath, cfg.OutputFile)
	}
}

func TestSession_OutputRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	lines := repeat("", 25)
	session, _ := scriptedSession(cfg, lines...)
	if err := session.Run(models.NewSessionRequest()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	written, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		t.Fatal(err)
	}

	doc, err := namelist.ParseFile(cfg.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	if namelist.Render(doc) != string(written) {
		t.Error("written file does not round-trip through the parser")
	}
}
