package reporter

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Nomadcxx/jellyparse/internal/batch"
	"github.com/Nomadcxx/jellyparse/internal/parser"
	"github.com/Nomadcxx/jellyparse/internal/quality"
)

func intPtr(n int) *int { return &n }

func sampleReport() Report {
	return Report{
		Timestamp: time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
		Source:    "/media/movies",
		Results: []batch.Result{
			{
				Index: 0,
				Input: "Blade.Runner.Final.Cut.1982.1080p.BluRay.x264-GROUP",
				Info: parser.ParsedTitleInfo{
					CombinedTitle: "Blade Runner",
					TitleVariants: []string{"Blade Runner"},
					Year:          intPtr(1982),
					Edition:       "Final Cut",
					ImdbID:        "tt0083658",
					Languages:     []parser.Language{parser.Unknown},
					ReleaseGroup:  "GROUP",
				},
				Quality: &quality.Info{Resolution: "1080p", Source: "BluRay"},
			},
			{
				Index: 1,
				Input: "Akahige.AKA.Red.Beard.1965",
				Info: parser.ParsedTitleInfo{
					CombinedTitle: "Akahige AKA Red Beard",
					TitleVariants: []string{"Akahige AKA Red Beard", "Akahige", "Red Beard"},
					Year:          intPtr(1965),
					Languages:     []parser.Language{parser.Japanese},
				},
			},
			{
				Index: 2,
				Err:   errors.Wrap(parser.ErrInvalidArgument, "input 2"),
				Error: "input 2: invalid argument: title is required",
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"TEXT", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResolveAutoNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	if got := FormatAuto.Resolve(&buf); got != FormatJSON {
		t.Errorf("auto on a buffer resolved to %q, want json", got)
	}
	if got := FormatYAML.Resolve(&buf); got != FormatYAML {
		t.Errorf("explicit format changed to %q", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleReport())

	want := Summary{Inputs: 3, Failed: 1, WithYear: 2, WithEdition: 1, WithIDs: 1, WithAka: 1}
	if s != want {
		t.Errorf("Summarize() = %+v, want %+v", s, want)
	}
}

func TestBuildReportContent(t *testing.T) {
	content := buildReportContent(sampleReport())

	for _, want := range []string{
		"JELLYPARSE REPORT",
		"Generated: 2024-06-01 12:30:00",
		"Source: /media/movies",
		"Inputs: 3",
		"Failed: 1",
		"With alternative title: 1",
		"Blade Runner",
		"Final Cut",
		"tt0083658",
		"Akahige AKA Red Beard / Akahige / Red Beard",
		"Japanese",
		"1080p BluRay",
		"error: input 2",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleReport()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded struct {
		Results []struct {
			Input string `json:"input"`
			Error string `json:"error"`
			Info  struct {
				Year      *int     `json:"year"`
				Languages []string `json:"languages"`
			} `json:"info"`
		} `json:"results"`
		Summary Summary `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(decoded.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(decoded.Results))
	}
	if decoded.Results[0].Info.Year == nil || *decoded.Results[0].Info.Year != 1982 {
		t.Errorf("expected year 1982 in JSON")
	}
	if decoded.Results[2].Error == "" {
		t.Errorf("expected error text for failed result")
	}
	if decoded.Summary.Failed != 1 {
		t.Errorf("expected summary failed=1, got %d", decoded.Summary.Failed)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, sampleReport()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if _, ok := decoded["results"]; !ok {
		t.Error("expected results key in YAML")
	}
	if _, ok := decoded["summary"]; !ok {
		t.Error("expected summary key in YAML")
	}
	if !strings.Contains(buf.String(), "release_group: GROUP") {
		t.Error("expected snake_case keys in YAML")
	}
}

func TestWriteDetail(t *testing.T) {
	info := parser.ParsedTitleInfo{
		CombinedTitle: "Akahige AKA Red Beard",
		TitleVariants: []string{"Akahige AKA Red Beard", "Akahige", "Red Beard"},
		Year:          intPtr(1965),
		Languages:     []parser.Language{parser.Unknown},
	}
	trace := &parser.Trace{Layout: "year", Words: []string{"Akahige", "AKA"}, Cut: 4}

	var buf bytes.Buffer
	if err := WriteDetail(&buf, FormatText, Detail{Input: "Akahige.AKA.Red.Beard.1965", Info: info, Trace: trace}); err != nil {
		t.Fatalf("WriteDetail failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Akahige", "Also known as", "Red Beard", "1965", "Layout", "year"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q", want)
		}
	}

	buf.Reset()
	if err := WriteDetail(&buf, FormatJSON, Detail{Input: "x", Info: info}); err != nil {
		t.Fatalf("WriteDetail failed: %v", err)
	}
	if strings.Contains(buf.String(), "trace") {
		t.Error("trace should be omitted when nil")
	}
}

func TestGenerate(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := Generate(sampleReport())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.HasSuffix(path, "20240601_123000.txt") {
		t.Errorf("unexpected report path %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.Contains(string(data), "JELLYPARSE REPORT") {
		t.Error("report file missing header")
	}
}

func TestStreamingReporter(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSONL, sampleReport()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		var r struct {
			Index int `json:"index"`
		}
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Fatalf("line %d is not JSON: %v", i, err)
		}
		if r.Index != i {
			t.Errorf("line %d has index %d", i, r.Index)
		}
	}

	sr := NewStreamingReporter(&bytes.Buffer{})
	for _, r := range sampleReport().Results {
		if err := sr.Add(r); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	summary, err := sr.Close()
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if summary != Summarize(sampleReport()) {
		t.Errorf("streaming summary %+v differs from Summarize %+v", summary, Summarize(sampleReport()))
	}
}
