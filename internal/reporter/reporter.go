package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Nomadcxx/jellyparse/internal/batch"
	"github.com/Nomadcxx/jellyparse/internal/parser"
	"github.com/Nomadcxx/jellyparse/internal/quality"
)

// Format is an output encoding.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatJSONL Format = "jsonl"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, FormatText, FormatJSON, FormatYAML, FormatJSONL:
		return f, nil
	case "":
		return FormatAuto, nil
	default:
		return "", errors.Errorf("unknown output format %q (must be auto, text, json, yaml, or jsonl)", s)
	}
}

// Resolve turns auto into text on a terminal and json everywhere else.
func (f Format) Resolve(w io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	if file, ok := w.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		return FormatText
	}
	return FormatJSON
}

// Report is the result of a batch run.
type Report struct {
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Source    string         `json:"source,omitempty" yaml:"source,omitempty"`
	Results   []batch.Result `json:"results" yaml:"results"`
}

// Summary counts what a batch found.
type Summary struct {
	Inputs      int `json:"inputs" yaml:"inputs"`
	Failed      int `json:"failed" yaml:"failed"`
	WithYear    int `json:"withYear" yaml:"with_year"`
	WithEdition int `json:"withEdition" yaml:"with_edition"`
	WithIDs     int `json:"withIds" yaml:"with_ids"`
	WithAka     int `json:"withAka" yaml:"with_aka"`
}

// Summarize counts the results of a report.
func Summarize(report Report) Summary {
	s := Summary{Inputs: len(report.Results)}
	for _, r := range report.Results {
		s = tally(s, r)
	}
	return s
}

func tally(s Summary, r batch.Result) Summary {
	if r.Err != nil {
		s.Failed++
		return s
	}
	if r.Info.Year != nil {
		s.WithYear++
	}
	if r.Info.Edition != "" {
		s.WithEdition++
	}
	if r.Info.ImdbID != "" || r.Info.TmdbID != nil {
		s.WithIDs++
	}
	if len(r.Info.TitleVariants) == 3 {
		s.WithAka++
	}
	return s
}

// Write renders report to w.
func Write(w io.Writer, format Format, report Report) error {
	switch format.Resolve(w) {
	case FormatJSONL:
		sr := NewStreamingReporter(w)
		for _, r := range report.Results {
			if err := sr.Add(r); err != nil {
				return err
			}
		}
		_, err := sr.Close()
		return err
	case FormatJSON:
		return writeJSON(w, struct {
			Report
			Summary Summary `json:"summary"`
		}{report, Summarize(report)})
	case FormatYAML:
		return writeYAML(w, struct {
			Report  `yaml:",inline"`
			Summary Summary `yaml:"summary"`
		}{report, Summarize(report)})
	default:
		_, err := io.WriteString(w, buildReportContent(report))
		return errors.Wrap(err, "failed to write report")
	}
}

// Generate writes a text report to a timestamped file and returns its path.
func Generate(report Report) (string, error) {
	reportDir := getReportDir()
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create report directory")
	}

	filename := filepath.Join(reportDir, report.Timestamp.Format("20060102_150405")+".txt")
	if err := os.WriteFile(filename, []byte(buildReportContent(report)), 0644); err != nil {
		return "", errors.Wrap(err, "failed to write report")
	}

	return filename, nil
}

func getReportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "jellyparse", "reports")
	}
	return filepath.Join(home, ".local/share/jellyparse/reports")
}

func buildReportContent(report Report) string {
	var sb strings.Builder
	summary := Summarize(report)

	sb.WriteString("JELLYPARSE REPORT\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n", report.Timestamp.Format("2006-01-02 15:04:05")))
	if report.Source != "" {
		sb.WriteString(fmt.Sprintf("Source: %s\n", report.Source))
	}
	sb.WriteString("\n")

	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Inputs: %d\n", summary.Inputs))
	sb.WriteString(fmt.Sprintf("Failed: %d\n", summary.Failed))
	sb.WriteString(fmt.Sprintf("With year: %d\n", summary.WithYear))
	sb.WriteString(fmt.Sprintf("With edition: %d\n", summary.WithEdition))
	sb.WriteString(fmt.Sprintf("With catalog ids: %d\n", summary.WithIDs))
	sb.WriteString(fmt.Sprintf("With alternative title: %d\n", summary.WithAka))
	sb.WriteString("\n")

	if len(report.Results) > 0 {
		sb.WriteString("RESULTS\n")
		sb.WriteString(resultsTable(report.Results))
		sb.WriteString("\n")
	}

	return sb.String()
}

func resultsTable(results []batch.Result) string {
	withQuality := false
	for _, r := range results {
		if r.Quality != nil {
			withQuality = true
			break
		}
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := table.Row{"#", "Input", "Title", "Year", "Edition", "Languages", "Group", "IDs"}
	if withQuality {
		header = append(header, "Quality")
	}
	tw.AppendHeader(header)

	for _, r := range results {
		if r.Err != nil {
			tw.AppendRow(table.Row{r.Index + 1, "", "error: " + r.Error})
			continue
		}
		row := table.Row{
			r.Index + 1,
			r.Input,
			strings.Join(r.Info.TitleVariants, " / "),
			yearText(r.Info),
			r.Info.Edition,
			languagesText(r.Info.Languages),
			r.Info.ReleaseGroup,
			idsText(r.Info),
		}
		if withQuality {
			q := ""
			if r.Quality != nil {
				q = r.Quality.Summary()
			}
			row = append(row, q)
		}
		tw.AppendRow(row)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, WidthMax: 60},
		{Number: 4, Align: text.AlignRight},
	})

	return tw.Render() + "\n"
}

// Detail is the full result for a single input.
type Detail struct {
	Input   string                 `json:"input" yaml:"input"`
	IsDir   bool                   `json:"isDir" yaml:"is_dir"`
	Info    parser.ParsedTitleInfo `json:"info" yaml:"info"`
	Quality *quality.Info          `json:"quality,omitempty" yaml:"quality,omitempty"`
	Trace   *parser.Trace          `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// WriteDetail renders a single parse result to w.
func WriteDetail(w io.Writer, format Format, d Detail) error {
	switch format.Resolve(w) {
	case FormatJSON, FormatJSONL:
		return writeJSON(w, d)
	case FormatYAML:
		return writeYAML(w, d)
	default:
		_, err := io.WriteString(w, detailText(d))
		return errors.Wrap(err, "failed to write result")
	}
}

func detailText(d Detail) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendRow(table.Row{"Input", d.Input})
	tw.AppendRow(table.Row{"Title", d.Info.PrimaryTitle()})
	if len(d.Info.TitleVariants) == 3 {
		tw.AppendRow(table.Row{"Combined", d.Info.CombinedTitle})
		tw.AppendRow(table.Row{"Also known as", d.Info.TitleVariants[2]})
	}
	tw.AppendRow(table.Row{"Year", yearText(d.Info)})
	tw.AppendRow(table.Row{"Edition", d.Info.Edition})
	tw.AppendRow(table.Row{"Languages", languagesText(d.Info.Languages)})
	tw.AppendRow(table.Row{"Release group", d.Info.ReleaseGroup})
	tw.AppendRow(table.Row{"IDs", idsText(d.Info)})
	if d.Quality != nil {
		tw.AppendRow(table.Row{"Quality", d.Quality.Summary()})
	}
	if d.Trace != nil {
		tw.AppendSeparator()
		tw.AppendRow(table.Row{"Layout", d.Trace.Layout})
		tw.AppendRow(table.Row{"Words", strings.Join(d.Trace.Words, " | ")})
		tw.AppendRow(table.Row{"Cut", d.Trace.Cut})
		tw.AppendRow(table.Row{"Removed", strings.Join(d.Trace.Removed, " | ")})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 80}})
	return tw.Render() + "\n"
}

func yearText(info parser.ParsedTitleInfo) string {
	if y, ok := info.YearValue(); ok {
		return strconv.Itoa(y)
	}
	return ""
}

func languagesText(langs []parser.Language) string {
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = l.String()
	}
	return strings.Join(names, ", ")
}

func idsText(info parser.ParsedTitleInfo) string {
	var ids []string
	if info.ImdbID != "" {
		ids = append(ids, info.ImdbID)
	}
	if tmdb, ok := info.TmdbValue(); ok {
		ids = append(ids, "tmdb:"+strconv.Itoa(tmdb))
	}
	return strings.Join(ids, " ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "failed to encode JSON")
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode YAML")
	}
	return errors.Wrap(enc.Close(), "failed to encode YAML")
}
