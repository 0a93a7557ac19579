package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/Nomadcxx/jellyparse/internal/parser"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Workers <= 0 {
		t.Errorf("DefaultConfig() returned invalid workers: %d", cfg.Workers)
	}
}

func TestRunKeepsOrder(t *testing.T) {
	names := []string{
		"The.Matrix.1999.1080p.BluRay.x264-GROUP",
		"Inception.2010.2160p.UHD.mkv",
		"Unbreakable",
		"Blade.Runner.Final.Cut.1982.1080p.BluRay.x264-GROUP",
	}
	inputs := make([]Input, len(names))
	for i, n := range names {
		inputs[i] = NewInput(n, false)
	}

	results, err := Run(context.Background(), inputs, Config{Workers: 3})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != len(names) {
		t.Fatalf("Expected %d results, got %d", len(names), len(results))
	}

	want := []string{"The Matrix", "Inception", "Unbreakable", "Blade Runner"}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
		if r.Input != names[i] {
			t.Errorf("result %d input = %q, want %q", i, r.Input, names[i])
		}
		if r.Info.PrimaryTitle() != want[i] {
			t.Errorf("result %d title = %q, want %q", i, r.Info.PrimaryTitle(), want[i])
		}
		if r.Quality != nil {
			t.Errorf("result %d has quality without Config.Quality", i)
		}
	}
}

func TestRunNilInput(t *testing.T) {
	inputs := []Input{NewInput("Unbreakable.2000", false), {}}

	results, err := Run(context.Background(), inputs, Config{Workers: 1})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if results[0].Err != nil {
		t.Errorf("unexpected error for valid input: %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, parser.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", results[1].Err)
	}
	if results[1].Error == "" {
		t.Error("expected error text on failed result")
	}
	if Failed(results) != 1 {
		t.Errorf("Failed() = %d, want 1", Failed(results))
	}
}

func TestRunWithQuality(t *testing.T) {
	inputs := []Input{NewInput("The.Man.from.U.N.C.L.E.2015.1080p.BluRay.x264-SPARKS", false)}

	results, err := Run(context.Background(), inputs, Config{Workers: 1, Quality: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if results[0].Quality == nil {
		t.Fatal("expected quality info")
	}
	if results[0].Quality.Resolution != "1080p" {
		t.Errorf("resolution = %q, want 1080p", results[0].Quality.Resolution)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, []Input{NewInput("Unbreakable", false)}, Config{Workers: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunEmpty(t *testing.T) {
	results, err := Run(context.Background(), nil, Config{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadLines(t *testing.T) {
	inputs, err := ReadLines(strings.NewReader("Unbreakable\r\n\n  \nThe.Matrix.1999\n"), true)
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(inputs))
	}
	if *inputs[0].Name != "Unbreakable" || !inputs[0].IsDir {
		t.Errorf("unexpected first input: %q dir=%v", *inputs[0].Name, inputs[0].IsDir)
	}
	if *inputs[1].Name != "The.Matrix.1999" {
		t.Errorf("unexpected second input: %q", *inputs[1].Name)
	}
}

func TestReadJSON(t *testing.T) {
	inputs, err := ReadJSON(strings.NewReader(`["Unbreakable", null]`), false)
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(inputs))
	}
	if inputs[0].Name == nil || *inputs[0].Name != "Unbreakable" {
		t.Errorf("unexpected first input")
	}
	if inputs[1].Name != nil {
		t.Errorf("expected nil name for null element")
	}

	if _, err := ReadJSON(strings.NewReader(`{"not": "an array"}`), false); err == nil {
		t.Error("expected error for non-array JSON")
	}
}

func TestReadDir(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(tmpDir, "The Matrix (1999)", "extras"), 0755); err != nil {
		t.Fatalf("Failed to create movie directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "Inception.2010.2160p.UHD.mkv"), []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".hidden"), nil, 0644); err != nil {
		t.Fatalf("Failed to create hidden file: %v", err)
	}

	inputs, err := ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(inputs))
	}

	// os.ReadDir sorts by name.
	if *inputs[0].Name != "Inception.2010.2160p.UHD.mkv" || inputs[0].IsDir {
		t.Errorf("unexpected file entry: %q dir=%v", *inputs[0].Name, inputs[0].IsDir)
	}
	if *inputs[1].Name != "The Matrix (1999)" || !inputs[1].IsDir {
		t.Errorf("unexpected dir entry: %q dir=%v", *inputs[1].Name, inputs[1].IsDir)
	}

	results, err := Run(context.Background(), inputs, DefaultConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if y, ok := results[1].Info.YearValue(); !ok || y != 1999 {
		t.Errorf("expected year 1999 from folder, got %v %v", y, ok)
	}

	if _, err := ReadDir(filepath.Join(tmpDir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
