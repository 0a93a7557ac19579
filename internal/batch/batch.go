// Package batch parses many inputs concurrently with a bounded worker pool.
package batch

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Nomadcxx/jellyparse/internal/parser"
	"github.com/Nomadcxx/jellyparse/internal/quality"
)

// Input is one entry to parse. A nil Name is reported as an invalid
// argument for that entry only.
type Input struct {
	Name  *string
	IsDir bool
}

// NewInput returns an Input for name.
func NewInput(name string, isDir bool) Input {
	return Input{Name: &name, IsDir: isDir}
}

// Result is the outcome for one Input. Results keep the order of the
// inputs they came from.
type Result struct {
	Index   int                    `json:"index" yaml:"index"`
	Input   string                 `json:"input" yaml:"input"`
	IsDir   bool                   `json:"isDir" yaml:"is_dir"`
	Info    parser.ParsedTitleInfo `json:"info" yaml:"info"`
	Quality *quality.Info          `json:"quality,omitempty" yaml:"quality,omitempty"`
	Err     error                  `json:"-" yaml:"-"`
	Error   string                 `json:"error,omitempty" yaml:"error,omitempty"`
}

// Config holds configuration for a batch run.
type Config struct {
	Workers int            // Concurrent parses (default: number of CPUs)
	Quality bool           // Also detect quality tags
	Parser  *parser.Parser // Defaults to parser.New()
}

// DefaultConfig returns a config sized to the machine.
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU()}
}

// Run parses every input and returns one Result per input, in order.
// Per-input failures are recorded on the Result; the returned error is only
// set when ctx is cancelled before all inputs were handled.
func Run(ctx context.Context, inputs []Input, cfg Config) ([]Result, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	p := cfg.Parser
	if p == nil {
		p = parser.New()
	}

	results := make([]Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	log.Debug().Int("inputs", len(inputs)).Int("workers", cfg.Workers).Msg("batch started")

	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = parseOne(p, i, in, cfg.Quality)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "batch cancelled")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "batch cancelled")
	}

	log.Debug().Int("results", len(results)).Msg("batch finished")
	return results, nil
}

func parseOne(p *parser.Parser, index int, in Input, withQuality bool) Result {
	res := Result{Index: index, IsDir: in.IsDir}

	info, err := p.ParseInput(in.Name, in.IsDir)
	if err != nil {
		res.Err = errors.Wrapf(err, "input %d", index)
		res.Error = res.Err.Error()
		log.Debug().Int("index", index).Err(err).Msg("skipping input")
		return res
	}

	res.Input = *in.Name
	res.Info = info
	if withQuality {
		q := quality.Detect(*in.Name)
		res.Quality = &q
	}
	return res
}

// Failed counts results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
