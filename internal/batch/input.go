package batch

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ReadLines reads one input per line. Blank lines are skipped.
func ReadLines(r io.Reader, isDir bool) ([]Input, error) {
	var inputs []Input
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		inputs = append(inputs, NewInput(line, isDir))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read inputs")
	}
	return inputs, nil
}

// ReadJSON reads a JSON array of strings. A null element becomes an Input
// with no name, which Run reports as an invalid argument.
func ReadJSON(r io.Reader, isDir bool) ([]Input, error) {
	var names []*string
	if err := json.NewDecoder(r).Decode(&names); err != nil {
		return nil, errors.Wrap(err, "failed to decode JSON inputs")
	}
	inputs := make([]Input, len(names))
	for i, n := range names {
		inputs[i] = Input{Name: n, IsDir: isDir}
	}
	return inputs, nil
}

// ReadDir lists the entries of dir, without recursing. Hidden entries are
// skipped.
func ReadDir(dir string) ([]Input, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "library path not accessible: %s", dir)
	}

	var inputs []Input
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		inputs = append(inputs, NewInput(e.Name(), e.IsDir()))
	}
	return inputs, nil
}
