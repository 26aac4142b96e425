package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Input is one derivation read from an AUTO file.
type Input struct {
	ID         string
	Derivation string
}

// readInputs reads derivations from path, or from stdin when path is "-".
//
// Lines starting with "(" are derivations. A preceding "ID=..." header
// line names the next derivation; unnamed derivations are numbered from 1.
// Blank lines and lines starting with "#" are ignored.
func readInputs(cmd *cobra.Command, path string) ([]Input, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return parseInputs(r)
}

func parseInputs(r io.Reader) ([]Input, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		out    []Input
		nextID string
		line   int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		switch {
		case text == "", strings.HasPrefix(text, "#"):
		case strings.HasPrefix(text, "ID="):
			nextID, _, _ = strings.Cut(strings.TrimPrefix(text, "ID="), " ")
		case strings.HasPrefix(text, "("):
			id := nextID
			if id == "" {
				id = strconv.Itoa(len(out) + 1)
			}
			out = append(out, Input{ID: id, Derivation: text})
			nextID = ""
		default:
			return nil, fmt.Errorf("line %d: expected a derivation or ID= header", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// loadInputs reads inputs and reports read failures and empty input as
// command errors.
func loadInputs(cmd *cobra.Command, f *OutputFormatter, path string) ([]Input, error) {
	inputs, err := readInputs(cmd, path)
	if os.IsNotExist(err) {
		return nil, f.Fail(ErrCodeNotFound, fmt.Sprintf("input not found: %s", path))
	}
	if err != nil {
		return nil, f.Fail(ErrCodeReadFailed, fmt.Sprintf("reading %s: %v", path, err))
	}
	if len(inputs) == 0 {
		return nil, f.Fail(ErrCodeNoInput, fmt.Sprintf("no derivations in %s", path))
	}
	return inputs, nil
}
