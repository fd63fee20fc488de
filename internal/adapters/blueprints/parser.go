package blueprints

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

var (
	recordStart = regexp.MustCompile(`Blueprint\s+\d+:`)

	recordPattern = regexp.MustCompile(`^Blueprint\s+(\d+):\s*` +
		`Each ore robot costs (\d+) ore\.\s*` +
		`Each clay robot costs (\d+) ore\.\s*` +
		`Each obsidian robot costs (\d+) ore and (\d+) clay\.\s*` +
		`Each geode robot costs (\d+) ore and (\d+) obsidian\.$`)
)

// ParseError reports blueprint text that does not follow the grammar
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	text := e.Text
	if len(text) > 60 {
		text = text[:57] + "..."
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, text)
}

// Parse reads blueprint records from r. A record starts at "Blueprint N:"
// and may wrap across lines; blank lines are ignored.
func Parse(r io.Reader) ([]*production.Blueprint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprints: %w", err)
	}
	return ParseString(string(data))
}

// ParseString parses blueprint records held in memory
func ParseString(text string) ([]*production.Blueprint, error) {
	starts := recordStart.FindAllStringIndex(text, -1)

	if len(starts) == 0 {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return nil, &ParseError{Line: 1, Text: trimmed, Reason: "no blueprint records found"}
		}
		return nil, nil
	}
	if leading := strings.TrimSpace(text[:starts[0][0]]); leading != "" {
		return nil, &ParseError{Line: 1, Text: leading, Reason: "unexpected text before first blueprint"}
	}

	blueprints := make([]*production.Blueprint, 0, len(starts))
	seen := make(map[int]int, len(starts))

	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		line := 1 + strings.Count(text[:loc[0]], "\n")

		bp, err := ParseRecord(strings.TrimSpace(text[loc[0]:end]))
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line = line
				return nil, pe
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if firstLine, dup := seen[bp.ID()]; dup {
			return nil, fmt.Errorf("line %d: %w (first defined on line %d)",
				line, &production.ErrDuplicateBlueprint{BlueprintID: bp.ID()}, firstLine)
		}
		seen[bp.ID()] = line
		blueprints = append(blueprints, bp)
	}

	return blueprints, nil
}

// ParseRecord parses a single blueprint record
func ParseRecord(record string) (*production.Blueprint, error) {
	m := recordPattern.FindStringSubmatch(record)
	if m == nil {
		return nil, &ParseError{Line: 1, Text: record, Reason: "record does not match blueprint grammar"}
	}

	nums := make([]int, len(m)-1)
	for i, s := range m[1:] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, &ParseError{Line: 1, Text: record, Reason: fmt.Sprintf("number %q out of range", s)}
		}
		nums[i] = n
	}

	return production.NewBlueprintFromCosts(nums[0], production.BlueprintCosts{
		OreMachineOre:       nums[1],
		ClayMachineOre:      nums[2],
		ObsidianMachineOre:  nums[3],
		ObsidianMachineClay: nums[4],
		GeodeMachineOre:     nums[5],
		GeodeMachineObs:     nums[6],
	})
}

// LoadFile parses the blueprint file at path; "-" reads standard input
func LoadFile(path string) ([]*production.Blueprint, error) {
	if path == "-" {
		return Parse(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open blueprint file: %w", err)
	}
	defer f.Close()

	bps, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bps, nil
}
