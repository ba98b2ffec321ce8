// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textual

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	declRe        = regexp.MustCompile(`^(point|circle|arc)\s+([A-Za-z][A-Za-z0-9_]*)$`)
	fixRe         = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_.]*)\s*=\s*(-?[0-9]+(?:\.[0-9]+)?)$`)
	relRe         = regexp.MustCompile(`^([a-z_]+)\(([^)]*)\)$`)
	pointGuessRe  = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_.]*)\s+roughly\s+\(\s*(-?[0-9.]+)\s*,\s*(-?[0-9.]+)\s*\)$`)
	scalarGuessRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_.]*)\s+roughly\s+(-?[0-9.]+)$`)
)

// Parse turns problem text into a syntax tree (spec §6.2). Blank lines are
// skipped; a "#" anywhere outside the two section headers starts a
// trailing comment that runs to end of line (a supplement over spec.md,
// taken from the original collaborator which allows one, per SPEC_FULL.md
// §6.2).
func Parse(src string) (*Problem, error) {
	lines := strings.Split(src, "\n")

	section := 0 // 0 = before any header, 1 = constraints, 2 = guesses
	p := &Problem{}
	for i, raw := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)
		if trimmed == "# constraints" {
			section = 1
			continue
		}
		if trimmed == "# guesses" {
			section = 2
			continue
		}

		text := stripComment(raw)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		var err error
		switch section {
		case 1:
			err = p.parseConstraintLine(text, lineNo)
		case 2:
			err = p.parseGuessLine(text, lineNo)
		default:
			err = &ParseError{Line: lineNo, Text: trimmed}
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func (p *Problem) parseConstraintLine(text string, lineNo int) error {
	if m := declRe.FindStringSubmatch(text); m != nil {
		var kind declKind
		switch m[1] {
		case "point":
			kind = declPoint
		case "circle":
			kind = declCircle
		case "arc":
			kind = declArc
		}
		p.decls = append(p.decls, declaration{kind: kind, label: m[2], line: lineNo})
		return nil
	}
	if m := fixRe.FindStringSubmatch(text); m != nil {
		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return &ParseError{Line: lineNo, Text: text}
		}
		p.fixings = append(p.fixings, fixing{path: strings.Split(m[1], "."), value: value, line: lineNo})
		return nil
	}
	if m := relRe.FindStringSubmatch(text); m != nil {
		args := splitArgs(m[2])
		p.relations = append(p.relations, relation{name: m[1], args: args, line: lineNo})
		return nil
	}
	return &ParseError{Line: lineNo, Text: text}
}

func (p *Problem) parseGuessLine(text string, lineNo int) error {
	if m := pointGuessRe.FindStringSubmatch(text); m != nil {
		x, errX := strconv.ParseFloat(m[2], 64)
		y, errY := strconv.ParseFloat(m[3], 64)
		if errX != nil || errY != nil {
			return &ParseError{Line: lineNo, Text: text}
		}
		p.pointGuesses = append(p.pointGuesses, pointGuess{path: strings.Split(m[1], "."), x: x, y: y, line: lineNo})
		return nil
	}
	if m := scalarGuessRe.FindStringSubmatch(text); m != nil {
		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return &ParseError{Line: lineNo, Text: text}
		}
		p.scalarGuesses = append(p.scalarGuesses, scalarGuess{path: strings.Split(m[1], "."), value: value, line: lineNo})
		return nil
	}
	return &ParseError{Line: lineNo, Text: text}
}

func splitArgs(raw string) []string {
	parts := strings.Split(raw, ",")
	args := make([]string, len(parts))
	for i, a := range parts {
		args[i] = strings.TrimSpace(a)
	}
	return args
}
