// Package lexfile reads the small rule-description text format consumed by
// cmd/lexcore: a sequence of group stanzas, each a "group <name> [parent]"
// header followed by "pattern-source\tcallback-code" rule lines. It is
// deliberately not the teacher's full regex/brace grammar — it builds
// pattern.Pattern values through the pattern package's combinators rather
// than compiling a regex string, so its own grammar only needs to cover
// literals, classes, grouping, alternation, and the three repetition
// operators.
package lexfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lexforge/lexcore/pattern"
	"github.com/lexforge/lexcore/registry"
)

var (
	ErrUnknownParent   = errors.New("unknown parent group")
	ErrMalformedHeader = errors.New("malformed group header")
	ErrMalformedRule   = errors.New("malformed rule line")
	ErrRuleBeforeGroup = errors.New("rule line before any group header")
)

// Load reads stanzas from in, defining a group and its rules in reg for
// each one, and returns the defined group ids in file order. A parent name
// must name a group already defined earlier in the file.
func Load(reg *registry.Registry, in io.Reader) ([]int, error) {
	scanner := bufio.NewScanner(in)
	byName := map[string]int{}
	var ids []int

	gid := -1
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if name, parent, ok, err := parseHeader(trimmed); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		} else if ok {
			var parentID *int
			if parent != "" {
				pid, known := byName[parent]
				if !known {
					return nil, fmt.Errorf("line %d: parent %q: %w", lineNo, parent, ErrUnknownParent)
				}
				parentID = &pid
			}
			gid = reg.DefineGroup(name, parentID)
			byName[name] = gid
			ids = append(ids, gid)
			continue
		}

		if gid < 0 {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrRuleBeforeGroup)
		}
		src, code, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedRule)
		}
		p, err := ParsePattern(src)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, err := reg.CreateRule(gid, p, code); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return ids, nil
}

func parseHeader(trimmed string) (name, parent string, ok bool, err error) {
	if !strings.HasPrefix(trimmed, "group ") && trimmed != "group" {
		return "", "", false, nil
	}
	fields := strings.Fields(trimmed)
	switch len(fields) {
	case 2:
		return fields[1], "", true, nil
	case 3:
		return fields[1], fields[2], true, nil
	default:
		return "", "", false, ErrMalformedHeader
	}
}

// ParsePattern compiles a single pattern-source expression into a
// pattern.Pattern. Grammar:
//
//	alt      = concat ( '|' concat )*
//	concat   = postfix*
//	postfix  = atom ( '*' | '+' | '?' )?
//	atom     = '.' | '$' | '(' alt ')' | '[' class ']' | escape | literal-rune
//	class    = '^'? ( rune ( '-' rune )? )+
//
// A negated class ('^') may hold only a single range.
func ParsePattern(src string) (pattern.Pattern, error) {
	p := &patParser{runes: []rune(src)}
	pat, err := p.parseAlt()
	if err != nil {
		return pattern.Pattern{}, err
	}
	if p.pos != len(p.runes) {
		return pattern.Pattern{}, fmt.Errorf("unexpected %q at offset %d", p.runes[p.pos], p.pos)
	}
	return pat, nil
}

type patParser struct {
	runes []rune
	pos   int
}

func (p *patParser) peek() (rune, bool) {
	if p.pos >= len(p.runes) {
		return 0, false
	}
	return p.runes[p.pos], true
}

func (p *patParser) next() (rune, bool) {
	r, ok := p.peek()
	if ok {
		p.pos++
	}
	return r, ok
}

func (p *patParser) parseAlt() (pattern.Pattern, error) {
	first, err := p.parseConcat()
	if err != nil {
		return pattern.Pattern{}, err
	}
	alts := []pattern.Pattern{first}
	for {
		r, ok := p.peek()
		if !ok || r != '|' {
			break
		}
		p.pos++
		next, err := p.parseConcat()
		if err != nil {
			return pattern.Pattern{}, err
		}
		alts = append(alts, next)
	}
	return pattern.OrAll(alts...), nil
}

func (p *patParser) parseConcat() (pattern.Pattern, error) {
	var parts []pattern.Pattern
	for {
		r, ok := p.peek()
		if !ok || r == '|' || r == ')' {
			break
		}
		part, err := p.parsePostfix()
		if err != nil {
			return pattern.Pattern{}, err
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return pattern.Always(), nil
	}
	return pattern.SeqAll(parts...), nil
}

func (p *patParser) parsePostfix() (pattern.Pattern, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return pattern.Pattern{}, err
	}
	for {
		r, ok := p.peek()
		if !ok {
			return atom, nil
		}
		switch r {
		case '*':
			p.pos++
			atom = pattern.Many(atom)
		case '+':
			p.pos++
			atom = pattern.Many1(atom)
		case '?':
			p.pos++
			atom = pattern.Opt(atom)
		default:
			return atom, nil
		}
	}
}

func (p *patParser) parseAtom() (pattern.Pattern, error) {
	r, ok := p.next()
	if !ok {
		return pattern.Pattern{}, fmt.Errorf("unexpected end of pattern")
	}
	switch r {
	case '(':
		inner, err := p.parseAlt()
		if err != nil {
			return pattern.Pattern{}, err
		}
		if c, ok := p.next(); !ok || c != ')' {
			return pattern.Pattern{}, fmt.Errorf("unmatched '('")
		}
		return inner, nil
	case '.':
		return pattern.Any(), nil
	case '$':
		return pattern.EOF(), nil
	case '[':
		return p.parseClass()
	case '\\':
		esc, ok := p.next()
		if !ok {
			return pattern.Pattern{}, fmt.Errorf("trailing escape")
		}
		return pattern.Char(unescape(esc)), nil
	default:
		return pattern.Char(r), nil
	}
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}

func (p *patParser) parseClass() (pattern.Pattern, error) {
	neg := false
	if r, ok := p.peek(); ok && r == '^' {
		neg = true
		p.pos++
	}
	var ranges []pattern.Pattern
	for {
		r, ok := p.peek()
		if !ok {
			return pattern.Pattern{}, fmt.Errorf("unmatched '['")
		}
		if r == ']' {
			p.pos++
			break
		}
		lo, _ := p.next()
		hi := lo
		if nr, ok := p.peek(); ok && nr == '-' {
			save := p.pos
			p.pos++
			if hr, ok := p.peek(); ok && hr != ']' {
				hi, _ = p.next()
			} else {
				p.pos = save
			}
		}
		if hi < lo {
			return pattern.Pattern{}, fmt.Errorf("reversed range %q-%q in character class", lo, hi)
		}
		ranges = append(ranges, pattern.CharRange(lo, hi))
	}
	if len(ranges) == 0 {
		return pattern.Pattern{}, fmt.Errorf("empty character class")
	}
	cls := pattern.OrAll(ranges...)
	if !neg {
		return cls, nil
	}
	if len(ranges) != 1 {
		return pattern.Pattern{}, fmt.Errorf("negated class with more than one range is not supported")
	}
	return pattern.Not(ranges[0].Range()), nil
}
