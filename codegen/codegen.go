// Package codegen emits a minimal Go scan loop that drives a compiled DFA's
// transition matrix directly. It is a thin demonstration consumer of the
// core, not the core itself: it splices callback code verbatim into switch
// arms and neither parses nor validates it.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"github.com/lexforge/lexcore/automata/dfa"
	"github.com/lexforge/lexcore/matrix"
	"github.com/lexforge/lexcore/symbol"
	"golang.org/x/tools/imports"
)

// ScannerOptions configures the emitted package.
type ScannerOptions struct {
	PackageName  string
	FunctionName string
}

const scannerTemplate = `// Code generated by lexcore/codegen. DO NOT EDIT.

package {{.PackageName}}

func {{.FunctionName}}(input []rune, emit func(code string, text []rune)) {
	links := [][]int{
{{range .Rows}}		{ {{range $i, $v := .}}{{if $i}}, {{end}}{{$v}}{{end}} },
{{end}}	}
	callbacks := map[int]string{
{{range $state, $code := .Callbacks}}		{{$state}}: {{printf "%q" $code}},
{{end}}	}

	classOf := func(r rune) int {
		switch {
{{range .ClassArms}}		case {{.}}
{{end}}		default:
			return {{.LastClass}}
		}
	}

	pos := 0
	for pos < len(input) {
		start := pos
		state := 0
		lastAccept := -1
		lastAcceptPos := pos
		for pos < len(input) {
			class := classOf(input[pos])
			next := links[state][class]
			if next < 0 {
				break
			}
			state = next
			pos++
			if _, ok := callbacks[state]; ok {
				lastAccept = state
				lastAcceptPos = pos
			}
		}
		if lastAccept < 0 {
			pos = start + 1
			continue
		}
		text := input[start:lastAcceptPos]
		switch lastAccept {
{{range $state, $code := .Callbacks}}		case {{$state}}:
			{{$code}}
{{end}}		}
		pos = lastAcceptPos
	}
}
`

type templateData struct {
	PackageName  string
	FunctionName string
	Rows         [][]int
	Callbacks    map[int]string
	ClassArms    []string
	LastClass    int
}

// EmitScanner renders a compiled DFA as Go source implementing a scan loop
// over links directly, formatted with gofmt and goimports exactly as the
// teacher's code generator does.
func EmitScanner(d *dfa.DFA, opts ScannerOptions) ([]byte, error) {
	if opts.PackageName == "" {
		opts.PackageName = "main"
	}
	if opts.FunctionName == "" {
		opts.FunctionName = "Scan"
	}

	rows := make([][]int, d.Links.Rows())
	for r := range rows {
		row := make([]int, d.Links.Cols())
		for c := range row {
			v := d.Links.At(r, c)
			if v == matrix.Invalid {
				row[c] = -1
			} else {
				row[c] = int(v)
			}
		}
		rows[r] = row
	}

	callbacks := map[int]string{}
	for state, cb := range d.Callbacks {
		if cb != nil {
			callbacks[state] = cb.Code
		}
	}

	// classOf dispatches on an actual input rune, which can never reach
	// symbol.EOF (math.MaxUint32, above any valid rune): the division the
	// segmentation places there would emit a threshold literal that
	// overflows rune and can never be satisfied anyway, so it is skipped.
	// A DFA transition keyed on the EOF class is simply unreachable from
	// this rune-driven scan loop.
	divs := d.Segmentation.DivisionsAsVec()
	var arms []string
	for i := len(divs) - 1; i >= 1; i-- {
		if divs[i].Point == symbol.EOF {
			continue
		}
		arms = append(arms, fmt.Sprintf("r >= %d:\n\t\t\treturn %d", divs[i].Point, divs[i].Class))
	}
	lastClass := 0
	if len(divs) > 0 {
		lastClass = divs[0].Class
	}

	tmpl, err := template.New("scanner").Parse(scannerTemplate)
	if err != nil {
		return nil, fmt.Errorf("codegen: parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{
		PackageName:  opts.PackageName,
		FunctionName: opts.FunctionName,
		Rows:         rows,
		Callbacks:    callbacks,
		ClassArms:    arms,
		LastClass:    lastClass,
	}); err != nil {
		return nil, fmt.Errorf("codegen: execute template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("codegen: gofmt: %w", err)
	}
	return imports.Process("scanner.go", formatted, &imports.Options{
		TabWidth:  8,
		TabIndent: true,
		Comments:  true,
		Fragment:  true,
	})
}
