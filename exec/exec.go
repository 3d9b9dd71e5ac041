// Package exec wires the lexfile reader, the registry/automata pipeline,
// and the dot/codegen writers into the single call cmd/lexcore needs. It
// mirrors the teacher's own exec package: a Params struct filled by flag
// parsing, a thin Execute entry point, and an ExecuteWithParams that does
// the actual work so it can be driven directly from tests.
package exec

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/lexforge/lexcore/automata/dfa"
	"github.com/lexforge/lexcore/codegen"
	"github.com/lexforge/lexcore/dot"
	"github.com/lexforge/lexcore/lexfile"
	"github.com/lexforge/lexcore/registry"
)

// Params holds the resolved CLI knobs. It is filled either by ParseParams
// or directly by a caller that wants to drive the pipeline without going
// through flag.
type Params struct {
	PackageName          string
	InputFilename        string
	OutputFilename       string
	NfaDotOutputFilename string
	DfaDotOutputFilename string
	Stdin                io.Reader
	Stdout               io.Writer
	Stderr               io.Writer
	Log                  *logrus.Logger
}

// ParseParams builds a Params from CLI-style args, the way the teacher's
// nex.go/exec.ParseParams does with the standard flag package.
func ParseParams(name string, args ...string) (*Params, error) {
	f := flag.NewFlagSet(name, flag.ExitOnError)
	p := &Params{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	f.StringVar(&p.PackageName, "p", "main", `package name for the generated scanner`)
	f.StringVar(&p.OutputFilename, "o", "", `output file for the generated scanner`)
	f.StringVar(&p.NfaDotOutputFilename, "nfadot", "", `show NFA graph in DOT format`)
	f.StringVar(&p.DfaDotOutputFilename, "dfadot", "", `show DFA graph in DOT format`)

	// Ignore errors; f is set for ExitOnError.
	_ = f.Parse(args)

	if f.NArg() > 1 {
		return nil, fmt.Errorf("extraneous arguments after %s", f.Arg(0))
	}
	if f.NArg() > 0 {
		p.InputFilename = f.Arg(0)
	}
	return p, nil
}

// Execute parses args and runs the pipeline in one call.
func Execute(name string, args ...string) error {
	p, err := ParseParams(name, args...)
	if err != nil {
		return fmt.Errorf("parse-params: %w", err)
	}
	return ExecuteWithParams(p)
}

// ExecuteWithParams reads p.InputFilename through lexfile, compiles every
// group it defines, and writes whichever of the DOT/scanner outputs were
// requested.
func ExecuteWithParams(p *Params) error {
	log := p.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	infile := os.Stdin
	if p.InputFilename != "" {
		f, err := os.Open(p.InputFilename)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer closeFile(f)
		infile = f
	}

	reg := registry.New()
	gids, err := lexfile.Load(reg, infile)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	log.WithField("component", "registry").Infof("loaded %d group(s)", len(gids))

	compiled := make(map[int]*dfa.DFA, len(gids))
	for _, gid := range gids {
		d, err := reg.Compile(gid)
		if err != nil {
			return fmt.Errorf("compile group %d: %w", gid, err)
		}
		compiled[gid] = d
		log.WithFields(logrus.Fields{"component": "dfa", "group_id": gid}).
			Infof("compiled %d states", d.NumStates())
	}

	if err := writeWithWriter(p.NfaDotOutputFilename, func(w io.Writer) error {
		return writeAllNFADot(w, reg, gids)
	}); err != nil {
		return err
	}
	if err := writeWithWriter(p.DfaDotOutputFilename, func(w io.Writer) error {
		return writeAllDFADot(w, reg, compiled, gids)
	}); err != nil {
		return err
	}

	if p.OutputFilename == "" {
		return nil
	}
	src, err := emitAllScanners(reg, compiled, gids, p.PackageName)
	if err != nil {
		return fmt.Errorf("emit scanner: %w", err)
	}
	if err := os.WriteFile(p.OutputFilename, src, 0666); err != nil {
		return fmt.Errorf("write scanner: %w", err)
	}
	return nil
}

func writeAllNFADot(w io.Writer, reg *registry.Registry, gids []int) error {
	for _, gid := range gids {
		n, err := reg.ToNFA(gid)
		if err != nil {
			return fmt.Errorf("group %d: %w", gid, err)
		}
		dot.WriteNFA(w, n, fmt.Sprintf("NFA_%d", gid))
	}
	return nil
}

func writeAllDFADot(w io.Writer, reg *registry.Registry, compiled map[int]*dfa.DFA, gids []int) error {
	for _, gid := range gids {
		dot.WriteDFA(w, compiled[gid], fmt.Sprintf("DFA_%d", gid))
	}
	return nil
}

func emitAllScanners(reg *registry.Registry, compiled map[int]*dfa.DFA, gids []int, pkg string) ([]byte, error) {
	sorted := make([]int, len(gids))
	copy(sorted, gids)
	sort.Ints(sorted)

	var out []byte
	for i, gid := range sorted {
		g := reg.Groups[gid]
		opts := codegen.ScannerOptions{PackageName: pkg, FunctionName: scanFuncName(g.Name)}
		src, err := codegen.EmitScanner(compiled[gid], opts)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", gid, err)
		}
		if i > 0 {
			// Strip the repeated package clause from every scanner after
			// the first so they can be concatenated into one file.
			src = stripPackageClause(src)
		}
		out = append(out, src...)
	}
	return out, nil
}

func scanFuncName(groupName string) string {
	r := []rune(groupName)
	if len(r) == 0 {
		return "Scan"
	}
	r[0] = toUpperASCII(r[0])
	return "Scan" + string(r)
}

func toUpperASCII(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// stripPackageClause drops everything up to and including the "package
// foo" line so a second scanner's source can be appended after the
// first's within the same file.
func stripPackageClause(src []byte) []byte {
	idx := bytes.Index(src, []byte("package "))
	if idx < 0 {
		return src
	}
	rest := src[idx:]
	if nl := bytes.IndexByte(rest, '\n'); nl >= 0 {
		return rest[nl+1:]
	}
	return nil
}

func closeFile(f *os.File) {
	_ = f.Close()
}

func writeWithWriter(filepath string, writer func(io.Writer) error) error {
	if filepath == "" {
		return nil
	}
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	defer closeFile(f)
	return writer(f)
}
