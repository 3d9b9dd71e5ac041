// Command lexcore reads a rule-description file, compiles every group it
// defines into a DFA, and writes whichever of the requested outputs (NFA
// DOT, DFA DOT, generated scanner source) were asked for on the command
// line. It is a thin shell around the exec package, in the same spirit as
// the teacher's own nex.go.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/lexforge/lexcore/exec"
)

func main() {
	log := logrus.StandardLogger()

	var pkg, outFilename, nfadotFile, dfadotFile string
	flag.StringVar(&pkg, "p", "main", `package name for the generated scanner`)
	flag.StringVar(&outFilename, "o", "", `output file for the generated scanner`)
	flag.StringVar(&nfadotFile, "nfadot", "", `show NFA graph in DOT format`)
	flag.StringVar(&dfadotFile, "dfadot", "", `show DFA graph in DOT format`)
	flag.Parse()

	if flag.NArg() > 1 {
		fatalf("extraneous arguments after %s", flag.Arg(0))
	}

	p := &exec.Params{
		PackageName:          pkg,
		OutputFilename:       outFilename,
		NfaDotOutputFilename: nfadotFile,
		DfaDotOutputFilename: dfadotFile,
		Stdin:                os.Stdin,
		Stdout:               os.Stdout,
		Stderr:               os.Stderr,
		Log:                  log,
	}
	if flag.NArg() > 0 {
		p.InputFilename = flag.Arg(0)
	}

	if err := exec.ExecuteWithParams(p); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
