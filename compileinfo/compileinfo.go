// Package compileinfo reports how a binary was built: its Go toolchain, the
// VCS state of this module and the versions of the numerical libraries whose
// results it reproduces.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
)

// NumericModules are the dependencies whose versions can change p-values.
var NumericModules = []string{
	"gonum.org/v1/gonum",
	"github.com/montanaflynn/stats",
	"github.com/tokenme/probab",
}

type Dependency struct {
	Path    string
	Version string
}

func (d Dependency) String() string {
	return d.Path + "@" + d.Version
}

type CompileInfo struct {
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool

	Numeric []Dependency
}

func (c CompileInfo) String() string {
	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	deps := ""
	if len(c.Numeric) > 0 {
		names := make([]string, 0, len(c.Numeric))
		for _, d := range c.Numeric {
			names = append(names, d.String())
		}
		deps = " Numeric libraries: " + strings.Join(names, ", ") + "."
	}

	return fmt.Sprintf("This %s binary was built with %s at commit %v at time %v.%s%s", c.Package, c.GoVersion, c.Commit, c.CommitTime, mod, deps)
}

func Get() CompileInfo {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return CompileInfo{}
	}

	return fromBuildInfo(z)
}

func fromBuildInfo(z *debug.BuildInfo) CompileInfo {
	out := CompileInfo{
		GoVersion: z.GoVersion,
		Package:   z.Path,
	}

	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	for _, path := range NumericModules {
		for _, dep := range z.Deps {
			if dep.Path != path {
				continue
			}
			if dep.Replace != nil {
				dep = dep.Replace
			}
			out.Numeric = append(out.Numeric, Dependency{Path: path, Version: dep.Version})
		}
	}

	return out
}

func PrintToStdErr() {
	z := Get()
	fmt.Fprintf(os.Stderr, "%s\n", z)
}
