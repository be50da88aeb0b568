// Command qmi-codegen generates QMI client bindings from a service
// definition.
//
// Usage:
//
//	qmi-codegen -input data/qmi-service-dms.json -include data/qmi-common.json -output qmi-client-dms
//
// writes qmi-client-dms.h, qmi-client-dms.c and qmi-client-dms.sections.
// With -go-output it also writes a Go registry for pkg/qmiclient.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/freedesktop/libqmi/pkg/clientgen"
	"github.com/freedesktop/libqmi/pkg/specparse"
)

type options struct {
	input     string
	includes  []string
	output    string
	goOutput  string
	goPackage string
}

func main() {
	input := flag.String("input", "", "Path to the service definition (JSON or YAML)")
	include := flag.String("include", "", "Comma-separated common definition files")
	output := flag.String("output", "", "Output path prefix; writes <prefix>.h, <prefix>.c and <prefix>.sections")
	goOutput := flag.String("go-output", "", "Optional path for the Go registry file")
	goPackage := flag.String("go-package", "", "Package name of the Go registry (default: directory name)")
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: qmi-codegen -input <path> -output <prefix> [-include <paths>] [-go-output <path>] [-go-package <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	opts := options{
		input:     *input,
		includes:  splitList(*include),
		output:    *output,
		goOutput:  *goOutput,
		goPackage: *goPackage,
	}
	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, stdout io.Writer) error {
	def, err := specparse.LoadServiceDef(opts.input, opts.includes...)
	if err != nil {
		return fmt.Errorf("loading service definition: %w", err)
	}

	gen, err := clientgen.New(def.Client, def.Messages)
	if err != nil {
		return fmt.Errorf("preparing %s: %w", def.Client.Name, err)
	}

	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	hpath, cpath, spath := opts.output+".h", opts.output+".c", opts.output+".sections"
	if err := writeFiles(hpath, cpath, gen.Emit); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "  generated %s\n", hpath)
	fmt.Fprintf(stdout, "  generated %s\n", cpath)

	if err := writeFile(spath, gen.EmitSections); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "  generated %s\n", spath)

	if opts.goOutput == "" {
		return nil
	}
	pkg := opts.goPackage
	if pkg == "" {
		pkg = filepath.Base(filepath.Dir(opts.goOutput))
	}
	code, err := gen.GenerateGoRegistry(filepath.Base(opts.goOutput), pkg)
	if err != nil {
		return fmt.Errorf("generating go registry: %w", err)
	}
	if dir := filepath.Dir(opts.goOutput); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating go output dir: %w", err)
		}
	}
	if err := os.WriteFile(opts.goOutput, code, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.goOutput, err)
	}
	fmt.Fprintf(stdout, "  generated %s\n", opts.goOutput)
	return nil
}

func writeFile(path string, emit func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := emit(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeFiles(hpath, cpath string, emit func(h, c io.Writer) error) error {
	hf, err := os.Create(hpath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", hpath, err)
	}
	defer hf.Close()

	cf, err := os.Create(cpath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", cpath, err)
	}
	defer cf.Close()

	if err := emit(hf, cf); err != nil {
		return err
	}
	if err := hf.Close(); err != nil {
		return err
	}
	return cf.Close()
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
