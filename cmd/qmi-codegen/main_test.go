package main

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	testService = "../../pkg/specparse/testdata/qmi-service-foo.json"
	testCommon  = "../../pkg/specparse/testdata/qmi-common.json"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func mustContain(t *testing.T, name, text, substr string) {
	t.Helper()
	if !strings.Contains(text, substr) {
		t.Errorf("%s does not contain %q", name, substr)
	}
}

func TestRunGeneratesClientFiles(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "out", "qmi-client-foo")

	var stdout bytes.Buffer
	err := run(options{input: testService, includes: []string{testCommon}, output: prefix}, &stdout)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, ext := range []string{".h", ".c", ".sections"} {
		mustContain(t, "stdout", stdout.String(), "  generated "+prefix+ext+"\n")
	}

	header := readFile(t, prefix+".h")
	mustContain(t, "header", header, "#define QMI_TYPE_CLIENT_FOO")
	mustContain(t, "header", header, "qmi_client_foo_do_thing_finish")
	mustContain(t, "header", header, "qmi_client_foo_reset_finish")

	source := readFile(t, prefix+".c")
	mustContain(t, "source", source, "G_DEFINE_TYPE (QmiClientFoo, qmi_client_foo, QMI_TYPE_CLIENT)")
	mustContain(t, "source", source, "do_thing_abort_ready")
	mustContain(t, "source", source, "SIGNAL_THING_HAPPENED")
	if strings.Contains(source, "qmi_client_foo_abort (") {
		t.Error("static Abort message must not get a call entry point")
	}

	sections := readFile(t, prefix+".sections")
	mustContain(t, "sections", sections, "<FILE>qmi-client-foo</FILE>")
}

func TestRunIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a"), filepath.Join(dir, "b")

	for _, prefix := range []string{a, b} {
		if err := run(options{input: testService, includes: []string{testCommon}, output: prefix}, &bytes.Buffer{}); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	}
	for _, ext := range []string{".h", ".c", ".sections"} {
		if readFile(t, a+ext) != readFile(t, b+ext) {
			t.Errorf("%s output differs between runs", ext)
		}
	}
}

func TestRunGoRegistry(t *testing.T) {
	dir := t.TempDir()
	goPath := filepath.Join(dir, "foo", "registry.go")

	var stdout bytes.Buffer
	err := run(options{
		input:    testService,
		includes: []string{testCommon},
		output:   filepath.Join(dir, "qmi-client-foo"),
		goOutput: goPath,
	}, &stdout)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustContain(t, "stdout", stdout.String(), "  generated "+goPath+"\n")

	code := readFile(t, goPath)
	f, err := parser.ParseFile(token.NewFileSet(), goPath, code, parser.ImportsOnly)
	if err != nil {
		t.Fatalf("registry does not parse: %v", err)
	}
	if f.Name.Name != "foo" {
		t.Errorf("package = %q, want %q (from directory)", f.Name.Name, "foo")
	}
	mustContain(t, "registry", code, "MessageFooDoThing")
	mustContain(t, "registry", code, "qmiclient.ServiceSpec")
}

func TestRunGoRegistryExplicitPackage(t *testing.T) {
	dir := t.TempDir()
	goPath := filepath.Join(dir, "registry.go")

	err := run(options{
		input:     testService,
		includes:  []string{testCommon},
		output:    filepath.Join(dir, "qmi-client-foo"),
		goOutput:  goPath,
		goPackage: "qmifoo",
	}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustContain(t, "registry", readFile(t, goPath), "package qmifoo")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		opts options
		want string
	}{
		{
			name: "missing input",
			opts: options{input: filepath.Join(dir, "nope.json"), output: filepath.Join(dir, "x")},
			want: "loading service definition",
		},
		{
			name: "missing include",
			opts: options{input: testService, includes: []string{filepath.Join(dir, "nope.json")}, output: filepath.Join(dir, "x")},
			want: "loading service definition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.opts, &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a.json, ,b.json,")
	if len(got) != 2 || got[0] != "a.json" || got[1] != "b.json" {
		t.Errorf("splitList = %q", got)
	}
	if splitList("") != nil {
		t.Error("empty list should be nil")
	}
}
