package clientgen

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freedesktop/libqmi/pkg/model"
)

var update = flag.Bool("update", false, "rewrite golden files")

// assertGolden compares content with testdata/golden/<name>.
func assertGolden(t *testing.T, name, content string) {
	t.Helper()
	p := filepath.Join("testdata", "golden", name)
	if *update {
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return
	}
	want, err := os.ReadFile(p)
	require.NoErrorf(t, err, "read golden %s", p)
	require.Equal(t, string(want), content)
}

func mustContain(t *testing.T, code, substr string) {
	t.Helper()
	if !strings.Contains(code, substr) {
		t.Errorf("generated code missing %q", substr)
	}
}

func mustNotContain(t *testing.T, code, substr string) {
	t.Helper()
	if strings.Contains(code, substr) {
		t.Errorf("generated code should not contain %q", substr)
	}
}

var spaces = regexp.MustCompile(`\s+`)

// flat collapses every whitespace run to one space so assertions do not
// depend on argument wrapping.
func flat(code string) string {
	return spaces.ReplaceAllString(code, " ")
}

func request(service, name string, in, out []model.Field) model.Message {
	full := "QMI Message " + service + " " + name
	return model.Message{
		Name:       name,
		FullName:   full,
		Kind:       model.KindRequest,
		IDConstant: strings.ToUpper(strings.ReplaceAll(full, " ", "_")),
		Input:      model.NewBundle(full+" Input", in...),
		Output:     model.NewBundle(full+" Output", out...),
	}
}

func indication(service, name string, out []model.Field) model.Message {
	full := "QMI Indication " + service + " " + name
	return model.Message{
		Name:       name,
		FullName:   full,
		Kind:       model.KindIndication,
		IDConstant: strings.ToUpper(strings.ReplaceAll(full, " ", "_")),
		Output:     model.NewBundle(full+" Output", out...),
	}
}

func fields(names ...string) []model.Field {
	out := make([]model.Field, len(names))
	for i, n := range names {
		out[i] = model.Field{Name: n}
	}
	return out
}

func mustList(t *testing.T, msgs ...model.Message) *model.MessageList {
	t.Helper()
	l, err := model.NewMessageList(msgs...)
	require.NoError(t, err)
	return l
}

func mustGenerator(t *testing.T, client model.Client, l *model.MessageList) *Generator {
	t.Helper()
	g, err := New(client, l)
	require.NoError(t, err)
	return g
}

// fooService is the fixture behind the golden files.
func fooService(t *testing.T) *Generator {
	t.Helper()
	client, err := model.NewClient("QMI Client FOO", model.Service{ID: "FOO"}, "1.0")
	require.NoError(t, err)

	doThing := request("FOO", "Do Thing", fields("Value"), fields("Result"))
	doThing.ID = 0x0001
	doThing.Since = "1.2"
	doThing.Abort = true

	happened := indication("FOO", "Thing Happened", fields("State"))
	happened.ID = 0x0001
	happened.Since = "1.2"

	reset := request("FOO", "Reset", nil, fields("Result"))
	reset.ID = 0x0002
	reset.Since = "1.0"
	reset.Vendor = "0x46"

	internal := request("FOO", "Internal", nil, fields("Result"))
	internal.ID = 0x0003
	internal.Since = "1.0"
	internal.Static = true

	ping := indication("FOO", "Ping", nil)
	ping.ID = 0x0002
	ping.Since = "1.4"

	return mustGenerator(t, client, mustList(t, doThing, happened, reset, internal, ping))
}

// exampleClient builds the ExampleClient/FOO fixture: one abortable
// DoThing request and one ThingHappened indication.
func exampleClient(t *testing.T, indicationFields bool) *Generator {
	t.Helper()
	client, err := model.NewClient("ExampleClient", model.Service{ID: "FOO"}, "1.0")
	require.NoError(t, err)

	doThing := request("FOO", "DoThing", fields("In"), fields("Out"))
	doThing.Abort = true

	var out []model.Field
	if indicationFields {
		out = fields("Event")
	}
	happened := indication("FOO", "ThingHappened", out)

	return mustGenerator(t, client, mustList(t, doThing, happened))
}
