package specparse

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/freedesktop/libqmi/pkg/model"
)

// RawCommonDefs holds the common field definitions of an include file,
// keyed by their common-ref name.
type RawCommonDefs struct {
	Fields map[string]RawField
}

// ParseCommonDefs parses an include file. Objects without a common-ref key
// are ignored.
func ParseCommonDefs(data []byte) (*RawCommonDefs, error) {
	var objects []RawObject
	if err := yaml.Unmarshal(StripComments(data), &objects); err != nil {
		return nil, fmt.Errorf("parsing common defs: %w", err)
	}
	return commonsOf(objects), nil
}

// LoadCommonDefs loads and parses an include file.
func LoadCommonDefs(path string) (*RawCommonDefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c, err := ParseCommonDefs(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func commonsOf(objects []RawObject) *RawCommonDefs {
	c := &RawCommonDefs{Fields: make(map[string]RawField)}
	for _, o := range objects {
		if o.CommonRef == "" {
			continue
		}
		c.Fields[o.CommonRef] = RawField{Name: o.Name, Type: o.Type, Since: o.Since}
	}
	return c
}

// commonIndex resolves references, first match wins.
type commonIndex []*RawCommonDefs

func newCommonIndex(defs ...*RawCommonDefs) commonIndex {
	return commonIndex(defs)
}

func (idx commonIndex) lookup(ref string) (RawField, bool) {
	for _, d := range idx {
		if d == nil {
			continue
		}
		if f, ok := d.Fields[ref]; ok {
			return f, true
		}
	}
	return RawField{}, false
}

// resolve turns raw fields into model fields. Keys set on a referencing
// field override the common definition.
func (idx commonIndex) resolve(raw []RawField) ([]model.Field, error) {
	out := make([]model.Field, 0, len(raw))
	for _, f := range raw {
		if f.CommonRef != "" {
			base, ok := idx.lookup(f.CommonRef)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownCommonRef, f.CommonRef)
			}
			if f.Name == "" {
				f.Name = base.Name
			}
			if f.Since == "" {
				f.Since = base.Since
			}
		}
		out = append(out, model.Field{Name: f.Name, Since: f.Since})
	}
	return out, nil
}

// StripComments blanks every line whose first non-space characters are
// "//" and expands leading tabs, which YAML does not accept as indentation.
func StripComments(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		trimmed := bytes.TrimLeft(line, " \t")
		if bytes.HasPrefix(trimmed, []byte("//")) {
			lines[i] = nil
			continue
		}
		if indent := len(line) - len(trimmed); indent > 0 && bytes.IndexByte(line[:indent], '\t') >= 0 {
			lines[i] = append(bytes.Repeat([]byte(" "), indent), trimmed...)
		}
	}
	return bytes.Join(lines, []byte("\n"))
}
