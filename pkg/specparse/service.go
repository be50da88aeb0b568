// Package specparse loads libqmi service definitions into the message model.
//
// Definitions are JSON documents with full-line "//" comments: a list of
// objects typed Service, Client, Message or Indication. Common field
// definitions referenced through "common-ref" live in separate include files.
// JSON is a YAML subset, so the documents are decoded with yaml.v3 and YAML
// spellings of the same structure load too.
package specparse

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/freedesktop/libqmi/pkg/model"
	"github.com/freedesktop/libqmi/pkg/naming"
)

// Object types of a service definition.
const (
	TypeService          = "Service"
	TypeClient           = "Client"
	TypeMessage          = "Message"
	TypeIndication       = "Indication"
	TypeMessageIDEnum    = "Message-ID-Enum"
	TypeIndicationIDEnum = "Indication-ID-Enum"
)

const (
	scopeLibraryOnly = "library-only"
	messagePrefix    = "QMI Message"
	indicationPrefix = "QMI Indication"
)

var (
	ErrUnknownType      = errors.New("unknown object type")
	ErrServiceMismatch  = errors.New("message belongs to another service")
	ErrUnknownCommonRef = errors.New("unknown common-ref")
	ErrInvalidID        = errors.New("invalid message id")
	ErrMultipleService  = errors.New("more than one Service object")
)

// RawObject is one top-level entry of a definition file.
type RawObject struct {
	Name      string     `yaml:"name"`
	Type      string     `yaml:"type"`
	Service   string     `yaml:"service"`
	ID        string     `yaml:"id"`
	Since     string     `yaml:"since"`
	Vendor    string     `yaml:"vendor"`
	Abort     string     `yaml:"abort"`
	Scope     string     `yaml:"scope"`
	CommonRef string     `yaml:"common-ref"`
	Input     []RawField `yaml:"input"`
	Output    []RawField `yaml:"output"`
}

// RawField is one TLV of a message bundle, or a reference to a common one.
type RawField struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Since     string `yaml:"since"`
	CommonRef string `yaml:"common-ref"`
}

// RawServiceDef is a parsed but unresolved definition file.
type RawServiceDef struct {
	Objects []RawObject
}

// ServiceDef is a resolved definition: the client and its messages in file
// order.
type ServiceDef struct {
	Service  model.Service
	Client   model.Client
	Messages *model.MessageList
}

// ParseRawServiceDef decodes a definition without resolving it.
func ParseRawServiceDef(data []byte) (*RawServiceDef, error) {
	var objects []RawObject
	if err := yaml.Unmarshal(StripComments(data), &objects); err != nil {
		return nil, fmt.Errorf("parsing service def: %w", err)
	}
	return &RawServiceDef{Objects: objects}, nil
}

// ParseServiceDef decodes and resolves a definition. Common references are
// looked up in the definition itself first, then in commons in order.
func ParseServiceDef(data []byte, commons ...*RawCommonDefs) (*ServiceDef, error) {
	raw, err := ParseRawServiceDef(data)
	if err != nil {
		return nil, err
	}
	return raw.Resolve(commons...)
}

// LoadServiceDef loads a definition file and the common definition files it
// refers to.
func LoadServiceDef(path string, includePaths ...string) (*ServiceDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	commons := make([]*RawCommonDefs, 0, len(includePaths))
	for _, p := range includePaths {
		c, err := LoadCommonDefs(p)
		if err != nil {
			return nil, err
		}
		commons = append(commons, c)
	}
	def, err := ParseServiceDef(data, commons...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Resolve builds the model from the raw objects.
func (r *RawServiceDef) Resolve(commons ...*RawCommonDefs) (*ServiceDef, error) {
	refs := newCommonIndex(append([]*RawCommonDefs{commonsOf(r.Objects)}, commons...)...)

	var (
		service    model.Service
		clientName string
		since      string
		objects    []RawObject
	)
	for _, o := range r.Objects {
		if o.CommonRef != "" {
			continue
		}
		switch o.Type {
		case TypeService:
			if service.ID != "" {
				return nil, fmt.Errorf("%w: %q and %q", ErrMultipleService, service.ID, o.Name)
			}
			service = model.Service{ID: o.Name}
		case TypeClient:
			clientName, since = o.Name, o.Since
		case TypeMessage, TypeIndication:
			objects = append(objects, o)
		case TypeMessageIDEnum, TypeIndicationIDEnum:
			// Id enums are derived from the messages.
		default:
			return nil, fmt.Errorf("%w: %q (%s)", ErrUnknownType, o.Type, o.Name)
		}
	}

	client, err := model.NewClient(clientName, service, since)
	if err != nil {
		return nil, err
	}

	messages := make([]model.Message, 0, len(objects))
	for _, o := range objects {
		m, err := buildMessage(service, o, refs)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	list, err := model.NewMessageList(messages...)
	if err != nil {
		return nil, err
	}

	return &ServiceDef{Service: service, Client: client, Messages: list}, nil
}

func buildMessage(service model.Service, o RawObject, refs commonIndex) (model.Message, error) {
	if o.Service != "" && !strings.EqualFold(o.Service, service.ID) {
		return model.Message{}, fmt.Errorf("%w: %s %q is in %q, not %q", ErrServiceMismatch, o.Type, o.Name, o.Service, service.ID)
	}

	kind, prefix := model.KindRequest, messagePrefix
	if o.Type == TypeIndication {
		kind, prefix = model.KindIndication, indicationPrefix
	}
	full := prefix + " " + service.ID + " " + o.Name

	id, err := parseID(o.ID)
	if err != nil {
		return model.Message{}, fmt.Errorf("%s %q: %w", o.Type, o.Name, err)
	}
	input, err := refs.resolve(o.Input)
	if err != nil {
		return model.Message{}, fmt.Errorf("%s %q input: %w", o.Type, o.Name, err)
	}
	output, err := refs.resolve(o.Output)
	if err != nil {
		return model.Message{}, fmt.Errorf("%s %q output: %w", o.Type, o.Name, err)
	}

	m := model.Message{
		Name:       o.Name,
		FullName:   full,
		Kind:       kind,
		IDConstant: naming.UnderscoreUpper(full),
		ID:         id,
		Vendor:     o.Vendor,
		Since:      o.Since,
		Static:     o.Scope == scopeLibraryOnly,
		Abort:      o.Abort == "yes",
		Output:     model.NewBundle(full+" Output", output...),
	}
	if kind != model.KindIndication {
		m.Input = model.NewBundle(full+" Input", input...)
	}
	return m, nil
}

func parseID(s string) (uint16, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: missing", ErrInvalidID)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return uint16(v), nil
}
