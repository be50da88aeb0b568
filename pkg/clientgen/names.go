package clientgen

import (
	"strings"

	"github.com/freedesktop/libqmi/pkg/model"
	"github.com/freedesktop/libqmi/pkg/naming"
)

// Fixed symbols of the runtime library the generated code links against.
const (
	parentType       = "QmiClient"
	parentClassType  = "QmiClientClass"
	parentTypeMacro  = "QMI_TYPE_CLIENT"
	abortTimeoutSecs = 30
)

// clientNames holds every derived form of the client and service names.
type clientNames struct {
	underscore string // qmi_client_dms
	camel      string // QmiClientDms
	hyphened   string // qmi-client-dms
	stem       string // CLIENT_DMS

	service      string // DMS
	serviceLower string // dms
	serviceCamel string // Dms
}

func newClientNames(c model.Client) clientNames {
	return clientNames{
		underscore:   naming.Underscore(c.Name),
		camel:        naming.CamelCase(c.Name),
		hyphened:     naming.Dashed(c.Name),
		stem:         naming.ConstantStem(c.Name),
		service:      strings.ToUpper(c.Service.ID),
		serviceLower: strings.ToLower(c.Service.ID),
		serviceCamel: naming.CapWords(c.Service.ID),
	}
}

func (n clientNames) classCamel() string { return n.camel + "Class" }

func (n clientNames) typeMacro() string { return "QMI_TYPE_" + n.stem }

func (n clientNames) castMacro() string { return "QMI_" + n.stem }

func (n clientNames) classMacro() string { return "QMI_" + n.stem + "_CLASS" }

func (n clientNames) isMacro() string { return "QMI_IS_" + n.stem }

func (n clientNames) isClassMacro() string { return "QMI_IS_" + n.stem + "_CLASS" }

func (n clientNames) getClassMacro() string { return "QMI_" + n.stem + "_GET_CLASS" }

func (n clientNames) getType() string { return n.underscore + "_get_type" }

// The service's Abort message symbols.
func (n clientNames) abortInputCamel() string {
	return "QmiMessage" + n.serviceCamel + "AbortInput"
}

func (n clientNames) abortOutputCamel() string {
	return "QmiMessage" + n.serviceCamel + "AbortOutput"
}

func (n clientNames) abortPrefix() string {
	return "qmi_message_" + n.serviceLower + "_abort"
}

// messageNames holds the derived forms of one message's names.
type messageNames struct {
	underscore       string // get_ids
	fullUnderscore   string // qmi_message_dms_get_ids
	signalID         string // SIGNAL_EVENT_REPORT
	signalName       string // event-report
	inputCamel       string
	inputUnderscore  string
	outputCamel      string
	outputUnderscore string
	outputTypeMacro  string
	linkName         string // Event-Report
	method           string // qmi_client_dms_get_ids
	finish           string
	ready            string
	abortReady       string
}

func newMessageNames(client clientNames, m model.Message) messageNames {
	u := naming.Underscore(m.Name)
	return messageNames{
		underscore:       u,
		fullUnderscore:   naming.Underscore(m.FullName),
		signalID:         "SIGNAL_" + naming.UnderscoreUpper(m.Name),
		signalName:       naming.Dashed(m.Name),
		inputCamel:       naming.CamelCase(m.Input.FullName),
		inputUnderscore:  naming.Underscore(m.Input.FullName),
		outputCamel:      naming.CamelCase(m.Output.FullName),
		outputUnderscore: naming.Underscore(m.Output.FullName),
		outputTypeMacro:  naming.TypeMacro(naming.UnderscoreUpper(m.Output.FullName)),
		linkName:         strings.ReplaceAll(m.Name, " ", "-"),
		method:           client.underscore + "_" + u,
		finish:           client.underscore + "_" + u + "_finish",
		ready:            u + "_ready",
		abortReady:       u + "_abort_ready",
	}
}
