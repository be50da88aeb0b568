package naming

import "testing"

func TestUnderscore(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"QMI Client DMS", "qmi_client_dms"},
		{"Get Signal-Strength", "get_signal_strength"},
		{"QMI Message NAS Event Report", "qmi_message_nas_event_report"},
		{"already_underscored", "already_underscored"},
	}
	for _, tt := range tests {
		if got := Underscore(tt.in); got != tt.want {
			t.Errorf("Underscore(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnderscoreUpper(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Event Report", "EVENT_REPORT"},
		{"Serving System", "SERVING_SYSTEM"},
		{"Get-Ids", "GET_IDS"},
	}
	for _, tt := range tests {
		if got := UnderscoreUpper(tt.in); got != tt.want {
			t.Errorf("UnderscoreUpper(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCamelCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"QMI Client DMS", "QmiClientDms"},
		{"QMI Message DMS Get IDs Output", "QmiMessageDmsGetIdsOutput"},
		{"uim_slot-status", "UimSlotStatus"},
		{"  spaced   out  ", "SpacedOut"},
		{"ExampleClient", "Exampleclient"},
		{"3gpp Info", "3gppInfo"},
	}
	for _, tt := range tests {
		if got := CamelCase(tt.in); got != tt.want {
			t.Errorf("CamelCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDashed(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"QMI Client DMS", "qmi-client-dms"},
		{"Event Report", "event-report"},
		{"slot_status Changed", "slot-status-changed"},
	}
	for _, tt := range tests {
		if got := Dashed(tt.in); got != tt.want {
			t.Errorf("Dashed(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCapWords(t *testing.T) {
	if got := CapWords("NAS"); got != "Nas" {
		t.Errorf("CapWords(NAS) = %q", got)
	}
	if got := CapWords("wds  abort"); got != "Wds Abort" {
		t.Errorf("CapWords = %q", got)
	}
}

func TestConstantStem(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"QMI Client DMS", "CLIENT_DMS"},
		{"qmi Client NAS", "CLIENT_NAS"},
		{"ExampleClient", "EXAMPLECLIENT"},
	}
	for _, tt := range tests {
		if got := ConstantStem(tt.in); got != tt.want {
			t.Errorf("ConstantStem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTypeMacro(t *testing.T) {
	got := TypeMacro(UnderscoreUpper("QMI Indication NAS Event Report Output"))
	if got != "QMI_TYPE_INDICATION_NAS_EVENT_REPORT_OUTPUT" {
		t.Errorf("TypeMacro = %q", got)
	}
	if got := TypeMacro("FOO_BAR_OUTPUT"); got != "QMI_TYPE_FOO_BAR_OUTPUT" {
		t.Errorf("TypeMacro without prefix = %q", got)
	}
}

func TestDerivationIsDeterministic(t *testing.T) {
	name := "QMI Client Wireless Data-Service"
	for i := 0; i < 3; i++ {
		if Underscore(name) != "qmi_client_wireless_data_service" ||
			CamelCase(name) != "QmiClientWirelessDataService" ||
			Dashed(name) != "qmi-client-wireless-data-service" {
			t.Fatalf("iteration %d produced different output", i)
		}
	}
}
