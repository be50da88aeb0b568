// Package naming derives the identifier forms used by the QMI client generator.
//
// Every function is pure: the same logical name always produces the same
// output. Logical names are space separated words as they appear in service
// definitions ("QMI Client DMS", "Get Signal Strength"), and each derived
// form matches a C naming convention:
//
//	Underscore("QMI Client DMS")      // qmi_client_dms
//	UnderscoreUpper("Event Report")   // EVENT_REPORT
//	CamelCase("QMI Client DMS")       // QmiClientDms
//	Dashed("QMI Client DMS")          // qmi-client-dms
//	ConstantStem("QMI Client DMS")    // CLIENT_DMS
//
// Callers are responsible for name uniqueness.
package naming
