package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LibraryPrefix is the logical prefix shared by every generated type name.
const LibraryPrefix = "QMI "

var (
	underscoreReplacer = strings.NewReplacer(" ", "_", "-", "_")
	camelReplacer      = strings.NewReplacer("_", " ", "-", " ")
	dashReplacer       = strings.NewReplacer("_", "-", " ", "-")
)

// Underscore converts "QMI Client DMS" to "qmi_client_dms".
func Underscore(name string) string {
	return strings.ToLower(underscoreReplacer.Replace(name))
}

// UnderscoreUpper converts "Event Report" to "EVENT_REPORT".
func UnderscoreUpper(name string) string {
	return strings.ToUpper(underscoreReplacer.Replace(name))
}

// CamelCase converts "QMI Client DMS" to "QmiClientDms".
// Underscores and dashes separate words like spaces do.
func CamelCase(name string) string {
	return strings.ReplaceAll(CapWords(camelReplacer.Replace(name)), " ", "")
}

// Dashed converts "QMI Client DMS" to "qmi-client-dms".
func Dashed(name string) string {
	return strings.ToLower(dashReplacer.Replace(name))
}

// CapWords splits name on whitespace, capitalizes each word (first letter
// upper case, the rest lower case) and joins the words with single spaces.
func CapWords(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// RemovePrefix returns s without prefix, or s unchanged when it does not
// start with prefix.
func RemovePrefix(s, prefix string) string {
	return strings.TrimPrefix(s, prefix)
}

// StripLibraryPrefix removes a leading "QMI " (any case) from a logical name.
func StripLibraryPrefix(name string) string {
	if len(name) >= len(LibraryPrefix) && strings.EqualFold(name[:len(LibraryPrefix)], LibraryPrefix) {
		return name[len(LibraryPrefix):]
	}
	return name
}

// ConstantStem converts "QMI Client DMS" to "CLIENT_DMS", the stem used in
// type macros such as QMI_TYPE_CLIENT_DMS.
func ConstantStem(name string) string {
	return UnderscoreUpper(StripLibraryPrefix(name))
}

// TypeMacro converts an underscore-upper type name such as
// "QMI_MESSAGE_DMS_RESET_OUTPUT" to its GType macro "QMI_TYPE_MESSAGE_DMS_RESET_OUTPUT".
func TypeMacro(upper string) string {
	return "QMI_TYPE_" + RemovePrefix(upper, "QMI_")
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return strings.ToLower(word)
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}
