package hal

import "strings"

// Boot command line keys recognized by InitConsole.
const (
	// CmdLineFont selects a console font by name.
	CmdLineFont = "consoleFont"

	// CmdLineBuffer selects between "single" and "double" buffering.
	CmdLineBuffer = "consoleBuffer"

	// CmdLineFg and CmdLineBg override the default console colors. Values
	// are hex encoded RRGGBB triplets with an optional "#" or "0x" prefix.
	CmdLineFg = "consoleFg"
	CmdLineBg = "consoleBg"
)

// ParseCmdLine splits a boot command line into a map of key/value pairs.
// Arguments are separated by whitespace and have the form key=value. An
// argument without an "=" is stored with an empty value. If a key appears
// multiple times, the last value wins.
func ParseCmdLine(cmdLine string) map[string]string {
	args := make(map[string]string)

	for _, field := range strings.Fields(cmdLine) {
		key, value, _ := strings.Cut(field, "=")
		if key == "" {
			continue
		}
		args[key] = value
	}

	return args
}
