package progress

import (
	"fmt"

	"github.com/pcj/mobyprogress"
)

const streamNewline = "\r\n"

type rawProgressFormatter struct{}

func (sf *rawProgressFormatter) formatStatus(id, format string, a ...interface{}) []byte {
	if id != "" {
		format = id + ": " + format
	}
	return []byte(fmt.Sprintf(format, a...) + streamNewline)
}

func (sf *rawProgressFormatter) formatProgress(id, action string, prog mobyprogress.Progress) []byte {
	counts := countsString(prog)
	if counts == "" {
		return []byte(action + streamNewline)
	}
	return []byte(action + " " + counts + "\r")
}

// countsString renders "current/total units", or "" when there is nothing
// to count.
func countsString(prog mobyprogress.Progress) string {
	if prog.HideCounts || prog.Current <= 0 && prog.Total <= 0 {
		return ""
	}
	units := prog.Units
	if units != "" {
		units = " " + units
	}
	if prog.Total <= 0 {
		return fmt.Sprintf("%d%s", prog.Current, units)
	}
	return fmt.Sprintf("%d/%d%s", prog.Current, prog.Total, units)
}
