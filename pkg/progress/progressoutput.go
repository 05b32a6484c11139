package progress

import (
	"io"

	"github.com/pcj/mobyprogress"
)

// NewProgressOutput returns an output that writes raw progress lines to out.
func NewProgressOutput(out io.Writer) mobyprogress.Output {
	return &progressOutput{sf: &rawProgressFormatter{}, out: out, newLines: true}
}

type formatProgress interface {
	formatStatus(id, format string, a ...interface{}) []byte
	formatProgress(id, action string, prog mobyprogress.Progress) []byte
}

type progressOutput struct {
	sf       formatProgress
	out      io.Writer
	newLines bool
}

// WriteProgress formats progress information.
func (out *progressOutput) WriteProgress(prog mobyprogress.Progress) error {
	var formatted []byte
	if prog.Message != "" {
		formatted = out.sf.formatStatus(prog.ID, prog.Message)
	} else {
		formatted = out.sf.formatProgress(prog.ID, prog.Action, prog)
	}
	_, err := out.out.Write(formatted)
	if err != nil {
		return err
	}

	if out.newLines && prog.LastUpdate {
		_, err = out.out.Write(out.sf.formatStatus("", ""))
		return err
	}

	return nil
}
