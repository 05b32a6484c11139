package progress

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pcj/mobyprogress"
)

func TestWriteProgress(t *testing.T) {
	for name, tc := range map[string]struct {
		write func(out mobyprogress.Output)
		want  string
	}{
		"degenerate": {
			write: func(out mobyprogress.Output) {},
		},
		"message": {
			write: func(out mobyprogress.Output) {
				Messagef(out, "check", "%d files", 3)
			},
			want: "check: 3 files\r\n",
		},
		"message without id": {
			write: func(out mobyprogress.Output) {
				Message(out, "", "done")
			},
			want: "done\r\n",
		},
		"action": {
			write: func(out mobyprogress.Output) {
				Updatef(out, "load", "loading %s", "a.star")
			},
			want: "loading a.star\r\n",
		},
		"steps": {
			write: func(out mobyprogress.Output) {
				Step(out, "check", "analyzing", 1, 2, "files")
				Step(out, "check", "analyzing", 2, 2, "files")
			},
			want: "analyzing 1/2 files\ranalyzing 2/2 files\r\r\n",
		},
		"hidden counts": {
			write: func(out mobyprogress.Output) {
				out.WriteProgress(mobyprogress.Progress{Action: "working", Current: 5, HideCounts: true})
			},
			want: "working\r\n",
		},
		"no total": {
			write: func(out mobyprogress.Output) {
				out.WriteProgress(mobyprogress.Progress{Action: "scanned", Current: 7})
			},
			want: "scanned 7\r",
		},
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.write(NewProgressOutput(&buf))
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}
