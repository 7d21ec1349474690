package helpers

import (
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"
)

// "Counting objects:  45% (9/20)" as sent on the clone side band
var progressRegex = regexp.MustCompile(`^([A-Za-z ]+):\s+\d+%\s+\((\d+)/(\d+)\)`)

const progressTemplate = `{{string . "prefix"}} {{counters . }} {{bar . }} {{percent . }}`

// CloneProgress turns the progress messages of a clone into a progress bar,
// one bar per stage.
type CloneProgress struct {
	out   io.Writer
	bar   *pb.ProgressBar
	stage string
	buf   []byte
}

func NewCloneProgress(out io.Writer) *CloneProgress {
	return &CloneProgress{out: out}
}

func (p *CloneProgress) Write(b []byte) (int, error) {
	p.buf = append(p.buf, b...)
	for {
		i := bytes.IndexAny(p.buf, "\r\n")
		if i < 0 {
			break
		}
		p.update(string(p.buf[:i]))
		p.buf = p.buf[i+1:]
	}
	return len(b), nil
}

func (p *CloneProgress) update(line string) {
	match := progressRegex.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return
	}
	stage := strings.TrimSpace(match[1])
	cur, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil {
		return
	}
	total, err := strconv.ParseInt(match[3], 10, 64)
	if err != nil {
		return
	}

	if p.bar == nil || stage != p.stage {
		p.Finish()
		p.stage = stage
		p.bar = pb.New64(total)
		p.bar.SetTemplateString(progressTemplate)
		p.bar.Set("prefix", stage+":")
		p.bar.SetWriter(p.out)
		p.bar.Start()
	}
	p.bar.SetTotal(total)
	p.bar.SetCurrent(cur)
}

// Finish completes the bar of the current stage, if any.
func (p *CloneProgress) Finish() {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
	p.bar = nil
}
