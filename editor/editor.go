package editor

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"repo-link/errors"
)

// argBuilder returns the arguments that open path at line. line is zero when
// there is no line to jump to.
type argBuilder func(path string, line int) []string

// families maps each supported editor identifier to its argument convention.
// Supporting a new editor means adding an entry here.
var families = map[string]argBuilder{
	"vim":  vimArgs,
	"vi":   vimArgs,
	"nvim": vimArgs,
	"gvim": vimArgs,
	"mvim": vimArgs,

	"code":          codeArgs,
	"code-insiders": codeArgs,
	"codium":        codeArgs,

	"pycharm":    pycharmArgs,
	"pycharm.sh": pycharmArgs,
	"charm":      pycharmArgs,
}

// vim +42 a/b.py
func vimArgs(path string, line int) []string {
	if line <= 0 {
		return []string{path}
	}
	return []string{"+" + strconv.Itoa(line), path}
}

// code --goto a/b.py:42
func codeArgs(path string, line int) []string {
	if line <= 0 {
		return []string{path}
	}
	return []string{"--goto", path + ":" + strconv.Itoa(line)}
}

// pycharm a/b.py:42
func pycharmArgs(path string, line int) []string {
	if line <= 0 {
		return []string{path}
	}
	return []string{path + ":" + strconv.Itoa(line)}
}

// Editor is a resolved editor command.
type Editor struct {
	// ID is the table key, e.g. "nvim".
	ID    string
	exec  string
	extra []string
	build argBuilder
}

// Resolve turns an editor setting into an Editor. The setting may be a bare
// identifier ("nvim"), a path ("/usr/local/bin/code") or a command with
// leading arguments ("code --wait"); the identifier is the base name of the
// first word.
func Resolve(value string) (Editor, error) {
	words, err := shellquote.Split(value)
	if err != nil {
		return Editor{}, errors.Wrapf(err, errors.ErrUnsupportedEditor, "cannot parse editor %q", value)
	}
	if len(words) == 0 {
		return Editor{}, errors.New(errors.ErrNoEditor, "no editor configured")
	}

	id := strings.TrimSuffix(filepath.Base(words[0]), ".exe")
	build, ok := families[id]
	if !ok {
		return Editor{}, errors.Newf(errors.ErrUnsupportedEditor,
			"unsupported editor %q (supported: %s)", id, strings.Join(Supported(), ", ")).
			WithDetail("editor", id)
	}

	return Editor{
		ID:    id,
		exec:  words[0],
		extra: words[1:],
		build: build,
	}, nil
}

// Command returns the full argv that opens path at line.
func (e Editor) Command(path string, line int) []string {
	argv := make([]string, 0, 2+len(e.extra)+2)
	argv = append(argv, e.exec)
	argv = append(argv, e.extra...)
	return append(argv, e.build(path, line)...)
}

// Supported lists the known editor identifiers, sorted.
func Supported() []string {
	ids := make([]string, 0, len(families))
	for id := range families {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
