package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jacoelho/jcmp/internal/differ"
	"github.com/jacoelho/jcmp/internal/pathexpr"
)

const rootLabel = "$"

type palette struct {
	removed *color.Color
	added   *color.Color
	changed *color.Color
	muted   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
		changed: color.New(color.FgYellow),
		muted:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.removed, p.added, p.changed, p.muted} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (r *Reporter) textResult(result differ.Result) error {
	if result.Equal() {
		_, err := fmt.Fprintln(r.w, r.palette.added.Sprint("equal"))
		return err
	}

	for _, rec := range result.Differences {
		if _, err := fmt.Fprintln(r.w, r.textRecord(rec)); err != nil {
			return err
		}
		if line, ok := r.inlineDiff(rec); ok {
			if _, err := fmt.Fprintln(r.w, "    "+line); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(r.w, r.palette.muted.Sprintf("%d difference(s): %d missing, %d extra, %d changed",
		len(result.Differences),
		result.Count(differ.MissingInRight),
		result.Count(differ.ExtraInRight),
		result.Count(differ.ValueMismatch)))
	return err
}

func (r *Reporter) textRecord(rec differ.Record) string {
	path := displayPath(rec.Path)

	switch rec.Kind {
	case differ.MissingInRight:
		return r.palette.removed.Sprintf("- %s: %s", path, rec.Left)
	case differ.ExtraInRight:
		return r.palette.added.Sprintf("+ %s: %s", path, rec.Right)
	default:
		return r.palette.changed.Sprintf("~ %s: %s → %s", path, rec.Left, rec.Right)
	}
}

// inlineDiff marks deleted runs as [-text-] and inserted runs as {+text+}
// for mismatched string pairs.
func (r *Reporter) inlineDiff(rec differ.Record) (string, bool) {
	if rec.Kind != differ.ValueMismatch || rec.Left == nil || rec.Right == nil {
		return "", false
	}
	left, ok := rec.Left.AsString()
	if !ok {
		return "", false
	}
	right, ok := rec.Right.AsString()
	if !ok {
		return "", false
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(left, right, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(r.palette.removed.Sprint("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			b.WriteString(r.palette.added.Sprint("{+" + d.Text + "+}"))
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String(), true
}

func displayPath(p pathexpr.Path) string {
	if len(p) == 0 {
		return rootLabel
	}
	return p.String()
}
