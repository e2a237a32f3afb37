package scene

import (
	"sync"
	"time"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/casteljau/anim"
)

// DefaultNoticeDuration is the time a notice stays visible.
const DefaultNoticeDuration = 3 * time.Second

// Formula is a formula text anchored at a world point.
type Formula struct {
	Text   string
	Anchor casteljau.Point
}

// Placed is a formula projected to the screen.
type Placed struct {
	Text string
	X, Y float64
}

type shownFormula struct {
	Formula
	expiry *anim.Delay
}

// Overlay shows formulas and user notices for a limited time. Expiry is
// measured in unpaused time: while animations are paused, formulas stay.
type Overlay struct {
	env            *anim.Env
	NoticeDuration time.Duration
	mu             sync.Mutex
	formulas       *treemap.Map // int -> *shownFormula, in order of appearance
	nextID         int
	notice         string
	noticeExpiry   *anim.Delay
}

// NewOverlay creates an empty overlay for an animation environment.
func NewOverlay(env *anim.Env) *Overlay {
	return &Overlay{
		env:            env,
		NoticeDuration: DefaultNoticeDuration,
		formulas:       treemap.NewWithIntComparator(),
	}
}

// ShowFormula displays text next to anchor for duration d.
func (o *Overlay) ShowFormula(text string, anchor casteljau.Point, d time.Duration) {
	o.mu.Lock()
	o.nextID++
	id := o.nextID
	sf := &shownFormula{Formula: Formula{Text: text, Anchor: anchor}}
	o.formulas.Put(id, sf)
	o.mu.Unlock()
	tracer().Debugf("formula %q at %s for %v", text, anchor, d)
	sf.expiry = o.env.Delay(d, func() {
		o.mu.Lock()
		o.formulas.Remove(id)
		o.mu.Unlock()
	})
}

// Formulas returns the visible formulas, oldest first.
func (o *Overlay) Formulas() []Formula {
	o.mu.Lock()
	defer o.mu.Unlock()
	fs := make([]Formula, 0, o.formulas.Size())
	for _, v := range o.formulas.Values() {
		fs = append(fs, v.(*shownFormula).Formula)
	}
	return fs
}

// Placed returns the visible formulas, projected to the screen.
func (o *Overlay) Placed(proj Projector) []Placed {
	fs := o.Formulas()
	placed := make([]Placed, len(fs))
	for i, f := range fs {
		x, y := proj.ProjectToScreen(f.Anchor)
		placed[i] = Placed{Text: f.Text, X: x, Y: y}
	}
	return placed
}

// Notice shows a message to the user, replacing a previous one.
func (o *Overlay) Notice(msg string) {
	tracer().Infof("notice: %s", msg)
	o.mu.Lock()
	o.notice = msg
	prev := o.noticeExpiry
	o.mu.Unlock()
	prev.Clear()
	var dl *anim.Delay
	dl = o.env.Delay(o.NoticeDuration, func() {
		o.mu.Lock()
		if o.noticeExpiry == dl {
			o.notice = ""
			o.noticeExpiry = nil
		}
		o.mu.Unlock()
	})
	o.mu.Lock()
	o.noticeExpiry = dl
	o.mu.Unlock()
}

// NoticeText returns the current notice, or "".
func (o *Overlay) NoticeText() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.notice
}

// Clear removes every formula and the notice.
func (o *Overlay) Clear() {
	o.mu.Lock()
	shown := o.formulas.Values()
	o.formulas.Clear()
	o.notice = ""
	notice := o.noticeExpiry
	o.noticeExpiry = nil
	o.mu.Unlock()
	for _, v := range shown {
		v.(*shownFormula).expiry.Clear()
	}
	notice.Clear()
}
