package summary

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/eventhub/backend/internal/domain/event"
)

// Fragment chunking bounds, in words. The size cycles deterministically
// through [minFragmentWords, maxFragmentWords] so partial output resembles
// progressive generation while staying reproducible.
const (
	minFragmentWords = 2
	maxFragmentWords = 5
)

// Fragment is one incremental piece of a streamed summary
type Fragment struct {
	Text string
	// Delay is the synthetic generation latency attached to this fragment
	Delay time.Duration
}

// Generator produces deterministic event summaries as a lazy fragment
// sequence. It performs no I/O; the per-fragment delay stands in for model
// latency and is derived from the fragment content.
type Generator struct {
	delayBase time.Duration
	delayUnit time.Duration
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithFragmentDelay overrides the synthetic latency parameters. A fragment
// of n bytes is delayed by base + (n mod 10) * unit. Zero values disable
// the delay entirely, which tests rely on.
func WithFragmentDelay(base, unit time.Duration) GeneratorOption {
	return func(g *Generator) {
		g.delayBase = base
		g.delayUnit = unit
	}
}

// NewGenerator creates a Generator with 50-150ms per-fragment latency
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		delayBase: 50 * time.Millisecond,
		delayUnit: 10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Compose renders the full summary text for a public event. The output is
// a pure function of the projection: no randomness, no clock reads beyond
// the IsUpcoming flag already captured in the projection.
func (g *Generator) Compose(ev event.PublicEvent) string {
	hours := int(math.Ceil(ev.EndAt.Sub(ev.StartAt).Hours()))
	dateStr := ev.StartAt.Format("Monday, January 2, 2006")
	timeStr := ev.StartAt.Format("3:04 PM")

	var closing string
	switch {
	case ev.Status == event.StatusCancelled:
		closing = "Please note that this event has been cancelled."
	case ev.IsUpcoming:
		closing = "This is an upcoming event and registrations are open."
	default:
		closing = "This event has already taken place."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s is scheduled to take place at %s on %s starting at %s. ", ev.Title, ev.Location, dateStr, timeStr)
	fmt.Fprintf(&b, "The event is expected to last approximately %d hours. ", hours)
	b.WriteString(closing)
	b.WriteString(" Attendees can expect a well-organized programme with time for questions and informal discussion. ")
	b.WriteString("For further details, please contact the event organizers.")
	return b.String()
}

// fragments splits the composed text on word boundaries into chunks of
// 2-5 words, chunk size cycling with the word index
func (g *Generator) fragments(text string) []Fragment {
	words := strings.Fields(text)
	fragments := make([]Fragment, 0, len(words)/minFragmentWords+1)

	for i := 0; i < len(words); {
		size := minFragmentWords + i%(maxFragmentWords-minFragmentWords+1)
		if i+size > len(words) {
			size = len(words) - i
		}
		chunk := strings.Join(words[i:i+size], " ")
		fragments = append(fragments, Fragment{
			Text:  chunk,
			Delay: g.delayBase + time.Duration(len(chunk)%10)*g.delayUnit,
		})
		i += size
	}
	return fragments
}

// Stream returns a fresh pull iterator over the summary fragments for the
// given projection. Every stream for the same projection drains to the
// same full text; streams share no state.
func (g *Generator) Stream(ctx context.Context, ev event.PublicEvent) *FragmentStream {
	return &FragmentStream{
		ctx:       ctx,
		fragments: g.fragments(g.Compose(ev)),
	}
}

// FragmentStream is a single-consumer pull iterator. Next blocks for the
// fragment's synthetic delay and honors context cancellation between
// fragments.
type FragmentStream struct {
	ctx       context.Context
	fragments []Fragment
	pos       int
	err       error
}

// Next yields the next fragment. It returns false when the sequence is
// exhausted or the context was cancelled; Err distinguishes the two.
func (s *FragmentStream) Next() (Fragment, bool) {
	if s.err != nil || s.pos >= len(s.fragments) {
		return Fragment{}, false
	}

	f := s.fragments[s.pos]
	if f.Delay > 0 {
		select {
		case <-s.ctx.Done():
			s.err = s.ctx.Err()
			return Fragment{}, false
		case <-time.After(f.Delay):
		}
	} else if err := s.ctx.Err(); err != nil {
		s.err = err
		return Fragment{}, false
	}

	s.pos++
	return f, true
}

// Err reports why the stream stopped early, or nil after a clean drain
func (s *FragmentStream) Err() error {
	return s.err
}
