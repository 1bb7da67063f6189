package datetime

import (
	"strings"
	"time"
)

// DefaultSampleSize is the number of non-empty values checked during
// auto-detection.
const DefaultSampleSize = 1000

// maxReportedSamples bounds the values quoted in a FormatError.
const maxReportedSamples = 5

// Source records how a pattern was chosen.
type Source string

const (
	SourceExplicit Source = "explicit"
	SourceDetected Source = "detected"
)

// Resolution is the outcome of Resolve.
type Resolution struct {
	Pattern Pattern
	Source  Source
	// Checked is the number of non-empty values the pattern was verified against.
	Checked int
}

// Resolver picks a single pattern able to parse a set of values.
// The candidate list is copied on construction and never modified.
type Resolver struct {
	candidates []Pattern
	sampleSize int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSampleSize limits auto-detection to n evenly spaced non-empty values.
// Zero or a negative n checks every value.
func WithSampleSize(n int) Option {
	return func(r *Resolver) {
		r.sampleSize = n
	}
}

// NewResolver creates a resolver over an ordered candidate list. A nil or
// empty list falls back to DefaultCandidates.
func NewResolver(candidates []Pattern, opts ...Option) *Resolver {
	if len(candidates) == 0 {
		candidates = DefaultCandidates()
	}
	r := &Resolver{
		candidates: append([]Pattern(nil), candidates...),
		sampleSize: DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Candidates returns a copy of the ordered candidate list.
func (r *Resolver) Candidates() []Pattern {
	return append([]Pattern(nil), r.candidates...)
}

// Lookup compiles an explicit format. A format equal to a candidate's name
// (e.g. "YYYY-MM-DD") selects that candidate.
func (r *Resolver) Lookup(format string) (Pattern, error) {
	for _, c := range r.candidates {
		if c.Name == format {
			return c, nil
		}
	}
	return Compile("", format)
}

// Resolve determines the pattern for values.
//
// With an explicit format every non-empty value must parse; the first one
// that does not is reported. Otherwise the candidates are tried in order
// against a sample of the values and the first one that parses all of them
// wins.
func (r *Resolver) Resolve(values []string, explicitFormat string) (Resolution, error) {
	nonEmpty := compact(values)

	if explicitFormat != "" {
		p, err := r.Lookup(explicitFormat)
		if err != nil {
			return Resolution{}, err
		}
		for _, v := range nonEmpty {
			if _, err := p.Parse(v); err != nil {
				return Resolution{}, &FormatError{Format: explicitFormat, Value: v, Err: err}
			}
		}
		return Resolution{Pattern: p, Source: SourceExplicit, Checked: len(nonEmpty)}, nil
	}

	if len(nonEmpty) == 0 {
		return Resolution{}, &FormatError{Attempted: r.names(), Err: ErrNoValues}
	}

	sample := Sample(nonEmpty, r.sampleSize)
	for _, c := range r.candidates {
		if parsesAll(c, sample) {
			return Resolution{Pattern: c, Source: SourceDetected, Checked: len(sample)}, nil
		}
	}

	reported := sample
	if len(reported) > maxReportedSamples {
		reported = reported[:maxReportedSamples]
	}
	return Resolution{}, &FormatError{
		Attempted: r.names(),
		Samples:   append([]string(nil), reported...),
		Err:       ErrNoMatch,
	}
}

// ParseBounds parses the two range boundaries with one pattern.
//
// An explicit format is used as is. Otherwise the preferred pattern (usually
// the column's) is tried first, and when it does not fit both values the
// candidates are searched for one that does.
func (r *Resolver) ParseBounds(start, end, explicitFormat string, preferred Pattern) (time.Time, time.Time, Pattern, error) {
	for _, v := range []string{start, end} {
		if strings.TrimSpace(v) == "" {
			return time.Time{}, time.Time{}, Pattern{}, &FormatError{
				Format: explicitFormat,
				Value:  v,
				Err:    ErrEmptyBound,
			}
		}
	}

	var p Pattern
	switch {
	case explicitFormat != "":
		res, err := r.Resolve([]string{start, end}, explicitFormat)
		if err != nil {
			return time.Time{}, time.Time{}, Pattern{}, err
		}
		p = res.Pattern
	case !preferred.IsZero() && parsesAll(preferred, []string{start, end}):
		p = preferred
	default:
		res, err := NewResolver(r.candidates, WithSampleSize(0)).Resolve([]string{start, end}, "")
		if err != nil {
			return time.Time{}, time.Time{}, Pattern{}, err
		}
		p = res.Pattern
	}

	s, err := p.Parse(start)
	if err != nil {
		return time.Time{}, time.Time{}, Pattern{}, &FormatError{Format: p.Format, Value: start, Err: err}
	}
	e, err := p.Parse(end)
	if err != nil {
		return time.Time{}, time.Time{}, Pattern{}, &FormatError{Format: p.Format, Value: end, Err: err}
	}
	return s, e, p, nil
}

func (r *Resolver) names() []string {
	names := make([]string, len(r.candidates))
	for i, c := range r.candidates {
		names[i] = c.Name
	}
	return names
}

// Sample returns up to n values spread evenly over values, always including
// the first and the last. n <= 0 or n >= len(values) returns values unchanged.
func Sample(values []string, n int) []string {
	if n <= 0 || n >= len(values) {
		return values
	}
	if n == 1 {
		return values[:1]
	}
	out := make([]string, 0, n)
	last := len(values) - 1
	for i := 0; i < n; i++ {
		out = append(out, values[i*last/(n-1)])
	}
	return out
}

func parsesAll(p Pattern, values []string) bool {
	for _, v := range values {
		if _, err := p.Parse(v); err != nil {
			return false
		}
	}
	return true
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if IsNull(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// IsNull reports whether a raw cell holds no value.
func IsNull(v string) bool {
	return strings.TrimSpace(v) == ""
}
