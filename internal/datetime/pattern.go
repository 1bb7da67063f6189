// Package datetime resolves the datetime pattern of a column and converts raw
// cell text into timestamps.
//
// Patterns are written with strftime-style directives (%Y-%m-%d) and compiled
// into Go reference layouts, so parsing keeps the strict component range checks
// of time.Parse: a month of 13 or a 31st of February fails instead of rolling
// over into the next month.
package datetime

import (
	"fmt"
	"strings"
	"time"
)

// Pattern converts raw text into an absolute timestamp.
type Pattern struct {
	// Name is the human-readable descriptor (e.g. "YYYY-MM-DD").
	Name string
	// Format is the strftime-style source of the pattern (e.g. "%Y-%m-%d").
	Format string

	layout  string
	display string
	utc     bool
	// frac is set when the format has %f. time.Parse accepts a fraction
	// after a seconds token even when the layout has none.
	frac bool
}

// probe formats every Go layout token to text that differs from the token
// itself. A literal segment that does not survive formatting with probe
// would be misread by time.Parse.
var probe = time.Date(1999, time.December, 31, 11, 59, 58, 0, time.UTC)

var directives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "1",
	'd': "2",
	'e': "_2",
	'H': "15",
	'I': "3",
	'M': "4",
	'S': "5",
	'p': "PM",
	'b': "Jan",
	'h': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'j': "002",
	'z': "-0700",
	'Z': "MST",
	'T': "15:4:5",
	'F': "2006-1-2",
	'D': "1/2/06",
	'R': "15:4",
}

// padded overrides the lenient parse tokens with the zero-padded ones
// strftime prints.
var padded = map[byte]string{
	'm': "01",
	'd': "02",
	'M': "04",
	'S': "05",
	'T': "15:04:05",
	'F': "2006-01-02",
	'D': "01/02/06",
	'R': "15:04",
}

// Compile builds a Pattern from a strftime-style format. A trailing literal
// "Z" is treated as a UTC marker and stripped from values before parsing.
func Compile(name, format string) (Pattern, error) {
	if strings.TrimSpace(format) == "" {
		return Pattern{}, &FormatError{Format: format, Err: ErrUnsupportedFormat}
	}

	src := format
	utc := false
	if strings.HasSuffix(src, "Z") && !strings.HasSuffix(src, "%Z") {
		src = strings.TrimSuffix(src, "Z")
		utc = true
	}

	layout, display, frac, err := translate(src)
	if err != nil {
		return Pattern{}, &FormatError{Format: format, Err: err}
	}

	if name == "" {
		name = format
	}
	return Pattern{Name: name, Format: format, layout: layout, display: display, utc: utc, frac: frac}, nil
}

// MustCompile is like Compile but panics on an invalid format.
func MustCompile(name, format string) Pattern {
	p, err := Compile(name, format)
	if err != nil {
		panic(fmt.Sprintf("datetime: compile %q: %v", format, err))
	}
	return p
}

func translate(format string) (string, string, bool, error) {
	var layout, display, literal strings.Builder
	frac := false

	write := func(parse, show string) {
		layout.WriteString(parse)
		display.WriteString(show)
	}
	flush := func() error {
		if literal.Len() == 0 {
			return nil
		}
		lit := literal.String()
		literal.Reset()
		if probe.Format(lit) != lit {
			return fmt.Errorf("%w: literal text %q", ErrUnsupportedFormat, lit)
		}
		write(lit, lit)
		return nil
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			literal.WriteByte(c)
			continue
		}
		if i+1 >= len(format) {
			return "", "", false, fmt.Errorf("%w: dangling %%", ErrUnsupportedFormat)
		}
		i++
		d := format[i]

		switch d {
		case '%':
			literal.WriteByte('%')
			continue
		case 'f':
			// Fractional seconds must follow a separator so time.Parse sees
			// ".999999999".
			lit := literal.String()
			if lit == "" || (lit[len(lit)-1] != '.' && lit[len(lit)-1] != ',') {
				return "", "", false, fmt.Errorf("%w: %%f must follow '.' or ','", ErrUnsupportedFormat)
			}
			sep := string(lit[len(lit)-1])
			literal.Reset()
			literal.WriteString(lit[:len(lit)-1])
			if err := flush(); err != nil {
				return "", "", false, err
			}
			write(sep+"999999999", sep+"000000")
			frac = true
			continue
		}

		tok, ok := directives[d]
		if !ok {
			return "", "", false, fmt.Errorf("%w: directive %%%c", ErrUnsupportedFormat, d)
		}
		if err := flush(); err != nil {
			return "", "", false, err
		}
		show, ok := padded[d]
		if !ok {
			show = tok
		}
		write(tok, show)
	}

	if err := flush(); err != nil {
		return "", "", false, err
	}
	return layout.String(), display.String(), frac, nil
}

// Parse converts raw text into a timestamp. Values without a zone are
// interpreted as UTC.
func (p Pattern) Parse(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if p.utc {
		if !strings.HasSuffix(v, "Z") {
			return time.Time{}, fmt.Errorf("value %q has no UTC marker", value)
		}
		v = strings.TrimSuffix(v, "Z")
	}
	t, err := time.ParseInLocation(p.layout, v, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	if !p.frac && t.Nanosecond() != 0 {
		return time.Time{}, fmt.Errorf("value %q has fractional seconds not in the format", value)
	}
	return t.UTC(), nil
}

// Render formats t the way strftime would print it with p.Format.
func (p Pattern) Render(t time.Time) string {
	out := t.UTC().Format(p.display)
	if p.utc {
		out += "Z"
	}
	return out
}

// IsZero reports whether p was never compiled.
func (p Pattern) IsZero() bool {
	return p.layout == ""
}

func (p Pattern) String() string {
	return p.Name
}

// DefaultCandidates is the ordered candidate list used for auto-detection.
// MM/DD/YYYY precedes DD/MM/YYYY, so ambiguous values resolve month-first.
func DefaultCandidates() []Pattern {
	return []Pattern{
		MustCompile("YYYY-MM-DD HH:MM:SS", "%Y-%m-%d %H:%M:%S"),
		MustCompile("YYYY-MM-DD HH:MM", "%Y-%m-%d %H:%M"),
		MustCompile("YYYY-MM-DD", "%Y-%m-%d"),
		MustCompile("MM/DD/YYYY HH:MM:SS", "%m/%d/%Y %H:%M:%S"),
		MustCompile("MM/DD/YYYY HH:MM", "%m/%d/%Y %H:%M"),
		MustCompile("MM/DD/YYYY", "%m/%d/%Y"),
		MustCompile("DD/MM/YYYY HH:MM:SS", "%d/%m/%Y %H:%M:%S"),
		MustCompile("DD/MM/YYYY HH:MM", "%d/%m/%Y %H:%M"),
		MustCompile("DD/MM/YYYY", "%d/%m/%Y"),
		MustCompile("YYYY-MM-DDTHH:MM:SS", "%Y-%m-%dT%H:%M:%S"),
		MustCompile("YYYY-MM-DDTHH:MM:SSZ", "%Y-%m-%dT%H:%M:%SZ"),
	}
}
