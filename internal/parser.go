package internal

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

const (
	scanBufferSize = 256 * 1024
	maxLineSize    = 10 * 1024 * 1024
)

var (
	// 1/2/25, 9:00 AM - Alice: hello
	dashHeaderPattern = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}),?\s+(\d{1,2}:\d{2})\s*(AM|PM|am|pm)?\s*-\s*([^:]+):\s*(.*)$`)
	// [1/2/25, 09:00:13] Alice: hello
	bracketHeaderPattern = regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{2,4}),?\s+(\d{1,2}:\d{2}(?::\d{2})?)\s*(AM|PM|am|pm)?\]\s*([^:]+):\s*(.*)$`)
)

type parserState int

const (
	stateIdle parserState = iota
	stateAccumulating
)

// ParserOptions configures a Parser
type ParserOptions struct {
	// Year keeps only messages from this calendar year; 0 keeps all
	Year       int
	Normalizer *Normalizer
	Classifier *Classifier
}

// Parser assembles physical lines into logical messages. It is a two-state
// machine: Idle, or Accumulating one buffered message that later lines may
// extend. The buffer is never exposed; callers only see finalized messages.
type Parser struct {
	opts     ParserOptions
	state    parserState
	buf      Message
	lineNo   int
	diag     ParseDiagnostics
	messages []Message
}

// NewParser creates a Parser, filling in a default normalizer and classifier
func NewParser(opts ParserOptions) *Parser {
	if opts.Normalizer == nil {
		opts.Normalizer = NewNormalizer(nil, DefaultExcludedSenders)
	}
	if opts.Classifier == nil {
		opts.Classifier = NewClassifier(nil)
	}
	return &Parser{opts: opts}
}

// header is the parsed form of a header line
type header struct {
	date     string
	clock    string
	meridiem string
	sender   string
	body     string
}

func matchHeader(line string) (header, bool) {
	m := dashHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		m = bracketHeaderPattern.FindStringSubmatch(line)
	}
	if m == nil {
		return header{}, false
	}
	return header{date: m[1], clock: m[2], meridiem: m[3], sender: m[4], body: m[5]}, true
}

// Feed consumes one physical line
func (p *Parser) Feed(line string) {
	p.lineNo++
	p.diag.LinesRead++
	line = strings.TrimSpace(stripMarks(line))

	h, ok := matchHeader(line)
	if !ok {
		if line == "" {
			return
		}
		if p.state == stateAccumulating {
			p.buf.Content += "\n" + line
			p.diag.Continuations++
			return
		}
		p.diag.StrayLines++
		return
	}

	p.diag.HeaderLines++
	p.flush()

	ts, err := parseTimestamp(h.date, h.clock, h.meridiem)
	if err != nil {
		p.diag.DateErrors++
		LogDebug("%v", &ParseError{Line: p.lineNo, Text: line, Err: err})
		return
	}
	if p.opts.Year != 0 && ts.Year() != p.opts.Year {
		p.diag.YearFiltered++
		return
	}
	sender, keep := p.opts.Normalizer.Normalize(h.sender)
	if !keep {
		p.diag.SenderFiltered++
		return
	}

	p.buf = Message{Timestamp: ts, Sender: sender, Content: h.body}
	p.state = stateAccumulating
}

// flush finalizes the buffered message, if any, and returns to Idle
func (p *Parser) flush() {
	if p.state != stateAccumulating {
		return
	}
	msg := p.buf
	p.opts.Classifier.Apply(&msg)
	p.messages = append(p.messages, msg)
	p.diag.Messages++
	p.buf = Message{}
	p.state = stateIdle
}

// Close finalizes any buffered message and returns every message emitted
func (p *Parser) Close() []Message {
	p.flush()
	return p.messages
}

// Diagnostics returns what the parser did with the lines seen so far
func (p *Parser) Diagnostics() ParseDiagnostics {
	return p.diag
}

// Parse feeds every line of r and closes the parser
func (p *Parser) Parse(r io.Reader) ([]Message, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, scanBufferSize), maxLineSize)
	for sc.Scan() {
		p.Feed(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return p.Close(), nil
}

// ParseTranscript parses r with a fresh parser
func ParseTranscript(r io.Reader, opts ParserOptions) ([]Message, ParseDiagnostics, error) {
	p := NewParser(opts)
	msgs, err := p.Parse(r)
	return msgs, p.Diagnostics(), err
}

// parseTimestamp reads an export date and time. The layout is chosen by the
// year width, the presence of seconds and the presence of AM/PM. Times are
// kept as wall-clock values in UTC.
func parseTimestamp(date, clock, meridiem string) (time.Time, error) {
	year := "2006"
	if i := strings.LastIndexByte(date, '/'); i >= 0 && len(date)-i-1 == 2 {
		year = "06"
	}

	layout := "1/2/" + year + " "
	value := date + " " + clock
	seconds := strings.Count(clock, ":") == 2
	if meridiem != "" {
		layout += "3:04"
		if seconds {
			layout += ":05"
		}
		layout += " PM"
		value += " " + strings.ToUpper(meridiem)
	} else {
		layout += "15:04"
		if seconds {
			layout += ":05"
		}
	}

	ts, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return ts, nil
}
