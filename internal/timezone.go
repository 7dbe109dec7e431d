package internal

// HourBucket is a local-time behavioural bucket
type HourBucket int

const (
	BucketNone HourBucket = iota
	BucketNight
	BucketEarly
)

// Local-hour ranges, inclusive
const (
	nightStartHour = 0
	nightEndHour   = 4
	earlyStartHour = 5
	earlyEndHour   = 7
)

// Localizer maps a sender to a local hour using fixed UTC offsets. Daylight
// saving and relocation during the year are ignored.
type Localizer struct {
	reference int
	locations map[string]string
	offsets   map[string]int
}

// NewLocalizer creates a Localizer. reference is the UTC offset the export
// timestamps were written in; locations maps sender -> location name and
// offsets maps location name -> UTC offset in hours.
func NewLocalizer(reference int, locations map[string]string, offsets map[string]int) *Localizer {
	return &Localizer{
		reference: reference,
		locations: locations,
		offsets:   offsets,
	}
}

// Reference returns the export reference offset
func (l *Localizer) Reference() int {
	return l.reference
}

// Offset returns the UTC offset for sender, falling back to the reference
func (l *Localizer) Offset(sender string) int {
	loc, ok := l.locations[sender]
	if !ok {
		return l.reference
	}
	off, ok := l.offsets[loc]
	if !ok {
		return l.reference
	}
	return off
}

// LocalHour converts an export-time hour into sender's local hour
func (l *Localizer) LocalHour(sender string, exportHour int) int {
	return shiftHour(exportHour, l.Offset(sender)-l.reference)
}

// Classify buckets sender's message sent at exportHour
func (l *Localizer) Classify(sender string, exportHour int) HourBucket {
	return ClassifyHour(l.LocalHour(sender, exportHour))
}

// ClassifyHour buckets a local hour
func ClassifyHour(hour int) HourBucket {
	switch {
	case hour >= nightStartHour && hour <= nightEndHour:
		return BucketNight
	case hour >= earlyStartHour && hour <= earlyEndHour:
		return BucketEarly
	default:
		return BucketNone
	}
}

func shiftHour(hour, delta int) int {
	h := (hour + delta) % 24
	if h < 0 {
		h += 24
	}
	return h
}
