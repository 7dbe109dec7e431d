package internal

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// DefaultStarterGap is the silence after which the next sender is credited
// with starting a conversation. It is longer than DefaultSegmentGap.
const DefaultStarterGap = time.Hour

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15"
)

// AggregatorOptions configures an Aggregator
type AggregatorOptions struct {
	StarterGap time.Duration
	Localizer  *Localizer
	Durations  DurationLookup
	Sizes      SizeLookup
	Stopwords  Stopwords
}

type mediaFile struct {
	seq    int64
	sender string
	name    string
	kind    MediaKind
	seconds float64
}

// Aggregator folds classified messages into running counters. A zero-index
// Aggregator folds a whole transcript; shard aggregators fold contiguous
// ranges and are combined with Merge.
type Aggregator struct {
	opts AggregatorOptions

	prev    time.Time
	hasPrev bool

	total  int
	words  int
	media  int
	links  int
	emoji  int
	first  time.Time
	last   time.Time
	seen   bool
	files  []mediaFile
	bytes  map[string]int64

	messagesBy *Counter[string]
	wordsBy    *Counter[string]
	mediaBy    *Counter[string]
	emojiBy    *Counter[string]
	linksBy    *Counter[string]
	deletedBy  *Counter[string]
	starters   *Counter[string]
	night      *Counter[string]
	early      *Counter[string]
	audioBy    *Counter[string]

	hours     *Counter[int]
	days      *Counter[string]
	months    *Counter[string]
	dates     *Counter[string]
	datetimes *Counter[string]

	tokens   *Counter[string]
	tokensBy map[string]*Counter[string]
	emojis   *Counter[string]
}

// NewAggregator creates an empty Aggregator
func NewAggregator(opts AggregatorOptions) *Aggregator {
	if opts.StarterGap <= 0 {
		opts.StarterGap = DefaultStarterGap
	}
	if opts.Localizer == nil {
		opts.Localizer = NewLocalizer(0, nil, nil)
	}
	if opts.Durations == nil {
		opts.Durations = NoDurations{}
	}
	if opts.Sizes == nil {
		opts.Sizes = NoSizes{}
	}
	if opts.Stopwords == nil {
		opts.Stopwords = DefaultStopwords()
	}
	return &Aggregator{
		opts:       opts,
		bytes:      make(map[string]int64),
		messagesBy: NewCounter[string](),
		wordsBy:    NewCounter[string](),
		mediaBy:    NewCounter[string](),
		emojiBy:    NewCounter[string](),
		linksBy:    NewCounter[string](),
		deletedBy:  NewCounter[string](),
		starters:   NewCounter[string](),
		night:      NewCounter[string](),
		early:      NewCounter[string](),
		audioBy:    NewCounter[string](),
		hours:      NewCounter[int](),
		days:       NewCounter[string](),
		months:     NewCounter[string](),
		dates:      NewCounter[string](),
		datetimes:  NewCounter[string](),
		tokens:     NewCounter[string](),
		tokensBy:   make(map[string]*Counter[string]),
		emojis:     NewCounter[string](),
	}
}

// Seed sets the timestamp of the message preceding this aggregator's first
// message, so a shard credits starters exactly as a single pass would
func (a *Aggregator) Seed(prev time.Time) {
	a.prev = prev
	a.hasPrev = true
}

// Add folds msg, which sits at position idx of the whole transcript
func (a *Aggregator) Add(idx int, msg *Message) {
	seq := seqOf(idx, 0)
	sender := msg.Sender
	ts := msg.Timestamp

	a.total++
	a.messagesBy.Add(sender, 1, seq)
	a.words += msg.WordCount
	a.wordsBy.Add(sender, msg.WordCount, seq)

	if msg.IsMedia {
		a.media++
		a.mediaBy.Add(sender, 1, seq)
		if msg.MediaFilename != "" {
			a.addMediaFile(seq, sender, msg.MediaFilename)
		}
	}
	if msg.HasLink {
		a.links++
		a.linksBy.Add(sender, 1, seq)
	}
	if msg.HasEmoji {
		a.emoji++
		a.emojiBy.Add(sender, 1, seq)
	}
	if msg.IsDeleted {
		a.deletedBy.Add(sender, 1, seq)
	}

	hour := ts.Hour()
	a.hours.Add(hour, 1, seq)
	a.days.Add(ts.Weekday().String(), 1, seq)
	a.months.Add(ts.Month().String(), 1, seq)
	a.dates.Add(ts.Format(dateLayout), 1, seq)
	a.datetimes.Add(ts.Format(datetimeLayout), 1, seq)

	if !a.hasPrev || ts.Sub(a.prev) > a.opts.StarterGap {
		a.starters.Add(sender, 1, seq)
	}
	a.prev, a.hasPrev = ts, true

	switch a.opts.Localizer.Classify(sender, hour) {
	case BucketNight:
		a.night.Add(sender, 1, seq)
	case BucketEarly:
		a.early.Add(sender, 1, seq)
	}

	if len(msg.Tokens) > 0 {
		byS, ok := a.tokensBy[sender]
		if !ok {
			byS = NewCounter[string]()
			a.tokensBy[sender] = byS
		}
		for j, tok := range msg.Tokens {
			a.tokens.Add(tok, 1, seqOf(idx, j))
			byS.Add(tok, 1, seqOf(idx, j))
		}
	}
	for j, e := range msg.Emojis {
		a.emojis.Add(e, 1, seqOf(idx, j))
	}

	if !a.seen || ts.Before(a.first) {
		a.first = ts
	}
	if !a.seen || ts.After(a.last) {
		a.last = ts
	}
	a.seen = true
}

func (a *Aggregator) addMediaFile(seq int64, sender, name string) {
	f := mediaFile{seq: seq, sender: sender, name: name, kind: MediaKindOf(name)}
	if f.kind == MediaAudio {
		a.audioBy.Add(sender, 1, seq)
		if d := a.opts.Durations.Duration(name); d > 0 {
			f.seconds = d
		} else {
			LogDebug("no duration for %s", name)
		}
	}
	a.files = append(a.files, f)
	if size, ok := a.opts.Sizes.Size(name); ok {
		a.bytes[sender] += size
	}
}

// Merge folds another aggregator's partial results into a. Counts add and
// first sightings keep the minimum, so the order of merges does not matter.
func (a *Aggregator) Merge(o *Aggregator) {
	a.total += o.total
	a.words += o.words
	a.media += o.media
	a.links += o.links
	a.emoji += o.emoji

	if o.seen {
		if !a.seen || o.first.Before(a.first) {
			a.first = o.first
		}
		if !a.seen || o.last.After(a.last) {
			a.last = o.last
		}
		a.seen = true
	}
	if o.hasPrev && (!a.hasPrev || o.prev.After(a.prev)) {
		a.prev, a.hasPrev = o.prev, true
	}

	a.files = append(a.files, o.files...)
	for s, n := range o.bytes {
		a.bytes[s] += n
	}

	a.messagesBy.Merge(o.messagesBy)
	a.wordsBy.Merge(o.wordsBy)
	a.mediaBy.Merge(o.mediaBy)
	a.emojiBy.Merge(o.emojiBy)
	a.linksBy.Merge(o.linksBy)
	a.deletedBy.Merge(o.deletedBy)
	a.starters.Merge(o.starters)
	a.night.Merge(o.night)
	a.early.Merge(o.early)
	a.audioBy.Merge(o.audioBy)
	a.hours.Merge(o.hours)
	a.days.Merge(o.days)
	a.months.Merge(o.months)
	a.dates.Merge(o.dates)
	a.datetimes.Merge(o.datetimes)
	a.tokens.Merge(o.tokens)
	a.emojis.Merge(o.emojis)
	for s, c := range o.tokensBy {
		if mine, ok := a.tokensBy[s]; ok {
			mine.Merge(c)
			continue
		}
		cp := NewCounter[string]()
		cp.Merge(c)
		a.tokensBy[s] = cp
	}
}

// Finalize derives averages, extremes and vocabulary views and returns the
// frozen statistics
func (a *Aggregator) Finalize() *ChatStatistics {
	participants := a.messagesBy.Keys()
	stats := &ChatStatistics{
		Participants:  participants,
		FirstMessage:  a.first,
		LastMessage:   a.last,
		TotalMessages: a.total,
		TotalWords:    a.words,
		MediaCount:    a.media,
		LinkCount:     a.links,
		EmojiCount:    a.emoji,

		MessagesBySender:     a.messagesBy.Map(),
		WordsBySender:        a.wordsBy.Map(),
		MediaBySender:        a.mediaBy.Map(),
		EmojiBySender:        a.emojiBy.Map(),
		LinksBySender:        a.linksBy.Map(),
		DeletedBySender:      a.deletedBy.Map(),
		ConversationStarters: a.starters.Map(),
		NightOwls:            a.night.Map(),
		EarlyBirds:           a.early.Map(),
		AvgMessageLength:     make(map[string]float64, len(participants)),

		MessagesByHour:     a.hours.Map(),
		MessagesByDay:      a.days.Map(),
		MessagesByMonth:    a.months.Map(),
		MessagesByDate:     a.dates.Map(),
		MessagesByDatetime: a.datetimes.Map(),

		MediaFiles:            []string{},
		MediaFilesBySender:    make(map[string][]string),
		ImagesBySender:        make(map[string][]string),
		AudioBySender:         a.audioBy.Map(),
		AudioFilesBySender:    make(map[string][]string),
		AudioDurationBySender: make(map[string]float64),
		MediaBytesBySender:    make(map[string]int64, len(a.bytes)),
	}

	for _, s := range participants {
		n := a.messagesBy.Get(s)
		stats.AvgMessageLength[s] = math.Round(float64(a.wordsBy.Get(s))/float64(n)*10) / 10
	}

	if day, _, ok := a.days.Max(); ok {
		stats.MostActiveDay = day
	}
	if hour, _, ok := a.hours.Max(); ok {
		stats.MostActiveHour = hour
	}
	if date, _, ok := a.dates.Max(); ok {
		stats.MostActiveDate = date
	}
	if dt, _, ok := a.datetimes.Max(); ok {
		stats.PeakHourDatetime = dt
	}

	// durations are summed in message order so sharding cannot change them
	files := slices.Clone(a.files)
	slices.SortStableFunc(files, func(x, y mediaFile) int { return cmp.Compare(x.seq, y.seq) })
	for _, f := range files {
		stats.MediaFiles = append(stats.MediaFiles, f.name)
		stats.MediaFilesBySender[f.sender] = append(stats.MediaFilesBySender[f.sender], f.name)
		switch f.kind {
		case MediaImage:
			stats.ImagesBySender[f.sender] = append(stats.ImagesBySender[f.sender], f.name)
		case MediaAudio:
			stats.AudioFilesBySender[f.sender] = append(stats.AudioFilesBySender[f.sender], f.name)
			if f.seconds > 0 {
				stats.AudioDurationBySender[f.sender] += f.seconds
			}
		}
	}
	for s, n := range a.bytes {
		stats.MediaBytesBySender[s] = n
	}

	vocab := AnalyzeVocabulary(a.tokens, a.tokensBy, a.emojis, a.opts.Stopwords)
	stats.TopWords = vocab.TopWords
	stats.TopEmojis = vocab.TopEmojis
	stats.RareEmojis = vocab.RareEmojis
	stats.WordsByPerson = vocab.WordsByPerson
	stats.UniqueWordsByPerson = vocab.UniqueWordsByPerson
	return stats
}
