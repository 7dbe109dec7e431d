package internal

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iksnae/chat-wrapped/testutil"
)

func TestAnalyzer_Analyze(t *testing.T) {
	tests := []struct {
		name     string
		sort     bool
		msgs     func() []Message
		wantKind string
		wantWarn bool
	}{
		{
			name:     "empty transcript",
			msgs:     func() []Message { return nil },
			wantKind: InvariantEmpty,
		},
		{
			name: "out of order without sorting",
			msgs: func() []Message {
				return []Message{
					CreateTestMessage(TestTime(10, 0), "A", "segundo"),
					CreateTestMessage(TestTime(9, 0), "B", "primero"),
				}
			},
			wantKind: InvariantOrder,
		},
		{
			name: "out of order with sorting",
			sort: true,
			msgs: func() []Message {
				return []Message{
					CreateTestMessage(TestTime(10, 0), "A", "segundo"),
					CreateTestMessage(TestTime(9, 0), "B", "primero"),
				}
			},
			wantWarn: true,
		},
		{
			name: "chronological",
			msgs: func() []Message { return CreateTestMessages(TestTime(9, 0), time.Minute, "A", "B", "A") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.SortMessages = tt.sort
			msgs := tt.msgs()

			stats, warnings, err := NewAnalyzer(cfg).Analyze(context.Background(), msgs)
			if tt.wantKind != "" {
				var inv *InvariantError
				if !errors.As(err, &inv) || inv.Kind != tt.wantKind {
					t.Fatalf("Analyze() error = %v, want invariant %q", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if got := len(warnings) > 0; got != tt.wantWarn {
				t.Errorf("warnings = %v, want any = %v", warnings, tt.wantWarn)
			}
			if stats.TotalMessages != len(msgs) {
				t.Errorf("TotalMessages = %d, want %d", stats.TotalMessages, len(msgs))
			}
			if CheckOrder(msgs) != -1 {
				t.Error("messages should be chronological after Analyze")
			}
		})
	}
}

func TestAnalyzer_YearDefaultsToFirstMessage(t *testing.T) {
	msgs, _, err := ParseTranscript(strings.NewReader(testutil.MixedYearTranscript), ParserOptions{})
	if err != nil {
		t.Fatalf("ParseTranscript() error = %v", err)
	}

	stats, _, err := NewAnalyzer(DefaultConfig()).Analyze(context.Background(), msgs)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if stats.Year != 2024 {
		t.Errorf("Year = %d, want 2024", stats.Year)
	}

	cfg := DefaultConfig()
	cfg.Year = 2025
	stats, _, err = NewAnalyzer(cfg).Analyze(context.Background(), msgs)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if stats.Year != 2025 {
		t.Errorf("Year = %d, want configured 2025", stats.Year)
	}
}

func TestAnalyzer_ParseFiles(t *testing.T) {
	dir := t.TempDir()
	family := testutil.WriteTranscript(t, dir, "WhatsApp Chat with Family.txt", testutil.FamilyTranscript)
	ios := testutil.WriteTranscript(t, dir, "ios.txt", testutil.IOSTranscript)

	a := NewAnalyzer(DefaultConfig())

	t.Run("single file", func(t *testing.T) {
		msgs, diag, err := a.ParseFiles([]string{family})
		if err != nil {
			t.Fatalf("ParseFiles() error = %v", err)
		}
		if len(msgs) != 6 || diag.Messages != 6 || diag.Duplicates != 0 {
			t.Errorf("got %d messages, diag %+v", len(msgs), diag)
		}
	})

	t.Run("overlapping exports", func(t *testing.T) {
		msgs, diag, err := a.ParseFiles([]string{family, ios, family})
		if err != nil {
			t.Fatalf("ParseFiles() error = %v", err)
		}
		if len(msgs) != 9 {
			t.Errorf("got %d messages, want 9", len(msgs))
		}
		if diag.Duplicates != 6 || diag.Messages != 9 {
			t.Errorf("diag = %+v", diag)
		}
		if CheckOrder(msgs) != -1 {
			t.Error("merged messages are not chronological")
		}
	})

	t.Run("repeats inside one export survive a disjoint second export", func(t *testing.T) {
		repeats := testutil.WriteTranscript(t, dir, "repeats.txt",
			"1/2/25, 09:00 - Ana: jaja\n1/2/25, 09:00 - Ana: jaja\n1/2/25, 09:00 - Ana: jaja\n")
		other := testutil.WriteTranscript(t, dir, "other.txt", "1/3/25, 10:00 - Bob: hola\n")

		msgs, diag, err := a.ParseFiles([]string{repeats, other})
		if err != nil {
			t.Fatalf("ParseFiles() error = %v", err)
		}
		if len(msgs) != 4 || diag.Messages != 4 || diag.Duplicates != 0 {
			t.Errorf("got %d messages, diag %+v; want 4 and no duplicates", len(msgs), diag)
		}

		msgs, diag, err = a.ParseFiles([]string{repeats, other, repeats})
		if err != nil {
			t.Fatalf("ParseFiles() error = %v", err)
		}
		if len(msgs) != 4 || diag.Duplicates != 3 {
			t.Errorf("got %d messages, %d duplicates; want 4 and 3", len(msgs), diag.Duplicates)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := a.ParseFiles([]string{family, filepath.Join(dir, "nope.txt")})
		var se *StorageError
		if !errors.As(err, &se) || se.Op != "open" {
			t.Errorf("ParseFiles() error = %v, want open StorageError", err)
		}
	})
}

func TestAnalyzer_AnalyzeFiles(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteTranscript(t, dir, "WhatsApp Chat with Family.txt", testutil.FamilyTranscript)

	cfg := DefaultConfig()
	cfg.Aliases = map[string]string{"Mami": "Marta"}
	cfg.Locations = map[string]string{"Lucia": "us_west"}
	a := NewAnalyzer(cfg)

	report, err := a.AnalyzeFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("AnalyzeFiles() error = %v", err)
	}
	if report.Title != "Family" {
		t.Errorf("Title = %q, want Family", report.Title)
	}
	if report.ID != ReportID([]string{path}, cfg.Fingerprint()) {
		t.Errorf("ID = %q does not match ReportID", report.ID)
	}
	if report.Stats.MessagesBySender["Marta"] != 2 {
		t.Errorf("MessagesBySender = %v, want the alias applied", report.Stats.MessagesBySender)
	}
	if report.Stats.Year != 2025 {
		t.Errorf("Year = %d", report.Stats.Year)
	}
	// 02:15 at -3 is 21:15 in us_west
	if report.Stats.NightOwls["Lucia"] != 0 {
		t.Errorf("NightOwls = %v, want Lucia localized out of the night", report.Stats.NightOwls)
	}
	if len(report.Messages) != report.Stats.TotalMessages {
		t.Errorf("Messages = %d, TotalMessages = %d", len(report.Messages), report.Stats.TotalMessages)
	}
	if report.Diagnostics.SenderFiltered != 1 {
		t.Errorf("Diagnostics = %+v", report.Diagnostics)
	}
}

func TestAnalyzer_LoadArchive(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "archive.db")
	msgs, _, err := ParseTranscript(strings.NewReader(testutil.MixedYearTranscript), ParserOptions{})
	if err != nil {
		t.Fatalf("ParseTranscript() error = %v", err)
	}

	store, err := OpenStorage(dbPath)
	if err != nil {
		t.Fatalf("OpenStorage() error = %v", err)
	}
	if err := store.SaveMessages(context.Background(), "mixed.txt", msgs); err != nil {
		t.Fatalf("SaveMessages() error = %v", err)
	}
	_ = store.Close()

	cfg := DefaultConfig()
	cfg.Year = 2025
	loaded, diag, err := NewAnalyzer(cfg).LoadArchive(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("LoadArchive() error = %v", err)
	}
	if len(loaded) != 2 || diag.YearFiltered != 1 || diag.Messages != 2 {
		t.Errorf("loaded %d, diag %+v", len(loaded), diag)
	}
	for _, m := range loaded {
		if m.Timestamp.Year() != 2025 {
			t.Errorf("message from %d leaked through the year filter", m.Timestamp.Year())
		}
	}
}

func TestSortMessages_Stable(t *testing.T) {
	msgs := []Message{
		CreateTestMessage(TestTime(10, 0), "C", "tercero"),
		CreateTestMessage(TestTime(9, 0), "A", "primero"),
		CreateTestMessage(TestTime(9, 0), "B", "segundo"),
	}
	SortMessages(msgs)

	var got []string
	for _, m := range msgs {
		got = append(got, m.Sender)
	}
	if strings.Join(got, ",") != "A,B,C" {
		t.Errorf("order = %v, want A,B,C", got)
	}
}

func TestCheckOrder(t *testing.T) {
	if got := CheckOrder(nil); got != -1 {
		t.Errorf("CheckOrder(nil) = %d", got)
	}
	same := CreateTestMessages(TestTime(9, 0), 0, "A", "B")
	if got := CheckOrder(same); got != -1 {
		t.Errorf("equal timestamps reported out of order at %d", got)
	}
	back := append(CreateTestMessages(TestTime(9, 0), time.Minute, "A", "B"), CreateTestMessage(TestTime(8, 0), "C", "x"))
	if got := CheckOrder(back); got != 2 {
		t.Errorf("CheckOrder() = %d, want 2", got)
	}
}
