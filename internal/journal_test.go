package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestJournal(t *testing.T, day time.Time) (*Journal, string) {
	t.Helper()
	dir := t.TempDir()
	j := NewJournal(dir, "", "")
	j.now = func() time.Time { return day }
	return j, dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestJournalFirstRecord(t *testing.T) {
	day := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	j, dir := newTestJournal(t, day)

	if err := j.Record("initial work"); err != nil {
		t.Fatalf("record: %v", err)
	}

	today := readFile(t, filepath.Join(dir, DefaultTodayFile))
	want := "## 2025/03/14\n\n1. initial work\n"
	if today != want {
		t.Errorf("daily log = %q, want %q", today, want)
	}

	history := readFile(t, filepath.Join(dir, DefaultHistoryFile))
	if history != historyHeader+"\n" {
		t.Errorf("history log = %q, want only header", history)
	}
}

func TestJournalSameDayAccumulates(t *testing.T) {
	day := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	j, dir := newTestJournal(t, day)

	for i, msg := range []string{"one", "two", "three"} {
		if err := j.Record(msg); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	today := readFile(t, filepath.Join(dir, DefaultTodayFile))
	for i, msg := range []string{"one", "two", "three"} {
		entry := fmt.Sprintf("%d. %s", i+1, msg)
		if !strings.Contains(today, entry) {
			t.Errorf("daily log missing %q:\n%s", entry, today)
		}
	}

	history := readFile(t, filepath.Join(dir, DefaultHistoryFile))
	if history != historyHeader+"\n" {
		t.Errorf("history mutated on same-day records: %q", history)
	}
}

func TestJournalRollover(t *testing.T) {
	day1 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	j, dir := newTestJournal(t, day1)

	if err := j.Record("yesterday a"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := j.Record("yesterday b"); err != nil {
		t.Fatalf("record: %v", err)
	}

	j.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	if err := j.Record("fresh start"); err != nil {
		t.Fatalf("record after rollover: %v", err)
	}

	history := readFile(t, filepath.Join(dir, DefaultHistoryFile))
	if got := strings.Count(history, "## 2025/03/14"); got != 1 {
		t.Errorf("history has %d sections for 2025/03/14, want 1:\n%s", got, history)
	}
	for _, entry := range []string{"1. yesterday a", "2. yesterday b"} {
		if !strings.Contains(history, entry) {
			t.Errorf("history missing %q:\n%s", entry, history)
		}
	}

	today := readFile(t, filepath.Join(dir, DefaultTodayFile))
	want := "## 2025/03/15\n\n1. fresh start\n"
	if today != want {
		t.Errorf("daily log after rollover = %q, want %q", today, want)
	}
}

func TestJournalRolloverKeepsOlderSections(t *testing.T) {
	day := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	j, dir := newTestJournal(t, day)

	for i := 0; i < 3; i++ {
		if err := j.Record("work"); err != nil {
			t.Fatalf("record: %v", err)
		}
		day = day.AddDate(0, 0, 1)
		d := day
		j.now = func() time.Time { return d }
	}

	history := readFile(t, filepath.Join(dir, DefaultHistoryFile))
	for _, heading := range []string{"## 2025/03/14", "## 2025/03/15"} {
		if got := strings.Count(history, heading); got != 1 {
			t.Errorf("history has %d sections %q, want 1", got, heading)
		}
	}
	if strings.Contains(history, "## 2025/03/16") {
		t.Error("current day leaked into history")
	}
}

func TestJournalCustomFileNames(t *testing.T) {
	dir := t.TempDir()
	j := NewJournal(dir, "today.md", "all.md")
	j.now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }

	if err := j.Record("entry"); err != nil {
		t.Fatalf("record: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "today.md")); err != nil {
		t.Errorf("custom daily file not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "all.md")); err != nil {
		t.Errorf("custom history file not created: %v", err)
	}
}

func TestJournalRecordMissingDir(t *testing.T) {
	j := NewJournal(filepath.Join(t.TempDir(), "absent", "deeper"), "", "")

	if err := j.Record("entry"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestJournalContent(t *testing.T) {
	day := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	j, _ := newTestJournal(t, day)

	content, err := j.Content()
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if content != "" {
		t.Errorf("content of empty journal = %q, want empty", content)
	}

	if err := j.Record("entry"); err != nil {
		t.Fatalf("record: %v", err)
	}

	content, err = j.Content()
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if !strings.Contains(content, historyHeader) || !strings.Contains(content, "1. entry") {
		t.Errorf("content missing pieces:\n%s", content)
	}
}
