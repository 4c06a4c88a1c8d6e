package internal

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultTodayFile   = "TodayDevelopment.md"
	DefaultHistoryFile = "Development.md"

	historyHeader = "# Development Log"
	dateFormat    = "2006/01/02"
)

// Journal maintains the two markdown development logs: a daily file holding
// only the current date's entries and a history file accumulating one dated
// section per past day. Entries are numbered within a day.
type Journal struct {
	dir         string
	todayFile   string
	historyFile string
	now         func() time.Time
}

func NewJournal(dir, todayFile, historyFile string) *Journal {
	if todayFile == "" {
		todayFile = DefaultTodayFile
	}
	if historyFile == "" {
		historyFile = DefaultHistoryFile
	}
	return &Journal{
		dir:         dir,
		todayFile:   todayFile,
		historyFile: historyFile,
		now:         time.Now,
	}
}

func (j *Journal) todayPath() string   { return filepath.Join(j.dir, j.todayFile) }
func (j *Journal) historyPath() string { return filepath.Join(j.dir, j.historyFile) }

// Record appends one entry for message to the daily log, rolling the previous
// day's section into the history log first when the date has changed.
func (j *Journal) Record(message string) error {
	today := j.now().Format(dateFormat)

	if err := j.ensureHistory(); err != nil {
		return fmt.Errorf("ensure history log: %w", err)
	}

	if _, err := os.Stat(j.todayPath()); os.IsNotExist(err) {
		return j.createToday(today, message)
	} else if err != nil {
		return fmt.Errorf("stat daily log: %w", err)
	}

	dateMatch, count, err := j.scanToday(today)
	if err != nil {
		return fmt.Errorf("read daily log: %w", err)
	}

	if dateMatch {
		return j.appendToday(count+1, message)
	}

	if err := j.rollOver(); err != nil {
		return fmt.Errorf("merge daily log into history: %w", err)
	}
	return j.createToday(today, message)
}

// Content returns the concatenated markdown of the history and daily logs,
// for rendering. Missing files contribute nothing.
func (j *Journal) Content() (string, error) {
	var parts []string
	for _, path := range []string{j.historyPath(), j.todayPath()} {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("read log: %w", err)
		}
		parts = append(parts, strings.TrimRight(string(data), "\n"))
	}
	if len(parts) == 0 {
		return "", nil
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}

func (j *Journal) ensureHistory() error {
	if _, err := os.Stat(j.historyPath()); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(j.historyPath(), []byte(historyHeader+"\n"), 0644)
}

func (j *Journal) createToday(today, message string) error {
	content := fmt.Sprintf("## %s\n\n1. %s\n", today, message)
	if err := os.WriteFile(j.todayPath(), []byte(content), 0644); err != nil {
		return fmt.Errorf("create daily log: %w", err)
	}
	return nil
}

func (j *Journal) appendToday(ordinal int, message string) error {
	f, err := os.OpenFile(j.todayPath(), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open daily log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d. %s\n", ordinal, message); err != nil {
		return fmt.Errorf("append daily log: %w", err)
	}
	return nil
}

// scanToday reports whether the daily log's heading matches today, and how
// many numbered entries it already holds.
func (j *Journal) scanToday(today string) (bool, int, error) {
	f, err := os.Open(j.todayPath())
	if err != nil {
		return false, 0, err
	}
	defer f.Close()

	dateMatch := false
	count := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !dateMatch && strings.Contains(line, "## "+today) {
			dateMatch = true
		}
		trimmed := strings.TrimSpace(line)
		if dateMatch && trimmed != "" && trimmed[0] >= '0' && trimmed[0] <= '9' {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return false, 0, err
	}

	return dateMatch, count, nil
}

// rollOver appends the whole daily log as a new section of the history log.
// The daily heading is unique per day, so the history never gains a
// duplicate date section.
func (j *Journal) rollOver() error {
	content, err := os.ReadFile(j.todayPath())
	if err != nil {
		return err
	}

	f, err := os.OpenFile(j.historyPath(), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s", content); err != nil {
		return err
	}
	return nil
}
