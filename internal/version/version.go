// Package version описывает сборку сервера и форматы, которые она понимает:
// журнал команд, длительность такта, загруженные виды монстров.
package version

import (
	"fmt"
	"time"

	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/domain"
	"github.com/iiroka/netquake2-sub002/internal/infrastructure/storage"
)

// Заполняются линкером: -ldflags "-X .../version.BuildDate=2025-12-14".
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// buildEpoch - день первой сборки арены; номер сборки считается от него.
var buildEpoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// Build - метаданные сборки.
type Build struct {
	ID         int    `json:"id"`
	Date       string `json:"date"`
	Commit     string `json:"commit"`
	Branch     string `json:"branch"`
	CI         string `json:"ci"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// BuildID - число дней от buildEpoch до даты сборки.
func BuildID(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is empty")
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before epoch", date)
	}
	// Обе даты в UTC, сутки ровно по 24 часа
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Current собирает Build из переменных линкера.
func Current() Build {
	b := Build{
		Date:   BuildDate,
		Commit: coalesce(BuildCommit, "unknown"),
		Branch: coalesce(BuildBranch, "unknown"),
		CI:     coalesce(BuildCI, "local"),
	}
	id, err := BuildID(BuildDate)
	if err != nil {
		b.Error = err.Error()
		return b
	}
	b.ID = id
	b.Calculated = true
	return b
}

func (b Build) String() string {
	if !b.Calculated {
		return fmt.Sprintf("Build unknown (%s)", b.Error)
	}
	return fmt.Sprintf("Build %d (%s) commit[%s] branch[%s] ci[%s]", b.ID, b.Date, b.Commit, b.Branch, b.CI)
}

// Report - ответ /version. Клиенту и инструментам важно не только, какая это
// сборка, но и совместима ли она с их журналами и с какими видами монстров идёт партия.
type Report struct {
	Build     Build    `json:"build"`
	Journal   string   `json:"journal"` // магия/версия формата, например "NQJR/1"
	FrameTime float64  `json:"frame_time"`
	Skill     string   `json:"skill"`
	Seed      int64    `json:"seed"`
	Species   []string `json:"species"`
}

// NewReport описывает текущую сборку и параметры запущенной арены.
func NewReport(species []string, skill enums.Difficulty, seed int64) Report {
	if species == nil {
		species = []string{}
	}
	return Report{
		Build:     Current(),
		Journal:   JournalFormat(),
		FrameTime: domain.FrameTime,
		Skill:     skill.String(),
		Seed:      seed,
		Species:   species,
	}
}

// JournalFormat - формат журнала, который эта сборка пишет и читает.
func JournalFormat() string {
	return fmt.Sprintf("%s/%d", storage.MagicHeader, storage.Version1)
}

func (r Report) String() string {
	return fmt.Sprintf("%s journal[%s] skill[%s] seed[%d] species%v",
		r.Build, r.Journal, r.Skill, r.Seed, r.Species)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
