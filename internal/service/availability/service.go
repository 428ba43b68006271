package availability

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/inkstudio/studio-backend-go/internal/domain/studio"
	"github.com/inkstudio/studio-backend-go/internal/domain/timeblock"
	"github.com/inkstudio/studio-backend-go/internal/pkg/validator"
)

// Slot is one bookable interval, both bounds as "HH:MM" wall clock.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Service resolves bookable slots for a calendar owner on a given date by
// subtracting that owner's time blocks from the studio working window.
type Service interface {
	Resolve(ctx context.Context, studioID, ownerID string, date time.Time, granularityMinutes int) ([]Slot, error)
}

type ServiceImpl struct {
	settingsRepo studio.SettingsRepository
	blockRepo    timeblock.TimeBlockRepository
}

func NewService(settingsRepo studio.SettingsRepository, blockRepo timeblock.TimeBlockRepository) Service {
	return &ServiceImpl{
		settingsRepo: settingsRepo,
		blockRepo:    blockRepo,
	}
}

type interval struct {
	start int // minutes since midnight, inclusive
	end   int // exclusive
}

// Resolve implements Service. The computation is stateless and recomputed
// from scratch on every call: identical inputs with no intervening writes
// yield identical output.
func (s *ServiceImpl) Resolve(ctx context.Context, studioID, ownerID string, date time.Time, granularityMinutes int) ([]Slot, error) {
	openMinutes, closeMinutes, err := s.workingWindow(ctx, studioID)
	if err != nil {
		return nil, err
	}

	if granularityMinutes <= 0 {
		return nil, validator.ValidationErrors{{
			Field:   "granularity",
			Message: "granularity must be a positive number of minutes",
		}}
	}
	if (closeMinutes-openMinutes)%granularityMinutes != 0 {
		return nil, validator.ValidationErrors{{
			Field:   "granularity",
			Message: "granularity must divide the working day evenly",
		}}
	}

	blocks, err := s.blockRepo.ListActiveForDate(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}

	blocked := mergeIntervals(collectBlockedIntervals(blocks, date))

	slots := make([]Slot, 0, (closeMinutes-openMinutes)/granularityMinutes)
	for start := openMinutes; start < closeMinutes; start += granularityMinutes {
		end := start + granularityMinutes
		if !overlapsAny(blocked, interval{start: start, end: end}) {
			slots = append(slots, Slot{
				Start: validator.FormatTimeOfDay(start),
				End:   validator.FormatTimeOfDay(end),
			})
		}
	}

	return slots, nil
}

func (s *ServiceImpl) workingWindow(ctx context.Context, studioID string) (int, int, error) {
	openTime, closeTime := studio.DefaultOpenTime, studio.DefaultCloseTime

	settings, err := s.settingsRepo.Get(ctx, studioID)
	switch {
	case err == nil:
		if settings.OpenTime != "" {
			openTime = settings.OpenTime
		}
		if settings.CloseTime != "" {
			closeTime = settings.CloseTime
		}
	case errors.Is(err, studio.ErrSettingsNotFound):
		// Unconfigured studios fall back to the default working window
	default:
		return 0, 0, err
	}

	openMinutes, ok := validator.ParseTimeOfDay(openTime)
	if !ok {
		openMinutes, _ = validator.ParseTimeOfDay(studio.DefaultOpenTime)
	}
	closeMinutes, ok := validator.ParseTimeOfDay(closeTime)
	if !ok {
		closeMinutes, _ = validator.ParseTimeOfDay(studio.DefaultCloseTime)
	}

	return openMinutes, closeMinutes, nil
}

// collectBlockedIntervals expands each block that covers date into a
// half-open [start, end) interval. Malformed blocks are skipped so a single
// bad row cannot take down the whole resolution.
func collectBlockedIntervals(blocks []timeblock.TimeBlock, date time.Time) []interval {
	var intervals []interval
	for _, block := range blocks {
		if !timeblock.Occurs(block, date) {
			continue
		}

		start, startOK := validator.ParseTimeOfDay(block.StartTime)
		end, endOK := validator.ParseTimeOfDay(block.EndTime)
		if !startOK || !endOK || start >= end {
			slog.Warn("Skipping malformed time block during availability resolution",
				"block_id", block.ID, "start", block.StartTime, "end", block.EndTime)
			continue
		}

		intervals = append(intervals, interval{start: start, end: end})
	}
	return intervals
}

// mergeIntervals sorts by start and coalesces overlapping intervals.
// Touching intervals ([a,b) and [b,c)) merge as well; half-open semantics
// are preserved by the overlap test, not the merge.
func mergeIntervals(intervals []interval) []interval {
	if len(intervals) == 0 {
		return nil
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start < intervals[j].start
	})

	merged := []interval{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if iv.start <= last.end {
			if iv.end > last.end {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// overlapsAny reports whether the candidate slot intersects any blocked
// interval. A block ending exactly where a slot begins does not cover it.
func overlapsAny(blocked []interval, slot interval) bool {
	for _, iv := range blocked {
		if iv.start < slot.end && iv.end > slot.start {
			return true
		}
	}
	return false
}
