package attendance

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/shift"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/utils"
)

// ClassifyDay turns one day of punches into a DailyRecord.
//
// Precedence: a holiday or weekly off without punches, then an approved
// regularization, then approved leave, then the verdict computed from hours.
func ClassifyDay(in attendance.DayInput, p attendance.Policy) (attendance.DailyRecord, error) {
	day := utils.DateOnly(in.Date)
	rec := attendance.DailyRecord{Date: day, HolidayName: in.HolidayName}
	if in.Shift != nil {
		rec.ShiftName = in.Shift.Name
		if err := in.Shift.Validate(); err != nil {
			return attendance.DailyRecord{}, err
		}
	}

	logs, err := dedupePunches(in.Logs)
	if err != nil {
		return attendance.DailyRecord{}, err
	}
	rec.LogCount = len(logs)

	var restStatus attendance.DayStatus
	switch {
	case in.IsHoliday:
		restStatus = attendance.StatusHoliday
	case in.IsWeekoff:
		restStatus = attendance.StatusWeekoff
	}

	if restStatus != "" && len(logs) == 0 {
		rec.Status = restStatus
		return rec, nil
	}

	if in.Shift == nil && restStatus == "" {
		return attendance.DailyRecord{}, fmt.Errorf("%w: %s", attendance.ErrMissingShift, utils.DateKey(day))
	}

	if len(logs) > 0 {
		if err := measure(&rec, day, in.Shift, logs, p); err != nil {
			return attendance.DailyRecord{}, err
		}
	}

	// Punches on a rest day are recorded but never turn it into a working day.
	if restStatus != "" {
		rec.Status = restStatus
		rec.WorkedOnRestDay = true
		clearPenalties(&rec)
		return rec, nil
	}

	computed := statusFromHours(rec.TotalHours, p)

	switch {
	case in.Regularization != nil:
		rec.OriginalStatus = computed
		rec.Status = in.Regularization.RegularizedStatus
		rec.IsRegularized = true
		rec.LateTier = attendance.LateTierNone
	case in.Leave != nil:
		rec.OriginalStatus = computed
		rec.Status = leaveStatus(in.Leave.Type)
		rec.LeaveValue = in.Leave.Value
		rec.LateTier = attendance.LateTierNone
	default:
		rec.Status = computed
		switch computed {
		case attendance.StatusFullDay:
		case attendance.StatusHalfDay:
			if !p.LateTierOnHalfDays {
				rec.LateTier = attendance.LateTierNone
			}
		default:
			rec.LateTier = attendance.LateTierNone
		}
	}

	return rec, nil
}

func statusFromHours(hours float64, p attendance.Policy) attendance.DayStatus {
	switch {
	case hours >= p.FullDayMinHours:
		return attendance.StatusFullDay
	case hours >= p.HalfDayMinHours:
		return attendance.StatusHalfDay
	default:
		return attendance.StatusAbsent
	}
}

func leaveStatus(t leave.LeaveType) attendance.DayStatus {
	if t == leave.LeaveTypeCasual {
		return attendance.StatusCasualLeave
	}
	return attendance.StatusPaidLeave
}

func clearPenalties(rec *attendance.DailyRecord) {
	rec.IsLate = false
	rec.MinutesLate = 0
	rec.LateTier = attendance.LateTierNone
	rec.IsEarlyExit = false
}

// dedupePunches sorts punches and drops repeats of the same instant.
func dedupePunches(logs []attendance.PunchLog) ([]attendance.PunchLog, error) {
	out := make([]attendance.PunchLog, 0, len(logs))
	for _, l := range logs {
		if l.Timestamp.IsZero() {
			return nil, fmt.Errorf("%w: missing timestamp", attendance.ErrInvalidPunchLog)
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })

	deduped := out[:0]
	for i, l := range out {
		if i > 0 && l.Timestamp.Equal(deduped[len(deduped)-1].Timestamp) {
			continue
		}
		deduped = append(deduped, l)
	}
	return deduped, nil
}

// singleDirection reports punches that all carry the same explicit direction,
// so no entry/exit pair can be formed.
func singleDirection(logs []attendance.PunchLog) bool {
	if len(logs) < 2 {
		return true
	}
	first := logs[0].Direction
	if first == attendance.DirectionUnknown {
		return false
	}
	for _, l := range logs[1:] {
		if l.Direction != first {
			return false
		}
	}
	return true
}

func measure(rec *attendance.DailyRecord, day time.Time, sh *shift.Shift, logs []attendance.PunchLog, p attendance.Policy) error {
	first := logs[0].Timestamp
	rec.FirstEntry = &first

	if singleDirection(logs) {
		rec.Warning = "no exit punch; hours not computed"
	} else {
		last := logs[len(logs)-1].Timestamp
		rec.LastExit = &last
		if sh != nil && sh.IsSplit() {
			rec.TotalHours = splitHours(day, sh, logs)
		} else {
			rec.TotalHours = roundHours(last.Sub(first).Hours())
		}
	}

	if sh == nil {
		return nil
	}
	if len(sh.Slots()) == 0 {
		return fmt.Errorf("%w: shift %q has no timing", shift.ErrInvalidShiftConfig, sh.Name)
	}

	graceLimit := sh.StartOn(day).Add(time.Duration(sh.LateThresholdMinutes) * time.Minute)
	if first.After(graceLimit) {
		rec.MinutesLate = int(math.Floor(first.Sub(graceLimit).Minutes()))
	}
	rec.IsLate = rec.MinutesLate > 0
	switch {
	case !rec.IsLate:
	case rec.MinutesLate >= p.LateTierMajorMinutes:
		rec.LateTier = attendance.LateTierMajor
	case rec.MinutesLate >= p.LateTierMinorMinutes:
		rec.LateTier = attendance.LateTierMinor
	}

	if rec.LastExit != nil {
		cutoff := sh.EndOn(day).Add(-time.Duration(p.EarlyExitToleranceMinutes) * time.Minute)
		rec.IsEarlyExit = rec.LastExit.Before(cutoff)
	}
	return nil
}

// splitHours sums the time worked inside each slot. Every punch is attributed
// to its nearest slot; a slot with a punch pair uses its own span, otherwise
// the span of the whole day is clipped to the slot so that a single in/out
// pair across the break still credits both slots.
func splitHours(day time.Time, sh *shift.Shift, logs []attendance.PunchLog) float64 {
	slots := sh.Slots()
	windows := make([][2]time.Time, len(slots))
	for i, s := range slots {
		start, end := s.Window(day)
		windows[i] = [2]time.Time{start, end}
	}

	bySlot := make([][]time.Time, len(slots))
	for _, l := range logs {
		best, bestDist := 0, time.Duration(math.MaxInt64)
		for i, w := range windows {
			if d := distance(l.Timestamp, w); d < bestDist {
				best, bestDist = i, d
			}
		}
		bySlot[best] = append(bySlot[best], l.Timestamp)
	}

	dayStart, dayEnd := logs[0].Timestamp, logs[len(logs)-1].Timestamp
	var total float64
	for i, w := range windows {
		from, to := dayStart, dayEnd
		if punches := bySlot[i]; len(punches) >= 2 {
			from, to = punches[0], punches[len(punches)-1]
		}
		total += overlap(from, to, w[0], w[1]).Hours()
	}
	return roundHours(total)
}

func distance(t time.Time, w [2]time.Time) time.Duration {
	switch {
	case t.Before(w[0]):
		return w[0].Sub(t)
	case t.After(w[1]):
		return t.Sub(w[1])
	default:
		return 0
	}
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
