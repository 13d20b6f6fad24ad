package shift

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TimeOfDay is a wall clock time expressed in minutes since midnight.
type TimeOfDay int

var timeLayouts = []string{"15:04:05", "15:04", "3:04 PM", "3:04PM", "03:04 PM"}

// ParseTimeOfDay accepts HH:MM, HH:MM:SS (fractional seconds are ignored) and 12-hour forms.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	v := strings.TrimSpace(value)
	if i := strings.IndexByte(v, '.'); i > 0 {
		v = v[:i]
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return TimeOfDay(t.Hour()*60 + t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidShiftTime, value)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// On places t on the given date.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).
		Add(time.Duration(t) * time.Minute)
}

// Slot is one continuous working window of a shift.
type Slot struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Window returns the slot as absolute times on date.
func (s Slot) Window(date time.Time) (time.Time, time.Time) {
	return s.Start.On(date), s.End.On(date)
}

func (s Slot) Hours() float64 {
	start, end := s.Window(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	return end.Sub(start).Hours()
}

// Shift is a validated shift timing. Exactly one of the normal timing or the
// two split slots is populated.
type Shift struct {
	Name                 string     `json:"name"`
	Start                *TimeOfDay `json:"start,omitempty"`
	End                  *TimeOfDay `json:"end,omitempty"`
	Slot1                *Slot      `json:"slot1,omitempty"`
	Slot2                *Slot      `json:"slot2,omitempty"`
	WorkHours            float64    `json:"work_hours"`
	LateThresholdMinutes int        `json:"late_threshold_minutes"`
}

func (s Shift) IsSplit() bool {
	return s.Slot1 != nil && s.Slot2 != nil
}

// Slots returns the working windows in order.
func (s Shift) Slots() []Slot {
	if s.IsSplit() {
		return []Slot{*s.Slot1, *s.Slot2}
	}
	if s.Start == nil || s.End == nil {
		return nil
	}
	return []Slot{{Start: *s.Start, End: *s.End}}
}

// StartOn is the time the shift begins on date; lateness is measured from here.
func (s Shift) StartOn(date time.Time) time.Time {
	slots := s.Slots()
	start, _ := slots[0].Window(date)
	return start
}

// EndOn is the time the shift ends on date; early exits are measured against it.
func (s Shift) EndOn(date time.Time) time.Time {
	slots := s.Slots()
	_, end := slots[len(slots)-1].Window(date)
	return end
}

// Validate enforces the timing invariant. Punches are grouped by calendar
// date, so every window must start and end on the same day.
func (s Shift) Validate() error {
	normal := s.Start != nil || s.End != nil
	split := s.Slot1 != nil || s.Slot2 != nil
	switch {
	case normal && split:
		return fmt.Errorf("%w: shift %q has both normal and split timings", ErrInvalidShiftConfig, s.Name)
	case !normal && !split:
		return fmt.Errorf("%w: shift %q has no timing", ErrInvalidShiftConfig, s.Name)
	case normal && (s.Start == nil || s.End == nil):
		return fmt.Errorf("%w: shift %q needs both start and end", ErrInvalidShiftConfig, s.Name)
	case split && (s.Slot1 == nil || s.Slot2 == nil):
		return fmt.Errorf("%w: split shift %q needs two slots", ErrInvalidShiftConfig, s.Name)
	}
	if normal && *s.End <= *s.Start {
		return fmt.Errorf("%w: shift %q ends at %s, not after its start %s", ErrInvalidShiftConfig, s.Name, *s.End, *s.Start)
	}
	if split {
		if s.Slot1.End <= s.Slot1.Start || s.Slot2.End <= s.Slot2.Start || s.Slot2.Start < s.Slot1.End {
			return fmt.Errorf("%w: split shift %q slots must be ordered and disjoint", ErrInvalidShiftConfig, s.Name)
		}
	}
	if s.WorkHours <= 0 {
		return fmt.Errorf("%w: shift %q work hours must be positive", ErrInvalidShiftConfig, s.Name)
	}
	if s.LateThresholdMinutes < 0 {
		return fmt.Errorf("%w: shift %q late threshold must be non-negative", ErrInvalidShiftConfig, s.Name)
	}
	return nil
}

// ShiftRecord is a shift row as stored. Times are text columns carried over
// from the legacy schema and are only trusted after ShiftFromRecord.
type ShiftRecord struct {
	Name                 string
	StartTime            *string
	EndTime              *string
	Slot1Start           *string
	Slot1End             *string
	Slot2Start           *string
	Slot2End             *string
	WorkHours            *float64
	LateThresholdMinutes *int
}

// ShiftFromRecord maps a stored row to a Shift. Unparseable times are a hard
// error; they are never defaulted.
func ShiftFromRecord(r ShiftRecord) (Shift, error) {
	s := Shift{Name: r.Name}

	parse := func(field string, v *string) (*TimeOfDay, error) {
		if v == nil || strings.TrimSpace(*v) == "" {
			return nil, nil
		}
		t, err := ParseTimeOfDay(*v)
		if err != nil {
			return nil, fmt.Errorf("shift %q %s: %w", r.Name, field, err)
		}
		return &t, nil
	}

	var err error
	if s.Start, err = parse("start_time", r.StartTime); err != nil {
		return Shift{}, err
	}
	if s.End, err = parse("end_time", r.EndTime); err != nil {
		return Shift{}, err
	}

	var slotTimes [4]*TimeOfDay
	for i, v := range []*string{r.Slot1Start, r.Slot1End, r.Slot2Start, r.Slot2End} {
		if slotTimes[i], err = parse(fmt.Sprintf("slot_time_%d", i+1), v); err != nil {
			return Shift{}, err
		}
	}
	if slotTimes[0] != nil || slotTimes[1] != nil || slotTimes[2] != nil || slotTimes[3] != nil {
		if slotTimes[0] == nil || slotTimes[1] == nil || slotTimes[2] == nil || slotTimes[3] == nil {
			return Shift{}, fmt.Errorf("%w: split shift %q has incomplete slots", ErrInvalidShiftConfig, r.Name)
		}
		s.Slot1 = &Slot{Start: *slotTimes[0], End: *slotTimes[1]}
		s.Slot2 = &Slot{Start: *slotTimes[2], End: *slotTimes[3]}
	}

	if r.LateThresholdMinutes != nil {
		s.LateThresholdMinutes = *r.LateThresholdMinutes
	}
	if r.WorkHours != nil && *r.WorkHours > 0 {
		s.WorkHours = *r.WorkHours
	} else {
		for _, slot := range s.Slots() {
			s.WorkHours += slot.Hours()
		}
	}

	if err := s.Validate(); err != nil {
		return Shift{}, err
	}
	return s, nil
}

// Assignment binds an employee to a named shift over an inclusive date range.
type Assignment struct {
	ID           string
	EmployeeCode string
	ShiftName    string
	FromDate     time.Time
	ToDate       time.Time
	CreatedAt    time.Time
}

func (a Assignment) Covers(date time.Time) bool {
	return !date.Before(a.FromDate) && !date.After(a.ToDate)
}

// SelectAssignment returns the most recently created assignment covering date.
func SelectAssignment(assignments []Assignment, date time.Time) (Assignment, bool) {
	covering := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.Covers(date) {
			covering = append(covering, a)
		}
	}
	if len(covering) == 0 {
		return Assignment{}, false
	}
	sort.SliceStable(covering, func(i, j int) bool {
		return covering[i].CreatedAt.After(covering[j].CreatedAt)
	})
	return covering[0], true
}
