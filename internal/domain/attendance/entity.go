package attendance

import (
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/leave"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/shift"
)

type Direction string

const (
	DirectionIn      Direction = "in"
	DirectionOut     Direction = "out"
	DirectionUnknown Direction = ""
)

// PunchLog is one raw biometric device record. Timestamps are device local
// wall clock time.
type PunchLog struct {
	EmployeeCode string
	Timestamp    time.Time
	Direction    Direction
	DeviceID     *string
}

type DayStatus string

const (
	StatusFullDay     DayStatus = "full-day"
	StatusHalfDay     DayStatus = "half-day"
	StatusAbsent      DayStatus = "absent"
	StatusPaidLeave   DayStatus = "paid-leave"
	StatusCasualLeave DayStatus = "casual-leave"
	StatusWeekoff     DayStatus = "weekoff"
	StatusHoliday     DayStatus = "holiday"
)

func (s DayStatus) IsLeave() bool {
	return s == StatusPaidLeave || s == StatusCasualLeave
}

func (s DayStatus) IsRestDay() bool {
	return s == StatusWeekoff || s == StatusHoliday
}

type LateTier string

const (
	LateTierNone  LateTier = ""
	LateTierMinor LateTier = "late-10"
	LateTierMajor LateTier = "late-30"
)

// DailyRecord is the classified verdict for one employee day. It is derived on
// every read and never stored.
type DailyRecord struct {
	Date           time.Time
	Status         DayStatus
	OriginalStatus DayStatus
	FirstEntry     *time.Time
	LastExit       *time.Time
	TotalHours     float64
	IsLate         bool
	MinutesLate    int
	LateTier       LateTier
	IsEarlyExit    bool
	LogCount       int
	IsRegularized  bool
	LeaveValue     float64
	ShiftName      string
	HolidayName    string
	// WorkedOnRestDay is set when punches exist on a holiday or weekly off.
	WorkedOnRestDay bool
	// WeekoffPaid is decided by the monthly aggregation, not the classifier.
	WeekoffPaid bool
	Warning     string
}

type Holiday struct {
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

// Regularization is an approved override of one day's status.
type Regularization struct {
	ID                string
	EmployeeCode      string
	Date              time.Time
	OriginalStatus    DayStatus
	RegularizedStatus DayStatus
	Reason            string
	ApprovedBy        *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LeaveMark is an approved leave on a date.
type LeaveMark struct {
	Type  leave.LeaveType
	Value float64
}

// DayInput is everything the classifier needs for one day.
type DayInput struct {
	EmployeeCode   string
	Date           time.Time
	Shift          *shift.Shift
	Logs           []PunchLog
	IsHoliday      bool
	HolidayName    string
	IsWeekoff      bool
	Regularization *Regularization
	Leave          *LeaveMark
}

// Policy carries the classification thresholds.
type Policy struct {
	FullDayMinHours           float64
	HalfDayMinHours           float64
	EarlyExitToleranceMinutes int
	LateTierMinorMinutes      int
	LateTierMajorMinutes      int
	// WeekoffMinWorkedDays is the worked-day credit in the six days before a
	// weekly off required for it to be paid.
	WeekoffMinWorkedDays float64
	// LateTierOnHalfDays counts late tiers on half days as well.
	LateTierOnHalfDays bool
}

// MonthlyAttendance is the salary cycle summary consumed by payroll.
type MonthlyAttendance struct {
	EmployeeCode        string
	Month               string
	CycleStart          time.Time
	CycleEnd            time.Time
	CycleDays           int
	FullDays            float64
	HalfDays            float64
	AbsentDays          float64
	LateDays            int
	LateBy30MinutesDays int
	LateBy10MinutesDays int
	EarlyExits          int
	TotalWorkedHours    float64
	// SundaysInMonth counts paid weekly offs.
	SundaysInMonth      int
	UnpaidWeekoffs      int
	Holidays            int
	RestDaysWorked      int
	PaidLeaveDays       float64
	CasualLeaveDays     float64
	RegularizedDays     int
	ExpectedWorkingDays int
	ActualDaysWorked    float64
	TotalPayableDays    float64
	ExpectedHours       float64
	// ShiftWorkHours is the target of the shift in effect at cycle end.
	ShiftWorkHours  float64
	OvertimeEnabled bool
	OvertimeHours   float64
	Days            []DailyRecord
	Warnings        []string
}
