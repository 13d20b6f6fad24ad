package attendance

import (
	"context"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
)

// disabledOvertimeRepository stands in when the overtime table was not found
// at startup. Every month reads as overtime disabled.
type disabledOvertimeRepository struct{}

func NewDisabledOvertimeRepository() attendance.OvertimeRepository {
	return disabledOvertimeRepository{}
}

func (disabledOvertimeRepository) IsEnabled(context.Context, string, string) (bool, error) {
	return false, nil
}

func (disabledOvertimeRepository) Set(context.Context, string, string, bool, string) error {
	return attendance.ErrOvertimeUnavailable
}
