package scheduling

// RuleError is a business-rule rejection that is shown to the customer.
type RuleError struct {
	Code    string
	Message string
}

func (e *RuleError) Error() string {
	return e.Code + ": " + e.Message
}

var (
	ErrClosedDay            = &RuleError{Code: "closed_day", Message: "the salon is closed on this day"}
	ErrBeforeLeadTime       = &RuleError{Code: "lead_time", Message: "this date is too soon, please pick a later day"}
	ErrBeyondLookAhead      = &RuleError{Code: "look_ahead", Message: "this date is too far ahead"}
	ErrOutsideBusinessHours = &RuleError{Code: "outside_hours", Message: "the appointment does not fit within opening hours"}
	ErrOffGrid              = &RuleError{Code: "off_grid", Message: "start time is not on the booking grid"}
	ErrSlotPassed           = &RuleError{Code: "slot_passed", Message: "this time has already passed"}
)
