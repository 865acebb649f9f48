package governor

import "time"

// TimeWindow is the binary trading-window gate. The market is considered
// closed from Friday 21:00 local time through Saturday 21:00 local time;
// open otherwise. Pure function of wall-clock time.
type TimeWindow struct{}

// WindowStatus reports whether trading is allowed and why not
type WindowStatus struct {
	Allowed bool
	Reason  string
}

// IsOpen reports whether the trading window is open at the given time
func (TimeWindow) IsOpen(now time.Time) bool {
	switch now.Weekday() {
	case time.Friday:
		return now.Hour() < 21
	case time.Saturday:
		return now.Hour() >= 21
	default:
		return true
	}
}

// Status returns the window state with a reason when closed
func (w TimeWindow) Status(now time.Time) WindowStatus {
	if w.IsOpen(now) {
		return WindowStatus{Allowed: true}
	}
	return WindowStatus{Allowed: false, Reason: "Trading window closed (weekend lock)"}
}
