package fitness

import "time"

// SetNowFunc pins the ledger clock (and the selected day) for tests.
func (l *Ledger) SetNowFunc(now func() time.Time) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.now = now
	l.selectedDate = now()
	l.refreshTodaysWorkouts()
}
