package tui

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// FatalMsg carries a programming error; the program quits and Run returns it
type FatalMsg struct {
	Err error
}
