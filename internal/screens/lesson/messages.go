package lesson

// commandDoneMsg is sent when an orchestrator command run in the
// background returns.
type commandDoneMsg struct {
	Err error
}
