// Package orchestration plays a drill: it generates a problem, narrates each
// step through a SpeechAdapter, mirrors it on a DisplayAdapter, waits the
// configured gaps on a Clock and finally reveals the answer.
//
// Runs are identified by a monotonically increasing token. Start and Stop
// increment it; every suspended continuation re-checks its captured token
// and abandons the run silently on mismatch. All effects are emitted while
// holding the orchestrator lock after that check, so once Stop returns no
// further speech or display call is made for the superseded run.
//
// The package decouples playback from presentation: the line-mode CLI, the
// REPL and the bubbletea dashboard are all DisplayAdapters.
package orchestration
