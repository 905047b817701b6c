// Package speech provides the speech engines a drill can narrate through.
//
// Every engine implements the same two-method capability: Speak dispatches
// one utterance without blocking and returns a channel that receives exactly
// one value when the utterance ends (nil) or fails (non-nil); CancelAll
// interrupts everything in flight. Callers treat any error as "finished".
//
// Engines:
//   - TextSpeaker writes a transcript line per utterance and holds it for a
//     duration derived from its length and rate
//   - CommandSpeaker runs an external text-to-speech command such as macOS say
//   - NullSpeaker resolves every utterance immediately
package speech
