// Package audio turns a live input stream into a per-frame loudness value.
//
// A [Monitor] opens its [Device] once, asynchronously, and from then on only
// publishes snapshots of the most recent capture buffer. Readers in the frame
// loop never wait on audio I/O: [Monitor.CurrentLoudness] is an atomic load
// plus an RMS over a few hundred samples. When capture cannot start the
// monitor logs the failure and reports zero loudness for the rest of the
// session.
package audio
