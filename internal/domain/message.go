// Package domain holds the shared types of the skypulse pipeline.
package domain

import "encoding/json"

// CanonicalMessage is the wire contract carried on the queue between the
// ingester and the processor. It is immutable once published; consumers
// derive new values from it, they never edit it.
type CanonicalMessage struct {
	Source    string `json:"source"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// Encode serializes the message for the queue.
func (m CanonicalMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// StreamEvent is the Jetstream envelope. Only the commit.record path is
// inspected; everything else in the frame is ignored.
type StreamEvent struct {
	Commit *StreamCommit `json:"commit"`
}

// StreamCommit holds the record of a commit event.
type StreamCommit struct {
	Record *SourceRecord `json:"record"`
}

// SourceRecord is the unwrapped post payload from the firehose. Text and
// CreatedAt are source-supplied and untrusted.
type SourceRecord struct {
	Type      string   `json:"$type"`
	Text      string   `json:"text"`
	Langs     []string `json:"langs,omitempty"`
	CreatedAt string   `json:"createdAt"`
}
