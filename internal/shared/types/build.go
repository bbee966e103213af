package types

import "time"

// BuildState is the observable phase of a builder
type BuildState string

const (
	BuildIdle      BuildState = "idle"
	BuildBuilding  BuildState = "building"
	BuildCompleted BuildState = "completed"
)

// BuildStep describes one stage of a simulated pipeline run
type BuildStep struct {
	Message  string        `json:"message"`
	Delay    time.Duration `json:"delay"`
	Progress int           `json:"progress"`
}

// BuildSnapshot is a point-in-time copy of a build session
type BuildSnapshot struct {
	ID         string        `json:"id"`
	State      BuildState    `json:"state"`
	Logs       []string      `json:"logs"`
	Progress   int           `json:"progress"`
	Building   bool          `json:"building"`
	Completed  bool          `json:"completed"`
	Cancelled  bool          `json:"cancelled"`
	Config     ProjectConfig `json:"config"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
}

// BuildEventType identifies a build progress notification
type BuildEventType string

const (
	EventBuildStart     BuildEventType = "build_start"
	EventBuildLog       BuildEventType = "build_log"
	EventBuildComplete  BuildEventType = "build_complete"
	EventBuildCancelled BuildEventType = "build_cancelled"
)

// BuildEvent is emitted to observers in step order
type BuildEvent struct {
	Type      BuildEventType `json:"type"`
	SessionID string         `json:"session_id"`
	Line      string         `json:"line,omitempty"`
	Progress  int            `json:"progress"`
	Timestamp int64          `json:"timestamp"`
}

// ArtifactKind is a downloadable placeholder binary format
type ArtifactKind string

const (
	ArtifactAPK ArtifactKind = "apk"
	ArtifactIPA ArtifactKind = "ipa"
)

// Artifact is a generated placeholder download
type Artifact struct {
	Bytes    []byte
	Filename string
	MimeType string
}
