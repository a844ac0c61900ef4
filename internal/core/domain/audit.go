package domain

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeDenied  = "denied"
)

// AuditEntry records one mutating action performed through the console.
type AuditEntry struct {
	ActorID    int64     `json:"actor_id" bson:"actor_id"`
	Actor      string    `json:"actor" bson:"actor"`
	Action     string    `json:"action" bson:"action"`
	Resource   string    `json:"resource" bson:"resource"`
	ResourceID int64     `json:"resource_id,omitempty" bson:"resource_id,omitempty"`
	Outcome    string    `json:"outcome" bson:"outcome"`
	Error      string    `json:"error,omitempty" bson:"error,omitempty"`
	At         time.Time `json:"at" bson:"at"`
}
