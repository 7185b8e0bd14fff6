package attendance

// ActorKind discriminates who is writing a derived record.
type ActorKind string

const (
	ActorSystem ActorKind = "system"
	ActorUser   ActorKind = "user"
)

// Actor identifies the writer of auto-processed records. Scheduled runs
// use the system actor; manual re-runs carry the requesting user's ID.
type Actor struct {
	Kind   ActorKind
	UserID *string
}

func SystemActor() Actor {
	return Actor{Kind: ActorSystem}
}

func UserActor(userID string) Actor {
	return Actor{Kind: ActorUser, UserID: &userID}
}
