package events

const (
	// KindUserListeningStarted identifies the start of a listening session.
	KindUserListeningStarted Kind = "user_transcript.listening_started"
	// KindUserListeningStopped identifies the end of a listening session.
	KindUserListeningStopped Kind = "user_transcript.listening_stopped"
	// KindUserTranscriptFinal identifies a finalized utterance transcript.
	KindUserTranscriptFinal Kind = "user_transcript.final"
)

// UserListeningStarted marks the recogniser entering the listening state.
type UserListeningStarted struct{ Base }

func NewUserListeningStarted() UserListeningStarted {
	return UserListeningStarted{Base: NewBase(KindUserListeningStarted)}
}

// UserListeningStopped marks the recogniser returning to idle.
type UserListeningStopped struct{ Base }

func NewUserListeningStopped() UserListeningStopped {
	return UserListeningStopped{Base: NewBase(KindUserListeningStopped)}
}

// UserTranscriptFinal carries the single finalized transcript of one
// listening session.
type UserTranscriptFinal struct {
	Base
	Transcript string
}

func NewUserTranscriptFinal(transcript string) UserTranscriptFinal {
	return UserTranscriptFinal{Base: NewBase(KindUserTranscriptFinal), Transcript: transcript}
}
