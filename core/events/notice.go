package events

// KindNotice identifies a user-visible, non-fatal notification.
const KindNotice Kind = "notice"

// Notice is a user-visible, non-fatal notification. Only transport,
// recognition, synthesis and command failures produce notices; everything
// else is logged and swallowed.
type Notice struct {
	Base
	Title       string
	Description string
}

func NewNotice(title, description string) Notice {
	return Notice{Base: NewBase(KindNotice), Title: title, Description: description}
}
