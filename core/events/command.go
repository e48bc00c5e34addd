package events

// KindCommandResult identifies a finished side-channel command result.
const KindCommandResult Kind = "command.result"

// CommandResult carries the formatted result of a dispatched command. The
// result enters the transcript as a synthetic assistant turn, bypassing the
// streaming pipeline.
type CommandResult struct {
	Base
	Content string
}

func NewCommandResult(content string) CommandResult {
	return CommandResult{Base: NewBase(KindCommandResult), Content: content}
}
