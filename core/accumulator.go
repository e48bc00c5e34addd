package assistant

// accumulator assembles streamed response segments into one assistant
// turn. The turn is created lazily on the first segment, so a stream that
// produces nothing leaves no trace in the conversation.
type accumulator struct {
	turn *Turn
}

// Append folds one segment into the in-flight turn and returns the full
// snapshot after the append.
func (a *accumulator) Append(segment string) (snapshot string) {
	if a.turn == nil {
		turn := NewTurn(RoleAssistant, "")
		a.turn = &turn
	}
	a.turn.Content += segment
	return a.turn.Content
}

// Finalize hands over the assembled turn and resets the accumulator. It
// returns nil when no content arrived.
func (a *accumulator) Finalize() *Turn {
	turn := a.turn
	a.turn = nil
	if turn == nil || turn.Content == "" {
		return nil
	}
	return turn
}
