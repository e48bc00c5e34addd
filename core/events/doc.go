// Package events defines the typed assistant event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - user_transcript.*
//   - assistant_response.*
//   - assistant_speech.*
//   - command.*
//   - notice
//
// Semantics used across the package:
//
//   - Segment: append-only text piece emitted in stream order.
//   - Snapshot: the full in-flight text after applying the segment.
//   - Final: terminal immutable text for the current stream/turn.
//   - Started/Ended: lifecycle boundaries; every Started is matched by
//     exactly one Ended.
//
// user_transcript events
//
//   - UserListeningStarted (user_transcript.listening_started): a listening
//     session became active.
//   - UserListeningStopped (user_transcript.listening_stopped): the
//     recogniser returned to idle, with or without a transcript.
//   - UserTranscriptFinal (user_transcript.final): terminal transcript for
//     the utterance, emitted at most once per listening session.
//
// assistant_response events
//
//   - AssistantResponseSegment (assistant_response.segment): streamed
//     response content delta plus the snapshot it produced.
//   - AssistantResponseFinal (assistant_response.final): response stream is
//     complete; Content is the whole assembled text.
//   - AssistantResponseError (assistant_response.error): the stream failed
//     before completing; segments already emitted stay valid and no final
//     event follows.
//
// assistant_speech events
//
//   - AssistantSpeechStarted (assistant_speech.started): spoken output began.
//   - AssistantSpeechEnded (assistant_speech.ended): spoken output reached
//     its terminal signal, successfully or not.
//
// command events
//
//   - CommandResult (command.result): a side-channel command finished and its
//     formatted result was injected as an assistant turn.
//
// notice events
//
//   - Notice (notice): user-visible, non-fatal notification.
package events
