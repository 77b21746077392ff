// Package session owns conversation state for grounded chats.
//
// A Session binds a query key (what the conversation is grounded in),
// an epoch counter, the conversation history, and the fetched grounding
// records. Changing the query key starts a new epoch: history and
// records are cleared, and any result from a call started under an
// older epoch is rejected when it tries to land.
//
// Sessions are ephemeral: they live in the in-memory Manager for the
// process lifetime and are never persisted.
package session
