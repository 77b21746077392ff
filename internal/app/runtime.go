package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hojin-dev/newschat/internal/chat"
	"github.com/hojin-dev/newschat/internal/grounding"
	"github.com/hojin-dev/newschat/internal/i18n"
	"github.com/hojin-dev/newschat/internal/provider"
	"github.com/hojin-dev/newschat/internal/session"
)

// Notice classifications attached to a SendResult when the assistant
// turn is a degradation notice rather than a model completion.
const (
	NoticeCredentialMissing = "credential_missing"
	NoticeUpstream          = "upstream_error"
)

// QueryResult reports the outcome of setting a session's query key.
type QueryResult struct {
	// Changed is true when the key differed from the previous one and
	// the conversation was reset.
	Changed bool

	// Epoch is the session's current reset generation.
	Epoch int64

	// Welcome is a composed greeting for the new topic. It is
	// presentation-only and never stored in the session history. Empty
	// when the key was unchanged.
	Welcome session.ChatTurn

	// Records holds the grounding set fetched for the new key.
	Records []grounding.Record

	// Warning is a localized notice when grounding could not be
	// fetched or came back empty. Empty otherwise.
	Warning string
}

// SendResult reports the outcome of one user message.
type SendResult struct {
	// Turn is the assistant's reply, either a model completion or a
	// localized degradation notice.
	Turn session.ChatTurn

	// Epoch is the reset generation the reply belongs to.
	Epoch int64

	// Stale is true when the query key changed while the completion
	// was in flight; the reply was discarded and not persisted.
	Stale bool

	// Notice classifies a degraded reply; empty for a real completion.
	Notice string
}

// SetQuery sets or changes the session's query key and, when it
// changed, fetches a fresh grounding set for the new topic.
//
// A fetch failure is not fatal: the session keeps an empty grounding
// set and the result carries a localized warning.
func (a *App) SetQuery(ctx context.Context, id uuid.UUID, key session.QueryKey) (*QueryResult, error) {
	sess, err := a.Sessions.Get(id)
	if err != nil {
		return nil, err
	}

	sess.Acquire()
	defer sess.Release()

	changed, err := sess.SetQueryKey(key)
	if err != nil {
		return nil, err
	}

	res := &QueryResult{Changed: changed, Epoch: sess.Epoch()}
	if !changed {
		res.Records = sess.Records()
		return res, nil
	}

	epoch := sess.Epoch()
	loc := sess.Locale()

	records, fetchErr := a.Chain.Fetch(ctx, key)
	if fetchErr != nil {
		// The raw error stays in the log only: transport failures can
		// embed the request URL, credentials included.
		a.Logger.Warn("grounding fetch failed",
			"session_id", id,
			"mode", key.Mode,
			"error", fetchErr)
		if errors.Is(fetchErr, provider.ErrUnknownDestination) {
			res.Warning = i18n.T(loc, i18n.KeyTravelUnknown)
		} else {
			res.Warning = i18n.T(loc, i18n.KeyWarnFetchFailed)
		}
	} else if len(records) == 0 {
		res.Warning = i18n.T(loc, i18n.KeyWarnNoResults)
	}

	if err := sess.SetRecords(epoch, records); err != nil {
		// Key changed again between SetQueryKey and here; the records
		// belong to a dead generation and are dropped.
		if errors.Is(err, session.ErrStaleEpoch) {
			res.Records = sess.Records()
			return res, nil
		}
		return nil, err
	}

	res.Records = records
	res.Welcome = welcomeTurn(key, loc)
	return res, nil
}

// Send runs one full request cycle: append the user turn, complete
// against the current grounding, and persist the assistant turn unless
// the topic changed mid-flight.
//
// The session's request lock is held for the whole cycle, so concurrent
// sends on one session serialize.
func (a *App) Send(ctx context.Context, id uuid.UUID, text string) (*SendResult, error) {
	sess, err := a.Sessions.Get(id)
	if err != nil {
		return nil, err
	}

	sess.Acquire()
	defer sess.Release()

	key, ok := sess.QueryKey()
	if !ok {
		return nil, fmt.Errorf("%w: no query key set", session.ErrInvalidState)
	}

	// Captured before the model call; decides whether the reply is
	// still current when it lands.
	epoch := sess.Epoch()

	if err := sess.AppendUserTurn(text); err != nil {
		return nil, err
	}

	system := systemPrompt(key, sess.Records(), a.Config.PromptCharLimit)

	turn, err := a.Chat.Complete(ctx, sess, system)
	res := &SendResult{Turn: turn, Epoch: epoch}
	switch {
	case err == nil:
	case errors.Is(err, chat.ErrCredentialMissing):
		res.Notice = NoticeCredentialMissing
	case errors.Is(err, chat.ErrUpstream):
		res.Notice = NoticeUpstream
	default:
		return nil, err
	}

	if err := sess.AppendAssistantTurn(epoch, turn.Content); err != nil {
		if errors.Is(err, session.ErrStaleEpoch) {
			a.Logger.Info("discarding assistant turn from old topic",
				"session_id", id,
				"epoch", epoch,
				"current_epoch", sess.Epoch())
			res.Stale = true
			return res, nil
		}
		return nil, err
	}
	return res, nil
}

// ClearHistory drops the session's chat turns while keeping its query
// key, grounding records, and epoch. It takes the request lock, so a
// clear issued while a completion is in flight waits for that cycle to
// finish instead of wiping the user turn out from under it.
func (a *App) ClearHistory(id uuid.UUID) error {
	sess, err := a.Sessions.Get(id)
	if err != nil {
		return err
	}
	sess.Acquire()
	defer sess.Release()
	sess.Clear()
	return nil
}

// systemPrompt renders the mode persona over the grounding text.
func systemPrompt(key session.QueryKey, records []grounding.Record, promptLimit int) string {
	text := grounding.BuildText(records, promptLimit)
	switch key.Mode {
	case session.ModeTravel:
		return grounding.TravelPersona(key.Locale, grounding.DisplayName(key.Destination, key.Locale), text)
	default:
		return grounding.NewsPersona(key.Locale, text)
	}
}

// welcomeTurn composes the greeting for a fresh topic. It is rendered
// to the user but never appended to history, so topic resets always
// start from an empty transcript.
func welcomeTurn(key session.QueryKey, loc i18n.Locale) session.ChatTurn {
	var content string
	switch key.Mode {
	case session.ModeTravel:
		content = i18n.Sprintf(loc, i18n.KeyWelcomeTravel, grounding.DisplayName(key.Destination, loc))
	default:
		content = i18n.Sprintf(loc, i18n.KeyWelcomeNews, key.Keyword)
	}
	return session.ChatTurn{Role: session.RoleAssistant, Content: content}
}
