package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/google/uuid"
	"go.uber.org/goleak"

	"github.com/hojin-dev/newschat/internal/chat"
	"github.com/hojin-dev/newschat/internal/config"
	"github.com/hojin-dev/newschat/internal/i18n"
	"github.com/hojin-dev/newschat/internal/log"
	"github.com/hojin-dev/newschat/internal/provider"
	"github.com/hojin-dev/newschat/internal/session"
	"github.com/hojin-dev/newschat/internal/testutil"
)

func TestMain(m *testing.M) {
	// Genkit keeps a few persistent goroutines alive after Init.
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
		// genkit.Init installs a signal.NotifyContext and discards the
		// stop function, so its goroutine can never be released.
		goleak.IgnoreTopFunction("os/signal.NotifyContext.func1"),
	)
}

// newTestApp wires a full App against the mock model and the
// credential-free provider lineup (synthetic + travel).
func newTestApp(t *testing.T, mock *testutil.MockLLM, hasCredential bool) *App {
	t.Helper()

	g := genkit.Init(context.Background())
	if g == nil {
		t.Fatal("genkit.Init() returned nil")
	}
	mock.RegisterModel(g)

	logger := log.NewNop()
	chatClient, err := chat.New(chat.Config{
		Genkit:        g,
		Logger:        logger,
		ModelName:     "mock/test-model",
		HasCredential: hasCredential,
	})
	if err != nil {
		t.Fatalf("chat.New() error = %v", err)
	}

	chain, err := provider.NewChain(provider.Config{}, logger,
		provider.NewSynthetic(),
		provider.NewTravel(),
	)
	if err != nil {
		t.Fatalf("provider.NewChain() error = %v", err)
	}

	return &App{
		Config: &config.Config{
			Provider:         config.ProviderGoogleAI,
			ModelName:        "mock/test-model",
			Locale:           "ko",
			DisplayCharLimit: 100,
			PromptCharLimit:  200,
		},
		Logger:   logger,
		Genkit:   g,
		Sessions: session.NewManager(i18n.LocaleKO),
		Chain:    chain,
		Chat:     chatClient,
	}
}

func newsQueryKey(keyword string) session.QueryKey {
	return session.QueryKey{Mode: session.ModeNews, Keyword: keyword, Locale: i18n.LocaleKO}
}

func TestSetQuery(t *testing.T) {
	a := newTestApp(t, testutil.NewMockLLM("ok"), true)
	id := a.Sessions.Create().ID()

	res, err := a.SetQuery(context.Background(), id, newsQueryKey("경제"))
	if err != nil {
		t.Fatalf("SetQuery() error = %v", err)
	}
	if !res.Changed {
		t.Error("first SetQuery() changed = false, want true")
	}
	if res.Epoch != 1 {
		t.Errorf("epoch = %d, want 1", res.Epoch)
	}
	if len(res.Records) != provider.MaxPageSize {
		t.Errorf("records = %d, want %d synthetic", len(res.Records), provider.MaxPageSize)
	}
	if !strings.Contains(res.Welcome.Content, "경제") {
		t.Errorf("welcome = %q, want keyword mentioned", res.Welcome.Content)
	}
	if res.Warning != "" {
		t.Errorf("warning = %q, want empty", res.Warning)
	}

	// Same key again: no reset, no welcome, grounding preserved.
	res, err = a.SetQuery(context.Background(), id, newsQueryKey("경제"))
	if err != nil {
		t.Fatalf("SetQuery() repeat error = %v", err)
	}
	if res.Changed {
		t.Error("repeated SetQuery() changed = true, want false")
	}
	if res.Welcome.Content != "" {
		t.Errorf("repeated SetQuery() welcome = %q, want empty", res.Welcome.Content)
	}
	if len(res.Records) != provider.MaxPageSize {
		t.Errorf("repeated SetQuery() records = %d, want preserved", len(res.Records))
	}
}

func TestSetQueryUnknownDestination(t *testing.T) {
	a := newTestApp(t, testutil.NewMockLLM("ok"), true)
	id := a.Sessions.Create().ID()

	key := session.QueryKey{Mode: session.ModeTravel, Destination: "Atlantis", Locale: i18n.LocaleEN}
	res, err := a.SetQuery(context.Background(), id, key)
	if err != nil {
		t.Fatalf("SetQuery() error = %v, fetch failures must not be fatal", err)
	}
	if want := i18n.T(i18n.LocaleEN, i18n.KeyTravelUnknown); res.Warning != want {
		t.Errorf("warning = %q, want the destination-specific %q", res.Warning, want)
	}
	if len(res.Records) != 0 {
		t.Errorf("records = %d, want 0 on fetch failure", len(res.Records))
	}
	// The conversation is still usable over the empty grounding set.
	if _, err := a.Send(context.Background(), id, "tell me anyway"); err != nil {
		t.Errorf("Send() after failed fetch error = %v", err)
	}
}

// A fetch failure surfaces as a generic localized warning: transport
// errors can embed the request URL, API key included, and that detail
// belongs in the log only.
func TestSetQueryWarningOmitsFetchError(t *testing.T) {
	a := newTestApp(t, testutil.NewMockLLM("ok"), true)

	logger := log.NewNop()
	httpClient := &http.Client{Timeout: 100 * time.Millisecond}
	chain, err := provider.NewChain(provider.Config{}, logger,
		provider.NewNewsAPI("secret-key", "http://127.0.0.1:1", httpClient, logger),
	)
	if err != nil {
		t.Fatalf("provider.NewChain() error = %v", err)
	}
	a.Chain = chain

	id := a.Sessions.Create().ID()
	res, err := a.SetQuery(context.Background(), id, newsQueryKey("경제"))
	if err != nil {
		t.Fatalf("SetQuery() error = %v, fetch failures must not be fatal", err)
	}
	if want := i18n.T(i18n.LocaleKO, i18n.KeyWarnFetchFailed); res.Warning != want {
		t.Errorf("warning = %q, want %q", res.Warning, want)
	}
	if strings.Contains(res.Warning, "secret-key") || strings.Contains(res.Warning, "127.0.0.1") {
		t.Errorf("warning leaks request details: %q", res.Warning)
	}
}

func TestSetQueryInvalidKey(t *testing.T) {
	a := newTestApp(t, testutil.NewMockLLM("ok"), true)
	id := a.Sessions.Create().ID()

	key := session.QueryKey{Mode: session.ModeNews, Locale: i18n.LocaleKO}
	if _, err := a.SetQuery(context.Background(), id, key); !errors.Is(err, session.ErrInvalidQueryKey) {
		t.Errorf("SetQuery(invalid) error = %v, want ErrInvalidQueryKey", err)
	}
}

func TestSetQueryUnknownSession(t *testing.T) {
	a := newTestApp(t, testutil.NewMockLLM("ok"), true)
	if _, err := a.SetQuery(context.Background(), uuid.New(), newsQueryKey("x")); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("SetQuery(unknown id) error = %v, want ErrNotFound", err)
	}
}

func TestSendPersistsTurns(t *testing.T) {
	mock := testutil.NewMockLLM("")
	mock.AddResponse("동향", "경제 동향 답변")
	a := newTestApp(t, mock, true)

	sess := a.Sessions.Create()
	id := sess.ID()
	if _, err := a.SetQuery(context.Background(), id, newsQueryKey("경제")); err != nil {
		t.Fatalf("SetQuery() error = %v", err)
	}

	res, err := a.Send(context.Background(), id, "최근 동향은?")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if res.Stale {
		t.Error("Send() stale = true, want false")
	}
	if res.Notice != "" {
		t.Errorf("Send() notice = %q, want empty", res.Notice)
	}
	if res.Turn.Content != "경제 동향 답변" {
		t.Errorf("reply = %q", res.Turn.Content)
	}

	history := sess.History()
	if len(history) != 2 {
		t.Fatalf("history has %d turns, want user+assistant", len(history))
	}
	if history[0].Role != session.RoleUser || history[1].Role != session.RoleAssistant {
		t.Errorf("history roles = %q, %q", history[0].Role, history[1].Role)
	}

	// The welcome turn is presentation-only and must not be in there.
	for _, turn := range history {
		if strings.Contains(turn.Content, "안녕하세요") {
			t.Errorf("welcome leaked into history: %q", turn.Content)
		}
	}
}

// The system prompt embeds the grounding records, localized to the
// query key's locale rather than the destination's spelling.
func TestSendGroundsSystemPrompt(t *testing.T) {
	mock := testutil.NewMockLLM("answer")
	a := newTestApp(t, mock, true)

	id := a.Sessions.Create().ID()
	key := session.QueryKey{Mode: session.ModeTravel, Destination: "서울", Locale: i18n.LocaleEN}
	if _, err := a.SetQuery(context.Background(), id, key); err != nil {
		t.Fatalf("SetQuery() error = %v", err)
	}

	if _, err := a.Send(context.Background(), id, "what should I eat?"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("mock received %d calls, want 1", len(calls))
	}
	system := calls[0].System
	if !strings.Contains(system, "Seoul") {
		t.Errorf("system prompt does not name the destination:\n%s", system)
	}
	if !strings.Contains(system, "Local food in Seoul") {
		t.Errorf("system prompt missing grounding record:\n%s", system)
	}
	for _, r := range system {
		if r >= 0xAC00 && r <= 0xD7A3 {
			t.Fatalf("system prompt contains Hangul for an English key:\n%s", system)
		}
	}
}

func TestSendWithoutQueryKey(t *testing.T) {
	a := newTestApp(t, testutil.NewMockLLM("ok"), true)
	id := a.Sessions.Create().ID()

	if _, err := a.Send(context.Background(), id, "hello"); !errors.Is(err, session.ErrInvalidState) {
		t.Errorf("Send() without key error = %v, want ErrInvalidState", err)
	}
}

func TestSendCredentialMissingNotice(t *testing.T) {
	a := newTestApp(t, testutil.NewMockLLM("unused"), false)

	sess := a.Sessions.Create()
	id := sess.ID()
	if _, err := a.SetQuery(context.Background(), id, newsQueryKey("경제")); err != nil {
		t.Fatalf("SetQuery() error = %v", err)
	}

	res, err := a.Send(context.Background(), id, "질문")
	if err != nil {
		t.Fatalf("Send() error = %v, credential absence must degrade not fail", err)
	}
	if res.Notice != NoticeCredentialMissing {
		t.Errorf("notice = %q, want %q", res.Notice, NoticeCredentialMissing)
	}
	if want := i18n.T(i18n.LocaleKO, i18n.KeyNoticeNoModelKey); res.Turn.Content != want {
		t.Errorf("reply = %q, want %q", res.Turn.Content, want)
	}

	// The notice is part of the transcript like any assistant turn.
	if got := len(sess.History()); got != 2 {
		t.Errorf("history has %d turns, want 2", got)
	}
}

func TestClearHistory(t *testing.T) {
	a := newTestApp(t, testutil.NewMockLLM("answer"), true)

	sess := a.Sessions.Create()
	id := sess.ID()
	if _, err := a.SetQuery(context.Background(), id, newsQueryKey("경제")); err != nil {
		t.Fatalf("SetQuery() error = %v", err)
	}
	if _, err := a.Send(context.Background(), id, "질문"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if err := a.ClearHistory(id); err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}
	if got := len(sess.History()); got != 0 {
		t.Errorf("history has %d turns after clear, want 0", got)
	}
	if got := len(sess.Records()); got == 0 {
		t.Error("grounding records lost on clear")
	}
	if sess.Epoch() != 1 {
		t.Errorf("epoch changed on clear: %d", sess.Epoch())
	}
}

// A clear arriving while a completion is in flight waits for that
// request cycle to finish. Without the request lock it would wipe the
// just-appended user turn and the late reply would land alone,
// corrupting the role ordering.
func TestClearHistoryWaitsForInFlightSend(t *testing.T) {
	mock := testutil.NewMockLLM("late answer")
	a := newTestApp(t, mock, true)

	sess := a.Sessions.Create()
	id := sess.ID()
	if _, err := a.SetQuery(context.Background(), id, newsQueryKey("경제")); err != nil {
		t.Fatalf("SetQuery() error = %v", err)
	}

	entered, release := mock.Gate()

	sendDone := make(chan error, 1)
	go func() {
		_, err := a.Send(context.Background(), id, "질문")
		sendDone <- err
	}()
	<-entered

	clearDone := make(chan error, 1)
	go func() { clearDone <- a.ClearHistory(id) }()

	select {
	case <-clearDone:
		t.Fatal("ClearHistory() returned while a completion was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	if err := <-sendDone; err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if err := <-clearDone; err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}

	// The cycle landed both turns first, then the clear emptied the
	// transcript. A lone assistant turn would mean interleaving.
	if got := len(sess.History()); got != 0 {
		t.Errorf("history has %d turns, want 0 after ordered clear", got)
	}
}

// Changing the topic resets the transcript and regrounds; replies from
// the old topic never surface.
func TestTopicChangeResets(t *testing.T) {
	mock := testutil.NewMockLLM("answer")
	a := newTestApp(t, mock, true)

	sess := a.Sessions.Create()
	id := sess.ID()
	if _, err := a.SetQuery(context.Background(), id, newsQueryKey("경제")); err != nil {
		t.Fatalf("SetQuery() error = %v", err)
	}
	if _, err := a.Send(context.Background(), id, "질문1"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	res, err := a.SetQuery(context.Background(), id, newsQueryKey("부동산"))
	if err != nil {
		t.Fatalf("SetQuery() error = %v", err)
	}
	if !res.Changed || res.Epoch != 2 {
		t.Errorf("topic change: changed=%v epoch=%d, want true/2", res.Changed, res.Epoch)
	}
	if got := len(sess.History()); got != 0 {
		t.Errorf("history has %d turns after topic change, want 0", got)
	}

	// New topic's grounding replaced the old one.
	records := sess.Records()
	if len(records) == 0 {
		t.Fatal("no records after topic change")
	}
	if !strings.Contains(records[0].Title, "부동산") {
		t.Errorf("record title = %q, want new topic", records[0].Title)
	}
}
