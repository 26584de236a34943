package companion

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/easeaico/virtual-companion/internal/avatar"
	"github.com/easeaico/virtual-companion/internal/emotion"
	"github.com/easeaico/virtual-companion/internal/logging"
	"github.com/easeaico/virtual-companion/internal/prompt"
	"github.com/easeaico/virtual-companion/internal/types"
	"github.com/easeaico/virtual-companion/internal/utils"
	"github.com/easeaico/virtual-companion/internal/utils/errutil"
)

// Status is a point-in-time view of the session for display.
type Status struct {
	SessionID      string
	CompanionMood  int
	Intensity      float64
	Committed      float64
	Preview        float64
	Drafting       bool
	Activity       types.Activity
	PendingReplies int
	MoodEntries    int
	Messages       int
	VoiceEnabled   bool
	Visual         types.VisualState
}

type snapshot[T any] struct {
	version uint64
	items   []T
}

// Orchestrator receives user events, drives the affective engine and keeps
// the session consistent. All methods are safe for concurrent use.
type Orchestrator struct {
	mu        sync.Mutex
	session   *Session
	analyzer  *emotion.Analyzer
	decay     *emotion.DecayScheduler
	afterFunc emotion.AfterFunc
	builder   *prompt.Builder
	profile   *types.Profile
	userName  string
	generator ReplyGenerator
	store     Store
	speaker   Speaker
	voice     bool
	nowFunc   func() time.Time

	// commitSeq identifies the latest committed intensity; a decay scheduled
	// for an older commit is dropped.
	commitSeq uint64
	pending   int

	subscribers map[int]func(types.VisualState)
	nextSubID   int

	notifyMu     sync.Mutex
	lastNotified *types.VisualState

	msgVersion  uint64
	moodVersion uint64

	persistMu        sync.Mutex
	savedMsgVersion  uint64
	savedMoodVersion uint64
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStore enables persistence. Without it the session lives in memory only.
func WithStore(store Store) Option {
	return func(o *Orchestrator) { o.store = store }
}

// WithSpeaker sets the voice output used when voice is enabled.
func WithSpeaker(speaker Speaker) Option {
	return func(o *Orchestrator) { o.speaker = speaker }
}

// WithVoice sets the initial voice toggle.
func WithVoice(enabled bool) Option {
	return func(o *Orchestrator) { o.voice = enabled }
}

// WithProfile sets the persona.
func WithProfile(profile *types.Profile) Option {
	return func(o *Orchestrator) {
		if profile != nil {
			o.profile = profile
		}
	}
}

// WithUserName sets how the user is called in prompts.
func WithUserName(name string) Option {
	return func(o *Orchestrator) { o.userName = name }
}

// WithPromptBuilder replaces the default prompt builder.
func WithPromptBuilder(builder *prompt.Builder) Option {
	return func(o *Orchestrator) {
		if builder != nil {
			o.builder = builder
		}
	}
}

// WithAfterFunc replaces the timer factory used for intensity decay.
func WithAfterFunc(afterFunc emotion.AfterFunc) Option {
	return func(o *Orchestrator) { o.afterFunc = afterFunc }
}

// WithClock replaces the time source for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.nowFunc = now
		}
	}
}

// New creates an Orchestrator over session. A nil session starts a fresh one.
func New(session *Session, generator ReplyGenerator, opts ...Option) *Orchestrator {
	if session == nil {
		session = NewSession()
	}
	o := &Orchestrator{
		session:     session,
		analyzer:    emotion.NewAnalyzer(),
		builder:     prompt.NewBuilder(prompt.DefaultHistoryLimit),
		profile:     types.DefaultProfile(),
		generator:   generator,
		nowFunc:     time.Now,
		subscribers: make(map[int]func(types.VisualState)),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.decay = emotion.NewDecayScheduler(o.afterFunc)
	return o
}

// Submit handles a sent message: it commits the message intensity, asks the
// reply model for an answer and appends it, or the fallback apology when the
// model fails. Blank text is ignored and reports false. The returned message
// is the companion's reply.
func (o *Orchestrator) Submit(ctx context.Context, text string) (types.Message, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.Message{}, false
	}
	logger := logging.From(ctx)

	o.mu.Lock()
	s := o.session
	s.Messages = append(s.Messages, types.NewMessage(types.SenderUser, text, o.nowFunc()))
	intensity := o.analyzer.Analyze(text)
	o.commitLocked(intensity)
	// A draft typed after this message was sent belongs to the next one.
	if s.Draft == text {
		s.clearDraft()
	}
	o.pending++
	s.Activity = types.ActivityThinking

	buildCtx := prompt.BuildContext{
		Profile:       o.profile,
		UserName:      o.userName,
		CompanionMood: s.Moods.CurrentCompanionMood(),
		History:       append([]types.Message(nil), s.Messages...),
	}
	if latest, ok := s.Moods.Latest(); ok {
		buildCtx.LastMood = &latest
	}
	msgSnap := o.messageSnapshotLocked()
	o.mu.Unlock()

	logger.Debug("message submitted", "intensity", intensity)
	o.notify()
	o.persistMessages(ctx, msgSnap)

	reply, err := o.generate(ctx, buildCtx)
	fallback := err != nil
	if fallback {
		_ = errutil.Handle(ctx, err, "failed to generate reply")
		reply = o.profile.Fallback()
	}

	o.mu.Lock()
	replyMsg := types.NewMessage(types.SenderCompanion, reply, o.nowFunc())
	s.Messages = append(s.Messages, replyMsg)
	o.pending--
	if o.pending == 0 {
		s.Activity = types.ActivityIdle
	}
	msgSnap = o.messageSnapshotLocked()
	speak := o.voice && o.speaker != nil && !fallback
	o.mu.Unlock()

	o.notify()
	o.persistMessages(ctx, msgSnap)
	if speak {
		o.speaker.Speak(reply)
	}
	return replyMsg, true
}

func (o *Orchestrator) generate(ctx context.Context, buildCtx prompt.BuildContext) (string, error) {
	if o.generator == nil {
		return "", goerr.New("reply generator is not configured")
	}

	promptContext, err := o.builder.Build(buildCtx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to build prompt context")
	}

	reply, err := o.generator.GenerateReply(ctx, promptContext)
	if err != nil {
		return "", goerr.Wrap(err, "reply generator failed")
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", goerr.Wrap(utils.ErrEmptyReply, "reply generator returned nothing")
	}
	return reply, nil
}

// commitLocked sets the committed intensity and restarts the decay countdown.
func (o *Orchestrator) commitLocked(intensity float64) {
	o.session.Committed = emotion.ClampIntensity(intensity)
	o.commitSeq++
	seq := o.commitSeq

	o.decay.Schedule(o.session.Committed, func(relaxed float64) {
		o.mu.Lock()
		if seq != o.commitSeq {
			o.mu.Unlock()
			return
		}
		o.session.Committed = relaxed
		o.mu.Unlock()

		o.notify()
	})
}

// UpdateDraft previews the intensity of text still being typed. It never
// touches the committed intensity or the decay countdown.
func (o *Orchestrator) UpdateDraft(text string) {
	o.mu.Lock()
	s := o.session
	if draft := strings.TrimSpace(text); draft == "" {
		s.clearDraft()
	} else {
		s.Preview = emotion.Preview(o.analyzer.Analyze(draft))
		s.Drafting = true
		s.Draft = draft
	}
	o.mu.Unlock()

	o.notify()
}

// RecordMood stores a mood check-in. Levels outside 1-5 are clamped.
func (o *Orchestrator) RecordMood(ctx context.Context, level int) types.MoodEntry {
	o.mu.Lock()
	entry := o.session.Moods.Record(level)
	o.moodVersion++
	snap := snapshot[types.MoodEntry]{version: o.moodVersion, items: o.session.Moods.Entries()}
	o.mu.Unlock()

	o.notify()
	o.persistMoods(ctx, snap)
	return entry
}

// Greet posts the persona's first message when the conversation is empty.
func (o *Orchestrator) Greet(ctx context.Context) (types.Message, bool) {
	o.mu.Lock()
	s := o.session
	name := o.profile.Name
	if name == "" {
		name = types.DefaultCompanionName
	}
	text := strings.TrimSpace(utils.NormalizePromptText(o.profile.FirstMessage, name, o.userName))
	if len(s.Messages) > 0 || text == "" {
		o.mu.Unlock()
		return types.Message{}, false
	}
	msg := types.NewMessage(types.SenderCompanion, text, o.nowFunc())
	s.Messages = append(s.Messages, msg)
	snap := o.messageSnapshotLocked()
	speak := o.voice && o.speaker != nil
	o.mu.Unlock()

	o.persistMessages(ctx, snap)
	if speak {
		o.speaker.Speak(text)
	}
	return msg, true
}

// SetVoiceEnabled toggles speech. Disabling stops current playback.
func (o *Orchestrator) SetVoiceEnabled(enabled bool) {
	o.mu.Lock()
	o.voice = enabled
	speaker := o.speaker
	o.mu.Unlock()

	if !enabled && speaker != nil {
		speaker.Stop()
	}
}

func (o *Orchestrator) VoiceEnabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.voice
}

// CurrentCompanionMood is the rolling mood of the last three check-ins.
func (o *Orchestrator) CurrentCompanionMood() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.Moods.CurrentCompanionMood()
}

// CurrentIntensity is the draft preview while typing, else the committed intensity.
func (o *Orchestrator) CurrentIntensity() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.CurrentIntensity()
}

func (o *Orchestrator) CurrentVisualState() types.VisualState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visualStateLocked()
}

func (o *Orchestrator) visualStateLocked() types.VisualState {
	s := o.session
	return avatar.Map(s.Moods.CurrentCompanionMood(), s.CurrentIntensity(), s.Activity)
}

// Status returns a snapshot of the session for display.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := o.session
	return Status{
		SessionID:      s.ID,
		CompanionMood:  s.Moods.CurrentCompanionMood(),
		Intensity:      s.CurrentIntensity(),
		Committed:      s.Committed,
		Preview:        s.Preview,
		Drafting:       s.Drafting,
		Activity:       s.Activity,
		PendingReplies: o.pending,
		MoodEntries:    s.Moods.Len(),
		Messages:       len(s.Messages),
		VoiceEnabled:   o.voice,
		Visual:         o.visualStateLocked(),
	}
}

// RecentMessages returns up to n trailing messages, oldest first. n <= 0 returns all.
func (o *Orchestrator) RecentMessages(n int) []types.Message {
	o.mu.Lock()
	defer o.mu.Unlock()

	msgs := o.session.Messages
	if n > 0 && len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	return append([]types.Message(nil), msgs...)
}

// Subscribe registers fn for visual state changes and returns a function
// removing it. fn is called outside the state lock, in change order, and
// must not block for long.
func (o *Orchestrator) Subscribe(fn func(types.VisualState)) func() {
	o.mu.Lock()
	id := o.nextSubID
	o.nextSubID++
	o.subscribers[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.subscribers, id)
		o.mu.Unlock()
	}
}

// notify delivers the latest visual state to subscribers if it changed since
// the last delivery.
func (o *Orchestrator) notify() {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	o.mu.Lock()
	state := o.visualStateLocked()
	subs := make([]func(types.VisualState), 0, len(o.subscribers))
	for _, fn := range o.subscribers {
		subs = append(subs, fn)
	}
	o.mu.Unlock()

	if o.lastNotified != nil && *o.lastNotified == state {
		return
	}
	o.lastNotified = &state
	for _, fn := range subs {
		fn(state)
	}
}

func (o *Orchestrator) messageSnapshotLocked() snapshot[types.Message] {
	o.msgVersion++
	return snapshot[types.Message]{
		version: o.msgVersion,
		items:   append([]types.Message(nil), o.session.Messages...),
	}
}

func (o *Orchestrator) persistMessages(ctx context.Context, snap snapshot[types.Message]) {
	if o.store == nil {
		return
	}
	o.persistMu.Lock()
	defer o.persistMu.Unlock()

	if snap.version <= o.savedMsgVersion {
		return
	}
	if err := o.store.SaveMessages(ctx, snap.items); err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to save messages", goerr.V("count", len(snap.items))), "persistence failed")
		return
	}
	o.savedMsgVersion = snap.version
}

func (o *Orchestrator) persistMoods(ctx context.Context, snap snapshot[types.MoodEntry]) {
	if o.store == nil {
		return
	}
	o.persistMu.Lock()
	defer o.persistMu.Unlock()

	if snap.version <= o.savedMoodVersion {
		return
	}
	if err := o.store.SaveMoods(ctx, snap.items); err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to save moods", goerr.V("count", len(snap.items))), "persistence failed")
		return
	}
	o.savedMoodVersion = snap.version
}

// Close cancels the pending decay and stops speech.
func (o *Orchestrator) Close() {
	o.decay.Cancel()
	o.mu.Lock()
	speaker := o.speaker
	o.mu.Unlock()
	if speaker != nil {
		speaker.Stop()
	}
}
