package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/folio/internal/config"
	"github.com/jask/folio/internal/logging"
	"github.com/jask/folio/internal/scrollspy"
	"github.com/jask/folio/internal/service"
)

// App renders the CV document and feeds viewport geometry, scroll
// animation frames and timers into the scroll-spy engine.
type App struct {
	ctx        context.Context
	cfg        config.Config
	content    *service.ContentService
	saveConfig func(config.Config) error
	log        *slog.Logger

	engine  *scrollspy.Engine
	catalog *scrollspy.Catalog
	navMode scrollspy.NavMode

	keys   keyMap
	help   help.Model
	prompt textinput.Model
	mode   appMode

	doc         service.Document
	loaded      bool
	layout      layout
	layoutDirty bool
	navRows     int
	pages       map[scrollspy.SectionID]int
	width       int
	height      int

	scroll  smoothScroller
	pending []tea.Cmd

	// maintained by section-change listeners
	marker  string
	accent  lipgloss.Color
	showTop bool

	status    string
	statusErr bool

	now  func() time.Time
	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

type appMode string

const (
	modeBrowse appMode = "browse"
	modeJump   appMode = "jump"
)

// Options configures New.
type Options struct {
	Config  config.Config
	Content *service.ContentService
	Logger  *slog.Logger

	// Initial seeds the history, as if the page was opened at that URL.
	Initial scrollspy.Location

	// SaveConfig persists the nav mode toggle; nil keeps it in memory.
	SaveConfig func(config.Config) error
}

func New(ctx context.Context, opts Options) (*App, error) {
	catalog, err := opts.Config.Catalog()
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	prompt := textinput.New()
	prompt.Prompt = "jump to: "
	prompt.Placeholder = "section or section/sub-path"
	prompt.CharLimit = 64
	prompt.Cursor.SetMode(cursor.CursorStatic)
	prompt.Focus()

	a := &App{
		ctx:        ctx,
		cfg:        opts.Config,
		content:    opts.Content,
		saveConfig: opts.SaveConfig,
		log:        log,
		catalog:    catalog,
		navMode:    opts.Config.NavMode(),
		keys:       defaultKeyMap(),
		help:       help.New(),
		prompt:     prompt,
		mode:       modeBrowse,
		pages:      map[scrollspy.SectionID]int{},
		marker:     scrollspy.ActiveSection{}.Marker(),
		accent:     colorLavender,
		now:        time.Now,
		tick:       tea.Tick,
	}
	a.engine, err = scrollspy.New(scrollspy.Options{
		Catalog:   catalog,
		Tuning:    opts.Config.Tuning(),
		Probe:     appProbe{a},
		Scroller:  appScroller{a},
		Scheduler: appScheduler{a},
		History:   scrollspy.NewMemoryHistory(opts.Initial),
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	// Body marker: drives the section accent colour.
	a.engine.Subscribe(func(c scrollspy.Change) {
		a.marker = c.Next.Marker()
		a.accent = accentFor(a.catalog, c.Next.Section)
	})
	// Back-to-top hint.
	a.engine.Subscribe(func(c scrollspy.Change) {
		a.showTop = !c.Next.IsEmpty()
	})
	// Paginated sections follow their "page-N" sub-path.
	a.engine.Subscribe(func(c scrollspy.Change) {
		p, ok := parsePage(c.Next.SubPath)
		if !ok || p == a.page(c.Next.Section) {
			return
		}
		a.pages[c.Next.Section] = p
		a.layoutDirty = true
	})
	return a, nil
}

func (a *App) Init() tea.Cmd {
	return a.loadDocument()
}

func (a *App) loadDocument() tea.Cmd {
	return func() tea.Msg {
		if a.content == nil {
			return errMsg{fmt.Errorf("no content service configured")}
		}
		doc, err := a.content.LoadDocument(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return documentMsg{doc}
	}
}

// Engine exposes the scroll-spy engine, mainly for status queries.
func (a *App) Engine() *scrollspy.Engine { return a.engine }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.relayout()
		a.mountIfReady()
		a.scrolled()
	case documentMsg:
		a.doc = m.doc
		a.loaded = true
		a.relayout()
		a.mountIfReady()
	case tea.KeyMsg:
		if a.mode == modeJump {
			cmd = a.handlePromptKey(m)
		} else {
			cmd = a.handleKey(m)
		}
	case tea.MouseMsg:
		switch m.Button {
		case tea.MouseButtonWheelUp:
			a.scrollRows(-3)
		case tea.MouseButtonWheelDown:
			a.scrollRows(3)
		}
	case animFrameMsg:
		a.stepAnimation(m)
	case frameMsg:
		a.engine.Frame()
	case timerMsg:
		if a.engine.Fire(m.timer) && a.engine.FramePending() {
			a.enqueue(a.frameTick())
		}
	case statusMsg:
		a.setStatus(string(m))
	case errMsg:
		a.log.Error("tui: error", "err", m.error)
		a.status = "error: " + m.Error()
		a.statusErr = true
	}
	return a, a.flush(cmd)
}

// flush applies a deferred relayout and returns every command queued by the
// engine adapters during this update.
func (a *App) flush(cmd tea.Cmd) tea.Cmd {
	if a.layoutDirty {
		a.relayout()
	}
	cmds := append(a.pending, cmd)
	a.pending = nil
	return tea.Batch(cmds...)
}

func (a *App) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		a.pending = append(a.pending, cmd)
	}
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) mountIfReady() {
	if a.loaded && a.width > 0 && !a.engine.Mounted() {
		a.engine.Mount()
		a.log.Info("tui: mounted", "location", a.engine.Status().Location.String())
	}
}

func (a *App) rowPx() float64 { return a.cfg.Layout.RowPx }

func (a *App) frameInterval() time.Duration { return a.cfg.FrameInterval() }

// viewportRows leaves two rows for the status and help lines.
func (a *App) viewportRows() int {
	if a.height-2 < 1 {
		return 1
	}
	return a.height - 2
}

func (a *App) page(id scrollspy.SectionID) int {
	if p := a.pages[id]; p > 0 {
		return p
	}
	return 1
}

func (a *App) navLabels() []string {
	ids := a.catalog.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = fmt.Sprintf("%d %s", i+1, id)
	}
	return out
}

func (a *App) relayout() {
	a.layoutDirty = false
	if !a.loaded || a.width <= 0 {
		return
	}
	a.navRows = len(navRowsFor(a.navLabels(), a.width))
	a.layout = buildLayout(a.doc, layoutOptions{
		width:        a.width,
		viewportRows: a.viewportRows(),
		navRows:      a.navRows,
		mode:         a.navMode,
		pages:        a.pages,
		pageSize:     defaultPageSize,
	})
	a.scroll.setMax(float64(len(a.layout.lines)-a.viewportRows()) * a.rowPx())
}

// scrolled is the scroll event: one frame message is scheduled per burst.
func (a *App) scrolled() {
	if a.engine.ScrollEvent() {
		a.enqueue(a.frameTick())
	}
}

func (a *App) frameTick() tea.Cmd {
	return a.tick(a.frameInterval(), func(time.Time) tea.Msg { return frameMsg{} })
}

// scrollRows is user scrolling. It interrupts a running animation without
// telling the navigator; its own timers bring it back to idle.
func (a *App) scrollRows(n int) {
	if a.scroll.animating() {
		a.log.Debug("tui: animation interrupted by user scroll")
	}
	before := a.scroll.pos
	a.scroll.by(float64(n) * a.rowPx())
	if a.scroll.pos != before {
		a.scrolled()
	}
}

func (a *App) animTick(seq uint64) tea.Cmd {
	return a.tick(a.frameInterval(), func(t time.Time) tea.Msg { return animFrameMsg{seq: seq, at: t} })
}

func (a *App) stepAnimation(m animFrameMsg) {
	ok, done := a.scroll.step(m.seq, m.at)
	if !ok {
		return
	}
	a.scrolled()
	if done {
		a.engine.Arrived()
		return
	}
	a.enqueue(a.animTick(m.seq))
}

func (a *App) navigate(id scrollspy.SectionID, subPath string) {
	out := a.engine.NavigateTo(id, subPath, true)
	a.log.Debug("tui: navigate", "section", id, "sub_path", subPath, "outcome", out.String())
	if out == scrollspy.OutcomeRejected {
		a.status = fmt.Sprintf("unknown section %q", id)
		a.statusErr = true
	}
}

// cycle returns the section dir steps away from the one in focus, counting
// an in-flight target as the focus.
func (a *App) cycle(dir int) scrollspy.SectionID {
	st := a.engine.Status()
	base := st.CurrentSection
	if st.IsNavigating && st.TargetSection != scrollspy.None {
		base = st.TargetSection
	}
	n := a.catalog.Len()
	idx := a.catalog.Index(base)
	if idx < 0 && dir < 0 {
		idx = 0
	}
	s, _ := a.catalog.At(((idx+dir)%n + n) % n)
	return s.ID
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Quit):
		return tea.Quit
	case key.Matches(m, a.keys.Section):
		n := int(m.String()[0] - '0')
		if s, ok := a.catalog.At(n - 1); ok {
			a.navigate(s.ID, "")
		}
	case key.Matches(m, a.keys.Next):
		a.navigate(a.cycle(1), "")
	case key.Matches(m, a.keys.Prev):
		a.navigate(a.cycle(-1), "")
	case key.Matches(m, a.keys.Down):
		a.scrollRows(1)
	case key.Matches(m, a.keys.Up):
		a.scrollRows(-1)
	case key.Matches(m, a.keys.PageDown):
		a.scrollRows(a.viewportRows() - 2)
	case key.Matches(m, a.keys.PageUp):
		a.scrollRows(-(a.viewportRows() - 2))
	case key.Matches(m, a.keys.Top):
		if s, ok := a.catalog.At(0); ok {
			a.navigate(s.ID, "")
		}
	case key.Matches(m, a.keys.Back):
		if !a.engine.Back() {
			a.setStatus("no earlier location")
		}
	case key.Matches(m, a.keys.Forward):
		if !a.engine.Forward() {
			a.setStatus("no later location")
		}
	case key.Matches(m, a.keys.NextPage):
		a.turnPage(1)
	case key.Matches(m, a.keys.PrevPage):
		a.turnPage(-1)
	case key.Matches(m, a.keys.Jump):
		a.mode = modeJump
		a.prompt.SetValue("")
	case key.Matches(m, a.keys.NavMode):
		return a.cycleNavMode()
	}
	return nil
}

// turnPage moves the active section to another page. The location changes
// but the viewport stays where it is.
func (a *App) turnPage(dir int) {
	id := a.engine.Active().Section
	sec, ok := a.doc.Section(id)
	pages := pageCount(len(sec.Entries), defaultPageSize)
	if !ok || pages < 2 {
		a.setStatus("nothing to page here")
		return
	}
	next := a.page(id) + dir
	if next < 1 || next > pages {
		return
	}
	a.engine.NavigateTo(id, pageSubPath(next), false)
}

func (a *App) handlePromptKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Cancel):
		a.mode = modeBrowse
		return nil
	case key.Matches(m, a.keys.Confirm):
		a.mode = modeBrowse
		name, sub, _ := strings.Cut(strings.TrimSpace(a.prompt.Value()), "/")
		id, err := a.catalog.Resolve(name)
		if err != nil {
			a.status = err.Error()
			a.statusErr = true
			return nil
		}
		a.navigate(id, sub)
		return nil
	}
	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(m)
	return cmd
}

func (a *App) cycleNavMode() tea.Cmd {
	next := map[scrollspy.NavMode]scrollspy.NavMode{
		scrollspy.NavSticky: scrollspy.NavFixed,
		scrollspy.NavFixed:  scrollspy.NavStatic,
		scrollspy.NavStatic: scrollspy.NavSticky,
	}[a.navMode]
	a.navMode = next
	a.cfg.Layout.NavMode = string(next)
	a.relayout()
	a.scrolled()
	a.setStatus("nav bar: " + string(next))
	if a.saveConfig == nil {
		return nil
	}
	cfg := a.cfg
	return func() tea.Msg {
		if err := a.saveConfig(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg("nav bar: " + string(next) + " (saved)")
	}
}
