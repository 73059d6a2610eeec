// Package app contains the root application model.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/registrar/internal/cachemanager"
	"github.com/zjrosen/registrar/internal/config"
	"github.com/zjrosen/registrar/internal/keys"
	"github.com/zjrosen/registrar/internal/log"
	"github.com/zjrosen/registrar/internal/pubsub"
	"github.com/zjrosen/registrar/internal/registry"
	"github.com/zjrosen/registrar/internal/ui/help"
	"github.com/zjrosen/registrar/internal/ui/logview"
	"github.com/zjrosen/registrar/internal/ui/styles"
	"github.com/zjrosen/registrar/internal/ui/toaster"
	"github.com/zjrosen/registrar/internal/watcher"
)

// screen identifies which view the root model is showing.
type screen int

const (
	screenWelcome screen = iota
	screenLogin
	screenRegister
	screenStudentMenu
	screenAdminMenu
	screenCatalog
	screenCourseDetail
	screenMyCourses
	screenPayment
	screenPaymentLookup
	screenUsers
	screenEnrollments
	screenCourseForm
	screenPrereqForm
)

const toastDuration = 3 * time.Second

// dataChangedMsg signals that a data file changed on disk.
type dataChangedMsg struct{}

// Model is the root application state.
type Model struct {
	svc     *registry.Service
	cfg     config.Config
	catalog *cachemanager.CatalogCache
	keys    keys.KeyMap

	screen  screen
	session registry.Session

	width  int
	height int

	// Screen state
	menu       menuState
	login      formState
	register   formState
	courses    courseTableState
	detail     detailState
	myCourses  myCoursesState
	payment    formState
	paymentOut string
	lookup     formState
	users      usersTableState
	rolls      enrollTableState
	courseForm courseFormState
	prereqForm formState

	toaster     toaster.Model
	help        help.Model
	helpVisible bool
	logs        logview.Model
	logListener *log.LogListener

	// Auto-refresh plumbing
	watcherHandle *watcher.Watcher
	watcherCh     <-chan struct{}
	eventsCtx     context.Context
	eventsCancel  context.CancelFunc
	eventsCh      <-chan pubsub.Event[registry.Change]
}

// New creates the root model over a loaded service.
func New(svc *registry.Service, cfg config.Config) Model {
	styles.Init(cfg.Theme)

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		svc:          svc,
		cfg:          cfg,
		catalog:      cachemanager.NewCatalogCache(svc, cfg.CacheTTL()),
		keys:         keys.DefaultKeyMap(),
		screen:       screenWelcome,
		session:      registry.Anonymous,
		menu:         welcomeMenu(),
		toaster:      toaster.New(),
		help:         help.New(),
		logs:         logview.New(),
		logListener:  log.NewListener(ctx),
		eventsCtx:    ctx,
		eventsCancel: cancel,
		eventsCh:     svc.Subscribe(ctx),
	}

	if cfg.AutoRefresh {
		w, err := watcher.New(watcher.Config{
			DataDir:     cfg.DataDir,
			DebounceDur: cfg.DebounceInterval(),
		})
		if err == nil {
			if ch, err := w.Start(); err == nil {
				m.watcherHandle = w
				m.watcherCh = ch
			} else {
				_ = w.Stop()
			}
		}
		// The app works fine without auto-refresh; ignore watcher failures
	}

	return m
}

// Close releases watcher and subscription resources.
func (m Model) Close() error {
	m.eventsCancel()
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listenEvents()}
	if m.watcherCh != nil {
		cmds = append(cmds, listenWatcher(m.watcherCh))
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// listenEvents waits for the next service change event.
func (m Model) listenEvents() tea.Cmd {
	return pubsub.ListenCmd(m.eventsCtx, m.eventsCh)
}

// listenWatcher waits for the next on-disk change signal.
func listenWatcher(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return dataChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.toaster = m.toaster.SetSize(msg.Width, msg.Height)
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.logs = m.logs.SetSize(msg.Width, msg.Height)
		m.courses = m.courses.setSize(msg.Width, msg.Height)
		m.users = m.users.setSize(msg.Width, msg.Height)
		m.rolls = m.rolls.setSize(msg.Width, msg.Height)
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Hide()
		return m, nil

	case dataChangedMsg:
		if err := m.svc.Reload(); err != nil {
			log.ErrorErr(log.CatUI, "reload after file change failed", err)
		}
		return m, listenWatcher(m.watcherCh)

	case log.LogEvent:
		if m.logListener == nil {
			return m, nil
		}
		m.logs = m.logs.Refresh()
		return m, m.logListener.Listen()

	case pubsub.Event[registry.Change]:
		// Any state change invalidates cached catalog listings.
		m.catalog.Invalidate(m.eventsCtx)
		m = m.refreshTables()
		if msg.Type == pubsub.ReloadEvent {
			m = m.toast("catalog reloaded from disk", toaster.StyleInfo)
			return m, tea.Batch(m.listenEvents(), toaster.ScheduleDismiss(toastDuration))
		}
		return m, m.listenEvents()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.logs.Visible() {
			if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Logs) {
				m.logs = m.logs.Hide()
				return m, nil
			}
			m.logs = m.logs.Update(msg)
			return m, nil
		}
		if m.helpVisible {
			if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Help) {
				m.helpVisible = false
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.Logs) {
			m.logs = m.logs.Show()
			return m, nil
		}
		if key.Matches(msg, m.keys.Help) && !m.inTextEntry() {
			m.helpVisible = true
			m.help = m.help.SetAdmin(m.session.IsAdmin())
			return m, nil
		}
		return m.updateScreen(msg)
	}

	return m, nil
}

// inTextEntry reports whether the current screen captures printable keys.
func (m Model) inTextEntry() bool {
	switch m.screen {
	case screenLogin, screenRegister, screenPayment, screenPaymentLookup,
		screenCourseForm, screenPrereqForm:
		return true
	}
	return false
}

// updateScreen routes a key press to the active screen.
func (m Model) updateScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenWelcome, screenStudentMenu, screenAdminMenu:
		return m.updateMenu(msg)
	case screenLogin, screenRegister:
		return m.updateAuth(msg)
	case screenCatalog:
		return m.updateCatalog(msg)
	case screenCourseDetail:
		return m.updateDetail(msg)
	case screenMyCourses:
		return m.updateMyCourses(msg)
	case screenPayment, screenPaymentLookup:
		return m.updatePayment(msg)
	case screenUsers:
		return m.updateUsers(msg)
	case screenEnrollments:
		return m.updateEnrollments(msg)
	case screenCourseForm:
		return m.updateCourseForm(msg)
	case screenPrereqForm:
		return m.updatePrereqForm(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenWelcome, screenStudentMenu, screenAdminMenu:
		body = m.viewMenu()
	case screenLogin, screenRegister:
		body = m.viewAuth()
	case screenCatalog:
		body = m.viewCatalog()
	case screenCourseDetail:
		body = m.viewDetail()
	case screenMyCourses:
		body = m.viewMyCourses()
	case screenPayment, screenPaymentLookup:
		body = m.viewPayment()
	case screenUsers:
		body = m.viewUsers()
	case screenEnrollments:
		body = m.viewEnrollments()
	case screenCourseForm:
		body = m.viewCourseForm()
	case screenPrereqForm:
		body = m.viewPrereqForm()
	}

	if m.cfg.UI.ShowStatusBar {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar())
	}
	if m.logs.Visible() {
		return m.logs.Overlay(body)
	}
	if m.helpVisible {
		return m.help.Overlay(body)
	}
	return m.toaster.Overlay(body, m.width, m.height)
}

// statusBar shows who is logged in and the global hints.
func (m Model) statusBar() string {
	who := "not signed in"
	if m.session.Authenticated() {
		who = m.session.FullName + " (" + string(m.session.Role) + ")"
	}
	return styles.StatusBar.Render(who + "  ·  ? help  ·  ctrl+c quit")
}

// toast shows a message; callers schedule its dismissal.
func (m Model) toast(message string, style toaster.Style) Model {
	m.toaster = m.toaster.Show(message, style)
	return m
}

// toastErr shows an error toast with the failure text.
func (m Model) toastErr(err error) Model {
	return m.toast(err.Error(), toaster.StyleError)
}

// goTo switches screens.
func (m Model) goTo(s screen) Model {
	m.screen = s
	return m
}

// homeScreen returns the menu matching the session role.
func (m Model) homeScreen() Model {
	switch {
	case !m.session.Authenticated():
		m.menu = welcomeMenu()
		return m.goTo(screenWelcome)
	case m.session.IsAdmin():
		m.menu = adminMenu()
		return m.goTo(screenAdminMenu)
	default:
		m.menu = studentMenu()
		return m.goTo(screenStudentMenu)
	}
}

// refreshTables rebuilds any table currently derived from service state.
func (m Model) refreshTables() Model {
	switch m.screen {
	case screenCatalog:
		m.courses = m.courses.reload(m)
	case screenUsers:
		m.users = m.users.reload(m)
	case screenEnrollments:
		m.rolls = m.rolls.reload(m)
	case screenMyCourses:
		m.myCourses = m.myCourses.reload(m)
	}
	return m
}
