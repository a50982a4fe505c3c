package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tasktube/internal/models"
	"github.com/desertthunder/tasktube/internal/shared"
	"github.com/desertthunder/tasktube/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	TaskListView
	VideoListView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.VideoEngine
	width        int
	height       int
	taskList     list.Model
	videoList    list.Model
	result       *models.AggregatedResult
	selectedTask *models.TaskItem
	criterion    tasks.SortCriterion
	progressChan chan tasks.ProgressUpdate
	done         chan aggregateDoneMsg
	progress     tasks.ProgressUpdate
	err          error
	help         help.Model
	keys         keyMap
}

type aggregateDoneMsg struct {
	result *models.AggregatedResult
	err    error
}

type progressUpdateMsg tasks.ProgressUpdate

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.VideoEngine) *Model {
	return &Model{
		ctx:       ctx,
		view:      LoadingView,
		engine:    engine,
		criterion: tasks.SortAlphabetical,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init starts the aggregation pipeline.
func (m *Model) Init() tea.Cmd {
	return m.startAggregation()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.taskList.Width() == 0 {
			m.taskList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.videoList.Width() == 0 {
			m.videoList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoadingView:
			return m.handleLoadingKeys(msg)
		case TaskListView:
			return m.handleTaskListKeys(msg)
		case VideoListView:
			return m.handleVideoListKeys(msg)
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case aggregateDoneMsg:
		m.progressChan = nil
		if msg.err != nil && msg.result == nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.err = msg.err
		m.result = msg.result
		tasks.Sort(m.result, m.criterion)
		m.rebuildTaskList()
		m.view = TaskListView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.result == nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LoadingView:
		return m.renderLoading()
	case TaskListView:
		return m.renderTaskList()
	case VideoListView:
		return m.renderVideoList()
	default:
		return ""
	}
}

// Err exposes the terminal error, if any, once the program has quit.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) handleLoadingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleTaskListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s":
		m.cycleSort()
		return m, nil
	case "r":
		m.view = LoadingView
		m.err = nil
		return m, m.startAggregation()
	case "o":
		if item, ok := m.taskList.SelectedItem().(taskItem); ok && item.task.WebViewLink != "" {
			shared.OpenBrowser(item.task.WebViewLink)
		}
		return m, nil
	case "enter":
		if item, ok := m.taskList.SelectedItem().(taskItem); ok {
			task := item.task
			m.selectedTask = &task
			m.rebuildVideoList()
			m.view = VideoListView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	return m, cmd
}

func (m *Model) handleVideoListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = TaskListView
		return m, nil
	case "o", "enter":
		if item, ok := m.videoList.SelectedItem().(videoItem); ok {
			shared.OpenBrowser("https://www.youtube.com/watch?v=" + item.video.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.videoList, cmd = m.videoList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case TaskListView:
		m.taskList, cmd = m.taskList.Update(msg)
	case VideoListView:
		m.videoList, cmd = m.videoList.Update(msg)
	}
	return m, cmd
}

// cycleSort advances to the next criterion and reorders the task list.
// Selecting shuffle again draws a fresh permutation.
func (m *Model) cycleSort() {
	criteria := tasks.SortCriteria()
	for i, c := range criteria {
		if c == m.criterion {
			m.criterion = criteria[(i+1)%len(criteria)]
			break
		}
	}
	tasks.Sort(m.result, m.criterion)
	m.rebuildTaskList()
}

func (m *Model) rebuildTaskList() {
	items := make([]list.Item, len(m.result.Tasks))
	for i, task := range m.result.Tasks {
		items[i] = newTaskItem(m.result, task)
	}
	m.taskList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.taskList.Title = fmt.Sprintf(
		"Videos to Watch • %d videos • %s • sorted by %s",
		m.result.Stats.DistinctVideos,
		shared.FormatDurationCompact(m.result.Stats.TotalDurationSeconds),
		m.criterion,
	)
	m.taskList.SetSize(m.width-4, m.height-8)
}

func (m *Model) rebuildVideoList() {
	videos := m.result.ResolvedVideos(*m.selectedTask)
	items := make([]list.Item, len(videos))
	for i, v := range videos {
		items[i] = videoItem{video: v}
	}
	m.videoList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.videoList.Title = fmt.Sprintf("Videos in '%s'", m.selectedTask.Title)
	m.videoList.SetSize(m.width-4, m.height-8)
}

func (m *Model) startAggregation() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	done := make(chan aggregateDoneMsg, 1)
	prog := m.progressChan

	go func() {
		result, err := m.engine.Aggregate(m.ctx, prog)
		done <- aggregateDoneMsg{result: result, err: err}
		close(prog)
	}()

	m.done = done
	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return nil
		}
		update, ok := <-m.progressChan
		if !ok {
			return <-m.done
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderLoading() string {
	title := styles.title.Render("Aggregating Tasks")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchLists:
		phase = "Fetching task lists..."
	case tasks.FetchTasks:
		phase = fmt.Sprintf("Fetching tasks (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.ResolveVideos:
		phase = fmt.Sprintf("Resolving videos (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Starting..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderTaskList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.sort, m.keys.open, m.keys.reload, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	var warn string
	if m.err != nil {
		warn = styles.warn.Render(fmt.Sprintf("\nsome videos could not be resolved: %v", m.err))
	}
	return fmt.Sprintf("%s%s\n\n%s", m.taskList.View(), warn, helpView)
}

func (m *Model) renderVideoList() string {
	helpKeys := []key.Binding{m.keys.open, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.videoList.View(), helpView)
}
