package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tasktube/internal/auth"
	"github.com/desertthunder/tasktube/internal/services"
	"github.com/desertthunder/tasktube/internal/shared"
	"github.com/desertthunder/tasktube/internal/tasks"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	session *auth.Session
	store   *auth.Store
	tasks   services.TaskService
	videos  services.VideoService
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Tasks and Videos are normally left nil and built on demand from the
// stored credential; tests inject fakes through them.
type RunnerOpts struct {
	Config  *shared.Config
	Session *auth.Session
	Store   *auth.Store
	Tasks   services.TaskService
	Videos  services.VideoService
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		session: opts.Session,
		store:   opts.Store,
		tasks:   opts.Tasks,
		videos:  opts.Videos,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, videosCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger, used when the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// buildEngine loads the stored credential and constructs the aggregation
// engine over authenticated Google API clients. Injected test services take
// precedence.
func (r *Runner) buildEngine(ctx context.Context) (*tasks.VideoEngine, error) {
	if r.tasks != nil && r.videos != nil {
		return tasks.NewVideoEngine(r.tasks, r.videos, tasks.AggregatorOpts{}), nil
	}

	if r.store == nil || r.session == nil {
		return nil, fmt.Errorf("%w: run 'tasktube auth login' first", shared.ErrNotAuthenticated)
	}
	cred := r.store.Load(ctx)
	if !cred.Valid() {
		return nil, fmt.Errorf("%w: run 'tasktube auth login' first", shared.ErrNotAuthenticated)
	}

	client := r.session.Config().Client(ctx, cred.Token())
	tasksSvc, err := services.NewGoogleTasksService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks client: %w", err)
	}
	videoSvc, err := services.NewYouTubeDataService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube client: %w", err)
	}

	return tasks.NewVideoEngine(tasksSvc, videoSvc, tasks.AggregatorOpts{}), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
