package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/cli/account"
	"github.com/julianstephens/gradeboard/internal/cli/attendance"
	"github.com/julianstephens/gradeboard/internal/cli/courses"
	"github.com/julianstephens/gradeboard/internal/cli/progress"
	"github.com/julianstephens/gradeboard/internal/cli/schedule"
	"github.com/julianstephens/gradeboard/internal/cli/settings"
	"github.com/julianstephens/gradeboard/internal/cli/snapshots"
	"github.com/julianstephens/gradeboard/internal/cli/system"
	"github.com/julianstephens/gradeboard/internal/constants"
	apperrors "github.com/julianstephens/gradeboard/internal/errors"
	"github.com/julianstephens/gradeboard/internal/logger"
	"github.com/julianstephens/gradeboard/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use the OS keyring or .pgpass instead." type:"string" default:"~/.config/gradeboard/gradeboard.db" env:"GRADEBOARD_CONFIG"`
	BaseURL string `help:"Override the schedule service URL." env:"GRADEBOARD_BASE_URL"`
	Student string `help:"Override the signed in student ID." env:"GRADEBOARD_STUDENT_ID"`
	Debug   bool   `help:"Write debug logs to stderr as well as the log file."`

	Init   system.InitCmd    `cmd:"" help:"Initialize gradeboard storage."`
	Doctor system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Login  account.LoginCmd  `cmd:"" help:"Save a student session."`
	Logout account.LogoutCmd `cmd:"" help:"Forget the saved student session."`

	Today    schedule.TodayCmd    `cmd:"" help:"Show today's classes."`
	Week     schedule.WeekCmd     `cmd:"" help:"Show this week's timetable."`
	Courses  courses.CoursesCmd   `cmd:"" help:"List, search and export courses."`
	Progress progress.ProgressCmd `cmd:"" help:"Show GPA and credit progress."`
	Plan     progress.PlanCmd     `cmd:"" help:"Plan towards a target GPA or project expected grades."`

	Checkin attendance.CheckinCmd `cmd:"" help:"Check in to a class with a session code."`
	Watch   attendance.WatchCmd   `cmd:"" help:"Monitor an attendance session."`

	Settings settings.SettingsCmd  `cmd:"" help:"Manage application settings."`
	Snapshot snapshots.SnapshotCmd `cmd:"" help:"Manage saved offline snapshots."`
	Keyring  system.KeyringCmd     `cmd:"" help:"Manage the database connection string in the OS keyring."`
}

// commands that manage storage themselves or never touch it.
var skipLoad = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to read .env: %v\n", err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Student schedule, grades and attendance dashboard"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	command := ctx.Command()
	isTUI := command == "tui"
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(CLI.Config),
		Quiet:     isTUI,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	root := strings.Fields(command)
	if len(root) > 0 && !skipLoad[root[0]] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Store:     store,
		BaseURL:   CLI.BaseURL,
		StudentID: CLI.Student,
		Out:       os.Stdout,
	}
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// configDir is where logs live: next to the SQLite file, or the default
// config directory for PostgreSQL.
func configDir(config string) string {
	if storage.IsPostgres(config) {
		config = constants.DefaultConfigPath
	}
	path, err := storage.ExpandPath(config)
	if err != nil {
		return "."
	}
	return filepath.Dir(path)
}
