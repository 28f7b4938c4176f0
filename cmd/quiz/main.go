package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizmentor/internal/config"
	"github.com/aliskhannn/quizmentor/internal/delivery/tui"
	"github.com/aliskhannn/quizmentor/internal/engine"
	"github.com/aliskhannn/quizmentor/internal/logger"
	"github.com/aliskhannn/quizmentor/internal/repository"
)

func main() {
	category := flag.String("category", "", "category to play")
	questionsPath := flag.String("questions", "", "path to a YAML or JSON question bank (overrides config)")
	list := flag.Bool("list", false, "list categories and exit")
	noColor := flag.Bool("no-color", false, "disable colors")
	logPath := flag.String("log", "", "write logs to this file")
	timer := flag.Int("timer", -1, "seconds per question, 0 disables the timer (overrides config)")
	flag.Parse()

	cfg, err := config.LoadEngine()
	if err != nil {
		log.Fatal(err)
	}
	if *questionsPath != "" {
		cfg.QuestionsPath = *questionsPath
	}
	if *timer >= 0 {
		cfg.Engine.TimerSeconds = *timer
	}

	lg, err := logger.NewFile(cfg, *logPath)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	repo, err := repository.NewQuestionRepository(cfg.QuestionsPath)
	if err != nil {
		log.Fatalf("load questions: %v", err)
	}

	if *list {
		fmt.Println(strings.Join(repo.Categories(), "\n"))
		return
	}

	name := *category
	if name == "" {
		if cats := repo.Categories(); len(cats) > 0 {
			name = cats[0]
		}
	}
	questions, err := repo.GetByCategory(name)
	if err != nil {
		log.Fatalf("%v (available: %s)", err, strings.Join(repo.Categories(), ", "))
	}
	if display, ok := repo.DisplayName(name); ok {
		name = display
	}

	opts := cfg.Engine.SessionOptions()
	// The UI drives the timer itself.
	opts.TickInterval = 0

	factory := func(observer engine.Observer) *engine.Engine {
		return engine.New(opts, name, questions, observer, lg)
	}

	model := tui.NewModel(factory, tui.Options{
		NoColor:      *noColor,
		TickInterval: cfg.Engine.TickInterval,
		AdvanceDelay: cfg.Engine.AdvanceDelay,
	})

	lg.Info("starting terminal quiz", zap.String("category", name), zap.Int("questions", len(questions)))

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
