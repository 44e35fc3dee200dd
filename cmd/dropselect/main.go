package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dropselect/internal/config"
	"dropselect/internal/domain"
	"dropselect/internal/eventbus"
	"dropselect/internal/ui"
)

type options struct {
	configPath string
	logPath    string
	noSave     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "dropselect",
		Short: "Pick values from configurable dropdowns in the terminal",
		Long: `dropselect - Terminal dropdowns with single and multiple selection.

Dropdowns, options and saved selections come from a TOML config file.
The final selection of every dropdown is printed on exit.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	cmd.Flags().StringVar(&opts.logPath, "log", "dropselect.log", "log file")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not write selections back to the config file")

	return cmd
}

func run(opts *options) error {
	// Set up logging
	logFile, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(opts.configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		bus.Close()
		return fmt.Errorf("failed to load config: %w", err)
	}

	uiModel, err := ui.NewModel(bus, cfg)
	if err != nil {
		bus.Close()
		return err
	}
	defer uiModel.Close()

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseAllMotion())
	uiModel.SetProgram(p)

	// Keep the config in step with the selections and save it when asked to
	var mu sync.Mutex
	save := func() {
		if err := configSvc.Save(cfg); err != nil {
			log.Printf("Failed to save config: %v", err)
			bus.Publish(eventbus.ErrorEvent{Message: "config not saved", Err: err})
		}
	}
	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.SelectionChangedEvent)
		if !ok {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if !cfg.SetSelected(event.Dropdown, event.Values) {
			log.Printf("Selection for unknown dropdown %q", event.Dropdown)
			return
		}
		if cfg.UISettings.Autosave && !opts.noSave {
			save()
		}
	})

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventConfigSaved, forward)
	bus.Subscribe(eventbus.EventError, forward)

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Handle termination signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			p.Quit()
		}
	}()

	_, runErr := p.Run()

	// Drain pending handlers before the final save
	bus.Close()
	close(eventChan)

	if runErr != nil {
		return fmt.Errorf("error running program: %w", runErr)
	}

	// The screen is authoritative; selection events may have been dropped
	mu.Lock()
	changed := syncSelections(cfg, uiModel.Selections())
	if !opts.noSave && (!cfg.UISettings.Autosave || changed) {
		save()
	}
	mu.Unlock()

	printSelections(uiModel.Selections())
	return nil
}

// syncSelections copies the given selections into cfg and reports whether
// any saved selection changed
func syncSelections(cfg *config.Config, selections []ui.Selection) bool {
	changed := false
	for _, s := range selections {
		for i := range cfg.Dropdowns {
			dd := &cfg.Dropdowns[i]
			if dd.Name != s.Name {
				continue
			}
			old := dd.Selected
			cfg.SetSelected(s.Name, domain.Values(s.Options))
			if len(old)+len(dd.Selected) > 0 && !reflect.DeepEqual(old, dd.Selected) {
				changed = true
			}
			break
		}
	}
	return changed
}

func printSelections(selections []ui.Selection) {
	for _, s := range selections {
		fmt.Printf("%s: %s\n", s.Name, strings.Join(domain.Labels(s.Options), ", "))
	}
}
