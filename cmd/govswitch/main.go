// Package main is the CLI entry point for govswitch.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/eliteGoblin/govswitch/internal/config"
	"github.com/eliteGoblin/govswitch/internal/domain"
	"github.com/eliteGoblin/govswitch/internal/governor"
	"github.com/eliteGoblin/govswitch/internal/infra"
	"github.com/eliteGoblin/govswitch/internal/logging"
	"github.com/eliteGoblin/govswitch/internal/session"
	"github.com/eliteGoblin/govswitch/internal/ui"
)

var (
	// Version info (set via ldflags)
	Version   = "0.1.0"
	Commit    = "dev"
	BuildTime = "unknown"
)

// probeWait bounds how long a command waits for the startup probe,
// retries included.
const probeWait = 30 * time.Second

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "govswitch",
	Short: "Switch the auto-cpufreq CPU governor",
	Long: `govswitch shows and changes the CPU power governor managed by auto-cpufreq.

It reads the current mode with 'auto-cpufreq --stats' and switches between
balanced, powersave and performance through pkexec.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active governor and CPU details",
	Long: `Probes auto-cpufreq for the active governor and prints it together with
CPU model, kernel scaling governors, daemon state and tool availability.`,
	RunE: runStatus,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List selectable governors",
	RunE:  runList,
}

var setCmd = &cobra.Command{
	Use:   "set <governor>",
	Short: "Switch to a governor",
	Long: `Switches to balanced, powersave or performance. The switch runs once
through pkexec; a refused authorization is reported, never retried.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"balanced", "powersave", "performance"},
	RunE:      runSet,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive governor menu",
	RunE:  runMenu,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default settings",
	RunE:  runConfigInit,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints version, commit, and build time. Use --json for machine-readable output.`,
	Run:   runVersion,
}

var (
	configPath  string
	verbose     bool
	notify      bool
	forceConfig bool
	jsonOutput  bool

	settings *config.Config
	logger   = zap.NewNop()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is per execution mode)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&notify, "notify", false, "Desktop notifications for switch results")
	configInitCmd.Flags().BoolVar(&forceConfig, "force", false, "Overwrite an existing file")

	// Neither needs settings; config init must work even when the file is broken.
	configCmd.PersistentPreRunE = skipSettings
	versionCmd.PersistentPreRunE = skipSettings
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadSettings(cmd *cobra.Command, args []string) error {
	path, explicit := resolveConfigPath()
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("notify") {
		cfg.Notify = notify
	}
	settings = cfg
	logger = logging.ForCLI(cfg.Log, verbose)
	return nil
}

func skipSettings(cmd *cobra.Command, args []string) error {
	return nil
}

func resolveConfigPath() (string, bool) {
	if configPath != "" {
		return configPath, true
	}
	return infra.DetectExecMode().ConfigPath, false
}

func sessionConfig() session.Config {
	return session.Config{
		Controller: settings.ControllerConfig(),
		Notify:     settings.Notify,
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runStatus(cmd *cobra.Command, args []string) error {
	defer func() { _ = logger.Sync() }()
	ctx, stop := signalContext()
	defer stop()

	sess := session.New(sessionConfig(), logger)
	if err := sess.Start(ctx, ui.NewConsolePresenter(os.Stdout, false)); err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	probeCtx, cancel := context.WithTimeout(ctx, probeWait)
	defer cancel()
	res, err := sess.AwaitProbe(probeCtx)
	if err != nil {
		return fmt.Errorf("probe did not finish: %w", err)
	}

	fmt.Println("\n=== govswitch Status ===")
	printGovernor(res)

	execMode := infra.DetectExecMode()
	fmt.Printf("\nExecution mode: %s\n", execMode.Mode)
	if settings.Source != "" {
		fmt.Printf("Config: %s\n", settings.Source)
	} else {
		fmt.Println("Config: built-in defaults")
	}

	fs := infra.NewFileSystemManager()
	snap, err := infra.NewCPUInspector(fs, logger).Snapshot(ctx)
	if err != nil {
		fmt.Printf("CPU: unavailable (%v)\n", err)
	} else {
		printCPU(snap)
	}

	pm := infra.NewProcessManager()
	pids, err := infra.RunningPIDs(pm, infra.AutoCpufreqProcessName)
	switch {
	case err != nil:
		fmt.Printf("auto-cpufreq daemon: unknown (%v)\n", err)
	case len(pids) > 0:
		fmt.Printf("auto-cpufreq daemon: running (%d process(es))\n", len(pids))
	default:
		fmt.Println("auto-cpufreq daemon: not running")
	}

	fmt.Println("\nTools:")
	checks := infra.LookupTools(infra.RequiredTools...)
	for _, c := range checks {
		if c.Available {
			fmt.Printf("  ✓ %-13s %s\n", c.Name, c.Path)
		} else {
			fmt.Printf("  ✗ %-13s not found\n", c.Name)
		}
	}
	if missing := infra.MissingTools(checks); len(missing) > 0 {
		fmt.Printf("\nInstall %s for switching to work.\n", strings.Join(missing, ", "))
	}

	fmt.Println("========================")
	return nil
}

func printGovernor(res session.ProbeResult) {
	store := governor.NewGovernorStore()
	name := res.Active.String()
	if desc, err := store.GetByID(res.Active); err == nil {
		name = desc.DisplayName
	}

	mode := "automatic"
	if res.Active != domain.GovernorBalanced {
		mode = "override engaged"
	}
	fmt.Printf("Active governor: %s (%s)\n", name, mode)
	if res.Phase == domain.ProbeFailed {
		fmt.Println("                 auto-cpufreq did not answer; showing the default")
	}
}

func printCPU(snap *domain.CPUSnapshot) {
	if snap.Model != "" {
		fmt.Printf("CPU: %s\n", snap.Model)
	}
	fmt.Printf("Cores: %d physical, %d logical\n", snap.PhysicalCores, snap.LogicalCores)
	if snap.Driver != "" {
		fmt.Printf("Scaling driver: %s\n", snap.Driver)
	}
	if len(snap.KernelGovernors) > 0 {
		names := make([]string, 0, len(snap.KernelGovernors))
		for g := range snap.KernelGovernors {
			names = append(names, g)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, g := range names {
			parts = append(parts, fmt.Sprintf("%s ×%d", g, snap.KernelGovernors[g]))
		}
		fmt.Printf("Kernel governors: %s\n", strings.Join(parts, ", "))
	}
	if snap.AverageMHz > 0 {
		fmt.Printf("Average frequency: %.0f MHz\n", snap.AverageMHz)
	}
}

func runList(cmd *cobra.Command, args []string) error {
	fmt.Println("\n=== Governors ===")
	for _, d := range governor.NewGovernorStore().GetAll() {
		fmt.Printf("\n[%s] %s\n", d.ID, d.DisplayName)
		fmt.Printf("  Icon: %s\n", d.IconID)
		fmt.Printf("  Command: %s\n", d.ActivationCommand)
	}
	fmt.Println("\n=================")
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	defer func() { _ = logger.Sync() }()

	id, err := governor.NewRegistry().ParseGovernorID(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	sess := session.New(sessionConfig(), logger)
	if err := sess.Start(ctx, ui.NewConsolePresenter(os.Stdout, false)); err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	probeCtx, cancel := context.WithTimeout(ctx, probeWait)
	defer cancel()
	if _, err := sess.AwaitProbe(probeCtx); err != nil {
		return fmt.Errorf("probe did not finish: %w", err)
	}

	err = sess.Switch(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrAlreadyActive):
		fmt.Printf("%s governor is already active.\n", displayName(id))
		return nil
	default:
		// The presenter already printed the failure.
		var switchErr *domain.SwitchError
		if errors.As(err, &switchErr) {
			cmd.SilenceErrors = true
		}
		return err
	}
}

func displayName(id domain.GovernorID) string {
	if desc, err := governor.NewGovernorStore().GetByID(id); err == nil {
		return desc.DisplayName
	}
	return id.String()
}

func runMenu(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("menu needs an interactive terminal; use 'govswitch set' instead")
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signalContext()
	defer stop()

	sess := session.New(sessionConfig(), logger)
	model := ui.NewMenuModel(sess.Governors(), sess)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if err := sess.Start(ctx, ui.NewProgramPresenter(p)); err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("menu failed: %w", err)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, _ := resolveConfigPath()
	fs := infra.NewFileSystemManager()
	logFile := infra.DetectExecMode().LogPath
	if err := config.WriteDefault(fs, path, logFile, forceConfig); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}
	fmt.Printf("Wrote %s\n", fs.ExpandHome(path))
	return nil
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		fmt.Printf(`{"version":"%s","commit":"%s","build_time":"%s"}`+"\n",
			Version, Commit, BuildTime)
	} else {
		fmt.Printf("govswitch %s (commit: %s, built: %s)\n",
			Version, Commit, BuildTime)
	}
}
