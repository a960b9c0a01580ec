package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/fang"
	"github.com/menuboard/menuboard/internal/config"
	"github.com/menuboard/menuboard/internal/log"
	"github.com/menuboard/menuboard/internal/menu"
	"github.com/menuboard/menuboard/internal/tui"
	"github.com/menuboard/menuboard/internal/update"
	"github.com/menuboard/menuboard/internal/version"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	rootCmd.Flags().StringP("menu", "m", "", "Menu file to browse (JSON or YAML)")
	rootCmd.Flags().Int("item-height", 1, "Lines per row")
	rootCmd.Flags().Int("overscan", 3, "Rows rendered past each edge of the viewport")
	rootCmd.Flags().BoolP("watch", "w", false, "Reload the menu when the file changes")
	rootCmd.Flags().Int("sample", 40, "Dishes per category of the sample menu shown without a file")
}

var rootCmd = &cobra.Command{
	Use:   "menuboard",
	Short: "Browse restaurant menus of any size in the terminal",
	Long: heredoc.Doc(`
		Menuboard renders menus as a windowed list: only the rows on screen
		are ever rendered, so a menu with a million dishes scrolls as fast as
		one with ten.
	`),
	Example: heredoc.Doc(`
		# Browse a generated sample menu
		menuboard

		# Browse a menu file and reload it on every save
		menuboard --menu dinner.yaml --watch

		# Two-line rows with a larger overscan
		menuboard -m dinner.yaml --item-height 2 --overscan 8
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupApp(cmd)
		if err != nil {
			return err
		}
		if err := applyListFlags(cmd, cfg); err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("menu")
		if path == "" {
			path = cfg.Menu.Path
		}
		m, err := openMenu(cmd, path)
		if err != nil {
			return err
		}

		model, err := tui.New(m, tui.Options{
			Source:     path,
			ItemHeight: cfg.List.ItemHeight,
			Overscan:   cfg.List.Overscan,
			Scrollbar:  cfg.ScrollbarEnabled(),
			Wrap:       cfg.List.Wrap,
		})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		program := tea.NewProgram(model, tea.WithContext(ctx))

		watch, _ := cmd.Flags().GetBool("watch")
		if (watch || cfg.Menu.Watch) && path != "" {
			if err := menu.Watch(ctx, path, func() {
				m, err := menu.Load(path)
				program.Send(tui.MenuReloadedMsg{Menu: m, Err: err})
			}); err != nil {
				return fmt.Errorf("failed to watch menu: %w", err)
			}
		}

		go checkForUpdateAsync(ctx, cfg)

		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
	); err != nil {
		os.Exit(1)
	}
}

// setupApp loads the configuration and starts logging.
func setupApp(cmd *cobra.Command) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	cwd, err := resolveCwd(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cwd, debug)
	if err != nil {
		return nil, err
	}

	log.Setup(cfg.LogFile(), cfg.Options.Debug)
	slog.Debug("Config loaded", "cwd", cwd, "item_height", cfg.List.ItemHeight, "overscan", cfg.List.Overscan)
	return cfg, nil
}

func resolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		if err := os.Chdir(cwd); err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}

// applyListFlags lets explicit flags win over the configuration.
func applyListFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("item-height") {
		cfg.List.ItemHeight, _ = cmd.Flags().GetInt("item-height")
	}
	if cmd.Flags().Changed("overscan") {
		cfg.List.Overscan, _ = cmd.Flags().GetInt("overscan")
	}
	return cfg.Validate()
}

func openMenu(cmd *cobra.Command, path string) (*menu.Menu, error) {
	if path == "" {
		dishes, _ := cmd.Flags().GetInt("sample")
		return menu.Sample(10, dishes), nil
	}
	m, err := menu.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu: %w", err)
	}
	return m, nil
}

func checkForUpdateAsync(ctx context.Context, cfg *config.Config) {
	defer log.RecoverPanic("update-check", nil)
	for info := range update.CheckForUpdateAsync(ctx, cfg.DataDirectory()) {
		slog.Info("Update available", "current", info.CurrentVersion, "latest", info.LatestVersion, "url", info.ReleaseURL)
	}
}
