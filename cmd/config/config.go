package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattsolo1/grove-core/pkg/workspace"
	"github.com/mattsolo1/grove-core/util/pathutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-explorer/pkg/vfs"
)

var (
	cfgFile           string
	WorkspaceOverride string
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "xp")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("XP")

	// Set defaults
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "xp"))
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	viper.SetDefault("show_hidden", false)
	viper.SetDefault("ignore", []string{"node_modules", ".git"})

	if err := viper.ReadInConfig(); err == nil {
		// Do not print this in normal operation, it's noisy.
		// fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// InitStore resolves the workspace root and builds the file store over it.
// The base config comes from viper; a .xp.yml at the root overlays it.
func InitStore() (*vfs.Store, error) {
	root, err := ResolveRoot(WorkspaceOverride)
	if err != nil {
		return nil, err
	}

	base := vfs.Config{
		ShowHidden: viper.GetBool("show_hidden"),
		Ignore:     viper.GetStringSlice("ignore"),
	}
	cfg := vfs.LoadConfig(root, base)

	store, err := vfs.New(root, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace %s: %w", root, err)
	}
	return store, nil
}

// ResolveRoot picks the directory to explore: the explicit override, the
// deepest grove workspace containing the working directory, or the working
// directory itself.
func ResolveRoot(override string) (string, error) {
	if override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("workspace %s: %w", override, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("workspace %s is not a directory", override)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	// Discover all workspaces once and pick the one enclosing the cwd.
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel) // Keep it quiet unless there are issues.
	discoveryService := workspace.NewDiscoveryService(logger)
	result, err := discoveryService.DiscoverAll()
	if err != nil {
		// Discovery failing is not fatal; the cwd still works as a root.
		return cwd, nil
	}
	provider := workspace.NewProvider(result)

	normCwd, _ := pathutil.NormalizeForLookup(cwd)
	var best string
	for _, ws := range provider.All() {
		normWs, _ := pathutil.NormalizeForLookup(ws.Path)
		if normCwd != normWs && !strings.HasPrefix(normCwd, normWs+string(filepath.Separator)) {
			continue
		}
		if len(ws.Path) > len(best) {
			best = ws.Path
		}
	}
	if best != "" {
		return best, nil
	}
	return cwd, nil
}

// IndexPath returns the content-index database location for a workspace root.
// Each root gets its own database under the data directory.
func IndexPath(root string) (string, error) {
	dataDir := viper.GetString("data_dir")
	indexDir := filepath.Join(dataDir, "index")
	if err := os.MkdirAll(indexDir, 0755); err != nil {
		return "", err
	}
	name := strings.ReplaceAll(strings.TrimPrefix(root, string(filepath.Separator)), string(filepath.Separator), "-")
	return filepath.Join(indexDir, name+".db"), nil
}

// Editor returns the configured editor command.
func Editor() string {
	return viper.GetString("editor")
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/xp/config.yaml)")
	cmd.PersistentFlags().StringVarP(&WorkspaceOverride, "workspace", "W", "", "Override the workspace root by path")
}
