package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/avakhov/relcat/internal/config"
)

// --- list ---

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known and locally added versions",
	Long: `List known and locally added versions.

Examples:
  relcat list
  relcat list --refresh
  relcat list --channel beta`,
	RunE: func(cmd *cobra.Command, args []string) error {
		refresh, _ := cmd.Flags().GetBool("refresh")
		channel, _ := cmd.Flags().GetString("channel")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := "/versions"
		if refresh {
			path += "?refresh=true"
		}
		resp, err := client.get(context.Background(), path)
		if err != nil {
			return err
		}

		var versions []struct {
			Version   string `json:"version"`
			Name      string `json:"name,omitempty"`
			LocalPath string `json:"localPath,omitempty"`
			Source    string `json:"source"`
			State     string `json:"state"`
			Channel   string `json:"channel"`
		}
		if err := decodeJSON(resp, &versions); err != nil {
			return err
		}

		if len(versions) == 0 {
			fmt.Println("No versions in the catalog. Try `relcat refresh`.")
			return nil
		}

		for _, v := range versions {
			if channel != "" && v.Channel != channel {
				continue
			}
			label := colorize(channelColor(v.Channel), v.Version)
			extra := ""
			if v.Source == "local" {
				extra = fmt.Sprintf("  %s", colorize(colorBold, v.LocalPath))
			}
			fmt.Printf("%s  %-11s %-7s%s\n", label, v.Channel, v.Source, extra)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("refresh", false, "fetch the latest list from the registry first")
	listCmd.Flags().String("channel", "", "filter by channel: stable, beta, nightly, unsupported")
}

// --- default ---

var defaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Show the version a picker would pre-select",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(context.Background(), "/versions/default")
		if err != nil {
			return err
		}

		var result struct {
			Version string `json:"version"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		fmt.Println(result.Version)
		return nil
	},
}

// --- use ---

var useCmd = &cobra.Command{
	Use:   "use <version>",
	Short: "Remember a version as the preferred selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version := args[0]

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.put(context.Background(), "/versions/selected", map[string]string{"version": version})
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Selected %s", version)
		return nil
	},
}

// --- add ---

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Register a locally available build",
	Long: `Register a locally available build in the catalog.

Examples:
  relcat add ~/builds/electron-35.0.0 --version 35.0.0
  relcat add ./out/Release --version 36.0.0-beta.2 --name "my fork"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		version, _ := cmd.Flags().GetString("version")
		name, _ := cmd.Flags().GetString("name")

		if version == "" {
			return fmt.Errorf("--version is required")
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		req := map[string]string{
			"version":   version,
			"localPath": abs,
		}
		if name != "" {
			req["name"] = name
		}

		resp, err := client.post(context.Background(), "/versions/local", req)
		if err != nil {
			return err
		}

		var locals []struct {
			Version string `json:"version"`
		}
		if err := decodeJSON(resp, &locals); err != nil {
			return err
		}

		printSuccess("Added %s (%d local versions)", version, len(locals))
		return nil
	},
}

func init() {
	addCmd.Flags().String("version", "", "version tag of the local build")
	addCmd.Flags().String("name", "", "human-readable label")
}

// --- refresh ---

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch the latest version list from the registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(context.Background(), "/refresh", nil)
		if err != nil {
			return err
		}

		var result struct {
			Count int `json:"count"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Catalog refreshed: %d versions known", result.Count)
		return nil
	},
}

// --- history ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent registry refreshes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := fmt.Sprintf("/refreshes?limit=%d", limit)
		resp, err := client.get(context.Background(), path)
		if err != nil {
			return err
		}

		var entries []struct {
			ID        string `json:"id"`
			CreatedAt string `json:"created_at"`
			Status    string `json:"status"`
			Count     int    `json:"count"`
			Error     string `json:"error,omitempty"`
		}
		if err := decodeJSON(resp, &entries); err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No refreshes recorded.")
			return nil
		}

		for _, e := range entries {
			status := e.Status
			switch status {
			case "ok":
				status = colorize(colorGreen, status)
			case "failed":
				status = colorize(colorRed, status)
			default:
				status = colorize(colorYellow, status)
			}
			line := fmt.Sprintf("%s  %s  %s  %d versions",
				colorize(colorCyan, shortID(e.ID)),
				e.CreatedAt,
				status,
				e.Count,
			)
			if e.Error != "" {
				line += "  " + e.Error
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of refreshes to list")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
