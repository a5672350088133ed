package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/postoffice/internal/config"
	"github.com/Iron-Ham/postoffice/internal/errors"
)

func newConfigCmd(v *viper.Viper) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View postoffice configuration",
		Long: `View postoffice configuration.

Without arguments, displays the current configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, v)
		},
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, v)
		},
	}

	var force bool
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		Long:  `Create a default config file at ~/.config/postoffice/config.yaml with all available options.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, force)
		},
	}
	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if used := v.ConfigFileUsed(); used != "" {
				fmt.Fprintln(cmd.OutOrStdout(), used)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.ConfigFile())
			return nil
		},
	}

	configCmd.AddCommand(configShowCmd, configInitCmd, configPathCmd)
	return configCmd
}

func runConfigShow(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return errors.NewConfigError("cannot decode configuration", err)
	}

	out := cmd.OutOrStdout()
	if used := v.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# config file: %s\n", used)
	} else {
		fmt.Fprintln(out, "# config file: (none - using defaults)")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode configuration")
	}
	_, err = out.Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	path := config.ConfigFile()
	if _, err := appFs.Stat(path); err == nil && !force {
		return errors.NewConfigError("config file already exists (use --force to overwrite)", nil).WithValue(path)
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return errors.Wrap(err, "encode configuration")
	}
	if err := appFs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewResourceError("cannot create config directory", err).WithResource(filepath.Dir(path))
	}
	if err := afero.WriteFile(appFs, path, data, 0644); err != nil {
		return errors.NewResourceError("cannot write config file", err).WithResource(path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
