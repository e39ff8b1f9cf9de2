package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/rfpboard/internal/clients"
	"github.com/jask/rfpboard/internal/config"
)

func initCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.Path()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}

			cfg := config.Default()
			var err error
			if opts.configPath != "" {
				err = config.SaveFile(cfg, path)
			} else {
				err = config.Save(cfg)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func clientsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clients",
		Short: "List the client registry the wizard suggests from",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*opts)
			if err != nil {
				return err
			}
			registry, err := clients.LoadFile(cfg.Clients.Path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), clientTable(registry.All()))
			return nil
		},
	}
}

func clientTable(list []clients.Client) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "CONTACT", "EMAIL", "PHONE", "STATUS")
	for _, c := range list {
		t.Row(c.ID, c.Name, c.ContactPerson, c.Email, c.Phone, string(c.Status))
	}
	return t.String()
}
