package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gooze.dev/pkg/mutfix/internal/domain"
	m "gooze.dev/pkg/mutfix/internal/model"
)

var auditSourceFlag string
var auditOutputFlag string
var auditFormatFlag string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [projects...]",
		Short: "List the target mutants of each project",
		Long: `List the killed mutants selected for repair with their mutator, line and
pipeline progress.

` + projectArgsHelp,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			return getWorkflow(cmd, cfg).List(commandContext(cmd), domain.ListArgs{
				Projects:  parseProjects(args),
				Workspace: m.Path(cfg.Workspace),
			})
		},
	}
}

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [projects...]",
		Short: "View the patch pool of each project",
		Long:  "View the compiled candidates collected in the patch pool of each project workspace.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			return getWorkflow(cmd, cfg).View(commandContext(cmd), domain.ViewArgs{
				Projects:  parseProjects(args),
				Workspace: m.Path(cfg.Workspace),
			})
		},
	}
}

// auditCmd represents the audit command.
var auditCmd = newAuditCmd()

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [projects...]",
		Short: "Check which mutants have their original line among the candidates",
		Long: `Compare the pooled (or recovered) candidates of every target mutant against
the original source line and report fix rates per project and mutator.

` + projectArgsHelp,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := parseAuditSource(auditSourceFlag)
			if err != nil {
				return err
			}

			format := strings.ToLower(strings.TrimSpace(auditFormatFlag))
			if format != domain.FormatJSON && format != domain.FormatYAML {
				return fmt.Errorf("unknown report format %q", auditFormatFlag)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			return getWorkflow(cmd, cfg).Audit(commandContext(cmd), domain.AuditArgs{
				Projects:  parseProjects(args),
				Workspace: m.Path(cfg.Workspace),
				Source:    source,
				Output:    m.Path(auditOutputFlag),
				Format:    format,
			})
		},
	}

	cmd.Flags().StringVar(&auditSourceFlag, "source", string(domain.AuditSourcePool), "candidates to audit: pool or recovered")
	cmd.Flags().StringVarP(&auditOutputFlag, "output", "o", "", "also write the report to this file")
	cmd.Flags().StringVar(&auditFormatFlag, "format", domain.FormatJSON, "report file format: json or yaml")

	return cmd
}

func parseAuditSource(value string) (domain.AuditSource, error) {
	switch source := domain.AuditSource(strings.ToLower(strings.TrimSpace(value))); source {
	case domain.AuditSourcePool, domain.AuditSourceRecovered:
		return source, nil
	default:
		return "", fmt.Errorf("unknown audit source %q", value)
	}
}

func init() {
	rootCmd.AddCommand(listCmd, viewCmd, auditCmd)
}
