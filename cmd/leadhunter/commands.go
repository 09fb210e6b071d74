package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/diewo77/lead-hunter/gate"
	"github.com/diewo77/lead-hunter/internal/db"
	"github.com/diewo77/lead-hunter/internal/models"
	"github.com/diewo77/lead-hunter/internal/report"
	"github.com/diewo77/lead-hunter/internal/store"
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "leadhunter",
		Short:         "Lead assignment and permission tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}
	root.PersistentFlags().StringVar(&a.as, "as", "", "Email of the acting user")

	root.AddCommand(
		newMigrateCmd(a),
		newSeedCmd(a),
		newAssignCmd(a),
		newUnassignCmd(a),
		newAssignManyCmd(a),
		newLeadsCmd(a),
		newHistoryCmd(a),
		newWorkloadCmd(a),
		newDriftCmd(a),
		newExportCmd(a),
	)
	return root
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.Migrate(a.db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations completed successfully")
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create default access groups and pipeline stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.Seed(a.db); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Seeding completed successfully")
			return nil
		},
	}
}

func newAssignCmd(a *app) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "assign <lead-id> <user-email>",
		Short: "Make a user responsible for a lead",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			target, err := a.targetID(cmd, args[1])
			if err != nil {
				return err
			}
			var newStatus *models.LeadStatus
			if status != "" {
				s := models.LeadStatus(status)
				newStatus = &s
			}
			lead, err := a.assign.Assign(ctx, actor, args[0], &target, newStatus)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s assigned to %s (status %s)\n", lead.Name, args[1], lead.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Also move the lead to this status")
	return cmd
}

func newUnassignCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <lead-id>",
		Short: "Clear the responsible of a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			lead, err := a.assign.Unassign(ctx, actor, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s unassigned\n", lead.Name)
			return nil
		},
	}
}

func newAssignManyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assign-many <user-email> <lead-id>...",
		Short: "Assign several leads to one user",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			target, err := a.targetID(cmd, args[0])
			if err != nil {
				return err
			}
			res := a.assign.AssignMany(ctx, actor, args[1:], &target)

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "LEAD\tRESULT\tDETAIL")
			for _, l := range res.Succeeded {
				fmt.Fprintf(w, "%s\tok\t%s\n", l.ID, l.Name)
			}
			for _, f := range res.Failed {
				fmt.Fprintf(w, "%s\t%s\t%v\n", f.ID, f.Kind, f.Err)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if len(res.Failed) > 0 {
				return fmt.Errorf("%d of %d leads not assigned", len(res.Failed), len(args)-1)
			}
			return nil
		},
	}
}

func newLeadsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "leads",
		Short: "List the leads the acting user may see",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			leads, err := a.leads.ListVisible(ctx, actor)
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tRESPONSIBLE")
			for _, l := range leads {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.ID, l.Name, l.Status, orDash(l.GetResponsibleID()))
			}
			return w.Flush()
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <lead-id>",
		Short: "Show the assignment log of a lead, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			rows, err := a.leads.History(ctx, actor, args[0])
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "WHEN\tNEW RESPONSIBLE\tBY")
			for _, h := range rows {
				newUser := "(unassigned)"
				if h.NewUserID != nil {
					newUser = *h.NewUserID
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", h.CreatedAt.Format("2006-01-02 15:04:05"), newUser, h.AssignedByID)
			}
			return w.Flush()
		},
	}
}

func newWorkloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "workload",
		Short: "Count visible leads per responsible",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			rows, err := a.leads.Workload(ctx, actor)
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "RESPONSIBLE\tEMAIL\tLEADS")
			for _, r := range rows {
				name := r.Name
				if r.ResponsibleID == store.UnassignedBucket {
					name = "(unassigned)"
				} else if name == "" {
					name = r.ResponsibleID
				}
				fmt.Fprintf(w, "%s\t%s\t%d\n", name, orDash(r.Email), r.Leads)
			}
			return w.Flush()
		},
	}
}

func newDriftCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drift",
		Short: "Report leads whose owner disagrees with their history, and groups without permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			// The report lists every lead.
			if err := gate.Authorize(actor, gate.ViewAllLeads); err != nil {
				return fmt.Errorf("drift: %w", err)
			}
			drift, err := a.audit.FindOwnershipDrift(ctx)
			if err != nil {
				return err
			}
			groups, err := a.audit.GroupsWithoutPermissions(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := newTable(out)
			fmt.Fprintln(w, "LEAD\tNAME\tRESPONSIBLE\tLATEST HISTORY")
			for _, d := range drift {
				latest := "(no history)"
				if d.HasHistory {
					latest = orDash(deref(d.HistoryUserID))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.LeadID, d.LeadName, orDash(deref(d.ResponsibleID)), latest)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			for _, g := range groups {
				fmt.Fprintf(out, "access group %q has no permission row\n", g.Name)
			}
			fmt.Fprintf(out, "%d drifted leads, %d broken groups\n", len(drift), len(groups))
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write visible leads and workload to an Excel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			leads, err := a.leads.ListVisible(ctx, actor)
			if err != nil {
				return err
			}
			workload, err := a.leads.Workload(ctx, actor)
			if err != nil && !errors.Is(err, gate.ErrForbidden) {
				return err
			}

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := report.WriteWorkbook(f, leads, workload); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d leads written to %s\n", len(leads), args[0])
			return nil
		},
	}
}

// targetID resolves the email of the new responsible to a user id.
func (a *app) targetID(cmd *cobra.Command, email string) (string, error) {
	id, err := store.NewUserStore(a.db).IDByEmail(cmd.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("target user %s: %w", email, store.ErrInvalidReference)
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
