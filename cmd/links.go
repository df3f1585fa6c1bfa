package cmd

import (
	"fmt"
	"slices"
	"strings"

	"lms/personid"

	"github.com/spf13/cobra"
)

func newLinkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "link <person> <alias> <person>",
		Short: "Relate two persons, e.g. lms link Jim father of Bob",
		Long: `Relate two persons, e.g. "lms link Jim father of Bob".

A person is given by id, by full name, or by a part of the name that
only one person has. Aliases such as "father of" or "sister of" also set
the sex of the persons they describe.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			req, ok := s.reg.Definitions().Parse(text)
			if !ok {
				return fmt.Errorf("no relationship found in %q, see lms relationships", text)
			}
			rel, changed, err := s.reg.Relate(req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range changed {
				fmt.Fprintf(out, "Sex of %s set to %s from alias %s\n", p.DisplayName(), p.Sex, req.Alias.Name)
			}
			fmt.Fprintf(out, "Link %s and %s as %q.\n", rel.Left, rel.Right, rel.Definition.Name)
			return s.save()
		},
	}
}

func newUnlinkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <id> <id>",
		Short: "Remove every relationship between two persons",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ids [2]personid.ID
			for i, arg := range args {
				id, err := personid.FromString(arg)
				if err != nil {
					return err
				}
				ids[i] = id
			}
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			first, err := s.reg.Get(ids[0])
			if err != nil {
				return err
			}
			second, err := s.reg.Get(ids[1])
			if err != nil {
				return err
			}

			removed, err := s.reg.Unlink(first.ID, second.ID)
			if err != nil {
				return err
			}
			if len(removed) == 0 {
				return fmt.Errorf("%s and %s are not related", first, second)
			}
			for _, l := range removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete relationship %q between %s and %s.\n", l.Definition, first, second)
			}
			return s.save()
		},
	}
}

func newRelationshipsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "relationships",
		Short: "List the known relationships and their aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range s.reg.Definitions() {
				var names []string
				for _, alias := range d.Aliases {
					if !slices.Contains(names, alias.Name) {
						names = append(names, alias.Name)
					}
				}
				fmt.Fprintf(out, "%s: %s\n", d.Name, strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:    "dump",
		Short:  "Print the raw in-memory storage keys",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			raw := s.db.Dump()
			keys := make([]string, 0, len(raw))
			for k := range raw {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\\t%d bytes\n", k, len(raw[k]))
			}
			return nil
		},
	}
}
