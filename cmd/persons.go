package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"lms/filestore"
	"lms/person"
	"lms/personid"
	"lms/relationship"
	"lms/sample"
	"lms/search"

	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every person with their relationships",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			all, err := s.reg.All()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(all) == 0 {
				fmt.Fprintln(out, "No Person registered yet.")
				return nil
			}
			for _, m := range all {
				showPerson(out, m)
				rels, err := s.reg.Relationships(m.ID)
				if err != nil {
					return err
				}
				for _, r := range rels {
					if err := showRelationship(out, r, m.Person); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "List persons whose firstname contains query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			full, _ := cmd.Flags().GetBool("full")
			demo, _ := cmd.Flags().GetBool("sample")

			match := search.Firstname(query)
			if full {
				match = search.DisplayName(query)
			}

			var found []person.Person
			if demo {
				found = search.Filter(sample.Persons(sample.Count), match)
			} else {
				s, err := a.open(cmd)
				if err != nil {
					return err
				}
				if found, err = s.reg.Filter(match); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if query != "" {
				fmt.Fprintf(out, "Searching for %s...\n", query)
			} else {
				fmt.Fprintln(out, "Displaying everything")
			}
			for _, p := range found {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
	cmd.Flags().Bool("full", false, "match against firstname and lastname")
	cmd.Flags().Bool("sample", false, "search the built-in demo persons instead of the file")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [firstname] [lastname]",
		Short: "Register a new person",
		Args:  nameArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			sex, err := sexFlag(cmd)
			if err != nil {
				return err
			}
			s, err := a.open(cmd)
			if err != nil {
				return err
			}

			p, err := s.reg.Create(args[0], lastnameArg(args, 1), sex)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Create Person %s.\n", p.DisplayName())
			return s.save()
		},
	}
	cmd.Flags().String("sex", "", "sex of the person (male, female)")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id] [firstname] [lastname]",
		Short: "Replace the names of a person",
		Args:  nameArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := personid.FromString(args[0])
			if err != nil {
				return err
			}
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			old, err := s.reg.Get(id)
			if err != nil {
				return err
			}

			sex := old.Sex
			if cmd.Flags().Changed("sex") {
				if sex, err = sexFlag(cmd); err != nil {
					return err
				}
			}
			p, err := person.New(id, args[1], lastnameArg(args, 2), sex)
			if err != nil {
				return err
			}
			if err := s.reg.Update(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Update Person %s to %s.\n", old, p.DisplayName())
			return s.save()
		},
	}
	cmd.Flags().String("sex", "", "sex of the person (male, female, unset)")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Remove a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := personid.FromString(args[0])
			if err != nil {
				return err
			}
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			p, err := s.reg.Get(id)
			if err != nil {
				return err
			}
			if _, err := s.reg.Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Delete Person %s.\n", p)
			return s.save()
		},
	}
}

func newSampleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Fill an empty file with demo persons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			if count < 1 {
				return errors.New("count must be positive")
			}
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			ids, err := s.reg.IDs()
			if err != nil {
				return err
			}
			if len(ids) > 0 {
				return fmt.Errorf("sample data needs an empty database, %s holds %d persons", s.cfg.DBFile, len(ids))
			}

			for _, p := range sample.Persons(count) {
				if _, err := s.reg.Create(p.Firstname, p.Lastname, p.Sex); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d sample persons.\n", count)
			return s.save()
		},
	}
	cmd.Flags().Int("count", sample.Count, "number of persons to create")
	return cmd
}

// nameArgs accepts lead leading arguments followed by a firstname and an
// optional lastname.
func nameArgs(lead int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		switch {
		case len(args) < lead+1:
			return fmt.Errorf("requires at least %d argument(s)", lead+1)
		case len(args) > lead+2:
			return fmt.Errorf("too many arguments (%d)", len(args))
		}
		return nil
	}
}

func lastnameArg(args []string, i int) mo.Option[string] {
	if len(args) > i {
		return mo.Some(args[i])
	}
	return mo.None[string]()
}

func sexFlag(cmd *cobra.Command) (person.Sex, error) {
	raw, _ := cmd.Flags().GetString("sex")
	return person.ParseSex(raw)
}

func showPerson(w io.Writer, m person.Metadata) {
	if m.Created.IsZero() {
		fmt.Fprintf(w, "(%s) %s %s\n", m.ID, m.Sex, m.DisplayName())
		return
	}
	fmt.Fprintf(w, "(%s) %s %s (%s)\n", m.ID, m.Sex, m.DisplayName(), filestore.FormatCreated(m.Created.Truncate(time.Second)))
}

func showRelationship(w io.Writer, r relationship.Relationship, of person.Person) error {
	repr, err := r.ReprFor(of)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "    -> %s %s\n", repr, r.Other(of))
	return nil
}
