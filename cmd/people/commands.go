package main

import (
	"fmt"

	"github.com/arvarik/people-go/people"
	"github.com/spf13/cobra"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List people",
		Long:  `List people. With --limit the whole collection is fetched page by page.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd, flags)
			if err != nil {
				return err
			}

			var opts *people.ListOptions
			if cmd.Flags().Changed("limit") {
				opts = &people.ListOptions{Limit: limit}
			}

			all, err := client.People.ListAll(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), all)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "page size used to walk the whole collection")
	return cmd
}

func newGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Fetch one person by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd, flags)
			if err != nil {
				return err
			}

			p, err := client.People.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}

func newQueryCmd(flags *globalFlags) *cobra.Command {
	var fields map[string]string

	cmd := &cobra.Command{
		Use:     "query",
		Short:   "Find people by exact field values",
		Example: `  people query --field first_name=Geralt --field last_name="of Rivia"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd, flags)
			if err != nil {
				return err
			}

			criteria := people.Criteria{}
			for k, v := range fields {
				criteria[people.Field(k)] = v
			}

			matches, err := client.People.Query(cmd.Context(), criteria)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), matches)
		},
	}

	cmd.Flags().StringToStringVarP(&fields, "field", "f", nil,
		fmt.Sprintf("field=value criterion, repeatable; fields: %v", people.Fields))
	return cmd
}

func newByIPCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "by-ip PREFIX",
		Short: "Find people whose IP address starts with PREFIX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd, flags)
			if err != nil {
				return err
			}

			matches, err := client.People.ByPartialIP(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), matches)
		},
	}
}

func newAddCmd(flags *globalFlags) *cobra.Command {
	var p people.Person

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd, flags)
			if err != nil {
				return err
			}

			created, err := client.People.Add(cmd.Context(), p.FirstName, p.LastName, p.Email, p.Phone, p.IPAddress)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}

	f := cmd.Flags()
	f.StringVar(&p.FirstName, "first-name", "", "first name")
	f.StringVar(&p.LastName, "last-name", "", "last name")
	f.StringVar(&p.Email, "email", "", "email address")
	f.StringVar(&p.Phone, "phone", "", "phone number")
	f.StringVar(&p.IPAddress, "ip", "", "IP address")
	return cmd
}

func newDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one person by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd, flags)
			if err != nil {
				return err
			}

			confirmation, err := client.People.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), confirmation)
		},
	}
}

func newDeleteByNameCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-by-name FIRST_NAME",
		Short: "Delete every person with the given first name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd, flags)
			if err != nil {
				return err
			}

			summary, err := client.People.DeleteByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary)
			return err
		},
	}
}

func newImportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create people from a JSON array in FILE (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd, flags)
			if err != nil {
				return err
			}

			in, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()

			created, err := client.People.Import(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}
}
