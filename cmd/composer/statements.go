package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/biyonik/sql-composer/pkg/composer"
	"github.com/biyonik/sql-composer/pkg/database"
)

var errUnscopedWrite = errors.New("refusing to write every row without --where (use --all)")

// statementFlags, dört ifade komutunun ortak bayraklarıdır.
type statementFlags struct {
	where []string
	exec  bool
}

func (f *statementFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.where, "where", nil, `condition "column operator value"; repeat to AND conditions`)
	cmd.Flags().BoolVar(&f.exec, "exec", false, "run the statement against the configured database")
}

// conditions, --where değerlerini WHERE ... AND ... olarak yazar.
func (f *statementFlags) conditions(q *composer.Simple) error {
	for i, raw := range f.where {
		c, err := parseCondition(raw)
		if err != nil {
			return err
		}
		if i == 0 {
			q.Where(c.column, c.op, c.value)
		} else {
			q.And(c.column, c.op, c.value)
		}
	}
	return nil
}

func newSelectCmd(a *app) *cobra.Command {
	var (
		f        statementFlags
		columns  []string
		distinct bool
		count    bool
		groupBy  []string
		orderBy  []string
		desc     bool
	)

	cmd := &cobra.Command{
		Use:   "select TABLE",
		Short: "Compose a SELECT statement",
		Example: `  composer select users --columns id,email --where "status = active" --order-by id --desc
  composer select tickets --count --group-by status --columns status`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := a.simple()
			if err != nil {
				return err
			}

			switch {
			case count:
				q.SelectCount(columns...)
			case distinct:
				q.SelectDistinct(columns...)
			default:
				q.Select(columns...)
			}
			q.From(args[0])

			if err := f.conditions(q); err != nil {
				return composeError("parsing --where", err)
			}
			if len(groupBy) > 0 {
				q.GroupBy(groupBy...)
			}
			if len(orderBy) > 0 {
				if desc {
					q.OrderByDesc(orderBy...)
				} else {
					q.OrderBy(orderBy...)
				}
			}
			return a.run(cmd, q, f.exec, true)
		},
	}

	f.bind(cmd)
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to select (default *)")
	cmd.Flags().BoolVar(&distinct, "distinct", false, "SELECT DISTINCT")
	cmd.Flags().BoolVar(&count, "count", false, "SELECT COUNT(columns) or COUNT(*)")
	cmd.Flags().StringSliceVar(&groupBy, "group-by", nil, "GROUP BY columns")
	cmd.Flags().StringSliceVar(&orderBy, "order-by", nil, "ORDER BY columns")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort ORDER BY columns descending")
	return cmd
}

func newInsertCmd(a *app) *cobra.Command {
	var (
		f    statementFlags
		sets []string
	)

	cmd := &cobra.Command{
		Use:     "insert TABLE",
		Short:   "Compose an INSERT statement",
		Example: `  composer insert users --set email=a@example.com --set "name='Ann Lee'"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sets) == 0 {
				return composeError("insert", errors.New("at least one --set is required"))
			}
			columns := make([]string, len(sets))
			values := make([]any, len(sets))
			for i, raw := range sets {
				column, value, err := parseAssignment(raw)
				if err != nil {
					return composeError("parsing --set", err)
				}
				columns[i], values[i] = column, value
			}

			q, err := a.simple()
			if err != nil {
				return err
			}
			q.Insert(args[0], columns...).Values(values...)
			return a.run(cmd, q, f.exec, false)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, `column value pair "column=value"; repeatable`)
	cmd.Flags().BoolVar(&f.exec, "exec", false, "run the statement against the configured database")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var (
		f    statementFlags
		sets []string
		all  bool
	)

	cmd := &cobra.Command{
		Use:     "update TABLE",
		Short:   "Compose an UPDATE statement",
		Example: `  composer update users --set status=inactive --where "last_login < 2024-01-01"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sets) == 0 {
				return composeError("update", errors.New("at least one --set is required"))
			}
			if len(f.where) == 0 && !all {
				return composeError("update", errUnscopedWrite)
			}

			q, err := a.simple()
			if err != nil {
				return err
			}
			q.Update(args[0])
			for _, raw := range sets {
				column, value, err := parseAssignment(raw)
				if err != nil {
					return composeError("parsing --set", err)
				}
				q.Condition(column, "=", value, ",")
			}
			if err := f.conditions(q); err != nil {
				return composeError("parsing --where", err)
			}
			return a.run(cmd, q, f.exec, false)
		},
	}

	f.bind(cmd)
	cmd.Flags().StringArrayVar(&sets, "set", nil, `assignment "column=value"; repeatable`)
	cmd.Flags().BoolVar(&all, "all", false, "allow updating every row")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var (
		f   statementFlags
		all bool
	)

	cmd := &cobra.Command{
		Use:     "delete TABLE",
		Short:   "Compose a DELETE statement",
		Example: `  composer delete sessions --where "expires_at < 2024-01-01"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(f.where) == 0 && !all {
				return composeError("delete", errUnscopedWrite)
			}

			q, err := a.simple()
			if err != nil {
				return err
			}
			q.Delete().From(args[0])
			if err := f.conditions(q); err != nil {
				return composeError("parsing --where", err)
			}
			return a.run(cmd, q, f.exec, false)
		},
	}

	f.bind(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "allow deleting every row")
	return cmd
}

func (a *app) simple() (*composer.Simple, error) {
	opts, err := a.cfg.ComposerOptions()
	if err != nil {
		return nil, configError("composer options", err)
	}
	return composer.NewSimple(opts...), nil
}

// run, ifadeyi yazdırır; exec true ise veritabanında çalıştırır. rows,
// sonuç kümesinin mi yoksa etkilenen satır sayısının mı yazılacağını belirler.
func (a *app) run(cmd *cobra.Command, q *composer.Simple, exec, rows bool) error {
	query, args, err := q.ToSQL()
	if err != nil {
		return composeError("composing statement", err)
	}

	out := cmd.OutOrStdout()
	if !exec {
		fmt.Fprintln(out, query)
		if len(args) > 0 {
			fmt.Fprintf(out, "-- args: %v\n", args)
		}
		return nil
	}

	client, err := a.connect(cmd.Context())
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()
	if rows {
		result, err := client.Maps(ctx, q)
		if err != nil {
			return dbError("running query", err)
		}
		data, err := yaml.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Fprint(out, string(data))
		return nil
	}

	res, err := client.Exec(ctx, q)
	if err != nil {
		return dbError("running statement", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return dbError("reading result", err)
	}
	fmt.Fprintf(out, "rows affected: %d\n", affected)
	return nil
}

func (a *app) connect(ctx context.Context) (*database.Client, error) {
	if a.cfg.Database.Driver == "" {
		return nil, configError("--exec", errors.New("database.driver is not configured"))
	}
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := database.Connect(ctx, a.cfg.DatabaseConfig(), a.logger)
	if err != nil {
		return nil, dbError("connecting to database", err)
	}

	opts, err := a.cfg.ComposerOptions()
	if err != nil {
		_ = db.Close()
		return nil, configError("composer options", err)
	}
	return database.NewClient(db,
		database.WithLogger(a.logger),
		database.WithSlowThreshold(a.cfg.Database.SlowThreshold),
		database.WithComposerOptions(opts...),
	), nil
}
