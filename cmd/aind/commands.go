package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/bendichter/aind-data-schema/internal/api"
	"github.com/bendichter/aind-data-schema/internal/pg"
	"github.com/bendichter/aind-data-schema/internal/reference"
	"github.com/bendichter/aind-data-schema/internal/schema"
)

var errInvalid = errors.New("invalid records")

func catalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List entity types and check the catalog for dangling references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			all := cat.Entities()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ENTITY\tKIND\tVERSION\tFIELDS")
			for _, fqn := range cat.FQNs() {
				e := all[fqn]
				kind := "record"
				switch {
				case e.IsCore():
					kind = "core"
				case e.IsQuantity():
					kind = "quantity"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", fqn, kind, e.SchemaVersion(), len(e.Fields()))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if issues := cat.Lint(); len(issues) > 0 {
				reference.SortIssues(issues)
				for _, is := range issues {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s.%s: %s (%s)\n", is.Entity, is.Field, is.Message, is.Code)
				}
				return fmt.Errorf("catalog has %d issue(s)", len(issues))
			}
			return nil
		},
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func findEntity(cat *reference.Catalog, ref string) (*schema.Entity, error) {
	_, e, ok := cat.Entity(ref)
	if !ok {
		return nil, fmt.Errorf("unknown entity %q", ref)
	}
	return e, nil
}

func reportInvalid(w io.Writer, source string, err error) {
	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		fmt.Fprintf(w, "%s: %v\n", source, err)
		return
	}
	for _, fe := range ve.Errors {
		line := fmt.Sprintf("%s: %s [%s]", source, fe.Error(), fe.Code)
		if len(fe.Allowed) > 0 {
			line += " allowed: " + strings.Join(fe.Allowed, ", ")
		}
		fmt.Fprintln(w, line)
	}
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate ENTITY FILE...",
		Short: "Validate JSON records against an entity type (FILE - reads stdin)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			e, err := findEntity(cat, args[0])
			if err != nil {
				return err
			}
			bad := 0
			for _, path := range args[1:] {
				data, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				if _, err := e.FromJSON(data); err != nil {
					reportInvalid(cmd.ErrOrStderr(), path, err)
					bad++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if bad > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalid, bad, len(args)-1)
			}
			return nil
		},
	}
}

func writeCmd(a *app) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "write ENTITY FILE",
		Short: "Validate a core record and write it in canonical form under its standard file name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			e, err := findEntity(cat, args[0])
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}
			rec, err := e.FromJSON(data)
			if err != nil {
				reportInvalid(cmd.ErrOrStderr(), args[1], err)
				return errInvalid
			}
			path, err := rec.WriteStandardFileTo(a.cfg.OutputDir, prefix)
			if err != nil {
				return err
			}
			a.log.Info("record written", "entity", e.Name(), "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "File name prefix (<prefix>_<entity>.json)")
	return cmd
}

func ddlCmd(a *app) *cobra.Command {
	var apply bool
	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Print Postgres DDL for the catalog, or apply it with --apply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := a.loadCatalog(ctx)
			if err != nil {
				return err
			}
			ddl, err := pg.GenerateDDL(cat.Entities())
			if err != nil {
				return err
			}
			if !apply {
				keys := make([]string, 0, len(ddl))
				for k := range ddl {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(cmd.OutOrStdout(), "-- %s\n%s\n", k, ddl[k])
				}
				return nil
			}
			if a.cfg.DBURL == "" {
				return errors.New("--apply needs a database URL (--db or AIND_DB_URL)")
			}
			db, err := pg.Open(ctx, a.cfg.DBURL, a.log)
			if err != nil {
				return err
			}
			defer db.Close()
			return pg.ApplyDDL(ctx, db, ddl, a.log)
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "Apply the DDL to the database instead of printing it")
	return cmd
}

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP catalog browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			srv, err := api.NewServer(ctx, api.Options{
				Loader:    a.loadCatalog,
				Logger:    a.log,
				RateLimit: rate.Limit(a.cfg.RateLimit),
				RateBurst: a.cfg.RateBurst,
				CacheTTL:  time.Duration(a.cfg.CacheSeconds) * time.Second,
			})
			if err != nil {
				return err
			}
			if a.cfg.Watch {
				go func() {
					if err := srv.Watch(ctx, api.DefaultDebounce, a.cfg.DSLDir, a.cfg.EnumsDir); err != nil {
						a.log.Error("watch stopped", "error", err)
					}
				}()
			}

			hs := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           srv.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errc := make(chan error, 1)
			go func() {
				a.log.Info("catalog browser listening", "addr", hs.Addr)
				errc <- hs.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			a.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return hs.Shutdown(shutdownCtx)
		},
	}
}
