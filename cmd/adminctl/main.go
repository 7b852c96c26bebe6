// Command adminctl provisions admin accounts and sample content against the
// configured database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/FaranAlam/faran-portfolio/internal/auth"
	"github.com/FaranAlam/faran-portfolio/internal/config"
	"github.com/FaranAlam/faran-portfolio/internal/db"
	"github.com/FaranAlam/faran-portfolio/internal/logging"
	"github.com/FaranAlam/faran-portfolio/internal/validate"
)

const usage = `usage: adminctl <command> [flags]

commands:
  check                                  list admins, creating the default one if none exist
  create -username -email -password [-name] [-role]
  reset-password -email -password
  seed-blogs [-force]                    insert sample published posts`

var errUsage = errors.New(usage)

type env struct {
	cfg   *config.Config
	store *db.Store
	auth  *auth.Service
}

type command struct {
	name string
	run  func(ctx context.Context, e *env, out io.Writer) error
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cmd, err := parseCommand(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console"})

	store, err := db.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		return err
	}

	svc, err := auth.NewService(store, auth.NewHasher(cfg.BcryptCost), auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn))
	if err != nil {
		return err
	}
	return cmd.run(ctx, &env{cfg: cfg, store: store, auth: svc}, out)
}

// parseCommand resolves the subcommand and its flags without touching the
// database, so bad invocations fail fast.
func parseCommand(args []string) (*command, error) {
	if len(args) == 0 {
		return nil, errUsage
	}
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	switch args[0] {
	case "check":
		if err := fs.Parse(args[1:]); err != nil {
			return nil, err
		}
		return &command{name: "check", run: checkAdmins}, nil

	case "create":
		var in validate.AdminInput
		fs.StringVar(&in.Username, "username", "", "admin username")
		fs.StringVar(&in.Email, "email", "", "admin email")
		fs.StringVar(&in.Password, "password", "", "admin password")
		fs.StringVar(&in.Name, "name", "", "display name (defaults to username)")
		fs.StringVar(&in.Role, "role", "admin", "admin or super-admin")
		if err := fs.Parse(args[1:]); err != nil {
			return nil, err
		}
		if in.Name == "" {
			in.Name = in.Username
		}
		in.Normalize()
		if err := in.Validate(); err != nil {
			return nil, err
		}
		return &command{name: "create", run: func(ctx context.Context, e *env, out io.Writer) error {
			admin, err := e.auth.CreateAdmin(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "created %s %s <%s>\n", admin.Role, admin.Username, admin.Email)
			return nil
		}}, nil

	case "reset-password":
		var email, password string
		fs.StringVar(&email, "email", "", "admin email")
		fs.StringVar(&password, "password", "", "new password")
		if err := fs.Parse(args[1:]); err != nil {
			return nil, err
		}
		if email == "" {
			return nil, errors.New("reset-password: -email is required")
		}
		if err := validate.ValidatePassword(password); err != nil {
			return nil, err
		}
		return &command{name: "reset-password", run: func(ctx context.Context, e *env, out io.Writer) error {
			if err := e.auth.ResetPassword(ctx, email, password); err != nil {
				return err
			}
			fmt.Fprintf(out, "password updated for %s\n", validate.NormalizeEmail(email))
			return nil
		}}, nil

	case "seed-blogs":
		force := fs.Bool("force", false, "insert even when posts already exist")
		if err := fs.Parse(args[1:]); err != nil {
			return nil, err
		}
		return &command{name: "seed-blogs", run: func(ctx context.Context, e *env, out io.Writer) error {
			return seedBlogs(ctx, e, out, *force)
		}}, nil
	}
	return nil, fmt.Errorf("unknown command %q\n%s", args[0], usage)
}

func checkAdmins(ctx context.Context, e *env, out io.Writer) error {
	created, err := e.auth.Bootstrap(ctx, e.cfg.DefaultAdmin)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "no admin found; created default admin <%s>\n", e.cfg.DefaultAdmin.Email)
	}

	admins, err := e.store.ListAdmins(ctx)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		fmt.Fprintln(out, "no admins; set DEFAULT_ADMIN_PASSWORD or run adminctl create")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tEMAIL\tROLE\tACTIVE\tLAST LOGIN")
	for _, a := range admins {
		last := "never"
		if a.LastLogin != nil {
			last = a.LastLogin.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", a.Username, a.Email, a.Role, a.IsActive, last)
	}
	return tw.Flush()
}
