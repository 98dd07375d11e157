package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dtroode/finfy-auth/internal/config"
	"github.com/dtroode/finfy-auth/internal/cookiejar"
	"github.com/dtroode/finfy-auth/internal/gateway"
	"github.com/dtroode/finfy-auth/internal/identity"
	"github.com/dtroode/finfy-auth/internal/logger"
	"github.com/dtroode/finfy-auth/internal/login"
	"github.com/dtroode/finfy-auth/internal/session"
	"github.com/dtroode/finfy-auth/internal/token"
	"github.com/dtroode/finfy-auth/internal/transport"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

type app struct {
	cfg      *config.Config
	logger   *logger.Logger
	tokens   *session.Store
	jar      *cookiejar.Jar
	gateway  *gateway.Gateway
	identity *identity.Client
	host     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		logger.Fatal("invalid base URL", "url", cfg.BaseURL, "error", err.Error())
	}

	tokens := session.NewStore()
	jar := cookiejar.New()

	dialer := &net.Dialer{Timeout: cfg.HTTP.ConnectTimeout}
	client := &http.Client{
		Jar:     jar,
		Timeout: cfg.HTTP.CallTimeout,
		Transport: transport.NewSigner(tokens,
			transport.NewLogging(logger, &http.Transport{DialContext: dialer.DialContext})),
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		tokens:   tokens,
		jar:      jar,
		gateway:  gateway.New(client, cfg.BaseURL, tokens, jar, logger),
		identity: identity.NewClient(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL, logger),
		host:     base.Hostname(),
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logAppVersion()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		logger.Fatal("command failed", "command", os.Args[1], "error", err.Error())
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: finfy-auth <command> [flags]

commands:
  login    -email <email> -password <password>
  google   -credential <id-token> | -code <authorization-code>
  refresh
  status
  logout
  dump`)
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)

	switch command {
	case "login":
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return a.login(ctx, *email, *password)
	case "google":
		credential := fs.String("credential", "", "google ID token")
		code := fs.String("code", "", "OAuth authorization code to exchange")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return a.google(ctx, *credential, *code)
	case "refresh":
		if _, err := a.gateway.Refresh(ctx); err != nil {
			return err
		}
		a.printSession()
		return nil
	case "status":
		body, err := a.gateway.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Println(body)
		return nil
	case "logout":
		if err := a.gateway.Logout(ctx); err != nil {
			return err
		}
		a.printSession()
		return nil
	case "dump":
		a.printSession()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, email, password string) error {
	ctrl := login.NewController(a.gateway, a.logger, login.WithNavigateDelay(a.cfg.NavigateDelay))
	ctrl.OnEmailChange(email)
	ctrl.OnPasswordChange(password)
	ctrl.Submit(ctx)

	if err := a.watch(ctx, ctrl); err != nil {
		return err
	}
	a.printSession()
	return nil
}

func (a *app) google(ctx context.Context, credential, code string) error {
	ctrl := login.NewController(a.gateway, a.logger, login.WithNavigateDelay(a.cfg.NavigateDelay))

	if credential == "" {
		if code == "" {
			return errors.New("either -credential or -code is required")
		}
		ctrl.StartGoogleSignIn()
		result := a.identity.Exchange(ctx, code)
		success, ok := result.(identity.Success)
		if !ok {
			ctrl.ReportGoogleFailure(identity.FailureMessage(result))
			return errors.New(identity.FailureMessage(result))
		}
		credential = success.IDToken
	}

	ctrl.SubmitGoogle(ctx, credential)

	if err := a.watch(ctx, ctrl); err != nil {
		return err
	}
	a.printSession()
	return nil
}

// watch consumes controller state and events until the flow reaches a
// terminal outcome: navigation home on success, or an error surface.
func (a *app) watch(ctx context.Context, ctrl *login.Controller) error {
	stdin := bufio.NewReader(os.Stdin)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-ctrl.Events():
			switch e := ev.(type) {
			case login.ShowSnackbar:
				fmt.Println(e.Message)
			case login.NavigateHome:
				return nil
			case login.FocusEmail, login.FocusPassword:
				if err := stateError(ctrl.State()); err != nil {
					return err
				}
			}
		case <-ctrl.Updates():
			st := ctrl.State()
			if st.GoogleConflictOpen {
				if err := a.resolveConflictPrompt(ctx, ctrl, st, stdin); err != nil {
					return err
				}
				continue
			}
			if err := stateError(st); err != nil {
				return err
			}
		}
	}
}

func (a *app) resolveConflictPrompt(ctx context.Context, ctrl *login.Controller, st login.UiState, stdin *bufio.Reader) error {
	if st.Feedback != nil {
		fmt.Println(st.Feedback.Message)
	}
	if st.GoogleConflictEmail != "" {
		fmt.Printf("conflicting account: %s\n", st.GoogleConflictEmail)
	}
	fmt.Print("link accounts? [y/N]: ")

	answer, err := stdin.ReadString('\n')
	if err != nil {
		ctrl.DismissConflict()
		return fmt.Errorf("failed to read answer: %w", err)
	}

	if strings.EqualFold(strings.TrimSpace(answer), "y") {
		ctrl.ResolveConflict(ctx)
		return nil
	}

	ctrl.DismissConflict()
	return errors.New("google sign-in aborted")
}

func stateError(st login.UiState) error {
	if st.GlobalError != nil {
		return errors.New(st.GlobalError.Message)
	}
	if st.Feedback != nil && st.Feedback.Kind == login.FeedbackError {
		return errors.New(st.Feedback.Message)
	}
	if st.EmailError != "" {
		return errors.New(st.EmailError)
	}
	if st.PasswordError != "" {
		return errors.New(st.PasswordError)
	}
	return nil
}

func (a *app) printSession() {
	raw := a.tokens.Get()
	if raw == "" {
		fmt.Println("access token: (none)")
	} else {
		prefix := raw
		if len(prefix) > 18 {
			prefix = prefix[:18]
		}
		fmt.Printf("access token: %s...\n", prefix)

		if info, err := token.Inspect(raw); err == nil && !info.ExpiresAt.IsZero() {
			fmt.Printf("expires at: %s (expired: %t)\n",
				info.ExpiresAt.Format(time.RFC3339), info.Expired(time.Now()))
		}
	}

	fmt.Println("cookies:")
	fmt.Println(a.jar.Dump(a.host))
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
