package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/config"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/dashboard"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/metrics"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/session"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/pkg/placement"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	placement.SetLogger(logger)
	logger.Info("starting placement dashboard",
		slog.String("version", version), slog.String("built", buildTime))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := session.Open(ctx, cfg.SessionPath, cfg.KeyPath(), logger)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer store.Close()

	client, err := placement.NewDefaultClient(placement.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
	}, store)
	if err != nil {
		log.Fatalf("Failed to build API client: %v", err)
	}
	defer client.Close()

	recorder := metrics.NewRecorder()
	client.SetObserver(recorder)
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", recorder.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Warn("metrics listener stopped", slog.Any("err", err))
			}
		}()
	}

	sess, err := bootstrapOrLogin(ctx, store, client, logger)
	if err != nil {
		log.Fatalf("Failed to sign in: %v", err)
	}
	fmt.Printf("Signed in as %s (%s)\n", sess.User.Username, sess.Role)

	ui := &console{out: os.Stdout}
	app := dashboard.NewApp(ctx, sess, client, ui, ui, dashboard.ConfirmFunc(ui.confirm), logger)

	runLoop(ctx, app, store, client, logger)
	app.Router.Wait()
}

// bootstrapOrLogin resumes the stored session, falling back to an
// interactive login when there is no credential or it expired.
func bootstrapOrLogin(ctx context.Context, store *session.Store, client *placement.Client, logger *slog.Logger) (*session.Session, error) {
	sess, err := session.Bootstrap(ctx, store, client, logger)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, session.ErrNoCredential) && !errors.Is(err, placement.ErrAuthExpired) {
		return nil, err
	}

	in := bufio.NewReader(os.Stdin)
	fmt.Print("Username (blank to register a company): ")
	username, _ := in.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		return registerCompany(ctx, store, client, in)
	}
	fmt.Print("Password: ")
	password, err := readPassword(in)
	if err != nil {
		return nil, err
	}
	return session.Login(ctx, store, client, username, password)
}

// registerCompany walks the company sign-up: a verified company id, the
// company name and a password.
func registerCompany(ctx context.Context, store *session.Store, client *placement.Client, in *bufio.Reader) (*session.Session, error) {
	if ids, err := client.CompanyIDs(ctx); err == nil {
		fmt.Println("Verified company IDs:", strings.Join(ids, ", "))
	}
	fmt.Print("Company ID: ")
	companyID, _ := in.ReadString('\n')
	fmt.Print("Company name: ")
	companyName, _ := in.ReadString('\n')
	fmt.Print("Password: ")
	password, err := readPassword(in)
	if err != nil {
		return nil, err
	}
	return session.Register(ctx, store, client,
		strings.TrimSpace(companyID), strings.TrimSpace(companyName), password)
}

func readPassword(in *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		return string(raw), err
	}
	line, err := in.ReadString('\n')
	return strings.TrimSpace(line), err
}

func runLoop(ctx context.Context, app *dashboard.App, store *session.Store, client *placement.Client, logger *slog.Logger) {
	in := bufio.NewScanner(os.Stdin)
	printNav(app)
	fmt.Println(`Commands: nav, open <n>, reload, new, edit <id>, set <field> <value>, submit, cancel, del <id>, verify <id>, show <id>, apply <id>, flow <id>, apps <id>, advance <id> <status>, matches <skills>, save, upload <kind> <path>, report [pdf], recalc, logout, quit`)

	form := dashboard.FormState{}
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "logout":
			if err := session.Logout(ctx, store, client, logger); err != nil {
				logger.Warn("logout failed", slog.Any("err", err))
			}
			fmt.Println("Signed out")
			return
		case "nav":
			printNav(app)
		case "open":
			if n, err := strconv.Atoi(arg(args, 0)); err == nil {
				entries := app.Router.Visible()
				if n >= 1 && n <= len(entries) {
					_ = app.Router.Activate(entries[n-1].Panel)
				} else {
					fmt.Println("No such entry")
				}
			}
		case "reload":
			app.Router.Reload()
		case "new":
			if c := activeController(app); c != nil {
				c.OpenCreate()
				form = dashboard.FormState{}
				fmt.Println("Form open (create); use set/submit")
			}
		case "edit":
			if c := activeController(app); c != nil {
				if err := c.OpenEdit(ctx, argID(args)); err == nil {
					form = c.Form()
					fmt.Println("Form open (edit); use set/submit")
				}
			}
		case "set":
			if len(args) >= 2 {
				form[args[0]] = strings.Join(args[1:], " ")
			}
		case "submit":
			if c := activeController(app); c != nil {
				_ = c.Submit(ctx, form)
			}
		case "cancel":
			if c := activeController(app); c != nil {
				c.Cancel()
			}
		case "del":
			if c := activeController(app); c != nil {
				_ = c.Delete(ctx, argID(args))
			}
		case "verify":
			if c := activeController(app); c != nil {
				_ = c.ToggleFlag(ctx, argID(args))
			}
		case "apply":
			_ = app.Apply(ctx, argID(args))
		case "flow":
			_ = app.ShowFlow(ctx, argID(args))
		case "apps":
			_ = app.OpenApplications(ctx, argID(args))
		case "advance":
			app.OpenStatusUpdate(argID(args))
			_ = app.SubmitStatusUpdate(ctx, arg(args, 1))
		case "show":
			_ = app.ShowStudent(ctx, argID(args))
		case "matches":
			_ = app.FindMatches(ctx, strings.Join(args, " "))
		case "save":
			if err := app.SaveProfile(ctx, form); err == nil {
				form = dashboard.FormState{}
			}
		case "upload":
			uploadFile(ctx, app, arg(args, 0), arg(args, 1))
		case "report":
			downloadReport(ctx, app, arg(args, 0))
		case "recalc":
			_ = app.RecalculateScores(ctx)
		default:
			fmt.Println("Unknown command:", cmd)
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func uploadFile(ctx context.Context, app *dashboard.App, kind, path string) {
	if kind == "" || path == "" {
		fmt.Println("Usage: upload <resume|photo|document> <path>")
		return
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Println("Cannot open file:", err)
		return
	}
	defer f.Close()
	_ = app.UploadFile(ctx, placement.UploadKind(kind), filepath.Base(path), f)
}

func downloadReport(ctx context.Context, app *dashboard.App, format string) {
	kind, name := placement.ReportCSV, "placement_report.csv"
	if format == "pdf" {
		kind, name = placement.ReportPDF, "placement_report.pdf"
	}
	data, err := app.DownloadReport(ctx, kind)
	if err != nil {
		return
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		fmt.Println("Cannot write report:", err)
		return
	}
	fmt.Println("Saved", name)
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func argID(args []string) int64 {
	id, _ := strconv.ParseInt(arg(args, 0), 10, 64)
	return id
}

// activeController maps the active panel to the controller that manages it.
func activeController(app *dashboard.App) *dashboard.Controller {
	active, ok := app.Router.Active()
	if !ok {
		return nil
	}
	switch active {
	case dashboard.PanelUsers:
		return app.Accounts
	case dashboard.PanelStudents:
		return app.Verification
	case dashboard.PanelPlacements, dashboard.PanelCompanyPlacements:
		return app.Opportunities
	default:
		fmt.Println("No editable entity on this panel")
		return nil
	}
}

func printNav(app *dashboard.App) {
	fmt.Println("Panels:")
	for i, entry := range app.Router.Visible() {
		marker := " "
		if entry.Active {
			marker = "*"
		}
		fmt.Printf(" %s %d. %s\n", marker, i+1, entry.Label)
	}
}
