package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"dashboard-client/internal/domain"
	"dashboard-client/internal/usecase"
	"dashboard-client/pkg/utils"
)

// Commands accepted by -cmd
const (
	CmdLogin      = "login"
	CmdLogout     = "logout"
	CmdStatus     = "status"
	CmdShow       = "show"
	CmdEdit       = "edit"
	CmdTokenShow  = "token-show"
	CmdTokenEdit  = "token-edit"
	CmdPhoto      = "photo"
	CmdCartList   = "cart-list"
	CmdCartAdd    = "cart-add"
	CmdCartEdit   = "cart-edit"
	CmdCartDelete = "cart-delete"
	CmdCartClear  = "cart-clear"
)

var Commands = []string{
	CmdLogin, CmdLogout, CmdStatus, CmdShow, CmdEdit, CmdTokenShow, CmdTokenEdit,
	CmdPhoto, CmdCartList, CmdCartAdd, CmdCartEdit, CmdCartDelete, CmdCartClear,
}

// ErrUsage marks a bad command line.
var ErrUsage = errors.New("usage")

// Request is one parsed command line.
type Request struct {
	Cmd      string
	Email    string
	Password string
	Sets     []string
	File     string
	ID       string
	Yes      bool
}

// App runs single-shot dashboard commands against a terminal.
type App struct {
	dash *usecase.DashboardUsecase
	out  io.Writer
	in   *bufio.Reader
}

func NewApp(dash *usecase.DashboardUsecase, in io.Reader, out io.Writer) *App {
	return &App{dash: dash, out: out, in: bufio.NewReader(in)}
}

func (a *App) Run(ctx context.Context, req Request) error {
	if !slices.Contains(Commands, req.Cmd) {
		return fmt.Errorf("%w: unknown command %q (want one of %s)", ErrUsage, req.Cmd, strings.Join(Commands, "|"))
	}

	switch req.Cmd {
	case CmdLogin:
		return a.login(ctx, req)
	case CmdLogout:
		if err := a.dash.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Logged out.")
		return nil
	case CmdStatus:
		return a.status(ctx)
	}

	// everything else works on the mounted dashboard
	if err := a.dash.Open(ctx); err != nil {
		return err
	}

	switch req.Cmd {
	case CmdShow:
		a.printProfile()
		fmt.Fprintf(a.out, "\nCart: %d item(s)\n", len(a.dash.Cart().Items()))
		return nil
	case CmdEdit:
		return a.edit(ctx, a.dash.Profile().BeginEdit, req.Sets)
	case CmdTokenEdit:
		return a.edit(ctx, a.dash.Profile().BeginTokenEdit, req.Sets)
	case CmdTokenShow:
		return a.tokenShow(ctx)
	case CmdPhoto:
		return a.photo(ctx, req.File)
	case CmdCartList:
		a.printCart()
		return nil
	case CmdCartAdd:
		return a.cartAdd(ctx, req.File)
	case CmdCartEdit:
		return a.cartEdit(ctx, req.ID, req.File)
	case CmdCartDelete:
		return a.cartDelete(ctx, req.ID, req.Yes)
	case CmdCartClear:
		return a.cartClear(ctx, req.Yes)
	}
	return nil
}

func (a *App) login(ctx context.Context, req Request) error {
	if req.Email == "" || req.Password == "" {
		return fmt.Errorf("%w: login needs -email and -password", ErrUsage)
	}
	id, err := a.dash.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	p, _ := a.dash.Profile().Canonical()
	fmt.Fprintf(a.out, "Welcome, %s (user %s)\n", p.Name, id.SessionID)
	return nil
}

func (a *App) status(ctx context.Context) error {
	id, ok, err := a.dash.Session().Restore(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "User\t%s\n", id.SessionID)
	if id.HasToken() {
		fmt.Fprintf(w, "Token\t%s\n", utils.Mask(id.Token))
		if exp, ok := utils.PeekExpiry(id.Token); ok {
			state := "valid"
			if time.Now().After(exp) {
				state = "expired"
			}
			fmt.Fprintf(w, "Token expires\t%s (%s)\n", exp.Local().Format(time.RFC1123), state)
		}
	} else {
		fmt.Fprintf(w, "Token\t(none)\n")
	}
	return w.Flush()
}

func (a *App) edit(ctx context.Context, begin func() error, sets []string) error {
	if len(sets) == 0 {
		return fmt.Errorf("%w: give at least one -set field=value", ErrUsage)
	}
	if err := begin(); err != nil {
		return err
	}

	p := a.dash.Profile()
	for _, s := range sets {
		field, value, err := utils.ParseAssignment(s)
		if err != nil {
			p.Cancel()
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		if err := p.SetField(field, value); err != nil {
			p.Cancel()
			return err
		}
	}

	if err := p.Commit(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated successfully!")
	a.printProfile()
	return nil
}

func (a *App) tokenShow(ctx context.Context) error {
	p := a.dash.Profile()
	rec, err := p.ShowTokenProfile(ctx)
	if err != nil {
		return err
	}
	defer p.CloseTokenProfile()

	fmt.Fprintln(a.out, "Profile (token authenticated)")
	a.printRecord(*rec)
	return nil
}

func (a *App) photo(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("%w: photo needs -file", ErrUsage)
	}
	file, err := ReadFile(path)
	if err != nil {
		return err
	}

	p := a.dash.Profile()
	if err := p.BeginPhotoEdit(); err != nil {
		return err
	}
	if err := p.SelectPhoto(file); err != nil {
		p.Cancel()
		return err
	}
	if err := p.Commit(ctx); err != nil {
		return err
	}

	rec, _ := p.Canonical()
	fmt.Fprintln(a.out, "Profile photo updated successfully!")
	if p.PhotoIsTentative() {
		fmt.Fprintf(a.out, "Photo: %s (local copy, server has not confirmed)\n", rec.Photo)
	} else {
		fmt.Fprintf(a.out, "Photo: %s\n", rec.Photo)
	}
	return nil
}

func (a *App) cartAdd(ctx context.Context, paths string) error {
	list := utils.SplitList(paths)
	if len(list) == 0 {
		return fmt.Errorf("%w: cart-add needs -file a.png,b.png", ErrUsage)
	}
	files := make([]domain.FileSelection, 0, len(list))
	for _, path := range list {
		f, err := ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	added, err := a.dash.Cart().AddBatch(ctx, files)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Images added successfully! (%d)\n", len(added))
	a.printCart()
	return nil
}

func (a *App) cartEdit(ctx context.Context, id, path string) error {
	if id == "" || path == "" {
		return fmt.Errorf("%w: cart-edit needs -id and -file", ErrUsage)
	}
	file, err := ReadFile(path)
	if err != nil {
		return err
	}
	item, err := a.dash.Cart().EditItem(ctx, id, file)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s -> %s\n", item.ID, item.Name)
	return nil
}

func (a *App) cartDelete(ctx context.Context, id string, yes bool) error {
	if id == "" {
		return fmt.Errorf("%w: cart-delete needs -id", ErrUsage)
	}
	removed, err := a.dash.Cart().DeleteItem(ctx, id, a.confirm(yes))
	if err != nil {
		return err
	}
	if removed {
		fmt.Fprintf(a.out, "Removed %s\n", id)
	} else {
		fmt.Fprintln(a.out, "Nothing removed.")
	}
	return nil
}

func (a *App) cartClear(ctx context.Context, yes bool) error {
	cleared, err := a.dash.Cart().ClearAll(ctx, a.confirm(yes))
	if err != nil {
		return err
	}
	if cleared {
		fmt.Fprintln(a.out, "Cart cleared.")
	} else {
		fmt.Fprintln(a.out, "Cart left as is.")
	}
	return nil
}

func (a *App) confirm(yes bool) domain.ConfirmFunc {
	return func(prompt string) bool {
		if yes {
			return true
		}
		fmt.Fprintf(a.out, "%s [y/N]: ", prompt)
		line, err := a.in.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}

// --- output ---

func (a *App) printProfile() {
	rec, ok := a.dash.Profile().Canonical()
	if !ok {
		fmt.Fprintln(a.out, "No profile loaded.")
		return
	}
	a.printRecord(rec)
}

func (a *App) printRecord(rec domain.ProfileRecord) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, field := range append(domain.ProfileFields, "photo") {
		value := rec.Field(field)
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(w, "%s\t%s\n", field, value)
	}
	w.Flush()
}

func (a *App) printCart() {
	items := a.dash.Cart().Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Cart is empty.")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY\tIMAGE")
	total := 0
	for _, item := range items {
		image := "not loaded"
		if a.dash.Cart().ImageHeld(item.ID) {
			image = "in memory"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", item.ID, item.Name, item.Price, item.Quantity, image)
		total += item.Price * item.Quantity
	}
	fmt.Fprintf(w, "\t\t%d\t\t\n", total)
	w.Flush()
}

// ReadFile loads a local file as a selection, guessing its MIME type.
func ReadFile(path string) (domain.FileSelection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.FileSelection{}, fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)
	return domain.FileSelection{
		Name:        name,
		ContentType: utils.DetectContentType(name, data),
		Data:        data,
	}, nil
}
