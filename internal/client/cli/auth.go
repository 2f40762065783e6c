package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/evently/internal/client/models"
	"github.com/dmitrijs2005/evently/internal/client/services"
	"github.com/dustin/go-humanize"
)

// getSimpleText, getPassword and confirm are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

// Register prompts for the account fields and creates the account. The new
// token is stored so the user is logged in right away.
func (a *App) Register(ctx context.Context, _ []string) error {
	if a.isLoggedIn(ctx) {
		a.say("Already logged in. Use 'logout' first.")
		return nil
	}

	var in models.UserRegistration
	var err error

	if in.Name, err = getSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if in.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if in.Phone, err = getSimpleText(a.reader, "Phone number", a.out); err != nil {
		return err
	}
	if in.Password, err = getPassword(a.reader, a.out); err != nil {
		return err
	}

	u, err := a.authService.Register(ctx, in)
	if err != nil {
		a.log.Debug(ctx, "register failed", "err", err)
		a.reportFieldErrors(err)
		a.say(services.RegisterErrorMessage(err))
		return err
	}

	a.say("Registration successful!")
	a.notify("Welcome, %s.", u.Name)
	return nil
}

// Login prompts for credentials. The remembered email, if any, is offered as
// the default.
func (a *App) Login(ctx context.Context, _ []string) error {
	remembered := a.authService.RememberedEmail(ctx)

	email, err := GetWithDefault(a.reader, "Email", remembered, a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	remember, err := confirm(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Login(ctx, models.LoginInput{Email: email, Password: password}, remember)
	if err != nil {
		a.log.Debug(ctx, "login failed", "err", err)
		a.say(services.LoginErrorMessage(err))
		return err
	}

	a.say("Login successful!")
	if u.IsAdmin {
		a.notify("Welcome, %s. You are signed in as an administrator.", u.Name)
	} else {
		a.notify("Welcome, %s.", u.Name)
	}
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "err", err)
		a.say("Logout failed")
		return err
	}
	a.say("Logged out")
	return nil
}

// WhoAmI prints the identity carried by the stored token.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	id, ok := a.session.Decode(ctx)
	if !ok {
		a.say("Not logged in")
		return nil
	}

	role := "user"
	if id.IsAdmin {
		role = "administrator"
	}
	a.notify("%s <%s> (%s)", id.Name, id.Email, role)

	now := a.clock.Now()
	if id.ExpiresAt.After(now) {
		a.notify("Session expires %s", humanize.RelTime(id.ExpiresAt, now, "ago", "from now"))
	} else {
		a.notify("Session expired %s. Please log in again.", humanize.RelTime(id.ExpiresAt, now, "ago", "from now"))
	}
	return nil
}

// reportFieldErrors prints one line per invalid field.
func (a *App) reportFieldErrors(err error) {
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs {
		fmt.Fprintf(a.out, "  %s: %s\n", fe.Field, fe.Message)
	}
}
