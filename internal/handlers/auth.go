package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"blogicum/internal/middleware"
	"blogicum/internal/render"
	"blogicum/internal/session"
	"blogicum/internal/store"
)

// totpIssuer is the issuer name shown in authenticator apps.
const totpIssuer = "Blogicum"

// Auth groups all authentication-related HTTP handlers: registration,
// login, logout and the optional TOTP second factor.
type Auth struct {
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
	}
}

// RegistrationPage renders the signup form.
func (a *Auth) RegistrationPage(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "registration", &render.PageData{
		Title: "Sign up",
		Data:  map[string]any{},
	})
}

// RegistrationSubmit validates the signup form and creates the account.
// New users land on the login page.
func (a *Auth) RegistrationSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	firstName := strings.TrimSpace(r.FormValue("first_name"))
	lastName := strings.TrimSpace(r.FormValue("last_name"))
	password := r.FormValue("password")
	password2 := r.FormValue("password2")

	fail := func(msg string) {
		a.renderer.Page(w, r, "registration", &render.PageData{
			Title: "Sign up",
			Data: map[string]any{
				"Errors":    []string{msg},
				"Username":  username,
				"Email":     email,
				"FirstName": firstName,
				"LastName":  lastName,
			},
		})
	}

	if msg := validateUsername(username); msg != "" {
		fail(msg)
		return
	}
	if msg := validateEmail(email); msg != "" {
		fail(msg)
		return
	}
	if msg := validatePassword(password, password2); msg != "" {
		fail(msg)
		return
	}

	if existing, err := a.userStore.FindByUsername(username); err != nil {
		slog.Error("username lookup failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	} else if existing != nil {
		fail("That username is taken.")
		return
	}
	if existing, err := a.userStore.FindByEmail(email); err != nil {
		slog.Error("email lookup failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	} else if existing != nil {
		fail("An account with that email already exists.")
		return
	}

	user, err := a.userStore.Create(username, email, password, firstName, lastName)
	if err != nil {
		slog.Error("create user failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}

	slog.Info("user registered", "username", user.Username)
	http.Redirect(w, r, "/auth/login/", http.StatusSeeOther)
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Log in",
		Data:  map[string]any{},
	})
}

// LoginSubmit processes the login form. Accounts with TOTP enabled get a
// pending session and must verify a code before the login completes.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := a.userStore.FindByUsername(username)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}
	if user == nil || !a.userStore.CheckPassword(user, password) {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Log in",
			Data:  map[string]any{"Errors": []string{"Invalid username or password."}},
		})
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Username:    user.Username,
		IsSuperuser: user.IsSuperuser,
		TwoFADone:   !user.TOTPEnabled,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}

	if user.TOTPEnabled {
		http.Redirect(w, r, "/auth/2fa/verify/", http.StatusSeeOther)
		return
	}
	slog.Info("user logged in", "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session and returns to the index.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// TwoFASetupPage generates a TOTP secret and displays the QR code. The
// secret is saved immediately but 2FA only takes effect after the first
// code is verified.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Username,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}

	if err := a.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}

	a.renderTwoFASetup(w, r, key.URL(), key.Secret(), nil)
}

// TwoFASetupSubmit verifies the first code against the stored secret and
// enables 2FA on the account.
func (a *Auth) TwoFASetupSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa setup failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}
	if user.TOTPSecret == nil {
		http.Redirect(w, r, "/auth/2fa/setup/", http.StatusSeeOther)
		return
	}

	if !totp.Validate(r.FormValue("code"), *user.TOTPSecret) {
		url := otpauthURL(user.Username, *user.TOTPSecret)
		a.renderTwoFASetup(w, r, url, *user.TOTPSecret, []string{"Invalid code. Please try again."})
		return
	}

	if err := a.userStore.EnableTOTP(user.ID); err != nil {
		slog.Error("enable totp failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}

	slog.Info("2fa enabled", "username", user.Username)
	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusSeeOther)
}

// TwoFAVerifyPage renders the code entry form shown during login.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "2fa_verify", &render.PageData{
		Title: "Two-factor authentication",
		Data:  map[string]any{},
	})
}

// TwoFAVerifySubmit validates the TOTP code and completes the login.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}
	if user.TOTPSecret == nil {
		http.Redirect(w, r, "/auth/login/", http.StatusSeeOther)
		return
	}

	if !totp.Validate(r.FormValue("code"), *user.TOTPSecret) {
		a.renderer.Page(w, r, "2fa_verify", &render.PageData{
			Title: "Two-factor authentication",
			Data:  map[string]any{"Errors": []string{"Invalid code. Please try again."}},
		})
		return
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}

	slog.Info("user logged in", "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *Auth) renderTwoFASetup(w http.ResponseWriter, r *http.Request, otpURL, secret string, errs []string) {
	qrPNG, err := qrcode.Encode(otpURL, qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		a.renderer.ServerError(w, r)
		return
	}

	a.renderer.Page(w, r, "2fa_setup", &render.PageData{
		Title: "Set up two-factor authentication",
		Data: map[string]any{
			"QRCode": "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrPNG),
			"Secret": secret,
			"Errors": errs,
		},
	})
}

// otpauthURL rebuilds the provisioning URL for an existing secret so the
// setup page can re-render the QR code after a failed attempt.
func otpauthURL(account, secret string) string {
	return "otpauth://totp/" + totpIssuer + ":" + account + "?secret=" + secret + "&issuer=" + totpIssuer
}
