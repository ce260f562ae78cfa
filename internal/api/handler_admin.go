package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"institute-site-backend/internal/auth"
	"institute-site-backend/internal/mw"
	"institute-site-backend/internal/session"
)

const (
	dashboardPath       = "/admin/dashboard"
	invalidLoginMessage = "Invalid username or password"
	missingLoginMessage = "Username and password are required"
)

// LoginPage renders the login form, or sends a logged-in admin on to the
// dashboard.
func (h *Handler) LoginPage(c *gin.Context) {
	if session.IsAdmin(mw.CurrentSession(c)) {
		c.Redirect(http.StatusSeeOther, dashboardPath)
		return
	}
	h.renderLogin(c, http.StatusOK, "", "")
}

// Login checks the submitted credentials and starts an admin session.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := bindForm(c, &form); err != nil {
		h.renderLogin(c, http.StatusBadRequest, form.Username, missingLoginMessage)
		return
	}

	admin, err := h.verifier.VerifyAdmin(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		mw.Logger(c).Warn().Str("username", form.Username).Msg("admin login rejected")
		h.renderLogin(c, http.StatusUnauthorized, form.Username, invalidLoginMessage)
		return
	}
	if err != nil {
		h.fail(c, err, "failed to verify admin")
		return
	}

	s := mw.CurrentSession(c)
	session.Login(s, admin.Username)
	if err := h.sessions.Save(c.Request, c.Writer, s); err != nil {
		h.fail(c, err, "failed to save session")
		return
	}
	mw.Logger(c).Info().Str("username", admin.Username).Msg("admin logged in")
	c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (h *Handler) renderLogin(c *gin.Context, status int, username, msg string) {
	h.render(c, status, "admin_login.html", "Admin login", gin.H{
		"Username": username,
		"Error":    msg,
	})
}

// Logout ends the admin session and returns to the home page.
func (h *Handler) Logout(c *gin.Context) {
	s := mw.CurrentSession(c)
	session.Logout(s)
	if err := h.sessions.Save(c.Request, c.Writer, s); err != nil {
		h.fail(c, err, "failed to save session")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Dashboard renders the admin landing page.
func (h *Handler) Dashboard(c *gin.Context) {
	h.render(c, http.StatusOK, "admin_dashboard.html", "Dashboard", nil)
}

// ManageFaculty renders the faculty form and the current list.
func (h *Handler) ManageFaculty(c *gin.Context) {
	h.renderManageFaculty(c, http.StatusOK, &facultyForm{}, "")
}

// AddFaculty inserts one faculty member.
func (h *Handler) AddFaculty(c *gin.Context) {
	form := &facultyForm{}
	if err := bindForm(c, form); err != nil {
		h.renderManageFaculty(c, http.StatusBadRequest, form, err.Error())
		return
	}
	if err := h.store.InsertFaculty(c.Request.Context(), form.model()); err != nil {
		h.fail(c, err, "failed to insert faculty")
		return
	}
	mw.Invalidate(h.pages, "/faculty")
	c.Redirect(http.StatusSeeOther, "/admin/faculty")
}

func (h *Handler) renderManageFaculty(c *gin.Context, status int, form *facultyForm, msg string) {
	faculty, err := h.store.ListFaculty(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to list faculty")
		return
	}
	h.render(c, status, "admin_faculty.html", "Manage faculty", gin.H{
		"Faculty": faculty,
		"Form":    form,
		"Error":   msg,
	})
}

// ManageEvents renders the event form and the current list.
func (h *Handler) ManageEvents(c *gin.Context) {
	h.renderManageEvents(c, http.StatusOK, &eventForm{}, "")
}

// AddEvent inserts one event.
func (h *Handler) AddEvent(c *gin.Context) {
	form := &eventForm{}
	if err := bindForm(c, form); err != nil {
		h.renderManageEvents(c, http.StatusBadRequest, form, err.Error())
		return
	}
	if err := h.store.InsertEvent(c.Request.Context(), form.model()); err != nil {
		h.fail(c, err, "failed to insert event")
		return
	}
	mw.Invalidate(h.pages, "/events")
	c.Redirect(http.StatusSeeOther, "/admin/events")
}

func (h *Handler) renderManageEvents(c *gin.Context, status int, form *eventForm, msg string) {
	events, err := h.store.ListEvents(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to list events")
		return
	}
	h.render(c, status, "admin_events.html", "Manage events", gin.H{
		"Events": events,
		"Form":   form,
		"Error":  msg,
	})
}

// ManageArticles renders the article form and the current list.
func (h *Handler) ManageArticles(c *gin.Context) {
	h.renderManageArticles(c, http.StatusOK, &articleForm{}, "")
}

// AddArticle inserts one article.
func (h *Handler) AddArticle(c *gin.Context) {
	form := &articleForm{}
	if err := bindForm(c, form); err != nil {
		h.renderManageArticles(c, http.StatusBadRequest, form, err.Error())
		return
	}
	if err := h.store.InsertArticle(c.Request.Context(), form.model()); err != nil {
		h.fail(c, err, "failed to insert article")
		return
	}
	mw.Invalidate(h.pages, "/articles")
	c.Redirect(http.StatusSeeOther, "/admin/articles")
}

func (h *Handler) renderManageArticles(c *gin.Context, status int, form *articleForm, msg string) {
	articles, err := h.store.ListArticles(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to list articles")
		return
	}
	h.render(c, status, "admin_articles.html", "Manage articles", gin.H{
		"Articles": articles,
		"Form":     form,
		"Error":    msg,
	})
}
