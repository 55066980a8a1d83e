package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogDomain "github.com/ovenside/bakery-admin/internal/catalog/domain"
	ordersDomain "github.com/ovenside/bakery-admin/internal/orders/domain"

	"github.com/ovenside/bakery-admin/internal/console/editor"
	"github.com/ovenside/bakery-admin/internal/console/forms"
	"github.com/ovenside/bakery-admin/internal/console/orders"
	"github.com/ovenside/bakery-admin/internal/console/session"
	"github.com/ovenside/bakery-admin/internal/console/state"
	"github.com/ovenside/bakery-admin/internal/console/validation"
	"github.com/ovenside/bakery-admin/internal/console/view"
	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

// StorefrontAPI is the slice of the storefront client the web handlers call
// directly; the editor and modal controllers hold their own slices.
type StorefrontAPI interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password string) error
	DeleteProduct(ctx context.Context, id int64) error
	ListOrders(ctx context.Context) ([]ordersDomain.OrderSummary, error)
}

type Handlers struct {
	api      StorefrontAPI
	store    *state.TableStore
	sync     *state.Synchronizer
	editor   *editor.Controller
	modals   *forms.Controller
	sessions *session.Manager
	orders   *orders.Cache
	tmpl     *template.Template
}

func NewHandlers(
	api StorefrontAPI,
	store *state.TableStore,
	sync *state.Synchronizer,
	ed *editor.Controller,
	modals *forms.Controller,
	sessions *session.Manager,
	orderCache *orders.Cache,
) (*Handlers, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handlers{
		api:      api,
		store:    store,
		sync:     sync,
		editor:   ed,
		modals:   modals,
		sessions: sessions,
		orders:   orderCache,
		tmpl:     tmpl,
	}, nil
}

func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Root)
	router.GET("/login", h.LoginPage)
	router.POST("/login", h.Login)
	router.GET("/register", h.RegisterPage)
	router.POST("/register", h.Register)
	router.POST("/logout", h.Logout)

	authed := router.Group("/", session.RequireSession(h.sessions, "/login"))
	{
		authed.GET("/products", h.ProductsPage)
		authed.POST("/products/reload", h.ReloadProducts)

		authed.POST("/rows/:id/edit/:field", h.BeginEdit)
		authed.POST("/rows/:id/commit/:field", h.CommitEdit)
		authed.POST("/rows/:id/cancel-edit/:field", h.CancelEdit)
		authed.POST("/rows/:id/delete", h.DeleteRow)

		authed.POST("/modal/new", h.OpenCreateModal)
		authed.POST("/modal/update/:id", h.OpenUpdateModal)
		authed.POST("/modal/submit", h.SubmitModal)
		authed.POST("/modal/cancel", h.CancelModal)

		authed.GET("/orders", h.OrdersPage)
		authed.POST("/orders/:index/status", h.SetOrderStatus)
	}
}

// --- auth pages ---

func (h *Handlers) Root(c *gin.Context) {
	if cookie, err := c.Cookie(session.CookieName); err == nil {
		if _, err := h.sessions.Verify(cookie); err == nil {
			c.Redirect(http.StatusSeeOther, "/products")
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handlers) LoginPage(c *gin.Context) {
	h.render(c, "login.html", gin.H{"Flash": c.Query("err"), "Notice": c.Query("msg")})
}

func (h *Handlers) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if err := h.api.Login(c.Request.Context(), email, password); err != nil {
		redirectWithError(c, "/login", loginFailureMessage(err))
		return
	}

	token, err := h.sessions.Issue(email)
	if err != nil {
		logger.Error("Login: failed to issue session", err)
		redirectWithError(c, "/login", "Login failed. Please try again.")
		return
	}
	h.sessions.SetCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/products")
}

func (h *Handlers) RegisterPage(c *gin.Context) {
	h.render(c, "register.html", gin.H{"Flash": c.Query("err")})
}

func (h *Handlers) Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if err := h.api.Register(c.Request.Context(), name, email, password); err != nil {
		redirectWithError(c, "/register", storefrontMessage(err, "Registration failed. Please try again."))
		return
	}
	c.Redirect(http.StatusSeeOther, "/login?msg="+url.QueryEscape("Registration successful! Please login."))
}

func (h *Handlers) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

// --- product table ---

func (h *Handlers) ProductsPage(c *gin.Context) {
	// Lazy initial load: the first visit resolves the loading placeholder.
	if h.store.Phase() == state.PhaseLoading {
		if err := h.sync.Load(c.Request.Context()); err != nil {
			logger.Error("ProductsPage: initial load failed", err)
		}
	}
	h.renderProducts(c)
}

func (h *Handlers) ReloadProducts(c *gin.Context) {
	if err := h.sync.Load(c.Request.Context()); err != nil {
		redirectWithError(c, "/products", view.PlaceholderFailed)
		return
	}
	c.Redirect(http.StatusSeeOther, "/products")
}

func (h *Handlers) BeginEdit(c *gin.Context) {
	id, field, ok := h.cellParams(c)
	if !ok {
		return
	}
	if _, err := h.editor.Begin(id, field); err != nil {
		redirectWithError(c, "/products", err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/products")
}

func (h *Handlers) CommitEdit(c *gin.Context) {
	id, field, ok := h.cellParams(c)
	if !ok {
		return
	}

	_, err := h.editor.Commit(c.Request.Context(), id, field, c.PostForm("value"))
	if err != nil {
		var ve *validation.ValidationError
		if errors.As(err, &ve) {
			// Cell stays in Editing; the page re-renders the input.
			redirectWithError(c, "/products", ve.Reason)
			return
		}
		redirectWithError(c, "/products", "Failed to update product. Please try again.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/products")
}

func (h *Handlers) CancelEdit(c *gin.Context) {
	id, field, ok := h.cellParams(c)
	if !ok {
		return
	}
	h.editor.Cancel(id, field)
	c.Redirect(http.StatusSeeOther, "/products")
}

func (h *Handlers) DeleteRow(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	// The row leaves the table only after the storefront confirms.
	if err := h.api.DeleteProduct(c.Request.Context(), id); err != nil {
		logger.Error("DeleteRow: delete failed", err)
		redirectWithError(c, "/products", "Failed to delete product. Please try again.")
		return
	}
	if err := h.store.Remove(id); err != nil {
		redirectWithError(c, "/products", err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/products")
}

// --- modal ---

func (h *Handlers) OpenCreateModal(c *gin.Context) {
	if _, err := h.modals.OpenCreate(); err != nil {
		redirectWithError(c, "/products", err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/products")
}

func (h *Handlers) OpenUpdateModal(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if _, err := h.modals.OpenUpdate(id); err != nil {
		redirectWithError(c, "/products", err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/products")
}

func (h *Handlers) SubmitModal(c *gin.Context) {
	values := forms.Values{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		ImageURL:    c.PostForm("image_url"),
		Category:    c.PostForm("category"),
		Quantity:    c.PostForm("quantity"),
		Status:      c.PostForm("status"),
	}

	// On failure the modal stays open and records its error, so the page
	// re-render reflects the outcome either way.
	if _, err := h.modals.Submit(c.Request.Context(), values); err != nil {
		logger.Warn("SubmitModal: submit rejected: %v", err)
	}
	c.Redirect(http.StatusSeeOther, "/products")
}

func (h *Handlers) CancelModal(c *gin.Context) {
	h.modals.Cancel()
	c.Redirect(http.StatusSeeOther, "/products")
}

// --- orders ---

func (h *Handlers) OrdersPage(c *gin.Context) {
	if !h.orders.Loaded() {
		list, err := h.api.ListOrders(c.Request.Context())
		if err != nil {
			logger.Error("OrdersPage: list failed", err)
			h.render(c, "orders.html", gin.H{
				"Flash":  "Error loading orders. Please try again.",
				"Email":  h.sessionEmail(c),
				"Orders": nil,
			})
			return
		}
		h.orders.Replace(list)
	}

	h.render(c, "orders.html", gin.H{
		"Flash":  c.Query("err"),
		"Email":  h.sessionEmail(c),
		"Orders": h.orders.List(),
	})
}

func (h *Handlers) SetOrderStatus(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		redirectWithError(c, "/orders", "Invalid order position")
		return
	}
	status, err := validation.Required("status", c.PostForm("status"))
	if err != nil {
		redirectWithError(c, "/orders", err.Error())
		return
	}
	if err := h.orders.SetStatus(index, status); err != nil {
		redirectWithError(c, "/orders", err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/orders")
}

// --- helpers ---

func (h *Handlers) renderProducts(c *gin.Context) {
	products, phase := h.store.Snapshot()
	table := view.BuildTable(products, phase)

	modal, modalOpen := h.modals.Active()
	h.render(c, "products.html", gin.H{
		"Flash":      c.Query("err"),
		"Email":      h.sessionEmail(c),
		"Table":      table,
		"ShowRetry":  phase == state.PhaseFailed,
		"Rows":       h.buildRowViews(table.Rows),
		"Modal":      modal,
		"ModalOpen":  modalOpen,
		"Categories": catalogDomain.Categories,
	})
}

// rowView pairs each display region with its inline-edit state so the
// template stays free of logic.
type rowView struct {
	view.Row
	Cells []cellView
}

type cellView struct {
	Field   string
	Display string
	Editing bool
	Prefill string
	Kind    string
	Step    string
}

func (h *Handlers) buildRowViews(rows []view.Row) []rowView {
	fields := []struct {
		field   editor.Field
		display func(view.Row) string
	}{
		{editor.FieldName, func(r view.Row) string { return r.Name }},
		{editor.FieldCategory, func(r view.Row) string { return r.Category }},
		{editor.FieldPrice, func(r view.Row) string { return r.PriceDisplay }},
		{editor.FieldQuantity, func(r view.Row) string { return r.QuantityDisplay }},
	}

	out := make([]rowView, 0, len(rows))
	for _, r := range rows {
		rv := rowView{Row: r}
		for _, f := range fields {
			cv := cellView{Field: string(f.field), Display: f.display(r)}
			if s, editing := h.editor.Editing(r.ID, f.field); editing {
				cv.Editing = true
				cv.Prefill = s.Prefill
				cv.Kind = s.InputKind
				cv.Step = s.InputStep
			}
			rv.Cells = append(rv.Cells, cv)
		}
		out = append(out, rv)
	}
	return out
}

func (h *Handlers) cellParams(c *gin.Context) (int64, editor.Field, bool) {
	id, ok := h.idParam(c)
	if !ok {
		return 0, "", false
	}
	field := editor.Field(c.Param("field"))
	switch field {
	case editor.FieldName, editor.FieldCategory, editor.FieldPrice, editor.FieldQuantity:
		return id, field, true
	}
	redirectWithError(c, "/products", "This field cannot be edited inline")
	return 0, "", false
}

func (h *Handlers) idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		redirectWithError(c, "/products", "Invalid product id")
		return 0, false
	}
	return id, true
}

func (h *Handlers) sessionEmail(c *gin.Context) string {
	if v, ok := c.Get("session"); ok {
		if s, ok := v.(*session.Session); ok {
			return s.Email
		}
	}
	return ""
}

func (h *Handlers) render(c *gin.Context, name string, data gin.H) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(c.Writer, name, data); err != nil {
		logger.Error("render: template execution failed", err)
	}
}

func redirectWithError(c *gin.Context, path, msg string) {
	c.Redirect(http.StatusSeeOther, path+"?err="+url.QueryEscape(msg))
}

func loginFailureMessage(err error) string {
	return storefrontMessage(err, "Login failed. Please check your credentials.")
}

// storefrontMessage prefers the server's own error text, falling back to a
// generic message for transport failures.
func storefrontMessage(err error, fallback string) string {
	type messaged interface{ StorefrontMessage() string }
	var m messaged
	if errors.As(err, &m) && m.StorefrontMessage() != "" {
		return m.StorefrontMessage()
	}
	return fallback
}
