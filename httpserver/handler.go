package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/refhub/order-management-backend/interfaces"
	"github.com/refhub/order-management-backend/metrics"
	"github.com/refhub/order-management-backend/order"
	"github.com/refhub/order-management-backend/session"
)

// maxBodySize is the maximum allowed request body size (64KB). The forms
// this service accepts are tiny.
const maxBodySize = 64 * 1024

// Form field names used by the browser-facing forms beyond the credential
// fields defined in the api package.
const (
	formItemName = "itemName"
	formPrice    = "price"
	formQuantity = "quantity"
	formStatus   = "newStatus"
)

// Handler processes the browser-facing requests: credential submission,
// the order-entry draft workflow, and the admin dashboard. Authentication
// and persistence are delegated to the external collaborators.
type Handler struct {
	auth     interfaces.AuthProvider
	archive  interfaces.OrderArchive
	sessions *session.Manager
	drafts   *draftRegistry
	log      *slog.Logger
}

// NewHandler creates a handler wired to the given collaborators.
func NewHandler(auth interfaces.AuthProvider, archive interfaces.OrderArchive, sessions *session.Manager, log *slog.Logger) *Handler {
	return &Handler{
		auth:     auth,
		archive:  archive,
		sessions: sessions,
		drafts:   newDraftRegistry(),
		log:      log,
	}
}

// parseForm caps the body size and parses the form.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	return r.ParseForm()
}

// HandleLoginPage renders the entry view. An already authenticated user is
// sent straight to the order-entry screen.
func (h *Handler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.User(r); ok {
		http.Redirect(w, r, "/order-entry", http.StatusFound)
		return
	}
	render(w, h.log, http.StatusOK, "login.html", loginView{})
}

// HandleLogin accepts form-encoded credentials, forwards them to the auth
// gateway, and on success stores the returned user identifier in the
// session and redirects to the protected order-entry view. On failure the
// login form is re-rendered with the gateway's message and status code;
// the session is left untouched.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		render(w, h.log, http.StatusBadRequest, "login.html", loginView{Error: "Malformed form submission"})
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		render(w, h.log, http.StatusBadRequest, "login.html", loginView{Error: "Email and password are required"})
		return
	}

	user, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		gw := interfaces.AsGatewayError(err)
		outcome := "error"
		var typed *interfaces.GatewayError
		if errors.As(err, &typed) {
			outcome = "rejected"
		}
		metrics.LoginAttempts.WithLabelValues(outcome).Inc()
		h.log.Info("Login failed", "email", email, "status", gw.StatusCode)
		render(w, h.log, gw.StatusCode, "login.html", loginView{Error: gw.Detail})
		return
	}

	if err := h.sessions.SetUser(w, r, user); err != nil {
		h.log.Error("Failed to write session cookie", "err", err)
		render(w, h.log, http.StatusInternalServerError, "login.html", loginView{Error: "An error occurred"})
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	h.log.Info("User logged in", "user", user)
	http.Redirect(w, r, "/order-entry", http.StatusFound)
}

// HandleSignupPage renders the signup form.
func (h *Handler) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.log, http.StatusOK, "signup.html", signupView{})
}

// HandleSignup proxies the registration to the auth gateway. On success
// the user is sent to the login view; failures re-render the form with the
// gateway's message.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		render(w, h.log, http.StatusBadRequest, "signup.html", signupView{Error: "Malformed form submission"})
		return
	}

	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if username == "" || email == "" || password == "" {
		render(w, h.log, http.StatusBadRequest, "signup.html", signupView{Error: "Username, email and password are required"})
		return
	}

	if err := h.auth.Signup(r.Context(), username, email, password); err != nil {
		gw := interfaces.AsGatewayError(err)
		render(w, h.log, gw.StatusCode, "signup.html", signupView{Error: gw.Detail})
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleLogout clears the session, discards the user's draft, and returns
// to the entry view.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if user, ok := h.sessions.User(r); ok {
		h.drafts.drop(user)
	}
	if err := h.sessions.Clear(w, r); err != nil {
		h.log.Error("Failed to clear session", "err", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleOrderEntry renders the order-entry screen: the staging form, the
// draft's line items, and, when toggled, the preview with the computed
// total.
func (h *Handler) HandleOrderEntry(w http.ResponseWriter, r *http.Request) {
	user, _ := session.UserFromContext(r.Context())
	draft := h.drafts.get(user)

	view := newOrderEntryView(user, draft)
	if id := r.URL.Query().Get("submitted"); id != "" {
		view.Notice = "Order #" + id + " submitted"
	}
	render(w, h.log, http.StatusOK, "order_entry.html", view)
}

// HandleAddItem stages the submitted fields and attempts to add the item
// to the draft. A rejected item re-renders the form with the staged values
// and an inline validation message; the draft is unchanged.
func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	user, _ := session.UserFromContext(r.Context())
	draft := h.drafts.get(user)

	if err := h.parseForm(w, r); err != nil {
		view := newOrderEntryView(user, draft)
		view.Error = "Malformed form submission"
		render(w, h.log, http.StatusBadRequest, "order_entry.html", view)
		return
	}

	draft.SetStagingField(order.FieldName, r.PostFormValue(formItemName))
	draft.SetStagingField(order.FieldPrice, r.PostFormValue(formPrice))
	draft.SetStagingField(order.FieldQuantity, r.PostFormValue(formQuantity))

	if _, ok := draft.AddItem(); !ok {
		view := newOrderEntryView(user, draft)
		view.Error = "An item needs a name, a positive price, and a quantity of at least 1"
		render(w, h.log, http.StatusBadRequest, "order_entry.html", view)
		return
	}

	http.Redirect(w, r, "/order-entry", http.StatusFound)
}

// HandleRemoveItem deletes a line item from the draft. Removing an unknown
// identifier is a no-op.
func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	user, _ := session.UserFromContext(r.Context())
	draft := h.drafts.get(user)

	draft.RemoveItem(interfaces.ItemID(chi.URLParam(r, "item_id")))
	http.Redirect(w, r, "/order-entry", http.StatusFound)
}

// HandleTogglePreview flips the preview flag; the draft is unaffected.
func (h *Handler) HandleTogglePreview(w http.ResponseWriter, r *http.Request) {
	user, _ := session.UserFromContext(r.Context())
	h.drafts.get(user).TogglePreview()
	http.Redirect(w, r, "/order-entry", http.StatusFound)
}

// HandleSubmitOrder hands the draft to the order archive. On confirmation
// the draft is discarded and the screen shows the confirmed order id; on
// failure the screen re-renders with the archive's message and the draft
// intact.
func (h *Handler) HandleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := session.UserFromContext(r.Context())
	draft := h.drafts.get(user)

	if draft.Len() == 0 {
		view := newOrderEntryView(user, draft)
		view.Error = "Cannot submit an empty order"
		render(w, h.log, http.StatusBadRequest, "order_entry.html", view)
		return
	}

	conf, err := h.archive.SubmitOrder(r.Context(), user, draft.Items(), draft.Total())
	if err != nil {
		gw := interfaces.AsGatewayError(err)
		h.log.Error("Order submission failed", "user", user, "status", gw.StatusCode, "err", err)
		view := newOrderEntryView(user, draft)
		view.Error = gw.Detail
		render(w, h.log, gw.StatusCode, "order_entry.html", view)
		return
	}

	metrics.OrdersSubmitted.Inc()
	h.log.Info("Order submitted", "user", user, "orderID", conf.OrderID)
	draft.Reset()
	http.Redirect(w, r, "/order-entry?submitted="+strconv.FormatInt(conf.OrderID, 10), http.StatusFound)
}

// HandleAdminDashboard lists archived orders with the date and staff-name
// filters applied server-side. Empty filters match everything; source
// order is preserved.
func (h *Handler) HandleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := session.UserFromContext(r.Context())

	filterDate := r.URL.Query().Get("filterDate")
	filterStaff := r.URL.Query().Get("filterStaff")

	orders, err := h.archive.ListOrders(r.Context())
	if err != nil {
		gw := interfaces.AsGatewayError(err)
		h.log.Error("Order listing failed", "status", gw.StatusCode, "err", err)
		view := newAdminView(user, nil, filterDate, filterStaff)
		view.Error = gw.Detail
		render(w, h.log, gw.StatusCode, "admin_dashboard.html", view)
		return
	}

	filtered := order.FilterOrders(orders, filterDate, filterStaff)
	render(w, h.log, http.StatusOK, "admin_dashboard.html", newAdminView(user, filtered, filterDate, filterStaff))
}

// HandleUpdateStatus dispatches a status-change intent to the archive. Any
// of the three status values is accepted from any prior value.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, _ := session.UserFromContext(r.Context())

	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	if err := h.parseForm(w, r); err != nil {
		http.Error(w, "malformed form submission", http.StatusBadRequest)
		return
	}

	status, err := interfaces.ParseOrderStatus(r.PostFormValue(formStatus))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.archive.UpdateStatus(r.Context(), orderID, status); err != nil {
		gw := interfaces.AsGatewayError(err)
		h.log.Error("Status update failed", "orderID", orderID, "status", status, "err", err)
		view := newAdminView(user, nil, "", "")
		view.Error = gw.Detail
		render(w, h.log, gw.StatusCode, "admin_dashboard.html", view)
		return
	}

	metrics.StatusUpdates.WithLabelValues(status.String()).Inc()
	h.log.Info("Order status updated", "orderID", orderID, "status", status)
	http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
}

// HandleGenerateReport asks the archive for a report over all orders and
// streams the opaque artifact back as a download.
func (h *Handler) HandleGenerateReport(w http.ResponseWriter, r *http.Request) {
	user, _ := session.UserFromContext(r.Context())

	artifact, err := h.archive.GenerateReport(r.Context())
	if err != nil {
		gw := interfaces.AsGatewayError(err)
		h.log.Error("Report generation failed", "err", err)
		view := newAdminView(user, nil, "", "")
		view.Error = gw.Detail
		render(w, h.log, gw.StatusCode, "admin_dashboard.html", view)
		return
	}

	metrics.ReportRequests.Inc()
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="orders-report"`)
	w.WriteHeader(http.StatusOK)
	w.Write(artifact)
}
