package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/refhub/order-management-backend/api/archive"
	"github.com/refhub/order-management-backend/api/authgw"
	"github.com/refhub/order-management-backend/interfaces"
	"github.com/refhub/order-management-backend/session"
)

func newTestRouter(t *testing.T, auth interfaces.AuthProvider, orderArchive interfaces.OrderArchive) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewManager([]byte("test-secret-0123456789abcdef0123"), false, "/", logger)
	handler := NewHandler(auth, orderArchive, sessions, logger)

	srv, err := New(&HTTPServerConfig{
		ListenAddr: "127.0.0.1:0",
		Log:        logger,
	}, handler)
	require.NoError(t, err)

	return srv.getRouter()
}

// login performs a credential submission against the router and returns
// the session cookies from the redirect response.
func login(t *testing.T, router http.Handler, email, password string) []*http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/order-entry", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func get(router http.Handler, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(router http.Handler, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccessSetsSessionAndRedirects(t *testing.T) {
	auth := new(authgw.MockAuthProvider)
	auth.On("Login", mock.Anything, "staff@refhub.com", "hunter2").
		Return(interfaces.UserID("staff@refhub.com"), nil)

	router := newTestRouter(t, auth, archive.NewStatic())
	cookies := login(t, router, "staff@refhub.com", "hunter2")

	// The session, read back through the protected view, yields the same
	// identifier the gateway returned.
	w := get(router, "/order-entry", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome, staff@refhub.com")

	auth.AssertExpectations(t)
}

func TestLoginRejectedRendersDetailAndLeavesSessionUnset(t *testing.T) {
	auth := new(authgw.MockAuthProvider)
	auth.On("Login", mock.Anything, "staff@refhub.com", "wrong").
		Return(interfaces.UserID(""), &interfaces.GatewayError{StatusCode: http.StatusUnauthorized, Detail: "Invalid credentials"})

	router := newTestRouter(t, auth, archive.NewStatic())

	form := url.Values{}
	form.Set("email", "staff@refhub.com")
	form.Set("password", "wrong")
	w := postForm(router, "/login", form, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, w.Result().Cookies(), "failed login must not mutate the session")
}

func TestLoginMissingFieldsIsValidationError(t *testing.T) {
	auth := new(authgw.MockAuthProvider)
	router := newTestRouter(t, auth, archive.NewStatic())

	form := url.Values{}
	form.Set("email", "staff@refhub.com")
	w := postForm(router, "/login", form, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestProtectedViewRedirectsWithoutSession(t *testing.T) {
	router := newTestRouter(t, new(authgw.MockAuthProvider), archive.NewStatic())

	for _, path := range []string{"/order-entry", "/admin/dashboard"} {
		w := get(router, path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/", w.Header().Get("Location"), path)
		assert.NotContains(t, w.Body.String(), "<table>", path)
	}
}

func TestSignupSuccessRedirectsToLogin(t *testing.T) {
	auth := new(authgw.MockAuthProvider)
	auth.On("Signup", mock.Anything, "newstaff", "new@refhub.com", "hunter2").Return(nil)

	router := newTestRouter(t, auth, archive.NewStatic())

	form := url.Values{}
	form.Set("username", "newstaff")
	form.Set("email", "new@refhub.com")
	form.Set("password", "hunter2")
	w := postForm(router, "/signup", form, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	auth.AssertExpectations(t)
}

func authedCookies(t *testing.T, router http.Handler) []*http.Cookie {
	t.Helper()
	return login(t, router, "staff@refhub.com", "hunter2")
}

func newAuthedRouter(t *testing.T, orderArchive interfaces.OrderArchive) (http.Handler, []*http.Cookie) {
	t.Helper()
	auth := new(authgw.MockAuthProvider)
	auth.On("Login", mock.Anything, "staff@refhub.com", "hunter2").
		Return(interfaces.UserID("staff@refhub.com"), nil)
	router := newTestRouter(t, auth, orderArchive)
	return router, authedCookies(t, router)
}

func TestAddItemAndPreviewTotal(t *testing.T) {
	router, cookies := newAuthedRouter(t, archive.NewStatic())

	form := url.Values{}
	form.Set("itemName", "Whistle")
	form.Set("price", "19.99")
	form.Set("quantity", "3")
	w := postForm(router, "/order-entry/items", form, cookies)
	require.Equal(t, http.StatusFound, w.Code)

	// The preview is hidden until toggled.
	w = get(router, "/order-entry", cookies)
	assert.NotContains(t, w.Body.String(), "Order Preview")

	w = postForm(router, "/order-entry/preview", url.Values{}, cookies)
	require.Equal(t, http.StatusFound, w.Code)

	w = get(router, "/order-entry", cookies)
	body := w.Body.String()
	assert.Contains(t, body, "Order Preview")
	assert.Contains(t, body, "Whistle")
	assert.Contains(t, body, "$19.99 x 3 = $59.97")
	assert.Contains(t, body, "Transportation Fee: $10.00")
	assert.Contains(t, body, "$69.97")
}

func TestAddItemRejectionKeepsDraftUnchanged(t *testing.T) {
	router, cookies := newAuthedRouter(t, archive.NewStatic())

	form := url.Values{}
	form.Set("itemName", "")
	form.Set("price", "19.99")
	form.Set("quantity", "1")
	w := postForm(router, "/order-entry/items", form, cookies)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "An item needs a name")

	// Submitting now still reports an empty draft.
	w = postForm(router, "/order-entry/submit", url.Values{}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot submit an empty order")
}

func TestRemoveItemFromDraft(t *testing.T) {
	router, cookies := newAuthedRouter(t, archive.NewStatic())

	for _, name := range []string{"First", "Second"} {
		form := url.Values{}
		form.Set("itemName", name)
		form.Set("price", "5.00")
		form.Set("quantity", "1")
		require.Equal(t, http.StatusFound, postForm(router, "/order-entry/items", form, cookies).Code)
	}
	require.Equal(t, http.StatusFound, postForm(router, "/order-entry/preview", url.Values{}, cookies).Code)

	body := get(router, "/order-entry", cookies).Body.String()
	itemID := extractRemoveTarget(t, body, "First")

	w := postForm(router, "/order-entry/items/"+itemID+"/remove", url.Values{}, cookies)
	require.Equal(t, http.StatusFound, w.Code)

	body = get(router, "/order-entry", cookies).Body.String()
	assert.NotContains(t, body, "First")
	assert.Contains(t, body, "Second")
	assert.Contains(t, body, "$15.00")
}

// extractRemoveTarget pulls the item id out of the remove-form action that
// follows the named item in the rendered preview.
func extractRemoveTarget(t *testing.T, body, name string) string {
	t.Helper()
	idx := strings.Index(body, ">"+name+"<")
	require.GreaterOrEqual(t, idx, 0, "item %q not rendered", name)
	rest := body[idx:]
	const prefix = `action="/order-entry/items/`
	start := strings.Index(rest, prefix)
	require.GreaterOrEqual(t, start, 0)
	rest = rest[start+len(prefix):]
	end := strings.Index(rest, "/remove")
	require.GreaterOrEqual(t, end, 0)
	return rest[:end]
}

func TestSubmitOrderHandsDraftToArchiveAndResets(t *testing.T) {
	mockArchive := new(archive.MockOrderArchive)
	mockArchive.On("SubmitOrder", mock.Anything, interfaces.UserID("staff@refhub.com"), mock.Anything, mock.Anything).
		Return(&interfaces.SubmitConfirmation{OrderID: 7}, nil).
		Run(func(args mock.Arguments) {
			items := args.Get(2).([]interfaces.LineItem)
			total := args.Get(3).(decimal.Decimal)
			require.Len(t, items, 1)
			assert.Equal(t, "Whistle", items[0].Name)
			assert.Equal(t, "29.99", total.StringFixed(2))
		})

	router, cookies := newAuthedRouter(t, mockArchive)

	form := url.Values{}
	form.Set("itemName", "Whistle")
	form.Set("price", "19.99")
	form.Set("quantity", "1")
	require.Equal(t, http.StatusFound, postForm(router, "/order-entry/items", form, cookies).Code)

	w := postForm(router, "/order-entry/submit", url.Values{}, cookies)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/order-entry?submitted=7", w.Header().Get("Location"))

	// The draft was discarded on confirmation.
	w = postForm(router, "/order-entry/submit", url.Values{}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockArchive.AssertExpectations(t)
}

func TestSubmitOrderArchiveFailureKeepsDraft(t *testing.T) {
	mockArchive := new(archive.MockOrderArchive)
	mockArchive.On("SubmitOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &interfaces.GatewayError{StatusCode: http.StatusServiceUnavailable, Detail: "archive unavailable"}).Once()
	mockArchive.On("SubmitOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&interfaces.SubmitConfirmation{OrderID: 8}, nil).Once()

	router, cookies := newAuthedRouter(t, mockArchive)

	form := url.Values{}
	form.Set("itemName", "Flag")
	form.Set("price", "12.00")
	form.Set("quantity", "2")
	require.Equal(t, http.StatusFound, postForm(router, "/order-entry/items", form, cookies).Code)

	w := postForm(router, "/order-entry/submit", url.Values{}, cookies)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "archive unavailable")

	// The draft survived the failure and can be resubmitted.
	w = postForm(router, "/order-entry/submit", url.Values{}, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAdminDashboardFilters(t *testing.T) {
	router, cookies := newAuthedRouter(t, archive.NewStatic())

	w := get(router, "/admin/dashboard?filterStaff=jane", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Jane Smith")
	assert.NotContains(t, body, "John Doe")
	assert.NotContains(t, body, "Bob Johnson")

	w = get(router, "/admin/dashboard?filterDate=2023-05-01", cookies)
	body = w.Body.String()
	assert.Contains(t, body, "John Doe")
	assert.NotContains(t, body, "Jane Smith")

	w = get(router, "/admin/dashboard", cookies)
	body = w.Body.String()
	assert.Contains(t, body, "John Doe")
	assert.Contains(t, body, "Jane Smith")
	assert.Contains(t, body, "Bob Johnson")
}

func TestAdminDashboardNoMatches(t *testing.T) {
	router, cookies := newAuthedRouter(t, archive.NewStatic())

	w := get(router, "/admin/dashboard?filterStaff=nobody", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No orders found matching the current filters.")
}

func TestUpdateStatusDispatchesIntent(t *testing.T) {
	mockArchive := new(archive.MockOrderArchive)
	mockArchive.On("UpdateStatus", mock.Anything, int64(2), interfaces.StatusCompleted).Return(nil)

	router, cookies := newAuthedRouter(t, mockArchive)

	form := url.Values{}
	form.Set("newStatus", "Completed")
	w := postForm(router, "/admin/orders/2/status", form, cookies)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	mockArchive.AssertExpectations(t)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	mockArchive := new(archive.MockOrderArchive)
	router, cookies := newAuthedRouter(t, mockArchive)

	form := url.Values{}
	form.Set("newStatus", "Shipped")
	w := postForm(router, "/admin/orders/2/status", form, cookies)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockArchive.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateReportStreamsArtifact(t *testing.T) {
	mockArchive := new(archive.MockOrderArchive)
	mockArchive.On("GenerateReport", mock.Anything).Return([]byte("report-bytes"), nil)

	router, cookies := newAuthedRouter(t, mockArchive)

	w := postForm(router, "/admin/report", url.Values{}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "report-bytes", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
}

func TestGenerateReportFailureRendersError(t *testing.T) {
	router, cookies := newAuthedRouter(t, archive.NewStatic())

	w := postForm(router, "/admin/report", url.Values{}, cookies)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Contains(t, w.Body.String(), "report generation requires a configured order archive")
}

func TestLogoutClearsSessionAndDraft(t *testing.T) {
	router, cookies := newAuthedRouter(t, archive.NewStatic())

	w := postForm(router, "/logout", url.Values{}, cookies)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// The old cookie no longer grants access once the browser honors the
	// expiry; a fresh request without cookies is redirected.
	w = get(router, "/order-entry", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}
