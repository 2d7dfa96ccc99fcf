/*
Package httpserver implements the browser-facing HTTP server for the REF
HUB order management tool.

It serves the login and signup forms, the session-guarded order-entry
screen, and the admin dashboard, delegating authentication to the external
auth gateway and all persistence to the external order archive.

# Views

 1. Entry views - login and signup, the only unauthenticated pages
 2. Order entry - the per-session draft editor with preview and submission
 3. Admin dashboard - order listing with filters, status changes, reports

# Order entry

Each authenticated user owns one in-memory draft. Form posts stage the new
item's fields, add it to the draft, remove lines, or toggle the preview;
the computed total (line subtotals plus the fixed transportation fee) is
re-rendered on every request. Submission hands the draft to the order
archive and discards it on confirmation.

# Error handling

Validation failures re-render the current form with an inline message.
Collaborator failures surface the collaborator's detail message with its
status code, falling back to a generic message and a 500. A missing
session is not an error: protected views redirect to the entry view.

The server also exposes health and diagnostics endpoints (/livez, /readyz,
/drain, /undrain, optional pprof) and serves Prometheus metrics on a
separate address.
*/
package httpserver
