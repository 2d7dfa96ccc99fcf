// Command authstub is a development stand-in for the external
// authentication gateway. It accepts a single credential pair and honors
// the gateway wire contract: form-encoded credentials in, a user
// identifier or a structured detail message out.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/refhub/order-management-backend/api"
	"github.com/refhub/order-management-backend/common"
)

var flags []cli.Flag = []cli.Flag{
	&cli.StringFlag{
		Name:  "listen-addr",
		Value: "127.0.0.1:8000",
		Usage: "address to listen on",
	},
	&cli.StringFlag{
		Name:  "accept-email",
		Value: "admin@refhub.com",
		Usage: "email of the single accepted account",
	},
	&cli.StringFlag{
		Name:  "accept-password",
		Value: "password",
		Usage: "password of the single accepted account",
	},
	&cli.BoolFlag{
		Name:  "log-json",
		Value: false,
		Usage: "log in JSON format",
	},
	&cli.BoolFlag{
		Name:  "log-debug",
		Value: false,
		Usage: "log debug messages",
	},
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func main() {
	app := &cli.App{
		Name:  "authstub",
		Usage: "Development stand-in for the REF HUB auth gateway",
		Flags: flags,
		Action: func(cCtx *cli.Context) error {
			listenAddr := cCtx.String("listen-addr")
			acceptEmail := cCtx.String("accept-email")

			logger := common.SetupLogger(&common.LoggingOpts{
				Debug:   cCtx.Bool("log-debug"),
				JSON:    cCtx.Bool("log-json"),
				Service: "refhub-authstub",
				Version: common.Version,
			})

			// The accepted password is only kept as a hash; requests are
			// checked with a constant-time bcrypt comparison.
			passwordHash, err := bcrypt.GenerateFromPassword([]byte(cCtx.String("accept-password")), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			mux := chi.NewRouter()
			mux.Post(api.LoginPath, func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseForm(); err != nil {
					writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Detail: "Malformed form submission"})
					return
				}
				email := r.PostFormValue(api.FieldEmail)
				password := r.PostFormValue(api.FieldPassword)

				if email != acceptEmail || bcrypt.CompareHashAndPassword(passwordHash, []byte(password)) != nil {
					logger.Info("Login rejected", "email", email)
					writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Detail: "Invalid credentials"})
					return
				}

				logger.Info("Login accepted", "email", email)
				writeJSON(w, http.StatusOK, api.LoginResponse{User: email})
			})

			mux.Post(api.SignupPath, func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseForm(); err != nil {
					writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Detail: "Malformed form submission"})
					return
				}
				if r.PostFormValue(api.FieldUsername) == "" || r.PostFormValue(api.FieldEmail) == "" || r.PostFormValue(api.FieldPassword) == "" {
					writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Detail: "All fields are required"})
					return
				}

				// The stub accepts any registration but never grows its
				// accepted credential set.
				logger.Info("Signup accepted", "email", r.PostFormValue(api.FieldEmail))
				w.WriteHeader(http.StatusCreated)
			})

			logger.Info("Starting auth stub", "listenAddress", listenAddr)
			return http.ListenAndServe(listenAddr, mux)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
