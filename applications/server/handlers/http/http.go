package http

import (
	"net/http"

	"github.com/go-kit/log"
	"github.com/gorilla/mux"

	"github.com/donmikel/imageupload/applications/server"
	"github.com/donmikel/imageupload/applications/server/auth"
	"github.com/donmikel/imageupload/applications/server/config"
)

func NewRouter(conf config.Server, svc server.UploadService, signer *auth.Signer, logger log.Logger) http.Handler {
	route := conf.Upload.Route
	withOptions := corsWithOptions(conf.CORS.Whitelist)
	user := verifyUser(signer, logger)
	admin := verifyAdmin()
	notSupported := NotSupportedHandler(route)

	r := mux.NewRouter()

	r.Handle(route, chain(PreflightHandler(), withOptions)).Methods(http.MethodOptions)
	r.Handle(route, chain(notSupported, cors(), user, admin)).Methods(http.MethodGet)
	r.Handle(route, chain(
		UploadFileHandler(svc, conf.Upload.FieldName, logger),
		withOptions, user, admin,
	)).Methods(http.MethodPost)
	r.Handle(route, chain(notSupported, withOptions, user, admin)).Methods(http.MethodPut, http.MethodDelete)

	r.Handle(conf.Upload.PublicPath+"/{filename}", chain(ServeFileHandler(svc, logger), cors())).
		Methods(http.MethodGet, http.MethodHead)

	r.Use(mux.CORSMethodMiddleware(r))

	// Outside the router so unmatched requests are logged too.
	return chain(r, limitBody(conf.Upload.MaxSizeBytes), logging(logger))
}

func NewHTTPServer(conf config.Server, svc server.UploadService, signer *auth.Signer, logger log.Logger) *http.Server {
	mux := NewRouter(conf, svc, signer, logger)
	return &http.Server{
		Addr:    conf.API.HTTPAddr,
		Handler: mux,
	}
}
