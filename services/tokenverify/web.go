package tokenverify

import (
	"context"
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/sessionguard/lib/mycontext"
	"github.com/MarcGrol/sessionguard/lib/myerrors"
	"github.com/MarcGrol/sessionguard/lib/myhttp"
	"github.com/MarcGrol/sessionguard/lib/mylog"
	"github.com/MarcGrol/sessionguard/lib/mypublisher"
	"github.com/MarcGrol/sessionguard/lib/mytime"
	"github.com/MarcGrol/sessionguard/lib/myuuid"
	"github.com/MarcGrol/sessionguard/lib/myvault"
	"github.com/MarcGrol/sessionguard/services/settings"
	"github.com/MarcGrol/sessionguard/services/tokenverify/exchangeclient"
	"github.com/MarcGrol/sessionguard/services/tokenverify/sessionvault"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

func NewService(sessionVault myvault.VaultReadWriter[sessionvault.Session], settingsProvider settings.Provider, exchanger exchangeclient.ExchangeClient, nower mytime.Nower, uuider myuuid.UUIDer, pub mypublisher.Publisher) *webService {
	return &webService{
		service: newService(sessionVault, settingsProvider, exchanger, nower, uuider, pub),
		logger:  mylog.New("tokenverify"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/token/verify", s.verifyPage()).Methods("POST")
	router.HandleFunc("/token/status", s.statusPage()).Methods("GET")

	err := s.service.CreateTopics(c)
	if err != nil {
		return err
	}

	return nil
}

func (s *webService) verifyPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		req := VerifyRequest{}
		err = formcodec.NewDecoder().Decode(&req, r.Form)
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		accessToken, err := s.service.verifyFromRequest(c, req)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, VerifyResponse{
			AccessToken: accessToken,
		})
	}
}

func (s *webService) statusPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		status, err := s.service.getTokenStatus(c)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, status)
	}
}
