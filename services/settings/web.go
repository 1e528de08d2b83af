package settings

import (
	"context"
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/sessionguard/lib/mycontext"
	"github.com/MarcGrol/sessionguard/lib/myerrors"
	"github.com/MarcGrol/sessionguard/lib/myhttp"
	"github.com/MarcGrol/sessionguard/lib/mylog"
	"github.com/MarcGrol/sessionguard/lib/mystore"
	"github.com/MarcGrol/sessionguard/lib/mytime"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

func NewService(settingsStore mystore.Store[VerifierSettings], nower mytime.Nower) *webService {
	return &webService{
		service: newService(settingsStore, nower),
		logger:  mylog.New("settings"),
	}
}

// Get makes the web service usable as settings provider for in-process consumers.
func (s *webService) Get(c context.Context) (VerifierSettings, error) {
	return s.service.Get(c)
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/settings/verifier", s.getSettingsPage()).Methods("GET")
	router.HandleFunc("/settings/verifier", s.updateSettingsPage()).Methods("POST")

	return nil
}

func (s *webService) getSettingsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		settings, err := s.service.Get(c)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, settings)
	}
}

func (s *webService) updateSettingsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		settings := VerifierSettings{}
		err = formcodec.NewDecoder().Decode(&settings, r.Form)
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		settings, err = s.service.update(c, settings)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, settings)
	}
}
