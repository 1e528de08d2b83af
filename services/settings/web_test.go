package settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/sessionguard/lib/mystore"
	"github.com/MarcGrol/sessionguard/lib/mytime"
)

func TestSettings(t *testing.T) {

	t.Run("Get settings, stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, settingsStore, _ := setup(t, ctrl)

		// given
		settingsStore.EXPECT().Get(gomock.Any(), verifierSettingsUID).Return(VerifierSettings{
			RefreshBeforeSeconds: 120,
			LastModified:         &mytime.ExampleTime,
		}, true, nil)

		// when
		request, err := http.NewRequest(http.MethodGet, "/settings/verifier", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), `"RefreshBeforeSeconds": 120`)
	})

	t.Run("Get settings, defaults when nothing stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, settingsStore, _ := setup(t, ctrl)

		// given
		settingsStore.EXPECT().Get(gomock.Any(), verifierSettingsUID).Return(VerifierSettings{}, false, nil)

		// when
		request, err := http.NewRequest(http.MethodGet, "/settings/verifier", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), `"RefreshBeforeSeconds": 300`)
	})

	t.Run("Update settings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, settingsStore, nower := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		settingsStore.EXPECT().RunInTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, f func(ctx context.Context) error) error {
				return f(ctx)
			})
		settingsStore.EXPECT().Put(gomock.Any(), verifierSettingsUID, VerifierSettings{
			RefreshBeforeSeconds: 600,
			LastModified:         &mytime.ExampleTime,
		}).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/settings/verifier",
			strings.NewReader("refreshBeforeSeconds=600"))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), `"RefreshBeforeSeconds": 600`)
	})

	t.Run("Update settings, negative window rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/settings/verifier",
			strings.NewReader("refreshBeforeSeconds=-1"))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *mystore.MockStore[VerifierSettings], *mytime.MockNower) {
	ctx := context.TODO()
	router := mux.NewRouter()
	settingsStore := mystore.NewMockStore[VerifierSettings](ctrl)
	nower := mytime.NewMockNower(ctrl)
	sut := NewService(settingsStore, nower)

	err := sut.RegisterEndpoints(ctx, router)
	assert.NoError(t, err)

	return router, settingsStore, nower
}
