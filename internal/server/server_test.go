package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/joseph-ayodele/foreclosure-parser/internal/common"
	"github.com/joseph-ayodele/foreclosure-parser/internal/entity"
	"github.com/joseph-ayodele/foreclosure-parser/internal/nyc"
)

type mockCaseRepo struct {
	mock.Mock
}

func (m *mockCaseRepo) SaveCases(ctx context.Context, runID string, records []*entity.CaseRecord) error {
	return m.Called(ctx, runID, records).Error(0)
}

func (m *mockCaseRepo) ListCases(ctx context.Context) ([]entity.StoredCase, error) {
	args := m.Called(ctx)
	cases, _ := args.Get(0).([]entity.StoredCase)
	return cases, args.Error(1)
}

func (m *mockCaseRepo) GetCase(ctx context.Context, indexNumber string) (*entity.StoredCase, error) {
	args := m.Called(ctx, indexNumber)
	c, _ := args.Get(0).(*entity.StoredCase)
	return c, args.Error(1)
}

func (m *mockCaseRepo) CountCases(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type stubParcels struct {
	parcel *nyc.Parcel
	err    error
}

func (s stubParcels) Parcel(_ context.Context, address string) (*nyc.Parcel, error) {
	if s.err != nil {
		return nil, s.err
	}
	p := *s.parcel
	p.Address = address
	return &p, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleCase() entity.StoredCase {
	queens := constants.Queens
	return entity.StoredCase{
		CaseRecord: entity.CaseRecord{
			IndexNumber:    "712220/2022",
			Plaintiff:      entity.Ptr("US Bank Trust Nation"),
			Borough:        &queens,
			JudgmentAmount: entity.Ptr("1,234,567.89"),
		},
		RunID:     "run-1",
		Seq:       0,
		UpdatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func notFound() error {
	return common.NewAppError("NOT_FOUND", "case not found", common.ErrNotFound)
}

func TestRouter_Cases(t *testing.T) {
	c := sampleCase()
	repo := new(mockCaseRepo)
	repo.On("ListCases", mock.Anything).Return([]entity.StoredCase{c}, nil)
	repo.On("GetCase", mock.Anything, "712220/2022").Return(&c, nil)
	repo.On("GetCase", mock.Anything, "1/2000").Return(nil, notFound())
	repo.On("CountCases", mock.Anything).Return(1, nil)

	srv := httptest.NewServer(NewRouter(repo, nil, quietLogger()))
	defer srv.Close()

	t.Run("healthz", func(t *testing.T) {
		var body map[string]any
		assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/healthz", &body))
		assert.Equal(t, "ok", body["status"])
		assert.EqualValues(t, 1, body["cases"])
	})

	t.Run("list", func(t *testing.T) {
		var body struct {
			Cases []map[string]any `json:"cases"`
			Count int              `json:"count"`
		}
		assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/cases", &body))
		require.Len(t, body.Cases, 1)
		assert.Equal(t, 1, body.Count)
		assert.Equal(t, "712220/2022", body.Cases[0]["Index Number"])
		assert.Equal(t, "NA", body.Cases[0]["Auction Date"])
	})

	t.Run("get", func(t *testing.T) {
		var body map[string]any
		assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/cases/712220/2022", &body))
		assert.Equal(t, "Queens", body["Borough"])
		assert.Equal(t, "run-1", body["run_id"])
	})

	t.Run("get missing", func(t *testing.T) {
		var body map[string]any
		assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/cases/1/2000", &body))
		assert.Contains(t, body["error"], "not found")
	})

	t.Run("parcels disabled", func(t *testing.T) {
		var body map[string]any
		assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, srv.URL+"/parcels?address=1+Main+St", &body))
	})

	repo.AssertExpectations(t)
}

func TestRouter_Parcels(t *testing.T) {
	parcels := stubParcels{parcel: &nyc.Parcel{
		BBL: nyc.BBL{Borough: "4", Block: "12248", Lot: "0021"},
		ID:  "4122480021",
	}}
	srv := httptest.NewServer(NewRouter(new(mockCaseRepo), parcels, quietLogger()))
	defer srv.Close()

	var p nyc.Parcel
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/parcels?address=145-47+157+Street", &p))
	assert.Equal(t, "4122480021", p.ID)
	assert.Equal(t, "145-47 157 Street", p.Address)

	var body map[string]any
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/parcels", &body))

	missing := httptest.NewServer(NewRouter(new(mockCaseRepo), stubParcels{err: notFound()}, quietLogger()))
	defer missing.Close()
	assert.Equal(t, http.StatusNotFound, getJSON(t, missing.URL+"/parcels?address=x", &body))
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func dialCaseService(t *testing.T, svc CaseServiceServer) *CaseClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer()
	RegisterCaseServiceServer(gs, svc)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewCaseClient(conn)
}

func TestCaseService_GRPC(t *testing.T) {
	c := sampleCase()
	repo := new(mockCaseRepo)
	repo.On("ListCases", mock.Anything).Return([]entity.StoredCase{c, c}, nil)
	repo.On("GetCase", mock.Anything, "712220/2022").Return(&c, nil)
	repo.On("GetCase", mock.Anything, "404/2020").Return(nil, notFound())

	client := dialCaseService(t, NewCaseService(repo, quietLogger()))
	ctx := context.Background()

	list, err := client.ListCases(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(2), list.GetFields()["count"].GetNumberValue())
	assert.Len(t, list.GetFields()["cases"].GetListValue().GetValues(), 2)

	got, err := client.GetCase(ctx, "712220/2022")
	require.NoError(t, err)
	m := got.AsMap()
	assert.Equal(t, "1,234,567.89", m["Judgment Amount"])
	assert.Equal(t, "2024-05-01T12:00:00Z", m["updated_at"])

	_, err = client.GetCase(ctx, "404/2020")
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.GetCase(ctx, "  ")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	repo.AssertExpectations(t)
}
