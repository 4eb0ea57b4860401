package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/onearthlouis/stock-radar/internal/domain"
	"github.com/onearthlouis/stock-radar/internal/service"
	"github.com/onearthlouis/stock-radar/internal/service/mocks"
	"github.com/onearthlouis/stock-radar/internal/view"
)

type HandlersTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	fetcher   *mocks.MockFetcher
	dashboard *service.Dashboard
	router    *gin.Engine
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.fetcher = mocks.NewMockFetcher(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.dashboard = service.NewDashboard(s.fetcher, 24, logger)
	s.router = New(s.dashboard, logger).Router()
}

func (s *HandlersTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) loadFixtures() {
	generated := time.Date(2026, 8, 29, 1, 0, 0, 0, time.UTC)
	s.fetcher.EXPECT().FetchLatest(gomock.Any()).Return(&domain.FeedDocument{
		GeneratedAt:  &generated,
		TotalItems:   3,
		SiteCount:    2,
		SourceCount:  3,
		ArchiveTotal: 120,
		Items: []domain.NewsItem{
			{UID: "a", Title: "A部创新高", SiteID: "s1", SiteName: "东方财富", Source: "股市", URL: "https://example.com/a"},
			{UID: "b", Title: "B公司亏损", SiteID: "s1", SiteName: "东方财富", Source: "公告", URL: "https://example.com/b"},
			{UID: "c", Title: "C新闻", SiteID: "s2", SiteName: "新浪财经", Source: "", URL: "https://example.com/c"},
		},
	}, nil)
	s.fetcher.EXPECT().FetchHotTopics(gomock.Any()).Return(&domain.HotTopicsDocument{
		GeneratedAt: &generated,
		Topics: []domain.HotTopic{
			{Keyword: "降息", Category: "宏观", Count: 50},
			{Keyword: "芯片", Category: "板块", Count: 10},
		},
	}, nil)
	s.dashboard.Refresh(context.Background())
}

func (s *HandlersTestSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) TestOverview() {
	s.loadFixtures()

	w := s.get("/api/v1/overview")
	s.Equal(http.StatusOK, w.Code)

	var resp overviewResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Success)
	s.True(resp.Loaded)
	s.False(resp.Failed)
	s.Equal(3, resp.TotalItems)
	s.Equal(120, resp.ArchiveTotal)
}

func (s *HandlersTestSuite) TestSites() {
	s.loadFixtures()

	w := s.get("/api/v1/sites")
	s.Equal(http.StatusOK, w.Code)

	var resp sitesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(2, resp.Count)
	s.Equal("s1", resp.Sites[0].SiteID)
	s.Equal(2, resp.Sites[0].Count)
}

func (s *HandlersTestSuite) TestNews_PerRequestQuery() {
	s.loadFixtures()

	w := s.get("/api/v1/news?q=创新")
	s.Equal(http.StatusOK, w.Code)

	var resp newsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(1, resp.Count)
	s.Require().Len(resp.Groups, 1)
	s.Equal("东方财富", resp.Groups[0].SiteName)
	s.Require().Len(resp.Groups[0].Sources, 1)
	s.Equal("股市", resp.Groups[0].Sources[0].Label)
	s.Equal("A部创新高", resp.Groups[0].Sources[0].Items[0].Title)

	// Shared state stays untouched by per-request parameters.
	s.Empty(s.dashboard.Query())
}

func (s *HandlersTestSuite) TestNews_DefaultSourceLabel() {
	s.loadFixtures()

	w := s.get("/api/v1/news?site=s2")
	var resp newsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(1, resp.Count)
	s.Equal(view.DefaultSourceLabel, resp.Groups[0].Sources[0].Label)
	s.Equal(view.UnknownTimeLabel, resp.Groups[0].Sources[0].Items[0].Time)
}

func (s *HandlersTestSuite) TestNews_EmptyStateMessages() {
	s.loadFixtures()

	var resp newsResponse

	w := s.get("/api/v1/news?q=不存在的关键词")
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Zero(resp.Count)
	s.Equal(view.EmptyNoMatch, resp.EmptyMessage)

	w = s.get("/api/v1/news?site=ghost")
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Zero(resp.Count)
	s.Equal(view.EmptyNoData, resp.EmptyMessage)
}

func (s *HandlersTestSuite) TestHotTopics() {
	s.loadFixtures()

	w := s.get("/api/v1/hot-topics")
	s.Equal(http.StatusOK, w.Code)

	var resp hotTopicsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(2, resp.Count)
	s.Equal("降息", resp.Topics[0].Keyword)
	s.InDelta(1.0, resp.Topics[0].Intensity, 1e-9)
	s.InDelta(0.20, resp.Topics[1].Intensity, 1e-9)
}

func (s *HandlersTestSuite) TestHotTopics_NoData() {
	s.fetcher.EXPECT().FetchLatest(gomock.Any()).Return(nil, errors.New("boom"))
	s.fetcher.EXPECT().FetchHotTopics(gomock.Any()).Return(nil, errors.New("boom"))
	s.dashboard.Refresh(context.Background())

	w := s.get("/api/v1/hot-topics")
	s.Equal(http.StatusServiceUnavailable, w.Code)

	var resp errorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.Success)
	s.Equal("no_data", resp.Error)

	// The news region fails independently: still HTTP 200, empty list.
	news := s.get("/api/v1/news")
	s.Equal(http.StatusOK, news.Code)
	var newsResp newsResponse
	s.Require().NoError(json.Unmarshal(news.Body.Bytes(), &newsResp))
	s.Zero(newsResp.Count)
	s.Equal(view.EmptyNoData, newsResp.EmptyMessage)
}

func (s *HandlersTestSuite) TestRefreshEndpoint() {
	s.loadFixtures()

	s.fetcher.EXPECT().FetchLatest(gomock.Any()).Return(&domain.FeedDocument{}, nil)
	s.fetcher.EXPECT().FetchHotTopics(gomock.Any()).Return(&domain.HotTopicsDocument{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(true, resp["feed_ok"])
	s.Equal(true, resp["hot_ok"])
}

func (s *HandlersTestSuite) TestHealth() {
	w := s.get("/api/v1/health")
	s.Equal(http.StatusOK, w.Code)
}
