package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/treemenu/pkg/menu"
	"github.com/mchmarny/treemenu/pkg/metric"
	"github.com/mchmarny/treemenu/pkg/render"
	"github.com/mchmarny/treemenu/pkg/route"
)

type stubRepo struct {
	err error
}

func (s stubRepo) FetchMenuWithItems(_ context.Context, name string) (*menu.Menu, error) {
	if s.err != nil {
		return nil, s.err
	}
	if name != "main" {
		return nil, menu.ErrNotFound
	}
	parent := int64(1)
	return &menu.Menu{ID: 1, Name: "main", Items: []menu.Item{
		{ID: 1, Title: "Home", URL: "/"},
		{ID: 2, Title: "Products", RouteName: "products", ParentID: &parent},
		{ID: 3, Title: "Laptops", URL: "/products/laptops/", ParentID: func() *int64 { v := int64(2); return &v }()},
		{ID: 4, Title: "About", RouteName: "about"},
	}}, nil
}

func testMux(t *testing.T, repo menu.Repository, opts ...menu.Option) *http.ServeMux {
	t.Helper()
	routes, err := route.NewTable(
		route.Route{Name: "home", Path: "/"},
		route.Route{Name: "about", Path: "/about/"},
		route.Route{Name: "products", Path: "/products/"},
		route.Route{Name: "laptops", Path: "/products/laptops/"},
	)
	require.NoError(t, err)

	pages, err := render.New(routes)
	require.NoError(t, err)

	mux := http.NewServeMux()
	New(menu.NewBuilder(repo, routes, opts...), pages, routes, "main").RegisterHandlers(mux.Handle)
	return mux
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPageHandler(t *testing.T) {
	mux := testMux(t, stubRepo{})

	rec := get(t, mux, "/products/laptops/?q=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	assert.Equal(t, "laptops", doc.Find("h1").Text())
	active := doc.Find("li.active > a")
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "Laptops", active.Text())
	assert.Equal(t, 3, doc.Find("li.open").Length())
}

func TestPageHandlerExactPaths(t *testing.T) {
	mux := testMux(t, stubRepo{})

	assert.Equal(t, http.StatusOK, get(t, mux, "/").Code)
	assert.Equal(t, http.StatusOK, get(t, mux, "/about/").Code)
	assert.Equal(t, http.StatusNotFound, get(t, mux, "/about/team/").Code)
	assert.Equal(t, http.StatusNotFound, get(t, mux, "/missing").Code)
}

func TestPageHandlerRepositoryFailure(t *testing.T) {
	mux := testMux(t, stubRepo{err: errors.New("db down")})

	rec := get(t, mux, "/about/")
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("ul.menu").Length())
}

func TestAPIHandler(t *testing.T) {
	mux := testMux(t, stubRepo{})

	rec := get(t, mux, "/api/menus/main?path=/about/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res menu.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.NotNil(t, res.Active)
	assert.Equal(t, "About", res.Active.Title)
	assert.Equal(t, "/about/", res.CurrentPath)
	require.Len(t, res.Tree, 2)
	assert.True(t, res.Tree[1].IsActive)
	assert.False(t, res.Tree[0].IsParentActive)
}

func TestAPIHandlerDefaultsToRoot(t *testing.T) {
	mux := testMux(t, stubRepo{})

	var res menu.Result
	rec := get(t, mux, "/api/menus/main")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.NotNil(t, res.Active)
	assert.Equal(t, "Home", res.Active.Title)
}

func TestAPIHandlerNotFound(t *testing.T) {
	mux := testMux(t, stubRepo{})

	rec := get(t, mux, "/api/menus/footer?path=/")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var res menu.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Nil(t, res.Menu)
}

func TestAPIHandlerError(t *testing.T) {
	mux := testMux(t, stubRepo{err: errors.New("db down")})

	rec := get(t, mux, "/api/menus/main")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestPagePattern(t *testing.T) {
	assert.Equal(t, "GET /{$}", pagePattern("/"))
	assert.Equal(t, "GET /about/{$}", pagePattern("/about/"))
	assert.Equal(t, "GET /feed.xml", pagePattern("/feed.xml"))
}

func TestFragmentHandler(t *testing.T) {
	mux := testMux(t, stubRepo{})

	rec := get(t, mux, "/fragments/menus/main?path=/about/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("h1").Length())
	assert.Equal(t, "main", doc.Find("ul.menu").AttrOr("data-menu", ""))
	assert.Equal(t, "About", doc.Find("li.active > a").Text())

	rec = get(t, mux, "/fragments/menus/footer")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = get(t, testMux(t, stubRepo{err: errors.New("db down")}), "/fragments/menus/main")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUnknownMenuNamesShareSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	mux := testMux(t, stubRepo{}, menu.WithCounter(metric.NewRenderCounter(reg)))

	for i := 0; i < 500; i++ {
		require.Equal(t, http.StatusNotFound, get(t, mux, fmt.Sprintf("/api/menus/missing-%d", i)).Code)
		require.Equal(t, http.StatusNotFound, get(t, mux, fmt.Sprintf("/fragments/menus/other-%d", i)).Code)
	}
	require.Equal(t, http.StatusOK, get(t, mux, "/api/menus/main?path=/about/").Code)
	require.Equal(t, http.StatusOK, get(t, mux, "/api/menus/main?path=/nowhere/").Code)

	n, err := testutil.GatherAndCount(reg, metric.RenderCounterName)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	errReg := prometheus.NewRegistry()
	failing := testMux(t, stubRepo{err: errors.New("db down")}, menu.WithCounter(metric.NewRenderCounter(errReg)))
	for i := 0; i < 100; i++ {
		get(t, failing, fmt.Sprintf("/api/menus/any-%d", i))
	}

	n, err = testutil.GatherAndCount(errReg, metric.RenderCounterName)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
