package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", p.Limit, DefaultLimit)
	}
	if p.Offset != 0 {
		t.Errorf("Offset = %d, want 0", p.Offset)
	}
}

func TestFromContext_CapsLimit(t *testing.T) {
	p := paramsFor(t, "limit=500")
	if p.Limit != MaxLimit {
		t.Errorf("Limit = %d, want %d", p.Limit, MaxLimit)
	}
}

func TestFromContext_ParsesValues(t *testing.T) {
	p := paramsFor(t, "limit=30&offset=60")
	if p.Limit != 30 || p.Offset != 60 {
		t.Errorf("got %+v, want limit=30 offset=60", p)
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	r := NewResponse(nil, 100, 20, 60)
	if !r.HasMore {
		t.Error("expected HasMore for offset+limit < total")
	}

	r = NewResponse(nil, 100, 20, 80)
	if r.HasMore {
		t.Error("expected HasMore=false at last page")
	}
}

func TestParamsNextOffset(t *testing.T) {
	p := Params{Limit: 20, Offset: 40}
	if p.NextOffset() != 60 {
		t.Errorf("NextOffset() = %d, want 60", p.NextOffset())
	}
	if !p.HasNext(100) {
		t.Error("expected HasNext for total 100")
	}
	if p.HasNext(60) {
		t.Error("expected no next page for total 60")
	}
}
